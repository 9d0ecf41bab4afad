/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package errors

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// Error extends the standard error with a numeric code, a caller trace and
// an optional chain of parent errors.
type Error interface {
	error

	// Code returns the CodeError carried by this error.
	Code() CodeError

	// IsCode reports whether this error (not its parents) carries code.
	IsCode(code CodeError) bool

	// HasCode reports whether this error or any of its parents carries code.
	HasCode(code CodeError) bool

	// AddParent appends one or more parent errors to this error's chain.
	AddParent(parent ...error)

	// GetParent returns the direct parent errors, if any.
	GetParent() []error

	// GetTrace returns "file:line" of the call site that created this error.
	GetTrace() string

	// Unwrap exposes the first parent for compatibility with errors.Is/As.
	Unwrap() error
}

type ers struct {
	c CodeError
	m string
	p []error
	f string
	l int
}

// New builds an Error with the given code and message, optionally wrapping
// the given parent errors (nil parents are discarded).
func New(code CodeError, message string, parent ...error) Error {
	f, l := caller(2)

	e := &ers{
		c: code,
		m: message,
		f: f,
		l: l,
	}

	e.AddParent(parent...)

	return e
}

// Newf is New with the message built from a printf-style pattern.
func Newf(code CodeError, pattern string, args ...interface{}) Error {
	f, l := caller(2)

	return &ers{
		c: code,
		m: fmt.Sprintf(pattern, args...),
		f: f,
		l: l,
	}
}

func caller(skip int) (file string, line int) {
	_, file, line, ok := runtime.Caller(skip)

	if !ok {
		return "", 0
	}

	if i := strings.LastIndex(file, "/"); i >= 0 {
		file = file[i+1:]
	}

	return file, line
}

func (e *ers) Error() string {
	if e == nil {
		return ""
	}

	if e.m == "" {
		return e.c.Message()
	}

	return e.m
}

func (e *ers) Code() CodeError {
	if e == nil {
		return UnknownError
	}

	return e.c
}

func (e *ers) IsCode(code CodeError) bool {
	return e != nil && e.c == code
}

func (e *ers) HasCode(code CodeError) bool {
	if e == nil {
		return false
	}

	if e.c == code {
		return true
	}

	for _, p := range e.p {
		if ce, ok := p.(Error); ok && ce.HasCode(code) {
			return true
		}
	}

	return false
}

func (e *ers) AddParent(parent ...error) {
	if e == nil {
		return
	}

	for _, p := range parent {
		if p != nil {
			e.p = append(e.p, p)
		}
	}
}

func (e *ers) GetParent() []error {
	if e == nil {
		return nil
	}

	return e.p
}

func (e *ers) GetTrace() string {
	if e == nil {
		return ""
	}

	return e.f + ":" + strconv.Itoa(e.l)
}

func (e *ers) Unwrap() error {
	if e == nil || len(e.p) == 0 {
		return nil
	}

	return e.p[0]
}

// Is reports whether err is (or wraps, through its parent chain) an Error
// carrying the given code. It mirrors the standard errors.Is contract.
func Is(err error, code CodeError) bool {
	for err != nil {
		if ce, ok := err.(Error); ok {
			if ce.HasCode(code) {
				return true
			}

			if len(ce.GetParent()) == 0 {
				return false
			}

			err = ce.GetParent()[0]
			continue
		}

		return false
	}

	return false
}
