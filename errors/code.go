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

// Package errors provides numeric error codes with stack trace capture and
// error hierarchy, in the style used across the session's core packages.
package errors

import (
	"strconv"
	"strings"
)

// Message is a function able to render a human string for a CodeError.
type Message func(code CodeError) (message string)

// CodeError is a numeric error classification, similar in spirit to an HTTP status code.
type CodeError uint16

const (
	// UnknownError is returned when no specific code applies.
	UnknownError CodeError = 0

	UnknownMessage = "unknown error"
	NullMessage    = ""
)

// Package code ranges: every core package that raises typed errors reserves
// a block of 100 codes here, mirroring the registration style of the teacher
// library (each package owns a MinPkg* base and registers its own messages).
const (
	MinPkgMessage   CodeError = iota*100 + 100
	MinPkgCodec
	MinPkgTransport
	MinPkgMailbox
	MinPkgReactor
	MinPkgFSM
	MinPkgConfig
	MinPkgConsole

	MinAvailable = 900
)

var idMsgFct = make(map[CodeError]Message)

// RegisterIdFctMessage associates a message function with the block of
// codes starting at base. Every package calls this once from an init().
func RegisterIdFctMessage(base CodeError, fct Message) {
	idMsgFct[base] = fct
}

// ExistInMapMessage reports whether a message function is already registered
// for the block that code belongs to.
func ExistInMapMessage(code CodeError) bool {
	_, ok := idMsgFct[findBase(code)]
	return ok
}

// findBase finds the largest registered base <= code.
func findBase(code CodeError) CodeError {
	var best CodeError
	var found bool

	for base := range idMsgFct {
		if base <= code && (!found || base > best) {
			best = base
			found = true
		}
	}

	return best
}

// Uint16 returns the CodeError as its underlying uint16.
func (c CodeError) Uint16() uint16 {
	return uint16(c)
}

// Int returns the CodeError as an int.
func (c CodeError) Int() int {
	return int(c)
}

// String renders the numeric code as a decimal string.
func (c CodeError) String() string {
	return strconv.Itoa(c.Int())
}

// Message resolves the human text registered for this code, falling back to
// UnknownMessage when nothing is registered.
func (c CodeError) Message() string {
	if c == UnknownError {
		return UnknownMessage
	}

	if f, ok := idMsgFct[findBase(c)]; ok {
		if m := f(c); m != "" {
			return m
		}
	}

	return UnknownMessage
}

// Error builds a new Error carrying this code, optionally wrapping parents.
func (c CodeError) Error(p ...error) Error {
	return New(c, c.Message(), p...)
}

// Errorf builds a new Error, formatting the registered message with args.
func (c CodeError) Errorf(args ...interface{}) Error {
	m := c.Message()

	if !strings.Contains(m, "%") {
		return New(c, m)
	}

	return Newf(c, m, args...)
}

// IsCode reports whether this code equals the given one.
func (c CodeError) IsCode(code CodeError) bool {
	return c == code
}
