/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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

// Package logger is a small logrus-backed logger shared by every core
// component (reactor, mailbox, fsm, transports) for diagnostic output.
// User-facing protocol output (Success/Failure/ERR FROM ...) goes through
// the console package instead; this one is for internal diagnostics.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	loglvl "github.com/jakubvsetecka/ipk24chat-client/logger/level"
)

// Logger is the minimal surface every component depends on.
type Logger interface {
	Debug(message string, args ...interface{})
	Info(message string, args ...interface{})
	Warning(message string, args ...interface{})
	Error(message string, args ...interface{})
	Fatal(message string, args ...interface{})

	// WithField returns a derived Logger that merges field into every entry.
	WithField(key string, val interface{}) Logger

	// SetLevel changes the minimum level that reaches the output.
	SetLevel(lvl loglvl.Level)

	// SetOutput redirects where entries are written (default: os.Stderr).
	SetOutput(w io.Writer)
}

type logger struct {
	mu sync.Mutex
	l  *logrus.Logger
	f  Fields
}

// New returns a Logger writing to os.Stderr at Info level, matching the
// default the reference client uses for its diagnostic stream.
func New() Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(loglvl.InfoLevel.Logrus())
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    false,
		ForceQuote:       false,
	})

	return &logger{l: l, f: NewFields()}
}

func (o *logger) entry() *logrus.Entry {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.f) == 0 {
		return logrus.NewEntry(o.l)
	}

	return o.l.WithFields(logrus.Fields(o.f.clone()))
}

func (o *logger) Debug(message string, args ...interface{}) {
	o.entry().Debug(fmt.Sprintf(message, args...))
}

func (o *logger) Info(message string, args ...interface{}) {
	o.entry().Info(fmt.Sprintf(message, args...))
}

func (o *logger) Warning(message string, args ...interface{}) {
	o.entry().Warning(fmt.Sprintf(message, args...))
}

func (o *logger) Error(message string, args ...interface{}) {
	o.entry().Error(fmt.Sprintf(message, args...))
}

func (o *logger) Fatal(message string, args ...interface{}) {
	o.entry().Error(fmt.Sprintf(message, args...))
}

func (o *logger) WithField(key string, val interface{}) Logger {
	o.mu.Lock()
	defer o.mu.Unlock()

	return &logger{l: o.l, f: o.f.Add(key, val)}
}

func (o *logger) SetLevel(lvl loglvl.Level) {
	o.l.SetLevel(lvl.Logrus())
}

func (o *logger) SetOutput(w io.Writer) {
	o.l.SetOutput(w)
}
