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
 */

// Package console renders the session's user-facing lines (incoming chat
// messages, REPLY outcomes, and error diagnostics) with the same
// color-by-kind convention throughout the client.
package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

type colorType uint8

const (
	// ColorMessage colors an inbound MSG line ("<DisplayName>: <content>").
	ColorMessage colorType = iota
	// ColorSuccess colors a REPLY OK line ("Success: <content>").
	ColorSuccess
	// ColorFailure colors a REPLY NOK line ("Failure: <content>").
	ColorFailure
	// ColorError colors ERR/diagnostic lines written to stderr.
	ColorError
)

var colorList map[colorType]*color.Color

func init() {
	colorList = map[colorType]*color.Color{
		ColorMessage: color.New(color.FgCyan),
		ColorSuccess: color.New(color.FgGreen),
		ColorFailure: color.New(color.FgRed),
		ColorError:   color.New(color.FgRed, color.Bold),
	}
}

// SetColor overrides the color attributes used for a given kind of line.
func SetColor(c colorType, attrs ...color.Attribute) {
	colorList[c] = color.New(attrs...)
}

func (c colorType) Println(w io.Writer, text string) {
	if col := colorList[c]; col != nil {
		_, _ = col.Fprintln(w, text)
		return
	}

	_, _ = fmt.Fprintln(w, text)
}

func (c colorType) Printf(w io.Writer, format string, args ...interface{}) {
	c.Println(w, fmt.Sprintf(format, args...))
}
