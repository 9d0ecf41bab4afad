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

package console

import (
	"io"
	"os"
)

// Writer groups the two streams the session ever prints to. Tests substitute
// both with buffers; the real client wires os.Stdout/os.Stderr.
type Writer struct {
	Out io.Writer
	Err io.Writer
}

// Default returns a Writer bound to the process's standard streams.
func Default() Writer {
	return Writer{Out: os.Stdout, Err: os.Stderr}
}

// Message prints an inbound chat message: "<DisplayName>: <content>".
func (w Writer) Message(displayName, content string) {
	ColorMessage.Printf(w.Out, "%s: %s", displayName, content)
}

// Success prints a successful REPLY: "Success: <content>".
func (w Writer) Success(content string) {
	ColorSuccess.Printf(w.Out, "Success: %s", content)
}

// Failure prints a failed REPLY: "Failure: <content>".
func (w Writer) Failure(content string) {
	ColorFailure.Printf(w.Out, "Failure: %s", content)
}

// ServerError prints a non-interrupt server ERR: "ERR FROM <DisplayName>: <content>".
func (w Writer) ServerError(displayName, content string) {
	ColorError.Printf(w.Err, "ERR FROM %s: %s", displayName, content)
}

// Fatal prints a one-line fatal diagnostic: "ERR: <message>".
func (w Writer) Fatal(message string) {
	ColorError.Printf(w.Err, "ERR: %s", message)
}

// Hint prints a local user-error hint (malformed command) to stderr, uncolored.
func (w Writer) Hint(message string) {
	_, _ = io.WriteString(w.Err, message+"\n")
}

// helpText is the static usage block printed by /help (spec.md §4.3,
// SPEC_FULL.md §4): one line each for /auth, /join, /rename, /help and
// /print. The Mailbox also accepts /bye, which is not listed here.
const helpText = `Available commands:
/auth <Username> <Secret> <DisplayName>  authenticate with the server
/join <ChannelID>                        join a channel
/rename <DisplayName>                    change the local display name
/help                                    show this text
/print                                   dump mailbox diagnostics to stderr`

// Help prints the static usage block to stdout.
func (w Writer) Help() {
	_, _ = io.WriteString(w.Out, helpText+"\n")
}
