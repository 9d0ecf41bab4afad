/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

// Package atomic wraps sync/atomic with a small generic, type-safe Value[T].
// The reactor and input-reader stop flags, and the mailbox's sequence
// counters, are all built on top of it instead of ad-hoc mutex-guarded
// fields.
package atomic

import (
	"sync/atomic"
)

// Value is a lock-free, type-safe holder for a single value of type T.
type Value[T any] interface {
	Load() T
	Store(val T)
	Swap(new T) (old T)
	CompareAndSwap(old, new T) (swapped bool)
}

type val[T any] struct {
	av atomic.Value
}

// NewValue returns a Value[T] with its zero value as the initial contents.
func NewValue[T any]() Value[T] {
	v := &val[T]{}
	v.av.Store(boxed[T]{})
	return v
}

// boxed lets Value[T] store T inside atomic.Value even when T is an interface
// type: atomic.Value rejects a nil value and a change of concrete type
// between stores, and wrapping every T in the same struct avoids both.
type boxed[T any] struct {
	v T
}

func (o *val[T]) Load() T {
	b, _ := o.av.Load().(boxed[T])
	return b.v
}

func (o *val[T]) Store(val T) {
	o.av.Store(boxed[T]{v: val})
}

func (o *val[T]) Swap(new T) (old T) {
	prev, _ := o.av.Swap(boxed[T]{v: new}).(boxed[T])
	return prev.v
}

func (o *val[T]) CompareAndSwap(old, new T) (swapped bool) {
	for {
		cur := o.av.Load()
		curBoxed, _ := cur.(boxed[T])

		if !equalAny(curBoxed.v, old) {
			return false
		}

		if o.av.CompareAndSwap(cur, boxed[T]{v: new}) {
			return true
		}
	}
}

// equalAny compares two values of type T using reflection-free equality when
// possible; T is constrained by callers to comparable-friendly usages
// (bool flags, counters) so a simple interface comparison is sufficient here.
func equalAny[T any](a, b T) bool {
	return any(a) == any(b)
}
