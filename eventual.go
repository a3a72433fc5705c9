// Copyright 2024 Ahmad Sameh(asmsh)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package eventual

// StartHook is invoked when an Eventual's upstream calls Start. It owns k
// until it calls exactly one of k.Start, k.Fail, or k.Stop — possibly
// later, from another goroutine, after stashing k and returning (that's
// how a long-running Eventual defers completion to an external event).
type StartHook[T any] func(ctx *Context, ix *Interrupt, k Continuation[T], value T)

// FailHook is invoked when an Eventual's upstream calls Fail.
type FailHook[T any] func(ctx *Context, ix *Interrupt, k Continuation[T], err error)

// StopHook is invoked when an Eventual's upstream calls Stop.
type StopHook[T any] func(ctx *Context, ix *Interrupt, k Continuation[T])

// EventualBuilder assembles a user-defined primitive from up to three
// hooks, following the declarative .start().fail().stop() shape of the
// library this kernel generalizes. A hook left nil defaults to passing
// its call straight through to k unchanged.
type EventualBuilder[T any] struct {
	start StartHook[T]
	fail  FailHook[T]
	stop  StopHook[T]
}

// Eventual begins a new user-defined primitive over values of type T.
func Eventual[T any]() EventualBuilder[T] {
	return EventualBuilder[T]{}
}

func (b EventualBuilder[T]) Start(h StartHook[T]) EventualBuilder[T] {
	b.start = h
	return b
}

func (b EventualBuilder[T]) Fail(h FailHook[T]) EventualBuilder[T] {
	b.fail = h
	return b
}

func (b EventualBuilder[T]) Stop(h StopHook[T]) EventualBuilder[T] {
	b.stop = h
	return b
}

// Build realizes the hooks into a Composable that can be Piped into a
// chain or handed to Run directly.
func (b EventualBuilder[T]) Build() Composable[T, T] {
	return Composable[T, T]{build: func(next Continuation[T]) Continuation[T] {
		return &eventualContinuation[T]{hooks: b, next: next}
	}}
}

type eventualContinuation[T any] struct {
	hooks EventualBuilder[T]
	next  Continuation[T]
	ix    *Interrupt
	fired fireOnce
}

func (e *eventualContinuation[T]) Register(ix *Interrupt) {
	e.ix = ix
	e.next.Register(ix)
}

func (e *eventualContinuation[T]) Start(ctx *Context, v T) {
	e.fired.markStart()
	if e.hooks.start == nil {
		e.next.Start(ctx, v)
		return
	}
	recoverVoid(ctx, e.next.Fail, func() { e.hooks.start(ctx, e.ix, e.next, v) })
}

func (e *eventualContinuation[T]) Fail(ctx *Context, err error) {
	e.fired.markFail()
	if e.hooks.fail == nil {
		e.next.Fail(ctx, err)
		return
	}
	recoverVoid(ctx, e.next.Fail, func() { e.hooks.fail(ctx, e.ix, e.next, err) })
}

func (e *eventualContinuation[T]) Stop(ctx *Context) {
	e.fired.markStop()
	if e.hooks.stop == nil {
		e.next.Stop(ctx)
		return
	}
	recoverVoid(ctx, e.next.Fail, func() { e.hooks.stop(ctx, e.ix, e.next) })
}

// Just returns a Composable[In, T] that ignores the value it receives and
// immediately starts its continuation with value, short-circuiting Fail
// and Stop straight through. It is the kernel's simplest source.
func Just[In, T any](value T) Composable[In, T] {
	return Composable[In, T]{build: func(next Continuation[T]) Continuation[In] {
		return &justContinuation[In, T]{value: value, next: next}
	}}
}

type justContinuation[In, T any] struct {
	value T
	next  Continuation[T]
	fired fireOnce
}

func (j *justContinuation[In, T]) Register(ix *Interrupt) { j.next.Register(ix) }

func (j *justContinuation[In, T]) Start(ctx *Context, _ In) {
	j.fired.markStart()
	j.next.Start(ctx, j.value)
}

func (j *justContinuation[In, T]) Fail(ctx *Context, err error) {
	j.fired.markFail()
	j.next.Fail(ctx, err)
}

func (j *justContinuation[In, T]) Stop(ctx *Context) {
	j.fired.markStop()
	j.next.Stop(ctx)
}

// Raise returns a Composable[In, T] that ignores the value it receives and
// immediately fails its continuation with err.
func Raise[In, T any](err error) Composable[In, T] {
	return Composable[In, T]{build: func(next Continuation[T]) Continuation[In] {
		return &raiseContinuation[In, T]{err: err, next: next}
	}}
}

type raiseContinuation[In, T any] struct {
	err   error
	next  Continuation[T]
	fired fireOnce
}

func (r *raiseContinuation[In, T]) Register(ix *Interrupt) { r.next.Register(ix) }

func (r *raiseContinuation[In, T]) Start(ctx *Context, _ In) {
	r.fired.markStart()
	r.next.Fail(ctx, r.err)
}

func (r *raiseContinuation[In, T]) Fail(ctx *Context, err error) {
	r.fired.markFail()
	r.next.Fail(ctx, err)
}

func (r *raiseContinuation[In, T]) Stop(ctx *Context) {
	r.fired.markStop()
	r.next.Stop(ctx)
}
