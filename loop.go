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

import "runtime/debug"

// LoopBuilder assembles a stream's terminal: body decides, per element,
// whether to pull again (the default: call stream.Next() unconditionally)
// or stop pulling; ended/fail/stop convert the stream's final event into
// the single result type R that Run resolves its Future with.
type LoopBuilder[T, R any] struct {
	begin func(ctx *Context, stream TypeErasedStream[T])
	body  func(ctx *Context, stream TypeErasedStream[T], v T)
	ended func(ctx *Context) (R, error)
	fail  func(ctx *Context, err error) (R, error)
	stop  func(ctx *Context) (R, error)
}

// Loop begins a new stream terminal producing a single value of type R.
func Loop[T, R any]() LoopBuilder[T, R] {
	return LoopBuilder[T, R]{}
}

func (b LoopBuilder[T, R]) Begin(h func(ctx *Context, stream TypeErasedStream[T])) LoopBuilder[T, R] {
	b.begin = h
	return b
}

func (b LoopBuilder[T, R]) Body(h func(ctx *Context, stream TypeErasedStream[T], v T)) LoopBuilder[T, R] {
	b.body = h
	return b
}

func (b LoopBuilder[T, R]) Ended(h func(ctx *Context) (R, error)) LoopBuilder[T, R] {
	b.ended = h
	return b
}

func (b LoopBuilder[T, R]) Fail(h func(ctx *Context, err error) (R, error)) LoopBuilder[T, R] {
	b.fail = h
	return b
}

func (b LoopBuilder[T, R]) Stop(h func(ctx *Context) (R, error)) LoopBuilder[T, R] {
	b.stop = h
	return b
}

// Run drives source to completion: it begins the stream, requests the
// first element, and returns a Future that resolves once source reports
// Ended, Fail, or Stop, plus the Interrupt handed to source.Begin. Loop
// installs no handler on that Interrupt, and sources built with Stream
// never see it, so triggering it ends the pull loop only when the source
// itself watches it.
func (b LoopBuilder[T, R]) Run(ctx *Context, source TypeErasedStream[T]) (*Future[R], *Interrupt) {
	future := newFuture[R]()
	ix := NewInterrupt()
	sink := &loopSink[T, R]{hooks: b, stream: source, future: future}

	if b.begin != nil {
		b.begin(ctx, source)
	}
	source.Begin(ctx, ix, sink)
	source.Next(ctx)

	return future, ix
}

type loopSink[T, R any] struct {
	hooks  LoopBuilder[T, R]
	stream TypeErasedStream[T]
	future *Future[R]
	fired  fireOnce
}

func (s *loopSink[T, R]) Emit(ctx *Context, v T) {
	if s.hooks.body == nil {
		s.stream.Next(ctx)
		return
	}

	var panicked error
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicked = newOpaquePanic(r, debug.Stack())
			}
		}()
		s.hooks.body(ctx, s.stream, v)
	}()
	if panicked != nil {
		s.stream.Done(ctx)
		s.Fail(ctx, panicked)
	}
}

func (s *loopSink[T, R]) Ended(ctx *Context) {
	s.fired.markStart()
	var r R
	var err error
	if s.hooks.ended != nil {
		r, err = recoverResult(func() (R, error) { return s.hooks.ended(ctx) })
	}
	s.resolve(r, err)
}

func (s *loopSink[T, R]) Fail(ctx *Context, err error) {
	s.fired.markFail()
	r, ferr := *new(R), err
	if s.hooks.fail != nil {
		r, ferr = recoverResult(func() (R, error) { return s.hooks.fail(ctx, err) })
	}
	s.resolve(r, ferr)
}

func (s *loopSink[T, R]) Stop(ctx *Context) {
	s.fired.markStop()
	r, err := *new(R), ErrStopped
	if s.hooks.stop != nil {
		r, err = recoverResult(func() (R, error) { return s.hooks.stop(ctx) })
	}
	s.resolve(r, err)
}

func (s *loopSink[T, R]) resolve(r R, err error) {
	if err != nil {
		s.future.fail(err)
		return
	}
	s.future.resolve(r)
}
