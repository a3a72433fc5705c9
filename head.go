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

import "sync/atomic"

// Head terminates source at its first Body(v): on that first value it
// calls source.Done() and resolves with it, without waiting for the
// stream to unwind any further. If source reports Ended before ever
// emitting, it resolves with ErrEmptyStream.
func Head[T any](ctx *Context, source TypeErasedStream[T]) (*Future[T], *Interrupt) {
	future := newFuture[T]()
	ix := NewInterrupt()
	sink := &headSink[T]{source: source, future: future}

	source.Begin(ctx, ix, sink)
	source.Next(ctx)

	return future, ix
}

type headSink[T any] struct {
	source  TypeErasedStream[T]
	future  *Future[T]
	settled atomic.Bool
}

func (s *headSink[T]) Emit(ctx *Context, v T) {
	if !s.settled.CompareAndSwap(false, true) {
		return
	}
	s.source.Done(ctx)
	s.future.resolve(v)
}

func (s *headSink[T]) Ended(ctx *Context) {
	if s.settled.CompareAndSwap(false, true) {
		s.future.fail(ErrEmptyStream)
	}
}

func (s *headSink[T]) Fail(ctx *Context, err error) {
	if s.settled.CompareAndSwap(false, true) {
		s.future.fail(err)
	}
}

func (s *headSink[T]) Stop(ctx *Context) {
	if s.settled.CompareAndSwap(false, true) {
		s.future.fail(ErrStopped)
	}
}
