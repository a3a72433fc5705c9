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

import (
	"runtime/debug"
	"sync/atomic"
)

// Reduce folds source into a single accumulator: for each Body(v), step
// is run with the current accumulator and v. A true "more" requests the
// next element; false calls source.Done() and resolves with the
// accumulator as it stands. On a natural Ended, it resolves with the
// accumulator unchanged.
func Reduce[T, Acc any](
	ctx *Context,
	source TypeErasedStream[T],
	init Acc,
	step func(ctx *Context, acc Acc, v T) (next Acc, more bool, err error),
) (*Future[Acc], *Interrupt) {
	future := newFuture[Acc]()
	ix := NewInterrupt()
	sink := &reduceSink[T, Acc]{source: source, future: future, acc: init, step: step}

	source.Begin(ctx, ix, sink)
	source.Next(ctx)

	return future, ix
}

type reduceSink[T, Acc any] struct {
	source  TypeErasedStream[T]
	future  *Future[Acc]
	acc     Acc
	step    func(ctx *Context, acc Acc, v T) (Acc, bool, error)
	settled atomic.Bool
}

func (s *reduceSink[T, Acc]) Emit(ctx *Context, v T) {
	next, more, err := func() (next Acc, more bool, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = newOpaquePanic(r, debug.Stack())
			}
		}()
		return s.step(ctx, s.acc, v)
	}()
	if err != nil {
		s.settle(ctx, next, err)
		return
	}
	s.acc = next
	if more {
		s.source.Next(ctx)
		return
	}
	s.source.Done(ctx)
	s.settle(ctx, s.acc, nil)
}

func (s *reduceSink[T, Acc]) Ended(ctx *Context) {
	s.settle(ctx, s.acc, nil)
}

func (s *reduceSink[T, Acc]) Fail(ctx *Context, err error) {
	s.settle(ctx, s.acc, err)
}

func (s *reduceSink[T, Acc]) Stop(ctx *Context) {
	s.settle(ctx, s.acc, ErrStopped)
}

func (s *reduceSink[T, Acc]) settle(ctx *Context, acc Acc, err error) {
	if !s.settled.CompareAndSwap(false, true) {
		return
	}
	if err != nil {
		s.future.fail(err)
		return
	}
	s.future.resolve(acc)
}
