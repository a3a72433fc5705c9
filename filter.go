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

// Filter returns a TypeErasedStream[T] that only emits elements from
// inner for which pred reports true; elements it drops are transparently
// replaced with a pull for the next one. It is not named in the original
// kernel; this module adds it alongside Take as the two filtering
// primitives a complete stream kernel needs beyond Map/FlatMap/Head/
// Reduce/Repeat, grounded on the same next/done hook shape as Map.
func Filter[T any](inner TypeErasedStream[T], pred func(ctx *Context, v T) bool) TypeErasedStream[T] {
	return &filterStream[T]{inner: inner, pred: pred}
}

type filterStream[T any] struct {
	inner TypeErasedStream[T]
	pred  func(ctx *Context, v T) bool
	sink  StreamSink[T]
}

func (f *filterStream[T]) Begin(ctx *Context, ix *Interrupt, sink StreamSink[T]) {
	f.sink = sink
	f.inner.Begin(ctx, ix, &filterSink[T]{outer: f})
}

func (f *filterStream[T]) Next(ctx *Context) { f.inner.Next(ctx) }
func (f *filterStream[T]) Done(ctx *Context) { f.inner.Done(ctx) }

type filterSink[T any] struct {
	outer *filterStream[T]
}

func (s *filterSink[T]) Emit(ctx *Context, v T) {
	ok, err := recoverBool(func() bool { return s.outer.pred(ctx, v) })
	if err != nil {
		s.outer.sink.Fail(ctx, err)
		return
	}
	if ok {
		s.outer.sink.Emit(ctx, v)
		return
	}
	s.outer.inner.Next(ctx)
}

func (s *filterSink[T]) Ended(ctx *Context)          { s.outer.sink.Ended(ctx) }
func (s *filterSink[T]) Fail(ctx *Context, err error) { s.outer.sink.Fail(ctx, err) }
func (s *filterSink[T]) Stop(ctx *Context)            { s.outer.sink.Stop(ctx) }
