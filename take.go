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

// Take returns a TypeErasedStream[T] that emits at most n elements from
// inner, then reports Ended and calls inner.Done() rather than pulling
// further — the named-but-undefined primitive a Take(n) scenario
// exercises without ever giving its exact semantics; ending cleanly after
// n elements, the way Head ends after one, is the natural reading.
func Take[T any](inner TypeErasedStream[T], n int) TypeErasedStream[T] {
	return &takeStream[T]{inner: inner, remaining: n}
}

type takeStream[T any] struct {
	inner     TypeErasedStream[T]
	remaining int
	sink      StreamSink[T]
}

func (t *takeStream[T]) Begin(ctx *Context, ix *Interrupt, sink StreamSink[T]) {
	t.sink = sink
	if t.remaining <= 0 {
		return
	}
	t.inner.Begin(ctx, ix, &takeSink[T]{outer: t})
}

func (t *takeStream[T]) Next(ctx *Context) {
	if t.remaining <= 0 {
		t.sink.Ended(ctx)
		return
	}
	t.inner.Next(ctx)
}

func (t *takeStream[T]) Done(ctx *Context) {
	if t.remaining > 0 {
		t.inner.Done(ctx)
	}
}

type takeSink[T any] struct {
	outer *takeStream[T]
}

func (s *takeSink[T]) Emit(ctx *Context, v T) {
	s.outer.remaining--
	s.outer.sink.Emit(ctx, v)
	if s.outer.remaining <= 0 {
		s.outer.inner.Done(ctx)
	}
}

func (s *takeSink[T]) Ended(ctx *Context)           { s.outer.sink.Ended(ctx) }
func (s *takeSink[T]) Fail(ctx *Context, err error)  { s.outer.sink.Fail(ctx, err) }
func (s *takeSink[T]) Stop(ctx *Context)             { s.outer.sink.Stop(ctx) }
