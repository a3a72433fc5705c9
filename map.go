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

// Map returns a TypeErasedStream[U] that transforms each Body(v) from
// inner into Body(f(v)) before passing it on; Ended/Fail/Stop pass
// through unchanged. An error from f converts that element into a Fail,
// matching how Then converts an error return into the Fail channel.
func Map[T, U any](inner TypeErasedStream[T], f func(ctx *Context, v T) (U, error)) TypeErasedStream[U] {
	return &mapStream[T, U]{inner: inner, f: f}
}

type mapStream[T, U any] struct {
	inner TypeErasedStream[T]
	f     func(ctx *Context, v T) (U, error)
	sink  StreamSink[U]
}

func (m *mapStream[T, U]) Begin(ctx *Context, ix *Interrupt, sink StreamSink[U]) {
	m.sink = sink
	m.inner.Begin(ctx, ix, &mapSink[T, U]{outer: m})
}

func (m *mapStream[T, U]) Next(ctx *Context) { m.inner.Next(ctx) }
func (m *mapStream[T, U]) Done(ctx *Context) { m.inner.Done(ctx) }

type mapSink[T, U any] struct {
	outer *mapStream[T, U]
}

func (s *mapSink[T, U]) Emit(ctx *Context, v T) {
	u, err := recoverResult(func() (U, error) { return s.outer.f(ctx, v) })
	if err != nil {
		s.outer.sink.Fail(ctx, err)
		return
	}
	s.outer.sink.Emit(ctx, u)
}

func (s *mapSink[T, U]) Ended(ctx *Context)            { s.outer.sink.Ended(ctx) }
func (s *mapSink[T, U]) Fail(ctx *Context, err error)   { s.outer.sink.Fail(ctx, err) }
func (s *mapSink[T, U]) Stop(ctx *Context)              { s.outer.sink.Stop(ctx) }
