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

// FlatMap returns a TypeErasedStream[U]: for each Body(v) from outer it
// instantiates f(v) as an inner stream and consumes it entirely, adopting
// the downstream terminal's Next/Done calls while the inner stream is
// active, before requesting the next outer element. A Done() requested by
// the downstream terminal while an inner stream is active is latched and
// forwarded to the outer stream's Done() only once that inner stream
// finishes, rather than abandoning it mid-flight.
func FlatMap[T, U any](outer TypeErasedStream[T], f func(ctx *Context, v T) TypeErasedStream[U]) TypeErasedStream[U] {
	return &flatMapStream[T, U]{outer: outer, f: f}
}

type flatMapStream[T, U any] struct {
	outer       TypeErasedStream[T]
	f           func(ctx *Context, v T) TypeErasedStream[U]
	sink        StreamSink[U]
	ix          *Interrupt
	inner       TypeErasedStream[U]
	doneLatched bool
}

func (m *flatMapStream[T, U]) Begin(ctx *Context, ix *Interrupt, sink StreamSink[U]) {
	m.sink = sink
	m.ix = ix
	m.outer.Begin(ctx, ix, &flatMapOuterSink[T, U]{outer: m})
}

func (m *flatMapStream[T, U]) Next(ctx *Context) {
	if m.inner != nil {
		m.inner.Next(ctx)
		return
	}
	m.outer.Next(ctx)
}

func (m *flatMapStream[T, U]) Done(ctx *Context) {
	if m.inner != nil {
		m.doneLatched = true
		m.inner.Done(ctx)
		return
	}
	m.outer.Done(ctx)
}

type flatMapOuterSink[T, U any] struct {
	outer *flatMapStream[T, U]
}

func (s *flatMapOuterSink[T, U]) Emit(ctx *Context, v T) {
	inner, err := recoverValue(func() TypeErasedStream[U] { return s.outer.f(ctx, v) })
	if err != nil {
		s.outer.sink.Fail(ctx, err)
		return
	}
	s.outer.inner = inner
	inner.Begin(ctx, s.outer.ix, &flatMapInnerSink[T, U]{outer: s.outer})
	inner.Next(ctx)
}

func (s *flatMapOuterSink[T, U]) Ended(ctx *Context)           { s.outer.sink.Ended(ctx) }
func (s *flatMapOuterSink[T, U]) Fail(ctx *Context, err error) { s.outer.sink.Fail(ctx, err) }
func (s *flatMapOuterSink[T, U]) Stop(ctx *Context)            { s.outer.sink.Stop(ctx) }

type flatMapInnerSink[T, U any] struct {
	outer *flatMapStream[T, U]
}

func (s *flatMapInnerSink[T, U]) Emit(ctx *Context, v U) {
	s.outer.sink.Emit(ctx, v)
}

func (s *flatMapInnerSink[T, U]) Ended(ctx *Context) {
	s.outer.inner = nil
	if s.outer.doneLatched {
		s.outer.doneLatched = false
		s.outer.outer.Done(ctx)
		return
	}
	s.outer.outer.Next(ctx)
}

func (s *flatMapInnerSink[T, U]) Fail(ctx *Context, err error) {
	s.outer.inner = nil
	s.outer.sink.Fail(ctx, err)
}

func (s *flatMapInnerSink[T, U]) Stop(ctx *Context) {
	s.outer.inner = nil
	s.outer.sink.Stop(ctx)
}
