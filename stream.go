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

// StreamSink is what a stream's next/done hooks call to report one of the
// stream protocol's four upward events: Emit (a Body(v)), Ended, Fail, or
// Stop.
type StreamSink[T any] interface {
	Emit(ctx *Context, v T)
	Ended(ctx *Context)
	Fail(ctx *Context, err error)
	Stop(ctx *Context)
}

// TypeErasedStream is the driver-facing handle a Loop (or any other
// stream consumer: Map, Head, Reduce) holds: Begin wires up the sink that
// Next/Done's hooks will report events to, Next requests the next
// element, Done tells the source its consumer is finished pulling.
//
// This plays the role the original's type-erased stream continuation
// plays for the value chain kernel's Task: a stream built from the
// Stream[T] builder below, or returned from Map/FlatMap/Filter/Take, all
// satisfy the same narrow interface regardless of their concrete hooks.
type TypeErasedStream[T any] interface {
	Begin(ctx *Context, ix *Interrupt, sink StreamSink[T])
	Next(ctx *Context)
	Done(ctx *Context)
}

// StreamBuilder assembles a source stream from up to three hooks: begin
// (called once, before the first Next), next, done, each driven straight
// from the driver's calls of the same name.
type StreamBuilder[T any] struct {
	begin func(ctx *Context, k StreamSink[T])
	next  func(ctx *Context, k StreamSink[T])
	done  func(ctx *Context, k StreamSink[T])
}

// Stream begins a new source stream of values of type T.
func Stream[T any]() StreamBuilder[T] {
	return StreamBuilder[T]{}
}

func (b StreamBuilder[T]) Begin(h func(ctx *Context, k StreamSink[T])) StreamBuilder[T] {
	b.begin = h
	return b
}

func (b StreamBuilder[T]) Next(h func(ctx *Context, k StreamSink[T])) StreamBuilder[T] {
	b.next = h
	return b
}

func (b StreamBuilder[T]) Done(h func(ctx *Context, k StreamSink[T])) StreamBuilder[T] {
	b.done = h
	return b
}

// Build realizes the hooks into a TypeErasedStream.
func (b StreamBuilder[T]) Build() TypeErasedStream[T] {
	return &builtStream[T]{builder: b}
}

type builtStream[T any] struct {
	builder StreamBuilder[T]
	sink    StreamSink[T]
}

func (s *builtStream[T]) Begin(ctx *Context, ix *Interrupt, sink StreamSink[T]) {
	s.sink = sink
	if s.builder.begin != nil {
		recoverVoid(ctx, sink.Fail, func() { s.builder.begin(ctx, sink) })
	}
}

func (s *builtStream[T]) Next(ctx *Context) {
	if s.builder.next != nil {
		recoverVoid(ctx, s.sink.Fail, func() { s.builder.next(ctx, s.sink) })
		return
	}
	s.sink.Ended(ctx)
}

func (s *builtStream[T]) Done(ctx *Context) {
	if s.builder.done != nil {
		recoverVoid(ctx, s.sink.Fail, func() { s.builder.done(ctx, s.sink) })
	}
}
