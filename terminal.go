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

// TerminalBuilder assembles the sink at the top of a runnable chain: up to
// three user callbacks, one per channel. A terminal must not have a
// successor — Build returns a bare Continuation[T], not a Composable,
// so there is nothing further to Pipe it into.
type TerminalBuilder[T any] struct {
	onStart func(ctx *Context, v T)
	onFail  func(ctx *Context, err error)
	onStop  func(ctx *Context)
}

// Terminal begins a new terminal over values of type T.
func Terminal[T any]() TerminalBuilder[T] {
	return TerminalBuilder[T]{}
}

func (b TerminalBuilder[T]) Start(h func(ctx *Context, v T)) TerminalBuilder[T] {
	b.onStart = h
	return b
}

func (b TerminalBuilder[T]) Fail(h func(ctx *Context, err error)) TerminalBuilder[T] {
	b.onFail = h
	return b
}

func (b TerminalBuilder[T]) Stop(h func(ctx *Context)) TerminalBuilder[T] {
	b.onStop = h
	return b
}

// Build realizes the callbacks into the Continuation that sits at the top
// of the chain.
func (b TerminalBuilder[T]) Build() Continuation[T] {
	return &terminalContinuation[T]{builder: b}
}

type terminalContinuation[T any] struct {
	builder TerminalBuilder[T]
	fired   fireOnce
}

func (t *terminalContinuation[T]) Register(ix *Interrupt) {}

func (t *terminalContinuation[T]) Start(ctx *Context, v T) {
	t.fired.markStart()
	if t.builder.onStart != nil {
		t.builder.onStart(ctx, v)
	}
}

func (t *terminalContinuation[T]) Fail(ctx *Context, err error) {
	t.fired.markFail()
	if t.builder.onFail != nil {
		t.builder.onFail(ctx, err)
	}
}

func (t *terminalContinuation[T]) Stop(ctx *Context) {
	t.fired.markStop()
	if t.builder.onStop != nil {
		t.builder.onStop(ctx)
	}
}
