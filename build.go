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

// Build realizes chain against terminal, producing the Continuation[In]
// that Start/Fail/Stop is actually called on. It is syntactic sugar for
// chain.Build(terminal) — the free-function spelling used throughout this
// package for symmetry with Terminate and Run.
func Build[In, Out any](chain Composable[In, Out], terminal Continuation[Out]) Continuation[In] {
	return chain.Build(terminal)
}

// Future is a single-shot result cell: exactly one of resolve or fail is
// ever called, and Wait blocks until one of them has been.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) resolve(v T) {
	f.value = v
	close(f.done)
}

func (f *Future[T]) fail(err error) {
	f.err = err
	close(f.done)
}

// Done returns a channel closed once the Future has a result.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the Future resolves, then returns its value and
// error. A stopped chain reports ErrStopped.
func (f *Future[T]) Wait() (T, error) {
	<-f.done
	return f.value, f.err
}

// Terminate appends a terminal to chain whose three callbacks resolve a
// Future exactly once, and returns both the Future and the built
// Continuation[In] — the Go analog of the original's
// std::tuple<future, k>. Nothing is started yet; the caller drives k.
func Terminate[In, T any](chain Composable[In, T]) (*Future[T], Continuation[In]) {
	future := newFuture[T]()
	term := Terminal[T]().
		Start(func(ctx *Context, v T) { future.resolve(v) }).
		Fail(func(ctx *Context, err error) { future.fail(err) }).
		Stop(func(ctx *Context) { future.fail(ErrStopped) }).
		Build()
	return future, chain.Build(term)
}

// Run terminates chain, registers a fresh Interrupt, starts it with seed
// on ctx, and blocks for the result — the synchronous-driver convenience
// the original spells as the dereference operator on a chain.
func Run[In, T any](ctx *Context, chain Composable[In, T], seed In) (T, error) {
	future, k := Terminate(chain)
	k.Register(NewInterrupt())
	k.Start(ctx, seed)
	return future.Wait()
}

// RunWithInterrupt is Run's cancellable form: it returns the Future and
// the Interrupt driving the chain instead of blocking itself, so the
// caller can Trigger it from another goroutine before calling Wait.
func RunWithInterrupt[In, T any](ctx *Context, chain Composable[In, T], seed In) (*Future[T], *Interrupt) {
	future, k := Terminate(chain)
	ix := NewInterrupt()
	k.Register(ix)
	k.Start(ctx, seed)
	return future, ix
}
