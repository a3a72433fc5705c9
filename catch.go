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

import "errors"

// catchHandler is tried against the error Fail carries; it reports whether
// it matched and, if so, has already resolved the outcome into next itself
// — either directly (Raised, All) or by driving a recovered composable into
// it (RaisedCompose), the same way thenComposeContinuation drives a nested
// chain into its own next.
type catchHandler[T any] func(ctx *Context, err error, ix *Interrupt, next Continuation[T]) (handled bool)

// CatchBuilder accumulates typed error handlers in declaration order, plus
// at most one catch-all handler, for the Catch primitive. Go forbids a
// method from introducing a type parameter the receiver doesn't already
// have, so the typed handler is installed with the free functions Raised /
// RaisedCompose rather than a CatchBuilder.Raised[E] method.
type CatchBuilder[T any] struct {
	handlers []catchHandler[T]
	all      func(ctx *Context, err error) (T, error)
}

// Catch begins a new error-handling chain over values of type T.
func Catch[T any]() CatchBuilder[T] {
	return CatchBuilder[T]{}
}

// resolveCaught delivers a recovered value/error pair to next, the shared
// last step of both Raised and the All handler.
func resolveCaught[T any](ctx *Context, next Continuation[T], v T, err error) {
	if err != nil {
		next.Fail(ctx, err)
		return
	}
	next.Start(ctx, v)
}

// Raised installs a handler for errors matching E — using errors.As, so it
// catches E exactly or anything that unwraps to an E, the Go analog of the
// original's is_base_of_v subtype match. Handlers are tried in the order
// they were installed; the first match wins. h returns the recovered
// value and a nil error to resume the chain with Start, or a non-nil error
// to continue failing the chain with a different error.
func Raised[T any, E error](b CatchBuilder[T], h func(ctx *Context, err E) (T, error)) CatchBuilder[T] {
	wrapped := func(ctx *Context, err error, ix *Interrupt, next Continuation[T]) bool {
		var target E
		if !errors.As(err, &target) {
			return false
		}
		v, rerr := recoverResult(func() (T, error) { return h(ctx, target) })
		resolveCaught(ctx, next, v, rerr)
		return true
	}
	next := make([]catchHandler[T], len(b.handlers)+1)
	copy(next, b.handlers)
	next[len(b.handlers)] = wrapped
	b.handlers = next
	return b
}

// RaisedCompose installs a handler for errors matching E whose recovery is
// itself asynchronous: h returns a Composable[Mid, T] instead of a plain
// value, which is instantiated with the downstream continuation as
// successor and driven to completion, the spec §4.4 case Raised alone
// can't express — the Catch analog of ThenCompose alongside Then. The
// nested chain is built against a thenAdaptor so it forwards into next
// without re-registering an Interrupt already registered for the whole
// outer chain, exactly as thenComposeContinuation.Start does.
func RaisedCompose[T any, E error, Mid any](b CatchBuilder[T], h func(ctx *Context, err E) Composable[Mid, T]) CatchBuilder[T] {
	wrapped := func(ctx *Context, err error, ix *Interrupt, next Continuation[T]) bool {
		var target E
		if !errors.As(err, &target) {
			return false
		}
		chain, perr := recoverValue(func() Composable[Mid, T] { return h(ctx, target) })
		if perr != nil {
			next.Fail(ctx, perr)
			return true
		}
		built := chain.Build(&thenAdaptor[T]{next: next})
		if ix != nil {
			built.Register(ix)
		}
		var zero Mid
		built.Start(ctx, zero)
		return true
	}
	handlers := make([]catchHandler[T], len(b.handlers)+1)
	copy(handlers, b.handlers)
	handlers[len(b.handlers)] = wrapped
	b.handlers = handlers
	return b
}

// All installs the catch-all handler, run when no typed handler matched.
// It must be installed last; installing it twice is a construction-time
// mistake the caller owns, same as calling Raised after All.
func (b CatchBuilder[T]) All(h func(ctx *Context, err error) (T, error)) CatchBuilder[T] {
	b.all = h
	return b
}

// Build realizes the accumulated handlers into a Composable.
func (b CatchBuilder[T]) Build() Composable[T, T] {
	return Composable[T, T]{build: func(next Continuation[T]) Continuation[T] {
		return &catchContinuation[T]{handlers: b.handlers, all: b.all, next: next}
	}}
}

type catchContinuation[T any] struct {
	handlers []catchHandler[T]
	all      func(ctx *Context, err error) (T, error)
	next     Continuation[T]
	ix       *Interrupt
	fired    fireOnce
}

func (c *catchContinuation[T]) Register(ix *Interrupt) {
	c.ix = ix
	c.next.Register(ix)
}

func (c *catchContinuation[T]) Start(ctx *Context, v T) {
	c.fired.markStart()
	c.next.Start(ctx, v)
}

func (c *catchContinuation[T]) Fail(ctx *Context, err error) {
	c.fired.markFail()

	for _, h := range c.handlers {
		if h(ctx, err, c.ix, c.next) {
			return
		}
	}

	if c.all != nil {
		v, rerr := recoverResult(func() (T, error) { return c.all(ctx, err) })
		resolveCaught(ctx, c.next, v, rerr)
		return
	}

	c.next.Fail(ctx, err)
}

func (c *catchContinuation[T]) Stop(ctx *Context) {
	c.fired.markStop()
	c.next.Stop(ctx)
}
