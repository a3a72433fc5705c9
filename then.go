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

// Then returns a Composable that, on Start(x), evaluates f(ctx, x) and
// forwards the result: a nil error continues the chain with Start(y); a
// non-nil error converts it to Fail(err). Fail and Stop pass through
// unchanged. This is the direct-value form of the original's Then(f);
// Go's lack of a value-or-composable union return forces the
// chain-returning form into the separate ThenCompose below rather than
// one polymorphic f.
func Then[In, Out any](f func(ctx *Context, v In) (Out, error)) Composable[In, Out] {
	return Composable[In, Out]{build: func(next Continuation[Out]) Continuation[In] {
		return &thenContinuation[In, Out]{f: f, next: next}
	}}
}

type thenContinuation[In, Out any] struct {
	f     func(ctx *Context, v In) (Out, error)
	next  Continuation[Out]
	fired fireOnce
}

func (t *thenContinuation[In, Out]) Register(ix *Interrupt) { t.next.Register(ix) }

func (t *thenContinuation[In, Out]) Start(ctx *Context, v In) {
	t.fired.markStart()
	out, err := recoverResult(func() (Out, error) { return t.f(ctx, v) })
	if err != nil {
		t.next.Fail(ctx, err)
		return
	}
	t.next.Start(ctx, out)
}

func (t *thenContinuation[In, Out]) Fail(ctx *Context, err error) {
	t.fired.markFail()
	t.next.Fail(ctx, err)
}

func (t *thenContinuation[In, Out]) Stop(ctx *Context) {
	t.fired.markStop()
	t.next.Stop(ctx)
}

// ThenCompose is the chain-returning form of Then: f(ctx, x) builds a new
// Composable[Mid, Out], which is instantiated against an adaptor around
// next — an adaptor that forwards Start/Fail/Stop but never registers its
// own interrupt handlers, since ThenCompose's own Register call has
// already registered next once for the whole outer chain — then driven
// with the zero value of Mid. Built chains returned from f are expected
// to ignore their seed input the way Just or a source-shaped Eventual
// does; that's what makes the zero value a safe seed.
func ThenCompose[In, Mid, Out any](f func(ctx *Context, v In) Composable[Mid, Out]) Composable[In, Out] {
	return Composable[In, Out]{build: func(next Continuation[Out]) Continuation[In] {
		return &thenComposeContinuation[In, Mid, Out]{f: f, next: next}
	}}
}

type thenComposeContinuation[In, Mid, Out any] struct {
	f     func(ctx *Context, v In) Composable[Mid, Out]
	next  Continuation[Out]
	ix    *Interrupt
	fired fireOnce
}

func (t *thenComposeContinuation[In, Mid, Out]) Register(ix *Interrupt) {
	t.ix = ix
	t.next.Register(ix)
}

func (t *thenComposeContinuation[In, Mid, Out]) Start(ctx *Context, v In) {
	t.fired.markStart()
	chain, err := recoverValue(func() Composable[Mid, Out] { return t.f(ctx, v) })
	if err != nil {
		t.next.Fail(ctx, err)
		return
	}
	built := chain.Build(&thenAdaptor[Out]{next: t.next})
	if t.ix != nil {
		built.Register(t.ix)
	}
	var zero Mid
	built.Start(ctx, zero)
}

func (t *thenComposeContinuation[In, Mid, Out]) Fail(ctx *Context, err error) {
	t.fired.markFail()
	t.next.Fail(ctx, err)
}

func (t *thenComposeContinuation[In, Mid, Out]) Stop(ctx *Context) {
	t.fired.markStop()
	t.next.Stop(ctx)
}

// thenAdaptor exposes only Start/Fail/Stop/Register to a dynamically
// built nested chain, swallowing Register since the outer continuation
// already registered next with the chain's Interrupt.
type thenAdaptor[T any] struct {
	next Continuation[T]
}

func (a *thenAdaptor[T]) Start(ctx *Context, v T)      { a.next.Start(ctx, v) }
func (a *thenAdaptor[T]) Fail(ctx *Context, err error) { a.next.Fail(ctx, err) }
func (a *thenAdaptor[T]) Stop(ctx *Context)            { a.next.Stop(ctx) }
func (a *thenAdaptor[T]) Register(ix *Interrupt)       {}
