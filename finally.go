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

// Outcome is the three-channel result Finally converts a chain into
// before handing it to f, the way the original distinguishes
// Expected::Of<T>, a boxed exception, and the stopped sentinel: Value is
// meaningful only when Err is nil; a Fail sets Err; a Stop sets Stopped
// and also sets Err to ErrStopped.
type Outcome[T any] struct {
	Value   T
	Err     error
	Stopped bool
}

// Finally converts a Start/Fail/Stop outcome into a single Outcome value
// delivered to f, whose own return value (and error) continues the chain
// as normal.
func Finally[T, R any](f func(ctx *Context, outcome Outcome[T]) (R, error)) Composable[T, R] {
	return Composable[T, R]{build: func(next Continuation[R]) Continuation[T] {
		return &finallyContinuation[T, R]{f: f, next: next}
	}}
}

type finallyContinuation[T, R any] struct {
	f     func(ctx *Context, outcome Outcome[T]) (R, error)
	next  Continuation[R]
	fired fireOnce
}

func (c *finallyContinuation[T, R]) Register(ix *Interrupt) { c.next.Register(ix) }

func (c *finallyContinuation[T, R]) Start(ctx *Context, v T) {
	c.fired.markStart()
	c.deliver(ctx, Outcome[T]{Value: v})
}

func (c *finallyContinuation[T, R]) Fail(ctx *Context, err error) {
	c.fired.markFail()
	c.deliver(ctx, Outcome[T]{Err: err})
}

func (c *finallyContinuation[T, R]) Stop(ctx *Context) {
	c.fired.markStop()
	c.deliver(ctx, Outcome[T]{Err: ErrStopped, Stopped: true})
}

func (c *finallyContinuation[T, R]) deliver(ctx *Context, outcome Outcome[T]) {
	r, err := recoverResult(func() (R, error) { return c.f(ctx, outcome) })
	if err != nil {
		c.next.Fail(ctx, err)
		return
	}
	c.next.Start(ctx, r)
}
