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

// IfBuilder accumulates the branches of an If primitive. Both branches
// must share the same In and Out types; only one is ever instantiated.
type IfBuilder[In, Out any] struct {
	cond func(ctx *Context, v In) bool
	yes  Composable[In, Out]
	no   Composable[In, Out]
}

// If begins a branch on cond, evaluated once against the value the chain
// receives at Start.
func If[In, Out any](cond func(ctx *Context, v In) bool) IfBuilder[In, Out] {
	return IfBuilder[In, Out]{cond: cond}
}

func (b IfBuilder[In, Out]) Yes(c Composable[In, Out]) IfBuilder[In, Out] {
	b.yes = c
	return b
}

func (b IfBuilder[In, Out]) No(c Composable[In, Out]) IfBuilder[In, Out] {
	b.no = c
	return b
}

// Build realizes the branch into a Composable. The branch not taken is
// never instantiated — its Composable's build func is simply never
// called.
func (b IfBuilder[In, Out]) Build() Composable[In, Out] {
	return Composable[In, Out]{build: func(next Continuation[Out]) Continuation[In] {
		return &ifContinuation[In, Out]{builder: b, next: next}
	}}
}

type ifContinuation[In, Out any] struct {
	builder IfBuilder[In, Out]
	next    Continuation[Out]
	ix      *Interrupt
	fired   fireOnce
}

func (c *ifContinuation[In, Out]) Register(ix *Interrupt) {
	// Neither branch exists yet, so there is nothing concrete to register
	// against ix until Start picks one; stash it for that moment.
	c.ix = ix
}

func (c *ifContinuation[In, Out]) Start(ctx *Context, v In) {
	c.fired.markStart()

	yes, err := recoverBool(func() bool { return c.builder.cond(ctx, v) })
	if err != nil {
		c.next.Fail(ctx, err)
		return
	}

	branch := c.builder.no
	if yes {
		branch = c.builder.yes
	}

	built := branch.Build(c.next)
	if c.ix != nil {
		built.Register(c.ix)
	}
	built.Start(ctx, v)
}

func (c *ifContinuation[In, Out]) Fail(ctx *Context, err error) {
	c.fired.markFail()
	c.next.Fail(ctx, err)
}

func (c *ifContinuation[In, Out]) Stop(ctx *Context) {
	c.fired.markStop()
	c.next.Stop(ctx)
}
