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

import (
	"fmt"

	"github.com/go-eventual/eventual/internal/trace"
)

// Scheduler decides when, and on which goroutine, submitted work runs. The
// kernel names the interface and supplies two implementations,
// DirectScheduler and PoolScheduler, but never requires either.
type Scheduler interface {
	// Submit arranges for work to run with ctx installed as the current
	// Context. A direct scheduler may run work synchronously on the
	// calling goroutine; a deferring scheduler enqueues it.
	Submit(ctx *Context, work func())

	// Continuable reports whether the calling goroutine may resume inside
	// ctx without going through Submit.
	Continuable(ctx *Context) bool

	// Clone is invoked when a continuation captures "the previous
	// context" for later resumption (Reschedule, a stream's begin hook).
	// It is a no-op for schedulers, like DirectScheduler, with nothing to
	// reference-count.
	Clone(ctx *Context)
}

// Context names a logical place of execution ("the event loop", "worker
// 3") and carries a back-pointer to the Scheduler that owns it. The
// original C++ library this package generalizes tracks "the current
// context" as a thread-local pointer; goroutines aren't pinned to OS
// threads, so here *Context is threaded explicitly as the first argument
// of every Start/Fail/Stop call instead. A *Context is otherwise opaque,
// comparable, and immutable.
type Context struct {
	name      string
	scheduler Scheduler
}

// NewContext names a new Context bound to scheduler. name is used only for
// diagnostics. A nil scheduler binds to the process default.
func NewContext(name string, scheduler Scheduler) *Context {
	if scheduler == nil {
		scheduler = defaultScheduler
	}
	return &Context{name: name, scheduler: scheduler}
}

// Name returns the diagnostic name given to this Context.
func (c *Context) Name() string {
	if c == nil {
		return "<nil>"
	}
	return c.name
}

// Scheduler returns the Scheduler that owns this Context.
func (c *Context) Scheduler() Scheduler {
	if c == nil {
		return defaultScheduler
	}
	return c.scheduler
}

func (c *Context) String() string {
	return fmt.Sprintf("Context(%s)", c.Name())
}

// defaultScheduler is the single process-wide default, submitted to
// synchronously.
var defaultScheduler Scheduler = &DirectScheduler{}

// Background is the Context every chain runs in unless Reschedule moves it
// elsewhere: a direct, synchronous scheduler with no name of its own.
var Background = NewContext("background", defaultScheduler)

// DirectScheduler submits work synchronously on the calling goroutine.
// Submit just calls work(); Continuable always reports true, since
// resuming inline is always safe for a scheduler that never defers; Clone
// is a no-op, since there is nothing to reference-count.
type DirectScheduler struct{}

func (s *DirectScheduler) Submit(ctx *Context, work func()) { work() }

func (s *DirectScheduler) Continuable(ctx *Context) bool { return true }

func (s *DirectScheduler) Clone(ctx *Context) {}

// Reschedule returns a Composable[T, T] that forwards Start/Fail/Stop into
// target, submitting through target's Scheduler when the calling goroutine
// is not already Continuable there, or calling straight through otherwise.
// It is the kernel's only primitive for moving a chain between contexts.
func Reschedule[T any](target *Context) Composable[T, T] {
	return Composable[T, T]{build: func(next Continuation[T]) Continuation[T] {
		return &rescheduleContinuation[T]{target: target, next: next}
	}}
}

type rescheduleContinuation[T any] struct {
	target *Context
	next   Continuation[T]
	fired  fireOnce
}

func (c *rescheduleContinuation[T]) Start(ctx *Context, v T) {
	c.fired.markStart()
	c.submit(func() { c.next.Start(c.target, v) })
}

func (c *rescheduleContinuation[T]) Fail(ctx *Context, err error) {
	c.fired.markFail()
	c.submit(func() { c.next.Fail(c.target, err) })
}

func (c *rescheduleContinuation[T]) Stop(ctx *Context) {
	c.fired.markStop()
	c.submit(func() { c.next.Stop(c.target) })
}

func (c *rescheduleContinuation[T]) Register(ix *Interrupt) {
	c.next.Register(ix)
}

func (c *rescheduleContinuation[T]) submit(work func()) {
	sch := c.target.Scheduler()
	if sch.Continuable(c.target) {
		work()
		return
	}
	trace.Emit("reschedule", trace.Submitted, c.target.Name())
	sch.Submit(c.target, work)
}
