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

import "sync/atomic"

// Task is a type-erased, move-until-started handle around a chain: it can
// be stored in a struct field, passed across an API boundary, or held in a
// slice without committing to when or how many times it will run. The
// original's Task<From, To, Errors, Args...> also erases a phantom,
// compile-time-checked error set and argument list; Go's error interface
// is already the universal error set (any concrete error widens into it
// for free), and Go has no phantom-type builder DSL to erase arguments
// behind, so Task here only erases the chain itself — see SPEC_FULL.md
// for the tradeoff.
//
// A Task is safe to Run exactly once. Running it a second time panics,
// the Go stand-in for the original's compile-time "moved-from" guard,
// enforced here at runtime since Go has no move semantics to check at
// compile time.
type Task[T any] struct {
	pinned atomic.Bool
	chain  Composable[struct{}, T]
}

// TaskOf erects a Task around chain. chain's input type is erased to
// struct{} since a Task's caller never supplies a seed value — only the
// result type, T, is preserved.
func TaskOf[T any](chain Composable[struct{}, T]) *Task[T] {
	return &Task[T]{chain: chain}
}

// TaskSuccess returns a Task that resolves to v immediately on Run,
// without ever touching the scheduler — the erased form of
// Task::Success(v).
func TaskSuccess[T any](v T) *Task[T] {
	return &Task[T]{chain: Just[struct{}, T](v)}
}

// TaskFailure returns a Task that fails with err immediately on Run.
func TaskFailure[T any](err error) *Task[T] {
	return &Task[T]{chain: Raise[struct{}, T](err)}
}

// Run builds the underlying chain on the heap, starts it on ctx, and
// blocks for its result. Calling Run more than once on the same Task
// panics.
func (t *Task[T]) Run(ctx *Context) (T, error) {
	if !t.pinned.CompareAndSwap(false, true) {
		panic("eventual: task run more than once")
	}
	return Run(ctx, t.chain, struct{}{})
}

// RunWithInterrupt is Run's cancellable form, returning the Future and
// the Interrupt driving it instead of blocking. Calling it (or Run) more
// than once on the same Task panics.
func (t *Task[T]) RunWithInterrupt(ctx *Context) (*Future[T], *Interrupt) {
	if !t.pinned.CompareAndSwap(false, true) {
		panic("eventual: task run more than once")
	}
	return RunWithInterrupt(ctx, t.chain, struct{}{})
}

// Pinned reports whether Run (or RunWithInterrupt) has already claimed
// this Task.
func (t *Task[T]) Pinned() bool {
	return t.pinned.Load()
}
