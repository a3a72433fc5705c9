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

import "github.com/go-eventual/eventual/internal/phase"

// Continuation is the downward half of a chain: whatever sits above a
// Composable calls exactly one of Start, Fail, or Stop on it, exactly
// once, and calls Register first to let it install any cancellation
// handlers it needs before the chain can possibly complete.
type Continuation[T any] interface {
	Start(ctx *Context, value T)
	Fail(ctx *Context, err error)
	Stop(ctx *Context)
	Register(ix *Interrupt)
}

// Composable[In, Out] is a type-changing link in a chain: given the
// Continuation that should receive Out, it builds the Continuation that
// should receive In. A chain is built downstream-first — the terminal is
// built, then each combinator wraps it — which is why build takes "next"
// and returns what sits in front of it, the reverse of the order values
// actually flow at Start/Fail/Stop time.
type Composable[In, Out any] struct {
	build func(next Continuation[Out]) Continuation[In]
}

// Build realizes this Composable against next, yielding the Continuation
// that the previous stage (or the code calling Start/Fail/Stop directly)
// should drive.
func (c Composable[In, Out]) Build(next Continuation[Out]) Continuation[In] {
	return c.build(next)
}

// Pipe composes two Composables into one that runs a then b, changing the
// value type from In to Mid to Out. It is the free-function stand-in for
// the original library's `|` operator: a Go method cannot introduce a type
// parameter beyond its receiver's, so A.Then(b) can't generalize across
// type-changing stages the way Pipe(a, b) can.
func Pipe[In, Mid, Out any](a Composable[In, Mid], b Composable[Mid, Out]) Composable[In, Out] {
	return Composable[In, Out]{build: func(next Continuation[Out]) Continuation[In] {
		return a.build(b.build(next))
	}}
}

// Pipe3 composes three Composables, changing the value type across four
// positions. Pipe4 and Pipe5 follow the same shape for longer chains;
// reach for Pipe repeatedly, left to right, for anything longer still.
func Pipe3[A, B, C, D any](a Composable[A, B], b Composable[B, C], c Composable[C, D]) Composable[A, D] {
	return Pipe(a, Pipe(b, c))
}

func Pipe4[A, B, C, D, E any](a Composable[A, B], b Composable[B, C], c Composable[C, D], d Composable[D, E]) Composable[A, E] {
	return Pipe(a, Pipe3(b, c, d))
}

func Pipe5[A, B, C, D, E, F any](a Composable[A, B], b Composable[B, C], c Composable[C, D], d Composable[D, E], e Composable[E, F]) Composable[A, F] {
	return Pipe(a, Pipe4(b, c, d, e))
}

// fireOnce enforces the single-outcome invariant on a hand-rolled
// Continuation implementation: a second call to any of markStart,
// markFail, or markStop — including a repeat of the same one — panics
// with ErrContinuationReused instead of silently double-delivering.
type fireOnce struct {
	gate phase.Gate
}

func (f *fireOnce) markStart() { f.claim(phase.Start) }
func (f *fireOnce) markFail()  { f.claim(phase.Fail) }
func (f *fireOnce) markStop()  { f.claim(phase.Stop) }

func (f *fireOnce) claim(outcome phase.Outcome) {
	if !f.gate.Claim(outcome) {
		panic(ErrContinuationReused)
	}
}
