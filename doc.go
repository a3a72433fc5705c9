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

// Package eventual provides a composable, continuation-passing kernel for
// asynchronous computations: chains built from small primitives (Just,
// Raise, Eventual, Then, Catch, If, Finally, Terminal) that deliver
// exactly one of three outcomes — Start (success), Fail (error), or Stop
// (cooperative cancellation) — to whatever sits downstream.
//
// A chain is a Composable[In, Out], built downstream-first with Pipe and
// driven by Run or Terminate; nothing runs until Start is called on the
// built Continuation. Cancellation is cooperative and fans out through an
// Interrupt, a one-shot signal a continuation can install a handler on
// during Register. A Scheduler and Context pair decides where work
// actually executes; DirectScheduler runs it inline, PoolScheduler defers
// it onto a bounded worker pool.
//
// Streams (Stream, Loop, Map, FlatMap, Filter, Take, Head, Reduce,
// Repeat, Generator) are a parallel, pull-based kernel built on the same
// Context and Interrupt: a TypeErasedStream exposes Next and Done to its
// terminal, which drives it to completion.
//
//
// General notes:
//
// * A continuation observes at most one of Start, Fail, or Stop, exactly
// once; a second observation panics with ErrContinuationReused.
//
// * Stop is distinct from Fail: it propagates through every intermediate
// combinator verbatim, and Catch does not intercept it.
//
// * Triggering an Interrupt before a handler installs makes that handler
// fire immediately on install; triggering it after makes Trigger itself
// invoke it. Either way each handler fires at most once.
package eventual
