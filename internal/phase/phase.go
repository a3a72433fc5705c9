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

// Package phase provides the single-claim lock used to enforce the kernel's
// "exactly one of Start, Fail, or Stop" invariant on a continuation. It is
// a narrowed, three-outcome relative of the bit-packed CAS status word that
// asmsh-promise's internal/status package uses to guard a promise's
// fate/state transitions: both use an atomically-swapped word as a
// single-claim lock, but a continuation only ever needs to remember which
// one of three outcomes already fired, not a whole resolution state
// machine.
package phase

import "sync/atomic"

// Outcome identifies which of the three upward calls fired first.
type Outcome uint32

const (
	None Outcome = iota
	Start
	Fail
	Stop
)

func (o Outcome) String() string {
	switch o {
	case Start:
		return "Start"
	case Fail:
		return "Fail"
	case Stop:
		return "Stop"
	default:
		return "None"
	}
}

// Gate is a zero-value-ready, single-claim lock: the first Claim call for
// any outcome wins, every later Claim call for any outcome (including the
// same one) fails. It is safe for concurrent use.
type Gate struct {
	v atomic.Uint32
}

// Claim attempts to record outcome as the gate's fired outcome. It reports
// whether this call is the one that claimed it.
func (g *Gate) Claim(outcome Outcome) bool {
	return g.v.CompareAndSwap(uint32(None), uint32(outcome))
}

// Fired reports the outcome claimed so far, or None if the gate hasn't
// fired yet.
func (g *Gate) Fired() Outcome {
	return Outcome(g.v.Load())
}
