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
	"sync/atomic"

	"gopkg.in/tomb.v2"

	"github.com/go-eventual/eventual/internal/trace"
)

// Interrupt is a one-shot, fan-out cancellation signal. It is constructed
// on the stack of whatever drives a chain (Run, a stream's per-run loop)
// and outlives every continuation registered on it. Register hooks install
// a handler on an Interrupt the same way a Flow or Sink in a tomb-backed
// pipeline watches a *tomb.Tomb's Dying channel — here the handler list
// plays that role directly, so a long-running Eventual can also just
// select on Dying() instead of installing a callback.
type Interrupt struct {
	tomb      tomb.Tomb
	triggered atomic.Bool
	head      atomic.Pointer[interruptHandler]
}

type interruptHandler struct {
	fn       func()
	consumed atomic.Bool
	next     *interruptHandler
}

// NewInterrupt returns a fresh, untriggered Interrupt.
func NewInterrupt() *Interrupt {
	return &Interrupt{}
}

// InstallHandler appends h to the handler list atomically. If the
// Interrupt was already triggered, h is invoked immediately, inline, and
// never retained.
func (ix *Interrupt) InstallHandler(h func()) {
	if h == nil {
		return
	}
	if ix.Triggered() {
		h()
		return
	}

	node := &interruptHandler{fn: h}
	for {
		old := ix.head.Load()
		node.next = old
		if ix.head.CompareAndSwap(old, node) {
			break
		}
	}

	// Trigger may have run concurrently with the CAS loop above and
	// already walked past this node (or not seen it at all); claim it
	// here too so it still fires exactly once either way.
	if ix.Triggered() && node.consumed.CompareAndSwap(false, true) {
		node.fn()
	}
}

// Trigger sets the triggered flag, unless it is already set, then invokes
// every installed handler exactly once, in install order. Calls after the
// first return without side effect.
func (ix *Interrupt) Trigger() {
	if !ix.triggered.CompareAndSwap(false, true) {
		return
	}
	trace.Emit("interrupt", trace.InterruptTriggered, "")
	ix.tomb.Kill(ErrStopped)

	// the list is built by prepending, so walking head->nil visits
	// handlers in reverse install order; collect then replay backwards.
	var nodes []*interruptHandler
	for n := ix.head.Load(); n != nil; n = n.next {
		nodes = append(nodes, n)
	}
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if n.consumed.CompareAndSwap(false, true) {
			n.fn()
		}
	}
}

// Triggered reports whether Trigger has been called.
func (ix *Interrupt) Triggered() bool {
	return ix.triggered.Load()
}

// Dying returns a channel closed the moment Trigger is called, for code
// that prefers to select on cancellation rather than install a callback.
func (ix *Interrupt) Dying() <-chan struct{} {
	return ix.tomb.Dying()
}
