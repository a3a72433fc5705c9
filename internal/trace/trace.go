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

// Package trace provides the kernel's build-tag-gated diagnostic
// instrumentation, the narrowed, non-generic descendant of
// asmsh-promise's debug.go/debug_enabled.go event log: Emit is a no-op
// unless the eventual_trace build tag is set, so production builds pay
// nothing for it.
package trace

// Event identifies a point of interest in a continuation's lifecycle.
type Event int

const (
	Registered Event = iota
	Submitted
	Start
	Fail
	Stop
	InterruptTriggered
)

func (e Event) String() string {
	switch e {
	case Registered:
		return "registered"
	case Submitted:
		return "submitted"
	case Start:
		return "start"
	case Fail:
		return "fail"
	case Stop:
		return "stop"
	case InterruptTriggered:
		return "interrupt-triggered"
	default:
		return "unknown"
	}
}

var emit = func(component string, ev Event, detail string) {}

// Emit records ev for component, with an optional free-form detail
// string. It is a no-op build without eventual_trace.
func Emit(component string, ev Event, detail string) {
	emit(component, ev, detail)
}
