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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminalDispatchesToTheMatchingCallback(t *testing.T) {
	var started, failed, stopped bool

	newTerm := func() Continuation[int] {
		return Terminal[int]().
			Start(func(ctx *Context, v int) { started = true }).
			Fail(func(ctx *Context, err error) { failed = true }).
			Stop(func(ctx *Context) { stopped = true }).
			Build()
	}

	term := newTerm()
	term.Register(NewInterrupt())
	term.Start(Background, 1)
	assert.True(t, started)
	assert.False(t, failed)
	assert.False(t, stopped)

	started, failed, stopped = false, false, false
	term = newTerm()
	term.Register(NewInterrupt())
	term.Fail(Background, errBoom)
	assert.True(t, failed)

	started, failed, stopped = false, false, false
	term = newTerm()
	term.Register(NewInterrupt())
	term.Stop(Background)
	assert.True(t, stopped)
}

func TestTerminalWithoutCallbacksIsANoOp(t *testing.T) {
	term := Terminal[int]().Build()
	term.Register(NewInterrupt())
	assert.NotPanics(t, func() { term.Start(Background, 1) })
}

func TestTerminalPanicsOnSecondFire(t *testing.T) {
	term := Terminal[int]().Build()
	term.Register(NewInterrupt())
	term.Start(Background, 1)
	assert.PanicsWithValue(t, ErrContinuationReused, func() { term.Fail(Background, errBoom) })
}
