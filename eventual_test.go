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
	"github.com/stretchr/testify/require"
)

func TestJustIgnoresSeedAndStarts(t *testing.T) {
	chain := Just[string, int](7)
	v, err := Run(Background, chain, "anything")
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestRaiseIgnoresSeedAndFails(t *testing.T) {
	chain := Raise[string, int](errBoom)
	_, err := Run(Background, chain, "anything")
	assert.ErrorIs(t, err, errBoom)
}

func TestEventualDefaultsPassThrough(t *testing.T) {
	chain := Eventual[int]().Build()
	v, err := Run(Background, chain, 9)
	require.NoError(t, err)
	assert.Equal(t, 9, v)
}

func TestEventualStartHookCanDeferCompletion(t *testing.T) {
	release := make(chan struct{})
	chain := Eventual[int]().
		Start(func(ctx *Context, ix *Interrupt, k Continuation[int], v int) {
			go func() {
				<-release
				k.Start(ctx, v*10)
			}()
		}).
		Build()

	future, _ := RunWithInterrupt(Background, chain, 4)
	close(release)

	v, err := future.Wait()
	require.NoError(t, err)
	assert.Equal(t, 40, v)
}

func TestEventualFailHookCanRecover(t *testing.T) {
	chain := Eventual[int]().
		Fail(func(ctx *Context, ix *Interrupt, k Continuation[int], err error) {
			k.Start(ctx, -1)
		}).
		Build()

	seeded := Pipe(Raise[int, int](errBoom), chain)
	v, err := Run(Background, seeded, 0)
	require.NoError(t, err)
	assert.Equal(t, -1, v)
}

func TestEventualStartHookPanicBecomesOpaquePanicFail(t *testing.T) {
	chain := Eventual[int]().
		Start(func(ctx *Context, ix *Interrupt, k Continuation[int], v int) {
			panic("boom")
		}).
		Build()

	_, err := Run(Background, chain, 1)

	var op *OpaquePanic
	require.ErrorAs(t, err, &op)
	assert.Equal(t, "boom", op.V())
}

func TestEventualStopHookObservesStop(t *testing.T) {
	var stopped bool
	chain := Eventual[int]().
		Stop(func(ctx *Context, ix *Interrupt, k Continuation[int]) {
			stopped = true
			k.Stop(ctx)
		}).
		Build()

	future, k := Terminate(chain)
	k.Register(NewInterrupt())
	k.Stop(Background)

	_, err := future.Wait()
	assert.ErrorIs(t, err, ErrStopped)
	assert.True(t, stopped)
}
