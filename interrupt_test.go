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
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterruptHandlerFiresOnTriggerAfterInstall(t *testing.T) {
	ix := NewInterrupt()
	var fired atomic.Bool
	ix.InstallHandler(func() { fired.Store(true) })

	assert.False(t, fired.Load())
	ix.Trigger()
	assert.True(t, fired.Load())
}

func TestInterruptHandlerFiresImmediatelyWhenInstalledAfterTrigger(t *testing.T) {
	ix := NewInterrupt()
	ix.Trigger()

	var fired atomic.Bool
	ix.InstallHandler(func() { fired.Store(true) })
	assert.True(t, fired.Load())
}

func TestInterruptTriggerIsIdempotent(t *testing.T) {
	ix := NewInterrupt()
	var calls atomic.Int32
	ix.InstallHandler(func() { calls.Add(1) })

	ix.Trigger()
	ix.Trigger()
	ix.Trigger()

	assert.Equal(t, int32(1), calls.Load())
}

func TestInterruptHandlersFireInInstallOrder(t *testing.T) {
	ix := NewInterrupt()
	var order []int
	var mu sync.Mutex

	for i := 0; i < 5; i++ {
		i := i
		ix.InstallHandler(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		})
	}

	ix.Trigger()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestInterruptConcurrentInstallAndTriggerFireEachHandlerOnce(t *testing.T) {
	ix := NewInterrupt()
	const n = 200
	var calls atomic.Int32
	var wg sync.WaitGroup

	wg.Add(n + 1)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			ix.InstallHandler(func() { calls.Add(1) })
		}()
	}
	go func() {
		defer wg.Done()
		ix.Trigger()
	}()
	wg.Wait()

	assert.Equal(t, int32(n), calls.Load())
}

func TestInterruptDyingClosesOnTrigger(t *testing.T) {
	ix := NewInterrupt()
	select {
	case <-ix.Dying():
		t.Fatal("dying channel closed before Trigger")
	default:
	}

	ix.Trigger()
	select {
	case <-ix.Dying():
	default:
		t.Fatal("dying channel did not close after Trigger")
	}
	assert.True(t, ix.Triggered())
}

func TestInterruptInstallHandlerIgnoresNil(t *testing.T) {
	ix := NewInterrupt()
	assert.NotPanics(t, func() { ix.InstallHandler(nil) })
	ix.Trigger()
}
