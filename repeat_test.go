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

func TestRepeatIsAnInfiniteSourceTerminatedExternally(t *testing.T) {
	n := 0
	source := Repeat(func(ctx *Context) (int, bool, error) {
		n++
		return n, true, nil
	})

	first5 := Take(source, 5)
	got, err := collectViaReduce(t, first5)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
}

func TestRepeatReportsEndedWhenFReturnsMoreFalse(t *testing.T) {
	n := 0
	source := Repeat(func(ctx *Context) (int, bool, error) {
		n++
		if n > 3 {
			return 0, false, nil
		}
		return n, true, nil
	})

	got, err := collectViaReduce(t, source)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestRepeatPropagatesFError(t *testing.T) {
	source := Repeat(func(ctx *Context) (int, bool, error) {
		return 0, false, errBoom
	})

	_, err := collectViaReduce(t, source)
	assert.ErrorIs(t, err, errBoom)
}

func TestRepeatFPanicBecomesOpaquePanicFail(t *testing.T) {
	source := Repeat(func(ctx *Context) (int, bool, error) {
		panic("boom")
	})

	_, err := collectViaReduce(t, source)
	var op *OpaquePanic
	require.ErrorAs(t, err, &op)
}
