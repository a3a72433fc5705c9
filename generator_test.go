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

func TestGeneratorStreamBuildsOnFirstCallOnly(t *testing.T) {
	builds := 0
	gen := GeneratorOf(func() TypeErasedStream[int] {
		builds++
		return sliceStream([]int{1, 2, 3})
	})

	assert.False(t, gen.Pinned())
	s := gen.Stream()
	assert.True(t, gen.Pinned())
	assert.Equal(t, 1, builds)

	got, err := collectViaReduce(t, s)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestGeneratorStreamTwicePanics(t *testing.T) {
	gen := GeneratorOf(func() TypeErasedStream[int] { return sliceStream([]int{1}) })
	gen.Stream()
	assert.Panics(t, func() { gen.Stream() })
}
