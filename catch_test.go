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
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catchTestErrA struct{ msg string }

func (e *catchTestErrA) Error() string { return e.msg }

type catchTestErrB struct{ msg string }

func (e *catchTestErrB) Error() string { return e.msg }

func TestCatchMatchesInDeclarationOrder(t *testing.T) {
	var order []string
	builder := Raised(Raised(Catch[int](),
		func(ctx *Context, err *catchTestErrA) (int, error) {
			order = append(order, "A")
			return 1, nil
		}),
		func(ctx *Context, err *catchTestErrB) (int, error) {
			order = append(order, "B")
			return 2, nil
		})

	chain := Pipe(Raise[int, int](&catchTestErrA{"a"}), builder.Build())
	v, err := Run(Background, chain, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, []string{"A"}, order)
}

func TestCatchFallsThroughToAll(t *testing.T) {
	builder := Raised(Catch[int](),
		func(ctx *Context, err *catchTestErrA) (int, error) { return 1, nil }).
		All(func(ctx *Context, err error) (int, error) { return 99, nil })

	chain := Pipe(Raise[int, int](errBoom), builder.Build())
	v, err := Run(Background, chain, 0)
	require.NoError(t, err)
	assert.Equal(t, 99, v)
}

func TestCatchUnmatchedErrorPropagatesToNext(t *testing.T) {
	builder := Raised(Catch[int](),
		func(ctx *Context, err *catchTestErrA) (int, error) { return 1, nil })

	chain := Pipe(Raise[int, int](errBoom), builder.Build())
	_, err := Run(Background, chain, 0)
	assert.ErrorIs(t, err, errBoom)
}

func TestCatchMatchesWrappedErrors(t *testing.T) {
	builder := Raised(Catch[int](),
		func(ctx *Context, err *catchTestErrA) (int, error) { return 7, nil })

	wrapped := fmt.Errorf("context: %w", &catchTestErrA{"inner"})
	chain := Pipe(Raise[int, int](wrapped), builder.Build())
	v, err := Run(Background, chain, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestCatchHandlerCanRethrowDifferentError(t *testing.T) {
	builder := Raised(Catch[int](),
		func(ctx *Context, err *catchTestErrA) (int, error) { return 0, errBoom })

	chain := Pipe(Raise[int, int](&catchTestErrA{"a"}), builder.Build())
	_, err := Run(Background, chain, 0)
	assert.ErrorIs(t, err, errBoom)
}

func TestCatchComposeDrivesRecoveredChainIntoNext(t *testing.T) {
	builder := RaisedCompose(Catch[int](),
		func(ctx *Context, err *catchTestErrA) Composable[struct{}, int] {
			return Then(func(ctx *Context, _ struct{}) (int, error) { return 5, nil })
		})

	chain := Pipe(Raise[int, int](&catchTestErrA{"a"}), builder.Build())
	v, err := Run(Background, chain, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}

func TestCatchComposeRecoveredChainCanFail(t *testing.T) {
	builder := RaisedCompose(Catch[int](),
		func(ctx *Context, err *catchTestErrA) Composable[struct{}, int] {
			return Raise[struct{}, int](errBoom)
		})

	chain := Pipe(Raise[int, int](&catchTestErrA{"a"}), builder.Build())
	_, err := Run(Background, chain, 0)
	assert.ErrorIs(t, err, errBoom)
}

func TestCatchComposeUnmatchedFallsThroughToNext(t *testing.T) {
	builder := RaisedCompose(Catch[int](),
		func(ctx *Context, err *catchTestErrB) Composable[struct{}, int] {
			return Then(func(ctx *Context, _ struct{}) (int, error) { return 5, nil })
		})

	chain := Pipe(Raise[int, int](errBoom), builder.Build())
	_, err := Run(Background, chain, 0)
	assert.ErrorIs(t, err, errBoom)
}

func TestCatchHandlerPanicBecomesOpaquePanicFail(t *testing.T) {
	builder := Raised(Catch[int](),
		func(ctx *Context, err *catchTestErrA) (int, error) { panic("boom") })

	chain := Pipe(Raise[int, int](&catchTestErrA{"a"}), builder.Build())
	_, err := Run(Background, chain, 0)

	var op *OpaquePanic
	require.ErrorAs(t, err, &op)
	assert.Equal(t, "boom", op.V())
}

func TestCatchAllHandlerPanicBecomesOpaquePanicFail(t *testing.T) {
	builder := Catch[int]().All(func(ctx *Context, err error) (int, error) { panic("boom") })

	chain := Pipe(Raise[int, int](errBoom), builder.Build())
	_, err := Run(Background, chain, 0)

	var op *OpaquePanic
	require.ErrorAs(t, err, &op)
}

func TestCatchDoesNotInterceptStop(t *testing.T) {
	builder := Catch[int]().All(func(ctx *Context, err error) (int, error) { return 0, nil })

	future, k := Terminate(builder.Build())
	k.Register(NewInterrupt())
	k.Stop(Background)

	_, err := future.Wait()
	assert.True(t, errors.Is(err, ErrStopped))
}
