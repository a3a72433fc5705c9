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

import "runtime/debug"

// Repeat returns a source TypeErasedStream[T] whose Next() calls f to
// produce the next element: f returns the value, whether there is more
// to come, and an error. A false "more" with a nil error reports Ended;
// a non-nil error reports Fail regardless of "more". Done is a no-op — a
// Repeat source has nothing of its own to release.
func Repeat[T any](f func(ctx *Context) (value T, more bool, err error)) TypeErasedStream[T] {
	return Stream[T]().
		Next(func(ctx *Context, k StreamSink[T]) {
			v, more, err := func() (v T, more bool, err error) {
				defer func() {
					if r := recover(); r != nil {
						err = newOpaquePanic(r, debug.Stack())
					}
				}()
				return f(ctx)
			}()
			if err != nil {
				k.Fail(ctx, err)
				return
			}
			if !more {
				k.Ended(ctx)
				return
			}
			k.Emit(ctx, v)
		}).
		Build()
}
