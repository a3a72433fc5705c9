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

import "sync/atomic"

// Generator is Task's counterpart for streams: a type-erased, move-until-
// instantiated handle around a stream builder. It can be stored or passed
// around freely; Stream builds the underlying TypeErasedStream exactly
// once, pinning the Generator the same way Run pins a Task.
type Generator[T any] struct {
	pinned atomic.Bool
	build  func() TypeErasedStream[T]
}

// GeneratorOf erects a Generator around build, deferring the call to
// build until Stream is invoked.
func GeneratorOf[T any](build func() TypeErasedStream[T]) *Generator[T] {
	return &Generator[T]{build: build}
}

// Stream instantiates the underlying TypeErasedStream. Calling it more
// than once on the same Generator panics.
func (g *Generator[T]) Stream() TypeErasedStream[T] {
	if !g.pinned.CompareAndSwap(false, true) {
		panic("eventual: generator instantiated more than once")
	}
	return g.build()
}

// Pinned reports whether Stream has already claimed this Generator.
func (g *Generator[T]) Pinned() bool {
	return g.pinned.Load()
}
