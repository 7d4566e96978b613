/*
 * Copyright (c) 2018 XLAB d.o.o
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package internal

import (
	"errors"
	"fmt"
)

var malformedStr = "is not of the proper form"

var MalformedCipher = errors.New(fmt.Sprintf("ciphertext %s", malformedStr))
var MalformedPoint = errors.New(fmt.Sprintf("group element encoding %s", malformedStr))
var MalformedScalar = errors.New(fmt.Sprintf("scalar encoding %s", malformedStr))
var MalformedInput = errors.New(fmt.Sprintf("input data %s", malformedStr))

// Error kinds surfaced by the scheme and the discrete logarithm
// solver. All of them are recoverable; callers decide how to react.
var (
	ErrParamOutOfRange   = errors.New("public parameters out of recognized range")
	ErrDimensionMismatch = errors.New("vectors should be of the same dimension")
	ErrIOFailure         = errors.New("dlog table could not be read or written")
	ErrMemoryExhaustion  = errors.New("dlog table too large to allocate")
	ErrOutOfRange        = errors.New("discrete logarithm outside the solvable range")
)
