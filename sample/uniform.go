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

// Package sample provides samplers of random values. All samplers
// draw from crypto/rand, the operating system's cryptographically
// secure source.
package sample

import (
	"crypto/rand"
	"math/big"
)

// Sampler is an interface for instances that sample random values.
type Sampler interface {
	Sample() (*big.Int, error)
}

// UniformRange samples random values from the interval [min, max).
type UniformRange struct {
	min *big.Int
	max *big.Int
}

// NewUniformRange returns an instance of the UniformRange sampler.
// It accepts lower and upper bounds on the sampled values.
func NewUniformRange(min, max *big.Int) *UniformRange {
	return &UniformRange{
		min: min,
		max: max,
	}
}

// Sample samples random values from the interval [min, max).
func (u *UniformRange) Sample() (*big.Int, error) {
	maxMinusMin := new(big.Int).Sub(u.max, u.min)
	res, err := rand.Int(rand.Reader, maxMinusMin)
	if err != nil {
		return nil, err
	}

	res.Add(res, u.min)

	return res, err
}

// NewUniform returns a sampler of random values from [0, max).
func NewUniform(max *big.Int) *UniformRange {
	return NewUniformRange(big.NewInt(0), max)
}

// NewUniformPow2 returns a sampler of random values from [0, 2^bits).
// It is a convenience for message and policy spaces whose size is
// given as a bit length.
func NewUniformPow2(bits int) *UniformRange {
	return NewUniform(new(big.Int).Lsh(big.NewInt(1), uint(bits)))
}

// NewBit returns a sampler of single random bits.
func NewBit() *UniformRange {
	return NewUniform(big.NewInt(2))
}
