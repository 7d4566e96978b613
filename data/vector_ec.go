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

package data

import (
	"math/big"

	"github.com/yuchen1024/InnerProduct-FE/internal"
	"github.com/yuchen1024/InnerProduct-FE/internal/ecgroup"
)

// VectorEC wraps a slice of elements of a prime-order elliptic curve
// group.
type VectorEC []ecgroup.Point

// NewVectorEC returns a new VectorEC of the given length with all
// elements set to the identity of the group.
func NewVectorEC(c ecgroup.Curve, len int) VectorEC {
	vec := make(VectorEC, len)
	for i := range vec {
		vec[i] = c.NewPoint()
	}

	return vec
}

// Copy creates a new VectorEC with copies of the entries.
func (v VectorEC) Copy() VectorEC {
	newVec := make(VectorEC, len(v))
	for i, p := range v {
		newVec[i] = p.Clone()
	}

	return newVec
}

// Add sums vectors v and other element-wise (v[i] * other[i] in
// multiplicative notation). It returns an error if the vectors have
// different numbers of elements.
func (v VectorEC) Add(other VectorEC) (VectorEC, error) {
	if len(v) != len(other) {
		return nil, internal.ErrDimensionMismatch
	}

	sum := make(VectorEC, len(v))
	for i := range sum {
		sum[i] = v[i].Clone()
		sum[i].Add(sum[i], other[i])
	}

	return sum, nil
}

// MulScalar multiplies every element of v by the scalar x (v[i]^x in
// multiplicative notation). The result is returned in a new VectorEC.
func (v VectorEC) MulScalar(x *big.Int) VectorEC {
	res := make(VectorEC, len(v))
	for i, p := range v {
		res[i] = p.Clone()
		res[i].ScalarMult(p, x)
	}

	return res
}

// Mul multiplies v element-wise by a vector of scalars (v[i]^x[i] in
// multiplicative notation). It returns an error if the vectors have
// different numbers of elements.
func (v VectorEC) Mul(x Vector) (VectorEC, error) {
	if len(v) != len(x) {
		return nil, internal.ErrDimensionMismatch
	}

	res := make(VectorEC, len(v))
	for i, p := range v {
		res[i] = p.Clone()
		res[i].ScalarMult(p, x[i])
	}

	return res, nil
}

// MulSimul computes sum_i x[i]*v[i] as one multi-scalar
// multiplication. It returns an error if the vectors have different
// numbers of elements.
func (v VectorEC) MulSimul(c ecgroup.Curve, x Vector) (ecgroup.Point, error) {
	return ecgroup.MultiScalarMult(c, x, v)
}
