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

// Package ecgroup wraps prime-order elliptic curve groups behind a
// small backend abstraction, so that schemes can be instantiated over
// different curves without touching the scheme code.
//
// Two backends are provided: P256 (NIST P-256, the reference curve)
// and BN256G1 (the G1 group of the BN256 pairing curve). Scalars are
// represented as *big.Int values and reduced modulo the group order
// before use; points are opaque handles whose operations write the
// result into the receiver, following the conventions of the
// underlying curve libraries.
package ecgroup

import (
	"crypto/rand"
	"math/big"

	"github.com/yuchen1024/InnerProduct-FE/internal"
)

// Curve describes a prime-order elliptic curve group.
type Curve interface {
	// Name returns the curve identifier, e.g. "P-256".
	Name() string
	// Order returns the order q of the group. The returned value is
	// shared and must not be modified.
	Order() *big.Int
	// ScalarLen returns the byte length of a serialized scalar.
	ScalarLen() int
	// PointLen returns the byte length of a serialized point.
	PointLen() int
	// NewPoint returns the identity element of the group.
	NewPoint() Point
	// Generator returns a fresh copy of the canonical generator.
	Generator() Point
}

// Point is a handle to a group element. Operations write the result
// into the receiver and return it, so calls can be chained. Arguments
// are only read; a point may appear both as the receiver and as an
// argument.
type Point interface {
	// Set sets the receiver to a.
	Set(a Point) Point
	// Clone returns an independent copy of the point.
	Clone() Point
	// Add sets the receiver to a + b.
	Add(a, b Point) Point
	// Sub sets the receiver to a - b.
	Sub(a, b Point) Point
	// Neg sets the receiver to -a.
	Neg(a Point) Point
	// Double sets the receiver to a + a.
	Double(a Point) Point
	// ScalarMult sets the receiver to k*a. The scalar is reduced
	// modulo the group order.
	ScalarMult(a Point, k *big.Int) Point
	// BaseMult sets the receiver to k*g for the canonical generator g.
	BaseMult(k *big.Int) Point
	// Equal reports whether the receiver and a represent the same
	// group element.
	Equal(a Point) bool
	// Marshal returns the fixed-width serialization of the point. Its
	// length equals Curve.PointLen; the identity serializes to all
	// zero bytes.
	Marshal() []byte
	// Unmarshal sets the point from its fixed-width serialization.
	Unmarshal(data []byte) error
}

// RandomScalar samples a uniform scalar from [0, q) using crypto/rand.
func RandomScalar(c Curve) (*big.Int, error) {
	return rand.Int(rand.Reader, c.Order())
}

// MarshalScalar returns the fixed-width big-endian serialization of k,
// reduced modulo the group order and left-padded with zeros.
func MarshalScalar(c Curve, k *big.Int) []byte {
	buf := make([]byte, c.ScalarLen())
	new(big.Int).Mod(k, c.Order()).FillBytes(buf)
	return buf
}

// UnmarshalScalar recovers a scalar from its fixed-width serialization.
func UnmarshalScalar(c Curve, data []byte) (*big.Int, error) {
	if len(data) != c.ScalarLen() {
		return nil, internal.MalformedScalar
	}
	return new(big.Int).SetBytes(data), nil
}

// scalarBytes reduces k modulo order and returns it as a fixed-width
// big-endian buffer of the given size.
func scalarBytes(k, order *big.Int, size int) []byte {
	buf := make([]byte, size)
	new(big.Int).Mod(k, order).FillBytes(buf)
	return buf
}
