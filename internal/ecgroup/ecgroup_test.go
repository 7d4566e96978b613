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

package ecgroup

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yuchen1024/InnerProduct-FE/internal"
)

func testCurveArithmetic(t *testing.T, c Curve) {
	k, err := RandomScalar(c)
	if err != nil {
		t.Fatalf("Error during scalar sampling: %v", err)
	}
	p := c.NewPoint().BaseMult(k)

	// generator is the base of BaseMult
	one := c.NewPoint().BaseMult(big.NewInt(1))
	assert.True(t, c.Generator().Equal(one), "generator should equal 1*g")

	// point serialization round-trip
	b := p.Marshal()
	assert.Equal(t, c.PointLen(), len(b), "point encoding should be fixed-width")
	q := c.NewPoint()
	if err := q.Unmarshal(b); err != nil {
		t.Fatalf("Error during point deserialization: %v", err)
	}
	assert.True(t, q.Equal(p), "point should survive a serialization round-trip")

	// identity serialization round-trip
	id := c.NewPoint()
	b = id.Marshal()
	assert.Equal(t, c.PointLen(), len(b), "identity encoding should be fixed-width")
	q = c.NewPoint().BaseMult(k)
	if err := q.Unmarshal(b); err != nil {
		t.Fatalf("Error during identity deserialization: %v", err)
	}
	assert.True(t, q.Equal(id), "identity should survive a serialization round-trip")

	// p - p = 0 and p + (-p) = 0
	z := c.NewPoint().Sub(p, p)
	assert.True(t, z.Equal(id), "p - p should be the identity")
	neg := c.NewPoint().Neg(p)
	z = c.NewPoint().Add(p, neg)
	assert.True(t, z.Equal(id), "p + (-p) should be the identity")

	// doubling agrees with scalar multiplication by 2
	d := c.NewPoint().Double(p)
	two := c.NewPoint().ScalarMult(p, big.NewInt(2))
	assert.True(t, d.Equal(two), "doubling should agree with 2*p")

	// scalar arithmetic is mod q: (q+5)*p = 5*p
	shifted := c.NewPoint().ScalarMult(p, new(big.Int).Add(c.Order(), big.NewInt(5)))
	five := c.NewPoint().ScalarMult(p, big.NewInt(5))
	assert.True(t, shifted.Equal(five), "scalars should reduce mod the group order")

	// scalar serialization round-trip
	sb := MarshalScalar(c, k)
	assert.Equal(t, c.ScalarLen(), len(sb), "scalar encoding should be fixed-width")
	k2, err := UnmarshalScalar(c, sb)
	if err != nil {
		t.Fatalf("Error during scalar deserialization: %v", err)
	}
	assert.Equal(t, new(big.Int).Mod(k, c.Order()), k2, "scalar should survive a serialization round-trip")

	_, err = UnmarshalScalar(c, sb[:len(sb)-1])
	assert.Error(t, err, "truncated scalar encoding should be rejected")
}

func testMultiScalarMult(t *testing.T, c Curve) {
	n := 6
	scalars := make([]*big.Int, n)
	points := make([]Point, n)
	for i := 0; i < n; i++ {
		k, err := RandomScalar(c)
		if err != nil {
			t.Fatalf("Error during scalar sampling: %v", err)
		}
		scalars[i] = k
		points[i] = c.NewPoint().BaseMult(big.NewInt(int64(i + 2)))
	}
	// exercise the zero scalar path
	scalars[n-1] = big.NewInt(0)

	naive := c.NewPoint()
	for i := 0; i < n; i++ {
		naive.Add(naive, c.NewPoint().ScalarMult(points[i], scalars[i]))
	}

	res, err := MultiScalarMult(c, scalars, points)
	if err != nil {
		t.Fatalf("Error during multi-scalar multiplication: %v", err)
	}
	assert.True(t, res.Equal(naive), "multi-scalar multiplication should agree with the naive sum")

	_, err = MultiScalarMult(c, scalars[:n-1], points)
	assert.ErrorIs(t, err, internal.ErrDimensionMismatch, "mismatched lengths should be rejected")

	empty, err := MultiScalarMult(c, nil, nil)
	if err != nil {
		t.Fatalf("Error during empty multi-scalar multiplication: %v", err)
	}
	assert.True(t, empty.Equal(c.NewPoint()), "empty multi-scalar multiplication should be the identity")
}

func TestECGroup_P256(t *testing.T) {
	testCurveArithmetic(t, P256)
	testMultiScalarMult(t, P256)
}

func TestECGroup_BN256G1(t *testing.T) {
	testCurveArithmetic(t, BN256G1)
	testMultiScalarMult(t, BN256G1)
}
