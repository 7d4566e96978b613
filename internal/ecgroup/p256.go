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
	"bytes"
	"math/big"

	"filippo.io/nistec"

	"github.com/yuchen1024/InnerProduct-FE/internal"
)

// P256 is the NIST P-256 prime-order group. Points serialize to the
// 33-byte compressed SEC1 encoding, except the identity, which is
// padded from its single-byte SEC1 form to a 33-byte zero buffer so
// that all encodings are fixed-width.
var P256 Curve = p256Curve{}

var p256Order, _ = new(big.Int).SetString(
	"ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551", 16)

const (
	p256ScalarLen = 32
	p256PointLen  = 33
)

type p256Curve struct{}

func (p256Curve) Name() string    { return "P-256" }
func (p256Curve) Order() *big.Int { return p256Order }
func (p256Curve) ScalarLen() int  { return p256ScalarLen }
func (p256Curve) PointLen() int   { return p256PointLen }

func (p256Curve) NewPoint() Point {
	return &p256Point{p: nistec.NewP256Point()}
}

func (p256Curve) Generator() Point {
	g := nistec.NewP256Point()
	g.SetGenerator()
	return &p256Point{p: g}
}

type p256Point struct {
	p *nistec.P256Point
}

func (p *p256Point) Set(a Point) Point {
	p.p.Set(a.(*p256Point).p)
	return p
}

func (p *p256Point) Clone() Point {
	q := nistec.NewP256Point()
	q.Set(p.p)
	return &p256Point{p: q}
}

func (p *p256Point) Add(a, b Point) Point {
	p.p.Add(a.(*p256Point).p, b.(*p256Point).p)
	return p
}

func (p *p256Point) Sub(a, b Point) Point {
	t := nistec.NewP256Point()
	negP256(t, b.(*p256Point).p)
	p.p.Add(a.(*p256Point).p, t)
	return p
}

func (p *p256Point) Neg(a Point) Point {
	negP256(p.p, a.(*p256Point).p)
	return p
}

func (p *p256Point) Double(a Point) Point {
	p.p.Double(a.(*p256Point).p)
	return p
}

func (p *p256Point) ScalarMult(a Point, k *big.Int) Point {
	if _, err := p.p.ScalarMult(a.(*p256Point).p, scalarBytes(k, p256Order, p256ScalarLen)); err != nil {
		panic(err)
	}
	return p
}

func (p *p256Point) BaseMult(k *big.Int) Point {
	if _, err := p.p.ScalarBaseMult(scalarBytes(k, p256Order, p256ScalarLen)); err != nil {
		panic(err)
	}
	return p
}

func (p *p256Point) Equal(a Point) bool {
	return bytes.Equal(p.p.BytesCompressed(), a.(*p256Point).p.BytesCompressed())
}

func (p *p256Point) Marshal() []byte {
	b := p.p.BytesCompressed()
	if len(b) == 1 {
		// SEC1 encodes the point at infinity as a lone zero byte;
		// pad it so every encoding is PointLen bytes.
		return make([]byte, p256PointLen)
	}
	return b
}

func (p *p256Point) Unmarshal(data []byte) error {
	if len(data) != p256PointLen {
		return internal.MalformedPoint
	}
	if data[0] == 0 {
		for _, b := range data[1:] {
			if b != 0 {
				return internal.MalformedPoint
			}
		}
		data = data[:1]
	}
	if _, err := p.p.SetBytes(data); err != nil {
		return internal.MalformedPoint
	}
	return nil
}

// negP256 sets r to -a. The nistec API exposes no negation, but on a
// cofactor-1 curve the inverse of a point differs from the point only
// in the sign bit of its compressed encoding.
func negP256(r, a *nistec.P256Point) {
	b := a.BytesCompressed()
	if len(b) == 1 {
		// -0 = 0
		r.Set(a)
		return
	}
	b[0] ^= 0x01 // 0x02 <-> 0x03
	if _, err := r.SetBytes(b); err != nil {
		panic(err)
	}
}
