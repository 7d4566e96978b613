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

	"github.com/fentec-project/bn256"

	"github.com/yuchen1024/InnerProduct-FE/internal"
)

// BN256G1 is the G1 group of the BN256 pairing curve. It is a second
// backend behind the Curve abstraction; points serialize to the
// library's canonical 64-byte encoding.
var BN256G1 Curve = bn256Curve{}

const bn256ScalarLen = 32

type bn256Curve struct{}

func (bn256Curve) Name() string    { return "BN256-G1" }
func (bn256Curve) Order() *big.Int { return bn256.Order }
func (bn256Curve) ScalarLen() int  { return bn256ScalarLen }
func (bn256Curve) PointLen() int   { return 64 }

func (bn256Curve) NewPoint() Point {
	return &bn256Point{p: new(bn256.G1).ScalarBaseMult(big.NewInt(0))}
}

func (bn256Curve) Generator() Point {
	return &bn256Point{p: new(bn256.G1).ScalarBaseMult(big.NewInt(1))}
}

type bn256Point struct {
	p *bn256.G1
}

func (p *bn256Point) Set(a Point) Point {
	p.p.Set(a.(*bn256Point).p)
	return p
}

func (p *bn256Point) Clone() Point {
	return &bn256Point{p: new(bn256.G1).Set(p.p)}
}

func (p *bn256Point) Add(a, b Point) Point {
	p.p.Add(a.(*bn256Point).p, b.(*bn256Point).p)
	return p
}

func (p *bn256Point) Sub(a, b Point) Point {
	t := new(bn256.G1).Neg(b.(*bn256Point).p)
	p.p.Add(a.(*bn256Point).p, t)
	return p
}

func (p *bn256Point) Neg(a Point) Point {
	p.p.Neg(a.(*bn256Point).p)
	return p
}

func (p *bn256Point) Double(a Point) Point {
	p.p.ScalarMult(a.(*bn256Point).p, big.NewInt(2))
	return p
}

func (p *bn256Point) ScalarMult(a Point, k *big.Int) Point {
	p.p.ScalarMult(a.(*bn256Point).p, new(big.Int).Mod(k, bn256.Order))
	return p
}

func (p *bn256Point) BaseMult(k *big.Int) Point {
	p.p.ScalarBaseMult(new(big.Int).Mod(k, bn256.Order))
	return p
}

func (p *bn256Point) Equal(a Point) bool {
	return bytes.Equal(p.p.Marshal(), a.(*bn256Point).p.Marshal())
}

func (p *bn256Point) Marshal() []byte {
	return p.p.Marshal()
}

func (p *bn256Point) Unmarshal(data []byte) error {
	if len(data) != 64 {
		return internal.MalformedPoint
	}
	if _, err := p.p.Unmarshal(data); err != nil {
		return internal.MalformedPoint
	}
	return nil
}
