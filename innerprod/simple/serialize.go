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

package simple

import (
	"github.com/yuchen1024/InnerProduct-FE/data"
	"github.com/yuchen1024/InnerProduct-FE/internal"
)

// Serialize returns the binary form of the ciphertext: the point X
// followed by the points of Y, each in the curve's fixed-width
// encoding, with no length prefix. The dimension is recovered from
// the scheme parameters on deserialization.
func (ct *Ciphertext) Serialize() []byte {
	out := make([]byte, 0, (len(ct.Y)+1)*len(ct.X.Marshal()))
	out = append(out, ct.X.Marshal()...)
	for _, y := range ct.Y {
		out = append(out, y.Marshal()...)
	}

	return out
}

// DeserializeCiphertext recovers a ciphertext of this scheme instance
// from its binary form. It returns MalformedCipher if the input is
// not exactly 1 + Dim fixed-width point encodings.
func (f *IPFE) DeserializeCiphertext(b []byte) (*Ciphertext, error) {
	pointLen := f.Params.Curve.PointLen()
	if len(b) != (f.Params.Dim+1)*pointLen {
		return nil, internal.MalformedCipher
	}

	ct := &Ciphertext{
		X: f.Params.Curve.NewPoint(),
		Y: make(data.VectorEC, f.Params.Dim),
	}
	if err := ct.X.Unmarshal(b[:pointLen]); err != nil {
		return nil, internal.MalformedCipher
	}
	for i := 0; i < f.Params.Dim; i++ {
		ct.Y[i] = f.Params.Curve.NewPoint()
		off := (i + 1) * pointLen
		if err := ct.Y[i].Unmarshal(b[off : off+pointLen]); err != nil {
			return nil, internal.MalformedCipher
		}
	}

	return ct, nil
}
