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

	"github.com/yuchen1024/InnerProduct-FE/internal"
)

// msmWindow is the digit width of the bucket method. 4 bits keeps the
// bucket set small enough to pay off already at dimension 2.
const msmWindow = 4

// MultiScalarMult computes sum_i scalars[i]*points[i] with a windowed
// bucket method, processing one digit column of all scalars per round.
// It is substantially faster than a loop of per-point multiplications
// when len(points) is large. Scalars are reduced modulo the group
// order. It returns ErrDimensionMismatch if the slices differ in
// length.
func MultiScalarMult(c Curve, scalars []*big.Int, points []Point) (Point, error) {
	if len(scalars) != len(points) {
		return nil, internal.ErrDimensionMismatch
	}

	res := c.NewPoint()
	if len(points) == 0 {
		return res, nil
	}

	order := c.Order()
	size := c.ScalarLen()
	bufs := make([][]byte, len(scalars))
	for i, s := range scalars {
		bufs[i] = scalarBytes(s, order, size)
	}

	digits := (size*8 + msmWindow - 1) / msmWindow
	buckets := make([]Point, 1<<msmWindow-1)
	acc := c.NewPoint()
	sum := c.NewPoint()

	for d := digits - 1; d >= 0; d-- {
		for k := 0; k < msmWindow; k++ {
			res.Double(res)
		}

		for i := range buckets {
			buckets[i] = nil
		}
		for i, b := range bufs {
			v := windowDigit(b, d)
			if v == 0 {
				continue
			}
			if buckets[v-1] == nil {
				buckets[v-1] = points[i].Clone()
			} else {
				buckets[v-1].Add(buckets[v-1], points[i])
			}
		}

		// Running sum: bucket j is accumulated j+1 times.
		acc = c.NewPoint()
		sum = c.NewPoint()
		for j := len(buckets) - 1; j >= 0; j-- {
			if buckets[j] != nil {
				acc.Add(acc, buckets[j])
			}
			sum.Add(sum, acc)
		}
		res.Add(res, sum)
	}

	return res, nil
}

// windowDigit extracts digit d of width msmWindow from a big-endian
// buffer, counting digits from the least significant bit.
func windowDigit(buf []byte, d int) int {
	v := 0
	for k := 0; k < msmWindow; k++ {
		bit := d*msmWindow + k
		byteIdx := len(buf) - 1 - bit/8
		if byteIdx < 0 {
			break
		}
		v |= int((buf[byteIdx]>>(uint(bit%8)))&1) << uint(k)
	}
	return v
}
