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

package dlog

import (
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/yuchen1024/InnerProduct-FE/internal"
	"github.com/yuchen1024/InnerProduct-FE/internal/ecgroup"
)

// solveBatch is how many baby steps a worker takes between polls of
// the shared done flag; it amortizes the atomic load.
const solveBatch = 128

// Solve finds x in [0, 2^dlogLen) with x*g = m, searching the
// baby-step range with the given number of workers. The giant-step
// table is shared read-only; each worker keeps its own point
// temporaries. The first hit stops the peers at their next batch
// boundary; if several workers report hits in the same scan window
// (possible only for group elements outside the honest range), the
// smallest x wins. It returns ErrOutOfRange when the range is
// exhausted without a hit.
func (t *Table) Solve(m ecgroup.Point, threads int) (*big.Int, error) {
	if threads < 1 {
		threads = 1
	}

	var (
		mu   sync.Mutex
		best *big.Int
		done atomic.Bool
		wg   sync.WaitGroup
	)

	chunk := (t.baby + uint64(threads) - 1) / uint64(threads)
	for w := 0; w < threads; w++ {
		start := uint64(w) * chunk
		if start >= t.baby {
			break
		}
		end := start + chunk
		if end > t.baby {
			end = t.baby
		}

		wg.Add(1)
		go func(start, end uint64) {
			defer wg.Done()

			// Per-worker temporaries: the shared table is read-only,
			// everything mutable stays thread-local.
			step := t.curve.NewPoint().Neg(t.g) // g^{-1}
			cur := t.curve.NewPoint().ScalarMult(step, new(big.Int).SetUint64(start))
			cur.Add(cur, m)

			for j := start; j < end; {
				for b := 0; b < solveBatch && j < end; b++ {
					if i, ok := t.idx[string(cur.Marshal())]; ok {
						x := uint64(i)*t.baby + j
						mu.Lock()
						if cand := new(big.Int).SetUint64(x); best == nil || cand.Cmp(best) < 0 {
							best = cand
						}
						mu.Unlock()
						done.Store(true)
						return
					}
					cur.Add(cur, step)
					j++
				}
				if done.Load() {
					return
				}
			}
		}(start, end)
	}
	wg.Wait()

	if best == nil {
		return nil, internal.ErrOutOfRange
	}

	return best, nil
}
