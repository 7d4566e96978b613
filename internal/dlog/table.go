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

// Package dlog solves bounded-range discrete logarithms with a
// parallel variant of Shanks' baby-step giant-step method.
//
// The exponent x in [0, 2^dlogLen) is split as x = i*2^(dlogLen-tuning) + j.
// All 2^tuning giant-step points are precomputed once into a hash
// table keyed by their serialization and persisted on disk; queries
// enumerate baby steps in parallel and look each one up in the table.
package dlog

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/zeebo/blake3"

	"github.com/yuchen1024/InnerProduct-FE/internal"
	"github.com/yuchen1024/InnerProduct-FE/internal/ecgroup"
)

// tableMagic identifies the on-disk table format.
var tableMagic = [8]byte{'I', 'P', 'F', 'E', 'D', 'L', 'O', 'G'}

const tableVersion uint16 = 1

// maxTuning bounds the giant-step table at 2^30 entries; beyond that
// the table does not fit the memory model this package assumes.
const maxTuning = 30

// maxDlogLen keeps i*2^(dlogLen-tuning) + j inside a uint64.
const maxDlogLen = 62

// Table holds the precomputed giant-step points of a (curve, g,
// dlogLen, tuning) instance. It is immutable after construction and
// safe to share across goroutines without synchronization.
type Table struct {
	curve   ecgroup.Curve
	g       ecgroup.Point
	dlogLen uint
	tuning  uint
	baby    uint64 // 2^(dlogLen-tuning), the baby-step range
	idx     map[string]uint32
}

// FileName returns the deterministic file name under which the table
// for (curve, g, dlogLen, tuning) is persisted. The parameters are
// hashed into the name so that a changed curve, generator or range can
// never silently reuse a mismatched cache.
func FileName(c ecgroup.Curve, g ecgroup.Point, dlogLen, tuning uint) string {
	h := blake3.New()
	h.Write([]byte(c.Name()))
	h.Write(g.Marshal())
	var params [8]byte
	binary.LittleEndian.PutUint32(params[0:4], uint32(dlogLen))
	binary.LittleEndian.PutUint32(params[4:8], uint32(tuning))
	h.Write(params[:])
	return fmt.Sprintf("ipfe-dlog-%x.table", h.Sum(nil)[:8])
}

// LoadOrBuild returns the table for (curve, g, dlogLen, tuning),
// loading it from dir when a valid cached file exists and building and
// persisting it otherwise. A corrupt or stale file is rebuilt.
func LoadOrBuild(dir string, c ecgroup.Curve, g ecgroup.Point, dlogLen, tuning uint) (*Table, error) {
	if dlogLen == 0 || dlogLen > maxDlogLen || tuning > dlogLen/2 {
		return nil, internal.ErrParamOutOfRange
	}
	if tuning > maxTuning {
		return nil, internal.ErrMemoryExhaustion
	}

	t := &Table{
		curve:   c,
		g:       g.Clone(),
		dlogLen: dlogLen,
		tuning:  tuning,
		baby:    uint64(1) << (dlogLen - tuning),
	}

	path := filepath.Join(dir, FileName(c, g, dlogLen, tuning))
	if _, err := os.Stat(path); err == nil {
		if err := t.load(path); err == nil {
			return t, nil
		}
		// Unreadable or stale content behind a matching name; fall
		// through and rebuild it.
	}

	enc := t.build()
	if err := t.write(path, enc); err != nil {
		return nil, err
	}

	return t, nil
}

// build fills the giant-step index and returns the point encodings in
// index order for persistence.
func (t *Table) build() [][]byte {
	count := uint64(1) << t.tuning
	giant := t.curve.NewPoint().ScalarMult(t.g, new(big.Int).Lsh(big.NewInt(1), t.dlogLen-t.tuning))

	enc := make([][]byte, count)
	t.idx = make(map[string]uint32, count)

	cur := t.curve.NewPoint() // g^0
	for i := uint64(0); i < count; i++ {
		b := cur.Marshal()
		enc[i] = b
		t.idx[string(b)] = uint32(i)
		cur.Add(cur, giant)
	}

	return enc
}

func (t *Table) write(path string, enc [][]byte) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithMessagef(internal.ErrIOFailure, "creating %s: %v", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	name := []byte(t.curve.Name())
	header := []interface{}{
		tableMagic,
		tableVersion,
		uint16(len(name)),
	}
	for _, v := range header {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return errors.WithMessagef(internal.ErrIOFailure, "writing %s: %v", path, err)
		}
	}
	if _, err := w.Write(name); err != nil {
		return errors.WithMessagef(internal.ErrIOFailure, "writing %s: %v", path, err)
	}
	tail := []interface{}{
		uint32(t.dlogLen),
		uint32(t.tuning),
		uint32(t.curve.PointLen()),
		uint32(len(enc)),
	}
	for _, v := range tail {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return errors.WithMessagef(internal.ErrIOFailure, "writing %s: %v", path, err)
		}
	}
	for _, b := range enc {
		if _, err := w.Write(b); err != nil {
			return errors.WithMessagef(internal.ErrIOFailure, "writing %s: %v", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return errors.WithMessagef(internal.ErrIOFailure, "writing %s: %v", path, err)
	}

	return nil
}

func (t *Table) load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.WithMessagef(internal.ErrIOFailure, "opening %s: %v", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var magic [8]byte
	var version, nameLen uint16
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return errors.WithMessagef(internal.ErrIOFailure, "reading %s: %v", path, err)
	}
	if magic != tableMagic {
		return internal.ErrIOFailure
	}
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil || version != tableVersion {
		return internal.ErrIOFailure
	}
	if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
		return internal.ErrIOFailure
	}
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(r, name); err != nil || string(name) != t.curve.Name() {
		return internal.ErrIOFailure
	}

	var dlogLen, tuning, pointLen, count uint32
	for _, v := range []*uint32{&dlogLen, &tuning, &pointLen, &count} {
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			return internal.ErrIOFailure
		}
	}
	if uint(dlogLen) != t.dlogLen || uint(tuning) != t.tuning ||
		int(pointLen) != t.curve.PointLen() || uint64(count) != uint64(1)<<t.tuning {
		return internal.ErrIOFailure
	}

	t.idx = make(map[string]uint32, count)
	buf := make([]byte, pointLen)
	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return errors.WithMessagef(internal.ErrIOFailure, "reading %s: %v", path, err)
		}
		t.idx[string(buf)] = i
	}

	return nil
}
