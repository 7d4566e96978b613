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
	"fmt"
	"math/big"
	"sync"

	"github.com/pkg/errors"

	"github.com/yuchen1024/InnerProduct-FE/data"
	"github.com/yuchen1024/InnerProduct-FE/internal"
	"github.com/yuchen1024/InnerProduct-FE/internal/dlog"
	"github.com/yuchen1024/InnerProduct-FE/internal/ecgroup"
	"github.com/yuchen1024/InnerProduct-FE/sample"
)

// IPFEParams represents configuration parameters for the IPFE scheme
// instance.
type IPFEParams struct {
	// MsgLen is the bit length of the per-component message bound;
	// every component of a message or policy vector lies in
	// [0, 2^MsgLen).
	MsgLen int
	// DimLen is the bit length of the vector dimension.
	DimLen int
	// Dim = 2^DimLen is the length of message and policy vectors.
	Dim int
	// DlogLen is the bit length of the recoverable inner product
	// range; decryption can extract values in [0, 2^DlogLen).
	DlogLen int
	// Tuning selects the giant-step/baby-step split of the solver in
	// [0, DlogLen/2]; a larger value trades a larger precomputed
	// table for faster decryption.
	Tuning int
	// Threads is the worker parallelism of decryption.
	Threads int
	// Curve is the prime-order group the scheme operates in.
	Curve ecgroup.Curve
	// G is the scheme's generator, a copy of the curve's canonical
	// generator.
	G ecgroup.Point
	// Bound = 2^MsgLen, the exclusive per-component bound.
	Bound *big.Int
}

func (p *IPFEParams) String() string {
	return fmt.Sprintf("IPFEParams{curve: %s, msgLen: %d, dim: %d, dlogLen: %d, tuning: %d, threads: %d}",
		p.Curve.Name(), p.MsgLen, p.Dim, p.DlogLen, p.Tuning, p.Threads)
}

// IPFE represents a scheme instantiated from the DDH assumption over
// a prime-order elliptic curve group, based on the construction by
// Abdalla, Bourse, De Caro, and Pointcheval:
// "Simple Functional Encryption Schemes for Inner Products".
type IPFE struct {
	Params *IPFEParams

	mu    sync.Mutex
	table *dlog.Table
}

// FSK is a functional secret key: it reveals of a ciphertext exactly
// the inner product of the encrypted vector with Policy.
type FSK struct {
	// Policy is a copy of the vector y the key was derived for.
	Policy data.Vector
	// SK = <msk, y> mod q.
	SK *big.Int
}

// Ciphertext is an encryption of a message vector x:
// X = r*g and Y[i] = r*mpk[i] + x[i]*g for a fresh random r.
type Ciphertext struct {
	X ecgroup.Point
	Y data.VectorEC
}

func (ct *Ciphertext) String() string {
	return fmt.Sprintf("Ciphertext{X: %x, dim: %d}", ct.X.Marshal(), len(ct.Y))
}

// NewIPFE configures a new instance of the scheme over the given
// curve. It accepts the bit length of the per-component message
// bound, the bit length of the vector dimension, the bit length of
// the solvable inner product range, the solver tuning parameter, and
// the decryption thread count.
//
// It returns ErrParamOutOfRange unless
// dimLen + 2*msgLen <= dlogLen, msgLen >= 1, dimLen >= 0,
// 0 <= tuning <= dlogLen/2 and threads >= 1. The bound constraint
// guarantees that every honest inner product lies in the solvable
// range.
func NewIPFE(curve ecgroup.Curve, msgLen, dimLen, dlogLen, tuning, threads int) (*IPFE, error) {
	if msgLen < 1 || dimLen < 0 || threads < 1 {
		return nil, internal.ErrParamOutOfRange
	}
	if dimLen+2*msgLen > dlogLen {
		return nil, internal.ErrParamOutOfRange
	}
	if tuning < 0 || tuning > dlogLen/2 {
		return nil, internal.ErrParamOutOfRange
	}

	return &IPFE{
		Params: &IPFEParams{
			MsgLen:  msgLen,
			DimLen:  dimLen,
			Dim:     1 << uint(dimLen),
			DlogLen: dlogLen,
			Tuning:  tuning,
			Threads: threads,
			Curve:   curve,
			G:       curve.Generator(),
			Bound:   new(big.Int).Lsh(big.NewInt(1), uint(msgLen)),
		},
	}, nil
}

// NewIPFEFromParams takes configuration parameters of an existing
// IPFE scheme instance, and reconstructs the scheme with the same
// configuration parameters. It returns a new IPFE instance.
func NewIPFEFromParams(params *IPFEParams) *IPFE {
	return &IPFE{
		Params: params,
	}
}

// Initialize ensures the solver's giant-step table exists on disk in
// dir, building and persisting it on first use, and loads it into
// memory. It must be called before Decrypt. Repeated calls are no-ops
// once the table is loaded, so a loaded table is never swapped while
// decryptions are running.
func (f *IPFE) Initialize(dir string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.table != nil {
		return nil
	}

	table, err := dlog.LoadOrBuild(dir, f.Params.Curve, f.Params.G,
		uint(f.Params.DlogLen), uint(f.Params.Tuning))
	if err != nil {
		return err
	}
	f.table = table

	return nil
}

// GenerateMasterKeys generates a pair of master secret key and master
// public key for the scheme: msk[i] is uniform over [0, q) and
// mpk[i] = msk[i]*g. It returns an error in case master keys could
// not be generated.
func (f *IPFE) GenerateMasterKeys() (data.Vector, data.VectorEC, error) {
	sampler := sample.NewUniform(f.Params.Curve.Order())
	masterSecKey, err := data.NewRandomVector(f.Params.Dim, sampler)
	if err != nil {
		return nil, nil, err
	}

	masterPubKey := make(data.VectorEC, f.Params.Dim)
	for i := 0; i < f.Params.Dim; i++ {
		masterPubKey[i] = f.Params.Curve.NewPoint().BaseMult(masterSecKey[i])
	}

	return masterSecKey, masterPubKey, nil
}

// DeriveKey takes the master secret key and a policy vector y, and
// returns the functional secret key for y, holding a copy of the
// policy and SK = <msk, y> mod q. In case the key could not be
// derived, it returns an error.
func (f *IPFE) DeriveKey(masterSecKey, y data.Vector) (*FSK, error) {
	if len(y) != f.Params.Dim || len(masterSecKey) != f.Params.Dim {
		return nil, internal.ErrDimensionMismatch
	}
	if err := y.CheckBound(f.Params.Bound); err != nil {
		return nil, err
	}

	sk, err := masterSecKey.Dot(y)
	if err != nil {
		return nil, err
	}

	return &FSK{
		Policy: y.Copy(),
		SK:     sk.Mod(sk, f.Params.Curve.Order()),
	}, nil
}

// Encrypt encrypts input vector x with the provided master public
// key: X = r*g and Y[i] = r*mpk[i] + x[i]*g for a fresh uniform r,
// which is wiped after use. Each Y[i] is one two-base multi-scalar
// multiplication. It returns a ciphertext, or an error if encryption
// failed.
func (f *IPFE) Encrypt(x data.Vector, masterPubKey data.VectorEC) (*Ciphertext, error) {
	if len(x) != f.Params.Dim || len(masterPubKey) != f.Params.Dim {
		return nil, internal.ErrDimensionMismatch
	}
	if err := x.CheckBound(f.Params.Bound); err != nil {
		return nil, err
	}

	r, err := ecgroup.RandomScalar(f.Params.Curve)
	if err != nil {
		return nil, err
	}
	defer r.SetInt64(0)

	ct := &Ciphertext{
		X: f.Params.Curve.NewPoint().BaseMult(r),
		Y: make(data.VectorEC, f.Params.Dim),
	}
	for i := 0; i < f.Params.Dim; i++ {
		yi, err := ecgroup.MultiScalarMult(f.Params.Curve,
			[]*big.Int{x[i], r},
			[]ecgroup.Point{f.Params.G, masterPubKey[i]})
		if err != nil {
			return nil, err
		}
		ct.Y[i] = yi
	}

	return ct, nil
}

// Decrypt takes a ciphertext and a functional secret key, and returns
// the inner product of the encrypted vector with the key's policy.
// It computes M = sum_i policy[i]*Y[i] - SK*X, which by construction
// equals <x, y>*g, and extracts the integer with the solver.
//
// It returns ErrOutOfRange if the discrete logarithm of M does not
// lie in [0, 2^DlogLen); for honest inputs respecting the parameter
// bounds this cannot occur.
func (f *IPFE) Decrypt(ct *Ciphertext, fsk *FSK) (*big.Int, error) {
	if len(ct.Y) != f.Params.Dim || len(fsk.Policy) != f.Params.Dim {
		return nil, internal.ErrDimensionMismatch
	}

	f.mu.Lock()
	table := f.table
	f.mu.Unlock()
	if table == nil {
		return nil, errors.New("scheme is not initialized, call Initialize first")
	}

	m, err := ct.Y.MulSimul(f.Params.Curve, fsk.Policy)
	if err != nil {
		return nil, err
	}

	t := f.Params.Curve.NewPoint().ScalarMult(ct.X, fsk.SK)
	m.Sub(m, t)

	return table.Solve(m, f.Params.Threads)
}
