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

package simple_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yuchen1024/InnerProduct-FE/data"
	"github.com/yuchen1024/InnerProduct-FE/innerprod/simple"
	"github.com/yuchen1024/InnerProduct-FE/internal"
	"github.com/yuchen1024/InnerProduct-FE/internal/ecgroup"
	"github.com/yuchen1024/InnerProduct-FE/sample"
)

func intVector(values ...int64) data.Vector {
	vec := make(data.Vector, len(values))
	for i, v := range values {
		vec[i] = big.NewInt(v)
	}
	return data.NewVector(vec)
}

// newTestScheme sets up and initializes a scheme instance with the
// table cached in a test-scoped directory.
func newTestScheme(t *testing.T, curve ecgroup.Curve, msgLen, dimLen, dlogLen, tuning, threads int) *simple.IPFE {
	t.Helper()

	ipfe, err := simple.NewIPFE(curve, msgLen, dimLen, dlogLen, tuning, threads)
	if err != nil {
		t.Fatalf("Error during scheme creation: %v", err)
	}
	if err := ipfe.Initialize(t.TempDir()); err != nil {
		t.Fatalf("Error during scheme initialization: %v", err)
	}

	return ipfe
}

func testEndToEnd(t *testing.T, ipfe *simple.IPFE, x, y data.Vector, expected *big.Int) {
	t.Helper()

	msk, mpk, err := ipfe.GenerateMasterKeys()
	if err != nil {
		t.Fatalf("Error during master key generation: %v", err)
	}

	fsk, err := ipfe.DeriveKey(msk, y)
	if err != nil {
		t.Fatalf("Error during key derivation: %v", err)
	}

	ct, err := ipfe.Encrypt(x, mpk)
	if err != nil {
		t.Fatalf("Error during encryption: %v", err)
	}

	xy, err := ipfe.Decrypt(ct, fsk)
	if err != nil {
		t.Fatalf("Error during decryption: %v", err)
	}

	assert.Equal(t, expected, xy, "decryption should yield the inner product")
}

func TestIPFE_FixedVectors(t *testing.T) {
	ipfe := newTestScheme(t, ecgroup.P256, 4, 1, 16, 6, 2)

	tests := []struct {
		name     string
		x, y     data.Vector
		expected *big.Int
	}{
		{"small", intVector(3, 5), intVector(2, 7), big.NewInt(41)},
		{"zero message", intVector(0, 0), intVector(15, 15), big.NewInt(0)},
		{"zero policy", intVector(7, 9), intVector(0, 0), big.NewInt(0)},
		{"max components", intVector(15, 15), intVector(15, 15), big.NewInt(450)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			testEndToEnd(t, ipfe, test.x, test.y, test.expected)
		})
	}
}

func TestIPFE_RandomVectors(t *testing.T) {
	msgLen, dimLen := 5, 3
	ipfe := newTestScheme(t, ecgroup.P256, msgLen, dimLen, 16, 7, 4)
	sampler := sample.NewUniformPow2(msgLen)

	x, err := data.NewRandomVector(ipfe.Params.Dim, sampler)
	if err != nil {
		t.Fatalf("Error during random generation: %v", err)
	}
	y, err := data.NewRandomVector(ipfe.Params.Dim, sampler)
	if err != nil {
		t.Fatalf("Error during random generation: %v", err)
	}

	xyCheck, err := x.Dot(y)
	if err != nil {
		t.Fatalf("Error during inner product calculation: %v", err)
	}

	testEndToEnd(t, ipfe, x, y, xyCheck)
}

func TestIPFE_SingleComponent(t *testing.T) {
	// dimLen = 0: vectors of one element
	ipfe := newTestScheme(t, ecgroup.P256, 4, 0, 8, 4, 1)
	testEndToEnd(t, ipfe, intVector(13), intVector(11), big.NewInt(143))
}

func TestIPFE_BinaryMessages(t *testing.T) {
	// msgLen = 1: binary vectors
	ipfe := newTestScheme(t, ecgroup.P256, 1, 2, 8, 3, 2)
	testEndToEnd(t, ipfe, intVector(1, 0, 1, 1), intVector(1, 1, 0, 1), big.NewInt(2))
}

func TestIPFE_BN256(t *testing.T) {
	ipfe := newTestScheme(t, ecgroup.BN256G1, 4, 1, 16, 6, 2)
	testEndToEnd(t, ipfe, intVector(3, 5), intVector(2, 7), big.NewInt(41))
}

func TestIPFE_SetupRejectsParams(t *testing.T) {
	// 2*12 + 10 = 34 > 32
	_, err := simple.NewIPFE(ecgroup.P256, 12, 10, 32, 7, 4)
	assert.ErrorIs(t, err, internal.ErrParamOutOfRange, "violated bound constraint should be rejected")

	_, err = simple.NewIPFE(ecgroup.P256, 0, 1, 16, 6, 2)
	assert.ErrorIs(t, err, internal.ErrParamOutOfRange, "empty message space should be rejected")

	_, err = simple.NewIPFE(ecgroup.P256, 4, 1, 16, 9, 2)
	assert.ErrorIs(t, err, internal.ErrParamOutOfRange, "tuning above dlogLen/2 should be rejected")

	_, err = simple.NewIPFE(ecgroup.P256, 4, 1, 16, 6, 0)
	assert.ErrorIs(t, err, internal.ErrParamOutOfRange, "thread count below 1 should be rejected")
}

func TestIPFE_DimensionMismatch(t *testing.T) {
	ipfe := newTestScheme(t, ecgroup.P256, 4, 1, 16, 6, 2)

	msk, mpk, err := ipfe.GenerateMasterKeys()
	if err != nil {
		t.Fatalf("Error during master key generation: %v", err)
	}

	_, err = ipfe.DeriveKey(msk, intVector(1))
	assert.ErrorIs(t, err, internal.ErrDimensionMismatch, "short policy should be rejected")

	_, err = ipfe.Encrypt(intVector(1, 2, 3), mpk)
	assert.ErrorIs(t, err, internal.ErrDimensionMismatch, "long message should be rejected")

	fsk, err := ipfe.DeriveKey(msk, intVector(2, 7))
	if err != nil {
		t.Fatalf("Error during key derivation: %v", err)
	}
	ct, err := ipfe.Encrypt(intVector(3, 5), mpk)
	if err != nil {
		t.Fatalf("Error during encryption: %v", err)
	}

	shortFsk := &simple.FSK{Policy: fsk.Policy[:1], SK: fsk.SK}
	_, err = ipfe.Decrypt(ct, shortFsk)
	assert.ErrorIs(t, err, internal.ErrDimensionMismatch, "short key should be rejected")
}

func TestIPFE_MessageBound(t *testing.T) {
	ipfe := newTestScheme(t, ecgroup.P256, 4, 1, 16, 6, 2)

	_, mpk, err := ipfe.GenerateMasterKeys()
	if err != nil {
		t.Fatalf("Error during master key generation: %v", err)
	}

	_, err = ipfe.Encrypt(intVector(16, 0), mpk)
	assert.Error(t, err, "message component at the bound should be rejected")
}

func TestIPFE_KeyLinearity(t *testing.T) {
	ipfe := newTestScheme(t, ecgroup.P256, 4, 1, 16, 6, 2)

	msk, _, err := ipfe.GenerateMasterKeys()
	if err != nil {
		t.Fatalf("Error during master key generation: %v", err)
	}

	y := intVector(2, 7)
	fsk, err := ipfe.DeriveKey(msk, y)
	if err != nil {
		t.Fatalf("Error during key derivation: %v", err)
	}

	check, err := msk.Dot(y)
	if err != nil {
		t.Fatalf("Error during inner product calculation: %v", err)
	}
	check.Mod(check, ipfe.Params.Curve.Order())

	assert.Equal(t, check, fsk.SK, "functional key should be <msk, y> mod q")
	assert.Equal(t, y, fsk.Policy, "functional key should carry a copy of the policy")
}

func TestIPFE_RandomnessIndependence(t *testing.T) {
	ipfe := newTestScheme(t, ecgroup.P256, 4, 1, 16, 6, 2)

	msk, mpk, err := ipfe.GenerateMasterKeys()
	if err != nil {
		t.Fatalf("Error during master key generation: %v", err)
	}
	fsk, err := ipfe.DeriveKey(msk, intVector(2, 7))
	if err != nil {
		t.Fatalf("Error during key derivation: %v", err)
	}

	x := intVector(3, 5)
	ct1, err := ipfe.Encrypt(x, mpk)
	if err != nil {
		t.Fatalf("Error during encryption: %v", err)
	}
	ct2, err := ipfe.Encrypt(x, mpk)
	if err != nil {
		t.Fatalf("Error during encryption: %v", err)
	}

	assert.False(t, ct1.X.Equal(ct2.X), "two encryptions should use different randomness")

	xy1, err := ipfe.Decrypt(ct1, fsk)
	if err != nil {
		t.Fatalf("Error during decryption: %v", err)
	}
	xy2, err := ipfe.Decrypt(ct2, fsk)
	if err != nil {
		t.Fatalf("Error during decryption: %v", err)
	}
	assert.Equal(t, xy1, xy2, "both ciphertexts should decrypt to the same value")
}

func TestIPFE_CiphertextSerialization(t *testing.T) {
	ipfe := newTestScheme(t, ecgroup.P256, 4, 1, 16, 6, 2)

	msk, mpk, err := ipfe.GenerateMasterKeys()
	if err != nil {
		t.Fatalf("Error during master key generation: %v", err)
	}
	fsk, err := ipfe.DeriveKey(msk, intVector(2, 7))
	if err != nil {
		t.Fatalf("Error during key derivation: %v", err)
	}
	ct, err := ipfe.Encrypt(intVector(3, 5), mpk)
	if err != nil {
		t.Fatalf("Error during encryption: %v", err)
	}

	raw := ct.Serialize()
	pointLen := ipfe.Params.Curve.PointLen()
	assert.Equal(t, (ipfe.Params.Dim+1)*pointLen, len(raw), "wire format should be 1+dim fixed-width points")

	restored, err := ipfe.DeserializeCiphertext(raw)
	if err != nil {
		t.Fatalf("Error during ciphertext deserialization: %v", err)
	}

	xy, err := ipfe.Decrypt(restored, fsk)
	if err != nil {
		t.Fatalf("Error during decryption of a restored ciphertext: %v", err)
	}
	assert.Equal(t, big.NewInt(41), xy, "restored ciphertext should decrypt correctly")

	_, err = ipfe.DeserializeCiphertext(raw[:len(raw)-1])
	assert.ErrorIs(t, err, internal.MalformedCipher, "truncated ciphertext should be rejected")
}

func TestIPFE_InitializeIdempotent(t *testing.T) {
	ipfe, err := simple.NewIPFE(ecgroup.P256, 4, 1, 16, 6, 2)
	if err != nil {
		t.Fatalf("Error during scheme creation: %v", err)
	}

	dir := t.TempDir()
	if err := ipfe.Initialize(dir); err != nil {
		t.Fatalf("Error during initialization: %v", err)
	}
	if err := ipfe.Initialize(dir); err != nil {
		t.Fatalf("Error during repeated initialization: %v", err)
	}

	testEndToEnd(t, ipfe, intVector(3, 5), intVector(2, 7), big.NewInt(41))
}

func TestIPFE_DecryptBeforeInitialize(t *testing.T) {
	ipfe, err := simple.NewIPFE(ecgroup.P256, 4, 1, 16, 6, 2)
	if err != nil {
		t.Fatalf("Error during scheme creation: %v", err)
	}

	msk, mpk, err := ipfe.GenerateMasterKeys()
	if err != nil {
		t.Fatalf("Error during master key generation: %v", err)
	}
	fsk, err := ipfe.DeriveKey(msk, intVector(2, 7))
	if err != nil {
		t.Fatalf("Error during key derivation: %v", err)
	}
	ct, err := ipfe.Encrypt(intVector(3, 5), mpk)
	if err != nil {
		t.Fatalf("Error during encryption: %v", err)
	}

	_, err = ipfe.Decrypt(ct, fsk)
	assert.Error(t, err, "decryption before initialization should fail")
}
