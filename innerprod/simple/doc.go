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

// Package simple implements the inner product scheme of Abdalla,
// Bourse, De Caro and Pointcheval (see
// https://eprint.iacr.org/2015/017.pdf), instantiated over a
// prime-order elliptic curve group under the decisional
// Diffie-Hellman assumption. The scheme offers selective security
// under chosen-plaintext attacks (s-IND-CPA security).
//
// The scheme is public key: encryption needs only the master public
// key. Decryption recovers g^<x, y> and extracts the integer inner
// product with a parallel Shanks baby-step giant-step solver whose
// giant-step table is precomputed once and cached on disk.
package simple
