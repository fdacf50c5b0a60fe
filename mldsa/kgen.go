package mldsa

import (
	"crypto/rand"
	"errors"
	"io"

	sha3 "golang.org/x/crypto/sha3"
)

// Generate a new key pair.
//
//   - rng is the random source to use (nil to use the OS RNG).
//
// Output is the new key pair (public and private keys, both encoded).
// An error is reported only if the random source fails.
func (p *ParameterSet) KeyGen(rng io.Reader) (pkey []byte, skey []byte, err error) {
	if rng == nil {
		rng = rand.Reader
	}
	var seed [SeedSize]byte
	if _, err = io.ReadFull(rng, seed[:]); err != nil {
		return nil, nil, err
	}
	return p.KeyGenInternal(seed[:])
}

// Derive a key pair deterministically from a 32-byte seed
// (FIPS 204 Algorithm 6, ML-DSA.KeyGen_internal). The same seed always
// yields the same encoded key pair. An error is reported if the seed
// does not have exactly 32 bytes.
func (p *ParameterSet) KeyGenInternal(seed []byte) (pkey []byte, skey []byte, err error) {
	if len(seed) != SeedSize {
		return nil, nil, errors.New("invalid seed length")
	}

	// Expand the seed into rho (public), rho' (secret sampling) and
	// K (signing PRF key). The parameter dimensions are bound into
	// the expansion.
	h := sha3.NewShake256()
	h.Write(seed)
	h.Write([]byte{byte(p.k), byte(p.ell)})
	var se [128]byte
	h.Read(se[:])
	rho := se[0:32]
	rhop := se[32:96]
	kk := se[96:128]

	a := expand_a(p, rho)
	s1, s2 := expand_s(p, rhop)

	// t = A*s1 + s2, computed in the NTT domain.
	s1h := make([]poly, p.ell)
	for i := range s1 {
		s1h[i] = ntt(s1[i])
	}
	t := matrix_vector_ntt(a, s1h, p.k, p.ell)
	for i := 0; i < p.k; i++ {
		w := ntt_inverse(t[i])
		t[i] = poly_add(&w, &s2[i])
	}

	// Round t into t1 (published) and t0 (kept in the private key).
	t1 := make([]poly, p.k)
	t0 := make([]poly, p.k)
	for i := 0; i < p.k; i++ {
		for j := 0; j < n; j++ {
			t1[i][j], t0[i][j] = power2round(t[i][j])
		}
	}

	pkey = pk_encode(p, rho, t1)

	// tr = H(pk, 64) is stored in the private key so that signing
	// does not need to re-encode the public key.
	var tr [trSize]byte
	h.Reset()
	h.Write(pkey)
	h.Read(tr[:])

	skey = sk_encode(p, rho, kk, tr[:], s1, s2, t0)
	return pkey, skey, nil
}
