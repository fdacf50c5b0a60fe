package mldsa

import (
	"crypto/rand"
	"errors"
	"io"

	sha3 "golang.org/x/crypto/sha3"
)

// Sign a message.
//
//   - skey is the encoded private key.
//
//   - msg is the message to sign.
//
//   - ctx is the domain context; use DOMAIN_NONE for an empty context.
//
//   - rnd is the 32-byte per-signature random value; use nil to draw it
//     from the OS RNG (the recommended "hedged" mode). An all-zero value
//     may be provided explicitly for fully deterministic signatures.
//
// An error is reported if the private key or rnd has a wrong length, if
// the context exceeds 255 bytes, or if the OS RNG fails.
func Sign(skey, msg []byte, ctx DomainContext, rnd []byte) ([]byte, error) {
	p, err := paramsForPrivateKey(skey)
	if err != nil {
		return nil, err
	}
	if len(ctx) > 255 {
		return nil, errors.New("oversized domain context")
	}
	rnd, err = signing_rnd(rnd)
	if err != nil {
		return nil, err
	}

	// M' = 0x00 || len(ctx) || ctx || msg
	mp := make([]byte, 0, 2+len(ctx)+len(msg))
	mp = append(mp, 0x00, byte(len(ctx)))
	mp = append(mp, ctx...)
	mp = append(mp, msg...)
	sig, _, err := sign_internal(p, skey, mp, rnd)
	return sig, err
}

// Sign a pre-hashed message (HashML-DSA). The message itself is first
// reduced with the designated pre-hash function; the hash function's
// OID is bound into the signed data, so a HashML-DSA signature never
// verifies as a pure ML-DSA signature (and vice versa). Parameters are
// as for Sign, plus ph, the pre-hash function identifier.
func HashSign(skey, msg []byte, ctx DomainContext, ph PreHash, rnd []byte) ([]byte, error) {
	p, err := paramsForPrivateKey(skey)
	if err != nil {
		return nil, err
	}
	if len(ctx) > 255 {
		return nil, errors.New("oversized domain context")
	}
	oid, phm, err := prehash(ph, msg)
	if err != nil {
		return nil, err
	}
	rnd, err = signing_rnd(rnd)
	if err != nil {
		return nil, err
	}

	// M' = 0x01 || len(ctx) || ctx || OID || PH(msg)
	mp := make([]byte, 0, 2+len(ctx)+len(oid)+len(phm))
	mp = append(mp, 0x01, byte(len(ctx)))
	mp = append(mp, ctx...)
	mp = append(mp, oid...)
	mp = append(mp, phm...)
	sig, _, err := sign_internal(p, skey, mp, rnd)
	return sig, err
}

// Identify the parameter set from the length of an encoded private key
// (the three sizes are distinct).
func paramsForPrivateKey(skey []byte) (*ParameterSet, error) {
	switch len(skey) {
	case MLDSA44.PrivateKeySize():
		return MLDSA44, nil
	case MLDSA65.PrivateKeySize():
		return MLDSA65, nil
	case MLDSA87.PrivateKeySize():
		return MLDSA87, nil
	}
	return nil, errors.New("invalid private key length")
}

// Validate or generate the per-signature random value.
func signing_rnd(rnd []byte) ([]byte, error) {
	if rnd == nil {
		rnd = make([]byte, SeedSize)
		if _, err := io.ReadFull(rand.Reader, rnd); err != nil {
			return nil, err
		}
		return rnd, nil
	}
	if len(rnd) != SeedSize {
		return nil, errors.New("invalid signature randomizer length")
	}
	return rnd, nil
}

// Inner signing function (FIPS 204 Algorithm 7, ML-DSA.Sign_internal):
// fully deterministic for a given (sk, M', rnd) triple. The returned
// kappa is the mask counter value of the accepted attempt; callers use
// it only for testing the rejection loop.
func sign_internal(p *ParameterSet, skey, mp, rnd []byte) (sig []byte, kappa int, err error) {
	rho, kk, tr, s1, s2, t0, err := sk_decode(p, skey)
	if err != nil {
		return nil, 0, err
	}

	// The secret vectors are only ever used through NTT-domain
	// products, so transform them once up front.
	s1h := make([]poly, p.ell)
	for i := range s1 {
		s1h[i] = ntt(s1[i])
	}
	s2h := make([]poly, p.k)
	for i := range s2 {
		s2h[i] = ntt(s2[i])
	}
	t0h := make([]poly, p.k)
	for i := range t0 {
		t0h[i] = ntt(t0[i])
	}
	a := expand_a(p, rho)

	// mu = H(tr || M', 64)
	var mu [64]byte
	h := sha3.NewShake256()
	h.Write(tr)
	h.Write(mp)
	h.Read(mu[:])

	// rho'' = H(K || rnd || mu, 64)
	var rhopp [64]byte
	h.Reset()
	h.Write(kk)
	h.Write(rnd)
	h.Write(mu[:])
	h.Read(rhopp[:])

	// Rejection sampling loop. Each attempt consumes ell mask
	// indices; the loop terminates with overwhelming probability
	// after a few iterations (between 4 and 6 attempts on average,
	// depending on the parameter set).
	for kappa = 0; ; kappa += p.ell {
		y := expand_mask(p, rhopp[:], kappa)
		yh := make([]poly, p.ell)
		for i := range y {
			yh[i] = ntt(y[i])
		}
		w := matrix_vector_ntt(a, yh, p.k, p.ell)
		for i := range w {
			w[i] = ntt_inverse(w[i])
		}
		w1 := high_bits(p, w)

		// c~ = H(mu || w1Encode(w1), lambda/4)
		ct := make([]byte, p.lambda/4)
		h.Reset()
		h.Write(mu[:])
		h.Write(w1_encode(p, w1))
		h.Read(ct)
		c := sample_in_ball(p, ct)
		ch := ntt(c)

		// z = y + c*s1; reject if it would leak the secret range.
		z := make([]poly, p.ell)
		for i := 0; i < p.ell; i++ {
			cs1 := ntt_inverse(mul_ntt(&ch, &s1h[i]))
			z[i] = poly_add(&y[i], &cs1)
		}
		if vec_norm(z) >= p.gamma1-p.beta {
			continue
		}

		// Reject if the low bits of w - c*s2 are out of range (the
		// hint mechanism could not absorb the difference).
		r := make([]poly, p.k)
		for i := 0; i < p.k; i++ {
			cs2 := ntt_inverse(mul_ntt(&ch, &s2h[i]))
			r[i] = poly_sub(&w[i], &cs2)
		}
		if vec_norm(low_bits(p, r)) >= p.gamma2-p.beta {
			continue
		}

		// Hint for the verifier to recover the high bits of w from
		// w - c*s2 + c*t0.
		ct0 := make([]poly, p.k)
		mct0 := make([]poly, p.k)
		for i := 0; i < p.k; i++ {
			ct0[i] = ntt_inverse(mul_ntt(&ch, &t0h[i]))
			mct0[i] = poly_neg(&ct0[i])
			r[i] = poly_add(&r[i], &ct0[i])
		}
		hv := make_hint_vec(p, mct0, r)
		if vec_norm(ct0) >= p.gamma2 || vec_weight(hv) > p.omega {
			continue
		}

		return sig_encode(p, ct, z, hv), kappa, nil
	}
}
