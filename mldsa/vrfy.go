package mldsa

import (
	"crypto/subtle"

	sha3 "golang.org/x/crypto/sha3"
)

// Verify a signature.
//
//   - pkey is the encoded public key.
//
//   - msg is the signed message.
//
//   - sig is the signature value.
//
//   - ctx is the domain context; it must match the value used by the
//     signer for the signature to be accepted.
//
// Returned value is true if the signature is valid, false otherwise.
// This function never panics or reports errors: any malformed input,
// including a public key or context of invalid length, simply yields
// false.
func Verify(pkey, msg, sig []byte, ctx DomainContext) bool {
	p, ok := paramsForPublicKey(pkey)
	if !ok || len(ctx) > 255 {
		return false
	}
	mp := make([]byte, 0, 2+len(ctx)+len(msg))
	mp = append(mp, 0x00, byte(len(ctx)))
	mp = append(mp, ctx...)
	mp = append(mp, msg...)
	return verify_internal(p, pkey, mp, sig)
}

// Verify a signature on a pre-hashed message (HashML-DSA). Parameters
// are as for Verify, plus ph, the pre-hash function identifier; an
// unsupported ph value yields false.
func HashVerify(pkey, msg, sig []byte, ctx DomainContext, ph PreHash) bool {
	p, ok := paramsForPublicKey(pkey)
	if !ok || len(ctx) > 255 {
		return false
	}
	oid, phm, err := prehash(ph, msg)
	if err != nil {
		return false
	}
	mp := make([]byte, 0, 2+len(ctx)+len(oid)+len(phm))
	mp = append(mp, 0x01, byte(len(ctx)))
	mp = append(mp, ctx...)
	mp = append(mp, oid...)
	mp = append(mp, phm...)
	return verify_internal(p, pkey, mp, sig)
}

// Identify the parameter set from the length of an encoded public key
// (the three sizes are distinct).
func paramsForPublicKey(pkey []byte) (*ParameterSet, bool) {
	switch len(pkey) {
	case MLDSA44.PublicKeySize():
		return MLDSA44, true
	case MLDSA65.PublicKeySize():
		return MLDSA65, true
	case MLDSA87.PublicKeySize():
		return MLDSA87, true
	}
	return nil, false
}

// Inner verification function (FIPS 204 Algorithm 8,
// ML-DSA.Verify_internal). The commitment is recomputed as
// A*z - c*t1*2^d, its high bits corrected with the hint, and the
// resulting challenge compared with the one carried in the signature.
func verify_internal(p *ParameterSet, pkey, mp, sig []byte) bool {
	rho, t1, ok := pk_decode(p, pkey)
	if !ok {
		return false
	}
	ct, z, hv, ok := sig_decode(p, sig)
	if !ok {
		return false
	}
	if vec_norm(z) >= p.gamma1-p.beta {
		return false
	}

	// tr is recomputed from the encoded public key; the signer bound
	// it into mu, so a signature transplanted under another key fails
	// here even if everything else were to match.
	var tr [trSize]byte
	h := sha3.NewShake256()
	h.Write(pkey)
	h.Read(tr[:])

	// mu = H(tr || M', 64)
	var mu [64]byte
	h.Reset()
	h.Write(tr[:])
	h.Write(mp)
	h.Read(mu[:])

	a := expand_a(p, rho)
	c := sample_in_ball(p, ct)
	ch := ntt(c)
	zh := make([]poly, p.ell)
	for i := range z {
		zh[i] = ntt(z[i])
	}

	// w' = invNTT(A*NTT(z) - NTT(c)*NTT(t1*2^d))
	wp := matrix_vector_ntt(a, zh, p.k, p.ell)
	for i := 0; i < p.k; i++ {
		var t poly
		for j := 0; j < n; j++ {
			t[j] = mq_mul(t1[i][j], 1<<d)
		}
		t = ntt(t)
		t = mul_ntt(&ch, &t)
		wp[i] = poly_sub(&wp[i], &t)
		wp[i] = ntt_inverse(wp[i])
	}
	w1p := use_hint_vec(p, hv, wp)

	// c~' = H(mu || w1Encode(w1'), lambda/4)
	ctp := make([]byte, p.lambda/4)
	h.Reset()
	h.Write(mu[:])
	h.Write(w1_encode(p, w1p))
	h.Read(ctp)
	return subtle.ConstantTimeCompare(ct, ctp) == 1
}
