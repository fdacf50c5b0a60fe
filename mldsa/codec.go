package mldsa

import (
	"errors"
)

// Byte-level codecs (FIPS 204 Algorithms 16 to 28). All bit packing is
// little-endian within the accumulated stream, per the standard; every
// encode/decode pair is byte-exact, since the encoded forms are the
// interoperability contract.

// Number of bits in the binary representation of x.
func bitlen(x uint32) int {
	c := 0
	for x != 0 {
		x >>= 1
		c++
	}
	return c
}

// Pack the coefficients of f, each of value at most b, using
// bitlen(b) bits per coefficient (FIPS 204 Algorithm 16). The
// destination MUST have room for 32*bitlen(b) bytes; the number of
// written bytes is returned.
func simple_bit_pack(f *poly, b uint32, dst []byte) int {
	nbits := bitlen(b)
	acc := uint64(0)
	acc_len := 0
	j := 0
	for i := 0; i < n; i++ {
		acc |= uint64(f[i]) << acc_len
		acc_len += nbits
		for acc_len >= 8 {
			dst[j] = uint8(acc)
			acc >>= 8
			acc_len -= 8
			j++
		}
	}
	return j
}

// Decode a polynomial packed with simple_bit_pack (FIPS 204 Algorithm
// 18). The source MUST contain at least 32*bitlen(b) bytes.
func simple_bit_unpack(src []byte, b uint32) poly {
	nbits := bitlen(b)
	mask := (uint64(1) << nbits) - 1
	var f poly
	acc := uint64(0)
	acc_len := 0
	j := 0
	for i := 0; i < n; i++ {
		for acc_len < nbits {
			acc |= uint64(src[j]) << acc_len
			acc_len += 8
			j++
		}
		f[i] = uint32(acc & mask)
		acc >>= nbits
		acc_len -= nbits
	}
	return f
}

// Pack the coefficients of f, whose centered representatives lie in
// [-a,+b], using bitlen(a+b) bits per coefficient; the stored value is
// b minus the centered coefficient (FIPS 204 Algorithm 17). The number
// of written bytes is returned.
func bit_pack(f *poly, a, b uint32, dst []byte) int {
	nbits := bitlen(a + b)
	acc := uint64(0)
	acc_len := 0
	j := 0
	for i := 0; i < n; i++ {
		v := int32(b) - mq_center(f[i])
		acc |= uint64(uint32(v)) << acc_len
		acc_len += nbits
		for acc_len >= 8 {
			dst[j] = uint8(acc)
			acc >>= 8
			acc_len -= 8
			j++
		}
	}
	return j
}

// Decode a polynomial packed with bit_pack (FIPS 204 Algorithm 19).
// The decoded coefficients are reduced into the [0,q-1] range.
func bit_unpack(src []byte, a, b uint32) poly {
	nbits := bitlen(a + b)
	mask := (uint64(1) << nbits) - 1
	var f poly
	acc := uint64(0)
	acc_len := 0
	j := 0
	for i := 0; i < n; i++ {
		for acc_len < nbits {
			acc |= uint64(src[j]) << acc_len
			acc_len += 8
			j++
		}
		v := int32(b) - int32(acc&mask)
		acc >>= nbits
		acc_len -= nbits
		if v < 0 {
			v += q
		}
		f[i] = uint32(v)
	}
	return f
}

// Pack the hint vector h (k ring elements with 0/1 coefficients, total
// weight at most omega) into its sparse positional encoding: the
// indices of the nonzero coefficients of each element in order, then k
// cumulative offsets (FIPS 204 Algorithm 20). The destination MUST
// have omega+k bytes and be zero-filled.
func hint_bit_pack(h []poly, omega int, dst []byte) {
	idx := 0
	for i := range h {
		for j := 0; j < n; j++ {
			if h[i][j] != 0 {
				dst[idx] = byte(j)
				idx++
			}
		}
		dst[omega+i] = byte(idx)
	}
}

// Decode a packed hint vector. A malformed encoding is a hard decode
// failure, not a zero-fill: false is returned if an offset exceeds
// omega or decreases, if the indices within an element are not
// strictly increasing, or if any unused index byte is nonzero
// (FIPS 204 Algorithm 21).
func hint_bit_unpack(src []byte, k, omega int) ([]poly, bool) {
	h := make([]poly, k)
	idx := 0
	for i := 0; i < k; i++ {
		limit := int(src[omega+i])
		if limit < idx || limit > omega {
			return nil, false
		}
		first := idx
		for idx < limit {
			if idx > first && src[idx-1] >= src[idx] {
				return nil, false
			}
			h[i][src[idx]] = 1
			idx++
		}
	}
	for ; idx < omega; idx++ {
		if src[idx] != 0 {
			return nil, false
		}
	}
	return h, true
}

// Encode a public key: rho followed by the k elements of t1, 10 bits
// per coefficient (FIPS 204 Algorithm 22).
func pk_encode(p *ParameterSet, rho []byte, t1 []poly) []byte {
	pk := make([]byte, p.PublicKeySize())
	copy(pk[:32], rho)
	j := 32
	for i := range t1 {
		j += simple_bit_pack(&t1[i], (1<<10)-1, pk[j:])
	}
	return pk
}

// Decode a public key (FIPS 204 Algorithm 23). Only the length can be
// invalid; rho aliases the input.
func pk_decode(p *ParameterSet, pk []byte) (rho []byte, t1 []poly, ok bool) {
	if len(pk) != p.PublicKeySize() {
		return nil, nil, false
	}
	rho = pk[:32]
	t1 = make([]poly, p.k)
	j := 32
	for i := 0; i < p.k; i++ {
		t1[i] = simple_bit_unpack(pk[j:], (1<<10)-1)
		j += n * 10 / 8
	}
	return rho, t1, true
}

// Encode a private key: rho, K and tr, then s1, s2 and t0
// (FIPS 204 Algorithm 24).
func sk_encode(p *ParameterSet, rho, kk, tr []byte, s1, s2, t0 []poly) []byte {
	sk := make([]byte, p.PrivateKeySize())
	copy(sk[:32], rho)
	copy(sk[32:64], kk)
	copy(sk[64:128], tr)
	j := 128
	for i := range s1 {
		j += bit_pack(&s1[i], p.eta, p.eta, sk[j:])
	}
	for i := range s2 {
		j += bit_pack(&s2[i], p.eta, p.eta, sk[j:])
	}
	for i := range t0 {
		j += bit_pack(&t0[i], (1<<(d-1))-1, 1<<(d-1), sk[j:])
	}
	return sk
}

// Decode a private key (FIPS 204 Algorithm 25). The length is
// validated; the coefficient ranges are not, as the private key is the
// signer's own trusted material.
func sk_decode(p *ParameterSet, sk []byte) (rho, kk, tr []byte, s1, s2, t0 []poly, err error) {
	if len(sk) != p.PrivateKeySize() {
		err = errors.New("invalid private key length")
		return
	}
	rho = sk[:32]
	kk = sk[32:64]
	tr = sk[64:128]
	j := 128
	le := n * p.etaBits / 8
	s1 = make([]poly, p.ell)
	for i := 0; i < p.ell; i++ {
		s1[i] = bit_unpack(sk[j:], p.eta, p.eta)
		j += le
	}
	s2 = make([]poly, p.k)
	for i := 0; i < p.k; i++ {
		s2[i] = bit_unpack(sk[j:], p.eta, p.eta)
		j += le
	}
	t0 = make([]poly, p.k)
	for i := 0; i < p.k; i++ {
		t0[i] = bit_unpack(sk[j:], (1<<(d-1))-1, 1<<(d-1))
		j += n * d / 8
	}
	return
}

// Encode a signature: the challenge seed c~, the response vector z and
// the packed hint (FIPS 204 Algorithm 26).
func sig_encode(p *ParameterSet, ct []byte, z, h []poly) []byte {
	sig := make([]byte, p.SignatureSize())
	copy(sig, ct)
	j := p.lambda / 4
	for i := range z {
		j += bit_pack(&z[i], p.gamma1-1, p.gamma1, sig[j:])
	}
	hint_bit_pack(h, p.omega, sig[j:])
	return sig
}

// Decode a signature (FIPS 204 Algorithm 27). A wrong length or a
// malformed hint encoding yields ok == false, which the caller MUST
// surface as a verification failure.
func sig_decode(p *ParameterSet, sig []byte) (ct []byte, z, h []poly, ok bool) {
	if len(sig) != p.SignatureSize() {
		return nil, nil, nil, false
	}
	cl := p.lambda / 4
	ct = sig[:cl]
	bl := n * p.gamma1Bits / 8
	z = make([]poly, p.ell)
	for i := 0; i < p.ell; i++ {
		z[i] = bit_unpack(sig[cl+bl*i:], p.gamma1-1, p.gamma1)
	}
	h, ok = hint_bit_unpack(sig[cl+bl*p.ell:], p.k, p.omega)
	if !ok {
		return nil, nil, nil, false
	}
	return ct, z, h, true
}

// Encode the commitment vector w1, one element after the other
// (FIPS 204 Algorithm 28). The coefficient width depends on gamma2:
// 6 bits for ML-DSA-44, 4 bits for the other two sets.
func w1_encode(p *ParameterSet, w1 []poly) []byte {
	b := (q-1)/(2*p.gamma2) - 1
	out := make([]byte, p.k*n*p.w1Bits/8)
	j := 0
	for i := range w1 {
		j += simple_bit_pack(&w1[i], b, out[j:])
	}
	return out
}
