package mldsa

import (
	sha3 "golang.org/x/crypto/sha3"
)

// Deterministic expansion of seeds into ring elements, by rejection
// sampling over SHAKE output streams (FIPS 204 Algorithms 29 to 34).

// Assemble a candidate NTT-domain coefficient from three stream bytes:
// a 23-bit little-endian integer, with the top bit of the third byte
// masked off. The candidate is accepted if it is below q
// (FIPS 204 Algorithm 14). The boolean result distinguishes a rejected
// draw from a valid coefficient; any value in [0,q-1] is legitimate,
// so no in-band sentinel can be used.
func coeff_from_three_bytes(b0, b1, b2 byte) (uint32, bool) {
	z := (uint32(b2&0x7F) << 16) | (uint32(b1) << 8) | uint32(b0)
	return z, z < q
}

// Map a half-byte to a coefficient in [-eta,+eta] (returned modulo q),
// or reject it (FIPS 204 Algorithm 15). For eta = 2 the fifteen values
// below 15 map to 2 - (b mod 5); for eta = 4 the nine values below 9
// map to 4 - b.
func coeff_from_half_byte(b byte, eta uint32) (uint32, bool) {
	if eta == 2 {
		if b >= 15 {
			return 0, false
		}
		return mq_sub(2, uint32(b%5)), true
	}
	if b >= 9 {
		return 0, false
	}
	return mq_sub(4, uint32(b)), true
}

// Sample a uniform ring element in NTT representation from a SHAKE128
// stream over the provided seed (FIPS 204 Algorithm 30). The stream is
// consumed in 3-byte chunks; rejected chunks are simply skipped. No
// iteration cap is imposed: the probability of the stream stalling is
// astronomically small.
func rej_ntt_poly(seed []byte) poly {
	var a poly
	g := sha3.NewShake128()
	g.Write(seed)
	var s [3]byte
	j := 0
	for j < n {
		g.Read(s[:])
		if z, ok := coeff_from_three_bytes(s[0], s[1], s[2]); ok {
			a[j] = z
			j++
		}
	}
	return a
}

// Sample a ring element with coefficients in [-eta,+eta] from a
// SHAKE256 stream over the provided seed (FIPS 204 Algorithm 31).
// Each stream byte yields two half-byte candidates.
func rej_bounded_poly(seed []byte, eta uint32) poly {
	var a poly
	h := sha3.NewShake256()
	h.Write(seed)
	var s [1]byte
	j := 0
	for j < n {
		h.Read(s[:])
		if z0, ok := coeff_from_half_byte(s[0]&0x0F, eta); ok {
			a[j] = z0
			j++
		}
		if z1, ok := coeff_from_half_byte(s[0]>>4, eta); ok && j < n {
			a[j] = z1
			j++
		}
	}
	return a
}

// Expand the public seed rho into the k x ell matrix A, in NTT
// representation, stored row-major (FIPS 204 Algorithm 32). The
// per-entry seed is rho followed by the one-byte column then row
// indices; this exact ordering and width is part of the
// interoperability contract.
func expand_a(p *ParameterSet, rho []byte) []poly {
	a := make([]poly, p.k*p.ell)
	seed := make([]byte, 34)
	copy(seed, rho)
	for r := 0; r < p.k; r++ {
		for s := 0; s < p.ell; s++ {
			seed[32] = byte(s)
			seed[33] = byte(r)
			a[r*p.ell+s] = rej_ntt_poly(seed)
		}
	}
	return a
}

// Expand the secret seed rho' into the vectors s1 (ell elements) and
// s2 (k elements) of eta-bounded ring elements (FIPS 204 Algorithm
// 33). The per-element seed is rho' followed by a two-byte
// little-endian index; s2 indices continue after s1's.
func expand_s(p *ParameterSet, rhop []byte) (s1, s2 []poly) {
	s1 = make([]poly, p.ell)
	s2 = make([]poly, p.k)
	seed := make([]byte, 66)
	copy(seed, rhop)
	for r := 0; r < p.ell; r++ {
		seed[64] = byte(r)
		seed[65] = byte(r >> 8)
		s1[r] = rej_bounded_poly(seed, p.eta)
	}
	for r := 0; r < p.k; r++ {
		seed[64] = byte(r + p.ell)
		seed[65] = byte((r + p.ell) >> 8)
		s2[r] = rej_bounded_poly(seed, p.eta)
	}
	return
}

// Expand rho'' and the loop counter kappa into the mask vector y of
// ell ring elements with coefficients in [-gamma1+1,+gamma1]
// (FIPS 204 Algorithm 34). Each element reads 32*c bytes of SHAKE256
// output over rho'' followed by the two-byte little-endian value
// kappa+r, then bit-unpacks them.
func expand_mask(p *ParameterSet, rhopp []byte, kappa int) []poly {
	y := make([]poly, p.ell)
	c := p.gamma1Bits
	seed := make([]byte, 66)
	copy(seed, rhopp)
	v := make([]byte, 32*c)
	for r := 0; r < p.ell; r++ {
		seed[64] = byte(kappa + r)
		seed[65] = byte((kappa + r) >> 8)
		h := sha3.NewShake256()
		h.Write(seed)
		h.Read(v)
		y[r] = bit_unpack(v, p.gamma1-1, p.gamma1)
	}
	return y
}

// Sample the challenge polynomial: exactly tau coefficients set to +1
// or -1, all others zero (FIPS 204 Algorithm 29). The SHAKE256 stream
// over the challenge seed provides 8 bytes of sign bits, then one
// rejection-sampled index byte per remaining slot, driving an
// in-place Fisher-Yates selection.
func sample_in_ball(p *ParameterSet, seed []byte) poly {
	var c poly
	h := sha3.NewShake256()
	h.Write(seed)
	var s [8]byte
	h.Read(s[:])
	signs := uint64(0)
	for i := 0; i < 8; i++ {
		signs |= uint64(s[i]) << (i << 3)
	}
	var b [1]byte
	for i := n - p.tau; i < n; i++ {
		h.Read(b[:])
		for int(b[0]) > i {
			h.Read(b[:])
		}
		j := b[0]
		c[i] = c[j]
		if signs&1 == 0 {
			c[j] = 1
		} else {
			c[j] = q - 1
		}
		signs >>= 1
	}
	return c
}
