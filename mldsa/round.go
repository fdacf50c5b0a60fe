package mldsa

// Rounding and hint machinery (FIPS 204 Algorithms 35 to 40). These
// let signatures omit the high-order bits of the commitment while
// keeping it recoverable by the verifier.

// Split r into (r1,r0) with r = r1*2^d + r0 and r0 the centered
// representative modulo 2^d (FIPS 204 Algorithm 35). r1 is returned in
// the [0,q-1] range (it is at most 1023); r0 is returned modulo q.
func power2round(r uint32) (r1, r0 uint32) {
	c := mq_center_mod(r, 1<<d)
	r1 = uint32((int32(r) - c) >> d)
	if c < 0 {
		r0 = uint32(c + q)
	} else {
		r0 = uint32(c)
	}
	return
}

// Split r into (r1,r0) around multiples of 2*gamma2 (FIPS 204
// Algorithm 36). r0 is the centered representative modulo 2*gamma2,
// except when r - r0 would reach q-1: in that case r1 wraps to 0 and
// r0 absorbs the off-by-one. Omitting that correction breaks
// verification for coefficients near the modulus.
func decompose(p *ParameterSet, r uint32) (r1 uint32, r0 int32) {
	alpha := 2 * p.gamma2
	r0 = mq_center_mod(r, alpha)
	if int32(r)-r0 == q-1 {
		r1 = 0
		r0--
	} else {
		r1 = uint32(int32(r)-r0) / alpha
	}
	return
}

// High half of decompose, applied coefficient-wise over a vector
// (FIPS 204 Algorithm 37).
func high_bits(p *ParameterSet, v []poly) []poly {
	w := make([]poly, len(v))
	for i := range v {
		for j := 0; j < n; j++ {
			w[i][j], _ = decompose(p, v[i][j])
		}
	}
	return w
}

// Low half of decompose, applied coefficient-wise over a vector; the
// result is returned modulo q (FIPS 204 Algorithm 38).
func low_bits(p *ParameterSet, v []poly) []poly {
	w := make([]poly, len(v))
	for i := range v {
		for j := 0; j < n; j++ {
			_, r0 := decompose(p, v[i][j])
			if r0 < 0 {
				r0 += q
			}
			w[i][j] = uint32(r0)
		}
	}
	return w
}

// Hint bit for a single coefficient: 1 when adding z to r changes the
// high bits (FIPS 204 Algorithm 39).
func make_hint(p *ParameterSet, z, r uint32) uint32 {
	r1, _ := decompose(p, r)
	v1, _ := decompose(p, mq_add(r, z))
	if r1 != v1 {
		return 1
	}
	return 0
}

// Hint vector for (z,r) pairs, coefficient-wise over k elements.
func make_hint_vec(p *ParameterSet, z, r []poly) []poly {
	h := make([]poly, len(r))
	for i := range r {
		for j := 0; j < n; j++ {
			h[i][j] = make_hint(p, z[i][j], r[i][j])
		}
	}
	return h
}

// Recover the high bits of the original commitment from the hint,
// wrapping around the (q-1)/(2*gamma2)-sized index space
// (FIPS 204 Algorithm 40).
func use_hint(p *ParameterSet, h, r uint32) uint32 {
	m := (q - 1) / (2 * p.gamma2)
	r1, r0 := decompose(p, r)
	if h == 0 {
		return r1
	}
	if r0 > 0 {
		return (r1 + 1) % m
	}
	return (r1 + m - 1) % m
}

// Coefficient-wise use_hint over a vector of k elements.
func use_hint_vec(p *ParameterSet, h, r []poly) []poly {
	w := make([]poly, len(r))
	for i := range r {
		for j := 0; j < n; j++ {
			w[i][j] = use_hint(p, h[i][j], r[i][j])
		}
	}
	return w
}
