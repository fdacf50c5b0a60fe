package mldsa

// A ring element: 256 coefficients modulo q, always kept in the
// [0,q-1] range. Depending on context a poly holds either the standard
// representation or the NTT representation; the two are never mixed
// without an explicit transform.
type poly [n]uint32

// Modular addition; x and y MUST be in the [0,q-1] range.
func mq_add(x, y uint32) uint32 {
	z := x + y
	if z >= q {
		z -= q
	}
	return z
}

// Modular subtraction; x and y MUST be in the [0,q-1] range.
func mq_sub(x, y uint32) uint32 {
	z := x + q - y
	if z >= q {
		z -= q
	}
	return z
}

// Modular negation; x MUST be in the [0,q-1] range.
func mq_neg(x uint32) uint32 {
	if x == 0 {
		return 0
	}
	return q - x
}

// Modular multiplication; x and y MUST be in the [0,q-1] range.
func mq_mul(x, y uint32) uint32 {
	return uint32((uint64(x) * uint64(y)) % q)
}

// Map x (in the [0,q-1] range) to its centered representative, i.e.
// the unique integer congruent to x modulo q in [-(q-1)/2,+(q-1)/2].
func mq_center(x uint32) int32 {
	z := int32(x)
	if z > (q-1)/2 {
		z -= q
	}
	return z
}

// Map x (in the [0,q-1] range) to the centered representative modulo
// alpha, in the (-alpha/2,+alpha/2] range; alpha MUST be even. Note
// the sign boundary: +alpha/2 is included and -alpha/2 is excluded
// (this is not two's complement truncation).
func mq_center_mod(x uint32, alpha uint32) int32 {
	z := int32(x % alpha)
	if z > int32(alpha/2) {
		z -= int32(alpha)
	}
	return z
}

// Absolute value of the centered representative of x modulo q.
func mq_norm(x uint32) uint32 {
	if x > (q-1)/2 {
		return q - x
	}
	return x
}

// Coefficient-wise sum of two ring elements (either representation).
func poly_add(a, b *poly) poly {
	var c poly
	for i := 0; i < n; i++ {
		c[i] = mq_add(a[i], b[i])
	}
	return c
}

// Coefficient-wise difference of two ring elements.
func poly_sub(a, b *poly) poly {
	var c poly
	for i := 0; i < n; i++ {
		c[i] = mq_sub(a[i], b[i])
	}
	return c
}

// Coefficient-wise negation of a ring element.
func poly_neg(a *poly) poly {
	var c poly
	for i := 0; i < n; i++ {
		c[i] = mq_neg(a[i])
	}
	return c
}

// Infinity norm of a ring element (maximum absolute value of the
// centered representatives of its coefficients).
func poly_norm(a *poly) uint32 {
	m := uint32(0)
	for i := 0; i < n; i++ {
		v := mq_norm(a[i])
		if v > m {
			m = v
		}
	}
	return m
}

// Infinity norm of a vector of ring elements.
func vec_norm(v []poly) uint32 {
	m := uint32(0)
	for i := range v {
		x := poly_norm(&v[i])
		if x > m {
			m = x
		}
	}
	return m
}

// Number of nonzero coefficients over a vector of ring elements.
func vec_weight(v []poly) int {
	w := 0
	for i := range v {
		for j := 0; j < n; j++ {
			if v[i][j] != 0 {
				w++
			}
		}
	}
	return w
}
