package mldsa

import (
	"testing"

	sha3 "golang.org/x/crypto/sha3"
)

// Pseudorandom polynomial with coefficients whose centered
// representatives lie in [-a,+b].
func rand_range_poly_for_test(id byte, a, b uint32) poly {
	var f poly
	h := sha3.NewShake128()
	h.Write([]byte{0x63, 0x64, 0x63, id})
	var s [4]byte
	for i := 0; i < n; i++ {
		h.Read(s[:])
		v := uint32(s[0]) | (uint32(s[1]) << 8) |
			(uint32(s[2]) << 16) | (uint32(s[3]) << 24)
		c := int32(v%(a+b+1)) - int32(a)
		if c < 0 {
			c += q
		}
		f[i] = uint32(c)
	}
	return f
}

func TestSimpleBitPack(t *testing.T) {
	for _, b := range []uint32{(1 << 10) - 1, 15, 43, 1} {
		f := rand_range_poly_for_test(byte(b), 0, b)
		dst := make([]byte, 32*bitlen(b))
		j := simple_bit_pack(&f, b, dst)
		if j != len(dst) {
			t.Fatalf("wrong packed size for b=%d: %d (exp: %d)\n",
				b, j, len(dst))
		}
		g := simple_bit_unpack(dst, b)
		if f != g {
			t.Fatalf("simple bit pack round trip failed for b=%d\n", b)
		}
	}
}

func TestBitPack(t *testing.T) {
	tt := []struct{ a, b uint32 }{
		{2, 2},
		{4, 4},
		{(1 << (d - 1)) - 1, 1 << (d - 1)},
		{(1 << 17) - 1, 1 << 17},
		{(1 << 19) - 1, 1 << 19},
	}
	for id, tc := range tt {
		f := rand_range_poly_for_test(byte(id), tc.a, tc.b)
		dst := make([]byte, 32*bitlen(tc.a+tc.b))
		j := bit_pack(&f, tc.a, tc.b, dst)
		if j != len(dst) {
			t.Fatalf("wrong packed size for a=%d b=%d: %d (exp: %d)\n",
				tc.a, tc.b, j, len(dst))
		}
		g := bit_unpack(dst, tc.a, tc.b)
		if f != g {
			t.Fatalf("bit pack round trip failed for a=%d b=%d\n",
				tc.a, tc.b)
		}
	}
}

func TestHintBitPack(t *testing.T) {
	for _, p := range all_params {
		// A hint vector of maximum weight, with indices spread over
		// all elements.
		h := make([]poly, p.k)
		w := 0
		for i := 0; i < p.k && w < p.omega; i++ {
			for j := 0; j < n && w < p.omega; j += 7 {
				h[i][j] = 1
				w++
			}
		}
		dst := make([]byte, p.omega+p.k)
		hint_bit_pack(h, p.omega, dst)
		g, ok := hint_bit_unpack(dst, p.k, p.omega)
		if !ok {
			t.Fatalf("valid hint encoding rejected (%s)\n", p.Name())
		}
		for i := 0; i < p.k; i++ {
			if g[i] != h[i] {
				t.Fatalf("hint round trip failed (%s, element %d)\n",
					p.Name(), i)
			}
		}

		// Empty hint.
		for i := range h {
			h[i] = poly{}
		}
		for i := range dst {
			dst[i] = 0
		}
		hint_bit_pack(h, p.omega, dst)
		if _, ok := hint_bit_unpack(dst, p.k, p.omega); !ok {
			t.Fatalf("empty hint encoding rejected (%s)\n", p.Name())
		}
	}
}

func TestHintBitUnpackMalformed(t *testing.T) {
	p := MLDSA44
	mk := func() []byte {
		h := make([]poly, p.k)
		h[0][3] = 1
		h[0][10] = 1
		h[2][0] = 1
		dst := make([]byte, p.omega+p.k)
		hint_bit_pack(h, p.omega, dst)
		return dst
	}

	// Offset larger than omega.
	src := mk()
	src[p.omega] = byte(p.omega + 1)
	if _, ok := hint_bit_unpack(src, p.k, p.omega); ok {
		t.Fatalf("accepted offset beyond omega\n")
	}

	// Decreasing cumulative offsets.
	src = mk()
	src[p.omega+2] = 0
	if _, ok := hint_bit_unpack(src, p.k, p.omega); ok {
		t.Fatalf("accepted decreasing offsets\n")
	}

	// Indices within an element not strictly increasing.
	src = mk()
	src[0], src[1] = src[1], src[0]
	if _, ok := hint_bit_unpack(src, p.k, p.omega); ok {
		t.Fatalf("accepted out-of-order indices\n")
	}
	src = mk()
	src[1] = src[0]
	if _, ok := hint_bit_unpack(src, p.k, p.omega); ok {
		t.Fatalf("accepted duplicate indices\n")
	}

	// Nonzero padding after the used indices.
	src = mk()
	src[p.omega-1] = 7
	if _, ok := hint_bit_unpack(src, p.k, p.omega); ok {
		t.Fatalf("accepted nonzero padding\n")
	}
}

func TestKeyCodecs(t *testing.T) {
	for _, p := range all_params {
		rho := make([]byte, 32)
		kk := make([]byte, 32)
		tr := make([]byte, trSize)
		for i := range rho {
			rho[i] = byte(i)
			kk[i] = byte(255 - i)
		}
		for i := range tr {
			tr[i] = byte(3 * i)
		}
		t1 := make([]poly, p.k)
		t0 := make([]poly, p.k)
		s2 := make([]poly, p.k)
		for i := 0; i < p.k; i++ {
			t1[i] = rand_range_poly_for_test(byte(i), 0, (1<<10)-1)
			t0[i] = rand_range_poly_for_test(byte(i+8),
				(1<<(d-1))-1, 1<<(d-1))
			s2[i] = rand_range_poly_for_test(byte(i+16), p.eta, p.eta)
		}
		s1 := make([]poly, p.ell)
		for i := 0; i < p.ell; i++ {
			s1[i] = rand_range_poly_for_test(byte(i+24), p.eta, p.eta)
		}

		pk := pk_encode(p, rho, t1)
		if len(pk) != p.PublicKeySize() {
			t.Fatalf("wrong encoded public key size (%s): %d\n",
				p.Name(), len(pk))
		}
		rho2, t12, ok := pk_decode(p, pk)
		if !ok {
			t.Fatalf("public key decoding failed (%s)\n", p.Name())
		}
		if string(rho2) != string(rho) {
			t.Fatalf("public key rho mismatch (%s)\n", p.Name())
		}
		for i := 0; i < p.k; i++ {
			if t12[i] != t1[i] {
				t.Fatalf("public key t1 mismatch (%s, element %d)\n",
					p.Name(), i)
			}
		}
		if _, _, ok := pk_decode(p, pk[:len(pk)-1]); ok {
			t.Fatalf("truncated public key decoded (%s)\n", p.Name())
		}

		sk := sk_encode(p, rho, kk, tr, s1, s2, t0)
		if len(sk) != p.PrivateKeySize() {
			t.Fatalf("wrong encoded private key size (%s): %d\n",
				p.Name(), len(sk))
		}
		rho2, kk2, tr2, s12, s22, t02, err := sk_decode(p, sk)
		if err != nil {
			t.Fatal(err)
		}
		if string(rho2) != string(rho) || string(kk2) != string(kk) ||
			string(tr2) != string(tr) {
			t.Fatalf("private key seed mismatch (%s)\n", p.Name())
		}
		for i := 0; i < p.ell; i++ {
			if s12[i] != s1[i] {
				t.Fatalf("private key s1 mismatch (%s, element %d)\n",
					p.Name(), i)
			}
		}
		for i := 0; i < p.k; i++ {
			if s22[i] != s2[i] || t02[i] != t0[i] {
				t.Fatalf("private key s2/t0 mismatch (%s, element %d)\n",
					p.Name(), i)
			}
		}
		if _, _, _, _, _, _, err := sk_decode(p, sk[1:]); err == nil {
			t.Fatalf("truncated private key decoded (%s)\n", p.Name())
		}
	}
}

func TestSigCodec(t *testing.T) {
	for _, p := range all_params {
		ct := make([]byte, p.lambda/4)
		for i := range ct {
			ct[i] = byte(i * 7)
		}
		z := make([]poly, p.ell)
		for i := 0; i < p.ell; i++ {
			z[i] = rand_range_poly_for_test(byte(i+32),
				p.gamma1-1, p.gamma1)
		}
		h := make([]poly, p.k)
		h[0][0] = 1
		h[p.k-1][n-1] = 1

		sig := sig_encode(p, ct, z, h)
		if len(sig) != p.SignatureSize() {
			t.Fatalf("wrong encoded signature size (%s): %d\n",
				p.Name(), len(sig))
		}
		ct2, z2, h2, ok := sig_decode(p, sig)
		if !ok {
			t.Fatalf("signature decoding failed (%s)\n", p.Name())
		}
		if string(ct2) != string(ct) {
			t.Fatalf("signature challenge mismatch (%s)\n", p.Name())
		}
		for i := 0; i < p.ell; i++ {
			if z2[i] != z[i] {
				t.Fatalf("signature z mismatch (%s, element %d)\n",
					p.Name(), i)
			}
		}
		for i := 0; i < p.k; i++ {
			if h2[i] != h[i] {
				t.Fatalf("signature hint mismatch (%s, element %d)\n",
					p.Name(), i)
			}
		}
		if _, _, _, ok := sig_decode(p, sig[:len(sig)-1]); ok {
			t.Fatalf("truncated signature decoded (%s)\n", p.Name())
		}
	}
}
