package mldsa

import (
	"errors"
)

// Ring parameters shared by all ML-DSA parameter sets.
const (
	// q is the prime modulus, q = 2^23 - 2^13 + 1.
	q = 8380417

	// n is the number of coefficients in a ring element.
	n = 256

	// d is the number of bits dropped from t by Power2Round.
	d = 13

	// inv256 is the inverse of 256 modulo q, used by the inverse NTT.
	inv256 = 8347681

	// SeedSize is the size (in bytes) of the key generation seed and
	// of the per-signature random value.
	SeedSize = 32

	// trSize is the size (in bytes) of the hashed public key tr.
	trSize = 64
)

// A ParameterSet describes one of the three ML-DSA parameter sets. The
// exported values MLDSA44, MLDSA65 and MLDSA87 are the only instances;
// they are immutable and safe for concurrent use.
type ParameterSet struct {
	name   string
	tau    int    // hamming weight of the challenge polynomial
	lambda int    // collision strength (bits); c~ is lambda/4 bytes
	gamma1 uint32 // mask coefficient range (power of two)
	gamma2 uint32 // low-order rounding range
	k      int    // rows of matrix A
	ell    int    // columns of matrix A
	eta    uint32 // secret coefficient bound
	beta   uint32 // tau * eta
	omega  int    // maximum hint weight

	// Derived encoding widths (bits per coefficient).
	etaBits    int // bitlen(2*eta), for s1/s2
	gamma1Bits int // 1 + bitlen(gamma1-1), for z and y
	w1Bits     int // bitlen((q-1)/(2*gamma2) - 1), for w1
}

var MLDSA44 = &ParameterSet{
	name: "ml-dsa-44", tau: 39, lambda: 128,
	gamma1: 1 << 17, gamma2: (q - 1) / 88,
	k: 4, ell: 4, eta: 2, beta: 78, omega: 80,
	etaBits: 3, gamma1Bits: 18, w1Bits: 6,
}

var MLDSA65 = &ParameterSet{
	name: "ml-dsa-65", tau: 49, lambda: 192,
	gamma1: 1 << 19, gamma2: (q - 1) / 32,
	k: 6, ell: 5, eta: 4, beta: 196, omega: 55,
	etaBits: 4, gamma1Bits: 20, w1Bits: 4,
}

var MLDSA87 = &ParameterSet{
	name: "ml-dsa-87", tau: 60, lambda: 256,
	gamma1: 1 << 19, gamma2: (q - 1) / 32,
	k: 8, ell: 7, eta: 2, beta: 120, omega: 75,
	etaBits: 3, gamma1Bits: 20, w1Bits: 4,
}

// GetParameterSet returns the parameter set with the given name, which
// must be one of "ml-dsa-44", "ml-dsa-65" or "ml-dsa-87". An error is
// returned for any other name.
func GetParameterSet(name string) (*ParameterSet, error) {
	switch name {
	case "ml-dsa-44":
		return MLDSA44, nil
	case "ml-dsa-65":
		return MLDSA65, nil
	case "ml-dsa-87":
		return MLDSA87, nil
	}
	return nil, errors.New("unknown ML-DSA parameter set: " + name)
}

// Name returns the lowercase name of the parameter set ("ml-dsa-44",
// "ml-dsa-65" or "ml-dsa-87").
func (p *ParameterSet) Name() string {
	return p.name
}

// PublicKeySize returns the size, in bytes, of an encoded public key.
func (p *ParameterSet) PublicKeySize() int {
	// rho (32 bytes) then t1, 10 bits per coefficient.
	return 32 + p.k*(n*10/8)
}

// PrivateKeySize returns the size, in bytes, of an encoded private key.
func (p *ParameterSet) PrivateKeySize() int {
	// rho + K + tr, then s1 and s2 (etaBits bits per coefficient),
	// then t0 (d bits per coefficient).
	return 32 + 32 + trSize + (p.ell+p.k)*(n*p.etaBits/8) + p.k*(n*d/8)
}

// SignatureSize returns the size, in bytes, of a signature.
func (p *ParameterSet) SignatureSize() int {
	// c~ then z (gamma1Bits bits per coefficient) then the packed hint.
	return p.lambda/4 + p.ell*(n*p.gamma1Bits/8) + p.omega + p.k
}

// An alias for a domain context, which is an arbitrary sequence of up
// to 255 bytes that is meant to be used for domain separation.
type DomainContext []byte

// A pre-allocated empty context string.
var DOMAIN_NONE = DomainContext([]byte{})
