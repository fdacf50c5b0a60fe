package mldsa

import (
	"crypto/sha256"
	"crypto/sha512"
	"errors"

	sha3 "golang.org/x/crypto/sha3"
)

// Identifier for the pre-hash function used by the HashML-DSA variant.
// Only the three functions listed in this file are supported; any
// other value is reported as an error by HashSign, and makes
// HashVerify return false.
type PreHash int

const (
	PREHASH_SHA256 PreHash = iota + 1
	PREHASH_SHA512
	PREHASH_SHAKE128
)

// DER-encoded OIDs of the supported pre-hash functions; the OID is
// spliced into the signed message representative, binding the
// signature to the hash function that was used.
var oid_SHA256 = []byte{
	0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x01,
}
var oid_SHA512 = []byte{
	0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x03,
}
var oid_SHAKE128 = []byte{
	0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x0B,
}

// Compute the OID and digest for the pre-hashed variant. SHAKE128 is
// used with a 32-byte output, per FIPS 204.
func prehash(ph PreHash, msg []byte) (oid []byte, phm []byte, err error) {
	switch ph {
	case PREHASH_SHA256:
		h := sha256.Sum256(msg)
		return oid_SHA256, h[:], nil
	case PREHASH_SHA512:
		h := sha512.Sum512(msg)
		return oid_SHA512, h[:], nil
	case PREHASH_SHAKE128:
		var h [32]byte
		sh := sha3.NewShake128()
		sh.Write(msg)
		sh.Read(h[:])
		return oid_SHAKE128, h[:], nil
	}
	return nil, nil, errors.New("unsupported pre-hash function")
}
