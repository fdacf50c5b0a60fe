// This package implements the ML-DSA signature algorithm (FIPS 204).
//
// ML-DSA (Module-Lattice-Based Digital Signature Algorithm) is the
// NIST-standardized version of the Dilithium scheme. Three parameter
// sets are defined, corresponding to increasing security categories:
// ML-DSA-44, ML-DSA-65 and ML-DSA-87. A parameter set is selected
// either through the exported [MLDSA44], [MLDSA65] and [MLDSA87]
// values, or by name with [GetParameterSet] (names are the lowercase
// strings "ml-dsa-44", "ml-dsa-65" and "ml-dsa-87"). Parameter sets
// are immutable; a single [ParameterSet] value can be used
// concurrently by any number of goroutines.
//
// Keys and signatures are exchanged in the encoded byte formats
// specified by FIPS 204; sizes are fixed for a given parameter set and
// returned by the PublicKeySize, PrivateKeySize and SignatureSize
// methods. A new key pair is created with KeyGen, which takes a source
// of randomness (nil to use the operating system's RNG through
// crypto/rand.Reader), or deterministically from a 32-byte seed with
// KeyGenInternal.
//
// A signature is computed over a message and a domain separation
// context, which is an arbitrary (non-secret) sequence of up to 255
// bytes; [DomainContext] is an alias for such a context, and
// [DOMAIN_NONE] is a pre-allocated empty one. Signing accepts an
// optional 32-byte random value; if nil, fresh randomness is obtained
// from the operating system (the "hedged" mode of FIPS 204). Providing
// an explicit value yields a deterministic signature, which is meant
// for test vectors and constrained environments; callers who do so
// MUST understand the implications of deterministic signing.
//
// The HashSign and HashVerify functions implement the pre-hashed variant
// (HashML-DSA): the message is first hashed with one of the supported
// functions (SHA-256, SHA-512 or SHAKE128, identified by a [PreHash]
// constant) and the digest, together with the DER-encoded OID of the
// hash function, is what gets bound by the signature.
//
// Verification returns a plain boolean. It is safe to call on fully
// untrusted input: a signature or key that cannot be decoded, or whose
// structure violates the format (e.g. a malformed hint encoding),
// makes verification return false; no error is reported and no panic
// occurs.
package mldsa
