package secp256k1

import (
	"sync"

	sha256simd "github.com/minio/sha256-simd"
)

// fingerprintTag domain-separates curve fingerprints from other SHA-256 uses.
const fingerprintTag = "secp256k1.mleku.dev/curve"

var (
	fingerprintTagHash     [32]byte
	fingerprintTagHashOnce sync.Once
)

// taggedHash computes SHA256(SHA256(tag) || SHA256(tag) || data), the BIP-340
// tagged hash construction.
func taggedHash(tagHash *[32]byte, data ...[]byte) [32]byte {
	h := sha256simd.New()
	h.Write(tagHash[:])
	h.Write(tagHash[:])
	for _, d := range data {
		h.Write(d)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Fingerprint returns a digest of the curve's defining parameters, the field
// prime and the coefficients a and b. Equal curves have equal fingerprints,
// so it can key maps where a *Curve would compare by identity.
func (c *Curve) Fingerprint() [32]byte {
	fingerprintTagHashOnce.Do(func() {
		fingerprintTagHash = sha256simd.Sum256([]byte(fingerprintTag))
	})

	var q [32]byte
	c.q.FillBytes(q[:])
	a, b := c.a.Bytes(), c.b.Bytes()
	return taggedHash(&fingerprintTagHash, q[:], a[:], b[:])
}
