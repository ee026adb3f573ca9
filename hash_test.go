package secp256k1

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTaggedHash(t *testing.T) {
	tag := sha256.Sum256([]byte("example/tag"))
	data := []byte("some data")

	h := sha256.New()
	h.Write(tag[:])
	h.Write(tag[:])
	h.Write(data)
	var want [32]byte
	copy(want[:], h.Sum(nil))

	require.Equal(t, want, taggedHash(&tag, data))
	require.Equal(t, want, taggedHash(&tag, data[:4], data[4:]))
}

func TestFingerprintCoversParameters(t *testing.T) {
	c := NewCurve()
	f := c.Fingerprint()

	var q [32]byte
	fieldPrime.FillBytes(q[:])
	var b [32]byte
	b[31] = 7
	tag := sha256.Sum256([]byte(fingerprintTag))
	require.Equal(t, taggedHash(&tag, q[:], make([]byte, 32), b[:]), f)
}

func TestHashToField(t *testing.T) {
	var ones [32]byte
	for i := range ones {
		ones[i] = 0xff
	}
	// 2^256 - 1 reduces to 2^32 + 976
	require.Equal(t, uint64(0x1000003d0), hashToField(ones).BigInt().Uint64())
	require.Equal(t, "14551231950b75fc4402da1732fc9bebe", hashToScalar(ones).BigInt().Text(16))
}
