package secp256k1

import (
	"math/big"
	"testing"

	sha256simd "github.com/minio/sha256-simd"
	"github.com/stretchr/testify/require"
)

// testDigests returns n 32-byte values from a SHA-256 chain seeded with seed,
// so randomized tests reproduce across runs.
func testDigests(seed string, n int) [][32]byte {
	out := make([][32]byte, n)
	d := sha256simd.Sum256([]byte(seed))
	for i := range out {
		out[i] = d
		d = sha256simd.Sum256(d[:])
	}
	return out
}

// hashToScalar reduces a 32-byte digest modulo the group order.
func hashToScalar(digest [32]byte) *Scalar {
	var s Scalar
	s.setB32(digest[:])
	return &s
}

// hashToField reduces a 32-byte digest modulo the field prime.
func hashToField(digest [32]byte) *FieldElement {
	var f FieldElement
	f.setB32(digest[:])
	f.normalize()
	return &f
}

func testFieldElements(seed string, n int) []*FieldElement {
	out := make([]*FieldElement, n)
	for i, d := range testDigests(seed, n) {
		out[i] = hashToField(d)
	}
	return out
}

func testScalars(seed string, n int) []*Scalar {
	out := make([]*Scalar, n)
	for i, d := range testDigests(seed, n) {
		out[i] = hashToScalar(d)
	}
	return out
}

// testPoints returns n points k*G for pseudo-random k, left unnormalized.
func testPoints(c *Curve, seed string, n int) []*Point {
	out := make([]*Point, n)
	for i, k := range testScalars(seed, n) {
		out[i] = c.Generator().MultiplyScalar(k)
	}
	return out
}

func hexBig(t testing.TB, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		t.Fatalf("invalid hex %q", s)
	}
	return v
}

// affinePoint builds a checked point from hex coordinates; empty strings
// give the point at infinity.
func affinePoint(t testing.TB, c *Curve, x, y string) *Point {
	t.Helper()
	if x == "" && y == "" {
		return c.Infinity()
	}
	p, err := c.CreatePoint(hexBig(t, x), hexBig(t, y))
	if err != nil {
		t.Fatalf("CreatePoint(%s, %s): %v", x, y, err)
	}
	return p
}

// rescale returns p with its Jacobian coordinates multiplied by z^2, z^3
// and z, which leaves the group element unchanged.
func rescale(p *Point, z *FieldElement) *Point {
	r := *p
	var z2, z3 FieldElement
	z2.sqr(z)
	z3.mul(&z2, z)
	r.x.mul(&p.x, &z2)
	r.y.mul(&p.y, &z3)
	r.z.mul(&p.z, z)
	return &r
}

// requireBig compares integers by value.
func requireBig(t testing.TB, want, got *big.Int) {
	t.Helper()
	require.Truef(t, want.Cmp(got) == 0, "got %x, want %x", got, want)
}

func bigInt(v int64) *big.Int {
	return big.NewInt(v)
}
