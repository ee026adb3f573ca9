package secp256k1

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeAll(t *testing.T) {
	c := NewCurve()
	ps := testPoints(c, "batch", 10)

	// Mix in infinity and an already normalized point.
	ps = append(ps, c.Infinity(), c.Generator())

	out := NormalizeAll(ps)
	require.Len(t, out, len(ps))
	for i, p := range ps {
		require.True(t, out[i].IsNormalized(), "#%d", i)
		require.True(t, out[i].Equals(p), "#%d", i)
		if !p.IsInfinity() {
			require.True(t, out[i].RawX().Equals(p.Normalize().RawX()), "#%d", i)
		}
	}
	require.Same(t, c.Infinity(), out[len(out)-2])
	require.Same(t, c.Generator(), out[len(out)-1])
}

func TestNormalizeAllEmpty(t *testing.T) {
	require.Empty(t, NormalizeAll(nil))

	c := NewCurve()
	out := NormalizeAll([]*Point{c.Infinity()})
	require.Same(t, c.Infinity(), out[0])
}

func TestBatchInverse(t *testing.T) {
	in := make([]FieldElement, 0, 16)
	for _, f := range testFieldElements("batch-inverse", 16) {
		in = append(in, *f)
	}
	out := make([]FieldElement, len(in))
	batchInverse(out, in)

	for i := range in {
		var r FieldElement
		r.mul(&in[i], &out[i])
		r.normalize()
		require.True(t, r.IsOne(), "#%d", i)
	}
}

func BenchmarkNormalizeAll(b *testing.B) {
	ps := testPoints(NewCurve(), "bench-batch", 64)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NormalizeAll(ps)
	}
}
