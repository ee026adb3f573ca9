package interop

import (
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
	sha256simd "github.com/minio/sha256-simd"
	"github.com/stretchr/testify/require"

	"secp256k1.mleku.dev"
)

// testScalar returns a deterministic pseudo-random multiplier.
func testScalar(seed string, i int) *big.Int {
	d := sha256simd.Sum256([]byte(seed + string(rune('a'+i))))
	return new(big.Int).SetBytes(d[:])
}

func modNScalar(k *big.Int) *secp.ModNScalar {
	var b [32]byte
	new(big.Int).Mod(k, secp.S256().N).FillBytes(b[:])
	var s secp.ModNScalar
	s.SetBytes(&b)
	return &s
}

func TestJacobianRoundTrip(t *testing.T) {
	c := secp256k1.NewCurve()
	for i := 0; i < 8; i++ {
		p := c.Generator().Multiply(testScalar("jacobian", i))

		j := ToJacobian(p)
		back, err := FromJacobian(c, &j)
		require.NoError(t, err)
		require.True(t, back.Equals(p))
		require.True(t, back.IsNormalized())
	}

	j := ToJacobian(c.Infinity())
	require.True(t, j.Z.IsZero())
	back, err := FromJacobian(c, &j)
	require.NoError(t, err)
	require.Same(t, c.Infinity(), back)
}

func TestFromJacobianRejectsOffCurve(t *testing.T) {
	c := secp256k1.NewCurve()
	var j secp.JacobianPoint
	j.X.SetInt(1)
	j.Y.SetInt(1)
	j.Z.SetInt(1)
	_, err := FromJacobian(c, &j)
	require.ErrorIs(t, err, secp256k1.ErrPointNotOnCurve)
}

// TestGroupLawAgainstDcrd checks addition, doubling and multiplication
// against the dcrd implementation.
func TestGroupLawAgainstDcrd(t *testing.T) {
	c := secp256k1.NewCurve()
	for i := 0; i < 8; i++ {
		k := testScalar("dcrd-k", i)
		l := testScalar("dcrd-l", i)
		p := c.Generator().Multiply(k)
		q := c.Generator().Multiply(l)

		var dp, dq, want secp.JacobianPoint
		secp.ScalarBaseMultNonConst(modNScalar(k), &dp)
		secp.ScalarBaseMultNonConst(modNScalar(l), &dq)

		pp, err := FromJacobian(c, &dp)
		require.NoError(t, err)
		require.True(t, pp.Equals(p), "#%d base mult", i)

		secp.AddNonConst(&dp, &dq, &want)
		got, err := FromJacobian(c, &want)
		require.NoError(t, err)
		require.True(t, got.Equals(p.Add(q)), "#%d add", i)

		secp.DoubleNonConst(&dp, &want)
		got, err = FromJacobian(c, &want)
		require.NoError(t, err)
		require.True(t, got.Equals(p.Double()), "#%d double", i)

		jq := ToJacobian(q)
		secp.ScalarMultNonConst(modNScalar(k), &jq, &want)
		got, err = FromJacobian(c, &want)
		require.NoError(t, err)
		require.True(t, got.Equals(q.Multiply(k)), "#%d scalar mult", i)
	}
}

func TestPublicKeyRoundTrip(t *testing.T) {
	c := secp256k1.NewCurve()
	for i := 0; i < 8; i++ {
		p := c.Generator().Multiply(testScalar("pubkey", i))

		pk, err := ToPublicKey(p)
		require.NoError(t, err)
		require.True(t, pk.IsOnCurve())

		x, y, _ := p.Affine()
		require.Equal(t, 0, pk.X().Cmp(x.BigInt()))
		require.Equal(t, 0, pk.Y().Cmp(y.BigInt()))

		require.True(t, FromPublicKey(c, pk).Equals(p))
	}

	_, err := ToPublicKey(c.Infinity())
	require.ErrorIs(t, err, secp256k1.ErrPointAtInfinity)
}

// TestDecompressAgainstBtcec checks DecompressPoint against parsing the
// compressed encoding with btcec.
func TestDecompressAgainstBtcec(t *testing.T) {
	c := secp256k1.NewCurve()
	for i := 0; i < 16; i++ {
		p := c.Generator().Multiply(testScalar("btcec-decompress", i))
		pk, err := ToPublicKey(p)
		require.NoError(t, err)

		enc := pk.SerializeCompressed()
		parsed, err := btcec.ParsePubKey(enc)
		require.NoError(t, err)

		odd := enc[0] == secp.PubKeyFormatCompressedOdd
		x := new(big.Int).SetBytes(enc[1:])
		d, err := c.DecompressPoint(odd, x)
		require.NoError(t, err)
		require.True(t, d.Equals(FromPublicKey(c, parsed)))
	}
}

// TestDecompressRejectsLikeDcrd checks that the x coordinates dcrd cannot
// decompress are exactly those rejected here.
func TestDecompressRejectsLikeDcrd(t *testing.T) {
	c := secp256k1.NewCurve()
	for i := 0; i < 32; i++ {
		x := new(big.Int).Mod(testScalar("dcrd-decompress", i), c.Q())

		var fx, fy secp.FieldVal
		var b [32]byte
		x.FillBytes(b[:])
		fx.SetBytes(&b)
		ok := secp.DecompressY(&fx, false, &fy)

		p, err := c.DecompressPoint(false, x)
		if !ok {
			require.ErrorIs(t, err, secp256k1.ErrInvalidPointCompression)
			continue
		}
		require.NoError(t, err)
		fy.Normalize()
		require.Equal(t, *fy.Bytes(), p.RawY().Bytes())
	}
}
