// Package interop exchanges points with the decred and btcsuite secp256k1
// libraries without going through a serialized encoding.
package interop

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"secp256k1.mleku.dev"
)

// ToJacobian returns p as a dcrd Jacobian point. The point at infinity maps
// to the point with all coordinates zero, which dcrd treats as infinity.
func ToJacobian(p *secp256k1.Point) secp.JacobianPoint {
	var j secp.JacobianPoint
	if p.IsInfinity() {
		return j
	}
	setFieldVal(&j.X, p.RawX())
	setFieldVal(&j.Y, p.RawY())
	setFieldVal(&j.Z, p.RawZ())
	return j
}

// FromJacobian returns the point of c equal to j. A j with Z = 0 is the point
// at infinity; any other j must lie on the curve.
func FromJacobian(c *secp256k1.Curve, j *secp.JacobianPoint) (*secp256k1.Point, error) {
	var a secp.JacobianPoint
	a.Set(j)
	a.Z.Normalize()
	if a.Z.IsZero() {
		return c.Infinity(), nil
	}
	a.ToAffine()

	p := c.CreateRawPoint(fieldElement(&a.X), fieldElement(&a.Y), false)
	if !p.IsValid() {
		return nil, secp256k1.Error{
			Err:         secp256k1.ErrPointNotOnCurve,
			Description: fmt.Sprintf("jacobian point (%v, %v) is not on the curve", &a.X, &a.Y),
		}
	}
	return p, nil
}

// ToPublicKey returns p as a btcec public key. The point at infinity is not a
// valid public key.
func ToPublicKey(p *secp256k1.Point) (*btcec.PublicKey, error) {
	x, y, ok := p.Affine()
	if !ok {
		return nil, secp256k1.Error{
			Err:         secp256k1.ErrPointAtInfinity,
			Description: "the point at infinity has no public key",
		}
	}
	var fx, fy btcec.FieldVal
	setFieldVal(&fx, x)
	setFieldVal(&fy, y)
	return btcec.NewPublicKey(&fx, &fy), nil
}

// FromPublicKey returns the point of c held by pk. Keys obtained from
// btcec.ParsePubKey are known to lie on the curve and are not checked again.
func FromPublicKey(c *secp256k1.Curve, pk *btcec.PublicKey) *secp256k1.Point {
	var j btcec.JacobianPoint
	pk.AsJacobian(&j)
	return c.CreateRawPoint(fieldElement(&j.X), fieldElement(&j.Y), false)
}

// setFieldVal copies f into v.
func setFieldVal(v *secp.FieldVal, f *secp256k1.FieldElement) {
	b := f.Bytes()
	v.SetBytes(&b)
}

// fieldElement converts a normalized dcrd field value.
func fieldElement(v *secp.FieldVal) *secp256k1.FieldElement {
	var n secp.FieldVal
	n.Set(v).Normalize()
	f, err := secp256k1.FieldElementFromBytes(n.Bytes()[:])
	if err != nil {
		// a normalized FieldVal is always below the prime
		panic(err)
	}
	return f
}
