package secp256k1

import (
	"fmt"
	"math/big"
)

// Curve parameters of secp256k1: y^2 = x^3 + 7 over the field of fieldPrime
// elements, with a cyclic group of prime order groupOrder and cofactor 1.
var (
	fieldPrime = hexToBig("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F")
	groupOrder = hexToBig("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141")

	// Generator point G
	generatorX = hexToBig("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798")
	generatorY = hexToBig("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8")
)

// hexToBig parses a hex constant. It panics on malformed input and is only
// used for package-level constants.
func hexToBig(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("secp256k1: invalid hex constant " + s)
	}
	return v
}

// CoordinateSystem identifies a point representation.
type CoordinateSystem int

// Coordinate systems. Only CoordJacobian is implemented; the others name the
// representations a caller may ask about through SupportsCoordinateSystem.
const (
	CoordAffine CoordinateSystem = iota
	CoordHomogeneous
	CoordJacobian
	CoordJacobianChudnovsky
	CoordJacobianModified
	CoordLambdaAffine
	CoordLambdaProjective
	CoordSkewed
)

var coordinateSystemNames = map[CoordinateSystem]string{
	CoordAffine:             "affine",
	CoordHomogeneous:        "homogeneous",
	CoordJacobian:           "jacobian",
	CoordJacobianChudnovsky: "jacobian-chudnovsky",
	CoordJacobianModified:   "jacobian-modified",
	CoordLambdaAffine:       "lambda-affine",
	CoordLambdaProjective:   "lambda-projective",
	CoordSkewed:             "skewed",
}

// String returns the name of the coordinate system.
func (c CoordinateSystem) String() string {
	if name, ok := coordinateSystemNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CoordinateSystem(%d)", int(c))
}

// Curve holds the secp256k1 parameters and acts as the factory for its
// points. A Curve is never modified after NewCurve returns and may be shared
// freely.
type Curve struct {
	q        *big.Int
	a, b     FieldElement
	order    *big.Int
	cofactor *big.Int
	coord    CoordinateSystem

	infinity  *Point
	generator *Point
}

// NewCurve returns a new secp256k1 curve. Curves returned by separate calls
// are distinct objects that compare equal.
func NewCurve() *Curve {
	c := &Curve{
		q:        new(big.Int).Set(fieldPrime),
		order:    new(big.Int).Set(groupOrder),
		cofactor: big.NewInt(1),
		coord:    CoordJacobian,
	}
	c.a = fieldZero
	c.b.setInt(7)

	c.infinity = &Point{curve: c}
	c.infinity.setInfinity()

	c.generator = c.CreateRawPoint(NewFieldElement(generatorX), NewFieldElement(generatorY), false)
	return c
}

// Clone returns a curve equal to c that shares no state with it.
func (c *Curve) Clone() *Curve {
	return NewCurve()
}

// Equals reports whether c and o describe the same curve, that is, have the
// same field prime and coefficients.
func (c *Curve) Equals(o *Curve) bool {
	if c == o {
		return true
	}
	if o == nil {
		return false
	}
	return c.q.Cmp(o.q) == 0 && c.a.Equals(&o.a) && c.b.Equals(&o.b)
}

// Q returns the field prime.
func (c *Curve) Q() *big.Int {
	return new(big.Int).Set(c.q)
}

// FieldSize returns the bit length of the field prime.
func (c *Curve) FieldSize() int {
	return c.q.BitLen()
}

// A returns the curve coefficient a.
func (c *Curve) A() *FieldElement {
	a := c.a
	return &a
}

// B returns the curve coefficient b.
func (c *Curve) B() *FieldElement {
	b := c.b
	return &b
}

// Order returns the order of the group.
func (c *Curve) Order() *big.Int {
	return new(big.Int).Set(c.order)
}

// Cofactor returns the cofactor, 1 for secp256k1.
func (c *Curve) Cofactor() *big.Int {
	return new(big.Int).Set(c.cofactor)
}

// CoordinateSystem returns the coordinate system points are held in.
func (c *Curve) CoordinateSystem() CoordinateSystem {
	return c.coord
}

// SupportsCoordinateSystem reports whether points can be held in the given
// coordinate system. Only CoordJacobian is supported.
func (c *Curve) SupportsCoordinateSystem(coord CoordinateSystem) bool {
	return coord == CoordJacobian
}

// Infinity returns the point at infinity of c.
func (c *Curve) Infinity() *Point {
	return c.infinity
}

// Generator returns the standard base point G.
func (c *Curve) Generator() *Point {
	return c.generator
}

// FromBigInt lifts x into the field, reducing it modulo the field prime.
func (c *Curve) FromBigInt(x *big.Int) *FieldElement {
	return NewFieldElement(x)
}

// CreateRawPoint returns the affine point (x, y) without checking that it
// lies on the curve. It is meant for callers that have validated the
// coordinates already; use CreatePoint for untrusted input.
func (c *Curve) CreateRawPoint(x, y *FieldElement, withCompression bool) *Point {
	p := &Point{curve: c, x: *x, y: *y, z: fieldOne, compressed: withCompression}
	p.x.normalize()
	p.y.normalize()
	return p
}

// CreatePoint returns the affine point (x, y) after checking that both
// coordinates are field elements and that the point lies on the curve.
func (c *Curve) CreatePoint(x, y *big.Int) (*Point, error) {
	if err := c.checkCoordinate("x", x); err != nil {
		return nil, err
	}
	if err := c.checkCoordinate("y", y); err != nil {
		return nil, err
	}
	p := c.CreateRawPoint(NewFieldElement(x), NewFieldElement(y), false)
	if !p.IsValid() {
		str := fmt.Sprintf("point (%x, %x) is not on the curve", x, y)
		return nil, makeError(ErrPointNotOnCurve, str)
	}
	return p, nil
}

// DecompressPoint recovers the point with x coordinate x whose y coordinate
// is odd when odd is true and even otherwise.
//
// x must lie in [0, q). An x for which x^3 + ax + b has no square root does
// not belong to any point and yields ErrInvalidPointCompression.
func (c *Curve) DecompressPoint(odd bool, x *big.Int) (*Point, error) {
	if err := c.checkCoordinate("x", x); err != nil {
		return nil, err
	}

	fx := NewFieldElement(x)

	// alpha = x^3 + a*x + b
	alpha := fx.Square().Add(&c.a).Multiply(fx).Add(&c.b)
	beta, ok := alpha.Sqrt()
	if !ok {
		str := fmt.Sprintf("invalid point compression: x = %x is not on the curve", x)
		return nil, makeError(ErrInvalidPointCompression, str)
	}
	if beta.TestBitZero() != odd {
		beta = beta.Negate()
	}
	return c.CreateRawPoint(fx, beta, true), nil
}

// ImportPoint returns p as a point of c. p must belong to a curve equal to
// c, such as a clone of it.
func (c *Curve) ImportPoint(p *Point) (*Point, error) {
	if p.curve == c {
		return p, nil
	}
	if !c.Equals(p.curve) {
		return nil, makeError(ErrCurveMismatch, "point belongs to a different curve")
	}
	if p.infinity {
		return c.infinity, nil
	}
	r := *p
	r.curve = c
	return &r, nil
}

// checkCoordinate rejects integers outside [0, q).
func (c *Curve) checkCoordinate(name string, v *big.Int) error {
	if v.Sign() < 0 || v.Cmp(c.q) >= 0 {
		str := fmt.Sprintf("coordinate %s = %x is outside the field", name, v)
		return makeError(ErrCoordinateOutOfRange, str)
	}
	return nil
}

// String returns a short description of the curve.
func (c *Curve) String() string {
	return fmt.Sprintf("secp256k1(q=%x, a=%v, b=%v)", c.q, &c.a, &c.b)
}
