package secp256k1

import "fmt"

// Point is an element of the secp256k1 group held in Jacobian coordinates
// (x, y, z), where the affine coordinates are (x/z^2, y/z^3), or the point at
// infinity.
//
// Points are obtained from a Curve and are immutable: every operation returns
// a new Point, so a Point may be shared between goroutines freely. Results of
// group operations are not normalized; call Normalize or Affine when affine
// coordinates are needed.
type Point struct {
	curve    *Curve
	x, y, z  FieldElement
	infinity bool

	// compressed records the preferred encoding for callers that serialize
	// the point. It has no effect on arithmetic.
	compressed bool
}

// Curve returns the curve p belongs to.
func (p *Point) Curve() *Curve {
	return p.curve
}

// IsInfinity reports whether p is the point at infinity.
func (p *Point) IsInfinity() bool {
	return p.infinity
}

// IsCompressed reports whether p prefers the compressed encoding.
func (p *Point) IsCompressed() bool {
	return p.compressed
}

// RawX returns the Jacobian X coordinate, or nil for the point at infinity.
func (p *Point) RawX() *FieldElement {
	return p.rawCoord(&p.x)
}

// RawY returns the Jacobian Y coordinate, or nil for the point at infinity.
func (p *Point) RawY() *FieldElement {
	return p.rawCoord(&p.y)
}

// RawZ returns the Jacobian Z coordinate, or nil for the point at infinity.
func (p *Point) RawZ() *FieldElement {
	return p.rawCoord(&p.z)
}

func (p *Point) rawCoord(c *FieldElement) *FieldElement {
	if p.infinity {
		return nil
	}
	r := *c
	r.normalize()
	return &r
}

// IsNormalized reports whether p is the point at infinity or has Z = 1.
func (p *Point) IsNormalized() bool {
	if p.infinity {
		return true
	}
	z := p.z
	z.normalize()
	return z.equal(&fieldOne)
}

// Normalize returns p scaled to Z = 1. A point that is already normalized is
// returned as is, without an inversion.
func (p *Point) Normalize() *Point {
	if p.IsNormalized() {
		return p
	}
	var zInv FieldElement
	zInv.inv(&p.z)
	return p.scaleBy(&zInv)
}

// scaleBy returns p with its coordinates multiplied by zInv^2 and zInv^3, zInv
// being the inverse of p.z.
func (p *Point) scaleBy(zInv *FieldElement) *Point {
	var zInv2, zInv3 FieldElement
	zInv2.sqr(zInv)
	zInv3.mul(&zInv2, zInv)

	r := &Point{curve: p.curve, compressed: p.compressed}
	r.x.mul(&p.x, &zInv2)
	r.y.mul(&p.y, &zInv3)
	r.x.normalize()
	r.y.normalize()
	r.z = fieldOne
	return r
}

// Affine returns the affine coordinates of p. ok is false for the point at
// infinity, which has none.
func (p *Point) Affine() (x, y *FieldElement, ok bool) {
	if p.infinity {
		return nil, nil, false
	}
	n := p.Normalize()
	ax, ay := n.x, n.y
	ax.normalize()
	ay.normalize()
	return &ax, &ay, true
}

// IsValid reports whether p satisfies the curve equation. The point at
// infinity is valid. With a cofactor of 1 every point on the curve lies in
// the prime-order group, so no order check is needed.
func (p *Point) IsValid() bool {
	if p.infinity {
		return true
	}
	if p.z.normalizesToZeroVar() {
		return false
	}

	// Y^2 = X^3 + a*X*Z^4 + b*Z^6
	var y2, x3, z2, z4, z6, rhs, t FieldElement
	y2.sqr(&p.y)
	x3.sqr(&p.x)
	x3.mul(&x3, &p.x)
	z2.sqr(&p.z)
	z4.sqr(&z2)
	z6.mul(&z4, &z2)

	rhs.mul(&p.curve.b, &z6)
	t.mul(&p.curve.a, &p.x)
	t.mul(&t, &z4)
	rhs.add(&t)
	rhs.add(&x3)

	y2.normalize()
	rhs.normalize()
	return y2.equal(&rhs)
}

// Equals reports whether p and q are the same group element. Points on
// curves with different parameters are never equal.
func (p *Point) Equals(q *Point) bool {
	if p == q {
		return true
	}
	if q == nil {
		return false
	}
	if p.curve != q.curve && !p.curve.Equals(q.curve) {
		return false
	}
	if p.infinity || q.infinity {
		return p.infinity && q.infinity
	}
	return p.equalVar(q)
}

// equalVar compares two finite points without normalizing them:
// X1*Z2^2 == X2*Z1^2 and Y1*Z2^3 == Y2*Z1^3.
func (p *Point) equalVar(q *Point) bool {
	var z1s, z2s, u1, u2, s1, s2 FieldElement
	z1s.sqr(&p.z)
	z2s.sqr(&q.z)
	u1.mul(&p.x, &z2s)
	u2.mul(&q.x, &z1s)
	s1.mul(&p.y, &z2s)
	s1.mul(&s1, &q.z)
	s2.mul(&q.y, &z1s)
	s2.mul(&s2, &p.z)

	u1.normalize()
	u2.normalize()
	s1.normalize()
	s2.normalize()
	return u1.equal(&u2) && s1.equal(&s2)
}

// Add returns p + q. Adding the point at infinity returns the other operand,
// adding a point to itself doubles it and adding a point to its negation
// gives the point at infinity.
func (p *Point) Add(q *Point) *Point {
	if p.infinity {
		return q
	}
	if q.infinity {
		return p
	}
	r := &Point{curve: p.curve, compressed: p.compressed}
	r.addVar(p, q)
	return p.finish(r)
}

// Subtract returns p - q.
func (p *Point) Subtract(q *Point) *Point {
	if q.infinity {
		return p
	}
	return p.Add(q.Negate())
}

// Double returns 2p.
func (p *Point) Double() *Point {
	if p.infinity {
		return p
	}
	// A point with Y = 0 has order two; secp256k1 has none, but raw points
	// are unchecked.
	if p.y.normalizesToZeroVar() {
		return p.curve.infinity
	}
	r := &Point{curve: p.curve, compressed: p.compressed}
	r.double(p)
	return p.finish(r)
}

// TimesPow2 returns 2^e * p. A negative e panics.
func (p *Point) TimesPow2(e int) *Point {
	if e < 0 {
		panic("secp256k1: negative exponent in TimesPow2")
	}
	r := p
	for i := 0; i < e && !r.infinity; i++ {
		r = r.Double()
	}
	return r
}

// Negate returns -p.
func (p *Point) Negate() *Point {
	if p.infinity {
		return p
	}
	r := *p
	r.y.negate(&p.y, p.y.magnitude)
	r.y.normalizeWeak()
	return &r
}

// String returns the raw Jacobian coordinates of p in hex, or "infinity".
func (p *Point) String() string {
	if p.infinity {
		return "infinity"
	}
	return fmt.Sprintf("(%v, %v, %v)", p.RawX(), p.RawY(), p.RawZ())
}

// finish maps an internal result onto the curve's infinity singleton or
// brings its coordinates back to magnitude 1. A zero Z only comes out of
// doubling an unchecked point with Y = 0.
func (p *Point) finish(r *Point) *Point {
	if r.infinity || r.z.normalizesToZeroVar() {
		return p.curve.infinity
	}
	r.weaken()
	return r
}

// weaken brings every coordinate back to magnitude 1.
func (r *Point) weaken() {
	r.x.normalizeWeak()
	r.y.normalizeWeak()
	r.z.normalizeWeak()
}

// setInfinity sets the point to the point at infinity
func (r *Point) setInfinity() {
	r.x = fieldZero
	r.y = fieldOne
	r.z = fieldZero
	r.infinity = true
}

// double sets r = 2*a using the Jacobian doubling formula for a = 0, with
// the result scaled so that Z3 = Y1*Z1:
//
//	L  = 3/2 * X1^2
//	T  = -X1 * Y1^2
//	X3 = L^2 + 2*T
//	Y3 = -(L*(X3 + T) + Y1^4)
//	Z3 = Y1 * Z1
//
// r may alias a. Output magnitudes are x:3 y:3 z:1. The infinity flag is
// carried over; its coordinates are meaningless.
func (r *Point) double(a *Point) {
	var l, s, t FieldElement

	r.infinity = a.infinity

	r.z.mul(&a.z, &a.y)

	// S = Y1^2
	s.sqr(&a.y)

	// L = 3/2 * X1^2
	l.sqr(&a.x)
	l.mulInt(3)
	l.half(&l)

	// T = -X1*S
	t.negate(&s, 1)
	t.mul(&t, &a.x)

	// X3 = L^2 + 2*T
	r.x.sqr(&l)
	r.x.add(&t)
	r.x.add(&t)

	// S = Y1^4
	s.sqr(&s)

	// T = X3 + T
	t.add(&r.x)

	// Y3 = -(L*T + S)
	r.y.mul(&t, &l)
	r.y.add(&s)
	r.y.negate(&r.y, 2)
}

// addVar sets r = a + b in Jacobian coordinates. When the operands share an
// x coordinate it dispatches to double (equal points) or to infinity
// (opposite points), since the generic formula degenerates there. It is
// variable time. r may alias a or b. Output magnitudes are x:4 y:2 z:1.
func (r *Point) addVar(a, b *Point) {
	if a.infinity {
		*r = *b
		return
	}
	if b.infinity {
		*r = *a
		return
	}

	var z22, z12, u1, u2, s1, s2, h, i, h2, h3, t FieldElement

	z22.sqr(&b.z)
	z12.sqr(&a.z)

	// U1 = X1*Z2^2, U2 = X2*Z1^2
	u1.mul(&a.x, &z22)
	u2.mul(&b.x, &z12)

	// S1 = Y1*Z2^3, S2 = Y2*Z1^3
	s1.mul(&a.y, &z22)
	s1.mul(&s1, &b.z)
	s2.mul(&b.y, &z12)
	s2.mul(&s2, &a.z)

	// H = U2 - U1
	h.negate(&u1, 1)
	h.add(&u2)

	// I = S1 - S2
	i.negate(&s2, 1)
	i.add(&s1)

	if h.normalizesToZeroVar() {
		if i.normalizesToZeroVar() {
			r.double(a)
			return
		}
		r.setInfinity()
		return
	}

	r.infinity = false

	// Z3 = Z1*Z2*H
	t.mul(&h, &b.z)
	r.z.mul(&a.z, &t)

	// H2 = -H^2, H3 = -H^3
	h2.sqr(&h)
	h2.negate(&h2, 1)
	h3.mul(&h2, &h)

	// T = -U1*H^2
	t.mul(&u1, &h2)

	// X3 = I^2 - H^3 - 2*U1*H^2
	r.x.sqr(&i)
	r.x.add(&h3)
	r.x.add(&t)
	r.x.add(&t)

	// Y3 = (X3 - U1*H^2)*I - S1*H^3
	t.add(&r.x)
	r.y.mul(&t, &i)
	h3.mul(&h3, &s1)
	r.y.add(&h3)
}
