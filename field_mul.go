package secp256k1

import "math/bits"

// uint128 represents a 128-bit unsigned integer for field arithmetic
type uint128 struct {
	high, low uint64
}

// mulU64ToU128 multiplies two uint64 values and returns a uint128
func mulU64ToU128(a, b uint64) uint128 {
	hi, lo := bits.Mul64(a, b)
	return uint128{high: hi, low: lo}
}

// addMulU128 computes c + a*b and returns the result as uint128
func addMulU128(c uint128, a, b uint64) uint128 {
	hi, lo := bits.Mul64(a, b)
	newLo, carry := bits.Add64(c.low, lo, 0)
	newHi, _ := bits.Add64(c.high, hi, carry)
	return uint128{high: newHi, low: newLo}
}

// addU128 adds a uint64 to a uint128
func addU128(c uint128, a uint64) uint128 {
	newLo, carry := bits.Add64(c.low, a, 0)
	newHi, _ := bits.Add64(c.high, 0, carry)
	return uint128{high: newHi, low: newLo}
}

func (u uint128) lo() uint64 {
	return u.low
}

// rshift shifts the uint128 right by n bits
func (u uint128) rshift(n uint) uint128 {
	if n >= 64 {
		return uint128{high: 0, low: u.high >> (n - 64)}
	}
	return uint128{
		high: u.high >> n,
		low:  (u.low >> n) | (u.high << (64 - n)),
	}
}

// maxMulMagnitude is the largest input magnitude mul and sqr accept without
// a weak normalization first.
const maxMulMagnitude = 8

// mul multiplies two field elements: r = a * b. The result has magnitude 1.
// r may alias a or b.
func (r *FieldElement) mul(a, b *FieldElement) {
	var aTemp, bTemp FieldElement
	if a.magnitude > maxMulMagnitude {
		aTemp = *a
		aTemp.normalizeWeak()
		a = &aTemp
	}
	if b.magnitude > maxMulMagnitude {
		bTemp = *b
		bTemp.normalizeWeak()
		b = &bTemp
	}

	a0, a1, a2, a3, a4 := a.n[0], a.n[1], a.n[2], a.n[3], a.n[4]
	b0, b1, b2, b3, b4 := b.n[0], b.n[1], b.n[2], b.n[3], b.n[4]

	const M = limb0Max
	const R = fieldReductionConstantShifted

	// [... a b c] is shorthand for ... + a<<104 + b<<52 + c<<0 mod p.
	// px is sum(a[i]*b[x-i]); [x 0 0 0 0 0] = [x*R].

	// p3
	var c, d uint128
	d = mulU64ToU128(a0, b3)
	d = addMulU128(d, a1, b2)
	d = addMulU128(d, a2, b1)
	d = addMulU128(d, a3, b0)

	// p8
	c = mulU64ToU128(a4, b4)
	d = addMulU128(d, R, c.lo())
	c = c.rshift(64)

	t3 := d.lo() & M
	d = d.rshift(52)

	// p4
	d = addMulU128(d, a0, b4)
	d = addMulU128(d, a1, b3)
	d = addMulU128(d, a2, b2)
	d = addMulU128(d, a3, b1)
	d = addMulU128(d, a4, b0)
	d = addMulU128(d, R<<12, c.lo())

	t4 := d.lo() & M
	d = d.rshift(52)
	tx := t4 >> 48
	t4 &= (M >> 4)

	// p0
	c = mulU64ToU128(a0, b0)

	// p5
	d = addMulU128(d, a1, b4)
	d = addMulU128(d, a2, b3)
	d = addMulU128(d, a3, b2)
	d = addMulU128(d, a4, b1)

	u0 := d.lo() & M
	d = d.rshift(52)
	u0 = (u0 << 4) | tx
	c = addMulU128(c, u0, R>>4)

	r0 := c.lo() & M
	c = c.rshift(52)

	// p1
	c = addMulU128(c, a0, b1)
	c = addMulU128(c, a1, b0)

	// p6
	d = addMulU128(d, a2, b4)
	d = addMulU128(d, a3, b3)
	d = addMulU128(d, a4, b2)

	c = addMulU128(c, R, d.lo()&M)
	d = d.rshift(52)

	r1 := c.lo() & M
	c = c.rshift(52)

	// p2
	c = addMulU128(c, a0, b2)
	c = addMulU128(c, a1, b1)
	c = addMulU128(c, a2, b0)

	// p7
	d = addMulU128(d, a3, b4)
	d = addMulU128(d, a4, b3)

	c = addMulU128(c, R, d.lo())
	d = d.rshift(64)

	r2 := c.lo() & M
	c = c.rshift(52)

	c = addMulU128(c, R<<12, d.lo())
	c = addU128(c, t3)

	r3 := c.lo() & M
	c = c.rshift(52)

	r.n[0], r.n[1], r.n[2], r.n[3], r.n[4] = r0, r1, r2, r3, c.lo()+t4
	r.magnitude = 1
	r.normalized = false
}

// sqr squares a field element: r = a^2. The result has magnitude 1. r may
// alias a.
func (r *FieldElement) sqr(a *FieldElement) {
	var aTemp FieldElement
	if a.magnitude > maxMulMagnitude {
		aTemp = *a
		aTemp.normalizeWeak()
		a = &aTemp
	}

	a0, a1, a2, a3, a4 := a.n[0], a.n[1], a.n[2], a.n[3], a.n[4]

	const M = limb0Max
	const R = fieldReductionConstantShifted

	// p3 = 2*a0*a3 + 2*a1*a2
	var c, d uint128
	d = mulU64ToU128(a0*2, a3)
	d = addMulU128(d, a1*2, a2)

	// p8 = a4*a4
	c = mulU64ToU128(a4, a4)
	d = addMulU128(d, R, c.lo())
	c = c.rshift(64)

	t3 := d.lo() & M
	d = d.rshift(52)

	// p4 = 2*a0*a4 + 2*a1*a3 + a2*a2
	a4 *= 2
	d = addMulU128(d, a0, a4)
	d = addMulU128(d, a1*2, a3)
	d = addMulU128(d, a2, a2)
	d = addMulU128(d, R<<12, c.lo())

	t4 := d.lo() & M
	d = d.rshift(52)
	tx := t4 >> 48
	t4 &= (M >> 4)

	// p0 = a0*a0
	c = mulU64ToU128(a0, a0)

	// p5 = 2*a1*a4 + 2*a2*a3 (a4 already doubled)
	d = addMulU128(d, a1, a4)
	d = addMulU128(d, a2*2, a3)

	u0 := d.lo() & M
	d = d.rshift(52)
	u0 = (u0 << 4) | tx
	c = addMulU128(c, u0, R>>4)

	r0 := c.lo() & M
	c = c.rshift(52)

	// p1 = 2*a0*a1
	a0 *= 2
	c = addMulU128(c, a0, a1)

	// p6 = 2*a2*a4 + a3*a3
	d = addMulU128(d, a2, a4)
	d = addMulU128(d, a3, a3)

	c = addMulU128(c, R, d.lo()&M)
	d = d.rshift(52)

	r1 := c.lo() & M
	c = c.rshift(52)

	// p2 = 2*a0*a2 + a1*a1
	c = addMulU128(c, a0, a2)
	c = addMulU128(c, a1, a1)

	// p7 = 2*a3*a4
	d = addMulU128(d, a3, a4)

	c = addMulU128(c, R, d.lo())
	d = d.rshift(64)

	r2 := c.lo() & M
	c = c.rshift(52)

	c = addMulU128(c, R<<12, d.lo())
	c = addU128(c, t3)

	r3 := c.lo() & M
	c = c.rshift(52)

	r.n[0], r.n[1], r.n[2], r.n[3], r.n[4] = r0, r1, r2, r3, c.lo()+t4
	r.magnitude = 1
	r.normalized = false
}

// sqrN sets r = a^(2^n).
func (r *FieldElement) sqrN(a *FieldElement, n int) {
	*r = *a
	for i := 0; i < n; i++ {
		r.sqr(r)
	}
}

// powBlocks returns a^(2^2-1), a^(2^22-1) and a^(2^223-1). The exponents
// p-2 and (p+1)/4 both start with a run of 223 ones followed by a zero and a
// run of 22 ones, so inversion and square root share this addition chain:
// 1, [2], 3, 6, 9, 11, [22], 44, 88, 176, 220, [223].
func powBlocks(a *FieldElement) (x2, x22, x223 FieldElement) {
	var x3, x6, x9, x11, x44, x88, x176, x220 FieldElement

	x2.sqr(a)
	x2.mul(&x2, a)

	x3.sqr(&x2)
	x3.mul(&x3, a)

	x6.sqrN(&x3, 3)
	x6.mul(&x6, &x3)

	x9.sqrN(&x6, 3)
	x9.mul(&x9, &x3)

	x11.sqrN(&x9, 2)
	x11.mul(&x11, &x2)

	x22.sqrN(&x11, 11)
	x22.mul(&x22, &x11)

	x44.sqrN(&x22, 22)
	x44.mul(&x44, &x22)

	x88.sqrN(&x44, 44)
	x88.mul(&x88, &x44)

	x176.sqrN(&x88, 88)
	x176.mul(&x176, &x88)

	x220.sqrN(&x176, 44)
	x220.mul(&x220, &x44)

	x223.sqrN(&x220, 3)
	x223.mul(&x223, &x3)

	return x2, x22, x223
}

// inv sets r = a^(p-2), the modular inverse of a by Fermat's little theorem.
// The sequence of operations does not depend on a. The inverse of 0 comes
// out as 0; exported callers reject it beforehand.
func (r *FieldElement) inv(a *FieldElement) {
	an := *a
	x2, x22, x223 := powBlocks(&an)

	// p-2 in binary: 223 ones, a zero, 22 ones, then 0000101101.
	var t FieldElement
	t.sqrN(&x223, 23)
	t.mul(&t, &x22)
	t.sqrN(&t, 5)
	t.mul(&t, &an)
	t.sqrN(&t, 3)
	t.mul(&t, &x2)
	t.sqrN(&t, 2)
	r.mul(&t, &an)
}

// sqrt sets r to a square root of a and reports whether one exists.
//
// Since p is congruent to 3 mod 4, a^((p+1)/4) is a root whenever a is a
// quadratic residue. For a non-residue the same power is a root of -a
// instead, so the candidate is squared and compared to a before success is
// reported. r is left holding the candidate either way.
func (r *FieldElement) sqrt(a *FieldElement) bool {
	an := *a
	an.normalize()
	x2, x22, x223 := powBlocks(&an)

	// (p+1)/4 in binary: 223 ones, a zero, 22 ones, then 00001100.
	var t FieldElement
	t.sqrN(&x223, 23)
	t.mul(&t, &x22)
	t.sqrN(&t, 6)
	t.mul(&t, &x2)
	r.sqrN(&t, 2)

	var check FieldElement
	check.sqr(r)
	check.normalize()
	return check.equal(&an)
}
