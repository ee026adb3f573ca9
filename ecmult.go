package secp256k1

import (
	"crypto/subtle"
	"math/big"
)

// Window configuration for point multiplication
const (
	// Window size in bits (4 bits = 16 table entries)
	ecmultWindowSize = 4
	ecmultTableSize  = 1 << ecmultWindowSize // 16

	// Number of windows needed for 256-bit scalars
	ecmultWindows = (256 + ecmultWindowSize - 1) / ecmultWindowSize // 64 windows
)

// Multiply returns k*p. k is reduced modulo the group order first, which is
// sound because the cofactor is 1; a negative k therefore multiplies by -p.
// A k that is a multiple of the order yields the point at infinity.
func (p *Point) Multiply(k *big.Int) *Point {
	return p.MultiplyScalar(NewScalar(k))
}

// MultiplyScalar returns k*p.
//
// A fixed 4-bit window is used: every one of the 64 windows costs four
// doublings and one addition, and the table entry is chosen by conditional
// moves over the whole table, so the memory access pattern does not depend
// on k. The additions themselves are not constant time.
func (p *Point) MultiplyScalar(k *Scalar) *Point {
	if p.infinity || k.isZero() {
		return p.curve.infinity
	}
	r := &Point{curve: p.curve}
	r.ecmultConst(p, k)
	// addVar copies table entries into an infinite accumulator, flag included.
	r.compressed = p.compressed
	return p.finish(r)
}

// ecmultConst sets r = k*a with the fixed window method.
func (r *Point) ecmultConst(a *Point, k *Scalar) {
	var table [ecmultTableSize]Point
	buildWindowTable(&table, a)

	r.setInfinity()

	var t Point
	for i := ecmultWindows - 1; i >= 0; i-- {
		for j := 0; j < ecmultWindowSize; j++ {
			r.double(r)
		}
		bits := k.getBits(uint(i*ecmultWindowSize), ecmultWindowSize)
		tableLookup(&t, &table, int(bits))
		r.addVar(r, &t)
		r.weaken()
	}
}

// buildWindowTable fills table[i] = i*a, table[0] being the point at
// infinity.
func buildWindowTable(table *[ecmultTableSize]Point, a *Point) {
	table[0].curve = a.curve
	table[0].setInfinity()
	table[1] = *a
	table[1].weaken()
	for i := 2; i < ecmultTableSize; i++ {
		table[i].curve = a.curve
		table[i].addVar(&table[i-1], a)
		table[i].weaken()
	}
}

// tableLookup sets r = table[idx], touching every entry.
func tableLookup(r *Point, table *[ecmultTableSize]Point, idx int) {
	*r = table[0]
	for i := 1; i < ecmultTableSize; i++ {
		r.cmov(&table[i], subtle.ConstantTimeEq(int32(i), int32(idx)))
	}
}

// cmov sets r = a when flag is 1 and leaves r unchanged when flag is 0.
func (r *Point) cmov(a *Point, flag int) {
	r.x.cmov(&a.x, flag)
	r.y.cmov(&a.y, flag)
	r.z.cmov(&a.z, flag)
	r.infinity = subtle.ConstantTimeSelect(flag, boolToInt(a.infinity), boolToInt(r.infinity)) == 1
}

// SumOfTwoMultiplies returns k*p + l*q using interleaved double-and-add
// (Shamir's trick): one doubling per bit for both products together. It runs
// in variable time and is meant for public inputs such as signature
// verification. p and q must belong to equal curves; the result belongs to
// p's curve.
func SumOfTwoMultiplies(p *Point, k *big.Int, q *Point, l *big.Int) *Point {
	ks, ls := NewScalar(k), NewScalar(l)

	// table[i] holds (i&1)*p + (i>>1)*q
	var table [4]Point
	table[0].curve = p.curve
	table[0].setInfinity()
	table[1] = *p
	table[2] = *q
	table[3].curve = p.curve
	table[3].addVar(p, q)
	for i := range table {
		table[i].weaken()
	}

	r := &Point{curve: p.curve}
	r.setInfinity()
	for i := 255; i >= 0; i-- {
		if !r.infinity {
			r.double(r)
		}
		idx := ks.getBits(uint(i), 1) | ls.getBits(uint(i), 1)<<1
		if idx != 0 {
			r.addVar(r, &table[idx])
		}
		r.weaken()
	}
	r.compressed = p.compressed
	return p.finish(r)
}

// ecmultSimple computes k*a by plain double-and-add, most significant bit
// first. It serves as a reference for the windowed method.
func ecmultSimple(a *Point, k *Scalar) *Point {
	r := a.curve.infinity
	for i := 255; i >= 0; i-- {
		r = r.Double()
		if k.getBits(uint(i), 1) == 1 {
			r = r.Add(a)
		}
	}
	return r
}
