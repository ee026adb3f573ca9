package secp256k1

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"unsafe"
)

// FieldElement represents a field element modulo the secp256k1 field prime
// (2^256 - 2^32 - 977), stored as 5 uint64 limbs in base 2^52.
//
// Values handed out by exported functions and methods are always fully
// reduced into [0, p) and are never modified afterwards: every operation
// returns a new element. The zero value is the element 0.
type FieldElement struct {
	// n represents the sum(i=0..4, n[i] << (i*52)) mod p
	// where p is the field modulus, 2^256 - 2^32 - 977
	n [5]uint64

	// magnitude bounds every limb by 2*magnitude*(2^52-1) so additions can
	// be delayed without overflowing a limb.
	magnitude  int
	normalized bool
}

// Field constants
const (
	// Field modulus reduction constant: 2^32 + 977
	fieldReductionConstant = 0x1000003D1
	// Reduction constant used in multiplication (shifted version)
	fieldReductionConstantShifted = 0x1000003D10

	// Maximum values for limbs
	limb0Max = 0xFFFFFFFFFFFFF // 2^52 - 1
	limb4Max = 0x0FFFFFFFFFFFF // 2^48 - 1

	// Field modulus limbs
	fieldModulusLimb0 = 0xFFFFEFFFFFC2F
	fieldModulusLimb1 = 0xFFFFFFFFFFFFF
	fieldModulusLimb2 = 0xFFFFFFFFFFFFF
	fieldModulusLimb3 = 0xFFFFFFFFFFFFF
	fieldModulusLimb4 = 0x0FFFFFFFFFFFF

	// maxNegateMagnitude is the largest magnitude negate accepts.
	maxNegateMagnitude = 31
)

var (
	fieldZero = FieldElement{magnitude: 0, normalized: true}
	fieldOne  = FieldElement{n: [5]uint64{1, 0, 0, 0, 0}, magnitude: 1, normalized: true}
)

// NewFieldElement lifts an arbitrary integer into the field, reducing it
// modulo p. Negative values are reduced to their non-negative residue.
func NewFieldElement(x *big.Int) *FieldElement {
	var r FieldElement
	r.setBig(x)
	return &r
}

// FieldElementFromUint64 returns the field element with the given value.
func FieldElementFromUint64(v uint64) *FieldElement {
	return &FieldElement{
		n:          [5]uint64{v & limb0Max, v >> 52, 0, 0, 0},
		magnitude:  1,
		normalized: true,
	}
}

// FieldElementFromBytes interprets b as a 32-byte big-endian integer. Unlike
// NewFieldElement it does not reduce: values not less than p are rejected.
func FieldElementFromBytes(b []byte) (*FieldElement, error) {
	if len(b) != 32 {
		str := fmt.Sprintf("malformed field element: %d bytes, want 32", len(b))
		return nil, makeError(ErrInvalidFieldLength, str)
	}
	var r FieldElement
	if r.setB32(b) {
		return nil, makeError(ErrFieldOverflow, "malformed field element: value >= field prime")
	}
	r.normalize()
	return &r, nil
}

// Add returns f + b.
func (f *FieldElement) Add(b *FieldElement) *FieldElement {
	r := *f
	r.add(b)
	r.normalize()
	return &r
}

// AddOne returns f + 1.
func (f *FieldElement) AddOne() *FieldElement {
	return f.Add(&fieldOne)
}

// Subtract returns f - b.
func (f *FieldElement) Subtract(b *FieldElement) *FieldElement {
	var r FieldElement
	r.negate(b, b.magnitude)
	r.add(f)
	r.normalize()
	return &r
}

// Negate returns -f.
func (f *FieldElement) Negate() *FieldElement {
	var r FieldElement
	r.negate(f, f.magnitude)
	r.normalize()
	return &r
}

// Multiply returns f * b.
func (f *FieldElement) Multiply(b *FieldElement) *FieldElement {
	var r FieldElement
	r.mul(f, b)
	r.normalize()
	return &r
}

// Square returns f^2.
func (f *FieldElement) Square() *FieldElement {
	var r FieldElement
	r.sqr(f)
	r.normalize()
	return &r
}

// Invert returns the multiplicative inverse of f. Zero has no inverse and
// inverting it panics.
func (f *FieldElement) Invert() *FieldElement {
	if f.IsZero() {
		panic("secp256k1: inversion of zero field element")
	}
	var r FieldElement
	r.inv(f)
	r.normalize()
	return &r
}

// Divide returns f / b. Dividing by zero panics.
func (f *FieldElement) Divide(b *FieldElement) *FieldElement {
	return f.Multiply(b.Invert())
}

// Sqrt returns a square root of f and true, or nil and false when f is not a
// quadratic residue. Which of the two roots is returned is unspecified; the
// other one is its negation.
func (f *FieldElement) Sqrt() (*FieldElement, bool) {
	var r FieldElement
	if !r.sqrt(f) {
		return nil, false
	}
	r.normalize()
	return &r, true
}

// TestBitZero reports whether the canonical value of f is odd.
func (f *FieldElement) TestBitZero() bool {
	c := *f
	c.normalize()
	return c.isOdd()
}

// IsZero reports whether f is 0.
func (f *FieldElement) IsZero() bool {
	c := *f
	c.normalize()
	return c.isZero()
}

// IsOne reports whether f is 1.
func (f *FieldElement) IsOne() bool {
	c := *f
	c.normalize()
	return c.equal(&fieldOne)
}

// Equals reports whether f and b hold the same residue. The comparison runs
// in constant time.
func (f *FieldElement) Equals(b *FieldElement) bool {
	x, y := *f, *b
	x.normalize()
	y.normalize()
	return x.equal(&y)
}

// Bytes returns the 32-byte big-endian encoding of f.
func (f *FieldElement) Bytes() [32]byte {
	var b [32]byte
	f.getB32(b[:])
	return b
}

// BigInt returns the canonical value of f as a new big.Int.
func (f *FieldElement) BigInt() *big.Int {
	b := f.Bytes()
	return new(big.Int).SetBytes(b[:])
}

// String returns f as 64 hex digits.
func (f *FieldElement) String() string {
	b := f.Bytes()
	return hex.EncodeToString(b[:])
}

// setBig sets r to x mod p.
func (r *FieldElement) setBig(x *big.Int) {
	var v big.Int
	v.Mod(x, fieldPrime)
	var b [32]byte
	v.FillBytes(b[:])
	r.setB32(b[:])
	r.normalize()
}

// setB32 sets a field element from a 32-byte big-endian array and reports
// whether the value was not less than p. An overflowing value is still
// loaded and is reduced by the next normalize.
func (r *FieldElement) setB32(b []byte) (overflow bool) {
	if len(b) != 32 {
		panic("field element byte array must be 32 bytes")
	}

	var d [4]uint64
	for i := 0; i < 4; i++ {
		d[i] = uint64(b[31-8*i]) | uint64(b[30-8*i])<<8 | uint64(b[29-8*i])<<16 | uint64(b[28-8*i])<<24 |
			uint64(b[27-8*i])<<32 | uint64(b[26-8*i])<<40 | uint64(b[25-8*i])<<48 | uint64(b[24-8*i])<<56
	}

	// Convert from 4x64 to 5x52
	r.n[0] = d[0] & limb0Max
	r.n[1] = ((d[0] >> 52) | (d[1] << 12)) & limb0Max
	r.n[2] = ((d[1] >> 40) | (d[2] << 24)) & limb0Max
	r.n[3] = ((d[2] >> 28) | (d[3] << 36)) & limb0Max
	r.n[4] = (d[3] >> 16) & limb4Max

	r.magnitude = 1
	r.normalized = false

	return r.n[4] == limb4Max && (r.n[3]&r.n[2]&r.n[1]) == limb0Max && r.n[0] >= fieldModulusLimb0
}

// getB32 writes the normalized value of r to a 32-byte big-endian array.
func (r *FieldElement) getB32(b []byte) {
	if len(b) != 32 {
		panic("field element byte array must be 32 bytes")
	}

	normalized := *r
	normalized.normalize()

	var d [4]uint64
	d[0] = normalized.n[0] | (normalized.n[1] << 52)
	d[1] = (normalized.n[1] >> 12) | (normalized.n[2] << 40)
	d[2] = (normalized.n[2] >> 24) | (normalized.n[3] << 28)
	d[3] = (normalized.n[3] >> 36) | (normalized.n[4] << 16)

	for i := 0; i < 4; i++ {
		b[31-8*i] = byte(d[i])
		b[30-8*i] = byte(d[i] >> 8)
		b[29-8*i] = byte(d[i] >> 16)
		b[28-8*i] = byte(d[i] >> 24)
		b[27-8*i] = byte(d[i] >> 32)
		b[26-8*i] = byte(d[i] >> 40)
		b[25-8*i] = byte(d[i] >> 48)
		b[24-8*i] = byte(d[i] >> 56)
	}
}

// normalize reduces r to its canonical representation in [0, p).
func (r *FieldElement) normalize() {
	t0, t1, t2, t3, t4 := r.n[0], r.n[1], r.n[2], r.n[3], r.n[4]

	// Reduce t4 at the start so there will be at most a single carry from the first pass
	x := t4 >> 48
	t4 &= limb4Max

	// First pass ensures magnitude is 1
	t0 += x * fieldReductionConstant
	t1 += t0 >> 52
	t0 &= limb0Max
	t2 += t1 >> 52
	t1 &= limb0Max
	m := t1
	t3 += t2 >> 52
	t2 &= limb0Max
	m &= t2
	t4 += t3 >> 52
	t3 &= limb0Max
	m &= t3

	// At most one subtraction of p is left: either t4 carried into bit 48 or
	// the value sits in [p, 2^256).
	x = (t4 >> 48) | uint64(boolToInt(t4 == limb4Max && m == limb0Max && t0 >= fieldModulusLimb0))

	t0 += x * fieldReductionConstant
	t1 += t0 >> 52
	t0 &= limb0Max
	t2 += t1 >> 52
	t1 &= limb0Max
	t3 += t2 >> 52
	t2 &= limb0Max
	t4 += t3 >> 52
	t3 &= limb0Max

	// Mask off the possible multiple of 2^256 from the final reduction
	t4 &= limb4Max

	r.n[0], r.n[1], r.n[2], r.n[3], r.n[4] = t0, t1, t2, t3, t4
	r.magnitude = 1
	r.normalized = true
}

// normalizeWeak gives a field element magnitude 1 without full normalization
func (r *FieldElement) normalizeWeak() {
	t0, t1, t2, t3, t4 := r.n[0], r.n[1], r.n[2], r.n[3], r.n[4]

	x := t4 >> 48
	t4 &= limb4Max

	t0 += x * fieldReductionConstant
	t1 += t0 >> 52
	t0 &= limb0Max
	t2 += t1 >> 52
	t1 &= limb0Max
	t3 += t2 >> 52
	t2 &= limb0Max
	t4 += t3 >> 52
	t3 &= limb0Max

	r.n[0], r.n[1], r.n[2], r.n[3], r.n[4] = t0, t1, t2, t3, t4
	r.magnitude = 1
}

// normalizesToZeroVar reports whether r is 0 mod p without modifying r.
func (r *FieldElement) normalizesToZeroVar() bool {
	t := *r
	t.normalize()
	return t.isZero()
}

// isZero returns true if the field element represents zero
func (r *FieldElement) isZero() bool {
	if !r.normalized {
		panic("field element must be normalized")
	}
	return (r.n[0] | r.n[1] | r.n[2] | r.n[3] | r.n[4]) == 0
}

// isOdd returns true if the field element is odd
func (r *FieldElement) isOdd() bool {
	if !r.normalized {
		panic("field element must be normalized")
	}
	return r.n[0]&1 == 1
}

// equal returns true if two field elements are equal
func (r *FieldElement) equal(a *FieldElement) bool {
	if !r.normalized || !a.normalized {
		panic("field elements must be normalized for comparison")
	}

	return subtle.ConstantTimeCompare(
		(*[40]byte)(unsafe.Pointer(&r.n[0]))[:40],
		(*[40]byte)(unsafe.Pointer(&a.n[0]))[:40],
	) == 1
}

// setInt sets a field element to a small integer value
func (r *FieldElement) setInt(a int) {
	if a < 0 || a > 0x7FFF {
		panic("value out of range")
	}

	r.n = [5]uint64{uint64(a), 0, 0, 0, 0}
	if a == 0 {
		r.magnitude = 0
	} else {
		r.magnitude = 1
	}
	r.normalized = true
}

// negate sets r = -a, where m must be at least the magnitude of a. The
// result has magnitude m+1.
func (r *FieldElement) negate(a *FieldElement, m int) {
	if m < 0 || m > maxNegateMagnitude {
		panic("magnitude out of range")
	}

	// r = 2*(m+1)*p - a
	k := 2 * uint64(m+1)
	r.n[0] = k*fieldModulusLimb0 - a.n[0]
	r.n[1] = k*fieldModulusLimb1 - a.n[1]
	r.n[2] = k*fieldModulusLimb2 - a.n[2]
	r.n[3] = k*fieldModulusLimb3 - a.n[3]
	r.n[4] = k*fieldModulusLimb4 - a.n[4]

	r.magnitude = m + 1
	r.normalized = false
}

// add adds two field elements: r += a
func (r *FieldElement) add(a *FieldElement) {
	r.n[0] += a.n[0]
	r.n[1] += a.n[1]
	r.n[2] += a.n[2]
	r.n[3] += a.n[3]
	r.n[4] += a.n[4]

	r.magnitude += a.magnitude
	r.normalized = false
}

// mulInt multiplies a field element by a small integer
func (r *FieldElement) mulInt(a int) {
	if a < 0 || a > 32 {
		panic("multiplier out of range")
	}

	ua := uint64(a)
	r.n[0] *= ua
	r.n[1] *= ua
	r.n[2] *= ua
	r.n[3] *= ua
	r.n[4] *= ua

	r.magnitude *= a
	r.normalized = false
}

// half sets r = a/2 mod p. The result has magnitude (m>>1)+1.
func (r *FieldElement) half(a *FieldElement) {
	t0, t1, t2, t3, t4 := a.n[0], a.n[1], a.n[2], a.n[3], a.n[4]
	m := a.magnitude

	// Add p when a is odd so the shift below is exact.
	mask := uint64(-int64(t0&1)) >> 12
	t0 += fieldModulusLimb0 & mask
	t1 += mask
	t2 += mask
	t3 += mask
	t4 += mask >> 4

	r.n[0] = (t0 >> 1) + ((t1 & 1) << 51)
	r.n[1] = (t1 >> 1) + ((t2 & 1) << 51)
	r.n[2] = (t2 >> 1) + ((t3 & 1) << 51)
	r.n[3] = (t3 >> 1) + ((t4 & 1) << 51)
	r.n[4] = t4 >> 1

	r.magnitude = (m >> 1) + 1
	r.normalized = false
}

// cmov sets r = a when flag is 1 and leaves r unchanged when flag is 0,
// without branching on flag.
func (r *FieldElement) cmov(a *FieldElement, flag int) {
	mask := uint64(-(int64(flag) & 1))
	r.n[0] ^= mask & (r.n[0] ^ a.n[0])
	r.n[1] ^= mask & (r.n[1] ^ a.n[1])
	r.n[2] ^= mask & (r.n[2] ^ a.n[2])
	r.n[3] ^= mask & (r.n[3] ^ a.n[3])
	r.n[4] ^= mask & (r.n[4] ^ a.n[4])

	r.magnitude = subtle.ConstantTimeSelect(flag, a.magnitude, r.magnitude)
	r.normalized = subtle.ConstantTimeSelect(flag, boolToInt(a.normalized), boolToInt(r.normalized)) == 1
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
