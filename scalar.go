package secp256k1

import (
	"encoding/binary"
	"math/big"
	"math/bits"
)

// Scalar is an integer modulo the group order n of secp256k1, stored as 4
// little-endian uint64 limbs. It is the multiplier type consumed by point
// multiplication; the zero value is 0.
type Scalar struct {
	d [4]uint64
}

// Group order constants (secp256k1 curve order n)
const (
	scalarN0 = 0xBFD25E8CD0364141
	scalarN1 = 0xBAAEDCE6AF48A03B
	scalarN2 = 0xFFFFFFFFFFFFFFFE
	scalarN3 = 0xFFFFFFFFFFFFFFFF
)

// NewScalar returns k mod n. Negative k yields its non-negative residue, so
// multiplying by NewScalar(-k) negates the product.
func NewScalar(k *big.Int) *Scalar {
	var s Scalar
	s.setBig(k)
	return &s
}

// IsZero reports whether s is 0.
func (s *Scalar) IsZero() bool {
	return s.isZero()
}

// Bytes returns the 32-byte big-endian encoding of s.
func (s *Scalar) Bytes() [32]byte {
	var b [32]byte
	s.getB32(b[:])
	return b
}

// BigInt returns s as a new big.Int.
func (s *Scalar) BigInt() *big.Int {
	b := s.Bytes()
	return new(big.Int).SetBytes(b[:])
}

// setBig sets r to k mod n.
func (r *Scalar) setBig(k *big.Int) {
	var v big.Int
	v.Mod(k, groupOrder)
	var b [32]byte
	v.FillBytes(b[:])
	r.setB32(b[:])
}

// setB32 sets a scalar from a 32-byte big-endian array, reducing modulo group order
func (r *Scalar) setB32(bin []byte) (overflow bool) {
	r.d[0] = readBE64(bin[24:32])
	r.d[1] = readBE64(bin[16:24])
	r.d[2] = readBE64(bin[8:16])
	r.d[3] = readBE64(bin[0:8])

	overflow = r.checkOverflow()
	r.reduce(boolToInt(overflow))
	return overflow
}

// getB32 converts a scalar to a 32-byte big-endian array
func (r *Scalar) getB32(bin []byte) {
	if len(bin) != 32 {
		panic("output buffer must be 32 bytes")
	}

	writeBE64(bin[0:8], r.d[3])
	writeBE64(bin[8:16], r.d[2])
	writeBE64(bin[16:24], r.d[1])
	writeBE64(bin[24:32], r.d[0])
}

// checkOverflow checks if the scalar is >= the group order
func (r *Scalar) checkOverflow() bool {
	if r.d[3] != scalarN3 {
		return r.d[3] > scalarN3
	}
	if r.d[2] != scalarN2 {
		return r.d[2] > scalarN2
	}
	if r.d[1] != scalarN1 {
		return r.d[1] > scalarN1
	}
	return r.d[0] >= scalarN0
}

// reduce subtracts overflow*n. A 256-bit value is below 2n, so one
// subtraction is enough.
func (r *Scalar) reduce(overflow int) {
	if overflow < 0 || overflow > 1 {
		panic("overflow must be 0 or 1")
	}

	o := uint64(overflow)
	var borrow uint64
	r.d[0], borrow = bits.Sub64(r.d[0], o*scalarN0, 0)
	r.d[1], borrow = bits.Sub64(r.d[1], o*scalarN1, borrow)
	r.d[2], borrow = bits.Sub64(r.d[2], o*scalarN2, borrow)
	r.d[3], _ = bits.Sub64(r.d[3], o*scalarN3, borrow)
}

// isZero returns true if the scalar is zero
func (r *Scalar) isZero() bool {
	return (r.d[0] | r.d[1] | r.d[2] | r.d[3]) == 0
}

// getBits extracts count bits starting at offset
func (r *Scalar) getBits(offset, count uint) uint32 {
	if count == 0 || count > 32 || offset+count > 256 {
		panic("invalid bit range")
	}

	limbIdx := offset / 64
	bitIdx := offset % 64

	if bitIdx+count <= 64 {
		return uint32((r.d[limbIdx] >> bitIdx) & ((1 << count) - 1))
	}

	// Bits span two limbs
	lowBits := 64 - bitIdx
	highBits := count - lowBits

	low := uint32((r.d[limbIdx] >> bitIdx) & ((1 << lowBits) - 1))
	high := uint32(r.d[limbIdx+1] & ((1 << highBits) - 1))

	return low | (high << lowBits)
}

// readBE64 reads a uint64 in big endian
func readBE64(p []byte) uint64 {
	return binary.BigEndian.Uint64(p)
}

// writeBE64 writes a uint64 in big endian
func writeBE64(p []byte, x uint64) {
	binary.BigEndian.PutUint64(p, x)
}
