// Package secp256k1 implements the group of points of the secp256k1 elliptic
// curve, y^2 = x^3 + 7 over the prime field of order 2^256 - 2^32 - 977.
//
// Field elements are held as five 52-bit limbs and points in Jacobian
// coordinates, so group operations need no field inversion until affine
// coordinates are asked for. All exported values are immutable.
//
// A point is recovered from its compressed form, an x coordinate and the
// parity of y, with Curve.DecompressPoint:
//
//	c := secp256k1.NewCurve()
//	p, err := c.DecompressPoint(false, x)
//	if errors.Is(err, secp256k1.ErrInvalidPointCompression) {
//		// x is not the x coordinate of any point
//	}
package secp256k1
