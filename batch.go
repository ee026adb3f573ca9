package secp256k1

// NormalizeAll returns the points scaled to Z = 1, in the same order, using
// a single field inversion for the whole slice. Points at infinity and points
// that are already normalized are passed through unchanged.
func NormalizeAll(points []*Point) []*Point {
	out := make([]*Point, len(points))

	var (
		zs  []FieldElement
		idx []int
	)
	for i, p := range points {
		if p.IsNormalized() {
			out[i] = p
			continue
		}
		zs = append(zs, p.z)
		idx = append(idx, i)
	}
	if len(zs) == 0 {
		return out
	}

	zInvs := make([]FieldElement, len(zs))
	batchInverse(zInvs, zs)
	for j, i := range idx {
		out[i] = points[i].scaleBy(&zInvs[j])
	}
	return out
}

// batchInverse sets out[i] = 1/a[i] with Montgomery's trick: one inversion
// of the product of all inputs and three multiplications per element. No
// input may be zero.
func batchInverse(out []FieldElement, a []FieldElement) {
	n := len(a)
	if n == 0 {
		return
	}

	// s_i = a_0 * a_1 * ... * a_{i-1}
	s := make([]FieldElement, n)
	s[0].setInt(1)
	for i := 1; i < n; i++ {
		s[i].mul(&s[i-1], &a[i-1])
	}

	// u = (a_0 * a_1 * ... * a_{n-1})^-1
	var u FieldElement
	u.mul(&s[n-1], &a[n-1])
	u.inv(&u)

	// out_i = (a_0 * ... * a_{i-1}) * (a_0 * ... * a_i)^-1
	for i := n - 1; i >= 0; i-- {
		out[i].mul(&u, &s[i])
		u.mul(&u, &a[i])
	}
}
