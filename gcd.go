package modinv

// GCD returns the greatest common divisor (GCD) of a and b, as computed by
// ExtendedGCD. The result carries the sign ExtendedGCD gives it, so it may be
// negative when a or b is.
func GCD(a, b int64) int64 {
	gcd, _, _ := ExtendedGCD(a, b)
	return gcd
}

// ExtendedGCD returns the GCD of a and b along with the Bézout coefficients.
// That is, it returns gcd, coeffA, coeffB such that:
//
//	coeffA*a + coeffB*b == gcd
//
// The triple is the one produced by the textbook recursion
//
//	egcd(0, b) = (b, 0, 1)
//	egcd(a, b) = (g, y - (b/a)*x, x) where (g, x, y) = egcd(b%a, a)
//
// using Go's truncated division, so signs follow the operands. In particular
// ExtendedGCD(0, 0) returns (0, 0, 1). No overflow checking is done.
func ExtendedGCD(a, b int64) (gcd, coeffA, coeffB int64) {
	// forward form of the recursion above: r0 = s0*b + t0*a holds for every
	// row, and the recursion bottoms out on the row where r1 reaches 0
	r0, r1 := b, a
	s0, s1 := int64(1), int64(0)
	t0, t1 := int64(0), int64(1)
	for r1 != 0 {
		q := r0 / r1
		r0, r1 = r1, r0-q*r1
		s0, s1 = s1, s0-q*s1
		t0, t1 = t1, t0-q*t1
	}
	return r0, t0, s0
}
