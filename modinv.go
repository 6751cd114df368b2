// Package modinv computes modular multiplicative inverses of 64-bit integers
// using the extended Euclidean algorithm.
// See the ExtendedGCD and ModularInverse functions for details.
package modinv

import "errors"

// Common errors returned by functions in this package.
var (
	ErrNotInvertible  = errors.New("no modular inverse: operands are not coprime")
	ErrInvalidModulus = errors.New("modulus is not positive")
)

// TryModularInverse returns the inverse x of a modulo m, that is, the unique x
// in [0, m) such that:
//
//	(a*x) % m == 1 % m
//
// TryModularInverse returns ErrInvalidModulus if m is not positive and
// ErrNotInvertible if a and m are not coprime. Every a is invertible modulo 1,
// with inverse 0.
func TryModularInverse(a, m int64) (int64, error) {
	if m <= 0 {
		return 0, ErrInvalidModulus
	}
	gcd, coeffA, _ := ExtendedGCD(a, m)
	// ExtendedGCD reports -1 rather than 1 for some negative a (e.g. a = -1);
	// either sign means a and m are coprime
	if gcd != 1 && gcd != -1 {
		return 0, ErrNotInvertible
	}
	// coeffA*a + coeffB*m == gcd, so coeffA*gcd is the inverse up to a
	// multiple of m
	return floorMod(coeffA*gcd, m), nil
}

// ModularInverse is like TryModularInverse but reports only whether the
// inverse exists. It returns the inverse and true, or 0 and false.
func ModularInverse(a, m int64) (int64, bool) {
	x, err := TryModularInverse(a, m)
	if err != nil {
		return 0, false
	}
	return x, true
}

// floorMod returns x modulo m in [0, m) for positive m.
func floorMod(x, m int64) int64 {
	r := x % m
	if r < 0 {
		// -m < r < 0, so unlike x%m+m this never exceeds m
		r += m
	}
	return r
}
