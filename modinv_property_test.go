package modinv_test

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"pgregory.net/rapid"

	"github.com/kbolino/modinv"
)

// keeps Bézout products and remainders away from the int64 edges
const propBound = 1 << 62

// recursiveExtendedGCD is the textbook definition ExtendedGCD must agree with.
func recursiveExtendedGCD(a, b int64) (int64, int64, int64) {
	if a == 0 {
		return b, 0, 1
	}
	gcd, x, y := recursiveExtendedGCD(b%a, a)
	return gcd, y - (b/a)*x, x
}

func TestProperty_ExtendedGCDBezout(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.Int64Range(-propBound, propBound).Draw(rt, "a")
		b := rapid.Int64Range(-propBound, propBound).Draw(rt, "b")

		gcd, x, y := modinv.ExtendedGCD(a, b)
		if x*a+y*b != gcd {
			rt.Fatalf("ExtendedGCD(%d, %d) == (%d, %d, %d) but x*a+y*b == %d", a, b, gcd, x, y, x*a+y*b)
		}

		want := new(big.Int).GCD(nil, nil, new(big.Int).Abs(big.NewInt(a)), new(big.Int).Abs(big.NewInt(b)))
		if got := new(big.Int).Abs(big.NewInt(gcd)); got.Cmp(want) != 0 {
			rt.Fatalf("|gcd(%d, %d)| == %s, want %s", a, b, got, want)
		}
	})
}

func TestProperty_ExtendedGCDMatchesRecursion(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.Int64Range(-propBound, propBound).Draw(rt, "a")
		b := rapid.Int64Range(-propBound, propBound).Draw(rt, "b")

		gcd, x, y := modinv.ExtendedGCD(a, b)
		wantGCD, wantX, wantY := recursiveExtendedGCD(a, b)
		if gcd != wantGCD || x != wantX || y != wantY {
			rt.Fatalf("ExtendedGCD(%d, %d) == (%d, %d, %d), recursion gives (%d, %d, %d)", a, b, gcd, x, y, wantGCD, wantX, wantY)
		}
	})
}

func TestProperty_ModularInverseIsInverse(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.Int64Range(-propBound, propBound).Draw(rt, "a")
		m := rapid.Int64Range(2, propBound).Draw(rt, "m")

		bigA, bigM := big.NewInt(a), big.NewInt(m)
		coprime := new(big.Int).GCD(nil, nil, new(big.Int).Abs(bigA), bigM).Cmp(big.NewInt(1)) == 0

		x, ok := modinv.ModularInverse(a, m)
		if ok != coprime {
			rt.Fatalf("ModularInverse(%d, %d) ok == %t, coprime == %t", a, m, ok, coprime)
		}
		if !ok {
			return
		}
		if x < 0 || x >= m {
			rt.Fatalf("ModularInverse(%d, %d) == %d, not in [0, %d)", a, m, x, m)
		}
		prod := new(big.Int).Mul(bigA, big.NewInt(x))
		if prod.Mod(prod, bigM).Cmp(big.NewInt(1)) != 0 {
			rt.Fatalf("(%d * %d) mod %d == %s, want 1", a, x, m, prod)
		}
		want := new(big.Int).ModInverse(new(big.Int).Mod(bigA, bigM), bigM)
		if want.Int64() != x {
			rt.Fatalf("ModularInverse(%d, %d) == %d, math/big gives %s", a, m, x, want)
		}
	})
}

func TestProperty_ModularInverseGopter(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("no inverse when a and m share a factor", prop.ForAll(
		func(a, m, k int64) bool {
			_, err := modinv.TryModularInverse(a*k, m*k)
			return err == modinv.ErrNotInvertible
		},
		gen.Int64Range(-1_000_000, 1_000_000),
		gen.Int64Range(1, 1_000_000),
		gen.Int64Range(2, 1_000),
	))

	properties.Property("repeated calls give identical results", prop.ForAll(
		func(a, m int64) bool {
			x1, err1 := modinv.TryModularInverse(a, m)
			x2, err2 := modinv.TryModularInverse(a, m)
			return x1 == x2 && err1 == err2
		},
		gen.Int64(),
		gen.Int64(),
	))

	properties.Property("non-positive modulus is rejected", prop.ForAll(
		func(a, m int64) bool {
			_, err := modinv.TryModularInverse(a, m)
			return err == modinv.ErrInvalidModulus
		},
		gen.Int64(),
		gen.Int64Range(-1_000_000, 0),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
