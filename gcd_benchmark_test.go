package modinv_test

import (
	"fmt"
	"testing"

	"github.com/kbolino/modinv"
)

func BenchmarkExtendedGCD(b *testing.B) {
	for _, c := range GCDCases {
		b.Run(fmt.Sprintf("ExtendedGCD(%d,%d)", c.A, c.B), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				modinv.ExtendedGCD(c.A, c.B)
			}
		})
	}
}

func BenchmarkTryModularInverse(b *testing.B) {
	for _, c := range InverseCases {
		b.Run(fmt.Sprintf("TryModularInverse(%d,%d)", c.A, c.M), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				modinv.TryModularInverse(c.A, c.M)
			}
		})
	}
}
