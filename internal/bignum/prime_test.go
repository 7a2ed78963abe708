package bignum

import (
	crand "crypto/rand"
	"errors"
	"math/big"
	"testing"
)

// failReader fails the test if anything reads from it.
type failReader struct{ t *testing.T }

func (f failReader) Read([]byte) (int, error) {
	f.t.Fatal("unexpected read from randomness source")
	return 0, nil
}

func TestIsProbablePrimeKnown(t *testing.T) {
	tests := []struct {
		n    string
		want bool
	}{
		{"2971215073", true},  // Fibonacci prime
		{"2971215074", false}, // even
		{"2", true},
		{"3", true},
		{"2039", true},
		{"2047", false}, // 23 * 89
		{"4194301", true},
		{"4194303", false},
		{"561", false},        // Carmichael
		{"3215031751", false}, // strong pseudoprime to bases 2, 3, 5, 7
		{"341550071728321", false},
		{"170141183460469231731687303715884105727", true}, // 2^127 - 1
		{"170141183460469231731687303715884105729", false},
		{"1000000000000000000000000000057", true},
	}
	r := seeded(11)
	for _, tt := range tests {
		t.Run(tt.n, func(t *testing.T) {
			got, err := IsProbablePrime(r, mustDec(t, tt.n), 20)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("IsProbablePrime(%s) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestIsProbablePrimeSkipsRandomness(t *testing.T) {
	for _, n := range []string{"-7", "0", "1", "4", "1000000000000000000000000000000", "2039", "4194301"} {
		got, err := IsProbablePrime(failReader{t}, mustDec(t, n), 10)
		if err != nil {
			t.Fatal(err)
		}
		want := n == "2039" || n == "4194301"
		if got != want {
			t.Fatalf("IsProbablePrime(%s) = %v, want %v", n, got, want)
		}
	}
}

func TestIsProbablePrimeMatchesReference(t *testing.T) {
	r := seeded(12)
	for range 300 {
		x, err := RandomBits(r, 40+int(r.Uint64()%90), TopAny, true)
		if err != nil {
			t.Fatal(err)
		}
		got, err := IsProbablePrime(r, x, 0)
		if err != nil {
			t.Fatal(err)
		}
		if want := toBig(x).ProbablyPrime(20); got != want {
			t.Fatalf("IsProbablePrime(%s) = %v, math/big says %v", x, got, want)
		}
	}
}

func TestPrimeChecksForSize(t *testing.T) {
	tests := []struct{ bits, want int }{
		{1, 34}, {54, 34}, {55, 27}, {308, 8}, {512, 5}, {1024, 5}, {2048, 4}, {4096, 3},
	}
	for _, tt := range tests {
		if got := PrimeChecksForSize(tt.bits); got != tt.want {
			t.Fatalf("PrimeChecksForSize(%d) = %d, want %d", tt.bits, got, tt.want)
		}
	}
}

func TestGeneratePrime(t *testing.T) {
	r := seeded(13)
	for _, bits := range []int{2, 3, 16, 64, 160, 256} {
		p, err := GeneratePrime(r, bits, false)
		if err != nil {
			t.Fatalf("GeneratePrime(%d): %v", bits, err)
		}
		if p.BitLen() != bits {
			t.Fatalf("GeneratePrime(%d) has %d bits", bits, p.BitLen())
		}
		if !toBig(p).ProbablyPrime(20) {
			t.Fatalf("GeneratePrime(%d) = %s is composite", bits, p)
		}
	}
}

func TestGenerateSafePrime(t *testing.T) {
	r := seeded(14)
	for _, bits := range []int{3, 24, 64, 128} {
		p, err := GeneratePrime(r, bits, true)
		if err != nil {
			t.Fatalf("GeneratePrime(%d, safe): %v", bits, err)
		}
		q := new(big.Int).Rsh(toBig(p), 1)
		if p.BitLen() != bits || !toBig(p).ProbablyPrime(20) || !q.ProbablyPrime(20) {
			t.Fatalf("GeneratePrime(%d, safe) = %s is not a safe prime", bits, p)
		}
		if !p.Bit(1) {
			t.Fatalf("safe prime %s is not 3 mod 4", p)
		}
	}
}

func TestGeneratePrimeAligned(t *testing.T) {
	r := seeded(15)
	add, rem := IntFromInt64(12), IntFromInt64(11)
	for range 5 {
		p, err := GeneratePrimeWith(r, PrimeOptions{Bits: 48, Add: add, Rem: rem})
		if err != nil {
			t.Fatal(err)
		}
		got, _ := IntMod(p, add)
		if !got.Equal(rem) || p.BitLen() != 48 {
			t.Fatalf("p = %s, p mod 12 = %s", p, got)
		}
	}
}

func TestGeneratePrimeExhaustion(t *testing.T) {
	// Every aligned candidate is even, so the search must give up.
	_, err := GeneratePrimeWith(crand.Reader, PrimeOptions{
		Bits:        32,
		Add:         IntFromInt64(4),
		Rem:         IntFromInt64(2),
		MaxAttempts: 25,
	})
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("err = %v, want ErrGenerationFailed", err)
	}
}

func TestGeneratePrimeProgressAbort(t *testing.T) {
	stop := errors.New("stop")
	var calls int
	_, err := GeneratePrimeWith(crand.Reader, PrimeOptions{
		Bits: 64,
		// Even candidates only, so nothing is found before the abort.
		Add: IntFromInt64(4),
		Rem: IntFromInt64(2),
		Progress: func(attempt int) error {
			calls++
			if attempt != calls {
				t.Fatalf("attempt = %d, want %d", attempt, calls)
			}
			if attempt == 3 {
				return stop
			}
			return nil
		},
	})
	if !errors.Is(err, stop) {
		t.Fatalf("err = %v, want stop", err)
	}
	if calls != 3 {
		t.Fatalf("Progress called %d times, want 3", calls)
	}
}

func TestGeneratePrimeInvalid(t *testing.T) {
	tests := []PrimeOptions{
		{Bits: 1},
		{Bits: 2, Safe: true},
		{Bits: 16, Add: IntFromInt64(-4)},
		{Bits: 16, Add: IntFromInt64(4), Rem: IntFromInt64(4)},
	}
	for _, opts := range tests {
		if _, err := GeneratePrimeWith(crand.Reader, opts); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("GeneratePrimeWith(%+v): err = %v, want ErrInvalidArgument", opts, err)
		}
	}
}
