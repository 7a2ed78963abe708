package bignum

import (
	"fmt"
	"io"
	"sync"
)

// smallPrimeBound is the exclusive bound of the trial-division primes. Every
// composite below smallPrimeBound^2 has a factor below smallPrimeBound, so
// trial division alone decides primality there.
const smallPrimeBound = 1 << 11

var (
	smallPrimes     []uint32
	initSmallPrimes sync.Once
)

// oddPrimesBelow returns every odd prime below n (sieve of Eratosthenes).
func oddPrimesBelow(n int) []uint32 {
	composite := make([]bool, n)
	for p := 2; p*p < n; p++ {
		if composite[p] {
			continue
		}
		for i := p * p; i < n; i += p {
			composite[i] = true
		}
	}
	var out []uint32
	for p := 3; p < n; p += 2 {
		if !composite[p] {
			out = append(out, uint32(p)) //nolint:gosec // G115: p < n <= 2^11.
		}
	}
	return out
}

func trialPrimes() []uint32 {
	initSmallPrimes.Do(func() {
		smallPrimes = oddPrimesBelow(smallPrimeBound)
	})
	return smallPrimes
}

// PrimeChecksForSize returns the number of Miller-Rabin rounds that bring
// the false-positive rate for a random bits-sized candidate below 2^-80.
func PrimeChecksForSize(bits int) int {
	switch {
	case bits >= 3747:
		return 3
	case bits >= 1345:
		return 4
	case bits >= 476:
		return 5
	case bits >= 400:
		return 6
	case bits >= 347:
		return 7
	case bits >= 308:
		return 8
	case bits >= 55:
		return 27
	default:
		return 34
	}
}

// IsProbablePrime reports whether a is prime. Values below 2^22 are decided
// exactly by trial division; larger values are subjected to rounds
// Miller-Rabin tests with witnesses drawn from rand, so a composite passes
// with probability at most 4^-rounds. rounds <= 0 selects
// PrimeChecksForSize(a.BitLen()).
//
// Values <= 1 and even values other than 2 are rejected without reading
// from rand.
func IsProbablePrime(rand io.Reader, a BigInt, rounds int) (bool, error) {
	if a.Sign() <= 0 {
		return false, nil
	}
	mag := trimLimbs(a.Limbs)
	if len(mag) == 1 && mag[0] <= 2 {
		return mag[0] == 2, nil
	}
	if mag[0]&1 == 0 {
		return false, nil
	}

	small := len(mag) == 1 && mag[0] < smallPrimeBound*smallPrimeBound
	scratch := make([]uint32, len(mag))
	for _, p := range trialPrimes() {
		if len(mag) == 1 && mag[0] == p {
			return true, nil
		}
		if divModSmall(scratch, mag, p) == 0 {
			return false, nil
		}
	}
	if small {
		return true, nil
	}

	if rounds <= 0 {
		rounds = PrimeChecksForSize(bitLenLimbs(mag))
	}
	return millerRabin(rand, makeInt(false, mag), rounds)
}

// millerRabin runs rounds of the strong probable-prime test on odd n > 3.
func millerRabin(rand io.Reader, n BigInt, rounds int) (bool, error) {
	nm1 := makeInt(false, subLimbs(n.Limbs, []uint32{1}))
	s := nm1.TrailingZeros()
	d, err := IntRsh(nm1, s)
	if err != nil {
		return false, err
	}
	// Witnesses are uniform in [2, n-2].
	lo := IntFromInt64(2)

	for range rounds {
		w, err := RandomRange(rand, lo, nm1)
		if err != nil {
			return false, err
		}
		x, err := ModPow(w, d, n)
		if err != nil {
			return false, err
		}
		if x.Equal(IntOne()) || x.Equal(nm1) {
			continue
		}
		witness := true
		for k := 1; k < s; k++ {
			x, err = ModSqr(x, n)
			if err != nil {
				return false, err
			}
			if x.Equal(nm1) {
				witness = false
				break
			}
			if x.Equal(IntOne()) {
				break
			}
		}
		if witness {
			return false, nil
		}
	}
	return true, nil
}

// PrimeOptions configures GeneratePrimeWith.
type PrimeOptions struct {
	// Bits is the exact bit length of the result.
	Bits int
	// Safe requires (p-1)/2 to be prime as well.
	Safe bool
	// Add and Rem, when Add is non-zero, restrict the result to
	// p = Rem (mod Add). Rem defaults to 1.
	Add BigInt
	Rem BigInt
	// Rounds is the Miller-Rabin round count; <= 0 picks a size-based default.
	Rounds int
	// MaxAttempts bounds the number of candidates; <= 0 means
	// DefaultMaxAttempts(Bits).
	MaxAttempts int
	// Progress, if set, is called before each candidate is tested. A non-nil
	// return aborts the search with that error.
	Progress func(attempt int) error
}

// DefaultMaxAttempts is the candidate budget used when PrimeOptions leaves
// MaxAttempts unset. Prime density near 2^bits is about 1/(bits*ln 2), so
// the budget covers the expected search many times over.
func DefaultMaxAttempts(bits int) int {
	return max(4096, 4*bits*bits)
}

// GeneratePrime returns a random prime of exactly bits bits. With safe set
// the result p also has (p-1)/2 prime.
func GeneratePrime(rand io.Reader, bits int, safe bool) (BigInt, error) {
	return GeneratePrimeWith(rand, PrimeOptions{Bits: bits, Safe: safe})
}

// GeneratePrimeWith searches for a prime as described by opts.
//
// Each candidate has its top two bits and low bit set (and bit 1 as well for
// safe primes, so p = 3 mod 4), is optionally aligned to Rem mod Add, and is
// discarded unless it still has exactly Bits bits and passes the primality
// tests.
func GeneratePrimeWith(rand io.Reader, opts PrimeOptions) (BigInt, error) {
	if opts.Bits < 2 {
		return BigInt{}, fmt.Errorf("%w: prime size %d bits", ErrInvalidArgument, opts.Bits)
	}
	if opts.Safe && opts.Bits < 3 {
		return BigInt{}, fmt.Errorf("%w: safe prime needs at least 3 bits", ErrInvalidArgument)
	}
	rem := opts.Rem
	if !opts.Add.IsZero() {
		if opts.Add.Sign() < 0 {
			return BigInt{}, fmt.Errorf("%w: negative prime alignment modulus", ErrInvalidArgument)
		}
		if rem.IsZero() {
			rem = IntOne()
		}
		if rem.Sign() < 0 || rem.Cmp(opts.Add) >= 0 {
			return BigInt{}, fmt.Errorf("%w: remainder must be in [0, add)", ErrInvalidArgument)
		}
	}
	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts(opts.Bits)
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if opts.Progress != nil {
			if err := opts.Progress(attempt); err != nil {
				return BigInt{}, err
			}
		}
		p, err := primeCandidate(rand, opts.Bits, opts.Safe, opts.Add, rem)
		if err != nil {
			return BigInt{}, err
		}
		if p.BitLen() != opts.Bits {
			continue
		}
		ok, err := checkCandidate(rand, p, opts.Safe, opts.Rounds)
		if err != nil {
			return BigInt{}, err
		}
		if ok {
			return p, nil
		}
	}
	return BigInt{}, fmt.Errorf("%w: no %d-bit prime after %d candidates", ErrGenerationFailed, opts.Bits, maxAttempts)
}

func primeCandidate(rand io.Reader, bits int, safe bool, add, rem BigInt) (BigInt, error) {
	p, err := RandomBits(rand, bits, TopTwo, true)
	if err != nil {
		return BigInt{}, err
	}
	if safe {
		if err := p.SetBit(1); err != nil {
			return BigInt{}, err
		}
	}
	if add.IsZero() {
		return p, nil
	}
	off, err := IntMod(p, add)
	if err != nil {
		return BigInt{}, err
	}
	if p, err = IntSub(p, off); err != nil {
		return BigInt{}, err
	}
	return IntAdd(p, rem)
}

func checkCandidate(rand io.Reader, p BigInt, safe bool, rounds int) (bool, error) {
	if !safe {
		return IsProbablePrime(rand, p, rounds)
	}
	// (p-1)/2 is the likelier test to fail, so it runs first.
	q, err := IntRsh(p, 1)
	if err != nil {
		return false, err
	}
	if ok, err := IsProbablePrime(rand, q, rounds); err != nil || !ok {
		return false, err
	}
	return IsProbablePrime(rand, p, rounds)
}
