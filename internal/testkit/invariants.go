// Package testkit checks the structural invariants of bignum values from
// tests outside the engine package.
package testkit

import (
	"fmt"

	"bignum/internal/bignum"
)

// CheckCanonical verifies the representation of x:
// 1) no zero high limb
// 2) zero has nil limbs and a clear sign
func CheckCanonical(x bignum.BigInt) error {
	if n := len(x.Limbs); n > 0 && x.Limbs[n-1] == 0 {
		return fmt.Errorf("high limb is zero: %d limbs", n)
	}
	if len(x.Limbs) == 0 && x.Neg {
		return fmt.Errorf("negative zero")
	}
	if x.Limbs != nil && len(x.Limbs) == 0 {
		return fmt.Errorf("zero with non-nil limbs")
	}
	return nil
}

// CheckDivision verifies a truncated division a = q*b + r:
// 1) all four values are canonical
// 2) q*b + r == a
// 3) |r| < |b|, and r is zero or has the sign of a
func CheckDivision(a, b, q, r bignum.BigInt) error {
	for name, v := range map[string]bignum.BigInt{"a": a, "b": b, "q": q, "r": r} {
		if err := CheckCanonical(v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	qb, err := bignum.IntMul(q, b)
	if err != nil {
		return err
	}
	back, err := bignum.IntAdd(qb, r)
	if err != nil {
		return err
	}
	if !back.Equal(a) {
		return fmt.Errorf("q*b + r = %s, want %s", back, a)
	}
	if r.AbsInt().Cmp(b.AbsInt()) >= 0 {
		return fmt.Errorf("|r| = %s is not below |b| = %s", r.AbsInt(), b.AbsInt())
	}
	if !r.IsZero() && r.Sign() != a.Sign() {
		return fmt.Errorf("remainder %s does not take the sign of %s", r, a)
	}
	return nil
}

// CheckReduced verifies 0 <= x < m.
func CheckReduced(x, m bignum.BigInt) error {
	if err := CheckCanonical(x); err != nil {
		return err
	}
	if x.Sign() < 0 || x.Cmp(m) >= 0 {
		return fmt.Errorf("%s is outside [0, %s)", x, m)
	}
	return nil
}
