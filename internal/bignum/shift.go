package bignum

// IntLsh returns a << n, shifting the magnitude and keeping the sign.
func IntLsh(a BigInt, n int) (BigInt, error) {
	if n < 0 {
		return BigInt{}, errNegativeShift
	}
	shifted, err := UintShl(a.Abs(), n)
	if err != nil {
		return BigInt{}, err
	}
	return makeInt(a.Neg, shifted.Limbs), nil
}

// IntRsh returns a >> n, shifting the magnitude.
//
// The result truncates toward zero (it equals a / 2^n under IntDiv), unlike
// an arithmetic shift, which would round negative values down.
func IntRsh(a BigInt, n int) (BigInt, error) {
	if n < 0 {
		return BigInt{}, errNegativeShift
	}
	shifted, err := UintShr(a.Abs(), n)
	if err != nil {
		return BigInt{}, err
	}
	return makeInt(a.Neg, shifted.Limbs), nil
}
