package bignum

import (
	"fmt"
	"strconv"
	"strings"
)

const digitChars = "0123456789abcdefghijklmnopqrstuvwxyz"

// String returns the decimal representation of i.
func (i BigInt) String() string {
	return i.Text(10)
}

// Hex returns the lowercase hexadecimal representation of i without a prefix.
func (i BigInt) Hex() string {
	limbs := trimLimbs(i.Limbs)
	if len(limbs) == 0 {
		return "0"
	}
	var sb strings.Builder
	sb.Grow(len(limbs)*8 + 1)
	if i.Neg {
		sb.WriteByte('-')
	}
	sb.WriteString(strconv.FormatUint(uint64(limbs[len(limbs)-1]), 16))
	for k := len(limbs) - 2; k >= 0; k-- {
		fmt.Fprintf(&sb, "%08x", limbs[k])
	}
	return sb.String()
}

// Text returns the representation of i in the given base, which must be in
// [2, 36]; digits above 9 are lowercase. An invalid base yields "<bad base>".
func (i BigInt) Text(base int) string {
	if base < minBase || base > maxBase {
		return "<bad base>"
	}
	if base == 16 {
		return i.Hex()
	}
	limbs := trimLimbs(i.Limbs)
	if len(limbs) == 0 {
		return "0"
	}
	s := formatMagnitude(limbs, uint32(base)) //nolint:gosec // G115: base checked above.
	if i.Neg {
		return "-" + s
	}
	return s
}

// formatMagnitude peels off chunks of base^n (the largest power that fits a
// limb) with short division, then prints each chunk zero-padded to n digits.
func formatMagnitude(limbs []uint32, base uint32) string {
	n := chunkFor(base)
	div := uint32(1)
	for k := 0; k < n; k++ {
		div *= base
	}

	cur := cloneLimbs(limbs)
	var parts []uint32
	for len(cur) > 0 {
		r := divModSmall(cur, cur, div)
		parts = append(parts, r)
		cur = trimLimbs(cur)
	}

	var sb strings.Builder
	sb.Grow(len(parts) * n)
	sb.WriteString(strconv.FormatUint(uint64(parts[len(parts)-1]), int(base)))
	buf := make([]byte, n)
	for k := len(parts) - 2; k >= 0; k-- {
		v := parts[k]
		for j := n - 1; j >= 0; j-- {
			buf[j] = digitChars[v%base]
			v /= base
		}
		sb.Write(buf)
	}
	return sb.String()
}

// Format implements fmt.Formatter for the %d, %x, %X, %s and %v verbs.
func (i BigInt) Format(s fmt.State, verb rune) {
	var out string
	switch verb {
	case 'd', 's', 'v':
		out = i.String()
	case 'x':
		out = i.Hex()
	case 'X':
		out = strings.ToUpper(i.Hex())
	default:
		fmt.Fprintf(s, "%%!%c(bignum.BigInt=%s)", verb, i.String())
		return
	}
	if w, ok := s.Width(); ok && len(out) < w {
		pad := strings.Repeat(" ", w-len(out))
		if s.Flag('-') {
			out += pad
		} else {
			out = pad + out
		}
	}
	_, _ = s.Write([]byte(out))
}

// MarshalText encodes i as decimal text.
func (i BigInt) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText decodes decimal text, or hexadecimal text with a 0x or 0X
// prefix after the optional sign.
func (i *BigInt) UnmarshalText(text []byte) error {
	v, err := ParseAuto(string(text))
	if err != nil {
		return err
	}
	*i = v
	return nil
}

// ParseAuto parses decimal, or hexadecimal when the digits carry a 0x prefix.
func ParseAuto(s string) (BigInt, error) {
	sign := ""
	body := s
	if body != "" && (body[0] == '+' || body[0] == '-') {
		sign, body = body[:1], body[1:]
	}
	if len(body) > 2 && body[0] == '0' && (body[1] == 'x' || body[1] == 'X') {
		if body[2] == '+' || body[2] == '-' {
			return BigInt{}, fmt.Errorf("%w: sign after 0x prefix in %q", ErrParse, s)
		}
		return ParseHex(sign + body[2:])
	}
	return ParseDecimal(s)
}
