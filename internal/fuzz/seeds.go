package fuzztests

import "testing"

const maxFuzzInput = 1 << 12 // bytes; keeps quadratic operations fast

// textSeeds are numbers in the formats Parse accepts, plus near misses.
var textSeeds = []string{
	"0", "-0", "+1", "4294967295", "4294967296", "-18446744073709551616",
	"132435353453", "487380435867034585", "2971215073",
	"340282366920938463463374607431768211457",
	"ffffffffffffffffffffffffffffffff", "DEADbeef", "zz",
	"", "-", "1_000", " 1", "0x10",
}

// operandSeeds are big-endian magnitudes that stress the division
// normalisation and carry paths.
var operandSeeds = [][]byte{
	{},
	{1},
	{0xff, 0xff, 0xff, 0xff},
	{0x80, 0, 0, 0, 0, 0, 0, 0},
	{0x7f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
	{0x80, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{0x06, 0xc3, 0x7d, 0x1a, 0xc4, 0x79, 0x12, 0xd9},
}

func addTextSeeds(f *testing.F) {
	for _, s := range textSeeds {
		for _, base := range []uint8{10, 16, 36} {
			f.Add(s, base)
		}
	}
}

func addOperandSeeds(f *testing.F) {
	for i, a := range operandSeeds {
		for j, b := range operandSeeds {
			f.Add(a, b, i%2 == 1, j%3 == 1)
		}
	}
}

func clip(b []byte) []byte {
	if len(b) > maxFuzzInput {
		return b[:maxFuzzInput]
	}
	return b
}
