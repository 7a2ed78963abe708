package bignum

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"testing"
	"testing/quick"
)

func TestParseAndFormat(t *testing.T) {
	tests := []struct {
		in      string
		base    int
		wantDec string
		wantHex string
	}{
		{"0", 10, "0", "0"},
		{"-0", 10, "0", "0"},
		{"+42", 10, "42", "2a"},
		{"000123", 10, "123", "7b"},
		{"14887387467384", 10, "14887387467384", "d8a3d710e78"},
		{"5c", 16, "92", "5c"},
		{"-DEADbeef", 16, "-3735928559", "-deadbeef"},
		{"100000000", 16, "4294967296", "100000000"},
		{"-1010", 2, "-10", "-a"},
		{"zz", 36, "1295", "50f"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			x, err := Parse(tt.in, tt.base)
			if err != nil {
				t.Fatalf("Parse(%q, %d): %v", tt.in, tt.base, err)
			}
			assertCanonical(t, "parsed", x)
			if got := x.String(); got != tt.wantDec {
				t.Fatalf("String() = %q, want %q", got, tt.wantDec)
			}
			if got := x.Hex(); got != tt.wantHex {
				t.Fatalf("Hex() = %q, want %q", got, tt.wantHex)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, tt := range []struct {
		in   string
		base int
	}{
		{"", 10},
		{"-", 10},
		{"+", 16},
		{"12a", 10},
		{"0x10", 16},
		{" 1", 10},
		{"1 ", 10},
		{"--1", 10},
		{"1_000", 10},
		{"g", 16},
		{"2", 2},
	} {
		if _, err := Parse(tt.in, tt.base); !errors.Is(err, ErrParse) {
			t.Fatalf("Parse(%q, %d): err = %v, want ErrParse", tt.in, tt.base, err)
		}
	}
	if _, err := Parse("1", 37); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("base 37: err = %v, want ErrInvalidArgument", err)
	}
}

func TestTextMatchesReference(t *testing.T) {
	f := func(q qint, b uint8) bool {
		base := 2 + int(b)%35
		want := toBig(q.v).Text(base)
		if q.v.Text(base) != want {
			return false
		}
		back, err := Parse(want, base)
		return err == nil && back.Equal(q.v)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestTextRoundTrips(t *testing.T) {
	f := func(q qint) bool {
		fromDec, err := ParseDecimal(q.v.String())
		if err != nil || !fromDec.Equal(q.v) {
			return false
		}
		fromHex, err := ParseHex(q.v.Hex())
		return err == nil && fromHex.Equal(q.v)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestBytes(t *testing.T) {
	tests := []struct {
		hex  string
		want []byte
	}{
		{"0", []byte{0}},
		{"1", []byte{1}},
		{"ff", []byte{0xff}},
		{"100", []byte{1, 0}},
		{"102030405", []byte{1, 2, 3, 4, 5}},
		{"-102", []byte{1, 2}},
	}
	for _, tt := range tests {
		if got := mustHex(t, tt.hex).Bytes(); !bytes.Equal(got, tt.want) {
			t.Fatalf("Bytes(%s) = %x, want %x", tt.hex, got, tt.want)
		}
	}
	if x := FromBytes([]byte{0, 0, 1, 2}); x.Hex() != "102" {
		t.Fatalf("FromBytes drops leading zeros: got %s", x.Hex())
	}
	if !FromBytes(nil).IsZero() || !FromBytes([]byte{0, 0}).IsZero() {
		t.Fatal("FromBytes of empty or all-zero input must be zero")
	}
}

func TestBytesRoundTrip(t *testing.T) {
	f := func(q qint) bool {
		x := q.v.AbsInt()
		return FromBytes(x.Bytes()).Equal(x)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestFillBytes(t *testing.T) {
	x := mustHex(t, "abcdef")
	buf := []byte{9, 9, 9, 9, 9}
	out, err := x.FillBytes(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, []byte{0, 0, 0xab, 0xcd, 0xef}) {
		t.Fatalf("FillBytes = %x", out)
	}
	if _, err := x.FillBytes(make([]byte, 2)); !errors.Is(err, ErrOverflow) {
		t.Fatalf("short buffer: err = %v, want ErrOverflow", err)
	}
	out, err = IntZero().FillBytes(make([]byte, 3))
	if err != nil || !bytes.Equal(out, []byte{0, 0, 0}) {
		t.Fatalf("FillBytes(0) = %x, %v", out, err)
	}
}

func TestTextMarshaling(t *testing.T) {
	type doc struct {
		Modulus BigInt `json:"modulus"`
	}
	var d doc
	if err := json.Unmarshal([]byte(`{"modulus":"0xFFFF"}`), &d); err != nil {
		t.Fatal(err)
	}
	if d.Modulus.String() != "65535" {
		t.Fatalf("hex prefix: got %s", d.Modulus)
	}
	if err := json.Unmarshal([]byte(`{"modulus":"-123456789012345678901234567890"}`), &d); err != nil {
		t.Fatal(err)
	}
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"modulus":"-123456789012345678901234567890"}` {
		t.Fatalf("Marshal = %s", out)
	}
	if err := json.Unmarshal([]byte(`{"modulus":"0x"}`), &d); !errors.Is(err, ErrParse) {
		t.Fatalf("bare prefix: err = %v, want ErrParse", err)
	}
}

func TestFormatVerbs(t *testing.T) {
	x := IntFromInt64(-255)
	if got := fmt.Sprintf("%d|%x|%X|%v|%6s", x, x, x, x, x); got != "-255|-ff|-FF|-255|  -255" {
		t.Fatalf("Sprintf = %q", got)
	}
	if got := fmt.Sprintf("%d", fromBig(new(big.Int).Lsh(big.NewInt(1), 100))); got != "1267650600228229401496703205376" {
		t.Fatalf("2^100 = %s", got)
	}
}

func TestParseAutoRejectsSignAfterPrefix(t *testing.T) {
	for _, in := range []string{"0x-1", "0x+1", "-0x-ff", "+0X+a"} {
		if _, err := ParseAuto(in); !errors.Is(err, ErrParse) {
			t.Fatalf("ParseAuto(%q): err = %v, want ErrParse", in, err)
		}
	}
	var x BigInt
	if err := x.UnmarshalText([]byte("0x-1")); !errors.Is(err, ErrParse) {
		t.Fatalf("UnmarshalText(0x-1): err = %v, want ErrParse", err)
	}
	for in, want := range map[string]string{"-0xff": "-255", "+0x10": "16", "0XaB": "171"} {
		got, err := ParseAuto(in)
		if err != nil || got.String() != want {
			t.Fatalf("ParseAuto(%q) = %s, %v, want %s", in, got, err, want)
		}
	}
}
