package main

import (
	"errors"
	"testing"

	"bignum/internal/bignum"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		in     string
		format inputFormat
		want   string
	}{
		{"42", inAuto, "42"},
		{"0x2A", inAuto, "42"},
		{"-0x2a", inAuto, "-42"},
		{"  ４２  ", inDec, "42"},
		{"－１", inAuto, "-1"},
		{"0xff", inHex, "255"},
		{"ff", inHex, "255"},
		{"0001ff", inBytes, "511"},
		{"a3010102f503412a", inCBOR, "-42"},
	}
	for _, tt := range tests {
		x, err := parseValue(tt.in, tt.format)
		if err != nil {
			t.Fatalf("parseValue(%q, %s): %v", tt.in, tt.format, err)
		}
		if x.String() != tt.want {
			t.Fatalf("parseValue(%q, %s) = %s, want %s", tt.in, tt.format, x, tt.want)
		}
	}
	if _, err := parseValue("abc", inBytes); !errors.Is(err, bignum.ErrParse) {
		t.Fatalf("odd-length bytes: err = %v, want ErrParse", err)
	}
}

func TestFormatValue(t *testing.T) {
	x := bignum.IntFromInt64(258)
	tests := []struct {
		out   outputFormat
		width int
		want  string
	}{
		{outDec, 0, "258"},
		{outHex, 0, "102"},
		{outBytes, 0, "0102"},
		{outBytes, 3, "000102"},
		{outCBOR, 0, "a2010103420102"},
	}
	for _, tt := range tests {
		got, err := formatValue(x, tt.out, tt.width)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Fatalf("formatValue(%s, %d) = %q, want %q", tt.out, tt.width, got, tt.want)
		}
	}
	if _, err := formatValue(bignum.IntFromInt64(-1), outBytes, 0); !errors.Is(err, bignum.ErrInvalidArgument) {
		t.Fatalf("negative bytes: err = %v", err)
	}
	if _, err := formatValue(x, outBytes, 1); !errors.Is(err, bignum.ErrOverflow) {
		t.Fatalf("narrow width: err = %v", err)
	}
}

func TestFormatNames(t *testing.T) {
	if _, err := parseInputFormat("base64"); err == nil {
		t.Fatal("expected error")
	}
	if f, err := parseOutputFormat(" HEX "); err != nil || f != outHex {
		t.Fatalf("parseOutputFormat = %q, %v", f, err)
	}
	if f, _ := parseOutputFormat(""); f != outDec {
		t.Fatalf("empty output format = %q, want dec", f)
	}
}

func TestExponent(t *testing.T) {
	if e, err := exponent(bignum.IntFromInt64(65537)); err != nil || e != 65537 {
		t.Fatalf("exponent = %d, %v", e, err)
	}
	if _, err := exponent(bignum.IntFromInt64(-1)); err == nil {
		t.Fatal("negative exponent accepted")
	}
}
