package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/text/width"

	"bignum/internal/bignum"
	"bignum/internal/wire"
)

type inputFormat string

const (
	inAuto    inputFormat = "auto"
	inDec     inputFormat = "dec"
	inHex     inputFormat = "hex"
	inBytes   inputFormat = "bytes"
	inMsgpack inputFormat = "msgpack"
	inCBOR    inputFormat = "cbor"
)

type outputFormat string

const (
	outDec     outputFormat = "dec"
	outHex     outputFormat = "hex"
	outBytes   outputFormat = "bytes"
	outMsgpack outputFormat = "msgpack"
	outCBOR    outputFormat = "cbor"
)

func parseInputFormat(s string) (inputFormat, error) {
	switch f := inputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return inAuto, nil
	case inAuto, inDec, inHex, inBytes, inMsgpack, inCBOR:
		return f, nil
	default:
		return "", fmt.Errorf("invalid input format %q (expected auto|dec|hex|bytes|msgpack|cbor)", s)
	}
}

func parseOutputFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return outDec, nil
	case outDec, outHex, outBytes, outMsgpack, outCBOR:
		return f, nil
	default:
		return "", fmt.Errorf("invalid output format %q (expected dec|hex|bytes|msgpack|cbor)", s)
	}
}

// normalizeInput trims s and folds full-width forms, so "１２３" and
// "－４２" typed through an East Asian input method parse as 123 and -42.
func normalizeInput(s string) string {
	return width.Fold.String(strings.TrimSpace(s))
}

// parseValue reads a command-line number. Binary formats (bytes, msgpack,
// cbor) are given as hex strings.
func parseValue(s string, in inputFormat) (bignum.BigInt, error) {
	s = normalizeInput(s)
	switch in {
	case inAuto, "":
		return bignum.ParseAuto(s)
	case inDec:
		return bignum.ParseDecimal(s)
	case inHex:
		return bignum.ParseHex(strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"))
	}
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return bignum.BigInt{}, fmt.Errorf("%w: %s input must be hex-encoded: %w", bignum.ErrParse, in, err)
	}
	switch in {
	case inBytes:
		return bignum.FromBytes(raw), nil
	case inMsgpack:
		return wire.Unmarshal(raw, wire.CodecMsgpack)
	case inCBOR:
		return wire.Unmarshal(raw, wire.CodecCBOR)
	default:
		return bignum.BigInt{}, fmt.Errorf("unsupported input format %q", in)
	}
}

// formatValue renders x. A positive width left-pads bytes output to that
// many bytes and fails if x does not fit.
func formatValue(x bignum.BigInt, out outputFormat, width int) (string, error) {
	switch out {
	case outDec, "":
		return x.String(), nil
	case outHex:
		return x.Hex(), nil
	case outBytes:
		if x.Sign() < 0 {
			return "", fmt.Errorf("%w: bytes output has no sign, got %s", bignum.ErrInvalidArgument, x)
		}
		if width <= 0 {
			return hex.EncodeToString(x.Bytes()), nil
		}
		buf, err := x.FillBytes(make([]byte, width))
		if err != nil {
			return "", fmt.Errorf("value needs %d bytes, --width is %d: %w", x.ByteLen(), width, err)
		}
		return hex.EncodeToString(buf), nil
	case outMsgpack, outCBOR:
		codec := wire.CodecMsgpack
		if out == outCBOR {
			codec = wire.CodecCBOR
		}
		data, err := wire.Marshal(x, codec)
		if err != nil {
			return "", err
		}
		return hex.EncodeToString(data), nil
	default:
		return "", fmt.Errorf("unsupported output format %q", out)
	}
}

// smallInt converts x to an int for shift counts and bit sizes.
func smallInt(x bignum.BigInt, what string) (int, error) {
	n, err := x.Int()
	if err != nil {
		return 0, fmt.Errorf("%s %s is out of range: %w", what, x, err)
	}
	return n, nil
}

// exponent converts x to the machine exponent IntPow takes.
func exponent(x bignum.BigInt) (uint, error) {
	v, err := x.Uint64()
	if err != nil {
		return 0, fmt.Errorf("exponent %s is out of range: %w", x, err)
	}
	e, err := safecast.Conv[uint](v)
	if err != nil {
		return 0, fmt.Errorf("exponent %s is out of range: %w", x, err)
	}
	return e, nil
}
