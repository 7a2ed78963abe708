// Package wire encodes BigInt values for transport as a sign plus a
// big-endian magnitude, in MessagePack or CBOR.
package wire

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"

	"bignum/internal/bignum"
)

// SchemaVersion is written into every envelope; decoding rejects others.
const SchemaVersion uint16 = 1

var (
	// ErrSchema reports an envelope written with an unknown schema version.
	ErrSchema = errors.New("wire: unsupported schema version")
	// ErrCodec reports an unknown codec name or value.
	ErrCodec = errors.New("wire: unknown codec")
)

// Envelope is the serialised form of a BigInt. Mag has no leading zeros and
// is empty for zero.
type Envelope struct {
	Schema uint16 `msgpack:"v" cbor:"1,keyasint"`
	Neg    bool   `msgpack:"n,omitempty" cbor:"2,keyasint,omitempty"`
	Mag    []byte `msgpack:"m" cbor:"3,keyasint"`
}

// Codec selects the binary format.
type Codec uint8

const (
	CodecMsgpack Codec = iota + 1
	CodecCBOR
)

func (c Codec) String() string {
	switch c {
	case CodecMsgpack:
		return "msgpack"
	case CodecCBOR:
		return "cbor"
	default:
		return "unknown"
	}
}

// ParseCodec converts "msgpack" or "cbor" to a Codec.
func ParseCodec(s string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "msgpack", "mp":
		return CodecMsgpack, nil
	case "cbor":
		return CodecCBOR, nil
	default:
		return 0, fmt.Errorf("%w: %q (expected msgpack|cbor)", ErrCodec, s)
	}
}

var cborEnc, cborDec = mustCBORModes()

func mustCBORModes() (cbor.EncMode, cbor.DecMode) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	dec, err := cbor.DecOptions{DupMapKey: cbor.DupMapKeyEnforcedAPF}.DecMode()
	if err != nil {
		panic(err)
	}
	return enc, dec
}

// Wrap builds the envelope for x.
func Wrap(x bignum.BigInt) Envelope {
	env := Envelope{Schema: SchemaVersion, Neg: x.Sign() < 0}
	if !x.IsZero() {
		env.Mag = x.Bytes()
	}
	return env
}

// Value validates env and returns its canonical BigInt. A negative zero
// decodes as zero and leading zero bytes are dropped.
func (env Envelope) Value() (bignum.BigInt, error) {
	if env.Schema != SchemaVersion {
		return bignum.BigInt{}, fmt.Errorf("%w: %d (want %d)", ErrSchema, env.Schema, SchemaVersion)
	}
	x := bignum.FromBytes(env.Mag)
	if len(x.Limbs) > bignum.MaxLimbs {
		return bignum.BigInt{}, bignum.ErrMaxLimbs
	}
	if env.Neg {
		x = x.Negated()
	}
	return x, nil
}

// Marshal encodes x with codec c.
func Marshal(x bignum.BigInt, c Codec) ([]byte, error) {
	env := Wrap(x)
	switch c {
	case CodecMsgpack:
		return msgpack.Marshal(&env)
	case CodecCBOR:
		return cborEnc.Marshal(&env)
	default:
		return nil, fmt.Errorf("%w: %d", ErrCodec, c)
	}
}

// Unmarshal decodes data written by Marshal with the same codec.
func Unmarshal(data []byte, c Codec) (bignum.BigInt, error) {
	var env Envelope
	var err error
	switch c {
	case CodecMsgpack:
		err = msgpack.Unmarshal(data, &env)
	case CodecCBOR:
		err = cborDec.Unmarshal(data, &env)
	default:
		return bignum.BigInt{}, fmt.Errorf("%w: %d", ErrCodec, c)
	}
	if err != nil {
		return bignum.BigInt{}, fmt.Errorf("wire: decoding %s envelope: %w", c, err)
	}
	return env.Value()
}
