package wire

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"bignum/internal/bignum"
)

func TestRoundTrip(t *testing.T) {
	values := []string{
		"0", "1", "-1", "255", "-256", "4294967296",
		"-170141183460469231731687303715884105727",
		"32317006071311007300338913926423828248817941241140239112842009751400741706634354222619689417363569347117901737909704191754605873209195028853758986185622153212175412514901774520270235796078236248884246189477587641105928646099411723245426622522193230540919037680524235519125679715870117001058055877651038861847280257976054903569732561526167081339361799541336476559160368317896729073178384589680639671900977202194168647225871031411336429319536193471636533209717077448227988588565369208645296636077250268955505928362751121174096972998068410554359584866583291642136218231078990999448652468262416972035911852507045361090559",
	}
	for _, c := range []Codec{CodecMsgpack, CodecCBOR} {
		for _, v := range values {
			x, err := bignum.ParseDecimal(v)
			require.NoError(t, err)
			data, err := Marshal(x, c)
			require.NoError(t, err)
			got, err := Unmarshal(data, c)
			require.NoError(t, err, "%s %s", c, v)
			require.True(t, got.Equal(x), "%s: got %s, want %s", c, got, v)
			require.Equal(t, x.Sign() < 0, got.Neg)
		}
	}
}

func TestCBORIsDeterministic(t *testing.T) {
	data, err := Marshal(bignum.IntFromInt64(1), CodecCBOR)
	require.NoError(t, err)
	require.Equal(t, "a20101034101", hex.EncodeToString(data))

	data, err = Marshal(bignum.IntFromInt64(-258), CodecCBOR)
	require.NoError(t, err)
	require.Equal(t, "a3010102f503420102", hex.EncodeToString(data))
}

func TestDecodeCanonicalises(t *testing.T) {
	for _, c := range []Codec{CodecMsgpack, CodecCBOR} {
		negZero := Envelope{Schema: SchemaVersion, Neg: true, Mag: []byte{0, 0}}
		got, err := Unmarshal(encode(t, c, negZero), c)
		require.NoError(t, err)
		require.True(t, got.IsZero())
		require.False(t, got.Neg)
		require.Nil(t, got.Limbs)

		padded := Envelope{Schema: SchemaVersion, Mag: []byte{0, 0, 1, 0}}
		got, err = Unmarshal(encode(t, c, padded), c)
		require.NoError(t, err)
		require.Equal(t, "256", got.String())
	}
}

func TestSchemaMismatch(t *testing.T) {
	for _, c := range []Codec{CodecMsgpack, CodecCBOR} {
		data := encode(t, c, Envelope{Schema: SchemaVersion + 1, Mag: []byte{7}})
		_, err := Unmarshal(data, c)
		require.ErrorIs(t, err, ErrSchema)
	}
}

func TestGarbageInput(t *testing.T) {
	for _, c := range []Codec{CodecMsgpack, CodecCBOR} {
		_, err := Unmarshal([]byte{0xff, 0x00, 0x13}, c)
		require.Error(t, err)
	}
}

func TestCodecs(t *testing.T) {
	for _, name := range []string{"msgpack", "CBOR", " mp "} {
		c, err := ParseCodec(name)
		require.NoError(t, err)
		require.NotEqual(t, "unknown", c.String())
	}
	_, err := ParseCodec("protobuf")
	require.ErrorIs(t, err, ErrCodec)

	_, err = Marshal(bignum.IntOne(), Codec(9))
	require.True(t, errors.Is(err, ErrCodec))
	_, err = Unmarshal(nil, Codec(0))
	require.ErrorIs(t, err, ErrCodec)
}

func encode(t *testing.T, c Codec, env Envelope) []byte {
	t.Helper()
	var data []byte
	var err error
	if c == CodecMsgpack {
		data, err = msgpack.Marshal(&env)
	} else {
		data, err = cbor.Marshal(&env)
	}
	require.NoError(t, err)
	return data
}
