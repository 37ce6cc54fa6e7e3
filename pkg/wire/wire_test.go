package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteFrame(&buf, MsgRequestWorkerList, nil))

	msgType, payload, err := ReadFrame(&buf)
	require.NoError(t, err)
	assert.Equal(t, MsgRequestWorkerList, msgType)
	assert.Empty(t, payload)
}

func TestWorkerListRoundTrip(t *testing.T) {
	addrs := []uint32{0x0A000005, 0x0A000007, 0x7F000001}

	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, MsgWorkerList, EncodeWorkerList(addrs)))

	msgType, payload, err := ReadFrame(&buf)
	require.NoError(t, err)
	require.Equal(t, MsgWorkerList, msgType)

	got, err := DecodeWorkerList(payload)
	require.NoError(t, err)
	assert.Equal(t, addrs, got)
}

func TestBoolRoundTrip(t *testing.T) {
	for _, v := range []bool{true, false} {
		var buf bytes.Buffer
		require.NoError(t, WriteFrame(&buf, MsgSetWorkerStatus, EncodeBool(v)))

		msgType, payload, err := ReadFrame(&buf)
		require.NoError(t, err)
		require.Equal(t, MsgSetWorkerStatus, msgType)

		got, err := DecodeBool(payload)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestIPUint32RoundTrip(t *testing.T) {
	cases := []string{"10.0.0.5", "10.0.0.7", "127.0.0.1", "255.255.255.255"}
	for _, ip := range cases {
		addr, err := IPToUint32(ip)
		require.NoError(t, err)
		assert.Equal(t, ip, Uint32ToIP(addr))
	}
}

func TestIPToUint32RejectsInvalid(t *testing.T) {
	_, err := IPToUint32("not-an-ip")
	assert.Error(t, err)

	_, err = IPToUint32("::1")
	assert.Error(t, err)
}

func TestDecodeWorkerListRejectsLengthMismatch(t *testing.T) {
	payload := EncodeWorkerList([]uint32{1, 2, 3})
	_, err := DecodeWorkerList(payload[:len(payload)-1])
	assert.Error(t, err)
}

func TestReadFrameRejectsOversizedLength(t *testing.T) {
	var buf bytes.Buffer
	var lenBuf [4]byte
	lenBuf[0] = 0xFF // absurdly large length
	buf.Write(lenBuf[:])

	_, _, err := ReadFrame(&buf)
	assert.Error(t, err)
}
