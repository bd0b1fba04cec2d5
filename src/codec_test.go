package dxwifi

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripSmallMessage(t *testing.T) {
	msg := bytes.Repeat([]byte{0xAB}, 100)

	encoded, err := Encode(msg, 0.5)
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, msg, decoded)
}

func TestDecodeRecoversWithDroppedTrailingFrames(t *testing.T) {
	msg := randomMessage(2000, 1)

	encoded, err := Encode(msg, 0.667)
	require.NoError(t, err)

	n := len(encoded) / RSLDPCFrameSize
	keep := n - n/5 // drop last 20%
	truncated := encoded[:keep*RSLDPCFrameSize]

	decoded, err := Decode(truncated)
	require.NoError(t, err)
	assert.Equal(t, msg, decoded)
}

func TestDecodeRecoversWithByteErrorsInEveryFrame(t *testing.T) {
	msg := randomMessage(2000, 2)

	encoded, err := Encode(msg, 0.667)
	require.NoError(t, err)

	n := len(encoded) / RSLDPCFrameSize
	for i := 0; i < n; i++ {
		frame := encoded[i*RSLDPCFrameSize : (i+1)*RSLDPCFrameSize]
		for b := 0; b < 16; b++ {
			frame[b] ^= 0xFF
		}
	}

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, msg, decoded)
}

func TestRoundTripExactSymbolBoundary(t *testing.T) {
	msg := bytes.Repeat([]byte{0x42}, SymbolSize)

	encoded, err := Encode(msg, 0.5)
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Len(t, decoded, SymbolSize)
	assert.Equal(t, msg, decoded)
}

func TestRoundTripSingleByteMessage(t *testing.T) {
	msg := []byte{0x01}

	encoded, err := Encode(msg, 0.5)
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, msg, decoded)
}

func TestDecodeDiscoversOTIWhenFirstFrameIsZeroed(t *testing.T) {
	msg := randomMessage(2000, 3)

	encoded, err := Encode(msg, 0.667)
	require.NoError(t, err)

	for i := 0; i < RSLDPCFrameSize; i++ {
		encoded[i] = 0
	}

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, msg, decoded)
}

func TestEncodeRejectsBelowN1MinForTinyMessage(t *testing.T) {
	_, err := Encode([]byte{0x01}, 0.9)
	require.Error(t, err)
	assert.Equal(t, ErrBelowN1Min, err)
}

func TestEncodeRejectsExceededMaxSymbols(t *testing.T) {
	msg := make([]byte, (OFECMaxSymbols+10)*SymbolSize)

	_, err := Encode(msg, 0.999)
	require.Error(t, err)
	assert.Equal(t, ErrExceededMaxSymbols, err)
}

func TestDecodeMisalignedLengthTruncates(t *testing.T) {
	msg := bytes.Repeat([]byte{0x07}, 100)

	encoded, err := Encode(msg, 0.5)
	require.NoError(t, err)

	padded := append(append([]byte(nil), encoded...), 1, 2, 3)

	decoded, err := Decode(padded)
	require.NoError(t, err)
	assert.Equal(t, msg, decoded)
}

func TestDecodeShortBufferReturnsNoOTIFound(t *testing.T) {
	_, err := Decode(make([]byte, RSLDPCFrameSize-1))
	require.Error(t, err)
	assert.Equal(t, ErrNoOTIFound, err)
}

func TestDecodeEmptyReturnsNoOTIFound(t *testing.T) {
	_, err := Decode(nil)
	require.Error(t, err)
	assert.Equal(t, ErrNoOTIFound, err)
}

func randomMessage(n int, seed int64) []byte {
	r := rand.New(rand.NewSource(seed))
	msg := make([]byte, n)
	_, _ = r.Read(msg)

	return msg
}
