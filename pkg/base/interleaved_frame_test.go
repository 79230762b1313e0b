package base

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInterleavedFrameMarshal(t *testing.T) {
	fr := &InterleavedFrame{Channel: 1, Payload: []byte{9, 9, 9}}
	b, err := fr.Marshal()
	require.NoError(t, err)
	require.Equal(t, []byte{InterleavedFrameMagic, 1, 0, 3, 9, 9, 9}, b)
}

func TestInterleavedFrameMarshalPayloadTooLarge(t *testing.T) {
	fr := &InterleavedFrame{Channel: 0, Payload: make([]byte, 0x10000)}
	_, err := fr.Marshal()
	require.Error(t, err)
}

func TestResponseOrInterleavedMarshalsInterleaved(t *testing.T) {
	m := &ResponseOrInterleaved{Interleaved: &InterleavedFrame{Channel: 2, Payload: []byte{1}}}
	b, err := m.Marshal()
	require.NoError(t, err)
	require.Equal(t, byte(InterleavedFrameMagic), b[0])
}

func TestResponseOrInterleavedMarshalsResponse(t *testing.T) {
	m := &ResponseOrInterleaved{Response: &Response{Version: V1, StatusCode: StatusOK, Header: NewHeader()}}
	b, err := m.Marshal()
	require.NoError(t, err)
	require.Contains(t, string(b), "200 OK")
}
