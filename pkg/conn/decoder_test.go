package conn

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const optionsReq = "OPTIONS rtsp://example.com/stream RTSP/1.0\r\nCSeq: 1\r\n\r\n"

func TestDecoderChunkBoundaryIndependenceRequest(t *testing.T) {
	d1 := NewDecoder()
	status, req1, _, err := d1.Feed([]byte(optionsReq))
	require.NoError(t, err)
	require.Equal(t, Done, status)
	require.Equal(t, "OPTIONS", string(req1.Method))

	d2 := NewDecoder()
	var req2Method string
	for i := 0; i < len(optionsReq); i++ {
		status, req, _, err := d2.Feed([]byte{optionsReq[i]})
		require.NoError(t, err)
		if status == Done {
			req2Method = string(req.Method)
			break
		}
	}
	require.Equal(t, string(req1.Method), req2Method)
}

func TestDecoderSplitAcrossCRLF(t *testing.T) {
	d := NewDecoder()
	status, _, _, err := d.Feed([]byte("OPTIONS rtsp://example.com/stream RTSP/1.0\r"))
	require.NoError(t, err)
	require.Equal(t, Hungry, status)

	status, _, _, err = d.Feed([]byte("\nCSeq: 1\r\n\r\n"))
	require.NoError(t, err)
	require.Equal(t, Done, status)
}

func TestDecoderHandlesBareLF(t *testing.T) {
	d := NewDecoder()
	status, req, _, err := d.Feed([]byte("OPTIONS rtsp://example.com/stream RTSP/1.0\nCSeq: 1\n\n"))
	require.NoError(t, err)
	require.Equal(t, Done, status)
	require.Equal(t, "OPTIONS", string(req.Method))
}

func TestDecoderParsesBody(t *testing.T) {
	raw := "ANNOUNCE rtsp://example.com/stream RTSP/1.0\r\nContent-Length: 5\r\n\r\nhello"
	d := NewDecoder()
	status, req, _, err := d.Feed([]byte(raw))
	require.NoError(t, err)
	require.Equal(t, Done, status)
	require.Equal(t, []byte("hello"), req.Body)
}

func TestDecoderBodyOverflowErrors(t *testing.T) {
	raw := "ANNOUNCE rtsp://example.com/stream RTSP/1.0\r\nContent-Length: 2\r\n\r\nhello"
	d := NewDecoder()
	_, _, _, err := d.Feed([]byte(raw))
	require.Error(t, err)
}

func TestDecoderInterleavedFrame(t *testing.T) {
	raw := []byte{'$', 2, 0, 3, 'a', 'b', 'c'}
	d := NewDecoder()
	status, _, frame, err := d.Feed(raw)
	require.NoError(t, err)
	require.Equal(t, Done, status)
	require.Equal(t, byte(2), frame.Channel)
	require.Equal(t, []byte("abc"), frame.Payload)
}

func TestDecoderRejectsUnknownMethod(t *testing.T) {
	raw := "BOGUS rtsp://example.com/stream RTSP/1.0\r\n\r\n"
	d := NewDecoder()
	_, _, _, err := d.Feed([]byte(raw))
	require.Error(t, err)
}

func TestDecoderResetsAfterMessage(t *testing.T) {
	d := NewDecoder()
	raw := optionsReq + optionsReq
	status, req, _, err := d.Feed([]byte(raw))
	require.NoError(t, err)
	require.Equal(t, Done, status)
	require.Equal(t, "OPTIONS", string(req.Method))

	status, req2, _, err := d.Feed(nil)
	require.NoError(t, err)
	require.Equal(t, Done, status)
	require.Equal(t, "OPTIONS", string(req2.Method))
}
