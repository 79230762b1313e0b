package sdp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oddity-ai/oddity-rtsp/internal/rtpio"
)

func h264Info() rtpio.MediaInfo {
	return rtpio.MediaInfo{Streams: []rtpio.StreamInfo{{Index: 0, Codec: "h264", ClockRate: 90000}}}
}

func TestSynthesizeContainsControlAndRtpmap(t *testing.T) {
	sps := []byte{0x67, 0x42, 0x00, 0x1e, 0xaa}
	pps := []byte{0x68, 0xce, 0x3c, 0x80}

	out, err := Synthesize("/stream", h264Info(), sps, pps)
	require.NoError(t, err)

	s := string(out)
	require.Contains(t, s, "m=video 0 RTP/AVP 96")
	require.Contains(t, s, "a=control:/stream")
	require.Contains(t, s, "a=rtpmap:96 H264/90000")
	require.Contains(t, s, "sprop-parameter-sets=")
	require.Contains(t, s, "a=recvonly")
}

func TestSynthesizeWithoutParameterSets(t *testing.T) {
	out, err := Synthesize("/stream", h264Info(), nil, nil)
	require.NoError(t, err)
	s := string(out)
	require.Contains(t, s, "packetization-mode=0")
	require.NotContains(t, s, "sprop-parameter-sets")
}

func TestSynthesizeUnsupportedCodec(t *testing.T) {
	info := rtpio.MediaInfo{Streams: []rtpio.StreamInfo{{Index: 0, Codec: "aac"}}}
	_, err := Synthesize("/stream", info, nil, nil)
	require.ErrorIs(t, err, ErrUnsupportedCodec)
}

func TestSynthesizeNoStreams(t *testing.T) {
	_, err := Synthesize("/stream", rtpio.MediaInfo{}, nil, nil)
	require.ErrorIs(t, err, ErrUnsupportedCodec)
}
