package headers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadTransportUDPUnicast(t *testing.T) {
	tr, err := ReadTransport("RTP/AVP;unicast;client_port=3456-3457")
	require.NoError(t, err)
	require.Equal(t, TransportLowerUDP, tr.Lower)
	require.True(t, tr.Unicast)
	require.Equal(t, &[2]int{3456, 3457}, tr.ClientPort)
}

func TestReadTransportTCPInterleaved(t *testing.T) {
	tr, err := ReadTransport("RTP/AVP/TCP;unicast;interleaved=0-1")
	require.NoError(t, err)
	require.Equal(t, TransportLowerTCP, tr.Lower)
	require.Equal(t, &[2]int{0, 1}, tr.Interleaved)
}

func TestReadTransportSinglePort(t *testing.T) {
	tr, err := ReadTransport("RTP/AVP;unicast;client_port=4000")
	require.NoError(t, err)
	require.Equal(t, &[2]int{4000, 4000}, tr.ClientPort)
}

func TestReadTransportUnknownLower(t *testing.T) {
	_, err := ReadTransport("RTP/AVP/SCTP;unicast")
	require.Error(t, err)
}

func TestReadTransportUnknownParameter(t *testing.T) {
	_, err := ReadTransport("RTP/AVP;bogus")
	require.Error(t, err)
}

func TestReadTransportMalformedPortRange(t *testing.T) {
	_, err := ReadTransport("RTP/AVP;client_port=1-2-3")
	require.Error(t, err)
}

func TestReadTransportCandidatesSplitsOnComma(t *testing.T) {
	cands, err := ReadTransportCandidates("RTP/AVP;unicast;client_port=3456-3457,RTP/AVP/TCP;unicast;interleaved=0-1")
	require.NoError(t, err)
	require.Len(t, cands, 2)
	require.Equal(t, TransportLowerUDP, cands[0].Lower)
	require.Equal(t, TransportLowerTCP, cands[1].Lower)
}

func TestReadTransportCandidatesBadOneFailsAll(t *testing.T) {
	_, err := ReadTransportCandidates("RTP/AVP;unicast,RTP/AVP;bogus")
	require.Error(t, err)
}

func TestTransportWriteRoundTrip(t *testing.T) {
	tr, err := ReadTransport("RTP/AVP;unicast;client_port=3456-3457;server_port=5000-5001")
	require.NoError(t, err)
	out := tr.Write()
	require.Contains(t, out, "RTP/AVP")
	require.Contains(t, out, "unicast")
	require.Contains(t, out, "client_port=3456-3457")
	require.Contains(t, out, "server_port=5000-5001")
}

func TestTransportModeParsing(t *testing.T) {
	tr, err := ReadTransport(`RTP/AVP;unicast;mode="PLAY"`)
	require.NoError(t, err)
	require.NotNil(t, tr.Mode)
	require.Equal(t, TransportModePlay, *tr.Mode)
}

func TestTransportSSRCParsing(t *testing.T) {
	tr, err := ReadTransport("RTP/AVP;unicast;ssrc=a3c4")
	require.NoError(t, err)
	require.NotNil(t, tr.SSRC)
	require.Equal(t, uint32(0xa3c4), *tr.SSRC)
}
