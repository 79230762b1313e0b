package session

import (
	"net"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/ipv4"

	"github.com/oddity-ai/oddity-rtsp/internal/rtpio"
	"github.com/oddity-ai/oddity-rtsp/pkg/base"
	"github.com/oddity-ai/oddity-rtsp/pkg/headers"
	"github.com/oddity-ai/oddity-rtsp/pkg/liberrors"
)

// RtpTargetKind distinguishes the two delivery targets a Session can mux
// into, per spec §3's closed Target sum type.
type RtpTargetKind int

const (
	RtpTargetUDP RtpTargetKind = iota
	RtpTargetInterleaved
)

// RtpTarget is where a Session's muxed RTP/RTCP buffers go.
type RtpTarget struct {
	Kind RtpTargetKind

	RTPRemote  *net.UDPAddr
	RTCPRemote *net.UDPAddr

	Writer      chan<- *base.ResponseOrInterleaved
	RTPChannel  uint8
	RTCPChannel uint8
}

// Setup is the output of transport negotiation (spec §4.4 SessionSetup):
// the resolved Transport (server_port filled in), a muxer configured for
// every stream, and the delivery target derived from the chosen candidate.
type Setup struct {
	Transport *headers.Transport
	Muxer     rtpio.RtpMuxer
	Target    RtpTarget
}

// NegotiateTransport implements spec §4.4's transport negotiation
// algorithm. writer is the Connection's output channel, used only to build
// an Interleaved target; it is never read here.
func NegotiateTransport(
	candidates []*headers.Transport,
	info rtpio.MediaInfo,
	writer chan<- *base.ResponseOrInterleaved,
) (*Setup, error) {
	var chosen *headers.Transport
	for _, c := range candidates {
		if isSupportedCandidate(c) {
			chosen = c
			break
		}
	}
	if chosen == nil {
		return nil, liberrors.ErrTransportNotSupported{}
	}

	target := RtpTarget{}
	switch chosen.Lower {
	case headers.TransportLowerUDP:
		if chosen.Destination == nil || chosen.ClientPort == nil {
			return nil, liberrors.ErrDestinationInvalid{Reason: "UDP transport requires destination and client_port"}
		}
		rtpPort, rtcpPort := chosen.ClientPort[0], chosen.ClientPort[1]
		if rtpPort == rtcpPort {
			rtcpPort = rtpPort + 1
		}
		target.Kind = RtpTargetUDP
		target.RTPRemote = &net.UDPAddr{IP: net.ParseIP(*chosen.Destination), Port: rtpPort}
		target.RTCPRemote = &net.UDPAddr{IP: net.ParseIP(*chosen.Destination), Port: rtcpPort}
		if target.RTPRemote.IP == nil {
			return nil, liberrors.ErrDestinationInvalid{Reason: "destination is not a valid IP: " + *chosen.Destination}
		}

	case headers.TransportLowerTCP:
		if chosen.Interleaved == nil {
			return nil, liberrors.ErrDestinationInvalid{Reason: "TCP transport requires interleaved"}
		}
		rtpCh, rtcpCh := chosen.Interleaved[0], chosen.Interleaved[1]
		if rtpCh == rtcpCh {
			rtcpCh = rtpCh + 1
		}
		target.Kind = RtpTargetInterleaved
		target.Writer = writer
		target.RTPChannel = uint8(rtpCh)
		target.RTCPChannel = uint8(rtcpCh)
	}

	muxer, err := rtpio.NewH264Muxer(info.Streams)
	if err != nil {
		return nil, liberrors.ErrMedia{Cause: err}
	}

	if chosen.Lower == headers.TransportLowerUDP && chosen.TTL != nil {
		applyUnicastTTL(muxer, int(*chosen.TTL))
	}

	rtpPort, rtcpPort := muxer.LocalPorts()
	resolved := *chosen
	resolved.ServerPort = &[2]int{int(rtpPort), int(rtcpPort)}

	return &Setup{Transport: &resolved, Muxer: muxer, Target: target}, nil
}

// applyUnicastTTL sets the IP TTL socket option on the muxer's bound
// unicast UDP sockets when a client requests one via Transport's ttl
// parameter. Grounded on gortsplib's server_udp_listener.go use of
// golang.org/x/net/ipv4 to manage socket-level IP options; unlike
// gortsplib this server never joins a multicast group (multicast is a
// spec Non-goal), so only SetTTL is exercised here. Failing to set TTL is
// not fatal to SETUP: the session still works over the default TTL.
func applyUnicastTTL(muxer rtpio.RtpMuxer, ttl int) {
	rtpConn, rtcpConn := muxer.UDPConns()
	for _, c := range []*net.UDPConn{rtpConn, rtcpConn} {
		if err := ipv4.NewPacketConn(c).SetTTL(ttl); err != nil {
			log.Debug().Err(err).Int("ttl", ttl).Msg("negotiate: failed to set unicast TTL")
		}
	}
}

// isSupportedCandidate reports whether every parameter on t is in the
// "supported" set spec §4.4 enumerates: "unicast (yes), multicast (no),
// destination (yes), interleaved (yes), append (no), ttl (yes), layers
// (no), port (no), client_port (yes), server_port (no), ssrc (no), mode:
// only mode=PLAY is accepted".
func isSupportedCandidate(t *headers.Transport) bool {
	if t.Multicast {
		return false
	}
	if t.Append {
		return false
	}
	if t.Layers != nil {
		return false
	}
	if t.Port != nil {
		return false
	}
	if t.ServerPort != nil {
		return false
	}
	if t.SSRC != nil {
		return false
	}
	if t.Mode != nil && *t.Mode != headers.TransportModePlay {
		return false
	}
	return true
}
