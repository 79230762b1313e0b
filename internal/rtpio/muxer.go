package rtpio

import (
	"fmt"
	"math/rand"
	"net"
	"time"

	"github.com/pion/rtcp"
	"github.com/pion/rtp"
)

// senderReportInterval paces RTCP sender reports by packet count rather
// than a wall-clock ticker, so Session's single delivery loop can poll
// MaybeSenderReport() right after every Mux() call without a second timer
// goroutine.
const senderReportInterval = 100

// h264Muxer packetizes single-NAL H264 access units into RTP packets over a
// UDP port pair it binds on construction. It does not implement FU-A
// fragmentation for NALs larger than one packet: real H264 RTP
// payloadization is explicitly out of scope (spec §1), and the in-repo
// FileReader stub only ever produces NALs small enough for one packet.
//
// Grounded on gortsplib's pkg/rtpsender/sender.go and pkg/rtpreceiver/
// receiver.go for how gortsplib hands pion/rtp types across its own muxer
// boundary; the SPS/PPS extraction matches the Annex-B NAL type numbering
// used throughout bluenviron/mediacommon's h264 helpers, reimplemented
// locally rather than importing mediacommon/v2 (see DESIGN.md "dropped
// teacher dependencies").
type h264Muxer struct {
	ssrc          uint32
	seq           uint16
	clockRate     uint32
	rtpConn       *net.UDPConn
	rtcpConn      *net.UDPConn
	sps, pps      []byte
	payloadTyp    uint8
	lastSeq       uint16
	lastTimestamp uint32

	packetCount uint32
	octetCount  uint32
}

// NewH264Muxer binds a local UDP port pair and returns an RtpMuxer for the
// given streams. The clock rate is taken from the first h264 stream; Mux
// wraps every packet it is given, whatever its StreamIndex, into the same
// single RTP stream.
func NewH264Muxer(streams []StreamInfo) (RtpMuxer, error) {
	var clockRate uint32 = 90000
	for _, s := range streams {
		if s.Codec == "h264" {
			clockRate = s.ClockRate
			break
		}
	}

	rtpConn, rtcpConn, err := bindPortPair()
	if err != nil {
		return nil, err
	}

	return &h264Muxer{
		ssrc:       rand.Uint32(),
		clockRate:  clockRate,
		rtpConn:    rtpConn,
		rtcpConn:   rtcpConn,
		payloadTyp: 96,
	}, nil
}

// bindPortPair binds two consecutive UDP ports, rtp on the even one, rtcp on
// rtp+1, retrying a handful of times the way gortsplib's serverStreamAlloc
// does for RTP/RTCP port pairs.
func bindPortPair() (rtpConn, rtcpConn *net.UDPConn, err error) {
	for attempt := 0; attempt < 16; attempt++ {
		rc, err := net.ListenUDP("udp", &net.UDPAddr{Port: 0})
		if err != nil {
			return nil, nil, err
		}
		rtpPort := rc.LocalAddr().(*net.UDPAddr).Port
		if rtpPort%2 != 0 {
			rc.Close()
			continue
		}
		rtcc, err := net.ListenUDP("udp", &net.UDPAddr{Port: rtpPort + 1})
		if err != nil {
			rc.Close()
			continue
		}
		return rc, rtcc, nil
	}
	return nil, nil, fmt.Errorf("rtpio: could not bind an even rtp/rtcp port pair")
}

// LocalPorts implements RtpMuxer.
func (m *h264Muxer) LocalPorts() (uint16, uint16) {
	return uint16(m.rtpConn.LocalAddr().(*net.UDPAddr).Port), uint16(m.rtcpConn.LocalAddr().(*net.UDPAddr).Port)
}

// Mux implements RtpMuxer, wrapping one NAL in one RTP packet.
func (m *h264Muxer) Mux(p Packet) (RtpBuf, error) {
	if nalType(p.Data) == 7 {
		m.sps = append([]byte(nil), p.Data...)
	}
	if nalType(p.Data) == 8 {
		m.pps = append([]byte(nil), p.Data...)
	}

	pkt := &rtp.Packet{
		Header: rtp.Header{
			Version:        2,
			Marker:         true,
			PayloadType:    m.payloadTyp,
			SequenceNumber: m.seq,
			Timestamp:      uint32(p.PTS),
			SSRC:           m.ssrc,
		},
		Payload: p.Data,
	}
	m.lastSeq = m.seq
	m.lastTimestamp = pkt.Header.Timestamp
	m.seq++
	m.packetCount++
	m.octetCount += uint32(len(p.Data))

	buf, err := pkt.Marshal()
	if err != nil {
		return RtpBuf{}, err
	}
	return RtpBuf{Kind: RtpBufRTP, Data: buf}, nil
}

// MaybeSenderReport implements RtpMuxer, building an RTCP sender report
// every senderReportInterval muxed packets via pion/rtcp, the same
// collaborator gortsplib's pkg/rtpsender uses for its own SR path.
func (m *h264Muxer) MaybeSenderReport() (RtpBuf, bool) {
	if m.packetCount == 0 || m.packetCount%senderReportInterval != 0 {
		return RtpBuf{}, false
	}

	sr := &rtcp.SenderReport{
		SSRC:        m.ssrc,
		NTPTime:     ntpTime(time.Now()),
		RTPTime:     m.lastTimestamp,
		PacketCount: m.packetCount,
		OctetCount:  m.octetCount,
	}
	buf, err := sr.Marshal()
	if err != nil {
		return RtpBuf{}, false
	}
	return RtpBuf{Kind: RtpBufRTCP, Data: buf}, true
}

// ntpTime converts t to the 64-bit NTP timestamp format RTCP sender
// reports use (seconds since 1900-01-01 in the high 32 bits, fractional
// seconds in the low 32 bits).
func ntpTime(t time.Time) uint64 {
	const ntpEpochOffset = 2208988800 // seconds between 1900-01-01 and 1970-01-01
	sec := uint64(t.Unix()+ntpEpochOffset) << 32
	frac := uint64(t.Nanosecond()) * (1 << 32) / 1e9
	return sec | frac
}

// Finish implements RtpMuxer. There is no trailing buffer to flush for a
// single-NAL-per-packet muxer; the Session delivery loop discards whatever
// Finish returns (spec §4.4), so returning nil is sufficient.
func (m *h264Muxer) Finish() (*RtpBuf, error) {
	return nil, nil
}

// ParameterSetsH264 implements RtpMuxer, returning the most recent SPS/PPS
// observed in the muxed stream (used by SDP synthesis for fmtp sprop).
func (m *h264Muxer) ParameterSetsH264() ([]byte, []byte, error) {
	if m.sps == nil || m.pps == nil {
		return nil, nil, fmt.Errorf("rtpio: no SPS/PPS observed yet")
	}
	return m.sps, m.pps, nil
}

// PacketizationMode implements RtpMuxer. Mode 0 (single NAL per packet, no
// fragmentation) is the only mode this muxer supports.
func (m *h264Muxer) PacketizationMode() int { return 0 }

// LastRTPState implements RtpMuxer.
func (m *h264Muxer) LastRTPState() (uint16, uint32) {
	return m.lastSeq, m.lastTimestamp
}

// Close releases the bound UDP sockets.
func (m *h264Muxer) Close() error {
	m.rtpConn.Close()
	m.rtcpConn.Close()
	return nil
}

// UDPConns implements RtpMuxer.
func (m *h264Muxer) UDPConns() (rtp, rtcp *net.UDPConn) { return m.rtpConn, m.rtcpConn }

func nalType(nal []byte) int {
	if len(nal) == 0 {
		return -1
	}
	return int(nal[0] & 0x1f)
}
