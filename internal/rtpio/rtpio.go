// Package rtpio defines the collaborator contract between a Source and the
// demuxer/muxer that do the actual media I/O: Reader (pulls packets off a
// source) and RtpMuxer (turns packets into RTP/RTCP buffers). Spec §1 and §6
// treat both as opaque external libraries; this package is the boundary
// plus a minimal stub implementation, grounded on
// original_source/_LEGACY_oddity-rtsp-server/src/media/source/{reader.rs,
// source.rs} for the naming and the ReadExhausted/seek(0) loop shape.
package rtpio

import (
	"errors"
	"net"
	"time"
)

// StreamInfo is one stream's demuxer-supplied metadata, opaque to the RTSP
// layer beyond what SDP synthesis and the RTP muxer need (spec §3
// MediaInfo: "stream entries, each carrying index and demuxer-supplied
// stream metadata opaque to this layer").
type StreamInfo struct {
	Index     int
	Codec     string // "h264" is the only codec this server's muxer supports
	ClockRate uint32
	Width     int
	Height    int
}

// MediaInfo is the set of streams a Source exposes, cached for the lifetime
// of the Source (spec §3: "media_info is stable for the lifetime of the
// Source").
type MediaInfo struct {
	Streams []StreamInfo
}

// BestVideoStreamIndex returns the index of the first video stream, or -1
// if none. H264 is the only codec this server can mux, so "best" reduces to
// "first h264 stream".
func (m MediaInfo) BestVideoStreamIndex() int {
	for _, s := range m.Streams {
		if s.Codec == "h264" {
			return s.Index
		}
	}
	return -1
}

// Packet is one demuxed access unit.
type Packet struct {
	StreamIndex int
	Data        []byte
	PTS         int64 // presentation timestamp, in the stream's clock rate
	Duration    time.Duration
	KeyFrame    bool
}

// ErrReadExhausted is returned by Reader.Read when the underlying source has
// no more packets to produce right now. For a File descriptor the Source
// reader loop treats this as "seek to 0 and keep going" rather than fatal
// (spec §4.3); for any other descriptor kind it is fatal to the Source.
var ErrReadExhausted = errors.New("rtpio: read exhausted")

// Reader is the demuxer collaborator a Source drives. Grounded on spec §6's
// Reader.open/best_video_stream_index/stream_info/read/seek contract.
type Reader interface {
	BestVideoStreamIndex() int
	StreamInfo(index int) StreamInfo
	MediaInfo() MediaInfo
	Read() (Packet, error)
	Seek(pos int64) error
	Close() error
}

// RtpBufKind distinguishes an RTP payload buffer from an RTCP one, per spec
// §6's "RtpBuf ∈ {Rtp(bytes), Rtcp(bytes)}".
type RtpBufKind int

const (
	RtpBufRTP RtpBufKind = iota
	RtpBufRTCP
)

// RtpBuf is one muxed buffer ready to be sent over UDP or wrapped in an
// interleaved frame.
type RtpBuf struct {
	Kind RtpBufKind
	Data []byte
}

// DescriptorKind distinguishes a looping File source from any other kind,
// the only distinction spec §4.3 cares about ("If the underlying demuxer
// reports 'read exhausted' and the descriptor is File, seek back to 0").
type DescriptorKind int

const (
	DescriptorFile DescriptorKind = iota
	DescriptorOther
)

// Descriptor names a media source and knows how to open a Reader for it.
// Grounded on original_source/_LEGACY_oddity-rtsp-server/src/media's
// Descriptor type.
type Descriptor interface {
	Kind() DescriptorKind
	Open() (Reader, error)
	String() string
}

// RtpMuxer is the muxer collaborator a Session owns exclusively for its
// delivery loop. Grounded on spec §6's RtpMuxer.new_with_streams/
// local_ports/mux/finish/parameter_sets_h264/packetization_mode contract.
type RtpMuxer interface {
	LocalPorts() (rtpPort, rtcpPort uint16)
	Mux(p Packet) (RtpBuf, error)
	Finish() (*RtpBuf, error)
	ParameterSetsH264() (sps []byte, pps []byte, err error)
	PacketizationMode() int
	// LastRTPState returns the sequence number and timestamp of the most
	// recently muxed RTP packet, used to fill RTP-Info's seq/rtptime at the
	// moment PLAY is applied (spec §4.4).
	LastRTPState() (seq uint16, timestamp uint32)
	// MaybeSenderReport returns an RTCP sender report buffer if one is due
	// (the muxer paces these on its own packet-count cadence; see
	// h264Muxer.Mux), and whether one was actually produced.
	MaybeSenderReport() (RtpBuf, bool)
	// UDPConns returns the sockets bound at LocalPorts, used by a Session's
	// UDP delivery path to send RTP/RTCP from the same local address the
	// Transport header advertised as server_port.
	UDPConns() (rtp, rtcp *net.UDPConn)
	Close() error
}
