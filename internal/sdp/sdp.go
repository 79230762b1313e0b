// Package sdp synthesizes the SDP text a DESCRIBE response carries, built
// from a Source's MediaInfo and its best video stream's H264 parameter
// sets. Grounded on gortsplib's pkg/description/session.go Marshal, trimmed
// to the single unicast H264 video stream this server supports.
package sdp

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"

	psdp "github.com/pion/sdp/v3"

	"github.com/oddity-ai/oddity-rtsp/internal/rtpio"
)

// ErrUnsupportedCodec is returned when the source's best video stream isn't
// H264, the only codec this server's muxer can packetize (spec §4.3:
// "Some(Err) if SDP synthesis fails (unsupported codec)").
var ErrUnsupportedCodec = errors.New("sdp: unsupported codec")

const h264PayloadType = 96

// Synthesize builds the SDP text for path, given its MediaInfo and the H264
// SPS/PPS currently observed by its muxer.
func Synthesize(path string, info rtpio.MediaInfo, sps, pps []byte) ([]byte, error) {
	idx := info.BestVideoStreamIndex()
	if idx < 0 {
		return nil, ErrUnsupportedCodec
	}
	var stream rtpio.StreamInfo
	for _, s := range info.Streams {
		if s.Index == idx {
			stream = s
			break
		}
	}
	if stream.Codec != "h264" {
		return nil, ErrUnsupportedCodec
	}

	clockRate := stream.ClockRate
	if clockRate == 0 {
		clockRate = 90000
	}

	fmtp := "packetization-mode=0"
	if len(sps) >= 4 {
		profileLevelID := strings.ToUpper(hexEncode(sps[1:4]))
		fmtp += ";profile-level-id=" + profileLevelID
	}
	if sps != nil && pps != nil {
		fmtp += ";sprop-parameter-sets=" +
			base64.StdEncoding.EncodeToString(sps) + "," +
			base64.StdEncoding.EncodeToString(pps)
	}

	sout := &psdp.SessionDescription{
		SessionName: psdp.SessionName(" "),
		Origin: psdp.Origin{
			Username:       "-",
			NetworkType:    "IN",
			AddressType:    "IP4",
			UnicastAddress: "127.0.0.1",
		},
		ConnectionInformation: &psdp.ConnectionInformation{
			NetworkType: "IN",
			AddressType: "IP4",
			Address:     &psdp.Address{Address: "0.0.0.0"},
		},
		TimeDescriptions: []psdp.TimeDescription{
			{Timing: psdp.Timing{StartTime: 0, StopTime: 0}},
		},
		MediaDescriptions: []*psdp.MediaDescription{
			{
				MediaName: psdp.MediaName{
					Media:   "video",
					Port:    psdp.RangedPort{Value: 0},
					Protos:  []string{"RTP", "AVP"},
					Formats: []string{strconv.Itoa(h264PayloadType)},
				},
				Attributes: []psdp.Attribute{
					{Key: "control", Value: path},
					{Key: "rtpmap", Value: strconv.Itoa(h264PayloadType) + " H264/" + strconv.Itoa(int(clockRate))},
					{Key: "fmtp", Value: strconv.Itoa(h264PayloadType) + " " + fmtp},
					{Key: "recvonly"},
				},
			},
		},
	}

	return sout.Marshal()
}

func hexEncode(b []byte) string {
	const digits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = digits[c>>4]
		out[i*2+1] = digits[c&0x0f]
	}
	return string(out)
}
