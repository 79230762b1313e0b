package base

import (
	"encoding/binary"

	"github.com/oddity-ai/oddity-rtsp/pkg/liberrors"
)

// InterleavedFrameMagic is the first byte of an interleaved binary frame
// (spec §3/§6): "$" (0x24).
const InterleavedFrameMagic = 0x24

// InterleavedFrame is one $-framed RTP/RTCP block multiplexed onto the
// RTSP TCP stream (spec §3 ResponseOrInterleaved, §6 wire framing).
// Grounded on gortsplib's pkg/base/interleaved_frame.go and
// original_source/oddity-rtsp-protocol/src/interleaved.rs.
type InterleavedFrame struct {
	Channel uint8
	Payload []byte
}

// Marshal encodes fr as magic, channel, big-endian u16 length, payload.
func (fr *InterleavedFrame) Marshal() ([]byte, error) {
	if len(fr.Payload) > 0xffff {
		return nil, liberrors.ErrInterleavedPayloadTooLarge{Len: len(fr.Payload)}
	}
	out := make([]byte, 4+len(fr.Payload))
	out[0] = InterleavedFrameMagic
	out[1] = fr.Channel
	binary.BigEndian.PutUint16(out[2:4], uint16(len(fr.Payload)))
	copy(out[4:], fr.Payload)
	return out, nil
}
