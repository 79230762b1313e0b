package headers

import "strconv"

// RTPInfoEntry is the RTP-Info header this server emits on PLAY, restricted
// to the single-stream form spec §4.5 needs ("RTP-Info: url=<request-uri>;
// seq=<state.rtp_seq>; rtptime=<state.rtp_timestamp>"). Grounded on
// gortsplib's pkg/headers/rtpinfo.go, which supports multiple comma-joined
// entries for multi-track sessions — a Non-goal here, since this server has
// no track concept.
type RTPInfoEntry struct {
	URL      string
	Sequence uint16
	RTPTime  uint32
}

// Write renders e as it appears on the wire.
func (e RTPInfoEntry) Write() string {
	return "url=" + e.URL + "; seq=" + strconv.FormatUint(uint64(e.Sequence), 10) +
		"; rtptime=" + strconv.FormatUint(uint64(e.RTPTime), 10)
}
