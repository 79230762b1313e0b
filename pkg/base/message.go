package base

// ResponseOrInterleaved is the tagged union spec §3 calls
// ResponseOrInterleaved: either a complete Response or a binary
// interleaved frame, written to the same per-connection output channel so
// that responses and RTP/RTCP frames stay in the order they were produced
// (spec §5 ordering guarantees).
type ResponseOrInterleaved struct {
	Response    *Response
	Interleaved *InterleavedFrame
}

// Marshal serializes whichever variant is set.
func (m *ResponseOrInterleaved) Marshal() ([]byte, error) {
	if m.Interleaved != nil {
		return m.Interleaved.Marshal()
	}
	return m.Response.Marshal()
}
