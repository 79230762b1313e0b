package conn

import (
	"io"

	"github.com/oddity-ai/oddity-rtsp/pkg/base"
)

// Writer serializes ResponseOrInterleaved values onto a connection. It has
// no internal buffering of its own: callers that need ordering guarantees
// across goroutines (spec §5) serialize all writes through one goroutine
// that owns a Writer, never by sharing a Writer across goroutines.
//
// Grounded on gortsplib's pkg/conn/conn.go WriteResponse/WriteInterleavedFrame.
type Writer struct {
	w io.Writer
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteResponse marshals and writes a Response.
func (cw *Writer) WriteResponse(res *base.Response) error {
	b, err := res.Marshal()
	if err != nil {
		return err
	}
	_, err = cw.w.Write(b)
	return err
}

// WriteInterleavedFrame marshals and writes an InterleavedFrame.
func (cw *Writer) WriteInterleavedFrame(fr *base.InterleavedFrame) error {
	b, err := fr.Marshal()
	if err != nil {
		return err
	}
	_, err = cw.w.Write(b)
	return err
}

// WriteMessage writes whichever variant of m is set.
func (cw *Writer) WriteMessage(m *base.ResponseOrInterleaved) error {
	b, err := m.Marshal()
	if err != nil {
		return err
	}
	_, err = cw.w.Write(b)
	return err
}
