package conn

import (
	"io"

	"github.com/oddity-ai/oddity-rtsp/pkg/base"
)

// Reader drives a Decoder off an io.Reader, reading whatever chunk size the
// underlying connection hands back and feeding it straight to the decoder.
// Because Decoder.Feed tolerates arbitrary chunk boundaries, Reader does no
// buffering of its own beyond a reusable scratch slice.
type Reader struct {
	r       io.Reader
	dec     *Decoder
	scratch []byte
}

// NewReader wraps r with a fresh Decoder.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, dec: NewDecoder(), scratch: make([]byte, 4096)}
}

// ReadMessage blocks until either a complete Request or InterleavedFrame has
// arrived, or the underlying reader errors (including io.EOF).
func (cr *Reader) ReadMessage() (*base.Request, *base.InterleavedFrame, error) {
	for {
		status, req, frame, err := cr.dec.Feed(nil)
		if err != nil {
			return nil, nil, err
		}
		if status == Done {
			return req, frame, nil
		}

		n, err := cr.r.Read(cr.scratch)
		if n > 0 {
			status, req, frame, ferr := cr.dec.Feed(cr.scratch[:n])
			if ferr != nil {
				return nil, nil, ferr
			}
			if status == Done {
				return req, frame, nil
			}
		}
		if err != nil {
			return nil, nil, err
		}
	}
}
