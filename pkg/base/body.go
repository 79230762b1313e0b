package base

import (
	"strconv"

	"github.com/oddity-ai/oddity-rtsp/pkg/liberrors"
)

// ContentLength reads and parses the Content-Length header, returning
// ok=false when the header is absent (no body expected). Grounded on
// gortsplib's pkg/base/body.go readBody, shared by the decoder in pkg/conn
// so Marshal and the incremental parser agree on body framing.
func ContentLength(header Header) (n int, ok bool, err error) {
	v, present := header.Get("Content-Length")
	if !present {
		return 0, false, nil
	}
	n, err = strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false, liberrors.ErrContentLengthNotInteger{Value: v}
	}
	return n, true, nil
}
