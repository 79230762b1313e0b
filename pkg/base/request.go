package base

import (
	"strconv"
	"strings"

	"github.com/oddity-ai/oddity-rtsp/pkg/liberrors"
)

// Request is an RTSP request (spec §3).
type Request struct {
	Method  Method
	URL     *URL
	Version Version
	Header  Header
	Body    []byte
}

// Marshal serializes req as it would appear on the wire: request-line,
// headers in insertion order, blank line, body. Grounded on gortsplib's
// pkg/base/request.go Write, generalized to arbitrary Version and ordered
// headers.
func (req *Request) Marshal() ([]byte, error) {
	if req.Version == VUnknown {
		return nil, liberrors.ErrVersionUnknown{}
	}

	var b strings.Builder
	b.WriteString(string(req.Method))
	b.WriteByte(' ')
	b.WriteString(req.URL.String())
	b.WriteString(" RTSP/")
	b.WriteString(req.Version.String())
	b.WriteString("\r\n")

	hdr := req.Header.Clone()
	if len(req.Body) > 0 {
		hdr.Set("Content-Length", strconv.Itoa(len(req.Body)))
	}
	hdr.Range(func(k, v string) {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\r\n")
	})
	b.WriteString("\r\n")

	out := []byte(b.String())
	out = append(out, req.Body...)
	return out, nil
}
