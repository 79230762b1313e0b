package base

import (
	"strconv"
	"strings"

	"github.com/oddity-ai/oddity-rtsp/pkg/liberrors"
)

// Response is an RTSP response (spec §3). StatusCode is the open
// int-based StatusCode type, so a handler can emit a status outside the
// known table; Reason defaults from StatusMessages when empty.
type Response struct {
	Version    Version
	StatusCode StatusCode
	Reason     string
	Header     Header
	Body       []byte
}

// Marshal serializes res as it would appear on the wire. Grounded on
// gortsplib's pkg/base/response.go Write.
func (res *Response) Marshal() ([]byte, error) {
	if res.Version == VUnknown {
		return nil, liberrors.ErrVersionUnknown{}
	}

	reason := res.Reason
	if reason == "" {
		reason = StatusMessages[res.StatusCode]
	}

	var b strings.Builder
	b.WriteString("RTSP/")
	b.WriteString(res.Version.String())
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(int(res.StatusCode)))
	b.WriteByte(' ')
	b.WriteString(reason)
	b.WriteString("\r\n")

	hdr := res.Header.Clone()
	if len(res.Body) > 0 {
		hdr.Set("Content-Length", strconv.Itoa(len(res.Body)))
	}
	hdr.Range(func(k, v string) {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\r\n")
	})
	b.WriteString("\r\n")

	out := []byte(b.String())
	out = append(out, res.Body...)
	return out, nil
}

// NewResponse builds a minimal response with CSeq echoed and Server/Version
// filled per spec §4.5 ("All successful responses echo CSeq, set Server:
// <name>/<version>, and default Version to V1").
func NewResponse(status StatusCode, req *Request, serverHeader string) *Response {
	res := &Response{
		Version:    V1,
		StatusCode: status,
		Header:     NewHeader(),
	}
	if req != nil {
		if cseq, ok := req.Header.Get("CSeq"); ok {
			res.Header.Set("CSeq", cseq)
		}
	}
	if serverHeader != "" {
		res.Header.Set("Server", serverHeader)
	}
	return res
}
