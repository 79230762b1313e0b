// Package headers implements typed Read/Write access to the RTSP headers
// this server cares about: Transport, Range, Session and RTP-Info. Each
// header type is a plain struct with a Write() string method, after
// gortsplib's pkg/headers convention; parsing is done by package-level
// functions (ReadTransport, ReadRange, ReadSession). RTP-Info is write-only.
package headers

import "strings"

// keyVal is one ';'-separated parameter of a header value, either a bare
// key or a key=value pair. Grounded on gortsplib's unexported keyValParse
// helper shared by pkg/headers/transport.go and pkg/headers/rtpinfo.go.
type keyVal struct {
	key   string
	value string
	has   bool
}

// splitParams splits a header value on ';' into trimmed, non-empty
// key[=value] tokens in order.
func splitParams(v string) []keyVal {
	parts := strings.Split(v, ";")
	out := make([]keyVal, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if eq := strings.IndexByte(p, '='); eq >= 0 {
			out = append(out, keyVal{key: strings.TrimSpace(p[:eq]), value: strings.TrimSpace(p[eq+1:]), has: true})
		} else {
			out = append(out, keyVal{key: p})
		}
	}
	return out
}
