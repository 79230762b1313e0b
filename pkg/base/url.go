package base

import (
	"net/url"
	"strings"

	"github.com/oddity-ai/oddity-rtsp/pkg/liberrors"
)

// URL wraps net/url.URL for RTSP request targets, which are either an
// absolute "rtsp://..." URL or the literal "*" used by OPTIONS (spec §3).
// Grounded on gortsplib's pkg/base/url.go, simplified since digest-auth
// credentials embedded in the URL are a Non-goal here.
type URL struct {
	Star bool // true if the request-URI was exactly "*"
	*url.URL
}

// ParseURL parses a request-URI. An empty string is always malformed.
func ParseURL(raw string) (*URL, error) {
	if raw == "" {
		return nil, liberrors.ErrURLMissing{}
	}
	if raw == "*" {
		return &URL{Star: true, URL: &url.URL{}}, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, liberrors.ErrURLMalformed{Raw: raw, Cause: err}
	}
	if !u.IsAbs() {
		return nil, liberrors.ErrURLNotAbsolute{Raw: raw}
	}
	return &URL{URL: u}, nil
}

// NormalizedPath returns the URL path normalized to begin with exactly one
// "/" (spec §3 SourcePath). Trailing slashes, which FFmpeg/GStreamer
// sometimes send, are trimmed; "/" itself stays "/". No track selector or
// query handling is done, since this server has no track concept.
func NormalizedPath(p string) string {
	p = strings.TrimRight(p, "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if p == "" {
		p = "/"
	}
	return p
}

// String renders the request-URI form written on the wire.
func (u *URL) String() string {
	if u.Star {
		return "*"
	}
	return u.URL.String()
}
