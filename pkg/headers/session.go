package headers

import (
	"strconv"
	"strings"
)

// Session is the Session header: an opaque id plus an optional timeout
// parameter. Grounded on gortsplib's pkg/headers/session.go shape.
type Session struct {
	Session string
	Timeout *uint
}

// ReadSession parses a Session header value ("id" or "id;timeout=n").
func ReadSession(v string) Session {
	id, rest, ok := strings.Cut(v, ";")
	s := Session{Session: strings.TrimSpace(id)}
	if ok {
		rest = strings.TrimSpace(rest)
		if key, val, ok := strings.Cut(rest, "="); ok && strings.TrimSpace(key) == "timeout" {
			if n, err := strconv.ParseUint(strings.TrimSpace(val), 10, 32); err == nil {
				u := uint(n)
				s.Timeout = &u
			}
		}
	}
	return s
}

// Write renders s as it appears on the wire.
func (s Session) Write() string {
	if s.Timeout != nil {
		return s.Session + ";timeout=" + strconv.FormatUint(uint64(*s.Timeout), 10)
	}
	return s.Session
}
