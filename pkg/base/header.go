package base

import (
	"net/http"
	"strings"
)

// headerKeyNormalize canonicalizes a header name the way RTSP clients and
// servers expect it on the wire. RTSP reuses a few HTTP-style header names
// that net/http.CanonicalHeaderKey gets wrong (it doesn't know "CSeq" isn't
// "Cseq"), so those are special-cased first; grounded on gortsplib's
// pkg/base/header.go headerKeyNormalize.
func headerKeyNormalize(in string) string {
	switch strings.ToLower(in) {
	case "cseq":
		return "CSeq"
	case "rtp-info":
		return "RTP-Info"
	case "www-authenticate":
		return "WWW-Authenticate"
	}
	return http.CanonicalHeaderKey(in)
}

// headerEntry is one (possibly multi-valued) header line group, keeping
// values in the order they were added.
type headerEntry struct {
	key    string // canonical casing, as first observed/set
	values []string
}

// Header is an ordered, case-insensitive-keyed mapping from header name to
// one-or-more values, per spec §3: "insertion order is the serialization
// order. Duplicate names are permitted ... stored as one comma-separated
// value per RFC." Unlike gortsplib's pkg/base.Header (a bare
// map[string]HeaderValue that sorts keys alphabetically before writing),
// this type preserves the order headers were first seen or set.
type Header struct {
	entries []headerEntry
	index   map[string]int // lowercase key -> index into entries
}

// NewHeader returns an empty Header ready to use.
func NewHeader() Header {
	return Header{index: make(map[string]int)}
}

func (h *Header) ensureIndex() {
	if h.index == nil {
		h.index = make(map[string]int)
	}
}

// Get returns the header value. Multiple values set via Add are joined with
// ", " to form the single RFC-style value; ok is false if the header is
// absent.
func (h Header) Get(key string) (string, bool) {
	h2 := h
	h2.ensureIndex()
	i, ok := h2.index[strings.ToLower(key)]
	if !ok {
		return "", false
	}
	return strings.Join(h.entries[i].values, ", "), true
}

// Values returns the raw, unjoined values for key.
func (h Header) Values(key string) []string {
	h2 := h
	h2.ensureIndex()
	i, ok := h2.index[strings.ToLower(key)]
	if !ok {
		return nil
	}
	return h.entries[i].values
}

// Has reports whether key is present, regardless of value.
func (h Header) Has(key string) bool {
	_, ok := h.Get(key)
	return ok
}

// Set replaces all values for key with a single value, inserting at the end
// if key is new. The canonical casing used for serialization is taken from
// key the first time it is set.
func (h *Header) Set(key, value string) {
	h.ensureIndex()
	lk := strings.ToLower(key)
	if i, ok := h.index[lk]; ok {
		h.entries[i].values = []string{value}
		return
	}
	h.entries = append(h.entries, headerEntry{key: headerKeyNormalize(key), values: []string{value}})
	h.index[lk] = len(h.entries) - 1
}

// Add appends an additional value for key, for headers that are inherently
// multi-valued (spec §3).
func (h *Header) Add(key, value string) {
	h.ensureIndex()
	lk := strings.ToLower(key)
	if i, ok := h.index[lk]; ok {
		h.entries[i].values = append(h.entries[i].values, value)
		return
	}
	h.entries = append(h.entries, headerEntry{key: headerKeyNormalize(key), values: []string{value}})
	h.index[lk] = len(h.entries) - 1
}

// Del removes key if present.
func (h *Header) Del(key string) {
	h.ensureIndex()
	lk := strings.ToLower(key)
	i, ok := h.index[lk]
	if !ok {
		return
	}
	h.entries = append(h.entries[:i], h.entries[i+1:]...)
	delete(h.index, lk)
	for k, v := range h.index {
		if v > i {
			h.index[k] = v - 1
		}
	}
}

// Len returns the number of distinct header names.
func (h Header) Len() int { return len(h.entries) }

// Range calls f for each header name, in insertion order, with its joined
// value.
func (h Header) Range(f func(key, value string)) {
	for _, e := range h.entries {
		f(e.key, strings.Join(e.values, ", "))
	}
}

// Clone returns a deep copy.
func (h Header) Clone() Header {
	out := NewHeader()
	h.Range(func(k, v string) { out.Set(k, v) })
	return out
}
