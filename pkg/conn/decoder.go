package conn

import (
	"encoding/binary"
	"strings"

	"github.com/oddity-ai/oddity-rtsp/pkg/base"
	"github.com/oddity-ai/oddity-rtsp/pkg/liberrors"
)

// Status reports whether Decoder.Feed produced a complete message or still
// needs more bytes, mirroring the Hungry/Done vocabulary of spec §4.2.
type Status int

const (
	// Hungry means Feed needs more input before it can make progress.
	Hungry Status = iota
	// Done means Feed produced a Request or InterleavedFrame.
	Done
)

type phase int

const (
	phaseSync phase = iota // about to read either '$' (interleaved) or a request-line
	phaseFirstLine
	phaseHeaders
	phaseBody
)

// Decoder incrementally parses RTSP requests and interleaved binary frames
// off one connection's byte stream. It is a pull parser: Feed is called
// with however many bytes happen to be available and returns Hungry until a
// full message has accumulated, at which point it returns Done and resets
// itself for the next message. Splitting the same bytes across any number
// of Feed calls yields the same sequence of decoded messages (spec §8
// property 2), with one exception: when a body completes, any bytes already
// buffered beyond its Content-Length make Feed return ErrBodyOverflow, so a
// body followed by further bytes in the same chunk fails where smaller
// chunks would not.
//
// Grounded on original_source/oddity-rtsp-protocol/src/{parse.rs,codec.rs}
// for the Head/Body state machine, and on gortsplib's pkg/conn/conn.go for
// the interleaved-frame-vs-text dispatch on the leading byte.
type Decoder struct {
	buf   []byte
	phase phase

	method  base.Method
	url     *base.URL
	version base.Version
	header  base.Header

	bodyNeed int
}

// NewDecoder returns a Decoder ready to parse the first message.
func NewDecoder() *Decoder {
	return &Decoder{phase: phaseSync}
}

// Feed appends chunk to the internal buffer and advances the state machine
// as far as it will go. On Done exactly one of req/frame is non-nil.
func (d *Decoder) Feed(chunk []byte) (status Status, req *base.Request, frame *base.InterleavedFrame, err error) {
	if len(chunk) > 0 {
		d.buf = append(d.buf, chunk...)
	}

	for {
		switch d.phase {
		case phaseSync:
			if len(d.buf) == 0 {
				return Hungry, nil, nil, nil
			}
			if d.buf[0] == base.InterleavedFrameMagic {
				if len(d.buf) < 4 {
					return Hungry, nil, nil, nil
				}
				length := int(binary.BigEndian.Uint16(d.buf[2:4]))
				if len(d.buf) < 4+length {
					return Hungry, nil, nil, nil
				}
				fr := &base.InterleavedFrame{
					Channel: d.buf[1],
					Payload: append([]byte(nil), d.buf[4:4+length]...),
				}
				d.buf = d.buf[4+length:]
				return Done, nil, fr, nil
			}
			d.phase = phaseFirstLine

		case phaseFirstLine:
			lineEnd, consumed, ok := findLine(d.buf)
			if !ok {
				return Hungry, nil, nil, nil
			}
			line := string(d.buf[:lineEnd])
			d.buf = d.buf[consumed:]

			method, url, version, perr := parseRequestLine(line)
			if perr != nil {
				d.resetMessage()
				return Hungry, nil, nil, perr
			}
			d.method, d.url, d.version = method, url, version
			d.header = base.NewHeader()
			d.phase = phaseHeaders

		case phaseHeaders:
			lineEnd, consumed, ok := findLine(d.buf)
			if !ok {
				return Hungry, nil, nil, nil
			}
			line := string(d.buf[:lineEnd])
			d.buf = d.buf[consumed:]

			if line == "" {
				n, present, perr := base.ContentLength(d.header)
				if perr != nil {
					d.resetMessage()
					return Hungry, nil, nil, perr
				}
				if !present || n == 0 {
					r := &base.Request{Method: d.method, URL: d.url, Version: d.version, Header: d.header}
					d.resetMessage()
					return Done, r, nil, nil
				}
				d.bodyNeed = n
				d.phase = phaseBody
				continue
			}

			key, val, perr := parseHeaderLine(line)
			if perr != nil {
				d.resetMessage()
				return Hungry, nil, nil, perr
			}
			d.header.Add(key, val)

		case phaseBody:
			if len(d.buf) < d.bodyNeed {
				return Hungry, nil, nil, nil
			}
			if len(d.buf) > d.bodyNeed {
				need, got := d.bodyNeed, len(d.buf)
				d.resetMessage()
				return Hungry, nil, nil, liberrors.ErrBodyOverflow{Need: need, Got: got}
			}
			body := d.buf
			d.buf = nil
			r := &base.Request{Method: d.method, URL: d.url, Version: d.version, Header: d.header, Body: body}
			d.resetMessage()
			return Done, r, nil, nil
		}
	}
}

// resetMessage clears per-message state and returns to phaseSync, leaving
// any unconsumed trailing bytes in d.buf for the next message.
func (d *Decoder) resetMessage() {
	d.phase = phaseSync
	d.method = ""
	d.url = nil
	d.version = 0
	d.header = base.Header{}
	d.bodyNeed = 0
}

func parseRequestLine(line string) (base.Method, *base.URL, base.Version, error) {
	if line == "" {
		return "", nil, 0, liberrors.ErrRequestLineMalformed{Line: line}
	}
	sp1 := strings.IndexByte(line, ' ')
	if sp1 < 0 {
		return "", nil, 0, liberrors.ErrRequestLineMalformed{Line: line}
	}
	rest := line[sp1+1:]
	sp2 := strings.IndexByte(rest, ' ')
	if sp2 < 0 {
		return "", nil, 0, liberrors.ErrRequestLineMalformed{Line: line}
	}
	methodTok := line[:sp1]
	urlTok := rest[:sp2]
	versionTok := rest[sp2+1:]

	method, known := base.ParseMethod(methodTok)
	if !known {
		return "", nil, 0, liberrors.ErrMethodUnknown{Token: methodTok}
	}

	url, err := base.ParseURL(urlTok)
	if err != nil {
		return "", nil, 0, err
	}

	if versionTok == "" {
		return "", nil, 0, liberrors.ErrVersionMissing{Line: line}
	}
	if !strings.HasPrefix(versionTok, "RTSP/") {
		return "", nil, 0, liberrors.ErrVersionMalformed{Token: versionTok}
	}
	version := base.ParseVersionToken(versionTok[len("RTSP/"):])

	return method, url, version, nil
}

func parseHeaderLine(line string) (key, value string, err error) {
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return "", "", liberrors.ErrHeaderMalformed{Line: line}
	}
	key = strings.TrimSpace(line[:colon])
	value = strings.TrimSpace(line[colon+1:])
	if key == "" {
		return "", "", liberrors.ErrHeaderMalformed{Line: line}
	}
	return key, value, nil
}
