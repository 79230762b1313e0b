package headers

import (
	"strconv"
	"strings"

	"github.com/oddity-ai/oddity-rtsp/pkg/liberrors"
)

// TransportLower is the lower-layer protocol carrying RTP, spec §3
// ("lower ∈ {UDP, TCP} (default UDP)").
type TransportLower int

const (
	TransportLowerUDP TransportLower = iota
	TransportLowerTCP
)

// TransportMode is the Transport header's mode= parameter. Only Play is
// accepted by this server (spec §4.4); ModeOther stands for any other
// value, rejected during negotiation.
type TransportMode int

const (
	TransportModePlay TransportMode = iota
	TransportModeOther
)

// Transport is one candidate of a (possibly comma-separated) Transport
// header, trimmed to the parameter set spec §3 enumerates. Grounded on
// gortsplib's pkg/headers/transport.go field shape, with SRTP/MIKEY/source
// fields dropped (secure transport and multicast source filtering are
// Non-goals here).
type Transport struct {
	Lower TransportLower

	Unicast     bool
	Multicast   bool
	Destination *string
	Interleaved *[2]int
	Append      bool
	TTL         *uint
	Layers      *uint
	Port        *[2]int
	ClientPort  *[2]int
	ServerPort  *[2]int
	SSRC        *uint32
	Mode        *TransportMode
}

// ReadTransportCandidates splits a Transport header value on ',' (RFC 2326
// allows a comma-separated list of acceptable transports) and parses each
// candidate independently. A malformed candidate fails the whole header:
// spec §4.2 has no notion of "skip the bad one and keep going".
func ReadTransportCandidates(v string) ([]*Transport, error) {
	var out []*Transport
	for _, cand := range strings.Split(v, ",") {
		t, err := ReadTransport(strings.TrimSpace(cand))
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// ReadTransport parses one Transport candidate.
func ReadTransport(v string) (*Transport, error) {
	kvs := splitParams(v)
	if len(kvs) == 0 {
		return nil, liberrors.ErrTransportProtocolProfileMissing{Value: v}
	}

	t := &Transport{}
	profile := kvs[0]
	if profile.has {
		return nil, liberrors.ErrTransportProtocolProfileMissing{Value: v}
	}
	switch profile.key {
	case "RTP/AVP", "RTP/AVP/UDP":
		t.Lower = TransportLowerUDP
	case "RTP/AVP/TCP":
		t.Lower = TransportLowerTCP
	default:
		return nil, liberrors.ErrTransportLowerUnknown{Value: profile.key}
	}

	for _, kv := range kvs[1:] {
		if err := t.applyParam(kv); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Transport) applyParam(kv keyVal) error {
	switch kv.key {
	case "unicast":
		if kv.has {
			return liberrors.ErrTransportParameterInvalid{Parameter: kv.key}
		}
		t.Unicast = true
	case "multicast":
		if kv.has {
			return liberrors.ErrTransportParameterInvalid{Parameter: kv.key}
		}
		t.Multicast = true
	case "append":
		if kv.has {
			return liberrors.ErrTransportParameterInvalid{Parameter: kv.key}
		}
		t.Append = true
	case "destination":
		if !kv.has {
			return liberrors.ErrTransportParameterValueMissing{Key: kv.key}
		}
		v := kv.value
		t.Destination = &v
	case "interleaved":
		if !kv.has {
			return liberrors.ErrTransportParameterValueMissing{Key: kv.key}
		}
		lo, hi, err := parsePortOrRange(kv.value)
		if err != nil {
			return liberrors.ErrTransportChannelMalformed{Value: kv.value}
		}
		t.Interleaved = &[2]int{lo, hi}
	case "ttl":
		if !kv.has {
			return liberrors.ErrTransportParameterValueMissing{Key: kv.key}
		}
		n, err := strconv.ParseUint(kv.value, 10, 32)
		if err != nil {
			return liberrors.ErrTransportParameterValueInvalid{Key: kv.key, Value: kv.value}
		}
		u := uint(n)
		t.TTL = &u
	case "layers":
		if !kv.has {
			return liberrors.ErrTransportParameterValueMissing{Key: kv.key}
		}
		n, err := strconv.ParseUint(kv.value, 10, 32)
		if err != nil {
			return liberrors.ErrTransportParameterValueInvalid{Key: kv.key, Value: kv.value}
		}
		u := uint(n)
		t.Layers = &u
	case "port":
		if !kv.has {
			return liberrors.ErrTransportParameterValueMissing{Key: kv.key}
		}
		lo, hi, err := parsePortOrRange(kv.value)
		if err != nil {
			return liberrors.ErrTransportPortMalformed{Value: kv.value}
		}
		t.Port = &[2]int{lo, hi}
	case "client_port":
		if !kv.has {
			return liberrors.ErrTransportParameterValueMissing{Key: kv.key}
		}
		lo, hi, err := parsePortOrRange(kv.value)
		if err != nil {
			return liberrors.ErrTransportPortMalformed{Value: kv.value}
		}
		t.ClientPort = &[2]int{lo, hi}
	case "server_port":
		if !kv.has {
			return liberrors.ErrTransportParameterValueMissing{Key: kv.key}
		}
		lo, hi, err := parsePortOrRange(kv.value)
		if err != nil {
			return liberrors.ErrTransportPortMalformed{Value: kv.value}
		}
		t.ServerPort = &[2]int{lo, hi}
	case "ssrc":
		if !kv.has {
			return liberrors.ErrTransportParameterValueMissing{Key: kv.key}
		}
		hex := kv.value
		if len(hex)%2 != 0 {
			hex = "0" + hex
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return liberrors.ErrTransportParameterValueInvalid{Key: kv.key, Value: kv.value}
		}
		v := uint32(n)
		t.SSRC = &v
	case "mode":
		if !kv.has {
			return liberrors.ErrTransportParameterValueMissing{Key: kv.key}
		}
		mode := strings.Trim(strings.ToLower(kv.value), `"`)
		m := TransportModeOther
		if mode == "play" {
			m = TransportModePlay
		}
		t.Mode = &m
	default:
		return liberrors.ErrTransportParameterUnknown{Key: kv.key}
	}
	return nil
}

// parsePortOrRange parses "n" (single port, returned as [n,n]) or "n-m" (a
// two-port range). Anything else — including a range of more than two
// ports — is malformed: spec §9 normalizes the original's silent
// first-two-ports truncation into an explicit rejection.
func parsePortOrRange(v string) (lo, hi int, err error) {
	parts := strings.Split(v, "-")
	switch len(parts) {
	case 1:
		n, perr := strconv.Atoi(parts[0])
		if perr != nil {
			return 0, 0, perr
		}
		return n, n, nil
	case 2:
		a, perr1 := strconv.Atoi(parts[0])
		b, perr2 := strconv.Atoi(parts[1])
		if perr1 != nil || perr2 != nil || b != a+1 {
			return 0, 0, liberrors.ErrTransportPortMalformed{Value: v}
		}
		return a, b, nil
	default:
		return 0, 0, liberrors.ErrTransportPortMalformed{Value: v}
	}
}

// Write renders t as it appears on the wire. Grounded on gortsplib's
// pkg/headers/transport.go Write.
func (t *Transport) Write() string {
	var parts []string
	if t.Lower == TransportLowerTCP {
		parts = append(parts, "RTP/AVP/TCP")
	} else {
		parts = append(parts, "RTP/AVP")
	}
	if t.Unicast {
		parts = append(parts, "unicast")
	}
	if t.Multicast {
		parts = append(parts, "multicast")
	}
	if t.Destination != nil {
		parts = append(parts, "destination="+*t.Destination)
	}
	if t.Interleaved != nil {
		parts = append(parts, "interleaved="+formatPorts(t.Interleaved))
	}
	if t.Append {
		parts = append(parts, "append")
	}
	if t.TTL != nil {
		parts = append(parts, "ttl="+strconv.FormatUint(uint64(*t.TTL), 10))
	}
	if t.Layers != nil {
		parts = append(parts, "layers="+strconv.FormatUint(uint64(*t.Layers), 10))
	}
	if t.Port != nil {
		parts = append(parts, "port="+formatPorts(t.Port))
	}
	if t.ClientPort != nil {
		parts = append(parts, "client_port="+formatPorts(t.ClientPort))
	}
	if t.ServerPort != nil {
		parts = append(parts, "server_port="+formatPorts(t.ServerPort))
	}
	if t.SSRC != nil {
		parts = append(parts, "ssrc="+strconv.FormatUint(uint64(*t.SSRC), 16))
	}
	if t.Mode != nil {
		if *t.Mode == TransportModePlay {
			parts = append(parts, `mode=play`)
		} else {
			parts = append(parts, `mode=record`)
		}
	}
	return strings.Join(parts, ";")
}

func formatPorts(p *[2]int) string {
	if p[0] == p[1] {
		return strconv.Itoa(p[0])
	}
	return strconv.Itoa(p[0]) + "-" + strconv.Itoa(p[1])
}
