package headers

import (
	"strconv"
	"strings"

	"github.com/oddity-ai/oddity-rtsp/pkg/liberrors"
)

// NptTime is either the literal "now" or an offset in seconds from the
// start of the presentation, per spec §3 ("NptTime ∈ {Now, Seconds(f64)}").
type NptTime struct {
	Now     bool
	Seconds float64
}

// String renders t as it appears on the wire.
func (t NptTime) String() string {
	if t.Now {
		return "now"
	}
	return strconv.FormatFloat(t.Seconds, 'f', 3, 64)
}

// ParseNptTime parses one npt-time token: "now", seconds as a bare float, or
// "hh:mm:ss.frac". Grounded on
// original_source/oddity-rtsp-protocol/src/range.rs NptTime::from_str.
func ParseNptTime(s string) (NptTime, error) {
	if s == "now" {
		return NptTime{Now: true}, nil
	}
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 1:
		v, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return NptTime{}, liberrors.ErrRangeNptTimeMalformed{Value: s}
		}
		return NptTime{Seconds: v}, nil
	case 3:
		hh, err1 := strconv.ParseUint(parts[0], 10, 32)
		mm, err2 := strconv.ParseUint(parts[1], 10, 32)
		ss, err3 := strconv.ParseFloat(parts[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return NptTime{}, liberrors.ErrRangeNptTimeMalformed{Value: s}
		}
		return NptTime{Seconds: float64(hh)*3600 + float64(mm)*60 + ss}, nil
	default:
		return NptTime{}, liberrors.ErrRangeNptTimeMalformed{Value: s}
	}
}

// Range is the RTSP Range header, restricted to the "npt" unit (spec §3:
// "smpte" and "clock" fail with RangeUnitNotSupported; a "time=" parameter
// fails with RangeTimeNotSupported).
type Range struct {
	From *NptTime
	To   *NptTime
}

// String renders r as "from-to", matching
// original_source/oddity-rtsp-protocol/src/range.rs's Display impl.
func (r Range) String() string {
	from, to := "", ""
	if r.From != nil {
		from = r.From.String()
	}
	if r.To != nil {
		to = r.To.String()
	}
	return from + "-" + to
}

// Write renders r as a full header value, e.g. "npt=now-".
func (r Range) Write() string {
	return "npt=" + r.String()
}

// ReadRange parses a Range header value. Grounded on
// original_source/oddity-rtsp-protocol/src/range.rs Range::from_str.
func ReadRange(v string) (*Range, error) {
	beforeSemi, timeParam, hasSemi := strings.Cut(v, ";")
	if hasSemi {
		if strings.HasPrefix(strings.TrimSpace(timeParam), "time=") {
			return nil, liberrors.ErrRangeTimeNotSupported{Value: v}
		}
		return nil, liberrors.ErrRangeMalformed{Value: v}
	}

	unit, value, hasEq := strings.Cut(beforeSemi, "=")
	if !hasEq {
		return nil, liberrors.ErrRangeMalformed{Value: v}
	}
	if unit != "npt" {
		return nil, liberrors.ErrRangeUnitNotSupported{Value: v}
	}

	fromTok, toTok, hasDash := strings.Cut(value, "-")
	if !hasDash {
		return nil, liberrors.ErrRangeMalformed{Value: v}
	}

	r := &Range{}
	if fromTok != "" {
		t, err := ParseNptTime(fromTok)
		if err != nil {
			return nil, err
		}
		r.From = &t
	}
	if toTok != "" {
		t, err := ParseNptTime(toTok)
		if err != nil {
			return nil, err
		}
		r.To = &t
	}
	return r, nil
}

// IsNowOnly reports whether r is exactly "npt=now-" or an open-ended range
// starting at a non-positive offset, the only form this server's PLAY
// accepts (spec §4.4: "only (Now, None) or (Seconds(s <= 0), None) is
// supported").
func (r *Range) IsNowOnly() bool {
	if r == nil {
		return true
	}
	if r.To != nil {
		return false
	}
	if r.From == nil {
		return true
	}
	if r.From.Now {
		return true
	}
	return r.From.Seconds <= 0
}
