// Package liberrors enumerates the failure modes of this server's codec,
// session and session-manager layers, one exported struct per failure with
// an Error() string method — the same shape gortsplib uses in
// pkg/liberrors/server.go, rather than sentinel errors.New values. Call
// sites type-switch on the concrete type when they need to map it to an
// RTSP status code (internal/rtspserver/handler.go).
//
// The decoder parses requests only, so the status-line, reason-phrase and
// parser-state types (ErrEncoding, ErrStatusLineMalformed,
// ErrStatusCodeMissing, ErrStatusCodeNotInteger, ErrReasonPhraseMissing,
// ErrContentLengthMissing, ErrHeadAlreadyDone, ErrBodyAlreadyDone,
// ErrMetadataNotParsed, ErrNotDone) are defined but not returned by any
// code in this module.
package liberrors

import "fmt"

// ErrEncoding is returned when a header or line cannot be decoded as valid
// text.
type ErrEncoding struct{}

func (ErrEncoding) Error() string { return "encoding incorrect" }

// ErrRequestLineMalformed is returned when the request-line cannot be split
// into method, URL and version.
type ErrRequestLineMalformed struct{ Line string }

func (e ErrRequestLineMalformed) Error() string {
	return fmt.Sprintf("request line malformed: %q", e.Line)
}

// ErrStatusLineMalformed is returned when the status-line cannot be split
// into version, status code and reason.
type ErrStatusLineMalformed struct{ Line string }

func (e ErrStatusLineMalformed) Error() string {
	return fmt.Sprintf("status line malformed: %q", e.Line)
}

// ErrVersionMissing is returned when the first line has no third
// (version) token.
type ErrVersionMissing struct{ Line string }

func (e ErrVersionMissing) Error() string { return fmt.Sprintf("version missing in line: %q", e.Line) }

// ErrVersionMalformed is returned when the version token doesn't begin with
// "RTSP/".
type ErrVersionMalformed struct{ Token string }

func (e ErrVersionMalformed) Error() string { return fmt.Sprintf("version malformed: %q", e.Token) }

// ErrVersionUnknown is returned when serializing a message whose Version is
// VUnknown.
type ErrVersionUnknown struct{}

func (ErrVersionUnknown) Error() string { return "version unknown, cannot serialize" }

// ErrStatusCodeMissing is returned when a status-line has no status-code
// token.
type ErrStatusCodeMissing struct{ Line string }

func (e ErrStatusCodeMissing) Error() string {
	return fmt.Sprintf("status code missing in line: %q", e.Line)
}

// ErrStatusCodeNotInteger is returned when the status-code token is not
// three decimal digits.
type ErrStatusCodeNotInteger struct{ Token string }

func (e ErrStatusCodeNotInteger) Error() string {
	return fmt.Sprintf("status code not an integer: %q", e.Token)
}

// ErrMethodUnknown is returned when the method token does not exactly match
// a known RTSP method.
type ErrMethodUnknown struct{ Token string }

func (e ErrMethodUnknown) Error() string { return fmt.Sprintf("method unknown: %q", e.Token) }

// ErrURLMissing is returned when the request-line has no URL token.
type ErrURLMissing struct{}

func (ErrURLMissing) Error() string { return "url missing" }

// ErrURLMalformed is returned when the URL token fails to parse.
type ErrURLMalformed struct {
	Raw   string
	Cause error
}

func (e ErrURLMalformed) Error() string { return fmt.Sprintf("url malformed: %q (%v)", e.Raw, e.Cause) }
func (e ErrURLMalformed) Unwrap() error { return e.Cause }

// ErrURLNotAbsolute is returned when a request URL is neither "*" nor
// absolute.
type ErrURLNotAbsolute struct{ Raw string }

func (e ErrURLNotAbsolute) Error() string { return fmt.Sprintf("url not absolute: %q", e.Raw) }

// ErrReasonPhraseMissing is returned when a status-line has no reason
// phrase.
type ErrReasonPhraseMissing struct{ Line string }

func (e ErrReasonPhraseMissing) Error() string {
	return fmt.Sprintf("reason phrase missing in line: %q", e.Line)
}

// ErrHeaderMalformed is returned when a header line has no ":" separator.
type ErrHeaderMalformed struct{ Line string }

func (e ErrHeaderMalformed) Error() string { return fmt.Sprintf("header malformed: %q", e.Line) }

// ErrContentLengthMissing is returned internally when body parsing is
// attempted without a Content-Length header (defensive; the codec never
// enters Body.Incomplete without one, see spec §4.2).
type ErrContentLengthMissing struct{}

func (ErrContentLengthMissing) Error() string { return "content-length missing" }

// ErrContentLengthNotInteger is returned when Content-Length is not a valid
// non-negative integer.
type ErrContentLengthNotInteger struct{ Value string }

func (e ErrContentLengthNotInteger) Error() string {
	return fmt.Sprintf("content-length not an integer: %q", e.Value)
}

// ErrBodyOverflow is returned when more bytes arrive than Content-Length
// announced.
type ErrBodyOverflow struct{ Need, Got int }

func (e ErrBodyOverflow) Error() string {
	return fmt.Sprintf("body overflow: need %d, got %d", e.Need, e.Got)
}

// ErrHeadAlreadyDone is returned when the parser is driven past the point
// where its head has already completed.
type ErrHeadAlreadyDone struct{}

func (ErrHeadAlreadyDone) Error() string { return "head already done" }

// ErrBodyAlreadyDone is returned when the parser is driven past the point
// where its body has already completed.
type ErrBodyAlreadyDone struct{}

func (ErrBodyAlreadyDone) Error() string { return "body already done" }

// ErrMetadataNotParsed is returned if a message is materialized before its
// first line parsed successfully (defensive; unreachable in practice).
type ErrMetadataNotParsed struct{}

func (ErrMetadataNotParsed) Error() string { return "metadata not parsed" }

// ErrNotDone is returned when materializing a message before the parser
// reached Body.Complete.
type ErrNotDone struct{}

func (ErrNotDone) Error() string { return "parser not done yet" }

// ErrInterleavedPayloadTooLarge is returned when an interleaved frame's
// payload exceeds the 16-bit length field.
type ErrInterleavedPayloadTooLarge struct{ Len int }

func (e ErrInterleavedPayloadTooLarge) Error() string {
	return fmt.Sprintf("interleaved payload too large: %d bytes", e.Len)
}

// ErrRangeMalformed is returned for a Range header that cannot be parsed at
// all.
type ErrRangeMalformed struct{ Value string }

func (e ErrRangeMalformed) Error() string { return fmt.Sprintf("range malformed: %q", e.Value) }

// ErrRangeUnitNotSupported is returned for "smpte=" and "clock=" ranges
// (spec §3: only "npt" is supported).
type ErrRangeUnitNotSupported struct{ Value string }

func (e ErrRangeUnitNotSupported) Error() string {
	return fmt.Sprintf("range unit not supported: %q", e.Value)
}

// ErrRangeTimeNotSupported is returned when a Range header carries a
// "time=" parameter.
type ErrRangeTimeNotSupported struct{ Value string }

func (e ErrRangeTimeNotSupported) Error() string {
	return fmt.Sprintf("range time= not supported: %q", e.Value)
}

// ErrRangeNptTimeMalformed is returned when an npt time token is neither
// "now", a bare ss(.frac) seconds value, nor hh:mm:ss(.frac).
type ErrRangeNptTimeMalformed struct{ Value string }

func (e ErrRangeNptTimeMalformed) Error() string {
	return fmt.Sprintf("npt time malformed: %q", e.Value)
}

// Transport header errors.

// ErrTransportProtocolProfileMissing is returned when a Transport candidate
// has no "RTP/AVP[/TCP]" profile token.
type ErrTransportProtocolProfileMissing struct{ Value string }

func (e ErrTransportProtocolProfileMissing) Error() string {
	return fmt.Sprintf("transport protocol/profile missing: %q", e.Value)
}

// ErrTransportLowerUnknown is returned for a profile suffix other than
// (absent)/"/UDP"/"/TCP".
type ErrTransportLowerUnknown struct{ Value string }

func (e ErrTransportLowerUnknown) Error() string {
	return fmt.Sprintf("transport lower-layer unknown: %q", e.Value)
}

// ErrTransportParameterInvalid is returned when a bare flag parameter
// (unicast, multicast, append) is given a value.
type ErrTransportParameterInvalid struct{ Parameter string }

func (e ErrTransportParameterInvalid) Error() string {
	return fmt.Sprintf("transport parameter invalid: %q", e.Parameter)
}

// ErrTransportParameterValueMissing is returned when a parameter that
// requires a value is given without "=".
type ErrTransportParameterValueMissing struct{ Key string }

func (e ErrTransportParameterValueMissing) Error() string {
	return fmt.Sprintf("transport parameter %q missing value", e.Key)
}

// ErrTransportParameterValueInvalid is returned when a parameter value
// fails to parse as its expected type.
type ErrTransportParameterValueInvalid struct{ Key, Value string }

func (e ErrTransportParameterValueInvalid) Error() string {
	return fmt.Sprintf("transport parameter %q has invalid value %q", e.Key, e.Value)
}

// ErrTransportParameterUnknown is returned for a parameter name the
// Transport parser does not recognize.
type ErrTransportParameterUnknown struct{ Key string }

func (e ErrTransportParameterUnknown) Error() string {
	return fmt.Sprintf("transport parameter unknown: %q", e.Key)
}

// ErrTransportChannelMalformed is returned for an "interleaved=" value that
// is not a single channel or a 2-channel range.
type ErrTransportChannelMalformed struct{ Value string }

func (e ErrTransportChannelMalformed) Error() string {
	return fmt.Sprintf("transport interleaved channel malformed: %q", e.Value)
}

// ErrTransportPortMalformed is returned for a port/client_port/server_port
// value that is not a single port or a 2-port range.
type ErrTransportPortMalformed struct{ Value string }

func (e ErrTransportPortMalformed) Error() string {
	return fmt.Sprintf("transport port malformed: %q", e.Value)
}
