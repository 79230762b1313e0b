package base

// Version is the RTSP protocol version carried on the first line of a
// message.
type Version int

// Supported versions. The zero value is V1, matching the "default V1"
// rule in spec §3.
const (
	V1 Version = iota
	V2
	VUnknown
)

// String returns the wire token for v ("1.0", "2.0", or "?" for unknown).
func (v Version) String() string {
	switch v {
	case V1:
		return "1.0"
	case V2:
		return "2.0"
	default:
		return "?"
	}
}

// ParseVersionToken maps the part of "RTSP/x.y" following the slash to a
// Version. Anything other than "1.0" or "2.0" is VUnknown, not an error:
// only serialization of VUnknown fails (VersionUnknown).
func ParseVersionToken(tok string) Version {
	switch tok {
	case "1.0":
		return V1
	case "2.0":
		return V2
	default:
		return VUnknown
	}
}
