package conn

// findLine scans buf for the first line terminator, recognizing CR, LF and
// CRLF (spec §4.2: "Line splitting recognizes CR, LF, and CRLF"). It
// returns the exclusive end of the line content, the number of bytes
// consumed including the terminator, and whether a terminator was
// unambiguously found.
//
// A lone CR that is the very last byte currently buffered is ambiguous: the
// next byte might turn it into CRLF. In that case ok is false so the caller
// waits for more data, which is what makes byte-at-a-time feeding produce
// the same result as feeding everything at once (spec §8 property 2).
func findLine(buf []byte) (lineEnd, consumed int, ok bool) {
	for i := 0; i < len(buf); i++ {
		switch buf[i] {
		case '\n':
			return i, i + 1, true
		case '\r':
			if i+1 < len(buf) {
				if buf[i+1] == '\n' {
					return i, i + 2, true
				}
				return i, i + 1, true
			}
			return 0, 0, false
		}
	}
	return 0, 0, false
}
