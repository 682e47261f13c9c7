package proto

import "unicode/utf8"

// LogLinePayload encodes a MsgLogLine payload of at most max bytes.
//
// Convention:
// - Payload is UTF-8 bytes without a trailing newline.
// - Overlong lines are cut on a rune boundary.
func LogLinePayload(line string, max int) []byte {
	if len(line) > max {
		cut := max
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		line = line[:cut]
	}
	return []byte(line)
}
