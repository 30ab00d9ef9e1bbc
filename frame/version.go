package frame

import "strings"

// Version identifies one of the three STOMP protocol versions this
// client understands.
type Version string

const (
	V10 Version = "1.0"
	V11 Version = "1.1"
	V12 Version = "1.2"
)

// SupportedVersions is the full set this client advertises in
// accept-version, in ascending order.
var SupportedVersions = []Version{V10, V11, V12}

// Valid reports whether v is one of the three recognized versions.
func (v Version) Valid() bool {
	switch v {
	case V10, V11, V12:
		return true
	}
	return false
}

// escapePair is one (literal, escaped) substitution, applied in order
// so that backslash escapes first (spec §4.1 table).
type escapePair struct {
	literal string
	escaped string
}

// escapeTable returns the ordered substitutions to apply to an outbound
// header value under version v. CONNECT/STOMP frames never use this
// table (frame.Unescaped handles that exemption at the call site).
func escapeTable(v Version) []escapePair {
	switch v {
	case V10:
		return nil
	case V11:
		return []escapePair{
			{"\\", "\\\\"},
			{"\n", "\\n"},
			{":", "\\c"},
		}
	case V12:
		return []escapePair{
			{"\\", "\\\\"},
			{"\n", "\\n"},
			{":", "\\c"},
			{"\r", "\\r"},
		}
	default:
		return nil
	}
}

// EscapeHeaderValue escapes value for transmission under version v.
func EscapeHeaderValue(v Version, value string) string {
	table := escapeTable(v)
	if len(table) == 0 {
		return value
	}
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c == '\\':
			b.WriteString("\\\\")
		case c == '\n':
			b.WriteString("\\n")
		case c == ':':
			b.WriteString("\\c")
		case c == '\r' && v == V12:
			b.WriteString("\\r")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// UnescapeHeaderValue reverses EscapeHeaderValue for inbound header
// values under version v. ok is false when raw contains an escape
// sequence that is not recognized under v (spec §4.1: "An unrecognized
// escape sequence in 1.1/1.2 is a framing error"), or when v is 1.2 and
// raw contains a bare, unescaped carriage return (spec §4.1: "a bare CR
// inside a header line is a framing error" in 1.2).
func UnescapeHeaderValue(v Version, raw string) (string, bool) {
	if v == V10 {
		return raw, true
	}
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == '\r' {
			if v == V12 {
				return "", false
			}
			// 1.1: a bare CR not followed by LF is accepted literally.
			b.WriteByte(c)
			continue
		}
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(raw) {
			return "", false
		}
		i++
		switch raw[i] {
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 'c':
			b.WriteByte(':')
		case 'r':
			if v != V12 {
				return "", false
			}
			b.WriteByte('\r')
		default:
			return "", false
		}
	}
	return b.String(), true
}

// Negotiate picks the negotiated version per spec §4.3: the client's
// advertised accept-version list must contain the server's advertised
// version. serverVersion is empty when the CONNECTED frame carried no
// version header at all, in which case the session is 1.0
// unconditionally.
func Negotiate(clientVersions []Version, serverVersion string) (Version, bool) {
	if serverVersion == "" {
		return V10, true
	}
	sv := Version(serverVersion)
	for _, cv := range clientVersions {
		if cv == sv {
			return sv, true
		}
	}
	return "", false
}
