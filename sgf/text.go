package sgf

import "strings"

var (
	textEscaper    = strings.NewReplacer(`\`, `\\`, `]`, `\]`)
	composeEscaper = strings.NewReplacer(`\`, `\\`, `]`, `\]`, `:`, `\:`)
)

func escape(s string) string        { return textEscaper.Replace(s) }
func escapeCompose(s string) string { return composeEscaper.Replace(s) }

// unescape removes the escaping of a bracketed value. An escaped line break is a
// soft break and disappears.
func unescape(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	var buf strings.Builder
	buf.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			buf.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case '\n':
			if i+1 < len(s) && s[i+1] == '\r' {
				i++
			}
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		default:
			buf.WriteByte(s[i])
		}
	}
	return buf.String()
}

// splitCompose splits an escaped value at its first unescaped colon.
func splitCompose(s string) (a, b string, ok bool) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case ':':
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}
