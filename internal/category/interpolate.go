package category

import (
	"strings"
)

const indexSuffix = "index.html"

// Interpolate replaces every :identifier token in tpl with lookup(identifier).
// Identifiers are runs of ASCII letters, digits and underscores. Unknown tokens
// expand to the empty string; a colon not followed by an identifier is literal.
func Interpolate(tpl string, lookup func(name string) (string, bool)) string {
	if !strings.Contains(tpl, ":") {
		return tpl
	}

	var b strings.Builder
	b.Grow(len(tpl))

	for i := 0; i < len(tpl); {
		if tpl[i] != ':' {
			b.WriteByte(tpl[i])
			i++
			continue
		}

		j := i + 1
		for j < len(tpl) && isIdentByte(tpl[j]) {
			j++
		}
		if j == i+1 {
			b.WriteByte(':')
			i++
			continue
		}

		if v, ok := lookup(tpl[i+1 : j]); ok {
			b.WriteString(v)
		}
		i = j
	}

	return b.String()
}

// InterpolateMap is Interpolate over a fixed set of values.
func InterpolateMap(tpl string, data map[string]string) string {
	return Interpolate(tpl, func(name string) (string, bool) {
		v, ok := data[name]
		return v, ok
	})
}

// TrimPermalink strips a trailing "/index.html" so the path reads as a clean
// link. Other paths are returned unchanged.
func TrimPermalink(p string) string {
	if p == indexSuffix {
		return ""
	}
	if trimmed, ok := strings.CutSuffix(p, "/"+indexSuffix); ok {
		return trimmed
	}
	return p
}

func isIdentByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
