package rings

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
)

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// TypesAttr encodes types as an escaped JSON array for a data-types attribute.
func TypesAttr(types []string) string {
	if types == nil {
		types = []string{}
	}
	b, _ := json.Marshal(types)
	return EscapeXML(string(b))
}

// Truncate shortens label to at most n runes, marking the cut with "..".
func Truncate(label string, n int) string {
	r := []rune(label)
	if n < 3 || len(r) <= n {
		return label
	}
	return string(r[:n-2]) + ".."
}
