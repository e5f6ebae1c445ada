package svg

import (
	"bytes"
	"encoding/xml"
)

// charWidthRatio approximates the advance of a sans-serif glyph relative
// to the font size.
const charWidthRatio = 0.6

// EscapeXML escapes text for use in SVG content and attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// TruncateLabel shortens a label so it fits in width at the given font size.
func TruncateLabel(label string, width, size float64) string {
	maxChars := int(width / (size * charWidthRatio))
	if maxChars < 3 {
		maxChars = 3
	}
	r := []rune(label)
	if len(r) <= maxChars {
		return label
	}
	return string(r[:maxChars-2]) + ".."
}
