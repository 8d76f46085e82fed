package sink

import (
	"bytes"
	"encoding/xml"
)

const (
	fontHeightRatio = 0.35
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 8.0
	fontSizeMax     = 20.0
)

// FontSize returns the label font size that fits a box of the given size.
func FontSize(label string, boxW, boxH float64) float64 {
	n := max(1, len([]rune(label)))
	byHeight := boxH * fontHeightRatio
	byWidth := (boxW * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// TruncateLabel shortens label with ".." when it does not fit the box at the
// minimum font size.
func TruncateLabel(label string, boxW, boxH float64) string {
	charWidth := FontSize(label, boxW, boxH) * fontCharWidth
	maxChars := max(int(boxW*fontWidthRatio/charWidth), 3)
	runes := []rune(label)
	if len(runes) <= maxChars {
		return label
	}
	return string(runes[:maxChars-2]) + ".."
}

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
