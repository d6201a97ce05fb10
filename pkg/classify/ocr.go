package classify

import (
	"strings"
	"unicode/utf8"
)

// ocrLabels maps OCR output that differs from the label alphabet.
var ocrLabels = map[string]string{
	"—": "-", "–": "-", "−": "-", "_": "-",
	"∑": `\sum`, "Σ": `\sum`,
	"∫": `\int`, "ʃ": `\int`,
	"π": `\pi`,
	"×": "x",
}

// NormalizeOCR maps raw OCR text for a single glyph to a label. It returns
// "" when the text is empty or longer than one symbol.
func NormalizeOCR(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if l, ok := ocrLabels[text]; ok {
		return l
	}
	if utf8.RuneCountInString(text) != 1 {
		return ""
	}
	return text
}

// ocrWhitelist restricts Tesseract to characters that map to labels.
const ocrWhitelist = "0123456789" +
	"abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"=-+()[],.|"
