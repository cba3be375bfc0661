package client

import (
	"strings"
	"unicode/utf8"
)

// utf8Decoder turns a byte stream into text without splitting a rune across
// two chunks. Each run of consecutive invalid bytes becomes a single U+FFFD.
type utf8Decoder struct {
	pending []byte
}

func (d *utf8Decoder) Decode(p []byte) string {
	data := append(d.pending, p...)

	cut := len(data)
	for i := len(data) - 1; i >= 0 && len(data)-i <= utf8.UTFMax; i-- {
		if utf8.RuneStart(data[i]) {
			if !utf8.FullRune(data[i:]) {
				cut = i
			}
			break
		}
	}

	d.pending = append([]byte(nil), data[cut:]...)
	return strings.ToValidUTF8(string(data[:cut]), "\uFFFD")
}

// Flush returns whatever is still buffered at end of stream.
func (d *utf8Decoder) Flush() string {
	rest := strings.ToValidUTF8(string(d.pending), "\uFFFD")
	d.pending = nil
	return rest
}
