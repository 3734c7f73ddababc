package format

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// RepairText reverses the export's mojibake: UTF-8 bytes that were written
// out as one Latin-1 character per byte. Text that cannot be the result of
// that mistake (runes above U+00FF, or bytes that do not form UTF-8) is
// returned unchanged.
func RepairText(s string) string {
	if isASCII(s) {
		return s
	}
	raw, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return s
	}
	if !utf8.ValidString(raw) {
		return s
	}
	return raw
}

// RepairMessage returns m with sender and content repaired.
func RepairMessage(m Message) Message {
	m.SenderName = RepairText(m.SenderName)
	m.Content = RepairText(m.Content)
	return m
}

// RepairNames repairs every name, preserving order.
func RepairNames(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = RepairText(name)
	}
	return out
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
