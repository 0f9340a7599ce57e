package pattern

import "strings"

// hexspeakTable maps letters to the hex digit they resemble.
// Characters missing from the table cannot be expressed as hexspeak.
var hexspeakTable = map[rune]byte{
	'a': 'a', 'b': 'b', 'c': 'c', 'd': 'd', 'e': 'e', 'f': 'f',
	'g': '9',
	'i': '1', 'j': '1', 'l': '1',
	'o': '0',
	'q': '9',
	's': '5',
	't': '7',
	'z': '2',
	'0': '0', '1': '1', '2': '2', '3': '3', '4': '4',
	'5': '5', '6': '6', '7': '7', '8': '8', '9': '9',
}

// Hexspeak translates s into a lowercase nibble string using look-alike digits
// (e.g. "cool" -> "c001"). It reports false if any character has no hex look-alike.
func Hexspeak(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range strings.ToLower(s) {
		h, ok := hexspeakTable[c]
		if !ok {
			return "", false
		}
		b.WriteByte(h)
	}
	return b.String(), true
}
