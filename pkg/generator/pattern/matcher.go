package pattern

import "math"

// window is a byte constraint at a fixed offset of the address.
type window struct {
	off  int
	want []byte // already masked
	mask []byte
}

// Matcher combines the patterns of one job with logical AND.
// It pre-processes the patterns once so the hot loop neither allocates nor
// switches on the pattern kind.
type Matcher struct {
	windows []window
	regexps []*Pattern
	nibbles int
}

// NewMatcher creates a Matcher from the given patterns. Nil patterns are skipped.
func NewMatcher(patterns ...*Pattern) *Matcher {
	m := &Matcher{}
	for _, p := range patterns {
		if p == nil {
			continue
		}
		if p.kind == KindRegex {
			m.regexps = append(m.regexps, p)
			continue
		}
		off := 0
		if p.kind == KindSuffix {
			off = AddressLen - len(p.bytes)
		}
		want := make([]byte, len(p.bytes))
		for i := range want {
			want[i] = p.bytes[i] & p.mask[i]
		}
		m.windows = append(m.windows, window{off: off, want: want, mask: p.mask})
		m.nibbles += p.nibbles
	}
	return m
}

// Empty reports whether the matcher has no constraints at all.
func (m *Matcher) Empty() bool {
	return len(m.windows) == 0 && len(m.regexps) == 0
}

// Match checks the raw 32-byte address against every constraint.
// Byte windows are compared first; the hex form is only built when a regex is configured.
func (m *Matcher) Match(addr *[AddressLen]byte) bool {
	for i := range m.windows {
		w := &m.windows[i]
		for j, b := range w.want {
			if addr[w.off+j]&w.mask[j] != b {
				return false
			}
		}
	}

	if len(m.regexps) == 0 {
		return true
	}

	var hexBuf [AddressHexLen]byte
	hexEncode(hexBuf[:], addr[:])
	for _, p := range m.regexps {
		if !p.re.Match(hexBuf[:]) {
			return false
		}
	}
	return true
}

// Difficulty returns the expected number of attempts per match for the byte
// constraints (16^nibbles). It returns 0 when a regex makes the estimate unknown.
func (m *Matcher) Difficulty() float64 {
	if len(m.regexps) > 0 {
		return 0
	}
	return math.Pow(16, float64(m.nibbles))
}

// hexEncode encodes src into dst as lowercase hexadecimal.
// dst must be at least len(src)*2 bytes.
func hexEncode(dst, src []byte) {
	const hextable = "0123456789abcdef"
	for i, v := range src {
		dst[i*2] = hextable[v>>4]
		dst[i*2+1] = hextable[v&0x0f]
	}
}
