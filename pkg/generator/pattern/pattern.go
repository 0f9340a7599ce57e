// Package pattern compiles user supplied vanity patterns into address matchers.
//
// A raw pattern is tried, in order, as a 0x-prefixed hex literal, as hexspeak
// (letters mapped to look-alike hex digits) and finally as a regular expression
// over the lowercase hex form of the address.
package pattern

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"regexp/syntax"
	"strings"
	"unicode"
)

// AddressLen is the length of a Sui address in bytes.
const AddressLen = 32

// AddressHexLen is the number of hex characters in an address (without 0x).
const AddressHexLen = AddressLen * 2

// Role tells which end of the address a pattern is anchored to.
type Role int

const (
	RolePrefix Role = iota // Pattern must match the start of the address
	RoleSuffix             // Pattern must match the end of the address
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RolePrefix:
		return "prefix"
	case RoleSuffix:
		return "suffix"
	default:
		return "unknown"
	}
}

// Kind is the compiled form of a pattern.
type Kind int

const (
	KindPrefix Kind = iota // Exact leading bytes
	KindSuffix             // Exact trailing bytes
	KindRegex              // Regular expression over the lowercase hex address
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPrefix:
		return "prefix"
	case KindSuffix:
		return "suffix"
	case KindRegex:
		return "regex"
	default:
		return "unknown"
	}
}

// Pattern is a compiled constraint on an address.
type Pattern struct {
	kind    Kind
	role    Role
	source  string
	bytes   []byte         // padded needle, nil for regex
	mask    []byte         // per-byte mask, 0xf0/0x0f on the padded byte of odd patterns
	nibbles int            // significant nibbles in bytes
	re      *regexp.Regexp // nil for byte patterns
}

// Compile turns raw into a Pattern for the given role.
func Compile(raw string, role Role) (*Pattern, error) {
	if role != RolePrefix && role != RoleSuffix {
		return nil, fmt.Errorf("unknown pattern role %d", role)
	}
	if raw == "" {
		return nil, invalidHex(raw, role, "empty pattern")
	}

	// Literal hex
	if len(raw) >= 2 && raw[0] == '0' && (raw[1] == 'x' || raw[1] == 'X') {
		nibbles := strings.ToLower(raw[2:])
		if nibbles == "" {
			return nil, invalidHex(raw, role, "no digits after 0x")
		}
		if !IsValidHex(nibbles) {
			return nil, invalidHex(raw, role, "non-hex character after 0x")
		}
		return fromNibbles(raw, nibbles, role)
	}

	// Hexspeak
	if nibbles, ok := Hexspeak(raw); ok {
		return fromNibbles(raw, nibbles, role)
	}

	return compileRegex(raw, role)
}

// MustCompile is like Compile but panics on error. Intended for tests and constants.
func MustCompile(raw string, role Role) *Pattern {
	p, err := Compile(raw, role)
	if err != nil {
		panic(err)
	}
	return p
}

// fromNibbles pads an odd nibble string to whole bytes: prefixes get a trailing
// zero nibble, suffixes a leading one. The padding nibble is masked out.
func fromNibbles(raw, nibbles string, role Role) (*Pattern, error) {
	if len(nibbles) > AddressHexLen {
		return nil, invalidHex(raw, role, fmt.Sprintf("%d nibbles exceed the %d-nibble address", len(nibbles), AddressHexLen))
	}

	padded := nibbles
	odd := len(nibbles)%2 == 1
	if odd {
		if role == RolePrefix {
			padded = nibbles + "0"
		} else {
			padded = "0" + nibbles
		}
	}

	needle, err := hex.DecodeString(padded)
	if err != nil {
		return nil, invalidHex(raw, role, err.Error())
	}

	mask := make([]byte, len(needle))
	for i := range mask {
		mask[i] = 0xff
	}
	if odd {
		if role == RolePrefix {
			mask[len(mask)-1] = 0xf0
		} else {
			mask[0] = 0x0f
		}
	}

	kind := KindPrefix
	if role == RoleSuffix {
		kind = KindSuffix
	}
	return &Pattern{
		kind:    kind,
		role:    role,
		source:  raw,
		bytes:   needle,
		mask:    mask,
		nibbles: len(nibbles),
	}, nil
}

// compileRegex anchors src to the role's end of the address unless the user
// anchored it already.
func compileRegex(src string, role Role) (*Pattern, error) {
	expr := src
	if !hasExplicitAnchor(src) {
		if role == RolePrefix {
			expr = "^(?:" + src + ")"
		} else {
			expr = "(?:" + src + ")$"
		}
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, invalidRegex(src, role, err)
	}
	return &Pattern{
		kind:   KindRegex,
		role:   role,
		source: src,
		re:     re,
	}, nil
}

func hasExplicitAnchor(src string) bool {
	if strings.HasPrefix(src, "^") {
		return true
	}
	if !strings.HasSuffix(src, "$") {
		return false
	}
	// An odd run of backslashes before the final $ escapes it.
	slashes := 0
	for i := len(src) - 2; i >= 0 && src[i] == '\\'; i-- {
		slashes++
	}
	return slashes%2 == 0
}

// ForeignLiterals returns the literal characters of a regex pattern that can
// never occur in a lowercase hex address, in order of appearance. A non-empty
// result usually means the pattern cannot match. It is empty for byte patterns.
func (p *Pattern) ForeignLiterals() string {
	if p.kind != KindRegex {
		return ""
	}
	re, err := syntax.Parse(p.source, syntax.Perl)
	if err != nil {
		return ""
	}
	var b strings.Builder
	var walk func(*syntax.Regexp)
	walk = func(re *syntax.Regexp) {
		if re.Op == syntax.OpLiteral {
			for _, r := range re.Rune {
				if re.Flags&syntax.FoldCase != 0 {
					r = unicode.ToLower(r)
				}
				if !isHexRune(r) {
					b.WriteRune(r)
				}
			}
		}
		for _, sub := range re.Sub {
			walk(sub)
		}
	}
	walk(re)
	return b.String()
}

func isHexRune(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')
}

// Kind returns the compiled kind.
func (p *Pattern) Kind() Kind { return p.kind }

// Role returns the role the pattern was compiled for.
func (p *Pattern) Role() Role { return p.role }

// Source returns the raw pattern as supplied by the user.
func (p *Pattern) Source() string { return p.source }

// Nibbles returns the number of significant hex digits of a byte pattern, 0 for regex.
func (p *Pattern) Nibbles() int { return p.nibbles }

// Bytes returns a copy of the padded needle of a byte pattern.
func (p *Pattern) Bytes() []byte {
	if p.bytes == nil {
		return nil
	}
	out := make([]byte, len(p.bytes))
	copy(out, p.bytes)
	return out
}

// Regexp returns the compiled expression of a regex pattern.
func (p *Pattern) Regexp() *regexp.Regexp { return p.re }

// Match reports whether addr satisfies this single pattern.
func (p *Pattern) Match(addr *[AddressLen]byte) bool {
	return NewMatcher(p).Match(addr)
}

// String describes the pattern for humans.
func (p *Pattern) String() string {
	if p.kind == KindRegex {
		return fmt.Sprintf("%s regex %s", p.role, p.re.String())
	}
	h := hex.EncodeToString(p.bytes)
	if p.nibbles%2 == 1 {
		if p.role == RolePrefix {
			h = h[:len(h)-1]
		} else {
			h = h[1:]
		}
	}
	return fmt.Sprintf("%s bytes %s", p.role, h)
}

// IsValidHex checks if a string contains only valid hex characters.
func IsValidHex(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
