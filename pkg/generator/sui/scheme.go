package sui

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownScheme is returned for a signature scheme name or flag suix does not support.
var ErrUnknownScheme = errors.New("unknown signature scheme")

// Scheme is a Sui signature scheme. Its value is the flag byte hashed in front of
// the public key when deriving an address.
type Scheme byte

const (
	ED25519   Scheme = 0x00 // Ed25519, 32-byte public key
	Secp256k1 Scheme = 0x01 // ECDSA secp256k1, 33-byte compressed public key
	Secp256r1 Scheme = 0x02 // ECDSA P-256, 33-byte compressed public key
)

// Schemes lists every supported scheme.
var Schemes = []Scheme{ED25519, Secp256k1, Secp256r1}

// Flag returns the scheme flag byte.
func (s Scheme) Flag() byte {
	return byte(s)
}

// String returns the scheme name as accepted by ParseScheme.
func (s Scheme) String() string {
	switch s {
	case ED25519:
		return "ed25519"
	case Secp256k1:
		return "secp256k1"
	case Secp256r1:
		return "secp256r1"
	default:
		return fmt.Sprintf("scheme(0x%02x)", byte(s))
	}
}

// Valid reports whether s is a supported scheme.
func (s Scheme) Valid() bool {
	return s == ED25519 || s == Secp256k1 || s == Secp256r1
}

// PublicKeyLen returns the serialized public key length of the scheme.
func (s Scheme) PublicKeyLen() int {
	if s == ED25519 {
		return 32
	}
	return 33
}

// ParseScheme parses a scheme name (case-insensitive).
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ed25519", "":
		return ED25519, nil
	case "secp256k1", "k1":
		return Secp256k1, nil
	case "secp256r1", "r1", "p256":
		return Secp256r1, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
}

func schemeFromFlag(flag byte) (Scheme, error) {
	s := Scheme(flag)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: flag 0x%02x", ErrUnknownScheme, flag)
	}
	return s, nil
}
