package sui

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/crypto/blake2b"
)

// AddressLen is the length of a Sui address in bytes.
const AddressLen = 32

// Address is a Sui account address: Blake2b-256(flag || public key).
type Address [AddressLen]byte

// DeriveAddress computes the Sui address for a public key of the given scheme.
// Sui address = Blake2b-256(flag || pubkey) where flag is the signature scheme byte.
func DeriveAddress(scheme Scheme, pubKey []byte) Address {
	data := make([]byte, len(pubKey)+1)
	data[0] = scheme.Flag()
	copy(data[1:], pubKey)
	return blake2b.Sum256(data)
}

// String returns the 0x-prefixed lowercase hex form (66 characters).
func (a Address) String() string {
	return hexutil.Encode(a[:])
}

// Hex returns the lowercase hex form without the 0x prefix.
func (a Address) Hex() string {
	return hex.EncodeToString(a[:])
}

// Bytes returns the address as a pointer to its raw array, the form matchers consume.
func (a *Address) Bytes() *[AddressLen]byte {
	return (*[AddressLen]byte)(a)
}

// ParseAddress parses a 64-digit hex address, with or without the 0x prefix.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	raw, err := hexutil.Decode(strings.ToLower(s))
	if err != nil {
		return Address{}, fmt.Errorf("invalid address %q: %w", s, err)
	}
	if len(raw) != AddressLen {
		return Address{}, fmt.Errorf("invalid address length: got %d bytes, want %d", len(raw), AddressLen)
	}
	var a Address
	copy(a[:], raw)
	return a, nil
}
