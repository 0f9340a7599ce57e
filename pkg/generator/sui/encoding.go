package sui

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// PrivateKeyHRP is the bech32 human readable part of Sui private keys.
const PrivateKeyHRP = "suiprivkey"

// ErrInvalidKeyEncoding is returned when a string is not a recognised key encoding.
var ErrInvalidKeyEncoding = errors.New("invalid key encoding")

// KeyFormat selects how secret keys are rendered.
type KeyFormat int

const (
	FormatBase64 KeyFormat = iota // base64(flag || secret), the sui.keystore form
	FormatBech32                  // bech32 "suiprivkey1..." form
	FormatHex                     // 0x-prefixed secret, scheme not included
)

// String returns the format name as accepted by ParseKeyFormat.
func (f KeyFormat) String() string {
	switch f {
	case FormatBase64:
		return "base64"
	case FormatBech32:
		return "bech32"
	case FormatHex:
		return "hex"
	default:
		return "unknown"
	}
}

// ParseKeyFormat parses a key format name (case-insensitive).
func ParseKeyFormat(name string) (KeyFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "base64", "":
		return FormatBase64, nil
	case "bech32", "suiprivkey":
		return FormatBech32, nil
	case "hex":
		return FormatHex, nil
	default:
		return 0, fmt.Errorf("unknown key format %q (want base64, bech32 or hex)", name)
	}
}

// flagged returns flag || secret.
func (k *KeyPair) flagged() []byte {
	out := make([]byte, 0, 1+SecretLen)
	out = append(out, k.Scheme.Flag())
	return append(out, k.Secret[:]...)
}

// EncodeBase64 returns base64(flag || secret), as stored in sui.keystore.
func (k *KeyPair) EncodeBase64() string {
	return base64.StdEncoding.EncodeToString(k.flagged())
}

// EncodeBech32 returns the "suiprivkey1..." form of the key.
func (k *KeyPair) EncodeBech32() (string, error) {
	conv, err := bech32.ConvertBits(k.flagged(), 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(PrivateKeyHRP, conv)
}

// EncodeHex returns the 0x-prefixed hex secret.
func (k *KeyPair) EncodeHex() string {
	return hexutil.Encode(k.Secret[:])
}

// Encode renders the secret key in the given format.
func (k *KeyPair) Encode(format KeyFormat) (string, error) {
	switch format {
	case FormatBase64:
		return k.EncodeBase64(), nil
	case FormatBech32:
		return k.EncodeBech32()
	case FormatHex:
		return k.EncodeHex(), nil
	default:
		return "", fmt.Errorf("unknown key format %d", format)
	}
}

// DecodeKey parses a key in any supported encoding. Hex keys carry no scheme
// flag, so hexScheme tells which scheme they belong to.
func DecodeKey(s string, hexScheme Scheme) (*KeyPair, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(strings.ToLower(s), PrivateKeyHRP+"1"):
		return decodeBech32(s)
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		raw, err := hexutil.Decode(strings.ToLower(s))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKeyEncoding, err)
		}
		return KeyFromSecret(hexScheme, raw)
	default:
		raw, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKeyEncoding, err)
		}
		return fromFlagged(raw)
	}
}

func decodeBech32(s string) (*KeyPair, error) {
	hrp, data, err := bech32.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyEncoding, err)
	}
	if hrp != PrivateKeyHRP {
		return nil, fmt.Errorf("%w: unexpected prefix %q", ErrInvalidKeyEncoding, hrp)
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyEncoding, err)
	}
	return fromFlagged(raw)
}

func fromFlagged(raw []byte) (*KeyPair, error) {
	if len(raw) != 1+SecretLen {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeyEncoding, len(raw), 1+SecretLen)
	}
	scheme, err := schemeFromFlag(raw[0])
	if err != nil {
		return nil, err
	}
	return KeyFromSecret(scheme, raw[1:])
}
