package sui

import (
	"crypto/ecdh"
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
)

// SecretLen is the length of the secret component for every supported scheme.
const SecretLen = 32

// ErrInvalidSecret is returned when secret bytes are not a valid private key for the scheme.
var ErrInvalidSecret = errors.New("invalid secret key")

// KeyPair holds the key material behind an address.
// The secret must only ever reach a result sink, never a log.
type KeyPair struct {
	Scheme    Scheme
	Secret    [SecretLen]byte // Ed25519 seed or ECDSA scalar
	PublicKey []byte          // 32-byte Ed25519 key or 33-byte compressed point
	Mnemonic  string          // BIP-39 phrase when the key was derived from one
}

// KeyFromSecret rebuilds a key pair from its 32-byte secret.
func KeyFromSecret(scheme Scheme, secret []byte) (*KeyPair, error) {
	if len(secret) != SecretLen {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSecret, len(secret), SecretLen)
	}
	kp := &KeyPair{Scheme: scheme}
	copy(kp.Secret[:], secret)
	if err := kp.fillPublicKey(); err != nil {
		return nil, err
	}
	return kp, nil
}

// Address returns the Sui address of the key pair.
func (k *KeyPair) Address() Address {
	return DeriveAddress(k.Scheme, k.PublicKey)
}

// Clone returns a deep copy, detached from any scratch buffers.
func (k *KeyPair) Clone() *KeyPair {
	c := *k
	c.PublicKey = append([]byte(nil), k.PublicKey...)
	return &c
}

// fillPublicKey computes PublicKey from Secret, reusing the PublicKey buffer when possible.
func (k *KeyPair) fillPublicKey() error {
	switch k.Scheme {
	case ED25519:
		priv := ed25519.NewKeyFromSeed(k.Secret[:])
		k.PublicKey = append(k.PublicKey[:0], priv[ed25519.SeedSize:]...)
		return nil

	case Secp256k1:
		var scalar btcec.ModNScalar
		if overflow := scalar.SetByteSlice(k.Secret[:]); overflow || scalar.IsZero() {
			return fmt.Errorf("%w: scalar out of range for %s", ErrInvalidSecret, k.Scheme)
		}
		_, pub := btcec.PrivKeyFromBytes(k.Secret[:])
		k.PublicKey = append(k.PublicKey[:0], pub.SerializeCompressed()...)
		return nil

	case Secp256r1:
		priv, err := ecdh.P256().NewPrivateKey(k.Secret[:])
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSecret, err)
		}
		k.PublicKey = compressP256(k.PublicKey[:0], priv.PublicKey().Bytes())
		return nil

	default:
		return fmt.Errorf("%w: flag 0x%02x", ErrUnknownScheme, byte(k.Scheme))
	}
}

// compressP256 appends the SEC1 compressed form of an uncompressed
// (0x04 || X || Y) P-256 point to dst.
func compressP256(dst, uncompressed []byte) []byte {
	x := uncompressed[1:33]
	y := uncompressed[33:65]
	prefix := byte(0x02)
	if y[len(y)-1]&1 == 1 {
		prefix = 0x03
	}
	dst = append(dst, prefix)
	return append(dst, x...)
}
