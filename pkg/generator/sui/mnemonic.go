package sui

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"
)

const hardened = hdkeychain.HardenedKeyStart

// Default Sui derivation paths.
var (
	// m/44'/784'/0'/0'/0' (SLIP-10, all hardened)
	ed25519Path = []uint32{44 + hardened, 784 + hardened, 0 + hardened, 0 + hardened, 0 + hardened}
	// m/54'/784'/0'/0/0 (BIP-32)
	secp256k1Path = []uint32{54 + hardened, 784 + hardened, 0 + hardened, 0, 0}
)

// ErrMnemonicUnsupported is returned for schemes without mnemonic derivation.
var ErrMnemonicUnsupported = errors.New("mnemonic derivation not supported for scheme")

// MnemonicEntropyBits is the entropy of generated phrases (12 words).
const MnemonicEntropyBits = 128

// SupportsMnemonic reports whether keys of the scheme can be derived from a phrase.
func SupportsMnemonic(s Scheme) bool {
	return s == ED25519 || s == Secp256k1
}

// NewMnemonic draws entropy from r and returns a 12-word BIP-39 phrase.
func NewMnemonic(r io.Reader) (string, error) {
	entropy := make([]byte, MnemonicEntropyBits/8)
	if _, err := io.ReadFull(r, entropy); err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

// KeyFromMnemonic derives the first account key of a phrase on the default Sui path.
func KeyFromMnemonic(scheme Scheme, phrase string) (*KeyPair, error) {
	seed, err := bip39.NewSeedWithErrorChecking(phrase, "")
	if err != nil {
		return nil, fmt.Errorf("invalid mnemonic: %w", err)
	}

	var secret []byte
	switch scheme {
	case ED25519:
		s := slip10Ed25519(seed, ed25519Path)
		secret = s[:]
	case Secp256k1:
		secret, err = bip32Secp256k1(seed, secp256k1Path)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w %s", ErrMnemonicUnsupported, scheme)
	}

	kp, err := KeyFromSecret(scheme, secret)
	if err != nil {
		return nil, err
	}
	kp.Mnemonic = phrase
	return kp, nil
}

// slip10Ed25519 walks a hardened-only SLIP-10 path for the ed25519 curve.
func slip10Ed25519(seed []byte, path []uint32) [32]byte {
	mac := hmac.New(sha512.New, []byte("ed25519 seed"))
	mac.Write(seed)
	sum := mac.Sum(nil)

	var key, chain [32]byte
	copy(key[:], sum[:32])
	copy(chain[:], sum[32:])

	var data [1 + 32 + 4]byte
	for _, index := range path {
		data[0] = 0x00
		copy(data[1:33], key[:])
		binary.BigEndian.PutUint32(data[33:], index)

		mac = hmac.New(sha512.New, chain[:])
		mac.Write(data[:])
		sum = mac.Sum(sum[:0])
		copy(key[:], sum[:32])
		copy(chain[:], sum[32:])
	}
	return key
}

// bip32Secp256k1 walks a BIP-32 path and returns the 32-byte private scalar.
func bip32Secp256k1(seed []byte, path []uint32) ([]byte, error) {
	// The network only affects extended key serialization, which is never used here.
	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, err
	}
	for _, index := range path {
		key, err = key.Derive(index)
		if err != nil {
			return nil, fmt.Errorf("derive child %d: %w", index, err)
		}
	}
	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, err
	}
	return priv.Serialize(), nil
}
