package sui

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
)

// maxScalarRetries bounds redraws of out-of-range ECDSA scalars. Each redraw
// fails with probability below 2^-32, so hitting the bound means a broken source.
const maxScalarRetries = 8

// ErrRandomness is wrapped by every error caused by the random source.
var ErrRandomness = errors.New("random source failure")

// Deriver generates fresh key pairs and their addresses.
// A Deriver is not safe for concurrent use; each worker owns one.
type Deriver struct {
	scheme   Scheme
	rand     io.Reader
	mnemonic bool
	buf      [1 + 33]byte // flag || public key
}

// NewDeriver creates a Deriver for scheme. A nil reader selects crypto/rand.
// With mnemonic set every key is derived from a fresh BIP-39 phrase, which is
// much slower but yields a recoverable wallet.
func NewDeriver(scheme Scheme, r io.Reader, mnemonic bool) (*Deriver, error) {
	if !scheme.Valid() {
		return nil, fmt.Errorf("%w: flag 0x%02x", ErrUnknownScheme, byte(scheme))
	}
	if mnemonic && !SupportsMnemonic(scheme) {
		return nil, fmt.Errorf("%w %s", ErrMnemonicUnsupported, scheme)
	}
	if r == nil {
		r = rand.Reader
	}
	return &Deriver{scheme: scheme, rand: r, mnemonic: mnemonic}, nil
}

// Scheme returns the scheme the Deriver generates keys for.
func (d *Deriver) Scheme() Scheme {
	return d.scheme
}

// Derive returns a newly allocated key pair and its address.
func (d *Deriver) Derive() (*KeyPair, Address, error) {
	kp := &KeyPair{}
	addr, err := d.Next(kp)
	if err != nil {
		return nil, Address{}, err
	}
	return kp, addr, nil
}

// Next overwrites kp with fresh key material and returns its address.
// kp's buffers are reused, so callers keeping a match must Clone it.
func (d *Deriver) Next(kp *KeyPair) (Address, error) {
	kp.Scheme = d.scheme
	kp.Mnemonic = ""

	if d.mnemonic {
		if err := d.nextFromMnemonic(kp); err != nil {
			return Address{}, err
		}
		return d.address(kp.PublicKey), nil
	}

	for i := 0; ; i++ {
		if _, err := io.ReadFull(d.rand, kp.Secret[:]); err != nil {
			return Address{}, fmt.Errorf("%w: %v", ErrRandomness, err)
		}
		err := kp.fillPublicKey()
		if err == nil {
			break
		}
		if !errors.Is(err, ErrInvalidSecret) || i+1 >= maxScalarRetries {
			return Address{}, fmt.Errorf("%w: %v", ErrRandomness, err)
		}
	}
	return d.address(kp.PublicKey), nil
}

func (d *Deriver) nextFromMnemonic(kp *KeyPair) error {
	phrase, err := NewMnemonic(d.rand)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRandomness, err)
	}
	derived, err := KeyFromMnemonic(d.scheme, phrase)
	if err != nil {
		return err
	}
	*kp = *derived
	return nil
}

// address hashes flag || pubKey using the Deriver's scratch buffer.
func (d *Deriver) address(pubKey []byte) Address {
	d.buf[0] = d.scheme.Flag()
	n := copy(d.buf[1:], pubKey)
	return blake2b.Sum256(d.buf[:1+n])
}
