package sink

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/longcipher/suix/internal/log"
	"github.com/longcipher/suix/pkg/generator"
)

// Keystore appends matches to a sui.keystore file: a JSON array of base64
// encoded flag||secret keys. The file is only rewritten on Close.
type Keystore struct {
	path  string
	keys  []string
	known map[string]bool
	added int
}

// OpenKeystore loads the existing keystore at path, if any.
func OpenKeystore(path string) (*Keystore, error) {
	ks := &Keystore{path: path, known: map[string]bool{}}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return ks, nil
	case err != nil:
		return nil, fmt.Errorf("read keystore: %w", err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &ks.keys); err != nil {
			return nil, fmt.Errorf("parse keystore %s: %w", path, err)
		}
	}
	for _, k := range ks.keys {
		ks.known[k] = true
	}
	return ks, nil
}

func (ks *Keystore) Put(m generator.Match, target int) error {
	key := m.Key.EncodeBase64()
	if ks.known[key] {
		return nil
	}
	ks.known[key] = true
	ks.keys = append(ks.keys, key)
	ks.added++
	return nil
}

// Close writes the keystore through a temporary file in the same directory.
func (ks *Keystore) Close() error {
	if ks.added == 0 {
		return nil
	}

	data, err := json.MarshalIndent(ks.keys, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(ks.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create keystore directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".keystore-*")
	if err != nil {
		return fmt.Errorf("write keystore: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write keystore: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write keystore: %w", err)
	}
	if err := os.Rename(tmp.Name(), ks.path); err != nil {
		return fmt.Errorf("replace keystore: %w", err)
	}

	log.Info("keystore updated", "path", ks.path, "added", ks.added, "total", len(ks.keys))
	ks.added = 0
	return nil
}
