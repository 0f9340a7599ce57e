package sink

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/longcipher/suix/internal/log"
	"github.com/longcipher/suix/pkg/generator"
	"github.com/longcipher/suix/pkg/generator/sui"
)

// KeyFile writes one "<address>.key" file per match into a directory.
type KeyFile struct {
	dir    string
	format sui.KeyFormat
}

// NewKeyFile returns a sink saving keys below dir. The directory is created
// on the first match.
func NewKeyFile(dir string, format sui.KeyFormat) *KeyFile {
	return &KeyFile{dir: dir, format: format}
}

// Path returns the file a match for addr is written to.
func (k *KeyFile) Path(addr sui.Address) string {
	return filepath.Join(k.dir, addr.Hex()+".key")
}

func (k *KeyFile) Put(m generator.Match, target int) error {
	key, err := m.Key.Encode(k.format)
	if err != nil {
		return fmt.Errorf("encode key for %s: %w", m.Address, err)
	}
	if err := os.MkdirAll(k.dir, 0o700); err != nil {
		return fmt.Errorf("create key directory: %w", err)
	}

	content := key + "\n"
	if m.Key.Mnemonic != "" {
		content += m.Key.Mnemonic + "\n"
	}

	path := k.Path(m.Address)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("write key file: %w", err)
	}
	log.Infof("Found match %d/%d: %s -> %s", m.Index+1, target, m.Address, path)
	return nil
}

func (k *KeyFile) Close() error { return nil }
