package sink

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/longcipher/suix/pkg/generator"
	"github.com/longcipher/suix/pkg/generator/sui"
)

var (
	headColor = color.New(color.FgGreen, color.Bold)
	addrColor = color.New(color.FgCyan, color.Bold)
	keyColor  = color.New(color.FgYellow)
	dimColor  = color.New(color.Faint)
)

// Terminal prints every match, key included, to w.
type Terminal struct {
	w      io.Writer
	format sui.KeyFormat
}

// NewTerminal returns a sink writing to w (normally stdout).
func NewTerminal(w io.Writer, format sui.KeyFormat) *Terminal {
	return &Terminal{w: w, format: format}
}

func (t *Terminal) Put(m generator.Match, target int) error {
	key, err := m.Key.Encode(t.format)
	if err != nil {
		return fmt.Errorf("encode key for %s: %w", m.Address, err)
	}

	_, err = fmt.Fprintf(t.w, "%s %s %s %s %s\n",
		headColor.Sprintf("Found match %d/%d:", m.Index+1, target),
		dimColor.Sprint("Address:"), addrColor.Sprint(m.Address.String()),
		dimColor.Sprint("Private Key:"), keyColor.Sprint(key))
	if err != nil {
		return err
	}
	if m.Key.Mnemonic != "" {
		_, err = fmt.Fprintf(t.w, "%s %s\n", dimColor.Sprint("Recovery Phrase:"), keyColor.Sprint(m.Key.Mnemonic))
	}
	return err
}

func (t *Terminal) Close() error { return nil }
