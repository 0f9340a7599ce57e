// Package config holds the settings of a vanity run, loaded from flags and an
// optional TOML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/longcipher/suix/internal/log"
	"github.com/longcipher/suix/pkg/generator"
	"github.com/longcipher/suix/pkg/generator/pattern"
	"github.com/longcipher/suix/pkg/generator/sui"
	"github.com/longcipher/suix/pkg/sink"
)

// Errors
var (
	ErrNoPattern    = errors.New("must specify --starts-with and/or --ends-with")
	ErrBadScheme    = errors.New("unsupported signature scheme")
	ErrBadKeyFormat = errors.New("unsupported key format")
	ErrBadCount     = errors.New("count must be greater than zero")
	ErrBadThreads   = errors.New("threads must not be negative")
	ErrBadBatch     = errors.New("addresses per round must be greater than zero")
	ErrUnknownKey   = errors.New("unknown configuration key")
)

// Defaults
const (
	DefaultCount     = 1
	DefaultScheme    = "ed25519"
	DefaultKeyFormat = "base64"
	DefaultVerbosity = 4 // info
)

// Config holds the application configuration
type Config struct {
	StartsWith        string        `toml:"starts_with"`
	EndsWith          string        `toml:"ends_with"`
	SavePath          string        `toml:"save_path"`
	Keystore          string        `toml:"keystore"`
	Threads           int           `toml:"threads"` // 0 means one per logical core
	Count             int           `toml:"count"`
	AddressesPerRound int           `toml:"addresses_per_round"`
	Scheme            string        `toml:"scheme"`
	Mnemonic          bool          `toml:"mnemonic"`
	KeyFormat         string        `toml:"key_format"`
	Timeout           time.Duration `toml:"timeout"`
	NoProgress        bool          `toml:"no_progress"`
	HighPriority      bool          `toml:"high_priority"`

	Log LogConfig `toml:"log"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Verbosity uint32 `toml:"verbosity"`
	JSON      bool   `toml:"json"`
	Color     bool   `toml:"color"`
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Count:             DefaultCount,
		AddressesPerRound: generator.DefaultBatchSize,
		Scheme:            DefaultScheme,
		KeyFormat:         DefaultKeyFormat,
		Log: LogConfig{
			Verbosity: DefaultVerbosity,
		},
	}
}

// LoadFile decodes a TOML file over c. Keys absent from the file keep their
// current value; keys the file has but Config does not are an error.
func (c *Config) LoadFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%w in %s: %s", ErrUnknownKey, path, strings.Join(keys, ", "))
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.StartsWith == "" && c.EndsWith == "" {
		return ErrNoPattern
	}
	if c.Count <= 0 {
		return ErrBadCount
	}
	if c.Threads < 0 {
		return ErrBadThreads
	}
	if c.AddressesPerRound <= 0 {
		return ErrBadBatch
	}
	scheme, err := sui.ParseScheme(c.Scheme)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrBadScheme, c.Scheme)
	}
	if c.Mnemonic && !sui.SupportsMnemonic(scheme) {
		return fmt.Errorf("%w: %s cannot be derived from a mnemonic", ErrBadScheme, scheme)
	}
	if _, err := sui.ParseKeyFormat(c.KeyFormat); err != nil {
		return fmt.Errorf("%w: %q", ErrBadKeyFormat, c.KeyFormat)
	}
	return nil
}

// Job compiles the patterns and returns the search job for this configuration.
func (c *Config) Job() (*generator.Job, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	scheme, _ := sui.ParseScheme(c.Scheme)

	job := &generator.Job{
		Threads:   c.Threads,
		Target:    c.Count,
		BatchSize: c.AddressesPerRound,
		Scheme:    scheme,
		Mnemonic:  c.Mnemonic,
	}
	if job.Threads == 0 {
		job.Threads = runtime.NumCPU()
	}

	var err error
	if c.StartsWith != "" {
		if job.Prefix, err = pattern.Compile(c.StartsWith, pattern.RolePrefix); err != nil {
			return nil, err
		}
	}
	if c.EndsWith != "" {
		if job.Suffix, err = pattern.Compile(c.EndsWith, pattern.RoleSuffix); err != nil {
			return nil, err
		}
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	for _, p := range []*pattern.Pattern{job.Prefix, job.Suffix} {
		if p == nil {
			continue
		}
		if foreign := p.ForeignLiterals(); foreign != "" {
			log.Warn("pattern has characters that never appear in an address; the search may not end",
				"pattern", p.Source(), "role", p.Role().String(), "chars", foreign)
		}
	}
	return job, nil
}

// Format returns the parsed key format.
func (c *Config) Format() sui.KeyFormat {
	f, _ := sui.ParseKeyFormat(c.KeyFormat)
	return f
}

// Sinks builds the output sinks. Keys go to stdout unless a save path is set;
// a keystore is written in addition to either.
func (c *Config) Sinks(stdout io.Writer) (sink.Sink, error) {
	var sinks sink.Multi
	if c.SavePath != "" {
		sinks = append(sinks, sink.NewKeyFile(c.SavePath, c.Format()))
	} else {
		sinks = append(sinks, sink.NewTerminal(stdout, c.Format()))
	}
	if c.Keystore != "" {
		ks, err := sink.OpenKeystore(c.Keystore)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, ks)
	}
	return sinks, nil
}

// Description returns a human-readable description of the target
func (c *Config) Description() string {
	var parts []string
	if c.StartsWith != "" {
		parts = append(parts, "prefix: "+c.StartsWith)
	}
	if c.EndsWith != "" {
		parts = append(parts, "suffix: "+c.EndsWith)
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, ", ")
}
