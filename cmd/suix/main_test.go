package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longcipher/suix/internal/config"
	"github.com/longcipher/suix/pkg/generator"
	"github.com/longcipher/suix/pkg/generator/sui"
)

// execute runs the CLI with fresh global state and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg = config.NewConfig()
	configFile = ""
	color.NoColor = true

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

type failingSink struct{ closed bool }

func (f *failingSink) Put(m generator.Match, target int) error {
	if m.Index == 0 {
		return errors.New("disk full")
	}
	return nil
}

func (f *failingSink) Close() error { f.closed = true; return nil }

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "suix "+version+"\n", out)
}

func TestVanityTerminal(t *testing.T) {
	out, err := execute(t, "vanity", "--starts-with", "0xa", "-n", "2", "-j", "2",
		"--addresses-per-round", "16", "--key-format", "hex", "--verbosity", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	for i, line := range lines {
		assert.True(t, strings.HasPrefix(line, "Found match "+string(rune('1'+i))+"/2: Address: 0xa"), line)
		fields := strings.Fields(line)
		key := fields[len(fields)-1]
		kp, err := sui.DecodeKey(key, sui.ED25519)
		require.NoError(t, err)
		assert.Equal(t, fields[4], kp.Address().String())
	}
}

func TestVanitySavePathAndKeystore(t *testing.T) {
	dir := t.TempDir()
	keys := filepath.Join(dir, "keys")
	keystore := filepath.Join(dir, "sui.keystore")

	out, err := execute(t, "vanity", "--ends-with", "f", "-n", "3",
		"--save-path", keys, "--keystore", keystore, "--scheme", "secp256k1",
		"--addresses-per-round", "32", "--verbosity", "2")
	require.NoError(t, err)
	assert.Empty(t, out, "keys must not reach stdout when a save path is set")

	entries, err := os.ReadDir(keys)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for _, e := range entries {
		name := e.Name()
		require.True(t, strings.HasSuffix(name, "f.key"), name)

		data, err := os.ReadFile(filepath.Join(keys, name))
		require.NoError(t, err)
		kp, err := sui.DecodeKey(strings.TrimSpace(string(data)), sui.Secp256k1)
		require.NoError(t, err)
		assert.Equal(t, sui.Secp256k1, kp.Scheme)
		assert.Equal(t, strings.TrimSuffix(name, ".key"), kp.Address().Hex())
	}

	data, err := os.ReadFile(keystore)
	require.NoError(t, err)
	var stored []string
	require.NoError(t, json.Unmarshal(data, &stored))
	require.Len(t, stored, 3)
	for _, key := range stored {
		kp, err := sui.DecodeKey(key, sui.ED25519)
		require.NoError(t, err)
		assert.Equal(t, sui.Secp256k1, kp.Scheme)
	}
}

func TestVanityInvalidInput(t *testing.T) {
	_, err := execute(t, "vanity", "--starts-with", "0xzz", "--verbosity", "2")
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))

	_, err = execute(t, "vanity", "--starts-with", "a", "--scheme", "secp256r1", "--mnemonic", "--verbosity", "2")
	assert.ErrorIs(t, err, config.ErrBadScheme)

	_, err = execute(t, "vanity", "--starts-with", "a", "-n", "0", "--verbosity", "2")
	assert.ErrorIs(t, err, config.ErrBadCount)
}

func TestVanityTimeout(t *testing.T) {
	_, err := execute(t, "vanity", "--starts-with", "0x"+strings.Repeat("0", 64),
		"--timeout", "50ms", "--addresses-per-round", "64", "--verbosity", "2")
	require.Error(t, err)
	assert.ErrorIs(t, err, generator.ErrCancelled)
	assert.Contains(t, err.Error(), "timeout reached")
	assert.Equal(t, exitInterrupted, exitCode(err))
}

func TestConfigFilePrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suix.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
ends_with = "0x0"
count = 2
threads = 7
key_format = "bech32"
`), 0o600))

	out, err := execute(t, "--config", path, "vanity", "-j", "2", "--addresses-per-round", "16", "--verbosity", "2")
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Threads, "explicit flag wins over the file")
	assert.Equal(t, 2, cfg.Count, "file value applies where no flag was given")
	assert.Equal(t, "bech32", cfg.KeyFormat)
	assert.Equal(t, 2, strings.Count(out, "Private Key: suiprivkey1"))
}

func TestConfigFileUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suix.toml")
	require.NoError(t, os.WriteFile(path, []byte("workers = 3\n"), 0o600))
	_, err := execute(t, "--config", path, "version")
	assert.ErrorIs(t, err, config.ErrUnknownKey)
}

func TestAddressCommand(t *testing.T) {
	kp, err := sui.KeyFromSecret(sui.Secp256r1, bytes.Repeat([]byte{0x21}, sui.SecretLen))
	require.NoError(t, err)
	bech, err := kp.EncodeBech32()
	require.NoError(t, err)

	out, err := execute(t, "address", bech)
	require.NoError(t, err)
	assert.Equal(t, "Scheme:  secp256r1\nAddress: "+kp.Address().String()+"\n", out)

	out, err = execute(t, "address", kp.EncodeHex(), "--scheme", "secp256r1")
	require.NoError(t, err)
	assert.Contains(t, out, kp.Address().String())

	_, err = execute(t, "address", "garbage!")
	assert.ErrorIs(t, err, sui.ErrInvalidKeyEncoding)
}

func TestVerifyCommand(t *testing.T) {
	out, err := execute(t, "verify", "-n", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "ALL")
	assert.NotContains(t, out, "❌")
}

func TestPrintVerifyFailure(t *testing.T) {
	var buf bytes.Buffer
	ok := printVerify(&buf, []verifyResult{
		{Scheme: sui.ED25519, Name: "random key 1", Address: "0x00"},
		{Scheme: sui.Secp256k1, Name: "random key 1", Err: errors.New("mismatch")},
	})
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "mismatch")
	assert.Contains(t, buf.String(), "SOME CHECKS FAILED")
}

func TestEmitSkipsFailedWrites(t *testing.T) {
	s := &failingSink{}
	matches := []generator.Match{{Index: 0}, {Index: 1}}
	err := emit(s, matches, 2)
	assert.ErrorIs(t, err, errSinkFailed)
	assert.True(t, s.closed)
}

func TestFinish(t *testing.T) {
	ctx := context.Background()
	assert.NoError(t, finish(ctx, nil, nil))
	assert.ErrorIs(t, finish(ctx, nil, errSinkFailed), errSinkFailed)

	kd := &generator.KeyDerivationError{Err: errors.New("boom")}
	assert.Equal(t, kd, finish(ctx, kd, errSinkFailed))

	err := finish(ctx, generator.ErrCancelled, nil)
	assert.Equal(t, exitInterrupted, exitCode(err))
	assert.Contains(t, err.Error(), "interrupted")
}
