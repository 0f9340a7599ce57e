package sink

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longcipher/suix/pkg/generator"
	"github.com/longcipher/suix/pkg/generator/sui"
)

func testMatch(t *testing.T, index int, fill byte) generator.Match {
	t.Helper()
	kp, err := sui.KeyFromSecret(sui.ED25519, bytes.Repeat([]byte{fill}, sui.SecretLen))
	require.NoError(t, err)
	return generator.Match{Index: index, Address: kp.Address(), Key: kp}
}

type errSink struct{ puts, closes int }

func (e *errSink) Put(generator.Match, int) error { e.puts++; return errors.New("put failed") }
func (e *errSink) Close() error                   { e.closes++; return errors.New("close failed") }

func TestTerminal(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	s := NewTerminal(&buf, sui.FormatBase64)
	m := testMatch(t, 1, 0x01)
	require.NoError(t, s.Put(m, 3))
	require.NoError(t, s.Close())

	want := "Found match 2/3: Address: " + m.Address.String() + " Private Key: " + m.Key.EncodeBase64() + "\n"
	assert.Equal(t, want, buf.String())
}

func TestTerminalMnemonic(t *testing.T) {
	color.NoColor = true

	phrase, err := sui.NewMnemonic(bytes.NewReader(bytes.Repeat([]byte{0x01}, 16)))
	require.NoError(t, err)
	kp, err := sui.KeyFromMnemonic(sui.ED25519, phrase)
	require.NoError(t, err)

	var buf bytes.Buffer
	s := NewTerminal(&buf, sui.FormatBech32)
	require.NoError(t, s.Put(generator.Match{Index: 0, Address: kp.Address(), Key: kp}, 1))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Private Key: suiprivkey1")
	assert.Equal(t, "Recovery Phrase: "+phrase, lines[1])
}

func TestKeyFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "keys", "nested")
	s := NewKeyFile(dir, sui.FormatHex)
	m := testMatch(t, 0, 0x02)

	require.NoError(t, s.Put(m, 1))
	require.NoError(t, s.Close())

	path := filepath.Join(dir, m.Address.Hex()+".key")
	assert.Equal(t, path, s.Path(m.Address))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, m.Key.EncodeHex()+"\n", string(data))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	decoded, err := sui.DecodeKey(strings.TrimSpace(string(data)), sui.ED25519)
	require.NoError(t, err)
	assert.Equal(t, m.Address, decoded.Address())
}

func TestKeyFileUnwritable(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	// A regular file where the directory should be.
	s := NewKeyFile(filepath.Join(file, "sub"), sui.FormatBase64)
	assert.Error(t, s.Put(testMatch(t, 0, 0x03), 1))
}

func TestKeystoreCreatesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sui.keystore")
	existing := []string{"AKqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqq"}
	data, err := json.Marshal(existing)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	ks, err := OpenKeystore(path)
	require.NoError(t, err)
	m1 := testMatch(t, 0, 0x04)
	m2 := testMatch(t, 1, 0x05)
	require.NoError(t, ks.Put(m1, 2))
	require.NoError(t, ks.Put(m2, 2))
	require.NoError(t, ks.Put(m1, 2)) // duplicate
	require.NoError(t, ks.Close())

	var got []string
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, []string{existing[0], m1.Key.EncodeBase64(), m2.Key.EncodeBase64()}, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not be left behind")
}

func TestKeystoreNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new", "sui.keystore")
	ks, err := OpenKeystore(path)
	require.NoError(t, err)

	// Nothing added: nothing written.
	require.NoError(t, ks.Close())
	_, err = os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	ks, err = OpenKeystore(path)
	require.NoError(t, err)
	require.NoError(t, ks.Put(testMatch(t, 0, 0x06), 1))
	require.NoError(t, ks.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []string
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Len(t, got, 1)
}

func TestKeystoreMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sui.keystore")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	_, err := OpenKeystore(path)
	assert.Error(t, err)
}

func TestMultiContinuesPastFailures(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	bad := &errSink{}
	ms := Multi{bad, NewTerminal(&buf, sui.FormatBase64)}

	err := ms.Put(testMatch(t, 0, 0x07), 1)
	assert.EqualError(t, err, "put failed")
	assert.Contains(t, buf.String(), "Found match 1/1")

	assert.EqualError(t, ms.Close(), "close failed")
	assert.Equal(t, 1, bad.puts)
	assert.Equal(t, 1, bad.closes)
}
