package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longcipher/suix/pkg/generator"
	"github.com/longcipher/suix/pkg/generator/pattern"
	"github.com/longcipher/suix/pkg/generator/sui"
)

func init() {
	color.NoColor = true
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{18446744073709551615, "18,446,744,073,709,551,615"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in))
	}
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "65,536", FormatFloat(65536))
	assert.Equal(t, "1.16e+77", FormatFloat(1.157920892373162e77))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "250ms", FormatDuration(250*time.Millisecond))
	assert.Equal(t, "12.5s", FormatDuration(12500*time.Millisecond))
	assert.Equal(t, "3m 7s", FormatDuration(3*time.Minute+7*time.Second))
	assert.Equal(t, "2h 5m", FormatDuration(2*time.Hour+5*time.Minute))
}

func TestFormatHashRate(t *testing.T) {
	assert.Equal(t, "950/s", FormatHashRate(950))
	assert.Equal(t, "12.3K/s", FormatHashRate(12345))
	assert.Equal(t, "4.5M/s", FormatHashRate(4500000))
}

func TestDescribe(t *testing.T) {
	s := generator.Stats{Attempts: 5000, Found: 1, HashRate: 2500, ElapsedSecs: 2}
	assert.Equal(t, "found 1/3 │ 2.5K/s │ 2.0s", Describe(s, 3))
}

func TestPrintSearchInfo(t *testing.T) {
	job := &generator.Job{
		Prefix:  pattern.MustCompile("cafe", pattern.RolePrefix),
		Suffix:  pattern.MustCompile("0x1", pattern.RoleSuffix),
		Threads: 4,
		Target:  2,
		Scheme:  sui.ED25519,
	}
	var buf bytes.Buffer
	PrintSearchInfo(&buf, job)
	out := buf.String()
	assert.Contains(t, out, "0xcafe...0x1")
	assert.Contains(t, out, "ed25519 │ 4 threads │ 2 to find │ odds 1/1,048,576")

	buf.Reset()
	job.Suffix = pattern.MustCompile("[0-3]{2}", pattern.RoleSuffix)
	PrintSearchInfo(&buf, job)
	assert.Contains(t, buf.String(), "odds unknown")
	assert.Contains(t, buf.String(), "/[0-3]{2}/")
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, generator.Stats{Attempts: 123456, Found: 2, HashRate: 61728, ElapsedSecs: 2}, 2)
	out := buf.String()
	assert.Contains(t, out, "found 2/2")
	assert.Contains(t, out, "attempts 123,456")
	assert.Contains(t, out, "rate 61.7K/s")
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	calls := 0
	p := StartProgress(&buf, 1, func() generator.Stats {
		calls++
		return generator.Stats{Attempts: uint64(calls * 100)}
	}, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	p.Stop()
	assert.GreaterOrEqual(t, calls, 2)
}

func TestPromptPatterns(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		prefix, suffix string
		err            error
	}{
		{"both", "cafe\nbeef\n", "cafe", "beef", nil},
		{"prefix only", "0xabc\n\n", "0xabc", "", nil},
		{"suffix only", "\n[0-9]$\n", "", "[0-9]$", nil},
		{"retry invalid", "0xzz\ncafe\n\n", "cafe", "", nil},
		{"retry empty", "\n\n\nface\n", "", "face", nil},
		{"prefix then eof", "cafe", "cafe", "", nil},
		{"eof", "", "", "", ErrNoInput},
		{"only empty", "\n\n", "", "", ErrNoInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			prefix, suffix, err := PromptPatterns(strings.NewReader(tt.input), &out)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.prefix, prefix)
			assert.Equal(t, tt.suffix, suffix)
			assert.Contains(t, out.String(), "Prefix")
		})
	}
}

func TestPromptPatternsReportsInvalid(t *testing.T) {
	var out bytes.Buffer
	_, _, err := PromptPatterns(strings.NewReader("0xqq\ncafe\n\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Invalid")
}
