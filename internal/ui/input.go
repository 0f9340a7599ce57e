package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/longcipher/suix/pkg/generator/pattern"
)

// ErrNoInput is returned when the prompt reaches end of input without a pattern.
var ErrNoInput = errors.New("no pattern entered")

// PromptPatterns asks for a prefix and a suffix until at least one valid
// pattern has been entered.
func PromptPatterns(in io.Reader, out io.Writer) (string, string, error) {
	reader := bufio.NewReader(in)

	labelColor.Fprintln(out, "  🎯 TARGET PATTERN")
	dimColor.Fprintln(out, "  hex (0xcafe), hexspeak (c0ffee, g00d) or a regex over the hex address")

	for {
		prefix, err := promptOne(reader, out, "Prefix", "(0x...)", pattern.RolePrefix)
		if errors.Is(err, io.EOF) {
			return "", "", ErrNoInput
		} else if err != nil {
			return "", "", err
		}
		suffix, err := promptOne(reader, out, "Suffix", "(...xxx)", pattern.RoleSuffix)
		if errors.Is(err, io.EOF) {
			if prefix == "" {
				return "", "", ErrNoInput
			}
			return prefix, "", nil
		} else if err != nil {
			return "", "", err
		}
		if prefix != "" || suffix != "" {
			return prefix, suffix, nil
		}
		warnColor.Fprintln(out, "  ⚠ Enter a prefix, a suffix or both")
	}
}

// promptOne reads one line, re-asking while it does not compile. An empty
// answer is accepted and returned as "". io.EOF is returned when input ends
// without a usable answer.
func promptOne(reader *bufio.Reader, out io.Writer, label, hint string, role pattern.Role) (string, error) {
	for {
		fmt.Fprintf(out, "  %s %s: ", titleColor.Sprint(label), hint)
		line, err := reader.ReadString('\n')
		value := strings.TrimSpace(line)
		if err != nil && (err != io.EOF || value == "") {
			return "", err
		}
		if value == "" {
			return "", nil
		}
		if _, cerr := pattern.Compile(value, role); cerr != nil {
			warnColor.Fprintf(out, "  ⚠ Invalid: %v\n", cerr)
			if err == io.EOF {
				return "", io.EOF
			}
			continue
		}
		return value, nil
	}
}
