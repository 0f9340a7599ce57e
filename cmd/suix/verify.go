package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/longcipher/suix/pkg/generator/sui"
)

var errVerifyFailed = errors.New("self-check failed")

// verifyResult is the outcome of one round trip check.
type verifyResult struct {
	Scheme  sui.Scheme
	Name    string
	Address string
	Err     error
}

func newVerifyCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Self-check key derivation and encodings",
		Long: `For every scheme, derives random keys, encodes them in every key format,
decodes them again and checks that the address is unchanged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := runVerify(n)
			if !printVerify(cmd.OutOrStdout(), results) {
				return errVerifyFailed
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "count", "n", 4, "keys per scheme")
	return cmd
}

// runVerify checks n random keys per scheme plus one mnemonic key where supported.
func runVerify(n int) []verifyResult {
	var results []verifyResult
	for _, scheme := range sui.Schemes {
		d, err := sui.NewDeriver(scheme, nil, false)
		if err != nil {
			results = append(results, verifyResult{Scheme: scheme, Name: "deriver", Err: err})
			continue
		}
		for i := 0; i < n; i++ {
			kp, addr, err := d.Derive()
			r := verifyResult{Scheme: scheme, Name: fmt.Sprintf("random key %d", i+1), Address: addr.String()}
			if err == nil {
				err = checkRoundTrip(kp, addr)
			}
			r.Err = err
			results = append(results, r)
		}

		if sui.SupportsMnemonic(scheme) {
			md, _ := sui.NewDeriver(scheme, nil, true)
			kp, addr, err := md.Derive()
			r := verifyResult{Scheme: scheme, Name: "mnemonic key", Address: addr.String()}
			if err == nil {
				err = checkMnemonic(kp, addr)
			}
			r.Err = err
			results = append(results, r)
		}
	}
	return results
}

func checkRoundTrip(kp *sui.KeyPair, addr sui.Address) error {
	if got := sui.DeriveAddress(kp.Scheme, kp.PublicKey); got != addr {
		return fmt.Errorf("address mismatch: derived %s, want %s", got, addr)
	}
	for _, format := range []sui.KeyFormat{sui.FormatBase64, sui.FormatBech32, sui.FormatHex} {
		enc, err := kp.Encode(format)
		if err != nil {
			return fmt.Errorf("encode %s: %w", format, err)
		}
		dec, err := sui.DecodeKey(enc, kp.Scheme)
		if err != nil {
			return fmt.Errorf("decode %s: %w", format, err)
		}
		if dec.Scheme != kp.Scheme || dec.Address() != addr {
			return fmt.Errorf("%s round trip gave %s %s", format, dec.Scheme, dec.Address())
		}
	}
	parsed, err := sui.ParseAddress(addr.String())
	if err != nil {
		return err
	}
	if parsed != addr {
		return fmt.Errorf("address parse mismatch: %s", parsed)
	}
	return nil
}

func checkMnemonic(kp *sui.KeyPair, addr sui.Address) error {
	again, err := sui.KeyFromMnemonic(kp.Scheme, kp.Mnemonic)
	if err != nil {
		return err
	}
	if again.Address() != addr {
		return fmt.Errorf("mnemonic re-derivation gave %s", again.Address())
	}
	return checkRoundTrip(kp, addr)
}

// printVerify reports every result and returns whether all passed.
func printVerify(w io.Writer, results []verifyResult) bool {
	passed := true
	for _, r := range results {
		if r.Err != nil {
			passed = false
			fmt.Fprintf(w, "  ❌ %-9s %-14s %v\n", r.Scheme, r.Name, r.Err)
			continue
		}
		fmt.Fprintf(w, "  ✅ %-9s %-14s %s\n", r.Scheme, r.Name, r.Address)
	}
	fmt.Fprintln(w, "  ─────────────────────────────────────────────────────────────────")
	if passed {
		fmt.Fprintf(w, "  ✅ ALL %d CHECKS PASSED\n", len(results))
	} else {
		fmt.Fprintln(w, "  ❌ SOME CHECKS FAILED")
	}
	return passed
}
