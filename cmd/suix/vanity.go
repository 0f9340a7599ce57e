package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/longcipher/suix/internal/log"
	"github.com/longcipher/suix/internal/ui"
	"github.com/longcipher/suix/pkg/generator"
	"github.com/longcipher/suix/pkg/generator/cpu"
	"github.com/longcipher/suix/pkg/sink"
)

const (
	progressInterval = 200 * time.Millisecond
	exitInterrupted  = 130
)

// errSinkFailed is returned when at least one match could not be written.
var errSinkFailed = errors.New("failed to write some matches, see log")

func newVanityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vanity",
		Short: "Search for vanity addresses",
		Example: `  suix vanity --starts-with cafe
  suix vanity --ends-with 0x00 -n 3 --save-path ./keys
  suix vanity --starts-with '^(dead|beef)' --scheme secp256k1 --mnemonic`,
		Args: cobra.NoArgs,
		RunE: runVanity,
	}

	f := cmd.Flags()
	f.StringVar(&cfg.StartsWith, "starts-with", cfg.StartsWith, "address prefix: hex, hexspeak or regex")
	f.StringVar(&cfg.EndsWith, "ends-with", cfg.EndsWith, "address suffix: hex, hexspeak or regex")
	f.StringVar(&cfg.SavePath, "save-path", cfg.SavePath, "write each key to <dir>/<address>.key instead of stdout")
	f.StringVar(&cfg.Keystore, "keystore", cfg.Keystore, "also append keys to this sui.keystore file")
	f.IntVarP(&cfg.Threads, "threads", "j", cfg.Threads, "number of worker goroutines (0 = logical cores)")
	f.IntVarP(&cfg.Count, "count", "n", cfg.Count, "number of matching addresses to find")
	f.IntVar(&cfg.AddressesPerRound, "addresses-per-round", cfg.AddressesPerRound, "addresses each worker derives between stop checks")
	f.StringVar(&cfg.Scheme, "scheme", cfg.Scheme, "signature scheme: ed25519, secp256k1 or secp256r1")
	f.BoolVar(&cfg.Mnemonic, "mnemonic", cfg.Mnemonic, "derive keys from BIP-39 recovery phrases (much slower)")
	f.StringVar(&cfg.KeyFormat, "key-format", cfg.KeyFormat, "private key encoding: base64, bech32 or hex")
	f.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "stop searching after this long (0 = no limit)")
	f.BoolVar(&cfg.NoProgress, "no-progress", cfg.NoProgress, "disable the progress line")
	f.BoolVar(&cfg.HighPriority, "high-priority", cfg.HighPriority, "raise the process scheduling priority")
	return cmd
}

func runVanity(cmd *cobra.Command, args []string) error {
	if cfg.StartsWith == "" && cfg.EndsWith == "" && ui.IsTerminal(os.Stdin) {
		prefix, suffix, err := ui.PromptPatterns(os.Stdin, os.Stderr)
		if err != nil {
			return err
		}
		cfg.StartsWith, cfg.EndsWith = prefix, suffix
	}

	job, err := cfg.Job()
	if err != nil {
		return err
	}
	out, err := cfg.Sinks(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if cfg.HighPriority {
		if err := setHighPriority(); err != nil {
			log.Warn("could not raise process priority", "err", err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	interactive := ui.IsTerminal(os.Stderr)
	if interactive {
		ui.PrintBanner(os.Stderr, version)
		ui.PrintSearchInfo(os.Stderr, job)
	}
	log.Info("search started", "target", cfg.Description(), "scheme", job.Scheme,
		"threads", job.Threads, "count", job.Target)

	gen := cpu.NewCPUGenerator()
	var progress *ui.Progress
	if interactive && !cfg.NoProgress {
		progress = ui.StartProgress(os.Stderr, job.Target, gen.Stats, progressInterval)
	}
	matches, runErr := gen.Run(ctx, job)
	if progress != nil {
		progress.Stop()
	}

	stats := gen.Stats()
	sinkErr := emit(out, matches, job.Target)

	if interactive {
		ui.PrintSummary(os.Stderr, stats, job.Target)
		if len(matches) > 0 && cfg.SavePath == "" {
			ui.PrintSecretWarning(os.Stderr)
		}
	}
	log.Info("search finished", "found", len(matches), "attempts", stats.Attempts,
		"elapsed", ui.FormatDuration(time.Duration(stats.ElapsedSecs*float64(time.Second))))

	return finish(ctx, runErr, sinkErr)
}

// emit hands every match to the sink. Failed writes are logged and skipped so
// the remaining keys still reach their destination.
func emit(s sink.Sink, matches []generator.Match, target int) error {
	failed := false
	for _, m := range matches {
		if err := s.Put(m, target); err != nil {
			log.Error("failed to write match", "index", m.Index, "address", m.Address.String(), "err", err)
			failed = true
		}
	}
	if err := s.Close(); err != nil {
		log.Error("failed to close output", "err", err)
		failed = true
	}
	if failed {
		return errSinkFailed
	}
	return nil
}

// finish maps the search outcome to the command result.
func finish(ctx context.Context, runErr, sinkErr error) error {
	switch {
	case errors.Is(runErr, generator.ErrCancelled):
		reason := "interrupted"
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			reason = "timeout reached"
		}
		return &exitError{code: exitInterrupted, err: fmt.Errorf("%s: %w", reason, runErr)}
	case runErr != nil:
		return runErr
	default:
		return sinkErr
	}
}
