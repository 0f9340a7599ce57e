package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/longcipher/suix/internal/config"
	"github.com/longcipher/suix/internal/log"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

var (
	cfg        = config.NewConfig()
	configFile string
)

// exitError carries a process exit code other than 1.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "suix",
		Short: "Sui vanity address generator",
		Long: `suix searches for Sui addresses matching a prefix and/or suffix.
Patterns may be literal hex (0xcafe), hexspeak (c0ffee, g00d) or a regular
expression over the 64 hex digits of the address.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "TOML configuration file; explicit flags take precedence")
	pf.Uint32Var(&cfg.Log.Verbosity, "verbosity", cfg.Log.Verbosity, "log level, 0 (panic) to 6 (trace)")
	pf.BoolVar(&cfg.Log.JSON, "log-json", cfg.Log.JSON, "log in JSON format")
	pf.BoolVar(&cfg.Log.Color, "log-color", cfg.Log.Color, "colorize log output")

	rootCmd.AddCommand(newVanityCmd(), newAddressCmd(), newVerifyCmd(), newVersionCmd())
	return rootCmd
}

// setup loads the config file, if any, and configures logging.
func setup(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		if err := applyConfigFile(cmd.Flags(), configFile); err != nil {
			return err
		}
	}
	log.SetLogger(cfg.Log.Verbosity, cfg.Log.JSON, cfg.Log.Color)
	return nil
}

// applyConfigFile decodes path over cfg, then re-applies every flag the user
// set explicitly so the command line wins over the file.
func applyConfigFile(flags *pflag.FlagSet, path string) error {
	explicit := map[string]string{}
	flags.Visit(func(f *pflag.Flag) {
		explicit[f.Name] = f.Value.String()
	})

	if err := cfg.LoadFile(path); err != nil {
		return err
	}

	for name, value := range explicit {
		if err := flags.Set(name, value); err != nil {
			return fmt.Errorf("re-apply --%s: %w", name, err)
		}
	}
	return nil
}

// exitCode reports err on stderr and maps it to a process exit code.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", ee.err)
		}
		return ee.code
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "suix %s\n", version)
		},
	}
}
