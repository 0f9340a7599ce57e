package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/longcipher/suix/pkg/generator/sui"
)

func newAddressCmd() *cobra.Command {
	var scheme string
	cmd := &cobra.Command{
		Use:   "address <private-key>",
		Short: "Print the address of a private key",
		Long: `Decodes a private key in base64 (sui.keystore), bech32 (suiprivkey1...)
or 0x-hex form and prints its scheme and address. Hex keys carry no scheme,
so --scheme selects it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sui.ParseScheme(scheme)
			if err != nil {
				return err
			}
			kp, err := sui.DecodeKey(args[0], s)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scheme:  %s\n", kp.Scheme)
			fmt.Fprintf(out, "Address: %s\n", kp.Address())
			return nil
		},
	}
	cmd.Flags().StringVar(&scheme, "scheme", "ed25519", "scheme of hex encoded keys")
	return cmd
}
