package cmd

import (
	"shadowkit/internal/host"
	"shadowkit/internal/introspect"

	"github.com/spf13/cobra"
)

func newBridgeCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bridge",
		Short: "Inspect the version-aware type bridge",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "types",
		Short: "List the types reachable through the bridge",
		Long: `List every platform type the bridge can look up at the selected
SDK level, together with its constructor signatures and method names.
Types gated out at that level are omitted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := flags.printer(cmd)
			if err != nil {
				return err
			}
			return p.Print(introspect.BridgeTypes(host.Catalog(), sdkLevel()))
		},
	})

	return cmd
}
