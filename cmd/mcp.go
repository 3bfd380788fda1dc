package cmd

import (
	"shadowkit/internal/host"
	"shadowkit/internal/mcpserver"
	"shadowkit/internal/registry"

	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve shadow introspection tools over MCP stdio",
		Long: `Start an MCP server on stdin/stdout exposing the shadow_list,
shadow_resolve, shadow_table and bridge_types tools.

Tool calls without an sdk or allow_internal argument use the effective
configuration. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := mcpserver.New(mcpserver.Options{
				Registry:      registry.Default(),
				Catalog:       host.Catalog(),
				Version:       sdkLevel(),
				AllowInternal: cfg.Platform.InternalTypesAllowed(),
				ServerVersion: version,
			})
			return s.ServeStdio()
		},
	}
}
