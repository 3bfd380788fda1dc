package cmd

import (
	"shadowkit/internal/host"
	"shadowkit/internal/introspect"
	"shadowkit/internal/platform"
	"shadowkit/internal/registry"

	"github.com/spf13/cobra"
)

func newShadowsCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shadows",
		Short: "Inspect registered shadows",
		Long: `Inspect the shadow registry.

Available commands:
  list     - List every registered shadow
  resolve  - Show which shadow applies to a type at the selected SDK level
  table    - Resolve every registered target type at the selected SDK level`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every registered shadow",
		Long: `List every registered shadow in registration order, with the
platform type it replaces, its SDK gate and whether it targets an
internal type.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := flags.printer(cmd)
			if err != nil {
				return err
			}
			return p.Print(introspect.Shadows(registry.Default()))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "resolve <type>",
		Short: "Show which shadow applies to a type",
		Long: `Resolve a fully qualified platform type name against the registry.

The most specific registered type wins; among candidates for the same
type the narrowest SDK gate wins. Two equally narrow gates are reported
as ambiguous.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := introspect.Resolve(registry.Default(), host.Catalog(), platform.TypeName(args[0]), sdkLevel(), cfg.Platform.InternalTypesAllowed())
			if err != nil {
				return err
			}
			p, err := flags.printer(cmd)
			if err != nil {
				return err
			}
			return p.Print(res)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "table",
		Short: "Resolve every registered target type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := introspect.Table(registry.Default(), host.Catalog(), sdkLevel(), cfg.Platform.InternalTypesAllowed())
			if err != nil {
				return err
			}
			p, err := flags.printer(cmd)
			if err != nil {
				return err
			}
			return p.Print(table)
		},
	})

	return cmd
}
