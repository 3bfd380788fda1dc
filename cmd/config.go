package cmd

import (
	"github.com/spf13/cobra"
)

// effectiveConfig is the flattened view printed by "config show"
type effectiveConfig struct {
	SDK                int    `json:"sdk"`
	AllowInternalTypes bool   `json:"allowInternalTypes"`
	LogLevel           string `json:"logLevel"`
	Output             string `json:"output"`
}

func newConfigCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect shadowkit configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long:  `Show the configuration after layering defaults, config files and flags.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := flags.printer(cmd)
			if err != nil {
				return err
			}
			return p.Print(effectiveConfig{
				SDK:                cfg.Platform.SDK,
				AllowInternalTypes: cfg.Platform.InternalTypesAllowed(),
				LogLevel:           cfg.Logging.Level,
				Output:             string(cfg.Output.Format),
			})
		},
	})

	return cmd
}
