package cmd

import (
	"fmt"
	"os"

	"shadowkit/internal/cli"
	"shadowkit/internal/config"
	"shadowkit/internal/platform"
	_ "shadowkit/internal/shadows"
	"shadowkit/pkg/logging"

	"github.com/spf13/cobra"
)

// version is reported by the version command and the MCP server
var version = "dev"

// rootFlags holds the persistent flags shared by every subcommand
type rootFlags struct {
	configPath    string
	sdk           int
	output        string
	logLevel      string
	allowInternal bool
	quiet         bool
	noColor       bool
}

// cfg is the effective configuration once PersistentPreRunE has run
var cfg config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "shadowkit",
		Short: "Inspect platform shadows and the types they replace",
		Long: `shadowkit resolves which shadow implementation replaces a platform
type at a given SDK level, and lists the types, constructors and methods
reachable through the version-aware bridge.

Settings are read from ~/.config/shadowkit/config.yaml and then
.shadowkit/config.yaml in the working directory. Flags override both.`,
		// SilenceUsage is set to true to prevent printing usage message on errors
		// handled by us (e.g. unknown types, invalid SDK levels)
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return flags.load(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default is the layered user and project config)")
	pf.IntVar(&flags.sdk, "sdk", 0, "SDK level to resolve against (default from config)")
	pf.StringVarP(&flags.output, "output", "o", "", "Output format (table, json, yaml)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.BoolVar(&flags.allowInternal, "allow-internal", true, "Allow internal-only shadows to apply")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "Suppress non-essential output")
	pf.BoolVar(&flags.noColor, "no-color", false, "Disable colored table output")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newShadowsCmd(flags))
	cmd.AddCommand(newBridgeCmd(flags))
	cmd.AddCommand(newConfigCmd(flags))
	cmd.AddCommand(newMCPCmd())

	return cmd
}

// load builds the effective configuration and initializes logging.
func (f *rootFlags) load(cmd *cobra.Command) error {
	var err error
	if f.configPath != "" {
		cfg, err = config.LoadConfigFrom(f.configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if f.sdk != 0 {
		cfg.Platform.SDK = f.sdk
	}
	if f.output != "" {
		cfg.Output.Format = config.OutputFormat(f.output)
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if cmd.Flags().Changed("allow-internal") {
		allow := f.allowInternal
		cfg.Platform.AllowInternalTypes = &allow
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	logging.InitForCLI(level, cmd.ErrOrStderr())
	logging.Debug("CLI", "Effective SDK level %d, internal types allowed: %t", cfg.Platform.SDK, cfg.Platform.InternalTypesAllowed())
	return nil
}

// printer renders reports to the command's output in the configured format.
func (f *rootFlags) printer(cmd *cobra.Command) (*cli.Printer, error) {
	return cli.NewPrinter(cli.PrinterOptions{
		Format:  cli.OutputFormat(cfg.Output.Format),
		Quiet:   f.quiet,
		NoColor: f.noColor,
		Out:     cmd.OutOrStdout(),
	})
}

func sdkLevel() platform.Version {
	return platform.Version(cfg.Platform.SDK)
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v // Set cobra's version field as well
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Set up version template
	rootCmd.SetVersionTemplate(`{{printf "shadowkit version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}
