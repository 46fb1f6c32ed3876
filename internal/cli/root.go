package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/StandPlan/internal/project"
)

var (
	version = "dev" // semantic version
	commit  string  // git commit SHA
	date    string  // build timestamp
)

// SetVersion sets the version information displayed by --version. It is
// called from main with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// NewRootCommand builds the standplan command tree. Running it without a
// subcommand starts the desktop editor.
func NewRootCommand() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          appName,
		Short:        "StandPlan lays out exhibition stands in pavilions",
		Long:         `StandPlan is a floor-plan editor for exhibitions: place rectangular and L-shaped stands and utility spaces inside pavilions, then export printable plans and stand signs.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = project.DefaultConfigPath()
			}
			cfg, err := project.LoadAppConfig(configPath)
			if err != nil {
				return err
			}
			level := levelFromConfig(cfg.LogLevel)
			if verbose {
				level = log.DebugLevel
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = withLogger(ctx, newLogger(cmd.ErrOrStderr(), level))
			ctx = withSettings(ctx, settings{config: cfg, path: configPath})
			cmd.SetContext(ctx)
			return nil
		},
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd.Context(), args)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\n", appName, version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.standplan/config.toml)")

	root.AddCommand(newGUICmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newPlaceCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newExportCmd())

	return root
}

// Execute runs the standplan CLI.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
