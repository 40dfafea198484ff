// Package cmd implements the dtcols command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oakwood-commons/dtcols/internal/config"
	"github.com/oakwood-commons/dtcols/internal/formatter"
	"github.com/oakwood-commons/dtcols/pkg/logger"
	"github.com/oakwood-commons/dtcols/pkg/settings"
)

// rootOptions holds the persistent flags and the configuration resolved for
// one invocation.
type rootOptions struct {
	configFile string
	debug      bool
	noColor    bool
	width      int

	cfg config.Config
}

// NewRootCommand assembles the dtcols command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   settings.CliBinaryName,
		Short: "Assemble DataTables column configuration",
		Long: `dtcols normalizes loosely specified column lists into the ordered column
configuration consumed by a DataTables widget.

Columns are read from a YAML, JSON or TOML document. Each entry is a plain
string (name = data = the string), a record keyed by field with optional
name/data/title overrides, or a full descriptor. Titles not given are derived
from the key ("full_name" becomes "Full Name").`,
		Example: `  dtcols build columns.yaml
  dtcols build columns.yaml -o table --remove password
  cat columns.json | dtcols build - --where '!column.name.startsWith("meta_")'
  dtcols inspect columns.toml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       versionString(),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config-file", "", "path to a YAML config file (default $XDG_CONFIG_HOME/dtcols/config.yaml)")
	pf.BoolVar(&opts.debug, "debug", false, "enable debug logging on stderr")
	pf.BoolVar(&opts.noColor, "no-color", false, "disable color output")
	pf.IntVar(&opts.width, "width", 0, "output width in columns (default: terminal width)")

	rootCmd.AddCommand(
		newBuildCommand(opts),
		newInspectCommand(opts),
		newConfigCommand(opts),
		newVersionCommand(),
	)
	return rootCmd
}

// setup initializes logging, loads the configuration and stores the run
// settings in the command context.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	run := settings.NewCliParams()
	if o.debug {
		run.MinLogLevel = logger.DebugLevel
	}
	run.ConfigPath = config.ResolvePath(o.configFile)

	lgr := logger.WithValues(logger.ForRun(run), logger.CommandKey, cmd.Name())

	cfg, err := config.Load(run.ConfigPath)
	if err != nil {
		return err
	}
	lgr.V(1).Info("configuration loaded", "path", run.ConfigPath)
	o.cfg = cfg

	run.NoColor = o.noColor || cfg.Output.NoColor || !isTerminal(cmd.OutOrStdout())
	run.Width = cfg.Output.Width
	if cmd.Flags().Changed("width") {
		run.Width = o.width
	}
	formatter.SetTableTheme(cfg.Theme.TableColors())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithLogger(ctx, lgr)
	ctx = settings.IntoContext(ctx, run)
	cmd.SetContext(ctx)
	return nil
}

// runSettings returns the settings stored by setup.
func runSettings(cmd *cobra.Command) *settings.Run {
	if run, ok := settings.FromContext(cmd.Context()); ok {
		return run
	}
	return settings.NewCliParams()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}

func versionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s)", settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime)
}
