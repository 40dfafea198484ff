package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/dtcols/internal/config"
	"github.com/oakwood-commons/dtcols/internal/formatter"
)

func newConfigCommand(root *rootOptions) *cobra.Command {
	output := formatter.FormatYAML
	defaults := false
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the merged configuration",
		Long: `Print the configuration in effect: the built-in defaults with the user
config file merged on top. --defaults prints the built-in file verbatim.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			if defaults {
				_, err := w.Write(config.DefaultConfigYAML())
				return err
			}
			var (
				rendered string
				err      error
			)
			switch output {
			case formatter.FormatYAML:
				rendered, err = formatter.EncodeYAML(root.cfg, formatter.YAMLOptions{Indent: root.cfg.Output.Indent})
			case formatter.FormatJSON:
				rendered, err = formatter.FormatJSONIndent(root.cfg, root.cfg.Output.Indent)
			default:
				return fmt.Errorf("config supports -o yaml or json, not %s", output)
			}
			if err != nil {
				return err
			}
			_, err = io.WriteString(w, rendered)
			return err
		},
	}
	cmd.Flags().VarP(newFormatValue(&output), "output", "o", "output format: yaml|json")
	cmd.Flags().BoolVar(&defaults, "defaults", false, "print the built-in default config")
	return cmd
}
