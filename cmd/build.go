package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/dtcols/internal/cel"
	"github.com/oakwood-commons/dtcols/internal/formatter"
	"github.com/oakwood-commons/dtcols/pkg/column"
	"github.com/oakwood-commons/dtcols/pkg/columns"
	"github.com/oakwood-commons/dtcols/pkg/loader"
	"github.com/oakwood-commons/dtcols/pkg/logger"
)

// buildOptions are the flags shared by build and inspect.
type buildOptions struct {
	root *rootOptions

	output      formatter.Format
	inputFormat string
	remove      []string
	where       string
	set         []string
	prependJSON []string
	appendJSON  []string
}

func newBuildCommand(root *rootOptions) *cobra.Command {
	o := &buildOptions{root: root}
	cmd := &cobra.Command{
		Use:   "build [file|-]",
		Short: "Build the column configuration from a document",
		Long: `Load a column document, apply the command line edits and print the
resulting configuration. With no file or "-" the document is read from stdin.

Edits are applied after the document in this order: --prepend-json,
--append-json, --remove, --where, --set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args, "")
		},
	}
	o.addFlags(cmd)
	return cmd
}

func newInspectCommand(root *rootOptions) *cobra.Command {
	o := &buildOptions{root: root}
	cmd := &cobra.Command{
		Use:   "inspect [file|-]",
		Short: "Show the resulting columns as a table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args, formatter.FormatTable)
		},
	}
	o.addFlags(cmd)
	return cmd
}

func (o *buildOptions) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.VarP(newFormatValue(&o.output), "output", "o", formatUsage())
	f.StringVar(&o.inputFormat, "input-format", "", "document format: yaml|json|toml (default: detect)")
	f.StringArrayVar(&o.remove, "remove", nil, "remove every column with this name (repeatable)")
	f.StringVar(&o.where, "where", "", "keep only columns matching a CEL predicate over `column` and `index`")
	f.StringArrayVar(&o.set, "set", nil, "set an attribute on every column to a CEL expression, as key=expression (repeatable)")
	f.StringArrayVar(&o.prependJSON, "prepend-json", nil, "insert a column given as a JSON object at the front (repeatable)")
	f.StringArrayVar(&o.appendJSON, "append-json", nil, "append a column given as a JSON object (repeatable)")
}

func (o *buildOptions) run(cmd *cobra.Command, args []string, fallback formatter.Format) error {
	run := runSettings(cmd)
	lgr := logger.FromContext(cmd.Context())

	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	run.SetInput(path)
	run.Input.Format = o.inputFormat

	format, err := loader.ParseFormat(o.inputFormat)
	if err != nil {
		return err
	}
	data, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}
	if format == loader.FormatAuto {
		format = loader.DetectFormat(path, data)
	}
	doc, err := loader.New(*lgr).Load(data, format)
	if err != nil {
		return fmt.Errorf("%s: %w", run.InputName(), err)
	}

	b := doc.Apply(columns.New())
	if err := o.applyEdits(b); err != nil {
		return err
	}
	payload, err := b.Payload()
	if err != nil {
		return err
	}
	logger.WithValues(lgr, logger.InputKey, run.InputName(), logger.ColumnsKey, len(payload.Columns)).
		V(1).Info("columns built")

	out := o.output
	if out == "" {
		out = fallback
	}
	if out == "" {
		if out, err = formatter.ParseFormat(o.root.cfg.Output.Format); err != nil {
			return err
		}
	}
	opts := o.root.cfg.FormatterOptions()
	opts.NoColor = run.NoColor
	opts.Width = run.Width

	rendered, err := formatter.Render(payload, out, opts)
	if err != nil {
		return err
	}
	lgr.V(1).Info("rendering", logger.FormatKey, string(out))
	_, err = io.WriteString(cmd.OutOrStdout(), rendered)
	return err
}

// applyEdits applies the command line edits to b.
func (o *buildOptions) applyEdits(b *columns.Builder) error {
	prepend, err := parseAttributeObjects("--prepend-json", o.prependJSON)
	if err != nil {
		return err
	}
	appendCols, err := parseAttributeObjects("--append-json", o.appendJSON)
	if err != nil {
		return err
	}
	for i := len(prepend) - 1; i >= 0; i-- {
		b.AddColumnBefore(prepend[i])
	}
	for _, attrs := range appendCols {
		b.AddColumn(attrs)
	}
	if len(o.remove) > 0 {
		b.RemoveColumn(o.remove...)
	}
	if o.where == "" && len(o.set) == 0 {
		return nil
	}
	eval, err := cel.NewEvaluator()
	if err != nil {
		return err
	}
	if o.where != "" {
		pred, err := eval.Compile(o.where)
		if err != nil {
			return fmt.Errorf("--where: %w", err)
		}
		if err := pred.Filter(b); err != nil {
			return fmt.Errorf("--where: %w", err)
		}
	}
	for _, s := range o.set {
		a, err := eval.ParseAssignment(s)
		if err != nil {
			return fmt.Errorf("--set %q: %w", s, err)
		}
		if err := a.Apply(b); err != nil {
			return fmt.Errorf("--set %q: %w", s, err)
		}
	}
	return nil
}

func parseAttributeObjects(flag string, values []string) ([]column.Attributes, error) {
	out := make([]column.Attributes, 0, len(values))
	for _, v := range values {
		var attrs column.Attributes
		if err := json.Unmarshal([]byte(v), &attrs); err != nil {
			return nil, fmt.Errorf("%s %q: %w", flag, v, err)
		}
		if attrs == nil {
			return nil, fmt.Errorf("%s %q: %w", flag, v, columns.ErrInvalidColumnSpec)
		}
		out = append(out, attrs)
	}
	return out, nil
}

// readInput reads the named file, or r when path is empty or "-".
func readInput(r io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	return os.ReadFile(path)
}
