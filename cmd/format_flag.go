package cmd

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/oakwood-commons/dtcols/internal/formatter"
)

// formatValue is a pflag.Value accepting formatter output format names.
type formatValue struct {
	format *formatter.Format
}

var _ pflag.Value = formatValue{}

func newFormatValue(p *formatter.Format) formatValue {
	return formatValue{format: p}
}

func (f formatValue) String() string {
	if f.format == nil {
		return ""
	}
	return string(*f.format)
}

func (f formatValue) Set(s string) error {
	v, err := formatter.ParseFormat(s)
	if err != nil {
		return err
	}
	*f.format = v
	return nil
}

func (f formatValue) Type() string {
	return "format"
}

func formatUsage() string {
	return "output format: " + strings.Join(formatter.ValidFormats, "|") + " (default from config)"
}
