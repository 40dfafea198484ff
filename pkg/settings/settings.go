// Package settings holds build metadata and the per-invocation run settings
// of the dtcols CLI.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "dtcols"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string `json:"commit" yaml:"commit"`
	BuildVersion string `json:"version" yaml:"version"`
	BuildTime    string `json:"buildTime" yaml:"buildTime"`
}

// InputSettings describes where the column document comes from.
type InputSettings struct {
	// FromStdin is set when the document is read from standard input.
	FromStdin bool
	// Path is the document file, empty for stdin.
	Path string
	// Format forces the document format; empty means detect.
	Format string
}

// Run holds the settings for a single CLI invocation.
type Run struct {
	MinLogLevel int8
	Input       InputSettings
	ConfigPath  string
	NoColor     bool
	Width       int
}

// NewCliParams returns the default run settings.
func NewCliParams() *Run {
	return &Run{
		Input: InputSettings{FromStdin: true},
	}
}

// SetInput records the document source. An empty path or "-" selects stdin.
func (r *Run) SetInput(path string) {
	if path == "" || path == "-" {
		r.Input.FromStdin = true
		r.Input.Path = ""
		return
	}
	r.Input.FromStdin = false
	r.Input.Path = path
}

// InputName returns a display name for the document source.
func (r *Run) InputName() string {
	if r.Input.FromStdin {
		return "<stdin>"
	}
	return r.Input.Path
}
