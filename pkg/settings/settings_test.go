package settings

import "testing"

func TestNewCliParams(t *testing.T) {
	r := NewCliParams()
	if !r.Input.FromStdin {
		t.Error("default input should be stdin")
	}
	if r.MinLogLevel != 0 || r.NoColor || r.Width != 0 {
		t.Errorf("unexpected defaults: %+v", r)
	}
	if r.InputName() != "<stdin>" {
		t.Errorf("InputName() = %q", r.InputName())
	}
}

func TestSetInput(t *testing.T) {
	tests := []struct {
		path      string
		wantStdin bool
		wantName  string
	}{
		{"", true, "<stdin>"},
		{"-", true, "<stdin>"},
		{"cols.yaml", false, "cols.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r := NewCliParams()
			r.SetInput(tt.path)
			if r.Input.FromStdin != tt.wantStdin {
				t.Errorf("FromStdin = %v, want %v", r.Input.FromStdin, tt.wantStdin)
			}
			if r.InputName() != tt.wantName {
				t.Errorf("InputName() = %q, want %q", r.InputName(), tt.wantName)
			}
		})
	}
}

func TestVersionInformationDefaults(t *testing.T) {
	if VersionInformation.BuildVersion == "" || VersionInformation.Commit == "" {
		t.Error("version defaults should be non-empty")
	}
	if CliBinaryName != "dtcols" {
		t.Errorf("CliBinaryName = %q", CliBinaryName)
	}
}
