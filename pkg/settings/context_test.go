package settings

import (
	"context"
	"testing"
)

func TestIntoContext(t *testing.T) {
	tests := []struct {
		name     string
		settings *Run
	}{
		{name: "empty_settings", settings: &Run{}},
		{name: "settings_with_values", settings: &Run{NoColor: true, Width: 80}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := IntoContext(context.Background(), tt.settings)
			got, ok := FromContext(ctx)
			if !ok {
				t.Fatal("FromContext() ok = false")
			}
			if got != tt.settings {
				t.Error("FromContext() returned a different pointer")
			}
		})
	}
}

func TestFromContextMissing(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Error("FromContext() on empty context should report false")
	}

	var nilRun *Run
	if _, ok := FromContext(IntoContext(context.Background(), nilRun)); ok {
		t.Error("FromContext() should report false for a nil *Run")
	}

	ctx := context.WithValue(context.Background(), settingsContextKey, "not settings")
	if _, ok := FromContext(ctx); ok {
		t.Error("FromContext() should report false for a foreign value")
	}
}
