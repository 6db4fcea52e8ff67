package theme

import (
	"testing"

	"github.com/go-drift/analogclock/pkg/rendering"
)

func TestNamed(t *testing.T) {
	tests := []struct {
		name    string
		want    Brightness
		wantErr bool
	}{
		{"", BrightnessLight, false},
		{"light", BrightnessLight, false},
		{"dark", BrightnessDark, false},
		{"sepia", 0, true},
	}
	for _, tt := range tests {
		got, err := Named(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("Named(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if err == nil && got.Brightness != tt.want {
			t.Errorf("Named(%q).Brightness = %v, want %v", tt.name, got.Brightness, tt.want)
		}
	}
}

func TestWithOverrides(t *testing.T) {
	base := DefaultLightTheme()
	got, err := base.WithOverrides(Overrides{SecondHand: "#00ff00"})
	if err != nil {
		t.Fatalf("WithOverrides: %v", err)
	}
	if got.ColorScheme.SecondHand != rendering.RGB(0, 0xff, 0) {
		t.Errorf("SecondHand = %#x, want green", uint32(got.ColorScheme.SecondHand))
	}
	if got.ColorScheme.HourHand != base.ColorScheme.HourHand {
		t.Error("unset overrides should keep the base color")
	}
	if base.ColorScheme.SecondHand == got.ColorScheme.SecondHand {
		t.Error("WithOverrides must not modify the receiver")
	}
}

func TestWithOverridesInvalid(t *testing.T) {
	if _, err := DefaultDarkTheme().WithOverrides(Overrides{Face: "blue"}); err == nil {
		t.Error("expected error for invalid color")
	}
}
