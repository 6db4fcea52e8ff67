// Package theme defines the colors of the stock clock face.
package theme

import (
	"fmt"

	"github.com/go-drift/analogclock/pkg/rendering"
)

// Brightness indicates a light or dark theme.
type Brightness int

const (
	// BrightnessLight paints dark hands on a light face.
	BrightnessLight Brightness = iota
	// BrightnessDark paints light hands on a dark face.
	BrightnessDark
)

func (b Brightness) String() string {
	if b == BrightnessDark {
		return "dark"
	}
	return "light"
}

// ColorScheme is the palette of a clock face.
type ColorScheme struct {
	Background rendering.Color
	Rim        rendering.Color
	Face       rendering.Color
	Tick       rendering.Color
	HourHand   rendering.Color
	MinuteHand rendering.Color
	SecondHand rendering.Color
	Label      rendering.Color
}

// ThemeData configures the stock face.
type ThemeData struct {
	ColorScheme ColorScheme
	Brightness  Brightness
	// Label is drawn near the top of the face when non-empty.
	Label string
}

// DefaultLightTheme returns the default light theme.
func DefaultLightTheme() *ThemeData {
	return &ThemeData{
		Brightness: BrightnessLight,
		ColorScheme: ColorScheme{
			Background: rendering.RGB(0xf4, 0xf4, 0xf4),
			Rim:        rendering.RGB(0x22, 0x22, 0x22),
			Face:       rendering.ColorWhite,
			Tick:       rendering.RGB(0x33, 0x33, 0x33),
			HourHand:   rendering.RGB(0x11, 0x11, 0x11),
			MinuteHand: rendering.RGB(0x33, 0x33, 0x33),
			SecondHand: rendering.RGB(0xd3, 0x2f, 0x2f),
			Label:      rendering.RGB(0x66, 0x66, 0x66),
		},
	}
}

// DefaultDarkTheme returns the default dark theme.
func DefaultDarkTheme() *ThemeData {
	return &ThemeData{
		Brightness: BrightnessDark,
		ColorScheme: ColorScheme{
			Background: rendering.RGB(0x12, 0x12, 0x12),
			Rim:        rendering.RGB(0x55, 0x55, 0x55),
			Face:       rendering.RGB(0x1e, 0x1e, 0x1e),
			Tick:       rendering.RGB(0xcc, 0xcc, 0xcc),
			HourHand:   rendering.RGB(0xee, 0xee, 0xee),
			MinuteHand: rendering.RGB(0xcc, 0xcc, 0xcc),
			SecondHand: rendering.RGB(0xff, 0x6e, 0x40),
			Label:      rendering.RGB(0x99, 0x99, 0x99),
		},
	}
}

// Named returns the built-in theme called name ("light" or "dark").
func Named(name string) (*ThemeData, error) {
	switch name {
	case "", "light":
		return DefaultLightTheme(), nil
	case "dark":
		return DefaultDarkTheme(), nil
	default:
		return nil, fmt.Errorf("unknown theme %q (use light or dark)", name)
	}
}

// Overrides holds optional "#RRGGBB" replacements for scheme colors.
type Overrides struct {
	Background string `yaml:"background"`
	Face       string `yaml:"face"`
	Tick       string `yaml:"tick"`
	HourHand   string `yaml:"hour_hand"`
	MinuteHand string `yaml:"minute_hand"`
	SecondHand string `yaml:"second_hand"`
}

// WithOverrides returns a copy of t with the non-empty overrides applied.
func (t *ThemeData) WithOverrides(o Overrides) (*ThemeData, error) {
	result := *t
	targets := []struct {
		value string
		dst   *rendering.Color
	}{
		{o.Background, &result.ColorScheme.Background},
		{o.Face, &result.ColorScheme.Face},
		{o.Tick, &result.ColorScheme.Tick},
		{o.HourHand, &result.ColorScheme.HourHand},
		{o.MinuteHand, &result.ColorScheme.MinuteHand},
		{o.SecondHand, &result.ColorScheme.SecondHand},
	}
	for _, tgt := range targets {
		if tgt.value == "" {
			continue
		}
		c, err := rendering.ParseHex(tgt.value)
		if err != nil {
			return nil, err
		}
		*tgt.dst = c
	}
	return &result, nil
}
