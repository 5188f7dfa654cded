package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomz197/breakout/internal/game"
)

func TestDefault(t *testing.T) {
	c := Default()

	if c.Layout != game.DefaultLayout(SurfaceWidth, SurfaceHeight) {
		t.Errorf("layout = %+v", c.Layout)
	}
	if c.Palette != game.DefaultPalette() {
		t.Errorf("palette = %+v, want %+v", c.Palette, game.DefaultPalette())
	}
	if c.PaddleRule != game.PaddleForceUp {
		t.Errorf("paddle rule = %v", c.PaddleRule)
	}
	if c.FPS != TargetFPS || c.KeyHold != KeyHold || c.IdleTimeout != IdleTimeout {
		t.Errorf("timing = %d fps, hold %v, idle %v", c.FPS, c.KeyHold, c.IdleTimeout)
	}
	if c.Renderer != RendererANSI || c.LogLevel != "info" {
		t.Errorf("renderer = %q, log level = %q", c.Renderer, c.LogLevel)
	}
	if got, want := c.FrameTime(), time.Second/60; got != want {
		t.Errorf("FrameTime() = %v, want %v", got, want)
	}
}

func TestDecodeOverrides(t *testing.T) {
	c, err := Decode(`
[bricks]
columns = 6

[paddle]
width = 160
rule = "legacy-flip"

[palette]
ball = "#000000"

[loop]
fps = 30
key_hold = "200ms"
idle_timeout = "0s"
renderer = "tcell"
`)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if c.Layout.Columns != 6 || c.Layout.PaddleWidth != 160 {
		t.Errorf("layout = %+v", c.Layout)
	}
	if c.Layout.Rows != 4 || c.Layout.Margin != 48 {
		t.Errorf("unset fields lost their defaults: %+v", c.Layout)
	}
	if c.PaddleRule != game.PaddleLegacyFlip {
		t.Errorf("paddle rule = %v", c.PaddleRule)
	}
	if c.Palette.Ball != (game.Color{}) {
		t.Errorf("ball = %+v, want black", c.Palette.Ball)
	}
	if c.Palette.Brick != game.DefaultPalette().Brick {
		t.Errorf("brick colour changed: %+v", c.Palette.Brick)
	}
	if c.FPS != 30 || c.KeyHold != 200*time.Millisecond || c.IdleTimeout != 0 || c.Renderer != RendererTcell {
		t.Errorf("loop = %d, %v, %v, %q", c.FPS, c.KeyHold, c.IdleTimeout, c.Renderer)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want error
	}{
		{"zero width", "[surface]\nwidth = 0", ErrInvalidLayout},
		{"no columns", "[bricks]\ncolumns = 0", ErrInvalidLayout},
		{"wide paddle", "[paddle]\nwidth = 2000", ErrInvalidLayout},
		{"no radius", "[ball]\nradius = 0", ErrInvalidLayout},
		{"grid too tall", "[bricks]\nrows = 12", ErrInvalidLayout},
		{"huge gap", "[bricks]\ngap = 200", ErrInvalidLayout},
		{"bad colour", "[palette]\nbrick = \"orange\"", ErrInvalidColor},
		{"bad rule", "[paddle]\nrule = \"sticky\"", ErrInvalidValue},
		{"bad fps", "[loop]\nfps = 0", ErrInvalidValue},
		{"fps above limit", "[loop]\nfps = 1001", ErrInvalidValue},
		{"fps with zero frame time", "[loop]\nfps = 2000000000", ErrInvalidValue},
		{"bad duration", "[loop]\nkey_hold = \"soon\"", ErrInvalidValue},
		{"bad renderer", "[loop]\nrenderer = \"svg\"", ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.toml)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeMaxFPS(t *testing.T) {
	c, err := Decode(fmt.Sprintf("[loop]\nfps = %d", MaxFPS))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if c.FrameTime() <= 0 {
		t.Errorf("FrameTime() = %v, want positive", c.FrameTime())
	}
}

func TestDecodeSyntaxError(t *testing.T) {
	if _, err := Decode("[bricks\ncolumns = 6"); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "breakout.toml")
	data := "[log]\nlevel = \"warn\"\n\n[paddle]\nstep = 20\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvPaddleRule, "legacy-flip")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Layout.PaddleStep != 20 {
		t.Errorf("paddle step = %v, want 20", c.Layout.PaddleStep)
	}
	if c.LogLevel != "debug" {
		t.Errorf("log level = %q, environment should win", c.LogLevel)
	}
	if c.PaddleRule != game.PaddleLegacyFlip {
		t.Errorf("paddle rule = %v", c.PaddleRule)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("BREAKOUT_TEST_SET", "")
	if got := GetEnv("BREAKOUT_TEST_SET", "fallback"); got != "" {
		t.Errorf("GetEnv(set) = %q, want empty value", got)
	}
	if got := GetEnv("BREAKOUT_TEST_UNSET_1", "fallback"); got != "fallback" {
		t.Errorf("GetEnv(unset) = %q, want fallback", got)
	}
}
