package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/breakout/internal/game"
)

// Logical surface size. Rendering scales it to fit the terminal.
const (
	SurfaceWidth  = 960
	SurfaceHeight = 640
)

// Terminal render limits; larger terminals get a centred, bordered canvas.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 50
)

// Host loop timing.
const (
	TargetFPS   = 60
	MaxFPS      = 1000
	KeyHold     = 120 * time.Millisecond
	IdleTimeout = 120 * time.Second // SSH sessions only
)

// Renderer names.
const (
	RendererANSI  = "ansi"
	RendererTcell = "tcell"
)

var (
	ErrInvalidLayout = errors.New("invalid layout")
	ErrInvalidColor  = errors.New("invalid color")
	ErrInvalidValue  = errors.New("invalid value")
)

// Config is the resolved configuration of a game host.
type Config struct {
	Layout     game.Layout
	Palette    game.Palette
	PaddleRule game.PaddleRule

	FPS         int
	KeyHold     time.Duration
	IdleTimeout time.Duration // 0 disables the idle disconnect
	Renderer    string
	LogLevel    string

	MaxTermWidth  int
	MaxTermHeight int
}

// FrameTime returns the duration of one frame.
func (c Config) FrameTime() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// File is the TOML file layout. Fields absent from the file keep their
// default values.
type File struct {
	Surface struct {
		Width  float64 `toml:"width"`
		Height float64 `toml:"height"`
	} `toml:"surface"`

	Bricks struct {
		Columns    int     `toml:"columns"`
		Rows       int     `toml:"rows"`
		SizingRows int     `toml:"sizing_rows"`
		Margin     float64 `toml:"margin"`
		Gap        float64 `toml:"gap"`
	} `toml:"bricks"`

	Paddle struct {
		Width  float64 `toml:"width"`
		Height float64 `toml:"height"`
		Step   float64 `toml:"step"`
		Rule   string  `toml:"rule"`
	} `toml:"paddle"`

	Ball struct {
		Radius float64 `toml:"radius"`
		SpeedX float64 `toml:"speed_x"`
		SpeedY float64 `toml:"speed_y"`
		Lift   float64 `toml:"lift"`
	} `toml:"ball"`

	Palette struct {
		Brick  string `toml:"brick"`
		Paddle string `toml:"paddle"`
		Ball   string `toml:"ball"`
	} `toml:"palette"`

	Loop struct {
		FPS         int    `toml:"fps"`
		KeyHold     string `toml:"key_hold"`
		IdleTimeout string `toml:"idle_timeout"`
		Renderer    string `toml:"renderer"`
	} `toml:"loop"`

	Terminal struct {
		MaxWidth  int `toml:"max_width"`
		MaxHeight int `toml:"max_height"`
	} `toml:"terminal"`

	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

// DefaultFile returns a File holding the default configuration.
func DefaultFile() File {
	var f File
	l := game.DefaultLayout(SurfaceWidth, SurfaceHeight)

	f.Surface.Width = l.Width
	f.Surface.Height = l.Height
	f.Bricks.Columns = l.Columns
	f.Bricks.Rows = l.Rows
	f.Bricks.SizingRows = l.SizingRows
	f.Bricks.Margin = l.Margin
	f.Bricks.Gap = l.Gap
	f.Paddle.Width = l.PaddleWidth
	f.Paddle.Height = l.PaddleHeight
	f.Paddle.Step = l.PaddleStep
	f.Paddle.Rule = game.PaddleForceUp.String()
	f.Ball.Radius = l.BallRadius
	f.Ball.SpeedX = l.BallSpeedX
	f.Ball.SpeedY = l.BallSpeedY
	f.Ball.Lift = l.BallLift
	f.Palette.Brick = "#ffa500"
	f.Palette.Paddle = "#008000"
	f.Palette.Ball = "#f0f0f0"
	f.Loop.FPS = TargetFPS
	f.Loop.KeyHold = KeyHold.String()
	f.Loop.IdleTimeout = IdleTimeout.String()
	f.Loop.Renderer = RendererANSI
	f.Terminal.MaxWidth = MaxTermWidth
	f.Terminal.MaxHeight = MaxTermHeight
	f.Log.Level = "info"
	return f
}

// Default returns the default configuration.
func Default() Config {
	c, err := DefaultFile().Resolve()
	if err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return c
}

// Load builds the configuration from defaults, the TOML file at path (if
// path is not empty) and the environment.
func Load(path string) (Config, error) {
	f := DefaultFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, &f); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	f.Log.Level = GetEnv(EnvLogLevel, f.Log.Level)
	f.Loop.Renderer = GetEnv(EnvRenderer, f.Loop.Renderer)
	f.Paddle.Rule = GetEnv(EnvPaddleRule, f.Paddle.Rule)

	return f.Resolve()
}

// Decode parses TOML text on top of the defaults. Environment is ignored.
func Decode(data string) (Config, error) {
	f := DefaultFile()
	if _, err := toml.Decode(data, &f); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return f.Resolve()
}

// Resolve converts and validates the file values.
func (f File) Resolve() (Config, error) {
	c := Config{
		Layout: game.Layout{
			Width:        f.Surface.Width,
			Height:       f.Surface.Height,
			Margin:       f.Bricks.Margin,
			Gap:          f.Bricks.Gap,
			Columns:      f.Bricks.Columns,
			Rows:         f.Bricks.Rows,
			SizingRows:   f.Bricks.SizingRows,
			PaddleWidth:  f.Paddle.Width,
			PaddleHeight: f.Paddle.Height,
			PaddleStep:   f.Paddle.Step,
			BallRadius:   f.Ball.Radius,
			BallSpeedX:   f.Ball.SpeedX,
			BallSpeedY:   f.Ball.SpeedY,
			BallLift:     f.Ball.Lift,
		},
		FPS:           f.Loop.FPS,
		Renderer:      f.Loop.Renderer,
		LogLevel:      f.Log.Level,
		MaxTermWidth:  f.Terminal.MaxWidth,
		MaxTermHeight: f.Terminal.MaxHeight,
	}

	var err error
	if c.PaddleRule, err = game.ParsePaddleRule(f.Paddle.Rule); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if c.KeyHold, err = parseDuration("key_hold", f.Loop.KeyHold); err != nil {
		return Config{}, err
	}
	if c.IdleTimeout, err = parseDuration("idle_timeout", f.Loop.IdleTimeout); err != nil {
		return Config{}, err
	}

	if c.Palette.Brick, err = parseColor("brick", f.Palette.Brick); err != nil {
		return Config{}, err
	}
	if c.Palette.Paddle, err = parseColor("paddle", f.Palette.Paddle); err != nil {
		return Config{}, err
	}
	if c.Palette.Ball, err = parseColor("ball", f.Palette.Ball); err != nil {
		return Config{}, err
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks that the layout is playable and the loop settings are sane.
func (c Config) Validate() error {
	if err := ValidateLayout(c.Layout); err != nil {
		return err
	}
	if c.FPS <= 0 || c.FPS > MaxFPS {
		return fmt.Errorf("%w: fps must be in 1..%d, got %d", ErrInvalidValue, MaxFPS, c.FPS)
	}
	if c.KeyHold <= 0 {
		return fmt.Errorf("%w: key_hold must be positive", ErrInvalidValue)
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("%w: idle_timeout must not be negative", ErrInvalidValue)
	}
	if c.Renderer != RendererANSI && c.Renderer != RendererTcell {
		return fmt.Errorf("%w: unknown renderer %q", ErrInvalidValue, c.Renderer)
	}
	if c.MaxTermWidth <= 0 || c.MaxTermHeight <= 0 {
		return fmt.Errorf("%w: terminal limits must be positive", ErrInvalidValue)
	}
	return nil
}

// ValidateLayout rejects layouts whose bricks, paddle or ball cannot fit.
func ValidateLayout(l game.Layout) error {
	switch {
	case l.Width <= 0 || l.Height <= 0:
		return fmt.Errorf("%w: surface %vx%v", ErrInvalidLayout, l.Width, l.Height)
	case l.Columns <= 0 || l.Rows <= 0 || l.SizingRows <= 0:
		return fmt.Errorf("%w: grid %dx%d sized for %d rows", ErrInvalidLayout, l.Columns, l.Rows, l.SizingRows)
	case l.Margin < 0 || l.Gap < 0:
		return fmt.Errorf("%w: negative margin or gap", ErrInvalidLayout)
	case l.BrickWidth() <= 0 || l.BrickHeight() <= 0:
		return fmt.Errorf("%w: bricks do not fit, size %vx%v", ErrInvalidLayout, l.BrickWidth(), l.BrickHeight())
	case l.PaddleWidth <= 0 || l.PaddleHeight <= 0 || l.PaddleWidth > l.Width:
		return fmt.Errorf("%w: paddle %vx%v on a %v wide surface", ErrInvalidLayout, l.PaddleWidth, l.PaddleHeight, l.Width)
	case l.PaddleStep < 0:
		return fmt.Errorf("%w: negative paddle step", ErrInvalidLayout)
	case l.BallRadius <= 0:
		return fmt.Errorf("%w: ball radius %v", ErrInvalidLayout, l.BallRadius)
	}

	gridBottom := l.Margin + float64(l.Rows)*(l.BrickHeight()+l.Gap) - l.Gap
	if gridBottom >= l.PaddleTop() {
		return fmt.Errorf("%w: brick grid bottom %v reaches the paddle at %v", ErrInvalidLayout, gridBottom, l.PaddleTop())
	}
	return nil
}

func parseDuration(name, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidValue, name, err)
	}
	return d, nil
}

func parseColor(name, s string) (game.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return game.Color{}, fmt.Errorf("%w: %s %q: %v", ErrInvalidColor, name, s, err)
	}
	r, g, b := c.RGB255()
	return game.Color{R: r, G: g, B: b}, nil
}
