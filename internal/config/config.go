// Package config assembles motionmark run settings from defaults, an
// optional TOML file and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/gg"
	"github.com/gogpu/motionmark"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// DefaultFrames is the headless frame budget when neither frames nor
// duration is given. A duration alone runs unbounded in frames.
const DefaultFrames = 300

// Duration is a time.Duration that decodes from TOML strings like "10s".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config holds everything a run needs.
type Config struct {
	Complexity int      `toml:"complexity"`
	Width      int      `toml:"width"`
	Height     int      `toml:"height"`
	Seed       uint64   `toml:"seed"`
	Headless   bool     `toml:"headless"`
	Frames     int      `toml:"frames"`
	Duration   Duration `toml:"duration"`
	Rasterizer string   `toml:"rasterizer"`
	PNG        string   `toml:"png"`
	SVG        string   `toml:"svg"`
	Overlay    bool     `toml:"overlay"`
	Verbose    bool     `toml:"verbose"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Complexity: motionmark.DefaultComplexity,
		Width:      motionmark.DefaultWidth,
		Height:     motionmark.DefaultHeight,
		Rasterizer: gg.RasterizerAuto.String(),
		Overlay:    true,
	}
}

// RasterizerMode returns the parsed Rasterizer field.
// Validate guarantees it parses.
func (c Config) RasterizerMode() gg.RasterizerMode {
	m, _ := ParseRasterizer(c.Rasterizer)
	return m
}

// FrameBudget returns the headless frame limit, 0 meaning unlimited.
// With neither Frames nor Duration set it is DefaultFrames.
func (c Config) FrameBudget() int {
	if c.Frames == 0 && c.Duration == 0 {
		return DefaultFrames
	}
	return c.Frames
}

// RunDuration returns Duration as a time.Duration.
func (c Config) RunDuration() time.Duration {
	return time.Duration(c.Duration)
}

// Validate clamps the complexity level and rejects settings a run cannot
// use.
func (c *Config) Validate() error {
	c.Complexity = motionmark.ClampComplexity(c.Complexity)
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: viewport %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Frames < 0 {
		return fmt.Errorf("%w: frames %d is negative", ErrInvalidConfig, c.Frames)
	}
	if c.Duration < 0 {
		return fmt.Errorf("%w: duration %s is negative", ErrInvalidConfig, c.RunDuration())
	}
	if _, err := ParseRasterizer(c.Rasterizer); err != nil {
		return err
	}
	return nil
}

var rasterizerModes = []gg.RasterizerMode{
	gg.RasterizerAuto,
	gg.RasterizerAnalytic,
	gg.RasterizerSparseStrips,
	gg.RasterizerTileCompute,
	gg.RasterizerSDF,
}

// ParseRasterizer maps a mode name such as "SparseStrips" to its
// gg.RasterizerMode. Matching ignores case; the empty string is Auto.
func ParseRasterizer(name string) (gg.RasterizerMode, error) {
	if name == "" {
		return gg.RasterizerAuto, nil
	}
	for _, m := range rasterizerModes {
		if strings.EqualFold(name, m.String()) {
			return m, nil
		}
	}
	return gg.RasterizerAuto, fmt.Errorf("%w: unknown rasterizer %q", ErrInvalidConfig, name)
}

// ReadFile decodes a TOML file over cfg. Keys missing from the file leave
// cfg untouched; unknown keys are an error.
func ReadFile(cfg *Config, path string) error {
	f, err := os.Open(path) //nolint:gosec // path comes from the user
	if err != nil {
		return fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	if err := Decode(cfg, f); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

// Decode reads TOML from r over cfg.
func Decode(cfg *Config, r io.Reader) error {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strict.String())
		}
		return err
	}
	return nil
}

// Load parses args (without the program name). A -config file is applied
// over the defaults first, then every flag present on the command line.
// Flags left at their default never override the file.
func Load(name string, args []string, output io.Writer) (Config, error) {
	def := Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}

	var (
		flagCfg    = def
		configPath string
	)
	fs.StringVar(&configPath, "config", "", "TOML settings file")
	fs.IntVar(&flagCfg.Complexity, "complexity", def.Complexity,
		fmt.Sprintf("complexity level %d-%d", motionmark.MinComplexity, motionmark.MaxComplexity))
	fs.IntVar(&flagCfg.Width, "width", def.Width, "viewport width")
	fs.IntVar(&flagCfg.Height, "height", def.Height, "viewport height")
	fs.Uint64Var(&flagCfg.Seed, "seed", 0, "random seed (0 picks one from the clock)")
	fs.BoolVar(&flagCfg.Headless, "headless", def.Headless, "render offscreen without a window")
	fs.IntVar(&flagCfg.Frames, "frames", def.Frames, fmt.Sprintf("headless frame limit (%d when neither -frames nor -duration is set)", DefaultFrames))
	fs.DurationVar((*time.Duration)(&flagCfg.Duration), "duration", 0, "headless run time limit")
	fs.StringVar(&flagCfg.Rasterizer, "rasterizer", def.Rasterizer, "Auto, Analytic, SparseStrips, TileCompute or SDF")
	fs.StringVar(&flagCfg.PNG, "png", "", "write the last headless frame as PNG")
	fs.StringVar(&flagCfg.SVG, "svg", "", "write the last headless frame as SVG")
	fs.BoolVar(&flagCfg.Overlay, "overlay", def.Overlay, "draw the status line over the scene")
	fs.BoolVar(&flagCfg.Verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("%w: unexpected argument %q", ErrInvalidConfig, fs.Arg(0))
	}

	cfg := def
	if configPath != "" {
		if err := ReadFile(&cfg, configPath); err != nil {
			return Config{}, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		applyFlag(&cfg, &flagCfg, f.Name)
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFlag(dst, src *Config, name string) {
	switch name {
	case "complexity":
		dst.Complexity = src.Complexity
	case "width":
		dst.Width = src.Width
	case "height":
		dst.Height = src.Height
	case "seed":
		dst.Seed = src.Seed
	case "headless":
		dst.Headless = src.Headless
	case "frames":
		dst.Frames = src.Frames
	case "duration":
		dst.Duration = src.Duration
	case "rasterizer":
		dst.Rasterizer = src.Rasterizer
	case "png":
		dst.PNG = src.PNG
	case "svg":
		dst.SVG = src.SVG
	case "overlay":
		dst.Overlay = src.Overlay
	case "v":
		dst.Verbose = src.Verbose
	}
}
