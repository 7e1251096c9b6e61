package config

import (
	"gofl/src/universe"
	"runtime"

	"github.com/integrii/flaggy"
	"github.com/pkg/errors"
)

//default settings
const (
	DefFieldWidth   = 25
	DefFieldHeight  = 25
	DefWindowWidth  = 800
	DefWindowHeight = 800
	DefTickRate     = 3
)

//limits of the settings values
const (
	MaxFieldSize  = 4096
	MaxWindowSize = 8192
	MaxTickRate   = 128
)

//ErrInvalidParam is the cause of all validation errors
var ErrInvalidParam = errors.New("invalid param value")

//Settings represents the launch configuration
type Settings struct {
	FieldWidth   int
	FieldHeight  int
	WindowWidth  int
	WindowHeight int
	TickRate     int
	MaxSteps     int
	Engine       string
	Workers      int
	Template     string
	Random       bool
	Seed         int64
	Interactive  bool
	Window       bool
}

//DefaultSettings returns the settings used when no flags are given
func DefaultSettings() Settings {
	return Settings{
		FieldWidth:   DefFieldWidth,
		FieldHeight:  DefFieldHeight,
		WindowWidth:  DefWindowWidth,
		WindowHeight: DefWindowHeight,
		TickRate:     DefTickRate,
		Engine:       universe.EngineSerial,
		Workers:      runtime.NumCPU(),
		Template:     universe.TemplateSample,
	}
}

//Bind registers the settings flags on the parser
func (s *Settings) Bind(p *flaggy.Parser) {
	p.Int(&s.FieldWidth, "x", "fieldwidth", "Width of the field in cells")
	p.Int(&s.FieldHeight, "y", "fieldheight", "Height of the field in cells")
	p.Int(&s.WindowWidth, "W", "windowwidth", "Width of the window in pixels")
	p.Int(&s.WindowHeight, "H", "windowheight", "Height of the window in pixels")
	p.Int(&s.TickRate, "t", "tickrate", "Generations per second")
	p.Int(&s.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 is unlimited")
	p.String(&s.Engine, "e", "engine", "Engine to use ["+universe.EngineSerial+"|"+universe.EngineParallel+"]")
	p.Int(&s.Workers, "j", "workers", "Goroutines used by the parallel engine")
	p.String(&s.Template, "p", "pattern", "Seeding template")
	p.Bool(&s.Random, "r", "random", "Settle with random data")
	p.Int64(&s.Seed, "", "seed", "Seed of the random data, 0 uses the current time")
	p.Bool(&s.Interactive, "n", "interactive", "Start the terminal UI")
	p.Bool(&s.Window, "w", "window", "Start the window UI")
}

//Validate checks the values against the limits
func (s *Settings) Validate() error {
	checks := []struct {
		name     string
		val      int
		min, max int
	}{
		{"fieldwidth", s.FieldWidth, 1, MaxFieldSize},
		{"fieldheight", s.FieldHeight, 1, MaxFieldSize},
		{"windowwidth", s.WindowWidth, s.FieldWidth, MaxWindowSize},
		{"windowheight", s.WindowHeight, s.FieldHeight, MaxWindowSize},
		{"tickrate", s.TickRate, 1, MaxTickRate},
		{"maxSteps", s.MaxSteps, 0, int(^uint(0) >> 1)},
		{"workers", s.Workers, 1, 1024},
	}
	for _, c := range checks {
		if c.val < c.min || c.val > c.max {
			return errors.Wrapf(ErrInvalidParam, "'%s' is %v", c.name, c.val)
		}
	}
	if s.Engine != universe.EngineSerial && s.Engine != universe.EngineParallel {
		return errors.Wrapf(ErrInvalidParam, "'engine' is %v", s.Engine)
	}
	if s.Interactive && s.Window {
		return errors.Wrap(ErrInvalidParam, "'interactive' and 'window' are mutually exclusive")
	}
	return nil
}

//UniverseOptions converts the settings to the universe options
func (s *Settings) UniverseOptions() *universe.Options {
	return &universe.Options{
		Width:    s.FieldWidth,
		Height:   s.FieldHeight,
		TickRate: universe.NewTickRate(s.TickRate),
		MaxSteps: s.MaxSteps,
		Engine:   s.Engine,
		Workers:  s.Workers,
		Seed:     s.Seed,
	}
}
