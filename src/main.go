package main

import (
	"fmt"
	"github.com/integrii/flaggy"
	"gofl/src/config"
	"gofl/src/universe"
	"gofl/src/view"
	"os"
	"sort"
	"strings"
)

//DefHeadlessSteps limits the non-interactive run when maxSteps is not set
const DefHeadlessSteps = 1000

func main() {
	s := initSettings()

	uo := s.UniverseOptions()
	if !s.Interactive && !s.Window {
		uo.StopWhenStable = true
		if uo.MaxSteps == 0 {
			uo.MaxSteps = DefHeadlessSteps
		}
	}

	u, err := universe.NewGame(uo, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer u.Close()

	if s.Random {
		u.SettleWithRandomData()
	} else {
		u.SettleTemplate(s.Template)
	}

	var v universe.Viewer
	switch {
	case s.Window:
		v = view.NewWindow(s.WindowWidth, s.WindowHeight)
	case s.Interactive:
		t, err := view.NewViewTerminal()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		v = t
	default:
		v = view.NewConsoleOut()
	}
	u.RegisterViewer(v)
	v.Start()
}

func initSettings() *config.Settings {
	s := config.DefaultSettings()
	templates := []string{
		universe.TemplateBlinker,
		universe.TemplateBlock,
		universe.TemplateGlider,
		universe.TemplateSample,
	}
	sort.Strings(templates)

	p := flaggy.DefaultParser
	p.Name = "gofl"
	p.Description = "Conway's Game of Life on the torus. Templates: " + strings.Join(templates, ", ")
	p.ShowHelpOnUnexpected = true
	s.Bind(p)
	flaggy.Parse()

	if err := s.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return &s
}
