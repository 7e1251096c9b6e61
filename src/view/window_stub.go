//go:build !ebiten

package view

import (
	"gofl/src/universe"
	"log"
)

//Window is a placeholder of the windowed front end in the build without the ebiten tag
type Window struct{}

//NewWindow returns the placeholder, Start reports that the ebiten build tag is required
func NewWindow(int, int) *Window {
	return &Window{}
}

func (w *Window) Register(universe.Universe) {}

func (w *Window) Refresh() {}

func (w *Window) Start() {
	log.Println("The window UI requires the ebiten build tag, re-run with `go run -tags ebiten ./src`")
}
