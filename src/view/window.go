//go:build ebiten

package view

import (
	"errors"
	"gofl/src/universe"
	"image"
	"image/color"
	"log"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	windowTitle       = "Game of Life"
	windowTitlePaused = "Game of Life (Paused)"
)

var (
	backgroundColor = color.RGBA{152, 255, 152, 255}
	cellColor       = color.RGBA{227, 11, 92, 255}
)

//Window is the windowed front end, implements universe.Viewer and ebiten.Game
type Window struct {
	u      universe.Universe
	width  int
	height int
	cellW  int
	cellH  int

	canvas *ebiten.Image
	drawn  [][]bool //the cell states painted on the canvas
	dirty  atomic.Bool
	paused bool
}

//NewWindow creates the window of the given size in pixels
func NewWindow(width int, height int) *Window {
	return &Window{width: width, height: height, paused: true}
}

func (w *Window) Register(u universe.Universe) {
	w.u = u
	o := u.Options()
	w.cellW = w.width / o.Width
	w.cellH = w.height / o.Height
	w.dirty.Store(true)
}

//Refresh marks the field to be redrawn on the next frame
func (w *Window) Refresh() {
	w.dirty.Store(true)
}

//Start opens the window and returns when it is closed
func (w *Window) Start() {
	ebiten.SetWindowSize(w.width, w.height)
	ebiten.SetWindowTitle(windowTitlePaused)
	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Println(err)
	}
}

//Update handles the input
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		w.u.Pause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		w.u.Step()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		w.u.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		w.u.SettleWithRandomData()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		w.u.Slowdown()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		w.u.Speedup()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		//the pointer at the right or bottom border can map outside the field, the universe ignores it
		x, y := ebiten.CursorPosition()
		if x >= 0 && y >= 0 {
			w.u.InverseCell(x/w.cellW, y/w.cellH)
		}
	}

	paused := w.u.Status().RunningMode != universe.RunningStateRun
	if paused != w.paused {
		w.paused = paused
		if paused {
			ebiten.SetWindowTitle(windowTitlePaused)
		} else {
			ebiten.SetWindowTitle(windowTitle)
		}
	}
	return nil
}

//Draw repaints the cells which flipped since the last frame
func (w *Window) Draw(screen *ebiten.Image) {
	if w.canvas == nil {
		w.canvas = ebiten.NewImage(w.width, w.height)
		w.canvas.Fill(backgroundColor)
	}
	if w.dirty.Swap(false) {
		w.paint(w.u.Area())
	}
	screen.DrawImage(w.canvas, &ebiten.DrawImageOptions{})
}

//Layout returns the logical screen size
func (w *Window) Layout(_, _ int) (int, int) {
	return w.width, w.height
}

//paint draws the changed cells onto the canvas
//several generations can pass between two frames, so the cells are compared with the painted state too
func (w *Window) paint(a universe.Area) {
	full := w.drawn == nil
	if full {
		w.drawn = make([][]bool, a.Height)
		for y := range w.drawn {
			w.drawn[y] = make([]bool, a.Width)
		}
	}
	for y, row := range a.Entities {
		for x, c := range row {
			alive := c.IsAlive()
			if !full && !c.HasChanged() && alive == w.drawn[y][x] {
				continue
			}
			w.drawn[y][x] = alive
			rect := image.Rect(x*w.cellW, y*w.cellH, (x+1)*w.cellW, (y+1)*w.cellH)
			cell := w.canvas.SubImage(rect).(*ebiten.Image)
			if alive {
				cell.Fill(cellColor)
			} else {
				cell.Fill(backgroundColor)
			}
		}
	}
}
