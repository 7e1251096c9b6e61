package field

import (
	"sync"

	"github.com/pkg/errors"
)

var (
	//ErrInvalidSize is the cause of the construction error for non-positive dimensions
	ErrInvalidSize = errors.New("field size must be positive")
	//ErrOutOfBounds is the cause of the error returned by strict queries outside the field
	ErrOutOfBounds = errors.New("out of the field size")
)

//Field is the toroidal Game of Life grid
//the field is not safe for concurrent use, the caller serializes Advance and the edits
type Field struct {
	width  int
	height int
	rows   [][]Cell
	//work areas of AdvanceParallel, allocated on the first call for the given workers count
	workers int
	bands   []band
	next    [][]bool
}

//New allocates width*height dead cells, every cell is marked as changed
func New(width int, height int) (*Field, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "can't create %v x %v field", width, height)
	}
	f := Field{width: width, height: height, rows: make([][]Cell, height)}
	b := make([]Cell, width*height)
	for i := range b {
		b[i] = newCell()
	}
	for y := range f.rows {
		start := width * y
		f.rows[y] = b[start : start+width : start+width]
	}
	return &f, nil
}

//Width returns the field width
func (f *Field) Width() int {
	return f.width
}

//Height returns the field height
func (f *Field) Height() int {
	return f.height
}

//Advance does one generation
//the intent phase reads committed states only, all cells are committed after it
func (f *Field) Advance() {
	for y := range f.rows {
		for x := range f.rows[y] {
			c := &f.rows[y][x]
			switch n := f.liveNeighbours(x, y); {
			case n < 2 || n > 3:
				c.MakeDead()
			case n == 3:
				c.MakeAlive()
			}
		}
	}
	f.commit()
}

//AdvanceParallel does the same as Advance, the intent phase is split into row bands
//each band is calculated by its own goroutine into a private buffer,
//the buffers are applied and committed after all workers are done
func (f *Field) AdvanceParallel(workers int) {
	if workers <= 1 || f.height < 2 {
		f.Advance()
		return
	}
	if f.workers != workers {
		f.prepareBands(workers)
	}
	var wg sync.WaitGroup
	for i := range f.bands {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f.bandNextState(f.bands[i], f.next[i])
		}(i)
	}
	wg.Wait()
	for i, b := range f.bands {
		for k, alive := range f.next[i] {
			f.rows[b.y1+k/f.width][k%f.width].SetIntent(alive)
		}
	}
	f.commit()
}

//State returns the committed state of the cell at x,y
func (f *Field) State(x int, y int) (bool, error) {
	if !f.contains(x, y) {
		return false, errors.Wrapf(ErrOutOfBounds, "read at %v,%v of %v x %v", x, y, f.width, f.height)
	}
	return f.rows[y][x].IsAlive(), nil
}

//Changed reports whether the cell at x,y flipped on its last commit
func (f *Field) Changed(x int, y int) (bool, error) {
	if !f.contains(x, y) {
		return false, errors.Wrapf(ErrOutOfBounds, "read at %v,%v of %v x %v", x, y, f.width, f.height)
	}
	return f.rows[y][x].HasChanged(), nil
}

//SetState sets and immediately commits the state of one cell
//coordinates outside the field are ignored
func (f *Field) SetState(alive bool, x int, y int) {
	if !f.contains(x, y) {
		return
	}
	c := &f.rows[y][x]
	c.SetIntent(alive)
	c.Commit()
}

//Toggle inverses the cell at x,y, coordinates outside the field are ignored
func (f *Field) Toggle(x int, y int) {
	alive, err := f.State(x, y)
	if err != nil {
		return
	}
	f.SetState(!alive, x, y)
}

//Clear kills all cells
func (f *Field) Clear() {
	f.Walk(func(x int, y int, _ Cell) {
		f.SetState(false, x, y)
	})
}

//LiveCells calculates the count of live cells
func (f *Field) LiveCells() int {
	n := 0
	f.Walk(func(_ int, _ int, c Cell) {
		if c.IsAlive() {
			n++
		}
	})
	return n
}

//Walk calls fn for each cell in the row-major order
func (f *Field) Walk(fn func(x int, y int, c Cell)) {
	for y := range f.rows {
		for x := range f.rows[y] {
			fn(x, y, f.rows[y][x])
		}
	}
}

func (f *Field) contains(x int, y int) bool {
	return x >= 0 && y >= 0 && x < f.width && y < f.height
}

func (f *Field) commit() {
	for y := range f.rows {
		for x := range f.rows[y] {
			f.rows[y][x].Commit()
		}
	}
}

//liveNeighbours counts the live cells around x,y with the wrap around the edges
//the rule doesn't distinguish counts above 3, so the counting stops there
func (f *Field) liveNeighbours(x int, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		ny := (y + dy + f.height) % f.height
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := (x + dx + f.width) % f.width
			if f.rows[ny][nx].IsAlive() {
				n++
				if n > 3 {
					return n
				}
			}
		}
	}
	return n
}

//band is the range of rows [y1, y2] calculated by one worker
type band struct {
	y1 int
	y2 int
}

//splitRows splits height rows into at most workers bands of nearly equal size
func splitRows(height int, workers int) []band {
	if workers > height {
		workers = height
	}
	rowsPerWorker := height / workers
	if rowsPerWorker*workers < height {
		rowsPerWorker++
	}
	bands := make([]band, 0, workers)
	for y1 := 0; y1 < height; y1 += rowsPerWorker {
		y2 := y1 + rowsPerWorker - 1
		if y2 > height-1 {
			y2 = height - 1
		}
		bands = append(bands, band{y1, y2})
	}
	return bands
}

func (f *Field) prepareBands(workers int) {
	f.workers = workers
	f.bands = splitRows(f.height, workers)
	f.next = make([][]bool, len(f.bands))
	for i, b := range f.bands {
		f.next[i] = make([]bool, (b.y2-b.y1+1)*f.width)
	}
}

//bandNextState calculates the next state of the band's cells into next without touching the field
func (f *Field) bandNextState(b band, next []bool) {
	k := 0
	for y := b.y1; y <= b.y2; y++ {
		for x := 0; x < f.width; x++ {
			n := f.liveNeighbours(x, y)
			next[k] = n == 3 || (n == 2 && f.rows[y][x].IsAlive())
			k++
		}
	}
}
