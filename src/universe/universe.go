package universe

import (
	"gofl/src/field"
	"math/rand"
	"sync"
	"time"
)

//Area is the copy of the field taken for the viewers
type Area struct {
	Width    int
	Height   int
	Entities [][]field.Cell
}

//Options represents the Universe's configurable options
type Options struct {
	Width          int
	Height         int
	TickRate       *TickRate //shared with the input handlers, nil means DefTickRate
	MaxSteps       int       //0 is unlimited
	StopWhenStable bool      //finish the run when the field dies out or stops changing
	Engine         string
	Workers        int   //goroutines of the parallel engine
	Seed           int64 //seed of the random data, 0 uses the current time
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	ChangedCells  int
	TickRate      int
	IterationTime time.Duration
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(u Universe)
	Start()
}

//Universe is the interface used by the viewers to read and control the simulation
type Universe interface {
	Status() Status
	Options() Options
	Area() Area
	StateCh() chan Status
	AddTemplate(tmpl Template)
	Templates() []string
	SettleTemplate(name string)
	SettleWithRandomData()
	Settle(vc [][]int)
	InverseCell(x int, y int)
	RegisterViewer(v Viewer)
	Run()
	Stop()
	Pause()
	Step()
	Clear()
	Speedup()
	Slowdown()
	Close()
}

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name        string  //template name
	Descr       string  //template descr
	Coordinates [][]int //array of [x,y] coordinates
}

//The universe running status at the concrete moment
type RunningState int

//default options
const (
	DefTickRate = 3
	DefMaxSteps = 0
	DefWidth    = 25
	DefHeight   = 25
	DefWorkers  = 4
)

const (
	RunningStateManual   = 0x0
	RunningStateStep     = 0x1
	RunningStateRun      = 0x2
	RunningStateFinished = 0x3
)

//DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Width:    DefWidth,
		Height:   DefHeight,
		TickRate: NewTickRate(DefTickRate),
		MaxSteps: DefMaxSteps,
		Engine:   EngineSerial,
		Workers:  DefWorkers,
	}
}

//Game is the universe's engine, implements Universe interface
//it owns the field and serializes all access to it through the main loop,
//so a generation is never mixed with the user's edits
type Game struct {
	options Options
	state   struct {
		Status
		runID int
		sync.Mutex
	}
	field struct {
		*field.Field
		sync.Mutex
	}
	advance   func()
	rnd       *rand.Rand
	stateCh   chan Status
	views     struct {
		list []Viewer
		sync.Mutex
	}
	templates map[string]Template
	controlCh chan func()
	closeCh   chan struct{}
	closeOnce sync.Once
}

//NewGame creates the Game instance and starts its main loop
//stateCh is optional, when it is set the consumer must read it
func NewGame(o *Options, stateCh chan Status) (*Game, error) {
	if o == nil {
		d := DefaultOptions()
		o = &d
	}
	f, err := field.New(o.Width, o.Height)
	if err != nil {
		return nil, err
	}
	advance, err := newAdvancer(f, *o)
	if err != nil {
		return nil, err
	}

	u := Game{
		options:   *o,
		advance:   advance,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan struct{}),
		stateCh:   stateCh,
		templates: map[string]Template{},
	}
	if u.options.TickRate == nil {
		u.options.TickRate = NewTickRate(DefTickRate)
	}
	seed := o.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	u.rnd = rand.New(rand.NewSource(seed))
	u.field.Field = f
	u.state.TickRate = u.options.TickRate.Get()
	for _, tmpl := range builtinTemplates() {
		u.AddTemplate(tmpl)
	}

	go u.mainLoop()
	return &u, nil
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (u *Game) AddTemplate(tmpl Template) {
	u.field.Lock()
	u.templates[tmpl.Name] = tmpl
	u.field.Unlock()
}

//Templates returns the names of the known templates
func (u *Game) Templates() []string {
	u.field.Lock()
	defer u.field.Unlock()
	names := make([]string, 0, len(u.templates))
	for name := range u.templates {
		names = append(names, name)
	}
	return names
}

//Settle settles the universe with data, returns immediately
//vc - array of x,y coordinates, the coordinates outside the field are skipped
func (u *Game) Settle(vc [][]int) {
	u.exec(func() {
		u.settle(vc)
	})
}

//SettleTemplate populates the universe with the seeding template, returns immediately
//the unknown template name is ignored
func (u *Game) SettleTemplate(name string) {
	u.exec(func() {
		u.field.Lock()
		tmpl, ok := u.templates[name]
		u.field.Unlock()
		if ok {
			u.settle(tmpl.Coordinates)
		}
	})
}

//SettleWithRandomData clears the universe and populates it with random data, returns immediately
func (u *Game) SettleWithRandomData() {
	u.exec(func() {
		u.clear()
		u.field.Lock()
		u.field.Walk(func(x int, y int, _ field.Cell) {
			u.field.SetState(u.rnd.Intn(2) == 1, x, y)
		})
		u.field.Unlock()
		u.updateCounters()
		u.refreshView()
	})
}

//InverseCell inverses the cell state at point x, y, returns immediately
//the coordinates outside the field are ignored
func (u *Game) InverseCell(x int, y int) {
	u.exec(func() {
		u.field.Lock()
		u.field.Toggle(x, y)
		u.field.Unlock()
		u.updateCounters()
		u.refreshView()
	})
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
func (u *Game) RegisterViewer(v Viewer) {
	v.Register(u)
	u.views.Lock()
	u.views.list = append(u.views.list, v)
	u.views.Unlock()
}

//StateCh returns the channel with the universe's status updates
func (u *Game) StateCh() chan Status {
	return u.stateCh
}

//Status returns current universe status represented by Status struct
func (u *Game) Status() Status {
	u.state.Lock()
	defer u.state.Unlock()
	st := u.state.Status
	st.TickRate = u.options.TickRate.Get()
	return st
}

//Options returns current universe configuration represented by Options struct
func (u *Game) Options() Options {
	return u.options
}

//Area returns the copy of the current universe area (field where cells is living)
func (u *Game) Area() Area {
	u.field.Lock()
	defer u.field.Unlock()
	a := createArea(u.field.Width(), u.field.Height())
	u.field.Walk(func(x int, y int, c field.Cell) {
		a.Entities[y][x] = c
	})
	return a
}

//Run starts the universe simulation, returns immediately
func (u *Game) Run() {
	u.exec(u.run)
}

//Stop stops the universe simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (u *Game) Stop() {
	u.exec(u.stop)
}

//Pause switches between running and stopped modes, returns immediately
func (u *Game) Pause() {
	u.exec(func() {
		if u.mode() == RunningStateRun {
			u.stop()
		} else {
			u.run()
		}
	})
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (u *Game) Step() {
	u.exec(u.step)
}

//Clear clears the universe (kill all cells and reset all counters), returns immediately
//the Status struct will be written to the stateCh on finish
func (u *Game) Clear() {
	u.exec(u.clear)
}

//Speedup doubles the tick rate
func (u *Game) Speedup() {
	u.options.TickRate.Speedup()
	u.refreshView()
}

//Slowdown halves the tick rate
func (u *Game) Slowdown() {
	u.options.TickRate.Slowdown()
	u.refreshView()
}

//Close stops the main loop and the running cycle, returns immediately
func (u *Game) Close() {
	u.closeOnce.Do(func() {
		close(u.closeCh)
	})
}

//exec passes the command to the main loop, the command is dropped after Close
func (u *Game) exec(cmd func()) {
	select {
	case u.controlCh <- cmd:
	case <-u.closeCh:
	}
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (u *Game) mainLoop() {
	for {
		select {
		case cmd := <-u.controlCh:
			cmd()
		case <-u.closeCh:
			return
		}
	}
}

//settle makes the cells at the given coordinates alive
func (u *Game) settle(vc [][]int) {
	u.field.Lock()
	for _, v := range vc {
		if len(v) < 2 {
			continue
		}
		u.field.SetState(true, v[0], v[1])
	}
	u.field.Unlock()
	u.updateCounters()
	u.refreshView()
}

//updateCounters recalculates the live cells after the edits
func (u *Game) updateCounters() {
	u.field.Lock()
	live := u.field.LiveCells()
	u.field.Unlock()
	u.state.Lock()
	u.state.LiveCells = live
	u.state.Unlock()
}

func (u *Game) mode() RunningState {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.RunningMode
}

//switchRunningState switch the state of the universe to RunningState
//also writes the new state to the stateCh to signal upper control software
func (u *Game) switchRunningState(to RunningState) {
	u.state.Lock()
	u.state.RunningMode = to
	st := u.state.Status
	u.state.Unlock()
	st.TickRate = u.options.TickRate.Get()
	if u.stateCh != nil {
		select {
		case u.stateCh <- st:
		case <-u.closeCh:
		}
	}
}

//run starts the universe simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (u *Game) run() {
	if u.mode() == RunningStateRun {
		return
	}
	u.state.Lock()
	u.state.runID++
	id := u.state.runID
	u.state.Unlock()
	u.switchRunningState(RunningStateRun)
	u.refreshView()
	go u.runLoop(id)
}

//runLoop does one step per tick while the run with given id is active
//the tick rate is read on each tick, so the speed changes apply immediately
func (u *Game) runLoop(id int) {
	done := make(chan struct{}, 1)
	for {
		timer := time.NewTimer(u.options.TickRate.Interval())
		select {
		case <-timer.C:
		case <-u.closeCh:
			timer.Stop()
			return
		}
		if !u.isActiveRun(id) {
			return
		}
		u.exec(func() {
			//the run could be stopped while the command was waiting in the queue
			if u.isActiveRun(id) {
				u.step()
			}
			done <- struct{}{}
		})
		select {
		case <-done:
		case <-u.closeCh:
			return
		}
	}
}

func (u *Game) isActiveRun(id int) bool {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.runID == id && u.state.RunningMode == RunningStateRun
}

//stop stops the universe running cycle
func (u *Game) stop() {
	if u.mode() == RunningStateRun {
		u.switchRunningState(RunningStateManual)
		u.refreshView()
	}
}

//step does the new one state calculation for entire universe
func (u *Game) step() {
	rm := u.mode()
	if rm == RunningStateFinished {
		rm = RunningStateManual
	}
	if u.options.MaxSteps != 0 && u.Status().IterationNum >= u.options.MaxSteps {
		u.switchRunningState(RunningStateFinished)
		u.refreshView()
		return
	}
	u.switchRunningState(RunningStateStep)

	start := time.Now()
	u.field.Lock()
	u.advance()
	live, changed := 0, 0
	u.field.Walk(func(_ int, _ int, c field.Cell) {
		if c.IsAlive() {
			live++
		}
		if c.HasChanged() {
			changed++
		}
	})
	u.field.Unlock()

	u.state.Lock()
	u.state.IterationNum++
	u.state.LiveCells = live
	u.state.ChangedCells = changed
	u.state.IterationTime = time.Since(start)
	finished := u.options.MaxSteps != 0 && u.state.IterationNum >= u.options.MaxSteps
	if u.options.StopWhenStable && (live == 0 || changed == 0) {
		finished = true
	}
	u.state.Unlock()

	if finished {
		u.switchRunningState(RunningStateFinished)
	} else {
		u.switchRunningState(rm)
	}
	u.refreshView()
}

//clear clears the universe data, reset all counters
func (u *Game) clear() {
	u.field.Lock()
	u.field.Clear()
	u.field.Unlock()

	u.state.Lock()
	u.state.IterationNum = 0
	u.state.LiveCells = 0
	u.state.ChangedCells = 0
	u.state.IterationTime = 0
	u.state.Unlock()
	u.switchRunningState(RunningStateManual)
	u.refreshView()
}

//refreshView calls Refresh event for all registered views
func (u *Game) refreshView() {
	u.views.Lock()
	views := append([]Viewer(nil), u.views.list...)
	u.views.Unlock()
	for _, v := range views {
		v.Refresh()
	}
}

//createArea allocate the new area
func createArea(width int, height int) Area {
	area := Area{Width: width, Height: height, Entities: make([][]field.Cell, height)}
	b := make([]field.Cell, width*height)
	for i := range area.Entities {
		start := width * i
		area.Entities[i] = b[start : start+width : start+width]
	}
	return area
}
