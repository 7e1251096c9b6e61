package universe

import (
	"gofl/src/field"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
)

var (
	engines = []string{EngineParallel, EngineSerial}
)

func newStateCh() chan Status {
	return make(chan Status, 10)
}

func newUniverseOptions(w int, h int) *Options {
	o := DefaultOptions()
	o.Width = w
	o.Height = h
	o.TickRate = NewTickRate(MaxTickRate)
	o.Seed = 1
	return &o
}

func newGame(t testing.TB, o *Options) *Game {
	u, err := NewGame(o, newStateCh())
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return u
}

//waitMode reads the status channel until the given running mode
func waitMode(t testing.TB, u *Game, mode RunningState) Status {
	timeout := time.After(5 * time.Second)
	for {
		select {
		case st := <-u.StateCh():
			if st.RunningMode == mode {
				return st
			}
		case <-timeout:
			t.Fatalf("timeout waiting for the running mode %v", mode)
		}
	}
}

//flush waits until all queued commands are executed
func flush(u *Game) {
	done := make(chan struct{})
	u.exec(func() { close(done) })
	<-done
}

func liveCoords(a Area) [][2]int {
	var res [][2]int
	for y := range a.Entities {
		for x, c := range a.Entities[y] {
			if c.IsAlive() {
				res = append(res, [2]int{x, y})
			}
		}
	}
	return res
}

func expectArea(t *testing.T, a Area, expects ...[2]int) {
	t.Helper()
	got := liveCoords(a)
	if len(got) != len(expects) {
		t.Fatalf("live cells %v, expected %v", got, expects)
	}
	set := map[[2]int]bool{}
	for _, c := range got {
		set[c] = true
	}
	for _, e := range expects {
		if !set[e] {
			t.Fatalf("live cells %v, expected %v", got, expects)
		}
	}
}

func TestNewGameErrors(t *testing.T) {
	if _, err := NewGame(newUniverseOptions(0, 10), nil); errors.Cause(err) != field.ErrInvalidSize {
		t.Fatalf("zero width: %v", err)
	}
	o := newUniverseOptions(5, 5)
	o.Engine = "gpu"
	if _, err := NewGame(o, nil); errors.Cause(err) != ErrUnknownEngine {
		t.Fatalf("unknown engine: %v", err)
	}
}

func TestTemplates(t *testing.T) {
	u := newGame(t, newUniverseOptions(5, 5))
	defer u.Close()
	u.AddTemplate(Template{"dot", "", [][]int{{0, 0}}})
	names := u.Templates()
	sort.Strings(names)
	expected := []string{TemplateBlinker, TemplateBlock, "dot", TemplateGlider, TemplateSample}
	sort.Strings(expected)
	if len(names) != len(expected) {
		t.Fatalf("templates %v, expected %v", names, expected)
	}
	for i := range names {
		if names[i] != expected[i] {
			t.Fatalf("templates %v, expected %v", names, expected)
		}
	}
	u.SettleTemplate("unknown")
	u.SettleTemplate("dot")
	flush(u)
	expectArea(t, u.Area(), [2]int{0, 0})
}

func TestStepBlinker(t *testing.T) {
	for _, e := range engines {
		t.Run(e, func(t *testing.T) {
			o := newUniverseOptions(5, 5)
			o.Engine = e
			u := newGame(t, o)
			defer u.Close()

			u.SettleTemplate(TemplateBlinker)
			u.Step()
			st := waitMode(t, u, RunningStateManual)
			if st.IterationNum != 1 || st.LiveCells != 3 || st.ChangedCells != 4 {
				t.Fatalf("unexpected status %+v", st)
			}
			expectArea(t, u.Area(), [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})

			u.Step()
			waitMode(t, u, RunningStateManual)
			expectArea(t, u.Area(), [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2})
		})
	}
}

func TestInverseCell(t *testing.T) {
	u := newGame(t, newUniverseOptions(4, 3))
	defer u.Close()

	u.InverseCell(3, 2)
	u.InverseCell(4, 0)
	u.InverseCell(0, 3)
	u.InverseCell(-1, 1)
	flush(u)
	expectArea(t, u.Area(), [2]int{3, 2})
	if st := u.Status(); st.LiveCells != 1 {
		t.Fatalf("live cells %v, expected 1", st.LiveCells)
	}

	u.InverseCell(3, 2)
	flush(u)
	expectArea(t, u.Area())
}

func TestClear(t *testing.T) {
	u := newGame(t, newUniverseOptions(8, 8))
	defer u.Close()

	u.SettleWithRandomData()
	waitMode(t, u, RunningStateManual)
	flush(u)
	if u.Status().LiveCells == 0 {
		t.Fatalf("random data settled no cells")
	}
	u.Step()
	waitMode(t, u, RunningStateManual)

	u.Clear()
	st := waitMode(t, u, RunningStateManual)
	if st.IterationNum != 0 || st.LiveCells != 0 {
		t.Fatalf("unexpected status after clear %+v", st)
	}
	expectArea(t, u.Area())
}

func TestRunMaxSteps(t *testing.T) {
	o := newUniverseOptions(10, 10)
	o.MaxSteps = 5
	u := newGame(t, o)
	defer u.Close()

	u.SettleTemplate(TemplateGlider)
	u.Run()
	st := waitMode(t, u, RunningStateFinished)
	if st.IterationNum != 5 {
		t.Fatalf("finished at iteration %v, expected 5", st.IterationNum)
	}
}

func TestRunStopWhenStable(t *testing.T) {
	o := newUniverseOptions(6, 6)
	o.StopWhenStable = true
	u := newGame(t, o)
	defer u.Close()

	u.SettleTemplate(TemplateBlock)
	u.Run()
	st := waitMode(t, u, RunningStateFinished)
	if st.IterationNum != 1 || st.LiveCells != 4 {
		t.Fatalf("unexpected status %+v", st)
	}
}

func TestPause(t *testing.T) {
	o := newUniverseOptions(6, 6)
	o.TickRate = NewTickRate(20)
	u := newGame(t, o)
	defer u.Close()

	u.SettleTemplate(TemplateBlinker)
	u.Pause()
	waitMode(t, u, RunningStateRun)
	waitMode(t, u, RunningStateStep)
	u.Pause()
	waitMode(t, u, RunningStateManual)
	flush(u)
	if u.Status().RunningMode != RunningStateManual {
		t.Fatalf("universe is still running")
	}
}

type countingViewer struct {
	u       Universe
	refresh atomic.Int32
}

func (v *countingViewer) Refresh()            { v.refresh.Add(1) }
func (v *countingViewer) Register(u Universe) { v.u = u }
func (v *countingViewer) Start()              {}

func TestViewerRefresh(t *testing.T) {
	u := newGame(t, newUniverseOptions(5, 5))
	defer u.Close()

	v := &countingViewer{}
	u.RegisterViewer(v)
	if v.u != u {
		t.Fatalf("viewer is not registered")
	}
	u.InverseCell(1, 1)
	flush(u)
	u.Speedup()
	if v.refresh.Load() != 2 {
		t.Fatalf("refresh called %v times, expected 2", v.refresh.Load())
	}
}

func TestSpeedChange(t *testing.T) {
	o := newUniverseOptions(5, 5)
	o.TickRate = NewTickRate(3)
	u := newGame(t, o)
	defer u.Close()

	u.Speedup()
	if rate := u.Status().TickRate; rate != 6 {
		t.Fatalf("tick rate %v, expected 6", rate)
	}
	u.Slowdown()
	u.Slowdown()
	if rate := o.TickRate.Get(); rate != 1 {
		t.Fatalf("tick rate %v, expected 1", rate)
	}
}

func TestCloseDropsCommands(t *testing.T) {
	u := newGame(t, newUniverseOptions(5, 5))
	u.Close()
	u.Close()
	done := make(chan struct{})
	go func() {
		u.Step()
		u.Run()
		u.InverseCell(1, 1)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("commands block after close")
	}
}

func universeStep(u *Game, b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		u.Clear()
		waitMode(b, u, RunningStateManual)
		u.SettleTemplate(TemplateSample)
		b.StartTimer()
		u.Step()
		waitMode(b, u, RunningStateManual)
	}
	u.Close()
}

func Benchmark_Step(b *testing.B) {
	for _, e := range engines {
		b.Run(e, func(b *testing.B) {
			o := newUniverseOptions(200, 200)
			o.Engine = e
			universeStep(newGame(b, o), b)
		})
	}
}
