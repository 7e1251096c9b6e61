package view

import (
	"bytes"
	"gofl/src/universe"
	"strings"
	"testing"
	"time"
)

func TestConsoleOut(t *testing.T) {
	o := universe.DefaultOptions()
	o.Width, o.Height = 10, 10
	o.MaxSteps = 20
	o.TickRate = universe.NewTickRate(universe.MaxTickRate)
	u, err := universe.NewGame(&o, nil)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	defer u.Close()
	u.SettleTemplate(universe.TemplateGlider)

	var b bytes.Buffer
	c := NewConsoleOutTo(&b)
	u.RegisterViewer(c)

	done := make(chan struct{})
	go func() {
		c.Start()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatalf("the simulation is not finished")
	}

	out := b.String()
	for _, s := range []string{"Dimension: 10 x 10", "Iterations done: 10", "Finished:", "Last iteration: 20", "Live cells: 5"} {
		if !strings.Contains(out, s) {
			t.Fatalf("output doesn't contain %q:\n%s", s, out)
		}
	}
}
