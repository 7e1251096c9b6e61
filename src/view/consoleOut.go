package view

import (
	"fmt"
	"github.com/logrusorgru/aurora"
	"gofl/src/universe"
	"io"
	"os"
	"sort"
	"sync"
	"time"
)

//ConsoleOut prints the progress of the non-interactive simulation
type ConsoleOut struct {
	u         universe.Universe
	w         io.Writer
	startTime time.Time
	mu        sync.Mutex
	lastIter  int
	finished  bool
	done      chan struct{}
}

func NewConsoleOut() *ConsoleOut {
	return NewConsoleOutTo(os.Stdout)
}

//NewConsoleOutTo creates ConsoleOut writing to w
func NewConsoleOutTo(w io.Writer) *ConsoleOut {
	return &ConsoleOut{w: w, lastIter: -1, done: make(chan struct{})}
}

func (c *ConsoleOut) Refresh() {
	st := c.u.Status()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.finished {
		return
	}
	if st.RunningMode == universe.RunningStateFinished {
		c.finished = true
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": st.IterationNum,
			"Total time":     totalTime,
			"Live cells":     st.LiveCells,
		}
		fmt.Fprintln(c.w, aurora.Green("\nFinished:"))
		c.printHashData(resultData)
		close(c.done)
	} else if st.RunningMode == universe.RunningStateRun && st.IterationNum != c.lastIter {
		c.lastIter = st.IterationNum
		if st.IterationNum%10 == 0 {
			fmt.Fprintf(c.w, "  Iterations done: %v\n", st.IterationNum)
		}
	}
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	o := c.u.Options()
	fmt.Fprintln(c.w, "Running configuration:")
	c.printHashData(map[string]interface{}{
		"Dimension":      fmt.Sprintf("%v x %v", o.Width, o.Height),
		"Engine":         o.Engine,
		"Speed":          fmt.Sprintf("%v gen/s", o.TickRate.Get()),
		"Max iterations": fmt.Sprintf("%v steps", o.MaxSteps),
	})
}

//Start runs the simulation and returns when it is finished
func (c *ConsoleOut) Start() {
	c.mu.Lock()
	c.startTime = time.Now()
	fmt.Fprintln(c.w, "\nSimulation started...")
	c.mu.Unlock()
	c.u.Run()
	<-c.done
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}
