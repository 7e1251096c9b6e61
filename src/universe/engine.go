package universe

import (
	"gofl/src/field"

	"github.com/pkg/errors"
)

//engine names
const (
	EngineSerial   = "serial"
	EngineParallel = "parallel"
)

//ErrUnknownEngine is returned for the engine name which is not registered
var ErrUnknownEngine = errors.New("unknown engine")

//newAdvancer returns the function doing one generation on f with the engine from the options
func newAdvancer(f *field.Field, o Options) (func(), error) {
	switch o.Engine {
	case EngineSerial, "":
		return f.Advance, nil
	case EngineParallel:
		workers := o.Workers
		if workers <= 0 {
			workers = DefWorkers
		}
		return func() { f.AdvanceParallel(workers) }, nil
	}
	return nil, errors.Wrapf(ErrUnknownEngine, "%q", o.Engine)
}
