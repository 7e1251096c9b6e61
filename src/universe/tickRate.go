package universe

import (
	"sync/atomic"
	"time"
)

//tick rate limits and the speed change factor
const (
	MinTickRate        = 1
	MaxTickRate        = 1000
	AccelerationFactor = 2
)

//TickRate is the simulation speed in generations per second
//the value is shared between the input handlers and the run loop, so it is accessed atomically
type TickRate struct {
	v atomic.Int64
}

//NewTickRate creates the TickRate with the initial value clamped to the limits
func NewTickRate(rate int) *TickRate {
	t := &TickRate{}
	t.Set(rate)
	return t
}

//Get returns the current rate
func (t *TickRate) Get() int {
	return int(t.v.Load())
}

//Set changes the rate, the value is clamped to [MinTickRate, MaxTickRate]
func (t *TickRate) Set(rate int) {
	t.v.Store(int64(clampRate(rate)))
}

//Speedup multiplies the rate by AccelerationFactor and returns the new value
func (t *TickRate) Speedup() int {
	return t.update(func(r int) int { return r * AccelerationFactor })
}

//Slowdown divides the rate by AccelerationFactor and returns the new value
func (t *TickRate) Slowdown() int {
	return t.update(func(r int) int { return r / AccelerationFactor })
}

//Interval returns the time between two generations
func (t *TickRate) Interval() time.Duration {
	return time.Second / time.Duration(t.Get())
}

func (t *TickRate) update(fn func(r int) int) int {
	for {
		old := t.v.Load()
		next := int64(clampRate(fn(int(old))))
		if t.v.CompareAndSwap(old, next) {
			return int(next)
		}
	}
}

func clampRate(rate int) int {
	if rate < MinTickRate {
		return MinTickRate
	}
	if rate > MaxTickRate {
		return MaxTickRate
	}
	return rate
}
