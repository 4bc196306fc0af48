// Package clock supplies timestamps to the render loop. The solar
// core takes plain time values and never touches a clock itself, so
// accelerated or frozen time is purely a caller concern.
package clock

import "time"

// Clock yields the current effective timestamp.
type Clock interface {
	Now() time.Time
}

// System is the wall clock.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}

// Accelerated advances simulated time from a fixed epoch at a
// multiple of wall-clock speed. Multiplier 1 tracks real time; 3600
// compresses a day into 24 seconds.
type Accelerated struct {
	Epoch      time.Time // simulated time at Started
	Started    time.Time // wall time the simulation began
	Multiplier float64
}

// NewAccelerated starts an accelerated clock at the current instant.
func NewAccelerated(multiplier float64) *Accelerated {
	now := time.Now().UTC()
	return &Accelerated{Epoch: now, Started: now, Multiplier: multiplier}
}

func (a *Accelerated) Now() time.Time {
	elapsed := time.Since(a.Started)
	scaled := time.Duration(float64(elapsed) * a.Multiplier)
	return a.Epoch.Add(scaled)
}

// Fixed always reports the same instant, for rendering a specific
// moment.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time {
	return f.At
}
