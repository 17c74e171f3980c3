package clock

import "time"

// Clock abstracts time.Now so expiry and cancellation-window logic can be
// tested deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns a Clock backed by the wall clock.
func System() Clock { return systemClock{} }

// Fake is a manually advanced Clock for tests.
type Fake struct {
	Current time.Time
}

// NewFake creates a fake clock frozen at t
func NewFake(t time.Time) *Fake {
	return &Fake{Current: t}
}

func (f *Fake) Now() time.Time { return f.Current }

// Advance moves the fake clock forward by d
func (f *Fake) Advance(d time.Duration) {
	f.Current = f.Current.Add(d)
}

// Set moves the fake clock to t
func (f *Fake) Set(t time.Time) {
	f.Current = t
}
