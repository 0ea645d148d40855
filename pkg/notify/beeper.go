// Package notify raises the audible alert when the monitored page
// changes. Failures here are never fatal; the monitor logs them and
// keeps polling.
package notify

import "github.com/gen2brain/beeep"

// Beeper plays a tone through the system speaker.
type Beeper struct {
	frequency float64
	duration  int
}

// NewBeeper creates a Beeper with the given tone frequency in Hz and
// duration in milliseconds.
func NewBeeper(frequency float64, durationMS int) *Beeper {
	return &Beeper{frequency: frequency, duration: durationMS}
}

// Notify plays the configured tone once.
func (b *Beeper) Notify() error {
	return beeep.Beep(b.frequency, b.duration)
}
