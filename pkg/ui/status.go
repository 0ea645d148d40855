// Package ui renders the monitor's console status lines. The log file
// carries the full trace; these lines are the at-a-glance view a user
// watches during a long monitoring run.
package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Color roles for the monitor phases.
var (
	cyan   = lipgloss.Color("14") // lifecycle (start, shutdown)
	blue   = lipgloss.Color("12") // refresh cycles
	green  = lipgloss.Color("10") // change detected, login ready
	red    = lipgloss.Color("9")  // no change, fatal errors
	yellow = lipgloss.Color("11") // waiting, recovery
)

var (
	lifecycleStyle = lipgloss.NewStyle().Foreground(cyan)
	refreshStyle   = lipgloss.NewStyle().Foreground(blue)
	changeStyle    = lipgloss.NewStyle().Foreground(green)
	unchangedStyle = lipgloss.NewStyle().Foreground(red)
	waitingStyle   = lipgloss.NewStyle().Foreground(yellow)
)

// timestampLayout matches the timestamp format of the log file.
const timestampLayout = "02.01.2006 15:04:05"

// Status prints timestamped phase-transition lines. The color is
// cosmetic; the phase and timestamp are the contract.
type Status struct {
	out io.Writer
	now func() time.Time
}

// NewStatus creates a Status writing to stdout.
func NewStatus() *Status {
	return &Status{out: os.Stdout, now: time.Now}
}

// NewStatusWriter creates a Status writing to w.
func NewStatusWriter(w io.Writer) *Status {
	return &Status{out: w, now: time.Now}
}

func (s *Status) line(style lipgloss.Style, format string, args ...interface{}) {
	stamp := s.now().Format(timestampLayout)
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(s.out, style.Render(stamp+" - "+msg))
}

// Startingf reports a lifecycle transition (startup, baseline acquired).
func (s *Status) Startingf(format string, args ...interface{}) {
	s.line(lifecycleStyle, format, args...)
}

// Refreshingf reports the start of a refresh cycle.
func (s *Status) Refreshingf(format string, args ...interface{}) {
	s.line(refreshStyle, format, args...)
}

// Changedf reports a detected content change.
func (s *Status) Changedf(format string, args ...interface{}) {
	s.line(changeStyle, format, args...)
}

// Unchangedf reports a cycle without a content change.
func (s *Status) Unchangedf(format string, args ...interface{}) {
	s.line(unchangedStyle, format, args...)
}

// Waitingf reports blocking on an external flow (SSO/MFA, confirmation).
func (s *Status) Waitingf(format string, args ...interface{}) {
	s.line(waitingStyle, format, args...)
}

// Readyf reports completed login readiness.
func (s *Status) Readyf(format string, args ...interface{}) {
	s.line(changeStyle, format, args...)
}

// Recoveredf reports a completed transport-failure recovery.
func (s *Status) Recoveredf(format string, args ...interface{}) {
	s.line(waitingStyle, format, args...)
}

// Stoppingf reports shutdown.
func (s *Status) Stoppingf(format string, args ...interface{}) {
	s.line(lifecycleStyle, format, args...)
}

// Failedf reports a fatal failure.
func (s *Status) Failedf(format string, args ...interface{}) {
	s.line(unchangedStyle, format, args...)
}
