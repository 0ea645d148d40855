// Package monitor implements the session-lifecycle and change-detection
// engine: login readiness detection, the fixed navigation walk to the
// grades page, and the refresh/compare/alert polling loop with
// transport-failure recovery.
package monitor

import (
	"context"
	"time"

	"github.com/Diego6k9/LSF-Notifier/pkg/browser"
)

// Session is the slice of browser automation the monitor drives. The
// live implementation is *browser.Session; tests substitute fakes.
// Sessions are driven sequentially by one goroutine and never shared.
type Session interface {
	Navigate(url string) error
	WaitForElement(sel browser.Selector, timeout time.Duration) (browser.Element, error)
	WaitForElements(sel browser.Selector, timeout time.Duration) ([]browser.Element, error)
	Click(sel browser.Selector, timeout time.Duration) error
	Fill(sel browser.Selector, value string, timeout time.Duration) error
	Text(sel browser.Selector, timeout time.Duration) (string, error)
	CurrentURL() string
	FocusLatestPage()
	Refresh() error
	Close()
}

// SessionFactory builds a fresh browser session. The monitor calls it
// once at startup and again for every transport-failure recovery.
type SessionFactory func() (Session, error)

// Notifier raises the one-shot audible alert on a content change.
type Notifier interface {
	Notify() error
}

// Navigator drives a session from the login page to the monitored page
// and returns its initial text. The live implementation is *Walker.
type Navigator interface {
	Run(ctx context.Context, s Session) (string, error)
}
