package monitor

import (
	"context"
	"io"
	"time"

	"github.com/Diego6k9/LSF-Notifier/pkg/browser"
	"github.com/Diego6k9/LSF-Notifier/pkg/logging"
	"github.com/Diego6k9/LSF-Notifier/pkg/ui"
)

func testLogger() *logging.Logger {
	return logging.NewWithWriter("test", io.Discard)
}

func testStatus() *ui.Status {
	return ui.NewStatusWriter(io.Discard)
}

// fakeElement is a scriptable browser.Element.
type fakeElement struct {
	text     string
	textErr  error
	clickErr error
	child    browser.Element
	onClick  func()
}

func (e *fakeElement) Text() (string, error) {
	return e.text, e.textErr
}

func (e *fakeElement) Click() error {
	if e.onClick != nil {
		e.onClick()
	}
	return e.clickErr
}

func (e *fakeElement) Find(sel browser.Selector) (browser.Element, error) {
	if e.child == nil {
		return nil, &browser.ElementNotFoundError{Selector: sel}
	}
	return e.child, nil
}

// fakeSession is a scriptable Session. Hooks default to "element not
// found" so tests only script what they exercise.
type fakeSession struct {
	urlFn     func() string
	waitOne   func(sel browser.Selector, timeout time.Duration) (browser.Element, error)
	waitAll   func(sel browser.Selector, timeout time.Duration) ([]browser.Element, error)
	refreshFn func() error
	textFn    func(sel browser.Selector, timeout time.Duration) (string, error)

	navigated  []string
	filled     map[string]string
	clicked    []string
	refreshes  int
	focusCalls int
	closed     bool
}

func (f *fakeSession) Navigate(url string) error {
	f.navigated = append(f.navigated, url)
	return nil
}

func (f *fakeSession) WaitForElement(sel browser.Selector, timeout time.Duration) (browser.Element, error) {
	if f.waitOne != nil {
		return f.waitOne(sel, timeout)
	}
	return nil, &browser.ElementNotFoundError{Selector: sel, Timeout: timeout}
}

func (f *fakeSession) WaitForElements(sel browser.Selector, timeout time.Duration) ([]browser.Element, error) {
	if f.waitAll != nil {
		return f.waitAll(sel, timeout)
	}
	return nil, &browser.ElementNotFoundError{Selector: sel, Timeout: timeout}
}

func (f *fakeSession) Click(sel browser.Selector, timeout time.Duration) error {
	f.clicked = append(f.clicked, sel.Query())
	return nil
}

func (f *fakeSession) Fill(sel browser.Selector, value string, timeout time.Duration) error {
	if f.filled == nil {
		f.filled = make(map[string]string)
	}
	f.filled[sel.Query()] = value
	return nil
}

func (f *fakeSession) Text(sel browser.Selector, timeout time.Duration) (string, error) {
	if f.textFn != nil {
		return f.textFn(sel, timeout)
	}
	return "", &browser.ElementNotFoundError{Selector: sel, Timeout: timeout}
}

func (f *fakeSession) CurrentURL() string {
	if f.urlFn != nil {
		return f.urlFn()
	}
	return ""
}

func (f *fakeSession) FocusLatestPage() {
	f.focusCalls++
}

func (f *fakeSession) Refresh() error {
	f.refreshes++
	if f.refreshFn != nil {
		return f.refreshFn()
	}
	return nil
}

func (f *fakeSession) Close() {
	f.closed = true
}

// stubNavigator returns scripted baseline results, one per call; the
// last result repeats.
type stubNavigator struct {
	texts []string
	errs  []error
	calls int
}

func (n *stubNavigator) Run(ctx context.Context, s Session) (string, error) {
	i := n.calls
	n.calls++
	if i >= len(n.texts) {
		i = len(n.texts) - 1
	}
	var err error
	if i < len(n.errs) {
		err = n.errs[i]
	}
	return n.texts[i], err
}

// recordingNotifier counts alerts and optionally fails.
type recordingNotifier struct {
	calls int
	err   error
}

func (n *recordingNotifier) Notify() error {
	n.calls++
	return n.err
}

// cancelAfterSleeps returns a sleep func that cancels ctx once it has
// been called n times, simulating a shutdown signal arriving mid-sleep.
func cancelAfterSleeps(n int, cancel context.CancelFunc) func(time.Duration) {
	count := 0
	return func(time.Duration) {
		count++
		if count >= n {
			cancel()
		}
	}
}
