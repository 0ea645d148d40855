package browser

import (
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Session wraps one live Chromium instance with its context and page.
// It is driven by a single goroutine; operations are sequential and not
// safe for concurrent use.
type Session struct {
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page

	createdAt time.Time
	closeOnce sync.Once
}

// Element is a handle to a located page element.
type Element interface {
	// Text returns the element's text content.
	Text() (string, error)

	// Click clicks the element.
	Click() error

	// Find locates a descendant element, failing immediately if absent.
	Find(sel Selector) (Element, error)
}

type element struct {
	handle playwright.ElementHandle
}

func (e *element) Text() (string, error) {
	text, err := e.handle.TextContent()
	if err != nil {
		return "", transportError(err)
	}
	return text, nil
}

func (e *element) Click() error {
	if err := e.handle.Click(); err != nil {
		return transportError(err)
	}
	return nil
}

func (e *element) Find(sel Selector) (Element, error) {
	handle, err := e.handle.QuerySelector(sel.Query())
	if err != nil {
		return nil, transportError(err)
	}
	if handle == nil {
		return nil, &ElementNotFoundError{Selector: sel}
	}
	return &element{handle: handle}, nil
}

// Navigate loads the given URL in the session's page.
func (s *Session) Navigate(url string) error {
	if _, err := s.page.Goto(url); err != nil {
		return transportError(err)
	}
	return nil
}

// WaitForElement blocks until an element matching sel is attached to the
// document, or the timeout elapses.
func (s *Session) WaitForElement(sel Selector, timeout time.Duration) (Element, error) {
	state := playwright.WaitForSelectorState("attached")
	handle, err := s.page.WaitForSelector(sel.Query(), playwright.PageWaitForSelectorOptions{
		State:   &state,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return nil, classify(err, sel, timeout)
	}
	if handle == nil {
		return nil, &ElementNotFoundError{Selector: sel, Timeout: timeout}
	}
	return &element{handle: handle}, nil
}

// WaitForElements blocks until at least one element matching sel is
// attached, then returns all current matches.
func (s *Session) WaitForElements(sel Selector, timeout time.Duration) ([]Element, error) {
	if _, err := s.WaitForElement(sel, timeout); err != nil {
		return nil, err
	}
	handles, err := s.page.QuerySelectorAll(sel.Query())
	if err != nil {
		return nil, transportError(err)
	}
	elements := make([]Element, 0, len(handles))
	for _, h := range handles {
		elements = append(elements, &element{handle: h})
	}
	return elements, nil
}

// Click waits for the element matching sel and clicks it.
func (s *Session) Click(sel Selector, timeout time.Duration) error {
	el, err := s.WaitForElement(sel, timeout)
	if err != nil {
		return err
	}
	return el.Click()
}

// Fill waits for the input element matching sel and types value into it.
func (s *Session) Fill(sel Selector, value string, timeout time.Duration) error {
	if _, err := s.WaitForElement(sel, timeout); err != nil {
		return err
	}
	if err := s.page.Fill(sel.Query(), value, playwright.PageFillOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	}); err != nil {
		return classify(err, sel, timeout)
	}
	return nil
}

// Text returns the text content of the first element matching sel.
func (s *Session) Text(sel Selector, timeout time.Duration) (string, error) {
	el, err := s.WaitForElement(sel, timeout)
	if err != nil {
		return "", err
	}
	return el.Text()
}

// CurrentURL returns the page's navigated URL, or "" when it cannot be
// read. It never fails: readiness polling calls it while SSO redirects
// are still in flight.
func (s *Session) CurrentURL() string {
	if s.page == nil {
		return ""
	}
	return s.page.URL()
}

// FocusLatestPage retargets the session at the newest page in the
// context. The Azure flow sometimes continues in a fresh tab; subsequent
// operations must follow it. Best-effort, never fails.
func (s *Session) FocusLatestPage() {
	if s.context == nil {
		return
	}
	pages := s.context.Pages()
	if len(pages) > 0 {
		s.page = pages[len(pages)-1]
	}
}

// Refresh reloads the current page.
func (s *Session) Refresh() error {
	if _, err := s.page.Reload(); err != nil {
		return transportError(err)
	}
	return nil
}

// Close releases the page, context and browser. Safe to call repeatedly
// and on sessions whose browser process already died.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if s.page != nil {
			_ = s.page.Close()
		}
		if s.context != nil {
			_ = s.context.Close()
		}
		if s.browser != nil {
			_ = s.browser.Close()
		}
	})
}
