package browser

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// ElementNotFoundError reports that no element matched a selector within
// the wait timeout. Optional probes (readiness markers) treat it as "not
// there yet"; required navigation steps treat it as a structural failure.
type ElementNotFoundError struct {
	Selector Selector
	Timeout  time.Duration
	Err      error
}

func (e *ElementNotFoundError) Error() string {
	if e.Timeout > 0 {
		return fmt.Sprintf("element %q not found within %s", e.Selector.Query(), e.Timeout)
	}
	return fmt.Sprintf("element %q not found", e.Selector.Query())
}

func (e *ElementNotFoundError) Unwrap() error { return e.Err }

// TransportError reports that the browser process or its control
// connection is gone. The monitor recovers from these by disposing the
// session and rebuilding it from scratch.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("browser transport failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsElementNotFound reports whether err is an ElementNotFoundError.
func IsElementNotFound(err error) bool {
	var enf *ElementNotFoundError
	return errors.As(err, &enf)
}

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// classify maps a wait failure for the given selector into the session
// error taxonomy. Timeouts become ElementNotFoundError, dead-browser
// failures become TransportError, anything else passes through unchanged.
func classify(err error, sel Selector, timeout time.Duration) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return &ElementNotFoundError{Selector: sel, Timeout: timeout, Err: err}
	}
	return transportError(err)
}

// transportError wraps err as a TransportError when it signals a dead
// browser, and returns it unchanged otherwise.
func transportError(err error) error {
	if err == nil {
		return nil
	}
	if isTransportFailure(err) {
		return &TransportError{Err: err}
	}
	return err
}

// transportMarkers are message fragments the Playwright driver produces
// once the browser process or its connection is gone.
var transportMarkers = []string{
	"target closed",
	"target page, context or browser has been closed",
	"browser has been closed",
	"browser closed",
	"connection closed",
	"connection refused",
	"websocket: close",
	"pipe closed",
	"transport was closed",
}

func isTransportFailure(err error) bool {
	if errors.Is(err, playwright.ErrTargetClosed) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range transportMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
