package monitor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/Diego6k9/LSF-Notifier/pkg/browser"
	"github.com/Diego6k9/LSF-Notifier/pkg/logging"
	"github.com/Diego6k9/LSF-Notifier/pkg/ui"
)

// markerProbeTimeout bounds each marker-element probe inside one
// readiness poll. The probes are optional checks; a miss means "not
// ready yet", so they must stay far below the poll cadence.
const markerProbeTimeout = 200 * time.Millisecond

// postLoginMarkers are elements that exist only on LSF pages. Seeing any
// of them means the SSO redirect chain has landed back on the portal.
var postLoginMarkers = []browser.Selector{
	browser.Class("auflistung"),
	browser.Class("treelist"),
	browser.Class("content"),
}

// ReadinessDetector decides when an external SSO/MFA flow of unknown
// duration has completed. It has no knowledge of the flow itself; it
// polls observable session state until one of two independent signals
// fires.
type ReadinessDetector struct {
	// LoginURL is the portal login page; its host is the first
	// readiness signal once the SSO provider redirects back.
	LoginURL string

	// Markers overrides the default post-login marker set.
	Markers []browser.Selector

	// PollInterval is the readiness poll cadence. Defaults to 1s.
	PollInterval time.Duration

	// Timeout bounds the whole wait. Defaults to 5m.
	Timeout time.Duration

	// ConfirmTimeout bounds the manual-confirmation fallback after the
	// readiness timeout. Zero disables the fallback.
	ConfirmTimeout time.Duration

	// ConfirmInput is where the fallback reads the operator's Enter
	// keypress from, normally os.Stdin.
	ConfirmInput io.Reader

	Log    *logging.Logger
	Status *ui.Status
}

// Ready evaluates the readiness predicate once. Either clause suffices:
// the current URL is back on the login page's host, or a known
// post-login marker element is present.
func (d *ReadinessDetector) Ready(s Session) bool {
	// The SSO provider may have continued the flow in a new tab.
	s.FocusLatestPage()

	if host := hostOf(d.LoginURL); host != "" {
		current := strings.ToLower(s.CurrentURL())
		if current != "" && strings.Contains(current, host) {
			return true
		}
	}

	for _, marker := range d.markers() {
		if _, err := s.WaitForElement(marker, markerProbeTimeout); err == nil {
			return true
		}
	}
	return false
}

// Wait blocks until the session looks authenticated, polling at
// PollInterval. On timeout it degrades to the manual-confirmation
// fallback instead of failing the run outright.
func (d *ReadinessDetector) Wait(ctx context.Context, s Session) error {
	timeout := d.Timeout
	if timeout == 0 {
		timeout = 5 * time.Minute
	}
	poll := d.PollInterval
	if poll == 0 {
		poll = time.Second
	}

	d.Log.Infof("Waiting for post-login to complete (timeout %s)", timeout)
	d.Status.Waitingf("Waiting for login/MFA to finish (up to %s)...", timeout)

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if d.Ready(s) {
			d.Log.Infof("Post-login detected; proceeding")
			d.Status.Readyf("Post-login detected; continuing...")
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(poll):
		}
	}

	return d.confirmManually(ctx, timeout)
}

// confirmManually is the escape hatch for SSO flows that defeat both
// readiness checks: the operator confirms from the terminal that login
// visibly finished. Bounded by ConfirmTimeout so an unattended run
// cannot hang forever.
func (d *ReadinessDetector) confirmManually(ctx context.Context, waited time.Duration) error {
	if d.ConfirmTimeout <= 0 || d.ConfirmInput == nil {
		return fmt.Errorf("timed out waiting for post-login readiness after %s", waited)
	}

	d.Log.Warnf("Timed out waiting for post-login; manual confirmation required")
	d.Status.Waitingf("If login is complete in the browser, press Enter within %s to continue...", d.ConfirmTimeout)

	confirmed := make(chan struct{}, 1)
	go func() {
		// Any read outcome counts as confirmation, including EOF: the
		// operator is telling us to proceed, not typing content.
		_, _ = bufio.NewReader(d.ConfirmInput).ReadString('\n')
		confirmed <- struct{}{}
	}()

	select {
	case <-confirmed:
		d.Log.Infof("Manual confirmation received; proceeding")
		return nil
	case <-time.After(d.ConfirmTimeout):
		return fmt.Errorf("manual confirmation not received within %s", d.ConfirmTimeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *ReadinessDetector) markers() []browser.Selector {
	if len(d.Markers) > 0 {
		return d.Markers
	}
	return postLoginMarkers
}

// hostOf extracts the lowercased host of raw, or "" when it cannot be
// parsed. A missing host skips the URL clause of the readiness
// predicate; it is not an error.
func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}
