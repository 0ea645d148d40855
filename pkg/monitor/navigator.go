package monitor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Diego6k9/LSF-Notifier/pkg/browser"
	"github.com/Diego6k9/LSF-Notifier/pkg/logging"
)

// Site selectors for the LSF portal and the Microsoft login form. The
// form element IDs are stable across Azure AD tenants.
var (
	ssoEntry      = browser.Class("azure")
	usernameField = browser.ID("i0116")
	passwordField = browser.ID("i0118")
	loginSubmit   = browser.ID("idSIButton9")
	menuEntry     = browser.Class("auflistung")
	treeList      = browser.Class("treelist")
	contentPane   = browser.Class("content")
	pageLink      = browser.Tag("a")
)

// gradesMenuLabel is the substring identifying the grades menu item.
const gradesMenuLabel = "Notenspiegel"

// Walker drives the fixed click path from the login page through the
// SSO form and the portal menu to the grades page, and extracts its
// text. A missing required element is a structural navigation failure,
// not a transient one; the walker never retries.
type Walker struct {
	LoginPage string
	Username  string
	Password  string

	// WaitTimeout bounds each element wait; distinct from the
	// readiness detector's overall timeout. Defaults to 10s.
	WaitTimeout time.Duration

	// Settle pads the gap between the username and password steps; the
	// Microsoft form animates between them. Defaults to 1s.
	Settle time.Duration

	Readiness *ReadinessDetector
	Log       *logging.Logger
}

// Run executes the full navigation sequence on s and returns the text
// of the monitored content pane.
func (w *Walker) Run(ctx context.Context, s Session) (string, error) {
	timeout := w.WaitTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	w.Log.Infof("Navigating to login page")
	if err := s.Navigate(w.LoginPage); err != nil {
		return "", err
	}
	if err := s.Click(ssoEntry, timeout); err != nil {
		return "", err
	}

	w.Log.Infof("Logging in")
	if err := s.Fill(usernameField, w.Username, timeout); err != nil {
		return "", err
	}
	if err := s.Click(loginSubmit, timeout); err != nil {
		return "", err
	}

	time.Sleep(w.settle())

	if err := s.Fill(passwordField, w.Password, timeout); err != nil {
		return "", err
	}
	if err := s.Click(loginSubmit, timeout); err != nil {
		return "", err
	}

	if err := w.Readiness.Wait(ctx, s); err != nil {
		return "", err
	}

	entries, err := s.WaitForElements(menuEntry, timeout)
	if err != nil {
		return "", err
	}
	if len(entries) < 2 {
		return "", fmt.Errorf("navigation menu not found after login: %d entries", len(entries))
	}

	w.Log.Infof("Navigating through menu options")
	if err := entries[1].Click(); err != nil {
		return "", err
	}

	entries, err = s.WaitForElements(menuEntry, timeout)
	if err != nil {
		return "", err
	}
	if err := clickLabeled(entries, gradesMenuLabel); err != nil {
		return "", err
	}

	tree, err := s.WaitForElement(treeList, timeout)
	if err != nil {
		return "", err
	}
	link, err := tree.Find(pageLink)
	if err != nil {
		return "", err
	}
	if err := link.Click(); err != nil {
		return "", err
	}

	return s.Text(contentPane, timeout)
}

// clickLabeled clicks the first entry whose label contains the given
// substring.
func clickLabeled(entries []browser.Element, label string) error {
	for _, entry := range entries {
		text, err := entry.Text()
		if err != nil {
			continue
		}
		if strings.Contains(text, label) {
			return entry.Click()
		}
	}
	return fmt.Errorf("no menu entry labeled %q found", label)
}

func (w *Walker) settle() time.Duration {
	if w.Settle > 0 {
		return w.Settle
	}
	return time.Second
}
