package browser

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// DefaultTimeout is the fallback timeout for page operations when a
// session is created without an explicit one.
const DefaultTimeout = 30 * time.Second

// Manager owns the Playwright driver process and launches browser
// sessions from it. The monitor keeps at most one live Session at a
// time; the manager hands sessions out and otherwise leaves ownership
// with the caller.
type Manager struct {
	mu          sync.Mutex
	pw          *playwright.Playwright
	initialized bool
}

// NewManager creates an uninitialized manager.
func NewManager() *Manager {
	return &Manager{}
}

// Initialize installs the Playwright driver if needed and starts it.
// Must be called before NewSession. Calling it again is a no-op.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	// Driver output would interleave with the status lines on stdout.
	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	m.pw = pw
	m.initialized = true
	return nil
}

// SessionOptions configures a new browser session.
type SessionOptions struct {
	// Headless controls whether the browser runs without a visible
	// window. Interactive MFA prompts need a visible one.
	Headless bool

	// DefaultTimeout bounds page operations that have no explicit wait.
	DefaultTimeout time.Duration
}

// NewSession launches a Chromium instance with its own context and page.
// The caller owns the returned session and must Close it.
func (m *Manager) NewSession(opts SessionOptions) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return nil, fmt.Errorf("browser manager not initialized")
	}

	if opts.DefaultTimeout == 0 {
		opts.DefaultTimeout = DefaultTimeout
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args: []string{
			"--disable-extensions",
			"--disable-gpu",
			"--no-sandbox",
			"--disable-dev-shm-usage",
		},
	}
	b, err := m.pw.Chromium.Launch(launchOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	context, err := b.NewContext()
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}
	context.SetDefaultTimeout(float64(opts.DefaultTimeout.Milliseconds()))

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		b.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return &Session{
		browser:   b,
		context:   context,
		page:      page,
		createdAt: time.Now(),
	}, nil
}

// Shutdown stops the Playwright driver. Live sessions should be closed
// first.
func (m *Manager) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.pw == nil {
		return nil
	}
	if err := m.pw.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	m.pw = nil
	m.initialized = false
	return nil
}
