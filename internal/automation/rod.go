package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/Belphemur/tlsubs/internal/config"
)

// RodOptions configures the Chromium instance started by RodLauncher
type RodOptions struct {
	Bin       string // Browser executable, empty lets rod find or download one
	Headless  bool
	NoSandbox bool
	Proxy     string // host:port or URL passed to --proxy-server
	UserAgent string
}

// RodLauncher starts Chromium through go-rod
type RodLauncher struct {
	opts RodOptions
}

// NewRodLauncher creates a launcher with the given options
func NewRodLauncher(opts RodOptions) *RodLauncher {
	return &RodLauncher{opts: opts}
}

type launchResult struct {
	controlURL string
	err        error
}

// Launch starts the browser process, connects to it and opens a blank page.
// The browser outlives ctx; it is bound to the returned session instead.
func (l *RodLauncher) Launch(ctx context.Context) (Session, error) {
	logger := config.GetLogger()

	lnch := launcher.New().Headless(l.opts.Headless)
	if l.opts.Bin != "" {
		lnch = lnch.Bin(l.opts.Bin)
	}
	if l.opts.NoSandbox {
		lnch = lnch.NoSandbox(true)
	}
	if l.opts.Proxy != "" {
		lnch = lnch.Proxy(l.opts.Proxy)
	}

	// Launching may download a browser; keep it abortable without tying
	// the process lifetime to ctx.
	results := make(chan launchResult, 1)
	go func() {
		u, err := lnch.Launch()
		results <- launchResult{controlURL: u, err: err}
	}()

	var controlURL string
	select {
	case res := <-results:
		if res.err != nil {
			return nil, fmt.Errorf("failed to launch browser: %w", res.err)
		}
		controlURL = res.controlURL
	case <-ctx.Done():
		go func() {
			if res := <-results; res.err == nil {
				shutdown(lnch)
			}
		}()
		return nil, fmt.Errorf("failed to launch browser: %w", ctx.Err())
	}

	logger.Debug().Str("control_url", controlURL).Bool("headless", l.opts.Headless).Msg("Browser launched")

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		shutdown(lnch)
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		lnch.Cleanup()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	if l.opts.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: l.opts.UserAgent}); err != nil {
			logger.Warn().Err(err).Msg("Failed to override user agent, continuing with browser default")
		}
	}

	return &rodSession{launcher: lnch, browser: browser, page: page}, nil
}

// shutdown stops a browser that never became a session and removes its
// profile directory.
func shutdown(l *launcher.Launcher) {
	l.Kill()
	l.Cleanup()
}

type rodSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

type rodElement struct {
	el *rod.Element
}

func (e *rodElement) Click(ctx context.Context) error {
	return e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1)
}

func (e *rodElement) WaitForSelector(ctx context.Context, selector string) (Element, error) {
	child, err := e.el.Context(ctx).Element(selector)
	if err != nil {
		return nil, fmt.Errorf("element %q not found: %w", selector, err)
	}
	if err := child.WaitVisible(); err != nil {
		return nil, fmt.Errorf("element %q never became visible: %w", selector, err)
	}
	return &rodElement{el: child}, nil
}

func (s *rodSession) Navigate(ctx context.Context, url string) error {
	page := s.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("page %s did not finish loading: %w", url, err)
	}
	return nil
}

func (s *rodSession) SetInputFile(ctx context.Context, selector, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	input, err := s.page.Context(ctx).Element(selector)
	if err != nil {
		return fmt.Errorf("file input %q not found: %w", selector, err)
	}
	if err := input.SetFiles([]string{abs}); err != nil {
		return fmt.Errorf("failed to set file on %q: %w", selector, err)
	}
	return nil
}

func (s *rodSession) WaitForSelector(ctx context.Context, selector string) (Element, error) {
	el, err := s.page.Context(ctx).Element(selector)
	if err != nil {
		return nil, fmt.Errorf("element %q not found: %w", selector, err)
	}
	if err := el.WaitVisible(); err != nil {
		return nil, fmt.Errorf("element %q never became visible: %w", selector, err)
	}
	return &rodElement{el: el}, nil
}

func (s *rodSession) Click(ctx context.Context, selector string) error {
	el, err := s.page.Context(ctx).Element(selector)
	if err != nil {
		return fmt.Errorf("element %q not found: %w", selector, err)
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

func (s *rodSession) ClickText(ctx context.Context, text string) error {
	el, err := s.page.Context(ctx).ElementX(textXPath(text))
	if err != nil {
		return fmt.Errorf("element with text %q not found: %w", text, err)
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

func (s *rodSession) SelectOption(ctx context.Context, selector, value string) error {
	sel, err := s.page.Context(ctx).Element(selector)
	if err != nil {
		return fmt.Errorf("select %q not found: %w", selector, err)
	}
	if err := sel.Select([]string{fmt.Sprintf("[value=%q]", value)}, true, rod.SelectorTypeCSSSector); err != nil {
		return fmt.Errorf("failed to select %q in %q: %w", value, selector, err)
	}
	return nil
}

func (s *rodSession) WaitForPredicate(ctx context.Context, js string) error {
	page := s.page.Context(ctx)
	return PollUntil(ctx, DefaultPollInterval, func(ctx context.Context) (bool, error) {
		res, err := page.Eval(js)
		if err != nil {
			return false, err
		}
		return res.Value.Bool(), nil
	})
}

func (s *rodSession) CaptureDownload(ctx context.Context, trigger func(ctx context.Context) error, dest string) error {
	dir, err := os.MkdirTemp(filepath.Dir(dest), ".tlsubs-download-*")
	if err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}
	defer os.RemoveAll(dir)

	wait := s.browser.Context(ctx).WaitDownload(dir)
	if err := trigger(ctx); err != nil {
		return err
	}

	info := wait()
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("download did not complete: %w", err)
	}
	if info == nil {
		return errors.New("download did not start")
	}

	// rod names the artifact after the download GUID
	if err := os.Rename(filepath.Join(dir, info.GUID), dest); err != nil {
		return fmt.Errorf("failed to save download: %w", err)
	}
	return nil
}

func (s *rodSession) Close() error {
	err := s.browser.Close()
	s.launcher.Cleanup()
	return err
}

// textXPath matches the innermost elements owning a text node that
// contains text, ignoring surrounding whitespace.
func textXPath(text string) string {
	return fmt.Sprintf(`//*[text()[contains(normalize-space(.), %s)]]`, xpathLiteral(strings.TrimSpace(text)))
}

// xpathLiteral quotes s for XPath 1.0, which has no escape sequences.
func xpathLiteral(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	parts := strings.Split(s, `"`)
	return `concat("` + strings.Join(parts, `", '"', "`) + `")`
}
