package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/Belphemur/tlsubs/internal/automation"
)

// Call records one interaction with the fake browser
type Call struct {
	Method string
	Args   []string
}

// String renders the call as "Method arg1 arg2"
func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Method
	}
	return c.Method + " " + strings.Join(c.Args, " ")
}

// FakeBrowser implements automation.Launcher and automation.Session in
// memory. It records every interaction and can be told to fail or hang on
// a given call. Keys of Errors and Hang are "Method" or "Method arg1".
// This is a test helper and should not be used in production code.
type FakeBrowser struct {
	mu sync.Mutex

	// DownloadContent is written to the destination of CaptureDownload
	DownloadContent []byte

	Errors map[string]error
	Hang   map[string]bool

	calls    []Call
	launches int
	closed   bool
}

// NewFakeBrowser returns a fake that succeeds on every call
func NewFakeBrowser(downloadContent string) *FakeBrowser {
	return &FakeBrowser{
		DownloadContent: []byte(downloadContent),
		Errors:          make(map[string]error),
		Hang:            make(map[string]bool),
	}
}

// Calls returns the recorded interactions in order
func (f *FakeBrowser) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Methods returns the method names of the recorded interactions in order
func (f *FakeBrowser) Methods() []string {
	calls := f.Calls()
	methods := make([]string, len(calls))
	for i, c := range calls {
		methods[i] = c.Method
	}
	return methods
}

// Launches returns how many sessions were launched
func (f *FakeBrowser) Launches() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.launches
}

// Closed reports whether Close was called
func (f *FakeBrowser) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *FakeBrowser) record(ctx context.Context, method string, args ...string) error {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Method: method, Args: args})
	keys := []string{method}
	if len(args) > 0 {
		keys = append(keys, method+" "+args[0])
	}
	var err error
	hang := false
	for _, k := range keys {
		if e, ok := f.Errors[k]; ok {
			err = e
		}
		if f.Hang[k] {
			hang = true
		}
	}
	f.mu.Unlock()

	if hang {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}

// Launch implements automation.Launcher
func (f *FakeBrowser) Launch(ctx context.Context) (automation.Session, error) {
	if err := f.record(ctx, "Launch"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.launches++
	f.mu.Unlock()
	return f, nil
}

func (f *FakeBrowser) Navigate(ctx context.Context, url string) error {
	return f.record(ctx, "Navigate", url)
}

func (f *FakeBrowser) SetInputFile(ctx context.Context, selector, path string) error {
	return f.record(ctx, "SetInputFile", selector, path)
}

func (f *FakeBrowser) WaitForSelector(ctx context.Context, selector string) (automation.Element, error) {
	if err := f.record(ctx, "WaitForSelector", selector); err != nil {
		return nil, err
	}
	return &fakeElement{browser: f, selector: selector}, nil
}

func (f *FakeBrowser) Click(ctx context.Context, selector string) error {
	return f.record(ctx, "Click", selector)
}

func (f *FakeBrowser) ClickText(ctx context.Context, text string) error {
	return f.record(ctx, "ClickText", text)
}

func (f *FakeBrowser) SelectOption(ctx context.Context, selector, value string) error {
	return f.record(ctx, "SelectOption", selector, value)
}

func (f *FakeBrowser) WaitForPredicate(ctx context.Context, js string) error {
	return f.record(ctx, "WaitForPredicate", js)
}

func (f *FakeBrowser) CaptureDownload(ctx context.Context, trigger func(ctx context.Context) error, dest string) error {
	if err := f.record(ctx, "CaptureDownload"); err != nil {
		return err
	}
	if err := trigger(ctx); err != nil {
		return err
	}
	if err := os.WriteFile(dest, f.DownloadContent, 0o644); err != nil {
		return fmt.Errorf("fake download: %w", err)
	}
	return nil
}

func (f *FakeBrowser) Close() error {
	f.mu.Lock()
	f.closed = true
	f.calls = append(f.calls, Call{Method: "Close"})
	f.mu.Unlock()
	return nil
}

type fakeElement struct {
	browser  *FakeBrowser
	selector string
}

func (e *fakeElement) Click(ctx context.Context) error {
	return e.browser.record(ctx, "ElementClick", e.selector)
}

func (e *fakeElement) WaitForSelector(ctx context.Context, selector string) (automation.Element, error) {
	if err := e.browser.record(ctx, "ElementWaitForSelector", selector); err != nil {
		return nil, err
	}
	return &fakeElement{browser: e.browser, selector: e.selector + " " + selector}, nil
}
