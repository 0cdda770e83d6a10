// Package automation abstracts the headless browser the translator drives.
// The production backend is go-rod; tests substitute an in-memory fake.
package automation

import "context"

// Element is a located node on the page
type Element interface {
	// Click simulates a left mouse click on the element
	Click(ctx context.Context) error

	// WaitForSelector waits for a descendant matching selector
	WaitForSelector(ctx context.Context, selector string) (Element, error)
}

// Session is one browser page owned by a single translation run.
// Every blocking call honours ctx; a cancelled ctx aborts the interaction.
type Session interface {
	Navigate(ctx context.Context, url string) error

	// SetInputFile assigns path to the file input matching selector,
	// which triggers the page's client-side upload
	SetInputFile(ctx context.Context, selector, path string) error

	// WaitForSelector waits until an element matching selector is visible
	WaitForSelector(ctx context.Context, selector string) (Element, error)

	Click(ctx context.Context, selector string) error

	// ClickText clicks the innermost element whose own text contains text
	ClickText(ctx context.Context, text string) error

	// SelectOption selects the option whose value equals value in the
	// <select> matching selector
	SelectOption(ctx context.Context, selector, value string) error

	// WaitForPredicate polls the JavaScript function expression js until it
	// returns a truthy value or ctx is done
	WaitForPredicate(ctx context.Context, js string) error

	// CaptureDownload runs trigger, waits for the download it starts and
	// saves the artifact at dest. Nothing is written to dest on failure.
	CaptureDownload(ctx context.Context, trigger func(ctx context.Context) error, dest string) error

	// Close releases the page, the browser and its process
	Close() error
}

// Launcher starts browser sessions
type Launcher interface {
	Launch(ctx context.Context) (Session, error)
}
