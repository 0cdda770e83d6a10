package automation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/launcher"
)

const sessionTestPage = `<!DOCTYPE html>
<html>
<body>
	<input type="file" id="upload">
	<select class="combo">
		<option value="nl">Dutch</option>
		<option value="zh-TW">Chinese (Traditional)</option>
	</select>
	<div class="popup">
		<p>Upgrade</p>
		<a class="close" href="#" onclick="this.parentNode.style.display='none'; return false;">x</a>
	</div>
	<div id="hidden" style="display: none;">never shown</div>
	<button onclick="window.marked = true">Mark page</button>
	<a href="/file" download="out.srt">Get file</a>
</body>
</html>`

const downloadBody = "1\n00:00:01,000 --> 00:00:02,000\nHallo\n"

// requireBrowser skips unless a local Chromium can be driven. Integration
// tests never let rod download a browser.
func requireBrowser(t *testing.T) string {
	t.Helper()
	if os.Getenv("CI") != "" {
		t.Skip("Skipping integration test in CI environment")
	}
	if os.Getenv("SKIP_INTEGRATION_TESTS") != "" {
		t.Skip("Skipping integration test due to SKIP_INTEGRATION_TESTS environment variable")
	}
	bin, ok := launcher.LookPath()
	if !ok {
		t.Skip("Skipping integration test: no local Chromium found")
	}
	return bin
}

func newSessionTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(sessionTestPage))
	})
	mux.HandleFunc("/file", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Disposition", `attachment; filename="out.srt"`)
		_, _ = w.Write([]byte(downloadBody))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestRodSession_Integration(t *testing.T) {
	bin := requireBrowser(t)
	server := newSessionTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	session, err := NewRodLauncher(RodOptions{Bin: bin, Headless: true, NoSandbox: true}).Launch(ctx)
	if err != nil {
		t.Fatalf("Launch() error = %v", err)
	}
	defer session.Close()

	if err := session.Navigate(ctx, server.URL); err != nil {
		t.Fatalf("Navigate() error = %v", err)
	}

	// short bounds the checks that are expected to settle quickly
	short := func() (context.Context, context.CancelFunc) {
		return context.WithTimeout(ctx, 5*time.Second)
	}

	t.Run("set input file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sample.srt")
		if err := os.WriteFile(path, []byte(downloadBody), 0o644); err != nil {
			t.Fatalf("write input: %v", err)
		}
		if err := session.SetInputFile(ctx, "#upload", path); err != nil {
			t.Fatalf("SetInputFile() error = %v", err)
		}
		sctx, done := short()
		defer done()
		if err := session.WaitForPredicate(sctx, `() => document.querySelector("#upload").files.length === 1`); err != nil {
			t.Errorf("file was not attached: %v", err)
		}
	})

	t.Run("nested selector closes popup", func(t *testing.T) {
		popup, err := session.WaitForSelector(ctx, ".popup")
		if err != nil {
			t.Fatalf("WaitForSelector(.popup) error = %v", err)
		}
		closeLink, err := popup.WaitForSelector(ctx, "a.close")
		if err != nil {
			t.Fatalf("WaitForSelector(a.close) error = %v", err)
		}
		if err := closeLink.Click(ctx); err != nil {
			t.Fatalf("Click() error = %v", err)
		}
		sctx, done := short()
		defer done()
		if err := session.WaitForPredicate(sctx, `() => document.querySelector(".popup").style.display === "none"`); err != nil {
			t.Errorf("popup still visible: %v", err)
		}
	})

	t.Run("wait for hidden element times out", func(t *testing.T) {
		sctx, done := context.WithTimeout(ctx, time.Second)
		defer done()
		if _, err := session.WaitForSelector(sctx, "#hidden"); err == nil {
			t.Error("expected an error waiting for an invisible element")
		}
	})

	t.Run("select option by value", func(t *testing.T) {
		if err := session.SelectOption(ctx, ".combo", "zh-TW"); err != nil {
			t.Fatalf("SelectOption() error = %v", err)
		}
		sctx, done := short()
		defer done()
		if err := session.WaitForPredicate(sctx, `() => document.querySelector(".combo").value === "zh-TW"`); err != nil {
			t.Errorf("option not selected: %v", err)
		}
	})

	t.Run("select missing option fails", func(t *testing.T) {
		if err := session.SelectOption(ctx, ".combo", "fr"); err == nil {
			t.Error("expected an error selecting an absent option")
		}
	})

	t.Run("click by text", func(t *testing.T) {
		if err := session.ClickText(ctx, "Mark page"); err != nil {
			t.Fatalf("ClickText() error = %v", err)
		}
		sctx, done := short()
		defer done()
		if err := session.WaitForPredicate(sctx, `() => window.marked === true`); err != nil {
			t.Errorf("click did not reach the button: %v", err)
		}
	})

	t.Run("capture download", func(t *testing.T) {
		dir := t.TempDir()
		dest := filepath.Join(dir, "sample.tl.nl.srt")
		err := session.CaptureDownload(ctx, func(ctx context.Context) error {
			return session.ClickText(ctx, "Get file")
		}, dest)
		if err != nil {
			t.Fatalf("CaptureDownload() error = %v", err)
		}
		data, err := os.ReadFile(dest)
		if err != nil {
			t.Fatalf("read download: %v", err)
		}
		if string(data) != downloadBody {
			t.Errorf("download = %q, want %q", data, downloadBody)
		}
		if entries, _ := os.ReadDir(dir); len(entries) != 1 {
			t.Errorf("expected only the saved file in %s, got %d entries", dir, len(entries))
		}
	})

	t.Run("failed trigger writes nothing", func(t *testing.T) {
		dir := t.TempDir()
		dest := filepath.Join(dir, "sample.tl.nl.srt")
		triggerErr := errors.New("button gone")
		err := session.CaptureDownload(ctx, func(context.Context) error { return triggerErr }, dest)
		if !errors.Is(err, triggerErr) {
			t.Fatalf("CaptureDownload() error = %v, want %v", err, triggerErr)
		}
		if entries, _ := os.ReadDir(dir); len(entries) != 0 {
			t.Errorf("expected %s to stay empty, got %d entries", dir, len(entries))
		}
	})
}

func TestShutdown_RemovesProfile_Integration(t *testing.T) {
	bin := requireBrowser(t)
	profile := filepath.Join(t.TempDir(), "profile")

	lnch := launcher.New().Bin(bin).Headless(true).NoSandbox(true).UserDataDir(profile)
	if _, err := lnch.Launch(); err != nil {
		t.Fatalf("Launch() error = %v", err)
	}
	if _, err := os.Stat(profile); err != nil {
		t.Fatalf("profile directory not created: %v", err)
	}

	shutdown(lnch)

	if _, err := os.Stat(profile); !os.IsNotExist(err) {
		t.Errorf("profile directory still present after shutdown: %v", err)
	}
}
