// Package probe checks that the translation site still serves the markup
// the browser pipeline relies on, without launching a browser.
package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Belphemur/tlsubs/internal/config"
	"github.com/Belphemur/tlsubs/internal/site"
)

// MarkerResult is the outcome for one site marker
type MarkerResult struct {
	Marker  site.Marker
	Checked bool // false for markers injected by scripts
	Found   bool
}

// Report is the result of probing the site
type Report struct {
	URL        string
	StatusCode int
	Results    []MarkerResult
}

// OK reports whether every checkable marker was found
func (r *Report) OK() bool {
	for _, res := range r.Results {
		if res.Checked && !res.Found {
			return false
		}
	}
	return true
}

// Missing returns the checkable markers that were not found
func (r *Report) Missing() []site.Marker {
	var missing []site.Marker
	for _, res := range r.Results {
		if res.Checked && !res.Found {
			missing = append(missing, res.Marker)
		}
	}
	return missing
}

// Prober fetches the site over plain HTTP
type Prober struct {
	httpClient *http.Client
	userAgent  string
}

// NewProber creates a Prober honouring the configured proxy and user agent
func NewProber(cfg *config.Config, timeout time.Duration) *Prober {
	logger := config.GetLogger()

	// Clone DefaultTransport to keep its pooling and HTTP/2 settings
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.ProxyConnectionString != "" {
		proxyURL, err := parseProxy(cfg.ProxyConnectionString)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	return &Prober{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: newDecodingTransport(baseTransport),
		},
		userAgent: cfg.UserAgent,
	}
}

// parseProxy accepts the same values as the browser's --proxy-server:
// a URL or a bare host:port, which is taken as an HTTP proxy.
func parseProxy(raw string) (*url.URL, error) {
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Host == "" {
		return nil, fmt.Errorf("proxy %q has no host", raw)
	}
	return u, nil
}

// Probe downloads siteURL and looks for every marker of site.Markers()
func (p *Prober) Probe(ctx context.Context, siteURL string) (*Report, error) {
	logger := config.GetLogger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, siteURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", siteURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, siteURL)
	}

	results, err := CheckHTML(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	report := &Report{URL: siteURL, StatusCode: resp.StatusCode, Results: results}
	logger.Info().
		Str("url", siteURL).
		Bool("ok", report.OK()).
		Int("missing", len(report.Missing())).
		Msg("Site probe completed")

	return report, nil
}

// CheckHTML parses an HTML document and reports which static markers it
// contains. Dynamic markers are returned unchecked.
func CheckHTML(body io.Reader, contentType string) ([]MarkerResult, error) {
	utf8Body, err := newUTF8Reader(body, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to decode HTML: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(utf8Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	markers := site.Markers()
	results := make([]MarkerResult, 0, len(markers))
	for _, m := range markers {
		if m.Dynamic {
			results = append(results, MarkerResult{Marker: m})
			continue
		}
		results = append(results, MarkerResult{Marker: m, Checked: true, Found: hasMarker(doc, m)})
	}
	return results, nil
}

func hasMarker(doc *goquery.Document, m site.Marker) bool {
	switch m.Kind {
	case site.KindText:
		return doc.Find("body *").FilterFunction(func(_ int, s *goquery.Selection) bool {
			return strings.Contains(normalizeSpace(s.Text()), m.Value)
		}).Length() > 0
	default:
		return doc.Find(m.Value).Length() > 0
	}
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
