package probe

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// acceptEncoding advertises every encoding the transport can undo.
const acceptEncoding = "gzip, br, zstd"

type decoder func(r io.Reader) (io.ReadCloser, error)

var decoders = map[string]decoder{
	"gzip": func(r io.Reader) (io.ReadCloser, error) {
		return gzip.NewReader(r)
	},
	"br": func(r io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(brotli.NewReader(r)), nil
	},
	"zstd": func(r io.Reader) (io.ReadCloser, error) {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	},
}

// decodingTransport asks for compressed responses and transparently
// decodes them, including stacked encodings such as "gzip, br".
type decodingTransport struct {
	base http.RoundTripper
}

func newDecodingTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &decodingTransport{base: base}
}

func (t *decodingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Accept-Encoding") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("Accept-Encoding", acceptEncoding)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	encodings := contentEncodings(resp.Header.Get("Content-Encoding"))
	if len(encodings) == 0 {
		return resp, nil
	}
	for _, enc := range encodings {
		if _, ok := decoders[enc]; !ok {
			// Leave the body untouched rather than half-decode it
			return resp, nil
		}
	}

	body := &layeredBody{raw: resp.Body}
	var reader io.Reader = resp.Body
	// Encodings are listed in the order they were applied
	for i := len(encodings) - 1; i >= 0; i-- {
		rc, err := decoders[encodings[i]](reader)
		if err != nil {
			_ = body.Close()
			return nil, fmt.Errorf("failed to decode %s response: %w", encodings[i], err)
		}
		body.layers = append(body.layers, rc)
		reader = rc
	}
	body.reader = reader

	resp.Body = body
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true

	return resp, nil
}

// layeredBody reads through a decoder chain and closes every layer and
// the raw body.
type layeredBody struct {
	reader io.Reader
	layers []io.ReadCloser
	raw    io.ReadCloser
}

func (b *layeredBody) Read(p []byte) (int, error) {
	return b.reader.Read(p)
}

func (b *layeredBody) Close() error {
	var first error
	for i := len(b.layers) - 1; i >= 0; i-- {
		if err := b.layers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	if err := b.raw.Close(); err != nil && first == nil {
		first = err
	}
	return first
}

// contentEncodings splits a Content-Encoding header into normalised tokens,
// dropping "identity".
func contentEncodings(header string) []string {
	var out []string
	for _, part := range strings.Split(header, ",") {
		enc := strings.ToLower(strings.TrimSpace(part))
		if enc == "" || enc == "identity" {
			continue
		}
		out = append(out, enc)
	}
	return out
}
