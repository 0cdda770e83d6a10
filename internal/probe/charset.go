package probe

import (
	"io"

	"golang.org/x/net/html/charset"
)

// newUTF8Reader converts body to UTF-8 before goquery parses it. The
// encoding is taken from contentType when it names one, otherwise from
// a BOM, a <meta> declaration or content sniffing.
func newUTF8Reader(body io.Reader, contentType string) (io.Reader, error) {
	return charset.NewReader(body, contentType)
}
