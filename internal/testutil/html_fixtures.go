package testutil

import (
	"strings"
)

// BoolPtr is a helper for creating *bool values in tests
func BoolPtr(v bool) *bool {
	return &v
}

// SitePageOptions controls which parts of the translation site markup are
// rendered by GenerateSitePageHTML. Nil fields default to true.
type SitePageOptions struct {
	IncludeFileInput       *bool
	IncludeTranslateButton *bool
	IncludeDownloadButton  *bool
	IncludeLoader          *bool
	IncludeWidgetScript    *bool  // external translate widget loader
	Script                 string // inline script appended to the body
	Charset                string // meta charset, defaults to utf-8
	Title                  string
}

func include(v *bool) bool {
	return v == nil || *v
}

// GenerateSitePageHTML renders a page shaped like the translation service's
// landing page, as served before any script runs
func GenerateSitePageHTML(opts SitePageOptions) string {
	var sb strings.Builder

	charset := opts.Charset
	if charset == "" {
		charset = "utf-8"
	}
	title := opts.Title
	if title == "" {
		title = "Translate Subtitles Online"
	}

	sb.WriteString(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="` + charset + `">
	<title>` + title + `</title>
`)
	if include(opts.IncludeWidgetScript) {
		sb.WriteString(`	<script src="//translate.google.com/translate_a/element.js?cb=googleTranslateElementInit"></script>
`)
	}
	sb.WriteString(`</head>
<body>
<div class="container">
	<form id="upload-form" enctype="multipart/form-data">
`)
	if include(opts.IncludeFileInput) {
		sb.WriteString(`		<input type="file" name="subtitle" accept=".srt,.sub,.sbv,.ass,.vtt,.stl">
`)
	}
	sb.WriteString(`	</form>
	<div id="google_translate_element"></div>
	<div class="actions">
`)
	if include(opts.IncludeTranslateButton) {
		sb.WriteString(`		<button class="btn btn-primary" onclick="translateNow()">1. Translate <i class="fa fa-language"></i></button>
`)
	}
	if include(opts.IncludeDownloadButton) {
		sb.WriteString(`		<button class="btn btn-success" onclick="downloadNow()">2. Download <i class="fa fa-download"></i></button>
`)
	}
	sb.WriteString(`	</div>
`)
	if include(opts.IncludeLoader) {
		sb.WriteString(`	<div id="loader" style="display: none;"></div>
`)
	}
	sb.WriteString(`</div>
`)
	if opts.Script != "" {
		sb.WriteString("<script>\n" + opts.Script + "\n</script>\n")
	}
	sb.WriteString(`</body>
</html>`)

	return sb.String()
}

// GenerateEmptyHTML returns an empty HTML document
func GenerateEmptyHTML() string {
	return `<html><body></body></html>`
}
