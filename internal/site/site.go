// Package site describes the markup of the translation service that the
// translator depends on. Any change on the service side surfaces here.
package site

// Selectors and labels used by the translation pipeline.
const (
	FileInput      = "input[type=file]"
	Popup          = ".popup-vip.notranslate"
	PopupClose     = "a.close"
	LanguageSelect = ".goog-te-combo"
	Loader         = "#loader"
	TranslateText  = "1. Translate"
	DownloadText   = "2. Download"

	// LoaderHidden is true once the service has finished translating.
	LoaderHidden = `() => document.querySelector("#loader").style.display === "none"`
)

// Kind tells how a marker can be located in the served HTML.
type Kind int

const (
	KindSelector Kind = iota // CSS selector
	KindText                 // visible text
)

// Marker is one piece of markup the pipeline interacts with.
type Marker struct {
	Name  string
	Kind  Kind
	Value string
	// Dynamic markers are injected by scripts after load and are absent
	// from the HTML the server sends.
	Dynamic bool
}

// Markers lists every element the pipeline touches, in pipeline order.
func Markers() []Marker {
	return []Marker{
		{Name: "file input", Kind: KindSelector, Value: FileInput},
		{Name: "promo popup", Kind: KindSelector, Value: Popup, Dynamic: true},
		{Name: "language select", Kind: KindSelector, Value: LanguageSelect, Dynamic: true},
		{Name: "translate trigger", Kind: KindText, Value: TranslateText},
		{Name: "loader", Kind: KindSelector, Value: Loader},
		{Name: "download trigger", Kind: KindText, Value: DownloadText},
	}
}
