// Package languages holds the fixed sets of target languages and subtitle
// file extensions accepted by the translation service.
package languages

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// supportedLanguages is ordered the way the service lists them.
var supportedLanguages = []string{
	"nl", "af", "sq", "am", "ar", "hy", "as", "ay", "az", "bm", "eu", "be", "bn", "bho", "my", "bs", "bg", "ca", "ceb",
	"ny", "zh-TW", "zh-CN", "co", "da", "dv", "doi", "de", "en", "eo", "et", "ee", "fi", "fr", "fy", "gl", "ka", "el",
	"gn", "gu", "ht", "ha", "haw", "iw", "hi", "hmn", "hu", "ga", "ig", "is", "ilo", "id", "it", "ja", "jw", "yi", "kn",
	"kk", "km", "rw", "ky", "ku", "ckb", "gom", "ko", "kri", "hr", "lo", "la", "lv", "ln", "lt", "lg", "lb", "mk", "sv",
	"mai", "mg", "ml", "ms", "mt", "mi", "mr", "lus", "mn", "ne", "no", "or", "ug", "uk", "uz", "om", "ps", "fa", "pl",
	"pt", "pa", "qu", "ro", "ru", "sm", "sa", "gd", "nso", "sr", "st", "sn", "sd", "si", "sk", "sl", "su", "so", "es",
	"sw", "tg", "tl", "ta", "tt", "te", "th", "ti", "cs", "ts", "tk", "tr", "ak", "ur", "vi", "cy", "xh", "yo", "zu",
}

var supportedExtensions = []string{".srt", ".sub", ".sbv", ".ass", ".vtt", ".stl"}

var (
	languageIndex  = make(map[string]string, len(supportedLanguages)) // lower-cased code -> canonical code
	extensionIndex = make(map[string]struct{}, len(supportedExtensions))
)

func init() {
	for _, code := range supportedLanguages {
		languageIndex[strings.ToLower(code)] = code
	}
	for _, ext := range supportedExtensions {
		extensionIndex[ext] = struct{}{}
	}
}

// Languages returns a copy of the supported language codes in display order.
func Languages() []string {
	return append([]string(nil), supportedLanguages...)
}

// Extensions returns a copy of the supported file extensions.
func Extensions() []string {
	return append([]string(nil), supportedExtensions...)
}

// Resolve matches code case-insensitively against the supported set and
// returns its canonical spelling (e.g. "NL" -> "nl", "zh-tw" -> "zh-TW").
func Resolve(code string) (string, bool) {
	canonical, ok := languageIndex[strings.ToLower(code)]
	return canonical, ok
}

// IsSupportedExtension reports whether ext (including the leading dot) is
// accepted. The comparison is case-sensitive.
func IsSupportedExtension(ext string) bool {
	_, ok := extensionIndex[ext]
	return ok
}

// Name returns the English name of a language code, or "" when the code
// is not a tag x/text knows a name for.
func Name(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return ""
	}
	return display.Tags(language.English).Name(tag)
}
