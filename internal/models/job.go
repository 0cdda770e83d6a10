package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputMarker separates the original base name from the language code in
// translated file names.
const OutputMarker = "tl"

// Job holds the validated parameters of one translation run
type Job struct {
	InputPath  string // Subtitle file to upload
	OutputDir  string // Existing directory receiving the translated file
	TargetLang string // Canonical language code from the supported set
}

// OutputFileName returns the name of the translated file, <base>.tl.<lang><ext>
func (j Job) OutputFileName() string {
	return OutputFileName(j.InputPath, j.TargetLang)
}

// OutputPath returns the full destination path of the translated file
func (j Job) OutputPath() string {
	return filepath.Join(j.OutputDir, j.OutputFileName())
}

// OutputFileName derives the translated file name from the input path and target language.
// "movies/movie.srt" with "fr" gives "movie.tl.fr.srt".
func OutputFileName(inputPath, lang string) string {
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s.%s.%s%s", name, OutputMarker, lang, ext)
}
