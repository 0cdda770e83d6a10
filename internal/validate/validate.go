// Package validate checks invocation parameters before any browser work.
package validate

import (
	"os"
	"path/filepath"

	"github.com/Belphemur/tlsubs/internal/apperrors"
	"github.com/Belphemur/tlsubs/internal/config"
	"github.com/Belphemur/tlsubs/internal/format"
	"github.com/Belphemur/tlsubs/internal/languages"
	"github.com/Belphemur/tlsubs/internal/models"
)

// Validate checks, in order, that the subtitle file exists, that its
// extension is supported, that the target language is supported and that
// the output directory exists. The first failing check is returned.
// On success the returned Job carries the canonical language code.
func Validate(filePath, outputDir, targetLang string) (models.Job, error) {
	logger := config.GetLogger()

	if info, err := os.Stat(filePath); err != nil || info.IsDir() {
		return models.Job{}, &apperrors.ErrFileNotFound{Path: filePath}
	}

	ext := filepath.Ext(filePath)
	if !languages.IsSupportedExtension(ext) {
		return models.Job{}, &apperrors.ErrUnsupportedExtension{
			Extension: ext,
			Supported: format.List(languages.Extensions(), format.DefaultWidth),
		}
	}

	lang, ok := languages.Resolve(targetLang)
	if !ok {
		return models.Job{}, &apperrors.ErrUnsupportedLanguage{
			Language:  targetLang,
			Supported: format.List(languages.Languages(), format.DefaultWidth),
		}
	}

	if info, err := os.Stat(outputDir); err != nil || !info.IsDir() {
		return models.Job{}, &apperrors.ErrOutputDirNotFound{Path: outputDir}
	}

	logger.Debug().
		Str("file", filePath).
		Str("output_dir", outputDir).
		Str("target_lang", lang).
		Msg("Input validated")

	return models.Job{
		InputPath:  filePath,
		OutputDir:  outputDir,
		TargetLang: lang,
	}, nil
}
