package models

import (
	"path/filepath"
	"testing"
)

func TestOutputFileName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		lang  string
		want  string
	}{
		{"simple srt", "movie.srt", "fr", "movie.tl.fr.srt"},
		{"nested path", filepath.Join("videos", "show", "ep01.vtt"), "es", "ep01.tl.es.vtt"},
		{"dotted base name", "my.movie.2020.ass", "de", "my.movie.2020.tl.de.ass"},
		{"mixed case language", "clip.sbv", "zh-TW", "clip.tl.zh-TW.sbv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := OutputFileName(tt.input, tt.lang); got != tt.want {
				t.Errorf("OutputFileName(%q, %q) = %q, want %q", tt.input, tt.lang, got, tt.want)
			}
		})
	}
}

func TestJob_OutputPath(t *testing.T) {
	t.Parallel()
	job := Job{
		InputPath:  filepath.Join("in", "sample.srt"),
		OutputDir:  filepath.Join("tmp", "out"),
		TargetLang: "es",
	}

	if got := job.OutputFileName(); got != "sample.tl.es.srt" {
		t.Errorf("OutputFileName() = %q, want sample.tl.es.srt", got)
	}
	want := filepath.Join("tmp", "out", "sample.tl.es.srt")
	if got := job.OutputPath(); got != want {
		t.Errorf("OutputPath() = %q, want %q", got, want)
	}
}
