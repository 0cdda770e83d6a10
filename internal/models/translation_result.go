package models

import "time"

// TranslationResult describes a completed translation run
type TranslationResult struct {
	OutputPath string        // Where the translated file was written
	Size       int64         // Size of the translated file in bytes
	Duration   time.Duration // Wall time from browser launch to file saved
}
