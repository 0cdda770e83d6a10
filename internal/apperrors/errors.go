package apperrors

import "fmt"

// ErrFileNotFound is returned when the subtitle file to translate does not exist.
type ErrFileNotFound struct {
	Path string
}

// Error implements the error interface.
func (e *ErrFileNotFound) Error() string {
	return fmt.Sprintf("Given subtitle file '%s' does not exist", e.Path)
}

// Is allows for error checking with errors.Is().
func (e *ErrFileNotFound) Is(target error) bool {
	_, ok := target.(*ErrFileNotFound)
	return ok
}

// ErrUnsupportedExtension is returned when the subtitle file has an extension
// the translation service does not accept. Supported is the preformatted list
// shown to the user.
type ErrUnsupportedExtension struct {
	Extension string
	Supported string
}

// Error implements the error interface.
func (e *ErrUnsupportedExtension) Error() string {
	return fmt.Sprintf("Invalid file extension. Supported file extensions are: \n%s", e.Supported)
}

// Is allows for error checking with errors.Is().
func (e *ErrUnsupportedExtension) Is(target error) bool {
	_, ok := target.(*ErrUnsupportedExtension)
	return ok
}

// ErrUnsupportedLanguage is returned when the target language is not offered
// by the translation service.
type ErrUnsupportedLanguage struct {
	Language  string
	Supported string
}

// Error implements the error interface.
func (e *ErrUnsupportedLanguage) Error() string {
	return fmt.Sprintf("Invalid target language. Supported target languages are: \n%s", e.Supported)
}

// Is allows for error checking with errors.Is().
func (e *ErrUnsupportedLanguage) Is(target error) bool {
	_, ok := target.(*ErrUnsupportedLanguage)
	return ok
}

// ErrOutputDirNotFound is returned when the output directory does not exist.
type ErrOutputDirNotFound struct {
	Path string
}

// Error implements the error interface.
func (e *ErrOutputDirNotFound) Error() string {
	return fmt.Sprintf("Given output directory '%s' does not exist", e.Path)
}

// Is allows for error checking with errors.Is().
func (e *ErrOutputDirNotFound) Is(target error) bool {
	_, ok := target.(*ErrOutputDirNotFound)
	return ok
}

// ErrStepFailed reports which browser interaction failed. The underlying
// error is kept as-is and reachable through errors.Unwrap.
type ErrStepFailed struct {
	Step string
	Err  error
}

// Error implements the error interface.
func (e *ErrStepFailed) Error() string {
	return fmt.Sprintf("step %q failed: %v", e.Step, e.Err)
}

// Unwrap returns the underlying automation error.
func (e *ErrStepFailed) Unwrap() error {
	return e.Err
}

// NewStepFailedError creates a new ErrStepFailed.
func NewStepFailedError(step string, err error) *ErrStepFailed {
	return &ErrStepFailed{
		Step: step,
		Err:  err,
	}
}

// IsValidationError reports whether err is one of the input validation errors.
func IsValidationError(err error) bool {
	switch err.(type) {
	case *ErrFileNotFound, *ErrUnsupportedExtension, *ErrUnsupportedLanguage, *ErrOutputDirNotFound:
		return true
	default:
		return false
	}
}
