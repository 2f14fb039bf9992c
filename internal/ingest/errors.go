package ingest

import "fmt"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for the activity loader. Each typed error below matches
// its sentinel with errors.Is.
var (
	// ErrNotFound indicates the input source does not exist.
	ErrNotFound = constError("activity document not found")

	// ErrParse indicates the input is not well-formed structured data.
	ErrParse = constError("activity document is not valid")

	// ErrIO indicates any other failure while reading the input.
	ErrIO = constError("activity document could not be read")
)

// NotFoundError reports a missing input source.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("activity document %s not found", e.Path)
}

// Diagnostic returns the line shown to the user.
func (e *NotFoundError) Diagnostic() string {
	return fmt.Sprintf("Error: The file %s was not found.", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ParseError reports input that is not a well-formed document.
type ParseError struct {
	Path   string
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s document %s: %v", e.Format.Label(), e.Path, e.Err)
}

// Diagnostic returns the line shown to the user.
func (e *ParseError) Diagnostic() string {
	return fmt.Sprintf("Error: The file is not a valid %s.", e.Format.Label())
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is matches ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// IOError reports any other read failure.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("reading activity document %s: %v", e.Path, e.Err)
}

// Diagnostic returns the line shown to the user.
func (e *IOError) Diagnostic() string {
	return fmt.Sprintf("An error occurred while reading the file: %v", e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is matches ErrIO.
func (e *IOError) Is(target error) bool { return target == ErrIO }
