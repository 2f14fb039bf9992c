package engine

import "fmt"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for per-category analysis. The typed errors below match
// them with errors.Is.
var (
	// ErrUnknownCategory indicates a top-level key missing from the factor table.
	ErrUnknownCategory = constError("unknown activity category")

	// ErrInvalidShape indicates a category value that is not a mapping of
	// activity name to non-negative quantity.
	ErrInvalidShape = constError("invalid activity details")

	// ErrUnknownActivity indicates an activity name missing from the factor
	// table. Only returned in strict mode.
	ErrUnknownActivity = constError("unknown activity")
)

// UnknownCategoryError reports a category that is not in the factor table.
type UnknownCategoryError struct {
	Category string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown activity category %q", e.Category)
}

// Diagnostic returns the line shown to the user.
func (e *UnknownCategoryError) Diagnostic() string {
	return fmt.Sprintf("Error: '%s' is not a valid activity type.", e.Category)
}

// Is matches ErrUnknownCategory.
func (e *UnknownCategoryError) Is(target error) bool { return target == ErrUnknownCategory }

// InvalidShapeError reports a category whose value has the wrong shape.
type InvalidShapeError struct {
	Category string
	Reason   string
}

func (e *InvalidShapeError) Error() string {
	return fmt.Sprintf("invalid activity details for %q: %s", e.Category, e.Reason)
}

// Diagnostic returns the line shown to the user.
func (e *InvalidShapeError) Diagnostic() string {
	return fmt.Sprintf("An error occurred: Activity details for '%s' should be a dictionary "+
		"matching activity types to quantities (%s).", e.Category, e.Reason)
}

// Is matches ErrInvalidShape.
func (e *InvalidShapeError) Is(target error) bool { return target == ErrInvalidShape }

// UnknownActivityError reports an activity name missing from the factor table.
type UnknownActivityError struct {
	Category string
	Activity string
}

func (e *UnknownActivityError) Error() string {
	return fmt.Sprintf("unknown activity %q in category %q", e.Activity, e.Category)
}

// Diagnostic returns the line shown to the user.
func (e *UnknownActivityError) Diagnostic() string {
	return fmt.Sprintf("Error: '%s' is not a valid activity for '%s'.", e.Activity, e.Category)
}

// Is matches ErrUnknownActivity.
func (e *UnknownActivityError) Is(target error) bool { return target == ErrUnknownActivity }
