package services

// Domain error kinds. Handlers map these to HTTP status codes; anything else
// is treated as an internal failure.

// ValidationError reports missing or malformed input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// DuplicateError reports a uniqueness violation (taken name, record already
// present at the exact date).
type DuplicateError struct {
	Msg string
}

func (e *DuplicateError) Error() string { return e.Msg }

// NotFoundError reports that a referenced user, record or photo does not
// exist.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

func validationErr(msg string) error { return &ValidationError{Msg: msg} }
func duplicateErr(msg string) error  { return &DuplicateError{Msg: msg} }
func notFoundErr(msg string) error   { return &NotFoundError{Msg: msg} }
