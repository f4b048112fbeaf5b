// Package failure classifies application errors into the categories every transport maps.
package failure

import "errors"

// Category sentinels. A *Error matches exactly one of them via errors.Is.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrInternal   = errors.New("internal error")
)

// Error ties an underlying cause to a category.
type Error struct {
	Category error
	Cause    error
}

// Error returns the cause message so transports can surface it verbatim.
func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Category.Error()
	}
	return e.Cause.Error()
}

// Unwrap exposes both the category and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Category}
	}
	return []error{e.Category, e.Cause}
}

// BadRequest marks err as a caller error.
func BadRequest(err error) error { return wrap(ErrBadRequest, err) }

// NotFound marks err as a missing resource.
func NotFound(err error) error { return wrap(ErrNotFound, err) }

// Forbidden marks err as a business-rule denial.
func Forbidden(err error) error { return wrap(ErrForbidden, err) }

// Conflict marks err as a current-state invariant violation.
func Conflict(err error) error { return wrap(ErrConflict, err) }

// Internal marks err as an unexpected or infrastructure failure.
func Internal(err error) error { return wrap(ErrInternal, err) }

func wrap(category, err error) error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return err
	}
	return &Error{Category: category, Cause: err}
}

// CategoryOf returns the category sentinel for err. Unclassified errors are internal.
func CategoryOf(err error) error {
	if err == nil {
		return nil
	}
	for _, category := range []error{ErrBadRequest, ErrNotFound, ErrForbidden, ErrConflict, ErrInternal} {
		if errors.Is(err, category) {
			return category
		}
	}
	return ErrInternal
}

// Message returns the human readable part of err without the category prefix.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Error()
	}
	return err.Error()
}
