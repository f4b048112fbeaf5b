package gqlapi

import (
	"github.com/Apurer/go-gin-adoption-api/internal/shared/failure"
)

// Error codes reported under extensions.code.
const (
	CodeBadRequest = "BAD_REQUEST"
	CodeNotFound   = "NOT_FOUND"
	CodeForbidden  = "FORBIDDEN"
	CodeConflict   = "CONFLICT"
	CodeInternal   = "INTERNAL"
)

// Error is a resolver failure carrying its category code to the client.
type Error struct {
	err  error
	code string
}

func (e *Error) Error() string { return failure.Message(e.err) }

func (e *Error) Unwrap() error { return e.err }

// Extensions is picked up by graphql-go when formatting the response.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

func toGraphQLError(err error) error {
	if err == nil {
		return nil
	}
	return &Error{err: err, code: codeOf(err)}
}

func codeOf(err error) string {
	switch failure.CategoryOf(err) {
	case failure.ErrBadRequest:
		return CodeBadRequest
	case failure.ErrNotFound:
		return CodeNotFound
	case failure.ErrForbidden:
		return CodeForbidden
	case failure.ErrConflict:
		return CodeConflict
	default:
		return CodeInternal
	}
}
