package rpc

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Apurer/go-gin-adoption-api/internal/shared/failure"
)

// toStatus converts a classified failure. Conflicts use conflict, which differs between
// duplicate resources and adoption state.
func toStatus(err error, conflict codes.Code) error {
	if err == nil {
		return nil
	}
	var code codes.Code
	switch failure.CategoryOf(err) {
	case failure.ErrBadRequest:
		code = codes.InvalidArgument
	case failure.ErrNotFound:
		code = codes.NotFound
	case failure.ErrForbidden:
		code = codes.PermissionDenied
	case failure.ErrConflict:
		code = conflict
	default:
		code = codes.Internal
	}
	return status.Error(code, failure.Message(err))
}

// fromStatus classifies an error returned by a remote call.
func fromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return failure.Internal(err)
	}
	cause := errors.New(st.Message())
	switch st.Code() {
	case codes.InvalidArgument:
		return failure.BadRequest(cause)
	case codes.NotFound:
		return failure.NotFound(cause)
	case codes.PermissionDenied:
		return failure.Forbidden(cause)
	case codes.AlreadyExists, codes.FailedPrecondition, codes.Aborted:
		return failure.Conflict(cause)
	default:
		return failure.Internal(err)
	}
}
