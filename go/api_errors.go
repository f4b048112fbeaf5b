package petadoptionserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	petmapper "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/adapters/http/mapper"
	"github.com/Apurer/go-gin-adoption-api/internal/platform/validation"
	apierrors "github.com/Apurer/go-gin-adoption-api/internal/shared/errors"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/failure"
)

// defaultResponder maps transport-level parse errors before falling back to failure categories.
var defaultResponder = apierrors.NewChainedResponder("", mapperErrors)

// adoptionResponder answers a denied adoption with 400 instead of 403.
var adoptionResponder = apierrors.NewChainedResponder("", mapperErrors, forbiddenAsBadRequest)

// respondError answers with the RFC 7807 problem matching err.
func respondError(c *gin.Context, err error) {
	defaultResponder.RespondError(c, err)
}

// respondBindingError reports a body that could not be decoded or validated.
func respondBindingError(c *gin.Context, err error) {
	defaultResponder.ValidationFailed(c, "request body is invalid", validation.ToDetails(err))
}

func mapperErrors(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, petmapper.ErrAgeNotNumber),
		errors.Is(err, petmapper.ErrAgeNotInteger),
		errors.Is(err, petmapper.ErrInvalidQueryParam):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func forbiddenAsBadRequest(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, failure.ErrForbidden) {
		return apierrors.ErrForbidden.WithStatus(http.StatusBadRequest).WithDetail(failure.Message(err)), true
	}
	return apierrors.ProblemDetail{}, false
}
