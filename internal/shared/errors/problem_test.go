package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-adoption-api/internal/shared/failure"
)

func TestFromFailure(t *testing.T) {
	cause := errors.New("user cannot adopt pets")
	cases := map[string]struct {
		err    error
		status int
		typ    string
	}{
		"bad request": {err: failure.BadRequest(cause), status: http.StatusBadRequest, typ: TypeBadRequest},
		"not found":   {err: failure.NotFound(cause), status: http.StatusNotFound, typ: TypeNotFound},
		"forbidden":   {err: failure.Forbidden(cause), status: http.StatusForbidden, typ: TypeForbidden},
		"conflict":    {err: failure.Conflict(cause), status: http.StatusConflict, typ: TypeConflict},
		"plain error": {err: cause, status: http.StatusInternalServerError, typ: TypeInternal},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			problem := FromFailure(tc.err)
			assert.Equal(t, tc.status, problem.Status)
			assert.Equal(t, tc.typ, problem.Type)
			assert.Equal(t, "user cannot adopt pets", problem.Detail)
		})
	}
}

func TestWithExtensionDoesNotMutateTemplate(t *testing.T) {
	problem := ErrValidation.WithExtension("fields", map[string]string{"name": "required"})
	require.NotNil(t, problem.Extensions)
	assert.Nil(t, ErrValidation.Extensions)
}

func TestChainedResponderPrefersMappers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	denied := errors.New("denied")
	responder := NewChainedResponder("", func(err error) (ProblemDetail, bool) {
		if errors.Is(err, denied) {
			return ErrForbidden.WithStatus(http.StatusBadRequest).WithDetail("denied"), true
		}
		return ProblemDetail{}, false
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/adoptions", nil)
	responder.RespondError(c, failure.Forbidden(denied))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	var body ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, TypeForbidden, body.Type)
	assert.Equal(t, "/adoptions", body.Instance)
}
