package failure

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errPetMissing = errors.New("pet not found")

func TestWrapMatchesCategoryAndCause(t *testing.T) {
	err := NotFound(errPetMissing)

	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, err, errPetMissing)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.Equal(t, "pet not found", err.Error())
}

func TestWrapKeepsFirstClassification(t *testing.T) {
	err := Internal(Conflict(errPetMissing))

	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrInternal)
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, BadRequest(nil))
}

func TestCategoryOf(t *testing.T) {
	cases := map[string]struct {
		err  error
		want error
	}{
		"forbidden":      {err: Forbidden(errors.New("user cannot adopt pets")), want: ErrForbidden},
		"wrapped":        {err: fmt.Errorf("request: %w", Conflict(errPetMissing)), want: ErrConflict},
		"unclassified":   {err: errors.New("boom"), want: ErrInternal},
		"bad request":    {err: BadRequest(errPetMissing), want: ErrBadRequest},
		"explicit error": {err: Internal(errPetMissing), want: ErrInternal},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, CategoryOf(tc.err))
		})
	}
	assert.Nil(t, CategoryOf(nil))
}

func TestMessageStripsWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", NotFound(errPetMissing))
	assert.Equal(t, "pet not found", Message(err))
	assert.Equal(t, "boom", Message(errors.New("boom")))
	assert.Equal(t, "", Message(nil))
}
