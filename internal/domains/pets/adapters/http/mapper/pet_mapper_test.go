package mapper

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePetAgeValidation(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantAge *int
		wantErr error
	}{
		{name: "integer", body: `{"name":"Rex","age":3}`, wantAge: intPtr(3)},
		{name: "missing", body: `{"name":"Rex"}`},
		{name: "string", body: `{"name":"Rex","age":"3"}`, wantErr: ErrAgeNotNumber},
		{name: "fraction", body: `{"name":"Rex","age":2.5}`, wantErr: ErrAgeNotInteger},
		{name: "negative", body: `{"name":"Rex","age":-1}`, wantErr: ErrAgeNotInteger},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var payload CreatePet
			require.NoError(t, json.Unmarshal([]byte(tc.body), &payload))

			input, err := payload.ToRegisterInput()
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantAge, input.Age)
		})
	}
}

func TestParseListQuery(t *testing.T) {
	values, err := url.ParseQuery("race=dog&name_contains=bo&age_gte=2&age_lt=9&adopted=false&sort=-age&limit=5&offset=1")
	require.NoError(t, err)

	input, err := ParseListQuery(values)
	require.NoError(t, err)
	require.NotNil(t, input.Filter.Race)
	assert.Equal(t, "dog", *input.Filter.Race.Eq)
	require.NotNil(t, input.Filter.Name)
	assert.Nil(t, input.Filter.Name.Eq)
	assert.Equal(t, "bo", *input.Filter.Name.Contains)
	require.NotNil(t, input.Filter.Age)
	assert.Equal(t, 2, *input.Filter.Age.Gte)
	assert.Equal(t, 9, *input.Filter.Age.Lt)
	require.NotNil(t, input.Filter.Adopted)
	assert.False(t, *input.Filter.Adopted)
	assert.Equal(t, "-age", input.Sort)
	assert.Equal(t, 5, input.Limit)
	assert.Equal(t, 1, input.Offset)

	_, err = ParseListQuery(url.Values{"age_gt": {"old"}})
	assert.ErrorIs(t, err, ErrInvalidQueryParam)
}

func TestDeletedMessage(t *testing.T) {
	assert.Equal(t, "Pet with id: p-1 deleted successfully", DeletedMessage("p-1").Message)
}

func intPtr(v int) *int { return &v }
