package validation

import (
	"encoding/json"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name" binding:"required,max=5"`
	Limit int    `form:"limit" binding:"omitempty,min=1"`
}

func TestToDetailsUsesJSONNames(t *testing.T) {
	Init()
	err := binding.Validator.ValidateStruct(&payload{Name: "toolongname", Limit: -1})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be at most 5 characters long", details["name"])
	assert.Equal(t, "must be at least 1", details["limit"])
}

func TestToDetailsRequired(t *testing.T) {
	Init()
	err := binding.Validator.ValidateStruct(&payload{})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"name": "is required"}, ToDetails(err))
}

func TestToDetailsDecodeErrors(t *testing.T) {
	var target struct {
		Age int `json:"age"`
	}
	err := json.Unmarshal([]byte(`{"age":"two"}`), &target)
	assert.Equal(t, map[string]string{"age": "must be a int"}, ToDetails(err))

	err = json.Unmarshal([]byte(`{`), &target)
	assert.NotEmpty(t, ToDetails(err))
	assert.Nil(t, ToDetails(nil))
}
