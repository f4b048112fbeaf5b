package gqlapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adoptionsmemory "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/adapters/memory"
	adoptionsapp "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application"
	adoptionports "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
	petsmemory "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/adapters/memory"
	petsapp "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/application"
	usersmemory "github.com/Apurer/go-gin-adoption-api/internal/domains/users/adapters/memory"
	usersapp "github.com/Apurer/go-gin-adoption-api/internal/domains/users/application"
)

type response struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message    string         `json:"message"`
		Extensions map[string]any `json:"extensions"`
	} `json:"errors"`
}

func sequence(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pets := petsmemory.NewRepository()
	users := usersmemory.NewRepository()
	adoptions := adoptionsmemory.NewRepository()
	saga := adoptionsapp.NewSaga(adoptionports.Stores{Adoptions: adoptions, Pets: pets, Users: users},
		adoptionsapp.WithIDGenerator(sequence("A")))

	schema, err := NewSchema(Services{
		Pets:      petsapp.NewService(pets, petsapp.WithIDGenerator(sequence("P"))),
		Users:     usersapp.NewService(users, pets, usersapp.WithIDGenerator(sequence("U"))),
		Adoptions: adoptionsapp.NewService(saga, adoptionsapp.WithLocker(adoptionsmemory.NewLocker())),
	})
	require.NoError(t, err)
	return NewRouterWithGinEngine(gin.New(), schema)
}

func exec(t *testing.T, router http.Handler, query string, variables map[string]any) response {
	t.Helper()
	raw, err := json.Marshal(Request{Query: query, Variables: variables})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func field[T any](t *testing.T, res response, name string) T {
	t.Helper()
	require.Empty(t, res.Errors)
	var out T
	require.NoError(t, json.Unmarshal(res.Data[name], &out))
	return out
}

func errorCode(t *testing.T, res response) string {
	t.Helper()
	require.Len(t, res.Errors, 1)
	code, _ := res.Errors[0].Extensions["code"].(string)
	return code
}

const (
	createUser = `mutation($name: String) { createUser(input: {name: $name}) { id canAdopt } }`
	verifyUser = `mutation($id: ID!, $can: Boolean!) { verifyUser(id: $id, canAdopt: $can) { id canAdopt } }`
	createPet  = `mutation($name: String, $race: String, $age: Int) { createPet(input: {name: $name, race: $race, age: $age}) { id adopted } }`
	adopt      = `mutation($userId: String, $petId: String) {
		createAdoption(input: {userId: $userId, petId: $petId}) { id userId petId dateTime links { self } }
	}`
)

type idOnly struct {
	ID       string `json:"id"`
	CanAdopt bool   `json:"canAdopt"`
	Adopted  bool   `json:"adopted"`
}

func seed(t *testing.T, router http.Handler, verified bool) (userID, petID string) {
	t.Helper()
	user := field[idOnly](t, exec(t, router, createUser, map[string]any{"name": "Ann"}), "createUser")
	if verified {
		field[idOnly](t, exec(t, router, verifyUser, map[string]any{"id": user.ID, "can": true}), "verifyUser")
	}
	pet := field[idOnly](t, exec(t, router, createPet, map[string]any{"name": "Rex", "race": "dog", "age": 3}), "createPet")
	return user.ID, pet.ID
}

func TestCreateAdoptionLinksUserAndPet(t *testing.T) {
	router := newTestRouter(t)
	userID, petID := seed(t, router, true)

	res := exec(t, router, adopt, map[string]any{"userId": userID, "petId": petID})
	created := field[struct {
		ID       string `json:"id"`
		UserID   string `json:"userId"`
		PetID    string `json:"petId"`
		DateTime string `json:"dateTime"`
		Links    struct {
			Self string `json:"self"`
		} `json:"links"`
	}](t, res, "createAdoption")
	assert.Equal(t, "A1", created.ID)
	assert.Equal(t, userID, created.UserID)
	assert.Equal(t, petID, created.PetID)
	assert.NotEmpty(t, created.DateTime)
	assert.Equal(t, "/adoptions/adoption/A1", created.Links.Self)

	res = exec(t, router, `query($id: ID!) { adoption(id: $id) { id user { id pets { id adopted } } pet { id adopted } } }`,
		map[string]any{"id": "A1"})
	loaded := field[struct {
		ID   string `json:"id"`
		User struct {
			ID   string   `json:"id"`
			Pets []idOnly `json:"pets"`
		} `json:"user"`
		Pet idOnly `json:"pet"`
	}](t, res, "adoption")
	assert.Equal(t, userID, loaded.User.ID)
	require.Len(t, loaded.User.Pets, 1)
	assert.Equal(t, petID, loaded.User.Pets[0].ID)
	assert.True(t, loaded.Pet.Adopted)
}

func TestCreateAdoptionErrorCodes(t *testing.T) {
	router := newTestRouter(t)
	unverified, petID := seed(t, router, false)

	res := exec(t, router, adopt, map[string]any{"userId": unverified, "petId": petID})
	assert.Equal(t, CodeForbidden, errorCode(t, res))

	res = exec(t, router, adopt, map[string]any{"userId": unverified, "petId": "missing"})
	assert.Equal(t, CodeNotFound, errorCode(t, res))

	res = exec(t, router, adopt, map[string]any{"petId": petID})
	assert.Equal(t, CodeBadRequest, errorCode(t, res))

	verified := field[idOnly](t, exec(t, router, createUser, map[string]any{"name": "Bo"}), "createUser")
	field[idOnly](t, exec(t, router, verifyUser, map[string]any{"id": verified.ID, "can": true}), "verifyUser")
	exec(t, router, adopt, map[string]any{"userId": verified.ID, "petId": petID})
	res = exec(t, router, adopt, map[string]any{"userId": verified.ID, "petId": petID})
	assert.Equal(t, CodeConflict, errorCode(t, res))
}

func TestPetsQueryFiltersAndSorts(t *testing.T) {
	router := newTestRouter(t)
	for _, p := range []map[string]any{
		{"name": "Rex", "race": "dog", "age": 3},
		{"name": "Tom", "race": "cat", "age": 5},
		{"name": "Max", "race": "dog", "age": 7},
	} {
		exec(t, router, createPet, p)
	}

	res := exec(t, router, `{ pets(filter: {race: {eq: "dog"}}, sort: "-age") { name } }`, nil)
	pets := field[[]struct {
		Name string `json:"name"`
	}](t, res, "pets")
	require.Len(t, pets, 2)
	assert.Equal(t, "Max", pets[0].Name)
	assert.Equal(t, "Rex", pets[1].Name)

	res = exec(t, router, `{ pets(filter: {age: {gte: 4}}, pagination: {limit: 1}, sort: "name") { name } }`, nil)
	pets = field[[]struct {
		Name string `json:"name"`
	}](t, res, "pets")
	require.Len(t, pets, 1)
	assert.Equal(t, "Max", pets[0].Name)

	res = exec(t, router, `{ pets(sort: "weight") { name } }`, nil)
	assert.Equal(t, CodeBadRequest, errorCode(t, res))
}

func TestPetMutations(t *testing.T) {
	router := newTestRouter(t)
	_, petID := seed(t, router, false)

	res := exec(t, router, `mutation($id: ID!) { updatePet(id: $id, input: {age: 4}) { id } }`, map[string]any{"id": petID})
	assert.Equal(t, petID, field[idOnly](t, res, "updatePet").ID)

	res = exec(t, router, `mutation($id: ID!) { deletePet(id: $id) }`, map[string]any{"id": petID})
	assert.Equal(t, "Pet with id: "+petID+" deleted successfully", field[string](t, res, "deletePet"))

	res = exec(t, router, `query($id: ID!) { pet(id: $id) { id } }`, map[string]any{"id": petID})
	assert.Equal(t, CodeNotFound, errorCode(t, res))

	res = exec(t, router, createPet, map[string]any{"race": "dog"})
	assert.Equal(t, CodeBadRequest, errorCode(t, res))
}

func TestHandlerRejectsEmptyQuery(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "query is required")
}

func TestHandlerServesGetQueries(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/graphql?query=%7B%20users%20%7B%20id%20%7D%20%7D", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"users":[]}}`, rec.Body.String())
}
