package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPetDefaultsRace(t *testing.T) {
	pet, err := NewPet("p-1", "  Rex ", "", 3)
	require.NoError(t, err)
	assert.Equal(t, "Rex", pet.Name)
	assert.Equal(t, DefaultRace, pet.Race)
	assert.False(t, pet.Adopted)
}

func TestNewPetRejectsInvalidInput(t *testing.T) {
	_, err := NewPet("", "Rex", "dog", 1)
	assert.ErrorIs(t, err, ErrEmptyID)

	_, err = NewPet("p-1", " ", "dog", 1)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewPet("p-1", "Rex", "dog", -1)
	assert.ErrorIs(t, err, ErrInvalidAge)
}

func TestMarkAdoptedOnlyOnce(t *testing.T) {
	pet, err := NewPet("p-1", "Rex", "dog", 1)
	require.NoError(t, err)

	require.NoError(t, pet.MarkAdopted())
	assert.ErrorIs(t, pet.MarkAdopted(), ErrAlreadyTaken)

	require.NoError(t, pet.Release())
	assert.ErrorIs(t, pet.Release(), ErrNotAdopted)
}

func TestFilterMatches(t *testing.T) {
	pet := &Pet{ID: "p-1", Name: "Biscuit", Race: "Beagle", Age: 4}
	three, four, five := 3, 4, 5
	bis, cat := "bis", "cat"
	adopted := true

	assert.True(t, Filter{}.Matches(pet))
	assert.True(t, Filter{Name: &StringFilter{Contains: &bis}}.Matches(pet))
	assert.False(t, Filter{Name: &StringFilter{NotContains: &bis}}.Matches(pet))
	assert.True(t, Filter{Race: &StringFilter{NotContains: &cat}}.Matches(pet))
	assert.True(t, Filter{Age: &IntFilter{Gt: &three, Lt: &five}}.Matches(pet))
	assert.True(t, Filter{Age: &IntFilter{Gte: &four, Lte: &four}}.Matches(pet))
	assert.False(t, Filter{Age: &IntFilter{Ne: &four}}.Matches(pet))
	assert.False(t, Filter{Adopted: &adopted}.Matches(pet))
}

func TestParseSort(t *testing.T) {
	keys, err := ParseSort("name, -age")
	require.NoError(t, err)
	assert.Equal(t, []SortKey{{Field: SortByName}, {Field: SortByAge, Descending: true}}, keys)

	_, err = ParseSort("weight")
	assert.ErrorIs(t, err, ErrInvalidQuery)

	keys, err = ParseSort("")
	require.NoError(t, err)
	assert.Nil(t, keys)
}

func TestSortPetsAndWindow(t *testing.T) {
	pets := []*Pet{
		{ID: "c", Name: "Milo", Age: 2},
		{ID: "a", Name: "Luna", Age: 5},
		{ID: "b", Name: "Ace", Age: 5},
	}
	SortPets(pets, []SortKey{{Field: SortByAge, Descending: true}, {Field: SortByName}})
	assert.Equal(t, []string{"b", "a", "c"}, []string{pets[0].ID, pets[1].ID, pets[2].ID})

	start, end := Page{Limit: 2, Offset: 1}.Window(len(pets))
	assert.Equal(t, 1, start)
	assert.Equal(t, 3, end)

	start, end = Page{Offset: 10}.Window(len(pets))
	assert.Equal(t, 3, start)
	assert.Equal(t, 3, end)
}
