package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adoptiontypes "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
	petdomain "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/projection"
)

func TestReconcilerFindsAndRepairsDrift(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.addUser(t, "U1", true)
	f.addPet(t, "P1", false)
	f.addPet(t, "P2", false)
	svc := f.service()

	_, err := svc.RequestAdoption(ctx, request("U1", "P1"))
	require.NoError(t, err)
	_, err = svc.RequestAdoption(ctx, request("U1", "P2"))
	require.NoError(t, err)

	// Asymmetric removal leaves the P1 flag and reference behind.
	all, err := svc.ListAdoptions(ctx)
	require.NoError(t, err)
	var p1Adoption string
	for _, a := range all {
		if a.Entity.PetID == "P1" {
			p1Adoption = a.Entity.ID
		}
	}
	require.NoError(t, svc.RemoveAdoption(ctx, adoptiontypes.AdoptionIdentifier{ID: p1Adoption}))
	// Deleting a pet leaves its adoption dangling.
	require.NoError(t, f.pets.Delete(ctx, "P2"))

	reconciler := NewReconciler(f.adoptions, f.pets, f.users, nil)
	report, err := reconciler.Run(ctx, false)
	require.NoError(t, err)
	assert.False(t, report.Clean())
	assert.Equal(t, []string{"P1"}, report.OrphanedPetFlags)
	assert.Equal(t, []PetReference{{UserID: "U1", PetID: "P1"}}, report.OrphanedUserPets)
	assert.Len(t, report.DanglingAdoptions, 1)
	assert.Zero(t, report.Repaired)

	report, err = reconciler.Run(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Repaired)

	pet, err := f.pets.GetByID(ctx, "P1")
	require.NoError(t, err)
	assert.False(t, pet.Entity.Adopted)
	user, err := f.users.GetByID(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, []string{"P2"}, user.Entity.Pets)

	report, err = reconciler.Run(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, report.OrphanedPetFlags)
	assert.Empty(t, report.OrphanedUserPets)
	assert.Len(t, report.DanglingAdoptions, 1)
}

func TestReconcilerCleanState(t *testing.T) {
	f := newFixture()
	f.addUser(t, "U1", true)
	f.addPet(t, "P1", false)
	_, err := f.service().RequestAdoption(context.Background(), request("U1", "P1"))
	require.NoError(t, err)

	report, err := NewReconciler(f.adoptions, f.pets, f.users, nil).Run(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, report.Clean())
	assert.Zero(t, report.Repaired)
}

// adoptingCatalog commits an adoption while the reconciler is scanning pets.
type adoptingCatalog struct {
	ports.PetCatalog
	during func()
}

func (c adoptingCatalog) Find(ctx context.Context, query petdomain.Query) ([]*projection.Projection[*petdomain.Pet], error) {
	c.during()
	return c.PetCatalog.Find(ctx, query)
}

func (f *fixture) assertAdoptedBy(t *testing.T, userID, petID string) {
	t.Helper()
	pet, err := f.pets.GetByID(context.Background(), petID)
	require.NoError(t, err)
	assert.True(t, pet.Entity.Adopted)
	user, err := f.users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, []string{petID}, user.Entity.Pets)
}

func TestReconcilerKeepsAdoptionCommittedMidScan(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.addUser(t, "U1", true)
	f.addPet(t, "P1", false)
	svc := f.service()

	catalog := adoptingCatalog{PetCatalog: f.pets, during: func() {
		_, err := svc.RequestAdoption(ctx, request("U1", "P1"))
		require.NoError(t, err)
	}}
	report, err := NewReconciler(f.adoptions, catalog, f.users, nil, WithRepairLocker(f.locker)).Run(ctx, true)
	require.NoError(t, err)
	assert.True(t, report.Clean())
	assert.Zero(t, report.Repaired)
	f.assertAdoptedBy(t, "U1", "P1")
}

// staleListing serves an adoption snapshot taken before any adoption existed.
type staleListing struct {
	ports.Repository
}

func (staleListing) List(context.Context) ([]*projection.Projection[*domain.Adoption], error) {
	return nil, nil
}

func TestReconcilerRechecksBeforeRepair(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.addUser(t, "U1", true)
	f.addPet(t, "P1", false)
	_, err := f.service().RequestAdoption(ctx, request("U1", "P1"))
	require.NoError(t, err)

	report, err := NewReconciler(staleListing{f.adoptions}, f.pets, f.users, nil, WithRepairLocker(f.locker)).Run(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"P1"}, report.OrphanedPetFlags)
	assert.Equal(t, []PetReference{{UserID: "U1", PetID: "P1"}}, report.OrphanedUserPets)
	assert.Zero(t, report.Repaired)
	f.assertAdoptedBy(t, "U1", "P1")
}

func TestReconcilerReportsIncompleteAdoption(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.addUser(t, "U1", true)
	f.addPet(t, "P1", false)
	adoption, err := domain.NewAdoption("a-1", "U1", "P1", fixedNow)
	require.NoError(t, err)
	_, err = f.adoptions.Insert(ctx, adoption)
	require.NoError(t, err)

	report, err := NewReconciler(f.adoptions, f.pets, f.users, nil).Run(ctx, false)
	require.NoError(t, err)
	assert.False(t, report.Clean())
	assert.Equal(t, []string{"a-1"}, report.IncompleteAdoptions)
	assert.Empty(t, report.DanglingAdoptions)
}
