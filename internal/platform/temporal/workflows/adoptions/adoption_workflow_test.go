package adoptions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"

	adoptionsmemory "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/adapters/memory"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application"
	adoptiontypes "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
	petsmemory "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/adapters/memory"
	petdomain "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
	usersmemory "github.com/Apurer/go-gin-adoption-api/internal/domains/users/adapters/memory"
	userdomain "github.com/Apurer/go-gin-adoption-api/internal/domains/users/domain"
	adoptionactivities "github.com/Apurer/go-gin-adoption-api/internal/platform/temporal/activities/adoptions"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/projection"
)

type harness struct {
	env       *testsuite.TestWorkflowEnvironment
	pets      *petsmemory.Repository
	users     *usersmemory.Repository
	adoptions *adoptionsmemory.Repository
}

func newHarness(t *testing.T, wrap ...func(ports.Stores) ports.Stores) *harness {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	h := &harness{
		env:       suite.NewTestWorkflowEnvironment(),
		pets:      petsmemory.NewRepository(),
		users:     usersmemory.NewRepository(),
		adoptions: adoptionsmemory.NewRepository(),
	}
	stores := ports.Stores{Adoptions: h.adoptions, Pets: h.pets, Users: h.users}
	for _, w := range wrap {
		stores = w(stores)
	}
	saga := application.NewSaga(stores)
	acts := adoptionactivities.NewActivities(saga)

	h.env.RegisterWorkflowWithOptions(AdoptionWorkflow, workflow.RegisterOptions{Name: AdoptionWorkflowName})
	for name, fn := range map[string]interface{}{
		adoptionactivities.EvaluateAdoptionActivityName: acts.Evaluate,
		adoptionactivities.RecordAdoptionActivityName:   acts.Record,
		adoptionactivities.MarkPetAdoptedActivityName:   acts.MarkPetAdopted,
		adoptionactivities.AttachPetActivityName:        acts.AttachPet,
		adoptionactivities.ReleasePetActivityName:       acts.ReleasePet,
		adoptionactivities.DiscardAdoptionActivityName:  acts.Discard,
	} {
		h.env.RegisterActivityWithOptions(fn, activity.RegisterOptions{Name: name})
	}
	return h
}

func (h *harness) seed(t *testing.T, userID string, canAdopt bool, petID string, adopted bool) {
	t.Helper()
	ctx := context.Background()
	user, err := userdomain.NewUser(userID, "user "+userID)
	require.NoError(t, err)
	user.Verify(canAdopt)
	_, err = h.users.Create(ctx, user)
	require.NoError(t, err)
	pet, err := petdomain.NewPet(petID, "pet "+petID, "cat", 3)
	require.NoError(t, err)
	_, err = h.pets.Create(ctx, pet)
	require.NoError(t, err)
	if adopted {
		require.NoError(t, h.pets.SetAdopted(ctx, petID, true))
	}
}

func input(userID, petID string) AdoptionWorkflowInput {
	return AdoptionWorkflowInput{Request: adoptiontypes.RequestAdoptionInput{UserID: userID, PetID: petID}}
}

func TestAdoptionWorkflowCompletes(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "U1", true, "P1", false)

	h.env.ExecuteWorkflow(AdoptionWorkflowName, input("U1", "P1"))
	require.True(t, h.env.IsWorkflowCompleted())
	require.NoError(t, h.env.GetWorkflowError())

	var result adoptiontypes.AdoptionProjection
	require.NoError(t, h.env.GetWorkflowResult(&result))
	assert.NotEmpty(t, result.Entity.ID)
	assert.Equal(t, "P1", result.Entity.PetID)

	pet, err := h.pets.GetByID(context.Background(), "P1")
	require.NoError(t, err)
	assert.True(t, pet.Entity.Adopted)
	user, err := h.users.GetByID(context.Background(), "U1")
	require.NoError(t, err)
	assert.Equal(t, []string{"P1"}, user.Entity.Pets)
}

func TestAdoptionWorkflowRejectionCarriesReason(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "U2", false, "P2", false)

	h.env.ExecuteWorkflow(AdoptionWorkflowName, input("U2", "P2"))
	require.True(t, h.env.IsWorkflowCompleted())

	err := h.env.GetWorkflowError()
	require.Error(t, err)
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, application.ReasonUserCannotAdopt, appErr.Type())
	assert.True(t, appErr.NonRetryable())

	all, listErr := h.adoptions.List(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, all)
}

func TestAdoptionWorkflowCompensatesFailedLink(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "U1", true, "P1", false)
	h.env.OnActivity(adoptionactivities.AttachPetActivityName, mock.Anything, mock.Anything).
		Return(temporal.NewNonRetryableApplicationError("user store offline", "STORE_DOWN", nil))

	h.env.ExecuteWorkflow(AdoptionWorkflowName, input("U1", "P1"))
	require.True(t, h.env.IsWorkflowCompleted())

	var appErr *temporal.ApplicationError
	require.True(t, errors.As(h.env.GetWorkflowError(), &appErr))
	assert.Equal(t, "STORE_DOWN", appErr.Type())

	pet, err := h.pets.GetByID(context.Background(), "P1")
	require.NoError(t, err)
	assert.False(t, pet.Entity.Adopted)
	all, err := h.adoptions.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAdoptionWorkflowReportsFailedCompensation(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "U1", true, "P1", false)
	h.env.OnActivity(adoptionactivities.AttachPetActivityName, mock.Anything, mock.Anything).
		Return(temporal.NewNonRetryableApplicationError("user store offline", "STORE_DOWN", nil))
	h.env.OnActivity(adoptionactivities.ReleasePetActivityName, mock.Anything, mock.Anything).
		Return(temporal.NewNonRetryableApplicationError("pet store offline", "STORE_DOWN", nil))

	h.env.ExecuteWorkflow(AdoptionWorkflowName, input("U1", "P1"))
	require.True(t, h.env.IsWorkflowCompleted())

	var appErr *temporal.ApplicationError
	require.True(t, errors.As(h.env.GetWorkflowError(), &appErr))
	assert.Equal(t, application.ReasonCompensationFailed, appErr.Type())
}

// lostInsertAck commits the first insert and then reports a failure, like a worker that dies
// before the activity completes.
type lostInsertAck struct {
	ports.Repository
	calls int
}

func (r *lostInsertAck) Insert(ctx context.Context, adoption *domain.Adoption) (*projection.Projection[*domain.Adoption], error) {
	r.calls++
	saved, err := r.Repository.Insert(ctx, adoption)
	if r.calls == 1 && err == nil {
		return nil, errors.New("connection reset")
	}
	return saved, err
}

// lostFlagAck commits the first adopted flag and then reports a failure.
type lostFlagAck struct {
	ports.PetLedger
	calls int
}

func (p *lostFlagAck) SetAdopted(ctx context.Context, id string, adopted bool) error {
	err := p.PetLedger.SetAdopted(ctx, id, adopted)
	if adopted {
		p.calls++
		if p.calls == 1 && err == nil {
			return errors.New("connection reset")
		}
	}
	return err
}

func (h *harness) assertAdopted(t *testing.T, userID, petID string) {
	t.Helper()
	ctx := context.Background()
	all, err := h.adoptions.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, petID, all[0].Entity.PetID)
	pet, err := h.pets.GetByID(ctx, petID)
	require.NoError(t, err)
	assert.True(t, pet.Entity.Adopted)
	user, err := h.users.GetByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{petID}, user.Entity.Pets)
}

func TestAdoptionWorkflowRetriesCommittedInsert(t *testing.T) {
	repo := &lostInsertAck{}
	h := newHarness(t, func(s ports.Stores) ports.Stores {
		repo.Repository = s.Adoptions
		s.Adoptions = repo
		return s
	})
	h.seed(t, "U1", true, "P1", false)

	h.env.ExecuteWorkflow(AdoptionWorkflowName, input("U1", "P1"))
	require.True(t, h.env.IsWorkflowCompleted())
	require.NoError(t, h.env.GetWorkflowError())
	assert.Equal(t, 2, repo.calls)
	h.assertAdopted(t, "U1", "P1")
}

func TestAdoptionWorkflowRetriesCommittedFlag(t *testing.T) {
	pets := &lostFlagAck{}
	h := newHarness(t, func(s ports.Stores) ports.Stores {
		pets.PetLedger = s.Pets
		s.Pets = pets
		return s
	})
	h.seed(t, "U1", true, "P1", false)

	h.env.ExecuteWorkflow(AdoptionWorkflowName, input("U1", "P1"))
	require.True(t, h.env.IsWorkflowCompleted())
	require.NoError(t, h.env.GetWorkflowError())
	assert.Equal(t, 2, pets.calls)
	h.assertAdopted(t, "U1", "P1")
}

func TestAdoptionWorkflowDiscardsInsertWhenRecordGivesUp(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "U1", true, "P1", false)
	h.env.OnActivity(adoptionactivities.RecordAdoptionActivityName, mock.Anything, mock.Anything).
		Return(func(ctx context.Context, adoption domain.Adoption) (*adoptiontypes.AdoptionProjection, error) {
			if _, err := h.adoptions.Insert(ctx, &adoption); err != nil {
				return nil, err
			}
			return nil, temporal.NewNonRetryableApplicationError("commit unknown", "STORE_DOWN", nil)
		})

	h.env.ExecuteWorkflow(AdoptionWorkflowName, input("U1", "P1"))
	require.True(t, h.env.IsWorkflowCompleted())

	var appErr *temporal.ApplicationError
	require.True(t, errors.As(h.env.GetWorkflowError(), &appErr))
	assert.Equal(t, "STORE_DOWN", appErr.Type())
	all, err := h.adoptions.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestWorkflowID(t *testing.T) {
	assert.Equal(t, "adoption-pet-P9", WorkflowID("P9"))
}
