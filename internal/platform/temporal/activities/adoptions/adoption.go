package adoptions

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application"
	adoptiontypes "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/failure"
)

const (
	EvaluateAdoptionActivityName = "adoptions.activities.Evaluate"
	RecordAdoptionActivityName   = "adoptions.activities.Record"
	MarkPetAdoptedActivityName   = "adoptions.activities.MarkPetAdopted"
	AttachPetActivityName        = "adoptions.activities.AttachPet"
	ReleasePetActivityName       = "adoptions.activities.ReleasePet"
	DiscardAdoptionActivityName  = "adoptions.activities.Discard"
)

var errNotInitialized = errors.New("adoption activities not initialized")

// Activities exposes each adoption saga step as a Temporal activity.
type Activities struct {
	saga *application.Saga
}

func NewActivities(saga *application.Saga) *Activities {
	return &Activities{saga: saga}
}

// Evaluate applies the eligibility checks.
func (a *Activities) Evaluate(ctx context.Context, input adoptiontypes.RequestAdoptionInput) error {
	if a == nil || a.saga == nil {
		return errNotInitialized
	}
	logger := activity.GetLogger(ctx)
	if err := a.saga.Evaluate(ctx, input); err != nil {
		logger.Info("adoption rejected", "userId", input.UserID, "petId", input.PetID, "error", err)
		return toActivityError(err)
	}
	return nil
}

// Record inserts the adoption. The insert is repeatable, so a retry after a committed
// attempt returns the stored record.
func (a *Activities) Record(ctx context.Context, adoption domain.Adoption) (*adoptiontypes.AdoptionProjection, error) {
	if a == nil || a.saga == nil {
		return nil, errNotInitialized
	}
	saved, err := a.saga.Record(ctx, &adoption)
	if err != nil {
		activity.GetLogger(ctx).Error("Record activity failed", "adoptionId", adoption.ID, "error", err)
		return nil, toActivityError(err)
	}
	return saved, nil
}

// MarkPetAdopted flips the pet flag with a compare-and-set.
func (a *Activities) MarkPetAdopted(ctx context.Context, adoption domain.Adoption) error {
	if a == nil || a.saga == nil {
		return errNotInitialized
	}
	return a.retrySafe(ctx, &adoption, a.saga.MarkPetAdopted(ctx, adoption.PetID))
}

// AttachPet appends the pet to the adopter.
func (a *Activities) AttachPet(ctx context.Context, adoption domain.Adoption) error {
	if a == nil || a.saga == nil {
		return errNotInitialized
	}
	return a.retrySafe(ctx, &adoption, a.saga.AttachPet(ctx, adoption.UserID, adoption.PetID))
}

// ReleasePet clears the pet flag.
func (a *Activities) ReleasePet(ctx context.Context, petID string) error {
	if a == nil || a.saga == nil {
		return errNotInitialized
	}
	return toActivityError(a.saga.ReleasePet(ctx, petID))
}

// Discard deletes the adoption if it is still the one this workflow recorded.
func (a *Activities) Discard(ctx context.Context, adoption domain.Adoption) error {
	if a == nil || a.saga == nil {
		return errNotInitialized
	}
	return toActivityError(a.saga.Discard(ctx, &adoption))
}

// retrySafe accepts a conflict on a retried conditional write when adoption is the only record
// holding the pet: the conflict is then the previous attempt's committed write.
func (a *Activities) retrySafe(ctx context.Context, adoption *domain.Adoption, err error) error {
	if err == nil {
		return nil
	}
	if activity.GetInfo(ctx).Attempt > 1 && (errors.Is(err, domain.ErrAlreadyAdopted) || errors.Is(err, domain.ErrAlreadyOwned)) {
		held, checkErr := a.saga.HoldsPet(ctx, adoption)
		if checkErr != nil {
			return toActivityError(checkErr)
		}
		if held {
			activity.GetLogger(ctx).Info("write committed by a previous attempt", "adoptionId", adoption.ID)
			return nil
		}
	}
	return toActivityError(err)
}

// toActivityError makes business failures non-retryable and tags them with their reason code.
// Everything else is returned as is and retried by the activity policy.
func toActivityError(err error) error {
	if err == nil {
		return nil
	}
	if reason := application.ReasonOf(err); reason != "" {
		return temporal.NewNonRetryableApplicationError(failure.Message(err), reason, err)
	}
	return err
}
