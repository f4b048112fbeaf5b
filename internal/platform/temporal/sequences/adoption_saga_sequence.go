package sequences

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application"
	adoptiontypes "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
	adoptionactivities "github.com/Apurer/go-gin-adoption-api/internal/platform/temporal/activities/adoptions"
)

type compensation struct {
	activity string
	arg      any
}

// RunAdoptionSagaSequence evaluates the request, then records the adoption, flags the pet and
// links it to the user. Steps that already ran are undone in reverse order when a later one fails.
func RunAdoptionSagaSequence(ctx workflow.Context, input adoptiontypes.RequestAdoptionInput) (*adoptiontypes.AdoptionProjection, error) {
	logger := workflow.GetLogger(ctx)
	stepOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	stepCtx := workflow.WithActivityOptions(ctx, stepOptions)

	if err := workflow.ExecuteActivity(stepCtx, adoptionactivities.EvaluateAdoptionActivityName, input).Get(ctx, nil); err != nil {
		logger.Info("adoption saga rejected", "userId", input.UserID, "petId", input.PetID, "error", err)
		return nil, err
	}

	var id string
	if err := workflow.SideEffect(ctx, func(workflow.Context) interface{} { return uuid.NewString() }).Get(&id); err != nil {
		return nil, err
	}
	adoption, err := domain.NewAdoption(id, input.UserID, input.PetID, workflow.Now(ctx))
	if err != nil {
		return nil, temporal.NewNonRetryableApplicationError(err.Error(), application.ReasonOf(err), err)
	}

	// Discard is registered before the insert: a failed attempt may still have committed.
	undo := []compensation{{adoptionactivities.DiscardAdoptionActivityName, *adoption}}
	var saved adoptiontypes.AdoptionProjection
	if err := workflow.ExecuteActivity(stepCtx, adoptionactivities.RecordAdoptionActivityName, *adoption).Get(ctx, &saved); err != nil {
		logger.Error("adoption saga failed to record", "adoptionId", id, "error", err)
		return nil, compensate(ctx, err, undo)
	}

	if err := workflow.ExecuteActivity(stepCtx, adoptionactivities.MarkPetAdoptedActivityName, *adoption).Get(ctx, nil); err != nil {
		return nil, compensate(ctx, err, undo)
	}
	undo = append([]compensation{{adoptionactivities.ReleasePetActivityName, adoption.PetID}}, undo...)

	if err := workflow.ExecuteActivity(stepCtx, adoptionactivities.AttachPetActivityName, *adoption).Get(ctx, nil); err != nil {
		return nil, compensate(ctx, err, undo)
	}

	logger.Info("adoption saga completed", "adoptionId", id, "petId", input.PetID)
	return &saved, nil
}

// compensate runs on a disconnected context so a cancelled workflow still cleans up.
func compensate(ctx workflow.Context, cause error, undo []compensation) error {
	logger := workflow.GetLogger(ctx)
	undoCtx, _ := workflow.NewDisconnectedContext(ctx)
	undoCtx = workflow.WithActivityOptions(undoCtx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    10,
		},
	})

	var undoErrs []error
	for _, step := range undo {
		if err := workflow.ExecuteActivity(undoCtx, step.activity, step.arg).Get(undoCtx, nil); err != nil {
			logger.Error("adoption compensation step failed", "activity", step.activity, "error", err)
			undoErrs = append(undoErrs, err)
		}
	}
	if len(undoErrs) == 0 {
		return cause
	}
	err := fmt.Errorf("%w: %v: %v", application.ErrCompensationFailed, cause, errors.Join(undoErrs...))
	return temporal.NewNonRetryableApplicationError(err.Error(), application.ReasonCompensationFailed, err)
}
