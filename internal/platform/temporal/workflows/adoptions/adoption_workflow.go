package adoptions

import (
	"go.temporal.io/sdk/workflow"

	adoptiontypes "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/platform/temporal/sequences"
)

const (
	// AdoptionWorkflowName is the public identifier for registering the workflow.
	AdoptionWorkflowName = "adoptions.workflows.Request"
	// AdoptionTaskQueue is the queue consumed by the adoption worker.
	AdoptionTaskQueue = "ADOPTIONS"
)

// WorkflowID gives every pet a single running adoption workflow.
func WorkflowID(petID string) string {
	return "adoption-pet-" + petID
}

// AdoptionWorkflowInput carries the request and the caller's trace id.
type AdoptionWorkflowInput struct {
	Request adoptiontypes.RequestAdoptionInput
	TraceID string
}

// AdoptionWorkflow runs the adoption saga durably.
func AdoptionWorkflow(ctx workflow.Context, input AdoptionWorkflowInput) (*adoptiontypes.AdoptionProjection, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("AdoptionWorkflow started", withTraceID(input.TraceID, "userId", input.Request.UserID, "petId", input.Request.PetID)...)
	result, err := sequences.RunAdoptionSagaSequence(ctx, input.Request)
	if err != nil {
		logger.Info("AdoptionWorkflow failed", withTraceID(input.TraceID, "petId", input.Request.PetID, "error", err)...)
		return nil, err
	}
	logger.Info("AdoptionWorkflow completed", withTraceID(input.TraceID, "adoptionId", result.Entity.ID)...)
	return result, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
