package workflows

import (
	"context"
	"errors"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application"
	adoptiontypes "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/failure"
	adoptionworkflows "github.com/Apurer/go-gin-adoption-api/internal/platform/temporal/workflows/adoptions"
)

var _ ports.WorkflowOrchestrator = (*TemporalAdoptionWorkflows)(nil)

// WorkflowStarter is the subset of client.Client used to run adoption workflows.
type WorkflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// TemporalAdoptionWorkflows runs adoption requests as Temporal workflows, one per pet at a time.
type TemporalAdoptionWorkflows struct {
	client    WorkflowStarter
	taskQueue string
}

func NewTemporalAdoptionWorkflows(c WorkflowStarter) *TemporalAdoptionWorkflows {
	return &TemporalAdoptionWorkflows{client: c, taskQueue: adoptionworkflows.AdoptionTaskQueue}
}

// RequestAdoption starts the workflow and waits for its result. A workflow already running
// for the same pet means another request holds it.
func (o *TemporalAdoptionWorkflows) RequestAdoption(ctx context.Context, input adoptiontypes.RequestAdoptionInput) (*adoptiontypes.AdoptionProjection, error) {
	if o == nil || o.client == nil {
		return nil, failure.Internal(errors.New("temporal adoption workflows not configured"))
	}
	options := client.StartWorkflowOptions{
		ID:                                       adoptionworkflows.WorkflowID(input.PetID),
		TaskQueue:                                o.taskQueue,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}
	run, err := o.client.ExecuteWorkflow(ctx, options, adoptionworkflows.AdoptionWorkflowName,
		adoptionworkflows.AdoptionWorkflowInput{Request: input, TraceID: workflowTraceID(ctx)})
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			return nil, failure.Conflict(domain.ErrAdoptionInProgress)
		}
		return nil, failure.Internal(err)
	}
	var result adoptiontypes.AdoptionProjection
	if err := run.Get(ctx, &result); err != nil {
		return nil, fromWorkflowError(err)
	}
	return &result, nil
}

// fromWorkflowError rebuilds the classified failure from the reason code of the
// application error raised inside the workflow.
func fromWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		if mapped := application.ErrorFromReason(appErr.Type()); mapped != nil {
			return mapped
		}
	}
	return failure.Internal(err)
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
