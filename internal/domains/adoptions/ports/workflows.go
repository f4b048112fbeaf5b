package ports

import (
	"context"

	adoptiontypes "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application/types"
)

// WorkflowOrchestrator runs the check-and-write sequence of an adoption request.
type WorkflowOrchestrator interface {
	RequestAdoption(ctx context.Context, input adoptiontypes.RequestAdoptionInput) (*adoptiontypes.AdoptionProjection, error)
}
