package interfaces

import (
	"context"

	domain "github.com/iwtcode/gcodeAdapter/internal/domain/models"
	"github.com/iwtcode/gcodeAdapter/models"
)

// Usecases - агрегирующий интерфейс для всех use cases
type Usecases interface {
	Generate(ctx context.Context, req domain.GenerateRequest) (*domain.GenerateResponse, error)
	Process(ctx context.Context, req domain.ProcessRequest) *domain.ProcessResponse
	ProcessBatch(ctx context.Context, req domain.BatchRequest) (*domain.BatchResponse, error)
	EvaluateCutting(req domain.CuttingRequest) models.CuttingEvaluation
}
