package usecases

import (
	"context"
	"encoding/json"
	"time"

	gcode "github.com/iwtcode/gcodeAdapter"
	domain "github.com/iwtcode/gcodeAdapter/internal/domain/models"
	"github.com/iwtcode/gcodeAdapter/internal/interfaces"
	"github.com/iwtcode/gcodeAdapter/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Usecase struct {
	client   *gcode.Client
	producer interfaces.KafkaService
	logger   logrus.FieldLogger
	now      func() time.Time
}

// NewUsecases создает use cases поверх клиента библиотеки
func NewUsecases(client *gcode.Client, producer interfaces.KafkaService) interfaces.Usecases {
	return &Usecase{
		client:   client,
		producer: producer,
		logger:   client.GetLogger().WithField("component", "usecase"),
		now:      time.Now,
	}
}

func (u *Usecase) Generate(ctx context.Context, req domain.GenerateRequest) (*domain.GenerateResponse, error) {
	id := uuid.New().String()
	code, err := u.client.GenerateGcode(req.Toolpath, req.Params)
	if err != nil {
		return nil, err
	}

	resp := &domain.GenerateResponse{ID: id, Code: code}
	if req.Controller != "" {
		res := u.client.ProcessGCode(code, req.Controller, req.Options)
		resp.Result = &res
		u.publish(ctx, id, req.Controller, res)
	}
	return resp, nil
}

func (u *Usecase) Process(ctx context.Context, req domain.ProcessRequest) *domain.ProcessResponse {
	id := uuid.New().String()
	res := u.client.ProcessGCode(req.Code, req.Controller, req.Options)
	u.publish(ctx, id, req.Controller, res)
	return &domain.ProcessResponse{ID: id, Result: res}
}

func (u *Usecase) ProcessBatch(ctx context.Context, req domain.BatchRequest) (*domain.BatchResponse, error) {
	id := uuid.New().String()
	jobs := make([]gcode.Job, len(req.Jobs))
	for i, r := range req.Jobs {
		jobs[i] = gcode.Job{Code: r.Code, Controller: r.Controller, Options: r.Options}
	}

	results, err := u.client.ProcessBatch(ctx, jobs)
	if err != nil {
		return nil, err
	}
	for i, res := range results {
		u.publish(ctx, id, req.Jobs[i].Controller, res)
	}
	return &domain.BatchResponse{ID: id, Results: results}, nil
}

func (u *Usecase) EvaluateCutting(req domain.CuttingRequest) models.CuttingEvaluation {
	return u.client.EvaluateCutting(req.Settings, req.Language)
}

// publish отправляет сводку постобработки; ошибки отправки только логируются
func (u *Usecase) publish(ctx context.Context, id string, controller models.ControllerType, res models.OptimizationResult) {
	value, err := json.Marshal(domain.Report{
		ID:           id,
		Controller:   controller,
		Stats:        res.Stats,
		Validation:   res.Validation,
		Improvements: res.Improvements,
		CreatedAt:    u.now().UTC(),
	})
	if err != nil {
		u.logger.WithError(err).Error("Failed to encode post-processing report")
		return
	}
	if err := u.producer.Produce(ctx, []byte(id), value); err != nil {
		u.logger.WithError(err).WithField("id", id).Warn("Failed to publish post-processing report")
	}
}
