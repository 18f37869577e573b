package gcode

import (
	"context"

	"github.com/iwtcode/gcodeAdapter/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Job описывает одну программу для пакетной постобработки
type Job struct {
	Code       string                  `json:"code"`
	Controller models.ControllerType   `json:"controller"`
	Options    *models.OptionsOverride `json:"options,omitempty"`
}

// ProcessBatch обрабатывает программы параллельно, не более Config.Workers одновременно.
// Результаты возвращаются в порядке jobs. Ошибка возвращается только при отмене ctx.
func (c *Client) ProcessBatch(ctx context.Context, jobs []Job) ([]models.OptimizationResult, error) {
	results := make([]models.OptimizationResult, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	workers := c.config.Workers
	if workers <= 0 {
		workers = 1
	}
	g.SetLimit(workers)

	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		i, job := i, job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.ProcessGCode(job.Code, job.Controller, job.Options)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.logger.WithError(err).WithField("jobs", len(jobs)).Warn("Batch post-processing interrupted")
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"jobs":    len(jobs),
		"workers": workers,
	}).Info("Batch post-processed")
	return results, nil
}
