package usecases

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sync"
	"testing"

	gcode "github.com/iwtcode/gcodeAdapter"
	domain "github.com/iwtcode/gcodeAdapter/internal/domain/models"
	"github.com/iwtcode/gcodeAdapter/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "%\nG21 G90\nM3 S1000\nG0 Z5\nG1 X1 Y0 Z-1 F1000\nG1 X2 Y0 Z-1 F1000\nG0 Z5\nM5\nM30\n%"

type recordingProducer struct {
	mu       sync.Mutex
	messages map[string][][]byte
	err      error
}

func (p *recordingProducer) Produce(_ context.Context, key, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.messages == nil {
		p.messages = make(map[string][][]byte)
	}
	p.messages[string(key)] = append(p.messages[string(key)], value)
	return p.err
}

func (p *recordingProducer) Close() error { return nil }

func setupTest(t *testing.T) (*Usecase, *recordingProducer) {
	t.Helper()
	client, err := gcode.New(&gcode.Config{LogLevel: "off", Workers: 2})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	producer := &recordingProducer{}
	return NewUsecases(client, producer).(*Usecase), producer
}

func TestProcess_PublishesReport(t *testing.T) {
	u, producer := setupTest(t)

	resp := u.Process(context.Background(), domain.ProcessRequest{Code: sample, Controller: models.ControllerFanuc})
	require.NotEmpty(t, resp.ID)
	assert.Empty(t, resp.Result.Stats.MajorWarnings)

	require.Len(t, producer.messages[resp.ID], 1)
	var report domain.Report
	require.NoError(t, json.Unmarshal(producer.messages[resp.ID][0], &report))
	assert.Equal(t, resp.ID, report.ID)
	assert.Equal(t, models.ControllerFanuc, report.Controller)
	assert.Equal(t, resp.Result.Stats.OptimizedLines, report.Stats.OptimizedLines)
}

func TestProcess_PublishErrorIgnored(t *testing.T) {
	u, producer := setupTest(t)
	producer.err = stderrors.New("broker unavailable")

	resp := u.Process(context.Background(), domain.ProcessRequest{Code: sample, Controller: models.ControllerHeidenhain})
	assert.Contains(t, resp.Result.Code, "BEGIN PGM")
}

func TestGenerate(t *testing.T) {
	u, producer := setupTest(t)
	tp := models.Toolpath{
		Name: "line",
		Operations: []models.ToolpathOperation{{
			Points: []models.Point{{X: 0, Y: 0}, {X: 10, Y: 0}},
			Depth:  1,
		}},
	}

	resp, err := u.Generate(context.Background(), domain.GenerateRequest{Toolpath: tp})
	require.NoError(t, err)
	assert.Contains(t, resp.Code, "M30")
	assert.Nil(t, resp.Result)
	assert.Empty(t, producer.messages)

	resp, err = u.Generate(context.Background(), domain.GenerateRequest{Toolpath: tp, Controller: models.ControllerHaas})
	require.NoError(t, err)
	require.NotNil(t, resp.Result)
	assert.Contains(t, resp.Result.Improvements, "Fanuc optimization adapted for Haas controller")
	assert.Len(t, producer.messages[resp.ID], 1)
}

func TestProcessBatch(t *testing.T) {
	u, producer := setupTest(t)

	resp, err := u.ProcessBatch(context.Background(), domain.BatchRequest{Jobs: []domain.ProcessRequest{
		{Code: sample, Controller: models.ControllerFanuc},
		{Code: sample, Controller: models.ControllerSiemens},
	}})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Contains(t, resp.Results[1].Code, "; Post-processed for Siemens controller")
	assert.Len(t, producer.messages[resp.ID], 2)
}

func TestEvaluateCutting(t *testing.T) {
	u, _ := setupTest(t)

	ev := u.EvaluateCutting(domain.CuttingRequest{
		Settings: models.CuttingSettings{Material: "steel", ToolDiameter: 6, Flutes: 4, Feedrate: 500, SpindleSpeed: 20000},
		Language: "de",
	})
	assert.False(t, ev.IsOptimal)
	assert.Contains(t, ev.Feedback, "zu niedrig")
}
