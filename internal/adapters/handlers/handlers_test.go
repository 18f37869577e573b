package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gcode "github.com/iwtcode/gcodeAdapter"
	"github.com/iwtcode/gcodeAdapter/internal/config"
	domain "github.com/iwtcode/gcodeAdapter/internal/domain/models"
	"github.com/iwtcode/gcodeAdapter/internal/logging"
	"github.com/iwtcode/gcodeAdapter/internal/services/kafka"
	"github.com/iwtcode/gcodeAdapter/internal/usecases"
	"github.com/iwtcode/gcodeAdapter/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "%\nG21 G90\nM3 S1000\nG0 Z5\nG1 X1 Y0 Z-1 F1000\nG1 X2 Y0 Z-1 F1000\nG0 Z5\nM5\nM30\n%"

func setupTest(t *testing.T) http.Handler {
	t.Helper()
	client, err := gcode.New(&gcode.Config{LogLevel: "off", Workers: 2, MaxProgramLines: 1000})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.AppConfig{GinMode: "test"}
	h := NewHandler(usecases.NewUsecases(client, kafka.NewKafkaProducer(cfg)), logging.NewLogger(logging.Config{Level: "off"}))
	return ProvideRouter(h, cfg)
}

func doJSON(t *testing.T, router http.Handler, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router := setupTest(t)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestProcess(t *testing.T) {
	router := setupTest(t)

	w := doJSON(t, router, "/api/v1/process", domain.ProcessRequest{Code: sample, Controller: models.ControllerHeidenhain}, "X-Request-ID", "req-1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))

	var resp domain.ProcessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.Result.Code, "0 BEGIN PGM WORKPIECE MM"))
	assert.NotEmpty(t, resp.ID)
}

func TestProcess_BadRequest(t *testing.T) {
	router := setupTest(t)

	w := doJSON(t, router, "/api/v1/process", map[string]string{"controller": "fanuc"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp domain.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, http.StatusBadRequest, resp.Error.Code)
}

func TestProcessBatch(t *testing.T) {
	router := setupTest(t)

	w := doJSON(t, router, "/api/v1/process/batch", domain.BatchRequest{Jobs: []domain.ProcessRequest{
		{Code: sample, Controller: models.ControllerFanuc},
		{Code: sample, Controller: models.ControllerOkuma},
	}})
	require.Equal(t, http.StatusOK, w.Code)

	var resp domain.BatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.Contains(t, resp.Results[1].Code, "; Post-processed for Okuma controller")

	w = doJSON(t, router, "/api/v1/process/batch", domain.BatchRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerate(t *testing.T) {
	router := setupTest(t)
	tp := models.Toolpath{Name: "line", Operations: []models.ToolpathOperation{{
		Points: []models.Point{{X: 0, Y: 0}, {X: 10, Y: 0}},
		Depth:  1,
	}}}

	w := doJSON(t, router, "/api/v1/generate", domain.GenerateRequest{Toolpath: tp, Controller: models.ControllerFanuc})
	require.Equal(t, http.StatusOK, w.Code)
	var resp domain.GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Code, "M30")
	require.NotNil(t, resp.Result)

	tp.Operations[0].Depth = 1000
	tp.Operations[0].Stepdown = 0.00001
	w = doJSON(t, router, "/api/v1/generate", domain.GenerateRequest{Toolpath: tp})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestEvaluateCutting_AcceptLanguage(t *testing.T) {
	router := setupTest(t)

	w := doJSON(t, router, "/api/v1/cutting/evaluate", domain.CuttingRequest{
		Settings: models.CuttingSettings{Material: "aluminum", ToolDiameter: 6, Flutes: 2, Feedrate: 1200, SpindleSpeed: 18000},
	}, "Accept-Language", "ru-RU")
	require.Equal(t, http.StatusOK, w.Code)

	var ev models.CuttingEvaluation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ev))
	assert.True(t, ev.IsOptimal)
	assert.Contains(t, ev.Feedback, "оптимальна")
}
