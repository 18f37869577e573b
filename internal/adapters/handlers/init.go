package handlers

import (
	"net/http"

	"github.com/iwtcode/gcodeAdapter/internal/config"
	"github.com/iwtcode/gcodeAdapter/internal/interfaces"
	"github.com/iwtcode/gcodeAdapter/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handler - структура для обработчиков HTTP-запросов
type Handler struct {
	usecase interfaces.Usecases
	logger  logrus.FieldLogger
}

// NewHandler создает новый экземпляр Handler
func NewHandler(usecase interfaces.Usecases, logger *logging.Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger.WithField("component", "handler"),
	}
}

// ProvideRouter настраивает и возвращает HTTP-роутер
func ProvideRouter(h *Handler, cfg *config.AppConfig) http.Handler {
	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(LoggingMiddleware(h.logger))

	router.GET("/health", h.Health)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/generate", h.Generate)

		process := v1.Group("/process")
		{
			process.POST("", h.Process)
			process.POST("/batch", h.ProcessBatch)
		}

		v1.POST("/cutting/evaluate", h.EvaluateCutting)
	}

	return router
}
