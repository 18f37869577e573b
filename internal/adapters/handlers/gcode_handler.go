package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/iwtcode/gcodeAdapter/internal/domain/models"
	"github.com/iwtcode/gcodeAdapter/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Health сообщает, что сервис запущен.
// @Summary Проверка работоспособности
// @Tags Service
// @Produce json
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Generate генерирует программу по траектории.
// @Summary Сгенерировать G-код
// @Description Генерирует программу по траектории и, если указан controller, адаптирует ее под систему ЧПУ.
// @Tags GCode
// @Accept json
// @Produce json
// @Param input body models.GenerateRequest true "Траектория и параметры генерации"
// @Success 200 {object} models.GenerateResponse
// @Failure 400 {object} models.ErrorResponse "Неверный формат запроса"
// @Failure 422 {object} models.ErrorResponse "Траектория не может быть обработана"
// @Router /generate [post]
func (h *Handler) Generate(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	resp, err := h.usecase.Generate(c.Request.Context(), req)
	if err != nil {
		if stderrors.Is(err, errors.ErrTooManyPasses) || stderrors.Is(err, errors.ErrProgramTooLarge) {
			h.UnprocessableEntity(c, err, "Toolpath cannot be generated")
			return
		}
		h.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Process адаптирует программу под систему ЧПУ.
// @Summary Постобработка G-кода
// @Tags GCode
// @Accept json
// @Produce json
// @Param input body models.ProcessRequest true "Программа, система ЧПУ и настройки"
// @Success 200 {object} models.ProcessResponse
// @Failure 400 {object} models.ErrorResponse "Неверный формат запроса"
// @Router /process [post]
func (h *Handler) Process(c *gin.Context) {
	var req models.ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}
	c.JSON(http.StatusOK, h.usecase.Process(c.Request.Context(), req))
}

// ProcessBatch обрабатывает несколько программ параллельно.
// @Summary Пакетная постобработка
// @Tags GCode
// @Accept json
// @Produce json
// @Param input body models.BatchRequest true "Список программ"
// @Success 200 {object} models.BatchResponse
// @Failure 400 {object} models.ErrorResponse "Неверный формат запроса"
// @Router /process/batch [post]
func (h *Handler) ProcessBatch(c *gin.Context) {
	var req models.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	resp, err := h.usecase.ProcessBatch(c.Request.Context(), req)
	if err != nil {
		h.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EvaluateCutting проверяет режимы резания.
// @Summary Проверить режимы резания
// @Tags Cutting
// @Accept json
// @Produce json
// @Param Accept-Language header string false "en, de или ru"
// @Param input body models.CuttingRequest true "Режимы резания"
// @Success 200 {object} object
// @Failure 400 {object} models.ErrorResponse "Неверный формат запроса"
// @Router /cutting/evaluate [post]
func (h *Handler) EvaluateCutting(c *gin.Context) {
	var req models.CuttingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}
	if req.Language == "" {
		req.Language = c.GetHeader("Accept-Language")
	}
	c.JSON(http.StatusOK, h.usecase.EvaluateCutting(req))
}
