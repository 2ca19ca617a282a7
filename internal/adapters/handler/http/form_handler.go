package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rogerjs93/health-entry-engine/internal/core/domain"
	"github.com/rogerjs93/health-entry-engine/internal/core/services"
)

type FormHandler struct {
	forms  *services.FormService
	submit *services.SubmitService
	logger *zap.Logger
}

func NewFormHandler(forms *services.FormService, submit *services.SubmitService, logger *zap.Logger) *FormHandler {
	return &FormHandler{
		forms:  forms,
		submit: submit,
		logger: logger,
	}
}

type openFormRequest struct {
	TimeFrame string `json:"timeFrame"`
}

type setTimeFrameRequest struct {
	TimeFrame string `json:"timeFrame" binding:"required"`
}

type vitalUpdateRequest struct {
	Field string   `json:"field" binding:"required"`
	Index *int     `json:"index" binding:"required"`
	Value *float64 `json:"value" binding:"required"`
}

// Value is deliberately not required: null clears an optional field.
type bodyUpdateRequest struct {
	Field string   `json:"field" binding:"required"`
	Value *float64 `json:"value"`
}

type sleepUpdateRequest struct {
	Stage string   `json:"stage" binding:"required"`
	Hours *float64 `json:"hours" binding:"required"`
}

func (h *FormHandler) RegisterRoutes(router *gin.RouterGroup) {
	forms := router.Group("/forms")
	{
		forms.POST("", h.Open)
		forms.GET("/:id", h.Get)
		forms.PUT("/:id/timeframe", h.SetTimeFrame)
		forms.PUT("/:id/vitals", h.UpdateVital)
		forms.PUT("/:id/body", h.UpdateBody)
		forms.PUT("/:id/sleep", h.UpdateSleep)
		forms.POST("/:id/submit", h.Submit)
		forms.DELETE("/:id", h.Close)
	}
}

func (h *FormHandler) Open(c *gin.Context) {
	var req openFormRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}
	}

	form, err := h.forms.Open(c.Request.Context(), req.TimeFrame)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, form)
}

func (h *FormHandler) Get(c *gin.Context) {
	form, err := h.forms.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

func (h *FormHandler) SetTimeFrame(c *gin.Context) {
	var req setTimeFrameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	form, err := h.forms.SetTimeFrame(c.Request.Context(), c.Param("id"), req.TimeFrame)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

func (h *FormHandler) UpdateVital(c *gin.Context) {
	var req vitalUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	form, err := h.forms.UpdateVital(c.Request.Context(), c.Param("id"), req.Field, *req.Index, *req.Value)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

func (h *FormHandler) UpdateBody(c *gin.Context) {
	var req bodyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	form, err := h.forms.UpdateBody(c.Request.Context(), c.Param("id"), req.Field, req.Value)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

func (h *FormHandler) UpdateSleep(c *gin.Context) {
	var req sleepUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	form, err := h.forms.UpdateSleep(c.Request.Context(), c.Param("id"), req.Stage, *req.Hours)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

func (h *FormHandler) Submit(c *gin.Context) {
	receipt, err := h.submit.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, receipt)
}

func (h *FormHandler) Close(c *gin.Context) {
	if err := h.forms.Close(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *FormHandler) handleError(c *gin.Context, err error) {
	handleError(c, h.logger, err)
}

func handleError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrFormNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "form not found"})

	case errors.Is(err, domain.ErrUnknownTimeFrame),
		errors.Is(err, domain.ErrUnknownVitalField),
		errors.Is(err, domain.ErrUnknownBodyField),
		errors.Is(err, domain.ErrUnknownSleepStage),
		errors.Is(err, domain.ErrNegativeStageHours),
		errors.Is(err, domain.ErrSampleOutOfRange),
		errors.Is(err, domain.ErrNoFilesSelected):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrUpstreamRejected),
		errors.Is(err, domain.ErrUpstreamUnreachable):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})

	default:
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
