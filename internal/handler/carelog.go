package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"anchor/internal/logger"
	"anchor/internal/model"
	"anchor/internal/schema"
	"anchor/internal/service"
	"anchor/internal/store"
)

type CareLogHandler struct {
	logs *service.CareLogService
}

func NewCareLogHandler(logs *service.CareLogService) *CareLogHandler {
	return &CareLogHandler{logs: logs}
}

// POST /api/care-logs
// 201 when the record was created, 200 when a record for the same
// (recipient, date) already existed.
func (h *CareLogHandler) Create(c *gin.Context) {
	var req model.CreateCareLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	l, created, err := h.logs.CreateOrGet(c.Request.Context(), req.CareRecipientID, req.LogDate, c.GetString("subject_name"))
	if err != nil {
		logger.Error("care log create failed", "recipient", req.CareRecipientID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, l)
}

// GET /api/care-logs/caregiver/today
func (h *CareLogHandler) TodayForCaregiver(c *gin.Context) {
	recipientID := c.GetString("recipient_id")
	if recipientID == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "no active care recipient"})
		return
	}
	h.today(c, recipientID)
}

// GET /api/care-logs/recipient/:id/today
func (h *CareLogHandler) TodayForRecipient(c *gin.Context) {
	h.today(c, c.Param("id"))
}

// A missing record for today is an expected state, reported as 404 with
// no error body drama so clients can start a fresh draft.
func (h *CareLogHandler) today(c *gin.Context, recipientID string) {
	l, err := h.logs.Today(c.Request.Context(), recipientID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no care log for today"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, l)
}

// GET /api/care-logs/recipient/:id/week
// Always seven points; days without a record carry a null log.
func (h *CareLogHandler) Week(c *gin.Context) {
	days, err := h.logs.Week(c.Request.Context(), c.Param("id"), c.Query("end"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, days)
}

// PATCH /api/care-logs/:id
func (h *CareLogHandler) Patch(c *gin.Context) {
	var patch model.CareLogPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	l, err := h.logs.Patch(c.Request.Context(), c.Param("id"), patch, c.GetString("subject_name"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "care log not found"})
		return
	}
	if err != nil {
		logger.Error("care log patch failed", "id", c.Param("id"), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, l)
}

// POST /api/care-logs/:id/submit-section
func (h *CareLogHandler) SubmitSection(c *gin.Context) {
	var req model.SubmitSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	l, err := h.logs.SubmitSection(c.Request.Context(), c.Param("id"), schema.Section(req.Section), c.GetString("subject_name"))
	var incomplete *service.ErrSectionIncomplete
	switch {
	case errors.Is(err, service.ErrUnknownSection):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown section"})
	case errors.As(err, &incomplete):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "section incomplete",
			"missingFields": incomplete.Missing,
		})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "care log not found"})
	case err != nil:
		logger.Error("submit section failed", "id", c.Param("id"), "section", req.Section, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		logger.Info("section.submitted", "care_log_id", l.ID, "section", req.Section, "actor", c.GetString("subject_name"))
		c.JSON(http.StatusOK, l)
	}
}

// GET /api/care-logs/:id/history
// Entries come back chronological ascending; an empty array is normal.
func (h *CareLogHandler) History(c *gin.Context) {
	entries, err := h.logs.History(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "care log not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}
