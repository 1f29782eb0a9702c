package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"anchor/internal/model"
	"anchor/internal/schema"
	"anchor/internal/service"
	"anchor/internal/store"
)

type DashboardHandler struct {
	logs   *service.CareLogService
	family *service.FamilyService
}

func NewDashboardHandler(logs *service.CareLogService, family *service.FamilyService) *DashboardHandler {
	return &DashboardHandler{logs: logs, family: family}
}

// GET /api/dashboard/recipient/:id
// Today's record may be absent; the view still renders with a null log
// and zero completion.
func (h *DashboardHandler) Day(c *gin.Context) {
	ctx := c.Request.Context()
	recipientID := c.Param("id")

	recipient, err := h.family.RecipientByID(ctx, recipientID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "care recipient not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	today, err := h.logs.Today(ctx, recipientID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.DayView{
		CareRecipient:        recipient,
		TodayLog:             today,
		CompletionPercentage: schema.CompletionPercentage(today),
		ActiveAlerts:         []model.Alert{},
	})
}
