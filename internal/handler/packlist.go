package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"anchor/internal/model"
	"anchor/internal/service"
	"anchor/internal/store"
)

type PackListHandler struct {
	lists *service.PackListService
}

func NewPackListHandler(lists *service.PackListService) *PackListHandler {
	return &PackListHandler{lists: lists}
}

// POST /api/pack-lists
func (h *PackListHandler) Create(c *gin.Context) {
	var req model.CreatePackListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	p, err := h.lists.Create(c.Request.Context(), req.CareRecipientID, req.Name, req.Items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GET /api/pack-lists?recipient_id=...
func (h *PackListHandler) List(c *gin.Context) {
	recipientID := c.Query("recipient_id")
	if recipientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipient_id required"})
		return
	}
	ps, err := h.lists.ByRecipient(c.Request.Context(), recipientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ps)
}

// PATCH /api/pack-lists/:id/items/:itemID
func (h *PackListHandler) ToggleItem(c *gin.Context) {
	item, err := h.lists.TogglePacked(c.Request.Context(), c.Param("id"), c.Param("itemID"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "pack item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}
