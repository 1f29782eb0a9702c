package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"anchor/internal/model"
	"anchor/internal/service"
	"anchor/internal/store"
)

type FamilyHandler struct {
	family *service.FamilyService
	auth   *service.AuthService
}

func NewFamilyHandler(family *service.FamilyService, auth *service.AuthService) *FamilyHandler {
	return &FamilyHandler{family: family, auth: auth}
}

// POST /api/care-recipients
func (h *FamilyHandler) CreateRecipient(c *gin.Context) {
	var req model.CreateCareRecipientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	r, err := h.family.CreateRecipient(c.Request.Context(), c.GetString("subject_id"), req.Name, req.DateOfBirth)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, r)
}

// GET /api/care-recipients/:id
func (h *FamilyHandler) Recipient(c *gin.Context) {
	r, err := h.family.RecipientByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "care recipient not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, r)
}

// POST /api/caregivers
func (h *FamilyHandler) CreateCaregiver(c *gin.Context) {
	var req model.CreateCaregiverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	cg, pin, err := h.auth.CreateCaregiver(c.Request.Context(), req.Name, req.Username, req.CareRecipientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, model.CreateCaregiverResponse{ID: cg.ID, PIN: pin, Username: cg.Username})
}

// GET /api/caregivers/:id
func (h *FamilyHandler) Caregiver(c *gin.Context) {
	cg, err := h.auth.CaregiverByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "caregiver not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cg)
}

// POST /api/family-members
func (h *FamilyHandler) AddMember(c *gin.Context) {
	var req model.CreateFamilyMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	m, err := h.family.AddMember(c.Request.Context(), c.GetString("subject_id"), req.Name, req.Email, req.Relationship)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, m)
}

// GET /api/family-members
func (h *FamilyHandler) Members(c *gin.Context) {
	ms, err := h.family.Members(c.Request.Context(), c.GetString("subject_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ms)
}
