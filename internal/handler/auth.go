package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"anchor/internal/logger"
	"anchor/internal/middleware"
	"anchor/internal/model"
	"anchor/internal/service"
)

type AuthHandler struct{ auth *service.AuthService }

func NewAuthHandler(auth *service.AuthService) *AuthHandler { return &AuthHandler{auth: auth} }

func (h *AuthHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u, err := h.auth.Signup(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	logger.Info("signup.ok", "uid", u.ID, "email", u.Email)
	token, _ := middleware.NewToken(u.ID, u.Name, middleware.RoleFamily, "")
	c.JSON(http.StatusCreated, model.LoginResponse{Token: token, User: u})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn("login.failed", "email", req.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	logger.Info("login.ok", "uid", u.ID, "name", u.Name)
	token, _ := middleware.NewToken(u.ID, u.Name, middleware.RoleFamily, "")
	c.JSON(http.StatusOK, model.LoginResponse{Token: token, User: u})
}

func (h *AuthHandler) CaregiverLogin(c *gin.Context) {
	var req model.CaregiverLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	cg, err := h.auth.CaregiverLogin(c.Request.Context(), req.Username, req.PIN)
	if err != nil {
		logger.Warn("caregiver.login.failed", "username", req.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	logger.Info("caregiver.login.ok", "caregiver_id", cg.ID, "name", cg.Name)
	token, _ := middleware.NewToken(cg.ID, cg.Name, middleware.RoleCaregiver, cg.CareRecipientID)
	c.JSON(http.StatusOK, model.CaregiverLoginResponse{Token: token, Caregiver: cg})
}
