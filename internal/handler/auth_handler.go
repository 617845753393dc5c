package handler

import (
	"net/http"
	"strconv"

	"rankboost/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth  *service.AuthService
	audit auditStore
}

func NewAuthHandler(auth *service.AuthService, audit auditStore) *AuthHandler {
	return &AuthHandler{auth: auth, audit: audit}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,max=128"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.auth.Register(req.Name, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	recordAudit(c, h.audit, nil, "auth.register", "user", strconv.FormatUint(uint64(u.ID), 10))
	// Same response whether or not the address was already taken.
	c.JSON(http.StatusCreated, gin.H{"message": "verification code sent"})
}

type verifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

func (h *AuthHandler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, access, refresh, err := h.auth.Verify(req.Email, req.Code)
	if err != nil {
		fail(c, err)
		return
	}
	recordAudit(c, h.audit, &u.ID, "auth.verify", "user", strconv.FormatUint(uint64(u.ID), 10))
	c.JSON(http.StatusOK, gin.H{
		"user":          u,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) ResendCode(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.auth.ResendCode(req.Email)
	// Same response whether or not the address exists.
	c.JSON(http.StatusOK, gin.H{"message": "if the account exists, a code was sent"})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, access, refresh, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	recordAudit(c, h.audit, &u.ID, "auth.login", "user", strconv.FormatUint(uint64(u.ID), 10))
	c.JSON(http.StatusOK, gin.H{
		"user":          u,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	access, refresh, err := h.auth.RefreshToken(req.RefreshToken)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.auth.ForgotPassword(req.Email)
	c.JSON(http.StatusOK, gin.H{"message": "if the account exists, a code was sent"})
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.auth.ResetPassword(req.Email, req.Code, req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	recordAudit(c, h.audit, nil, "auth.password_reset", "user", "")
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
