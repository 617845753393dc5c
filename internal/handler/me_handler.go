package handler

import (
	"net/http"

	"rankboost/internal/middleware"
	"rankboost/internal/repository"
	"rankboost/internal/service"

	"github.com/gin-gonic/gin"
)

// MeHandler serves the authenticated user's own account.
type MeHandler struct {
	auth  *service.AuthService
	users *repository.UserRepository
}

func NewMeHandler(auth *service.AuthService, users *repository.UserRepository) *MeHandler {
	return &MeHandler{auth: auth, users: users}
}

func (h *MeHandler) Profile(c *gin.Context) {
	u, err := h.users.GetByID(middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

type updateProfileRequest struct {
	Name string `json:"name" binding:"required,max=128"`
}

func (h *MeHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	userID := middleware.GetUserID(c)
	if err := h.users.UpdateFields(userID, map[string]interface{}{"name": req.Name}); err != nil {
		fail(c, err)
		return
	}
	u, err := h.users.GetByID(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

func (h *MeHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.auth.ChangePassword(middleware.GetUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

type payoutKeyRequest struct {
	PayoutKey string `json:"payout_key" binding:"required,max=256"`
}

func (h *MeHandler) SetPayoutKey(c *gin.Context) {
	var req payoutKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.auth.SetPayoutKey(middleware.GetUserID(c), req.PayoutKey); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payout key saved"})
}

func (h *MeHandler) DeleteAccount(c *gin.Context) {
	if err := h.auth.DeleteAccount(middleware.GetUserID(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}
