package handler

import (
	"net/http"

	"rankboost/internal/domain"
	"rankboost/internal/middleware"
	"rankboost/internal/service"

	"github.com/gin-gonic/gin"
)

type DisputeHandler struct {
	disputes *service.DisputeService
}

func NewDisputeHandler(disputes *service.DisputeService) *DisputeHandler {
	return &DisputeHandler{disputes: disputes}
}

type openDisputeRequest struct {
	Reason string `json:"reason" binding:"required,max=4000"`
}

func (h *DisputeHandler) Open(c *gin.Context) {
	var req openDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	d, err := h.disputes.Open(idParam(c, "id"), middleware.GetUserID(c),
		middleware.GetRole(c) == domain.RoleAdmin, req.Reason)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"dispute": d})
}

func (h *DisputeHandler) Get(c *gin.Context) {
	d, err := h.disputes.Get(idParam(c, "id"), middleware.GetUserID(c),
		middleware.GetRole(c) == domain.RoleAdmin)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dispute": d})
}

type disputeMessageRequest struct {
	Body string `json:"body" binding:"required,max=4000"`
}

func (h *DisputeHandler) PostMessage(c *gin.Context) {
	var req disputeMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	m, err := h.disputes.PostMessage(idParam(c, "id"), middleware.GetUserID(c),
		middleware.GetRole(c) == domain.RoleAdmin, req.Body)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": m})
}

func (h *DisputeHandler) ListMine(c *gin.Context) {
	limit, offset := pagination(c)
	list, err := h.disputes.ListMine(middleware.GetUserID(c), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"disputes": list})
}
