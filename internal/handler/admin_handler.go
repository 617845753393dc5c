package handler

import (
	"net/http"
	"strconv"
	"time"

	"rankboost/internal/domain"
	"rankboost/internal/middleware"
	"rankboost/internal/models"
	"rankboost/internal/repository"
	"rankboost/internal/service"
	"rankboost/pkg/payment"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	stats         *repository.AdminRepository
	users         *repository.UserRepository
	payments      *repository.PaymentRepository
	services      *repository.ServiceRepository
	audit         *repository.AuditLogRepository
	boosters      *service.BoosterService
	orders        *service.OrderService
	commissions   *service.CommissionService
	pricing       *service.PricingService
	disputes      *service.DisputeService
	notifications *service.NotificationService
	provider      payment.Provider
}

func NewAdminHandler(
	stats *repository.AdminRepository,
	users *repository.UserRepository,
	payments *repository.PaymentRepository,
	services *repository.ServiceRepository,
	audit *repository.AuditLogRepository,
	boosters *service.BoosterService,
	orders *service.OrderService,
	commissions *service.CommissionService,
	pricing *service.PricingService,
	disputes *service.DisputeService,
	notifications *service.NotificationService,
	provider payment.Provider,
) *AdminHandler {
	return &AdminHandler{
		stats:         stats,
		users:         users,
		payments:      payments,
		services:      services,
		audit:         audit,
		boosters:      boosters,
		orders:        orders,
		commissions:   commissions,
		pricing:       pricing,
		disputes:      disputes,
		notifications: notifications,
		provider:      provider,
	}
}

func (h *AdminHandler) recordAction(c *gin.Context, action, resource string, resourceID uint) {
	adminID := middleware.GetUserID(c)
	recordAudit(c, h.audit, &adminID, action, resource, strconv.FormatUint(uint64(resourceID), 10))
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.stats.GetDashboardStats()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, offset := pagination(c)
	list, total, err := h.users.List(c.Query("search"), c.Query("role"), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": list, "total": total})
}

type updateUserRequest struct {
	Active *bool   `json:"active"`
	Role   *string `json:"role" binding:"omitempty,oneof=CLIENT BOOSTER ADMIN"`
}

// UpdateUser lets support deactivate an account or correct a role.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	fields := map[string]interface{}{}
	if req.Active != nil {
		fields["active"] = *req.Active
	}
	if req.Role != nil {
		fields["role"] = *req.Role
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}
	id := idParam(c, "id")
	if err := h.users.UpdateFields(id, fields); err != nil {
		fail(c, err)
		return
	}
	u, err := h.users.GetByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	h.recordAction(c, "user.update", "user", id)
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *AdminHandler) ListPendingBoosters(c *gin.Context) {
	limit, offset := pagination(c)
	list, err := h.boosters.ListPending(limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": list})
}

func (h *AdminHandler) ApproveBooster(c *gin.Context) {
	id := idParam(c, "id")
	p, err := h.boosters.Approve(id, middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	h.recordAction(c, "booster.approve", "booster_profile", id)
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

type rejectBoosterRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
}

func (h *AdminHandler) RejectBooster(c *gin.Context) {
	var req rejectBoosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id := idParam(c, "id")
	p, err := h.boosters.Reject(id, middleware.GetUserID(c), req.Reason)
	if err != nil {
		fail(c, err)
		return
	}
	h.recordAction(c, "booster.reject", "booster_profile", id)
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

func (h *AdminHandler) CommissionConfig(c *gin.Context) {
	cfg, err := h.commissions.CurrentConfig()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": cfg})
}

func (h *AdminHandler) CommissionConfigHistory(c *gin.Context) {
	limit, _ := pagination(c)
	history, err := h.commissions.ConfigHistory(limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

type commissionConfigRequest struct {
	BoosterPercentage float64 `json:"booster_percentage" binding:"required"`
	AdminPercentage   float64 `json:"admin_percentage" binding:"required"`
}

func (h *AdminHandler) UpdateCommissionConfig(c *gin.Context) {
	var req commissionConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cfg, err := h.commissions.UpdateConfig(req.BoosterPercentage, req.AdminPercentage)
	if err != nil {
		fail(c, err)
		return
	}
	h.recordAction(c, "commission.config.update", "commission_config", cfg.ID)
	c.JSON(http.StatusOK, gin.H{"config": cfg})
}

func (h *AdminHandler) ConfirmPayout(c *gin.Context) {
	orderID := idParam(c, "orderId")
	if err := h.commissions.ConfirmPayout(orderID); err != nil {
		fail(c, err)
		return
	}
	h.recordAction(c, "commission.payout.confirm", "order", orderID)
	c.JSON(http.StatusOK, gin.H{"message": "payout confirmed"})
}

func (h *AdminHandler) ListPricing(c *gin.Context) {
	list, err := h.pricing.ListBrackets(c.Query("game"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brackets": list})
}

type pricingRequest struct {
	Game       string `json:"game" binding:"required,max=64"`
	GameMode   string `json:"game_mode" binding:"required,max=64"`
	RangeStart int    `json:"range_start" binding:"min=0"`
	RangeEnd   int    `json:"range_end" binding:"required,min=1"`
	PriceCents int64  `json:"price_cents" binding:"required,min=1"`
	Unit       int    `json:"unit" binding:"required,min=1"`
}

func (h *AdminHandler) CreatePricing(c *gin.Context) {
	var req pricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.pricing.CreateBracket(req.Game, req.GameMode, req.RangeStart, req.RangeEnd, req.PriceCents, req.Unit)
	if err != nil {
		fail(c, err)
		return
	}
	h.recordAction(c, "pricing.create", "pricing_config", p.ID)
	c.JSON(http.StatusCreated, gin.H{"bracket": p})
}

func (h *AdminHandler) DisablePricing(c *gin.Context) {
	id := idParam(c, "id")
	if err := h.pricing.DisableBracket(id); err != nil {
		fail(c, err)
		return
	}
	h.recordAction(c, "pricing.disable", "pricing_config", id)
	c.JSON(http.StatusOK, gin.H{"message": "bracket disabled"})
}

func (h *AdminHandler) ListDisputes(c *gin.Context) {
	limit, offset := pagination(c)
	list, err := h.disputes.ListAll(c.Query("status"), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"disputes": list})
}

type resolveDisputeRequest struct {
	Outcome    string `json:"outcome" binding:"required"`
	Resolution string `json:"resolution" binding:"max=4000"`
}

func (h *AdminHandler) ResolveDispute(c *gin.Context) {
	var req resolveDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id := idParam(c, "id")
	d, err := h.disputes.Resolve(id, middleware.GetUserID(c), req.Outcome, req.Resolution)
	if err != nil {
		fail(c, err)
		return
	}
	h.recordAction(c, "dispute.resolve", "dispute", id)
	c.JSON(http.StatusOK, gin.H{"dispute": d})
}

type orderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id := idParam(c, "id")
	o, err := h.orders.UpdateStatus(id, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	h.recordAction(c, "order.status.update", "order", id)
	c.JSON(http.StatusOK, gin.H{"order": o})
}

// OrderPayments exposes the payment trail of an order for support work.
func (h *AdminHandler) OrderPayments(c *gin.Context) {
	list, err := h.payments.ListByOrderID(idParam(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": list})
}

// ReconcilePayment asks the gateway for the charge status directly, for cases
// where the webhook was lost. A settled charge is applied the same way the
// webhook would apply it.
func (h *AdminHandler) ReconcilePayment(c *gin.Context) {
	ref := c.Param("ref")
	p, err := h.payments.GetByProviderRef(ref)
	if err != nil {
		fail(c, err)
		return
	}
	paid, err := h.provider.VerifyPayment(c.Request.Context(), ref)
	if err != nil {
		fail(c, err)
		return
	}
	if paid && p.Status == domain.PaymentStatusPending {
		now := time.Now()
		p.Status = domain.PaymentStatusPaid
		p.PaidAt = &now
		if err := h.payments.Update(p); err != nil {
			fail(c, err)
			return
		}
		if err := h.orders.ConfirmPayment(p.OrderID); err != nil {
			fail(c, err)
			return
		}
		h.recordAction(c, "payment.reconcile", "payment", p.ID)
	}
	c.JSON(http.StatusOK, gin.H{"payment": p, "gateway_paid": paid})
}

// OrderNotifications is a debug view of what the platform told users about
// an order.
func (h *AdminHandler) OrderNotifications(c *gin.Context) {
	list, err := h.notifications.ListForOrder(idParam(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

type serviceRequest struct {
	Game         string `json:"game" binding:"required,max=64"`
	Type         string `json:"type" binding:"required,max=64"`
	Name         string `json:"name" binding:"required,max=128"`
	Description  string `json:"description" binding:"max=4000"`
	PriceCents   int64  `json:"price_cents" binding:"required,min=1"`
	DurationDays int    `json:"duration_days" binding:"min=0"`
	Active       bool   `json:"active"`
}

func (h *AdminHandler) CreateService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s := &models.Service{
		Game:         req.Game,
		Type:         req.Type,
		Name:         req.Name,
		Description:  req.Description,
		PriceCents:   req.PriceCents,
		DurationDays: req.DurationDays,
		Active:       req.Active,
	}
	if err := h.services.Create(s); err != nil {
		fail(c, err)
		return
	}
	h.recordAction(c, "service.create", "service", s.ID)
	c.JSON(http.StatusCreated, gin.H{"service": s})
}

func (h *AdminHandler) UpdateService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s, err := h.services.GetByID(idParam(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	s.Game = req.Game
	s.Type = req.Type
	s.Name = req.Name
	s.Description = req.Description
	s.PriceCents = req.PriceCents
	s.DurationDays = req.DurationDays
	s.Active = req.Active
	if err := h.services.Update(s); err != nil {
		fail(c, err)
		return
	}
	h.recordAction(c, "service.update", "service", s.ID)
	c.JSON(http.StatusOK, gin.H{"service": s})
}

func (h *AdminHandler) DeleteService(c *gin.Context) {
	id := idParam(c, "id")
	if err := h.services.Delete(id); err != nil {
		fail(c, err)
		return
	}
	h.recordAction(c, "service.delete", "service", id)
	c.JSON(http.StatusOK, gin.H{"message": "service deleted"})
}

func (h *AdminHandler) ListAllServices(c *gin.Context) {
	list, err := h.services.ListAll()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": list})
}

func (h *AdminHandler) AuditLogs(c *gin.Context) {
	limit, offset := pagination(c)
	list, err := h.audit.ListRecent(limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": list})
}
