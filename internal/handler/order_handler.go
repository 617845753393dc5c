package handler

import (
	"net/http"
	"strconv"

	"rankboost/internal/domain"
	"rankboost/internal/middleware"
	"rankboost/internal/service"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orders  *service.OrderService
	pricing *service.PricingService
	reviews *service.ReviewService
}

func NewOrderHandler(orders *service.OrderService, pricing *service.PricingService, reviews *service.ReviewService) *OrderHandler {
	return &OrderHandler{orders: orders, pricing: pricing, reviews: reviews}
}

type createOrderRequest struct {
	Game          string `json:"game" binding:"required,max=64"`
	GameMode      string `json:"game_mode" binding:"required,max=64"`
	CurrentRating int    `json:"current_rating" binding:"min=0"`
	TargetRating  int    `json:"target_rating" binding:"required,min=1"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	o, p, checkoutURL, err := h.orders.Create(c.Request.Context(),
		middleware.GetUserID(c), req.Game, req.GameMode, req.CurrentRating, req.TargetRating)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"order":        o,
		"payment":      p,
		"checkout_url": checkoutURL,
	})
}

// Quote is public so clients can see the price before signing up.
func (h *OrderHandler) Quote(c *gin.Context) {
	game := c.Query("game")
	gameMode := c.Query("game_mode")
	current, err1 := strconv.Atoi(c.Query("current_rating"))
	target, err2 := strconv.Atoi(c.Query("target_rating"))
	if game == "" || gameMode == "" || err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "game, game_mode, current_rating and target_rating are required"})
		return
	}
	total, err := h.pricing.Quote(game, gameMode, current, target)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"game":           game,
		"game_mode":      gameMode,
		"current_rating": current,
		"target_rating":  target,
		"total_cents":    total,
	})
}

func (h *OrderHandler) ListMine(c *gin.Context) {
	limit, offset := pagination(c)
	list, err := h.orders.ListForClient(middleware.GetUserID(c), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": list})
}

func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.orders.Get(idParam(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	userID := middleware.GetUserID(c)
	if middleware.GetRole(c) != domain.RoleAdmin &&
		o.ClientID != userID &&
		(o.BoosterID == nil || *o.BoosterID != userID) {
		fail(c, domain.ErrForbidden)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": o})
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	o, err := h.orders.Cancel(idParam(c, "id"), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": o})
}

type reviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

func (h *OrderHandler) Review(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	rev, err := h.reviews.Add(idParam(c, "id"), middleware.GetUserID(c), req.Rating, req.Comment)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": rev})
}
