package handler

import (
	"fmt"
	"net/http"

	"rankboost/internal/middleware"
	"rankboost/internal/service"
	"rankboost/pkg/cloudinary"

	"github.com/gin-gonic/gin"
)

const maxProofBytes = 10 << 20

type BoosterHandler struct {
	boosters    *service.BoosterService
	orders      *service.OrderService
	commissions *service.CommissionService
	reviews     *service.ReviewService
	uploads     cloudinary.Client
}

func NewBoosterHandler(
	boosters *service.BoosterService,
	orders *service.OrderService,
	commissions *service.CommissionService,
	reviews *service.ReviewService,
	uploads cloudinary.Client,
) *BoosterHandler {
	return &BoosterHandler{
		boosters:    boosters,
		orders:      orders,
		commissions: commissions,
		reviews:     reviews,
		uploads:     uploads,
	}
}

type applyRequest struct {
	Bio       string `json:"bio" binding:"required,max=2000"`
	Languages string `json:"languages" binding:"max=255"`
}

func (h *BoosterHandler) Apply(c *gin.Context) {
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.boosters.Apply(middleware.GetUserID(c), req.Bio, req.Languages)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"profile": p})
}

func (h *BoosterHandler) MyProfile(c *gin.Context) {
	p, err := h.boosters.Profile(middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

func (h *BoosterHandler) AvailableOrders(c *gin.Context) {
	limit, offset := pagination(c)
	list, err := h.orders.ListAvailable(limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": list})
}

func (h *BoosterHandler) MyOrders(c *gin.Context) {
	limit, offset := pagination(c)
	list, err := h.orders.ListForBooster(middleware.GetUserID(c), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": list})
}

func (h *BoosterHandler) Accept(c *gin.Context) {
	o, err := h.orders.Accept(idParam(c, "id"), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": o})
}

func (h *BoosterHandler) Complete(c *gin.Context) {
	o, err := h.orders.Complete(idParam(c, "id"), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": o})
}

// UploadProof takes a multipart screenshot, stores it on Cloudinary and
// attaches the URL to the order.
func (h *BoosterHandler) UploadProof(c *gin.Context) {
	if h.uploads == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "uploads are not configured"})
		return
	}
	orderID := idParam(c, "id")
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fileHeader.Size > maxProofBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds 10MB"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		fail(c, err)
		return
	}
	defer file.Close()

	url, err := h.uploads.UploadImage(c.Request.Context(), file, "proofs",
		fmt.Sprintf("order-%d", orderID))
	if err != nil {
		fail(c, err)
		return
	}
	o, err := h.orders.SetProof(orderID, middleware.GetUserID(c), url)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": o})
}

func (h *BoosterHandler) MyCommissions(c *gin.Context) {
	limit, offset := pagination(c)
	list, err := h.commissions.ListForBooster(middleware.GetUserID(c), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commissions": list})
}

// Reviews is public: anyone can inspect a booster's track record.
func (h *BoosterHandler) Reviews(c *gin.Context) {
	limit, offset := pagination(c)
	list, err := h.reviews.ListForBooster(idParam(c, "id"), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": list})
}
