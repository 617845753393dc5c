package handler

import (
	"errors"
	"net/http"
	"strconv"

	"rankboost/internal/auth"
	"rankboost/internal/domain"
	"rankboost/internal/logger"
	"rankboost/internal/models"
	"rankboost/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// codeStatus maps business error codes to HTTP statuses. Anything unmapped
// is an infrastructure failure and surfaces as 500.
var codeStatus = map[string]int{
	domain.CodeDuplicateOrder:          http.StatusConflict,
	domain.CodeOrderNotFound:           http.StatusNotFound,
	domain.CodeOrderAlreadyAccepted:    http.StatusConflict,
	domain.CodeInvalidStatusTransition: http.StatusConflict,
	domain.CodeForbidden:               http.StatusForbidden,
	domain.CodeInvalidRange:            http.StatusBadRequest,
	domain.CodeRangeNotCovered:         http.StatusBadRequest,
	domain.CodeRangeOverlap:            http.StatusConflict,
	domain.CodeInvalidCommissionSplit:  http.StatusBadRequest,
	domain.CodePaymentRequired:         http.StatusPaymentRequired,
	domain.CodeInvalidCode:             http.StatusBadRequest,
	domain.CodeDisputeClosed:           http.StatusConflict,
	domain.CodeDisputeNotFound:         http.StatusNotFound,
	domain.CodeNotFound:                http.StatusNotFound,
	domain.CodeActiveOrders:            http.StatusConflict,
	domain.CodeReviewExists:            http.StatusConflict,
	domain.CodeBoosterNotVerified:      http.StatusForbidden,
}

func fail(c *gin.Context, err error) {
	var coded *domain.CodedError
	if errors.As(err, &coded) {
		status, ok := codeStatus[coded.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": coded.Message, "code": coded.Code})
		return
	}
	switch {
	case errors.Is(err, service.ErrInvalidCreds):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotVerified):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrApplicationExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "code": domain.CodeNotFound})
	default:
		logger.Log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

type auditStore interface {
	Create(l *models.AuditLog) error
}

// recordAudit appends to the audit trail; failures are logged, not fatal.
func recordAudit(c *gin.Context, store auditStore, userID *uint, action, resource, resourceID string) {
	if store == nil {
		return
	}
	err := store.Create(&models.AuditLog{
		UserID:     userID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})
	if err != nil {
		logger.Log.Warn("audit log write failed", zap.String("action", action), zap.Error(err))
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// idParam parses a positive uint path parameter, 0 meaning invalid.
func idParam(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}

// pagination reads limit/offset query params with sane bounds.
func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
