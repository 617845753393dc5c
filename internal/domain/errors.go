package domain

import "fmt"

// CodedError is a business-rule failure with a stable machine-readable code.
// Services return these instead of throwing; handlers map codes to HTTP
// statuses. Infrastructure errors stay plain errors and surface as 500s.
type CodedError struct {
	Code    string
	Message string
}

func (e *CodedError) Error() string { return e.Message }

func NewCodedError(code, message string) *CodedError {
	return &CodedError{Code: code, Message: message}
}

const (
	CodeDuplicateOrder          = "DUPLICATE_ORDER"
	CodeOrderNotFound           = "ORDER_NOT_FOUND"
	CodeOrderAlreadyAccepted    = "ORDER_ALREADY_ACCEPTED"
	CodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	CodeForbidden               = "FORBIDDEN"
	CodeInvalidRange            = "INVALID_RANGE"
	CodeRangeNotCovered         = "RANGE_NOT_COVERED"
	CodeRangeOverlap            = "RANGE_OVERLAP"
	CodeInvalidCommissionSplit  = "INVALID_COMMISSION_SPLIT"
	CodePaymentRequired         = "PAYMENT_REQUIRED"
	CodeInvalidCode             = "INVALID_CODE"
	CodeDisputeClosed           = "DISPUTE_CLOSED"
	CodeDisputeNotFound         = "DISPUTE_NOT_FOUND"
	CodeNotFound                = "NOT_FOUND"
	CodeActiveOrders            = "ACTIVE_ORDERS"
	CodeReviewExists            = "REVIEW_EXISTS"
	CodeBoosterNotVerified      = "BOOSTER_NOT_VERIFIED"
)

var (
	ErrDuplicateOrder       = NewCodedError(CodeDuplicateOrder, "an active order already exists for this game mode")
	ErrOrderNotFound        = NewCodedError(CodeOrderNotFound, "order not found")
	ErrOrderAlreadyAccepted = NewCodedError(CodeOrderAlreadyAccepted, "order already accepted by another booster")
	ErrForbidden            = NewCodedError(CodeForbidden, "not allowed")
	ErrInvalidRange         = NewCodedError(CodeInvalidRange, "current rating must be below target rating")
	ErrRangeOverlap         = NewCodedError(CodeRangeOverlap, "an enabled bracket already covers part of this range")
	ErrInvalidSplit         = NewCodedError(CodeInvalidCommissionSplit, "booster and platform percentages must sum to 1.0")
	ErrPaymentRequired      = NewCodedError(CodePaymentRequired, "order has no confirmed payment")
	ErrInvalidCode          = NewCodedError(CodeInvalidCode, "invalid or expired code")
	ErrDisputeClosed        = NewCodedError(CodeDisputeClosed, "dispute is no longer open")
	ErrDisputeNotFound      = NewCodedError(CodeDisputeNotFound, "dispute not found")
	ErrActiveOrders         = NewCodedError(CodeActiveOrders, "account has orders still in progress")
	ErrReviewExists         = NewCodedError(CodeReviewExists, "order already reviewed")
	ErrBoosterNotVerified   = NewCodedError(CodeBoosterNotVerified, "booster account is not verified")
)

// ErrTransition names the current status so callers know why the move was refused.
func ErrTransition(from, to string) *CodedError {
	return NewCodedError(CodeInvalidStatusTransition,
		fmt.Sprintf("cannot move order from %s to %s", from, to))
}

// ErrRangeGap reports the first rating point no enabled bracket covers.
func ErrRangeGap(at int) *CodedError {
	return NewCodedError(CodeRangeNotCovered,
		fmt.Sprintf("no enabled price bracket covers rating %d", at))
}
