package domain

const (
	RoleClient  = "CLIENT"
	RoleBooster = "BOOSTER"
	RoleAdmin   = "ADMIN"
)

const (
	OrderStatusPending    = "PENDING"
	OrderStatusPaid       = "PAID"
	OrderStatusInProgress = "IN_PROGRESS"
	OrderStatusCompleted  = "COMPLETED"
	OrderStatusCancelled  = "CANCELLED"
	OrderStatusDisputed   = "DISPUTED"
)

const (
	PaymentStatusPending = "PENDING"
	PaymentStatusPaid    = "PAID"
	PaymentStatusExpired = "EXPIRED"
	PaymentStatusFailed  = "FAILED"
)

const (
	CommissionStatusPending = "PENDING"
	CommissionStatusPaid    = "PAID"
)

const (
	DisputeStatusOpen                 = "OPEN"
	DisputeStatusResolvedClientFavor  = "RESOLVED_CLIENT_FAVOR"
	DisputeStatusResolvedBoosterFavor = "RESOLVED_BOOSTER_FAVOR"
	DisputeStatusResolvedNoFault      = "RESOLVED_NO_FAULT"
)

const (
	BoosterStatusPending  = "PENDING"
	BoosterStatusVerified = "VERIFIED"
	BoosterStatusRejected = "REJECTED"
)

const (
	CodePurposeVerifyEmail   = "VERIFY_EMAIL"
	CodePurposeResetPassword = "RESET_PASSWORD"
)

// IsTerminalOrderStatus reports whether an order can no longer change.
func IsTerminalOrderStatus(status string) bool {
	return status == OrderStatusCompleted || status == OrderStatusCancelled
}

// ActiveOrderStatuses count toward the one-active-order-per-game-mode rule.
var ActiveOrderStatuses = []string{OrderStatusPending, OrderStatusPaid, OrderStatusInProgress}

// ResolvedDisputeStatuses are the terminal dispute states an admin may pick.
var ResolvedDisputeStatuses = []string{
	DisputeStatusResolvedClientFavor,
	DisputeStatusResolvedBoosterFavor,
	DisputeStatusResolvedNoFault,
}
