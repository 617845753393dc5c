package repository

import (
	"rankboost/internal/domain"
	"rankboost/internal/models"

	"gorm.io/gorm"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

type DashboardStats struct {
	TotalUsers           int64 `json:"total_users"`
	TotalBoosters        int64 `json:"total_boosters"`
	OrdersInProgress     int64 `json:"orders_in_progress"`
	OrdersCompleted      int64 `json:"orders_completed"`
	OpenDisputes         int64 `json:"open_disputes"`
	PendingCommissionCents int64 `json:"pending_commission_cents"`
	RevenueCents         int64 `json:"revenue_cents"`
}

func (r *AdminRepository) GetDashboardStats() (*DashboardStats, error) {
	var s DashboardStats
	if err := r.db.Model(&models.User{}).Count(&s.TotalUsers).Error; err != nil {
		return nil, err
	}
	r.db.Model(&models.User{}).Where("role = ?", domain.RoleBooster).Count(&s.TotalBoosters)
	r.db.Model(&models.Order{}).Where("status = ?", domain.OrderStatusInProgress).Count(&s.OrdersInProgress)
	r.db.Model(&models.Order{}).Where("status = ?", domain.OrderStatusCompleted).Count(&s.OrdersCompleted)
	r.db.Model(&models.Dispute{}).Where("status = ?", domain.DisputeStatusOpen).Count(&s.OpenDisputes)
	r.db.Model(&models.BoosterCommission{}).
		Where("status = ?", domain.CommissionStatusPending).
		Select("COALESCE(SUM(amount_cents), 0)").Scan(&s.PendingCommissionCents)
	r.db.Model(&models.AdminRevenue{}).
		Select("COALESCE(SUM(amount_cents), 0)").Scan(&s.RevenueCents)
	return &s, nil
}
