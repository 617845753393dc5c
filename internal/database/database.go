package database

import (
	"rankboost/config"
	"rankboost/internal/domain"
	"rankboost/internal/logger"
	"rankboost/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Error),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.BoosterProfile{},
		&models.Service{},
		&models.Order{},
		&models.Payment{},
		&models.BoosterCommission{},
		&models.AdminRevenue{},
		&models.CommissionConfig{},
		&models.PricingConfig{},
		&models.Dispute{},
		&models.DisputeMessage{},
		&models.Review{},
		&models.Notification{},
		&models.VerificationCode{},
		&models.AuditLog{},
	)
}

// Seed creates the bootstrap admin and a default commission config when the
// tables are empty.
func Seed(db *gorm.DB, adminEmail, adminPassword string) {
	var admins int64
	db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&admins)
	if admins == 0 && adminEmail != "" && adminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err == nil {
			db.Create(&models.User{
				Name:         "Admin",
				Email:        adminEmail,
				PasswordHash: string(hash),
				Role:         domain.RoleAdmin,
				Active:       true,
			})
			logger.Log.Info("seeded bootstrap admin")
		}
	}

	var configs int64
	db.Model(&models.CommissionConfig{}).Where("enabled = ?", true).Count(&configs)
	if configs == 0 {
		db.Create(&models.CommissionConfig{
			BoosterPercentage: 0.70,
			AdminPercentage:   0.30,
			Enabled:           true,
		})
		logger.Log.Info("seeded default commission config")
	}
}
