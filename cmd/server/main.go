package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rankboost/config"
	"rankboost/internal/crypto"
	"rankboost/internal/database"
	"rankboost/internal/handler"
	"rankboost/internal/logger"
	"rankboost/internal/repository"
	"rankboost/internal/router"
	"rankboost/internal/service"
	"rankboost/internal/ws"
	"rankboost/pkg/cloudinary"
	"rankboost/pkg/email"
	"rankboost/pkg/payment"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not up yet; stderr is all we have.
		panic(err)
	}
	if err := logger.Init(cfg.Server.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Log.Sync()

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.Log.Fatal("migration failed", zap.Error(err))
	}
	database.Seed(db, os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD"))

	cipher, err := crypto.NewCipher(cfg.Encryption.Key)
	if err != nil {
		logger.Log.Fatal("encryption key invalid", zap.Error(err))
	}

	// Repositories.
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)
	pricingRepo := repository.NewPricingRepository(db)
	disputeRepo := repository.NewDisputeRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	boosterRepo := repository.NewBoosterRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	codeRepo := repository.NewVerificationRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	// Outbound integrations. Missing credentials fall back to inert
	// implementations so local development works without accounts.
	var mailer email.Sender = email.NopSender{}
	if cfg.Email.APIKey != "" {
		mailer = email.NewClient(cfg.Email.BaseURL, cfg.Email.APIKey, cfg.Email.From)
	} else {
		logger.Log.Warn("EMAIL_API_KEY not set, emails will be dropped")
	}

	var provider payment.Provider = payment.NewStubProvider()
	if cfg.Payment.APIKey != "" {
		provider = payment.NewGatewayProvider(cfg.Payment.BaseURL, cfg.Payment.APIKey, cfg.Payment.CallbackURL)
	} else {
		logger.Log.Warn("PAYMENT_API_KEY not set, using stub checkout")
	}

	var uploads cloudinary.Client
	if cfg.Cloudinary.CloudName != "" {
		uploads, err = cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
		if err != nil {
			logger.Log.Fatal("cloudinary init failed", zap.Error(err))
		}
	} else {
		logger.Log.Warn("CLOUDINARY_CLOUD_NAME not set, proof uploads disabled")
	}

	hub := ws.NewHub()

	// Services.
	notificationSvc := service.NewNotificationService(notificationRepo, hub)
	pricingSvc := service.NewPricingService(pricingRepo)
	commissionSvc := service.NewCommissionService(commissionRepo, userRepo, orderRepo, paymentRepo)
	orderSvc := service.NewOrderService(orderRepo, paymentRepo, boosterRepo,
		pricingSvc, commissionSvc, notificationSvc, provider, cfg.Payment.Expiry)
	authSvc := service.NewAuthService(cfg, userRepo, codeRepo, orderRepo, mailer, cipher)
	boosterSvc := service.NewBoosterService(boosterRepo, notificationSvc)
	reviewSvc := service.NewReviewService(reviewRepo, orderRepo, boosterRepo)
	disputeSvc := service.NewDisputeService(disputeRepo, orderRepo, orderSvc, notificationSvc)

	handlers := &router.Handlers{
		Auth:          handler.NewAuthHandler(authSvc, auditRepo),
		Me:            handler.NewMeHandler(authSvc, userRepo),
		Orders:        handler.NewOrderHandler(orderSvc, pricingSvc, reviewSvc),
		Boosters:      handler.NewBoosterHandler(boosterSvc, orderSvc, commissionSvc, reviewSvc, uploads),
		Disputes:      handler.NewDisputeHandler(disputeSvc),
		Notifications: handler.NewNotificationHandler(notificationSvc),
		Admin: handler.NewAdminHandler(adminRepo, userRepo, paymentRepo, serviceRepo, auditRepo,
			boosterSvc, orderSvc, commissionSvc, pricingSvc, disputeSvc, notificationSvc, provider),
		Services: handler.NewServiceHandler(serviceRepo),
		Webhooks: handler.NewWebhookHandler(cfg.Payment.WebhookSecret, paymentRepo, orderSvc, auditRepo),
	}

	engine := router.Setup(cfg, handlers, hub)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Log.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("forced shutdown", zap.Error(err))
	}
	logger.Log.Info("server stopped")
}
