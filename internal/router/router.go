package router

import (
	"time"

	"rankboost/config"
	"rankboost/internal/handler"
	"rankboost/internal/middleware"
	"rankboost/internal/ws"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything Setup mounts.
type Handlers struct {
	Auth          *handler.AuthHandler
	Me            *handler.MeHandler
	Orders        *handler.OrderHandler
	Boosters      *handler.BoosterHandler
	Disputes      *handler.DisputeHandler
	Notifications *handler.NotificationHandler
	Admin         *handler.AdminHandler
	Services      *handler.ServiceHandler
	Webhooks      *handler.WebhookHandler
}

// Setup builds the gin engine with all routes, auth and rate limits.
func Setup(cfg *config.Config, h *Handlers, hub *ws.Hub) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, time.Minute)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	registerLimit := middleware.RateLimit(middleware.NewInMemoryRateLimiter(3, 15*time.Minute))
	resendLimit := middleware.RateLimit(middleware.NewInMemoryRateLimiter(3, 15*time.Minute))
	orderLimit := middleware.RateLimit(middleware.NewInMemoryRateLimiter(10, time.Minute))

	v1 := r.Group("/api/v1")

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", registerLimit, h.Auth.Register)
		authGroup.POST("/verify", h.Auth.Verify)
		authGroup.POST("/resend-code", resendLimit, h.Auth.ResendCode)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
		authGroup.POST("/forgot-password", resendLimit, h.Auth.ForgotPassword)
		authGroup.POST("/reset-password", h.Auth.ResetPassword)
	}

	// Public catalog and pricing.
	v1.GET("/services", h.Services.List)
	v1.GET("/services/:id", h.Services.Get)
	v1.GET("/pricing/quote", h.Orders.Quote)
	v1.GET("/boosters/:id/reviews", h.Boosters.Reviews)

	v1.POST("/webhooks/payments", h.Webhooks.HandlePayment)

	authed := v1.Group("")
	authed.Use(middleware.AuthRequired(&cfg.JWT))
	{
		me := authed.Group("/me")
		{
			me.GET("", h.Me.Profile)
			me.PUT("", h.Me.UpdateProfile)
			me.PUT("/password", h.Me.ChangePassword)
			me.PUT("/payout-key", h.Me.SetPayoutKey)
			me.DELETE("", h.Me.DeleteAccount)
		}

		orders := authed.Group("/orders")
		{
			orders.POST("", orderLimit, h.Orders.Create)
			orders.GET("", h.Orders.ListMine)
			orders.GET("/:id", h.Orders.Get)
			orders.POST("/:id/cancel", h.Orders.Cancel)
			orders.POST("/:id/review", h.Orders.Review)
			orders.POST("/:id/disputes", h.Disputes.Open)
		}

		disputes := authed.Group("/disputes")
		{
			disputes.GET("", h.Disputes.ListMine)
			disputes.GET("/:id", h.Disputes.Get)
			disputes.POST("/:id/messages", h.Disputes.PostMessage)
		}

		notifications := authed.Group("/notifications")
		{
			notifications.GET("", h.Notifications.List)
			notifications.PUT("/:id/read", h.Notifications.MarkRead)
		}

		// Application is open to any authenticated user; the rest of the
		// booster surface needs the role.
		authed.POST("/booster/apply", h.Boosters.Apply)

		booster := authed.Group("/booster")
		booster.Use(middleware.RequireRole("BOOSTER", "ADMIN"))
		{
			booster.GET("/profile", h.Boosters.MyProfile)
			booster.GET("/orders/available", h.Boosters.AvailableOrders)
			booster.GET("/orders", h.Boosters.MyOrders)
			booster.POST("/orders/:id/accept", h.Boosters.Accept)
			booster.POST("/orders/:id/complete", h.Boosters.Complete)
			booster.POST("/orders/:id/proof", h.Boosters.UploadProof)
			booster.GET("/commissions", h.Boosters.MyCommissions)
		}

		admin := authed.Group("/admin")
		admin.Use(middleware.AdminRequired())
		{
			admin.GET("/dashboard", h.Admin.Dashboard)
			admin.GET("/users", h.Admin.ListUsers)
			admin.PATCH("/users/:id", h.Admin.UpdateUser)
			admin.GET("/boosters/pending", h.Admin.ListPendingBoosters)
			admin.POST("/boosters/:id/approve", h.Admin.ApproveBooster)
			admin.POST("/boosters/:id/reject", h.Admin.RejectBooster)

			admin.GET("/commission-config", h.Admin.CommissionConfig)
			admin.GET("/commission-config/history", h.Admin.CommissionConfigHistory)
			admin.PUT("/commission-config", h.Admin.UpdateCommissionConfig)
			admin.POST("/commissions/:orderId/confirm", h.Admin.ConfirmPayout)

			admin.GET("/pricing", h.Admin.ListPricing)
			admin.POST("/pricing", h.Admin.CreatePricing)
			admin.DELETE("/pricing/:id", h.Admin.DisablePricing)

			admin.GET("/disputes", h.Admin.ListDisputes)
			admin.POST("/disputes/:id/resolve", h.Admin.ResolveDispute)

			admin.PUT("/orders/:id/status", h.Admin.UpdateOrderStatus)
			admin.GET("/orders/:id/payments", h.Admin.OrderPayments)
			admin.POST("/payments/:ref/reconcile", h.Admin.ReconcilePayment)
			admin.GET("/orders/:id/notifications", h.Admin.OrderNotifications)

			admin.GET("/services", h.Admin.ListAllServices)
			admin.POST("/services", h.Admin.CreateService)
			admin.PUT("/services/:id", h.Admin.UpdateService)
			admin.DELETE("/services/:id", h.Admin.DeleteService)

			admin.GET("/audit-logs", h.Admin.AuditLogs)
		}
	}

	r.GET("/ws/notifications", ws.UpgradeNotificationsWS(&cfg.JWT, hub))

	return r
}
