package routes

import (
	"net/http"
	"time"

	"vowflow/handlers"
	"vowflow/middleware"
	"vowflow/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterWorkflowRoutes registers the reservation workflow endpoints.
func RegisterWorkflowRoutes(r *gin.Engine, wh *handlers.WorkflowHandler) {
	api := r.Group("/api/workflows")
	{
		api.POST("", wh.Initiate)
		api.GET("", wh.List)
		api.GET("/:id", wh.Get)
		api.GET("/:id/timeline", wh.Timeline)

		api.POST("/:id/quotes", wh.SubmitQuote)
		api.POST("/:id/quotes/:quoteID/accept", wh.AcceptQuote)
		api.POST("/:id/contract/sign", wh.SignContract)
		api.POST("/:id/delivered", wh.MarkDelivered)
		api.POST("/:id/cancel", wh.Cancel)
		api.POST("/:id/reschedule", wh.Reschedule)
		api.POST("/:id/payments/retry", wh.RetryPayment)
	}
}

// RegisterVendorRoutes registers vendor calendar endpoints.
func RegisterVendorRoutes(r *gin.Engine, wh *handlers.WorkflowHandler) {
	api := r.Group("/api/vendors/:id")
	{
		api.GET("/availability", wh.CheckAvailability)
		api.GET("/blocked", wh.ListBlockedDates)
		api.POST("/blocked", wh.BlockDate)
		api.DELETE("/blocked/:blockID", wh.UnblockDate)
	}
}

// RegisterDeviceRoutes registers push-token management endpoints.
func RegisterDeviceRoutes(r *gin.Engine, dh *handlers.DeviceHandler) {
	r.PUT("/api/devices/fcm-token", dh.UpdateFCMToken)
}

// RegisterWebhookRoutes registers gateway callback endpoints.
func RegisterWebhookRoutes(r *gin.Engine, ph *handlers.PaymentWebhookHandler) {
	r.POST("/webhooks/payment", ph.Handle)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Vowflow"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, wh *handlers.WorkflowHandler, ph *handlers.PaymentWebhookHandler, dh *handlers.DeviceHandler) {
	r.Use(gin.Recovery())
	r.Use(utils.ErrorHandler())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	// Webhook and health are registered before the rate limiter attaches
	// so the gateway is never throttled.
	RegisterWebhookRoutes(r, ph)
	RegisterHealthRoute(r)

	r.Use(middleware.RateLimitMiddleware())

	RegisterWorkflowRoutes(r, wh)
	RegisterVendorRoutes(r, wh)
	RegisterDeviceRoutes(r, dh)
}
