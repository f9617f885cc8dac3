package api

import (
	"log"
	stdhttp "net/http"

	intconfig "cinecraft/internal/config"
	h "cinecraft/internal/http/handlers"
	"cinecraft/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Metrics(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"success": false,
			"message": "Route not found",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if env.UploadDir != "" && !env.Cloudinary.Enabled() {
		r.Static("/uploads", env.UploadDir)
	}

	requireAuth := middleware.RequireAuth(h.ParseToken)
	optionalAuth := middleware.OptionalAuth(h.ParseToken)
	adminOnly := []gin.HandlerFunc{requireAuth, middleware.RequireRoles("admin")}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.GET("/me", requireAuth, h.Me)

		// Services
		services := api.Group("/services")
		services.GET("", h.ListServices)
		services.GET("/search", h.SearchServices)
		services.GET("/category/:category", h.ServicesByCategory)
		services.GET("/:id", h.GetService)
		mountAdmin(services, adminOnly, func(g *gin.RouterGroup) {
			g.POST("", h.CreateService)
			g.POST("/upload-image", h.UploadServiceImage)
			g.PUT("/:id", h.UpdateService)
			g.DELETE("/:id", h.DeleteService)
		})

		// Portfolio
		portfolio := api.Group("/portfolio")
		portfolio.GET("", optionalAuth, h.ListPortfolio)
		portfolio.GET("/category/:category", optionalAuth, h.PortfolioByCategory)
		portfolio.GET("/:id", optionalAuth, h.GetPortfolioItem)
		mountAdmin(portfolio, adminOnly, func(g *gin.RouterGroup) {
			g.POST("", h.CreatePortfolioItem)
			g.POST("/upload-image", h.UploadPortfolioImage)
			g.PUT("/:id", h.UpdatePortfolioItem)
			g.DELETE("/:id", h.DeletePortfolioItem)
		})

		// Bookings
		bookings := api.Group("/bookings")
		bookings.POST("", optionalAuth, h.CreateBooking)
		bookings.GET("/user/bookings", requireAuth, h.UserBookings)
		mountAdmin(bookings, adminOnly, func(g *gin.RouterGroup) {
			g.GET("", h.ListBookings)
			g.GET("/stats", h.BookingStats)
			g.GET("/export", h.ExportBookings)
			g.GET("/status/:status", h.BookingsByStatus)
			g.GET("/:id", h.GetBooking)
			g.GET("/:id/confirmation", h.BookingConfirmationPDF)
			g.GET("/:id/quote", h.BookingQuotePDF)
			g.PUT("/:id", h.UpdateBooking)
			g.PATCH("/:id/status", h.UpdateBookingStatus)
			g.PATCH("/:id/confirm", h.ConfirmBooking)
			g.DELETE("/:id", h.DeleteBooking)
		})

		// Feedback
		feedback := api.Group("/feedback")
		feedback.POST("", h.CreateFeedback)
		feedback.GET("/approved", h.ApprovedFeedback)
		feedback.GET("/stats", h.FeedbackStats)
		feedback.GET("/category/:category", h.FeedbackByCategory)
		mountAdmin(feedback, adminOnly, func(g *gin.RouterGroup) {
			g.GET("", h.ListFeedback)
			g.GET("/:id", h.GetFeedback)
			g.PATCH("/:id/status", h.UpdateFeedbackStatus)
			g.DELETE("/:id", h.DeleteFeedback)
		})

		// Content
		content := api.Group("/content")
		content.GET("", h.GetContent)
		mountAdmin(content, adminOnly, func(g *gin.RouterGroup) {
			g.PUT("", h.UpdateContent)
		})

		// Uploads
		uploads := api.Group("/upload")
		uploads.POST("/image", h.UploadImage)
		uploads.POST("/single", h.UploadSingle)
		uploads.POST("/multiple", h.UploadMultiple)
		mountAdmin(uploads, adminOnly, func(g *gin.RouterGroup) {
			g.DELETE("/*publicId", h.DeleteUpload)
		})

		// Notifications
		mountAdmin(api.Group("/notifications"), adminOnly, func(g *gin.RouterGroup) {
			g.GET("", h.GetNotifications)
			g.GET("/ws", h.NotificationsWS)
			g.POST("/read", h.MarkNotificationsRead)
			g.DELETE("", h.ClearNotifications)
		})
	}

	h.SetRouter(r)
	return r
}

func mountAdmin(parent *gin.RouterGroup, guards []gin.HandlerFunc, mount func(*gin.RouterGroup)) {
	mount(parent.Group("", guards...))
}
