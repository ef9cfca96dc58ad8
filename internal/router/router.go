package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "amorlias/docs" // swagger spec registration
	"amorlias/internal/domain"
	"amorlias/internal/handler"
	"amorlias/internal/metrics"
	"amorlias/internal/middleware"
	"amorlias/internal/service"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Health       *handler.HealthHandler
	GST          *handler.GSTHandler
	Order        *handler.OrderHandler
	Label        *handler.LabelHandler
	Product      *handler.ProductHandler
	Settings     *handler.SettingsHandler
	Inventory    *handler.InventoryHandler
	POS          *handler.POSHandler
	Notification *handler.NotificationHandler
	Stats        *handler.StatsHandler
	Report       *handler.ReportHandler
	User         *handler.UserHandler
	File         *handler.FileHandler
}

// Options carries the cross-cutting pieces the middleware needs.
type Options struct {
	Log            zerolog.Logger
	Metrics        *metrics.Metrics
	AllowedOrigins []string
	EnableSwagger  bool
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, h Handlers, opts Options) *gin.Engine {
	handler.RegisterValidators()

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(opts.Log))
	r.Use(middleware.CORS(opts.AllowedOrigins))
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	if opts.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")

	// Public calculator
	gstGroup := v1.Group("/gst")
	gstGroup.POST("/breakup", h.GST.Breakup)
	gstGroup.POST("/taxable-value", h.GST.TaxableValue)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	orders := protected.Group("/orders")
	orders.GET("", h.Order.ListMine)
	orders.GET("/:id", h.Order.GetMine)

	notifications := protected.Group("/notifications")
	notifications.GET("", h.Notification.List)
	notifications.GET("/unread-count", h.Notification.UnreadCount)
	notifications.GET("/effects", h.Notification.Effects)
	notifications.PUT("/read-all", h.Notification.MarkAllRead)
	notifications.PUT("/:id/read", h.Notification.MarkRead)

	// Admin routes
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authSvc))
	admin.Use(middleware.RequireRole(domain.RoleAdmin))

	products := admin.Group("/products")
	products.POST("", h.Product.Create)
	products.GET("", h.Product.List)
	products.GET("/:id", h.Product.GetByID)
	products.PUT("/:id", h.Product.Update)
	products.DELETE("/:id", h.Product.Delete)

	admin.GET("/dashboard", h.Stats.Dashboard)

	reports := admin.Group("/reports")
	reports.GET("/tax-summary", h.Report.TaxSummary)
	reports.GET("/hsn-summary", h.Report.HSNSummary)

	users := admin.Group("/users")
	users.GET("", h.User.List)
	users.GET("/:id", h.User.GetByID)
	users.PUT("/:id/role", h.User.UpdateRole)

	admin.POST("/uploads/image", h.File.UploadImage)

	admin.GET("/settings", h.Settings.Get)
	admin.PUT("/settings", h.Settings.Update)

	adminOrders := admin.Group("/orders")
	adminOrders.GET("", h.Order.List)
	adminOrders.GET("/export", h.Order.ExportGSTRegister)
	adminOrders.GET("/:id", h.Order.Get)
	adminOrders.PUT("/:id/shipment", h.Order.UpdateShipment)
	adminOrders.PUT("/:id/status", h.Order.UpdateStatus)
	adminOrders.GET("/:id/label", h.Label.Preview)
	adminOrders.GET("/:id/label.pdf", h.Label.PDF)
	adminOrders.POST("/:id/label/archive", h.Label.Archive)

	admin.GET("/inventory/report", h.Inventory.Report)
	admin.GET("/inventory/report.xlsx", h.Inventory.ReportXLSX)

	pos := admin.Group("/pos")
	pos.POST("/sales", h.POS.CreateSale)
	pos.GET("/customers", h.POS.SearchCustomer)

	return r
}
