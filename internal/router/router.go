// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/threadforge/pod-backend/internal/config"
	"github.com/threadforge/pod-backend/internal/handlers"
	"github.com/threadforge/pod-backend/internal/middleware"
	"github.com/threadforge/pod-backend/internal/services"
	"github.com/threadforge/pod-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg)
	artworkService := services.NewArtworkService(db, storageService)
	pricingService := services.NewPricingService(db)
	catalogService := services.NewCatalogService(db)
	quoteService := services.NewQuoteService(pricingService, artworkService)
	paymentService := services.NewPaymentService(db, cfg)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	pricingHandler := handlers.NewPricingHandler(pricingService, catalogService)
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	artworkHandler := handlers.NewArtworkHandler(artworkService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	adminHandler := handlers.NewAdminHandler(adminService, paymentService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Catalog routes
		productTypes := v1.Group("/product-types")
		{
			productTypes.GET("", catalogHandler.GetProductTypes)
			productTypes.GET("/:id", catalogHandler.GetProductType)
			productTypes.GET("/slug/:slug", catalogHandler.GetProductTypeBySlug)
			productTypes.GET("/:id/design-config", catalogHandler.GetDesignConfiguration)
		}

		// Design pricing routes
		designPricing := v1.Group("/design-pricing")
		{
			designPricing.POST("", middleware.PricingRateLimit(), pricingHandler.CalculatePricing)
			designPricing.GET("", pricingHandler.GetDesignConfiguration)
		}

		// Quote routes
		v1.POST("/design-quote", middleware.PricingRateLimit(), quoteHandler.CreateQuote)

		// Artwork routes
		artwork := v1.Group("/artwork")
		{
			artwork.POST("/upload", middleware.UploadRateLimit(), artworkHandler.UploadArtwork)
			artwork.GET("/:id", artworkHandler.GetArtwork)
		}

		// Payment routes
		payments := v1.Group("/payments")
		{
			payments.GET("/config", paymentHandler.GetPaymentConfig)
			payments.POST("/quote-deposit", paymentHandler.CreateQuoteDeposit)
			payments.POST("/confirm", paymentHandler.ConfirmPayment)
			payments.GET("/quote/:reference", paymentHandler.GetQuotePayments)
			payments.GET("/:id", paymentHandler.GetTransaction)
		}

		// Category routes
		v1.GET("/categories", getCategoriesHandler)

		// Admin routes
		admin := v1.Group("/admin")
		{
			// Dashboard
			dashboard := admin.Group("/dashboard")
			{
				dashboard.GET("/stats", adminHandler.GetDashboardStats)
			}

			// Catalog management
			adminProductTypes := admin.Group("/product-types")
			{
				adminProductTypes.GET("", adminHandler.GetProductTypes)
				adminProductTypes.POST("", adminHandler.CreateProductType)
				adminProductTypes.PUT("/:id", adminHandler.UpdateProductType)
				adminProductTypes.DELETE("/:id", adminHandler.DeleteProductType)
			}

			// Design area management
			adminAreas := admin.Group("/design-areas")
			{
				adminAreas.GET("", adminHandler.GetDesignAreas)
				adminAreas.POST("", adminHandler.CreateDesignArea)
				adminAreas.PUT("/:id", adminHandler.UpdateDesignArea)
				adminAreas.DELETE("/:id", adminHandler.DeleteDesignArea)
			}

			// Design area group management
			adminGroups := admin.Group("/design-area-groups")
			{
				adminGroups.GET("", adminHandler.GetDesignAreaGroups)
				adminGroups.POST("", adminHandler.CreateDesignAreaGroup)
				adminGroups.PUT("/:id", adminHandler.UpdateDesignAreaGroup)
				adminGroups.DELETE("/:id", adminHandler.DeleteDesignAreaGroup)
			}

			// Transaction management
			adminTransactions := admin.Group("/transactions")
			{
				adminTransactions.GET("", adminHandler.GetTransactions)
			}

			// Payments
			adminPayments := admin.Group("/payments")
			{
				adminPayments.POST("/refund", adminHandler.ProcessRefund)
			}

			// Artwork housekeeping
			admin.DELETE("/artwork/:id", artworkHandler.DeleteArtwork)

			// Audit trail
			admin.GET("/audit-logs", adminHandler.GetAuditLogs)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}

// Helper handlers for simple endpoints
func getCategoriesHandler(c *gin.Context) {
	categories := []map[string]interface{}{
		{"id": "tees", "name": "T-Shirts", "icon": "shirt"},
		{"id": "hoodies", "name": "Hoodies & Sweatshirts", "icon": "hoodie"},
		{"id": "long-sleeves", "name": "Long Sleeves", "icon": "shirt-long"},
		{"id": "tanks", "name": "Tank Tops", "icon": "tank"},
		{"id": "headwear", "name": "Hats & Beanies", "icon": "cap"},
		{"id": "bags", "name": "Tote Bags", "icon": "bag"},
	}

	utils.SuccessResponse(c, gin.H{
		"categories": categories,
	})
}
