// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ecocupon/ecocanasta-api/internal/config"
	"github.com/ecocupon/ecocanasta-api/internal/handlers"
	"github.com/ecocupon/ecocanasta-api/internal/knasta"
	"github.com/ecocupon/ecocanasta-api/internal/middleware"
	"github.com/ecocupon/ecocanasta-api/internal/pricing"
	"github.com/ecocupon/ecocanasta-api/internal/services"
	"github.com/ecocupon/ecocanasta-api/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config, fetcher knasta.PriceFetcher) *gin.Engine {
	// Initialize services
	coupons := pricing.CouponGenerator{
		Prefix:   cfg.Coupon.Prefix,
		Infix:    cfg.Coupon.Infix,
		IDLength: cfg.Coupon.IDLength,
	}

	notificationService := services.NewNotificationService(cfg)
	storageService, _ := services.NewStorageService(cfg)

	catalogService := services.NewCatalogService(db, coupons)
	couponService := services.NewCouponService(catalogService, notificationService, cfg)
	knastaService := services.NewKnastaService(db, fetcher)
	authService := services.NewAuthService(db, cfg)
	adminService := services.NewAdminService(db)
	sitemapService := services.NewSitemapService(db, cfg.Site.BaseURL)

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	couponHandler := handlers.NewCouponHandler(couponService)
	authHandler := handlers.NewAuthHandler(authService)
	adminHandler := handlers.NewAdminHandler(adminService, catalogService, knastaService, storageService)
	sitemapHandler := handlers.NewSitemapHandler(sitemapService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
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

	// Sitemap
	r.GET("/sitemap.xml", sitemapHandler.GetSitemap)

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/oauth", authHandler.OAuth)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		// Category routes
		categories := v1.Group("/categories")
		{
			categories.GET("", catalogHandler.GetCategories)
			categories.GET("/:slug", catalogHandler.GetCategory)
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", catalogHandler.GetProducts)
			products.GET("/:id", catalogHandler.GetProduct)
			products.GET("/:id/coupon", middleware.CouponRateLimit(), couponHandler.GetCoupon)
			products.POST("/:id/coupon/share", middleware.CouponRateLimit(), couponHandler.ShareCoupon)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			// Dashboard
			dashboard := admin.Group("/dashboard")
			{
				dashboard.GET("/stats", adminHandler.GetDashboardStats)
			}

			// Product management
			adminProducts := admin.Group("/products")
			{
				adminProducts.GET("", adminHandler.GetProducts)
				adminProducts.POST("", adminHandler.CreateProduct)
				adminProducts.PUT("/:id", adminHandler.UpdateProduct)
				adminProducts.DELETE("/:id", adminHandler.DeleteProduct)
				adminProducts.POST("/upload-image", middleware.UploadRateLimit(), adminHandler.UploadProductImage)
			}

			// Category management
			adminCategories := admin.Group("/categories")
			{
				adminCategories.GET("", adminHandler.GetCategories)
				adminCategories.POST("", adminHandler.CreateCategory)
				adminCategories.PUT("/:id", adminHandler.UpdateCategory)
				adminCategories.DELETE("/:id", adminHandler.DeleteCategory)
			}

			// User management
			adminUsers := admin.Group("/users")
			{
				adminUsers.GET("", adminHandler.GetUsers)
				adminUsers.PUT("/:id/role", adminHandler.UpdateUserRole)
			}

			// Comparison price management
			adminKnasta := admin.Group("/knasta")
			{
				adminKnasta.GET("", adminHandler.GetComparisonPrices)
				adminKnasta.POST("/refresh", middleware.RefreshRateLimit(), adminHandler.RefreshAllPrices)
				adminKnasta.POST("/refresh/:id", middleware.RefreshRateLimit(), adminHandler.RefreshProductPrice)
			}

			// Sample data
			admin.POST("/seed", adminHandler.SeedSampleData)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
