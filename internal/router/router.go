package router

import (
	"fmt"
	"strings"

	"github.com/anta-store/anta-api/internal/cache"
	"github.com/anta-store/anta-api/internal/config"
	adminhandlers "github.com/anta-store/anta-api/internal/http/handlers/admin"
	publichandlers "github.com/anta-store/anta-api/internal/http/handlers/public"
	"github.com/anta-store/anta-api/internal/logger"
	"github.com/anta-store/anta-api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware and routes.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "anta"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(LocaleMiddleware())

	r.Static("/uploads", "./uploads")

	apiV1 := r.Group("/api/v1")
	{
		// Public, no auth.
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/:slug", publicHandler.GetProduct)
			public.GET("/categories", publicHandler.ListCategories)
			public.GET("/products/:slug/reviews", publicHandler.ListProductReviewsBySlug)
			public.GET("/captcha/image", publicHandler.GetCaptcha)
		}

		// Customer auth.
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// Customer session, auth required.
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetProfile)
			user.POST("/auth/logout", publicHandler.UserLogout)
			user.PUT("/me/language", publicHandler.SetLanguage)

			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items/:product_id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:product_id", publicHandler.DeleteCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)

			user.GET("/order-note", publicHandler.GetOrderNote)
			user.PUT("/order-note", publicHandler.PutOrderNote)
			user.DELETE("/order-note", publicHandler.DeleteOrderNote)

			user.POST("/checkout/validate", publicHandler.ValidateCheckoutStep)
			user.POST("/checkout", publicHandler.PlaceOrder)

			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/track", publicHandler.TrackOrder)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.POST("/orders/:id/cancel", publicHandler.CancelOrder)

			user.GET("/products/:product_id/reviews/can-review", publicHandler.CanReview)
			user.POST("/products/:product_id/reviews", publicHandler.CreateReview)

			user.GET("/wishlist", publicHandler.GetWishlist)
			user.POST("/wishlist/toggle", publicHandler.ToggleWishlist)
			user.DELETE("/wishlist/:product_id", publicHandler.DeleteWishlistItem)
		}

		// Dashboard.
		admin := apiV1.Group("/admin")
		{
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			authorized := admin.Use(
				AdminJWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo),
				AdminRBACMiddleware(c.AuthzService),
			)
			{
				authorized.GET("/me", adminHandler.GetAdminProfile)
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)

				authorized.GET("/dashboard/overview", adminHandler.GetDashboardOverview)
				authorized.GET("/dashboard/trends", adminHandler.GetDashboardOrderTrends)
				authorized.GET("/dashboard/stock", adminHandler.GetDashboardStockStats)
				authorized.GET("/dashboard/top-products", adminHandler.GetDashboardTopProducts)

				authorized.GET("/products", adminHandler.GetAdminProducts)
				authorized.GET("/products/:id", adminHandler.GetAdminProduct)
				authorized.POST("/products", adminHandler.CreateAdminProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateAdminProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteAdminProduct)

				authorized.GET("/categories", adminHandler.GetAdminCategories)
				authorized.POST("/categories", adminHandler.CreateAdminCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateAdminCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteAdminCategory)

				authorized.GET("/orders", adminHandler.GetAdminOrders)
				authorized.GET("/orders/:id", adminHandler.GetAdminOrder)
				authorized.PUT("/orders/:id/status", adminHandler.UpdateAdminOrderStatus)

				authorized.GET("/reviews", adminHandler.GetAdminReviews)
				authorized.PATCH("/reviews/:id", adminHandler.SetAdminReviewPublished)
				authorized.DELETE("/reviews/:id", adminHandler.DeleteAdminReview)

				authorized.GET("/users", adminHandler.GetAdminUsers)
			}
		}
	}

	return r
}
