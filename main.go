package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"vendorhub/internal/cache"
	"vendorhub/internal/config"
	"vendorhub/internal/database"
	"vendorhub/internal/handlers"
	"vendorhub/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureVendorIndexes(db); err != nil {
		log.Println("⚠️ vendor index warning:", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Println("⚠️ order index warning:", err)
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Println("⚠️ product index warning:", err)
	}
	if err := database.EnsureResetTokenIndexes(db); err != nil {
		log.Println("⚠️ reset token index warning:", err)
	}

	rcache := cache.Connect(config.AppEnv.RedisAddr)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}))
	r.Static("/public", config.AppEnv.UploadDir)

	loginLimiter := middleware.NewRateLimiter(10, 5)
	resetLimiter := middleware.NewRateLimiter(5, 3)

	vendorAuth := middleware.VendorAuth(config.AppEnv.JWTSecret)
	adminAuth := middleware.AdminAuth(config.AppEnv.JWTSecret)

	// Auth
	r.POST("/vendors/login", loginLimiter.Limit(), handlers.Login(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.POST("/vendors/signup", handlers.Signup(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.POST("/vendors/refresh", handlers.Refresh(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.POST("/vendors/logout", handlers.Logout(db))
	r.POST("/vendors/auth/forgot-password", resetLimiter.Limit(), handlers.ForgotPassword(db, config.AppEnv.ResetTokenTTL))
	r.POST("/vendors/auth/reset-password/:token", handlers.ResetPassword(db))
	r.GET("/vendors/me", vendorAuth, handlers.GetMe(db))
	r.PUT("/vendors/me/profile", vendorAuth, handlers.UpdateMyProfile(db))

	// Public surfaces
	r.GET("/faqs", handlers.GetFAQs(db))
	r.GET("/banner", handlers.GetBanners(db))
	r.GET("/settings", handlers.GetSettings(db))
	r.POST("/contact", handlers.SubmitContact(db))
	r.POST("/inquiries", handlers.CreateInquiry(db))

	// Orders
	order := r.Group("/order")
	order.Use(vendorAuth)
	{
		order.GET("/vendor/:vendorId", handlers.GetVendorOrders(db))
		order.GET("/recent-order/:vendorId", handlers.GetRecentOrders(db, rcache))
		order.GET("/:orderId/vendor/:vendorId", handlers.GetOrderDetail(db))
		order.GET("/:orderId/invoice", handlers.OrderInvoice(db))
		order.PUT("/status/:orderId/vendor/:vendorId", handlers.UpdateOrderStatus(db, rcache))
	}
	r.POST("/manually-verify-payment", vendorAuth, handlers.ManuallyVerifyPayment(db))
	r.PUT("/admin-update-payment-status/:orderId", adminAuth, handlers.UpdateSettlementStatus(db))

	// Chat orders
	chat := r.Group("/chat-order")
	chat.Use(vendorAuth)
	{
		chat.POST("", handlers.CreateChatOrder(db))
		chat.GET("/vendor/:vendorId", handlers.GetVendorChatOrders(db))
		chat.GET("/:orderId", handlers.GetChatOrder(db))
		chat.PUT("/status/:orderId/vendor", handlers.UpdateChatOrderStatus(db))
	}
	r.PUT("/chat-order-status-amount", vendorAuth, handlers.UpdateChatOrderAmount(db))
	r.POST("/chat-verify-payment", vendorAuth, handlers.ChatVerifyPayment(db))
	r.PUT("/chat/updateChatOrder", vendorAuth, handlers.UpdateChatOrder(db))

	// Products and variations
	products := r.Group("/products")
	products.Use(vendorAuth)
	{
		products.GET("", handlers.GetProducts(db))
		products.POST("", handlers.CreateProduct(db))
		products.GET("/:id", handlers.GetVendorProducts(db))
		products.PUT("/:id", handlers.UpdateProduct(db))
		products.DELETE("/:id", handlers.DeleteProduct(db))
		products.PATCH("/:id/toggle-visibility", handlers.ToggleProductVisibility(db))
		products.POST("/:id/variations", handlers.AddVariation(db))
		products.PUT("/:id/variations/:variationId", handlers.UpdateVariation(db))
		products.DELETE("/:id/variations/:variationId", handlers.DeleteVariation(db))
	}
	r.GET("/single-product/:id", vendorAuth, handlers.GetSingleProduct(db))

	// Categories: global catalog managed by admins, per-vendor tree by vendors.
	r.GET("/category", handlers.GetCategories(db, false))
	r.GET("/category/:id", handlers.GetCategory(db))
	r.POST("/category", adminAuth, handlers.CreateCategory(db, false))
	r.PUT("/category/:id", adminAuth, handlers.UpdateCategory(db, false))
	r.DELETE("/category/:id", adminAuth, handlers.DeleteCategory(db, false))

	vendorCategory := r.Group("/vendor-product-category")
	vendorCategory.Use(vendorAuth)
	{
		vendorCategory.GET("", handlers.GetCategories(db, true))
		vendorCategory.POST("", handlers.CreateCategory(db, true))
		vendorCategory.PUT("/:id", handlers.UpdateCategory(db, true))
		vendorCategory.DELETE("/:id", handlers.DeleteCategory(db, true))
	}

	// Vendor administration
	r.GET("/vendors", adminAuth, handlers.GetVendors(db))
	vendorAdmin := r.Group("/vendors/admin")
	vendorAdmin.Use(adminAuth)
	{
		vendorAdmin.GET("/:id", handlers.GetVendorAdmin(db))
		vendorAdmin.PUT("/:id", handlers.UpdateVendorAdmin(db))
		vendorAdmin.DELETE("/:id", handlers.DeleteVendorAdmin(db))
	}
	r.PUT("/vendors/restrict/:id", adminAuth, handlers.SetVendorRestriction(db, true))
	r.PUT("/vendors/unrestrict/:id", adminAuth, handlers.SetVendorRestriction(db, false))
	r.POST("/vendors/admin-login-as-vendor/:id", adminAuth, handlers.AdminLoginAsVendor(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
	))

	// Drivers
	r.POST("/create-driver", adminAuth, handlers.CreateDriver(db))
	r.GET("/drivers", adminAuth, handlers.GetDrivers(db))
	r.PATCH("/driver/:id/status", adminAuth, handlers.UpdateDriverStatus(db))

	// Banners
	banner := r.Group("/banner")
	banner.Use(adminAuth)
	{
		banner.POST("", handlers.CreateBanner(db))
		banner.PUT("/:id", handlers.UpdateBanner(db))
		banner.DELETE("/:id", handlers.DeleteBanner(db))
	}
	r.PUT("/banner-active/:id", adminAuth, handlers.SetBannerActive(db))

	// Customers
	r.GET("/customers", adminAuth, handlers.GetCustomers(db))
	r.PUT("/customers/restrict/:id", adminAuth, handlers.SetCustomerRestriction(db, true))
	r.PUT("/customers/unrestrict/:id", adminAuth, handlers.SetCustomerRestriction(db, false))

	// Support
	faq := r.Group("/faqs")
	faq.Use(adminAuth)
	{
		faq.POST("", handlers.CreateFAQ(db))
		faq.PUT("/:id", handlers.UpdateFAQ(db))
		faq.DELETE("/:id", handlers.DeleteFAQ(db))
	}
	r.GET("/get-contact", adminAuth, handlers.GetContactMessages(db))
	r.GET("/inquiries", adminAuth, handlers.GetInquiries(db))
	r.PATCH("/inquiries/:id", adminAuth, handlers.MarkInquiryHandled(db))

	tickets := r.Group("/tickets")
	tickets.Use(vendorAuth)
	{
		tickets.POST("", handlers.CreateTicket(db))
		tickets.GET("", handlers.GetTickets(db))
		tickets.PUT("/:id", handlers.UpdateTicketStatus(db))
	}
	r.PUT("/settings", adminAuth, handlers.UpdateSettings(db))

	if err := r.Run(":" + config.AppEnv.Port); err != nil {
		log.Fatal(err)
	}
}
