package routes

import (
	"educenter/internal/adapters/http/handlers"
	"educenter/internal/adapters/http/middleware"
	"educenter/internal/adapters/persistence/repositories"
	"educenter/internal/config"
	"educenter/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Repositories
	accountRepo := repositories.NewAccountRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	regionRepo := repositories.NewRegionRepository(db)
	centerRepo := repositories.NewCenterRepository(db)

	// Services
	otpService := services.NewOTPService(cfg.OTP)
	notifyService := services.NewNotificationService(cfg.Notify)
	authService := services.NewAuthService(accountRepo, refreshTokenRepo, regionRepo, otpService, notifyService, cfg)
	userService := services.NewUserService(accountRepo, regionRepo)
	centerService := services.NewCenterService(centerRepo, regionRepo)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	regionHandler := handlers.NewRegionHandler(regionRepo)
	centerHandler := handlers.NewCenterHandler(centerService)

	// Health & root
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1
	apiV1 := app.Group("/api/v1")

	// Auth routes (public, rate limited)
	auth := apiV1.Group("/auth")
	auth.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	auth.Post("/verify", middleware.OTPRateLimiter(), authHandler.Verify)
	auth.Post("/resend-otp", middleware.OTPRateLimiter(), authHandler.ResendOTP)
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/refresh-token", authHandler.RefreshToken)
	auth.Post("/forgot-password", middleware.OTPRateLimiter(), authHandler.ForgotPassword)
	auth.Post("/reset-password", middleware.OTPRateLimiter(), authHandler.ResetPassword)
	auth.Post("/logout", authHandler.Logout)

	// Auth routes (protected)
	auth.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)
	auth.Post("/logout-all", middleware.AuthMiddleware(cfg), authHandler.LogoutAll)

	// User administration
	user := apiV1.Group("/user", middleware.AuthMiddleware(cfg))
	user.Post("/promotion", middleware.AdminOnly(), userHandler.Promote)

	users := apiV1.Group("/users", middleware.AuthMiddleware(cfg))
	users.Get("/", middleware.AdminOnly(), userHandler.List)
	users.Delete("/:id", userHandler.Delete)

	// Regions (read public, mutations admin-gated)
	regions := apiV1.Group("/regions")
	regions.Get("/", regionHandler.List)
	regions.Post("/", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), regionHandler.Create)
	regions.Put("/:id", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), regionHandler.Update)
	regions.Delete("/:id", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), regionHandler.Delete)

	// Centers (read public, mutations gated)
	centers := apiV1.Group("/centers")
	centers.Get("/", centerHandler.List)
	centers.Get("/:id", centerHandler.Get)
	centers.Post("/", middleware.AuthMiddleware(cfg), middleware.CenterManagers(), centerHandler.Create)
	centers.Put("/:id", middleware.AuthMiddleware(cfg), centerHandler.Update)
	centers.Delete("/:id", middleware.AuthMiddleware(cfg), centerHandler.Delete)
}
