package server

import (
	"github.com/labstack/echo/v4"

	"example.com/subtrack/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	assetHandler *handlers.AssetHandler,
	advisorHandler *handlers.AdvisorHandler,
	notificationHandler *handlers.NotificationHandler,
	adminHandler *handlers.AdminHandler,
	authMiddleware echo.MiddlewareFunc,
	adminMiddleware echo.MiddlewareFunc,
	authRateLimiter echo.MiddlewareFunc,
	aiRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")
	authGroup := api.Group("/auth", authRateLimiter)

	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)

	user := api.Group("/user", authMiddleware)
	user.GET("/me", userHandler.Me)
	user.PUT("/budget", userHandler.UpdateBudget)
	user.GET("/summary/monthly", userHandler.MonthlySummary)

	subscriptions := api.Group("/subscriptions", authMiddleware)
	subscriptions.GET("", subscriptionHandler.List)
	subscriptions.POST("", subscriptionHandler.Create)
	subscriptions.GET("/expiring", subscriptionHandler.Expiring)
	subscriptions.GET("/export/json", subscriptionHandler.ExportJSON)
	subscriptions.GET("/export/csv", subscriptionHandler.ExportCSV)
	subscriptions.PUT("/:id", subscriptionHandler.Update)
	subscriptions.DELETE("/:id", subscriptionHandler.Delete)

	assets := api.Group("/assets", authMiddleware)
	assets.GET("", assetHandler.List)
	assets.POST("", assetHandler.Create)
	assets.PUT("/:id", assetHandler.Update)
	assets.DELETE("/:id", assetHandler.Delete)

	notifications := api.Group("/notifications", authMiddleware)
	notifications.GET("/stream", notificationHandler.Stream)

	admin := api.Group("/admin", authMiddleware, adminMiddleware)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/advisor-requests", adminHandler.ListAdvisorRequests)
	admin.GET("/usage", adminHandler.Usage)

	aiGroup := api.Group("/ai", authMiddleware, aiRateLimiter)
	aiGroup.POST("/recommendations", advisorHandler.Recommendations)
}
