// Package server wires the services over one database and exposes them
// through the gin router.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"continuum/internal/config"
	_ "continuum/internal/docs" // Register swagger docs
	"continuum/internal/handlers"
	"continuum/internal/live"
	"continuum/internal/middleware"
	"continuum/internal/services"
)

// Services holds every service built over one database and live feed.
type Services struct {
	Feed          *live.Feed
	Activity      services.ActivityServicer
	Subscriptions services.SubscriptionServicer
	Assets        services.AssetServicer
	Warranties    services.WarrantyServicer
	Backup        services.BackupServicer
	Dashboard     services.DashboardServicer
	Calendar      services.CalendarServicer
}

// NewServices builds the services over db using the presentation settings
// in cfg.
func NewServices(db *gorm.DB, cfg *config.Config) *Services {
	feed := live.NewFeed()
	activity := services.NewActivityService(db)
	subs := services.NewSubscriptionService(db, feed, activity, cfg.Location)
	assets := services.NewAssetService(db, feed, activity)
	warranties := services.NewWarrantyService(db, feed, activity)

	return &Services{
		Feed:          feed,
		Activity:      activity,
		Subscriptions: subs,
		Assets:        assets,
		Warranties:    warranties,
		Backup:        services.NewBackupService(db, feed, activity),
		Dashboard:     services.NewDashboardService(subs, assets, warranties, cfg.UpcomingWindowDays, cfg.DashboardItemLimit),
		Calendar:      services.NewCalendarService(subs, warranties, cfg.UpcomingWindowDays),
	}
}

// NewRouter returns the HTTP API over svc.
func NewRouter(svc *Services, cfg *config.Config) *gin.Engine {
	subscriptionHandler := handlers.NewSubscriptionHandler(svc.Subscriptions)
	assetHandler := handlers.NewAssetHandler(svc.Assets)
	warrantyHandler := handlers.NewWarrantyHandler(svc.Warranties, cfg.UpcomingWindowDays)
	backupHandler := handlers.NewBackupHandler(svc.Backup)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard, cfg.Currency)
	calendarHandler := handlers.NewCalendarHandler(svc.Calendar)
	activityHandler := handlers.NewActivityHandler(svc.Activity)
	handlers.SetLocation(cfg.Location)

	router := gin.New()
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	subscriptions := v1.Group("/subscriptions")
	subscriptions.POST("", subscriptionHandler.CreateSubscription)
	subscriptions.GET("", subscriptionHandler.GetSubscriptions)
	subscriptions.GET("/watch", subscriptionHandler.WatchSubscriptions)
	subscriptions.GET("/:id", subscriptionHandler.GetSubscriptionByID)
	subscriptions.PUT("/:id", subscriptionHandler.UpdateSubscription)
	subscriptions.DELETE("/:id", subscriptionHandler.DeleteSubscription)
	subscriptions.POST("/:id/renew", subscriptionHandler.RenewSubscription)

	assets := v1.Group("/assets")
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.GetAssets)
	assets.GET("/watch", assetHandler.WatchAssets)
	assets.GET("/:id", assetHandler.GetAssetByID)
	assets.PUT("/:id", assetHandler.UpdateAsset)
	assets.DELETE("/:id", assetHandler.DeleteAsset)
	assets.GET("/:id/history", assetHandler.GetAssetHistory)

	warranties := v1.Group("/warranties")
	warranties.POST("", warrantyHandler.CreateWarranty)
	warranties.GET("", warrantyHandler.GetWarranties)
	warranties.GET("/watch", warrantyHandler.WatchWarranties)
	warranties.GET("/:id", warrantyHandler.GetWarrantyByID)
	warranties.PUT("/:id", warrantyHandler.UpdateWarranty)
	warranties.DELETE("/:id", warrantyHandler.DeleteWarranty)

	v1.GET("/dashboard", dashboardHandler.GetDashboard)
	v1.GET("/calendar", calendarHandler.GetEvents)
	v1.GET("/calendar/day", calendarHandler.GetDay)

	backup := v1.Group("/backup")
	backup.GET("/export", backupHandler.ExportBackup)
	backup.POST("/import", backupHandler.ImportBackup)

	v1.GET("/activity", activityHandler.GetActivity)

	return router
}
