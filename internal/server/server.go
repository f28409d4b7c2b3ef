// Package server assembles the HTTP surface: middleware, REST routes, the
// WebSocket push channel, and the API docs.
package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"timeclock/internal/broadcast"
	_ "timeclock/internal/docs" // registers the swagger spec
	apperrors "timeclock/internal/errors"
	"timeclock/internal/handlers"
	"timeclock/internal/middleware"
	"timeclock/internal/services"
)

// Options configures the router.
type Options struct {
	AllowedOrigin string
	Stream        handlers.StreamConfig
	// RequestLogging enables per-request log lines.
	RequestLogging bool
}

// App is the wired application.
type App struct {
	Router      *gin.Engine
	Broadcaster *broadcast.Broadcaster
	Store       services.RecordStorer
	Statuses    services.StatusProjector
	CheckIn     services.CheckInServicer
}

// New wires the services around db and builds the router. Each App owns its
// own broadcaster, so separate instances never share subscribers.
func New(db *gorm.DB, opts Options) *App {
	hub := broadcast.New()
	store := services.NewRecordStore(db)
	statuses := services.NewStatusService(db)
	checkIn := services.NewCheckInService(store, hub)

	app := &App{
		Broadcaster: hub,
		Store:       store,
		Statuses:    statuses,
		CheckIn:     checkIn,
	}
	app.Router = newRouter(app, opts)
	return app
}

func newRouter(app *App, opts Options) *gin.Engine {
	employeeHandler := handlers.NewEmployeeHandler(app.Store, app.Statuses)
	logHandler := handlers.NewLogHandler(app.Store, app.CheckIn)
	streamHandler := handlers.NewStreamHandler(app.Broadcaster, opts.Stream)
	healthHandler := handlers.NewHealthHandler(app.Broadcaster)

	router := gin.New()
	router.Use(middleware.Recovery())
	if opts.RequestLogging {
		router.Use(middleware.RequestLogging())
	}
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(opts.AllowedOrigin))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/ws", streamHandler.Stream)

	api := router.Group("/api")
	api.GET("/health", healthHandler.Health)

	employees := api.Group("/employees")
	employees.GET("", employeeHandler.ListEmployees)
	employees.GET("/:id", employeeHandler.GetEmployee)
	employees.GET("/:id/status", employeeHandler.GetStatus)

	status := api.Group("/status")
	status.GET("", employeeHandler.ListStatuses)
	status.GET("/summary", employeeHandler.GetSummary)

	api.GET("/logs", logHandler.ListLogs)
	api.GET("/logs/:id", logHandler.GetLog)
	api.POST("/check", logHandler.Check)

	router.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperrors.ErrNotFound)
	})

	return router
}
