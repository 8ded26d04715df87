package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"queuecare/internal/auth"
	"queuecare/internal/feed"
	"queuecare/internal/monitoring"
	"queuecare/internal/notify"
	"queuecare/internal/projection"
	"queuecare/internal/queue"
	"queuecare/internal/storage"
	"queuecare/internal/ws"
)

type Dependencies struct {
	Auth    *auth.Authenticator
	Engine  *queue.Engine
	Trigger *notify.Trigger
	Hub     *feed.Hub
	// Staff: серверная проекция персонала для /api/departments/load, может быть nil.
	Staff         *projection.Staff
	Store         storage.TicketStore
	Redis         *redis.Client
	EnableMetrics bool
}

func SetupRouter(d Dependencies) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/health", NewHealthHandler(d.Store, d.Redis).Check)
	if d.EnableMetrics {
		r.GET("/metrics", gin.WrapH(monitoring.Handler()))
	}

	tickets := NewTicketHandler(d.Engine, d.Trigger)
	departments := NewDepartmentHandler(d.Engine, d.Staff)

	r.GET("/api/departments", departments.List)

	api := r.Group("/api", d.Auth.Middleware())
	{
		api.GET("/tickets/ws", ws.NewFeedHandler(d.Hub).Serve)
		api.POST("/tickets", tickets.Create)
		api.GET("/tickets", tickets.List)
		api.GET("/tickets/:id", tickets.Get)
		api.DELETE("/tickets/:id", tickets.Delete)
		api.GET("/profile/tickets", tickets.ProfileTickets)
	}

	staff := api.Group("", auth.RequireStaff())
	{
		staff.PUT("/tickets/:id", tickets.Update)
		staff.POST("/tickets/:id/ready", tickets.ToggleReady)
		staff.GET("/departments/load", departments.Load)
	}

	return r
}
