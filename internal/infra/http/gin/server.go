package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"farmstay/internal/infra/config"
	"farmstay/internal/infra/obs"
)

type BookingHTTP interface {
	Quote(c *gin.Context)
	Create(c *gin.Context)
}

type AdminHTTP interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	UpdateStatus(c *gin.Context)
	UpdatePaymentStatus(c *gin.Context)
	Dashboard(c *gin.Context)
}

type Handlers struct {
	Booking BookingHTTP
	Admin   AdminHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Booking != nil {
		api.POST("/quotes", h.Booking.Quote)
		api.POST("/reservations", h.Booking.Create)
	}
	if h.Admin != nil {
		adminGroup := api.Group("/admin")
		adminGroup.GET("/reservations", h.Admin.List)
		adminGroup.GET("/reservations/:id", h.Admin.Get)
		adminGroup.PATCH("/reservations/:id/status", h.Admin.UpdateStatus)
		adminGroup.PATCH("/reservations/:id/payment-status", h.Admin.UpdatePaymentStatus)
		adminGroup.GET("/dashboard", h.Admin.Dashboard)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
