package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Mahesh199811/OrderManagement/docs"
	"github.com/Mahesh199811/OrderManagement/internal/config"
	"github.com/Mahesh199811/OrderManagement/internal/domain"
	"github.com/Mahesh199811/OrderManagement/internal/health"
	"github.com/Mahesh199811/OrderManagement/internal/metrics"
)

// NewRouter собирает HTTP-роутер сервиса: CRUD по заказам, health-проба и
// (в зависимости от профиля) интерактивная документация. Конфигурация
// передаётся значением и после сборки роутера больше не читается.
func NewRouter(
	cfg config.Config,
	repo domain.OrderRepository,
	healthHandler *health.Handler,
	httpMetrics *metrics.HTTPMetrics,
	logger *log.Entry,
) *gin.Engine {
	if logger == nil {
		logger = log.New().WithField("component", "api")
	}
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(requestLogger(logger))
	if httpMetrics != nil {
		r.Use(httpMetrics.GinMiddleware())
	}
	r.Use(cors.New(corsConfig(cfg)))

	h := NewOrderHandler(repo, logger.WithField("layer", "http"))

	orders := r.Group("/api/orders")
	{
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.POST("", h.Create)
		orders.PUT("/:id", h.Update)
		orders.DELETE("/:id", h.Delete)
	}

	if healthHandler != nil {
		r.GET("/health", gin.WrapH(healthHandler))
	}

	// Документация отключена в production профиле.
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
	}

	return r
}

// corsConfig строит CORS-политику профиля: permissive без allow-list,
// строгий список origin с credentials — при его наличии. Wildcard и
// credentials вместе не включаются.
func corsConfig(cfg config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
	corsCfg.MaxAge = 12 * time.Hour

	if len(cfg.AllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
		return corsCfg
	}

	corsCfg.AllowOrigins = cfg.AllowedOrigins
	corsCfg.AllowCredentials = true
	return corsCfg
}

func requestLogger(logger *log.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.WithFields(log.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  c.GetString(ContextRequestIDKey),
		}).Info("request handled")
	}
}
