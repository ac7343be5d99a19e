package server

import (
	"github.com/adilbek/photogallery/internal/auth"
	"github.com/adilbek/photogallery/internal/config"
	"github.com/adilbek/photogallery/internal/logger"
	"github.com/adilbek/photogallery/internal/metrics"
	"github.com/adilbek/photogallery/internal/photo"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Dependencies groups the services required by the HTTP router.
type Dependencies struct {
	Config       config.Config
	Logger       *zap.Logger
	DB           *pgxpool.Pool
	ObjectStore  *minio.Client
	AuthService  *auth.Service
	PhotoService *photo.Service
}

// NewRouter builds a Gin engine with foundational middleware and routes.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if deps.Logger != nil {
		router.Use(logger.Middleware(deps.Logger))
	}

	metrics.InitMetrics()
	router.Use(metrics.Middleware())
	metrics.Register(router, deps.Config.Metrics.PrometheusPath)

	registerHealthRoutes(router, deps)

	api := router.Group("/v1")
	if deps.PhotoService != nil {
		photo.RegisterPublicRoutes(api, deps.PhotoService)

		if deps.AuthService != nil {
			admin := api.Group("/admin")
			admin.Use(auth.AuthMiddleware(deps.AuthService))
			photo.RegisterAdminRoutes(admin, deps.PhotoService)
		}
	}

	return router
}
