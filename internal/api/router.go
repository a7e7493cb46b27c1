package api

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jengzang/fleetmap-backend-go/internal/config"
	"github.com/jengzang/fleetmap-backend-go/internal/fleet"
	"github.com/jengzang/fleetmap-backend-go/internal/gazetteer"
	"github.com/jengzang/fleetmap-backend-go/internal/geometry"
	"github.com/jengzang/fleetmap-backend-go/internal/handler"
	"github.com/jengzang/fleetmap-backend-go/internal/heatmap"
	"github.com/jengzang/fleetmap-backend-go/internal/jitter"
	"github.com/jengzang/fleetmap-backend-go/internal/middleware"
	"github.com/jengzang/fleetmap-backend-go/internal/overlay"
	"github.com/jengzang/fleetmap-backend-go/internal/repository"
	"github.com/jengzang/fleetmap-backend-go/internal/service"
)

// Handlers groups the HTTP handlers mounted by SetupRouter
type Handlers struct {
	Visualization *handler.VisualizationHandler
	Fleet         *handler.FleetHandler
	Pipeline      *handler.PipelineHandler
	Overlay       *handler.OverlayHandler
}

// NewHandlers wires repositories, core components and services
func NewHandlers(cfg *config.Config, db *sql.DB, log logrus.FieldLogger) (Handlers, error) {
	gaz, err := gazetteer.Load(cfg.GazetteerPath)
	if err != nil {
		return Handlers{}, fmt.Errorf("failed to load gazetteer: %w", err)
	}
	cities, states := gaz.Len()
	log.WithFields(logrus.Fields{"cities": cities, "states": states}).Info("gazetteer loaded")

	aggregator := fleet.NewAggregator(gaz, log)
	builder := heatmap.NewBuilder(aggregator, jitter.New(cfg.Jitter), cfg.Layer)
	cache := geometry.NewPathCache(geometry.NewExtractor(cfg.PathMaxDepth, log), cfg.PathCacheSize)

	fleetService := service.NewFleetService(repository.NewVehicleRepository(db), aggregator, builder, log)
	pipelineService := service.NewPipelineService(repository.NewPipelineRepository(db), cache, log)
	overlayService := service.NewOverlayService(fleetService, pipelineService)

	return Handlers{
		Visualization: handler.NewVisualizationHandler(fleetService, pipelineService),
		Fleet:         handler.NewFleetHandler(fleetService),
		Pipeline:      handler.NewPipelineHandler(pipelineService),
		Overlay: handler.NewOverlayHandler(overlayService, overlay.RealClock(),
			cfg.AttachDelay, cfg.WriteTimeout, log),
	}, nil
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, h Handlers, log logrus.FieldLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(log))

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Fleetmap Backend API is running",
		})
	})

	limiter := middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimit, cfg.RateLimitWindow))
	auth := middleware.JWTAuth(cfg.JWTSecret)

	api := r.Group("/api/v1")
	{
		viz := api.Group("/viz")
		{
			viz.GET("/fleet-heatmap", h.Visualization.GetFleetHeatmap)
			viz.GET("/fleet-bins", h.Visualization.GetFleetBins)
			viz.GET("/pipelines", h.Visualization.GetPipelines)
			viz.GET("/pipelines/geojson", h.Visualization.GetPipelinesGeoJSON)
		}

		api.GET("/ws/overlay", limiter, h.Overlay.Serve)

		records := api.Group("/fleet/records")
		{
			records.GET("", h.Fleet.ListRecords)
			records.POST("", limiter, auth, h.Fleet.IngestRecords)
		}

		pipelines := api.Group("/pipelines")
		{
			pipelines.GET("", h.Pipeline.ListFeatures)
			pipelines.POST("", limiter, auth, h.Pipeline.IngestFeatures)
		}
	}

	return r
}
