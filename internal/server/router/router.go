package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/mfgconsole/internal/server/handlers"
)

// Handlers groups the HTTP adapters mounted by the router.
type Handlers struct {
	QualityForms    *handlers.QualityFormHandler
	ProductionForms *handlers.ProductionFormHandler
	QualityChecks   *handlers.QualityCheckHandler
	Reports         *handlers.ReportHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	qc := api.Group("/forms/quality-checks")
	qc.POST("", h.QualityForms.Open)
	qc.GET("/:id", h.QualityForms.Get)
	qc.DELETE("/:id", h.QualityForms.Close)
	qc.PATCH("/:id/fields", h.QualityForms.SetField)
	qc.PATCH("/:id/parameters/:index", h.QualityForms.SetParameter)
	qc.GET("/:id/options", h.QualityForms.Options)
	qc.POST("/:id/validate", h.QualityForms.Validate)
	qc.POST("/:id/submit", h.QualityForms.Submit)

	po := api.Group("/forms/production-outputs")
	po.POST("", h.ProductionForms.Open)
	po.GET("/:id", h.ProductionForms.Get)
	po.DELETE("/:id", h.ProductionForms.Close)
	po.PATCH("/:id/fields", h.ProductionForms.SetField)
	po.POST("/:id/packing-materials", h.ProductionForms.AddPackingMaterial)
	po.PATCH("/:id/packing-materials/:index", h.ProductionForms.SetPackingMaterial)
	po.DELETE("/:id/packing-materials/:index", h.ProductionForms.RemovePackingMaterial)
	po.GET("/:id/options", h.ProductionForms.Options)
	po.POST("/:id/validate", h.ProductionForms.Validate)
	po.POST("/:id/submit", h.ProductionForms.Submit)

	api.GET("/quality-checks", h.QualityChecks.List)
	api.GET("/quality-checks/export", h.QualityChecks.Export)
	api.DELETE("/quality-checks/:id", h.QualityChecks.Delete)

	api.GET("/reports/quality", h.Reports.Quality)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
