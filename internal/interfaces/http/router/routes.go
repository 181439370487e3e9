package router

import (
	"time"

	"github.com/fcinventory/backend/internal/domain/shared"
	"github.com/fcinventory/backend/internal/infrastructure/config"
	"github.com/fcinventory/backend/internal/infrastructure/logger"
	"github.com/fcinventory/backend/internal/infrastructure/telemetry"
	"github.com/fcinventory/backend/internal/interfaces/http/handler"
	"github.com/fcinventory/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers mounted under the API prefix
type Handlers struct {
	System    *handler.SystemHandler
	Suppliers *handler.SupplierHandler
	Products  *handler.ProductHandler
	Tags      *handler.TagHandler
	Staff     *handler.StaffHandler
	Sales     *handler.SaleHandler
	Reports   *handler.ReportHandler
}

// Deps carries what the engine needs beyond the handlers
type Deps struct {
	Config      *config.Config
	Logger      *zap.Logger
	Metrics     *telemetry.MeterProvider // nil disables HTTP metrics
	Idempotency shared.IdempotencyStore
	Handlers    Handlers
}

// NewEngine builds the gin engine with the global middleware chain and every
// inventory route registered.
func NewEngine(deps Deps) *gin.Engine {
	cfg := deps.Config
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanAttributes())
	engine.Use(middleware.HTTPMetrics(deps.Metrics))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsConfig(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	h := deps.Handlers
	engine.GET("/health", h.System.Health)

	r := NewRouter(engine, WithAPIVersion("v1"))
	for _, g := range domainGroups(h, deps.Idempotency, cfg.Redis.IdempotencyTTL) {
		r.Register(g)
	}
	r.Setup()

	return engine
}

func corsConfig(hc config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	if len(hc.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = hc.CORSAllowOrigins
	}
	if len(hc.CORSAllowMethods) > 0 {
		cors.AllowMethods = hc.CORSAllowMethods
	}
	if len(hc.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = hc.CORSAllowHeaders
	}
	return cors
}

func domainGroups(h Handlers, store shared.IdempotencyStore, ttl time.Duration) []*DomainGroup {
	system := NewDomainGroup("system", "/system")
	system.GET("/info", h.System.GetSystemInfo)

	suppliers := NewDomainGroup("suppliers", "/suppliers")
	suppliers.GET("", h.Suppliers.List)
	suppliers.POST("", h.Suppliers.Create)
	suppliers.GET("/:id", h.Suppliers.GetByID)
	suppliers.PUT("/:id", h.Suppliers.Update)

	products := NewDomainGroup("products", "/products")
	products.GET("", h.Products.List)
	products.POST("", h.Products.Create)
	products.GET("/:id", h.Products.GetByID)
	products.PUT("/:id", h.Products.Update)

	tags := NewDomainGroup("tags", "/tags")
	tags.GET("", h.Tags.List)
	tags.POST("", h.Tags.Create)
	tags.GET("/:id", h.Tags.GetByID)
	tags.PUT("/:id", h.Tags.Update)
	tags.DELETE("/:id", h.Tags.Delete)

	staff := NewDomainGroup("staff", "/staff")
	staff.GET("", h.Staff.List)
	staff.POST("", h.Staff.Create)
	staff.GET("/:id", h.Staff.GetByID)
	staff.PUT("/:id", h.Staff.Update)
	staff.DELETE("/:id", h.Staff.Delete)

	sales := NewDomainGroup("sales", "/sales")
	sales.GET("", h.Sales.List)
	if store != nil {
		sales.POST("", middleware.Idempotency(store, ttl), h.Sales.Create)
	} else {
		sales.POST("", h.Sales.Create)
	}
	sales.GET("/:id", h.Sales.GetByID)
	sales.PUT("/:id", h.Sales.Update)
	sales.DELETE("/:id", h.Sales.Delete)

	reports := NewDomainGroup("reports", "/reports")
	reports.GET("/sales-summary", h.Reports.SalesSummary)
	reports.GET("/sales-summary/export", h.Reports.ExportSales)

	return []*DomainGroup{system, suppliers, products, tags, staff, sales, reports}
}
