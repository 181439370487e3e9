package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fcinventory/backend/internal/infrastructure/cache"
	"github.com/fcinventory/backend/internal/infrastructure/config"
	"github.com/fcinventory/backend/internal/infrastructure/telemetry"
	"github.com/fcinventory/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	r := NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	tags := NewDomainGroup("tags", "/tags")
	tags.GET("", func(c *gin.Context) { c.String(http.StatusOK, "tags") })
	r.Register(tags).Setup()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tags", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tags", w.Body.String())
}

func TestDomainGroup(t *testing.T) {
	t.Run("exposes name and prefix", func(t *testing.T) {
		g := NewDomainGroup("sales", "/sales")
		assert.Equal(t, "sales", g.Name())
		assert.Equal(t, "/sales", g.Prefix())
	})

	t.Run("registers each verb", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("staff", "/staff")
		ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }
		g.GET("/:id", ok).POST("", ok).PUT("/:id", ok).DELETE("/:id", ok)
		g.RegisterRoutes(engine.Group("/api/v1"))

		for _, tc := range []struct{ method, path string }{
			{http.MethodGet, "/api/v1/staff/1"},
			{http.MethodPost, "/api/v1/staff"},
			{http.MethodPut, "/api/v1/staff/1"},
			{http.MethodDelete, "/api/v1/staff/1"},
		} {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, http.StatusOK, w.Code, "%s %s", tc.method, tc.path)
			assert.Equal(t, tc.method, w.Body.String())
		}
	})

	t.Run("applies group middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("reports", "/reports")
		g.Use(func(c *gin.Context) {
			c.Header("X-Group", "reports")
			c.Next()
		})
		g.GET("/sales-summary", func(c *gin.Context) { c.Status(http.StatusOK) })
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/sales-summary", nil))
		assert.Equal(t, "reports", w.Header().Get("X-Group"))
	})

	t.Run("nests subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("reports", "/reports")
		g.Group("sales", "/sales-summary").GET("/export", func(c *gin.Context) {
			c.String(http.StatusOK, "csv")
		})
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/sales-summary/export", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "csv", w.Body.String())
	})
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

// Handlers other than system are never invoked here, so their services stay nil.
func testEngine(t *testing.T, mutate func(*config.Config), opts ...func(*Deps)) *gin.Engine {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.OrgName = "Foot Clinic"
	cfg.App.Title = "Inventory"
	if mutate != nil {
		mutate(cfg)
	}
	deps := Deps{
		Config:      cfg,
		Idempotency: cache.NewInMemoryIdempotencyStore(),
		Handlers: Handlers{
			System:    handler.NewSystemHandler(cfg.App, "test", okPinger{}),
			Suppliers: handler.NewSupplierHandler(nil),
			Products:  handler.NewProductHandler(nil),
			Tags:      handler.NewTagHandler(nil),
			Staff:     handler.NewStaffHandler(nil),
			Sales:     handler.NewSaleHandler(nil),
			Reports:   handler.NewReportHandler(nil),
		},
	}
	for _, opt := range opts {
		opt(&deps)
	}
	return NewEngine(deps)
}

func TestNewEngine_Routes(t *testing.T) {
	engine := testEngine(t, nil)

	registered := make(map[string]bool)
	for _, ri := range engine.Routes() {
		registered[ri.Method+" "+ri.Path] = true
	}

	for _, want := range []string{
		"GET /health",
		"GET /api/v1/system/info",
		"GET /api/v1/suppliers",
		"POST /api/v1/suppliers",
		"GET /api/v1/suppliers/:id",
		"PUT /api/v1/suppliers/:id",
		"GET /api/v1/products",
		"POST /api/v1/products",
		"GET /api/v1/products/:id",
		"PUT /api/v1/products/:id",
		"GET /api/v1/tags",
		"POST /api/v1/tags",
		"GET /api/v1/tags/:id",
		"PUT /api/v1/tags/:id",
		"DELETE /api/v1/tags/:id",
		"GET /api/v1/staff",
		"POST /api/v1/staff",
		"GET /api/v1/staff/:id",
		"PUT /api/v1/staff/:id",
		"DELETE /api/v1/staff/:id",
		"GET /api/v1/sales",
		"POST /api/v1/sales",
		"GET /api/v1/sales/:id",
		"PUT /api/v1/sales/:id",
		"DELETE /api/v1/sales/:id",
		"GET /api/v1/reports/sales-summary",
		"GET /api/v1/reports/sales-summary/export",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}

	assert.False(t, registered["DELETE /api/v1/suppliers/:id"])
	assert.False(t, registered["DELETE /api/v1/products/:id"])
}

func TestNewEngine_GlobalMiddleware(t *testing.T) {
	engine := testEngine(t, nil)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/system/info", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Foot Clinic | Inventory")
}

func TestNewEngine_CORSFromConfig(t *testing.T) {
	engine := testEngine(t, func(cfg *config.Config) {
		cfg.HTTP.CORSAllowOrigins = []string{"http://clinic.local"}
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/sales", nil)
	req.Header.Set("Origin", "http://clinic.local")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://clinic.local", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewEngine_BodyLimit(t *testing.T) {
	engine := testEngine(t, func(cfg *config.Config) {
		cfg.HTTP.MaxBodySize = 16
	})

	body := strings.NewReader(`{"name":"a tag name well past sixteen bytes"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tags", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_PAYLOAD_TOO_LARGE")
}

func TestNewEngine_HTTPMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp, err := telemetry.NewMeterProviderWithReader(telemetry.Config{ServiceName: "fc-inventory"}, reader, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	engine := testEngine(t, nil, func(d *Deps) { d.Metrics = mp })

	for range 2 {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var count int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "http_server_request_total" {
				continue
			}
			for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
				if route, _ := dp.Attributes.Value(telemetry.AttrHTTPRoute); route.AsString() == "/health" {
					count += dp.Value
				}
			}
		}
	}
	assert.Equal(t, int64(2), count)
}
