package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/storefront/shop-api/docs"
	"github.com/storefront/shop-api/internal/api/handler"
	"github.com/storefront/shop-api/internal/api/middleware"
	"github.com/storefront/shop-api/internal/core/ports"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Users          ports.UserService
	Products       ports.ProductService
	Health         map[string]handler.Pinger
	AdminJWTSecret string
	// CORSOrigins defaults to "*" when empty.
	CORSOrigins []string
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.Metrics())
	e.Use(requestLogger(d.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: corsOrigins(d.CORSOrigins),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// --- Health checks, metrics and docs (no auth required) ---
	health := handler.NewHealthHandler(d.Health)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	users := handler.NewUserHandler(d.Users)
	products := handler.NewProductHandler(d.Products)
	session := middleware.Session(d.Users)

	api := e.Group("/api")

	// --- Accounts ---
	api.POST("/register", users.Register)
	api.POST("/login", users.Login)
	api.POST("/logout", users.Logout, session)
	api.GET("/profile", users.GetProfile, session)
	api.PUT("/profile", users.UpdateProfile, session)
	api.DELETE("/profile", users.DeleteProfile, session)

	// --- Catalog ---
	api.GET("/products", products.List)
	api.GET("/products/featured", products.Featured)
	api.GET("/products/search", products.Search)
	api.GET("/products/search/:query", products.Search)
	api.GET("/products/category/:category", products.ByCategory)
	api.GET("/products/:id", products.Get)
	api.POST("/products/:id/reviews", products.Review, session)
	api.GET("/categories", products.Categories)

	// --- Administration ---
	admin := api.Group("/admin", middleware.AdminAuth(d.AdminJWTSecret), middleware.RBAC(middleware.RoleAdmin))
	admin.GET("/users", users.ListUsers)
	admin.GET("/products", products.ListAll)
	admin.POST("/products", products.Create)
	admin.PUT("/products/:id", products.Update)
	admin.DELETE("/products/:id", products.Delete)
	admin.PUT("/products/:id/stock", products.SetStock)
	admin.POST("/products/:id/stock/add", products.AddStock)
	admin.POST("/products/:id/stock/remove", products.RemoveStock)
	admin.POST("/products/:id/deactivate", products.Deactivate)
	admin.POST("/products/:id/reactivate", products.Reactivate)

	return e
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
