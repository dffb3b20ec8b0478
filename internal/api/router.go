package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/plantnet/plantnet-server/docs"
	"github.com/plantnet/plantnet-server/internal/api/handler"
	"github.com/plantnet/plantnet-server/internal/api/middleware"
	"github.com/plantnet/plantnet-server/internal/core/domain"
	"github.com/plantnet/plantnet-server/internal/core/ports"
	"github.com/plantnet/plantnet-server/pkg/logger"
)

// Dependencies carries everything NewRouter wires into handlers.
type Dependencies struct {
	Sessions ports.SessionService
	Users    ports.UserService
	Plants   ports.PlantService
	Payments ports.PaymentService
	Orders   ports.OrderService
	Stats    ports.StatsService
	Images   ports.ImageStore

	Probes map[string]handler.Probe

	Logger      zerolog.Logger
	CORSOrigins []string
	Production  bool
	// Registerer receives the HTTP request metrics; nil means the default registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	reg := d.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(logger.RequestLogger(d.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.CORSOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, handler.HeaderIdempotencyKey},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "plantnet",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	auth := middleware.Auth(d.Sessions)
	admin := middleware.RequireRole(d.Users, domain.RoleAdmin)
	seller := middleware.RequireRole(d.Users, domain.RoleSeller)

	// --- Ops (no auth required) ---
	health := handler.NewHealthHandler(d.Probes)
	e.GET("/", health.Root)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Session ---
	sessions := handler.NewSessionHandler(d.Sessions, d.Production)
	e.POST("/jwt", sessions.Issue)
	e.GET("/logout", sessions.Logout)

	// --- Users ---
	users := handler.NewUserHandler(d.Users)
	e.POST("/users/:email", users.Upsert)
	e.PATCH("/users/:email", users.RequestStatus, auth)
	e.PATCH("/user/role/:email", users.UpdateRole, auth, admin)
	e.GET("/users/role/:email", users.GetRole)
	e.GET("/all-users/:email", users.ListExcept, auth, admin)

	// --- Plants ---
	plants := handler.NewPlantHandler(d.Plants, d.Images)
	e.POST("/plants", plants.Create, auth, seller)
	e.POST("/plants/image", plants.UploadImage, auth, seller)
	e.GET("/plants", plants.List)
	e.GET("/plants/seller", plants.ListMine, auth, seller)
	e.GET("/plants/:id", plants.Get)
	e.DELETE("/plants/:id", plants.Delete, auth, seller)
	e.PATCH("/plants/quantity/:id", plants.AdjustQuantity, auth)

	// --- Payments ---
	payments := handler.NewPaymentHandler(d.Payments)
	e.POST("/create-payment-intent", payments.CreateIntent, auth)
	e.POST("/webhooks/stripe", payments.Webhook)

	// --- Orders ---
	orders := handler.NewOrderHandler(d.Orders)
	e.POST("/order", orders.Place)
	e.GET("/customer-orders/:email", orders.CustomerOrders, auth)
	e.GET("/seller-orders/:email", orders.SellerOrders, auth, seller)
	e.PATCH("/orders/:id", orders.UpdateStatus, auth, seller)
	e.DELETE("/orders/:id", orders.Cancel, auth)

	// --- Stats ---
	stats := handler.NewStatsHandler(d.Stats)
	e.GET("/admin-stat", stats.AdminStats, auth, admin)

	return e
}
