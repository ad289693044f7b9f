package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/engnet/backoffice-api/docs"
	"github.com/engnet/backoffice-api/internal/api/handler"
	"github.com/engnet/backoffice-api/internal/api/middleware"
	"github.com/engnet/backoffice-api/internal/core/ports"
)

// Services groups the use cases exposed over HTTP.
type Services struct {
	Auth      ports.AuthService
	Users     ports.UserService
	Clients   ports.ClientService
	Refunds   ports.RefundService
	Dashboard ports.DashboardService
	Reports   ports.ReportService
}

type Options struct {
	CORSOrigins []string
	// HealthChecks are pinged by GET /health/ready, keyed by dependency name.
	HealthChecks map[string]handler.Checker
	// Registerer receives the HTTP metrics. Defaults to prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: opts.CORSOrigins,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodDelete, http.MethodPatch, http.MethodOptions,
		},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	registerer := opts.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "backoffice",
		Registerer: registerer,
	}))

	authMiddleware := middleware.Auth(svc.Auth)

	authHandler := handler.NewAuthHandler(svc.Auth)
	userHandler := handler.NewUserHandler(svc.Users)
	clientHandler := handler.NewClientHandler(svc.Clients)
	refundHandler := handler.NewRefundHandler(svc.Refunds)
	dashboardHandler := handler.NewDashboardHandler(svc.Dashboard)
	reportHandler := handler.NewReportHandler(svc.Reports)
	healthHandler := handler.NewHealthHandler(opts.HealthChecks)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authMiddleware)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)

	// --- Users (sign-up is public) ---
	e.POST("/users", userHandler.Create)
	users := e.Group("/users", authMiddleware)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Clients ---
	clients := e.Group("/clients")
	clients.POST("", clientHandler.Create)
	clients.GET("", clientHandler.List)
	clients.GET("/:id", clientHandler.Get)
	clients.PUT("/:id", clientHandler.Update)
	clients.DELETE("/:id", clientHandler.Delete)

	// --- Refunds ---
	refunds := e.Group("/refunds")
	refunds.POST("", refundHandler.Create)
	refunds.GET("", refundHandler.List)
	refunds.GET("/user/:userId", refundHandler.ListByUser)
	refunds.GET("/:id", refundHandler.Get)
	refunds.GET("/:id/history", refundHandler.History)
	refunds.PUT("/:id", refundHandler.Update)
	refunds.DELETE("/:id", refundHandler.Delete)

	// --- Dashboard ---
	dashboard := e.Group("/dashboard", authMiddleware)
	dashboard.GET("/summary", dashboardHandler.Summary)
	dashboard.GET("/refunds/report", dashboardHandler.RefundReport)
	dashboard.GET("/refunds/by-status/:status", dashboardHandler.RefundsByStatus)
	dashboard.GET("/refunds/by-user/:userId", dashboardHandler.RefundsByUser)
	dashboard.GET("/refunds/by-date-range", dashboardHandler.RefundsByDateRange)

	// --- Reports ---
	reports := e.Group("/reports", authMiddleware)
	reports.GET("/refunds/excel", reportHandler.RefundsExcel)
	reports.GET("/refunds/detailed", reportHandler.RefundsDetailed)
	reports.GET("/summary", reportHandler.Summary)

	// --- Operational (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/api/docs/*", echoSwagger.WrapHandler)

	return e
}
