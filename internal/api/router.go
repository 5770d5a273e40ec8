package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/hotelhub/hotel-api/internal/api/handler"
	"github.com/hotelhub/hotel-api/internal/api/middleware"
	"github.com/hotelhub/hotel-api/internal/core/domain"
	"github.com/hotelhub/hotel-api/internal/core/ports"
)

// Dependencies is everything the router needs to build its handlers.
type Dependencies struct {
	Auth     ports.AuthService
	Sessions ports.SessionService
	Bookings ports.BookingService
	Rooms    ports.RoomService
	Payments ports.PaymentService

	// Health maps a dependency name to its readiness probe.
	Health map[string]handler.Pinger

	AccessTTL     time.Duration
	SecureCookies bool
	Logger        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("hotel"))
	e.Use(middleware.LoadSession(deps.Sessions))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Sessions, deps.AccessTTL, deps.SecureCookies, deps.Logger)
	bookingHandler := handler.NewBookingHandler(deps.Bookings, deps.Payments)
	roomHandler := handler.NewRoomHandler(deps.Rooms)
	adminHandler := handler.NewAdminHandler(deps.Bookings, deps.Rooms, deps.Auth)
	healthHandler := handler.NewHealthHandler(deps.Health)

	requireSession := middleware.Auth(deps.Sessions)

	// --- Ops (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// --- Auth ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me, requireSession)

	// --- Catalog and booking flow (public) ---
	api.GET("/rooms", roomHandler.List)
	api.GET("/rooms/compare", roomHandler.Compare)
	api.GET("/rooms/:id", roomHandler.Get)
	api.POST("/bookings", bookingHandler.Submit)
	api.POST("/bookings/:id/payment", bookingHandler.Pay)
	api.GET("/bookings/:id", bookingHandler.Get, requireSession)

	// --- Per-role views ---
	api.GET("/me/bookings", bookingHandler.Mine, requireSession, middleware.RBAC(domain.IsCustomer))
	api.GET("/employee/bookings", bookingHandler.Assigned, requireSession, middleware.RBAC(domain.IsEmployee))

	// --- Back office ---
	admin := api.Group("/admin", requireSession)
	reception := middleware.RBAC(domain.HasReceptionAccess)
	adminOnly := middleware.RBAC(domain.HasAdminAccess)

	admin.GET("/bookings", adminHandler.ListBookings, reception)
	admin.PATCH("/bookings/:id/status", adminHandler.ChangeStatus, reception)
	admin.PATCH("/bookings/:id/assign", adminHandler.Assign, reception)
	admin.DELETE("/bookings/:id", adminHandler.DeleteBooking, adminOnly)
	admin.PATCH("/rooms/:id", adminHandler.UpdateRoom, adminOnly)
	admin.GET("/users", adminHandler.ListUsers, adminOnly)
	admin.POST("/users", adminHandler.CreateUser, adminOnly)

	// --- Gated pages ---
	e.GET(domain.RouteCustomer, handler.Page("dashboard"), middleware.PageGate(domain.IsCustomer))
	e.GET(domain.RouteAdmin, handler.Page("admin"), middleware.PageGate(domain.HasReceptionAccess))
	e.GET(domain.RouteEmployee, handler.Page("employee"), middleware.PageGate(domain.IsEmployee))

	return e
}
