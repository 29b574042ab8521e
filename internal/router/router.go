// Package router wires HTTP routes to their handlers and middleware.
// Authorization is layered: JWTAuth rejects missing, invalid or revoked
// tokens with 401, RequireRole rejects insufficient role sets with 403,
// and finer scoping (self-only updates, franchise admin checks) lives
// in the handlers themselves.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/pizzastack/pizza-service/internal/handler"
	"github.com/pizzastack/pizza-service/internal/middleware"
	"github.com/pizzastack/pizza-service/internal/model"
)

// Handlers collects everything route registration needs.
type Handlers struct {
	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	Orders    *handler.OrderHandler
	Franchise *handler.FranchiseHandler

	JWTSecret string
	Sessions  middleware.SessionChecker
	RateLimit echo.MiddlewareFunc
}

// Register registers all application routes on the Echo instance.
func Register(e *echo.Echo, h Handlers) {
	requireAuth := middleware.JWTAuth(h.JWTSecret, h.Sessions)
	optionalAuth := middleware.OptionalJWTAuth(h.JWTSecret, h.Sessions)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	e.GET("/healthz", handler.Health)
	e.GET("/api/docs", handler.Docs)

	// Authentication. Register and login sit behind the rate limiter.
	auth := e.Group("/api/auth")
	auth.POST("", h.Auth.Register, h.RateLimit)
	auth.PUT("", h.Auth.Login, h.RateLimit)
	auth.DELETE("", h.Auth.Logout, requireAuth)

	// Users.
	user := e.Group("/api/user", requireAuth)
	user.GET("", h.Users.List)
	user.GET("/me", h.Users.Me)
	user.PUT("/:userId", h.Users.Update)

	// Menu and orders. The menu read is public; everything else needs a
	// session and menu writes need the admin role.
	e.GET("/api/order/menu", h.Orders.GetMenu)
	e.PUT("/api/order/menu", h.Orders.AddMenuItem, requireAuth, adminOnly)
	order := e.Group("/api/order", requireAuth)
	order.GET("", h.Orders.GetOrders)
	order.POST("", h.Orders.CreateOrder)

	// Franchises. The listing is public but reveals admin details only
	// to admins, which is why it runs behind the optional auth parser.
	e.GET("/api/franchise", h.Franchise.List, optionalAuth)
	franchise := e.Group("/api/franchise", requireAuth)
	franchise.GET("/:userId", h.Franchise.ListForUser)
	franchise.POST("", h.Franchise.Create, adminOnly)
	franchise.DELETE("/:franchiseId", h.Franchise.Delete, adminOnly)
	franchise.POST("/:franchiseId/store", h.Franchise.CreateStore)
	franchise.DELETE("/:franchiseId/store/:storeId", h.Franchise.DeleteStore)
}
