package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pizzastack/pizza-service/internal/config"
	"github.com/pizzastack/pizza-service/internal/middleware"
	"github.com/pizzastack/pizza-service/internal/model"
	"github.com/pizzastack/pizza-service/internal/repository"
	"github.com/pizzastack/pizza-service/internal/service"
)

// MenuStore is the slice of the menu repository the order endpoints
// need.
type MenuStore interface {
	GetMenu(ctx context.Context) ([]model.MenuItem, error)
	AddItem(ctx context.Context, item model.MenuItem) (*model.MenuItem, error)
}

// OrderStore is the slice of the order repository the order endpoints
// need.
type OrderStore interface {
	OrdersForDiner(ctx context.Context, user *model.User, page, perPage int) (*model.OrderPage, error)
	AddDinerOrder(ctx context.Context, user *model.User, order model.Order) (*model.Order, error)
}

// OrderHandler serves the menu and order endpoints. Orders accepted
// into the ledger are forwarded synchronously to the factory; a factory
// rejection surfaces as a 500 distinct from any database failure.
type OrderHandler struct {
	Cfg     config.Config
	Menu    MenuStore
	Orders  OrderStore
	Factory service.Fulfiller
}

func NewOrderHandler(cfg config.Config, menu MenuStore, orders OrderStore, factory service.Fulfiller) *OrderHandler {
	return &OrderHandler{Cfg: cfg, Menu: menu, Orders: orders, Factory: factory}
}

// GetMenu returns the full menu. Public.
func (h *OrderHandler) GetMenu(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Menu.GetMenu(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "unable to load menu"})
	}
	if items == nil {
		items = []model.MenuItem{}
	}
	return c.JSON(http.StatusOK, items)
}

// AddMenuItem inserts a menu item and returns the updated menu. The
// route is admin only; the role check runs in middleware before this
// handler.
func (h *OrderHandler) AddMenuItem(c echo.Context) error {
	var item model.MenuItem
	if err := c.Bind(&item); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Menu.AddItem(ctx, item); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "unable to add menu item"})
	}
	items, err := h.Menu.GetMenu(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "unable to load menu"})
	}
	return c.JSON(http.StatusOK, items)
}

// GetOrders returns one page of the caller's orders.
func (h *OrderHandler) GetOrders(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	orders, err := h.Orders.OrdersForDiner(ctx, middleware.CurrentUser(c), page, h.Cfg.ListPerPage)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "unable to load orders"})
	}
	return c.JSON(http.StatusOK, orders)
}

// CreateOrder records the caller's order and forwards it to the
// factory. The order is committed before the forward; a factory
// rejection therefore reports failure while the ledger keeps the row,
// matching the synchronous no-retry fulfillment model.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var order model.Order
	if err := c.Bind(&order); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	diner := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	created, err := h.Orders.AddDinerOrder(ctx, diner, order)
	if err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "unable to resolve menu item"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "unable to create order"})
	}

	result, err := h.Factory.Fulfill(ctx, diner, created)
	if err != nil {
		resp := echo.Map{"message": "Failed to fulfill order at factory"}
		if result != nil && result.ReportURL != "" {
			resp["reportPizzaCreationErrorToPizzaFactoryUrl"] = result.ReportURL
		}
		return c.JSON(http.StatusInternalServerError, resp)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"order":                       created,
		"jwt":                         result.JWT,
		"reportSlowPizzaToFactoryUrl": result.ReportURL,
	})
}
