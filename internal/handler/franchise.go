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
)

// FranchiseStore is the slice of the franchise repository the
// franchise endpoints need.
type FranchiseStore interface {
	Create(ctx context.Context, f model.Franchise) (*model.Franchise, error)
	Delete(ctx context.Context, franchiseID uint64) error
	List(ctx context.Context, page, limit int, nameFilter string, detailed bool) ([]model.Franchise, bool, error)
	ListForUser(ctx context.Context, userID uint64) ([]model.Franchise, error)
	Get(ctx context.Context, franchiseID uint64) (*model.Franchise, error)
	CreateStore(ctx context.Context, franchiseID uint64, s model.Store) (*model.Store, error)
	DeleteStore(ctx context.Context, franchiseID, storeID uint64) error
}

// FranchiseHandler serves the /api/franchise endpoints.
type FranchiseHandler struct {
	Cfg        config.Config
	Franchises FranchiseStore
}

func NewFranchiseHandler(cfg config.Config, franchises FranchiseStore) *FranchiseHandler {
	return &FranchiseHandler{Cfg: cfg, Franchises: franchises}
}

// List returns one page of franchises. Anonymous and non-admin callers
// get the public view (names and stores); admins also see each
// franchise's admin users. An optional ?name= filter matches franchise
// names with SQL wildcards.
func (h *FranchiseHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	detailed := middleware.CurrentUser(c).IsRole(model.RoleAdmin)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	franchises, more, err := h.Franchises.List(ctx, page, h.Cfg.ListPerPage, c.QueryParam("name"), detailed)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "unable to list franchises"})
	}
	if franchises == nil {
		franchises = []model.Franchise{}
	}
	return c.JSON(http.StatusOK, echo.Map{"franchises": franchises, "more": more})
}

// ListForUser returns the franchises a user administers. Only the user
// themselves or an admin see the real list; any other caller gets an
// empty one rather than an error.
func (h *FranchiseHandler) ListForUser(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
	}
	caller := middleware.CurrentUser(c)
	if !caller.MaySeeUser(userID) {
		return c.JSON(http.StatusOK, []model.Franchise{})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	franchises, err := h.Franchises.ListForUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "unable to list franchises"})
	}
	if franchises == nil {
		franchises = []model.Franchise{}
	}
	return c.JSON(http.StatusOK, franchises)
}

// Create registers a franchise with its admin users. Admin only (via
// middleware). Every listed admin email must belong to an existing
// user or the whole create is rejected with no writes.
func (h *FranchiseHandler) Create(c echo.Context) error {
	var f model.Franchise
	if err := c.Bind(&f); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if f.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "franchise name is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	created, err := h.Franchises.Create(ctx, f)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownUser) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "unknown user for franchise admin"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "unable to create franchise"})
	}
	return c.JSON(http.StatusOK, created)
}

// Delete removes a franchise with its stores and role-bindings. Admin
// only. The cascade runs in one transaction; on failure nothing is
// deleted and the caller sees a 500.
func (h *FranchiseHandler) Delete(c echo.Context) error {
	franchiseID, err := strconv.ParseUint(c.Param("franchiseId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid franchise id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Franchises.Delete(ctx, franchiseID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "unable to delete franchise"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "franchise deleted"})
}

// CreateStore adds a store under a franchise. Allowed for admins and
// for franchisees administering that franchise.
func (h *FranchiseHandler) CreateStore(c echo.Context) error {
	franchiseID, err := strconv.ParseUint(c.Param("franchiseId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid franchise id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Franchises.Get(ctx, franchiseID); err != nil {
		if errors.Is(err, repository.ErrFranchiseNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "unknown franchise"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "unable to load franchise"})
	}
	if !middleware.CurrentUser(c).AdministersFranchise(franchiseID) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "unable to create a store"})
	}

	var s model.Store
	if err := c.Bind(&s); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	created, err := h.Franchises.CreateStore(ctx, franchiseID, s)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "unable to create a store"})
	}
	return c.JSON(http.StatusOK, created)
}

// DeleteStore removes a store, scoped by both franchise and store id.
// Allowed for admins and for franchisees administering that franchise.
// Deleting a store that does not exist is a quiet success.
func (h *FranchiseHandler) DeleteStore(c echo.Context) error {
	franchiseID, err := strconv.ParseUint(c.Param("franchiseId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid franchise id"})
	}
	storeID, err := strconv.ParseUint(c.Param("storeId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid store id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if !middleware.CurrentUser(c).AdministersFranchise(franchiseID) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "unable to delete a store"})
	}
	if err := h.Franchises.DeleteStore(ctx, franchiseID, storeID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "unable to delete a store"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "store deleted"})
}
