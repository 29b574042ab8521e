package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pizzastack/pizza-service/internal/config"
	"github.com/pizzastack/pizza-service/internal/middleware"
	"github.com/pizzastack/pizza-service/internal/model"
	"github.com/pizzastack/pizza-service/internal/utils"
)

// UserStore is the slice of the user repository the user endpoints
// need.
type UserStore interface {
	Update(ctx context.Context, userID uint64, name, email, password string, cost int) (*model.User, error)
	List(ctx context.Context, page, limit int) ([]model.User, bool, error)
}

// UserHandler serves the /api/user endpoints.
type UserHandler struct {
	Cfg    config.Config
	Users  UserStore
	Tokens TokenStore
}

func NewUserHandler(cfg config.Config, users UserStore, tokens TokenStore) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users, Tokens: tokens}
}

type updateUserReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Me returns the authenticated caller as embedded in their token.
func (h *UserHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

// List returns users: admins get a page of everyone with a more flag,
// any other authenticated caller gets a list containing only
// themselves.
func (h *UserHandler) List(c echo.Context) error {
	caller := middleware.CurrentUser(c)
	if !caller.IsRole(model.RoleAdmin) {
		return c.JSON(http.StatusOK, echo.Map{"users": []model.User{*caller}, "more": false})
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, more, err := h.Users.List(ctx, page, h.Cfg.ListPerPage)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "unable to list users"})
	}
	if users == nil {
		users = []model.User{}
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users, "more": more})
}

// Update changes a user's name, email or password. Allowed for the
// user themselves or an admin; everyone else gets 403. A fresh token is
// issued because the old one embeds the stale profile.
func (h *UserHandler) Update(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
	}
	caller := middleware.CurrentUser(c)
	if !caller.MaySeeUser(userID) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "unauthorized"})
	}

	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Update(ctx, userID, req.Name, req.Email, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "unable to update user"})
	}

	token, err := utils.NewAuthToken(h.Cfg.JWTSecret, u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "unable to issue token"})
	}
	if err := h.Tokens.Store(ctx, utils.TokenSignature(token), u.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "unable to issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": u, "token": token})
}
