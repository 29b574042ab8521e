package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pizzastack/pizza-service/internal/config"
	"github.com/pizzastack/pizza-service/internal/middleware"
	"github.com/pizzastack/pizza-service/internal/model"
	"github.com/pizzastack/pizza-service/internal/repository"
	"github.com/pizzastack/pizza-service/internal/utils"
)

// CredentialStore is the slice of the user repository the auth
// endpoints need.
type CredentialStore interface {
	Create(ctx context.Context, u model.User, cost int) (*model.User, error)
	Verify(ctx context.Context, email, password string) (*model.User, error)
}

// TokenStore tracks issued token signatures.
type TokenStore interface {
	Store(ctx context.Context, signature string, userID uint64) error
	Revoke(ctx context.Context, signature string) error
}

// AuthHandler bundles dependencies for register, login and logout.
type AuthHandler struct {
	Cfg    config.Config
	Users  CredentialStore
	Tokens TokenStore
}

func NewAuthHandler(cfg config.Config, users CredentialStore, tokens TokenStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Tokens: tokens}
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResp struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Register creates a diner account and logs it in immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name, email, and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Create(ctx, model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Roles:    []model.UserRole{{Role: model.RoleDiner}},
	}, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "unable to create user"})
	}

	token, err := h.issueToken(ctx, u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "unable to issue token"})
	}
	return c.JSON(http.StatusOK, authResp{User: u, Token: token})
}

// Login verifies credentials and returns the user with a fresh token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Verify(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unknown user"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "unable to verify user"})
	}

	token, err := h.issueToken(ctx, u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "unable to issue token"})
	}
	return c.JSON(http.StatusOK, authResp{User: u, Token: token})
}

// Logout revokes the signature of the presented token. The route is
// protected, so reaching here implies a live session.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Tokens.Revoke(ctx, middleware.CurrentSignature(c)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "unable to log out"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "logout successful"})
}

// issueToken mints a signed token for the user and records its
// signature in the auth table.
func (h *AuthHandler) issueToken(ctx context.Context, u *model.User) (string, error) {
	token, err := utils.NewAuthToken(h.Cfg.JWTSecret, u)
	if err != nil {
		return "", err
	}
	if err := h.Tokens.Store(ctx, utils.TokenSignature(token), u.ID); err != nil {
		return "", err
	}
	return token, nil
}
