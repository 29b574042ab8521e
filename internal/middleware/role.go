package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pizzastack/pizza-service/internal/model"
)

// RequireRole enforces that the authenticated user holds at least one
// of the given role kinds. Admin always passes. It assumes JWTAuth ran
// earlier in the chain; an absent user is rejected with 401 and an
// insufficient role set with 403. The check is a pure predicate over
// the caller's role-bindings and runs before any mutating call.
func RequireRole(kinds ...model.RoleKind) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := CurrentUser(c)
			if u == nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			for _, kind := range kinds {
				if u.IsRole(kind) {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, echo.Map{"message": "unauthorized"})
		}
	}
}
