package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type endpointDoc struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

var endpoints = []endpointDoc{
	{http.MethodPost, "/api/auth", "Register a new user"},
	{http.MethodPut, "/api/auth", "Login an existing user"},
	{http.MethodDelete, "/api/auth", "Logout the current user"},
	{http.MethodGet, "/api/user", "List users (admins see everyone)"},
	{http.MethodGet, "/api/user/me", "Get the authenticated user"},
	{http.MethodPut, "/api/user/:userId", "Update a user (self or admin)"},
	{http.MethodGet, "/api/order/menu", "Get the pizza menu"},
	{http.MethodPut, "/api/order/menu", "Add a menu item (admin)"},
	{http.MethodGet, "/api/order", "Get the authenticated user's orders"},
	{http.MethodPost, "/api/order", "Create an order for the authenticated user"},
	{http.MethodGet, "/api/franchise", "List franchises"},
	{http.MethodGet, "/api/franchise/:userId", "List a user's franchises"},
	{http.MethodPost, "/api/franchise", "Create a franchise (admin)"},
	{http.MethodDelete, "/api/franchise/:franchiseId", "Delete a franchise (admin)"},
	{http.MethodPost, "/api/franchise/:franchiseId/store", "Create a store"},
	{http.MethodDelete, "/api/franchise/:franchiseId/store/:storeId", "Delete a store"},
}

// Docs returns the endpoint catalog so the API is discoverable without
// external documentation.
func Docs(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"endpoints": endpoints})
}
