// Package repository contains data access logic separated from HTTP
// handlers. Sentinel errors defined here let the route layer
// distinguish failure scenarios without inspecting SQL errors: an
// unresolved reference (unknown user, menu item or franchise) maps to
// an operation-specific rejection, a failed credential check to 401,
// and a failed franchise delete transaction to a generic 500.
package repository

import "errors"

// ErrUnknownUser is returned when a referenced user email cannot be
// resolved, e.g. a franchise admin that was never registered.
var ErrUnknownUser = errors.New("unknown user")

// ErrInvalidCredentials is returned when an email/password pair does
// not verify. Handlers should translate this into an HTTP 401.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUnknownFranchise is returned when a franchise referenced by name
// (franchisee role-bindings at registration) does not exist.
var ErrUnknownFranchise = errors.New("unknown franchise")

// ErrFranchiseNotFound is returned when a franchise id lookup matches
// no row.
var ErrFranchiseNotFound = errors.New("franchise not found")

// ErrMenuItemNotFound is returned when an order line references a menu
// item that does not exist.
var ErrMenuItemNotFound = errors.New("menu item not found")

// ErrDeleteFranchise is returned when the cascading franchise delete
// transaction fails for any reason; partial deletes are rolled back
// before this error is surfaced.
var ErrDeleteFranchise = errors.New("unable to delete franchise")
