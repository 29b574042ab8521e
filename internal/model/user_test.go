package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRole(t *testing.T) {
	admin := &User{Roles: []UserRole{{Role: RoleAdmin}}}
	diner := &User{Roles: []UserRole{{Role: RoleDiner}}}
	var anonymous *User

	assert.True(t, admin.IsRole(RoleAdmin))
	assert.True(t, admin.IsRole(RoleDiner), "admin passes every role check")
	assert.True(t, admin.IsRole(RoleFranchisee))

	assert.True(t, diner.IsRole(RoleDiner))
	assert.False(t, diner.IsRole(RoleAdmin))
	assert.False(t, diner.IsRole(RoleFranchisee))

	assert.False(t, anonymous.IsRole(RoleDiner))
}

func TestAdministersFranchise(t *testing.T) {
	admin := &User{Roles: []UserRole{{Role: RoleAdmin}}}
	franchisee := &User{Roles: []UserRole{{Role: RoleFranchisee, ObjectID: 5}}}
	diner := &User{Roles: []UserRole{{Role: RoleDiner}}}
	var anonymous *User

	assert.True(t, admin.AdministersFranchise(5))
	assert.True(t, admin.AdministersFranchise(99))

	assert.True(t, franchisee.AdministersFranchise(5))
	assert.False(t, franchisee.AdministersFranchise(6), "franchisee scope is per franchise")

	assert.False(t, diner.AdministersFranchise(5))
	assert.False(t, anonymous.AdministersFranchise(5))
}

func TestMaySeeUser(t *testing.T) {
	admin := &User{ID: 1, Roles: []UserRole{{Role: RoleAdmin}}}
	diner := &User{ID: 2, Roles: []UserRole{{Role: RoleDiner}}}
	var anonymous *User

	assert.True(t, diner.MaySeeUser(2), "self access allowed")
	assert.False(t, diner.MaySeeUser(3))
	assert.True(t, admin.MaySeeUser(3))
	assert.False(t, anonymous.MaySeeUser(2))
}
