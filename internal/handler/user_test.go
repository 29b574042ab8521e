package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pizzastack/pizza-service/internal/model"
)

type fakeUsers struct {
	updated *model.User
	listed  []model.User
	more    bool

	gotUserID   uint64
	gotName     string
	gotPassword string
	gotPage     int
}

func (f *fakeUsers) Update(_ context.Context, userID uint64, name, email, password string, _ int) (*model.User, error) {
	f.gotUserID = userID
	f.gotName = name
	f.gotPassword = password
	return f.updated, nil
}

func (f *fakeUsers) List(_ context.Context, page, _ int) ([]model.User, bool, error) {
	f.gotPage = page
	return f.listed, f.more, nil
}

func TestMe(t *testing.T) {
	h := NewUserHandler(testConfig(), &fakeUsers{}, newFakeTokens())
	diner := &model.User{ID: 2, Name: "pizza diner", Email: "d@test.com"}

	c, rec := jsonCtx(http.MethodGet, "/api/user/me", "", diner)
	require.NoError(t, h.Me(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"d@test.com"`)
}

func TestListUsersNonAdminSeesOnlySelf(t *testing.T) {
	users := &fakeUsers{listed: []model.User{{ID: 1}, {ID: 2}, {ID: 3}}, more: true}
	h := NewUserHandler(testConfig(), users, newFakeTokens())
	diner := &model.User{ID: 2, Name: "pizza diner", Email: "d@test.com",
		Roles: []model.UserRole{{Role: model.RoleDiner}}}

	c, rec := jsonCtx(http.MethodGet, "/api/user", "", diner)
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"d@test.com"`)
	assert.Contains(t, rec.Body.String(), `"more":false`)
	assert.Zero(t, users.gotPage, "repository must not be consulted")
}

func TestListUsersAdmin(t *testing.T) {
	users := &fakeUsers{listed: []model.User{{ID: 1, Email: "a@jwt.com"}, {ID: 2, Email: "d@test.com"}}, more: true}
	h := NewUserHandler(testConfig(), users, newFakeTokens())
	admin := &model.User{ID: 1, Roles: []model.UserRole{{Role: model.RoleAdmin}}}

	c, rec := jsonCtx(http.MethodGet, "/api/user?page=2", "", admin)
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, users.gotPage)
	assert.Contains(t, rec.Body.String(), `"a@jwt.com"`)
	assert.Contains(t, rec.Body.String(), `"more":true`)
}

func TestUpdateSelfIssuesFreshToken(t *testing.T) {
	users := &fakeUsers{updated: &model.User{ID: 2, Name: "new name", Email: "d@test.com"}}
	tokens := newFakeTokens()
	h := NewUserHandler(testConfig(), users, tokens)
	diner := &model.User{ID: 2, Roles: []model.UserRole{{Role: model.RoleDiner}}}

	c, rec := jsonCtx(http.MethodPut, "/api/user/2", `{"name":"new name"}`, diner)
	c.SetPath("/api/user/:userId")
	c.SetParamNames("userId")
	c.SetParamValues("2")
	require.NoError(t, h.Update(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(2), users.gotUserID)
	assert.Equal(t, "new name", users.gotName)
	assert.Contains(t, rec.Body.String(), `"token"`)
	assert.Len(t, tokens.stored, 1, "the re-issued token is persisted")
}

func TestUpdateOtherUserForbidden(t *testing.T) {
	users := &fakeUsers{}
	h := NewUserHandler(testConfig(), users, newFakeTokens())
	diner := &model.User{ID: 2, Roles: []model.UserRole{{Role: model.RoleDiner}}}

	c, rec := jsonCtx(http.MethodPut, "/api/user/3", `{"name":"hijack"}`, diner)
	c.SetPath("/api/user/:userId")
	c.SetParamNames("userId")
	c.SetParamValues("3")
	require.NoError(t, h.Update(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, users.gotUserID, "repository must not be touched")
}

func TestUpdateByAdmin(t *testing.T) {
	users := &fakeUsers{updated: &model.User{ID: 3, Name: "fixed", Email: "f@test.com"}}
	h := NewUserHandler(testConfig(), users, newFakeTokens())
	admin := &model.User{ID: 1, Roles: []model.UserRole{{Role: model.RoleAdmin}}}

	c, rec := jsonCtx(http.MethodPut, "/api/user/3", `{"name":"fixed"}`, admin)
	c.SetPath("/api/user/:userId")
	c.SetParamNames("userId")
	c.SetParamValues("3")
	require.NoError(t, h.Update(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(3), users.gotUserID)
}
