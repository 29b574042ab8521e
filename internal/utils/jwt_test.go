package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pizzastack/pizza-service/internal/model"
)

func TestAuthTokenRoundTrip(t *testing.T) {
	u := &model.User{
		ID:    7,
		Name:  "pizza diner",
		Email: "d@test.com",
		Roles: []model.UserRole{
			{Role: model.RoleDiner},
			{Role: model.RoleFranchisee, ObjectID: 3},
		},
	}

	token, err := NewAuthToken("secret", u)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := ParseAuthToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, u.Name, got.Name)
	assert.Equal(t, u.Email, got.Email)
	require.Len(t, got.Roles, 2)
	assert.Equal(t, model.RoleDiner, got.Roles[0].Role)
	assert.Equal(t, model.RoleFranchisee, got.Roles[1].Role)
	assert.Equal(t, uint64(3), got.Roles[1].ObjectID)
}

func TestParseAuthTokenWrongSecret(t *testing.T) {
	token, err := NewAuthToken("secret", &model.User{ID: 1})
	require.NoError(t, err)

	_, err = ParseAuthToken("other", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAuthTokenGarbage(t *testing.T) {
	_, err := ParseAuthToken("secret", "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenSignature(t *testing.T) {
	a := TokenSignature("token-one")
	b := TokenSignature("token-one")
	c := TokenSignature("token-two")

	assert.Equal(t, a, b, "signature must be deterministic")
	assert.NotEqual(t, a, c)
	assert.NotContains(t, a, "token-one", "signature must not embed the token")
	assert.Len(t, a, 64)
}
