package utils

import (
	"testing"

	"pizza-service/internal/data/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *entity.User {
	return &entity.User{
		Base:  entity.Base{ID: 42},
		Name:  "pizza diner",
		Email: "d@jwt.com",
		Roles: entity.NewRoleSet(entity.RoleAssignment{Role: entity.RoleDiner}),
	}
}

func TestJWTManagerRoundTrip(t *testing.T) {
	m := NewJWTManager("secret")

	token, tokenID, err := m.Issue(testUser())
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "pizza diner", claims.Name)
	assert.Equal(t, "d@jwt.com", claims.Email)
	assert.True(t, claims.Roles.Has(entity.RoleDiner))

	parsedID, err := claims.TokenID()
	require.NoError(t, err)
	assert.Equal(t, tokenID, parsedID)
}

func TestJWTManagerIssuesDistinctTokens(t *testing.T) {
	m := NewJWTManager("secret")

	first, firstID, err := m.Issue(testUser())
	require.NoError(t, err)
	second, secondID, err := m.Issue(testUser())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, firstID, secondID)
}

func TestJWTManagerRejectsForeignSignature(t *testing.T) {
	token, _, err := NewJWTManager("other").Issue(testUser())
	require.NoError(t, err)

	_, err = NewJWTManager("secret").Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManagerRejectsUnsignedToken(t *testing.T) {
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": 1}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTManager("secret").Parse(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManagerRejectsGarbage(t *testing.T) {
	_, err := NewJWTManager("secret").Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
