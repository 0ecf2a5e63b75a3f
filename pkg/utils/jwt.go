package utils

import (
	"errors"
	"fmt"
	"time"

	"pizza-service/internal/data/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity snapshot embedded in every session token.
type Claims struct {
	UserID int64          `json:"id"`
	Name   string         `json:"name"`
	Email  string         `json:"email"`
	Roles  entity.RoleSet `json:"roles"`
	jwt.RegisteredClaims
}

// TokenID returns the registry key of the token.
func (c *Claims) TokenID() (uuid.UUID, error) {
	return uuid.Parse(c.RegisteredClaims.ID)
}

type JWTManager struct {
	secret []byte
	now    func() time.Time
}

func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{secret: []byte(secret), now: time.Now}
}

// Issue signs a token for user under a fresh jti. Tokens carry no expiry,
// they stay valid until revoked in the session registry.
func (m *JWTManager) Issue(user *entity.User) (string, uuid.UUID, error) {
	tokenID := uuid.New()
	claims := Claims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Roles:  user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       tokenID.String(),
			IssuedAt: jwt.NewNumericDate(m.now()),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", uuid.Nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, tokenID, nil
}

// Parse verifies the signature and returns the embedded claims.
func (m *JWTManager) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
