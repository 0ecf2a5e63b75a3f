package utils

import (
	"context"

	"pizza-service/internal/data/entity"

	"github.com/google/uuid"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller, resolved from a live session token.
type Identity struct {
	ID      int64
	Name    string
	Email   string
	Roles   entity.RoleSet
	TokenID uuid.UUID
	Token   string
}

func (i *Identity) IsRole(role entity.Role) bool {
	return i != nil && i.Roles.Has(role)
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Roles.IsAdmin()
}

func SetIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentity returns the caller bound by the auth middleware, if any
func GetIdentity(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*Identity)
	return identity, ok && identity != nil
}

// ClientInfo describes the device a session was opened from.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

const clientInfoKey contextKey = "client_info"

func SetClientInfo(ctx context.Context, info ClientInfo) context.Context {
	return context.WithValue(ctx, clientInfoKey, info)
}

func GetClientInfo(ctx context.Context) (ClientInfo, bool) {
	info, ok := ctx.Value(clientInfoKey).(ClientInfo)
	return info, ok
}
