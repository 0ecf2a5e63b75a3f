package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pizza-service/internal/data/entity"
	"pizza-service/internal/data/repository"
	"pizza-service/internal/data/repository/repotest"
	"pizza-service/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type authFixture struct {
	tokens *utils.JWTManager
	repo   *repository.Repository
}

func newAuthFixture() *authFixture {
	repo, _ := repotest.NewRepository()
	return &authFixture{tokens: utils.NewJWTManager("test-secret"), repo: repo}
}

// login issues a token for user and registers its session
func (f *authFixture) login(t *testing.T, user *entity.User) string {
	t.Helper()
	token, tokenID, err := f.tokens.Issue(user)
	require.NoError(t, err)
	require.NoError(t, f.repo.Session.Create(context.Background(), &entity.Session{
		TokenID:  tokenID,
		UserID:   user.ID,
		IssuedAt: time.Now(),
	}))
	return token
}

func identityEcho(seen **utils.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen, _ = utils.GetIdentity(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func serve(h http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthSessionBindsIdentity(t *testing.T) {
	f := newAuthFixture()
	user := &entity.User{
		Base:  entity.Base{ID: 5},
		Name:  "pizza diner",
		Email: "d@jwt.com",
		Roles: entity.NewRoleSet(entity.RoleAssignment{Role: entity.RoleDiner}),
	}
	token := f.login(t, user)

	var seen *utils.Identity
	h := AuthSession(f.tokens, f.repo.Session, zap.NewNop())(identityEcho(&seen))

	rec := serve(h, "Bearer "+token)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, int64(5), seen.ID)
	assert.Equal(t, "d@jwt.com", seen.Email)
	assert.Equal(t, token, seen.Token)
	assert.True(t, seen.IsRole(entity.RoleDiner))
}

func TestAuthSessionRejects(t *testing.T) {
	f := newAuthFixture()
	user := &entity.User{Base: entity.Base{ID: 5}}
	token := f.login(t, user)

	unregistered, _, err := f.tokens.Issue(user)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic " + token},
		{"lowercase scheme", "bearer " + token},
		{"extra parts", "Bearer " + token + " extra"},
		{"bad signature", "Bearer " + token + "x"},
		{"not in registry", "Bearer " + unregistered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *utils.Identity
			h := AuthSession(f.tokens, f.repo.Session, zap.NewNop())(identityEcho(&seen))

			rec := serve(h, tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"message":"unauthorized"}`, rec.Body.String())
			assert.Nil(t, seen)
		})
	}
}

func TestAuthSessionRejectsRevokedToken(t *testing.T) {
	f := newAuthFixture()
	user := &entity.User{Base: entity.Base{ID: 5}}
	token := f.login(t, user)

	claims, err := f.tokens.Parse(token)
	require.NoError(t, err)
	tokenID, err := claims.TokenID()
	require.NoError(t, err)
	require.NoError(t, f.repo.Session.Revoke(context.Background(), tokenID))

	var seen *utils.Identity
	rec := serve(AuthSession(f.tokens, f.repo.Session, zap.NewNop())(identityEcho(&seen)), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	f := newAuthFixture()

	var seen *utils.Identity
	h := OptionalAuth(f.tokens, f.repo.Session, zap.NewNop())(identityEcho(&seen))

	rec := serve(h, "Bearer garbage")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, seen)

	token := f.login(t, &entity.User{Base: entity.Base{ID: 9}})
	rec = serve(h, "Bearer "+token)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, int64(9), seen.ID)
}

func TestAdminMiddleware(t *testing.T) {
	f := newAuthFixture()
	admin := &entity.User{Base: entity.Base{ID: 1}, Roles: entity.NewRoleSet(entity.RoleAssignment{Role: entity.RoleAdmin})}
	diner := &entity.User{Base: entity.Base{ID: 2}, Roles: entity.NewRoleSet(entity.RoleAssignment{Role: entity.RoleDiner})}

	var seen *utils.Identity
	h := AuthSession(f.tokens, f.repo.Session, zap.NewNop())(
		Admin("admins only", zap.NewNop())(identityEcho(&seen)),
	)

	rec := serve(h, "Bearer "+f.login(t, diner))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"admins only"}`, rec.Body.String())

	rec = serve(h, "Bearer "+f.login(t, admin))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRecoverReturnsGenericError(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := serve(h, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, rec.Body.String())
}
