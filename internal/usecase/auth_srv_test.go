package usecase

import (
	"context"
	"sync"
	"testing"

	"pizza-service/internal/data/entity"
	"pizza-service/internal/dto/request"
	"pizza-service/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	env := newTestEnv()

	resp, err := env.svc.Auth.Register(context.Background(), &request.RegisterRequest{
		Name: "pizza diner", Email: "d@jwt.com", Password: "a",
	})
	require.NoError(t, err)

	assert.NotZero(t, resp.User.ID)
	assert.Equal(t, "d@jwt.com", resp.User.Email)
	assert.Equal(t, []entity.RoleAssignment{{Role: entity.RoleDiner}}, resp.User.Roles.List())
	assert.Regexp(t, `^[a-zA-Z0-9\-_]+\.[a-zA-Z0-9\-_]+\.[a-zA-Z0-9\-_]+$`, resp.Token)

	claims, err := env.tokens.Parse(resp.Token)
	require.NoError(t, err)
	tokenID, err := claims.TokenID()
	require.NoError(t, err)
	_, ok := env.store.Session(tokenID)
	assert.True(t, ok, "register opens a session")
}

func TestRegisterRequiresAllFields(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Auth.Register(context.Background(), &request.RegisterRequest{Email: "d@jwt.com", Password: "a"})
	appErr := requireKind(t, err, utils.KindValidation)
	assert.Equal(t, "name, email, and password are required", appErr.Message)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv()
	req := &request.RegisterRequest{Name: "a", Email: "dup@test.com", Password: "a"}

	_, err := env.svc.Auth.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = env.svc.Auth.Register(context.Background(), req)
	requireKind(t, err, utils.KindValidation)
}

func TestRegisterConcurrentSameEmail(t *testing.T) {
	env := newTestEnv()

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.svc.Auth.Register(context.Background(), &request.RegisterRequest{
				Name: "racer", Email: "race@test.com", Password: "a",
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
}

func TestLogin(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.svc.Auth.Register(ctx, &request.RegisterRequest{Name: "a", Email: "l@test.com", Password: "pw"})
	require.NoError(t, err)

	resp, err := env.svc.Auth.Login(ctx, &request.LoginRequest{Email: "l@test.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "l@test.com", resp.User.Email)
	assert.NotEmpty(t, resp.Token)

	_, err = env.svc.Auth.Login(ctx, &request.LoginRequest{Email: "l@test.com", Password: "wrong"})
	requireKind(t, err, utils.KindAuth)

	_, err = env.svc.Auth.Login(ctx, &request.LoginRequest{Email: "nobody@test.com", Password: "pw"})
	requireKind(t, err, utils.KindAuth)

	_, err = env.svc.Auth.Login(ctx, &request.LoginRequest{Email: "l@test.com"})
	requireKind(t, err, utils.KindValidation)
}

func TestLogoutRevokesOnlyThatToken(t *testing.T) {
	env := newTestEnv()
	first := env.identity(t, "multi@test.com")

	second, err := env.svc.Auth.Login(context.Background(), &request.LoginRequest{Email: "multi@test.com", Password: "pw"})
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)

	require.NoError(t, env.svc.Auth.Logout(context.Background(), first))

	sess, ok := env.store.Session(first.TokenID)
	require.True(t, ok)
	assert.NotNil(t, sess.RevokedAt)

	claims, err := env.tokens.Parse(second.Token)
	require.NoError(t, err)
	secondID, err := claims.TokenID()
	require.NoError(t, err)
	live, err := env.repo.Session.FindValidSession(context.Background(), secondID)
	require.NoError(t, err)
	assert.NotNil(t, live, "other sessions stay valid")

	err = env.svc.Auth.Logout(context.Background(), first)
	requireKind(t, err, utils.KindAuth)
}

func TestLogoutWithoutIdentity(t *testing.T) {
	env := newTestEnv()
	err := env.svc.Auth.Logout(context.Background(), nil)
	requireKind(t, err, utils.KindAuth)
}
