package usecase

import (
	"context"
	"testing"

	"pizza-service/internal/data/entity"
	"pizza-service/internal/data/repository"
	"pizza-service/internal/data/repository/repotest"
	"pizza-service/internal/dto/request"
	"pizza-service/internal/factory"
	"pizza-service/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubFactory answers every fulfillment with a fixed result or error
type stubFactory struct {
	result *factory.FulfillmentResult
	err    error
	// onFulfill runs before the answer is returned
	onFulfill func()

	calls     int
	lastToken string
	lastReq   *factory.FulfillmentRequest
}

func (f *stubFactory) Fulfill(_ context.Context, bearerToken string, req *factory.FulfillmentRequest) (*factory.FulfillmentResult, error) {
	f.calls++
	f.lastToken = bearerToken
	f.lastReq = req
	if f.onFulfill != nil {
		f.onFulfill()
	}
	return f.result, f.err
}

type testEnv struct {
	repo    *repository.Repository
	store   *repotest.Store
	tokens  *utils.JWTManager
	factory *stubFactory
	svc     *Service
}

func newTestEnv() *testEnv {
	repo, store := repotest.NewRepository()
	tokens := utils.NewJWTManager("test-secret")
	fac := &stubFactory{result: &factory.FulfillmentResult{JWT: "factory-jwt", ReportURL: "http://report"}}
	return &testEnv{
		repo:    repo,
		store:   store,
		tokens:  tokens,
		factory: fac,
		svc:     NewService(repo, tokens, fac, zap.NewNop()),
	}
}

// identity registers a user, applies extra grants and logs in so the token
// snapshot carries them.
func (e *testEnv) identity(t *testing.T, email string, grants ...entity.RoleAssignment) *utils.Identity {
	t.Helper()
	ctx := context.Background()

	reg, err := e.svc.Auth.Register(ctx, &request.RegisterRequest{Name: "pizza " + email, Email: email, Password: "pw"})
	require.NoError(t, err)
	for _, g := range grants {
		e.store.Grant(reg.User.ID, g)
	}

	return e.relogin(t, email)
}

// relogin opens a new session for an existing user
func (e *testEnv) relogin(t *testing.T, email string) *utils.Identity {
	t.Helper()

	auth, err := e.svc.Auth.Login(context.Background(), &request.LoginRequest{Email: email, Password: "pw"})
	require.NoError(t, err)

	claims, err := e.tokens.Parse(auth.Token)
	require.NoError(t, err)
	tokenID, err := claims.TokenID()
	require.NoError(t, err)

	return &utils.Identity{
		ID:      claims.UserID,
		Name:    claims.Name,
		Email:   claims.Email,
		Roles:   claims.Roles,
		TokenID: tokenID,
		Token:   auth.Token,
	}
}

func (e *testEnv) admin(t *testing.T) *utils.Identity {
	return e.identity(t, "admin@test.com", entity.RoleAssignment{Role: entity.RoleAdmin})
}

func requireKind(t *testing.T, err error, kind utils.ErrorKind) *utils.AppError {
	t.Helper()
	require.Error(t, err)
	appErr := utils.AsAppError(err)
	require.Equal(t, kind, appErr.Kind, appErr.Error())
	return appErr
}
