package usecase

import (
	"context"
	"fmt"
	"math"
	"testing"

	"pizza-service/internal/data/entity"
	"pizza-service/internal/dto/request"
	"pizza-service/internal/dto/response"
	"pizza-service/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createFranchise(t *testing.T, env *testEnv, admin *utils.Identity, name string, adminEmails ...string) *response.FranchiseResponse {
	t.Helper()
	req := &request.CreateFranchiseRequest{Name: name}
	for _, email := range adminEmails {
		req.Admins = append(req.Admins, request.FranchiseAdminRequest{Email: email})
	}
	f, err := env.svc.Franchise.CreateFranchise(context.Background(), admin, req)
	require.NoError(t, err)
	return f
}

func TestCreateFranchise(t *testing.T) {
	env := newTestEnv()
	admin := env.admin(t)
	owner := env.identity(t, "owner@test.com")

	f := createFranchise(t, env, admin, "pizzaPocket", owner.Email)

	assert.NotZero(t, f.ID)
	assert.Equal(t, "pizzaPocket", f.Name)
	require.Len(t, f.Admins, 1)
	assert.Equal(t, owner.ID, f.Admins[0].ID)
	assert.Equal(t, owner.Email, f.Admins[0].Email)
	assert.Empty(t, f.Stores)
	assert.NotNil(t, f.Stores)

	// the grant shows up at the owner's next login
	relogin, err := env.svc.Auth.Login(context.Background(), &request.LoginRequest{Email: owner.Email, Password: "pw"})
	require.NoError(t, err)
	assert.True(t, relogin.User.Roles.HasScoped(entity.RoleFranchisee, f.ID))
}

func TestCreateFranchiseRepeatedAdminListedOnce(t *testing.T) {
	env := newTestEnv()
	admin := env.admin(t)
	owner := env.identity(t, "owner@test.com")

	f := createFranchise(t, env, admin, "twice", owner.Email, owner.Email)
	require.Len(t, f.Admins, 1)
	assert.Equal(t, owner.ID, f.Admins[0].ID)

	stored, err := env.svc.Franchise.ListFranchises(context.Background(), admin, &request.FranchiseListRequest{Name: "twice"})
	require.NoError(t, err)
	require.Len(t, stored.Franchises, 1)
	assert.Len(t, stored.Franchises[0].Admins, 1)
}

func TestCreateFranchiseDenied(t *testing.T) {
	env := newTestEnv()
	diner := env.identity(t, "diner@test.com")

	_, err := env.svc.Franchise.CreateFranchise(context.Background(), diner, &request.CreateFranchiseRequest{Name: "x"})
	appErr := requireKind(t, err, utils.KindForbidden)
	assert.Equal(t, "unable to create a franchise", appErr.Message)
}

func TestCreateFranchiseUnknownAdmin(t *testing.T) {
	env := newTestEnv()
	admin := env.admin(t)

	_, err := env.svc.Franchise.CreateFranchise(context.Background(), admin, &request.CreateFranchiseRequest{
		Name:   "ghost",
		Admins: []request.FranchiseAdminRequest{{Email: "nobody@test.com"}},
	})
	appErr := requireKind(t, err, utils.KindValidation)
	assert.Contains(t, appErr.Message, "nobody@test.com")
}

func TestCreateFranchiseDuplicateName(t *testing.T) {
	env := newTestEnv()
	admin := env.admin(t)
	createFranchise(t, env, admin, "twin")

	_, err := env.svc.Franchise.CreateFranchise(context.Background(), admin, &request.CreateFranchiseRequest{Name: "twin"})
	requireKind(t, err, utils.KindValidation)
}

func TestListFranchisesPagination(t *testing.T) {
	env := newTestEnv()
	admin := env.admin(t)
	for i := 0; i < 5; i++ {
		createFranchise(t, env, admin, fmt.Sprintf("pizza-%d", i))
	}
	createFranchise(t, env, admin, "burger-1")

	ctx := context.Background()

	page, err := env.svc.Franchise.ListFranchises(ctx, nil, &request.FranchiseListRequest{Page: 0, Limit: 2, Name: "pizza*"})
	require.NoError(t, err)
	require.Len(t, page.Franchises, 2)
	assert.True(t, page.More)
	assert.Equal(t, "pizza-0", page.Franchises[0].Name)

	last, err := env.svc.Franchise.ListFranchises(ctx, nil, &request.FranchiseListRequest{Page: 2, Limit: 2, Name: "pizza*"})
	require.NoError(t, err)
	require.Len(t, last.Franchises, 1)
	assert.False(t, last.More)
	assert.Equal(t, "pizza-4", last.Franchises[0].Name)

	all, err := env.svc.Franchise.ListFranchises(ctx, nil, &request.FranchiseListRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Franchises, 6)
	assert.False(t, all.More)
}

func TestListFranchisesPageBeyondRange(t *testing.T) {
	env := newTestEnv()
	admin := env.admin(t)
	createFranchise(t, env, admin, "only")

	page, err := env.svc.Franchise.ListFranchises(context.Background(), nil, &request.FranchiseListRequest{Page: math.MaxInt64 / 5, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Franchises)
	assert.False(t, page.More)
}

func TestListFranchisesHidesAdminsFromNonAdmins(t *testing.T) {
	env := newTestEnv()
	admin := env.admin(t)
	owner := env.identity(t, "owner@test.com")
	createFranchise(t, env, admin, "visible", owner.Email)

	ctx := context.Background()
	req := &request.FranchiseListRequest{Name: "visible"}

	anon, err := env.svc.Franchise.ListFranchises(ctx, nil, req)
	require.NoError(t, err)
	require.Len(t, anon.Franchises, 1)
	assert.Nil(t, anon.Franchises[0].Admins)

	asOwner, err := env.svc.Franchise.ListFranchises(ctx, owner, req)
	require.NoError(t, err)
	assert.Nil(t, asOwner.Franchises[0].Admins)

	asAdmin, err := env.svc.Franchise.ListFranchises(ctx, admin, req)
	require.NoError(t, err)
	require.Len(t, asAdmin.Franchises[0].Admins, 1)
	assert.Equal(t, owner.Email, asAdmin.Franchises[0].Admins[0].Email)
}

func TestListUserFranchises(t *testing.T) {
	env := newTestEnv()
	admin := env.admin(t)
	owner := env.identity(t, "owner@test.com")
	stranger := env.identity(t, "stranger@test.com")
	f := createFranchise(t, env, admin, "mine", owner.Email)
	createFranchise(t, env, admin, "not-mine")

	ctx := context.Background()

	own, err := env.svc.Franchise.ListUserFranchises(ctx, owner, owner.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, f.ID, own[0].ID)

	byAdmin, err := env.svc.Franchise.ListUserFranchises(ctx, admin, owner.ID)
	require.NoError(t, err)
	assert.Len(t, byAdmin, 1)

	byStranger, err := env.svc.Franchise.ListUserFranchises(ctx, stranger, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, byStranger)
	assert.NotNil(t, byStranger)
}

func TestDeleteFranchise(t *testing.T) {
	env := newTestEnv()
	admin := env.admin(t)
	diner := env.identity(t, "diner@test.com")
	f := createFranchise(t, env, admin, "doomed")
	ctx := context.Background()

	err := env.svc.Franchise.DeleteFranchise(ctx, diner, f.ID)
	appErr := requireKind(t, err, utils.KindForbidden)
	assert.Equal(t, "unable to delete a franchise", appErr.Message)

	require.NoError(t, env.svc.Franchise.DeleteFranchise(ctx, admin, f.ID))

	err = env.svc.Franchise.DeleteFranchise(ctx, admin, f.ID)
	requireKind(t, err, utils.KindNotFound)
}

func TestStoreLifecycle(t *testing.T) {
	env := newTestEnv()
	admin := env.admin(t)
	owner := env.identity(t, "owner@test.com")
	f := createFranchise(t, env, admin, "stores", owner.Email)

	// the franchisee grant only reaches a fresh token
	owner = env.relogin(t, owner.Email)

	ctx := context.Background()
	store, err := env.svc.Franchise.CreateStore(ctx, owner, f.ID, &request.CreateStoreRequest{Name: "SLC"})
	require.NoError(t, err)
	assert.Equal(t, "SLC", store.Name)
	assert.Equal(t, f.ID, store.FranchiseID)

	list, err := env.svc.Franchise.ListFranchises(ctx, nil, &request.FranchiseListRequest{Name: "stores"})
	require.NoError(t, err)
	require.Len(t, list.Franchises[0].Stores, 1)

	require.NoError(t, env.svc.Franchise.DeleteStore(ctx, owner, f.ID, store.ID))

	err = env.svc.Franchise.DeleteStore(ctx, owner, f.ID, store.ID)
	requireKind(t, err, utils.KindNotFound)
}

func TestStoreAccessIsScopedToFranchise(t *testing.T) {
	env := newTestEnv()
	admin := env.admin(t)
	mine := createFranchise(t, env, admin, "mine")
	theirs := createFranchise(t, env, admin, "theirs")

	owner := env.identity(t, "owner@test.com", entity.RoleAssignment{Role: entity.RoleFranchisee, ObjectID: mine.ID})
	ctx := context.Background()

	_, err := env.svc.Franchise.CreateStore(ctx, owner, theirs.ID, &request.CreateStoreRequest{Name: "x"})
	appErr := requireKind(t, err, utils.KindForbidden)
	assert.Equal(t, "unable to create a store", appErr.Message)

	store, err := env.svc.Franchise.CreateStore(ctx, admin, theirs.ID, &request.CreateStoreRequest{Name: "x"})
	require.NoError(t, err)

	err = env.svc.Franchise.DeleteStore(ctx, owner, theirs.ID, store.ID)
	appErr = requireKind(t, err, utils.KindForbidden)
	assert.Equal(t, "unable to delete a store", appErr.Message)

	// a store id under the wrong franchise is not found
	err = env.svc.Franchise.DeleteStore(ctx, admin, mine.ID, store.ID)
	requireKind(t, err, utils.KindNotFound)
}

func TestCreateStoreUnknownFranchise(t *testing.T) {
	env := newTestEnv()
	admin := env.admin(t)

	_, err := env.svc.Franchise.CreateStore(context.Background(), admin, 999, &request.CreateStoreRequest{Name: "x"})
	requireKind(t, err, utils.KindNotFound)
}
