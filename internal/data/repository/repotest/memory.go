// Package repotest provides in-memory implementations of the repository
// interfaces for service and handler tests.
package repotest

import (
	"context"
	"errors"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"pizza-service/internal/data/entity"
	"pizza-service/internal/data/repository"

	"github.com/google/uuid"
)

// errNegativeOffset mirrors Postgres rejecting OFFSET below zero
var errNegativeOffset = errors.New("OFFSET must not be negative")

// Store is the shared state behind every fake repository.
type Store struct {
	mu sync.Mutex

	nextID     int64
	users      map[int64]*entity.User
	sessions   map[uuid.UUID]*entity.Session
	franchises map[int64]*entity.Franchise
	stores     map[int64]*entity.Store
	menu       []*entity.MenuItem
	orders     []*entity.Order

	// FailOrderUpdates makes UpdateFulfillment return an error
	FailOrderUpdates bool
}

// NewRepository returns a repository bundle backed by a fresh Store.
func NewRepository() (*repository.Repository, *Store) {
	s := &Store{
		users:      make(map[int64]*entity.User),
		sessions:   make(map[uuid.UUID]*entity.Session),
		franchises: make(map[int64]*entity.Franchise),
		stores:     make(map[int64]*entity.Store),
	}
	return &repository.Repository{
		User:      &userRepo{s},
		Session:   &sessionRepo{s},
		Franchise: &franchiseRepo{s},
		Store:     &storeRepo{s},
		Menu:      &menuRepo{s},
		Order:     &orderRepo{s},
	}, s
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// Grant adds a role directly, the way an operator would in the database.
func (s *Store) Grant(userID int64, role entity.RoleAssignment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[userID]; ok {
		u.Roles = u.Roles.With(role)
	}
}

// Session returns a copy of the registry record for tokenID.
func (s *Store) Session(tokenID uuid.UUID) (entity.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[tokenID]
	if !ok {
		return entity.Session{}, false
	}
	return *sess, true
}

// Orders returns copies of every stored order.
func (s *Store) Orders() []entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = *o
	}
	return out
}

func copyUser(u *entity.User) *entity.User {
	c := *u
	c.Roles = entity.NewRoleSet(u.Roles.List()...)
	return &c
}

// ---------------- users ----------------

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	now := time.Now()
	user.ID = r.s.id()
	user.CreatedAt, user.UpdatedAt = now, now
	r.s.users[user.ID] = copyUser(user)
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return copyUser(u), nil
	}
	return nil, nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (r *userRepo) Update(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, u := range r.s.users {
		if u.ID != user.ID && u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	existing.Name = user.Name
	existing.Email = user.Email
	existing.PasswordHash = user.PasswordHash
	existing.UpdatedAt = time.Now()
	user.UpdatedAt = existing.UpdatedAt
	return nil
}

func (r *userRepo) AddRole(_ context.Context, userID int64, role entity.RoleAssignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.Roles = u.Roles.With(role)
	return nil
}

// ---------------- sessions ----------------

type sessionRepo struct{ s *Store }

func (r *sessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *session
	r.s.sessions[session.TokenID] = &c
	return nil
}

func (r *sessionRepo) FindValidSession(_ context.Context, tokenID uuid.UUID) (*entity.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sess, ok := r.s.sessions[tokenID]
	if !ok || sess.RevokedAt != nil {
		return nil, nil
	}
	c := *sess
	return &c, nil
}

func (r *sessionRepo) Revoke(_ context.Context, tokenID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sess, ok := r.s.sessions[tokenID]
	if !ok || sess.RevokedAt != nil {
		return repository.ErrNotFound
	}
	now := time.Now()
	sess.RevokedAt = &now
	return nil
}

func (r *sessionRepo) CleanRevokedSessions(_ context.Context, revokedBefore time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, sess := range r.s.sessions {
		if sess.RevokedAt != nil && sess.RevokedAt.Before(revokedBefore) {
			delete(r.s.sessions, id)
			n++
		}
	}
	return n, nil
}

// ---------------- franchises & stores ----------------

type franchiseRepo struct{ s *Store }

func (r *franchiseRepo) Create(_ context.Context, franchise *entity.Franchise) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.franchises {
		if f.Name == franchise.Name {
			return repository.ErrDuplicate
		}
	}
	franchise.ID = r.s.id()
	r.s.franchises[franchise.ID] = &entity.Franchise{ID: franchise.ID, Name: franchise.Name}
	for _, admin := range franchise.Admins {
		if u, ok := r.s.users[admin.ID]; ok {
			u.Roles = u.Roles.With(entity.RoleAssignment{Role: entity.RoleFranchisee, ObjectID: franchise.ID})
		}
	}
	return nil
}

// detail builds a franchise with admins and stores; caller holds the lock
func (r *franchiseRepo) detail(f *entity.Franchise) *entity.Franchise {
	out := &entity.Franchise{ID: f.ID, Name: f.Name, Admins: []*entity.FranchiseAdmin{}, Stores: []*entity.Store{}}

	userIDs := make([]int64, 0, len(r.s.users))
	for id := range r.s.users {
		userIDs = append(userIDs, id)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })
	for _, id := range userIDs {
		u := r.s.users[id]
		if u.Roles.HasScoped(entity.RoleFranchisee, f.ID) {
			out.Admins = append(out.Admins, &entity.FranchiseAdmin{ID: u.ID, Name: u.Name, Email: u.Email})
		}
	}

	for _, st := range sortedStores(r.s.stores) {
		if st.FranchiseID == f.ID {
			c := *st
			out.Stores = append(out.Stores, &c)
		}
	}
	return out
}

func (r *franchiseRepo) sorted() []*entity.Franchise {
	out := make([]*entity.Franchise, 0, len(r.s.franchises))
	for _, f := range r.s.franchises {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *franchiseRepo) FindByID(_ context.Context, id int64) (*entity.Franchise, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.franchises[id]
	if !ok {
		return nil, nil
	}
	return r.detail(f), nil
}

func (r *franchiseRepo) FindAll(_ context.Context, nameLike string, limit, offset int) ([]*entity.Franchise, error) {
	if offset < 0 {
		return nil, errNegativeOffset
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	pattern := strings.ReplaceAll(nameLike, "%", "*")
	out := []*entity.Franchise{}
	skipped := 0
	for _, f := range r.sorted() {
		if ok, _ := path.Match(pattern, f.Name); !ok {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, r.detail(f))
	}
	return out, nil
}

func (r *franchiseRepo) FindByAdmin(_ context.Context, userID int64) ([]*entity.Franchise, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Franchise{}
	u, ok := r.s.users[userID]
	if !ok {
		return out, nil
	}
	for _, f := range r.sorted() {
		if u.Roles.HasScoped(entity.RoleFranchisee, f.ID) {
			out = append(out, r.detail(f))
		}
	}
	return out, nil
}

func (r *franchiseRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.franchises[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.franchises, id)

	storeIDs := map[int64]bool{}
	for sid, st := range r.s.stores {
		if st.FranchiseID == id {
			storeIDs[sid] = true
			delete(r.s.stores, sid)
		}
	}

	for _, u := range r.s.users {
		var kept []entity.RoleAssignment
		for _, a := range u.Roles.List() {
			if a.Role == entity.RoleFranchisee && a.ObjectID == id {
				continue
			}
			if a.Role == entity.RoleStoreAdmin && storeIDs[a.ObjectID] {
				continue
			}
			kept = append(kept, a)
		}
		u.Roles = entity.NewRoleSet(kept...)
	}
	return nil
}

type storeRepo struct{ s *Store }

func sortedStores(stores map[int64]*entity.Store) []*entity.Store {
	out := make([]*entity.Store, 0, len(stores))
	for _, st := range stores {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *storeRepo) Create(_ context.Context, store *entity.Store) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	store.ID = r.s.id()
	c := *store
	r.s.stores[store.ID] = &c
	return nil
}

func (r *storeRepo) FindByID(_ context.Context, id int64) (*entity.Store, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.stores[id]
	if !ok {
		return nil, nil
	}
	c := *st
	return &c, nil
}

func (r *storeRepo) Delete(_ context.Context, franchiseID, storeID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.stores[storeID]
	if !ok || st.FranchiseID != franchiseID {
		return repository.ErrNotFound
	}
	delete(r.s.stores, storeID)
	return nil
}

// ---------------- menu & orders ----------------

type menuRepo struct{ s *Store }

func (r *menuRepo) FindAll(_ context.Context) ([]*entity.MenuItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.MenuItem, len(r.s.menu))
	for i, item := range r.s.menu {
		c := *item
		out[i] = &c
	}
	return out, nil
}

func (r *menuRepo) FindByIDs(_ context.Context, ids []int64) (map[int64]*entity.MenuItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make(map[int64]*entity.MenuItem)
	for _, item := range r.s.menu {
		if want[item.ID] {
			c := *item
			out[item.ID] = &c
		}
	}
	return out, nil
}

func (r *menuRepo) Create(_ context.Context, item *entity.MenuItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item.ID = r.s.id()
	c := *item
	r.s.menu = append(r.s.menu, &c)
	return nil
}

type orderRepo struct{ s *Store }

func copyOrder(o *entity.Order) *entity.Order {
	c := *o
	c.Items = make([]*entity.OrderItem, len(o.Items))
	for i, item := range o.Items {
		ic := *item
		c.Items[i] = &ic
	}
	return &c
}

func (r *orderRepo) Create(_ context.Context, order *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	order.ID = r.s.id()
	order.CreatedAt = time.Now()
	for _, item := range order.Items {
		item.ID = r.s.id()
		item.OrderID = order.ID
	}
	r.s.orders = append(r.s.orders, copyOrder(order))
	return nil
}

func (r *orderRepo) FindByDinerID(_ context.Context, dinerID int64, limit, offset int) ([]*entity.Order, error) {
	if offset < 0 {
		return nil, errNegativeOffset
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Order{}
	skipped := 0
	for _, o := range r.s.orders {
		if o.DinerID != dinerID {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, copyOrder(o))
	}
	return out, nil
}

// UpdateFulfillment fails on a done context the way a pgx query does
func (r *orderRepo) UpdateFulfillment(ctx context.Context, order *entity.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailOrderUpdates {
		return context.DeadlineExceeded
	}
	for _, o := range r.s.orders {
		if o.ID == order.ID {
			o.Status = order.Status
			o.FulfillmentJWT = order.FulfillmentJWT
			o.ReportURL = order.ReportURL
			return nil
		}
	}
	return repository.ErrNotFound
}
