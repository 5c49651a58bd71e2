package user

import (
	"context"
	"testing"
	"time"

	"github.com/cistech/hrms-backend-go/internal/domain/quota"
	"github.com/cistech/hrms-backend-go/internal/domain/request"
	"github.com/cistech/hrms-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeTxManager runs the function directly and counts invocations so
// tests can assert the guards and the delete shared one transaction.
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeUserRepo struct {
	users   map[string]user.User
	deleted []string
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	u.ID = "u-" + u.Email
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error)         { return nil, nil }
func (f *fakeUserRepo) ListManagers(ctx context.Context) ([]user.User, error) { return nil, nil }
func (f *fakeUserRepo) Update(ctx context.Context, req user.UpdateUserRequest) error {
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	delete(f.users, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeUserRepo) ManagerOf(ctx context.Context, userID string) (user.User, error) {
	return user.User{}, user.ErrNoManagerAssigned
}

type fakeQuotaRepo struct {
	owners map[string]bool
}

func (f *fakeQuotaRepo) GetOrCreate(ctx context.Context, userID string, year int) (quota.Quota, error) {
	return quota.Quota{}, nil
}
func (f *fakeQuotaRepo) ApplyDelta(ctx context.Context, userID string, year int, counter quota.Counter, delta int) error {
	return nil
}
func (f *fakeQuotaRepo) Upsert(ctx context.Context, req quota.UpsertQuotaRequest) error { return nil }
func (f *fakeQuotaRepo) Delete(ctx context.Context, userID string, year int) error      { return nil }
func (f *fakeQuotaRepo) ExistsByUser(ctx context.Context, userID string) (bool, error) {
	return f.owners[userID], nil
}

type fakeRequestRepo struct {
	owners map[string]bool
}

func (f *fakeRequestRepo) Create(ctx context.Context, req request.Request) (request.Request, error) {
	return req, nil
}
func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (request.Request, error) {
	return request.Request{}, request.ErrRequestNotFound
}
func (f *fakeRequestRepo) Decide(ctx context.Context, id string, stage request.Stage, status request.Status, deciderID string, decidedAt time.Time) error {
	return nil
}
func (f *fakeRequestRepo) ListByOwner(ctx context.Context, userID string) ([]request.Request, error) {
	return nil, nil
}
func (f *fakeRequestRepo) ListPendingForManager(ctx context.Context, managerID string) ([]request.Request, error) {
	return nil, nil
}
func (f *fakeRequestRepo) ListPendingHR(ctx context.Context) ([]request.Request, error) {
	return nil, nil
}
func (f *fakeRequestRepo) ListByManagerTeam(ctx context.Context, managerID string) ([]request.Request, error) {
	return nil, nil
}
func (f *fakeRequestRepo) ExistsByOwner(ctx context.Context, userID string) (bool, error) {
	return f.owners[userID], nil
}

func newTestService() (*Service, *fakeUserRepo, *fakeQuotaRepo, *fakeRequestRepo) {
	svc, _, users, quotas, requests := newTestServiceWithTx()
	return svc, users, quotas, requests
}

func newTestServiceWithTx() (*Service, *fakeTxManager, *fakeUserRepo, *fakeQuotaRepo, *fakeRequestRepo) {
	tx := &fakeTxManager{}
	users := &fakeUserRepo{users: map[string]user.User{}}
	quotas := &fakeQuotaRepo{owners: map[string]bool{}}
	requests := &fakeRequestRepo{owners: map[string]bool{}}
	return NewService(tx, users, quotas, requests), tx, users, quotas, requests
}

func seedUser(users *fakeUserRepo, id, email, password string) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	users.users[id] = user.User{ID: id, Email: email, Name: "Test User", Role: user.RoleEmployee, PasswordHash: string(hash)}
}

func TestAuthenticate(t *testing.T) {
	svc, users, _, _ := newTestService()
	ctx := context.Background()
	seedUser(users, "u-1", "employee@example.com", "password")

	u, err := svc.Authenticate(ctx, user.LoginRequest{Email: "employee@example.com", Password: "password"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc, users, _, _ := newTestService()
	ctx := context.Background()
	seedUser(users, "u-1", "employee@example.com", "password")

	_, err := svc.Authenticate(ctx, user.LoginRequest{Email: "employee@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, user.LoginRequest{Email: "nobody@example.com", Password: "password"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestCreateHashesPassword(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, user.CreateUserRequest{
		Email:    "new@example.com",
		Name:     "New User",
		Role:     "EMPLOYEE",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret123")))
}

func TestDeleteBlockedByOwnedRequests(t *testing.T) {
	svc, users, _, requests := newTestService()
	ctx := context.Background()
	seedUser(users, "u-1", "employee@example.com", "password")
	requests.owners["u-1"] = true

	err := svc.Delete(ctx, "u-1")
	assert.ErrorIs(t, err, user.ErrUserOwnsRequests)
	assert.Empty(t, users.deleted)
}

func TestDeleteBlockedByOwnedQuotas(t *testing.T) {
	svc, users, quotas, _ := newTestService()
	ctx := context.Background()
	seedUser(users, "u-1", "employee@example.com", "password")
	quotas.owners["u-1"] = true

	err := svc.Delete(ctx, "u-1")
	assert.ErrorIs(t, err, user.ErrUserOwnsQuotas)
	assert.Empty(t, users.deleted)
}

func TestDeleteUnowned(t *testing.T) {
	svc, users, _, _ := newTestService()
	ctx := context.Background()
	seedUser(users, "u-1", "employee@example.com", "password")

	err := svc.Delete(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u-1"}, users.deleted)
}

func TestDeleteRunsInTransaction(t *testing.T) {
	svc, tx, users, _, _ := newTestServiceWithTx()
	ctx := context.Background()
	seedUser(users, "u-1", "employee@example.com", "password")

	require.NoError(t, svc.Delete(ctx, "u-1"))
	assert.Equal(t, 1, tx.calls)
}

func TestDeleteGuardsRunInTransaction(t *testing.T) {
	svc, tx, users, _, requests := newTestServiceWithTx()
	ctx := context.Background()
	seedUser(users, "u-1", "employee@example.com", "password")
	requests.owners["u-1"] = true

	err := svc.Delete(ctx, "u-1")
	assert.ErrorIs(t, err, user.ErrUserOwnsRequests)

	// The ownership check itself ran inside the transaction, so a
	// request created concurrently cannot slip past it.
	assert.Equal(t, 1, tx.calls)
	assert.Empty(t, users.deleted)
}

func TestDeleteUnknownUser(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	err := svc.Delete(ctx, "missing")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
