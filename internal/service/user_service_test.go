package service

import (
	"context"
	"errors"
	"testing"
	"time"

	dom "taskboard/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type memUserRepo struct {
	users  map[string]dom.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]dom.User{}, nextID: 1}
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	u, ok := r.users[username]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *memUserRepo) Create(ctx context.Context, username, passwordHash string, role dom.Role) (dom.User, error) {
	if _, ok := r.users[username]; ok {
		return dom.User{}, &pgconn.PgError{Code: "23505"}
	}
	u := dom.User{
		ID:           r.nextID,
		Username:     username,
		Role:         role,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	r.nextID++
	r.users[username] = u
	return u, nil
}

func TestEnsureAdminSeedsWorkingAdmin(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx, "admin", "admin"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}

	// The seeded account must be able to log in with the configured password
	// and must carry the ADMIN role.
	u, err := svc.ValidateCredentials(ctx, "admin", "admin")
	if err != nil {
		t.Fatalf("seeded admin cannot log in: %v", err)
	}
	if u.Role != dom.RoleAdmin {
		t.Errorf("seeded admin role = %s, want ADMIN", u.Role)
	}
	if !dom.Authenticated(u.Role).IsAdmin() {
		t.Error("actor from seeded admin is not an admin")
	}

	if _, err := svc.ValidateCredentials(ctx, "admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
}

func TestEnsureAdminIdempotent(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx, "admin", "admin"); err != nil {
		t.Fatalf("first EnsureAdmin: %v", err)
	}
	hash := repo.users["admin"].PasswordHash

	if err := svc.EnsureAdmin(ctx, "admin", "changed"); err != nil {
		t.Fatalf("second EnsureAdmin: %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("EnsureAdmin created %d users, want 1", len(repo.users))
	}
	if repo.users["admin"].PasswordHash != hash {
		t.Error("EnsureAdmin rewrote the existing account's password")
	}
}

func TestRegisterCreatesPlainUser(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	u, err := svc.Register(ctx, "kanat", "s3cret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Role != dom.RoleUser {
		t.Errorf("registered role = %s, want USER", u.Role)
	}

	if _, err := svc.Register(ctx, "kanat", "other"); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("duplicate username: got %v, want ErrUsernameTaken", err)
	}
}
