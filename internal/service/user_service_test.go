package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/go-sql-driver/mysql"

	"food-order-service/internal/entity"
)

type fakeUserStore struct {
	mu     sync.Mutex
	users  map[int64]*entity.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*entity.User), nextID: 1}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.users {
		if existing.Email == user.Email {
			return nil, &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
		}
	}

	saved := *user
	saved.ID = f.nextID
	f.nextID++
	f.users[saved.ID] = &saved
	return &saved, nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserStore) GetUsers(ctx context.Context) ([]entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	users := make([]entity.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, *user)
	}
	return users, nil
}

func (f *fakeUserStore) SetUserRole(ctx context.Context, id int64, role string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return false, nil
	}
	user.Role = role
	return true, nil
}

func (f *fakeUserStore) DeleteUser(ctx context.Context, id int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	delete(f.users, id)
	return user, nil
}

func TestCreateUser_ForcesCustomerRole(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	created, err := svc.CreateUser(context.Background(), &entity.User{
		Username: "eve",
		Email:    "eve@x.com",
		Role:     entity.RoleAdmin, // must not be honored
	})
	if err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}

	if created.Role != entity.RoleCustomer {
		t.Errorf("Expected role %s, got %s", entity.RoleCustomer, created.Role)
	}
}

func TestCreateUser_DuplicateEmailConflicts(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	if _, err := svc.CreateUser(context.Background(), &entity.User{Email: "a@x.com"}); err != nil {
		t.Fatalf("First create failed: %v", err)
	}

	_, err := svc.CreateUser(context.Background(), &entity.User{Email: "a@x.com"})
	if !errors.Is(err, entity.ErrConflict) {
		t.Errorf("Expected ErrConflict, got %v", err)
	}
}

func TestIsAdmin(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)

	admin, _ := store.CreateUser(context.Background(), &entity.User{Email: "admin@x.com", Role: entity.RoleAdmin})
	store.users[admin.ID].Role = entity.RoleAdmin
	store.CreateUser(context.Background(), &entity.User{Email: "user@x.com", Role: entity.RoleCustomer})

	isAdmin, err := svc.IsAdmin(context.Background(), "admin@x.com")
	if err != nil || !isAdmin {
		t.Errorf("Expected admin@x.com to be admin, got %v / %v", isAdmin, err)
	}

	isAdmin, err = svc.IsAdmin(context.Background(), "user@x.com")
	if err != nil || isAdmin {
		t.Errorf("Expected user@x.com not to be admin, got %v / %v", isAdmin, err)
	}

	// Unknown emails are simply not admins
	isAdmin, err = svc.IsAdmin(context.Background(), "ghost@x.com")
	if err != nil || isAdmin {
		t.Errorf("Expected unknown email not to be admin, got %v / %v", isAdmin, err)
	}
}

func TestPromoteToAdmin(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)

	created, _ := svc.CreateUser(context.Background(), &entity.User{Email: "a@x.com"})

	if err := svc.PromoteToAdmin(context.Background(), created.ID); err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}

	isAdmin, _ := svc.IsAdmin(context.Background(), "a@x.com")
	if !isAdmin {
		t.Error("Expected a@x.com to be admin after promotion")
	}

	err := svc.PromoteToAdmin(context.Background(), 999)
	if !errors.Is(err, entity.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)

	created, _ := svc.CreateUser(context.Background(), &entity.User{Email: "a@x.com"})

	removed, err := svc.DeleteUser(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}
	if removed.Email != "a@x.com" {
		t.Errorf("Expected removed user a@x.com, got %s", removed.Email)
	}

	_, err = svc.DeleteUser(context.Background(), created.ID)
	if !errors.Is(err, entity.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on repeat delete, got %v", err)
	}
}
