package auth

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/minimarks/minimarks/internal/config"
	"github.com/minimarks/minimarks/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestService_CreateUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.Auth{BcryptCost: 4})

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{
			name:     "valid user",
			username: "alice",
			password: "password12345",
			wantErr:  nil,
		},
		{
			name:     "missing username",
			username: "",
			password: "password12345",
			wantErr:  ErrUsernameRequired,
		},
		{
			name:     "missing password",
			username: "bob",
			password: "",
			wantErr:  ErrPasswordRequired,
		},
		{
			name:     "password too short",
			username: "bob",
			password: "short",
			wantErr:  ErrPasswordTooShort,
		},
		{
			name:     "username too short",
			username: "ab",
			password: "password12345",
			wantErr:  ErrUsernameInvalid,
		},
		{
			name:     "username with invalid characters",
			username: "bad user!",
			password: "password12345",
			wantErr:  ErrUsernameInvalid,
		},
		{
			name:     "duplicate username",
			username: "alice",
			password: "password12345",
			wantErr:  ErrUserExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.CreateUser(tt.username, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CreateUser() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if user.ID == 0 {
					t.Error("created user has zero ID")
				}
				if user.PasswordHash == tt.password {
					t.Error("password stored in plaintext")
				}
			}
		})
	}
}

func TestService_Authenticate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.Auth{BcryptCost: 4})

	created, err := svc.CreateUser("alice", "password12345")
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	user, err := svc.Authenticate("alice", "password12345")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if user.ID != created.ID {
		t.Errorf("authenticated user ID = %d, want %d", user.ID, created.ID)
	}

	if _, err := svc.Authenticate("alice", "wrongpassword"); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("Authenticate() with wrong password = %v, want %v", err, ErrInvalidPassword)
	}

	if _, err := svc.Authenticate("nobody", "password12345"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Authenticate() with unknown user = %v, want %v", err, ErrUserNotFound)
	}
}

func TestService_Authenticate_RecordsLastLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.Auth{BcryptCost: 4})

	if _, err := svc.CreateUser("alice", "password12345"); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if _, err := svc.Authenticate("alice", "password12345"); err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}

	stored, err := svc.GetUserByUsername("alice")
	if err != nil {
		t.Fatalf("GetUserByUsername() error = %v", err)
	}
	if stored.LastLoginAt == nil {
		t.Error("LastLoginAt not set after authentication")
	}
}

func TestService_HasUsers(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.Auth{BcryptCost: 4})

	has, err := svc.HasUsers()
	if err != nil {
		t.Fatalf("HasUsers() error = %v", err)
	}
	if has {
		t.Error("HasUsers() = true on empty database")
	}

	if _, err := svc.CreateUser("alice", "password12345"); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	has, err = svc.HasUsers()
	if err != nil {
		t.Fatalf("HasUsers() error = %v", err)
	}
	if !has {
		t.Error("HasUsers() = false after creating a user")
	}
}

func TestService_GetUserByUsername(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.Auth{BcryptCost: 4})

	if _, err := svc.CreateUser("alice", "password12345"); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	user, err := svc.GetUserByUsername("alice")
	if err != nil {
		t.Fatalf("GetUserByUsername() error = %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("username = %q, want %q", user.Username, "alice")
	}

	if _, err := svc.GetUserByUsername("nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUserByUsername() with unknown user = %v, want %v", err, ErrUserNotFound)
	}
}
