package auth

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/davidsantoszx/gerenciadorsalario/internal/models"
	"github.com/davidsantoszx/gerenciadorsalario/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Session{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return NewService(
		repository.NewUserRepository(db),
		repository.NewSessionRepository(db),
		Options{Secret: "test-secret", TTL: time.Hour, BcryptCost: bcrypt.MinCost},
	)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.Register("Maria", "maria@example.com", "Senha1!")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected user id to be assigned")
	}
	if user.PasswordHash == "Senha1!" {
		t.Error("password stored in plaintext")
	}

	got, err := svc.Authenticate("maria@example.com", "Senha1!")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("Authenticate returned user %d, want %d", got.ID, user.ID)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.Register("Maria", "maria@example.com", "Senha1!")
	if err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	_, err = svc.Register("Outra Maria", "maria@example.com", "Outra2@")
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("second Register error = %v, want ErrDuplicateEmail", err)
	}

	// the first account must be untouched
	got, err := svc.Authenticate("maria@example.com", "Senha1!")
	if err != nil {
		t.Fatalf("Authenticate after duplicate failed: %v", err)
	}
	if got.ID != first.ID || got.Nome != "Maria" {
		t.Errorf("first user changed after duplicate registration: %+v", got)
	}
}

func TestAuthenticate_InvalidCredentials(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Register("Maria", "maria@example.com", "Senha1!"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := svc.Authenticate("maria@example.com", "errada"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Authenticate("ninguem@example.com", "Senha1!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: error = %v, want ErrInvalidCredentials", err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.Register("Maria", "maria@example.com", "Senha1!")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	token, err := svc.Open(user.ID)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	got, err := svc.Resolve(token)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("Resolve returned user %d, want %d", got.ID, user.ID)
	}

	if err := svc.Close(token); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := svc.Resolve(token); !errors.Is(err, ErrSessionInvalid) {
		t.Errorf("Resolve after Close: error = %v, want ErrSessionInvalid", err)
	}

	// closing again is a no-op
	if err := svc.Close(token); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestResolve_GarbageToken(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Resolve("nao-e-um-token"); !errors.Is(err, ErrSessionInvalid) {
		t.Errorf("Resolve(garbage) error = %v, want ErrSessionInvalid", err)
	}
}
