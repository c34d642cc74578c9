package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/davidsantoszx/gerenciadorsalario/internal/models"
	"github.com/davidsantoszx/gerenciadorsalario/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrSessionInvalid covers missing, expired and revoked sessions.
	ErrSessionInvalid = errors.New("session invalid or expired")
)

// Options configures the auth service.
type Options struct {
	Secret     string
	TTL        time.Duration
	BcryptCost int
}

// Service handles registration, credential checks and the session
// lifecycle. Sessions live as revocable database rows; the value handed
// to the client is a signed JWT naming the session row.
type Service struct {
	users    *repository.UserRepository
	sessions *repository.SessionRepository
	opts     Options
}

func NewService(users *repository.UserRepository, sessions *repository.SessionRepository, opts Options) *Service {
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.BcryptCost <= 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{users: users, sessions: sessions, opts: opts}
}

// TTL returns the configured session lifetime.
func (s *Service) TTL() time.Duration {
	return s.opts.TTL
}

// Register hashes senha and persists a new user. Field presence and
// password strength are checked by the caller; Register only guards
// against duplicate emails.
func (s *Service) Register(nome, email, senha string) (*models.User, error) {
	existing, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(senha), s.opts.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Nome: nome, Email: email, PasswordHash: string(hash)}
	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate verifies email and senha, returning the user on success.
func (s *Service) Authenticate(email, senha string) (*models.User, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(senha)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	UserID    uint   `json:"user_id"`
	jwt.RegisteredClaims
}

// Open creates a session for the user and returns the signed token to be
// stored in the session cookie.
func (s *Service) Open(userID uint) (string, error) {
	now := time.Now()
	sess := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(s.opts.TTL),
	}
	if err := s.sessions.Create(sess); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	claims := &sessionClaims{
		SessionID: sess.ID,
		UserID:    userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.opts.Secret))
}

// Resolve validates the token and returns the user bound to its session.
// The session row must exist, be unrevoked and unexpired.
func (s *Service) Resolve(token string) (*models.User, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, ErrSessionInvalid
	}

	sess, err := s.sessions.FindByID(claims.SessionID)
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	if sess == nil || sess.Revoked || time.Now().After(sess.ExpiresAt) {
		return nil, ErrSessionInvalid
	}

	user, err := s.users.FindByID(sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrSessionInvalid
	}
	return user, nil
}

// Close revokes the session named by the token. An already invalid token
// is not an error; logout is idempotent.
func (s *Service) Close(token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return nil
	}
	return s.sessions.Revoke(claims.SessionID)
}

func (s *Service) parse(token string) (*sessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
