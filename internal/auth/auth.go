// Package auth provides credential verification and JWT session tokens for
// the admin API. Credential storage is behind the Verifier interface so the
// in-memory demo store can be swapped for a real user database.
package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Role is an authenticated user's permission level.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleLoanOfficer Role = "loan_officer"
)

// Identity describes an authenticated user. It never carries credentials.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// CanManage reports whether the identity may access admin endpoints.
func (i *Identity) CanManage() bool {
	return i.Role == RoleAdmin || i.Role == RoleLoanOfficer
}

var (
	// ErrInvalidCredentials is returned for unknown emails and wrong
	// passwords alike, so callers can't probe which emails exist.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken is returned for malformed, tampered, or expired
	// session tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// Verifier checks a login attempt and returns the matching identity.
type Verifier interface {
	Verify(ctx context.Context, email, password string) (*Identity, error)
}

type memoryUser struct {
	identity Identity
	hash     []byte
}

// MemoryStore is an in-memory Verifier with bcrypt-hashed passwords.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]memoryUser // keyed by lowercase email
}

// NewMemoryStore creates an empty credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]memoryUser)}
}

// Seed adds or replaces a user, hashing the password with bcrypt.
func (s *MemoryStore) Seed(id, email, name string, role Role, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	key := strings.ToLower(strings.TrimSpace(email))
	s.mu.Lock()
	s.users[key] = memoryUser{
		identity: Identity{ID: id, Email: key, Name: name, Role: role},
		hash:     hash,
	}
	s.mu.Unlock()
	return nil
}

// SeedDemoUsers installs the stock admin and loan-officer accounts with the
// given password. Meant for local and demo deployments only.
func (s *MemoryStore) SeedDemoUsers(password string) error {
	if err := s.Seed("1", "admin@usabank.com", "System Administrator", RoleAdmin, password); err != nil {
		return err
	}
	return s.Seed("2", "loanofficer@usabank.com", "Loan Officer", RoleLoanOfficer, password)
}

// Verify implements Verifier.
func (s *MemoryStore) Verify(_ context.Context, email, password string) (*Identity, error) {
	key := strings.ToLower(strings.TrimSpace(email))
	s.mu.RLock()
	u, ok := s.users[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.hash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	id := u.identity
	return &id, nil
}

type contextKey struct{}

// WithIdentity returns a context carrying the authenticated identity.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity attached by the auth middleware, if any.
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(*Identity)
	return id, ok
}
