package test

import (
	"errors"

	"github.com/google/uuid"

	pkgAuth "github.com/polkiloo/printshop/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues tokens of the form "token-<uuid>" unless overridden.
type StrategyStub struct {
	IssueFn func(uuid.UUID) (string, error)
	ParseFn func(string) (uuid.UUID, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(userID uuid.UUID) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(userID)
	}
	return "token-" + userID.String(), nil
}

// ParseToken parses tokens issued by IssueToken.
func (s StrategyStub) ParseToken(token string) (uuid.UUID, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	const prefix = "token-"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return uuid.Nil, pkgAuth.ErrInvalidToken
	}
	id, err := uuid.Parse(token[len(prefix):])
	if err != nil {
		return uuid.Nil, pkgAuth.ErrInvalidToken
	}
	return id, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
