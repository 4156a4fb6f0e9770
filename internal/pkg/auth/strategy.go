package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid auth token")

type Strategy interface {
	IssueToken(userID uuid.UUID) (string, error)
	ParseToken(token string) (uuid.UUID, error)
	Name() string
}

type Options struct {
	TTL    time.Duration
	Issuer string
}
