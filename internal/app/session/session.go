package session

import (
	"context"
	"errors"

	"backoffice/internal/app/model"

	"github.com/golang-jwt/jwt"
)

var ErrInvalidToken = errors.New("invalid token")

type Creator interface {
	// Create a session for the admin, returning the bearer token
	Create(ctx context.Context, a *model.Admin) (string, error)
}

type Reader interface {
	// Read resolves a bearer token back to the admin
	Read(ctx context.Context, token string) (*model.Admin, error)
}

type Manager interface {
	Creator
	Reader
}

type Claims struct {
	jwt.StandardClaims
}
