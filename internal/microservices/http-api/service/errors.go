package service

import (
	"errors"
	"fmt"

	"cinelog/internal/catalog/tmdb"
	"cinelog/internal/microservices/http-api/repository"

	"github.com/google/uuid"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// invalidInput wraps ErrInvalidInput with a message safe to show the caller.
func invalidInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

// notFound maps store and catalog misses onto ErrNotFound and leaves other
// errors untouched.
func notFound(err error, what string) error {
	if repository.IsNotFound(err) || errors.Is(err, tmdb.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return err
}

// validID rejects ids that cannot name a row, so PostgreSQL never sees a
// malformed uuid literal.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
