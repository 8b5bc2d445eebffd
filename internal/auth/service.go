package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
)

// Employee is the subset of an employee record needed to sign in.
type Employee struct {
	ID           uuid.UUID
	Username     string
	Email        string
	FullName     string
	Role         Role
	PasswordHash string
	Active       bool
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=auth
type Repository interface {
	// FindByLogin looks an employee up by username or email.
	FindByLogin(ctx context.Context, login string) (*Employee, error)
}

// ErrInvalidCredentials hides whether the login or the password was wrong.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthenticated)

type Service struct {
	repo   Repository
	tokens *TokenManager
}

func NewService(repo Repository, tokens *TokenManager) *Service {
	return &Service{repo: repo, tokens: tokens}
}

type LoginParams struct {
	Login    string `validate:"required"`
	Password string `validate:"required"`
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	Actor     Actor
}

func (s *Service) Login(ctx context.Context, params LoginParams) (*Session, error) {
	if err := apperr.Validate(params); err != nil {
		return nil, err
	}

	emp, err := s.repo.FindByLogin(ctx, params.Login)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, fmt.Errorf("finding employee: %w", err)
	}

	if !emp.Active {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(params.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	actor := NewActor(emp.ID, emp.FullName, emp.Role)

	token, expiresAt, err := s.tokens.Issue(actor)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, ExpiresAt: expiresAt, Actor: actor}, nil
}

// Authenticate resolves a bearer token into an actor.
func (s *Service) Authenticate(token string) (Actor, error) {
	return s.tokens.Parse(token)
}

// HashPassword is used when seeding employees.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	return string(hash), nil
}
