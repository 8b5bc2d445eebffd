package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
)

const issuer = "balcao"

// Claims is the JWT payload. Permissions are not embedded; they are derived
// from the role every time a token is parsed.
type Claims struct {
	EmployeeID uuid.UUID `json:"employee_id"`
	Name       string    `json:"name"`
	Role       Role      `json:"role"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for the actor.
func (m *TokenManager) Issue(a Actor) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := Claims{
		EmployeeID: a.EmployeeID,
		Name:       a.Name,
		Role:       a.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   a.EmployeeID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}

	return signed, expiresAt, nil
}

// Parse validates a token and rebuilds the actor it was issued for.
func (m *TokenManager) Parse(tokenString string) (Actor, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Actor{}, fmt.Errorf("%w: %w", apperr.ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Actor{}, fmt.Errorf("%w: %w", apperr.ErrUnauthenticated, jwt.ErrTokenInvalidClaims)
	}

	if claims.EmployeeID == uuid.Nil || !claims.Role.Valid() {
		return Actor{}, fmt.Errorf("%w: %w", apperr.ErrUnauthenticated, errors.New("token has no valid employee"))
	}

	return NewActor(claims.EmployeeID, claims.Name, claims.Role), nil
}
