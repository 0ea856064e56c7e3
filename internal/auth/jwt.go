package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	RoleUser          = "User"
	RoleAdministrator = "Administrator"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the authenticated identity through a request. Subject in the
// registered claims holds the numeric user id; UserID mirrors it parsed.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// TokenConfig is the issuer/validator trust domain: one symmetric key, one
// issuer, one audience.
type TokenConfig struct {
	Secret   []byte
	Issuer   string
	Audience string
	TTL      time.Duration
}

type Identity struct {
	UserID int64
	Email  string
	Name   string
	Role   string
}

func (i Identity) IsAdministrator() bool { return i.Role == RoleAdministrator }

func IssueToken(id Identity, cfg TokenConfig) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id.UserID, 10),
			Issuer:    cfg.Issuer,
			Audience:  jwt.ClaimStrings{cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
			ID:        uuid.NewString(),
		},
		Email: id.Email,
		Name:  id.Name,
		Role:  id.Role,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cfg.Secret)
}

// ParseToken validates signature, issuer, audience and expiry. Any failure,
// including a subject that is not a positive integer, yields ErrInvalidToken.
func ParseToken(tokenString string, cfg TokenConfig) (Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return cfg.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithAudience(cfg.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return Identity{}, ErrInvalidToken
	}
	if claims.Role == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{
		UserID: userID,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   claims.Role,
	}, nil
}
