package users

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samuelboada21/PruebaCVisual/internal/auth"
	"github.com/samuelboada21/PruebaCVisual/internal/shared/apperr"
)

type Service struct {
	repo     Repository
	tokenCfg auth.TokenConfig
	logger   *slog.Logger
}

func NewService(repo Repository, tokenCfg auth.TokenConfig, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, tokenCfg: tokenCfg, logger: logger}
}

type RegisterInput struct {
	Name     string
	Surname  string
	Email    string
	Password string
}

// Register checks the email before hashing so a duplicate never pays the KDF
// cost; the unique index on users.email is the authority under races.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	taken, err := s.repo.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, apperr.Wrap(err)
	}
	if taken {
		return nil, apperr.InvalidErr("email already registered", nil)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Wrap(err)
	}

	u := &User{
		Name:         in.Name,
		Surname:      in.Surname,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         auth.RoleUser,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, apperr.InvalidErr("email already registered", nil)
		}
		return nil, apperr.Wrap(err)
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", u.ID, "email", u.Email)
	return u, nil
}

// Login returns a signed bearer token. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", apperr.UnauthorizedErr("invalid credentials")
		}
		return "", apperr.Wrap(err)
	}

	if !VerifyPassword(password, u.PasswordHash) {
		return "", apperr.UnauthorizedErr("invalid credentials")
	}

	token, err := auth.IssueToken(auth.Identity{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
	}, s.tokenCfg)
	if err != nil {
		return "", apperr.Wrap(err)
	}

	s.logger.InfoContext(ctx, "user logged in", "user_id", u.ID)
	return token, nil
}
