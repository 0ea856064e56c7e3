package payments

import (
	"context"
	"errors"

	"github.com/samuelboada21/PruebaCVisual/internal/auth"
	"github.com/samuelboada21/PruebaCVisual/internal/shared/apperr"
)

type QueryService struct {
	repo Repository
}

func NewQueryService(repo Repository) *QueryService {
	return &QueryService{repo: repo}
}

// List returns all rows for administrators, only the actor's own rows
// otherwise.
func (s *QueryService) List(ctx context.Context, actor auth.Identity) ([]PaymentNotification, error) {
	var (
		rows []PaymentNotification
		err  error
	)
	if actor.IsAdministrator() {
		rows, err = s.repo.ListAll(ctx)
	} else {
		rows, err = s.repo.ListByUser(ctx, actor.UserID)
	}
	if err != nil {
		return nil, apperr.Wrap(err)
	}
	return rows, nil
}

// GetByID enforces ownership for non-privileged actors. A row owned by
// someone else reads as not found so the endpoint cannot be used to probe
// which ids exist.
func (s *QueryService) GetByID(ctx context.Context, actor auth.Identity, id int64) (*PaymentNotification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFoundErr("payment not found")
		}
		return nil, apperr.Wrap(err)
	}

	if !actor.IsAdministrator() && n.UserID != actor.UserID {
		return nil, apperr.NotFoundErr("payment not found")
	}
	return n, nil
}
