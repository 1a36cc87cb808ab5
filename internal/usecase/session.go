package usecase

import (
	"context"
	"strings"

	"chefe_local/internal/domain/entities"
	"chefe_local/internal/usecase/interfaces"
)

func requireSession(s entities.Session) error {
	if !s.Authenticated() {
		return ErrUnauthenticated
	}
	return nil
}

// loadActor resolves the session user. Sessions of users that never completed
// their profile are rejected.
func loadActor(ctx context.Context, users interfaces.IUserRepository, s entities.Session) (entities.User, error) {
	if err := requireSession(s); err != nil {
		return entities.User{}, err
	}
	u, err := users.GetByID(ctx, s.UserID)
	if err != nil {
		return entities.User{}, upstream(err)
	}
	if u.ID == "" {
		return entities.User{}, ErrProfileIncomplete
	}
	return u, nil
}

func loadCook(ctx context.Context, users interfaces.IUserRepository, s entities.Session) (entities.User, error) {
	u, err := loadActor(ctx, users, s)
	if err != nil {
		return entities.User{}, err
	}
	if !u.IsCook() {
		return entities.User{}, ErrNotCook
	}
	return u, nil
}

func loadClient(ctx context.Context, users interfaces.IUserRepository, s entities.Session) (entities.User, error) {
	u, err := loadActor(ctx, users, s)
	if err != nil {
		return entities.User{}, err
	}
	if !u.IsClient() {
		return entities.User{}, ErrNotClient
	}
	return u, nil
}

func loadOrder(ctx context.Context, orders interfaces.IOrderRepository, id string) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, ErrInvalidID
	}
	o, err := orders.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, upstream(err)
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}
