package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"chefe_local/internal/domain/entities"
	"chefe_local/internal/usecase/interfaces"
)

// IUserUseCase manages the profile behind a session.
type IUserUseCase interface {
	CompleteProfile(ctx context.Context, s entities.Session, cmd ProfileCommand) (entities.User, error)
	GetMe(ctx context.Context, s entities.Session) (entities.User, error)
	SetAvailability(ctx context.Context, s entities.Session, active bool) (entities.User, error)
}

type ProfileCommand struct {
	Type      string
	Name      string
	Email     string
	Phone     string
	PixKey    string
	CookLevel string
}

type UserUseCase struct {
	users interfaces.IUserRepository
	now   func() time.Time
}

var _ IUserUseCase = (*UserUseCase)(nil)

func NewUserUseCase(users interfaces.IUserRepository) *UserUseCase {
	return &UserUseCase{users: users, now: func() time.Time { return time.Now().UTC() }}
}

func (u *UserUseCase) CompleteProfile(ctx context.Context, s entities.Session, cmd ProfileCommand) (entities.User, error) {
	log.Printf("[user][usecase] profile start user_id=%s type=%q", s.UserID, cmd.Type)
	if err := requireSession(s); err != nil {
		return entities.User{}, err
	}
	userType := entities.UserType(strings.ToLower(strings.TrimSpace(cmd.Type)))
	if !userType.Valid() {
		return entities.User{}, ErrInvalidUserType
	}
	var level entities.PackageLevel
	if strings.TrimSpace(cmd.CookLevel) != "" {
		if userType != entities.UserTypeCook {
			return entities.User{}, ErrInvalidPackageLevel
		}
		parsed, err := entities.ParsePackageLevel(cmd.CookLevel)
		if err != nil {
			return entities.User{}, ErrInvalidPackageLevel
		}
		level = parsed
	}

	now := u.now()
	profile := entities.User{
		ID:        s.UserID,
		Type:      userType,
		Name:      strings.TrimSpace(cmd.Name),
		Email:     strings.TrimSpace(cmd.Email),
		Phone:     strings.TrimSpace(cmd.Phone),
		PixKey:    strings.TrimSpace(cmd.PixKey),
		CookLevel: level,
		CreatedAt: now,
		UpdatedAt: now,
	}
	saved, matched, err := u.users.SaveProfile(ctx, profile)
	if err != nil {
		log.Printf("[user][usecase] profile failed user_id=%s err=%v", s.UserID, err)
		return entities.User{}, upstream(err)
	}
	if !matched {
		return entities.User{}, ErrUserTypeImmutable
	}
	log.Printf("[user][usecase] profile success user_id=%s type=%s", saved.ID, saved.Type)
	return saved, nil
}

func (u *UserUseCase) GetMe(ctx context.Context, s entities.Session) (entities.User, error) {
	return loadActor(ctx, u.users, s)
}

func (u *UserUseCase) SetAvailability(ctx context.Context, s entities.Session, active bool) (entities.User, error) {
	cook, err := loadCook(ctx, u.users, s)
	if err != nil {
		return entities.User{}, err
	}
	updated, err := u.users.SetActive(ctx, cook.ID, active)
	if err != nil {
		return entities.User{}, upstream(err)
	}
	if updated.ID == "" {
		return entities.User{}, ErrUserNotFound
	}
	log.Printf("[user][usecase] availability user_id=%s active=%v", cook.ID, active)
	return updated, nil
}
