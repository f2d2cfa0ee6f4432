package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/unimindapp/unimind-backend/internal/platform/apierr"
	"github.com/unimindapp/unimind-backend/internal/platform/logger"
	"github.com/unimindapp/unimind-backend/internal/store"
)

type UserService interface {
	Get(ctx context.Context, callerUID, userID string) (store.UserProfile, error)
}

type userService struct {
	log   *logger.Logger
	store store.UserProfileStore
}

func NewUserService(log *logger.Logger, st store.UserProfileStore) UserService {
	return &userService{
		log:   log.With("service", "UserService"),
		store: st,
	}
}

func (us *userService) Get(ctx context.Context, callerUID, userID string) (store.UserProfile, error) {
	if userID == "" || userID != callerUID {
		return nil, apierr.Unauthorized(fmt.Errorf("cannot read another user's profile"))
	}

	profile, err := us.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apierr.NotFound(fmt.Errorf("user %s not found", userID))
		}
		us.log.Error("profile read failed", "user_id", userID, "error", err)
		return nil, apierr.Internal(err)
	}
	return profile, nil
}
