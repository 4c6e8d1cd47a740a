package service

import (
	"context"

	"github.com/kashafah/scouthub/internal/model"
	appErr "github.com/kashafah/scouthub/internal/pkg/errors"
	"github.com/kashafah/scouthub/internal/pkg/timeutil"
	"github.com/kashafah/scouthub/internal/repo"
)

// UserService covers admin-side account management.
type UserService struct {
	users *repo.UserRepo
}

func NewUserService(users *repo.UserRepo) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, userID int64) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *UserService) SetRole(ctx context.Context, userID int64, role string) (*model.User, error) {
	if model.RoleLevel(role) == 0 {
		return nil, appErr.ErrInvalid
	}
	update := map[string]interface{}{"role": role, "mtime": timeutil.NowUnix()}
	if err := s.users.Update(ctx, userID, update); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, userID)
}

func (s *UserService) SetActive(ctx context.Context, userID int64, active bool) (*model.User, error) {
	update := map[string]interface{}{"is_active": active, "mtime": timeutil.NowUnix()}
	if err := s.users.Update(ctx, userID, update); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, userID)
}

// Delete removes an account permanently. Admins cannot delete themselves;
// losing the last admin mid-session is not a recoverable state.
func (s *UserService) Delete(ctx context.Context, actor *model.User, userID int64) error {
	if actor.ID == userID {
		return appErr.ErrInvalid
	}
	return s.users.Delete(ctx, userID)
}
