package service

import (
	"context"
	"time"

	"github.com/kashafah/scouthub/internal/model"
	appErr "github.com/kashafah/scouthub/internal/pkg/errors"
	"github.com/kashafah/scouthub/internal/pkg/jwt"
	"github.com/kashafah/scouthub/internal/pkg/password"
	"github.com/kashafah/scouthub/internal/pkg/timeutil"
	"github.com/kashafah/scouthub/internal/repo"
)

type AuthService struct {
	users     *repo.UserRepo
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewAuthService(users *repo.UserRepo, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: secret, jwtTTL: ttl}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Phone    string
}

// Register creates a member account. The account starts unactivated; the user
// redeems an activation code afterwards to unlock it.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, string, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, "", appErr.ErrInvalid
	}
	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, "", err
	}
	now := timeutil.NowUnix()
	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         model.RoleMember,
		FullName:     input.FullName,
		Phone:        input.Phone,
		IsActive:     true,
		IsActivated:  false,
		Ctime:        now,
		Mtime:        now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}
	token, err := jwt.GenerateToken(user.ID, user.Username, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, username, plainPassword string) (*model.User, string, error) {
	if username == "" || plainPassword == "" {
		return nil, "", appErr.ErrInvalid
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", appErr.ErrUnauthorized
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return nil, "", appErr.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, "", appErr.ErrUnauthorized
	}
	token, err := jwt.GenerateToken(user.ID, user.Username, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}

type ProfileUpdateInput struct {
	FullName *string
	Phone    *string
	Email    *string
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, input ProfileUpdateInput) (*model.User, error) {
	update := map[string]interface{}{"mtime": timeutil.NowUnix()}
	if input.FullName != nil {
		update["full_name"] = *input.FullName
	}
	if input.Phone != nil {
		update["phone"] = *input.Phone
	}
	if input.Email != nil {
		update["email"] = *input.Email
	}
	if err := s.users.Update(ctx, userID, update); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, userID)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return appErr.ErrInvalid
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := password.Compare(user.PasswordHash, currentPassword); err != nil {
		return appErr.ErrInvalid
	}
	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.users.Update(ctx, userID, map[string]interface{}{
		"password_hash": hash,
		"mtime":         timeutil.NowUnix(),
	})
}
