package service

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/kashafah/scouthub/internal/model"
	appErr "github.com/kashafah/scouthub/internal/pkg/errors"
	"github.com/kashafah/scouthub/internal/pkg/timeutil"
	"github.com/kashafah/scouthub/internal/repo"
)

// codeCharset skips 0/O/1/I so codes survive being read out loud.
const codeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLength = 8

type ActivationService struct {
	codes *repo.ActivationRepo
	users *repo.UserRepo
}

func NewActivationService(codes *repo.ActivationRepo, users *repo.UserRepo) *ActivationService {
	return &ActivationService{codes: codes, users: users}
}

func generateCode() string {
	buf := make([]byte, codeLength)
	max := big.NewInt(int64(len(codeCharset)))
	for i := range buf {
		n, _ := rand.Int(rand.Reader, max)
		buf[i] = codeCharset[n.Int64()]
	}
	return string(buf)
}

type ActivationCodeInput struct {
	Description string
	MaxUses     int
	ExpiresAt   int64
}

func (s *ActivationService) CreateCode(ctx context.Context, createdBy int64, input ActivationCodeInput) (*model.ActivationCode, error) {
	maxUses := input.MaxUses
	if maxUses <= 0 {
		maxUses = 1
	}
	now := timeutil.NowUnix()
	code := &model.ActivationCode{
		Description: input.Description,
		MaxUses:     maxUses,
		ExpiresAt:   input.ExpiresAt,
		IsActive:    true,
		CreatedBy:   createdBy,
		Ctime:       now,
		Mtime:       now,
	}
	// regenerate on the off chance of a duplicate code
	for attempt := 0; attempt < 5; attempt++ {
		code.Code = generateCode()
		err := s.codes.Create(ctx, code)
		if err == nil {
			return code, nil
		}
		if err != appErr.ErrConflict {
			return nil, err
		}
	}
	return nil, appErr.ErrInternal
}

func (s *ActivationService) ListCodes(ctx context.Context) ([]model.ActivationCode, error) {
	return s.codes.List(ctx)
}

func (s *ActivationService) DeactivateCode(ctx context.Context, codeID int64) error {
	return s.codes.Update(ctx, codeID, map[string]interface{}{"is_active": false, "mtime": timeutil.NowUnix()})
}

func (s *ActivationService) ListActivations(ctx context.Context, codeID int64) ([]model.UserActivation, error) {
	return s.codes.ListActivations(ctx, codeID)
}

// Activate redeems a code for the user: the code must be active, unexpired,
// under its use ceiling, and not previously used by this user. On success the
// account flips to activated.
func (s *ActivationService) Activate(ctx context.Context, userID int64, codeValue string) (*model.User, error) {
	if codeValue == "" {
		return nil, appErr.ErrInvalid
	}
	code, err := s.codes.GetByCode(ctx, codeValue)
	if err != nil {
		return nil, err
	}
	if !code.IsActive {
		return nil, appErr.ErrInvalid
	}
	now := timeutil.NowUnix()
	if code.ExpiresAt > 0 && now > code.ExpiresAt {
		return nil, appErr.ErrExpired
	}
	if code.CurrentUses >= code.MaxUses {
		return nil, appErr.ErrLimitExceeded
	}
	activation := &model.UserActivation{
		UserID:           userID,
		ActivationCodeID: code.ID,
		UsedAt:           now,
	}
	if err := s.codes.RecordActivation(ctx, activation); err != nil {
		return nil, err
	}
	if err := s.codes.ConsumeUse(ctx, code.ID, now); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, userID, map[string]interface{}{"is_activated": true, "mtime": now}); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, userID)
}
