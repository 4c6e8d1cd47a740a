package service

import (
	"context"

	"github.com/kashafah/scouthub/internal/model"
	appErr "github.com/kashafah/scouthub/internal/pkg/errors"
	"github.com/kashafah/scouthub/internal/pkg/timeutil"
	"github.com/kashafah/scouthub/internal/repo"
)

type ParticipantService struct {
	participants *repo.ParticipantRepo
}

func NewParticipantService(participants *repo.ParticipantRepo) *ParticipantService {
	return &ParticipantService{participants: participants}
}

type ParticipantInput struct {
	Name             string
	Email            string
	Phone            string
	Age              int
	JoinDate         string
	Status           string
	Role             string
	Notes            string
	EmergencyContact string
	EmergencyPhone   string
	MedicalInfo      string
}

func (s *ParticipantService) Create(ctx context.Context, userID int64, input ParticipantInput) (*model.Participant, error) {
	if input.Name == "" {
		return nil, appErr.ErrInvalid
	}
	status := input.Status
	if status == "" {
		status = model.ParticipantStatusActive
	}
	now := timeutil.NowUnix()
	p := &model.Participant{
		Name:             input.Name,
		Email:            input.Email,
		Phone:            input.Phone,
		Age:              input.Age,
		JoinDate:         input.JoinDate,
		Status:           status,
		Role:             input.Role,
		Notes:            input.Notes,
		EmergencyContact: input.EmergencyContact,
		EmergencyPhone:   input.EmergencyPhone,
		MedicalInfo:      input.MedicalInfo,
		CreatedBy:        userID,
		Ctime:            now,
		Mtime:            now,
	}
	if err := s.participants.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ParticipantService) Get(ctx context.Context, participantID int64) (*model.Participant, error) {
	return s.participants.GetByID(ctx, participantID)
}

func (s *ParticipantService) List(ctx context.Context, status string) ([]model.Participant, error) {
	return s.participants.List(ctx, status)
}

// ListActive feeds the participant export, which only ever includes active
// participants.
func (s *ParticipantService) ListActive(ctx context.Context) ([]model.Participant, error) {
	return s.participants.List(ctx, model.ParticipantStatusActive)
}

func (s *ParticipantService) Update(ctx context.Context, participantID int64, update map[string]interface{}) (*model.Participant, error) {
	update["mtime"] = timeutil.NowUnix()
	if err := s.participants.Update(ctx, participantID, update); err != nil {
		return nil, err
	}
	return s.participants.GetByID(ctx, participantID)
}

func (s *ParticipantService) SetStatus(ctx context.Context, participantID int64, status string) (*model.Participant, error) {
	switch status {
	case model.ParticipantStatusActive, model.ParticipantStatusInactive, model.ParticipantStatusSuspended:
	default:
		return nil, appErr.ErrInvalid
	}
	return s.Update(ctx, participantID, map[string]interface{}{"status": status})
}
