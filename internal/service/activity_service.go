package service

import (
	"context"

	"github.com/kashafah/scouthub/internal/model"
	appErr "github.com/kashafah/scouthub/internal/pkg/errors"
	"github.com/kashafah/scouthub/internal/pkg/timeutil"
	"github.com/kashafah/scouthub/internal/repo"
)

type ActivityService struct {
	activities   *repo.ActivityRepo
	attendance   *repo.AttendanceRepo
	participants *repo.ParticipantRepo
}

func NewActivityService(activities *repo.ActivityRepo, attendance *repo.AttendanceRepo, participants *repo.ParticipantRepo) *ActivityService {
	return &ActivityService{activities: activities, attendance: attendance, participants: participants}
}

type ActivityInput struct {
	Title           string
	Description     string
	Date            string
	Time            string
	Location        string
	MaxParticipants int
	Status          string
}

func (s *ActivityService) Create(ctx context.Context, userID int64, input ActivityInput) (*model.Activity, error) {
	if input.Title == "" || input.Date == "" {
		return nil, appErr.ErrInvalid
	}
	status := input.Status
	if status == "" {
		status = model.ActivityStatusPlanned
	}
	now := timeutil.NowUnix()
	a := &model.Activity{
		Title:           input.Title,
		Description:     input.Description,
		Date:            input.Date,
		Time:            input.Time,
		Location:        input.Location,
		MaxParticipants: input.MaxParticipants,
		Status:          status,
		CreatedBy:       userID,
		Ctime:           now,
		Mtime:           now,
	}
	if err := s.activities.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *ActivityService) Get(ctx context.Context, activityID int64) (*model.Activity, error) {
	return s.activities.GetByID(ctx, activityID)
}

func (s *ActivityService) List(ctx context.Context, status string) ([]model.Activity, error) {
	return s.activities.List(ctx, status)
}

func (s *ActivityService) Update(ctx context.Context, activityID int64, update map[string]interface{}) (*model.Activity, error) {
	update["mtime"] = timeutil.NowUnix()
	if err := s.activities.Update(ctx, activityID, update); err != nil {
		return nil, err
	}
	return s.activities.GetByID(ctx, activityID)
}

type AttendanceInput struct {
	ParticipantID int64
	Status        string
	Notes         string
}

// RecordAttendance marks one participant for one activity; duplicates per
// (activity, participant) surface as ErrConflict.
func (s *ActivityService) RecordAttendance(ctx context.Context, userID, activityID int64, input AttendanceInput) (*model.Attendance, error) {
	if input.ParticipantID == 0 {
		return nil, appErr.ErrInvalid
	}
	status := input.Status
	if status == "" {
		status = model.AttendancePresent
	}
	switch status {
	case model.AttendancePresent, model.AttendanceAbsent, model.AttendanceLate, model.AttendanceExcused:
	default:
		return nil, appErr.ErrInvalid
	}
	if _, err := s.activities.GetByID(ctx, activityID); err != nil {
		return nil, err
	}
	if _, err := s.participants.GetByID(ctx, input.ParticipantID); err != nil {
		return nil, err
	}
	record := &model.Attendance{
		ActivityID:    activityID,
		ParticipantID: input.ParticipantID,
		Status:        status,
		Notes:         input.Notes,
		RecordedBy:    userID,
		RecordedAt:    timeutil.NowUnix(),
	}
	if err := s.attendance.Record(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *ActivityService) ListAttendance(ctx context.Context, activityID int64) ([]model.Attendance, error) {
	if _, err := s.activities.GetByID(ctx, activityID); err != nil {
		return nil, err
	}
	return s.attendance.ListByActivity(ctx, activityID)
}
