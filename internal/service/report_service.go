package service

import (
	"context"
	"encoding/json"

	"github.com/kashafah/scouthub/internal/model"
	appErr "github.com/kashafah/scouthub/internal/pkg/errors"
	"github.com/kashafah/scouthub/internal/pkg/timeutil"
	"github.com/kashafah/scouthub/internal/repo"
	"github.com/kashafah/scouthub/internal/share"
)

type ReportService struct {
	reports *repo.ReportRepo
}

func NewReportService(reports *repo.ReportRepo) *ReportService {
	return &ReportService{reports: reports}
}

// canManageReport gates per-report actions: owner always, admin override.
func canManageReport(user *model.User, report *model.Report) bool {
	return user.HasPermission(model.RoleAdmin) || report.CreatedBy == user.ID
}

type ReportCreateInput struct {
	Type    string
	Title   string
	Content string
	Data    json.RawMessage
}

func (s *ReportService) Create(ctx context.Context, userID int64, input ReportCreateInput) (*model.Report, error) {
	if input.Type == "" || input.Title == "" {
		return nil, appErr.ErrInvalid
	}
	now := timeutil.NowUnix()
	report := &model.Report{
		Type:      input.Type,
		Title:     input.Title,
		Content:   input.Content,
		Data:      input.Data,
		CreatedBy: userID,
		IsActive:  true,
		Ctime:     now,
		Mtime:     now,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}
	return s.reports.GetByID(ctx, report.ID)
}

func (s *ReportService) Get(ctx context.Context, reportID int64) (*model.Report, error) {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if !report.IsActive {
		return nil, appErr.ErrNotFound
	}
	return report, nil
}

// List returns active reports; non-admins only see their own.
func (s *ReportService) List(ctx context.Context, user *model.User) ([]model.Report, error) {
	filter := repo.ReportFilter{ActiveOnly: true}
	if !user.HasPermission(model.RoleAdmin) {
		filter.CreatedBy = user.ID
	}
	return s.reports.List(ctx, filter)
}

// ListForExport applies the export selection rules: optional id filter,
// active only, ownership unless the caller is admin.
func (s *ReportService) ListForExport(ctx context.Context, user *model.User, ids []int64) ([]model.Report, error) {
	filter := repo.ReportFilter{IDs: ids, ActiveOnly: true}
	if !user.HasPermission(model.RoleAdmin) {
		filter.CreatedBy = user.ID
	}
	return s.reports.List(ctx, filter)
}

type ReportUpdateInput struct {
	Type    *string
	Title   *string
	Content *string
	Data    json.RawMessage
}

func (s *ReportService) Update(ctx context.Context, user *model.User, reportID int64, input ReportUpdateInput) (*model.Report, error) {
	report, err := s.Get(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if !canManageReport(user, report) {
		return nil, appErr.ErrForbidden
	}
	update := map[string]interface{}{"mtime": timeutil.NowUnix()}
	if input.Type != nil {
		update["type"] = *input.Type
	}
	if input.Title != nil {
		update["title"] = *input.Title
	}
	if input.Content != nil {
		update["content"] = *input.Content
	}
	if len(input.Data) > 0 {
		update["data"] = []byte(input.Data)
	}
	if err := s.reports.Update(ctx, reportID, update); err != nil {
		return nil, err
	}
	return s.reports.GetByID(ctx, reportID)
}

func (s *ReportService) Delete(ctx context.Context, user *model.User, reportID int64) error {
	report, err := s.Get(ctx, reportID)
	if err != nil {
		return err
	}
	if !canManageReport(user, report) {
		return appErr.ErrForbidden
	}
	return s.reports.SoftDelete(ctx, reportID, timeutil.NowUnix())
}

// Resolve implements share.Resolver for report content. Content kinds are a
// small closed set; anything unknown is rejected up front.
func (s *ReportService) Resolve(ctx context.Context, contentType string, contentID int64) (*share.ContentView, error) {
	switch contentType {
	case share.ContentTypeReport:
		report, err := s.Get(ctx, contentID)
		if err != nil {
			return nil, err
		}
		return &share.ContentView{Type: share.ContentTypeReport, Data: report}, nil
	default:
		return nil, appErr.ErrBadContentType
	}
}
