package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kashafah/scouthub/internal/config"
	"github.com/kashafah/scouthub/internal/model"
	appErr "github.com/kashafah/scouthub/internal/pkg/errors"
	"github.com/kashafah/scouthub/internal/share"
)

// ShareService wraps the share registry with content-side checks: a link may
// only be created for a report the caller owns, unless the caller is admin.
type ShareService struct {
	registry *share.Registry
	reports  *ReportService
	baseURL  string
	defaults config.ShareConfig
}

func NewShareService(registry *share.Registry, reports *ReportService, baseURL string, defaults config.ShareConfig) *ShareService {
	return &ShareService{registry: registry, reports: reports, baseURL: baseURL, defaults: defaults}
}

type ShareLinkInput struct {
	ExpiresInHours int
	Password       string
	MaxAccess      int
}

type ShareLink struct {
	ShareURL          string `json:"share_url"`
	ShareToken        string `json:"share_token"`
	ExpiresAt         string `json:"expires_at"`
	PasswordProtected bool   `json:"password_protected"`
}

func (s *ShareService) CreateReportLink(ctx context.Context, user *model.User, reportID int64, input ShareLinkInput) (*ShareLink, error) {
	report, err := s.reports.Get(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if !canManageReport(user, report) {
		return nil, appErr.ErrForbidden
	}
	hours := input.ExpiresInHours
	if hours <= 0 {
		hours = s.defaults.ExpiresInHours
	}
	maxAccess := input.MaxAccess
	if maxAccess <= 0 {
		maxAccess = s.defaults.MaxAccess
	}
	rec, err := s.registry.Create(share.CreateInput{
		ContentType:    share.ContentTypeReport,
		ContentID:      reportID,
		CreatedBy:      user.ID,
		ExpiresInHours: hours,
		Password:       input.Password,
		MaxAccess:      maxAccess,
	})
	if err != nil {
		return nil, err
	}
	return &ShareLink{
		ShareURL:          fmt.Sprintf("%s/shared/%s", s.baseURL, rec.Token),
		ShareToken:        rec.Token,
		ExpiresAt:         rec.ExpiresAt.UTC().Format(time.RFC3339),
		PasswordProtected: rec.PasswordProtected(),
	}, nil
}

func (s *ShareService) Access(ctx context.Context, token string, password *string) (*share.AccessResult, error) {
	return s.registry.ResolveAndConsume(ctx, token, password)
}

func (s *ShareService) List(userID int64) []share.Summary {
	return s.registry.List(userID)
}

func (s *ShareService) Delete(userID int64, token string) error {
	return s.registry.Delete(userID, token)
}
