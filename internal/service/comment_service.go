package service

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/kashafah/scouthub/internal/model"
	appErr "github.com/kashafah/scouthub/internal/pkg/errors"
	"github.com/kashafah/scouthub/internal/pkg/timeutil"
	"github.com/kashafah/scouthub/internal/repo"
)

type CommentService struct {
	comments      *repo.CommentRepo
	reports       *repo.ReportRepo
	notifications *repo.NotificationRepo
}

func NewCommentService(comments *repo.CommentRepo, reports *repo.ReportRepo, notifications *repo.NotificationRepo) *CommentService {
	return &CommentService{comments: comments, reports: reports, notifications: notifications}
}

type CommentInput struct {
	Content  string
	ParentID int64
}

func (s *CommentService) Create(ctx context.Context, user *model.User, reportID int64, input CommentInput) (*model.Comment, error) {
	if input.Content == "" {
		return nil, appErr.ErrInvalid
	}
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if !report.IsActive {
		return nil, appErr.ErrNotFound
	}
	now := timeutil.NowUnix()
	comment := &model.Comment{
		ReportID: reportID,
		UserID:   user.ID,
		ParentID: input.ParentID,
		Content:  input.Content,
		IsActive: true,
		Ctime:    now,
		Mtime:    now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.UserName = user.Username
	s.notify(ctx, report.CreatedBy, user.ID, &model.Notification{
		UserID:    report.CreatedBy,
		Title:     "تعليق جديد",
		Message:   user.Username + " علق على تقريرك: " + report.Title,
		Type:      model.NotificationTypeComment,
		RelatedID: reportID,
		Ctime:     now,
	})
	return comment, nil
}

func (s *CommentService) ListByReport(ctx context.Context, reportID int64) ([]model.Comment, error) {
	if _, err := s.reports.GetByID(ctx, reportID); err != nil {
		return nil, err
	}
	return s.comments.ListByReport(ctx, reportID)
}

func (s *CommentService) Delete(ctx context.Context, user *model.User, commentID int64) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if !user.HasPermission(model.RoleAdmin) && comment.UserID != user.ID {
		return appErr.ErrForbidden
	}
	return s.comments.Deactivate(ctx, commentID, timeutil.NowUnix())
}

func (s *CommentService) Like(ctx context.Context, user *model.User, commentID int64) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	now := timeutil.NowUnix()
	if err := s.comments.AddLike(ctx, commentID, user.ID, now); err != nil {
		return err
	}
	s.notify(ctx, comment.UserID, user.ID, &model.Notification{
		UserID:    comment.UserID,
		Title:     "إعجاب جديد",
		Message:   user.Username + " أعجب بتعليقك",
		Type:      model.NotificationTypeLike,
		RelatedID: commentID,
		Ctime:     now,
	})
	return nil
}

// notify skips self-notifications and never fails the caller; a lost
// notification is not worth a failed comment.
func (s *CommentService) notify(ctx context.Context, targetID, actorID int64, n *model.Notification) {
	if targetID == actorID {
		return
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		logutil.GetLogger(ctx).Warn("create notification failed", zap.Error(err), zap.Int64("user_id", targetID))
	}
}

func (s *CommentService) ListNotifications(ctx context.Context, userID int64, unreadOnly bool) ([]model.Notification, error) {
	return s.notifications.ListByUser(ctx, userID, unreadOnly)
}

func (s *CommentService) MarkNotificationRead(ctx context.Context, userID, notificationID int64) error {
	return s.notifications.MarkRead(ctx, userID, notificationID)
}
