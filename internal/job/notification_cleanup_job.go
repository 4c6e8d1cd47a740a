package job

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/kashafah/scouthub/internal/repo"
)

// NotificationCleanupJob drops read notifications past their keep window.
// Share links are never swept here; their expiry is checked lazily on access.
type NotificationCleanupJob struct {
	notifications *repo.NotificationRepo
	maxAgeDays    int
}

func NewNotificationCleanupJob(notifications *repo.NotificationRepo, maxAgeDays int) *NotificationCleanupJob {
	return &NotificationCleanupJob{notifications: notifications, maxAgeDays: maxAgeDays}
}

func (j *NotificationCleanupJob) Name() string {
	return "notification_cleanup"
}

func (j *NotificationCleanupJob) Run(ctx context.Context) error {
	if j.notifications == nil {
		return nil
	}
	maxAgeDays := j.maxAgeDays
	if maxAgeDays <= 0 {
		maxAgeDays = 30
	}
	cutoff := time.Now().Add(-time.Duration(maxAgeDays) * 24 * time.Hour).Unix()
	deleted, err := j.notifications.DeleteReadBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		logutil.GetLogger(ctx).Info("cleaned up notifications", zap.Int64("deleted", deleted))
	}
	return nil
}
