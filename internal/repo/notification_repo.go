package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/kashafah/scouthub/internal/model"
	"github.com/kashafah/scouthub/internal/pkg/dbutil"
	appErr "github.com/kashafah/scouthub/internal/pkg/errors"
)

var notificationColumns = []string{"id", "user_id", "title", "message", "type", "related_id", "is_read", "ctime"}

type NotificationRepo struct {
	db *sql.DB
}

func NewNotificationRepo(db *sql.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

func (r *NotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	data := map[string]interface{}{
		"user_id":    n.UserID,
		"title":      n.Title,
		"message":    n.Message,
		"type":       n.Type,
		"related_id": n.RelatedID,
		"is_read":    n.IsRead,
		"ctime":      n.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("notifications", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	return r.db.QueryRowContext(ctx, sqlStr+" RETURNING id", args...).Scan(&n.ID)
}

func (r *NotificationRepo) ListByUser(ctx context.Context, userID int64, unreadOnly bool) ([]model.Notification, error) {
	where := map[string]interface{}{"user_id": userID, "_orderby": "ctime desc"}
	if unreadOnly {
		where["is_read"] = false
	}
	sqlStr, args, err := builder.BuildSelect("notifications", where, notificationColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := make([]model.Notification, 0)
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.RelatedID, &n.IsRead, &n.Ctime); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

func (r *NotificationRepo) MarkRead(ctx context.Context, userID, notificationID int64) error {
	where := map[string]interface{}{"id": notificationID, "user_id": userID}
	update := map[string]interface{}{"is_read": true}
	sqlStr, args, err := builder.BuildUpdate("notifications", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

// DeleteReadBefore trims read notifications older than the cutoff; used by
// the cleanup job.
func (r *NotificationRepo) DeleteReadBefore(ctx context.Context, cutoff int64) (int64, error) {
	sqlStr, args := dbutil.Finalize("DELETE FROM notifications WHERE is_read = TRUE AND ctime < ?",
		[]interface{}{cutoff})
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
