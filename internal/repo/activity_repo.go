package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/kashafah/scouthub/internal/model"
	"github.com/kashafah/scouthub/internal/pkg/dbutil"
	appErr "github.com/kashafah/scouthub/internal/pkg/errors"
)

var activityColumns = []string{"id", "title", "description", "date", "time", "location", "max_participants",
	"status", "created_by", "ctime", "mtime"}

type ActivityRepo struct {
	db *sql.DB
}

func NewActivityRepo(db *sql.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

func scanActivity(rows *sql.Rows) (*model.Activity, error) {
	var a model.Activity
	if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Date, &a.Time, &a.Location, &a.MaxParticipants,
		&a.Status, &a.CreatedBy, &a.Ctime, &a.Mtime); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ActivityRepo) Create(ctx context.Context, a *model.Activity) error {
	data := map[string]interface{}{
		"title":            a.Title,
		"description":      a.Description,
		"date":             a.Date,
		"time":             a.Time,
		"location":         a.Location,
		"max_participants": a.MaxParticipants,
		"status":           a.Status,
		"created_by":       a.CreatedBy,
		"ctime":            a.Ctime,
		"mtime":            a.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("activities", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	return r.db.QueryRowContext(ctx, sqlStr+" RETURNING id", args...).Scan(&a.ID)
}

func (r *ActivityRepo) GetByID(ctx context.Context, activityID int64) (*model.Activity, error) {
	where := map[string]interface{}{"id": activityID}
	sqlStr, args, err := builder.BuildSelect("activities", where, activityColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	return scanActivity(rows)
}

func (r *ActivityRepo) List(ctx context.Context, status string) ([]model.Activity, error) {
	where := map[string]interface{}{"_orderby": "date desc"}
	if status != "" {
		where["status"] = status
	}
	sqlStr, args, err := builder.BuildSelect("activities", where, activityColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := make([]model.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

func (r *ActivityRepo) Update(ctx context.Context, activityID int64, update map[string]interface{}) error {
	where := map[string]interface{}{"id": activityID}
	sqlStr, args, err := builder.BuildUpdate("activities", where, update)
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
