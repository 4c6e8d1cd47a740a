package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/kashafah/scouthub/internal/model"
	"github.com/kashafah/scouthub/internal/pkg/dbutil"
	appErr "github.com/kashafah/scouthub/internal/pkg/errors"
)

var attendanceColumns = []string{"id", "activity_id", "participant_id", "status", "notes", "recorded_by", "recorded_at"}

type AttendanceRepo struct {
	db *sql.DB
}

func NewAttendanceRepo(db *sql.DB) *AttendanceRepo {
	return &AttendanceRepo{db: db}
}

func (r *AttendanceRepo) Record(ctx context.Context, a *model.Attendance) error {
	data := map[string]interface{}{
		"activity_id":    a.ActivityID,
		"participant_id": a.ParticipantID,
		"status":         a.Status,
		"notes":          a.Notes,
		"recorded_by":    a.RecordedBy,
		"recorded_at":    a.RecordedAt,
	}
	sqlStr, args, err := builder.BuildInsert("attendance", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	err = r.db.QueryRowContext(ctx, sqlStr+" RETURNING id", args...).Scan(&a.ID)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *AttendanceRepo) ListByActivity(ctx context.Context, activityID int64) ([]model.Attendance, error) {
	where := map[string]interface{}{"activity_id": activityID, "_orderby": "recorded_at asc"}
	sqlStr, args, err := builder.BuildSelect("attendance", where, attendanceColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := make([]model.Attendance, 0)
	for rows.Next() {
		var a model.Attendance
		if err := rows.Scan(&a.ID, &a.ActivityID, &a.ParticipantID, &a.Status, &a.Notes, &a.RecordedBy, &a.RecordedAt); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *AttendanceRepo) UpdateStatus(ctx context.Context, attendanceID int64, status, notes string) error {
	where := map[string]interface{}{"id": attendanceID}
	update := map[string]interface{}{"status": status, "notes": notes}
	sqlStr, args, err := builder.BuildUpdate("attendance", where, update)
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
