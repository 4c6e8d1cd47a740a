package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/kashafah/scouthub/internal/model"
	"github.com/kashafah/scouthub/internal/pkg/dbutil"
	appErr "github.com/kashafah/scouthub/internal/pkg/errors"
)

type ReportRepo struct {
	db *sql.DB
}

func NewReportRepo(db *sql.DB) *ReportRepo {
	return &ReportRepo{db: db}
}

func (r *ReportRepo) Create(ctx context.Context, report *model.Report) error {
	data := map[string]interface{}{
		"type":       report.Type,
		"title":      report.Title,
		"content":    report.Content,
		"data":       nullableJSON(report.Data),
		"created_by": report.CreatedBy,
		"is_active":  report.IsActive,
		"ctime":      report.Ctime,
		"mtime":      report.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("reports", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	return r.db.QueryRowContext(ctx, sqlStr+" RETURNING id", args...).Scan(&report.ID)
}

const reportSelect = `
	SELECT r.id, r.type, r.title, r.content, COALESCE(r.data, 'null'::jsonb), r.created_by,
	       COALESCE(u.username, ''), r.is_active, r.ctime, r.mtime
	FROM reports r
	LEFT JOIN users u ON u.id = r.created_by
`

func scanReport(rows *sql.Rows) (*model.Report, error) {
	var report model.Report
	var rawData []byte
	if err := rows.Scan(&report.ID, &report.Type, &report.Title, &report.Content, &rawData,
		&report.CreatedBy, &report.CreatorName, &report.IsActive, &report.Ctime, &report.Mtime); err != nil {
		return nil, err
	}
	if len(rawData) > 0 && string(rawData) != "null" {
		report.Data = rawData
	}
	return &report, nil
}

func (r *ReportRepo) GetByID(ctx context.Context, reportID int64) (*model.Report, error) {
	sqlStr, args := dbutil.Finalize(reportSelect+" WHERE r.id = ?", []interface{}{reportID})
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	return scanReport(rows)
}

type ReportFilter struct {
	IDs        []int64
	CreatedBy  int64 // 0 means any creator
	ActiveOnly bool
}

func (r *ReportRepo) List(ctx context.Context, filter ReportFilter) ([]model.Report, error) {
	sqlStr := reportSelect + " WHERE 1=1"
	args := make([]interface{}, 0)
	if filter.ActiveOnly {
		sqlStr += " AND r.is_active = TRUE"
	}
	if filter.CreatedBy != 0 {
		sqlStr += " AND r.created_by = ?"
		args = append(args, filter.CreatedBy)
	}
	if len(filter.IDs) > 0 {
		sqlStr += " AND r.id IN ("
		for i, id := range filter.IDs {
			if i > 0 {
				sqlStr += ","
			}
			sqlStr += "?"
			args = append(args, id)
		}
		sqlStr += ")"
	}
	sqlStr += " ORDER BY r.ctime DESC"

	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := make([]model.Report, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *report)
	}
	return items, rows.Err()
}

func (r *ReportRepo) Update(ctx context.Context, reportID int64, update map[string]interface{}) error {
	where := map[string]interface{}{"id": reportID}
	sqlStr, args, err := builder.BuildUpdate("reports", where, update)
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

// SoftDelete keeps the row around for history; exports and shares only ever
// see active reports.
func (r *ReportRepo) SoftDelete(ctx context.Context, reportID int64, mtime int64) error {
	return r.Update(ctx, reportID, map[string]interface{}{"is_active": false, "mtime": mtime})
}

func nullableJSON(data []byte) interface{} {
	if len(data) == 0 {
		return nil
	}
	return []byte(data)
}
