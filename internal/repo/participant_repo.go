package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/kashafah/scouthub/internal/model"
	"github.com/kashafah/scouthub/internal/pkg/dbutil"
	appErr "github.com/kashafah/scouthub/internal/pkg/errors"
)

var participantColumns = []string{"id", "name", "email", "phone", "age", "join_date", "status", "role", "notes",
	"emergency_contact", "emergency_phone", "medical_info", "created_by", "ctime", "mtime"}

type ParticipantRepo struct {
	db *sql.DB
}

func NewParticipantRepo(db *sql.DB) *ParticipantRepo {
	return &ParticipantRepo{db: db}
}

func scanParticipant(rows *sql.Rows) (*model.Participant, error) {
	var p model.Participant
	if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Age, &p.JoinDate, &p.Status, &p.Role, &p.Notes,
		&p.EmergencyContact, &p.EmergencyPhone, &p.MedicalInfo, &p.CreatedBy, &p.Ctime, &p.Mtime); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ParticipantRepo) Create(ctx context.Context, p *model.Participant) error {
	data := map[string]interface{}{
		"name":              p.Name,
		"email":             p.Email,
		"phone":             p.Phone,
		"age":               p.Age,
		"join_date":         p.JoinDate,
		"status":            p.Status,
		"role":              p.Role,
		"notes":             p.Notes,
		"emergency_contact": p.EmergencyContact,
		"emergency_phone":   p.EmergencyPhone,
		"medical_info":      p.MedicalInfo,
		"created_by":        p.CreatedBy,
		"ctime":             p.Ctime,
		"mtime":             p.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("participants", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	return r.db.QueryRowContext(ctx, sqlStr+" RETURNING id", args...).Scan(&p.ID)
}

func (r *ParticipantRepo) GetByID(ctx context.Context, participantID int64) (*model.Participant, error) {
	where := map[string]interface{}{"id": participantID}
	sqlStr, args, err := builder.BuildSelect("participants", where, participantColumns)
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
	return scanParticipant(rows)
}

func (r *ParticipantRepo) List(ctx context.Context, status string) ([]model.Participant, error) {
	where := map[string]interface{}{"_orderby": "name asc"}
	if status != "" {
		where["status"] = status
	}
	sqlStr, args, err := builder.BuildSelect("participants", where, participantColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := make([]model.Participant, 0)
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

func (r *ParticipantRepo) Update(ctx context.Context, participantID int64, update map[string]interface{}) error {
	where := map[string]interface{}{"id": participantID}
	sqlStr, args, err := builder.BuildUpdate("participants", where, update)
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
