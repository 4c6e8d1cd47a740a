package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/kashafah/scouthub/internal/model"
	"github.com/kashafah/scouthub/internal/pkg/dbutil"
	appErr "github.com/kashafah/scouthub/internal/pkg/errors"
)

var activationColumns = []string{"id", "code", "description", "max_uses", "current_uses", "expires_at",
	"is_active", "created_by", "ctime", "mtime"}

type ActivationRepo struct {
	db *sql.DB
}

func NewActivationRepo(db *sql.DB) *ActivationRepo {
	return &ActivationRepo{db: db}
}

func scanActivationCode(rows *sql.Rows) (*model.ActivationCode, error) {
	var code model.ActivationCode
	if err := rows.Scan(&code.ID, &code.Code, &code.Description, &code.MaxUses, &code.CurrentUses,
		&code.ExpiresAt, &code.IsActive, &code.CreatedBy, &code.Ctime, &code.Mtime); err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *ActivationRepo) Create(ctx context.Context, code *model.ActivationCode) error {
	data := map[string]interface{}{
		"code":         code.Code,
		"description":  code.Description,
		"max_uses":     code.MaxUses,
		"current_uses": code.CurrentUses,
		"expires_at":   code.ExpiresAt,
		"is_active":    code.IsActive,
		"created_by":   code.CreatedBy,
		"ctime":        code.Ctime,
		"mtime":        code.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("activation_codes", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	err = r.db.QueryRowContext(ctx, sqlStr+" RETURNING id", args...).Scan(&code.ID)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *ActivationRepo) GetByCode(ctx context.Context, codeValue string) (*model.ActivationCode, error) {
	where := map[string]interface{}{"code": codeValue}
	sqlStr, args, err := builder.BuildSelect("activation_codes", where, activationColumns)
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
	return scanActivationCode(rows)
}

func (r *ActivationRepo) List(ctx context.Context) ([]model.ActivationCode, error) {
	where := map[string]interface{}{"_orderby": "ctime desc"}
	sqlStr, args, err := builder.BuildSelect("activation_codes", where, activationColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := make([]model.ActivationCode, 0)
	for rows.Next() {
		code, err := scanActivationCode(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *code)
	}
	return items, rows.Err()
}

func (r *ActivationRepo) Update(ctx context.Context, codeID int64, update map[string]interface{}) error {
	where := map[string]interface{}{"id": codeID}
	sqlStr, args, err := builder.BuildUpdate("activation_codes", where, update)
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

// ConsumeUse bumps current_uses only while below max_uses so two concurrent
// activations cannot overdraw the code.
func (r *ActivationRepo) ConsumeUse(ctx context.Context, codeID int64, mtime int64) error {
	sqlStr := "UPDATE activation_codes SET current_uses = current_uses + 1, mtime = ? WHERE id = ? AND current_uses < max_uses"
	sqlStr, args := dbutil.Finalize(sqlStr, []interface{}{mtime, codeID})
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrLimitExceeded
	}
	return nil
}

func (r *ActivationRepo) RecordActivation(ctx context.Context, activation *model.UserActivation) error {
	data := map[string]interface{}{
		"user_id":            activation.UserID,
		"activation_code_id": activation.ActivationCodeID,
		"used_at":            activation.UsedAt,
	}
	sqlStr, args, err := builder.BuildInsert("user_activations", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	err = r.db.QueryRowContext(ctx, sqlStr+" RETURNING id", args...).Scan(&activation.ID)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *ActivationRepo) ListActivations(ctx context.Context, codeID int64) ([]model.UserActivation, error) {
	where := map[string]interface{}{"activation_code_id": codeID, "_orderby": "used_at asc"}
	sqlStr, args, err := builder.BuildSelect("user_activations", where, []string{"id", "user_id", "activation_code_id", "used_at"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := make([]model.UserActivation, 0)
	for rows.Next() {
		var a model.UserActivation
		if err := rows.Scan(&a.ID, &a.UserID, &a.ActivationCodeID, &a.UsedAt); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
