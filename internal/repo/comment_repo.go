package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/kashafah/scouthub/internal/model"
	"github.com/kashafah/scouthub/internal/pkg/dbutil"
	appErr "github.com/kashafah/scouthub/internal/pkg/errors"
)

type CommentRepo struct {
	db *sql.DB
}

func NewCommentRepo(db *sql.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

func (r *CommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	data := map[string]interface{}{
		"report_id":   comment.ReportID,
		"user_id":     comment.UserID,
		"parent_id":   comment.ParentID,
		"content":     comment.Content,
		"likes_count": comment.LikesCount,
		"is_active":   comment.IsActive,
		"ctime":       comment.Ctime,
		"mtime":       comment.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("comments", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	return r.db.QueryRowContext(ctx, sqlStr+" RETURNING id", args...).Scan(&comment.ID)
}

const commentSelect = `
	SELECT c.id, c.report_id, c.user_id, COALESCE(u.username, ''), c.parent_id, c.content,
	       c.likes_count, c.is_active, c.ctime, c.mtime
	FROM comments c
	LEFT JOIN users u ON u.id = c.user_id
`

func scanComment(rows *sql.Rows) (*model.Comment, error) {
	var comment model.Comment
	if err := rows.Scan(&comment.ID, &comment.ReportID, &comment.UserID, &comment.UserName, &comment.ParentID,
		&comment.Content, &comment.LikesCount, &comment.IsActive, &comment.Ctime, &comment.Mtime); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepo) GetByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	sqlStr, args := dbutil.Finalize(commentSelect+" WHERE c.id = ?", []interface{}{commentID})
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	return scanComment(rows)
}

func (r *CommentRepo) ListByReport(ctx context.Context, reportID int64) ([]model.Comment, error) {
	sqlStr, args := dbutil.Finalize(commentSelect+" WHERE c.report_id = ? AND c.is_active = TRUE ORDER BY c.ctime ASC",
		[]interface{}{reportID})
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := make([]model.Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *comment)
	}
	return items, rows.Err()
}

func (r *CommentRepo) Deactivate(ctx context.Context, commentID int64, mtime int64) error {
	where := map[string]interface{}{"id": commentID}
	update := map[string]interface{}{"is_active": false, "mtime": mtime}
	sqlStr, args, err := builder.BuildUpdate("comments", where, update)
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

// AddLike inserts the like row and bumps the denormalized counter; the unique
// constraint turns a double-like into ErrConflict.
func (r *CommentRepo) AddLike(ctx context.Context, commentID, userID int64, ctime int64) error {
	data := map[string]interface{}{
		"comment_id": commentID,
		"user_id":    userID,
		"ctime":      ctime,
	}
	sqlStr, args, err := builder.BuildInsert("comment_likes", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	countSQL, countArgs := dbutil.Finalize("UPDATE comments SET likes_count = likes_count + 1 WHERE id = ?",
		[]interface{}{commentID})
	_, err = r.db.ExecContext(ctx, countSQL, countArgs...)
	return err
}
