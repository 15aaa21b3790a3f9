package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/dataopslabs/socials-gateway/internal/models"
)

type PublishHistoryRepository interface {
	Create(ctx context.Context, ph *models.PublishHistory) (int64, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.PublishHistory, error)
	GetByPostID(ctx context.Context, postID string) ([]*models.PublishHistory, error)
}

type publishHistoryRepository struct {
	db *sql.DB
}

func NewPublishHistoryRepository(db *sql.DB) PublishHistoryRepository {
	return &publishHistoryRepository{db: db}
}

func (r *publishHistoryRepository) Create(ctx context.Context, ph *models.PublishHistory) (int64, error) {
	query := `
		INSERT INTO publish_history (user_id, post_id, platform, success, platform_post_id, error_message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, ph.UserID, ph.PostID, ph.Platform, ph.Success, ph.PlatformPostID, ph.ErrorMessage).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *publishHistoryRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.PublishHistory, error) {
	query := `SELECT id, user_id, post_id, platform, success, platform_post_id, error_message, created_at FROM publish_history WHERE user_id = $1`
	return r.list(ctx, query, userID)
}

func (r *publishHistoryRepository) GetByPostID(ctx context.Context, postID string) ([]*models.PublishHistory, error) {
	query := `SELECT id, user_id, post_id, platform, success, platform_post_id, error_message, created_at FROM publish_history WHERE post_id = $1`
	return r.list(ctx, query, postID)
}

func (r *publishHistoryRepository) list(ctx context.Context, query string, arg any) ([]*models.PublishHistory, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var phs []*models.PublishHistory
	for rows.Next() {
		var ph models.PublishHistory
		err := rows.Scan(&ph.ID, &ph.UserID, &ph.PostID, &ph.Platform, &ph.Success, &ph.PlatformPostID, &ph.ErrorMessage, &ph.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		phs = append(phs, &ph)
	}
	return phs, nil
}
