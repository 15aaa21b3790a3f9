package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/dataopslabs/socials-gateway/internal/models"
)

// Orphaned uploads are object keys that made it to storage before a later
// upload in the same batch failed. Nothing deletes them automatically; the
// rows exist so an operator can clean the bucket up by hand.
type OrphanedUploadRepository interface {
	Create(ctx context.Context, ou *models.OrphanedUpload) (int64, error)
	ListByPostID(ctx context.Context, postID string) ([]*models.OrphanedUpload, error)
}

type orphanedUploadRepository struct {
	db *sql.DB
}

func NewOrphanedUploadRepository(db *sql.DB) OrphanedUploadRepository {
	return &orphanedUploadRepository{db: db}
}

func (r *orphanedUploadRepository) Create(ctx context.Context, ou *models.OrphanedUpload) (int64, error) {
	query := `
		INSERT INTO orphaned_uploads (post_id, s3_key)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, ou.PostID, ou.S3Key).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *orphanedUploadRepository) ListByPostID(ctx context.Context, postID string) ([]*models.OrphanedUpload, error) {
	query := `SELECT id, post_id, s3_key, created_at FROM orphaned_uploads WHERE post_id = $1`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var ous []*models.OrphanedUpload
	for rows.Next() {
		var ou models.OrphanedUpload
		if err := rows.Scan(&ou.ID, &ou.PostID, &ou.S3Key, &ou.CreatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		ous = append(ous, &ou)
	}
	return ous, nil
}
