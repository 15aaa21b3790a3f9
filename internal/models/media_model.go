package models

import "time"

// LibraryAsset is an already-persisted media asset selected from the
// library. Its URL is final; no upload happens for it at publish time.
type LibraryAsset struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Type        string `json:"type"` // image or video
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Prompt      string `json:"prompt,omitempty"`
	AIGenerated bool   `json:"ai_generated,omitempty"`
}

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// OrphanedUpload records an object key that was uploaded before a later
// file in the same batch failed. Uploads are not rolled back; these rows
// exist for manual cleanup.
type OrphanedUpload struct {
	ID        int64     `db:"id"`
	PostID    string    `db:"post_id"`
	S3Key     string    `db:"s3_key"`
	CreatedAt time.Time `db:"created_at"`
}

// PublishHistory is one per-platform outcome row for a publish run.
type PublishHistory struct {
	ID             int64     `db:"id"`
	UserID         int64     `db:"user_id"`
	PostID         string    `db:"post_id"`
	Platform       string    `db:"platform"`
	Success        bool      `db:"success"`
	PlatformPostID string    `db:"platform_post_id"`
	ErrorMessage   string    `db:"error_message"`
	CreatedAt      time.Time `db:"created_at"`
}
