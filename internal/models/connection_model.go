package models

// ConnectionRecord describes one OAuth-connected social account as reported
// by the upstream oauth-posts API. Records are replaced wholesale on every
// fetch, never mutated in place.
type ConnectionRecord struct {
	ID          int64              `json:"id"`
	Platform    string             `json:"platform"`
	AccountID   string             `json:"account_id,omitempty"`
	UserInfo    ConnectionUserInfo `json:"user_info"`
	ConnectedAt string             `json:"connected_at,omitempty"`
	Status      string             `json:"status,omitempty"`
}

type ConnectionUserInfo struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}
