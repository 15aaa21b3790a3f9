package transfer

// PostRequest is the payload for both the direct-credential and the
// OAuth-token posting endpoints; the two share one wire shape.
type PostRequest struct {
	ContentText string   `json:"content_text"`
	MediaURLs   []string `json:"media_urls"`
	MediaType   string   `json:"media_type"` // "text" or "image"
	Platforms   []string `json:"platforms"`
}

type PlatformResult struct {
	Platform       string `json:"platform"`
	Success        bool   `json:"success"`
	Error          string `json:"error,omitempty"`
	PlatformPostID string `json:"platform_post_id,omitempty"`
	PostedAt       string `json:"posted_at,omitempty"`
}

type PostResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Results []PlatformResult `json:"results"`
}

type CredentialStatus struct {
	Status   string `json:"status"` // success, configured, error
	Message  string `json:"message"`
	Username string `json:"username,omitempty"`
}

type CredentialReport struct {
	CredentialsTest map[string]CredentialStatus `json:"credentials_test"`
	Note            string                      `json:"note,omitempty"`
}

type OAuthInitResponse struct {
	OAuthURL string `json:"oauth_url"`
	State    string `json:"state,omitempty"`
	Message  string `json:"message,omitempty"`
}
