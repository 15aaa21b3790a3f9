package transfer

type PresignRequest struct {
	PostID   string `json:"post_id"`
	Filename string `json:"filename"`
	Filetype string `json:"filetype"`
}

type PresignResponse struct {
	URL   string `json:"url"`
	S3Key string `json:"s3_key"`
}

type GeneratePromptRequest struct {
	Prompt string `json:"prompt"`
}

type GenerateTextResponse struct {
	GeneratedText string `json:"generated_text"`
}

// GenerateImageResponse tolerates the upstream's three URL field variants.
type GenerateImageResponse struct {
	URL         string `json:"url,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	S3URL       string `json:"s3_url,omitempty"`
	Type        string `json:"type,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Prompt      string `json:"prompt,omitempty"`
	AIGenerated bool   `json:"ai_generated,omitempty"`
}
