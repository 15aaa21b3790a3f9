package transfer

import "github.com/golang-jwt/jwt/v5"

// PublishCreation carries the workflow fields parsed from a publish or
// schedule form submission; staged files arrive alongside it as multipart
// file parts.
type PublishCreation struct {
	Title           string
	Body            string
	Source          string
	DisplayChannels string // JSON array of channel names
	Connectors      string // JSON array of connector ids
	LibraryAssets   string // JSON array of library assets
	ConfirmConnect  bool
	ScheduledDate   string
	ScheduledTime   string
}

type CustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}
