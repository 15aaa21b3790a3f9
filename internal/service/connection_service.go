package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	config "github.com/dataopslabs/socials-gateway/configs"
	"github.com/dataopslabs/socials-gateway/internal/models"
	"github.com/dataopslabs/socials-gateway/internal/transfer"
)

// ConnectionService caches each user's OAuth-connected accounts as
// reported by the oauth-posts API. Accounts are issued per user, so the
// cache is keyed by user id and one user's entry is replaced wholesale on
// every Load for that user; callers re-Load after any mutating call.
type ConnectionService interface {
	Load(ctx context.Context, userID int64) ([]models.ConnectionRecord, error)
	Cached(userID int64) []models.ConnectionRecord
	IsConnected(userID int64, platform string) bool
	Connected(ctx context.Context, userID int64, platform string) (bool, error)
	Connect(ctx context.Context, platform string, userID int64) (string, error)
	Disconnect(ctx context.Context, accountID, userID int64) error
}

type connectionService struct {
	cfg    config.Config
	client *http.Client

	mu       sync.RWMutex
	accounts map[int64][]models.ConnectionRecord
}

func NewConnectionService(cfg config.Config) ConnectionService {
	return &connectionService{
		cfg:      cfg,
		client:   http.DefaultClient,
		accounts: make(map[int64][]models.ConnectionRecord),
	}
}

type accountsResponse struct {
	Accounts []models.ConnectionRecord `json:"accounts"`
	Total    int                       `json:"total"`
}

func (s *connectionService) Load(ctx context.Context, userID int64) ([]models.ConnectionRecord, error) {
	var out accountsResponse
	endpoint := fmt.Sprintf("%s/api/v1/oauth-posts/accounts/%d", s.cfg.APIBaseURL, userID)
	if err := getJSON(ctx, s.client, endpoint, &out); err != nil {
		return nil, fmt.Errorf("loading connected accounts: %w", err)
	}

	s.mu.Lock()
	s.accounts[userID] = out.Accounts
	s.mu.Unlock()

	return out.Accounts, nil
}

func (s *connectionService) Cached(userID int64) []models.ConnectionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accounts := s.accounts[userID]
	out := make([]models.ConnectionRecord, len(accounts))
	copy(out, accounts)
	return out
}

// IsConnected is a pure cache lookup; it never reports another user's
// connections.
func (s *connectionService) IsConnected(userID int64, platform string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts[userID] {
		if a.Platform == platform {
			return true
		}
	}
	return false
}

// Connected answers like IsConnected but fetches the user's account list
// first when it has never been loaded, so a fresh session is not mistaken
// for a disconnected user.
func (s *connectionService) Connected(ctx context.Context, userID int64, platform string) (bool, error) {
	s.mu.RLock()
	_, loaded := s.accounts[userID]
	s.mu.RUnlock()

	if !loaded {
		if _, err := s.Load(ctx, userID); err != nil {
			return false, err
		}
	}
	return s.IsConnected(userID, platform), nil
}

// Connect asks the upstream for an authorization URL; the caller redirects
// the browser there and the provider eventually sends it back with the
// query parameters handled by ParseOAuthReturn.
func (s *connectionService) Connect(ctx context.Context, platform string, userID int64) (string, error) {
	if platform == "" {
		return "", errors.New("platform cannot be empty")
	}

	var out transfer.OAuthInitResponse
	endpoint := fmt.Sprintf("%s/api/v1/oauth-posts/auth/%s/connect?user_id=%d", s.cfg.APIBaseURL, url.PathEscape(platform), userID)
	if err := getJSON(ctx, s.client, endpoint, &out); err != nil {
		return "", fmt.Errorf("initiating %s connection: %w", platform, err)
	}
	if out.OAuthURL == "" {
		return "", errors.New("upstream returned no oauth_url")
	}
	return out.OAuthURL, nil
}

func (s *connectionService) Disconnect(ctx context.Context, accountID, userID int64) error {
	endpoint := fmt.Sprintf("%s/api/v1/oauth-posts/accounts/%d?user_id=%d", s.cfg.APIBaseURL, accountID, userID)
	if err := deleteJSON(ctx, s.client, endpoint, nil); err != nil {
		return fmt.Errorf("disconnecting account %d: %w", accountID, err)
	}

	if _, err := s.Load(ctx, userID); err != nil {
		return err
	}
	return nil
}

// OAuthReturn is the outcome carried in the provider's redirect back to
// the app.
type OAuthReturn struct {
	Connected   bool
	AccountName string
	Err         string
}

// ParseOAuthReturn reads the redirect query parameters. It reports false
// when the query carries no OAuth outcome at all, so a plain page load is
// not mistaken for a callback.
func ParseOAuthReturn(q url.Values) (*OAuthReturn, bool) {
	if q.Get("success") == "linkedin_connected" {
		return &OAuthReturn{
			Connected:   true,
			AccountName: q.Get("name"),
		}, true
	}

	if errCode := q.Get("error"); errCode != "" {
		msg := q.Get("message")
		if msg == "" {
			msg = errCode
		}
		return &OAuthReturn{Err: msg}, true
	}

	return nil, false
}

// StripOAuthParams returns the URL with the callback parameters removed,
// so reloading the stripped URL cannot re-trigger the same result.
func StripOAuthParams(u *url.URL) string {
	q := u.Query()
	q.Del("success")
	q.Del("name")
	q.Del("error")
	q.Del("message")
	stripped := *u
	stripped.RawQuery = q.Encode()
	return stripped.String()
}
