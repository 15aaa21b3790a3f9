package job

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dataopslabs/socials-gateway/internal/service"
	"github.com/dataopslabs/socials-gateway/internal/transfer"
)

// CredentialCheckJob polls the posting API's credential test endpoint and
// keeps the latest report around so dashboard reads don't hit the upstream
// on every request.
type CredentialCheckJob struct {
	social service.SocialService

	mu        sync.RWMutex
	report    *transfer.CredentialReport
	checkedAt time.Time
}

func NewCredentialCheckJob(social service.SocialService) *CredentialCheckJob {
	return &CredentialCheckJob{social: social}
}

func (c *CredentialCheckJob) CheckCredentials() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	report, err := c.social.TestCredentials(ctx)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	c.mu.Lock()
	c.report = report
	c.checkedAt = time.Now()
	c.mu.Unlock()
}

// Snapshot returns the last report and when it was taken. A nil report
// means no check has succeeded yet.
func (c *CredentialCheckJob) Snapshot() (*transfer.CredentialReport, time.Time) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.report, c.checkedAt
}
