package generationlog

import (
	"context"
	"time"

	"github.com/RumenDamyanov/go-seo/app/utils/logger"
)

// Record is one generated piece of metadata, kept for operator review
type Record struct {
	ID        uint
	Operation string
	Engine    string
	URL       string
	Output    string
	CreatedAt time.Time
}

// Repository persists generation records
type Repository interface {
	Create(ctx context.Context, record *Record) error
	Recent(ctx context.Context, limit int) ([]*Record, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Service records generation history without ever blocking or failing a
// generation call. A nil repository disables history entirely.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Enabled reports whether history is being recorded
func (s *Service) Enabled() bool {
	return s != nil && s.repo != nil
}

// Log records one generation asynchronously. Failures are logged and
// dropped; history is an observability aid, not part of the result.
func (s *Service) Log(operation, engine, url, output string) {
	if !s.Enabled() {
		return
	}
	record := &Record{
		Operation: operation,
		Engine:    engine,
		URL:       url,
		Output:    output,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.Create(ctx, record); err != nil {
			logger.GetLogger().Warnf("Failed to record generation: %v", err)
		}
	}()
}

// Recent returns the newest records, capped at limit
func (s *Service) Recent(ctx context.Context, limit int) ([]*Record, error) {
	if !s.Enabled() {
		return nil, nil
	}
	if limit < 1 || limit > 500 {
		limit = 50
	}
	return s.repo.Recent(ctx, limit)
}

// Prune removes records older than the retention window
func (s *Service) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	if !s.Enabled() || retention <= 0 {
		return 0, nil
	}
	return s.repo.DeleteOlderThan(ctx, time.Now().Add(-retention))
}
