package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rdrx/rdrx/internal/model"
	"github.com/rdrx/rdrx/internal/queue"
)

// ClickService records view analytics. Tracking is a best-effort side
// channel: every failure is logged and swallowed so it can never fail
// the redirect that triggered it. Events go through the broker when
// one is configured, with a direct insert as fallback.
type ClickService struct {
	pub    *queue.Publisher
	clicks ClickStore
	log    *zap.Logger
}

func NewClickService(pub *queue.Publisher, clicks ClickStore, log *zap.Logger) *ClickService {
	return &ClickService{pub: pub, clicks: clicks, log: log}
}

// Track records one resolved redirect. country is nil when the edge
// did not supply one.
func (s *ClickService) Track(ctx context.Context, shortcode, targetURL string, country *string) {
	now := time.Now().UTC()

	if s.pub != nil {
		err := s.pub.PublishClick(ctx, queue.ClickRecordedEvent{
			Shortcode:  shortcode,
			TargetURL:  targetURL,
			Country:    country,
			OccurredAt: now.Format(time.RFC3339),
		})
		if err == nil {
			return
		}
		// fall through to the direct insert
	}

	err := s.clicks.Insert(ctx, model.ClickEvent{
		Shortcode:  shortcode,
		TargetURL:  targetURL,
		Country:    country,
		OccurredAt: now,
	})
	if err != nil {
		s.log.Warn("track view failed", zap.String("code", shortcode), zap.Error(err))
	}
}
