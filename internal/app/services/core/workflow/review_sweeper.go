package workflow

import (
	"time"

	"nhscribe-service/internal/app/contracts"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const defaultReviewSweepSpec = "@every 1m"

// ReviewSweeper periodically expires idle review sessions.
type ReviewSweeper struct {
	log     *zap.Logger
	reviews contracts.ReviewUsecase
	spec    string
	now     func() time.Time
	cron    *cron.Cron
}

func NewReviewSweeper(reviews contracts.ReviewUsecase, spec string, logger *zap.Logger) *ReviewSweeper {
	return &ReviewSweeper{log: logger, reviews: reviews, spec: spec, now: time.Now}
}

func (w *ReviewSweeper) Start() {
	c := cron.New()
	_, err := c.AddFunc(w.spec, w.runOnce)
	if err != nil {
		w.log.Warn("workflow.sweeper: invalid cron spec; falling back to default",
			zap.String("spec", w.spec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(defaultReviewSweepSpec, w.runOnce)
	}
	c.Start()
	w.cron = c
}

// Stop waits for a running sweep to finish.
func (w *ReviewSweeper) Stop() {
	if w.cron == nil {
		return
	}
	ctx := w.cron.Stop()
	<-ctx.Done()
	w.cron = nil
}

func (w *ReviewSweeper) runOnce() {
	expired := w.reviews.ExpireIdle(w.now())
	if expired > 0 {
		w.log.Info("workflow.sweeper: expired idle review sessions", zap.Int("expired", expired))
	}
}
