package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReviewSweeper(t *testing.T) {
	t.Run("Sweep expires idle sessions", func(t *testing.T) {
		f := newReviewFixture()
		view := f.open(t)
		sweeper := NewReviewSweeper(f.uc, "@every 1m", zap.NewNop())
		sweeper.now = func() time.Time { return f.wall.Add(time.Hour) }

		sweeper.runOnce()

		_, err := f.uc.GetReview(context.Background(), view.ID)
		require.Error(t, err)
		assert.NotContains(t, f.uc.sessions, view.ID)
	})

	t.Run("Invalid spec falls back and stops cleanly", func(t *testing.T) {
		f := newReviewFixture()
		sweeper := NewReviewSweeper(f.uc, "every now and then", zap.NewNop())

		sweeper.Start()
		require.NotNil(t, sweeper.cron)
		assert.Len(t, sweeper.cron.Entries(), 1)

		sweeper.Stop()
		assert.Nil(t, sweeper.cron)
		sweeper.Stop()
	})
}
