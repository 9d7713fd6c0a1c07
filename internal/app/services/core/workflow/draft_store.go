package workflow

import (
	"context"
	"fmt"
	"time"

	"nhscribe-service/internal/app/contracts"
	"nhscribe-service/internal/app/models"
	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

type draftRedisStore struct {
	Redis contracts.RedisRepository
	TTL   time.Duration
}

// NewDraftRedisStore keeps drafts in Redis. Every save renews the TTL, so a
// draft only expires after TTL without activity.
func NewDraftRedisStore(redis contracts.RedisRepository, ttl time.Duration) contracts.DraftStore {
	return &draftRedisStore{
		Redis: redis,
		TTL:   ttl,
	}
}

func (s *draftRedisStore) SaveDraft(ctx context.Context, draft *models.DraftSession) error {
	return s.Redis.Set(ctx, draftKey(draft.ID), draft, s.TTL)
}

func (s *draftRedisStore) FindDraftByID(ctx context.Context, draftID string) (*models.DraftSession, error) {
	raw, err := s.Redis.Get(ctx, draftKey(draftID))
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, exceptions.ErrDraftNotFound(draftID)
	}

	var draft models.DraftSession
	err = json.Unmarshal([]byte(raw), &draft)
	if err != nil {
		return nil, exceptions.ErrRedisGet(err)
	}
	return &draft, nil
}

func draftKey(draftID string) string {
	return fmt.Sprintf(constvars.RedisKeyDraftFormat, draftID)
}
