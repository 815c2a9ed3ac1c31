package spacedrep

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/abhisek/gitalearn/internal/store"
)

// Scheduler persists memorization progress and applies Schedule to it.
type Scheduler struct {
	kv     store.KV
	logger *log.Logger
}

// NewScheduler creates a scheduler backed by kv.
func NewScheduler(kv store.KV, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Scheduler{kv: kv, logger: logger}
}

// Load returns all progress records. A missing or unreadable document
// yields an empty list.
func (s *Scheduler) Load(ctx context.Context) []ItemProgress {
	var items []ItemProgress
	found, err := s.kv.Get(ctx, store.KeyStudyProgress, &items)
	if err != nil {
		s.logger.Warn("study progress unreadable, starting fresh", "err", err)
		return nil
	}
	if !found {
		return nil
	}
	return items
}

// Get returns the progress record for key, or nil if never reviewed.
func (s *Scheduler) Get(ctx context.Context, key ItemKey) *ItemProgress {
	for _, it := range s.Load(ctx) {
		if it.Key() == key {
			return &it
		}
	}
	return nil
}

// Review records a review of key with the given rating and persists it.
func (s *Scheduler) Review(ctx context.Context, key ItemKey, rating Rating, now time.Time) (ItemProgress, error) {
	items := s.Load(ctx)

	idx := -1
	for i, it := range items {
		if it.Key() == key {
			idx = i
			break
		}
	}

	var prev *ItemProgress
	if idx >= 0 {
		prev = &items[idx]
	}
	next, err := Schedule(prev, key, rating, now)
	if err != nil {
		return ItemProgress{}, err
	}

	if idx >= 0 {
		items[idx] = next
	} else {
		items = append(items, next)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Chapter != items[j].Chapter {
			return items[i].Chapter < items[j].Chapter
		}
		return items[i].Verse < items[j].Verse
	})

	if err := s.kv.Put(ctx, store.KeyStudyProgress, items); err != nil {
		return ItemProgress{}, fmt.Errorf("save study progress: %w", err)
	}
	s.logger.Debug("item reviewed", "item", key, "rating", rating, "interval", next.Interval, "ease", next.EaseFactor)
	return next, nil
}

// Due returns items due for review at now, most overdue first.
func (s *Scheduler) Due(ctx context.Context, now time.Time) []ItemProgress {
	return DueItems(s.Load(ctx), now)
}
