package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/MarckFp/ppoc-gen-v2/internal/entity"
	"github.com/MarckFp/ppoc-gen-v2/internal/repository"
)

// BuildCandidatePool computes the eligible publisher set for (day,
// schedule): available for the schedule, not absent that day, and not
// already assigned to a different shift the same day within this run.
func BuildCandidatePool(
	ctx context.Context,
	store repository.Store,
	sched *entity.Schedule,
	day time.Time,
	assignedToday map[entity.PublisherID]bool,
	publishersByID map[entity.PublisherID]*entity.Publisher,
) ([]*entity.Publisher, error) {
	eligibleIDs, err := store.ListPublishersForSchedule(ctx, sched.ID)
	if err != nil {
		return nil, fmt.Errorf("list publishers for schedule %d: %w", sched.ID, err)
	}

	pool := make([]*entity.Publisher, 0, len(eligibleIDs))
	for _, pid := range eligibleIDs {
		if assignedToday[pid] {
			continue
		}
		p, ok := publishersByID[pid]
		if !ok || p.IsDeleted() {
			continue
		}
		absent, err := store.IsAbsentOn(ctx, pid, day)
		if err != nil {
			return nil, fmt.Errorf("check absence for publisher %d: %w", pid, err)
		}
		if absent {
			continue
		}
		pool = append(pool, p)
	}
	return pool, nil
}
