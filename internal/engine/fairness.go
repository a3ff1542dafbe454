package engine

import (
	"context"
	"fmt"

	"github.com/MarckFp/ppoc-gen-v2/internal/entity"
	"github.com/MarckFp/ppoc-gen-v2/internal/repository"
)

type pairKey struct {
	a, b entity.PublisherID
}

func pairKeyOf(x, y entity.PublisherID) pairKey {
	a, b := entity.CanonicalPair(x, y)
	return pairKey{a: a, b: b}
}

// FairnessWindow tracks, for the trailing lookback window preceding a
// generation run, how many shifts each publisher already appears in
// and how many shifts each unordered pair of publishers already
// co-appears in. Both counts are run-local and are mutated in place as
// the Generator Driver persists new shifts, so fairness pressure
// reflects the run's own effects on later days of the same run.
type FairnessWindow struct {
	recentCount map[entity.PublisherID]int
	pairCount   map[pairKey]int
}

// NewFairnessWindow returns an empty accumulator.
func NewFairnessWindow() *FairnessWindow {
	return &FairnessWindow{
		recentCount: make(map[entity.PublisherID]int),
		pairCount:   make(map[pairKey]int),
	}
}

// BuildFairnessWindow seeds an accumulator from existing shifts, such
// as those returned by Store.ListShiftsBetween for the lookback window.
func BuildFairnessWindow(shifts []*entity.Shift) *FairnessWindow {
	fw := NewFairnessWindow()
	for _, sh := range shifts {
		fw.Record(sh.Publishers)
	}
	return fw
}

// RecentCount returns how many times pid appears in the window so far.
func (fw *FairnessWindow) RecentCount(pid entity.PublisherID) int {
	return fw.recentCount[pid]
}

// PairCount returns how many times a and b co-appear in the window so far.
func (fw *FairnessWindow) PairCount(a, b entity.PublisherID) int {
	return fw.pairCount[pairKeyOf(a, b)]
}

// Record folds a newly produced shift's publisher set into the
// accumulators. Call this once per persisted shift.
func (fw *FairnessWindow) Record(publishers []entity.PublisherID) {
	for _, p := range publishers {
		fw.recentCount[p]++
	}
	for i := 0; i < len(publishers); i++ {
		for j := i + 1; j < len(publishers); j++ {
			fw.pairCount[pairKeyOf(publishers[i], publishers[j])]++
		}
	}
}

// relationshipIndex memoizes Store.ListRelationshipsForPublisher per
// publisher for the lifetime of one generation run, so a publisher who
// reappears across many shifts in the same run is only queried once.
type relationshipIndex struct {
	store repository.Store
	cache map[entity.PublisherID][]entity.RelationshipEdge
}

func newRelationshipIndex(store repository.Store) *relationshipIndex {
	return &relationshipIndex{store: store, cache: make(map[entity.PublisherID][]entity.RelationshipEdge)}
}

func (idx *relationshipIndex) edgesFor(ctx context.Context, pid entity.PublisherID) ([]entity.RelationshipEdge, error) {
	if edges, ok := idx.cache[pid]; ok {
		return edges, nil
	}
	edges, err := idx.store.ListRelationshipsForPublisher(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("list relationships for publisher %d: %w", pid, err)
	}
	idx.cache[pid] = edges
	return edges, nil
}

// snapshot builds a plain map covering exactly the given publishers,
// suitable for ScoreContext.Relationships, fetching (and caching) any
// not already memoized.
func (idx *relationshipIndex) snapshot(ctx context.Context, publishers []*entity.Publisher) (map[entity.PublisherID][]entity.RelationshipEdge, error) {
	out := make(map[entity.PublisherID][]entity.RelationshipEdge, len(publishers))
	for _, p := range publishers {
		edges, err := idx.edgesFor(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		out[p.ID] = edges
	}
	return out, nil
}
