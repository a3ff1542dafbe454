package engine

import "github.com/MarckFp/ppoc-gen-v2/internal/entity"

// splitmix64 runs one step of the SplitMix64 generator. It is the
// mixing function behind Jitter: cheap, well-distributed, and -
// crucially - a pure function of its input, so the same (seed, pid,
// day) always produces the same value within and across runs.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Jitter returns a deterministic pseudo-random value in [0,1) derived
// from (seed, pid, dayOrdinal). dayOrdinal is typically the number of
// days since a fixed epoch, so that two different calendar days never
// collide for the same publisher.
func Jitter(seed uint64, pid entity.PublisherID, dayOrdinal int64) float64 {
	mixed := seed ^ (uint64(pid) * 0x9E3779B97F4A7C15) ^ (uint64(dayOrdinal) * 0xC2B2AE3D27D4EB4F)
	v := splitmix64(mixed)
	return float64(v>>11) / float64(uint64(1)<<53)
}

// ScoreContext bundles everything the scoring function needs besides
// the candidate and the current selection: the coefficient set, the
// fairness accumulators for the run, a per-publisher relationship
// adjacency view, and the jitter seed/day for this (date, schedule).
type ScoreContext struct {
	Config        Config
	Fairness      *FairnessWindow
	Relationships map[entity.PublisherID][]entity.RelationshipEdge
	Seed          uint64
	DayOrdinal    int64
}

func relationshipBonus(cfg Config, edges []entity.RelationshipEdge, sel []*entity.Publisher) float64 {
	if len(edges) == 0 || len(sel) == 0 {
		return 0
	}
	kindByOther := make(map[entity.PublisherID]entity.RelationshipKind, len(edges))
	for _, e := range edges {
		kindByOther[e.Other] = e.Kind
	}
	var bonus float64
	for _, o := range sel {
		switch kindByOther[o.ID] {
		case entity.RelationshipMandatory:
			bonus += cfg.BonusMandatory
		case entity.RelationshipRecommended:
			bonus += cfg.BonusRecommended
		}
	}
	return bonus
}

// Score computes the composite preference score for candidate p given
// the set sel already chosen for the shift. sel must not contain p.
func Score(sc ScoreContext, p *entity.Publisher, sel []*entity.Publisher) float64 {
	cfg := sc.Config

	score := cfg.ScorePriorityWeight * float64(p.Priority)
	score += Jitter(sc.Seed, p.ID, sc.DayOrdinal) * cfg.ScoreJitterWeight
	score += relationshipBonus(cfg, sc.Relationships[p.ID], sel)
	score -= cfg.ScoreRecentPenalty * float64(sc.Fairness.RecentCount(p.ID))

	var pairPenalty float64
	for _, o := range sel {
		pairPenalty += float64(sc.Fairness.PairCount(p.ID, o.ID))
	}
	score -= cfg.ScorePairPenalty * pairPenalty

	return score
}

// excludeID returns sel without the publisher matching id, preserving
// order. Used when scoring a publisher that is itself already part of
// sel (during repair), so it does not count against itself.
func excludeID(sel []*entity.Publisher, id entity.PublisherID) []*entity.Publisher {
	out := make([]*entity.Publisher, 0, len(sel))
	for _, p := range sel {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// scoreInSelection scores p against the rest of sel, excluding p
// itself if present.
func scoreInSelection(sc ScoreContext, p *entity.Publisher, sel []*entity.Publisher) float64 {
	return Score(sc, p, excludeID(sel, p.ID))
}
