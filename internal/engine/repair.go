package engine

import (
	"sort"

	"github.com/MarckFp/ppoc-gen-v2/internal/entity"
)

// Repair runs the Constraint Repairer over a greedily-filled selection,
// in the strict order the domain requires: enforce mandatory pairs,
// lock them, reduce excess managers, top up sisters, top up brothers,
// trim to capacity, and finally flag undercapacity. It returns the
// repaired selection and at most one warning string.
func Repair(sc ScoreContext, sel []*entity.Publisher, pool []*entity.Publisher, sched *entity.Schedule) ([]*entity.Publisher, string) {
	poolByID := make(map[entity.PublisherID]*entity.Publisher, len(pool))
	for _, p := range pool {
		poolByID[p.ID] = p
	}

	sel = enforceMandatoryInclusion(sel, poolByID, sc.Relationships)
	locked := mandatoryLockedSet(sel, sc.Relationships)

	var warning string

	sel, w := reduceExcessManagers(sc, sel, locked, sched.NumShiftManagers)
	recordWarning(&warning, w)

	sel, w = ensureGenderMinimum(sc, sel, pool, locked, entity.GenderFemale, sched.NumSisters, sched.NumPublishers,
		WarningFewerSisters, WarningNoSlotForSister, sched.NumShiftManagers)
	recordWarning(&warning, w)

	sel, w = ensureGenderMinimum(sc, sel, pool, locked, entity.GenderMale, sched.NumBrothers, sched.NumPublishers,
		WarningFewerBrothers, WarningNoSlotForBrother, sched.NumShiftManagers)
	recordWarning(&warning, w)

	sel, w = capacityTrim(sc, sel, sched.NumPublishers)
	recordWarning(&warning, w)

	if len(sel) < sched.NumPublishers {
		recordWarning(&warning, WarningUnderCapacity)
	}

	return sel, warning
}

// enforceMandatoryInclusion walks sel (including members added during
// the walk, giving transitive closure over chains of mandatory pairs)
// and appends every mandatory partner that is in the candidate pool
// and not already selected. It may push len(sel) above N; capacityTrim
// resolves that later.
func enforceMandatoryInclusion(sel []*entity.Publisher, poolByID map[entity.PublisherID]*entity.Publisher, relationships map[entity.PublisherID][]entity.RelationshipEdge) []*entity.Publisher {
	inSel := make(map[entity.PublisherID]bool, len(sel))
	for _, p := range sel {
		inSel[p.ID] = true
	}
	for i := 0; i < len(sel); i++ {
		for _, edge := range relationships[sel[i].ID] {
			if edge.Kind != entity.RelationshipMandatory || inSel[edge.Other] {
				continue
			}
			partner, ok := poolByID[edge.Other]
			if !ok {
				continue
			}
			sel = append(sel, partner)
			inSel[edge.Other] = true
		}
	}
	return sel
}

// mandatoryLockedSet is the union of every pair {p,o} ⊆ sel connected
// by a Mandatory relationship. The manager and gender repair steps
// never remove its members; capacityTrim removes some of them only when
// the locked members alone exceed N.
func mandatoryLockedSet(sel []*entity.Publisher, relationships map[entity.PublisherID][]entity.RelationshipEdge) map[entity.PublisherID]bool {
	inSel := make(map[entity.PublisherID]bool, len(sel))
	for _, p := range sel {
		inSel[p.ID] = true
	}
	locked := make(map[entity.PublisherID]bool)
	for _, p := range sel {
		for _, edge := range relationships[p.ID] {
			if edge.Kind == entity.RelationshipMandatory && inSel[edge.Other] {
				locked[p.ID] = true
				locked[edge.Other] = true
			}
		}
	}
	return locked
}

func sortAscendingByScore(sc ScoreContext, sel []*entity.Publisher, group []*entity.Publisher) {
	sort.Slice(group, func(i, j int) bool {
		si := scoreInSelection(sc, group[i], sel)
		sj := scoreInSelection(sc, group[j], sel)
		if si != sj {
			return si < sj
		}
		return group[i].ID < group[j].ID
	})
}

// reduceExcessManagers removes managers not in locked, worst score
// first, until the manager count is at most M or no removable manager
// remains.
func reduceExcessManagers(sc ScoreContext, sel []*entity.Publisher, locked map[entity.PublisherID]bool, m int) ([]*entity.Publisher, string) {
	managerCount := func() int {
		n := 0
		for _, p := range sel {
			if p.IsShiftManager {
				n++
			}
		}
		return n
	}

	for managerCount() > m {
		var removable []*entity.Publisher
		for _, p := range sel {
			if p.IsShiftManager && !locked[p.ID] {
				removable = append(removable, p)
			}
		}
		if len(removable) == 0 {
			return sel, WarningExtraManagers
		}
		sortAscendingByScore(sc, sel, removable)
		sel = excludeID(sel, removable[0].ID)
	}
	return sel, ""
}

// freeSlot removes and returns the publisher of gender g that is
// cheapest to displace: lowest score among non-managers not in locked,
// falling back to any non-locked member of that gender. It returns nil
// (and leaves sel unchanged) if nothing can be freed.
func freeSlot(sc ScoreContext, sel []*entity.Publisher, locked map[entity.PublisherID]bool, g entity.Gender) (*entity.Publisher, []*entity.Publisher) {
	var nonManager, any []*entity.Publisher
	for _, p := range sel {
		if p.Gender != g || locked[p.ID] {
			continue
		}
		any = append(any, p)
		if !p.IsShiftManager {
			nonManager = append(nonManager, p)
		}
	}

	pick := func(group []*entity.Publisher) *entity.Publisher {
		if len(group) == 0 {
			return nil
		}
		sortAscendingByScore(sc, sel, group)
		return group[0]
	}

	victim := pick(nonManager)
	if victim == nil {
		victim = pick(any)
	}
	if victim == nil {
		return nil, sel
	}
	return victim, excludeID(sel, victim.ID)
}

// ensureGenderMinimum implements both §4.6(d) "ensure ≥ S sisters" and
// its symmetric §4.6(e) "ensure ≥ B brothers": top up the count of
// gender g to at least min, displacing the opposite gender to free
// capacity when the shift is already full. managerQuota is
// the manager quota M; once it is met, new males are preferred among
// non-managers (irrelevant when g is Female).
func ensureGenderMinimum(
	sc ScoreContext,
	sel []*entity.Publisher,
	pool []*entity.Publisher,
	locked map[entity.PublisherID]bool,
	g entity.Gender,
	min, capacity int,
	fewerWarning, noSlotWarning string,
	managerQuota int,
) ([]*entity.Publisher, string) {
	opposite := entity.GenderFemale
	if g == entity.GenderFemale {
		opposite = entity.GenderMale
	}

	for countGender(sel, g) < min {
		inSel := make(map[entity.PublisherID]bool, len(sel))
		managerCount := 0
		for _, p := range sel {
			inSel[p.ID] = true
			if p.IsShiftManager {
				managerCount++
			}
		}

		var candidate *entity.Publisher
		if g == entity.GenderMale && managerCount >= managerQuota {
			candidate = bestAvailable(sc, pool, sel, inSel, func(p *entity.Publisher) bool {
				return p.Gender == g && !p.IsShiftManager
			})
		}
		if candidate == nil {
			candidate = bestAvailable(sc, pool, sel, inSel, func(p *entity.Publisher) bool {
				return p.Gender == g
			})
		}
		if candidate == nil {
			return sel, fewerWarning
		}

		if len(sel) >= capacity {
			var victim *entity.Publisher
			victim, sel = freeSlot(sc, sel, locked, opposite)
			if victim == nil {
				return sel, noSlotWarning
			}
		}
		sel = append(sel, candidate)
	}
	return sel, ""
}

// bestAvailable returns the highest-scoring publisher in pool matching
// filter that is not already in sel, or nil if none qualifies.
func bestAvailable(sc ScoreContext, pool []*entity.Publisher, sel []*entity.Publisher, inSel map[entity.PublisherID]bool, filter func(*entity.Publisher) bool) *entity.Publisher {
	var best *entity.Publisher
	var bestScore float64
	for _, p := range pool {
		if inSel[p.ID] || (filter != nil && !filter(p)) {
			continue
		}
		score := Score(sc, p, sel)
		if best == nil || score > bestScore || (score == bestScore && p.ID < best.ID) {
			best = p
			bestScore = score
		}
	}
	return best
}

// capacityTrim enforces |sel| ≤ N, preferring to remove non-mandatory
// members first. If the mandatory-locked set alone still exceeds N, it
// removes globally lowest-scoring members regardless of lock status.
func capacityTrim(sc ScoreContext, sel []*entity.Publisher, n int) ([]*entity.Publisher, string) {
	if len(sel) <= n {
		return sel, ""
	}

	locked := mandatoryLockedSet(sel, sc.Relationships)
	removedAny := false

	for len(sel) > n {
		var removable []*entity.Publisher
		for _, p := range sel {
			if !locked[p.ID] {
				removable = append(removable, p)
			}
		}
		if len(removable) == 0 {
			break
		}
		sortAscendingByScore(sc, sel, removable)
		sel = excludeID(sel, removable[0].ID)
		removedAny = true
	}

	if len(sel) > n {
		for len(sel) > n {
			group := append([]*entity.Publisher(nil), sel...)
			sortAscendingByScore(sc, sel, group)
			sel = excludeID(sel, group[0].ID)
		}
		return sel, WarningCapacityDrop
	}

	if removedAny {
		return sel, WarningCapacityTrim
	}
	return sel, ""
}
