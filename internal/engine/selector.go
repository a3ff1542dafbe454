package engine

import "github.com/MarckFp/ppoc-gen-v2/internal/entity"

// pickBest returns the index in pool of the highest-scoring candidate
// matching filter (nil filter accepts everyone), breaking ties by
// ascending publisher id. It returns -1 if nothing matches.
func pickBest(sc ScoreContext, pool []*entity.Publisher, sel []*entity.Publisher, filter func(*entity.Publisher) bool) int {
	best := -1
	var bestScore float64
	for i, p := range pool {
		if filter != nil && !filter(p) {
			continue
		}
		score := Score(sc, p, sel)
		if best == -1 || score > bestScore || (score == bestScore && p.ID < pool[best].ID) {
			best = i
			bestScore = score
		}
	}
	return best
}

// takeN greedily moves up to n candidates matching filter from pool
// into sel, recomputing every candidate's score against the growing
// selection before each pick (relationship bonus and pair penalty both
// depend on who is already selected).
func takeN(sc ScoreContext, pool, sel []*entity.Publisher, n int, filter func(*entity.Publisher) bool) (newSel, remaining []*entity.Publisher) {
	for i := 0; i < n; i++ {
		idx := pickBest(sc, pool, sel, filter)
		if idx == -1 {
			break
		}
		sel = append(sel, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return sel, pool
}

func countGender(sel []*entity.Publisher, g entity.Gender) int {
	n := 0
	for _, p := range sel {
		if p.Gender == g {
			n++
		}
	}
	return n
}

func isManager(p *entity.Publisher) bool {
	return p.IsShiftManager && p.Gender == entity.GenderMale
}

// GreedySelect fills a shift in four phases - managers, brothers,
// sisters, fillers - each phase taking the highest-scoring eligible
// remainder of pool. The result never exceeds sched.NumPublishers.
func GreedySelect(sc ScoreContext, pool []*entity.Publisher, sched *entity.Schedule) []*entity.Publisher {
	sel := make([]*entity.Publisher, 0, sched.NumPublishers)
	remaining := append([]*entity.Publisher(nil), pool...)

	sel, remaining = takeN(sc, remaining, sel, min(sched.NumShiftManagers, sched.NumPublishers), isManager)

	maleHave := countGender(sel, entity.GenderMale)
	brotherNeed := min(sched.NumBrothers-maleHave, sched.NumPublishers-len(sel))
	if brotherNeed < 0 {
		brotherNeed = 0
	}
	sel, remaining = takeN(sc, remaining, sel, brotherNeed, func(p *entity.Publisher) bool {
		return p.Gender == entity.GenderMale
	})

	sel, remaining = takeN(sc, remaining, sel, min(sched.NumSisters, sched.NumPublishers-len(sel)), func(p *entity.Publisher) bool {
		return p.Gender == entity.GenderFemale
	})

	fillerNeed := sched.NumPublishers - len(sel)
	if fillerNeed < 0 {
		fillerNeed = 0
	}
	sel, _ = takeN(sc, remaining, sel, fillerNeed, nil)

	return sel
}
