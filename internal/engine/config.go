package engine

// Config carries the tunable coefficients of the scoring function and
// the fairness lookback window. Defaults match the values the domain
// has standardized on; callers MAY override any of them.
type Config struct {
	FairnessWindowDays int

	ScorePriorityWeight float64
	ScoreJitterWeight   float64
	ScoreRecentPenalty  float64
	ScorePairPenalty    float64

	BonusRecommended float64
	BonusMandatory   float64
}

// DefaultConfig returns the standard coefficient set.
func DefaultConfig() Config {
	return Config{
		FairnessWindowDays: 60,

		ScorePriorityWeight: 10,
		ScoreJitterWeight:   3,
		ScoreRecentPenalty:  2,
		ScorePairPenalty:    1.5,

		BonusRecommended: 2,
		BonusMandatory:   5,
	}
}
