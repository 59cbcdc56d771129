package analysis

import "math"

// Grade maps an overall score percentage to a letter grade.
func Grade(scorePercent float64) string {
	switch {
	case scorePercent >= 90:
		return "A+"
	case scorePercent >= 80:
		return "A"
	case scorePercent >= 70:
		return "B+"
	case scorePercent >= 60:
		return "B"
	case scorePercent >= 50:
		return "C+"
	case scorePercent >= 40:
		return "C"
	default:
		return "D"
	}
}

// PercentileEstimator places a score within a population of test takers.
type PercentileEstimator interface {
	Percentile(scorePercent float64) int
}

// ScorePercentile is a stand-in estimator that derives the percentile from the
// score alone, clamped to 1..99. It does not look at other attempts.
type ScorePercentile struct{}

func (ScorePercentile) Percentile(scorePercent float64) int {
	p := int(math.Round(scorePercent))
	if p < 1 {
		return 1
	}
	if p > 99 {
		return 99
	}
	return p
}
