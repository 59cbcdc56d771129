package analysis

import (
	"testinsight-backend/internal/model"
)

const (
	idealSecondsPerQuestion = 90.0
	minEfficiency           = 20.0
	maxEfficiency           = 100.0
	fastFactor              = 0.7
	slowFactor              = 1.3
)

var pacingGuidance = map[string][]string{
	model.PacingTooFast: {
		"You are moving faster than needed. Read every question twice before answering.",
		"Use spare time to re-check calculations and units.",
		"Watch for keywords such as NOT and EXCEPT that change the answer.",
	},
	model.PacingOptimal: {
		"Your pacing is well balanced. Keep the same rhythm in future tests.",
		"Keep a few minutes at the end for reviewing flagged questions.",
	},
	model.PacingTooSlow: {
		"You are spending too long per question. Practise with a timer set to 90 seconds.",
		"Skip questions that stall you and come back to them after a first pass.",
		"Learn key formulas by heart so you do not derive them during the test.",
		"Solve timed sectional tests every week to build speed.",
	},
}

// AnalyzeTime compares the average time per question to a 90 second ideal.
// An attempt without questions is treated as optimally paced.
func AnalyzeTime(attempt *model.TestAttempt) model.TimeManagementAnalysis {
	if attempt == nil || attempt.TotalQuestions <= 0 {
		return timeAnalysis(0, maxEfficiency, model.PacingOptimal)
	}

	avg := attempt.TotalTimeTaken / float64(attempt.TotalQuestions)
	efficiency := maxEfficiency
	if avg > 0 {
		efficiency = clamp(idealSecondsPerQuestion/avg*100, minEfficiency, maxEfficiency)
	}

	pacing := model.PacingOptimal
	switch {
	case avg < fastFactor*idealSecondsPerQuestion:
		pacing = model.PacingTooFast
	case avg > slowFactor*idealSecondsPerQuestion:
		pacing = model.PacingTooSlow
	}
	return timeAnalysis(avg, efficiency, pacing)
}

func timeAnalysis(avg, efficiency float64, pacing string) model.TimeManagementAnalysis {
	return model.TimeManagementAnalysis{
		AverageTimePerQuestion: avg,
		Efficiency:             efficiency,
		Pacing:                 pacing,
		Recommendations:        append([]string(nil), pacingGuidance[pacing]...),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
