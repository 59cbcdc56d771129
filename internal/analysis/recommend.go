package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"testinsight-backend/internal/model"
	"testinsight-backend/internal/taxonomy"
	"testinsight-backend/utilities"
)

const (
	weaknessThreshold     = 60.0
	highPriorityThreshold = 40.0
	strengthThreshold     = 80.0
	maxStrengths          = 2
	slowAverageSeconds    = 120.0
	changedAnswerRatio    = 0.3
)

// AdviceEnricher rewrites the description of a weakness recommendation.
type AdviceEnricher interface {
	SuggestStudyAdvice(ctx context.Context, subject, topic string, accuracy float64) (string, error)
}

type Recommender struct {
	tx       *taxonomy.Taxonomy
	enricher AdviceEnricher
	timeout  time.Duration
}

// NewRecommender builds a Recommender. enricher may be nil.
func NewRecommender(tx *taxonomy.Taxonomy, enricher AdviceEnricher, timeout time.Duration) *Recommender {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Recommender{tx: tx, enricher: enricher, timeout: timeout}
}

// Recommend emits weaknesses, then strengths, then the time management and
// strategy recommendations. The order is insertion order; use SortByPriority
// for display.
func (r *Recommender) Recommend(ctx context.Context, attempt *model.TestAttempt, topics []model.TopicAnalysis) []model.Recommendation {
	recs := make([]model.Recommendation, 0)

	for _, t := range topics {
		if t.Accuracy < weaknessThreshold {
			recs = append(recs, r.weakness(ctx, t))
		}
	}

	for _, t := range topStrengths(topics) {
		recs = append(recs, strength(t))
	}

	if attempt == nil || attempt.TotalQuestions <= 0 {
		return recs
	}

	if attempt.TotalTimeTaken/float64(attempt.TotalQuestions) > slowAverageSeconds {
		recs = append(recs, model.Recommendation{
			Type:        model.RecommendationTimeManagement,
			Title:       "Work on your pacing",
			Description: fmt.Sprintf("You spent %.0f seconds per question on average, more than the %d seconds a timed test allows.", attempt.TotalTimeTaken/float64(attempt.TotalQuestions), int(slowAverageSeconds)),
			ActionItems: []string{
				"Practise with a timer and aim for 90 seconds per question",
				"Skip questions that take longer than two minutes and return to them at the end",
				"Do a quick first pass answering the questions you are sure of",
			},
			Priority: model.PriorityMedium,
		})
	}

	if float64(attempt.ChangedAnswers) > changedAnswerRatio*float64(attempt.TotalQuestions) {
		recs = append(recs, model.Recommendation{
			Type:  model.RecommendationStrategy,
			Title: "Trust your first instinct",
			Description: fmt.Sprintf("You changed %d answers and %d of those changes ended on the correct option. Change an answer only when you find a concrete error.",
				attempt.ChangedAnswers, attempt.ChangedToCorrect),
			ActionItems: []string{
				"Mark questions you are unsure of instead of changing them straight away",
				"Change an answer only if you can point to the mistake in your first attempt",
				"Review your changed answers after each practice test",
			},
			Priority: model.PriorityMedium,
		})
	}
	return recs
}

func (r *Recommender) weakness(ctx context.Context, t model.TopicAnalysis) model.Recommendation {
	advice := r.tx.Advice(t.Topic)
	priority := model.PriorityMedium
	if t.Accuracy < highPriorityThreshold {
		priority = model.PriorityHigh
	}
	return model.Recommendation{
		Type:        model.RecommendationWeakness,
		Subject:     t.Subject,
		Topic:       t.Topic,
		Title:       "Improve your " + t.Topic,
		Description: r.enrich(ctx, t, advice.Description),
		ActionItems: advice.ActionItems,
		Priority:    priority,
	}
}

// enrich returns the enricher's description, or the template on any failure.
func (r *Recommender) enrich(ctx context.Context, t model.TopicAnalysis, template string) string {
	if r.enricher == nil {
		return template
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	advice, err := r.enricher.SuggestStudyAdvice(ctx, t.Subject, t.Topic, t.Accuracy)
	if err != nil {
		utilities.Warn("advice enrichment failed for %s: %v", t.Topic, err)
		return template
	}
	advice = strings.TrimSpace(advice)
	if advice == "" {
		return template
	}
	return advice
}

func strength(t model.TopicAnalysis) model.Recommendation {
	return model.Recommendation{
		Type:        model.RecommendationStrength,
		Subject:     t.Subject,
		Topic:       t.Topic,
		Title:       "Keep up your strength in " + t.Topic,
		Description: fmt.Sprintf("You answered %.0f%% of your %s questions correctly. Keep this topic fresh and use it to support weaker areas.", t.Accuracy, t.Topic),
		ActionItems: []string{
			fmt.Sprintf("Attempt harder %s problems to stay sharp", t.Topic),
			fmt.Sprintf("Explain %s concepts to a classmate to reinforce them", t.Topic),
		},
		Priority: model.PriorityLow,
	}
}

// topStrengths returns at most two topics at or above the strength threshold,
// highest accuracy first. Ties keep their input order.
func topStrengths(topics []model.TopicAnalysis) []model.TopicAnalysis {
	var strong []model.TopicAnalysis
	for _, t := range topics {
		if t.Accuracy >= strengthThreshold {
			strong = append(strong, t)
		}
	}
	sort.SliceStable(strong, func(i, j int) bool { return strong[i].Accuracy > strong[j].Accuracy })
	if len(strong) > maxStrengths {
		strong = strong[:maxStrengths]
	}
	return strong
}

var priorityRank = map[string]int{
	model.PriorityHigh:   0,
	model.PriorityMedium: 1,
	model.PriorityLow:    2,
}

// SortByPriority returns a copy ordered High, Medium, Low for presentation.
// Recommendations of equal priority keep their relative order.
func SortByPriority(recs []model.Recommendation) []model.Recommendation {
	out := append([]model.Recommendation(nil), recs...)
	sort.SliceStable(out, func(i, j int) bool {
		return priorityRank[out[i].Priority] < priorityRank[out[j].Priority]
	})
	return out
}
