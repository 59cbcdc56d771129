// Package analysis turns a completed test attempt into an analysis report:
// topic classification, per-topic aggregation, recommendations, a study plan,
// concept insights and pacing. Every step is a total function of the test, the
// attempt and the taxonomy; the optional LLM collaborators only ever improve
// on the deterministic output.
package analysis

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"testinsight-backend/internal/model"
	"testinsight-backend/internal/taxonomy"
)

// Options wires the optional collaborators of an Engine.
type Options struct {
	Semantic        SemanticClassifier
	Delegation      DelegationConfig
	Enricher        AdviceEnricher
	EnrichTimeout   time.Duration
	PercentileModel PercentileEstimator
}

type Engine struct {
	aggregator  *Aggregator
	recommender *Recommender
	planner     *StudyPlanner
	linker      *InsightLinker
	percentile  PercentileEstimator
}

func NewEngine(tx *taxonomy.Taxonomy, opts Options) *Engine {
	rules := NewRuleClassifier(tx)
	var classifier BatchClassifier = rules
	if opts.Semantic != nil {
		classifier = NewDelegatingClassifier(rules, opts.Semantic, tx, opts.Delegation)
	}
	percentile := opts.PercentileModel
	if percentile == nil {
		percentile = ScorePercentile{}
	}
	return &Engine{
		aggregator:  NewAggregator(classifier),
		recommender: NewRecommender(tx, opts.Enricher, opts.EnrichTimeout),
		planner:     NewStudyPlanner(tx),
		linker:      NewInsightLinker(tx),
		percentile:  percentile,
	}
}

// Analyze builds the report for an attempt. The returned report has no
// ReportID; the caller stamps it before persisting. A nil test or attempt is
// analyzed as an empty one.
func (e *Engine) Analyze(ctx context.Context, test *model.Test, attempt *model.TestAttempt) *model.AnalysisReport {
	if test == nil {
		test = &model.Test{}
	}
	if attempt == nil {
		attempt = &model.TestAttempt{}
	}
	topics := e.aggregator.Aggregate(ctx, test, attempt)
	if topics == nil {
		topics = []model.TopicAnalysis{}
	}

	score := ScorePercent(attempt)
	grade := Grade(score)

	body := model.ReportBody{
		OverallPerformance: model.OverallPerformance{
			Grade:        grade,
			ScorePercent: score,
			Percentile:   e.percentile.Percentile(score),
			Strengths:    topicNames(topics, func(t model.TopicAnalysis) bool { return t.Accuracy >= strengthThreshold }),
			Weaknesses:   topicNames(topics, func(t model.TopicAnalysis) bool { return t.Accuracy < weaknessThreshold }),
		},
		TopicAnalysis:      topics,
		Recommendations:    e.recommender.Recommend(ctx, attempt, topics),
		StudyPlan:          e.planner.BuildPlan(topics),
		ConceptualInsights: e.linker.Link(topics),
		TimeManagement:     AnalyzeTime(attempt),
	}

	return &model.AnalysisReport{
		AttemptID:    attempt.ID,
		UserID:       attempt.UserID,
		TestID:       attempt.TestID,
		Grade:        grade,
		ScorePercent: score,
		Body:         datatypes.NewJSONType(body),
	}
}

// ScorePercent is the share of correct answers over all questions.
func ScorePercent(attempt *model.TestAttempt) float64 {
	if attempt == nil || attempt.TotalQuestions <= 0 {
		return 0
	}
	return float64(attempt.CorrectAnswers) / float64(attempt.TotalQuestions) * 100
}
