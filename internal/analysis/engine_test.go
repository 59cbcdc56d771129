package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testinsight-backend/internal/model"
	"testinsight-backend/internal/taxonomy"
)

func TestAnalyzePhysicsExample(t *testing.T) {
	test, attempt := physicsExample()
	engine := NewEngine(taxonomy.Default(), Options{})

	report := engine.Analyze(context.Background(), test, attempt)
	require.NotNil(t, report)
	assert.Equal(t, uint(10), report.AttemptID)
	assert.Equal(t, uint(3), report.UserID)
	assert.Equal(t, uint(1), report.TestID)
	assert.Empty(t, report.ReportID)
	assert.Equal(t, "C+", report.Grade)
	assert.Equal(t, 50.0, report.ScorePercent)

	body := report.Body.Data()
	assert.Equal(t, "C+", body.OverallPerformance.Grade)
	assert.Equal(t, []string{"Mechanics"}, body.OverallPerformance.Strengths)
	assert.Equal(t, []string{"Trigonometry"}, body.OverallPerformance.Weaknesses)
	require.Len(t, body.TopicAnalysis, 2)

	assert.Equal(t, []string{"weakness:Trigonometry", "strength:Mechanics"}, types(body.Recommendations))
	assert.Equal(t, model.PriorityHigh, body.Recommendations[0].Priority)

	assert.Equal(t, model.PacingTooSlow, body.TimeManagement.Pacing)
	assert.Equal(t, 120.0, body.TimeManagement.AverageTimePerQuestion)
	assert.Equal(t, 75.0, body.TimeManagement.Efficiency)

	assert.Equal(t, []string{"Mechanics"}, body.ConceptualInsights.MasteredConcepts)
	assert.Equal(t, []string{"Trigonometry"}, body.ConceptualInsights.StrugglingConcepts)
	assert.Len(t, body.ConceptualInsights.ConceptConnections, 2)

	assert.Len(t, body.StudyPlan.Immediate, 2)
	assert.Equal(t, taxonomy.Default().Advice("Trigonometry").Immediate, body.StudyPlan.Immediate[0])
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	test, attempt := physicsExample()
	engine := NewEngine(taxonomy.Default(), Options{})

	first, err := json.Marshal(engine.Analyze(context.Background(), test, attempt))
	require.NoError(t, err)
	second, err := json.Marshal(engine.Analyze(context.Background(), test, attempt))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	other, err := json.Marshal(NewEngine(taxonomy.Default(), Options{}).Analyze(context.Background(), test, attempt))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(other))
}

func TestAnalyzeWithFailingCollaboratorsMatchesRules(t *testing.T) {
	test, attempt := physicsExample()
	plain := NewEngine(taxonomy.Default(), Options{})
	degraded := NewEngine(taxonomy.Default(), Options{
		Semantic:      &fakeSemantic{err: errors.New("unavailable")},
		Delegation:    DelegationConfig{Timeout: 50 * time.Millisecond},
		Enricher:      fakeEnricher{err: errors.New("unavailable")},
		EnrichTimeout: 50 * time.Millisecond,
	})

	want, err := json.Marshal(plain.Analyze(context.Background(), test, attempt))
	require.NoError(t, err)
	got, err := json.Marshal(degraded.Analyze(context.Background(), test, attempt))
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

type fixedPercentile int

func (f fixedPercentile) Percentile(float64) int { return int(f) }

func TestAnalyzeEmptyAttempt(t *testing.T) {
	test, _ := physicsExample()
	engine := NewEngine(taxonomy.Default(), Options{PercentileModel: fixedPercentile(42)})

	report := engine.Analyze(context.Background(), test, &model.TestAttempt{ID: 5})
	body := report.Body.Data()
	assert.Equal(t, "D", report.Grade)
	assert.Equal(t, 42, body.OverallPerformance.Percentile)
	assert.NotNil(t, body.TopicAnalysis)
	assert.Empty(t, body.TopicAnalysis)
	assert.Empty(t, body.Recommendations)
	assert.Len(t, body.StudyPlan.Immediate, 1)
	assert.Len(t, body.ConceptualInsights.ConceptConnections, 2)
	assert.Equal(t, model.PacingOptimal, body.TimeManagement.Pacing)
}

func TestAnalyzeNilInputs(t *testing.T) {
	engine := NewEngine(taxonomy.Default(), Options{})

	var report *model.AnalysisReport
	require.NotPanics(t, func() { report = engine.Analyze(context.Background(), nil, nil) })
	assert.Zero(t, report.AttemptID)
	assert.Equal(t, "D", report.Grade)
	assert.Empty(t, report.Body.Data().TopicAnalysis)
	assert.Equal(t, model.PacingOptimal, report.Body.Data().TimeManagement.Pacing)

	test, _ := physicsExample()
	assert.NotPanics(t, func() { engine.Analyze(context.Background(), test, nil) })
}
