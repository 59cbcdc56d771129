package model

// Performance tiers derived from topic accuracy.
const (
	TierExcellent        = "Excellent"
	TierGood             = "Good"
	TierAverage          = "Average"
	TierNeedsImprovement = "Needs Improvement"
)

// Recommendation types.
const (
	RecommendationStrength       = "strength"
	RecommendationWeakness       = "weakness"
	RecommendationTimeManagement = "time_management"
	RecommendationStrategy       = "strategy"
)

// Recommendation priorities.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Pacing classifications.
const (
	PacingTooFast = "Too Fast"
	PacingOptimal = "Optimal"
	PacingTooSlow = "Too Slow"
)

// ReportBody is everything the analysis derives from an attempt.
type ReportBody struct {
	OverallPerformance OverallPerformance     `json:"overall_performance"`
	TopicAnalysis      []TopicAnalysis        `json:"topic_analysis"`
	Recommendations    []Recommendation       `json:"recommendations"`
	StudyPlan          StudyPlan              `json:"study_plan"`
	ConceptualInsights ConceptualInsights     `json:"conceptual_insights"`
	TimeManagement     TimeManagementAnalysis `json:"time_management"`
}

type OverallPerformance struct {
	Grade        string   `json:"grade"`
	ScorePercent float64  `json:"score_percent"`
	Percentile   int      `json:"percentile"`
	Strengths    []string `json:"strengths"`
	Weaknesses   []string `json:"weaknesses"`
}

// TopicAnalysis holds the metrics of one topic within one section.
type TopicAnalysis struct {
	Topic              string  `json:"topic"`
	Subject            string  `json:"subject"`
	QuestionsAttempted int     `json:"questions_attempted"`
	CorrectAnswers     int     `json:"correct_answers"`
	Accuracy           float64 `json:"accuracy"`
	AverageTime        float64 `json:"average_time"`
	Difficulty         string  `json:"difficulty"`
	Performance        string  `json:"performance"`
}

type Recommendation struct {
	Type        string   `json:"type"`
	Subject     string   `json:"subject,omitempty"`
	Topic       string   `json:"topic,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ActionItems []string `json:"action_items"`
	Priority    string   `json:"priority"`
}

type StudyPlan struct {
	Immediate []string `json:"immediate"`
	ShortTerm []string `json:"short_term"`
	LongTerm  []string `json:"long_term"`
}

type ConceptualInsights struct {
	MasteredConcepts   []string `json:"mastered_concepts"`
	StrugglingConcepts []string `json:"struggling_concepts"`
	ConceptConnections []string `json:"concept_connections"`
}

type TimeManagementAnalysis struct {
	AverageTimePerQuestion float64  `json:"average_time_per_question"`
	Efficiency             float64  `json:"efficiency"`
	Pacing                 string   `json:"pacing"`
	Recommendations        []string `json:"recommendations"`
}
