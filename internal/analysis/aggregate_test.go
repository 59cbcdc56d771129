package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testinsight-backend/internal/model"
	"testinsight-backend/internal/taxonomy"
)

func physicsExample() (*model.Test, *model.TestAttempt) {
	test := &model.Test{
		ID:    1,
		Title: "Physics mock",
		Sections: []model.Section{{
			Subject: "Physics",
			Questions: []model.Question{
				{Text: "Calculate the force on a 2kg mass accelerating at 3m/s²", Difficulty: model.DifficultyMedium, CorrectOption: 1},
				{Text: "What is sin(30°)?", Difficulty: model.DifficultyEasy, CorrectOption: 2},
			},
		}},
	}
	attempt := &model.TestAttempt{
		ID:               10,
		UserID:           3,
		TestID:           1,
		TotalQuestions:   2,
		CorrectAnswers:   1,
		IncorrectAnswers: 1,
		TotalTimeTaken:   240,
		AttemptedQuestions: []model.AttemptedQuestion{
			{SectionIndex: 0, QuestionIndex: 0, SelectedOption: 1, IsCorrect: true, TimeTaken: 40},
			{SectionIndex: 0, QuestionIndex: 1, SelectedOption: 0, IsCorrect: false, TimeTaken: 200},
		},
	}
	return test, attempt
}

func TestAggregatePhysicsExample(t *testing.T) {
	test, attempt := physicsExample()
	agg := NewAggregator(NewRuleClassifier(taxonomy.Default()))

	topics := agg.Aggregate(context.Background(), test, attempt)
	require.Len(t, topics, 2)

	assert.Equal(t, model.TopicAnalysis{
		Topic:              "Mechanics",
		Subject:            "Physics",
		QuestionsAttempted: 1,
		CorrectAnswers:     1,
		Accuracy:           100,
		AverageTime:        40,
		Difficulty:         model.DifficultyMedium,
		Performance:        model.TierExcellent,
	}, topics[0])

	assert.Equal(t, model.TopicAnalysis{
		Topic:              "Trigonometry",
		Subject:            "Physics",
		QuestionsAttempted: 1,
		CorrectAnswers:     0,
		Accuracy:           0,
		AverageTime:        200,
		Difficulty:         model.DifficultyEasy,
		Performance:        model.TierNeedsImprovement,
	}, topics[1])
}

func TestAggregatePartitionsAttemptedQuestions(t *testing.T) {
	test := &model.Test{Sections: []model.Section{
		{Subject: "Mathematics", Questions: []model.Question{
			q("What is 25% of 80?"),
			q("What is 7 × 8?"),
			q("Find 10% of 50."),
			q("Solve 3x + 4 = 19."),
			q("What is 9 + 6?"),
		}},
		{Subject: "Chemistry", Questions: []model.Question{
			q("How many moles are present in 36 g of water?"),
		}},
	}}
	attempt := &model.TestAttempt{AttemptedQuestions: []model.AttemptedQuestion{
		{SectionIndex: 0, QuestionIndex: 0, IsCorrect: true, TimeTaken: 30},
		{SectionIndex: 0, QuestionIndex: 1, IsCorrect: false, TimeTaken: 60},
		{SectionIndex: 0, QuestionIndex: 2, IsCorrect: false, TimeTaken: 90},
		{SectionIndex: 0, QuestionIndex: 4, IsCorrect: true, TimeTaken: 20},
		{SectionIndex: 0, QuestionIndex: 4, IsCorrect: false, TimeTaken: 99}, // duplicate
		{SectionIndex: 0, QuestionIndex: 9, IsCorrect: true, TimeTaken: 10},  // no such question
		{SectionIndex: 5, QuestionIndex: 0, IsCorrect: true, TimeTaken: 10},  // no such section
	}}

	topics := NewAggregator(NewRuleClassifier(taxonomy.Default())).Aggregate(context.Background(), test, attempt)

	// Linear Equations (index 3) and the chemistry section were never attempted.
	require.Len(t, topics, 2)
	assert.Equal(t, "Percentages", topics[0].Topic)
	assert.Equal(t, 2, topics[0].QuestionsAttempted)
	assert.Equal(t, 1, topics[0].CorrectAnswers)
	assert.Equal(t, 50.0, topics[0].Accuracy)
	assert.Equal(t, 60.0, topics[0].AverageTime)

	assert.Equal(t, "Basic Arithmetic", topics[1].Topic)
	assert.Equal(t, 2, topics[1].QuestionsAttempted)
	assert.Equal(t, 1, topics[1].CorrectAnswers)
	assert.Equal(t, 40.0, topics[1].AverageTime)

	total := 0
	for _, ta := range topics {
		total += ta.QuestionsAttempted
	}
	assert.Equal(t, 4, total)
}

func TestAggregateLegacyFlatTest(t *testing.T) {
	test := &model.Test{Subject: "Chemistry", Questions: []model.Question{
		q("How many moles are present in 36 g of water?"),
		q("What is the pH of a 0.01 M HCl solution?"),
	}}
	attempt := &model.TestAttempt{AttemptedQuestions: []model.AttemptedQuestion{
		{SectionIndex: 0, QuestionIndex: 1, IsCorrect: true, TimeTaken: 45},
	}}

	topics := NewAggregator(NewRuleClassifier(taxonomy.Default())).Aggregate(context.Background(), test, attempt)
	require.Len(t, topics, 1)
	assert.Equal(t, "Acids and Bases", topics[0].Topic)
	assert.Equal(t, "Chemistry", topics[0].Subject)
}

func TestAggregateEmptyInputs(t *testing.T) {
	agg := NewAggregator(NewRuleClassifier(taxonomy.Default()))

	empty := &model.Test{Sections: []model.Section{{Subject: "Physics"}}}
	assert.Empty(t, agg.Aggregate(context.Background(), empty, &model.TestAttempt{
		AttemptedQuestions: []model.AttemptedQuestion{{SectionIndex: 0, QuestionIndex: 0}},
	}))

	test, _ := physicsExample()
	assert.Empty(t, agg.Aggregate(context.Background(), test, &model.TestAttempt{}))
	assert.Empty(t, agg.Aggregate(context.Background(), &model.Test{}, &model.TestAttempt{}))
}

func TestPerformanceTier(t *testing.T) {
	assert.Equal(t, model.TierExcellent, PerformanceTier(90))
	assert.Equal(t, model.TierGood, PerformanceTier(89.99))
	assert.Equal(t, model.TierGood, PerformanceTier(75))
	assert.Equal(t, model.TierAverage, PerformanceTier(60))
	assert.Equal(t, model.TierNeedsImprovement, PerformanceTier(59.999))
}

func TestDominantDifficulty(t *testing.T) {
	assert.Equal(t, model.DifficultyEasy, DominantDifficulty([]string{"Easy", "Medium"}))
	assert.Equal(t, model.DifficultyMedium, DominantDifficulty([]string{"Easy", "Hard"}))
	assert.Equal(t, model.DifficultyMedium, DominantDifficulty([]string{"Medium", "Hard"}))
	assert.Equal(t, model.DifficultyHard, DominantDifficulty([]string{"Hard", "Hard", "Medium"}))
	assert.Equal(t, model.DifficultyMedium, DominantDifficulty([]string{"unknown"}))
	assert.Equal(t, model.DifficultyEasy, DominantDifficulty([]string{"easy"}))
	assert.Equal(t, model.DifficultyMedium, DominantDifficulty(nil))
}
