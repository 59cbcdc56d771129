package analysis

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"testinsight-backend/internal/model"
	"testinsight-backend/internal/taxonomy"
)

// Aggregator joins classified questions with an attempt's responses.
type Aggregator struct {
	classifier  BatchClassifier
	parallelism int
}

func NewAggregator(classifier BatchClassifier) *Aggregator {
	return &Aggregator{classifier: classifier, parallelism: 4}
}

// Aggregate returns one TopicAnalysis per (section, topic) that has at least
// one attempted question. Rows follow section order, then the index of the
// first question of each topic.
func (a *Aggregator) Aggregate(ctx context.Context, test *model.Test, attempt *model.TestAttempt) []model.TopicAnalysis {
	sections := test.SectionList()
	if len(sections) == 0 {
		return nil
	}
	labels := a.classifySections(ctx, sections)
	responses := indexResponses(sections, attempt)

	var out []model.TopicAnalysis
	for si, section := range sections {
		out = append(out, aggregateSection(section, labels[si], responses[si])...)
	}
	return out
}

// classifySections classifies each section in its own goroutine. Classifiers
// never fail, so the group is only used to bound and wait.
func (a *Aggregator) classifySections(ctx context.Context, sections []model.Section) []map[int]string {
	labels := make([]map[int]string, len(sections))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.parallelism)
	for i := range sections {
		i := i
		g.Go(func() error {
			labels[i] = a.classifier.ClassifyMany(gctx, sections[i].Questions, sections[i].Subject)
			return nil
		})
	}
	_ = g.Wait()
	return labels
}

// indexResponses groups attempted questions by section and question index.
// The first entry for a question wins; entries that reference no question are
// dropped.
func indexResponses(sections []model.Section, attempt *model.TestAttempt) []map[int]model.AttemptedQuestion {
	out := make([]map[int]model.AttemptedQuestion, len(sections))
	for i := range out {
		out[i] = map[int]model.AttemptedQuestion{}
	}
	if attempt == nil {
		return out
	}
	for _, aq := range attempt.AttemptedQuestions {
		if aq.SectionIndex < 0 || aq.SectionIndex >= len(sections) {
			continue
		}
		if aq.QuestionIndex < 0 || aq.QuestionIndex >= len(sections[aq.SectionIndex].Questions) {
			continue
		}
		if _, seen := out[aq.SectionIndex][aq.QuestionIndex]; seen {
			continue
		}
		out[aq.SectionIndex][aq.QuestionIndex] = aq
	}
	return out
}

func aggregateSection(section model.Section, labels map[int]string, responses map[int]model.AttemptedQuestion) []model.TopicAnalysis {
	if len(responses) == 0 {
		return nil
	}

	var order []string
	groups := map[string][]int{}
	for qi := range section.Questions {
		topic, ok := labels[qi]
		if !ok || topic == "" {
			topic = taxonomy.DefaultTopic(section.Subject)
		}
		if _, ok := groups[topic]; !ok {
			order = append(order, topic)
		}
		groups[topic] = append(groups[topic], qi)
	}

	var out []model.TopicAnalysis
	for _, topic := range order {
		var attempted, correct int
		var totalTime float64
		var difficulties []string
		for _, qi := range groups[topic] {
			aq, ok := responses[qi]
			if !ok {
				continue
			}
			attempted++
			if aq.IsCorrect {
				correct++
			}
			totalTime += aq.TimeTaken
			difficulties = append(difficulties, section.Questions[qi].Difficulty)
		}
		if attempted == 0 {
			continue
		}
		accuracy := float64(correct) / float64(attempted) * 100
		out = append(out, model.TopicAnalysis{
			Topic:              topic,
			Subject:            section.Subject,
			QuestionsAttempted: attempted,
			CorrectAnswers:     correct,
			Accuracy:           accuracy,
			AverageTime:        totalTime / float64(attempted),
			Difficulty:         DominantDifficulty(difficulties),
			Performance:        PerformanceTier(accuracy),
		})
	}
	return out
}

// PerformanceTier buckets a topic accuracy.
func PerformanceTier(accuracy float64) string {
	switch {
	case accuracy >= 90:
		return model.TierExcellent
	case accuracy >= 75:
		return model.TierGood
	case accuracy >= 60:
		return model.TierAverage
	default:
		return model.TierNeedsImprovement
	}
}

// DominantDifficulty maps Easy/Medium/Hard to 1/2/3, averages the scores and
// maps the mean back. Unknown labels count as Medium.
func DominantDifficulty(difficulties []string) string {
	if len(difficulties) == 0 {
		return model.DifficultyMedium
	}
	sum := 0
	for _, d := range difficulties {
		sum += difficultyScore(d)
	}
	mean := float64(sum) / float64(len(difficulties))
	switch {
	case mean <= 1.5:
		return model.DifficultyEasy
	case mean <= 2.5:
		return model.DifficultyMedium
	default:
		return model.DifficultyHard
	}
}

func difficultyScore(d string) int {
	switch {
	case strings.EqualFold(d, model.DifficultyEasy):
		return 1
	case strings.EqualFold(d, model.DifficultyHard):
		return 3
	default:
		return 2
	}
}
