package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"testinsight-backend/internal/model"
	"testinsight-backend/internal/repository"
	"testinsight-backend/utilities"
)

var ErrInvalidSubmission = errors.New("invalid submission")

// AnswerSubmission is one response as sent by the client.
type AnswerSubmission struct {
	SectionIndex   int     `json:"section_index"`
	QuestionIndex  int     `json:"question_index"`
	SelectedOption int     `json:"selected_option"`
	TimeTaken      float64 `json:"time_taken"`
	AnswerHistory  []int   `json:"answer_history"`
}

type AttemptSubmission struct {
	TestID         uint               `json:"test_id" binding:"required"`
	TotalTimeTaken float64            `json:"total_time_taken"`
	Answers        []AnswerSubmission `json:"answers"`
}

type AttemptService interface {
	Submit(ctx context.Context, userID uint, sub AttemptSubmission) (*model.TestAttempt, error)
}

type attemptService struct {
	tests    repository.TestRepository
	attempts repository.AttemptRepository
	bus      *utilities.EventBus
}

// NewAttemptService builds the ingest service. bus may be nil.
func NewAttemptService(tests repository.TestRepository, attempts repository.AttemptRepository, bus *utilities.EventBus) AttemptService {
	return &attemptService{tests: tests, attempts: attempts, bus: bus}
}

// Submit grades and stores an attempt. Correctness is fixed here against the
// question's correct option and never recomputed.
func (s *attemptService) Submit(ctx context.Context, userID uint, sub AttemptSubmission) (*model.TestAttempt, error) {
	test, err := s.tests.FindTestByID(ctx, sub.TestID)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return nil, fmt.Errorf("test %d: %w", sub.TestID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load test %d: %w", sub.TestID, err)
	}

	attempt, err := gradeSubmission(test, userID, sub)
	if err != nil {
		return nil, err
	}
	if err := s.attempts.CreateAttempt(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to store attempt: %w", err)
	}

	utilities.Info("Stored attempt %d for user %d on test %d (%d/%d correct)",
		attempt.ID, userID, test.ID, attempt.CorrectAnswers, attempt.TotalQuestions)
	if s.bus != nil {
		s.bus.Publish(utilities.EventAttemptSubmitted, attempt.ID)
	}
	return attempt, nil
}

func gradeSubmission(test *model.Test, userID uint, sub AttemptSubmission) (*model.TestAttempt, error) {
	attempt := &model.TestAttempt{
		UserID:         userID,
		TestID:         test.ID,
		TotalQuestions: test.QuestionCount(),
		SubmittedAt:    time.Now(),
	}

	seen := map[[2]int]bool{}
	var answeredTime float64
	for i, a := range sub.Answers {
		question, ok := test.QuestionAt(a.SectionIndex, a.QuestionIndex)
		if !ok {
			return nil, fmt.Errorf("answer %d references section %d question %d: %w",
				i, a.SectionIndex, a.QuestionIndex, ErrInvalidSubmission)
		}
		key := [2]int{a.SectionIndex, a.QuestionIndex}
		if seen[key] {
			return nil, fmt.Errorf("answer %d repeats section %d question %d: %w",
				i, a.SectionIndex, a.QuestionIndex, ErrInvalidSubmission)
		}
		seen[key] = true

		if !validOption(question, a.SelectedOption) {
			return nil, fmt.Errorf("answer %d selects option %d: %w", i, a.SelectedOption, ErrInvalidSubmission)
		}
		if a.TimeTaken < 0 {
			return nil, fmt.Errorf("answer %d has negative time: %w", i, ErrInvalidSubmission)
		}

		history := a.AnswerHistory
		if len(history) == 0 {
			history = []int{a.SelectedOption}
		}
		for _, option := range history {
			if !validOption(question, option) {
				return nil, fmt.Errorf("answer %d history holds option %d: %w", i, option, ErrInvalidSubmission)
			}
		}
		if history[len(history)-1] != a.SelectedOption {
			return nil, fmt.Errorf("answer %d history does not end with the selected option: %w", i, ErrInvalidSubmission)
		}

		changed, toCorrect := countChanges(history, question.CorrectOption)
		attempt.ChangedAnswers += changed
		attempt.ChangedToCorrect += toCorrect

		correct := a.SelectedOption == question.CorrectOption
		if correct {
			attempt.CorrectAnswers++
		} else {
			attempt.IncorrectAnswers++
		}
		answeredTime += a.TimeTaken

		attempt.AttemptedQuestions = append(attempt.AttemptedQuestions, model.AttemptedQuestion{
			SectionIndex:   a.SectionIndex,
			QuestionIndex:  a.QuestionIndex,
			SelectedOption: a.SelectedOption,
			IsCorrect:      correct,
			TimeTaken:      a.TimeTaken,
			AnswerHistory:  datatypes.JSONSlice[int](history),
		})
	}

	attempt.TotalTimeTaken = sub.TotalTimeTaken
	if attempt.TotalTimeTaken <= 0 {
		attempt.TotalTimeTaken = answeredTime
	}
	return attempt, nil
}

// validOption reports whether option indexes one of the question's options.
// Questions stored without options accept any non-negative index.
func validOption(q *model.Question, option int) bool {
	return option >= 0 && (len(q.Options) == 0 || option < len(q.Options))
}

// countChanges reports whether the learner switched options on a question,
// and whether the switching turned a wrong first choice into a correct final
// one. Counts are per question, so they never exceed the question count.
func countChanges(history []int, correctOption int) (changed, toCorrect int) {
	for i := 1; i < len(history); i++ {
		if history[i] != history[i-1] {
			changed = 1
			break
		}
	}
	if changed == 1 && history[0] != correctOption && history[len(history)-1] == correctOption {
		toCorrect = 1
	}
	return changed, toCorrect
}
