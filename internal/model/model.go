package model

import (
	"time"

	"gorm.io/datatypes"
)

// Difficulty labels used on questions and topic rows.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Test owns an ordered list of Sections. Older tests carry a flat Questions
// list and a single Subject instead.
type Test struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Title     string     `json:"title" gorm:"not null"`
	Subject   string     `json:"subject"` // legacy single-subject tests only
	Sections  []Section  `json:"sections,omitempty" gorm:"foreignKey:TestID"`
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:TestID"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Section is a subject-scoped, ordered group of questions within a test.
type Section struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	TestID    uint       `json:"test_id" gorm:"not null;index"`
	Position  int        `json:"position" gorm:"not null"`
	Subject   string     `json:"subject" gorm:"not null"`
	Questions []Question `json:"questions" gorm:"foreignKey:SectionID"`
}

// Question is an immutable multiple-choice content unit. Exactly one of
// SectionID or TestID is set, depending on the test layout.
type Question struct {
	ID            uint                        `json:"id" gorm:"primaryKey"`
	SectionID     *uint                       `json:"section_id,omitempty" gorm:"index"`
	TestID        *uint                       `json:"test_id,omitempty" gorm:"index"`
	Position      int                         `json:"position" gorm:"not null"`
	Text          string                      `json:"text" gorm:"not null"`
	Options       datatypes.JSONSlice[string] `json:"options"`
	CorrectOption int                         `json:"correct_option" gorm:"not null"`
	Explanation   string                      `json:"explanation,omitempty"`
	Difficulty    string                      `json:"difficulty" gorm:"default:'Medium'"`
	Subject       string                      `json:"subject"`
}

// SectionList returns the test's sections in order. A legacy flat test is
// presented as a single section carrying the test subject.
func (t *Test) SectionList() []Section {
	if len(t.Sections) > 0 {
		return t.Sections
	}
	if len(t.Questions) == 0 {
		return nil
	}
	return []Section{{TestID: t.ID, Subject: t.Subject, Questions: t.Questions}}
}

// QuestionAt returns the question referenced by a section and question index.
func (t *Test) QuestionAt(sectionIndex, questionIndex int) (*Question, bool) {
	sections := t.SectionList()
	if sectionIndex < 0 || sectionIndex >= len(sections) {
		return nil, false
	}
	qs := sections[sectionIndex].Questions
	if questionIndex < 0 || questionIndex >= len(qs) {
		return nil, false
	}
	return &qs[questionIndex], true
}

// QuestionCount is the number of questions across all sections.
func (t *Test) QuestionCount() int {
	n := 0
	for _, s := range t.SectionList() {
		n += len(s.Questions)
	}
	return n
}

// TestAttempt is one learner's completed run of a test. It is written once at
// submission and never updated.
type TestAttempt struct {
	ID                 uint                `json:"id" gorm:"primaryKey"`
	UserID             uint                `json:"user_id" gorm:"not null;index"`
	TestID             uint                `json:"test_id" gorm:"not null;index"`
	TotalQuestions     int                 `json:"total_questions"`
	CorrectAnswers     int                 `json:"correct_answers"`
	IncorrectAnswers   int                 `json:"incorrect_answers"`
	TotalTimeTaken     float64             `json:"total_time_taken"` // seconds
	ChangedAnswers     int                 `json:"changed_answers"`
	ChangedToCorrect   int                 `json:"changed_to_correct"`
	AttemptedQuestions []AttemptedQuestion `json:"attempted_questions" gorm:"foreignKey:AttemptID"`
	SubmittedAt        time.Time           `json:"submitted_at"`
}

// AttemptedQuestion is one recorded response inside an attempt.
type AttemptedQuestion struct {
	ID             uint                     `json:"id" gorm:"primaryKey"`
	AttemptID      uint                     `json:"attempt_id" gorm:"not null;index"`
	SectionIndex   int                      `json:"section_index"`
	QuestionIndex  int                      `json:"question_index"`
	SelectedOption int                      `json:"selected_option"`
	IsCorrect      bool                     `json:"is_correct"`
	TimeTaken      float64                  `json:"time_taken"` // seconds
	AnswerHistory  datatypes.JSONSlice[int] `json:"answer_history"`
}

// AnalysisReport is the persisted analysis of one attempt. AttemptID is unique,
// so there is at most one report per attempt.
type AnalysisReport struct {
	ID           uint                           `json:"-" gorm:"primaryKey"`
	ReportID     string                         `json:"report_id" gorm:"size:36;not null;uniqueIndex"`
	AttemptID    uint                           `json:"attempt_id" gorm:"not null;uniqueIndex"`
	UserID       uint                           `json:"user_id" gorm:"not null;index"`
	TestID       uint                           `json:"test_id" gorm:"not null"`
	Grade        string                         `json:"grade" gorm:"size:4"`
	ScorePercent float64                        `json:"score_percent"`
	Body         datatypes.JSONType[ReportBody] `json:"report"`
	CreatedAt    time.Time                      `json:"created_at"`
}
