package repository

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"testinsight-backend/internal/db"
	"testinsight-backend/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "analysis.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}

func TestTestRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewTestRepository(newTestDB(t))

	test := &model.Test{
		Title: "Mock 1",
		Sections: []model.Section{
			{Subject: "Physics", Questions: []model.Question{
				{Text: "p0", Options: datatypes.JSONSlice[string]{"a", "b", "c", "d"}, CorrectOption: 1},
				{Text: "p1", CorrectOption: 2, Difficulty: model.DifficultyHard},
			}},
			{Subject: "Chemistry", Questions: []model.Question{{Text: "c0"}}},
		},
	}
	require.NoError(t, repo.CreateTest(ctx, test))
	require.NotZero(t, test.ID)

	got, err := repo.FindTestByID(ctx, test.ID)
	require.NoError(t, err)
	require.Len(t, got.Sections, 2)
	assert.Equal(t, "Physics", got.Sections[0].Subject)
	assert.Equal(t, "Chemistry", got.Sections[1].Subject)
	require.Len(t, got.Sections[0].Questions, 2)
	assert.Equal(t, "p0", got.Sections[0].Questions[0].Text)
	assert.Equal(t, []string{"a", "b", "c", "d"}, []string(got.Sections[0].Questions[0].Options))
	assert.Equal(t, model.DifficultyHard, got.Sections[0].Questions[1].Difficulty)
	assert.Empty(t, got.Questions, "section questions are not legacy questions")

	q, ok := got.QuestionAt(1, 0)
	require.True(t, ok)
	assert.Equal(t, "c0", q.Text)
}

func TestTestRepositoryLegacyLayout(t *testing.T) {
	ctx := context.Background()
	repo := NewTestRepository(newTestDB(t))

	test := &model.Test{Title: "Old", Subject: "Mathematics", Questions: []model.Question{{Text: "a"}, {Text: "b"}}}
	require.NoError(t, repo.CreateTest(ctx, test))

	got, err := repo.FindTestByID(ctx, test.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Sections)
	require.Len(t, got.SectionList(), 1)
	assert.Equal(t, "Mathematics", got.SectionList()[0].Subject)
	assert.Equal(t, "b", got.SectionList()[0].Questions[1].Text)
}

func TestFindMissingRows(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)

	_, err := NewTestRepository(conn).FindTestByID(ctx, 99)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	_, err = NewAttemptRepository(conn).FindAttemptByID(ctx, 99)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	_, err = NewReportRepository(conn).FindReportByAttempt(ctx, 99)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestAttemptRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewAttemptRepository(newTestDB(t))

	attempt := &model.TestAttempt{
		UserID: 4, TestID: 1, TotalQuestions: 2, CorrectAnswers: 1, TotalTimeTaken: 95.5,
		AttemptedQuestions: []model.AttemptedQuestion{
			{SectionIndex: 0, QuestionIndex: 1, SelectedOption: 2, IsCorrect: true, TimeTaken: 40, AnswerHistory: datatypes.JSONSlice[int]{0, 2}},
			{SectionIndex: 0, QuestionIndex: 0, SelectedOption: 3, TimeTaken: 55.5},
		},
	}
	require.NoError(t, repo.CreateAttempt(ctx, attempt))

	got, err := repo.FindAttemptByID(ctx, attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(4), got.UserID)
	assert.Equal(t, 95.5, got.TotalTimeTaken)
	require.Len(t, got.AttemptedQuestions, 2)
	assert.Equal(t, 1, got.AttemptedQuestions[0].QuestionIndex)
	assert.Equal(t, []int{0, 2}, []int(got.AttemptedQuestions[0].AnswerHistory))
}

func newReport(attemptID, userID uint, grade string) *model.AnalysisReport {
	return &model.AnalysisReport{
		ReportID:  uuid.NewString(),
		AttemptID: attemptID,
		UserID:    userID,
		TestID:    1,
		Grade:     grade,
		Body: datatypes.NewJSONType(model.ReportBody{
			OverallPerformance: model.OverallPerformance{Grade: grade, Strengths: []string{"Optics"}},
		}),
	}
}

func TestCreateReportIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewReportRepository(newTestDB(t))

	first, err := repo.CreateReport(ctx, newReport(7, 1, "A"))
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := repo.CreateReport(ctx, newReport(7, 1, "D"))
	require.NoError(t, err)
	assert.Equal(t, first.ReportID, second.ReportID)
	assert.Equal(t, "A", second.Grade)
	assert.Equal(t, []string{"Optics"}, second.Body.Data().OverallPerformance.Strengths)

	stored, err := repo.FindReportByAttempt(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, first.ReportID, stored.ReportID)
}

func TestCreateReportConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	repo := NewReportRepository(conn)

	const writers = 8
	ids := make([]string, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stored, err := repo.CreateReport(ctx, newReport(3, 1, "B"))
			if assert.NoError(t, err) {
				ids[i] = stored.ReportID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	var count int64
	require.NoError(t, conn.Model(&model.AnalysisReport{}).Where("attempt_id = ?", 3).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestListReportsByUser(t *testing.T) {
	ctx := context.Background()
	repo := NewReportRepository(newTestDB(t))

	for attempt := uint(1); attempt <= 3; attempt++ {
		_, err := repo.CreateReport(ctx, newReport(attempt, 1, "B"))
		require.NoError(t, err)
	}
	_, err := repo.CreateReport(ctx, newReport(4, 2, "C"))
	require.NoError(t, err)

	reports, err := repo.ListReportsByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, uint(3), reports[0].AttemptID)
	assert.Equal(t, uint(1), reports[2].AttemptID)

	none, err := repo.ListReportsByUser(ctx, 9)
	require.NoError(t, err)
	assert.Empty(t, none)
}
