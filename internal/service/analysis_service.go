package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"testinsight-backend/internal/model"
	"testinsight-backend/internal/repository"
	"testinsight-backend/utilities"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)

// Analyzer produces a report for an attempt. *analysis.Engine implements it.
type Analyzer interface {
	Analyze(ctx context.Context, test *model.Test, attempt *model.TestAttempt) *model.AnalysisReport
}

// AnalysisService serves one stored report per attempt, computing it on the
// first request.
type AnalysisService interface {
	GetOrCreate(ctx context.Context, attemptID uint) (*model.AnalysisReport, error)
	AttemptOwner(ctx context.Context, attemptID uint) (uint, error)
	AuthorizeAttempt(ctx context.Context, attemptID, userID uint) error
	ListReports(ctx context.Context, userID uint) ([]model.AnalysisReport, error)
	InitAnalysisEventListeners(bus *utilities.EventBus)
}

type analysisService struct {
	tests    repository.TestRepository
	attempts repository.AttemptRepository
	reports  repository.ReportRepository
	analyzer Analyzer
}

func NewAnalysisService(tests repository.TestRepository, attempts repository.AttemptRepository, reports repository.ReportRepository, analyzer Analyzer) AnalysisService {
	return &analysisService{
		tests:    tests,
		attempts: attempts,
		reports:  reports,
		analyzer: analyzer,
	}
}

// GetOrCreate returns the stored report for the attempt. On a miss it analyzes
// the attempt and stores the result. Concurrent misses may both compute a
// report; the store keeps the first and every caller gets that one.
func (s *analysisService) GetOrCreate(ctx context.Context, attemptID uint) (*model.AnalysisReport, error) {
	report, err := s.reports.FindReportByAttempt(ctx, attemptID)
	if err == nil {
		return report, nil
	}
	if !errors.Is(err, repository.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up report for attempt %d: %w", attemptID, err)
	}

	attempt, err := s.loadAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	test, err := s.tests.FindTestByID(ctx, attempt.TestID)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return nil, fmt.Errorf("test %d: %w", attempt.TestID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load test %d: %w", attempt.TestID, err)
	}

	report = s.analyzer.Analyze(ctx, test, attempt)
	report.ReportID = uuid.NewString()

	stored, err := s.reports.CreateReport(ctx, report)
	if err != nil {
		return nil, err
	}
	utilities.Debug("report %s ready for attempt %d", stored.ReportID, attemptID)
	return stored, nil
}

func (s *analysisService) AttemptOwner(ctx context.Context, attemptID uint) (uint, error) {
	attempt, err := s.loadAttempt(ctx, attemptID)
	if err != nil {
		return 0, err
	}
	return attempt.UserID, nil
}

// AuthorizeAttempt fails with ErrNotFound or ErrForbidden unless userID owns
// the attempt.
func (s *analysisService) AuthorizeAttempt(ctx context.Context, attemptID, userID uint) error {
	owner, err := s.AttemptOwner(ctx, attemptID)
	if err != nil {
		return err
	}
	if owner != userID {
		return fmt.Errorf("attempt %d: %w", attemptID, ErrForbidden)
	}
	return nil
}

func (s *analysisService) ListReports(ctx context.Context, userID uint) ([]model.AnalysisReport, error) {
	return s.reports.ListReportsByUser(ctx, userID)
}

// InitAnalysisEventListeners precomputes the report when an attempt is
// submitted, so the first read is a cache hit.
func (s *analysisService) InitAnalysisEventListeners(bus *utilities.EventBus) {
	bus.Subscribe(utilities.EventAttemptSubmitted, func(data interface{}) {
		attemptID, ok := data.(uint)
		if !ok {
			utilities.Warn("Invalid attempt ID received for analysis: %v", data)
			return
		}

		utilities.Info("[Event] Attempt submitted: running analysis for attempt ID %d", attemptID)
		if _, err := s.GetOrCreate(context.Background(), attemptID); err != nil {
			utilities.Error("Failed to analyze attempt %d: %v", attemptID, err)
		}
	})
}

func (s *analysisService) loadAttempt(ctx context.Context, attemptID uint) (*model.TestAttempt, error) {
	attempt, err := s.attempts.FindAttemptByID(ctx, attemptID)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return nil, fmt.Errorf("attempt %d: %w", attemptID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load attempt %d: %w", attemptID, err)
	}
	return attempt, nil
}
