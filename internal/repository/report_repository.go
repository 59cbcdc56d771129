package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"testinsight-backend/internal/db"
	"testinsight-backend/internal/model"
	"testinsight-backend/utilities"
)

// ErrPersistenceConflict is logged when a report insert loses the race for an
// attempt. The stored row is returned instead; the error never reaches callers.
var ErrPersistenceConflict = errors.New("report already stored for attempt")

type ReportRepository interface {
	FindReportByAttempt(ctx context.Context, attemptID uint) (*model.AnalysisReport, error)
	CreateReport(ctx context.Context, report *model.AnalysisReport) (*model.AnalysisReport, error)
	ListReportsByUser(ctx context.Context, userID uint) ([]model.AnalysisReport, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) FindReportByAttempt(ctx context.Context, attemptID uint) (*model.AnalysisReport, error) {
	var report model.AnalysisReport
	if err := r.db.WithContext(ctx).Where("attempt_id = ?", attemptID).First(&report).Error; err != nil {
		return nil, notFound(err)
	}
	return &report, nil
}

// CreateReport inserts the report unless one already exists for the attempt,
// and returns whichever row is stored.
func (r *reportRepository) CreateReport(ctx context.Context, report *model.AnalysisReport) (*model.AnalysisReport, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "attempt_id"}}, DoNothing: true}).
		Create(report)

	switch {
	case result.Error != nil && !db.IsUniqueViolation(result.Error):
		return nil, fmt.Errorf("failed to store report for attempt %d: %w", report.AttemptID, result.Error)
	case result.Error == nil && result.RowsAffected > 0:
		return report, nil
	}

	utilities.Warn("%v: attempt %d", ErrPersistenceConflict, report.AttemptID)
	existing, err := r.FindReportByAttempt(ctx, report.AttemptID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored report for attempt %d: %w", report.AttemptID, err)
	}
	return existing, nil
}

// ListReportsByUser returns a user's reports, newest first.
func (r *reportRepository) ListReportsByUser(ctx context.Context, userID uint) ([]model.AnalysisReport, error) {
	var reports []model.AnalysisReport
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&reports).Error
	return reports, err
}
