package repository

import (
	"context"

	"gorm.io/gorm"

	"testinsight-backend/internal/model"
)

type AttemptRepository interface {
	CreateAttempt(ctx context.Context, attempt *model.TestAttempt) error
	FindAttemptByID(ctx context.Context, id uint) (*model.TestAttempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

// CreateAttempt stores the attempt and its responses in one transaction.
func (r *attemptRepository) CreateAttempt(ctx context.Context, attempt *model.TestAttempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

func (r *attemptRepository) FindAttemptByID(ctx context.Context, id uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.db.WithContext(ctx).
		Preload("AttemptedQuestions", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&attempt, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &attempt, nil
}
