package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"testinsight-backend/internal/model"
)

// ErrRecordNotFound is returned by lookups that match no row.
var ErrRecordNotFound = errors.New("record not found")

type TestRepository interface {
	CreateTest(ctx context.Context, test *model.Test) error
	FindTestByID(ctx context.Context, id uint) (*model.Test, error)
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

// CreateTest stores a test with its sections and questions. Positions are
// taken from slice order.
func (r *testRepository) CreateTest(ctx context.Context, test *model.Test) error {
	for si := range test.Sections {
		test.Sections[si].Position = si
		for qi := range test.Sections[si].Questions {
			test.Sections[si].Questions[qi].Position = qi
		}
	}
	for qi := range test.Questions {
		test.Questions[qi].Position = qi
	}
	return r.db.WithContext(ctx).Create(test).Error
}

func (r *testRepository) FindTestByID(ctx context.Context, id uint) (*model.Test, error) {
	var test model.Test
	err := r.db.WithContext(ctx).
		Preload("Sections", byPosition).
		Preload("Sections.Questions", byPosition).
		Preload("Questions", byPosition).
		First(&test, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &test, nil
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC, id ASC")
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}
	return err
}
