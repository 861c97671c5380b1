package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/verahealth/coach-backend/internal/platform/logger"
	"github.com/verahealth/coach-backend/internal/types"
)

type AssessmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, assessments []*types.Assessment) ([]*types.Assessment, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Assessment, error)
}

type assessmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentRepo {
	return &assessmentRepo{db: db, log: baseLog.With("repo", "AssessmentRepo")}
}

func (r *assessmentRepo) Create(ctx context.Context, tx *gorm.DB, assessments []*types.Assessment) ([]*types.Assessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(assessments) == 0 {
		return []*types.Assessment{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&assessments).Error; err != nil {
		return nil, err
	}
	return assessments, nil
}

func (r *assessmentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Assessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Assessment
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
