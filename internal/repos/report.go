package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/verahealth/coach-backend/internal/platform/logger"
	"github.com/verahealth/coach-backend/internal/types"
)

type ReportRepo interface {
	Create(ctx context.Context, tx *gorm.DB, reports []*types.Report) ([]*types.Report, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Report, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Report, error)
}

type reportRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReportRepo(db *gorm.DB, baseLog *logger.Logger) ReportRepo {
	return &reportRepo{db: db, log: baseLog.With("repo", "ReportRepo")}
}

func (r *reportRepo) Create(ctx context.Context, tx *gorm.DB, reports []*types.Report) ([]*types.Report, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(reports) == 0 {
		return []*types.Report{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Report, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Report
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

func (r *reportRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Report, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 {
		limit = 20
	}
	var results []*types.Report
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
