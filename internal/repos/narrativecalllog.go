package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/verahealth/coach-backend/internal/platform/logger"
	"github.com/verahealth/coach-backend/internal/types"
)

type NarrativeCallLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, logs []*types.NarrativeCallLog) ([]*types.NarrativeCallLog, error)
}

type narrativeCallLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNarrativeCallLogRepo(db *gorm.DB, baseLog *logger.Logger) NarrativeCallLogRepo {
	return &narrativeCallLogRepo{db: db, log: baseLog.With("repo", "NarrativeCallLogRepo")}
}

func (r *narrativeCallLogRepo) Create(ctx context.Context, tx *gorm.DB, logs []*types.NarrativeCallLog) ([]*types.NarrativeCallLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(logs) == 0 {
		return []*types.NarrativeCallLog{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
