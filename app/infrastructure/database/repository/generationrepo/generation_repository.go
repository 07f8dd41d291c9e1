package generationrepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/RumenDamyanov/go-seo/app/domain/generationlog"
	"github.com/RumenDamyanov/go-seo/app/infrastructure/database/dbschema"
	"github.com/RumenDamyanov/go-seo/app/utils/functional"
)

type GenerationGormRepository struct {
	db *gorm.DB
}

func NewGenerationGormRepository(db *gorm.DB) *GenerationGormRepository {
	return &GenerationGormRepository{db: db}
}

// ProvideGenerationRepository returns a nil interface when no database is
// configured so the history service can detect it and stay disabled.
func ProvideGenerationRepository(db *gorm.DB) generationlog.Repository {
	if db == nil {
		return nil
	}
	return NewGenerationGormRepository(db)
}

// Create implements generationlog.Repository.
func (repo *GenerationGormRepository) Create(ctx context.Context, r *generationlog.Record) error {
	model := dbschema.NewSchemaGenerationRecord(r)
	if err := repo.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	r.ID = model.ID
	return nil
}

// Recent implements generationlog.Repository.
func (repo *GenerationGormRepository) Recent(ctx context.Context, limit int) ([]*generationlog.Record, error) {
	var rows []*dbschema.GenerationRecord
	if err := repo.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return functional.Map(rows, func(row *dbschema.GenerationRecord) *generationlog.Record {
		return row.EtoD()
	}), nil
}

// DeleteOlderThan implements generationlog.Repository.
func (repo *GenerationGormRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&dbschema.GenerationRecord{})
	return result.RowsAffected, result.Error
}
