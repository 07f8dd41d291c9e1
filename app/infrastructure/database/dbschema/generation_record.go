package dbschema

import (
	"github.com/RumenDamyanov/go-seo/app/domain/generationlog"
	"github.com/RumenDamyanov/go-seo/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(GenerationRecord{})
}

func NewSchemaGenerationRecord(r *generationlog.Record) *GenerationRecord {
	return &GenerationRecord{
		BaseModel: BaseModel{
			ID: r.ID,
		},
		Operation: r.Operation,
		Engine:    r.Engine,
		URL:       r.URL,
		Output:    r.Output,
	}
}

type GenerationRecord struct {
	BaseModel
	Operation string `gorm:"size:32;index;not null"`
	Engine    string `gorm:"size:16;not null"`
	URL       string `gorm:"size:2048"`
	Output    string `gorm:"type:text"`
}

func (r *GenerationRecord) EtoD() *generationlog.Record {
	return &generationlog.Record{
		ID:        r.ID,
		Operation: r.Operation,
		Engine:    r.Engine,
		URL:       r.URL,
		Output:    r.Output,
		CreatedAt: r.CreatedAt,
	}
}
