package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/RumenDamyanov/go-seo/app/utils/logger"
	"github.com/RumenDamyanov/go-seo/config"
)

var SchemaRegistry []interface{}

func RegisterSchemaForAutoMigrate(models ...interface{}) {
	SchemaRegistry = append(SchemaRegistry, models...)
}

var DB *gorm.DB

// NewDB connects to Postgres when a DSN is configured and migrates the
// registered schemas. Without a DSN the service runs with generation
// history disabled and the handle stays nil.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DBURL == "" {
		logger.GetLogger().Info("No database DSN configured, generation history is disabled")
		return nil, nil
	}
	db, err := gorm.Open(postgres.Open(cfg.DBURL), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	if err != nil {
		logger.GetLogger().
			WithField("error_code", "f5b4a0e6-f628-40e4-8155-6dcf14a92eaf").
			Fatalf("unable to connect to database: %v", err)
		return nil, err
	}
	for _, model := range SchemaRegistry {
		if err := db.AutoMigrate(model); err != nil {
			logger.GetLogger().
				WithField("error_code", "40a62931-d06a-49be-b3e3-7df9b541ca33").
				Fatalf("failed to auto migrate schema: %T, error: %v", model, err)
			return nil, err
		}
	}

	DB = db
	return DB, nil
}
