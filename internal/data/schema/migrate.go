package schema

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	gormschema "gorm.io/gorm/schema"
)

var naming = gormschema.NamingStrategy{}

// Open connects gorm to Postgres for schema work only.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open schema connection: %w", err)
	}
	return db, nil
}

// Migrate creates or alters every table, index and foreign key.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	for _, model := range Models {
		table := ModelName(model)
		if err := db.AutoMigrate(model); err != nil {
			log.Error("Failed to migrate table", zap.Error(err), zap.String("table", table))
			return fmt.Errorf("migrate %s: %w", table, err)
		}
		log.Info("Table migrated", zap.String("table", table))
	}
	return nil
}

// ModelName is the table gorm derives for model.
func ModelName(model any) string {
	if t, ok := model.(gormschema.Tabler); ok {
		return t.TableName()
	}
	return naming.TableName(reflect.Indirect(reflect.ValueOf(model)).Type().Name())
}
