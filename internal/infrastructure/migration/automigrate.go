package migration

import (
	"fmt"

	"gorm.io/gorm"

	"cabinet/internal/infrastructure/persistence/models"
	"cabinet/internal/shared/logger"
)

// GormAutoMigrateStrategy syncs the schema from the model structs. Used in development.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{logger: logger.WithComponent("migration.automigrate")}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, extra ...interface{}) error {
	targets := append(models.All(), extra...)
	if err := db.AutoMigrate(targets...); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	s.logger.Infow("auto migration completed", "models_count", len(targets))
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}
