package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"cabinet/internal/shared/constants"
	"cabinet/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks AutoMigrate in development and versioned goose scripts elsewhere.
func NewManager(environment, driver string) (*Manager, error) {
	if strings.ToLower(environment) == constants.EnvDevelopment {
		return NewManagerWithStrategy(NewGormAutoMigrateStrategy()), nil
	}

	strategy, err := NewGooseStrategy(driver)
	if err != nil {
		return nil, err
	}
	return NewManagerWithStrategy(strategy), nil
}

func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.WithComponent("migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}
	return nil
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
