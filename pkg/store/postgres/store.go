package postgres

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/config"
	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/core"
	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/model"
)

type Store struct {
	db *gorm.DB
}

func NewStore(cfg *config.DatabaseConfig) (*Store, error) {
	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)

	return &Store{db: db}, nil
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(
		&model.HousingUnit{},
		&model.Room{},
		&model.InventoryItem{},
		&model.Employee{},
		&model.DamageReport{},
	)
}

// translateError maps gorm and constraint errors into the core taxonomy so
// callers never see raw storage error codes.
func translateError(err error, kind string, id uuid.UUID) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return core.NotFoundError(kind, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return core.WrapError(core.CodeConflict, err, "%s violates a unique constraint", kind)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return core.WrapError(core.CodeReferentialIntegrity, err, "%s references a missing or referenced row", kind)
	default:
		return err
	}
}
