package database

import (
	"strings"

	"leaseos-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite:"

// Open opens a GORM DB from DSN. A "sqlite:<path>" DSN opens a local SQLite file
// (or ":memory:"); anything else is treated as a Postgres URL.
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") behind connection poolers such as PgBouncer.
func Open(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	if strings.HasPrefix(dsn, sqlitePrefix) {
		db, err := gorm.Open(sqlite.Open(strings.TrimPrefix(dsn, sqlitePrefix)), cfg)
		if err != nil {
			return nil, err
		}
		// SQLite allows one writer; a single connection also keeps :memory: databases shared.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	}
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), cfg)
}

// Models lists every persisted entity in migration order.
func Models() []interface{} {
	return []interface{}{
		&domain.Building{},
		&domain.Floor{},
		&domain.Tenant{},
		&domain.Owner{},
		&domain.Vendor{},
		&domain.CommonArea{},
		&domain.Unit{},
		&domain.UnitLineageEvent{},
		&domain.Lease{},
		&domain.LeaseUnit{},
		&domain.Occupancy{},
		&domain.FloorOwner{},
		&domain.RepairRecord{},
	}
}

// AutoMigrate creates or updates the schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// ForUpdate adds SELECT ... FOR UPDATE on Postgres. SQLite serialises writers and has no row locks.
func ForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
