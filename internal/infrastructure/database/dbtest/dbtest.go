// Package dbtest opens migrated in-memory databases and seeds fixtures for package tests.
package dbtest

import (
	"testing"

	"leaseos-backend/internal/domain"
	"leaseos-backend/internal/infrastructure/database"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const Actor = "tester"

// Open returns a fresh migrated SQLite database held on a single connection.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func create(t testing.TB, db *gorm.DB, v interface{}) {
	t.Helper()
	require.NoError(t, db.Create(v).Error)
}

func Building(t testing.TB, db *gorm.DB, name string) domain.Building {
	b := domain.Building{Name: name}
	b.Stamp(Actor)
	create(t, db, &b)
	return b
}

func Floor(t testing.TB, db *gorm.DB, buildingID uuid.UUID, label string, sortIndex int) domain.Floor {
	f := domain.Floor{BuildingID: buildingID, Label: label, SortIndex: sortIndex}
	f.Stamp(Actor)
	create(t, db, &f)
	return f
}

// Unit creates a current unit on floor with the given gross area ("123.45").
func Unit(t testing.TB, db *gorm.DB, floor domain.Floor, code, gross string) domain.Unit {
	u := domain.Unit{
		BuildingID: floor.BuildingID,
		FloorID:    floor.ID,
		Code:       code,
		GrossArea:  decimal.RequireFromString(gross),
		IsCurrent:  true,
	}
	u.Stamp(Actor)
	create(t, db, &u)
	return u
}

func Tenant(t testing.TB, db *gorm.DB, buildingID uuid.UUID, name string) domain.Tenant {
	x := domain.Tenant{Party: domain.Party{BuildingID: buildingID, Name: name, IsActive: true}}
	x.Stamp(Actor)
	create(t, db, &x)
	return x
}

func Owner(t testing.TB, db *gorm.DB, buildingID uuid.UUID, name string) domain.Owner {
	x := domain.Owner{Party: domain.Party{BuildingID: buildingID, Name: name, IsActive: true}}
	x.Stamp(Actor)
	create(t, db, &x)
	return x
}

func Vendor(t testing.TB, db *gorm.DB, buildingID uuid.UUID, name string) domain.Vendor {
	x := domain.Vendor{Party: domain.Party{BuildingID: buildingID, Name: name, IsActive: true}}
	x.Stamp(Actor)
	create(t, db, &x)
	return x
}

func CommonArea(t testing.TB, db *gorm.DB, buildingID uuid.UUID, name string) domain.CommonArea {
	x := domain.CommonArea{BuildingID: buildingID, Name: name}
	x.Stamp(Actor)
	create(t, db, &x)
	return x
}

// Date parses "2006-01-02" or fails the test.
func Date(t testing.TB, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}
