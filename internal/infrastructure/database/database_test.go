package database

import (
	"testing"

	"leaseos-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteMigrates(t *testing.T) {
	db, err := Open("sqlite::memory:")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	for _, m := range Models() {
		assert.True(t, db.Migrator().HasTable(m))
	}

	b := domain.Building{Name: "Tower"}
	b.Stamp("")
	require.NoError(t, db.Create(&b).Error)
	assert.Equal(t, domain.SystemActor, b.CreatedBy)

	var got domain.Building
	require.NoError(t, ForUpdate(db).First(&got, "id = ?", b.ID).Error)
	assert.Equal(t, "Tower", got.Name)
}
