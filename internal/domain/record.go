package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SystemActor is recorded when a mutation arrives without an actor id.
const SystemActor = "system"

// Record holds the id, timestamps and audit actor shared by every table.
type Record struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
	CreatedBy string    `gorm:"column:created_by;not null" json:"createdBy"`
	UpdatedBy string    `gorm:"column:updated_by;not null" json:"updatedBy"`
}

// BeforeCreate: never insert zero UUID for primary key; generate random when not set.
func (r *Record) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Stamp attributes the record to actor. CreatedBy is only filled once.
func (r *Record) Stamp(actor string) {
	actor = NormalizeActor(actor)
	if r.CreatedBy == "" {
		r.CreatedBy = actor
	}
	r.UpdatedBy = actor
}

// NormalizeActor trims the actor id and falls back to SystemActor.
func NormalizeActor(actor string) string {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return SystemActor
	}
	return actor
}
