package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Unit is one version of a leasable space. Splits and merges retire units and create new ones;
// SourceUnitID points child→parent, ReplacedByUnitID points retired→successor.
type Unit struct {
	Record
	BuildingID       uuid.UUID           `gorm:"column:building_id;type:uuid;not null;index" json:"buildingId"`
	FloorID          uuid.UUID           `gorm:"column:floor_id;type:uuid;not null;index" json:"floorId"`
	Code             string              `gorm:"column:code;not null" json:"code"`
	GrossArea        decimal.Decimal     `gorm:"column:gross_area;type:decimal(10,2);not null" json:"grossArea"`
	NetArea          decimal.NullDecimal `gorm:"column:net_area;type:decimal(10,2)" json:"netArea"`
	BalconyArea      decimal.NullDecimal `gorm:"column:balcony_area;type:decimal(10,2)" json:"balconyArea"`
	IsCurrent        bool                `gorm:"column:is_current;not null" json:"isCurrent"`
	ReplacedAt       *time.Time          `gorm:"column:replaced_at" json:"replacedAt"`
	ReplacedByUnitID *uuid.UUID          `gorm:"column:replaced_by_unit_id;type:uuid" json:"replacedByUnitId"`
	SourceUnitID     *uuid.UUID          `gorm:"column:source_unit_id;type:uuid;index" json:"sourceUnitId"`
}

func (Unit) TableName() string {
	return "units"
}

// Retire marks the unit superseded at `at`. successor is nil for split sources.
func (u *Unit) Retire(at time.Time, successor *uuid.UUID) {
	u.IsCurrent = false
	u.ReplacedAt = &at
	u.ReplacedByUnitID = successor
}

// UnitLineageEvent records one split or merge with its before/after ids and areas.
type UnitLineageEvent struct {
	Record
	EventType LineageEventType `gorm:"column:event_type;type:varchar(20);not null" json:"eventType"`
	UnitID    uuid.UUID        `gorm:"column:unit_id;type:uuid;not null;index" json:"unitId"`
	EventData datatypes.JSON   `gorm:"column:event_data;not null" json:"eventData"`
}

func (UnitLineageEvent) TableName() string {
	return "unit_lineage_events"
}
