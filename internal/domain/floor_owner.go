package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FloorOwner assigns a share of a floor to an owner for a period. A nil EndDate is open-ended.
type FloorOwner struct {
	Record
	FloorID      uuid.UUID       `gorm:"column:floor_id;type:uuid;not null;index" json:"floorId"`
	OwnerID      uuid.UUID       `gorm:"column:owner_id;type:uuid;not null;index" json:"ownerId"`
	SharePercent decimal.Decimal `gorm:"column:share_percent;type:decimal(5,2);not null" json:"sharePercent"`
	StartDate    time.Time       `gorm:"column:start_date;not null" json:"startDate"`
	EndDate      *time.Time      `gorm:"column:end_date" json:"endDate"`
	Notes        *string         `gorm:"column:notes" json:"notes"`
}

func (FloorOwner) TableName() string {
	return "floor_owners"
}
