package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Building struct {
	Record
	Name          string              `gorm:"column:name;not null" json:"name"`
	Code          *string             `gorm:"column:code;uniqueIndex" json:"code"`
	Address       *string             `gorm:"column:address" json:"address"`
	ManagementFee decimal.NullDecimal `gorm:"column:management_fee;type:decimal(12,2)" json:"managementFee"`
}

func (Building) TableName() string {
	return "buildings"
}

type Floor struct {
	Record
	BuildingID uuid.UUID `gorm:"column:building_id;type:uuid;not null;index" json:"buildingId"`
	Label      string    `gorm:"column:label;not null" json:"label"`
	SortIndex  int       `gorm:"column:sort_index;not null" json:"sortIndex"`
}

func (Floor) TableName() string {
	return "floors"
}

type CommonArea struct {
	Record
	BuildingID  uuid.UUID  `gorm:"column:building_id;type:uuid;not null;index" json:"buildingId"`
	FloorID     *uuid.UUID `gorm:"column:floor_id;type:uuid" json:"floorId"`
	Name        string     `gorm:"column:name;not null" json:"name"`
	Code        *string    `gorm:"column:code" json:"code"`
	Description *string    `gorm:"column:description" json:"description"`
	Notes       *string    `gorm:"column:notes" json:"notes"`
}

func (CommonArea) TableName() string {
	return "common_areas"
}
