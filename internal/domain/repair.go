package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RepairRecord struct {
	Record
	BuildingID       uuid.UUID           `gorm:"column:building_id;type:uuid;not null;index" json:"buildingId"`
	ScopeType        RepairScopeType     `gorm:"column:scope_type;type:varchar(20);not null" json:"scopeType"`
	FloorID          *uuid.UUID          `gorm:"column:floor_id;type:uuid;index" json:"floorId"`
	CommonAreaID     *uuid.UUID          `gorm:"column:common_area_id;type:uuid;index" json:"commonAreaId"`
	Item             string              `gorm:"column:item;not null" json:"item"`
	Description      *string             `gorm:"column:description" json:"description"`
	VendorID         *uuid.UUID          `gorm:"column:vendor_id;type:uuid" json:"vendorId"`
	VendorName       string              `gorm:"column:vendor_name;not null" json:"vendorName"`
	VendorTaxID      *string             `gorm:"column:vendor_tax_id" json:"vendorTaxId"`
	QuoteAmount      decimal.Decimal     `gorm:"column:quote_amount;type:decimal(12,2);not null" json:"quoteAmount"`
	ApprovedAmount   decimal.NullDecimal `gorm:"column:approved_amount;type:decimal(12,2)" json:"approvedAmount"`
	FinalAmount      decimal.NullDecimal `gorm:"column:final_amount;type:decimal(12,2)" json:"finalAmount"`
	Status           RepairStatus        `gorm:"column:status;type:varchar(20);not null" json:"status"`
	AcceptanceResult *AcceptanceResult   `gorm:"column:acceptance_result;type:varchar(20)" json:"acceptanceResult"`
	InspectorName    *string             `gorm:"column:inspector_name" json:"inspectorName"`
	ReportedAt       Date                `gorm:"column:reported_at;not null" json:"reportedAt"`
	StartedAt        *Date               `gorm:"column:started_at" json:"startedAt"`
	CompletedAt      *Date               `gorm:"column:completed_at" json:"completedAt"`
	AcceptedAt       *time.Time          `gorm:"column:accepted_at" json:"acceptedAt"`
	Notes            *string             `gorm:"column:notes" json:"notes"`
}

func (RepairRecord) TableName() string {
	return "repair_records"
}
