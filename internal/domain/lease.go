package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Lease struct {
	Record
	BuildingID    uuid.UUID           `gorm:"column:building_id;type:uuid;not null;index" json:"buildingId"`
	TenantID      uuid.UUID           `gorm:"column:tenant_id;type:uuid;not null;index" json:"tenantId"`
	Status        LeaseStatus         `gorm:"column:status;type:varchar(20);not null" json:"status"`
	StartDate     Date                `gorm:"column:start_date;not null" json:"startDate"`
	EndDate       Date                `gorm:"column:end_date;not null" json:"endDate"`
	ManagementFee decimal.NullDecimal `gorm:"column:management_fee;type:decimal(12,2)" json:"managementFee"`
	Rent          decimal.NullDecimal `gorm:"column:rent;type:decimal(12,2)" json:"rent"`
	Deposit       decimal.NullDecimal `gorm:"column:deposit;type:decimal(12,2)" json:"deposit"`
}

func (Lease) TableName() string {
	return "leases"
}

// LeaseUnit binds a lease to one of its units.
type LeaseUnit struct {
	Record
	LeaseID uuid.UUID `gorm:"column:lease_id;type:uuid;not null;index" json:"leaseId"`
	UnitID  uuid.UUID `gorm:"column:unit_id;type:uuid;not null;index" json:"unitId"`
}

func (LeaseUnit) TableName() string {
	return "lease_units"
}

// Occupancy is the physical use of a unit by a tenant, with or without a signed lease.
type Occupancy struct {
	Record
	BuildingID uuid.UUID       `gorm:"column:building_id;type:uuid;not null;index" json:"buildingId"`
	UnitID     uuid.UUID       `gorm:"column:unit_id;type:uuid;not null;index" json:"unitId"`
	TenantID   uuid.UUID       `gorm:"column:tenant_id;type:uuid;not null;index" json:"tenantId"`
	LeaseID    *uuid.UUID      `gorm:"column:lease_id;type:uuid;index" json:"leaseId"`
	Status     OccupancyStatus `gorm:"column:status;type:varchar(20);not null" json:"status"`
	StartDate  Date            `gorm:"column:start_date;not null" json:"startDate"`
	EndDate    *Date           `gorm:"column:end_date" json:"endDate"`
}

func (Occupancy) TableName() string {
	return "occupancies"
}
