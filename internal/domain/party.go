package domain

import "github.com/google/uuid"

// Party is the contact card shared by tenants, owners and vendors.
type Party struct {
	BuildingID   uuid.UUID `gorm:"column:building_id;type:uuid;not null;index" json:"buildingId"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	TaxID        *string   `gorm:"column:tax_id" json:"taxId"`
	ContactName  *string   `gorm:"column:contact_name" json:"contactName"`
	ContactPhone *string   `gorm:"column:contact_phone" json:"contactPhone"`
	ContactEmail *string   `gorm:"column:contact_email" json:"contactEmail"`
	Notes        *string   `gorm:"column:notes" json:"notes"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true" json:"isActive"`
}

type Tenant struct {
	Record
	Party
}

func (Tenant) TableName() string {
	return "tenants"
}

type Owner struct {
	Record
	Party
}

func (Owner) TableName() string {
	return "owners"
}

type Vendor struct {
	Record
	Party
}

func (Vendor) TableName() string {
	return "vendors"
}

// Fields exposes the shared party columns of a Tenant, Owner or Vendor.
func (p *Party) Fields() *Party {
	return p
}
