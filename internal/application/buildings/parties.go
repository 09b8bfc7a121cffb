package buildings

import (
	"context"

	"leaseos-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PartyInput struct {
	Name         string  `json:"name" validate:"required"`
	TaxID        *string `json:"taxId"`
	ContactName  *string `json:"contactName"`
	ContactPhone *string `json:"contactPhone"`
	ContactEmail *string `json:"contactEmail" validate:"omitempty,email"`
	Notes        *string `json:"notes"`
}

type PartyPatch struct {
	Name         *string `json:"name" validate:"omitempty,min=1"`
	TaxID        *string `json:"taxId"`
	ContactName  *string `json:"contactName"`
	ContactPhone *string `json:"contactPhone"`
	ContactEmail *string `json:"contactEmail" validate:"omitempty,email"`
	Notes        *string `json:"notes"`
	IsActive     *bool   `json:"isActive"`
}

// partyModel is satisfied by *domain.Tenant, *domain.Owner and *domain.Vendor.
type partyModel interface {
	Stamp(actor string)
	Fields() *domain.Party
}

func (s *Service) createParty(ctx context.Context, actor string, buildingID uuid.UUID, in PartyInput, m partyModel) error {
	db := s.DB.WithContext(ctx)
	if err := requireBuilding(db, buildingID); err != nil {
		return err
	}
	*m.Fields() = domain.Party{
		BuildingID:   buildingID,
		Name:         in.Name,
		TaxID:        in.TaxID,
		ContactName:  in.ContactName,
		ContactPhone: in.ContactPhone,
		ContactEmail: in.ContactEmail,
		Notes:        in.Notes,
		IsActive:     true,
	}
	m.Stamp(actor)
	return db.Create(m).Error
}

func (s *Service) patchParty(ctx context.Context, actor string, id uuid.UUID, in PartyPatch, m partyModel, entity string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(m, "id = ?", id).Error; err != nil {
			return notFound(err, entity)
		}
		p := m.Fields()
		if in.Name != nil {
			p.Name = *in.Name
		}
		if in.TaxID != nil {
			p.TaxID = in.TaxID
		}
		if in.ContactName != nil {
			p.ContactName = in.ContactName
		}
		if in.ContactPhone != nil {
			p.ContactPhone = in.ContactPhone
		}
		if in.ContactEmail != nil {
			p.ContactEmail = in.ContactEmail
		}
		if in.Notes != nil {
			p.Notes = in.Notes
		}
		if in.IsActive != nil {
			p.IsActive = *in.IsActive
		}
		m.Stamp(actor)
		return tx.Save(m).Error
	})
}

func listParties[T any](ctx context.Context, db *gorm.DB, buildingID uuid.UUID) ([]T, error) {
	out := []T{}
	err := db.WithContext(ctx).Where("building_id = ?", buildingID).Order("name ASC").Find(&out).Error
	return out, err
}

func (s *Service) CreateTenant(ctx context.Context, actor string, buildingID uuid.UUID, in PartyInput) (*domain.Tenant, error) {
	t := &domain.Tenant{}
	if err := s.createParty(ctx, actor, buildingID, in, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) PatchTenant(ctx context.Context, actor string, id uuid.UUID, in PartyPatch) (*domain.Tenant, error) {
	t := &domain.Tenant{}
	if err := s.patchParty(ctx, actor, id, in, t, "tenant"); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) GetTenant(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	var t domain.Tenant
	if err := s.DB.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "tenant")
	}
	return &t, nil
}

func (s *Service) ListTenants(ctx context.Context, buildingID uuid.UUID) ([]domain.Tenant, error) {
	return listParties[domain.Tenant](ctx, s.DB, buildingID)
}

func (s *Service) CreateOwner(ctx context.Context, actor string, buildingID uuid.UUID, in PartyInput) (*domain.Owner, error) {
	o := &domain.Owner{}
	if err := s.createParty(ctx, actor, buildingID, in, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) PatchOwner(ctx context.Context, actor string, id uuid.UUID, in PartyPatch) (*domain.Owner, error) {
	o := &domain.Owner{}
	if err := s.patchParty(ctx, actor, id, in, o, "owner"); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) ListOwners(ctx context.Context, buildingID uuid.UUID) ([]domain.Owner, error) {
	return listParties[domain.Owner](ctx, s.DB, buildingID)
}

func (s *Service) CreateVendor(ctx context.Context, actor string, buildingID uuid.UUID, in PartyInput) (*domain.Vendor, error) {
	v := &domain.Vendor{}
	if err := s.createParty(ctx, actor, buildingID, in, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) PatchVendor(ctx context.Context, actor string, id uuid.UUID, in PartyPatch) (*domain.Vendor, error) {
	v := &domain.Vendor{}
	if err := s.patchParty(ctx, actor, id, in, v, "vendor"); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) ListVendors(ctx context.Context, buildingID uuid.UUID) ([]domain.Vendor, error) {
	return listParties[domain.Vendor](ctx, s.DB, buildingID)
}
