package leases

import (
	"context"
	"errors"

	"leaseos-backend/internal/domain"
	"leaseos-backend/internal/infrastructure/database"
	"leaseos-backend/internal/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateOccupancyInput struct {
	BuildingID uuid.UUID              `json:"buildingId" validate:"required"`
	UnitID     uuid.UUID              `json:"unitId" validate:"required"`
	TenantID   uuid.UUID              `json:"tenantId" validate:"required"`
	LeaseID    *uuid.UUID             `json:"leaseId"`
	Status     domain.OccupancyStatus `json:"status" validate:"omitempty,oneof=DRAFT ACTIVE ENDED"`
	StartDate  domain.Date            `json:"startDate"`
	EndDate    *domain.Date           `json:"endDate"`
}

type PatchOccupancyInput struct {
	LeaseID   *uuid.UUID              `json:"leaseId"`
	Status    *domain.OccupancyStatus `json:"status" validate:"omitempty,oneof=DRAFT ACTIVE ENDED"`
	StartDate *domain.Date            `json:"startDate"`
	EndDate   *domain.Date            `json:"endDate"`
}

// CreateOccupancy records a standalone occupancy. Status defaults to DRAFT and the start to today.
func (s *Service) CreateOccupancy(ctx context.Context, actor string, in CreateOccupancyInput) (*domain.Occupancy, error) {
	occ := &domain.Occupancy{
		BuildingID: in.BuildingID,
		UnitID:     in.UnitID,
		TenantID:   in.TenantID,
		LeaseID:    in.LeaseID,
		Status:     in.Status,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
	}
	if occ.Status == "" {
		occ.Status = domain.OccupancyDraft
	}
	if occ.StartDate.IsZero() {
		occ.StartDate = s.today()
	}
	occ.Stamp(actor)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkOccupancy(tx, occ); err != nil {
			return err
		}
		return tx.Create(occ).Error
	})
	if err != nil {
		return nil, err
	}
	return occ, nil
}

// PatchOccupancy overwrites present fields and re-checks the resolved record.
func (s *Service) PatchOccupancy(ctx context.Context, actor string, id uuid.UUID, in PatchOccupancyInput) (*domain.Occupancy, error) {
	var occ domain.Occupancy
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := database.ForUpdate(tx).First(&occ, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("occupancy")
			}
			return err
		}
		if in.LeaseID != nil {
			occ.LeaseID = in.LeaseID
		}
		if in.Status != nil {
			occ.Status = *in.Status
		}
		if in.StartDate != nil {
			occ.StartDate = *in.StartDate
		}
		if in.EndDate != nil {
			occ.EndDate = in.EndDate
		}
		if err := s.checkOccupancy(tx, &occ); err != nil {
			return err
		}
		occ.Stamp(actor)
		return tx.Save(&occ).Error
	})
	if err != nil {
		return nil, err
	}
	return &occ, nil
}

func (s *Service) ListOccupancies(ctx context.Context, buildingID uuid.UUID) ([]domain.Occupancy, error) {
	var out []domain.Occupancy
	err := s.DB.WithContext(ctx).Where("building_id = ?", buildingID).Order("start_date DESC").Find(&out).Error
	return out, err
}

func (s *Service) checkOccupancy(tx *gorm.DB, occ *domain.Occupancy) error {
	if occ.EndDate != nil && occ.StartDate.After(*occ.EndDate) {
		return apperr.ErrInvalidDateRange
	}
	if occ.Status == domain.OccupancyActive && occ.LeaseID == nil {
		return apperr.ErrLeaseRequired
	}

	var unit domain.Unit
	if err := database.ForUpdate(tx).First(&unit, "id = ?", occ.UnitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("unit")
		}
		return err
	}
	if occ.LeaseID != nil {
		if err := checkLeaseCoversUnit(tx, *occ.LeaseID, occ.TenantID, occ.UnitID); err != nil {
			return err
		}
	}
	if occ.Status != domain.OccupancyActive {
		return nil
	}
	return checkOtherTenants(tx, occ.UnitID, occ.TenantID, occ.StartDate, occ.EndDate, occ.ID)
}

// checkLeaseCoversUnit requires the cited lease to belong to tenantID and include unitID.
func checkLeaseCoversUnit(tx *gorm.DB, leaseID, tenantID, unitID uuid.UUID) error {
	var lease domain.Lease
	if err := tx.First(&lease, "id = ?", leaseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("lease")
		}
		return err
	}
	if lease.TenantID != tenantID {
		return apperr.ErrBusinessRuleViolation.WithMessage("lease %s belongs to another tenant", leaseID)
	}
	var n int64
	if err := tx.Model(&domain.LeaseUnit{}).Where("lease_id = ? AND unit_id = ?", leaseID, unitID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return apperr.ErrBusinessRuleViolation.WithMessage("lease %s does not cover unit %s", leaseID, unitID)
	}
	return nil
}

// checkOtherTenants rejects an ACTIVE period on unitID that shares a day with another tenant's
// ACTIVE occupancy. exclude skips the record being checked.
func checkOtherTenants(tx *gorm.DB, unitID, tenantID uuid.UUID, start domain.Date, end *domain.Date, exclude uuid.UUID) error {
	q := tx.Where("unit_id = ? AND status = ? AND tenant_id <> ?", unitID, domain.OccupancyActive, tenantID)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	var others []domain.Occupancy
	if err := q.Find(&others).Error; err != nil {
		return err
	}
	for _, o := range others {
		if domain.OpenDatesOverlap(start, end, o.StartDate, o.EndDate) {
			return apperr.ErrOverlappingActiveOccupancy.WithMessage(
				"unit %s is occupied by tenant %s from %s", unitID, o.TenantID, o.StartDate)
		}
	}
	return nil
}
