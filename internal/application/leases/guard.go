package leases

import (
	"errors"

	"leaseos-backend/internal/domain"
	"leaseos-backend/internal/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// checkOverlap rejects [start,end] when any ACTIVE lease other than exclude covers one of unitIDs
// on a shared day. Boundaries are inclusive.
func checkOverlap(tx *gorm.DB, unitIDs []uuid.UUID, start, end domain.Date, exclude *uuid.UUID) error {
	var links []domain.LeaseUnit
	if err := tx.Where("unit_id IN ?", unitIDs).Find(&links).Error; err != nil {
		return err
	}
	leaseUnit := make(map[uuid.UUID]uuid.UUID, len(links))
	var leaseIDs []uuid.UUID
	for _, l := range links {
		if exclude != nil && l.LeaseID == *exclude {
			continue
		}
		if _, ok := leaseUnit[l.LeaseID]; !ok {
			leaseIDs = append(leaseIDs, l.LeaseID)
		}
		leaseUnit[l.LeaseID] = l.UnitID
	}
	if len(leaseIDs) == 0 {
		return nil
	}

	var active []domain.Lease
	if err := tx.Where("id IN ? AND status = ?", leaseIDs, domain.LeaseActive).Find(&active).Error; err != nil {
		return err
	}
	for _, other := range active {
		if domain.DatesOverlap(start, end, other.StartDate, other.EndDate) {
			return apperr.ErrOverlappingActiveLease.WithMessage(
				"unit %s already has active lease %s for %s to %s",
				leaseUnit[other.ID], other.ID, other.StartDate, other.EndDate)
		}
	}
	return nil
}

// syncOccupancies makes each unit's occupancy for the lease tenant ACTIVE with the lease dates.
// The newest DRAFT is promoted; failing that an occupancy already bound to the lease is realigned;
// otherwise a new one is created. Other tenants' occupancies are never touched; an ACTIVE one
// sharing a day with the lease fails the sync.
func syncOccupancies(tx *gorm.DB, actor string, lease *domain.Lease, unitIDs []uuid.UUID) error {
	end := lease.EndDate
	for _, unitID := range unitIDs {
		if err := checkOtherTenants(tx, unitID, lease.TenantID, lease.StartDate, &end, uuid.Nil); err != nil {
			return err
		}
		var occ domain.Occupancy
		err := tx.Where("unit_id = ? AND tenant_id = ? AND status = ?", unitID, lease.TenantID, domain.OccupancyDraft).
			Order("created_at DESC").First(&occ).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = tx.Where("unit_id = ? AND lease_id = ?", unitID, lease.ID).
				Order("created_at DESC").First(&occ).Error
		}
		switch {
		case err == nil:
			if matchesLease(occ, lease) {
				continue
			}
			applyLease(&occ, lease)
			occ.Stamp(actor)
			if err := tx.Save(&occ).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			occ = domain.Occupancy{BuildingID: lease.BuildingID, UnitID: unitID, TenantID: lease.TenantID}
			applyLease(&occ, lease)
			occ.Stamp(actor)
			if err := tx.Create(&occ).Error; err != nil {
				return err
			}
		default:
			return err
		}
	}
	return nil
}

func applyLease(occ *domain.Occupancy, lease *domain.Lease) {
	leaseID := lease.ID
	end := lease.EndDate
	occ.Status = domain.OccupancyActive
	occ.LeaseID = &leaseID
	occ.StartDate = lease.StartDate
	occ.EndDate = &end
}

func matchesLease(occ domain.Occupancy, lease *domain.Lease) bool {
	return occ.Status == domain.OccupancyActive &&
		occ.LeaseID != nil && *occ.LeaseID == lease.ID &&
		occ.StartDate.Equal(lease.StartDate) &&
		occ.EndDate != nil && occ.EndDate.Equal(lease.EndDate)
}
