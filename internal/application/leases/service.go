package leases

import (
	"context"
	"errors"
	"time"

	"leaseos-backend/internal/domain"
	"leaseos-backend/internal/infrastructure/database"
	"leaseos-backend/internal/pkg/apperr"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service owns leases, their unit bindings and the occupancies they activate.
type Service struct {
	DB  *gorm.DB
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) today() domain.Date {
	return domain.DateOf(s.now())
}

type CreateLeaseInput struct {
	BuildingID    uuid.UUID           `json:"buildingId" validate:"required"`
	TenantID      uuid.UUID           `json:"tenantId" validate:"required"`
	UnitIDs       []uuid.UUID         `json:"unitIds" validate:"required,min=1"`
	Status        domain.LeaseStatus  `json:"status" validate:"omitempty,oneof=DRAFT ACTIVE TERMINATED"`
	StartDate     domain.Date         `json:"startDate"`
	EndDate       domain.Date         `json:"endDate"`
	ManagementFee decimal.NullDecimal `json:"managementFee"`
	Rent          decimal.NullDecimal `json:"rent"`
	Deposit       decimal.NullDecimal `json:"deposit"`
}

// PatchLeaseInput overwrites only the fields that are present. UnitIDs, when non-nil, replaces the unit set.
type PatchLeaseInput struct {
	Status        *domain.LeaseStatus `json:"status" validate:"omitempty,oneof=DRAFT ACTIVE TERMINATED"`
	StartDate     *domain.Date        `json:"startDate"`
	EndDate       *domain.Date        `json:"endDate"`
	UnitIDs       []uuid.UUID         `json:"unitIds"`
	ManagementFee decimal.NullDecimal `json:"managementFee"`
	Rent          decimal.NullDecimal `json:"rent"`
	Deposit       decimal.NullDecimal `json:"deposit"`
}

// LeaseDetail is a lease with its units, bound occupancies and resolved management fee.
type LeaseDetail struct {
	domain.Lease
	UnitIDs                []uuid.UUID         `json:"unitIds"`
	Occupancies            []domain.Occupancy  `json:"occupancies"`
	EffectiveManagementFee decimal.NullDecimal `json:"effectiveManagementFee"`
}

func checkDates(start, end domain.Date) error {
	if start.IsZero() || end.IsZero() {
		return apperr.ErrValidation.WithMessage("startDate and endDate are required")
	}
	if start.After(end) {
		return apperr.ErrInvalidDateRange
	}
	return nil
}

// CreateLease persists a lease bound to UnitIDs. An ACTIVE lease must not overlap another ACTIVE
// lease on any of its units, and promotes or creates the tenant's occupancies.
func (s *Service) CreateLease(ctx context.Context, actor string, in CreateLeaseInput) (*domain.Lease, error) {
	if err := checkDates(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}
	unitIDs := uniqueIDs(in.UnitIDs)
	if len(unitIDs) == 0 {
		return nil, apperr.ErrValidation.WithMessage("a lease needs at least one unit")
	}
	status := in.Status
	if status == "" {
		status = domain.LeaseDraft
	}

	lease := &domain.Lease{
		BuildingID:    in.BuildingID,
		TenantID:      in.TenantID,
		Status:        status,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		ManagementFee: in.ManagementFee,
		Rent:          in.Rent,
		Deposit:       in.Deposit,
	}
	lease.Stamp(actor)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockUnits(tx, unitIDs); err != nil {
			return err
		}
		if status == domain.LeaseActive {
			if err := checkOverlap(tx, unitIDs, lease.StartDate, lease.EndDate, nil); err != nil {
				return err
			}
		}
		if err := tx.Create(lease).Error; err != nil {
			return err
		}
		if err := bindUnits(tx, actor, lease.ID, unitIDs); err != nil {
			return err
		}
		if status == domain.LeaseActive {
			return syncOccupancies(tx, actor, lease, unitIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if status == domain.LeaseActive {
		log.Info().Str("lease_id", lease.ID.String()).Str("tenant_id", lease.TenantID.String()).Int("units", len(unitIDs)).Msg("lease activated")
	}
	return lease, nil
}

// PatchLease resolves every field against the stored lease and re-runs the guards and occupancy sync.
func (s *Service) PatchLease(ctx context.Context, actor string, leaseID uuid.UUID, in PatchLeaseInput) (*domain.Lease, error) {
	var lease domain.Lease
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := database.ForUpdate(tx).First(&lease, "id = ?", leaseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("lease")
			}
			return err
		}
		if in.Status != nil {
			lease.Status = *in.Status
		}
		if in.StartDate != nil {
			lease.StartDate = *in.StartDate
		}
		if in.EndDate != nil {
			lease.EndDate = *in.EndDate
		}
		if in.ManagementFee.Valid {
			lease.ManagementFee = in.ManagementFee
		}
		if in.Rent.Valid {
			lease.Rent = in.Rent
		}
		if in.Deposit.Valid {
			lease.Deposit = in.Deposit
		}
		if err := checkDates(lease.StartDate, lease.EndDate); err != nil {
			return err
		}

		var unitIDs []uuid.UUID
		if in.UnitIDs != nil {
			unitIDs = uniqueIDs(in.UnitIDs)
			if len(unitIDs) == 0 {
				return apperr.ErrValidation.WithMessage("a lease needs at least one unit")
			}
		} else {
			ids, err := leaseUnitIDs(tx, lease.ID)
			if err != nil {
				return err
			}
			unitIDs = ids
		}
		if err := lockUnits(tx, unitIDs); err != nil {
			return err
		}
		if lease.Status == domain.LeaseActive {
			if err := checkOverlap(tx, unitIDs, lease.StartDate, lease.EndDate, &lease.ID); err != nil {
				return err
			}
		}

		lease.Stamp(actor)
		if err := tx.Save(&lease).Error; err != nil {
			return err
		}
		if in.UnitIDs != nil {
			if err := tx.Where("lease_id = ?", lease.ID).Delete(&domain.LeaseUnit{}).Error; err != nil {
				return err
			}
			if err := bindUnits(tx, actor, lease.ID, unitIDs); err != nil {
				return err
			}
		}
		if lease.Status == domain.LeaseActive {
			return syncOccupancies(tx, actor, &lease, unitIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &lease, nil
}

func (s *Service) GetLease(ctx context.Context, leaseID uuid.UUID) (*LeaseDetail, error) {
	db := s.DB.WithContext(ctx)
	var lease domain.Lease
	if err := db.First(&lease, "id = ?", leaseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("lease")
		}
		return nil, err
	}
	unitIDs, err := leaseUnitIDs(db, lease.ID)
	if err != nil {
		return nil, err
	}
	var occupancies []domain.Occupancy
	if err := db.Where("lease_id = ?", lease.ID).Order("start_date ASC").Find(&occupancies).Error; err != nil {
		return nil, err
	}
	fee := lease.ManagementFee
	if !fee.Valid {
		var b domain.Building
		err := db.First(&b, "id = ?", lease.BuildingID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		fee = b.ManagementFee
	}
	return &LeaseDetail{Lease: lease, UnitIDs: unitIDs, Occupancies: occupancies, EffectiveManagementFee: fee}, nil
}

func (s *Service) ListLeases(ctx context.Context, buildingID uuid.UUID) ([]domain.Lease, error) {
	var leases []domain.Lease
	err := s.DB.WithContext(ctx).Where("building_id = ?", buildingID).Order("start_date DESC").Find(&leases).Error
	return leases, err
}

func lockUnits(tx *gorm.DB, unitIDs []uuid.UUID) error {
	var units []domain.Unit
	if err := database.ForUpdate(tx).Where("id IN ?", unitIDs).Find(&units).Error; err != nil {
		return err
	}
	if len(units) != len(unitIDs) {
		return apperr.NotFound("unit")
	}
	return nil
}

func bindUnits(tx *gorm.DB, actor string, leaseID uuid.UUID, unitIDs []uuid.UUID) error {
	for _, id := range unitIDs {
		lu := domain.LeaseUnit{LeaseID: leaseID, UnitID: id}
		lu.Stamp(actor)
		if err := tx.Create(&lu).Error; err != nil {
			return err
		}
	}
	return nil
}

func leaseUnitIDs(db *gorm.DB, leaseID uuid.UUID) ([]uuid.UUID, error) {
	var links []domain.LeaseUnit
	if err := db.Where("lease_id = ?", leaseID).Order("created_at ASC").Find(&links).Error; err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.UnitID)
	}
	return ids, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
