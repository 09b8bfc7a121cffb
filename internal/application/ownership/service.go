package ownership

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

var hundred = decimal.NewFromInt(100)

// Service allocates floor ownership shares.
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

type AssignInput struct {
	OwnerID      uuid.UUID       `json:"ownerId" validate:"required"`
	SharePercent decimal.Decimal `json:"sharePercent"`
	StartDate    *time.Time      `json:"startDate"`
	EndDate      *time.Time      `json:"endDate"`
	Notes        *string         `json:"notes"`
}

// FloorOwnerView is an assignment with its owner's name.
type FloorOwnerView struct {
	domain.FloorOwner
	OwnerName string `json:"ownerName"`
}

// AssignFloorOwner adds an ownership share. The candidate plus every assignment whose period
// overlaps it may not exceed 100%.
func (s *Service) AssignFloorOwner(ctx context.Context, actor string, floorID uuid.UUID, in AssignInput) (*domain.FloorOwner, error) {
	start := s.now()
	if in.StartDate != nil {
		start = *in.StartDate
	}
	fo := &domain.FloorOwner{
		FloorID:      floorID,
		OwnerID:      in.OwnerID,
		SharePercent: in.SharePercent,
		StartDate:    start,
		EndDate:      in.EndDate,
		Notes:        in.Notes,
	}
	fo.Stamp(actor)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var floor domain.Floor
		if err := database.ForUpdate(tx).First(&floor, "id = ?", floorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("floor")
			}
			return err
		}
		var owner domain.Owner
		if err := tx.First(&owner, "id = ?", in.OwnerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("owner")
			}
			return err
		}
		if owner.BuildingID != floor.BuildingID {
			return apperr.ErrInvalidOwner
		}
		if !fo.SharePercent.IsPositive() || fo.SharePercent.GreaterThan(hundred) {
			return apperr.ErrInvalidSharePercent
		}
		if fo.EndDate != nil && fo.StartDate.After(*fo.EndDate) {
			return apperr.ErrInvalidDateRange
		}

		var existing []domain.FloorOwner
		if err := tx.Where("floor_id = ?", floorID).Order("start_date ASC").Find(&existing).Error; err != nil {
			return err
		}
		if total := allocatedShare(fo, existing); total.GreaterThan(hundred) {
			return apperr.ErrOwnerShareOverAllocated.WithMessage(
				"floor %s would be %s%% allocated", floor.Label, total.String())
		}
		return tx.Create(fo).Error
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("floor_id", floorID.String()).Str("owner_id", in.OwnerID.String()).Str("share", in.SharePercent.String()).Msg("floor owner assigned")
	return fo, nil
}

// allocatedShare sums the candidate's share with every existing share whose period overlaps it.
// Existing assignments need not overlap each other to count.
func allocatedShare(candidate *domain.FloorOwner, existing []domain.FloorOwner) decimal.Decimal {
	total := candidate.SharePercent
	for _, e := range existing {
		if domain.PeriodsOverlap(candidate.StartDate, candidate.EndDate, e.StartDate, e.EndDate) {
			total = total.Add(e.SharePercent)
		}
	}
	return total
}

// ListFloorOwners returns the floor's assignments, newest start first.
func (s *Service) ListFloorOwners(ctx context.Context, floorID uuid.UUID) ([]FloorOwnerView, error) {
	db := s.DB.WithContext(ctx)
	var rows []domain.FloorOwner
	if err := db.Where("floor_id = ?", floorID).Order("start_date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []FloorOwnerView{}, nil
	}
	ownerIDs := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ownerIDs = append(ownerIDs, r.OwnerID)
	}
	var owners []domain.Owner
	if err := db.Where("id IN ?", ownerIDs).Find(&owners).Error; err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(owners))
	for _, o := range owners {
		names[o.ID] = o.Name
	}
	out := make([]FloorOwnerView, 0, len(rows))
	for _, r := range rows {
		out = append(out, FloorOwnerView{FloorOwner: r, OwnerName: names[r.OwnerID]})
	}
	return out, nil
}

func (s *Service) DeleteFloorOwner(ctx context.Context, actor string, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.FloorOwner{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("floor owner")
	}
	log.Info().Str("floor_owner_id", id.String()).Str("actor", domain.NormalizeActor(actor)).Msg("floor owner removed")
	return nil
}
