package units

import (
	"context"
	"errors"

	"leaseos-backend/internal/domain"
	"leaseos-backend/internal/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateUnitInput struct {
	Code        string              `json:"code" validate:"required"`
	GrossArea   decimal.Decimal     `json:"grossArea"`
	NetArea     decimal.NullDecimal `json:"netArea"`
	BalconyArea decimal.NullDecimal `json:"balconyArea"`
}

type PatchUnitInput struct {
	Code        *string             `json:"code" validate:"omitempty,min=1"`
	GrossArea   decimal.NullDecimal `json:"grossArea"`
	NetArea     decimal.NullDecimal `json:"netArea"`
	BalconyArea decimal.NullDecimal `json:"balconyArea"`
}

func (s *Service) CreateUnit(ctx context.Context, actor string, floorID uuid.UUID, in CreateUnitInput) (*domain.Unit, error) {
	if !in.GrossArea.IsPositive() {
		return nil, apperr.ErrInvalidArea.WithMessage("gross area must be positive")
	}
	db := s.DB.WithContext(ctx)
	var floor domain.Floor
	if err := db.First(&floor, "id = ?", floorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("floor")
		}
		return nil, err
	}
	unit := &domain.Unit{
		BuildingID:  floor.BuildingID,
		FloorID:     floor.ID,
		Code:        in.Code,
		GrossArea:   in.GrossArea,
		NetArea:     in.NetArea,
		BalconyArea: in.BalconyArea,
		IsCurrent:   true,
	}
	unit.Stamp(actor)
	if err := db.Create(unit).Error; err != nil {
		return nil, err
	}
	return unit, nil
}

// PatchUnit edits a current unit. Retired units are frozen so recorded lineage stays balanced.
func (s *Service) PatchUnit(ctx context.Context, actor string, unitID uuid.UUID, in PatchUnitInput) (*domain.Unit, error) {
	var unit domain.Unit
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&unit, "id = ?", unitID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("unit")
			}
			return err
		}
		if !unit.IsCurrent {
			return apperr.ErrInvalidState
		}
		if in.Code != nil {
			unit.Code = *in.Code
		}
		if in.GrossArea.Valid {
			if !in.GrossArea.Decimal.IsPositive() {
				return apperr.ErrInvalidArea.WithMessage("gross area must be positive")
			}
			unit.GrossArea = in.GrossArea.Decimal
		}
		if in.NetArea.Valid {
			unit.NetArea = in.NetArea
		}
		if in.BalconyArea.Valid {
			unit.BalconyArea = in.BalconyArea
		}
		unit.Stamp(actor)
		return tx.Save(&unit).Error
	})
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (s *Service) ListCurrentUnits(ctx context.Context, floorID uuid.UUID) ([]domain.Unit, error) {
	var out []domain.Unit
	err := s.DB.WithContext(ctx).Where("floor_id = ? AND is_current = ?", floorID, true).Order("code ASC").Find(&out).Error
	return out, err
}
