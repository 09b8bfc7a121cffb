package buildings

import (
	"context"

	"leaseos-backend/internal/domain"
	"leaseos-backend/internal/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommonAreaInput struct {
	FloorID     *uuid.UUID `json:"floorId"`
	Name        string     `json:"name" validate:"required"`
	Code        *string    `json:"code"`
	Description *string    `json:"description"`
	Notes       *string    `json:"notes"`
}

type CommonAreaPatch struct {
	FloorID     *uuid.UUID `json:"floorId"`
	Name        *string    `json:"name" validate:"omitempty,min=1"`
	Code        *string    `json:"code"`
	Description *string    `json:"description"`
	Notes       *string    `json:"notes"`
}

func (s *Service) CreateCommonArea(ctx context.Context, actor string, buildingID uuid.UUID, in CommonAreaInput) (*domain.CommonArea, error) {
	db := s.DB.WithContext(ctx)
	if err := requireBuilding(db, buildingID); err != nil {
		return nil, err
	}
	if err := checkFloorInBuilding(db, in.FloorID, buildingID); err != nil {
		return nil, err
	}
	ca := &domain.CommonArea{
		BuildingID:  buildingID,
		FloorID:     in.FloorID,
		Name:        in.Name,
		Code:        in.Code,
		Description: in.Description,
		Notes:       in.Notes,
	}
	ca.Stamp(actor)
	if err := db.Create(ca).Error; err != nil {
		return nil, err
	}
	return ca, nil
}

func (s *Service) PatchCommonArea(ctx context.Context, actor string, id uuid.UUID, in CommonAreaPatch) (*domain.CommonArea, error) {
	var ca domain.CommonArea
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ca, "id = ?", id).Error; err != nil {
			return notFound(err, "common area")
		}
		if in.FloorID != nil {
			if err := checkFloorInBuilding(tx, in.FloorID, ca.BuildingID); err != nil {
				return err
			}
			ca.FloorID = in.FloorID
		}
		if in.Name != nil {
			ca.Name = *in.Name
		}
		if in.Code != nil {
			ca.Code = in.Code
		}
		if in.Description != nil {
			ca.Description = in.Description
		}
		if in.Notes != nil {
			ca.Notes = in.Notes
		}
		ca.Stamp(actor)
		return tx.Save(&ca).Error
	})
	if err != nil {
		return nil, err
	}
	return &ca, nil
}

func (s *Service) GetCommonArea(ctx context.Context, id uuid.UUID) (*domain.CommonArea, error) {
	var ca domain.CommonArea
	if err := s.DB.WithContext(ctx).First(&ca, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "common area")
	}
	return &ca, nil
}

func (s *Service) ListCommonAreas(ctx context.Context, buildingID uuid.UUID) ([]domain.CommonArea, error) {
	out := []domain.CommonArea{}
	err := s.DB.WithContext(ctx).Where("building_id = ?", buildingID).Order("name ASC").Find(&out).Error
	return out, err
}

func checkFloorInBuilding(db *gorm.DB, floorID *uuid.UUID, buildingID uuid.UUID) error {
	if floorID == nil {
		return nil
	}
	var f domain.Floor
	if err := db.First(&f, "id = ?", *floorID).Error; err != nil {
		return notFound(err, "floor")
	}
	if f.BuildingID != buildingID {
		return apperr.ErrValidation.WithMessage("floor %s belongs to another building", f.Label)
	}
	return nil
}
