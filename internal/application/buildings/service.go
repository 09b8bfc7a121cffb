package buildings

import (
	"context"
	"errors"
	"fmt"

	"leaseos-backend/internal/domain"
	"leaseos-backend/internal/infrastructure/database"
	"leaseos-backend/internal/pkg/apperr"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DefaultBasementFloors    = 5
	DefaultAboveGroundFloors = 20
)

// Service covers the building inventory: buildings, floors, parties and common areas.
type Service struct {
	DB *gorm.DB
	// Floor counts used by GenerateFloors when the request leaves them out.
	BasementFloors    int
	AboveGroundFloors int
}

type BuildingInput struct {
	Name          string              `json:"name" validate:"required"`
	Code          *string             `json:"code"`
	Address       *string             `json:"address"`
	ManagementFee decimal.NullDecimal `json:"managementFee"`
}

type BuildingPatch struct {
	Name          *string             `json:"name" validate:"omitempty,min=1"`
	Code          *string             `json:"code"`
	Address       *string             `json:"address"`
	ManagementFee decimal.NullDecimal `json:"managementFee"`
}

type GenerateFloorsInput struct {
	Basements   *int `json:"basements" validate:"omitempty,min=0,max=20"`
	AboveGround *int `json:"aboveGround" validate:"omitempty,min=1,max=200"`
}

func (s *Service) CreateBuilding(ctx context.Context, actor string, in BuildingInput) (*domain.Building, error) {
	db := s.DB.WithContext(ctx)
	if err := checkCodeFree(db, in.Code, uuid.Nil); err != nil {
		return nil, err
	}
	b := &domain.Building{Name: in.Name, Code: in.Code, Address: in.Address, ManagementFee: in.ManagementFee}
	b.Stamp(actor)
	if err := db.Create(b).Error; err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) PatchBuilding(ctx context.Context, actor string, id uuid.UUID, in BuildingPatch) (*domain.Building, error) {
	var b domain.Building
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&b, "id = ?", id).Error; err != nil {
			return notFound(err, "building")
		}
		if in.Code != nil {
			if err := checkCodeFree(tx, in.Code, b.ID); err != nil {
				return err
			}
			b.Code = in.Code
		}
		if in.Name != nil {
			b.Name = *in.Name
		}
		if in.Address != nil {
			b.Address = in.Address
		}
		if in.ManagementFee.Valid {
			b.ManagementFee = in.ManagementFee
		}
		b.Stamp(actor)
		return tx.Save(&b).Error
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Service) GetBuilding(ctx context.Context, id uuid.UUID) (*domain.Building, error) {
	var b domain.Building
	if err := s.DB.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "building")
	}
	return &b, nil
}

func (s *Service) ListBuildings(ctx context.Context) ([]domain.Building, error) {
	var out []domain.Building
	err := s.DB.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}

// GenerateFloors replaces the building's floors with B{n}..B1 and 1F..{n}F.
// Basements sort below zero. Buildings that already have units keep their floors.
func (s *Service) GenerateFloors(ctx context.Context, actor string, buildingID uuid.UUID, in GenerateFloorsInput) ([]domain.Floor, error) {
	basements := s.BasementFloors
	if basements <= 0 {
		basements = DefaultBasementFloors
	}
	above := s.AboveGroundFloors
	if above <= 0 {
		above = DefaultAboveGroundFloors
	}
	if in.Basements != nil {
		basements = *in.Basements
	}
	if in.AboveGround != nil {
		above = *in.AboveGround
	}
	if basements < 0 || above < 0 {
		return nil, apperr.ErrValidation.WithMessage("floor counts must not be negative")
	}

	var floors []domain.Floor
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b domain.Building
		if err := database.ForUpdate(tx).First(&b, "id = ?", buildingID).Error; err != nil {
			return notFound(err, "building")
		}
		var units int64
		if err := tx.Model(&domain.Unit{}).Where("building_id = ?", buildingID).Count(&units).Error; err != nil {
			return err
		}
		if units > 0 {
			return apperr.ErrInvalidState.WithMessage("building already has units")
		}
		if err := tx.Where("building_id = ?", buildingID).Delete(&domain.Floor{}).Error; err != nil {
			return err
		}
		for i := basements; i >= 1; i-- {
			floors = append(floors, domain.Floor{BuildingID: buildingID, Label: fmt.Sprintf("B%d", i), SortIndex: -i})
		}
		for i := 1; i <= above; i++ {
			floors = append(floors, domain.Floor{BuildingID: buildingID, Label: fmt.Sprintf("%dF", i), SortIndex: i})
		}
		for i := range floors {
			floors[i].Stamp(actor)
		}
		if len(floors) == 0 {
			return nil
		}
		return tx.Create(&floors).Error
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("building_id", buildingID.String()).Int("floors", len(floors)).Msg("floors generated")
	return floors, nil
}

func (s *Service) ListFloors(ctx context.Context, buildingID uuid.UUID) ([]domain.Floor, error) {
	var out []domain.Floor
	err := s.DB.WithContext(ctx).Where("building_id = ?", buildingID).Order("sort_index ASC").Find(&out).Error
	return out, err
}

func (s *Service) GetFloor(ctx context.Context, id uuid.UUID) (*domain.Floor, error) {
	var f domain.Floor
	if err := s.DB.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "floor")
	}
	return &f, nil
}

func checkCodeFree(db *gorm.DB, code *string, self uuid.UUID) error {
	if code == nil || *code == "" {
		return nil
	}
	var n int64
	if err := db.Model(&domain.Building{}).Where("code = ? AND id <> ?", *code, self).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return apperr.ErrValidation.WithMessage("building code %q is already in use", *code)
	}
	return nil
}

func notFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity)
	}
	return err
}

func requireBuilding(db *gorm.DB, id uuid.UUID) error {
	var n int64
	if err := db.Model(&domain.Building{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("building")
	}
	return nil
}
