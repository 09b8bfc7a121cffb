package units

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

// areaPlaces is the precision at which split areas must balance.
const areaPlaces = 2

// Service manages units and their split/merge lineage.
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

// UnitPart describes one child of a split.
type UnitPart struct {
	Code        string              `json:"code" validate:"required"`
	GrossArea   decimal.Decimal     `json:"grossArea"`
	NetArea     decimal.NullDecimal `json:"netArea"`
	BalconyArea decimal.NullDecimal `json:"balconyArea"`
}

type MergeInput struct {
	UnitIDs     []uuid.UUID         `json:"unitIds" validate:"required,min=2"`
	Code        string              `json:"code" validate:"required"`
	GrossArea   decimal.NullDecimal `json:"grossArea"`
	NetArea     decimal.NullDecimal `json:"netArea"`
	BalconyArea decimal.NullDecimal `json:"balconyArea"`
}

// SplitUnit retires a current unit and replaces it with one child per part. Each part's gross area
// is positive with at most two decimal places, and the parts add up to the source's area.
func (s *Service) SplitUnit(ctx context.Context, actor string, unitID uuid.UUID, parts []UnitPart) ([]domain.Unit, error) {
	if len(parts) == 0 {
		return nil, apperr.ErrValidation.WithMessage("split needs at least one part")
	}

	var children []domain.Unit
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var source domain.Unit
		if err := database.ForUpdate(tx).First(&source, "id = ?", unitID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("unit")
			}
			return err
		}
		if !source.IsCurrent {
			return apperr.ErrInvalidState
		}
		total, err := partsTotal(parts)
		if err != nil {
			return err
		}
		if !total.Round(areaPlaces).Equal(source.GrossArea.Round(areaPlaces)) {
			return apperr.ErrInvalidArea.WithMessage("parts total %s but unit %s has %s",
				total.StringFixed(areaPlaces), source.Code, source.GrossArea.StringFixed(areaPlaces))
		}

		source.Retire(s.now(), nil)
		source.Stamp(actor)
		if err := tx.Save(&source).Error; err != nil {
			return err
		}

		sourceID := source.ID
		children = make([]domain.Unit, 0, len(parts))
		for _, p := range parts {
			child := domain.Unit{
				BuildingID:   source.BuildingID,
				FloorID:      source.FloorID,
				Code:         p.Code,
				GrossArea:    p.GrossArea,
				NetArea:      p.NetArea,
				BalconyArea:  p.BalconyArea,
				IsCurrent:    true,
				SourceUnitID: &sourceID,
			}
			child.Stamp(actor)
			if err := tx.Create(&child).Error; err != nil {
				return err
			}
			children = append(children, child)
		}
		return recordEvent(tx, actor, domain.LineageSplit, source.ID, []domain.Unit{source}, children)
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("unit_id", unitID.String()).Int("children", len(children)).Msg("unit split")
	return children, nil
}

// MergeUnits replaces current units on one floor with a single unit. A supplied gross area is
// taken as-is; otherwise the inputs' areas are summed.
func (s *Service) MergeUnits(ctx context.Context, actor string, in MergeInput) (*domain.Unit, error) {
	if len(in.UnitIDs) < 2 {
		return nil, apperr.ErrValidation.WithMessage("merge needs at least two units")
	}
	if in.Code == "" {
		return nil, apperr.ErrValidation.WithMessage("code is required")
	}

	var merged domain.Unit
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inputs []domain.Unit
		if err := database.ForUpdate(tx).Where("id IN ? AND is_current = ?", in.UnitIDs, true).
			Order("code ASC").Find(&inputs).Error; err != nil {
			return err
		}
		// A repeated id fetches one row and so fails here too.
		if len(inputs) != len(in.UnitIDs) {
			return apperr.NotFound("current unit")
		}
		floorID := inputs[0].FloorID
		for _, u := range inputs[1:] {
			if u.FloorID != floorID {
				return apperr.ErrInvalidMerge
			}
		}

		gross, net, balcony := sumAreas(inputs)
		if in.GrossArea.Valid {
			gross = in.GrossArea.Decimal
		}
		if in.NetArea.Valid {
			net = in.NetArea
		}
		if in.BalconyArea.Valid {
			balcony = in.BalconyArea
		}
		merged = domain.Unit{
			BuildingID:  inputs[0].BuildingID,
			FloorID:     floorID,
			Code:        in.Code,
			GrossArea:   gross,
			NetArea:     net,
			BalconyArea: balcony,
			IsCurrent:   true,
		}
		merged.Stamp(actor)
		if err := tx.Create(&merged).Error; err != nil {
			return err
		}

		at := s.now()
		mergedID := merged.ID
		for i := range inputs {
			inputs[i].Retire(at, &mergedID)
			inputs[i].Stamp(actor)
			if err := tx.Save(&inputs[i]).Error; err != nil {
				return err
			}
		}
		return recordEvent(tx, actor, domain.LineageMerge, merged.ID, inputs, []domain.Unit{merged})
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("unit_id", merged.ID.String()).Int("sources", len(in.UnitIDs)).Msg("units merged")
	return &merged, nil
}

func sumAreas(units []domain.Unit) (decimal.Decimal, decimal.NullDecimal, decimal.NullDecimal) {
	gross := decimal.Zero
	var net, balcony decimal.NullDecimal
	for _, u := range units {
		gross = gross.Add(u.GrossArea)
		if u.NetArea.Valid {
			net = decimal.NewNullDecimal(net.Decimal.Add(u.NetArea.Decimal))
		}
		if u.BalconyArea.Valid {
			balcony = decimal.NewNullDecimal(balcony.Decimal.Add(u.BalconyArea.Decimal))
		}
	}
	return gross, net, balcony
}

func partsTotal(parts []UnitPart) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range parts {
		if !p.GrossArea.IsPositive() {
			return total, apperr.ErrInvalidArea.WithMessage("part %q must have a positive gross area", p.Code)
		}
		if !p.GrossArea.Equal(p.GrossArea.Round(areaPlaces)) {
			return total, apperr.ErrInvalidArea.WithMessage("part %q area %s has more than %d decimal places",
				p.Code, p.GrossArea.String(), areaPlaces)
		}
		total = total.Add(p.GrossArea)
	}
	return total, nil
}
