package units

import (
	"context"
	"encoding/json"
	"errors"

	"leaseos-backend/internal/domain"
	"leaseos-backend/internal/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EventData is the payload stored with each lineage event.
type EventData struct {
	SourceUnitIDs   []uuid.UUID     `json:"sourceUnitIds"`
	ResultUnitIDs   []uuid.UUID     `json:"resultUnitIds"`
	SourceGrossArea decimal.Decimal `json:"sourceGrossArea"`
	ResultGrossArea decimal.Decimal `json:"resultGrossArea"`
}

// Lineage is a unit with every unit it derives from or was replaced by.
type Lineage struct {
	Unit        domain.Unit               `json:"unit"`
	Ancestors   []domain.Unit             `json:"ancestors"`
	Descendants []domain.Unit             `json:"descendants"`
	Events      []domain.UnitLineageEvent `json:"events"`
}

func recordEvent(tx *gorm.DB, actor string, kind domain.LineageEventType, unitID uuid.UUID, sources, results []domain.Unit) error {
	data := EventData{SourceGrossArea: decimal.Zero, ResultGrossArea: decimal.Zero}
	for _, u := range sources {
		data.SourceUnitIDs = append(data.SourceUnitIDs, u.ID)
		data.SourceGrossArea = data.SourceGrossArea.Add(u.GrossArea)
	}
	for _, u := range results {
		data.ResultUnitIDs = append(data.ResultUnitIDs, u.ID)
		data.ResultGrossArea = data.ResultGrossArea.Add(u.GrossArea)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	ev := domain.UnitLineageEvent{EventType: kind, UnitID: unitID, EventData: datatypes.JSON(raw)}
	ev.Stamp(actor)
	return tx.Create(&ev).Error
}

// Lineage walks sourceUnitId and replacedByUnitId links in both directions from unitID.
func (s *Service) Lineage(ctx context.Context, unitID uuid.UUID) (*Lineage, error) {
	db := s.DB.WithContext(ctx)
	var unit domain.Unit
	if err := db.First(&unit, "id = ?", unitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("unit")
		}
		return nil, err
	}

	visited := map[uuid.UUID]bool{unit.ID: true}
	ancestors, err := walk(db, unit, visited, parents)
	if err != nil {
		return nil, err
	}
	descendants, err := walk(db, unit, visited, children)
	if err != nil {
		return nil, err
	}

	ids := []uuid.UUID{unit.ID}
	for _, u := range ancestors {
		ids = append(ids, u.ID)
	}
	for _, u := range descendants {
		ids = append(ids, u.ID)
	}
	var events []domain.UnitLineageEvent
	if err := db.Where("unit_id IN ?", ids).Order("created_at ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return &Lineage{Unit: unit, Ancestors: ancestors, Descendants: descendants, Events: events}, nil
}

type neighbours func(db *gorm.DB, u domain.Unit) ([]domain.Unit, error)

func walk(db *gorm.DB, start domain.Unit, visited map[uuid.UUID]bool, next neighbours) ([]domain.Unit, error) {
	var out []domain.Unit
	queue := []domain.Unit{start}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		found, err := next(db, u)
		if err != nil {
			return nil, err
		}
		for _, n := range found {
			if visited[n.ID] {
				continue
			}
			visited[n.ID] = true
			out = append(out, n)
			queue = append(queue, n)
		}
	}
	return out, nil
}

func parents(db *gorm.DB, u domain.Unit) ([]domain.Unit, error) {
	var out []domain.Unit
	if err := db.Where("replaced_by_unit_id = ?", u.ID).Order("code ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	if u.SourceUnitID != nil {
		var src domain.Unit
		err := db.First(&src, "id = ?", *u.SourceUnitID).Error
		switch {
		case err == nil:
			out = append(out, src)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
	}
	return out, nil
}

func children(db *gorm.DB, u domain.Unit) ([]domain.Unit, error) {
	var out []domain.Unit
	if err := db.Where("source_unit_id = ?", u.ID).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	if u.ReplacedByUnitID != nil {
		var succ domain.Unit
		err := db.First(&succ, "id = ?", *u.ReplacedByUnitID).Error
		switch {
		case err == nil:
			out = append(out, succ)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
	}
	return out, nil
}
