package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"leaseos-backend/internal/domain"
	"leaseos-backend/internal/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const (
	SheetUnits   = "Units"
	SheetLeases  = "Leases"
	SheetOwners  = "Floor Owners"
	SheetRepairs = "Repairs"
)

var (
	unitHeader   = []string{"Floor", "Code", "Gross Area", "Net Area", "Balcony Area", "Current", "Source Unit", "Replaced By"}
	leaseHeader  = []string{"Tenant", "Status", "Start", "End", "Units", "Rent", "Management Fee", "Deposit"}
	ownerHeader  = []string{"Floor", "Owner", "Share %", "Start", "End"}
	repairHeader = []string{"Reported", "Scope", "Item", "Vendor", "Status", "Quote", "Approved", "Final", "Acceptance", "Inspector"}
)

// Service renders a building snapshot as an xlsx workbook.
type Service struct {
	DB *gorm.DB
}

type snapshot struct {
	building    domain.Building
	floors      map[uuid.UUID]domain.Floor
	floorIDs    []uuid.UUID
	units       []domain.Unit
	unitCodes   map[uuid.UUID]string
	leases      []domain.Lease
	leaseUnits  map[uuid.UUID][]string
	tenants     map[uuid.UUID]string
	floorOwners []domain.FloorOwner
	owners      map[uuid.UUID]string
	repairs     []domain.RepairRecord
}

// BuildingWorkbook returns the xlsx bytes for one building.
func (s *Service) BuildingWorkbook(ctx context.Context, buildingID uuid.UUID) ([]byte, string, error) {
	snap, err := s.load(ctx, buildingID)
	if err != nil {
		return nil, "", err
	}
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create header style: %w", err)
	}

	sheets := []struct {
		name   string
		header []string
		rows   [][]interface{}
	}{
		{SheetUnits, unitHeader, snap.unitRows()},
		{SheetLeases, leaseHeader, snap.leaseRows()},
		{SheetOwners, ownerHeader, snap.ownerRows()},
		{SheetRepairs, repairHeader, snap.repairRows()},
	}
	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.name); err != nil {
				return nil, "", err
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return nil, "", fmt.Errorf("failed to create sheet %s: %w", sh.name, err)
		}
		if err := writeSheet(f, sh.name, sh.header, sh.rows, headerStyle); err != nil {
			return nil, "", err
		}
	}
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), fileName(snap.building), nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]interface{}, headerStyle int) error {
	row := make([]interface{}, len(header))
	for i, h := range header {
		row[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &row); err != nil {
		return fmt.Errorf("failed to write header on %s: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write row %d on %s: %w", i+2, sheet, err)
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	return f.SetColWidth(sheet, "A", lastCol, 16)
}

func (s *Service) load(ctx context.Context, buildingID uuid.UUID) (*snapshot, error) {
	db := s.DB.WithContext(ctx)
	snap := &snapshot{
		floors:     map[uuid.UUID]domain.Floor{},
		unitCodes:  map[uuid.UUID]string{},
		leaseUnits: map[uuid.UUID][]string{},
		tenants:    map[uuid.UUID]string{},
		owners:     map[uuid.UUID]string{},
	}
	if err := db.First(&snap.building, "id = ?", buildingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("building")
		}
		return nil, err
	}

	var floors []domain.Floor
	if err := db.Where("building_id = ?", buildingID).Order("sort_index ASC").Find(&floors).Error; err != nil {
		return nil, err
	}
	for _, fl := range floors {
		snap.floors[fl.ID] = fl
		snap.floorIDs = append(snap.floorIDs, fl.ID)
	}

	if err := db.Where("building_id = ?", buildingID).Order("code ASC").Find(&snap.units).Error; err != nil {
		return nil, err
	}
	for _, u := range snap.units {
		snap.unitCodes[u.ID] = u.Code
	}

	if err := db.Where("building_id = ?", buildingID).Order("start_date ASC").Find(&snap.leases).Error; err != nil {
		return nil, err
	}
	if len(snap.leases) > 0 {
		ids := make([]uuid.UUID, 0, len(snap.leases))
		for _, l := range snap.leases {
			ids = append(ids, l.ID)
		}
		var links []domain.LeaseUnit
		if err := db.Where("lease_id IN ?", ids).Find(&links).Error; err != nil {
			return nil, err
		}
		for _, l := range links {
			snap.leaseUnits[l.LeaseID] = append(snap.leaseUnits[l.LeaseID], snap.unitCodes[l.UnitID])
		}
	}

	var tenants []domain.Tenant
	if err := db.Where("building_id = ?", buildingID).Find(&tenants).Error; err != nil {
		return nil, err
	}
	for _, t := range tenants {
		snap.tenants[t.ID] = t.Name
	}

	if len(snap.floorIDs) > 0 {
		if err := db.Where("floor_id IN ?", snap.floorIDs).Order("start_date ASC").Find(&snap.floorOwners).Error; err != nil {
			return nil, err
		}
	}
	var owners []domain.Owner
	if err := db.Where("building_id = ?", buildingID).Find(&owners).Error; err != nil {
		return nil, err
	}
	for _, o := range owners {
		snap.owners[o.ID] = o.Name
	}

	if err := db.Where("building_id = ?", buildingID).Order("reported_at ASC").Find(&snap.repairs).Error; err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *snapshot) unitRows() [][]interface{} {
	rows := make([][]interface{}, 0, len(s.units))
	for _, u := range s.units {
		rows = append(rows, []interface{}{
			s.floors[u.FloorID].Label, u.Code, u.GrossArea.StringFixed(2),
			nullFixed(u.NetArea), nullFixed(u.BalconyArea), yesNo(u.IsCurrent),
			s.codeOf(u.SourceUnitID), s.codeOf(u.ReplacedByUnitID),
		})
	}
	return rows
}

func (s *snapshot) leaseRows() [][]interface{} {
	rows := make([][]interface{}, 0, len(s.leases))
	for _, l := range s.leases {
		fee := l.ManagementFee
		if !fee.Valid {
			fee = s.building.ManagementFee
		}
		rows = append(rows, []interface{}{
			s.tenants[l.TenantID], string(l.Status), l.StartDate.String(), l.EndDate.String(),
			strings.Join(s.leaseUnits[l.ID], ", "), nullFixed(l.Rent), nullFixed(fee), nullFixed(l.Deposit),
		})
	}
	return rows
}

func (s *snapshot) ownerRows() [][]interface{} {
	rows := make([][]interface{}, 0, len(s.floorOwners))
	for _, fo := range s.floorOwners {
		end := ""
		if fo.EndDate != nil {
			end = fo.EndDate.Format("2006-01-02")
		}
		rows = append(rows, []interface{}{
			s.floors[fo.FloorID].Label, s.owners[fo.OwnerID], fo.SharePercent.StringFixed(2),
			fo.StartDate.Format("2006-01-02"), end,
		})
	}
	return rows
}

func (s *snapshot) repairRows() [][]interface{} {
	rows := make([][]interface{}, 0, len(s.repairs))
	for _, r := range s.repairs {
		acceptance, inspector := "", ""
		if r.AcceptanceResult != nil {
			acceptance = string(*r.AcceptanceResult)
		}
		if r.InspectorName != nil {
			inspector = *r.InspectorName
		}
		rows = append(rows, []interface{}{
			r.ReportedAt.String(), string(r.ScopeType), r.Item, r.VendorName, string(r.Status),
			r.QuoteAmount.StringFixed(2), nullFixed(r.ApprovedAmount), nullFixed(r.FinalAmount), acceptance, inspector,
		})
	}
	return rows
}

func (s *snapshot) codeOf(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return s.unitCodes[*id]
}

func nullFixed(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.StringFixed(2)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func fileName(b domain.Building) string {
	name := b.Name
	if b.Code != nil && *b.Code != "" {
		name = *b.Code
	}
	name = strings.Map(func(r rune) rune {
		if r == ' ' || r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, name)
	return name + ".xlsx"
}
