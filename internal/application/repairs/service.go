package repairs

import (
	"context"
	"errors"
	"strings"
	"time"

	"leaseos-backend/internal/domain"
	"leaseos-backend/internal/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

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

type CreateRepairInput struct {
	BuildingID       uuid.UUID                `json:"buildingId" validate:"required"`
	ScopeType        domain.RepairScopeType   `json:"scopeType" validate:"required,oneof=FLOOR COMMON_AREA"`
	FloorID          *uuid.UUID               `json:"floorId"`
	CommonAreaID     *uuid.UUID               `json:"commonAreaId"`
	Item             string                   `json:"item" validate:"required"`
	Description      *string                  `json:"description"`
	VendorID         *uuid.UUID               `json:"vendorId"`
	VendorName       string                   `json:"vendorName"`
	VendorTaxID      *string                  `json:"vendorTaxId"`
	QuoteAmount      decimal.Decimal          `json:"quoteAmount"`
	ApprovedAmount   decimal.NullDecimal      `json:"approvedAmount"`
	FinalAmount      decimal.NullDecimal      `json:"finalAmount"`
	Status           domain.RepairStatus      `json:"status" validate:"omitempty,oneof=DRAFT QUOTED APPROVED IN_PROGRESS COMPLETED ACCEPTED REJECTED"`
	AcceptanceResult *domain.AcceptanceResult `json:"acceptanceResult" validate:"omitempty,oneof=PASS FAIL CONDITIONAL"`
	InspectorName    *string                  `json:"inspectorName"`
	ReportedAt       domain.Date              `json:"reportedAt"`
	StartedAt        *domain.Date             `json:"startedAt"`
	CompletedAt      *domain.Date             `json:"completedAt"`
	AcceptedAt       *time.Time               `json:"acceptedAt"`
	Notes            *string                  `json:"notes"`
}

type PatchRepairInput struct {
	ScopeType        *domain.RepairScopeType  `json:"scopeType" validate:"omitempty,oneof=FLOOR COMMON_AREA"`
	FloorID          *uuid.UUID               `json:"floorId"`
	CommonAreaID     *uuid.UUID               `json:"commonAreaId"`
	Item             *string                  `json:"item" validate:"omitempty,min=1"`
	Description      *string                  `json:"description"`
	VendorID         *uuid.UUID               `json:"vendorId"`
	VendorName       *string                  `json:"vendorName" validate:"omitempty,min=1"`
	VendorTaxID      *string                  `json:"vendorTaxId"`
	QuoteAmount      decimal.NullDecimal      `json:"quoteAmount"`
	ApprovedAmount   decimal.NullDecimal      `json:"approvedAmount"`
	FinalAmount      decimal.NullDecimal      `json:"finalAmount"`
	Status           *domain.RepairStatus     `json:"status" validate:"omitempty,oneof=DRAFT QUOTED APPROVED IN_PROGRESS COMPLETED ACCEPTED REJECTED"`
	AcceptanceResult *domain.AcceptanceResult `json:"acceptanceResult" validate:"omitempty,oneof=PASS FAIL CONDITIONAL"`
	InspectorName    *string                  `json:"inspectorName"`
	ReportedAt       *domain.Date             `json:"reportedAt"`
	StartedAt        *domain.Date             `json:"startedAt"`
	CompletedAt      *domain.Date             `json:"completedAt"`
	AcceptedAt       *time.Time               `json:"acceptedAt"`
	Notes            *string                  `json:"notes"`
}

// RepairFilter narrows ListRepairs. Nil fields match everything.
type RepairFilter struct {
	Status       *domain.RepairStatus
	ScopeType    *domain.RepairScopeType
	FloorID      *uuid.UUID
	CommonAreaID *uuid.UUID
}

// Validate checks the scope and acceptance rules on a fully resolved record.
func Validate(scope domain.RepairScopeType, floorID, commonAreaID *uuid.UUID, status domain.RepairStatus, result *domain.AcceptanceResult, inspector *string) error {
	switch scope {
	case domain.ScopeFloor:
		if floorID == nil {
			return apperr.ErrBusinessRuleViolation.WithMessage("floor repairs need a floorId")
		}
		if commonAreaID != nil {
			return apperr.ErrBusinessRuleViolation.WithMessage("floor repairs cannot reference a common area")
		}
	case domain.ScopeCommonArea:
		if commonAreaID == nil {
			return apperr.ErrBusinessRuleViolation.WithMessage("common area repairs need a commonAreaId")
		}
	default:
		return apperr.ErrBusinessRuleViolation.WithMessage("unknown scope type %q", scope)
	}
	if status == domain.RepairAccepted {
		if result == nil {
			return apperr.ErrBusinessRuleViolation.WithMessage("accepted repairs need an acceptance result")
		}
		if inspector == nil || strings.TrimSpace(*inspector) == "" {
			return apperr.ErrBusinessRuleViolation.WithMessage("accepted repairs need an inspector name")
		}
	}
	return nil
}

func validateRecord(r *domain.RepairRecord) error {
	return Validate(r.ScopeType, r.FloorID, r.CommonAreaID, r.Status, r.AcceptanceResult, r.InspectorName)
}

// CreateRepair records a work order. Status defaults to DRAFT and reportedAt to today.
func (s *Service) CreateRepair(ctx context.Context, actor string, in CreateRepairInput) (*domain.RepairRecord, error) {
	r := &domain.RepairRecord{
		BuildingID:       in.BuildingID,
		ScopeType:        in.ScopeType,
		FloorID:          in.FloorID,
		CommonAreaID:     in.CommonAreaID,
		Item:             in.Item,
		Description:      in.Description,
		VendorID:         in.VendorID,
		VendorName:       in.VendorName,
		VendorTaxID:      in.VendorTaxID,
		QuoteAmount:      in.QuoteAmount,
		ApprovedAmount:   in.ApprovedAmount,
		FinalAmount:      in.FinalAmount,
		Status:           in.Status,
		AcceptanceResult: in.AcceptanceResult,
		InspectorName:    in.InspectorName,
		ReportedAt:       in.ReportedAt,
		StartedAt:        in.StartedAt,
		CompletedAt:      in.CompletedAt,
		AcceptedAt:       in.AcceptedAt,
		Notes:            in.Notes,
	}
	if r.Status == "" {
		r.Status = domain.RepairDraft
	}
	if r.ReportedAt.IsZero() {
		r.ReportedAt = domain.DateOf(s.now())
	}
	if err := validateRecord(r); err != nil {
		return nil, err
	}
	if r.Status == domain.RepairAccepted && r.AcceptedAt == nil {
		now := s.now()
		r.AcceptedAt = &now
	}
	r.Stamp(actor)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := resolveVendor(tx, r); err != nil {
			return err
		}
		return tx.Create(r).Error
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// PatchRepair overwrites present fields and validates the result. When the resolved status is
// ACCEPTED and no acceptedAt is supplied, acceptedAt is set to now, replacing any stored value.
func (s *Service) PatchRepair(ctx context.Context, actor string, id uuid.UUID, in PatchRepairInput) (*domain.RepairRecord, error) {
	var r domain.RepairRecord
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&r, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("repair record")
			}
			return err
		}
		applyPatch(&r, in)
		if err := validateRecord(&r); err != nil {
			return err
		}
		if in.AcceptedAt != nil {
			r.AcceptedAt = in.AcceptedAt
		} else if r.Status == domain.RepairAccepted {
			now := s.now()
			r.AcceptedAt = &now
		}
		if err := resolveVendor(tx, &r); err != nil {
			return err
		}
		r.Stamp(actor)
		return tx.Save(&r).Error
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func applyPatch(r *domain.RepairRecord, in PatchRepairInput) {
	if in.ScopeType != nil {
		r.ScopeType = *in.ScopeType
	}
	if in.FloorID != nil {
		r.FloorID = in.FloorID
	}
	if in.CommonAreaID != nil {
		r.CommonAreaID = in.CommonAreaID
	}
	if in.Item != nil {
		r.Item = *in.Item
	}
	if in.Description != nil {
		r.Description = in.Description
	}
	if in.VendorID != nil {
		r.VendorID = in.VendorID
	}
	if in.VendorName != nil {
		r.VendorName = *in.VendorName
	}
	if in.VendorTaxID != nil {
		r.VendorTaxID = in.VendorTaxID
	}
	if in.QuoteAmount.Valid {
		r.QuoteAmount = in.QuoteAmount.Decimal
	}
	if in.ApprovedAmount.Valid {
		r.ApprovedAmount = in.ApprovedAmount
	}
	if in.FinalAmount.Valid {
		r.FinalAmount = in.FinalAmount
	}
	if in.Status != nil {
		r.Status = *in.Status
	}
	if in.AcceptanceResult != nil {
		r.AcceptanceResult = in.AcceptanceResult
	}
	if in.InspectorName != nil {
		r.InspectorName = in.InspectorName
	}
	if in.ReportedAt != nil {
		r.ReportedAt = *in.ReportedAt
	}
	if in.StartedAt != nil {
		r.StartedAt = in.StartedAt
	}
	if in.CompletedAt != nil {
		r.CompletedAt = in.CompletedAt
	}
	if in.Notes != nil {
		r.Notes = in.Notes
	}
}

// resolveVendor fills a blank vendor name and tax id from the referenced vendor.
func resolveVendor(tx *gorm.DB, r *domain.RepairRecord) error {
	if r.VendorID != nil {
		var v domain.Vendor
		if err := tx.First(&v, "id = ?", *r.VendorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("vendor")
			}
			return err
		}
		if strings.TrimSpace(r.VendorName) == "" {
			r.VendorName = v.Name
		}
		if r.VendorTaxID == nil {
			r.VendorTaxID = v.TaxID
		}
	}
	if strings.TrimSpace(r.VendorName) == "" {
		return apperr.ErrValidation.WithMessage("vendorName or vendorId is required")
	}
	return nil
}

func (s *Service) GetRepair(ctx context.Context, id uuid.UUID) (*domain.RepairRecord, error) {
	var r domain.RepairRecord
	if err := s.DB.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("repair record")
		}
		return nil, err
	}
	return &r, nil
}

func (s *Service) ListRepairs(ctx context.Context, buildingID uuid.UUID, f RepairFilter) ([]domain.RepairRecord, error) {
	q := s.DB.WithContext(ctx).Where("building_id = ?", buildingID)
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.ScopeType != nil {
		q = q.Where("scope_type = ?", *f.ScopeType)
	}
	if f.FloorID != nil {
		q = q.Where("floor_id = ?", *f.FloorID)
	}
	if f.CommonAreaID != nil {
		q = q.Where("common_area_id = ?", *f.CommonAreaID)
	}
	var out []domain.RepairRecord
	err := q.Order("reported_at DESC").Order("created_at DESC").Find(&out).Error
	return out, err
}
