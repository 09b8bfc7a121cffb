package repairs

import (
	"context"
	"errors"
	"testing"
	"time"

	"leaseos-backend/internal/domain"
	"leaseos-backend/internal/infrastructure/database/dbtest"
	"leaseos-backend/internal/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clock = time.Date(2026, 8, 20, 15, 30, 0, 0, time.UTC)

type fixture struct {
	svc    *Service
	b      domain.Building
	floor  domain.Floor
	area   domain.CommonArea
	vendor domain.Vendor
}

func setup(t *testing.T) fixture {
	db := dbtest.Open(t)
	b := dbtest.Building(t, db, "Tower A")
	return fixture{
		svc:    &Service{DB: db, Now: func() time.Time { return clock }},
		b:      b,
		floor:  dbtest.Floor(t, db, b.ID, "2F", 2),
		area:   dbtest.CommonArea(t, db, b.ID, "Lobby"),
		vendor: dbtest.Vendor(t, db, b.ID, "FixIt Ltd"),
	}
}

func strp(s string) *string { return &s }

func (fx fixture) input() CreateRepairInput {
	return CreateRepairInput{
		BuildingID:  fx.b.ID,
		ScopeType:   domain.ScopeFloor,
		Item:        "Ceiling leak",
		VendorName:  "Acme Plumbing",
		QuoteAmount: decimal.RequireFromString("1200.00"),
	}
}

func TestAcceptanceScenario(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()

	in := fx.input()
	_, err := fx.svc.CreateRepair(ctx, dbtest.Actor, in)
	assert.True(t, errors.Is(err, apperr.ErrBusinessRuleViolation))

	pass := domain.AcceptancePass
	in.FloorID = &fx.floor.ID
	in.Status = domain.RepairAccepted
	in.AcceptanceResult = &pass
	_, err = fx.svc.CreateRepair(ctx, dbtest.Actor, in)
	assert.True(t, errors.Is(err, apperr.ErrBusinessRuleViolation))

	in.InspectorName = strp("  ")
	_, err = fx.svc.CreateRepair(ctx, dbtest.Actor, in)
	assert.True(t, errors.Is(err, apperr.ErrBusinessRuleViolation))

	in.InspectorName = strp("J. Smith")
	r, err := fx.svc.CreateRepair(ctx, dbtest.Actor, in)
	require.NoError(t, err)
	require.NotNil(t, r.AcceptedAt)
	assert.True(t, r.AcceptedAt.Equal(clock))
}

func TestValidate(t *testing.T) {
	floorID, areaID := uuid.New(), uuid.New()
	fail := domain.AcceptanceFail

	assert.NoError(t, Validate(domain.ScopeFloor, &floorID, nil, domain.RepairDraft, nil, nil))
	assert.Error(t, Validate(domain.ScopeFloor, &floorID, &areaID, domain.RepairDraft, nil, nil))
	assert.Error(t, Validate(domain.ScopeCommonArea, &floorID, nil, domain.RepairDraft, nil, nil))
	assert.NoError(t, Validate(domain.ScopeCommonArea, &floorID, &areaID, domain.RepairDraft, nil, nil))
	assert.Error(t, Validate("ROOF", &floorID, nil, domain.RepairDraft, nil, nil))
	assert.Error(t, Validate(domain.ScopeFloor, &floorID, nil, domain.RepairAccepted, nil, strp("x")))
	assert.NoError(t, Validate(domain.ScopeFloor, &floorID, nil, domain.RepairAccepted, &fail, strp("x")))
}

func TestCreateRepair_Defaults(t *testing.T) {
	fx := setup(t)
	in := fx.input()
	in.ScopeType = domain.ScopeCommonArea
	in.CommonAreaID = &fx.area.ID

	r, err := fx.svc.CreateRepair(context.Background(), "", in)
	require.NoError(t, err)
	assert.Equal(t, domain.RepairDraft, r.Status)
	assert.Equal(t, "2026-08-20", r.ReportedAt.String())
	assert.Nil(t, r.AcceptedAt)
	assert.Equal(t, domain.SystemActor, r.CreatedBy)
}

func TestCreateRepair_VendorResolution(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	in := fx.input()
	in.FloorID = &fx.floor.ID
	in.VendorName = ""

	_, err := fx.svc.CreateRepair(ctx, dbtest.Actor, in)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	in.VendorID = &fx.vendor.ID
	r, err := fx.svc.CreateRepair(ctx, dbtest.Actor, in)
	require.NoError(t, err)
	assert.Equal(t, "FixIt Ltd", r.VendorName)

	missing := uuid.New()
	in.VendorID = &missing
	_, err = fx.svc.CreateRepair(ctx, dbtest.Actor, in)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestPatchRepair_AcceptedAt(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	in := fx.input()
	in.FloorID = &fx.floor.ID
	r, err := fx.svc.CreateRepair(ctx, dbtest.Actor, in)
	require.NoError(t, err)

	completed := domain.RepairCompleted
	p, err := fx.svc.PatchRepair(ctx, "ops", r.ID, PatchRepairInput{Status: &completed})
	require.NoError(t, err)
	assert.Nil(t, p.AcceptedAt)
	assert.Equal(t, "ops", p.UpdatedBy)

	accepted := domain.RepairAccepted
	_, err = fx.svc.PatchRepair(ctx, "ops", r.ID, PatchRepairInput{Status: &accepted})
	assert.True(t, errors.Is(err, apperr.ErrBusinessRuleViolation))

	cond := domain.AcceptanceConditional
	p, err = fx.svc.PatchRepair(ctx, "ops", r.ID, PatchRepairInput{Status: &accepted, AcceptanceResult: &cond, InspectorName: strp("Lee")})
	require.NoError(t, err)
	require.NotNil(t, p.AcceptedAt)
	assert.True(t, p.AcceptedAt.Equal(clock))

	given := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	p, err = fx.svc.PatchRepair(ctx, "ops", r.ID, PatchRepairInput{AcceptedAt: &given})
	require.NoError(t, err)
	assert.True(t, p.AcceptedAt.Equal(given))

	stored, err := fx.svc.GetRepair(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RepairAccepted, stored.Status)
	assert.True(t, stored.AcceptedAt.Equal(given))

	_, err = fx.svc.PatchRepair(ctx, "ops", uuid.New(), PatchRepairInput{})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	_, err = fx.svc.GetRepair(ctx, uuid.New())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestPatchRepair_AcceptingStampsNow(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	in := fx.input()
	in.FloorID = &fx.floor.ID
	in.Status = domain.RepairDraft
	earlier := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	in.AcceptedAt = &earlier
	r, err := fx.svc.CreateRepair(ctx, dbtest.Actor, in)
	require.NoError(t, err)
	require.NotNil(t, r.AcceptedAt)
	assert.True(t, r.AcceptedAt.Equal(earlier))

	accepted := domain.RepairAccepted
	pass := domain.AcceptancePass
	p, err := fx.svc.PatchRepair(ctx, "ops", r.ID, PatchRepairInput{Status: &accepted, AcceptanceResult: &pass, InspectorName: strp("Lee")})
	require.NoError(t, err)
	require.NotNil(t, p.AcceptedAt)
	assert.True(t, p.AcceptedAt.Equal(clock))

	stored, err := fx.svc.GetRepair(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, stored.AcceptedAt.Equal(clock))
}

func TestPatchRepair_ScopeRevalidated(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	in := fx.input()
	in.FloorID = &fx.floor.ID
	r, err := fx.svc.CreateRepair(ctx, dbtest.Actor, in)
	require.NoError(t, err)

	_, err = fx.svc.PatchRepair(ctx, dbtest.Actor, r.ID, PatchRepairInput{CommonAreaID: &fx.area.ID})
	assert.True(t, errors.Is(err, apperr.ErrBusinessRuleViolation))

	scope := domain.ScopeCommonArea
	p, err := fx.svc.PatchRepair(ctx, dbtest.Actor, r.ID, PatchRepairInput{ScopeType: &scope, CommonAreaID: &fx.area.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.ScopeCommonArea, p.ScopeType)
}

func TestListRepairs_Filters(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()

	in := fx.input()
	in.FloorID = &fx.floor.ID
	in.ReportedAt = dbtest.Date(t, "2026-01-10")
	_, err := fx.svc.CreateRepair(ctx, dbtest.Actor, in)
	require.NoError(t, err)

	in2 := fx.input()
	in2.ScopeType = domain.ScopeCommonArea
	in2.CommonAreaID = &fx.area.ID
	in2.Status = domain.RepairQuoted
	in2.ReportedAt = dbtest.Date(t, "2026-02-10")
	_, err = fx.svc.CreateRepair(ctx, dbtest.Actor, in2)
	require.NoError(t, err)

	all, err := fx.svc.ListRepairs(ctx, fx.b.ID, RepairFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, domain.ScopeCommonArea, all[0].ScopeType)

	quoted := domain.RepairQuoted
	got, err := fx.svc.ListRepairs(ctx, fx.b.ID, RepairFilter{Status: &quoted})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = fx.svc.ListRepairs(ctx, fx.b.ID, RepairFilter{FloorID: &fx.floor.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.ScopeFloor, got[0].ScopeType)

	got, err = fx.svc.ListRepairs(ctx, uuid.New(), RepairFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)
}
