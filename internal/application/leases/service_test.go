package leases

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
	"gorm.io/gorm"
)

type fixture struct {
	svc    *Service
	db     *gorm.DB
	b      domain.Building
	unit   domain.Unit
	unit2  domain.Unit
	tenant domain.Tenant
	other  domain.Tenant
}

func setup(t *testing.T) fixture {
	db := dbtest.Open(t)
	b := dbtest.Building(t, db, "Tower A")
	f := dbtest.Floor(t, db, b.ID, "1F", 1)
	return fixture{
		svc:    &Service{DB: db, Now: func() time.Time { return time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC) }},
		db:     db,
		b:      b,
		unit:   dbtest.Unit(t, db, f, "101", "100.00"),
		unit2:  dbtest.Unit(t, db, f, "102", "50.00"),
		tenant: dbtest.Tenant(t, db, b.ID, "Acme"),
		other:  dbtest.Tenant(t, db, b.ID, "Globex"),
	}
}

func (fx fixture) lease(t *testing.T, status domain.LeaseStatus, start, end string, units ...uuid.UUID) (*domain.Lease, error) {
	return fx.leaseFor(t, fx.tenant, status, start, end, units...)
}

func (fx fixture) leaseFor(t *testing.T, tenant domain.Tenant, status domain.LeaseStatus, start, end string, units ...uuid.UUID) (*domain.Lease, error) {
	if len(units) == 0 {
		units = []uuid.UUID{fx.unit.ID}
	}
	return fx.svc.CreateLease(context.Background(), dbtest.Actor, CreateLeaseInput{
		BuildingID: fx.b.ID,
		TenantID:   tenant.ID,
		UnitIDs:    units,
		Status:     status,
		StartDate:  dbtest.Date(t, start),
		EndDate:    dbtest.Date(t, end),
	})
}

func occupancies(t *testing.T, db *gorm.DB, unitID uuid.UUID) []domain.Occupancy {
	var out []domain.Occupancy
	require.NoError(t, db.Where("unit_id = ?", unitID).Order("created_at ASC").Find(&out).Error)
	return out
}

func TestCreateLease_PromotesDraftOccupancy(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	draft, err := fx.svc.CreateOccupancy(ctx, dbtest.Actor, CreateOccupancyInput{
		BuildingID: fx.b.ID, UnitID: fx.unit.ID, TenantID: fx.tenant.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OccupancyDraft, draft.Status)

	lease, err := fx.lease(t, domain.LeaseActive, "2026-03-01", "2027-02-28")
	require.NoError(t, err)

	occs := occupancies(t, fx.db, fx.unit.ID)
	require.Len(t, occs, 1)
	assert.Equal(t, draft.ID, occs[0].ID)
	assert.Equal(t, domain.OccupancyActive, occs[0].Status)
	require.NotNil(t, occs[0].LeaseID)
	assert.Equal(t, lease.ID, *occs[0].LeaseID)
	assert.Equal(t, "2026-03-01", occs[0].StartDate.String())
	require.NotNil(t, occs[0].EndDate)
	assert.Equal(t, "2027-02-28", occs[0].EndDate.String())
	assert.Equal(t, dbtest.Actor, occs[0].UpdatedBy)
}

func TestCreateLease_CreatesOccupancyWhenNoDraft(t *testing.T) {
	fx := setup(t)
	lease, err := fx.lease(t, domain.LeaseActive, "2026-01-01", "2026-12-31", fx.unit.ID, fx.unit2.ID)
	require.NoError(t, err)

	for _, u := range []uuid.UUID{fx.unit.ID, fx.unit2.ID} {
		occs := occupancies(t, fx.db, u)
		require.Len(t, occs, 1)
		assert.Equal(t, domain.OccupancyActive, occs[0].Status)
		assert.Equal(t, lease.ID, *occs[0].LeaseID)
		assert.Equal(t, fx.tenant.ID, occs[0].TenantID)
	}
}

func TestCreateLease_DraftDoesNotSync(t *testing.T) {
	fx := setup(t)
	lease, err := fx.lease(t, "", "2026-01-01", "2026-12-31")
	require.NoError(t, err)
	assert.Equal(t, domain.LeaseDraft, lease.Status)
	assert.Empty(t, occupancies(t, fx.db, fx.unit.ID))
}

func TestCreateLease_OverlappingActiveRejected(t *testing.T) {
	fx := setup(t)
	_, err := fx.lease(t, domain.LeaseActive, "2026-01-01", "2026-12-31")
	require.NoError(t, err)

	_, err = fx.lease(t, domain.LeaseActive, "2026-06-01", "2027-05-31")
	assert.True(t, errors.Is(err, apperr.ErrOverlappingActiveLease))

	var n int64
	fx.db.Model(&domain.Lease{}).Count(&n)
	assert.EqualValues(t, 1, n)
}

func TestCreateLease_TouchingBoundaryOverlaps(t *testing.T) {
	fx := setup(t)
	_, err := fx.lease(t, domain.LeaseActive, "2026-01-01", "2026-06-30")
	require.NoError(t, err)

	_, err = fx.lease(t, domain.LeaseActive, "2026-06-30", "2026-12-31")
	assert.True(t, errors.Is(err, apperr.ErrOverlappingActiveLease))

	_, err = fx.lease(t, domain.LeaseActive, "2026-07-01", "2026-12-31")
	assert.NoError(t, err)
}

func TestCreateLease_DraftOrOtherUnitDoesNotConflict(t *testing.T) {
	fx := setup(t)
	_, err := fx.lease(t, domain.LeaseActive, "2026-01-01", "2026-12-31")
	require.NoError(t, err)

	_, err = fx.lease(t, domain.LeaseDraft, "2026-03-01", "2026-04-01")
	assert.NoError(t, err)
	_, err = fx.lease(t, domain.LeaseActive, "2026-03-01", "2026-04-01", fx.unit2.ID)
	assert.NoError(t, err)
}

func TestCreateLease_Validation(t *testing.T) {
	fx := setup(t)
	_, err := fx.lease(t, domain.LeaseActive, "2026-12-31", "2026-01-01")
	assert.True(t, errors.Is(err, apperr.ErrInvalidDateRange))

	_, err = fx.svc.CreateLease(context.Background(), dbtest.Actor, CreateLeaseInput{
		BuildingID: fx.b.ID, TenantID: fx.tenant.ID,
		StartDate: dbtest.Date(t, "2026-01-01"), EndDate: dbtest.Date(t, "2026-02-01"),
	})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = fx.lease(t, domain.LeaseActive, "2026-01-01", "2026-02-01", uuid.New())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestPatchLease_NotFound(t *testing.T) {
	fx := setup(t)
	_, err := fx.svc.PatchLease(context.Background(), dbtest.Actor, uuid.New(), PatchLeaseInput{})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestPatchLease_NoChangeIsIdempotent(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	lease, err := fx.lease(t, domain.LeaseActive, "2026-01-01", "2026-12-31")
	require.NoError(t, err)
	before := occupancies(t, fx.db, fx.unit.ID)
	require.Len(t, before, 1)

	patched, err := fx.svc.PatchLease(ctx, dbtest.Actor, lease.ID, PatchLeaseInput{})
	require.NoError(t, err)
	assert.Equal(t, lease.ID, patched.ID)
	assert.Equal(t, lease.Status, patched.Status)
	assert.Equal(t, lease.StartDate.String(), patched.StartDate.String())
	assert.Equal(t, lease.EndDate.String(), patched.EndDate.String())

	after := occupancies(t, fx.db, fx.unit.ID)
	require.Len(t, after, 1)
	assert.Equal(t, before[0].ID, after[0].ID)
	assert.Equal(t, domain.OccupancyActive, after[0].Status)
}

func TestPatchLease_ActivationRunsGuardAndSync(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	_, err := fx.lease(t, domain.LeaseActive, "2026-01-01", "2026-06-30")
	require.NoError(t, err)
	draft, err := fx.lease(t, domain.LeaseDraft, "2026-06-01", "2026-12-31")
	require.NoError(t, err)

	active := domain.LeaseActive
	_, err = fx.svc.PatchLease(ctx, dbtest.Actor, draft.ID, PatchLeaseInput{Status: &active})
	assert.True(t, errors.Is(err, apperr.ErrOverlappingActiveLease))

	var stored domain.Lease
	require.NoError(t, fx.db.First(&stored, "id = ?", draft.ID).Error)
	assert.Equal(t, domain.LeaseDraft, stored.Status)

	start := dbtest.Date(t, "2026-07-01")
	patched, err := fx.svc.PatchLease(ctx, dbtest.Actor, draft.ID, PatchLeaseInput{Status: &active, StartDate: &start})
	require.NoError(t, err)
	assert.Equal(t, domain.LeaseActive, patched.Status)

	occs := occupancies(t, fx.db, fx.unit.ID)
	require.Len(t, occs, 2)
	assert.Equal(t, draft.ID, *occs[1].LeaseID)
	assert.Equal(t, "2026-07-01", occs[1].StartDate.String())
}

func TestPatchLease_DatesKeepBoundOccupancyInSync(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	lease, err := fx.lease(t, domain.LeaseActive, "2026-01-01", "2026-12-31")
	require.NoError(t, err)

	end := dbtest.Date(t, "2027-03-31")
	_, err = fx.svc.PatchLease(ctx, dbtest.Actor, lease.ID, PatchLeaseInput{EndDate: &end})
	require.NoError(t, err)

	occs := occupancies(t, fx.db, fx.unit.ID)
	require.Len(t, occs, 1)
	assert.Equal(t, "2027-03-31", occs[0].EndDate.String())
}

func TestPatchLease_ReplacesUnits(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	lease, err := fx.lease(t, domain.LeaseDraft, "2026-01-01", "2026-12-31")
	require.NoError(t, err)

	_, err = fx.svc.PatchLease(ctx, dbtest.Actor, lease.ID, PatchLeaseInput{UnitIDs: []uuid.UUID{fx.unit2.ID}})
	require.NoError(t, err)

	detail, err := fx.svc.GetLease(ctx, lease.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{fx.unit2.ID}, detail.UnitIDs)

	_, err = fx.svc.PatchLease(ctx, dbtest.Actor, lease.ID, PatchLeaseInput{UnitIDs: []uuid.UUID{}})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	end := dbtest.Date(t, "2025-01-01")
	_, err = fx.svc.PatchLease(ctx, dbtest.Actor, lease.ID, PatchLeaseInput{EndDate: &end})
	assert.True(t, errors.Is(err, apperr.ErrInvalidDateRange))
}

func TestSync_LeavesOtherTenantsAlone(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	foreign, err := fx.svc.CreateOccupancy(ctx, dbtest.Actor, CreateOccupancyInput{
		BuildingID: fx.b.ID, UnitID: fx.unit.ID, TenantID: fx.other.ID,
	})
	require.NoError(t, err)

	_, err = fx.lease(t, domain.LeaseActive, "2026-01-01", "2026-12-31")
	require.NoError(t, err)

	var stored domain.Occupancy
	require.NoError(t, fx.db.First(&stored, "id = ?", foreign.ID).Error)
	assert.Equal(t, domain.OccupancyDraft, stored.Status)
	assert.Nil(t, stored.LeaseID)
	assert.Len(t, occupancies(t, fx.db, fx.unit.ID), 2)
}

func TestCreateOccupancy_Defaults(t *testing.T) {
	fx := setup(t)
	occ, err := fx.svc.CreateOccupancy(context.Background(), "", CreateOccupancyInput{
		BuildingID: fx.b.ID, UnitID: fx.unit.ID, TenantID: fx.tenant.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OccupancyDraft, occ.Status)
	assert.Equal(t, "2026-01-15", occ.StartDate.String())
	assert.Nil(t, occ.EndDate)
	assert.Equal(t, domain.SystemActor, occ.CreatedBy)
}

func TestCreateOccupancy_ActiveRequiresLease(t *testing.T) {
	fx := setup(t)
	_, err := fx.svc.CreateOccupancy(context.Background(), dbtest.Actor, CreateOccupancyInput{
		BuildingID: fx.b.ID, UnitID: fx.unit.ID, TenantID: fx.tenant.ID, Status: domain.OccupancyActive,
	})
	assert.True(t, errors.Is(err, apperr.ErrLeaseRequired))

	missing := uuid.New()
	_, err = fx.svc.CreateOccupancy(context.Background(), dbtest.Actor, CreateOccupancyInput{
		BuildingID: fx.b.ID, UnitID: fx.unit.ID, TenantID: fx.tenant.ID, Status: domain.OccupancyActive, LeaseID: &missing,
	})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestCreateOccupancy_CrossTenantActiveRejected(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	_, err := fx.lease(t, domain.LeaseActive, "2026-01-01", "2026-12-31")
	require.NoError(t, err)
	globexLease, err := fx.leaseFor(t, fx.other, domain.LeaseDraft, "2026-12-31", "2027-06-30")
	require.NoError(t, err)

	_, err = fx.svc.CreateOccupancy(ctx, dbtest.Actor, CreateOccupancyInput{
		BuildingID: fx.b.ID, UnitID: fx.unit.ID, TenantID: fx.other.ID,
		Status: domain.OccupancyActive, LeaseID: &globexLease.ID, StartDate: dbtest.Date(t, "2026-12-31"),
	})
	assert.True(t, errors.Is(err, apperr.ErrOverlappingActiveOccupancy))

	end := dbtest.Date(t, "2027-06-30")
	occ, err := fx.svc.CreateOccupancy(ctx, dbtest.Actor, CreateOccupancyInput{
		BuildingID: fx.b.ID, UnitID: fx.unit.ID, TenantID: fx.other.ID,
		Status: domain.OccupancyActive, LeaseID: &globexLease.ID, StartDate: dbtest.Date(t, "2027-01-01"), EndDate: &end,
	})
	require.NoError(t, err)

	start := dbtest.Date(t, "2026-11-01")
	_, err = fx.svc.PatchOccupancy(ctx, dbtest.Actor, occ.ID, PatchOccupancyInput{StartDate: &start})
	assert.True(t, errors.Is(err, apperr.ErrOverlappingActiveOccupancy))
}

func TestCreateOccupancy_LeaseMustMatchTenantAndUnit(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	acmeLease, err := fx.lease(t, domain.LeaseDraft, "2026-01-01", "2026-12-31", fx.unit2.ID)
	require.NoError(t, err)

	_, err = fx.svc.CreateOccupancy(ctx, dbtest.Actor, CreateOccupancyInput{
		BuildingID: fx.b.ID, UnitID: fx.unit.ID, TenantID: fx.other.ID,
		Status: domain.OccupancyActive, LeaseID: &acmeLease.ID,
	})
	assert.True(t, errors.Is(err, apperr.ErrBusinessRuleViolation))

	_, err = fx.svc.CreateOccupancy(ctx, dbtest.Actor, CreateOccupancyInput{
		BuildingID: fx.b.ID, UnitID: fx.unit.ID, TenantID: fx.tenant.ID,
		Status: domain.OccupancyActive, LeaseID: &acmeLease.ID,
	})
	assert.True(t, errors.Is(err, apperr.ErrBusinessRuleViolation))

	occ, err := fx.svc.CreateOccupancy(ctx, dbtest.Actor, CreateOccupancyInput{
		BuildingID: fx.b.ID, UnitID: fx.unit2.ID, TenantID: fx.tenant.ID,
		Status: domain.OccupancyActive, LeaseID: &acmeLease.ID,
	})
	require.NoError(t, err)

	assert.Empty(t, occupancies(t, fx.db, fx.unit.ID))
	assert.Equal(t, acmeLease.ID, *occ.LeaseID)
}

func TestCreateLease_SyncRejectsOtherTenantsActiveOccupancy(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	globexLease, err := fx.leaseFor(t, fx.other, domain.LeaseDraft, "2026-01-01", "2026-12-31")
	require.NoError(t, err)
	_, err = fx.svc.CreateOccupancy(ctx, dbtest.Actor, CreateOccupancyInput{
		BuildingID: fx.b.ID, UnitID: fx.unit.ID, TenantID: fx.other.ID,
		Status: domain.OccupancyActive, LeaseID: &globexLease.ID,
	})
	require.NoError(t, err)

	_, err = fx.lease(t, domain.LeaseActive, "2026-03-01", "2026-12-31")
	assert.True(t, errors.Is(err, apperr.ErrOverlappingActiveOccupancy))

	var n int64
	fx.db.Model(&domain.Lease{}).Where("tenant_id = ?", fx.tenant.ID).Count(&n)
	assert.Zero(t, n)
	occs := occupancies(t, fx.db, fx.unit.ID)
	require.Len(t, occs, 1)
	assert.Equal(t, fx.other.ID, occs[0].TenantID)

	draft, err := fx.lease(t, domain.LeaseDraft, "2026-03-01", "2026-12-31")
	require.NoError(t, err)
	active := domain.LeaseActive
	_, err = fx.svc.PatchLease(ctx, dbtest.Actor, draft.ID, PatchLeaseInput{Status: &active})
	assert.True(t, errors.Is(err, apperr.ErrOverlappingActiveOccupancy))
}

func TestPatchOccupancy(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	occ, err := fx.svc.CreateOccupancy(ctx, dbtest.Actor, CreateOccupancyInput{
		BuildingID: fx.b.ID, UnitID: fx.unit.ID, TenantID: fx.tenant.ID,
	})
	require.NoError(t, err)

	active := domain.OccupancyActive
	_, err = fx.svc.PatchOccupancy(ctx, dbtest.Actor, occ.ID, PatchOccupancyInput{Status: &active})
	assert.True(t, errors.Is(err, apperr.ErrLeaseRequired))

	ended := domain.OccupancyEnded
	end := dbtest.Date(t, "2026-02-01")
	patched, err := fx.svc.PatchOccupancy(ctx, "ops", occ.ID, PatchOccupancyInput{Status: &ended, EndDate: &end})
	require.NoError(t, err)
	assert.Equal(t, domain.OccupancyEnded, patched.Status)
	assert.Equal(t, "ops", patched.UpdatedBy)
	assert.Equal(t, dbtest.Actor, patched.CreatedBy)

	_, err = fx.svc.PatchOccupancy(ctx, dbtest.Actor, uuid.New(), PatchOccupancyInput{})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestGetLease_EffectiveManagementFee(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	require.NoError(t, fx.db.Model(&domain.Building{}).Where("id = ?", fx.b.ID).
		Update("management_fee", decimal.RequireFromString("85.50")).Error)

	lease, err := fx.lease(t, domain.LeaseActive, "2026-01-01", "2026-12-31")
	require.NoError(t, err)
	detail, err := fx.svc.GetLease(ctx, lease.ID)
	require.NoError(t, err)
	require.True(t, detail.EffectiveManagementFee.Valid)
	assert.True(t, detail.EffectiveManagementFee.Decimal.Equal(decimal.RequireFromString("85.5")))
	assert.Len(t, detail.Occupancies, 1)

	fee := decimal.NewNullDecimal(decimal.RequireFromString("120"))
	_, err = fx.svc.PatchLease(ctx, dbtest.Actor, lease.ID, PatchLeaseInput{ManagementFee: fee})
	require.NoError(t, err)
	detail, err = fx.svc.GetLease(ctx, lease.ID)
	require.NoError(t, err)
	assert.True(t, detail.EffectiveManagementFee.Decimal.Equal(decimal.RequireFromString("120")))

	_, err = fx.svc.GetLease(ctx, uuid.New())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestListLeases(t *testing.T) {
	fx := setup(t)
	_, err := fx.lease(t, domain.LeaseDraft, "2026-01-01", "2026-06-30")
	require.NoError(t, err)
	_, err = fx.lease(t, domain.LeaseDraft, "2026-07-01", "2026-12-31")
	require.NoError(t, err)

	leases, err := fx.svc.ListLeases(context.Background(), fx.b.ID)
	require.NoError(t, err)
	require.Len(t, leases, 2)
	assert.Equal(t, "2026-07-01", leases[0].StartDate.String())

	occs, err := fx.svc.ListOccupancies(context.Background(), fx.b.ID)
	require.NoError(t, err)
	assert.Empty(t, occs)
}
