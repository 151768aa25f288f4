package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"backoffice/internal/apperror"
	"backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedProjectClock(env *testEnv, at time.Time) {
	env.projects.(*projectService).now = func() time.Time { return at }
}

func TestNextProjectCode(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
		wantErr  bool
	}{
		{name: "first of the year", want: "J26001"},
		{name: "follows highest", existing: []string{"J26001", "J26007", "J26003"}, want: "J26008"},
		{name: "ignores foreign codes", existing: []string{"J26002", "J26002_1", "J26ABC"}, want: "J26003"},
		{name: "exhausted", existing: []string{"J26999"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := nextProjectCode("J26", tt.existing)
			if tt.wantErr {
				assert.True(t, apperror.Is(err, apperror.KindValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProjectCreate_AssignsYearlyCodes(t *testing.T) {
	env := newTestEnv(t)
	fixedProjectClock(env, date(2026, 5, 1))
	manager := env.seedUser("manager")

	first, err := env.projects.Create(context.Background(), testUserID, CreateProjectInput{Title: "Warehouse racking", ManagerID: &manager.ID})
	require.NoError(t, err)
	second, err := env.projects.Create(context.Background(), testUserID, CreateProjectInput{Title: "Conveyor retrofit"})
	require.NoError(t, err)

	assert.Equal(t, "J26001", first.Project.Code)
	assert.Equal(t, "J26002", second.Project.Code)
	assert.Equal(t, model.ProjectStatusPreLim, first.Project.Status)
	assert.Equal(t, model.BillingTypeLumpSum, first.Project.BillingType)
	require.NotNil(t, first.NewlyAssignedManager)
	assert.Equal(t, manager.ID, *first.NewlyAssignedManager)
	assert.Nil(t, second.NewlyAssignedManager)
	assert.Equal(t, []string{EventProjectAssigned}, env.notifier.types())

	fixedProjectClock(env, date(2027, 1, 2))
	next, err := env.projects.Create(context.Background(), testUserID, CreateProjectInput{Title: "New year"})
	require.NoError(t, err)
	assert.Equal(t, "J27001", next.Project.Code)
}

func TestProjectCreate_VariationOrders(t *testing.T) {
	env := newTestEnv(t)
	fixedProjectClock(env, date(2026, 5, 1))
	parent, err := env.projects.Create(context.Background(), testUserID, CreateProjectInput{Title: "Main works"})
	require.NoError(t, err)

	vo1, err := env.projects.Create(context.Background(), testUserID, CreateProjectInput{Title: "Extra bay", ParentCode: parent.Project.Code})
	require.NoError(t, err)
	vo2, err := env.projects.Create(context.Background(), testUserID, CreateProjectInput{Title: "Extra lighting", ParentCode: parent.Project.Code})
	require.NoError(t, err)

	assert.Equal(t, "J26001_1", vo1.Project.Code)
	assert.Equal(t, "J26001_2", vo2.Project.Code)
	assert.True(t, vo1.Project.IsVariationOrder)
	require.NotNil(t, vo2.Project.VONumber)
	assert.Equal(t, 2, *vo2.Project.VONumber)
	require.NotNil(t, vo1.Project.ParentProjectID)
	assert.Equal(t, parent.Project.ID, *vo1.Project.ParentProjectID)

	// Variation orders do not consume yearly sequence numbers.
	root, err := env.projects.Create(context.Background(), testUserID, CreateProjectInput{Title: "Second job"})
	require.NoError(t, err)
	assert.Equal(t, "J26002", root.Project.Code)

	_, err = env.projects.Create(context.Background(), testUserID, CreateProjectInput{Title: "Nested", ParentCode: vo1.Project.Code})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = env.projects.Create(context.Background(), testUserID, CreateProjectInput{Title: "Orphan", ParentCode: "J99999"})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestProjectCreate_ValidatesReferences(t *testing.T) {
	env := newTestEnv(t)
	vendor, err := env.companies.Create(context.Background(), CreateCompanyRequest{Name: "Steel Supplies", Type: model.CompanyTypeVendor})
	require.NoError(t, err)
	client, err := env.companies.Create(context.Background(), CreateCompanyRequest{Name: "Acme Logistics", Type: model.CompanyTypeBoth})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   CreateProjectInput
		kind apperror.Kind
	}{
		{name: "missing title", in: CreateProjectInput{}, kind: apperror.KindValidation},
		{name: "bad billing type", in: CreateProjectInput{Title: "x", BillingType: "monthly"}, kind: apperror.KindValidation},
		{name: "negative hours", in: CreateProjectInput{Title: "x", PlannedHours: decimal.NewFromInt(-1)}, kind: apperror.KindValidation},
		{name: "vendor as client", in: CreateProjectInput{Title: "x", CompanyID: &vendor.ID}, kind: apperror.KindValidation},
		{name: "unknown company", in: CreateProjectInput{Title: "x", CompanyID: ptr(uuid.New())}, kind: apperror.KindNotFound},
		{name: "unknown manager", in: CreateProjectInput{Title: "x", ManagerID: ptr(uuid.New())}, kind: apperror.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.projects.Create(context.Background(), testUserID, tt.in)
			assert.Equal(t, tt.kind, apperror.KindOf(err))
		})
	}

	res, err := env.projects.Create(context.Background(), testUserID, CreateProjectInput{Title: "ok", CompanyID: &client.ID})
	require.NoError(t, err)
	assert.Equal(t, client.ID, *res.Project.CompanyID)
}

func TestProjectUpdate_BillingTypeLockedOncePurchaseOrderExists(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "J26001", model.ProjectStatusPreLim)

	res, err := env.projects.Update(context.Background(), testUserID, "J26001", UpdateProjectInput{BillingType: ptr(model.BillingTypeHourly)})
	require.NoError(t, err)
	assert.Equal(t, model.BillingTypeHourly, res.Project.BillingType)

	env.createPO(t, "J26001", "PO-1", 100)
	_, err = env.projects.Update(context.Background(), testUserID, "J26001", UpdateProjectInput{BillingType: ptr(model.BillingTypeLumpSum)})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Equal(t, model.BillingTypeHourly, env.project(t, "J26001").BillingType)

	// Re-sending the current value is allowed.
	_, err = env.projects.Update(context.Background(), testUserID, "J26001", UpdateProjectInput{
		BillingType: ptr(model.BillingTypeHourly),
		ActualHours: ptr(decimal.NewFromInt(12)),
	})
	require.NoError(t, err)
	assert.True(t, env.project(t, "J26001").ActualHours.Equal(decimal.NewFromInt(12)))
}

func TestProjectUpdate_ReportsNewManagerOnlyOnChange(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "J26001", model.ProjectStatusPreLim)
	manager := env.seedUser("manager")

	res, err := env.projects.Update(context.Background(), testUserID, "J26001", UpdateProjectInput{ManagerID: &manager.ID})
	require.NoError(t, err)
	require.NotNil(t, res.NewlyAssignedManager)

	res, err = env.projects.Update(context.Background(), testUserID, "J26001", UpdateProjectInput{ManagerID: &manager.ID})
	require.NoError(t, err)
	assert.Nil(t, res.NewlyAssignedManager)
	assert.Equal(t, []string{EventProjectAssigned}, env.notifier.types())
}

func TestProjectUpdateStatus_NeverWrites(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "J26001", model.ProjectStatusPreLim)
	before := env.project(t, "J26001")

	res, err := env.projects.UpdateStatus(context.Background(), "J26001", model.ProjectStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.ProjectStatusPreLim, res.Status)
	assert.Equal(t, StatusNotSettableMessage, res.Message)

	after := env.project(t, "J26001")
	assert.Equal(t, before, after)

	_, err = env.projects.UpdateStatus(context.Background(), "J00000", model.ProjectStatusCompleted)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestProjectResync_RepairsDrift(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "J26001", model.ProjectStatusPreLim)
	env.createPO(t, "J26001", "PO-1", 100)

	// Simulate a status written out of band.
	p := env.project(t, "J26001")
	p.Status = model.ProjectStatusPreLim
	require.NoError(t, env.projectRepo.Update(context.Background(), &p))

	change, err := env.projects.Resync(context.Background(), "J26001")
	require.NoError(t, err)
	assert.True(t, change.Changed)
	assert.Equal(t, model.ProjectStatusOngoing, change.To)

	change, err = env.projects.Resync(context.Background(), "J26001")
	require.NoError(t, err)
	assert.False(t, change.Changed)
}

func TestProjectDelete(t *testing.T) {
	env := newTestEnv(t)
	fixedProjectClock(env, date(2026, 5, 1))
	parent, err := env.projects.Create(context.Background(), testUserID, CreateProjectInput{Title: "Main"})
	require.NoError(t, err)
	_, err = env.projects.Create(context.Background(), testUserID, CreateProjectInput{Title: "VO", ParentCode: parent.Project.Code})
	require.NoError(t, err)
	withPO := env.seedProject(t, "J26050", model.ProjectStatusPreLim)
	env.createPO(t, withPO.Code, "PO-50", 100)
	withInvoice := env.seedProject(t, "J26051", model.ProjectStatusPreLim)
	env.createInvoice(t, withInvoice.Code, 10)
	empty := env.seedProject(t, "J26052", model.ProjectStatusPreLim)

	for _, code := range []string{parent.Project.Code, withPO.Code, withInvoice.Code} {
		err := env.projects.Delete(context.Background(), testUserID, code)
		assert.True(t, apperror.Is(err, apperror.KindInvalidState), code)
	}

	require.NoError(t, env.projects.Delete(context.Background(), testUserID, empty.Code))
	_, err = env.projects.Get(context.Background(), empty.Code)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestProjectList(t *testing.T) {
	env := newTestEnv(t)
	for i := 1; i <= 3; i++ {
		env.seedProject(t, fmt.Sprintf("J2600%d", i), model.ProjectStatusPreLim)
	}
	env.createPO(t, "J26002", "PO-2", 100)

	ongoing, total, err := env.projects.List(context.Background(), ProjectFilter{Status: model.ProjectStatusOngoing})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, ongoing, 1)
	assert.Equal(t, "J26002", ongoing[0].Code)
}
