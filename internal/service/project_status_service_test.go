package service

import (
	"context"
	"testing"
	"time"

	"backoffice/internal/apperror"
	"backoffice/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func derive(t *testing.T, env *testEnv, code string) StatusChange {
	t.Helper()
	var change StatusChange
	err := (&memTxManager{db: env.db}).RunInTx(context.Background(), func(ctx context.Context) error {
		var err error
		change, err = env.deriver.Derive(ctx, code)
		return err
	})
	require.NoError(t, err)
	return change
}

func seedInvoice(t *testing.T, env *testEnv, code string, seq int, cumulative string) {
	t.Helper()
	inv := model.Invoice{
		InvoiceNumber:        code + "-" + cumulative,
		ProjectCode:          code,
		InvoiceSequence:      seq,
		PercentageOfTotal:    dec(cumulative),
		CumulativePercentage: dec(cumulative),
		Amount:               decimal.NewFromInt(1),
		AmountMYR:            decimal.NewFromInt(1),
		Status:               model.InvoiceStatusPending,
	}
	require.NoError(t, env.invoiceRepo.Create(context.Background(), &inv))
}

func seedPO(t *testing.T, env *testEnv, code, number string, received time.Time, active bool) {
	t.Helper()
	po := model.PurchaseOrder{
		PONumber:       number,
		PONumberBase:   number,
		ProjectCode:    code,
		RevisionNumber: 1,
		IsActive:       active,
		Amount:         decimal.NewFromInt(1),
		AmountMYR:      decimal.NewFromInt(1),
		ReceivedDate:   received,
		Status:         model.POStatusReceived,
	}
	require.NoError(t, env.poRepo.Create(context.Background(), &po))
}

func TestDerive_Table(t *testing.T) {
	tests := []struct {
		name        string
		status      string
		activePOs   int
		inactivePOs int
		cumulative  string
		want        string
		changed     bool
	}{
		{name: "no activity stays pre-lim", status: model.ProjectStatusPreLim, want: model.ProjectStatusPreLim},
		{name: "active po makes ongoing", status: model.ProjectStatusPreLim, activePOs: 1, want: model.ProjectStatusOngoing, changed: true},
		{name: "only inactive pos reverts", status: model.ProjectStatusOngoing, inactivePOs: 2, want: model.ProjectStatusPreLim, changed: true},
		{name: "partial invoicing stays ongoing", status: model.ProjectStatusOngoing, activePOs: 1, cumulative: "99.99", want: model.ProjectStatusOngoing},
		{name: "full invoicing completes", status: model.ProjectStatusOngoing, activePOs: 1, cumulative: "100", want: model.ProjectStatusCompleted, changed: true},
		{name: "invoicing beats missing pos", status: model.ProjectStatusPreLim, cumulative: "100", want: model.ProjectStatusCompleted, changed: true},
		{name: "completed is sticky", status: model.ProjectStatusCompleted, want: model.ProjectStatusCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.seedProject(t, "J26001", tt.status)
			for i := 0; i < tt.activePOs; i++ {
				seedPO(t, env, "J26001", "PO-A"+string(rune('0'+i)), date(2026, 1, 10+i), true)
			}
			for i := 0; i < tt.inactivePOs; i++ {
				seedPO(t, env, "J26001", "PO-I"+string(rune('0'+i)), date(2026, 1, 10), false)
			}
			if tt.cumulative != "" {
				seedInvoice(t, env, "J26001", 1, tt.cumulative)
			}

			change := derive(t, env, "J26001")
			assert.Equal(t, tt.status, change.From)
			assert.Equal(t, tt.want, change.To)
			assert.Equal(t, tt.changed, change.Changed)
			assert.Equal(t, tt.want, env.project(t, "J26001").Status)
		})
	}
}

func TestDerive_UsesEarliestActiveReceivedDate(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "J26001", model.ProjectStatusPreLim)
	seedPO(t, env, "J26001", "PO-LATE", date(2026, 3, 1), true)
	seedPO(t, env, "J26001", "PO-EARLY", date(2026, 2, 1), true)
	seedPO(t, env, "J26001", "PO-OLD", date(2025, 12, 1), false)

	derive(t, env, "J26001")
	project := env.project(t, "J26001")
	require.NotNil(t, project.POReceivedDate)
	assert.True(t, project.POReceivedDate.Equal(date(2026, 2, 1)))
}

func TestDerive_IsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "J26001", model.ProjectStatusPreLim)
	seedPO(t, env, "J26001", "PO-1", date(2026, 1, 1), true)

	first := derive(t, env, "J26001")
	stored := env.project(t, "J26001")
	second := derive(t, env, "J26001")

	assert.True(t, first.Changed)
	assert.False(t, second.Changed)
	assert.Equal(t, stored, env.project(t, "J26001"))
}

func TestDerive_CompletionStampsDates(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "J26001", model.ProjectStatusPreLim)
	seedPO(t, env, "J26001", "PO-1", date(2026, 1, 5), true)
	seedInvoice(t, env, "J26001", 1, "100")

	fixed := date(2026, 6, 30)
	env.deriver.now = func() time.Time { return fixed }
	derive(t, env, "J26001")

	project := env.project(t, "J26001")
	require.NotNil(t, project.CompletionDate)
	assert.True(t, project.CompletionDate.Equal(fixed))
	require.NotNil(t, project.POReceivedDate)
	assert.True(t, project.POReceivedDate.Equal(date(2026, 1, 5)))
}

func TestDerive_UnknownProject(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.deriver.Derive(context.Background(), "J00000")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestStatusChange_Completed(t *testing.T) {
	assert.True(t, StatusChange{Changed: true, To: model.ProjectStatusCompleted}.Completed())
	assert.False(t, StatusChange{Changed: false, To: model.ProjectStatusCompleted}.Completed())
	assert.False(t, StatusChange{Changed: true, To: model.ProjectStatusOngoing}.Completed())
}
