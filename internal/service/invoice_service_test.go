package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"backoffice/internal/apperror"
	"backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cumulativeChain(t *testing.T, env *testEnv, code string) []string {
	t.Helper()
	chain, err := env.invoiceRepo.ListBySequence(context.Background(), code)
	require.NoError(t, err)
	out := make([]string, 0, len(chain))
	for _, inv := range chain {
		out = append(out, inv.CumulativePercentage.String())
	}
	return out
}

func TestInvoiceCreate_SequenceAndCompletion(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "J26002", model.ProjectStatusPreLim)
	env.createPO(t, "J26002", "PO-2002", 50000)

	first := env.createInvoice(t, "J26002", 40)
	second := env.createInvoice(t, "J26002", 30)
	assert.Equal(t, model.ProjectStatusOngoing, env.project(t, "J26002").Status)
	third := env.createInvoice(t, "J26002", 30)

	assert.Equal(t, 1, first.Invoice.InvoiceSequence)
	assert.Equal(t, 2, second.Invoice.InvoiceSequence)
	assert.Equal(t, 3, third.Invoice.InvoiceSequence)
	assert.True(t, first.Invoice.CumulativePercentage.Equal(decimal.NewFromInt(40)))
	assert.True(t, second.Invoice.CumulativePercentage.Equal(decimal.NewFromInt(70)))
	assert.True(t, third.Invoice.CumulativePercentage.Equal(decimal.NewFromInt(100)))

	assert.False(t, second.ProjectStatus.Changed)
	assert.True(t, third.ProjectStatus.Completed())

	project := env.project(t, "J26002")
	assert.Equal(t, model.ProjectStatusCompleted, project.Status)
	assert.NotNil(t, project.CompletionDate)
	assert.NotNil(t, project.POReceivedDate)
	assert.Contains(t, env.notifier.types(), EventProjectCompleted)
}

func TestInvoiceCreate_CompletesProjectWithoutPurchaseOrder(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "J26003", model.ProjectStatusPreLim)

	res := env.createInvoice(t, "J26003", 100)
	assert.Equal(t, model.ProjectStatusPreLim, res.ProjectStatus.From)
	assert.Equal(t, model.ProjectStatusCompleted, res.ProjectStatus.To)

	project := env.project(t, "J26003")
	assert.Equal(t, model.ProjectStatusCompleted, project.Status)
	assert.Nil(t, project.POReceivedDate)
}

func TestInvoiceCreate_RejectsCumulativeAboveHundred(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "J26002", model.ProjectStatusPreLim)
	env.createInvoice(t, "J26002", 60)

	_, err := env.invoices.Create(context.Background(), testUserID, invoiceInput("J26002", 41))
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Len(t, env.db.invoices, 1)

	// Sequence is unaffected by the rejected write.
	next := env.createInvoice(t, "J26002", 40)
	assert.Equal(t, 2, next.Invoice.InvoiceSequence)
}

func TestInvoiceCreate_PercentageBounds(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "J26002", model.ProjectStatusPreLim)

	for _, pct := range []string{"0", "-5", "100.01"} {
		in := invoiceInput("J26002", 1)
		in.PercentageOfTotal = dec(pct)
		_, err := env.invoices.Create(context.Background(), testUserID, in)
		assert.True(t, apperror.Is(err, apperror.KindValidation), "pct %s", pct)
	}

	in := invoiceInput("J26002", 1)
	in.PercentageOfTotal = dec("12.5")
	res, err := env.invoices.Create(context.Background(), testUserID, in)
	require.NoError(t, err)
	assert.Equal(t, "12.5", res.Invoice.CumulativePercentage.String())
}

func TestInvoiceCreate_GeneratesNumberFromSettingsPrefix(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "J26002", model.ProjectStatusPreLim)
	_, err := env.settings.Update(context.Background(), testUserID, UpdateSettingsInput{InvoicePrefix: ptr("ace")})
	require.NoError(t, err)

	svc := env.invoices.(*invoiceService)
	svc.now = func() time.Time { return date(2026, 4, 9) }

	first := env.createInvoice(t, "J26002", 10)
	second := env.createInvoice(t, "J26002", 10)
	assert.Equal(t, "ACE-202604-0001", first.Invoice.InvoiceNumber)
	assert.Equal(t, "ACE-202604-0002", second.Invoice.InvoiceNumber)

	in := invoiceInput("J26002", 10)
	in.InvoiceNumber = "ACE-202604-0001"
	_, err = env.invoices.Create(context.Background(), testUserID, in)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestInvoiceCreate_MultiProjectUsesExactCodes(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "J2600", model.ProjectStatusPreLim)
	env.seedProject(t, "J26001", model.ProjectStatusPreLim)
	env.seedProject(t, "J26002", model.ProjectStatusPreLim)

	in := invoiceInput("J26001", 20)
	in.AdditionalProjectCodes = []string{"J26002", " J26002 ", "J26001", ""}
	res, err := env.invoices.Create(context.Background(), testUserID, in)
	require.NoError(t, err)
	assert.Equal(t, []string{"J26001", "J26002"}, res.Invoice.ProjectCodes)

	for code, want := range map[string]int{"J2600": 0, "J26001": 1, "J26002": 1} {
		list, total, err := env.invoices.List(context.Background(), InvoiceFilter{ProjectCode: code})
		require.NoError(t, err)
		assert.Equal(t, int64(want), total, code)
		assert.Len(t, list, want, code)
	}

	// The secondary project's own sequence is independent.
	own := env.createInvoice(t, "J26002", 50)
	assert.Equal(t, 1, own.Invoice.InvoiceSequence)
	assert.True(t, own.Invoice.CumulativePercentage.Equal(decimal.NewFromInt(50)))

	in = invoiceInput("J26001", 20)
	in.AdditionalProjectCodes = []string{"J99999"}
	_, err = env.invoices.Create(context.Background(), testUserID, in)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestInvoiceCreate_ConcurrentWritesGetDistinctSequences(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "J26004", model.ProjectStatusPreLim)

	const writers = 10
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.invoices.Create(context.Background(), testUserID, invoiceInput("J26004", 10))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	chain, err := env.invoiceRepo.ListBySequence(context.Background(), "J26004")
	require.NoError(t, err)
	require.Len(t, chain, writers)
	for i, inv := range chain {
		assert.Equal(t, i+1, inv.InvoiceSequence)
		assert.True(t, inv.CumulativePercentage.Equal(decimal.NewFromInt(int64(10*(i+1)))))
	}
	assert.Equal(t, model.ProjectStatusCompleted, env.project(t, "J26004").Status)
}

func TestInvoiceUpdate_RecomputesChain(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "J26002", model.ProjectStatusPreLim)
	first := env.createInvoice(t, "J26002", 20)
	env.createInvoice(t, "J26002", 30)
	env.createInvoice(t, "J26002", 10)

	res, err := env.invoices.Update(context.Background(), testUserID, first.Invoice.ID, UpdateInvoiceInput{
		PercentageOfTotal: ptr(decimal.NewFromInt(25)),
	})
	require.NoError(t, err)
	assert.Equal(t, "25", res.Invoice.CumulativePercentage.String())
	assert.Equal(t, []string{"25", "55", "65"}, cumulativeChain(t, env, "J26002"))

	_, err = env.invoices.Update(context.Background(), testUserID, first.Invoice.ID, UpdateInvoiceInput{
		PercentageOfTotal: ptr(decimal.NewFromInt(70)),
	})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Equal(t, []string{"25", "55", "65"}, cumulativeChain(t, env, "J26002"))

	res, err = env.invoices.Update(context.Background(), testUserID, first.Invoice.ID, UpdateInvoiceInput{
		PercentageOfTotal: ptr(decimal.NewFromInt(60)),
	})
	require.NoError(t, err)
	assert.True(t, res.ProjectStatus.Completed())
	assert.Equal(t, []string{"60", "90", "100"}, cumulativeChain(t, env, "J26002"))
}

func TestInvoiceUpdate_CompletedProjectStaysCompleted(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "J26002", model.ProjectStatusPreLim)
	first := env.createInvoice(t, "J26002", 50)
	env.createInvoice(t, "J26002", 50)
	require.Equal(t, model.ProjectStatusCompleted, env.project(t, "J26002").Status)

	res, err := env.invoices.Update(context.Background(), testUserID, first.Invoice.ID, UpdateInvoiceInput{
		PercentageOfTotal: ptr(decimal.NewFromInt(30)),
	})
	require.NoError(t, err)
	assert.False(t, res.ProjectStatus.Changed)
	assert.Equal(t, model.ProjectStatusCompleted, env.project(t, "J26002").Status)
}

func TestInvoiceUpdate_RejectsPaid(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "J26002", model.ProjectStatusPreLim)
	inv := env.createInvoice(t, "J26002", 20).Invoice

	_, err := env.invoices.UpdateStatus(context.Background(), testUserID, inv.ID, model.InvoiceStatusSent)
	require.NoError(t, err)
	_, err = env.invoices.UpdateStatus(context.Background(), testUserID, inv.ID, model.InvoiceStatusPaid)
	require.NoError(t, err)

	_, err = env.invoices.Update(context.Background(), testUserID, inv.ID, UpdateInvoiceInput{Description: ptr("late edit")})
	assert.True(t, apperror.Is(err, apperror.KindInvalidState))

	err = env.invoices.Delete(context.Background(), testUserID, inv.ID)
	assert.True(t, apperror.Is(err, apperror.KindInvalidState))
}

func TestInvoiceUpdateStatus_Transitions(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "J26002", model.ProjectStatusPreLim)

	tests := []struct {
		name    string
		path    []string
		wantErr apperror.Kind
	}{
		{name: "pending to sent to paid", path: []string{model.InvoiceStatusSent, model.InvoiceStatusPaid}},
		{name: "pending to cancelled", path: []string{model.InvoiceStatusCancelled}},
		{name: "sent to cancelled", path: []string{model.InvoiceStatusSent, model.InvoiceStatusCancelled}},
		{name: "same status is a no-op", path: []string{model.InvoiceStatusPending}},
		{name: "pending to paid skips sent", path: []string{model.InvoiceStatusPaid}, wantErr: apperror.KindInvalidState},
		{name: "cancelled is terminal", path: []string{model.InvoiceStatusCancelled, model.InvoiceStatusSent}, wantErr: apperror.KindInvalidState},
		{name: "unknown status", path: []string{"void"}, wantErr: apperror.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := env.createInvoice(t, "J26002", 1).Invoice
			var err error
			for _, status := range tt.path {
				_, err = env.invoices.UpdateStatus(context.Background(), testUserID, inv.ID, status)
				if err != nil {
					break
				}
			}
			if tt.wantErr == "" {
				require.NoError(t, err)
				got, err := env.invoices.Get(context.Background(), inv.ID)
				require.NoError(t, err)
				assert.Equal(t, tt.path[len(tt.path)-1], got.Status)
				return
			}
			assert.Equal(t, tt.wantErr, apperror.KindOf(err))
		})
	}
}

func TestInvoiceDelete_RecomputesRemainingChain(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "J26002", model.ProjectStatusPreLim)
	env.createInvoice(t, "J26002", 20)
	middle := env.createInvoice(t, "J26002", 30).Invoice
	env.createInvoice(t, "J26002", 10)

	require.NoError(t, env.invoices.Delete(context.Background(), testUserID, middle.ID))
	assert.Equal(t, []string{"20", "30"}, cumulativeChain(t, env, "J26002"))

	// Sequence numbers are never reused.
	next := env.createInvoice(t, "J26002", 5)
	assert.Equal(t, 4, next.Invoice.InvoiceSequence)
	assert.Equal(t, "35", next.Invoice.CumulativePercentage.String())

	err := env.invoices.Delete(context.Background(), testUserID, uuid.New())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestInvoiceCreate_CancelledInvoicesStillCount(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "J26002", model.ProjectStatusPreLim)
	inv := env.createInvoice(t, "J26002", 40).Invoice
	_, err := env.invoices.UpdateStatus(context.Background(), testUserID, inv.ID, model.InvoiceStatusCancelled)
	require.NoError(t, err)

	next := env.createInvoice(t, "J26002", 30)
	assert.Equal(t, 2, next.Invoice.InvoiceSequence)
	assert.Equal(t, "70", next.Invoice.CumulativePercentage.String())
}

func TestInvoiceCreate_LockContentionIsConcurrencyError(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "J26002", model.ProjectStatusPreLim)

	held, err := env.locker.Obtain(context.Background(), "invoice-seq:J26002", time.Second)
	require.NoError(t, err)
	defer func() { _ = held.Release(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = env.invoices.Create(ctx, testUserID, invoiceInput("J26002", 10))
	assert.True(t, apperror.Is(err, apperror.KindConcurrency))
	assert.Empty(t, env.db.invoices)
}

func TestRecomputeChain(t *testing.T) {
	chain := []model.Invoice{
		{PercentageOfTotal: dec("10"), CumulativePercentage: dec("10")},
		{PercentageOfTotal: dec("15"), CumulativePercentage: dec("20")},
		{PercentageOfTotal: dec("5"), CumulativePercentage: dec("30")},
	}
	changed, total := recomputeChain(chain)
	assert.Equal(t, []int{1}, changed)
	assert.Equal(t, "30", total.String())
	assert.Equal(t, "25", chain[1].CumulativePercentage.String())
}

func TestInvoiceCreate_NumberAfterDeleteSkipsUsedSuffixes(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "J26002", model.ProjectStatusPreLim)
	svc := env.invoices.(*invoiceService)
	svc.now = func() time.Time { return date(2026, 5, 4) }

	env.createInvoice(t, "J26002", 10)
	second := env.createInvoice(t, "J26002", 10).Invoice
	env.createInvoice(t, "J26002", 10)
	require.NoError(t, env.invoices.Delete(context.Background(), testUserID, second.ID))

	next := env.createInvoice(t, "J26002", 10)
	assert.Equal(t, "INV-202605-0004", next.Invoice.InvoiceNumber)
	again := env.createInvoice(t, "J26002", 10)
	assert.Equal(t, "INV-202605-0005", again.Invoice.InvoiceNumber)
}

func TestInvoiceDelete_LastSequenceIsNotReused(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "J26002", model.ProjectStatusPreLim)
	env.createInvoice(t, "J26002", 20)
	last := env.createInvoice(t, "J26002", 30).Invoice
	require.Equal(t, 2, last.InvoiceSequence)

	require.NoError(t, env.invoices.Delete(context.Background(), testUserID, last.ID))
	next := env.createInvoice(t, "J26002", 30)
	assert.Equal(t, 3, next.Invoice.InvoiceSequence)
	assert.Equal(t, "50", next.Invoice.CumulativePercentage.String())
	assert.Equal(t, 3, env.project(t, "J26002").LastInvoiceSequence)

	// A rejected create does not advance the high-water mark.
	_, err := env.invoices.Create(context.Background(), testUserID, invoiceInput("J26002", 60))
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Equal(t, 3, env.project(t, "J26002").LastInvoiceSequence)
}

// staleNumberRepo reports no earlier invoice numbers, as a concurrent writer
// on another project would see before its insert commits.
type staleNumberRepo struct {
	*memInvoiceRepo
}

func (staleNumberRepo) MaxNumberSuffix(context.Context, string) (int, error) {
	return 0, nil
}

func TestInvoiceCreate_DuplicateNumberErrors(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "J26001", model.ProjectStatusPreLim)
	env.seedProject(t, "J26002", model.ProjectStatusPreLim)
	env.invoices.(*invoiceService).now = func() time.Time { return date(2026, 5, 4) }
	taken := env.createInvoice(t, "J26001", 10).Invoice
	require.Equal(t, "INV-202605-0001", taken.InvoiceNumber)

	svc := env.invoices.(*invoiceService)
	svc.invoiceRepo = staleNumberRepo{env.invoiceRepo}

	_, err := svc.Create(context.Background(), testUserID, invoiceInput("J26002", 10))
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindConcurrency))
	assert.Contains(t, err.Error(), "invoice number INV-202605-0001")
	assert.Equal(t, 0, env.project(t, "J26002").LastInvoiceSequence)

	in := invoiceInput("J26002", 10)
	in.InvoiceNumber = taken.InvoiceNumber
	_, err = svc.Create(context.Background(), testUserID, in)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestInvoiceChain_PaidCumulativeIsFrozen(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "J26002", model.ProjectStatusPreLim)
	first := env.createInvoice(t, "J26002", 20).Invoice
	paid := env.createInvoice(t, "J26002", 30).Invoice
	third := env.createInvoice(t, "J26002", 10).Invoice
	for _, status := range []string{model.InvoiceStatusSent, model.InvoiceStatusPaid} {
		_, err := env.invoices.UpdateStatus(context.Background(), testUserID, paid.ID, status)
		require.NoError(t, err)
	}

	_, err := env.invoices.Update(context.Background(), testUserID, first.ID, UpdateInvoiceInput{
		PercentageOfTotal: ptr(decimal.NewFromInt(25)),
	})
	assert.True(t, apperror.Is(err, apperror.KindInvalidState))
	assert.True(t, apperror.Is(env.invoices.Delete(context.Background(), testUserID, first.ID), apperror.KindInvalidState))
	assert.Equal(t, []string{"20", "50", "60"}, cumulativeChain(t, env, "J26002"))

	// Invoices after the paid one stay editable.
	res, err := env.invoices.Update(context.Background(), testUserID, third.ID, UpdateInvoiceInput{
		PercentageOfTotal: ptr(decimal.NewFromInt(15)),
	})
	require.NoError(t, err)
	assert.Equal(t, "65", res.Invoice.CumulativePercentage.String())

	// Editing fields other than the percentage leaves the chain alone.
	_, err = env.invoices.Update(context.Background(), testUserID, first.ID, UpdateInvoiceInput{Description: ptr("retention")})
	assert.NoError(t, err)
}
