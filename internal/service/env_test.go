package service

import (
	"context"
	"io"
	"testing"
	"time"

	"backoffice/internal/cache"
	"backoffice/internal/currency"
	"backoffice/internal/lock"
	"backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const testUserID = "7b0c7c4e-3f6a-4a55-9a0e-1d2f3c4b5a69"

// testEnv wires every service over one in-memory database.
type testEnv struct {
	db       *memDB
	rates    *fakeRates
	notifier *recordingNotifier
	store    *cache.MemoryStore
	locker   *lock.LocalLocker

	projectRepo  *memProjectRepo
	poRepo       *memPORepo
	invoiceRepo  *memInvoiceRepo
	settingsRepo *memSettingsRepo

	deriver          *StatusDeriver
	projects         ProjectService
	purchaseOrders   PurchaseOrderService
	invoices         InvoiceService
	settings         SettingsService
	companies        CompanyService
	issuedPOs        IssuedPOService
	receivedInvoices ReceivedInvoiceService
	permissions      PermissionService
	exports          ExportService
	audits           AuditService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	db := newMemDB()
	tx := &memTxManager{db: db}
	env := &testEnv{
		db: db,
		rates: &fakeRates{rates: map[string]decimal.Decimal{
			"USD": decimal.RequireFromString("4.5"),
			"SGD": decimal.RequireFromString("3.4"),
		}},
		notifier:     &recordingNotifier{},
		store:        cache.NewMemoryStore(),
		locker:       lock.NewLocalLocker(),
		projectRepo:  &memProjectRepo{db: db},
		poRepo:       &memPORepo{db: db},
		invoiceRepo:  &memInvoiceRepo{db: db},
		settingsRepo: &memSettingsRepo{db: db},
	}

	auditRepo := &memAuditRepo{db: db}
	companyRepo := &memCompanyRepo{db: db}
	issuedRepo := &memIssuedRepo{db: db}
	converter := currency.NewConverter(env.rates, time.Second, log)

	env.deriver = NewStatusDeriver(env.projectRepo, env.poRepo, env.invoiceRepo)
	env.settings = NewSettingsService(env.settingsRepo, auditRepo, env.store, log)
	env.projects = NewProjectService(env.projectRepo, env.poRepo, env.invoiceRepo, companyRepo, &memUserRepo{db: db},
		auditRepo, tx, env.deriver, env.locker, env.notifier, log)
	env.purchaseOrders = NewPurchaseOrderService(env.poRepo, env.projectRepo, auditRepo, tx, converter, env.deriver, env.notifier)
	env.invoices = NewInvoiceService(env.invoiceRepo, env.projectRepo, auditRepo, tx, converter, env.deriver,
		env.settings, env.locker, 5*time.Second, env.notifier, log)
	env.companies = NewCompanyService(companyRepo, tx)
	env.issuedPOs = NewIssuedPOService(issuedRepo, env.projectRepo, companyRepo, auditRepo, tx, converter)
	env.receivedInvoices = NewReceivedInvoiceService(&memReceivedRepo{db: db}, issuedRepo, auditRepo, tx, converter)
	env.permissions = NewPermissionService(&memRoleRepo{db: db}, tx, env.store)
	env.exports = NewExportService(env.projectRepo, env.poRepo, env.invoiceRepo)
	env.audits = NewAuditService(auditRepo)
	return env
}

func (e *testEnv) seedProject(t *testing.T, code, status string) model.Project {
	t.Helper()
	p := model.Project{
		Code:        code,
		Title:       "Project " + code,
		Status:      status,
		BillingType: model.BillingTypeLumpSum,
	}
	require.NoError(t, e.projectRepo.Create(context.Background(), &p))
	return p
}

func (e *testEnv) seedUser(role string) model.User {
	e.db.mu.Lock()
	defer e.db.mu.Unlock()
	u := model.User{ID: uuid.New(), Username: "user-" + role, Email: role + "@example.com", Role: role}
	e.db.users[u.ID] = u
	return u
}

func (e *testEnv) project(t *testing.T, code string) model.Project {
	t.Helper()
	p, err := e.projectRepo.FindByCode(context.Background(), code)
	require.NoError(t, err)
	return *p
}

func (e *testEnv) po(t *testing.T, id uuid.UUID) model.PurchaseOrder {
	t.Helper()
	po, err := e.poRepo.FindByID(context.Background(), id)
	require.NoError(t, err)
	return *po
}

func (e *testEnv) createPO(t *testing.T, projectCode, number string, amount int64) PurchaseOrderResponse {
	t.Helper()
	res, err := e.purchaseOrders.Create(context.Background(), testUserID, CreatePurchaseOrderInput{
		PONumber:     number,
		ProjectCode:  projectCode,
		Amount:       decimal.NewFromInt(amount),
		Currency:     "MYR",
		ReceivedDate: date(2026, 1, 15),
	})
	require.NoError(t, err)
	return res.PurchaseOrder
}

func (e *testEnv) createInvoice(t *testing.T, projectCode string, pct int64) InvoiceResult {
	t.Helper()
	res, err := e.invoices.Create(context.Background(), testUserID, invoiceInput(projectCode, pct))
	require.NoError(t, err)
	return res
}

func invoiceInput(projectCode string, pct int64) CreateInvoiceInput {
	return CreateInvoiceInput{
		ProjectCode:       projectCode,
		PercentageOfTotal: decimal.NewFromInt(pct),
		Amount:            decimal.NewFromInt(pct * 100),
		Currency:          "MYR",
		InvoiceDate:       date(2026, 2, 1),
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}
