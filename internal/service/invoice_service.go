package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"backoffice/internal/apperror"
	"backoffice/internal/lock"
	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// --- DTOs ---

type CreateInvoiceInput struct {
	// InvoiceNumber is generated from the settings prefix when empty.
	InvoiceNumber string
	// ProjectCode keys the sequence and cumulative percentage.
	ProjectCode string
	// AdditionalProjectCodes lists other projects billed on the same invoice.
	AdditionalProjectCodes []string
	PercentageOfTotal      decimal.Decimal
	Amount                 decimal.Decimal
	Currency               string
	CustomRate             *decimal.Decimal
	InvoiceDate            time.Time
	DueDate                *time.Time
	Description            string
	FileURL                string
}

type UpdateInvoiceInput struct {
	PercentageOfTotal *decimal.Decimal
	Amount            *decimal.Decimal
	Currency          *string
	CustomRate        *decimal.Decimal
	InvoiceDate       *time.Time
	DueDate           *time.Time
	Description       *string
	FileURL           *string
}

type InvoiceFilter struct {
	ProjectCode string
	Status      string
	Page        int
	Limit       int
}

type InvoiceResponse struct {
	ID                   uuid.UUID       `json:"id"`
	InvoiceNumber        string          `json:"invoice_number"`
	ProjectCode          string          `json:"project_code"`
	ProjectCodes         []string        `json:"project_codes"`
	InvoiceSequence      int             `json:"invoice_sequence"`
	PercentageOfTotal    decimal.Decimal `json:"percentage_of_total"`
	CumulativePercentage decimal.Decimal `json:"cumulative_percentage"`
	Amount               decimal.Decimal `json:"amount"`
	Currency             string          `json:"currency"`
	AmountMYR            decimal.Decimal `json:"amount_myr"`
	ExchangeRate         decimal.Decimal `json:"exchange_rate"`
	ExchangeRateSource   *string         `json:"exchange_rate_source"`
	InvoiceDate          time.Time       `json:"invoice_date"`
	DueDate              *time.Time      `json:"due_date"`
	Status               string          `json:"status"`
	Description          string          `json:"description"`
	FileURL              string          `json:"file_url"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

type InvoiceResult struct {
	Invoice       InvoiceResponse `json:"invoice"`
	ProjectStatus StatusChange    `json:"project_status"`
}

// --- Interface ---

type InvoiceService interface {
	Create(ctx context.Context, userID string, in CreateInvoiceInput) (InvoiceResult, error)
	Update(ctx context.Context, userID string, id uuid.UUID, in UpdateInvoiceInput) (InvoiceResult, error)
	UpdateStatus(ctx context.Context, userID string, id uuid.UUID, status string) (InvoiceResponse, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (InvoiceResponse, error)
	List(ctx context.Context, filter InvoiceFilter) ([]InvoiceResponse, int64, error)
}

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	projectRepo repository.ProjectRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	converter   CurrencyConverter
	deriver     *StatusDeriver
	settings    SettingsService
	locker      lock.Locker
	lockTTL     time.Duration
	notifier    Notifier
	log         *logrus.Logger
	now         func() time.Time
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	projectRepo repository.ProjectRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	converter CurrencyConverter,
	deriver *StatusDeriver,
	settings SettingsService,
	locker lock.Locker,
	lockTTL time.Duration,
	notifier Notifier,
	log *logrus.Logger,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		projectRepo: projectRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		converter:   converter,
		deriver:     deriver,
		settings:    settings,
		locker:      locker,
		lockTTL:     lockTTL,
		notifier:    orNop(notifier),
		log:         log,
		now:         time.Now,
	}
}

// invoiceStatusTransitions lists the allowed next states. Paid is terminal.
var invoiceStatusTransitions = map[string][]string{
	model.InvoiceStatusPending: {model.InvoiceStatusSent, model.InvoiceStatusCancelled},
	model.InvoiceStatusSent:    {model.InvoiceStatusPaid, model.InvoiceStatusCancelled},
}

var validInvoiceStatuses = map[string]bool{
	model.InvoiceStatusPending:   true,
	model.InvoiceStatusSent:      true,
	model.InvoiceStatusPaid:      true,
	model.InvoiceStatusCancelled: true,
}

func validatePercentage(pct decimal.Decimal) error {
	if !pct.IsPositive() || pct.GreaterThan(hundred) {
		return apperror.Validation("percentage_of_total must be greater than 0 and at most 100")
	}
	return nil
}

// normalizeProjectCodes returns the primary code followed by the distinct
// non-empty additional codes.
func normalizeProjectCodes(primary string, additional []string) []string {
	seen := map[string]bool{primary: true}
	codes := []string{primary}
	for _, code := range additional {
		code = strings.TrimSpace(code)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	return codes
}

// recomputeChain rewrites cumulative percentages in sequence order. It returns
// the indexes of invoices whose stored cumulative changed and the final total.
func recomputeChain(chain []model.Invoice) ([]int, decimal.Decimal) {
	var changed []int
	running := decimal.Zero
	for i := range chain {
		running = running.Add(chain[i].PercentageOfTotal)
		if !chain[i].CumulativePercentage.Equal(running) {
			chain[i].CumulativePercentage = running
			changed = append(changed, i)
		}
	}
	return changed, running
}

// checkPaidUnchanged rejects a recompute that would move the cumulative
// percentage of a paid invoice.
func checkPaidUnchanged(chain []model.Invoice, changed []int) error {
	for _, i := range changed {
		if chain[i].Status == model.InvoiceStatusPaid {
			return apperror.InvalidState("invoice %s is paid; its cumulative percentage cannot change", chain[i].InvoiceNumber)
		}
	}
	return nil
}

// lockProject serializes sequence assignment for one project. A lock backend
// failure other than contention falls back to the project row lock alone.
func (s *invoiceService) lockProject(ctx context.Context, projectCode string) (func(), error) {
	lk, err := s.locker.Obtain(ctx, "invoice-seq:"+projectCode, s.lockTTL)
	if errors.Is(err, lock.ErrNotObtained) {
		return nil, apperror.Concurrency("another invoice for project %s is being written, retry", projectCode)
	}
	if err != nil {
		if s.log != nil {
			s.log.WithFields(logrus.Fields{
				"module":       "invoice",
				"project_code": projectCode,
			}).Warn("invoice lock unavailable, relying on row lock: " + err.Error())
		}
		return func() {}, nil
	}
	return func() {
		if err := lk.Release(context.WithoutCancel(ctx)); err != nil && s.log != nil {
			s.log.WithField("module", "invoice").Warn("failed to release invoice lock: " + err.Error())
		}
	}, nil
}

func (s *invoiceService) nextInvoiceNumber(ctx context.Context) (string, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return "", err
	}
	prefix := settings.InvoicePrefix
	if prefix == "" {
		prefix = "INV"
	}
	prefix = fmt.Sprintf("%s-%s-", prefix, s.now().Format("200601"))

	last, err := s.invoiceRepo.MaxNumberSuffix(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("failed to read last invoice number: %w", err)
	}
	return fmt.Sprintf("%s%04d", prefix, last+1), nil
}

// --- Implementation ---

// Create assigns the next sequence for the project and a cumulative percentage
// equal to the sum of every earlier invoice plus this one. Totals above 100 are
// rejected.
func (s *invoiceService) Create(ctx context.Context, userID string, in CreateInvoiceInput) (InvoiceResult, error) {
	projectCode := strings.TrimSpace(in.ProjectCode)
	if projectCode == "" {
		return InvoiceResult{}, apperror.Validation("project_code is required")
	}
	if err := validatePercentage(in.PercentageOfTotal); err != nil {
		return InvoiceResult{}, err
	}
	if !in.Amount.IsPositive() {
		return InvoiceResult{}, apperror.Validation("amount must be greater than zero")
	}
	if in.InvoiceDate.IsZero() {
		return InvoiceResult{}, apperror.Validation("invoice_date is required")
	}

	conv, err := s.converter.Convert(ctx, in.Amount, in.Currency, in.CustomRate)
	if err != nil {
		return InvoiceResult{}, err
	}

	release, err := s.lockProject(ctx, projectCode)
	if err != nil {
		return InvoiceResult{}, err
	}
	defer release()

	codes := normalizeProjectCodes(projectCode, in.AdditionalProjectCodes)
	var (
		invoice model.Invoice
		change  StatusChange
	)
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		project, err := s.projectRepo.FindByCodeForUpdate(txCtx, projectCode)
		if err != nil {
			return lookupErr(err, "project %s not found", projectCode)
		}
		for _, code := range codes[1:] {
			if _, err := s.projectRepo.FindByCode(txCtx, code); err != nil {
				return lookupErr(err, "project %s not found", code)
			}
		}

		existing, err := s.invoiceRepo.ListBySequence(txCtx, projectCode)
		if err != nil {
			return fmt.Errorf("failed to load invoices for %s: %w", projectCode, err)
		}
		// Sequences of deleted invoices are never handed out again.
		sequence := project.LastInvoiceSequence + 1
		cumulative := in.PercentageOfTotal
		for _, inv := range existing {
			if inv.InvoiceSequence >= sequence {
				sequence = inv.InvoiceSequence + 1
			}
			cumulative = cumulative.Add(inv.PercentageOfTotal)
		}
		if cumulative.GreaterThan(hundred) {
			return apperror.Validation("cumulative percentage for project %s would be %s%%, above 100%%",
				projectCode, cumulative.String())
		}

		number := strings.TrimSpace(in.InvoiceNumber)
		generated := number == ""
		if generated {
			number, err = s.nextInvoiceNumber(txCtx)
			if err != nil {
				return err
			}
		} else {
			exists, err := s.invoiceRepo.ExistsByNumber(txCtx, number)
			if err != nil {
				return fmt.Errorf("failed to check invoice number: %w", err)
			}
			if exists {
				return apperror.Validation("invoice number %s already exists", number)
			}
		}

		links := make([]model.InvoiceProject, 0, len(codes))
		for _, code := range codes {
			links = append(links, model.InvoiceProject{ProjectCode: code})
		}

		invoice = model.Invoice{
			InvoiceNumber:        number,
			ProjectCode:          projectCode,
			Projects:             links,
			InvoiceSequence:      sequence,
			PercentageOfTotal:    in.PercentageOfTotal,
			CumulativePercentage: cumulative,
			Amount:               in.Amount,
			Currency:             conv.Currency,
			AmountMYR:            conv.AmountMYR,
			ExchangeRate:         conv.Rate,
			ExchangeRateSource:   conv.Source,
			InvoiceDate:          in.InvoiceDate,
			DueDate:              in.DueDate,
			Status:               model.InvoiceStatusPending,
			Description:          in.Description,
			FileURL:              in.FileURL,
			CreatedBy:            parseUserID(userID),
		}
		if err := s.invoiceRepo.Create(txCtx, &invoice); err != nil {
			switch {
			case errors.Is(err, repository.ErrDuplicateInvoiceNumber) && generated:
				return apperror.Concurrency("invoice number %s was taken concurrently, retry", number)
			case errors.Is(err, repository.ErrDuplicateInvoiceNumber):
				return apperror.Validation("invoice number %s already exists", number)
			case errors.Is(err, repository.ErrDuplicateInvoiceSequence):
				return apperror.Concurrency("invoice sequence %d for project %s was taken concurrently, retry", sequence, projectCode)
			}
			return fmt.Errorf("failed to create invoice: %w", err)
		}
		if err := s.projectRepo.SetLastInvoiceSequence(txCtx, project.ID, sequence); err != nil {
			return fmt.Errorf("failed to record invoice sequence for %s: %w", projectCode, err)
		}

		if err := writeAudit(txCtx, s.auditRepo, userID, model.ActionCreateInvoice, invoice.ID.String(), invoice.InvoiceNumber, in); err != nil {
			return err
		}

		change, err = s.deriver.Derive(txCtx, projectCode)
		return err
	})
	if err != nil {
		return InvoiceResult{}, err
	}

	publishStatusChange(s.notifier, change)
	return InvoiceResult{Invoice: toInvoiceResponse(invoice), ProjectStatus: change}, nil
}

// Update edits an unpaid invoice. A percentage change recomputes the
// cumulative percentage of every invoice in the project's chain.
func (s *invoiceService) Update(ctx context.Context, userID string, id uuid.UUID, in UpdateInvoiceInput) (InvoiceResult, error) {
	if in.PercentageOfTotal != nil {
		if err := validatePercentage(*in.PercentageOfTotal); err != nil {
			return InvoiceResult{}, err
		}
	}

	current, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return InvoiceResult{}, lookupErr(err, "invoice %s not found", id)
	}

	release, err := s.lockProject(ctx, current.ProjectCode)
	if err != nil {
		return InvoiceResult{}, err
	}
	defer release()

	var (
		invoice model.Invoice
		change  StatusChange
	)
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.projectRepo.FindByCodeForUpdate(txCtx, current.ProjectCode); err != nil {
			return lookupErr(err, "project %s not found", current.ProjectCode)
		}

		chain, err := s.invoiceRepo.ListBySequence(txCtx, current.ProjectCode)
		if err != nil {
			return fmt.Errorf("failed to load invoices for %s: %w", current.ProjectCode, err)
		}
		idx := -1
		for i := range chain {
			if chain[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return apperror.NotFound("invoice %s not found", id)
		}

		target := &chain[idx]
		if target.Status == model.InvoiceStatusPaid {
			return apperror.InvalidState("invoice %s is paid and cannot be modified", target.InvoiceNumber)
		}

		amount, conv, reconverted, err := reconvert(txCtx, s.converter,
			snapshotState{Amount: target.Amount, Currency: target.Currency, Rate: target.ExchangeRate, Source: target.ExchangeRateSource},
			snapshotEdit{Amount: in.Amount, Currency: in.Currency, CustomRate: in.CustomRate})
		if err != nil {
			return err
		}
		if reconverted {
			target.Amount = amount
			target.Currency = conv.Currency
			target.AmountMYR = conv.AmountMYR
			target.ExchangeRate = conv.Rate
			target.ExchangeRateSource = conv.Source
		}
		if in.PercentageOfTotal != nil {
			target.PercentageOfTotal = *in.PercentageOfTotal
		}
		if in.InvoiceDate != nil {
			target.InvoiceDate = *in.InvoiceDate
		}
		if in.DueDate != nil {
			target.DueDate = in.DueDate
		}
		if in.Description != nil {
			target.Description = *in.Description
		}
		if in.FileURL != nil {
			target.FileURL = *in.FileURL
		}

		changed, total := recomputeChain(chain)
		if total.GreaterThan(hundred) {
			return apperror.Validation("cumulative percentage for project %s would be %s%%, above 100%%",
				current.ProjectCode, total.String())
		}
		if err := checkPaidUnchanged(chain, changed); err != nil {
			return err
		}

		if err := s.invoiceRepo.Update(txCtx, target); err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}
		for _, i := range changed {
			if i == idx {
				continue
			}
			if err := s.invoiceRepo.Update(txCtx, &chain[i]); err != nil {
				return fmt.Errorf("failed to update cumulative percentage of %s: %w", chain[i].InvoiceNumber, err)
			}
		}

		if err := writeAudit(txCtx, s.auditRepo, userID, model.ActionUpdateInvoice, target.ID.String(), target.InvoiceNumber, in); err != nil {
			return err
		}

		invoice = *target
		change, err = s.deriver.Derive(txCtx, current.ProjectCode)
		return err
	})
	if err != nil {
		return InvoiceResult{}, err
	}

	publishStatusChange(s.notifier, change)
	return InvoiceResult{Invoice: toInvoiceResponse(invoice), ProjectStatus: change}, nil
}

func (s *invoiceService) UpdateStatus(ctx context.Context, userID string, id uuid.UUID, status string) (InvoiceResponse, error) {
	if !validInvoiceStatuses[status] {
		return InvoiceResponse{}, apperror.Validation("status must be one of: pending, sent, paid, cancelled")
	}

	var invoice *model.Invoice
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		invoice, err = s.invoiceRepo.FindByID(txCtx, id)
		if err != nil {
			return lookupErr(err, "invoice %s not found", id)
		}
		if invoice.Status == model.InvoiceStatusPaid {
			return apperror.InvalidState("invoice %s is paid and cannot be modified", invoice.InvoiceNumber)
		}
		if invoice.Status == status {
			return nil
		}

		if !canTransition(invoiceStatusTransitions, invoice.Status, status) {
			return apperror.InvalidState("invoice %s cannot move from %s to %s", invoice.InvoiceNumber, invoice.Status, status)
		}

		from := invoice.Status
		invoice.Status = status
		if err := s.invoiceRepo.Update(txCtx, invoice); err != nil {
			return fmt.Errorf("failed to update invoice status: %w", err)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionUpdateInvoiceStatus, invoice.ID.String(), invoice.InvoiceNumber,
			map[string]string{"from": from, "to": status})
	})
	if err != nil {
		return InvoiceResponse{}, err
	}
	return toInvoiceResponse(*invoice), nil
}

// Delete removes an unpaid invoice and recomputes the remaining chain.
// Remaining invoices keep their sequence numbers; a gap is not renumbered.
func (s *invoiceService) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	current, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return lookupErr(err, "invoice %s not found", id)
	}

	release, err := s.lockProject(ctx, current.ProjectCode)
	if err != nil {
		return err
	}
	defer release()

	var change StatusChange
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.projectRepo.FindByCodeForUpdate(txCtx, current.ProjectCode); err != nil {
			return lookupErr(err, "project %s not found", current.ProjectCode)
		}
		invoice, err := s.invoiceRepo.FindByID(txCtx, id)
		if err != nil {
			return lookupErr(err, "invoice %s not found", id)
		}
		if invoice.Status == model.InvoiceStatusPaid {
			return apperror.InvalidState("invoice %s is paid and cannot be deleted", invoice.InvoiceNumber)
		}

		if err := s.invoiceRepo.Delete(txCtx, invoice.ID); err != nil {
			return fmt.Errorf("failed to delete invoice: %w", err)
		}

		chain, err := s.invoiceRepo.ListBySequence(txCtx, invoice.ProjectCode)
		if err != nil {
			return fmt.Errorf("failed to load invoices for %s: %w", invoice.ProjectCode, err)
		}
		changed, _ := recomputeChain(chain)
		if err := checkPaidUnchanged(chain, changed); err != nil {
			return err
		}
		for _, i := range changed {
			if err := s.invoiceRepo.Update(txCtx, &chain[i]); err != nil {
				return fmt.Errorf("failed to update cumulative percentage of %s: %w", chain[i].InvoiceNumber, err)
			}
		}

		if err := writeAudit(txCtx, s.auditRepo, userID, model.ActionDeleteInvoice, invoice.ID.String(), invoice.InvoiceNumber, invoice); err != nil {
			return err
		}

		change, err = s.deriver.Derive(txCtx, invoice.ProjectCode)
		return err
	})
	if err != nil {
		return err
	}

	publishStatusChange(s.notifier, change)
	return nil
}

func (s *invoiceService) Get(ctx context.Context, id uuid.UUID) (InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return InvoiceResponse{}, lookupErr(err, "invoice %s not found", id)
	}
	return toInvoiceResponse(*invoice), nil
}

func (s *invoiceService) List(ctx context.Context, filter InvoiceFilter) ([]InvoiceResponse, int64, error) {
	page, limit := normalizePaging(filter.Page, filter.Limit)
	invoices, total, err := s.invoiceRepo.List(ctx, repository.InvoiceListFilter{
		ProjectCode: filter.ProjectCode,
		Status:      filter.Status,
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	result := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		result = append(result, toInvoiceResponse(inv))
	}
	return result, total, nil
}

// --- Mapping ---

func toInvoiceResponse(inv model.Invoice) InvoiceResponse {
	codes := inv.ProjectCodes()
	if len(codes) == 0 {
		codes = []string{inv.ProjectCode}
	}
	return InvoiceResponse{
		ID:                   inv.ID,
		InvoiceNumber:        inv.InvoiceNumber,
		ProjectCode:          inv.ProjectCode,
		ProjectCodes:         codes,
		InvoiceSequence:      inv.InvoiceSequence,
		PercentageOfTotal:    inv.PercentageOfTotal,
		CumulativePercentage: inv.CumulativePercentage,
		Amount:               inv.Amount,
		Currency:             inv.Currency,
		AmountMYR:            inv.AmountMYR,
		ExchangeRate:         inv.ExchangeRate,
		ExchangeRateSource:   inv.ExchangeRateSource,
		InvoiceDate:          inv.InvoiceDate,
		DueDate:              inv.DueDate,
		Status:               inv.Status,
		Description:          inv.Description,
		FileURL:              inv.FileURL,
		CreatedAt:            inv.CreatedAt,
		UpdatedAt:            inv.UpdatedAt,
	}
}
