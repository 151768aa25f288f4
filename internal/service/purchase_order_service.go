package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"backoffice/internal/apperror"
	"backoffice/internal/currency"
	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	maxAdjustmentPercent   = 50
	minAdjustmentReasonLen = 10
)

// revisionSuffix matches the " Rev <n>" suffix reserved for revision numbers.
var revisionSuffix = regexp.MustCompile(`^(.+) Rev [0-9]+$`)

// --- DTOs ---

type CreatePurchaseOrderInput struct {
	PONumber     string
	ProjectCode  string
	Description  string
	Amount       decimal.Decimal
	Currency     string
	CustomRate   *decimal.Decimal
	ReceivedDate time.Time
	DueDate      *time.Time
	FileURL      string
}

// RevisePurchaseOrderInput describes a new revision. Nil Description and
// DueDate inherit the original's values.
type RevisePurchaseOrderInput struct {
	Amount       decimal.Decimal
	Currency     string
	CustomRate   *decimal.Decimal
	RevisionDate time.Time
	Reason       string
	Description  *string
	DueDate      *time.Time
	FileURL      string
}

type UpdatePurchaseOrderInput struct {
	Description  *string
	Amount       *decimal.Decimal
	Currency     *string
	CustomRate   *decimal.Decimal
	ReceivedDate *time.Time
	DueDate      *time.Time
	Status       *string
	FileURL      *string
}

type AdjustPurchaseOrderInput struct {
	AdjustedAmount decimal.Decimal
	Reason         string
}

type PurchaseOrderFilter struct {
	ProjectCode string
	Status      string
	ActiveOnly  bool
	Page        int
	Limit       int
}

type PurchaseOrderResponse struct {
	ID                 uuid.UUID           `json:"id"`
	PONumber           string              `json:"po_number"`
	PONumberBase       string              `json:"po_number_base"`
	ProjectCode        string              `json:"project_code"`
	Description        string              `json:"description"`
	RevisionNumber     int                 `json:"revision_number"`
	IsActive           bool                `json:"is_active"`
	Supersedes         *uuid.UUID          `json:"supersedes"`
	SupersededBy       *uuid.UUID          `json:"superseded_by"`
	RevisionDate       *time.Time          `json:"revision_date"`
	RevisionReason     string              `json:"revision_reason"`
	Amount             decimal.Decimal     `json:"amount"`
	Currency           string              `json:"currency"`
	AmountMYR          decimal.Decimal     `json:"amount_myr"`
	ExchangeRate       decimal.Decimal     `json:"exchange_rate"`
	ExchangeRateSource *string             `json:"exchange_rate_source"`
	AmountMYRAdjusted  decimal.NullDecimal `json:"amount_myr_adjusted"`
	AdjustmentReason   string              `json:"adjustment_reason"`
	AdjustedBy         *uuid.UUID          `json:"adjusted_by"`
	AdjustedAt         *time.Time          `json:"adjusted_at"`
	EffectiveAmountMYR decimal.Decimal     `json:"effective_amount_myr"`
	ReceivedDate       time.Time           `json:"received_date"`
	DueDate            *time.Time          `json:"due_date"`
	Status             string              `json:"status"`
	FileURL            string              `json:"file_url"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// PurchaseOrderResult pairs a written purchase order with the status
// derivation it triggered.
type PurchaseOrderResult struct {
	PurchaseOrder PurchaseOrderResponse `json:"purchase_order"`
	ProjectStatus StatusChange          `json:"project_status"`
}

// --- Interface ---

type PurchaseOrderService interface {
	Create(ctx context.Context, userID string, in CreatePurchaseOrderInput) (PurchaseOrderResult, error)
	CreateRevision(ctx context.Context, userID string, originalID uuid.UUID, in RevisePurchaseOrderInput) (PurchaseOrderResult, error)
	AdjustMYRAmount(ctx context.Context, userID string, id uuid.UUID, in AdjustPurchaseOrderInput) (PurchaseOrderResponse, error)
	ClearAdjustment(ctx context.Context, userID string, id uuid.UUID) (PurchaseOrderResponse, error)
	Update(ctx context.Context, userID string, id uuid.UUID, in UpdatePurchaseOrderInput) (PurchaseOrderResponse, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) (StatusChange, error)
	ClearFile(ctx context.Context, id uuid.UUID) (PurchaseOrderResponse, error)
	Get(ctx context.Context, id uuid.UUID) (PurchaseOrderResponse, error)
	List(ctx context.Context, filter PurchaseOrderFilter) ([]PurchaseOrderResponse, int64, error)
	RevisionHistory(ctx context.Context, poNumberBase string) ([]PurchaseOrderResponse, error)
	ActiveRevision(ctx context.Context, poNumberBase string) (*PurchaseOrderResponse, error)
}

type purchaseOrderService struct {
	poRepo      repository.PurchaseOrderRepository
	projectRepo repository.ProjectRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	converter   CurrencyConverter
	deriver     *StatusDeriver
	notifier    Notifier
	now         func() time.Time
}

func NewPurchaseOrderService(
	poRepo repository.PurchaseOrderRepository,
	projectRepo repository.ProjectRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	converter CurrencyConverter,
	deriver *StatusDeriver,
	notifier Notifier,
) PurchaseOrderService {
	return &purchaseOrderService{
		poRepo:      poRepo,
		projectRepo: projectRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		converter:   converter,
		deriver:     deriver,
		notifier:    orNop(notifier),
		now:         time.Now,
	}
}

// revisionPONumber is the display number of revision n: the bare base for
// the first revision, "<base> Rev <n>" afterwards.
func revisionPONumber(base string, n int) string {
	if n <= 1 {
		return base
	}
	return fmt.Sprintf("%s Rev %d", base, n)
}

func checkRevisable(po *model.PurchaseOrder) error {
	if !po.IsActive {
		return apperror.InvalidState("purchase order %s has been superseded and is read-only", po.PONumber)
	}
	if po.Status == model.POStatusPaid {
		return apperror.InvalidState("purchase order %s is paid and cannot be changed", po.PONumber)
	}
	return nil
}

var validPOStatuses = map[string]bool{
	model.POStatusReceived: true,
	model.POStatusInvoiced: true,
	model.POStatusPaid:     true,
}

// --- Implementation ---

func (s *purchaseOrderService) Create(ctx context.Context, userID string, in CreatePurchaseOrderInput) (PurchaseOrderResult, error) {
	poNumber := strings.TrimSpace(in.PONumber)
	if poNumber == "" {
		return PurchaseOrderResult{}, apperror.Validation("po_number is required")
	}
	if m := revisionSuffix.FindStringSubmatch(poNumber); m != nil {
		return PurchaseOrderResult{}, apperror.Validation("po_number %s uses the revision suffix; revise %s instead", poNumber, m[1])
	}
	if !in.Amount.IsPositive() {
		return PurchaseOrderResult{}, apperror.Validation("amount must be greater than zero")
	}
	if in.ReceivedDate.IsZero() {
		return PurchaseOrderResult{}, apperror.Validation("received_date is required")
	}

	conv, err := s.converter.Convert(ctx, in.Amount, in.Currency, in.CustomRate)
	if err != nil {
		return PurchaseOrderResult{}, err
	}

	po := model.PurchaseOrder{
		PONumber:           poNumber,
		PONumberBase:       poNumber,
		ProjectCode:        in.ProjectCode,
		Description:        in.Description,
		RevisionNumber:     1,
		IsActive:           true,
		Amount:             in.Amount,
		Currency:           conv.Currency,
		AmountMYR:          conv.AmountMYR,
		ExchangeRate:       conv.Rate,
		ExchangeRateSource: conv.Source,
		ReceivedDate:       in.ReceivedDate,
		DueDate:            in.DueDate,
		Status:             model.POStatusReceived,
		FileURL:            in.FileURL,
		CreatedBy:          parseUserID(userID),
	}

	var change StatusChange
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.projectRepo.FindByCode(txCtx, in.ProjectCode); err != nil {
			return lookupErr(err, "project %s not found", in.ProjectCode)
		}

		exists, err := s.poRepo.ExistsByNumber(txCtx, poNumber)
		if err != nil {
			return fmt.Errorf("failed to check purchase order number: %w", err)
		}
		if exists {
			return apperror.Validation("purchase order number %s already exists", poNumber)
		}

		if err := s.poRepo.Create(txCtx, &po); err != nil {
			if repository.IsDuplicateKey(err) {
				return apperror.Validation("purchase order number %s already exists", poNumber)
			}
			return fmt.Errorf("failed to create purchase order: %w", err)
		}

		if err := writeAudit(txCtx, s.auditRepo, userID, model.ActionCreatePO, po.ID.String(), po.PONumber, in); err != nil {
			return err
		}

		change, err = s.deriver.Derive(txCtx, po.ProjectCode)
		return err
	})
	if err != nil {
		return PurchaseOrderResult{}, err
	}

	publishStatusChange(s.notifier, change)
	return PurchaseOrderResult{PurchaseOrder: toPurchaseOrderResponse(po), ProjectStatus: change}, nil
}

func (s *purchaseOrderService) CreateRevision(ctx context.Context, userID string, originalID uuid.UUID, in RevisePurchaseOrderInput) (PurchaseOrderResult, error) {
	original, err := s.poRepo.FindByID(ctx, originalID)
	if err != nil {
		return PurchaseOrderResult{}, lookupErr(err, "purchase order %s not found", originalID)
	}
	if err := checkRevisable(original); err != nil {
		return PurchaseOrderResult{}, err
	}
	if !in.Amount.IsPositive() {
		return PurchaseOrderResult{}, apperror.Validation("amount must be greater than zero")
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return PurchaseOrderResult{}, apperror.Validation("revision reason is required")
	}

	code := in.Currency
	if code == "" {
		code = original.Currency
	}
	conv, err := s.converter.Convert(ctx, in.Amount, code, in.CustomRate)
	if err != nil {
		return PurchaseOrderResult{}, err
	}

	revisionDate := in.RevisionDate
	if revisionDate.IsZero() {
		revisionDate = s.now()
	}

	var (
		revision model.PurchaseOrder
		change   StatusChange
	)
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		orig, err := s.poRepo.FindByIDForUpdate(txCtx, originalID)
		if err != nil {
			return lookupErr(err, "purchase order %s not found", originalID)
		}
		if err := checkRevisable(orig); err != nil {
			return err
		}

		n := orig.RevisionNumber + 1
		revision = model.PurchaseOrder{
			PONumber:           revisionPONumber(orig.PONumberBase, n),
			PONumberBase:       orig.PONumberBase,
			ProjectCode:        orig.ProjectCode,
			Description:        orig.Description,
			RevisionNumber:     n,
			IsActive:           true,
			Supersedes:         &orig.ID,
			RevisionDate:       &revisionDate,
			RevisionReason:     reason,
			Amount:             in.Amount,
			Currency:           conv.Currency,
			AmountMYR:          conv.AmountMYR,
			ExchangeRate:       conv.Rate,
			ExchangeRateSource: conv.Source,
			ReceivedDate:       orig.ReceivedDate,
			DueDate:            orig.DueDate,
			Status:             orig.Status,
			FileURL:            orig.FileURL,
			CreatedBy:          parseUserID(userID),
		}
		if in.Description != nil {
			revision.Description = *in.Description
		}
		if in.DueDate != nil {
			revision.DueDate = in.DueDate
		}
		if in.FileURL != "" {
			revision.FileURL = in.FileURL
		}

		taken, err := s.poRepo.ExistsByNumber(txCtx, revision.PONumber)
		if err != nil {
			return fmt.Errorf("failed to check purchase order number: %w", err)
		}
		if taken {
			return apperror.Validation("purchase order number %s already exists; revision %d of %s cannot be created",
				revision.PONumber, n, orig.PONumberBase)
		}

		// The partial unique index allows one active row per base, so the
		// original is deactivated before the successor is inserted.
		orig.IsActive = false
		if err := s.poRepo.Update(txCtx, orig); err != nil {
			return fmt.Errorf("failed to deactivate purchase order: %w", err)
		}

		if err := s.poRepo.Create(txCtx, &revision); err != nil {
			if repository.IsDuplicateKey(err) {
				return apperror.Concurrency("revision %d of %s was created concurrently", n, orig.PONumberBase)
			}
			return fmt.Errorf("failed to create revision: %w", err)
		}

		orig.SupersededBy = &revision.ID
		if err := s.poRepo.Update(txCtx, orig); err != nil {
			return fmt.Errorf("failed to link superseded purchase order: %w", err)
		}

		details := map[string]interface{}{
			"supersedes":      orig.ID,
			"revision_number": n,
			"reason":          reason,
			"amount":          in.Amount,
			"currency":        conv.Currency,
		}
		if err := writeAudit(txCtx, s.auditRepo, userID, model.ActionRevisePO, revision.ID.String(), revision.PONumber, details); err != nil {
			return err
		}

		change, err = s.deriver.Derive(txCtx, revision.ProjectCode)
		return err
	})
	if err != nil {
		return PurchaseOrderResult{}, err
	}

	publishStatusChange(s.notifier, change)
	return PurchaseOrderResult{PurchaseOrder: toPurchaseOrderResponse(revision), ProjectStatus: change}, nil
}

// AdjustMYRAmount records a manual MYR override within 50% of the converted amount.
func (s *purchaseOrderService) AdjustMYRAmount(ctx context.Context, userID string, id uuid.UUID, in AdjustPurchaseOrderInput) (PurchaseOrderResponse, error) {
	var po *model.PurchaseOrder
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		po, err = s.poRepo.FindByIDForUpdate(txCtx, id)
		if err != nil {
			return lookupErr(err, "purchase order %s not found", id)
		}
		if err := checkRevisable(po); err != nil {
			return err
		}

		if !in.AdjustedAmount.IsPositive() {
			return apperror.Validation("adjusted amount must be greater than zero")
		}
		if !po.AmountMYR.IsPositive() {
			return apperror.Validation("purchase order %s has no converted MYR amount to adjust", po.PONumber)
		}
		diff := in.AdjustedAmount.Sub(po.AmountMYR).Abs().Div(po.AmountMYR).Mul(hundred)
		if diff.GreaterThan(decimal.NewFromInt(maxAdjustmentPercent)) {
			return apperror.Validation("adjustment differs from the converted amount by %s%%, above the %d%% limit; create a revision instead",
				diff.StringFixed(2), maxAdjustmentPercent)
		}
		reason := strings.TrimSpace(in.Reason)
		if utf8.RuneCountInString(reason) < minAdjustmentReasonLen {
			return apperror.Validation("adjustment reason must be at least %d characters", minAdjustmentReasonLen)
		}

		now := s.now()
		po.AmountMYRAdjusted = decimal.NewNullDecimal(in.AdjustedAmount)
		po.AdjustmentReason = reason
		po.AdjustedBy = parseUserID(userID)
		po.AdjustedAt = &now

		if err := s.poRepo.Update(txCtx, po); err != nil {
			return fmt.Errorf("failed to adjust purchase order: %w", err)
		}

		details := map[string]interface{}{
			"amount_myr":          po.AmountMYR,
			"amount_myr_adjusted": in.AdjustedAmount,
			"reason":              reason,
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionAdjustPO, po.ID.String(), po.PONumber, details)
	})
	if err != nil {
		return PurchaseOrderResponse{}, err
	}
	return toPurchaseOrderResponse(*po), nil
}

func (s *purchaseOrderService) ClearAdjustment(ctx context.Context, userID string, id uuid.UUID) (PurchaseOrderResponse, error) {
	var po *model.PurchaseOrder
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		po, err = s.poRepo.FindByIDForUpdate(txCtx, id)
		if err != nil {
			return lookupErr(err, "purchase order %s not found", id)
		}
		if err := checkRevisable(po); err != nil {
			return err
		}
		if !po.AmountMYRAdjusted.Valid {
			return nil
		}

		previous := po.AmountMYRAdjusted.Decimal
		po.AmountMYRAdjusted = decimal.NullDecimal{}
		po.AdjustmentReason = ""
		po.AdjustedBy = nil
		po.AdjustedAt = nil
		if err := s.poRepo.Update(txCtx, po); err != nil {
			return fmt.Errorf("failed to clear adjustment: %w", err)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionClearPOAdjustment, po.ID.String(), po.PONumber,
			map[string]interface{}{"previous_amount_myr_adjusted": previous})
	})
	if err != nil {
		return PurchaseOrderResponse{}, err
	}
	return toPurchaseOrderResponse(*po), nil
}

// Update edits the active revision in place. Monetary changes re-run the
// currency snapshot; other fields never touch it.
func (s *purchaseOrderService) Update(ctx context.Context, userID string, id uuid.UUID, in UpdatePurchaseOrderInput) (PurchaseOrderResponse, error) {
	if in.Status != nil && !validPOStatuses[*in.Status] {
		return PurchaseOrderResponse{}, apperror.Validation("status must be one of: received, invoiced, paid")
	}

	var po *model.PurchaseOrder
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		po, err = s.poRepo.FindByIDForUpdate(txCtx, id)
		if err != nil {
			return lookupErr(err, "purchase order %s not found", id)
		}
		if err := checkRevisable(po); err != nil {
			return err
		}

		amount, conv, changed, err := reconvert(txCtx, s.converter,
			snapshotState{Amount: po.Amount, Currency: po.Currency, Rate: po.ExchangeRate, Source: po.ExchangeRateSource},
			snapshotEdit{Amount: in.Amount, Currency: in.Currency, CustomRate: in.CustomRate})
		if err != nil {
			return err
		}
		if changed {
			po.Amount = amount
			po.Currency = conv.Currency
			po.AmountMYR = conv.AmountMYR
			po.ExchangeRate = conv.Rate
			po.ExchangeRateSource = conv.Source
		}

		if in.Description != nil {
			po.Description = *in.Description
		}
		if in.ReceivedDate != nil {
			po.ReceivedDate = *in.ReceivedDate
		}
		if in.DueDate != nil {
			po.DueDate = in.DueDate
		}
		if in.Status != nil {
			po.Status = *in.Status
		}
		if in.FileURL != nil {
			po.FileURL = *in.FileURL
		}

		if err := s.poRepo.Update(txCtx, po); err != nil {
			return fmt.Errorf("failed to update purchase order: %w", err)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionUpdatePO, po.ID.String(), po.PONumber, in)
	})
	if err != nil {
		return PurchaseOrderResponse{}, err
	}
	return toPurchaseOrderResponse(*po), nil
}

// Delete removes the active revision. Its predecessor, if any, becomes active
// again so the chain keeps one active row and contiguous revision numbers.
func (s *purchaseOrderService) Delete(ctx context.Context, userID string, id uuid.UUID) (StatusChange, error) {
	var change StatusChange
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		po, err := s.poRepo.FindByIDForUpdate(txCtx, id)
		if err != nil {
			return lookupErr(err, "purchase order %s not found", id)
		}
		if !po.IsActive {
			return apperror.InvalidState("only the active revision of %s can be deleted", po.PONumberBase)
		}
		if po.Status == model.POStatusPaid {
			return apperror.InvalidState("purchase order %s is paid and cannot be deleted", po.PONumber)
		}

		if err := s.poRepo.Delete(txCtx, po.ID); err != nil {
			return fmt.Errorf("failed to delete purchase order: %w", err)
		}

		if po.Supersedes != nil {
			pred, err := s.poRepo.FindByIDForUpdate(txCtx, *po.Supersedes)
			if err != nil {
				return lookupErr(err, "previous revision %s not found", *po.Supersedes)
			}
			pred.IsActive = true
			pred.SupersededBy = nil
			if err := s.poRepo.Update(txCtx, pred); err != nil {
				return fmt.Errorf("failed to reactivate previous revision: %w", err)
			}
		}

		if err := writeAudit(txCtx, s.auditRepo, userID, model.ActionDeletePO, po.ID.String(), po.PONumber, po); err != nil {
			return err
		}

		change, err = s.deriver.Derive(txCtx, po.ProjectCode)
		return err
	})
	if err != nil {
		return StatusChange{}, err
	}

	publishStatusChange(s.notifier, change)
	return change, nil
}

func (s *purchaseOrderService) ClearFile(ctx context.Context, id uuid.UUID) (PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByID(ctx, id)
	if err != nil {
		return PurchaseOrderResponse{}, lookupErr(err, "purchase order %s not found", id)
	}
	if po.FileURL == "" {
		return toPurchaseOrderResponse(*po), nil
	}
	po.FileURL = ""
	if err := s.poRepo.Update(ctx, po); err != nil {
		return PurchaseOrderResponse{}, fmt.Errorf("failed to clear file: %w", err)
	}
	return toPurchaseOrderResponse(*po), nil
}

func (s *purchaseOrderService) Get(ctx context.Context, id uuid.UUID) (PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByID(ctx, id)
	if err != nil {
		return PurchaseOrderResponse{}, lookupErr(err, "purchase order %s not found", id)
	}
	return toPurchaseOrderResponse(*po), nil
}

func (s *purchaseOrderService) List(ctx context.Context, filter PurchaseOrderFilter) ([]PurchaseOrderResponse, int64, error) {
	page, limit := normalizePaging(filter.Page, filter.Limit)
	pos, total, err := s.poRepo.List(ctx, repository.PurchaseOrderListFilter{
		ProjectCode: filter.ProjectCode,
		Status:      filter.Status,
		ActiveOnly:  filter.ActiveOnly,
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch purchase orders: %w", err)
	}
	return toPurchaseOrderResponses(pos), total, nil
}

func (s *purchaseOrderService) RevisionHistory(ctx context.Context, poNumberBase string) ([]PurchaseOrderResponse, error) {
	pos, err := s.poRepo.ListByBase(ctx, poNumberBase)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch revision history: %w", err)
	}
	if len(pos) == 0 {
		return nil, apperror.NotFound("purchase order %s not found", poNumberBase)
	}
	return toPurchaseOrderResponses(pos), nil
}

// ActiveRevision returns nil when the base has no active revision.
func (s *purchaseOrderService) ActiveRevision(ctx context.Context, poNumberBase string) (*PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindActiveByBase(ctx, poNumberBase)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch active revision: %w", err)
	}
	resp := toPurchaseOrderResponse(*po)
	return &resp, nil
}

// --- Mapping ---

func toPurchaseOrderResponse(po model.PurchaseOrder) PurchaseOrderResponse {
	return PurchaseOrderResponse{
		ID:                 po.ID,
		PONumber:           po.PONumber,
		PONumberBase:       po.PONumberBase,
		ProjectCode:        po.ProjectCode,
		Description:        po.Description,
		RevisionNumber:     po.RevisionNumber,
		IsActive:           po.IsActive,
		Supersedes:         po.Supersedes,
		SupersededBy:       po.SupersededBy,
		RevisionDate:       po.RevisionDate,
		RevisionReason:     po.RevisionReason,
		Amount:             po.Amount,
		Currency:           po.Currency,
		AmountMYR:          po.AmountMYR,
		ExchangeRate:       po.ExchangeRate,
		ExchangeRateSource: po.ExchangeRateSource,
		AmountMYRAdjusted:  po.AmountMYRAdjusted,
		AdjustmentReason:   po.AdjustmentReason,
		AdjustedBy:         po.AdjustedBy,
		AdjustedAt:         po.AdjustedAt,
		EffectiveAmountMYR: po.EffectiveAmountMYR(),
		ReceivedDate:       po.ReceivedDate,
		DueDate:            po.DueDate,
		Status:             po.Status,
		FileURL:            po.FileURL,
		CreatedAt:          po.CreatedAt,
		UpdatedAt:          po.UpdatedAt,
	}
}

func toPurchaseOrderResponses(pos []model.PurchaseOrder) []PurchaseOrderResponse {
	res := make([]PurchaseOrderResponse, 0, len(pos))
	for _, po := range pos {
		res = append(res, toPurchaseOrderResponse(po))
	}
	return res
}

var _ CurrencyConverter = (*currency.Converter)(nil)
