package service

import (
	"context"
	"fmt"
	"time"

	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// StatusDeriver is the only writer of Project.Status.
//
//	pre-lim   -> ongoing   first active purchase order recorded
//	ongoing   -> pre-lim   every purchase order removed
//	*         -> completed cumulative invoiced percentage reaches 100
//
// Nothing leaves completed.
type StatusDeriver struct {
	projectRepo repository.ProjectRepository
	poRepo      repository.PurchaseOrderRepository
	invoiceRepo repository.InvoiceRepository
	now         func() time.Time
}

func NewStatusDeriver(
	projectRepo repository.ProjectRepository,
	poRepo repository.PurchaseOrderRepository,
	invoiceRepo repository.InvoiceRepository,
) *StatusDeriver {
	return &StatusDeriver{
		projectRepo: projectRepo,
		poRepo:      poRepo,
		invoiceRepo: invoiceRepo,
		now:         time.Now,
	}
}

// Derive recomputes the project's status and persists it only when it changed.
// It locks the project row and must run inside the caller's transaction.
func (d *StatusDeriver) Derive(ctx context.Context, projectCode string) (StatusChange, error) {
	project, err := d.projectRepo.FindByCodeForUpdate(ctx, projectCode)
	if err != nil {
		return StatusChange{}, lookupErr(err, "project %s not found", projectCode)
	}

	change := StatusChange{ProjectCode: project.Code, From: project.Status, To: project.Status}
	if project.Status == model.ProjectStatusCompleted {
		return change, nil
	}

	invoices, err := d.invoiceRepo.ListBySequence(ctx, project.Code)
	if err != nil {
		return StatusChange{}, fmt.Errorf("failed to load invoices for %s: %w", project.Code, err)
	}
	cumulative := decimal.Zero
	for _, inv := range invoices {
		if inv.CumulativePercentage.GreaterThan(cumulative) {
			cumulative = inv.CumulativePercentage
		}
	}

	stats, err := d.poRepo.StatsByProject(ctx, project.Code)
	if err != nil {
		return StatusChange{}, fmt.Errorf("failed to load purchase orders for %s: %w", project.Code, err)
	}

	switch {
	case cumulative.GreaterThanOrEqual(hundred):
		change.To = model.ProjectStatusCompleted
	case stats.ActiveCount > 0:
		change.To = model.ProjectStatusOngoing
	default:
		change.To = model.ProjectStatusPreLim
	}

	if change.To == change.From {
		return change, nil
	}
	change.Changed = true

	now := d.now()
	project.Status = change.To
	switch change.To {
	case model.ProjectStatusCompleted:
		project.CompletionDate = &now
		if project.POReceivedDate == nil {
			project.POReceivedDate = stats.EarliestReceived
		}
	case model.ProjectStatusOngoing:
		if project.POReceivedDate == nil {
			received := now
			if stats.EarliestReceived != nil {
				received = *stats.EarliestReceived
			}
			project.POReceivedDate = &received
		}
	case model.ProjectStatusPreLim:
		project.POReceivedDate = nil
	}

	if err := d.projectRepo.Update(ctx, project); err != nil {
		return StatusChange{}, fmt.Errorf("failed to update status of %s: %w", project.Code, err)
	}
	return change, nil
}
