package service

import (
	"context"
	"fmt"

	"backoffice/internal/repository"

	"github.com/xuri/excelize/v2"
)

const (
	sheetPurchaseOrders = "Purchase Orders"
	sheetInvoices       = "Invoices"
)

var poLedgerHeaders = []string{
	"PO Number", "Base", "Revision", "Active", "Status", "Received", "Currency",
	"Amount", "Rate", "Rate Source", "Amount (MYR)", "Adjusted (MYR)", "Effective (MYR)", "Revision Reason",
}

var invoiceLedgerHeaders = []string{
	"Sequence", "Invoice Number", "Date", "Status", "Currency", "Amount",
	"Amount (MYR)", "% of Total", "Cumulative %",
}

type ExportService interface {
	// ProjectLedger returns an xlsx workbook of the project's purchase order
	// revisions and invoice chain, with a suggested file name.
	ProjectLedger(ctx context.Context, projectCode string) (*excelize.File, string, error)
}

type exportService struct {
	projectRepo repository.ProjectRepository
	poRepo      repository.PurchaseOrderRepository
	invoiceRepo repository.InvoiceRepository
}

func NewExportService(
	projectRepo repository.ProjectRepository,
	poRepo repository.PurchaseOrderRepository,
	invoiceRepo repository.InvoiceRepository,
) ExportService {
	return &exportService{projectRepo: projectRepo, poRepo: poRepo, invoiceRepo: invoiceRepo}
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) {
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}

func (s *exportService) ProjectLedger(ctx context.Context, projectCode string) (*excelize.File, string, error) {
	project, err := s.projectRepo.FindByCode(ctx, projectCode)
	if err != nil {
		return nil, "", lookupErr(err, "project %s not found", projectCode)
	}
	pos, err := s.poRepo.ListByProject(ctx, project.Code)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load purchase orders: %w", err)
	}
	invoices, err := s.invoiceRepo.ListBySequence(ctx, project.Code)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load invoices: %w", err)
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetPurchaseOrders)
	if _, err := f.NewSheet(sheetInvoices); err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	writeHeader(f, sheetPurchaseOrders, poLedgerHeaders, headerStyle)
	writeHeader(f, sheetInvoices, invoiceLedgerHeaders, headerStyle)

	for i, po := range pos {
		row := i + 2
		source := ""
		if po.ExchangeRateSource != nil {
			source = *po.ExchangeRateSource
		}
		adjusted := ""
		if po.AmountMYRAdjusted.Valid {
			adjusted = po.AmountMYRAdjusted.Decimal.StringFixed(2)
		}
		values := []interface{}{
			po.PONumber, po.PONumberBase, po.RevisionNumber, po.IsActive, po.Status,
			po.ReceivedDate.Format("2006-01-02"), po.Currency,
			po.Amount.InexactFloat64(), po.ExchangeRate.InexactFloat64(), source,
			po.AmountMYR.InexactFloat64(), adjusted, po.EffectiveAmountMYR().InexactFloat64(), po.RevisionReason,
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheetPurchaseOrders, cell, &values); err != nil {
			return nil, "", fmt.Errorf("failed to write purchase order row: %w", err)
		}
	}

	for i, inv := range invoices {
		row := i + 2
		values := []interface{}{
			inv.InvoiceSequence, inv.InvoiceNumber, inv.InvoiceDate.Format("2006-01-02"), inv.Status,
			inv.Currency, inv.Amount.InexactFloat64(), inv.AmountMYR.InexactFloat64(),
			inv.PercentageOfTotal.InexactFloat64(), inv.CumulativePercentage.InexactFloat64(),
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheetInvoices, cell, &values); err != nil {
			return nil, "", fmt.Errorf("failed to write invoice row: %w", err)
		}
	}

	f.SetColWidth(sheetPurchaseOrders, "A", "A", 22)
	f.SetColWidth(sheetPurchaseOrders, "N", "N", 30)
	f.SetColWidth(sheetInvoices, "B", "B", 22)

	return f, fmt.Sprintf("%s_ledger.xlsx", project.Code), nil
}
