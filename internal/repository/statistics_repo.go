package repository

import (
	"context"
	"time"

	"backoffice/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceTotals sums invoice MYR amounts in a range; cancelled invoices are excluded.
type InvoiceTotals struct {
	Invoiced  decimal.Decimal
	Collected decimal.Decimal
}

type VendorTotals struct {
	Cost decimal.Decimal
	Paid decimal.Decimal
}

type StatisticsRepository interface {
	CountProjectsByStatus(ctx context.Context) (map[string]int64, error)
	SumActivePurchaseOrders(ctx context.Context, start, end time.Time) (decimal.Decimal, int64, error)
	SumInvoices(ctx context.Context, start, end time.Time) (InvoiceTotals, error)
	SumVendorCosts(ctx context.Context, start, end time.Time) (VendorTotals, error)
	TopClients(ctx context.Context, start, end time.Time, limit int) ([]model.ClientRanking, error)
	RevenueSeries(ctx context.Context, groupBy string, start, end time.Time) ([]model.RevenuePoint, error)
}

type statisticsRepository struct {
	db *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{db: db}
}

// effectiveMYR prefers the manual adjustment over the converted amount.
const effectiveMYR = "COALESCE(purchase_orders.amount_myr_adjusted, purchase_orders.amount_myr)"

func (r *statisticsRepository) CountProjectsByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := GetDB(ctx, r.db).Model(&model.Project{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[string]int64{
		model.ProjectStatusPreLim:    0,
		model.ProjectStatusOngoing:   0,
		model.ProjectStatusCompleted: 0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *statisticsRepository) SumActivePurchaseOrders(ctx context.Context, start, end time.Time) (decimal.Decimal, int64, error) {
	var row struct {
		Value decimal.Decimal
		Total int64
	}
	err := GetDB(ctx, r.db).Table("purchase_orders").
		Select("COALESCE(SUM("+effectiveMYR+"), 0) AS value, COUNT(*) AS total").
		Where("is_active = ? AND received_date >= ? AND received_date <= ?", true, start, end).
		Scan(&row).Error
	return row.Value, row.Total, err
}

func (r *statisticsRepository) SumInvoices(ctx context.Context, start, end time.Time) (InvoiceTotals, error) {
	var row struct {
		Invoiced  decimal.Decimal
		Collected decimal.Decimal
	}
	err := GetDB(ctx, r.db).Table("invoices").
		Select("COALESCE(SUM(amount_myr), 0) AS invoiced, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN amount_myr ELSE 0 END), 0) AS collected", model.InvoiceStatusPaid).
		Where("status <> ? AND invoice_date >= ? AND invoice_date <= ?", model.InvoiceStatusCancelled, start, end).
		Scan(&row).Error
	return InvoiceTotals{Invoiced: row.Invoiced, Collected: row.Collected}, err
}

func (r *statisticsRepository) SumVendorCosts(ctx context.Context, start, end time.Time) (VendorTotals, error) {
	var cost struct{ Value decimal.Decimal }
	err := GetDB(ctx, r.db).Table("issued_pos").
		Select("COALESCE(SUM(amount_myr), 0) AS value").
		Where("issue_date >= ? AND issue_date <= ?", start, end).
		Scan(&cost).Error
	if err != nil {
		return VendorTotals{}, err
	}

	var paid struct{ Value decimal.Decimal }
	err = GetDB(ctx, r.db).Table("received_invoices").
		Select("COALESCE(SUM(amount_myr), 0) AS value").
		Where("status = ? AND received_date >= ? AND received_date <= ?", model.ReceivedInvoiceStatusPaid, start, end).
		Scan(&paid).Error
	return VendorTotals{Cost: cost.Value, Paid: paid.Value}, err
}

func (r *statisticsRepository) TopClients(ctx context.Context, start, end time.Time, limit int) ([]model.ClientRanking, error) {
	var rankings []model.ClientRanking
	err := GetDB(ctx, r.db).Table("purchase_orders").
		Select("companies.id AS company_id, companies.name AS company_name, COUNT(purchase_orders.id) AS po_count, SUM("+effectiveMYR+") AS total_myr").
		Joins("JOIN projects ON projects.code = purchase_orders.project_code").
		Joins("JOIN companies ON companies.id = projects.company_id").
		Where("purchase_orders.is_active = ? AND purchase_orders.received_date >= ? AND purchase_orders.received_date <= ?", true, start, end).
		Group("companies.id, companies.name").
		Order("total_myr DESC").
		Limit(limit).
		Scan(&rankings).Error
	return rankings, err
}

// RevenueSeries buckets invoices and vendor costs with DATE_TRUNC. groupBy must
// already be one of week, month, quarter or year.
func (r *statisticsRepository) RevenueSeries(ctx context.Context, groupBy string, start, end time.Time) ([]model.RevenuePoint, error) {
	query := `
		WITH invoiced AS (
			SELECT DATE_TRUNC(@group, i.invoice_date) AS bucket,
				SUM(i.amount_myr) AS invoiced,
				SUM(CASE WHEN i.status = @paid THEN i.amount_myr ELSE 0 END) AS collected
			FROM invoices i
			WHERE i.status <> @cancelled AND i.invoice_date >= @start AND i.invoice_date <= @end
			GROUP BY 1
		), vendor AS (
			SELECT DATE_TRUNC(@group, p.issue_date) AS bucket, SUM(p.amount_myr) AS cost
			FROM issued_pos p
			WHERE p.issue_date >= @start AND p.issue_date <= @end
			GROUP BY 1
		)
		SELECT TO_CHAR(COALESCE(invoiced.bucket, vendor.bucket), 'YYYY-MM-DD') AS period,
			COALESCE(invoiced.invoiced, 0) AS invoiced_myr,
			COALESCE(invoiced.collected, 0) AS collected_myr,
			COALESCE(vendor.cost, 0) AS vendor_cost_myr
		FROM invoiced
		FULL OUTER JOIN vendor ON vendor.bucket = invoiced.bucket
		ORDER BY period
	`

	var points []model.RevenuePoint
	err := GetDB(ctx, r.db).Raw(query, map[string]interface{}{
		"group":     groupBy,
		"paid":      model.InvoiceStatusPaid,
		"cancelled": model.InvoiceStatusCancelled,
		"start":     start,
		"end":       end,
	}).Scan(&points).Error
	return points, err
}
