package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatisticsResponse aggregates project counts and MYR totals over a date range
type StatisticsResponse struct {
	ProjectsByStatus   map[string]int64 `json:"projects_by_status"`
	POValueMYR         decimal.Decimal  `json:"po_value_myr"`
	POCount            int64            `json:"po_count"`
	InvoicedMYR        decimal.Decimal  `json:"invoiced_myr"`
	CollectedMYR       decimal.Decimal  `json:"collected_myr"`
	OutstandingMYR     decimal.Decimal  `json:"outstanding_myr"`
	VendorCostMYR      decimal.Decimal  `json:"vendor_cost_myr"`
	VendorPaidMYR      decimal.Decimal  `json:"vendor_paid_myr"`
	GrossMarginMYR     decimal.Decimal  `json:"gross_margin_myr"`
	TopClients         []ClientRanking  `json:"top_clients"`
	TimeRangeStartDate time.Time        `json:"time_range_start_date"`
	TimeRangeEndDate   time.Time        `json:"time_range_end_date"`
}

// ClientRanking ranks a client by the effective MYR value of its active purchase orders
type ClientRanking struct {
	CompanyID   uuid.UUID       `json:"company_id"`
	CompanyName string          `json:"company_name"`
	POCount     int64           `json:"po_count"`
	TotalMYR    decimal.Decimal `json:"total_myr"`
}

// RevenuePoint is one period of the revenue time series.
type RevenuePoint struct {
	Period        string          `json:"period"`
	InvoicedMYR   decimal.Decimal `json:"invoiced_myr"`
	CollectedMYR  decimal.Decimal `json:"collected_myr"`
	VendorCostMYR decimal.Decimal `json:"vendor_cost_myr"`
}
