package service

import (
	"context"
	"fmt"
	"time"

	"backoffice/internal/apperror"
	"backoffice/internal/model"
	"backoffice/internal/repository"
)

const topClientLimit = 5

var revenueGroupings = map[string]bool{"week": true, "month": true, "quarter": true, "year": true}

type StatisticsService interface {
	GetStatistics(ctx context.Context, startDate, endDate time.Time) (model.StatisticsResponse, error)
	GetRevenueSeries(ctx context.Context, groupBy string, startDate, endDate time.Time) ([]model.RevenuePoint, error)
}

type statisticsService struct {
	repo repository.StatisticsRepository
}

func NewStatisticsService(repo repository.StatisticsRepository) StatisticsService {
	return &statisticsService{repo: repo}
}

func checkRange(startDate, endDate time.Time) error {
	if endDate.Before(startDate) {
		return apperror.Validation("end_date must not be before start_date")
	}
	return nil
}

// GetStatistics aggregates dashboard totals for the range. Project counts are
// not bounded by the range.
func (s *statisticsService) GetStatistics(ctx context.Context, startDate, endDate time.Time) (model.StatisticsResponse, error) {
	if err := checkRange(startDate, endDate); err != nil {
		return model.StatisticsResponse{}, err
	}
	response := model.StatisticsResponse{TimeRangeStartDate: startDate, TimeRangeEndDate: endDate}

	counts, err := s.repo.CountProjectsByStatus(ctx)
	if err != nil {
		return response, fmt.Errorf("failed to count projects: %w", err)
	}
	response.ProjectsByStatus = counts

	response.POValueMYR, response.POCount, err = s.repo.SumActivePurchaseOrders(ctx, startDate, endDate)
	if err != nil {
		return response, fmt.Errorf("failed to sum purchase orders: %w", err)
	}

	invoices, err := s.repo.SumInvoices(ctx, startDate, endDate)
	if err != nil {
		return response, fmt.Errorf("failed to sum invoices: %w", err)
	}
	response.InvoicedMYR = invoices.Invoiced
	response.CollectedMYR = invoices.Collected
	response.OutstandingMYR = invoices.Invoiced.Sub(invoices.Collected)

	vendor, err := s.repo.SumVendorCosts(ctx, startDate, endDate)
	if err != nil {
		return response, fmt.Errorf("failed to sum vendor costs: %w", err)
	}
	response.VendorCostMYR = vendor.Cost
	response.VendorPaidMYR = vendor.Paid

	// Margin = invoiced - vendor cost
	response.GrossMarginMYR = response.InvoicedMYR.Sub(response.VendorCostMYR)

	clients, err := s.repo.TopClients(ctx, startDate, endDate, topClientLimit)
	if err != nil {
		return response, fmt.Errorf("failed to rank clients: %w", err)
	}
	if clients == nil {
		clients = []model.ClientRanking{}
	}
	response.TopClients = clients

	return response, nil
}

// GetRevenueSeries defaults groupBy to month when it is not a known bucket.
func (s *statisticsService) GetRevenueSeries(ctx context.Context, groupBy string, startDate, endDate time.Time) ([]model.RevenuePoint, error) {
	if err := checkRange(startDate, endDate); err != nil {
		return nil, err
	}
	if !revenueGroupings[groupBy] {
		groupBy = "month"
	}

	points, err := s.repo.RevenueSeries(ctx, groupBy, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue statistics: %w", err)
	}
	if points == nil {
		points = []model.RevenuePoint{}
	}
	return points, nil
}
