package service

import (
	"context"

	"admin-gateway/internal/report"
	"admin-gateway/internal/util"
)

// SalesReport fetches the flat sales rows and aggregates them. The
// aggregation itself is pure and never fails; only the upstream fetch can.
func (s *AdminService) SalesReport(ctx context.Context) (*report.SalesSummary, error) {
	ctx, span := util.StartSpan(ctx, "AdminService.SalesReport")
	defer span.End()

	rows, err := s.gateway.SalesRows(ctx)
	if err != nil {
		return nil, err
	}
	util.ReportRowsTotal.WithLabelValues("sales").Add(float64(len(rows)))

	summary := report.BuildSales(rows)
	util.ReportsGeneratedTotal.WithLabelValues("sales").Inc()
	return &summary, nil
}

// StockReport fetches the flat stock rows and aggregates them.
func (s *AdminService) StockReport(ctx context.Context) (*report.StockSummary, error) {
	ctx, span := util.StartSpan(ctx, "AdminService.StockReport")
	defer span.End()

	rows, err := s.gateway.StockRows(ctx)
	if err != nil {
		return nil, err
	}
	util.ReportRowsTotal.WithLabelValues("stock").Add(float64(len(rows)))

	summary := report.BuildStock(rows)
	util.ReportsGeneratedTotal.WithLabelValues("stock").Inc()
	return &summary, nil
}
