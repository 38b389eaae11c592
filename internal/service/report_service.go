package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"shopfront/internal/model"
	"shopfront/internal/report"
	"shopfront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// salesReportService implements SalesReportService.
type salesReportService struct {
	reportRepo repository.SalesReportRepository
	orderRepo  repository.OrderRepository
	store      report.Store
	logger     zerolog.Logger
}

// NewSalesReportService creates a new sales report service.
func NewSalesReportService(
	reportRepo repository.SalesReportRepository,
	orderRepo repository.OrderRepository,
	store report.Store,
	logger zerolog.Logger,
) SalesReportService {
	return &salesReportService{
		reportRepo: reportRepo,
		orderRepo:  orderRepo,
		store:      store,
		logger:     logger.With().Str("service", "sales_report").Logger(),
	}
}

// Create aggregates paid orders in the period into a CSV file and records
// the report. A period with no paid orders yields a not-found error.
func (s *salesReportService) Create(ctx context.Context, req *model.SalesReportRequest) (*model.SalesReport, error) {
	if req == nil || req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, model.NewValidationError("startDate and endDate are required")
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, model.NewValidationError("endDate must not be before startDate")
	}

	orders, err := s.orderRepo.GetPaidBetween(ctx, req.StartDate, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}
	if len(orders) == 0 {
		return nil, model.NewDomainError(model.ErrCodeNotFound, "no paid orders found in the requested period")
	}

	totalSales := decimal.Zero
	productsSold := 0
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Order ID", "Product ID", "Quantity", "Subtotal", "Created At"}); err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}
	for _, order := range orders {
		totalSales = totalSales.Add(order.Total)
		for _, item := range order.Items {
			productsSold += item.Quantity
			record := []string{
				strconv.FormatInt(order.ID, 10),
				strconv.FormatInt(item.ProductID, 10),
				strconv.Itoa(item.Quantity),
				item.Subtotal.StringFixed(2),
				order.OrderDate.Format(time.RFC3339),
			}
			if err := w.Write(record); err != nil {
				return nil, fmt.Errorf("failed to generate report: %w", err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}

	name := fmt.Sprintf("sales_report_%s.csv", uuid.NewString())
	path, err := s.store.Save(ctx, name, buf.Bytes())
	if err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to store report file")
		return nil, fmt.Errorf("failed to store report file: %w", err)
	}

	rep := &model.SalesReport{
		Period:       req.StartDate,
		TotalSales:   totalSales,
		ProductsSold: productsSold,
		FilePath:     path,
	}

	if err := s.reportRepo.Create(ctx, rep); err != nil {
		return nil, fmt.Errorf("failed to record report: %w", err)
	}

	s.logger.Info().
		Int64("report_id", rep.ID).
		Str("total_sales", totalSales.String()).
		Int("products_sold", productsSold).
		Int("order_count", len(orders)).
		Msg("sales report generated")

	return rep, nil
}

// GetByID retrieves a report record.
func (s *salesReportService) GetByID(ctx context.Context, id int64) (*model.SalesReport, error) {
	rep, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	if rep == nil {
		return nil, model.NewNotFound("SalesReport", id)
	}
	return rep, nil
}

// GetAll retrieves all report records, newest first.
func (s *salesReportService) GetAll(ctx context.Context) ([]model.SalesReport, error) {
	reports, err := s.reportRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// Download opens the CSV file behind a report for streaming.
func (s *salesReportService) Download(ctx context.Context, id int64) (io.ReadCloser, *model.SalesReport, error) {
	rep, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.store.Open(ctx, rep.FilePath)
	if err != nil {
		s.logger.Error().Err(err).Int64("report_id", id).Str("path", rep.FilePath).Msg("failed to open report file")
		return nil, nil, fmt.Errorf("failed to open report file: %w", err)
	}

	return rc, rep, nil
}
