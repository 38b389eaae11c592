package repository

import (
	"context"
	"fmt"

	"shopfront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// salesReportRepository implements SalesReportRepository using PostgreSQL.
type salesReportRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewSalesReportRepository creates a new PostgreSQL-backed sales report repository.
func NewSalesReportRepository(pool *pgxpool.Pool, logger zerolog.Logger) SalesReportRepository {
	return &salesReportRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "sales_report").Logger(),
	}
}

func (r *salesReportRepository) Create(ctx context.Context, report *model.SalesReport) error {
	query := `
		INSERT INTO sales_reports (period, total_sales, products_sold, file_path)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		report.Period, report.TotalSales, report.ProductsSold, report.FilePath,
	).Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to create sales report")
		return fmt.Errorf("failed to create sales report: %w", err)
	}

	r.logger.Debug().Int64("report_id", report.ID).Msg("sales report created successfully")

	return nil
}

func (r *salesReportRepository) GetByID(ctx context.Context, id int64) (*model.SalesReport, error) {
	query := `
		SELECT id, period, total_sales, products_sold, file_path, created_at
		FROM sales_reports
		WHERE id = $1
	`

	var report model.SalesReport
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&report.ID, &report.Period, &report.TotalSales,
		&report.ProductsSold, &report.FilePath, &report.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("report_id", id).Msg("sales report not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("report_id", id).Msg("failed to query sales report")
		return nil, fmt.Errorf("failed to query sales report: %w", err)
	}

	return &report, nil
}

func (r *salesReportRepository) GetAll(ctx context.Context) ([]model.SalesReport, error) {
	query := `
		SELECT id, period, total_sales, products_sold, file_path, created_at
		FROM sales_reports
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query sales reports")
		return nil, fmt.Errorf("failed to query sales reports: %w", err)
	}
	defer rows.Close()

	var reports []model.SalesReport
	for rows.Next() {
		var report model.SalesReport
		err := rows.Scan(
			&report.ID, &report.Period, &report.TotalSales,
			&report.ProductsSold, &report.FilePath, &report.CreatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan sales report row")
			return nil, fmt.Errorf("failed to scan sales report: %w", err)
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating sales report rows")
		return nil, fmt.Errorf("error iterating sales reports: %w", err)
	}

	return reports, nil
}
