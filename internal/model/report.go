package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesReport summarises paid orders within a period; the generated CSV
// is addressed by FilePath.
type SalesReport struct {
	ID           int64           `json:"id" db:"id"`
	Period       time.Time       `json:"period" db:"period"`
	TotalSales   decimal.Decimal `json:"totalSales" db:"total_sales"`
	ProductsSold int             `json:"productsSold" db:"products_sold"`
	FilePath     string          `json:"filePath" db:"file_path"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
}

// SalesReportRequest is the payload for generating a report.
type SalesReportRequest struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}
