package handler

import (
	"fmt"
	"io"
	"net/http"
	"path"

	"shopfront/internal/model"
	"shopfront/internal/service"

	"github.com/rs/zerolog"
)

// SalesReportHandler handles sales report HTTP requests. All report
// endpoints are admin only.
type SalesReportHandler struct {
	service service.SalesReportService
	logger  zerolog.Logger
}

// NewSalesReportHandler creates a new sales report handler.
func NewSalesReportHandler(service service.SalesReportService, logger zerolog.Logger) *SalesReportHandler {
	return &SalesReportHandler{
		service: service,
		logger:  logger.With().Str("handler", "sales_report").Logger(),
	}
}

// Create handles POST /api/sales-reports requests.
func (h *SalesReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	var req model.SalesReportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	report, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, report)
}

// GetAll handles GET /api/sales-reports requests.
func (h *SalesReportHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	reports, err := h.service.GetAll(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, reports)
}

// GetByID handles GET /api/sales-reports/{id} requests.
func (h *SalesReportHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	report, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// Download handles GET /api/sales-reports/{id}/download requests, streaming
// the report CSV.
func (h *SalesReportHandler) Download(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	rc, report, err := h.service.Download(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", path.Base(report.FilePath)))

	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Error().Err(err).Int64("report_id", id).Msg("failed to stream report")
	}
}
