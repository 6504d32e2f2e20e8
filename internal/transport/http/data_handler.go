package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "scanpulse/internal/errors"
	"scanpulse/internal/exporter"
	"scanpulse/internal/middleware"
	"scanpulse/internal/services"
)

// DataHandler serves the scan dataset and its analytics with RFC 7807
// error responses.
type DataHandler struct {
	service      DataServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDataHandler creates a new data handler.
func NewDataHandler(service DataServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	return &DataHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "data_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the data routes with proper Chi patterns.
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Route("/scans", func(r chi.Router) {
		r.Get("/dates", h.GetScanDates)
		r.Get("/latest", h.GetLatestScan)

		r.Route("/{date}", func(r chi.Router) {
			r.Use(h.DateCtx)
			r.Get("/", h.GetScan)
			r.Get("/movers", h.GetMovers)
			r.Get("/momentum-map", h.GetMomentumMap)
		})
	})

	r.Get("/sectors", h.GetSectors)
	r.Get("/sectors/trend", h.GetSectorTrend)
	r.Get("/summary", h.GetSummary)

	r.Get("/exports/csv", h.ExportCSV)
	r.Get("/exports/xlsx", h.ExportExcel)

	return r
}

// DateCtx validates the date URL parameter before the handlers run.
func (h *DataHandler) DateCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		date := chi.URLParam(r, "date")
		if date == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("date", "Scan date is required"))
			return
		}

		if _, err := time.Parse("2006-01-02", date); err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("date", "Scan date must use the YYYY-MM-DD format"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetScanDates handles GET /api/scans/dates.
func (h *DataHandler) GetScanDates(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	h.logger.InfoContext(r.Context(), "fetching scan dates",
		slog.String("request_id", reqID),
	)

	dates, err := h.service.GetScanDates(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   dates,
		"count":  len(dates),
	})
}

// GetLatestScan handles GET /api/scans/latest.
func (h *DataHandler) GetLatestScan(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	h.logger.InfoContext(r.Context(), "fetching latest scan",
		slog.String("request_id", reqID),
	)

	scan, err := h.service.GetLatestScan(r.Context())
	if err != nil {
		if errors.Is(err, services.ErrNoScanData) {
			// An empty dataset is an empty dashboard, not an error page
			render.JSON(w, r, map[string]interface{}{
				"status": "success",
				"data":   &services.ScanView{},
				"count":  0,
			})
			return
		}

		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   scan,
		"count":  len(scan.Rows),
	})
}

// GetScan handles GET /api/scans/{date}.
func (h *DataHandler) GetScan(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	date := chi.URLParam(r, "date")

	h.logger.InfoContext(r.Context(), "fetching scan",
		slog.String("request_id", reqID),
		slog.String("date", date),
	)

	scan, err := h.service.GetScan(r.Context(), date)
	if err != nil {
		h.handleScanError(w, r, err, date)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   scan,
		"count":  len(scan.Rows),
	})
}

// GetMovers handles GET /api/scans/{date}/movers.
func (h *DataHandler) GetMovers(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	date := chi.URLParam(r, "date")

	limitStr := r.URL.Query().Get("limit")
	limit := 0
	if limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > 100 {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("limit", "Limit must be a number between 1 and 100"))
			return
		}
	}

	h.logger.InfoContext(r.Context(), "fetching momentum movers",
		slog.String("request_id", reqID),
		slog.String("date", date),
		slog.Int("limit", limit),
	)

	movers, err := h.service.GetMovers(r.Context(), date, limit)
	if err != nil {
		h.handleScanError(w, r, err, date)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   movers,
		"count":  len(movers),
		"date":   date,
	})
}

// GetMomentumMap handles GET /api/scans/{date}/momentum-map.
func (h *DataHandler) GetMomentumMap(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	date := chi.URLParam(r, "date")

	h.logger.InfoContext(r.Context(), "fetching momentum map",
		slog.String("request_id", reqID),
		slog.String("date", date),
	)

	points, err := h.service.GetMomentumMap(r.Context(), date)
	if err != nil {
		h.handleScanError(w, r, err, date)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   points,
		"count":  len(points),
		"date":   date,
	})
}

// GetSectors handles GET /api/sectors.
func (h *DataHandler) GetSectors(w http.ResponseWriter, r *http.Request) {
	sectors, err := h.service.GetSectors(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   sectors,
		"count":  len(sectors),
	})
}

// GetSectorTrend handles GET /api/sectors/trend with an optional
// comma-separated sectors filter.
func (h *DataHandler) GetSectorTrend(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	var sectors []string
	if raw := r.URL.Query().Get("sectors"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				sectors = append(sectors, s)
			}
		}
	}

	h.logger.InfoContext(r.Context(), "fetching sector trend",
		slog.String("request_id", reqID),
		slog.Int("sectors", len(sectors)),
	)

	trend, err := h.service.GetSectorTrend(r.Context(), sectors)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   trend,
		"count":  len(trend),
	})
}

// GetSummary handles GET /api/summary.
func (h *DataHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetSummary(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}

// ExportCSV handles GET /api/exports/csv, streaming the merged dataset.
func (h *DataHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	h.logger.InfoContext(r.Context(), "exporting dataset as csv",
		slog.String("request_id", reqID),
	)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="scan_dataset.csv"`)

	if err := exporter.WriteDatasetCSV(w, h.service.Dataset()); err != nil {
		h.logger.ErrorContext(r.Context(), "csv export failed",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
	}
}

// ExportExcel handles GET /api/exports/xlsx, streaming the workbook.
func (h *DataHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	h.logger.InfoContext(r.Context(), "exporting dataset as xlsx",
		slog.String("request_id", reqID),
	)

	summary, err := h.service.GetSummary(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="scan_dataset.xlsx"`)

	if err := exporter.WriteWorkbook(w, h.service.Dataset(), summary); err != nil {
		h.logger.ErrorContext(r.Context(), "xlsx export failed",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
	}
}

// handleScanError maps service sentinels onto problem responses.
func (h *DataHandler) handleScanError(w http.ResponseWriter, r *http.Request, err error, date string) {
	h.logger.ErrorContext(r.Context(), "scan query failed",
		slog.String("error", err.Error()),
		slog.String("date", date),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	switch {
	case errors.Is(err, services.ErrScanNotFound):
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusNotFound,
			"SCAN_NOT_FOUND",
			fmt.Sprintf("No scan exists for %s", date),
			map[string]interface{}{"date": date},
		))
	case errors.Is(err, services.ErrInvalidDate):
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("date", "Scan date must use the YYYY-MM-DD format"))
	default:
		h.errorHandler.HandleError(w, r, err)
	}
}
