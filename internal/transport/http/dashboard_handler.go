package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"ecompulse/internal/analytics"
	apierrors "ecompulse/internal/errors"
	"ecompulse/internal/services"
	"ecompulse/pkg/contracts/domain"
)

// dateLayout is the wire format for the from/to query parameters.
const dateLayout = "2006-01-02"

// DashboardHandler serves the dashboard aggregate endpoints.
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewDashboardHandler creates a dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the dashboard routes
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/summary", h.GetSummary)
	r.Get("/daily-orders", h.GetDailyOrders)
	r.Get("/product-sales", h.GetProductSales)
	r.Get("/review-scores", h.GetReviewScores)
	r.Get("/rfm", h.GetRFM)

	r.Route("/customers", func(r chi.Router) {
		r.Get("/states", h.GetCustomersByState)
		r.Get("/cities", h.GetCustomersByCity)
	})

	return r
}

// rangeRequest carries the raw from/to query parameters.
type rangeRequest struct {
	From string `validate:"omitempty,datetime=2006-01-02"`
	To   string `validate:"omitempty,datetime=2006-01-02"`
}

// parseRange validates and parses the from/to parameters, defaulting each
// missing bound to the matching edge of the dataset's own range.
func (h *DashboardHandler) parseRange(r *http.Request) (analytics.DateRange, error) {
	req := rangeRequest{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}

	if err := h.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			field := fieldErrs[0].Field()
			return analytics.DateRange{}, apierrors.ErrValidation(field, "must be a YYYY-MM-DD date")
		}
		return analytics.DateRange{}, apierrors.InvalidRequestWithError(err)
	}

	bounds := h.service.Bounds()
	start, end := bounds.Start, bounds.End

	if req.From != "" {
		start, _ = time.Parse(dateLayout, req.From)
	}
	if req.To != "" {
		end, _ = time.Parse(dateLayout, req.To)
	}

	window := analytics.NewDateRange(start, end)
	if !window.IsValid() {
		return analytics.DateRange{}, apierrors.ErrInvalidDateRange
	}
	return window, nil
}

// snapshotFor resolves the range and computes a snapshot, translating service
// errors into API errors.
func (h *DashboardHandler) snapshotFor(r *http.Request) (*analytics.Snapshot, error) {
	window, err := h.parseRange(r)
	if err != nil {
		return nil, err
	}

	snap, err := h.service.Snapshot(r.Context(), window)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRange) {
			return nil, apierrors.ErrInvalidDateRange
		}
		return nil, err
	}
	return snap, nil
}

// GetSummary handles GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	window, err := h.parseRange(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	summary, err := h.service.Summary(r.Context(), window)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRange) {
			err = apierrors.ErrInvalidDateRange
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, summary)
}

// GetDailyOrders handles GET /api/dashboard/daily-orders
func (h *DashboardHandler) GetDailyOrders(w http.ResponseWriter, r *http.Request) {
	snap, err := h.snapshotFor(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"window": snap.Window,
		"rows":   snap.DailyOrders,
	})
}

// GetProductSales handles GET /api/dashboard/product-sales. The optional
// order=asc parameter flips the table to worst-selling first; limit caps the
// row count, so limit=5&order=asc is the worst-performers view.
func (h *DashboardHandler) GetProductSales(w http.ResponseWriter, r *http.Request) {
	snap, err := h.snapshotFor(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	order := r.URL.Query().Get("order")
	if order != "" && order != "asc" && order != "desc" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("order", "must be asc or desc"))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("limit", "must be a positive integer"))
			return
		}
	}

	rows := snap.ProductSales
	if order == "asc" || limit > 0 {
		rows = services.RankProductSales(rows, limit, order == "asc")
	}

	render.JSON(w, r, map[string]interface{}{
		"window": snap.Window,
		"rows":   rows,
	})
}

// GetReviewScores handles GET /api/dashboard/review-scores
func (h *DashboardHandler) GetReviewScores(w http.ResponseWriter, r *http.Request) {
	snap, err := h.snapshotFor(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"window": snap.Window,
		"rows":   snap.ReviewScores,
	})
}

// GetCustomersByState handles GET /api/dashboard/customers/states
func (h *DashboardHandler) GetCustomersByState(w http.ResponseWriter, r *http.Request) {
	h.geographic(w, r, func(snap *analytics.Snapshot) []domain.CustomerCountRow {
		return snap.CustomersByState
	})
}

// GetCustomersByCity handles GET /api/dashboard/customers/cities
func (h *DashboardHandler) GetCustomersByCity(w http.ResponseWriter, r *http.Request) {
	h.geographic(w, r, func(snap *analytics.Snapshot) []domain.CustomerCountRow {
		return snap.CustomersByCity
	})
}

// geographic serves a customer-count table with an optional top-N limit.
func (h *DashboardHandler) geographic(w http.ResponseWriter, r *http.Request, pick func(*analytics.Snapshot) []domain.CustomerCountRow) {
	snap, err := h.snapshotFor(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	rows := pick(snap)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("limit", "must be a positive integer"))
			return
		}
		rows = services.TopCustomerCounts(rows, limit)
	}

	render.JSON(w, r, map[string]interface{}{
		"window": snap.Window,
		"rows":   rows,
	})
}

// GetRFM handles GET /api/dashboard/rfm
func (h *DashboardHandler) GetRFM(w http.ResponseWriter, r *http.Request) {
	snap, err := h.snapshotFor(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"window": snap.Window,
		"rows":   snap.RFM,
	})
}
