package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecompulse/internal/analytics"
	apierrors "ecompulse/internal/errors"
	"ecompulse/internal/services"
	"ecompulse/pkg/contracts/domain"
)

// stubService implements DashboardServiceInterface over a fixed table.
type stubService struct {
	table []domain.OrderLine
}

func (s *stubService) Bounds() analytics.DateRange {
	bounds, _ := analytics.DataBounds(s.table)
	return bounds
}

func (s *stubService) Snapshot(ctx context.Context, window analytics.DateRange) (*analytics.Snapshot, error) {
	if !window.IsValid() {
		return nil, services.ErrInvalidRange
	}
	return analytics.Compute(ctx, analytics.Filter(s.table, window), window), nil
}

func (s *stubService) Summary(ctx context.Context, window analytics.DateRange) (*domain.DashboardSummary, error) {
	snap, err := s.Snapshot(ctx, window)
	if err != nil {
		return nil, err
	}
	summary := &domain.DashboardSummary{From: window.Start, To: window.End}
	for _, row := range snap.DailyOrders {
		summary.TotalOrders += row.OrderCount
		summary.TotalRevenue += row.Revenue
	}
	return summary, nil
}

// testTable is the two-order fixture.
func testTable(t *testing.T) []domain.OrderLine {
	t.Helper()
	parse := func(s string) time.Time {
		ts, err := time.Parse("2006-01-02 15:04:05", s)
		require.NoError(t, err)
		return ts
	}
	return []domain.OrderLine{
		{OrderID: "A", OrderItemID: 1, ProductCategory: "beleza_saude", CustomerID: "c1",
			CustomerState: "SP", CustomerCity: "sao paulo", ReviewScore: 5, Price: 10.00,
			PurchaseTimestamp: parse("2024-01-01 10:00:00")},
		{OrderID: "A", OrderItemID: 1, ProductCategory: "beleza_saude", CustomerID: "c1",
			CustomerState: "SP", CustomerCity: "sao paulo", ReviewScore: 5, Price: 5.00,
			PurchaseTimestamp: parse("2024-01-01 10:00:00")},
		{OrderID: "B", OrderItemID: 1, ProductCategory: "esporte_lazer", CustomerID: "c2",
			CustomerState: "RJ", CustomerCity: "rio de janeiro", ReviewScore: 4, Price: 20.00,
			PurchaseTimestamp: parse("2024-01-03 18:30:00")},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.Default()
	handler := NewDashboardHandler(&stubService{table: testTable(t)}, logger, apierrors.NewErrorHandler(logger))
	return handler.Routes()
}

// TestDashboardHandler tests the aggregate endpoints end to end
func TestDashboardHandler(t *testing.T) {
	router := newTestRouter(t)

	get := func(t *testing.T, path string) *httptest.ResponseRecorder {
		t.Helper()
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	t.Run("daily orders default to full range", func(t *testing.T) {
		w := get(t, "/daily-orders")
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Rows []domain.DailyOrdersRow `json:"rows"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Rows, 2)
		assert.Equal(t, 1, body.Rows[0].OrderCount)
		assert.InDelta(t, 15.00, body.Rows[0].Revenue, 1e-9)
	})

	t.Run("explicit range narrows the series", func(t *testing.T) {
		w := get(t, "/daily-orders?from=2024-01-03&to=2024-01-03")
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Rows []domain.DailyOrdersRow `json:"rows"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Rows, 1)
		assert.InDelta(t, 20.00, body.Rows[0].Revenue, 1e-9)
	})

	t.Run("rfm table", func(t *testing.T) {
		w := get(t, "/rfm")
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Rows []domain.RFMRow `json:"rows"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Rows, 2)

		recency := map[string]int{}
		for _, row := range body.Rows {
			recency[row.CustomerState] = row.Recency
		}
		assert.Equal(t, 2, recency["SP"])
		assert.Equal(t, 0, recency["RJ"])
	})

	t.Run("summary totals", func(t *testing.T) {
		w := get(t, "/summary")
		require.Equal(t, http.StatusOK, w.Code)

		var body domain.DashboardSummary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 2, body.TotalOrders)
		assert.InDelta(t, 35.00, body.TotalRevenue, 1e-9)
	})

	t.Run("customer states with limit", func(t *testing.T) {
		w := get(t, "/customers/states?limit=1")
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Rows []domain.CustomerCountRow `json:"rows"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Rows, 1)
	})

	t.Run("product sales worst performers", func(t *testing.T) {
		w := get(t, "/product-sales?order=asc&limit=1")
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Rows []domain.ProductSalesRow `json:"rows"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Rows, 1)
		// Order B's single line sells less than Order A's two.
		assert.Equal(t, "esporte_lazer", body.Rows[0].Category)
	})

	t.Run("product sales bad order rejected", func(t *testing.T) {
		w := get(t, "/product-sales?order=sideways")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed date rejected", func(t *testing.T) {
		w := get(t, "/daily-orders?from=01-01-2024")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		w := get(t, "/daily-orders?from=2024-01-03&to=2024-01-01")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "INVALID_DATE_RANGE", body["error_code"])
	})

	t.Run("bad limit rejected", func(t *testing.T) {
		w := get(t, "/customers/cities?limit=zero")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
