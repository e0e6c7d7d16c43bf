package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	custommw "ecompulse/internal/middleware"
)

// TestAppError tests the application error taxonomy
func TestAppError(t *testing.T) {
	t.Run("message formatting", func(t *testing.T) {
		cause := fmt.Errorf("bad input")

		tests := []struct {
			name string
			err  *AppError
			want string
		}{
			{"with cause", NewParsingError("parse dataset", cause), "[PARSING] parse dataset: bad input"},
			{"without cause", NewAppValidationError("range inverted"), "[VALIDATION] range inverted"},
			{"not found", NewNotFoundError("dataset"), "[NOT_FOUND] dataset not found"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				assert.Equal(t, tt.want, tt.err.Error())
			})
		}
	})

	t.Run("unwrap exposes the cause", func(t *testing.T) {
		cause := fmt.Errorf("broken")
		err := NewStorageError("write report", cause)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("timestamp error carries source context", func(t *testing.T) {
		err := NewTimestampError("all_data.csv", 42, fmt.Errorf("cannot parse"))
		assert.Equal(t, ErrTypeParsing, err.Type)
		assert.Equal(t, "all_data.csv", err.Context["source"])
		assert.Equal(t, 42, err.Context["line"])
	})
}

// TestErrorHandler tests error-to-response mapping
func TestErrorHandler(t *testing.T) {
	handler := NewErrorHandler(slog.Default())

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"api error passes through", ErrInvalidDateRange, http.StatusBadRequest},
		{"validation app error", NewAppValidationError("from after to"), http.StatusBadRequest},
		{"parsing app error", NewTimestampError("data.csv", 7, fmt.Errorf("bad date")), http.StatusUnprocessableEntity},
		{"not found app error", NewNotFoundError("dataset"), http.StatusNotFound},
		{"unknown error", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/dashboard/rfm", nil)

			handler.HandleError(w, r, tt.err)

			require.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
		})
	}

	t.Run("error log carries the request id", func(t *testing.T) {
		var buf bytes.Buffer
		logged := NewErrorHandler(slog.New(slog.NewJSONHandler(&buf, nil)))

		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logged.HandleError(w, r, ErrInvalidDateRange)
		})

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/dashboard/rfm", nil)
		r.Header.Set("X-Request-ID", "req-42")
		custommw.RequestID(inner).ServeHTTP(w, r)

		var record map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "req-42", record["request_id"])
	})
}
