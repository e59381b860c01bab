package middleware_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopassist/shopassist/internal/api/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogging(t *testing.T) {
	t.Run("Generates Correlation ID When Absent", func(t *testing.T) {
		// Arrange
		var sawLogger *slog.Logger

		handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sawLogger = middleware.LoggerFromContext(r.Context())
			w.WriteHeader(http.StatusNoContent)
		}))

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)

		// Act
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNoContent, rr.Code)

		id := rr.Header().Get("X-Request-ID")
		require.NotEmpty(t, id)
		_, err := uuid.Parse(id)
		assert.NoError(t, err, "generated correlation ID should be a UUID")

		assert.NotNil(t, sawLogger, "handler should see a request-scoped logger")
	})

	t.Run("Preserves Caller Correlation ID", func(t *testing.T) {
		// Arrange
		handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		req.Header.Set("X-Request-ID", "caller-supplied-id")

		// Act
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, "caller-supplied-id", rr.Header().Get("X-Request-ID"))
	})
}

func TestLoggerFromContext(t *testing.T) {
	// Falls back to the default logger outside a request.
	logger := middleware.LoggerFromContext(t.Context())
	assert.NotNil(t, logger)
}
