package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rentflow/internal/repositories"
	"rentflow/internal/services"
)

func setupProrateRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	proration := services.NewProrationService(repositories.NewProrationRuleRepository(db), zap.NewNop())
	h := NewPaymentsHandler(proration, nil)

	r := gin.New()
	r.POST("/payments/prorate", h.Prorate)
	return r
}

func TestProrate_Endpoint(t *testing.T) {
	r := setupProrateRouter(t)

	body := `{"startDate":"2024-03-01","endDate":"2024-03-16","monthlyRent":900,"prorationMethod":"daily"}`
	req := httptest.NewRequest(http.MethodPost, "/payments/prorate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp services.ProrationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(45000), resp.ProratedAmountCents)
	assert.Equal(t, 15, resp.DaysInPeriod)
	assert.Equal(t, "daily", resp.ProrationMethod)
}

func TestProrate_MissingStartDate(t *testing.T) {
	r := setupProrateRouter(t)

	body := `{"endDate":"2024-03-16","monthlyRent":900}`
	req := httptest.NewRequest(http.MethodPost, "/payments/prorate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "startDate")
}

func TestProrate_BadDate(t *testing.T) {
	r := setupProrateRouter(t)

	body := `{"startDate":"next tuesday","endDate":"2024-03-16","monthlyRent":900}`
	req := httptest.NewRequest(http.MethodPost, "/payments/prorate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
