package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eggmart/internal/analytics"
	"eggmart/internal/handlers"
	"eggmart/internal/middleware"
	"eggmart/internal/models"
	"eggmart/internal/repositories"
	"eggmart/internal/services"
	"eggmart/internal/storage"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "integration-test-secret"

// newTestServer wires the service the way cmd/main does, over in-memory
// storage and with an empty initial record list.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	kv := storage.NewMemoryKV()
	store := repositories.NewRecordStore(kv, []*models.DistributorRecord{})
	analyticsSvc := analytics.NewService(store, kv, time.Minute)
	distributorSvc := services.NewDistributorService(store, analyticsSvc, 0)

	authSvc, err := services.NewAuthService("admin", "s3cret", testJWTSecret, time.Hour)
	require.NoError(t, err)

	e := echo.New()

	e.GET("/health", handlers.NewHealthHandlers(kv, "test").HealthCheck)

	v1 := e.Group("/v1")
	v1.Group("/auth").POST("/login", handlers.NewAuthHandlers(authSvc).Login)

	protected := v1.Group("")
	protected.Use(middleware.JWTMiddleware(testJWTSecret))

	distributorHandlers := handlers.NewDistributorHandlers(distributorSvc)
	protected.GET("/distributors", distributorHandlers.ListDistributors)
	protected.POST("/distributors", distributorHandlers.CreateDistributor)
	protected.DELETE("/distributors/:id", distributorHandlers.DeleteDistributor)
	protected.GET("/metrics/distributors", handlers.NewMetricsHandlers(analyticsSvc).DistributorMetrics)

	return e
}

func request(e *echo.Echo, method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, e *echo.Echo) string {
	t.Helper()
	rec := request(e, http.MethodPost, "/v1/auth/login", "", `{"username":"admin","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])
	return resp["token"]
}

func TestDistributorLifecycle(t *testing.T) {
	e := newTestServer(t)
	token := login(t, e)

	// Create.
	body := `{"fullName":"A B","phone":"123","username":"ab","password":"x","confirmPassword":"x","module":"reports"}`
	rec := request(e, http.MethodPost, "/v1/distributors", token, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Distributor models.DistributorRecord `json:"distributor"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.Distributor.ID)

	// List.
	rec = request(e, http.MethodGet, "/v1/distributors", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Equal(t, 1, listed.Count)

	// Metrics.
	rec = request(e, http.MethodGet, "/v1/metrics/distributors", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var metrics analytics.DistributorMetrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &metrics))
	assert.Equal(t, 1, metrics.Total)
	assert.Equal(t, 0, metrics.DailySales)

	// Delete requires confirmation.
	rec = request(e, http.MethodDelete, fmt.Sprintf("/v1/distributors/%d", created.Distributor.ID), token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = request(e, http.MethodDelete, fmt.Sprintf("/v1/distributors/%d?confirm=true", created.Distributor.ID), token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	// Metrics reflect the deletion.
	rec = request(e, http.MethodGet, "/v1/metrics/distributors", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &metrics))
	assert.Equal(t, 0, metrics.Total)
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	e := newTestServer(t)

	rec := request(e, http.MethodGet, "/v1/distributors", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = request(e, http.MethodGet, "/v1/distributors", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	e := newTestServer(t)

	rec := request(e, http.MethodPost, "/v1/auth/login", "", `{"username":"admin","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestServer(t)

	rec := request(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"storage":"healthy"`)
}
