package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shakaihoken/premium-calculator/internal/calculation"
	"github.com/shakaihoken/premium-calculator/internal/config"
	"github.com/shakaihoken/premium-calculator/internal/domain"
)

type envelope[T any] struct {
	Success bool         `json:"success"`
	Data    T            `json:"data"`
	Error   *ErrorDetail `json:"error"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	ref, err := config.DefaultReferenceTables()
	require.NoError(t, err)

	engine := calculation.NewCalculationEngine(ref)
	engine.SetClock(calculation.FixedClock(time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)))

	serverCfg := &config.ServerConfig{Port: 8080, Env: "test", LogLevel: "error"}
	return NewRouter(serverCfg, NewLogger(io.Discard, serverCfg), NewPremiumHandler(engine))
}

func postYAML(t *testing.T, router http.Handler, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/yaml")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var out envelope[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCalculateMonthly(t *testing.T) {
	router := newTestRouter(t)
	rec := postYAML(t, router, "/api/v1/premiums/monthly?emp_no=0001", config.ExampleConfiguration())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[domain.PremiumRecord](t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "0001", resp.Data.EmpNo)
	assert.Equal(t, "2025-06", resp.Data.ApplicableMonth.String())
	assert.Equal(t, 26, resp.Data.HealthGrade)
	assert.Equal(t, int64(380000), resp.Data.StandardMonthlyAmount)
	assert.Equal(t, domain.PremiumBreakdown{Employee: 18962, Company: 18962, Total: 37924}, resp.Data.HealthPremium)
	assert.Equal(t, int64(113544), resp.Data.HealthPremium.Total+resp.Data.PensionPremium.Total+resp.Data.CarePremium.Total)
}

func TestCalculateMonthly_Errors(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		target string
		body   []byte
		status int
		code   string
	}{
		{"Missing birthday", "/api/v1/premiums/monthly?emp_no=0005", config.ExampleConfiguration(), http.StatusUnprocessableEntity, "NOT_COMPUTABLE"},
		{"Unknown employee", "/api/v1/premiums/monthly?emp_no=9999", config.ExampleConfiguration(), http.StatusNotFound, "NOT_FOUND"},
		{"Missing emp_no", "/api/v1/premiums/monthly", config.ExampleConfiguration(), http.StatusBadRequest, "BAD_REQUEST"},
		{"Invalid month", "/api/v1/premiums/monthly?emp_no=0001&month=June", config.ExampleConfiguration(), http.StatusBadRequest, "BAD_REQUEST"},
		{"Invalid configuration", "/api/v1/premiums/monthly?emp_no=0001", []byte("company:\n  id: C1\nemployees: []\n"), http.StatusBadRequest, "BAD_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postYAML(t, router, tt.target, tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			resp := decode[any](t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestEvaluate_JSONBody(t *testing.T) {
	cfg, err := config.NewInputParser().Parse(config.ExampleConfiguration())
	require.NoError(t, err)
	body, err := json.Marshal(cfg)
	require.NoError(t, err)

	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/eligibility?emp_no=0002", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data struct {
			Status domain.InsuranceStatusFields `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "対象外", resp.Data.Status.HealthInsuranceStatus)
	assert.Equal(t, "特定適用事業所ではない", resp.Data.Status.HealthInsuranceReason)
	assert.Equal(t, "対象外", resp.Data.Status.PensionStatus)
}

func TestEvaluate_InvalidJSON(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/eligibility?emp_no=0001", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalculateBonus(t *testing.T) {
	router := newTestRouter(t)
	rec := postYAML(t, router, "/api/v1/premiums/bonus?emp_no=0001", config.ExampleConfiguration())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[[]domain.BonusPremiumRecord](t, rec)
	require.Len(t, resp.Data, 1)
	bonus := resp.Data[0]
	assert.Equal(t, int64(500000), bonus.StandardBonusAmount)
	require.NotNil(t, bonus.HealthPremium)
	require.NotNil(t, bonus.PensionPremium)
	require.NotNil(t, bonus.CarePremium)
	assert.Equal(t, int64(149400), bonus.HealthPremium.Total+bonus.PensionPremium.Total+bonus.CarePremium.Total)
}

func TestCheckRevision(t *testing.T) {
	router := newTestRouter(t)
	rec := postYAML(t, router, "/api/v1/revision?emp_no=0001", config.ExampleConfiguration())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[domain.RevisionCheck](t, rec)
	assert.True(t, resp.Data.Eligible)
	assert.True(t, resp.Data.FixedWageChanged)
	assert.Equal(t, 22, resp.Data.CurrentGrade)
	assert.Equal(t, 26, resp.Data.NewGrade)
}

func TestCalculateRoster(t *testing.T) {
	router := newTestRouter(t)
	rec := postYAML(t, router, "/api/v1/premiums/roster", config.ExampleConfiguration())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data struct {
			MonthlyTotal domain.PremiumBreakdown `json:"monthly_total"`
			BonusTotal   domain.PremiumBreakdown `json:"bonus_total"`
			Employees    []struct {
				EmpNo   string `json:"emp_no"`
				Skipped string `json:"skipped"`
			} `json:"employees"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(192386), resp.Data.MonthlyTotal.Total)
	assert.Equal(t, int64(149400), resp.Data.BonusTotal.Total)
	require.Len(t, resp.Data.Employees, 5)
	assert.Equal(t, "0005", resp.Data.Employees[4].EmpNo)
	assert.NotEmpty(t, resp.Data.Employees[4].Skipped)
}

func TestReferenceEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reference/grades", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	grades := decode[GradesResponse](t, rec)
	assert.Len(t, grades.Data.HealthGrades, 50)
	assert.Len(t, grades.Data.PensionGrades, 32)
	assert.True(t, grades.Data.HealthGrades[49].Upper.Infinite)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reference/rates/東京都", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rates := decode[domain.InsuranceRates](t, rec)
	assert.Equal(t, "0.0499", rates.Data.Health.Employee.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reference/rates/Atlantis", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/premiums/monthly", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", ParseLevel("debug").String())
	assert.Equal(t, "WARN", ParseLevel("WARN").String())
	assert.Equal(t, "INFO", ParseLevel("").String())
}
