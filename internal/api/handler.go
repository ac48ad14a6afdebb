package api

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/go-chi/chi/v5"

	"github.com/shakaihoken/premium-calculator/internal/calculation"
	"github.com/shakaihoken/premium-calculator/internal/config"
	"github.com/shakaihoken/premium-calculator/internal/domain"
	"github.com/shakaihoken/premium-calculator/pkg/dateutil"
)

// maxBodyBytes caps a configuration document upload
const maxBodyBytes = 4 << 20

type PremiumHandler interface {
	CalculateRoster(w http.ResponseWriter, r *http.Request)
	CalculateMonthly(w http.ResponseWriter, r *http.Request)
	CalculateBonus(w http.ResponseWriter, r *http.Request)
	Evaluate(w http.ResponseWriter, r *http.Request)
	CheckRevision(w http.ResponseWriter, r *http.Request)
	RegularDetermination(w http.ResponseWriter, r *http.Request)

	ListGrades(w http.ResponseWriter, r *http.Request)
	GetRates(w http.ResponseWriter, r *http.Request)
}

type premiumHandlerImpl struct {
	engine *calculation.CalculationEngine
	parser *config.InputParser
}

func NewPremiumHandler(engine *calculation.CalculationEngine) PremiumHandler {
	return &premiumHandlerImpl{
		engine: engine,
		parser: config.NewInputParser(),
	}
}

// EligibilityResponse pairs the decision with the status fields to write back
type EligibilityResponse struct {
	Result domain.EligibilityResult     `json:"result"`
	Status domain.InsuranceStatusFields `json:"status"`
}

// GradesResponse is the grade table payload of the reference endpoint
type GradesResponse struct {
	Metadata      domain.ReferenceMetadata `json:"metadata"`
	HealthGrades  []domain.SalaryGrade     `json:"health_grades"`
	PensionGrades []domain.SalaryGrade     `json:"pension_grades"`
}

func (h *premiumHandlerImpl) CalculateRoster(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.decodeConfiguration(w, r)
	if !ok {
		return
	}
	month, ok := queryMonth(w, r, "month")
	if !ok {
		return
	}
	if !month.IsZero() {
		cfg.ApplicableMonth = month
	}

	result, err := h.engine.CalculateRoster(r.Context(), cfg)
	if err != nil {
		HandleError(w, err)
		return
	}
	Success(w, result)
}

func (h *premiumHandlerImpl) CalculateMonthly(w http.ResponseWriter, r *http.Request) {
	cfg, employee, month, ok := h.employeeRequest(w, r)
	if !ok {
		return
	}

	record, err := h.engine.CalculateMonthly(cfg, employee, month)
	if err != nil {
		HandleError(w, err)
		return
	}
	Success(w, record)
}

func (h *premiumHandlerImpl) CalculateBonus(w http.ResponseWriter, r *http.Request) {
	cfg, employee, _, ok := h.employeeRequest(w, r)
	if !ok {
		return
	}

	records, err := h.engine.CalculateBonuses(cfg, employee)
	if err != nil {
		HandleError(w, err)
		return
	}
	Success(w, records)
}

func (h *premiumHandlerImpl) Evaluate(w http.ResponseWriter, r *http.Request) {
	cfg, employee, month, ok := h.employeeRequest(w, r)
	if !ok {
		return
	}
	if month.IsZero() {
		BadRequest(w, "month or applicable_month is required", nil)
		return
	}

	result := h.engine.Evaluate(cfg, employee, month)
	Success(w, EligibilityResponse{Result: result, Status: result.StatusPatch()})
}

func (h *premiumHandlerImpl) CheckRevision(w http.ResponseWriter, r *http.Request) {
	cfg, employee, month, ok := h.employeeRequest(w, r)
	if !ok {
		return
	}

	check, err := h.engine.CheckRevision(cfg, employee, month)
	if err != nil {
		HandleError(w, err)
		return
	}
	Success(w, check)
}

func (h *premiumHandlerImpl) RegularDetermination(w http.ResponseWriter, r *http.Request) {
	cfg, employee, month, ok := h.employeeRequest(w, r)
	if !ok {
		return
	}
	year := month.Year
	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			BadRequest(w, "Invalid year", map[string]string{"year": v})
			return
		}
		year = y
	}
	if year == 0 {
		BadRequest(w, "year or applicable_month is required", nil)
		return
	}

	result, err := h.engine.RegularDetermination(cfg, employee, year)
	if err != nil {
		HandleError(w, err)
		return
	}
	Success(w, result)
}

func (h *premiumHandlerImpl) ListGrades(w http.ResponseWriter, r *http.Request) {
	ref := h.engine.Reference
	if ref == nil {
		HandleError(w, calculation.ErrNoReference)
		return
	}
	Success(w, GradesResponse{Metadata: ref.Metadata, HealthGrades: ref.HealthGrades, PensionGrades: ref.PensionGrades})
}

func (h *premiumHandlerImpl) GetRates(w http.ResponseWriter, r *http.Request) {
	prefecture, err := url.PathUnescape(chi.URLParam(r, "prefecture"))
	if err != nil {
		BadRequest(w, "Invalid prefecture", nil)
		return
	}
	ref := h.engine.Reference
	if ref == nil {
		HandleError(w, calculation.ErrNoReference)
		return
	}
	rates, ok := ref.Rates[prefecture]
	if !ok {
		NotFound(w, fmt.Sprintf("No rates for prefecture %q", prefecture))
		return
	}
	Success(w, rates)
}

// employeeRequest decodes the configuration and resolves emp_no and month from the query
func (h *premiumHandlerImpl) employeeRequest(w http.ResponseWriter, r *http.Request) (*domain.Configuration, *domain.Employee, dateutil.YearMonth, bool) {
	empNo := r.URL.Query().Get("emp_no")
	if empNo == "" {
		BadRequest(w, "emp_no is required", nil)
		return nil, nil, dateutil.YearMonth{}, false
	}
	month, ok := queryMonth(w, r, "month")
	if !ok {
		return nil, nil, dateutil.YearMonth{}, false
	}

	cfg, ok := h.decodeConfiguration(w, r)
	if !ok {
		return nil, nil, dateutil.YearMonth{}, false
	}
	employee, found := cfg.FindEmployee(empNo)
	if !found {
		NotFound(w, fmt.Sprintf("Employee %s not found", empNo))
		return nil, nil, dateutil.YearMonth{}, false
	}
	if month.IsZero() {
		month = cfg.ApplicableMonth
	}
	return cfg, employee, month, true
}

// decodeConfiguration reads a JSON or YAML configuration document and validates it
func (h *premiumHandlerImpl) decodeConfiguration(w http.ResponseWriter, r *http.Request) (*domain.Configuration, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			BadRequest(w, "Request body too large", nil)
			return nil, false
		}
		BadRequest(w, "Failed to read request body", nil)
		return nil, false
	}

	if isYAML(r) {
		cfg, err := h.parser.Parse(body)
		if err != nil {
			BadRequest(w, "Invalid configuration", map[string]string{"configuration": err.Error()})
			return nil, false
		}
		return cfg, true
	}

	var cfg domain.Configuration
	if err := json.Unmarshal(body, &cfg); err != nil {
		BadRequest(w, "Invalid request format", map[string]string{"body": err.Error()})
		return nil, false
	}
	if err := h.parser.ValidateConfiguration(&cfg); err != nil {
		BadRequest(w, "Invalid configuration", map[string]string{"configuration": err.Error()})
		return nil, false
	}
	return &cfg, true
}

func isYAML(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return true
	}
	return false
}

func queryMonth(w http.ResponseWriter, r *http.Request, key string) (dateutil.YearMonth, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return dateutil.YearMonth{}, true
	}
	month, err := dateutil.ParseYearMonth(v)
	if err != nil {
		BadRequest(w, "Invalid month, expected YYYY-MM", map[string]string{key: v})
		return dateutil.YearMonth{}, false
	}
	return month, true
}
