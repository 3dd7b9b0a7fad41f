package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/campushq/school-backend-go/internal/domain/payroll"
	"github.com/campushq/school-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	UpsertPayroll(w http.ResponseWriter, r *http.Request)
	ListSalaries(w http.ResponseWriter, r *http.Request)
	GetPayroll(w http.ResponseWriter, r *http.Request)
	GetPeriodSummary(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// periodFromQuery parses the mandatory month/year query parameters.
func periodFromQuery(r *http.Request) (month, year int, ok bool) {
	monthStr := r.URL.Query().Get("month")
	yearStr := r.URL.Query().Get("year")
	if monthStr == "" || yearStr == "" {
		return 0, 0, false
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return 0, 0, false
	}
	year, err = strconv.Atoi(yearStr)
	if err != nil {
		return 0, 0, false
	}

	return month, year, true
}

func (h *payrollHandlerImpl) UpsertPayroll(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpsertPayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.UpsertPayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll saved successfully", result)
}

func (h *payrollHandlerImpl) ListSalaries(w http.ResponseWriter, r *http.Request) {
	month, year, ok := periodFromQuery(r)
	if !ok {
		response.BadRequest(w, "Month & year required", nil)
		return
	}

	result, err := h.payrollService.ListSalariesForPeriod(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetPayroll(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	month, year, ok := periodFromQuery(r)
	if !ok {
		response.BadRequest(w, "Month & year required", nil)
		return
	}

	result, err := h.payrollService.GetPayroll(r.Context(), employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetPeriodSummary(w http.ResponseWriter, r *http.Request) {
	month, year, ok := periodFromQuery(r)
	if !ok {
		response.BadRequest(w, "Month & year required", nil)
		return
	}

	result, err := h.payrollService.GetPeriodSummary(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
