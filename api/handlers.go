/*
handlers.go - HTTP API handlers for the attendance engine

PURPOSE:
  Exposes the calculation engine via REST. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Employees:
    GET    /api/employees                     List employees
    POST   /api/employees                     Create employee
    GET    /api/employees/{id}                Employee details

  Attendance:
    GET    /api/employees/{id}/attendance     Month punch records
    POST   /api/employees/{id}/attendance     Record punches for a day
                                              (recomputes that day)

  Compensation:
    GET    /api/employees/{id}/compensation   Month compensation records
    POST   /api/employees/{id}/recompute      Recompute a month
    PUT    /api/employees/{id}/compensation/{year}/{month}/{day}
                                              Manual override of pay

  Configuration:
    GET/PUT /api/settings                     Pay rules
    GET/POST /api/holidays, DELETE /api/holidays/{id}
    GET/POST /api/employment-types

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/compensation"
	"github.com/warp/attendance-engine/factory"
	"github.com/warp/attendance-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     *sqlite.Store
	Processor *compensation.Processor
}

// NewHandler creates a handler backed by the given store.
func NewHandler(store *sqlite.Store, processor *compensation.Processor) *Handler {
	return &Handler{Store: store, Processor: processor}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, ErrorResponse{Error: msg})
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]EmployeeDTO, 0, len(employees))
	for _, emp := range employees {
		out = append(out, toEmployeeDTO(emp))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.EmploymentType == "" {
		respondError(w, http.StatusBadRequest, "name and employment_type are required")
		return
	}
	rate, err := decimal.NewFromString(req.DailyRate)
	if err != nil || rate.IsNegative() {
		respondError(w, http.StatusBadRequest, "daily_rate must be a non-negative decimal")
		return
	}

	types, err := h.Store.LoadEmploymentTypes(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if _, err := compensation.FindEmploymentType(types, req.EmploymentType); err != nil {
		respondError(w, http.StatusBadRequest, "unknown employment type "+req.EmploymentType)
		return
	}

	emp := attendance.Employee{
		ID:             attendance.EmployeeID(uuid.NewString()),
		Name:           req.Name,
		EmploymentType: req.EmploymentType,
		DailyRate:      rate,
	}
	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.employeeFromPath(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

func (h *Handler) employeeFromPath(w http.ResponseWriter, r *http.Request) (attendance.Employee, bool) {
	id := attendance.EmployeeID(chi.URLParam(r, "id"))
	emp, err := h.Store.GetEmployee(r.Context(), id)
	if errors.Is(err, compensation.ErrEmployeeNotFound) {
		respondError(w, http.StatusNotFound, "employee not found")
		return attendance.Employee{}, false
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return attendance.Employee{}, false
	}
	return emp, true
}

// =============================================================================
// ATTENDANCE
// =============================================================================

func (h *Handler) GetAttendance(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.employeeFromPath(w, r)
	if !ok {
		return
	}
	year, month, ok := yearMonthQuery(w, r)
	if !ok {
		return
	}

	records, err := h.Store.LoadAttendanceForMonth(r.Context(), emp.ID, year, month)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]AttendanceDTO, 0, len(records))
	for _, rec := range records {
		out = append(out, toAttendanceDTO(rec))
	}
	respondJSON(w, http.StatusOK, out)
}

// RecordPunch saves a day's punches and recomputes that day. Pass
// ?force=true to recompute a manually overridden record.
func (h *Handler) RecordPunch(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.employeeFromPath(w, r)
	if !ok {
		return
	}

	var req PunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	month, ok := monthOf(req.Month)
	if !ok {
		respondError(w, http.StatusBadRequest, "month out of range")
		return
	}
	if req.Day < 1 || req.Day > attendance.DaysInMonth(req.Year, month) {
		respondError(w, http.StatusBadRequest, "day outside month range")
		return
	}

	rec := attendance.Attendance{
		EmployeeID: emp.ID,
		Year:       req.Year,
		Month:      month,
		Day:        req.Day,
		TimeIn:     req.TimeIn,
		TimeOut:    req.TimeOut,
	}
	if err := h.Store.SaveAttendance(r.Context(), []attendance.Attendance{rec}); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	force := r.URL.Query().Get("force") == "true"
	record, err := h.Processor.RecomputeDay(r.Context(), emp, rec, force)
	if err != nil {
		// The punch is saved; the day just has no computable record.
		respondJSON(w, http.StatusOK, map[string]any{
			"attendance": toAttendanceDTO(rec),
			"warning":    err.Error(),
		})
		return
	}
	if record == nil {
		respondJSON(w, http.StatusOK, map[string]any{
			"attendance": toAttendanceDTO(rec),
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"attendance":   toAttendanceDTO(rec),
		"compensation": toCompensationDTO(*record),
	})
}

// ClearPunch removes a day's punch record and recomputes the day, so the
// compensation record reflects the now-empty attendance (typically absent,
// or presence-based zero).
func (h *Handler) ClearPunch(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.employeeFromPath(w, r)
	if !ok {
		return
	}
	year, month, day, ok := datePathParams(w, r)
	if !ok {
		return
	}
	if day < 1 || day > attendance.DaysInMonth(year, month) {
		respondError(w, http.StatusBadRequest, "day outside month range")
		return
	}

	if err := h.Store.DeleteAttendance(r.Context(), emp.ID, year, month, day); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	cleared := attendance.Attendance{
		EmployeeID: emp.ID,
		Year:       year,
		Month:      month,
		Day:        day,
	}
	force := r.URL.Query().Get("force") == "true"
	record, err := h.Processor.RecomputeDay(r.Context(), emp, cleared, force)
	if err != nil {
		respondJSON(w, http.StatusOK, map[string]any{"warning": err.Error()})
		return
	}
	if record == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"compensation": toCompensationDTO(*record),
	})
}

// =============================================================================
// COMPENSATION
// =============================================================================

func (h *Handler) GetCompensation(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.employeeFromPath(w, r)
	if !ok {
		return
	}
	year, month, ok := yearMonthQuery(w, r)
	if !ok {
		return
	}

	records, err := h.Store.LoadCompensationForMonth(r.Context(), emp.ID, year, month)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]CompensationDTO, 0, len(records))
	for _, rec := range records {
		out = append(out, toCompensationDTO(rec))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) RecomputeMonth(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.employeeFromPath(w, r)
	if !ok {
		return
	}

	var req RecomputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	month, ok := monthOf(req.Month)
	if !ok {
		respondError(w, http.StatusBadRequest, "month out of range")
		return
	}

	result, err := h.Processor.ProcessMonth(r.Context(), emp, req.Year, month, req.Force)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := RecomputeResponse{
		Computed: result.Computed,
		Skipped:  result.Skipped,
		Excluded: result.Excluded,
	}
	for _, f := range result.Failures {
		resp.Failures = append(resp.Failures, f.Err.Error())
	}
	respondJSON(w, http.StatusOK, resp)
}

// OverrideCompensation applies a human edit to a record's monetary
// fields and marks it manually overridden.
func (h *Handler) OverrideCompensation(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.employeeFromPath(w, r)
	if !ok {
		return
	}
	year, month, day, ok := datePathParams(w, r)
	if !ok {
		return
	}

	var req OverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	gross, err := decimal.NewFromString(req.GrossPay)
	if err != nil {
		respondError(w, http.StatusBadRequest, "gross_pay must be a decimal")
		return
	}
	net, err := decimal.NewFromString(req.NetPay)
	if err != nil {
		respondError(w, http.StatusBadRequest, "net_pay must be a decimal")
		return
	}

	records, err := h.Store.LoadCompensationForMonth(r.Context(), emp.ID, year, month)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	var existing *compensation.Compensation
	for i := range records {
		if records[i].Day == day {
			existing = &records[i]
			break
		}
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "no compensation record for that day")
		return
	}

	existing.GrossPay = gross
	existing.NetPay = net
	existing.Notes = req.Notes
	existing.Override = compensation.StateManuallyOverridden

	if err := h.Store.SaveOrUpdate(r.Context(), []compensation.Compensation{*existing}); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, toCompensationDTO(*existing))
}

// =============================================================================
// SETTINGS
// =============================================================================

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Store.LoadAttendanceSettings(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings attendance.AttendanceSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Store.SaveAttendanceSettings(r.Context(), settings); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year, month, ok := yearMonthQuery(w, r)
	if !ok {
		return
	}
	holidays, err := h.Store.LoadHolidays(r.Context(), year, month)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]HolidayDTO, 0, len(holidays))
	for _, hol := range holidays {
		out = append(out, toHolidayDTO(hol))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req HolidayDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	start, err := parseDateParam(req.StartDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid start_date")
		return
	}
	end, err := parseDateParam(req.EndDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid end_date")
		return
	}
	if end.Before(start) {
		respondError(w, http.StatusBadRequest, "end_date before start_date")
		return
	}

	hType := attendance.HolidayType(req.Type)
	if hType != attendance.HolidayRegular && hType != attendance.HolidaySpecial {
		respondError(w, http.StatusBadRequest, "type must be Regular or Special")
		return
	}

	settings, err := h.Store.LoadAttendanceSettings(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	multiplier := settings.HolidayDefaultMultiplier(hType)
	if req.Multiplier != "" {
		if multiplier, err = decimal.NewFromString(req.Multiplier); err != nil {
			respondError(w, http.StatusBadRequest, "multiplier must be a decimal")
			return
		}
	}

	hol := attendance.Holiday{
		ID:         uuid.NewString(),
		Name:       req.Name,
		StartDate:  start,
		EndDate:    end,
		Type:       hType,
		Multiplier: multiplier,
	}
	if err := h.Store.SaveHoliday(r.Context(), hol); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, toHolidayDTO(hol))
}

func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteHoliday(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// EMPLOYMENT TYPES
// =============================================================================

func (h *Handler) ListEmploymentTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Store.LoadEmploymentTypes(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]factory.EmploymentTypeJSON, 0, len(types))
	for _, et := range types {
		out = append(out, factory.ToJSON(et))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateEmploymentType(w http.ResponseWriter, r *http.Request) {
	var req factory.EmploymentTypeJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	et, err := factory.FromJSON(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Store.SaveEmploymentType(r.Context(), et); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, factory.ToJSON(et))
}

// =============================================================================
// QUERY HELPERS
// =============================================================================

func yearMonthQuery(w http.ResponseWriter, r *http.Request) (int, time.Month, bool) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "year query parameter is required")
		return 0, 0, false
	}
	monthInt, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "month query parameter is required")
		return 0, 0, false
	}
	month, ok := monthOf(monthInt)
	if !ok {
		respondError(w, http.StatusBadRequest, "month out of range")
		return 0, 0, false
	}
	return year, month, true
}

// datePathParams reads the {year}/{month}/{day} URL segments.
func datePathParams(w http.ResponseWriter, r *http.Request) (int, time.Month, int, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid year")
		return 0, 0, 0, false
	}
	monthInt, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid month")
		return 0, 0, 0, false
	}
	month, ok := monthOf(monthInt)
	if !ok {
		respondError(w, http.StatusBadRequest, "month out of range")
		return 0, 0, 0, false
	}
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid day")
		return 0, 0, 0, false
	}
	return year, month, day, true
}

func parseDateParam(s string) (attendance.Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return attendance.Date{}, err
	}
	return attendance.NewDate(t.Year(), t.Month(), t.Day()), nil
}
