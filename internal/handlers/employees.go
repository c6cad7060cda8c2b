package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"gert-backend/internal/middleware"
	"gert-backend/internal/models"
	"gert-backend/internal/repository"
)

// EmployeeHandler is the client-facing roster of assessable employees.
type EmployeeHandler struct {
	employeeRepo *repository.EmployeeRepo
}

func NewEmployeeHandler(employeeRepo *repository.EmployeeRepo) *EmployeeHandler {
	return &EmployeeHandler{employeeRepo: employeeRepo}
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	fieldErrors := make(map[string]string)
	if req.FirstName == "" {
		fieldErrors["first_name"] = "First name is required"
	}
	if req.LastName == "" {
		fieldErrors["last_name"] = "Last name is required"
	}
	if len(fieldErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fieldErrors, r))
		return
	}

	employee := &models.Employee{
		ClientID:   middleware.GetClientID(r.Context()),
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Department: req.Department,
		Position:   req.Position,
	}
	if err := h.employeeRepo.Create(r.Context(), employee); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, employee)
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeRepo.ListByClient(r.Context(), middleware.GetClientID(r.Context()))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"employees": employees})
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	employee, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, employee)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	employee, ok := h.load(w, r)
	if !ok {
		return
	}

	var req models.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.FirstName != nil {
		employee.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		employee.LastName = *req.LastName
	}
	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.Department != nil {
		employee.Department = *req.Department
	}
	if req.Position != nil {
		employee.Position = *req.Position
	}

	if err := h.employeeRepo.Update(r.Context(), employee); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, employee)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	employee, ok := h.load(w, r)
	if !ok {
		return
	}

	if err := h.employeeRepo.Delete(r.Context(), employee.ID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Employee deleted"})
}

func (h *EmployeeHandler) load(w http.ResponseWriter, r *http.Request) (*models.Employee, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid employee ID", r))
		return nil, false
	}

	employee, err := h.employeeRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Employee not found", r))
		} else {
			handleServiceError(w, r, err)
		}
		return nil, false
	}

	if employee.ClientID != middleware.GetClientID(r.Context()) {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Employee not found", r))
		return nil, false
	}
	return employee, true
}
