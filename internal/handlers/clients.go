package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"gert-backend/internal/models"
	"gert-backend/internal/repository"
	"gert-backend/internal/services"
)

// ClientHandler is the admin-facing CRUD surface for client companies and
// their assessment token balances.
type ClientHandler struct {
	clientRepo *repository.ClientRepo
	email      *services.EmailService
}

func NewClientHandler(clientRepo *repository.ClientRepo, email *services.EmailService) *ClientHandler {
	return &ClientHandler{clientRepo: clientRepo, email: email}
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	fieldErrors := make(map[string]string)
	if req.CompanyName == "" {
		fieldErrors["company_name"] = "Company name is required"
	}
	if req.ContactEmail == "" {
		fieldErrors["contact_email"] = "Contact email is required"
	}
	if len(fieldErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fieldErrors, r))
		return
	}

	if _, err := h.clientRepo.GetByCompanyName(r.Context(), req.CompanyName); err == nil {
		writeJSON(w, http.StatusConflict, errorResp("CONFLICT", "Company name already registered", r))
		return
	} else if !errors.Is(err, pgx.ErrNoRows) {
		handleServiceError(w, r, err)
		return
	}

	client := &models.Client{
		CompanyName:   req.CompanyName,
		EmployeeCount: req.EmployeeCount,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
	}
	if err := h.clientRepo.Create(r.Context(), client); err != nil {
		handleServiceError(w, r, err)
		return
	}

	go h.email.SendWelcomeEmail(client.ContactEmail)

	writeJSON(w, http.StatusCreated, client)
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	clients, err := h.clientRepo.List(r.Context(), offset, limit)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"clients": clients})
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	client, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	client, ok := h.load(w, r)
	if !ok {
		return
	}

	var req models.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.CompanyName != nil {
		client.CompanyName = *req.CompanyName
	}
	if req.EmployeeCount != nil {
		client.EmployeeCount = *req.EmployeeCount
	}
	if req.ContactEmail != nil {
		client.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		client.ContactPhone = *req.ContactPhone
	}
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
	}
	if req.IsSuspended != nil {
		client.IsSuspended = *req.IsSuspended
	}
	if req.IsBlocked != nil {
		client.IsBlocked = *req.IsBlocked
	}

	if err := h.clientRepo.Update(r.Context(), client); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, client)
}

// UpdateTokens sets the absolute token balance for a client.
func (h *ClientHandler) UpdateTokens(w http.ResponseWriter, r *http.Request) {
	client, ok := h.load(w, r)
	if !ok {
		return
	}

	var req models.UpdateTokensRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if req.Tokens < 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"tokens": "Token balance cannot be negative"}, r))
		return
	}

	if err := h.clientRepo.UpdateTokens(r.Context(), client.ID, req.Tokens); err != nil {
		handleServiceError(w, r, err)
		return
	}

	client.Tokens = req.Tokens
	writeJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	client, ok := h.load(w, r)
	if !ok {
		return
	}

	if err := h.clientRepo.Delete(r.Context(), client.ID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Client deleted"})
}

func (h *ClientHandler) load(w http.ResponseWriter, r *http.Request) (*models.Client, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid client ID", r))
		return nil, false
	}

	client, err := h.clientRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Client not found", r))
		} else {
			handleServiceError(w, r, err)
		}
		return nil, false
	}
	return client, true
}
