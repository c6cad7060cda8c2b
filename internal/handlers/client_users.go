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
	"gert-backend/internal/services"
)

// ClientUserHandler manages the accounts under the authenticated client
// company. Only client-admins may create or modify accounts.
type ClientUserHandler struct {
	userRepo    *repository.UserRepo
	authService *services.AuthService
}

func NewClientUserHandler(userRepo *repository.UserRepo, authService *services.AuthService) *ClientUserHandler {
	return &ClientUserHandler{userRepo: userRepo, authService: authService}
}

func (h *ClientUserHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.requireClientAdmin(w, r)
	if !ok {
		return
	}

	var req models.CreateClientUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	// New accounts always land in the caller's company.
	req.ClientID = caller.ClientID

	user, err := h.authService.CreateClientUser(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *ClientUserHandler) List(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.GetClientID(r.Context())

	users, err := h.userRepo.ListByClient(r.Context(), clientID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

func (h *ClientUserHandler) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireClientAdmin(w, r); !ok {
		return
	}

	user, ok := h.load(w, r)
	if !ok {
		return
	}

	var req models.UpdateClientUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := h.userRepo.UpdateClientUser(r.Context(), user); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *ClientUserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.requireClientAdmin(w, r)
	if !ok {
		return
	}

	user, ok := h.load(w, r)
	if !ok {
		return
	}

	if user.ID == caller.ID {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Cannot delete your own account", r))
		return
	}

	if err := h.userRepo.DeleteClientUser(r.Context(), user.ID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

// load fetches the target user and confirms it belongs to the caller's
// company.
func (h *ClientUserHandler) load(w http.ResponseWriter, r *http.Request) (*models.ClientUser, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid user ID", r))
		return nil, false
	}

	user, err := h.userRepo.ClientUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "User not found", r))
		} else {
			handleServiceError(w, r, err)
		}
		return nil, false
	}

	if user.ClientID != middleware.GetClientID(r.Context()) {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "User not found", r))
		return nil, false
	}
	return user, true
}

func (h *ClientUserHandler) requireClientAdmin(w http.ResponseWriter, r *http.Request) (*models.ClientUser, bool) {
	caller, err := h.userRepo.ClientUserByID(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		handleServiceError(w, r, err)
		return nil, false
	}
	if !caller.IsAdmin {
		writeJSON(w, http.StatusForbidden, errorResp("FORBIDDEN", "Client admin access required", r))
		return nil, false
	}
	return caller, true
}
