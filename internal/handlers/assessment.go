package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gert-backend/internal/catalog"
	"gert-backend/internal/middleware"
	"gert-backend/internal/models"
	"gert-backend/internal/services"
)

type AssessmentHandler struct {
	assessmentService *services.AssessmentService
}

func NewAssessmentHandler(assessmentService *services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

// CreateSession issues a new session for the authenticated client user's
// company.
func (h *AssessmentHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	// The token claim, not the body, decides which company pays.
	req.ClientID = middleware.GetClientID(r.Context())

	session, err := h.assessmentService.CreateSession(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

// GetSession is the respondent-facing session lookup, keyed by the opaque
// session token.
func (h *AssessmentHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	session, err := h.assessmentService.GetSession(r.Context(), token)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// GetQuestions returns the structural question list for one module.
func (h *AssessmentHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	module, err := strconv.Atoi(chi.URLParam(r, "module"))
	if err != nil || (module != 1 && module != 2) {
		handleServiceError(w, r, &models.InvalidModuleError{Module: module})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"module":    module,
		"questions": catalog.Questions(module),
	})
}

// SaveAnswers accepts a batch of answers for a session.
func (h *AssessmentHandler) SaveAnswers(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var req struct {
		Answers []models.AnswerSubmission `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if len(req.Answers) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "At least one answer is required", r))
		return
	}

	if err := h.assessmentService.SaveAnswers(r.Context(), token, req.Answers); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Answers saved"})
}

// CompleteModule closes one module window. Completing module 2 returns
// the session already carrying its terminal state; the report is stored
// before this responds.
func (h *AssessmentHandler) CompleteModule(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	module, err := strconv.Atoi(chi.URLParam(r, "module"))
	if err != nil {
		handleServiceError(w, r, &models.InvalidModuleError{Module: module})
		return
	}

	session, err := h.assessmentService.CompleteModule(r.Context(), token, module)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}
