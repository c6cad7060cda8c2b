package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"gert-backend/internal/models"
	"gert-backend/internal/services"
)

// ─── Error Mapping Tests ───

func TestHandleServiceError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", &services.ValidationError{Fields: map[string]string{"email": "bad"}}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"conflict", &services.ConflictError{Message: "dup"}, http.StatusConflict, "CONFLICT"},
		{"not found", &services.NotFoundError{Message: "missing"}, http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", &services.UnauthorizedError{Message: "nope"}, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", &services.ForbiddenError{Message: "no tokens"}, http.StatusForbidden, "FORBIDDEN"},
		{"rate limited", &services.RateLimitError{Message: "slow down"}, http.StatusTooManyRequests, "RATE_LIMITED"},
		{"module expired", &models.ModuleTimeExpiredError{Module: 1}, http.StatusBadRequest, "MODULE_TIME_EXPIRED"},
		{"module not in progress", &models.ModuleNotInProgressError{Module: 1, Status: "created"}, http.StatusBadRequest, "MODULE_NOT_IN_PROGRESS"},
		{"module prerequisite", &models.ModulePrerequisiteError{Module: 2, Status: "created"}, http.StatusBadRequest, "MODULE_PREREQUISITE"},
		{"invalid module", &models.InvalidModuleError{Module: 3}, http.StatusBadRequest, "INVALID_MODULE"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("X-Request-ID", "req-123")

			handleServiceError(rr, req, tc.err)

			if rr.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, rr.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error.Code != tc.wantCode {
				t.Errorf("Expected code %q, got %q", tc.wantCode, resp.Error.Code)
			}
			if resp.Error.RequestID != "req-123" {
				t.Errorf("Expected request ID to be echoed, got %q", resp.Error.RequestID)
			}
		})
	}
}

func TestHandleServiceError_ValidationFields(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	handleServiceError(rr, req, &services.ValidationError{
		Fields: map[string]string{"password": "Password must be at least 8 characters"},
	})

	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}

	if resp.Error.Fields["password"] == "" {
		t.Error("Expected field-level error for password")
	}
}

// ─── Questions Endpoint Tests ───

func questionsRouter() http.Handler {
	h := NewAssessmentHandler(nil)
	r := chi.NewRouter()
	r.Get("/assessment/questions/{module}", h.GetQuestions)
	return r
}

func TestGetQuestions_ValidModules(t *testing.T) {
	r := questionsRouter()

	for _, module := range []string{"1", "2"} {
		req := httptest.NewRequest(http.MethodGet, "/assessment/questions/"+module, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("module %s: expected 200, got %d", module, rr.Code)
		}

		var resp struct {
			Module    int               `json:"module"`
			Questions []json.RawMessage `json:"questions"`
		}
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("module %s: failed to decode response: %v", module, err)
		}
		if len(resp.Questions) == 0 {
			t.Errorf("module %s: expected a non-empty question list", module)
		}
	}
}

func TestGetQuestions_InvalidModule(t *testing.T) {
	r := questionsRouter()

	for _, module := range []string{"0", "3", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/assessment/questions/"+module, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("module %s: expected 400, got %d", module, rr.Code)
		}
	}
}

// ─── JSON Helper Tests ───

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()

	writeJSON(rr, http.StatusCreated, map[string]string{"message": "ok"})

	if rr.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got %q", rr.Header().Get("Content-Type"))
	}

	var result map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["message"] != "ok" {
		t.Errorf("Expected message 'ok', got %q", result["message"])
	}
}
