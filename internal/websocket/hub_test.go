package websocket

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return token
}

func wsRequest(token string) *http.Request {
	url := "/ws"
	if token != "" {
		url += "?token=" + token
	}
	return httptest.NewRequest(http.MethodGet, url, nil)
}

func TestHandleWebSocket_RejectsMissingToken(t *testing.T) {
	hub := NewHub(nil, testSecret)
	rr := httptest.NewRecorder()

	hub.HandleWebSocket(rr, wsRequest(""))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for missing token, got %d", rr.Code)
	}
}

func TestHandleWebSocket_RejectsUnsignedToken(t *testing.T) {
	hub := NewHub(nil, testSecret)
	rr := httptest.NewRecorder()

	claims := jwt.MapClaims{
		"client_id": 7,
		"exp":       time.Now().Add(time.Hour).Unix(),
	}
	token := signedToken(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, claims)

	hub.HandleWebSocket(rr, wsRequest(token))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for alg=none token, got %d", rr.Code)
	}
}

func TestHandleWebSocket_RejectsWrongSecret(t *testing.T) {
	hub := NewHub(nil, testSecret)
	rr := httptest.NewRecorder()

	claims := jwt.MapClaims{
		"client_id": 7,
		"exp":       time.Now().Add(time.Hour).Unix(),
	}
	token := signedToken(t, jwt.SigningMethodHS256, []byte("other-secret"), claims)

	hub.HandleWebSocket(rr, wsRequest(token))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for wrong signing key, got %d", rr.Code)
	}
}

func TestHandleWebSocket_RejectsAdminToken(t *testing.T) {
	hub := NewHub(nil, testSecret)
	rr := httptest.NewRecorder()

	// Admin tokens carry client_id 0 and have no company channel.
	claims := jwt.MapClaims{
		"client_id": 0,
		"exp":       time.Now().Add(time.Hour).Unix(),
	}
	token := signedToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims)

	hub.HandleWebSocket(rr, wsRequest(token))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for a token without a client company, got %d", rr.Code)
	}
}
