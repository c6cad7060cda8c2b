package models

import "encoding/json"

// ReportJob is queued on Redis when a session completes. The worker pool
// renders the HTML reports and sends the notification emails; failures are
// logged and dropped (at-most-once, best-effort).
type ReportJob struct {
	SessionID      int64           `json:"session_id"`
	ClientID       int64           `json:"client_id"`
	ReportToken    string          `json:"report_token"`
	CandidateEmail *string         `json:"candidate_email"`
	ReportData     json.RawMessage `json:"report_data"`
}

// WebSocket message types
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type ReportReadyEvent struct {
	SessionToken string `json:"session_token"`
	ReportToken  string `json:"report_token"`
}

// API Error response
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
