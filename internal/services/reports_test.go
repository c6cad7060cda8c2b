package services

import (
	"encoding/json"
	"strings"
	"testing"

	"gert-backend/internal/scoring"
)

func sampleReportData(t *testing.T) json.RawMessage {
	t.Helper()

	answers := map[string]any{
		"1_P1":  4.0,
		"1_Q13": 3.0,
		"1_BA":  map[string]any{"left": 7.0},
		"1_B1":  map[string]any{"left": 3.0},
		"2_q1":  "72",
	}
	data, err := json.Marshal(scoring.Calculate(answers))
	if err != nil {
		t.Fatalf("Failed to encode report: %v", err)
	}
	return data
}

func TestRender_RespondentOmitsAnswerDetails(t *testing.T) {
	svc := NewReportService()

	html, err := svc.Render(sampleReportData(t), ReportKindRespondent)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(html, "Talent Portrait") {
		t.Error("Expected report title in output")
	}
	if !strings.Contains(html, "Business Archetypes") {
		t.Error("Expected archetype section in output")
	}
	if strings.Contains(html, "Correct answer") {
		t.Error("Respondent view must not include the per-item answer breakdown")
	}
}

func TestRender_ClientIncludesAnswerDetails(t *testing.T) {
	svc := NewReportService()

	html, err := svc.Render(sampleReportData(t), ReportKindClient)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(html, "Correct answer") {
		t.Error("Client view should include the per-item answer breakdown")
	}
}

func TestRender_WrongAnswerMarkedIncorrect(t *testing.T) {
	svc := NewReportService()

	answers := map[string]any{"2_q8": "999999"}
	data, err := json.Marshal(scoring.Calculate(answers))
	if err != nil {
		t.Fatalf("Failed to encode report: %v", err)
	}

	html, err := svc.Render(data, ReportKindClient)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(html, "<td>incorrect</td>") {
		t.Error("Expected wrong answers marked incorrect in the result column")
	}
	if strings.Contains(html, "<td>numeric</td>") {
		t.Error("Result column must not leak the question type")
	}
}

func TestRender_RejectsMalformedData(t *testing.T) {
	svc := NewReportService()

	if _, err := svc.Render(json.RawMessage(`{not json`), ReportKindClient); err == nil {
		t.Error("Expected an error for malformed report data")
	}
}
