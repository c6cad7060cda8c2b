package catalog

import "testing"

func TestQuestions_ModuleSizes(t *testing.T) {
	// 48 archetype + 30 EI + 56 team role + 56 motivation items.
	if got := len(Questions(1)); got != 190 {
		t.Errorf("Expected 190 module-1 questions, got %d", got)
	}
	if got := len(Questions(2)); got != 50 {
		t.Errorf("Expected 50 module-2 questions, got %d", got)
	}
	if Questions(3) != nil {
		t.Error("Expected nil for an unknown module")
	}
}

// Codes repeat across scales (the team-role block B and the motivation
// pairs both start at B1), so the scale is part of a question's identity.
func TestQuestions_ScalePlusCodeIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, q := range Questions(1) {
		key := q.Scale + "/" + q.Code
		if seen[key] {
			t.Errorf("Duplicate question identity %q", key)
		}
		seen[key] = true
	}

	if !seen["team_roles/B1"] || !seen["motivation/B1"] {
		t.Error("Expected the colliding B1 codes to be split by scale")
	}
}

func TestQuestions_Module2Types(t *testing.T) {
	types := make(map[string]string, 50)
	for _, q := range Questions(2) {
		types[q.Code] = q.Type
	}

	for _, code := range []string{"q21", "q32", "q47"} {
		if types[code] != TypeMultiple {
			t.Errorf("Expected %s to be a multi-select item, got %q", code, types[code])
		}
	}
	if types["q8"] != TypeNumeric {
		t.Errorf("Expected q8 to be numeric, got %q", types["q8"])
	}
	if types["q1"] != TypeText {
		t.Errorf("Expected q1 to be free text, got %q", types["q1"])
	}
}
