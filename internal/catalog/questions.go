// Package catalog supplies the fixed question definitions per assessment
// module, used for client-facing rendering only. The scoring engine keys
// its items independently; changing this catalog never changes scoring.
// Prompt wording ships with the frontend bundle keyed by question code.
package catalog

import "fmt"

const (
	TypeLikert       = "likert"
	TypeDistribution = "distribution"
	TypeText         = "text"
	TypeNumeric      = "numeric"
	TypeMultiple     = "multiple"
)

type Question struct {
	Code    string   `json:"code"`
	Type    string   `json:"type"`
	Scale   string   `json:"scale,omitempty"`
	Min     int      `json:"min,omitempty"`
	Max     int      `json:"max,omitempty"`
	Points  int      `json:"points,omitempty"` // distribution budget per item
	Options []string `json:"options,omitempty"`
}

var (
	module1 = buildModule1()
	module2 = buildModule2()
)

// Questions returns the fixed definitions for module 1 or 2, nil otherwise.
func Questions(module int) []Question {
	switch module {
	case 1:
		return module1
	case 2:
		return module2
	}
	return nil
}

func buildModule1() []Question {
	var qs []Question

	// Business archetype items: four scales of twelve statements each,
	// rated 0-4.
	for _, scale := range []string{"P", "A", "E", "I"} {
		for i := 1; i <= 12; i++ {
			qs = append(qs, Question{
				Code:  fmt.Sprintf("%s%d", scale, i),
				Type:  TypeLikert,
				Scale: "business_archetypes",
				Max:   4,
			})
		}
	}

	// Emotional intelligence items Q13-Q42, rated 0-3.
	for i := 13; i <= 42; i++ {
		qs = append(qs, Question{
			Code:  fmt.Sprintf("Q%d", i),
			Type:  TypeLikert,
			Scale: "emotional_intelligence",
			Max:   3,
		})
	}

	// Team role blocks: seven sections of eight statements, ten points
	// distributed per section.
	for _, block := range []string{"B", "D", "F", "H", "J", "L", "N"} {
		for i := 1; i <= 8; i++ {
			qs = append(qs, Question{
				Code:   fmt.Sprintf("%s%d", block, i),
				Type:   TypeDistribution,
				Scale:  "team_roles",
				Points: 10,
			})
		}
	}

	// Motivation pairs B1-B56: five points split between the left and
	// right statement of each pair.
	for i := 1; i <= 56; i++ {
		qs = append(qs, Question{
			Code:   fmt.Sprintf("B%d", i),
			Type:   TypeDistribution,
			Scale:  "motivation",
			Points: 5,
		})
	}

	return qs
}

func buildModule2() []Question {
	multiOptions := map[string][]string{
		"q21": {"1", "2", "3", "4", "5"},
		"q32": {"1", "2", "3", "4", "5"},
		"q47": {"1", "2", "3", "4", "5"},
	}
	numericItems := map[string]bool{
		"q8": true, "q10": true, "q12": true, "q13": true, "q15": true,
		"q17": true, "q18": true, "q22": true, "q25": true, "q27": true,
		"q31": true, "q33": true, "q37": true, "q39": true, "q40": true,
		"q42": true, "q44": true, "q45": true, "q46": true, "q49": true,
		"q50": true,
	}

	qs := make([]Question, 0, 50)
	for i := 1; i <= 50; i++ {
		code := fmt.Sprintf("q%d", i)
		q := Question{Code: code, Type: TypeText, Scale: "iq"}
		if options, ok := multiOptions[code]; ok {
			q.Type = TypeMultiple
			q.Options = options
		} else if numericItems[code] {
			q.Type = TypeNumeric
		}
		qs = append(qs, q)
	}
	return qs
}
