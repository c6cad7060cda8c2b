// Package scoring converts a completed session's raw answer map into the
// seven standardized Talent Portrait metrics. Calculate is a pure function
// over the "{module}_{question_code}" keyed answer mapping: no I/O, no
// state, safe to re-run. Missing items contribute zero (or count as skipped
// in the cognitive battery); the caller owns input completeness.
package scoring

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

type TestResult struct {
	Score       float64 `json:"score"`
	Percentage  float64 `json:"percentage"`
	Level       string  `json:"level"`
	Description string  `json:"description"`
}

type TopFactor struct {
	Factor string     `json:"factor"`
	Result TestResult `json:"result"`
}

type MotivationReport struct {
	HygieneFactors    map[string]TestResult `json:"hygiene_factors"`
	MotivationFactors map[string]TestResult `json:"motivation_factors"`
	TopHygiene        []TopFactor           `json:"top_hygiene"`
	TopMotivation     []TopFactor           `json:"top_motivation"`
}

type IQDetail struct {
	UserAnswer    any    `json:"user_answer"`
	CorrectAnswer any    `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Type          string `json:"type"`
}

type SubscaleCount struct {
	Total     int `json:"total"`
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
	Skipped   int `json:"skipped"`
}

type IQReport struct {
	Overall   TestResult               `json:"overall"`
	Details   map[string]IQDetail      `json:"details"`
	Subscales map[string]SubscaleCount `json:"subscales"`
}

type Report struct {
	BusinessArchetypes    map[string]TestResult `json:"business_archetypes"`
	EmotionalIntelligence map[string]TestResult `json:"emotional_intelligence"`
	TeamRoles             map[string]TestResult `json:"team_roles"`
	Motivation            MotivationReport      `json:"motivation"`
	IQ                    IQReport              `json:"iq"`
}

// Calculate runs all five scoring sub-passes over the flat answer map.
func Calculate(answers map[string]any) Report {
	return Report{
		BusinessArchetypes:    businessArchetypes(answers),
		EmotionalIntelligence: emotionalIntelligence(answers),
		TeamRoles:             teamRolesPass(answers),
		Motivation:            motivation(answers),
		IQ:                    iqBattery(answers),
	}
}

func businessArchetypes(answers map[string]any) map[string]TestResult {
	results := make(map[string]TestResult, len(archetypeScales))
	for _, scale := range archetypeScales {
		raw := 0.0
		for i := 1; i <= 12; i++ {
			raw += numValue(answers[fmt.Sprintf("1_%s%d", scale, i)])
		}
		percentage := archetypePercentMap[int(raw)]
		results[scale] = newTestResult(raw, percentage, archetypeLevel(raw))
	}
	return results
}

func archetypeLevel(score float64) string {
	switch {
	case score <= 19:
		return LevelLow
	case score <= 24:
		return LevelPotential
	case score <= 29:
		return LevelMedium
	default:
		return LevelHigh
	}
}

func emotionalIntelligence(answers map[string]any) map[string]TestResult {
	results := make(map[string]TestResult, len(eiScales)+1)
	total := 0.0
	for _, scale := range eiScales {
		raw := 0.0
		for _, q := range scale.Items {
			raw += numValue(answers[fmt.Sprintf("1_Q%d", q)])
		}
		total += raw
		results[scale.Name] = newTestResult(raw, clampPercent(raw*100/18), eiLevel(raw))
	}

	results["overall"] = newTestResult(total, clampPercent(total*100/90), overallEQLevel(total))
	return results
}

func eiLevel(score float64) string {
	switch {
	case score <= 7:
		return LevelLow
	case score <= 13:
		return LevelMedium
	default:
		return LevelHigh
	}
}

func overallEQLevel(score float64) string {
	switch {
	case score <= 39:
		return LevelLow
	case score <= 69:
		return LevelMedium
	default:
		return LevelHigh
	}
}

func teamRolesPass(answers map[string]any) map[string]TestResult {
	results := make(map[string]TestResult, len(teamRoles))
	for _, role := range teamRoles {
		raw := 0.0
		for _, code := range role.Codes {
			raw += numValue(answers["1_"+code])
		}
		percentage := clampPercent(raw * 100 / role.MaxScore)
		results[role.Name] = newTestResult(raw, percentage, teamRoleLevel(raw, role.Thresholds))
	}
	return results
}

func teamRoleLevel(score float64, thresholds [4]float64) string {
	switch {
	case score <= thresholds[0]:
		return LevelLow
	case score <= thresholds[1]:
		return LevelMedium
	case score <= thresholds[2]:
		return LevelHigh
	default:
		return LevelVeryHigh
	}
}

func motivation(answers map[string]any) MotivationReport {
	report := MotivationReport{
		HygieneFactors:    make(map[string]TestResult, len(hygieneFactors)),
		MotivationFactors: make(map[string]TestResult, len(motivationFactors)),
	}

	for _, factor := range hygieneFactors {
		raw := sumLeftValues(answers, factor.Codes)
		percentage := clampPercent(raw * 100 / 35)
		report.HygieneFactors[factor.Name] = newTestResult(raw, percentage, motivationLevel(percentage, true))
	}

	for _, factor := range motivationFactors {
		raw := sumLeftValues(answers, factor.Codes)
		percentage := clampPercent(raw * 100 / 35)
		report.MotivationFactors[factor.Name] = newTestResult(raw, percentage, motivationLevel(percentage, false))
	}

	report.TopHygiene = topFactors(hygieneFactors, report.HygieneFactors, 2)
	report.TopMotivation = topFactors(motivationFactors, report.MotivationFactors, 2)
	return report
}

func sumLeftValues(answers map[string]any, codes []string) float64 {
	total := 0.0
	for _, code := range codes {
		if pair, ok := answers["1_"+code].(map[string]any); ok {
			total += numValue(pair["left"])
		}
	}
	return total
}

// motivationLevel maps the same percentage bands to inverted labels for
// hygiene vs motivation factors: a mid-high hygiene percentage reads as
// positive while the same motivation-factor percentage reads as low.
func motivationLevel(percentage float64, isHygiene bool) string {
	switch {
	case percentage <= 25:
		if isHygiene {
			return LevelLow
		}
		return LevelHigh
	case percentage <= 50:
		return LevelMedium
	case percentage <= 75:
		if isHygiene {
			return LevelHigh
		}
		return LevelLow
	default:
		return LevelVeryHigh
	}
}

// topFactors returns the top-N factors by raw score, descending, with ties
// broken by the fixed table order.
func topFactors(order []factorScale, results map[string]TestResult, n int) []TopFactor {
	ranked := make([]TopFactor, 0, len(order))
	for _, factor := range order {
		ranked = append(ranked, TopFactor{Factor: factor.Name, Result: results[factor.Name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.Score > ranked[j].Result.Score
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func iqBattery(answers map[string]any) IQReport {
	details := make(map[string]IQDetail, len(iqAnswerKey))
	subscales := make(map[string]SubscaleCount, len(iqSubscales))
	for _, scale := range iqSubscales {
		subscales[scale.Name] = SubscaleCount{}
	}

	score := 0
	for code, correct := range iqAnswerKey {
		userAnswer, answered := answers["2_"+code]
		if userAnswer == nil {
			answered = false
		}

		qType, isCorrect := gradeIQAnswer(userAnswer, correct)
		details[code] = IQDetail{
			UserAnswer:    userAnswer,
			CorrectAnswer: correct,
			IsCorrect:     isCorrect,
			Type:          qType,
		}
		if isCorrect {
			score++
		}

		for _, scale := range iqSubscales {
			if !containsCode(scale.Codes, code) {
				continue
			}
			counts := subscales[scale.Name]
			counts.Total++
			switch {
			case !answered:
				counts.Skipped++
			case isCorrect:
				counts.Correct++
			default:
				counts.Incorrect++
			}
			subscales[scale.Name] = counts
		}
	}

	// Each correct item is worth 2%.
	percentage := clampPercent(float64(score) * 2)
	return IQReport{
		Overall:   newTestResult(float64(score), percentage, iqLevel(score)),
		Details:   details,
		Subscales: subscales,
	}
}

func gradeIQAnswer(userAnswer, correct any) (string, bool) {
	switch key := correct.(type) {
	case []string:
		return "multiple", multiSelectMatches(userAnswer, key)
	case float64:
		user, ok := asFloat(userAnswer)
		return "numeric", ok && math.Abs(user-key) < 0.01
	default:
		text, ok := userAnswer.(string)
		keyText := strings.ToLower(strings.TrimSpace(correct.(string)))
		return "text", ok && strings.ToLower(strings.TrimSpace(text)) == keyText
	}
}

func multiSelectMatches(userAnswer any, key []string) bool {
	selected, ok := userAnswer.([]any)
	if !ok || len(selected) == 0 {
		return false
	}

	want := make(map[string]struct{}, len(key))
	for _, option := range key {
		want[option] = struct{}{}
	}

	got := make(map[string]struct{}, len(selected))
	for _, option := range selected {
		s, ok := option.(string)
		if !ok {
			return false
		}
		got[s] = struct{}{}
	}

	if len(got) != len(want) {
		return false
	}
	for option := range want {
		if _, ok := got[option]; !ok {
			return false
		}
	}
	return true
}

func iqLevel(score int) string {
	switch {
	case score <= 13:
		return LevelLow
	case score <= 18:
		return LevelBelowAverage
	case score <= 24:
		return LevelMedium
	case score <= 29:
		return LevelAboveAverage
	default:
		return LevelHigh
	}
}

func newTestResult(score, percentage float64, level string) TestResult {
	description, ok := levelDescriptions[level]
	if !ok {
		description = undefinedLevelDescription
	}
	return TestResult{
		Score:       score,
		Percentage:  percentage,
		Level:       level,
		Description: description,
	}
}

func clampPercent(p float64) float64 {
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

// numValue reads a JSON-decoded scalar as a number; anything else is zero.
func numValue(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// asFloat parses a user-supplied numeric answer, accepting both JSON
// numbers and numeric strings.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func containsCode(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
