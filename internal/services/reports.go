package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"gert-backend/internal/scoring"
)

// Report kinds. The respondent view hides the per-item cognitive answer
// breakdown; the client view shows everything.
const (
	ReportKindRespondent = "respondent"
	ReportKindClient     = "client"
)

// ReportService renders stored report data as standalone HTML pages.
type ReportService struct {
	tmpl *template.Template
}

func NewReportService() *ReportService {
	return &ReportService{
		tmpl: template.Must(template.New("report").Funcs(template.FuncMap{
			"pct": func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
		}).Parse(reportTemplate)),
	}
}

type reportPage struct {
	Report         scoring.Report
	IncludeDetails bool
}

// Render produces the HTML report for one kind from the stored JSON
// report data.
func (s *ReportService) Render(reportData json.RawMessage, kind string) (string, error) {
	var report scoring.Report
	if err := json.Unmarshal(reportData, &report); err != nil {
		return "", fmt.Errorf("failed to decode report data: %w", err)
	}

	page := reportPage{
		Report:         report,
		IncludeDetails: kind == ReportKindClient,
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Talent Portrait</title>
<style>
  body { font-family: 'Segoe UI', Arial, sans-serif; background: #f8fafc; color: #1e293b; margin: 0; }
  .wrap { max-width: 720px; margin: 32px auto; padding: 0 16px; }
  .card { background: white; border-radius: 12px; box-shadow: 0 4px 24px rgba(0,0,0,0.08); padding: 24px; margin-bottom: 24px; }
  h1 { font-size: 24px; color: #0f766e; }
  h2 { font-size: 18px; margin-top: 0; }
  table { width: 100%; border-collapse: collapse; font-size: 14px; }
  th, td { text-align: left; padding: 8px; border-bottom: 1px solid #e2e8f0; }
  th { color: #64748b; font-weight: 600; }
  .level { text-transform: capitalize; }
  .desc { color: #64748b; font-size: 13px; }
</style>
</head>
<body>
<div class="wrap">
  <h1>Talent Portrait</h1>

  <div class="card">
    <h2>Business Archetypes</h2>
    <table>
      <tr><th>Scale</th><th>Score</th><th>Percentage</th><th>Level</th></tr>
      {{range $name, $r := .Report.BusinessArchetypes}}
      <tr><td>{{$name}}</td><td>{{$r.Score}}</td><td>{{pct $r.Percentage}}</td><td class="level">{{$r.Level}}</td></tr>
      {{end}}
    </table>
  </div>

  <div class="card">
    <h2>Emotional Intelligence</h2>
    <table>
      <tr><th>Scale</th><th>Score</th><th>Percentage</th><th>Level</th></tr>
      {{range $name, $r := .Report.EmotionalIntelligence}}
      <tr><td>{{$name}}</td><td>{{$r.Score}}</td><td>{{pct $r.Percentage}}</td><td class="level">{{$r.Level}}</td></tr>
      {{end}}
    </table>
  </div>

  <div class="card">
    <h2>Team Roles</h2>
    <table>
      <tr><th>Role</th><th>Score</th><th>Percentage</th><th>Level</th></tr>
      {{range $name, $r := .Report.TeamRoles}}
      <tr><td>{{$name}}</td><td>{{$r.Score}}</td><td>{{pct $r.Percentage}}</td><td class="level">{{$r.Level}}</td></tr>
      {{end}}
    </table>
  </div>

  <div class="card">
    <h2>Motivation</h2>
    <table>
      <tr><th>Hygiene factor</th><th>Score</th><th>Percentage</th><th>Level</th></tr>
      {{range $name, $r := .Report.Motivation.HygieneFactors}}
      <tr><td>{{$name}}</td><td>{{$r.Score}}</td><td>{{pct $r.Percentage}}</td><td class="level">{{$r.Level}}</td></tr>
      {{end}}
    </table>
    <table>
      <tr><th>Motivation factor</th><th>Score</th><th>Percentage</th><th>Level</th></tr>
      {{range $name, $r := .Report.Motivation.MotivationFactors}}
      <tr><td>{{$name}}</td><td>{{$r.Score}}</td><td>{{pct $r.Percentage}}</td><td class="level">{{$r.Level}}</td></tr>
      {{end}}
    </table>
    <p class="desc">
      Leading hygiene factors:
      {{range .Report.Motivation.TopHygiene}}{{.Factor}} ({{pct .Result.Percentage}}) {{end}}
      &mdash; leading motivators:
      {{range .Report.Motivation.TopMotivation}}{{.Factor}} ({{pct .Result.Percentage}}) {{end}}
    </p>
  </div>

  <div class="card">
    <h2>Cognitive Abilities</h2>
    <p>
      Score {{.Report.IQ.Overall.Score}} &middot; {{pct .Report.IQ.Overall.Percentage}} &middot;
      <span class="level">{{.Report.IQ.Overall.Level}}</span>
    </p>
    <p class="desc">{{.Report.IQ.Overall.Description}}</p>
    <table>
      <tr><th>Subscale</th><th>Correct</th><th>Incorrect</th><th>Skipped</th><th>Total</th></tr>
      {{range $name, $c := .Report.IQ.Subscales}}
      <tr><td>{{$name}}</td><td>{{$c.Correct}}</td><td>{{$c.Incorrect}}</td><td>{{$c.Skipped}}</td><td>{{$c.Total}}</td></tr>
      {{end}}
    </table>
    {{if .IncludeDetails}}
    <table>
      <tr><th>Question</th><th>Answer</th><th>Correct answer</th><th>Result</th></tr>
      {{range $code, $d := .Report.IQ.Details}}
      <tr><td>{{$code}}</td><td>{{$d.UserAnswer}}</td><td>{{$d.CorrectAnswer}}</td><td>{{if $d.IsCorrect}}correct{{else}}incorrect{{end}}</td></tr>
      {{end}}
    </table>
    {{end}}
  </div>
</div>
</body>
</html>
`
