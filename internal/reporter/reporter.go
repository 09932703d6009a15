package reporter

import (
	"encoding/json"
	"fmt"
	"time"

	"timeclock/internal/config"
	"timeclock/internal/database"
	"timeclock/internal/models"
)

// Reporter handles report generation
type Reporter struct {
	config *config.Config
	repo   *database.Repository
}

// New creates a new reporter
func New(cfg *config.Config, repo *database.Repository) *Reporter {
	return &Reporter{
		config: cfg,
		repo:   repo,
	}
}

// GenerateReport generates a per-project time report for the specified period
func (r *Reporter) GenerateReport(periodType string) (*models.Report, error) {
	period, err := r.getPeriod(periodType)
	if err != nil {
		return nil, err
	}

	// SQL does the SUM; derived fields and percentages are computed here.
	summaries, err := r.repo.GetProjectSummarySince(period.Start)
	if err != nil {
		return nil, fmt.Errorf("failed to get project summary: %w", err)
	}

	var totalSeconds int64
	for i := range summaries {
		summaries[i].TotalMinutes = float64(summaries[i].TotalSeconds) / 60.0
		summaries[i].TotalHours = float64(summaries[i].TotalSeconds) / 3600.0
		totalSeconds += summaries[i].TotalSeconds
	}

	if totalSeconds > 0 {
		for i := range summaries {
			summaries[i].Percentage = (float64(summaries[i].TotalSeconds) / float64(totalSeconds)) * 100.0
		}
	}

	report := &models.Report{
		Period:       *period,
		Projects:     summaries,
		TotalSeconds: totalSeconds,
		TotalMinutes: float64(totalSeconds) / 60.0,
		TotalHours:   float64(totalSeconds) / 3600.0,
		GeneratedAt:  time.Now(),
	}

	return report, nil
}

// getPeriod calculates the time range for the report
func (r *Reporter) getPeriod(periodType string) (*models.ReportPeriod, error) {
	loc := time.Local
	if tz := r.config.Report.TimeZone; tz != "" && tz != "Local" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid report timezone %q: %w", tz, err)
		}
		loc = parsed
	}

	now := time.Now().In(loc)
	var start, end time.Time

	switch periodType {
	case "day", "today":
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		end = start.Add(24 * time.Hour)

	case "week":
		// Start of week (Monday)
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday = 7
		}
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -(weekday - 1))
		end = start.AddDate(0, 0, 7)

	case "month":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 1, 0)

	default:
		return nil, fmt.Errorf("invalid period type: %s (valid: day, week, month)", periodType)
	}

	return &models.ReportPeriod{
		Start: start,
		End:   end,
		Type:  periodType,
	}, nil
}

// Period exposes the computed period bounds for handlers that list raw
// sessions rather than aggregates.
func (r *Reporter) Period(periodType string) (*models.ReportPeriod, error) {
	return r.getPeriod(periodType)
}

// FormatReportText formats the report as human-readable text
func (r *Reporter) FormatReportText(report *models.Report) string {
	output := fmt.Sprintf("Work Report - %s\n", report.Period.Type)
	output += fmt.Sprintf("Period: %s to %s\n",
		report.Period.Start.Format("2006-01-02 15:04"),
		report.Period.End.Format("2006-01-02 15:04"))
	output += fmt.Sprintf("Total Time: %.2fh (%.0fm)\n\n", report.TotalHours, report.TotalMinutes)

	if len(report.Projects) == 0 {
		output += "No sessions recorded for this period.\n"
		return output
	}

	output += fmt.Sprintf("%-30s %10s %10s %10s %10s\n", "Project", "Hours", "Minutes", "Sessions", "Percent")
	output += fmt.Sprintf("%s\n", "--------------------------------------------------------------------------------")

	for _, p := range report.Projects {
		output += fmt.Sprintf("%-30s %10.2f %10.0f %10d %9.1f%%\n",
			truncate(p.ProjectName, 30),
			p.TotalHours,
			p.TotalMinutes,
			p.SessionCount,
			p.Percentage)
	}

	return output
}

// FormatReportJSON formats the report as JSON
func (r *Reporter) FormatReportJSON(report *models.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// truncate shortens a string to at most maxLen runes, counting in runes so
// multibyte names are never cut mid-character.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
