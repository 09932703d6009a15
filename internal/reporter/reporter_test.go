package reporter

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"timeclock/internal/config"
	"timeclock/internal/database"
	"timeclock/internal/models"
)

func newTestReporter(t *testing.T) (*Reporter, *database.Repository) {
	t.Helper()

	db, err := database.Connect(filepath.Join(t.TempDir(), "report.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Initialize(); err != nil {
		t.Fatal(err)
	}

	repo := database.NewRepository(db)
	return New(config.Default(), repo), repo
}

func seedSessions(t *testing.T, repo *database.Repository) {
	t.Helper()

	acme := &models.Project{Name: "acme"}
	if err := repo.CreateProject(acme); err != nil {
		t.Fatal(err)
	}
	internal := &models.Project{Name: "internal"}
	if err := repo.CreateProject(internal); err != nil {
		t.Fatal(err)
	}

	design := &models.Task{ProjectID: acme.ID, Name: "design"}
	ops := &models.Task{ProjectID: internal.ID, Name: "ops"}
	for _, task := range []*models.Task{design, ops} {
		if err := repo.CreateTask(task); err != nil {
			t.Fatal(err)
		}
	}

	now := time.Now()
	closed := func(projectID, taskID uint, ago time.Duration, seconds int64) {
		start := now.Add(-ago)
		end := start.Add(time.Duration(seconds) * time.Second)
		if err := repo.CreateSession(&models.Session{
			ProjectID: projectID, TaskID: taskID,
			StartedAt: start, EndedAt: &end, DurationSeconds: seconds,
		}); err != nil {
			t.Fatal(err)
		}
	}

	closed(acme.ID, design.ID, 2*time.Minute, 2700)
	closed(acme.ID, design.ID, 4*time.Minute, 900)
	closed(internal.ID, ops.ID, 3*time.Minute, 1200)
}

func TestGenerateReport(t *testing.T) {
	rep, repo := newTestReporter(t)
	seedSessions(t, repo)

	report, err := rep.GenerateReport("day")
	if err != nil {
		t.Fatalf("GenerateReport() error = %v", err)
	}

	if report.TotalSeconds != 4800 {
		t.Errorf("total seconds = %d, want 4800", report.TotalSeconds)
	}
	if len(report.Projects) != 2 {
		t.Fatalf("got %d projects, want 2", len(report.Projects))
	}
	if report.Projects[0].ProjectName != "acme" {
		t.Errorf("top project = %s, want acme (most time)", report.Projects[0].ProjectName)
	}
	if got := report.Projects[0].Percentage; got < 74.9 || got > 75.1 {
		t.Errorf("acme percentage = %.2f, want 75", got)
	}
	if report.Projects[0].TotalHours != 1.0 {
		t.Errorf("acme hours = %.2f, want 1.0", report.Projects[0].TotalHours)
	}
}

func TestGenerateReportEmpty(t *testing.T) {
	rep, _ := newTestReporter(t)

	report, err := rep.GenerateReport("week")
	if err != nil {
		t.Fatalf("GenerateReport() error = %v", err)
	}
	if report.TotalSeconds != 0 || len(report.Projects) != 0 {
		t.Errorf("empty database should produce an empty report, got %+v", report)
	}

	text := rep.FormatReportText(report)
	if !strings.Contains(text, "No sessions recorded") {
		t.Errorf("empty report text missing placeholder: %s", text)
	}
}

func TestGenerateReportInvalidPeriod(t *testing.T) {
	rep, _ := newTestReporter(t)

	if _, err := rep.GenerateReport("fortnight"); err == nil {
		t.Error("invalid period should be an error")
	}
}

func TestPeriodBounds(t *testing.T) {
	rep, _ := newTestReporter(t)

	for _, periodType := range []string{"day", "week", "month"} {
		t.Run(periodType, func(t *testing.T) {
			period, err := rep.Period(periodType)
			if err != nil {
				t.Fatalf("Period(%s) error = %v", periodType, err)
			}

			now := time.Now()
			if period.Start.After(now) {
				t.Errorf("period start %v is in the future", period.Start)
			}
			if !period.End.After(now) {
				t.Errorf("period end %v is not in the future", period.End)
			}
		})
	}

	week, err := rep.Period("week")
	if err != nil {
		t.Fatal(err)
	}
	if week.Start.Weekday() != time.Monday {
		t.Errorf("week starts on %v, want Monday", week.Start.Weekday())
	}
}

func TestPeriodTimezone(t *testing.T) {
	rep, _ := newTestReporter(t)
	rep.config.Report.TimeZone = "UTC"

	period, err := rep.Period("day")
	if err != nil {
		t.Fatalf("Period() error = %v", err)
	}
	if h, m, s := period.Start.UTC().Clock(); h != 0 || m != 0 || s != 0 {
		t.Errorf("UTC day should start at midnight UTC, got %v", period.Start)
	}

	rep.config.Report.TimeZone = "Not/AZone"
	if _, err := rep.Period("day"); err == nil {
		t.Error("invalid timezone should be an error")
	}
}

func TestFormatReportText(t *testing.T) {
	rep, repo := newTestReporter(t)
	seedSessions(t, repo)

	report, err := rep.GenerateReport("day")
	if err != nil {
		t.Fatal(err)
	}

	text := rep.FormatReportText(report)
	for _, want := range []string{"Work Report - day", "acme", "internal", "Project"} {
		if !strings.Contains(text, want) {
			t.Errorf("report text missing %q:\n%s", want, text)
		}
	}
}

func TestFormatReportJSON(t *testing.T) {
	rep, repo := newTestReporter(t)
	seedSessions(t, repo)

	report, err := rep.GenerateReport("day")
	if err != nil {
		t.Fatal(err)
	}

	out, err := rep.FormatReportJSON(report)
	if err != nil {
		t.Fatalf("FormatReportJSON() error = %v", err)
	}
	if !strings.Contains(out, "\"total_seconds\": 4800") {
		t.Errorf("JSON missing total: %s", out)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{"short", "acme", 30, "acme"},
		{"exact", "abcdefghij", 10, "abcdefghij"},
		{"long", "abcdefghijk", 10, "abcdefg..."},
		{"multibyte", "日本語プロジェクト名称データベース移行", 10, "日本語プロジェ..."},
		{"multibyte fits", "日本語", 10, "日本語"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) produced invalid UTF-8", tt.in, tt.maxLen)
			}
		})
	}
}
