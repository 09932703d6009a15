package logger

import (
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestCompactFormatter(t *testing.T) {
	f := &compactFormatter{}

	entry := &logrus.Entry{
		Time:    time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		Level:   logrus.InfoLevel,
		Message: "session started",
		Data:    logrus.Fields{"project": "acme", "task": "design"},
	}

	out, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	got := string(out)
	if !strings.HasPrefix(got, "[14.03.2025 09:30:00] - [info] - session started") {
		t.Errorf("unexpected prefix: %q", got)
	}
	if !strings.Contains(got, "project:acme") || !strings.Contains(got, "task:design") {
		t.Errorf("fields missing from output: %q", got)
	}
	if !strings.HasSuffix(got, "}\n") {
		t.Errorf("output should end with fields block and newline: %q", got)
	}
}

func TestCompactFormatterNoFields(t *testing.T) {
	f := &compactFormatter{}

	entry := &logrus.Entry{
		Time:    time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "capture failed",
	}

	out, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if string(out) != "[14.03.2025 09:30:00] - [warning] - capture failed\n" {
		t.Errorf("unexpected output: %q", out)
	}
}
