package handlers

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"example.com/subtrack/backend/internal/models"
)

// TestWriteSubscriptionsCSV проверяет заголовок и строки выгрузки.
func TestWriteSubscriptionsCSV(t *testing.T) {
	subs := []models.Subscription{
		{
			ID:          uuid.New(),
			Name:        "Netflix",
			Cost:        499.5,
			Currency:    "INR",
			Category:    "Entertainment",
			RenewalDate: "2026-09-01",
			CreatedAt:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writeSubscriptionsCSV(writer, subs); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	writer.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one record, got %d lines", len(lines))
	}

	if !strings.HasPrefix(lines[0], "id,name,cost") {
		t.Fatalf("unexpected header: %s", lines[0])
	}

	if !strings.Contains(lines[1], "Netflix") || !strings.Contains(lines[1], "499.5") {
		t.Fatalf("unexpected record: %s", lines[1])
	}
}

// TestWriteSubscriptionsCSVEmpty проверяет выгрузку без подписок.
func TestWriteSubscriptionsCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writeSubscriptionsCSV(writer, nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	writer.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected only header, got %d lines", len(lines))
	}
}

// TestNormalizeName проверяет обрезку пробелов и пустые имена.
func TestNormalizeName(t *testing.T) {
	if normalizeName(nil) != nil {
		t.Fatal("expected nil for nil input")
	}

	empty := "   "
	if normalizeName(&empty) != nil {
		t.Fatal("expected nil for blank name")
	}

	raw := "  Asha  "
	result := normalizeName(&raw)
	if result == nil || *result != "Asha" {
		t.Fatalf("expected trimmed name, got %v", result)
	}
}
