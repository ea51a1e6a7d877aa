package budget

import (
	"testing"
	"time"

	"example.com/subtrack/backend/internal/models"
)

// TestExpiringWithinWindow проверяет включение границ семидневного окна.
func TestExpiringWithinWindow(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	subs := []models.Subscription{
		{Name: "today", RenewalDate: "2024-03-01"},
		{Name: "seventh", RenewalDate: "2024-03-08"},
		{Name: "eighth", RenewalDate: "2024-03-09"},
		{Name: "past", RenewalDate: "2024-02-28"},
		{Name: "one-time"},
	}

	expiring := ExpiringWithin(subs, now, 7)

	if len(expiring) != 2 {
		t.Fatalf("expected 2 expiring subscriptions, got %d", len(expiring))
	}
	if expiring[0].Name != "today" || expiring[1].Name != "seventh" {
		t.Fatalf("unexpected order: %s, %s", expiring[0].Name, expiring[1].Name)
	}
}

// TestExpiringWithinMalformedDate проверяет, что нечитаемая дата исключается.
func TestExpiringWithinMalformedDate(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	subs := []models.Subscription{
		{Name: "broken", RenewalDate: "03/05/2024"},
	}

	if got := ExpiringWithin(subs, now, 7); len(got) != 0 {
		t.Fatalf("expected no results, got %d", len(got))
	}
}

// TestExpiringWithinDefaultHorizon проверяет подстановку окна по умолчанию.
func TestExpiringWithinDefaultHorizon(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	subs := []models.Subscription{
		{Name: "inside", RenewalDate: "2024-03-06"},
	}

	if got := ExpiringWithin(subs, now, 0); len(got) != 1 {
		t.Fatalf("expected default horizon to include subscription, got %d", len(got))
	}
}

// TestParseRenewalDateLayouts проверяет поддерживаемые форматы даты.
func TestParseRenewalDateLayouts(t *testing.T) {
	if _, ok := ParseRenewalDate("2024-03-05"); !ok {
		t.Fatal("expected date-only layout to parse")
	}

	if _, ok := ParseRenewalDate("2024-03-05T00:00:00Z"); !ok {
		t.Fatal("expected RFC3339 layout to parse")
	}

	if _, ok := ParseRenewalDate(""); ok {
		t.Fatal("expected empty date to fail")
	}
}
