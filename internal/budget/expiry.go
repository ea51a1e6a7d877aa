package budget

import (
	"time"

	"example.com/subtrack/backend/internal/models"
)

// DefaultExpiryHorizonDays — окно, в котором продление считается близким.
const DefaultExpiryHorizonDays = 7

var renewalLayouts = []string{"2006-01-02", time.RFC3339}

// ExpiringWithin отбирает подписки, чье продление попадает в окно
// [now, now+horizonDays] включительно. Подписки без даты продления —
// разовые траты, они не участвуют; нечитаемая дата исключает запись.
// Порядок входа сохраняется.
func ExpiringWithin(subs []models.Subscription, now time.Time, horizonDays int) []models.Subscription {
	if horizonDays <= 0 {
		horizonDays = DefaultExpiryHorizonDays
	}

	deadline := now.AddDate(0, 0, horizonDays)
	expiring := make([]models.Subscription, 0)

	for _, sub := range subs {
		renewal, ok := ParseRenewalDate(sub.RenewalDate)
		if !ok {
			continue
		}

		if renewal.Before(now) || renewal.After(deadline) {
			continue
		}
		expiring = append(expiring, sub)
	}

	return expiring
}

// ParseRenewalDate разбирает дату продления в одном из поддерживаемых
// форматов. Пустая или нечитаемая строка дает ok=false.
func ParseRenewalDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range renewalLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}

	return time.Time{}, false
}
