package budget

import (
	"reflect"
	"testing"

	"example.com/subtrack/backend/internal/models"
)

// TestMonthlySummaryTotals проверяет, что сумма разбивки равна итогу.
func TestMonthlySummaryTotals(t *testing.T) {
	subs := []models.Subscription{
		{Name: "Netflix", Cost: 500, Category: "Entertainment"},
		{Name: "Spotify", Cost: 200, Category: "Entertainment"},
		{Name: "Gym", Cost: 1000, Category: "Health"},
		{Name: "Prime", Cost: 300},
	}

	summary := MonthlySummary(subs, 4000)

	if summary.Total != 2000 {
		t.Fatalf("expected total 2000, got %v", summary.Total)
	}

	var byCategorySum float64
	for _, value := range summary.ByCategory {
		byCategorySum += value
	}
	if byCategorySum != summary.Total {
		t.Fatalf("expected category sum %v to equal total %v", byCategorySum, summary.Total)
	}
}

// TestMonthlySummaryOtherCategory проверяет сворачивание пустой категории в Other.
func TestMonthlySummaryOtherCategory(t *testing.T) {
	subs := []models.Subscription{
		{Name: "Prime", Cost: 300},
		{Name: "Hosting", Cost: 150, Category: ""},
	}

	summary := MonthlySummary(subs, 0)

	if summary.ByCategory[models.CategoryOther] != 450 {
		t.Fatalf("expected Other to hold 450, got %v", summary.ByCategory[models.CategoryOther])
	}
}

// TestMonthlySummaryEmpty проверяет пустой вход с заданным бюджетом.
func TestMonthlySummaryEmpty(t *testing.T) {
	summary := MonthlySummary(nil, 500)

	if summary.Total != 0 {
		t.Fatalf("expected total 0, got %v", summary.Total)
	}
	if len(summary.ByCategory) != 0 {
		t.Fatalf("expected empty breakdown, got %v", summary.ByCategory)
	}
	if summary.Budget != 500 {
		t.Fatalf("expected budget 500, got %v", summary.Budget)
	}
}

// TestMonthlySummaryIdempotent проверяет отсутствие скрытого состояния.
func TestMonthlySummaryIdempotent(t *testing.T) {
	subs := []models.Subscription{
		{Name: "Netflix", Cost: 500, Category: "Entertainment"},
		{Name: "Gym", Cost: 1000, Category: "Health"},
	}

	first := MonthlySummary(subs, 2000)
	second := MonthlySummary(subs, 2000)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical summaries, got %v and %v", first, second)
	}
}

// TestUsedPercentClamp проверяет потолок в 100 процентов.
func TestUsedPercentClamp(t *testing.T) {
	if got := UsedPercent(3000, 1000); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}

	if got := UsedPercent(500, 0); got != 0 {
		t.Fatalf("expected 0 without budget, got %d", got)
	}

	if got := UsedPercent(250, 1000); got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}
}

// TestUsageTierBoundaries проверяет границы зон бюджета.
func TestUsageTierBoundaries(t *testing.T) {
	cases := []struct {
		percent int
		want    Tier
	}{
		{0, TierNormal},
		{49, TierNormal},
		{50, TierWarning},
		{74, TierWarning},
		{75, TierCritical},
		{99, TierCritical},
		{100, TierOver},
	}

	for _, tc := range cases {
		if got := UsageTier(tc.percent); got != tc.want {
			t.Fatalf("percent %d: expected %s, got %s", tc.percent, tc.want, got)
		}
	}
}

// TestUsageTierExactBudget проверяет, что total == budget дает over-budget.
func TestUsageTierExactBudget(t *testing.T) {
	percent := UsedPercent(1000, 1000)
	if percent != 100 {
		t.Fatalf("expected 100, got %d", percent)
	}
	if got := UsageTier(percent); got != TierOver {
		t.Fatalf("expected over-budget, got %s", got)
	}
}
