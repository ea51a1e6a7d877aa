package budget

import (
	"math"

	"example.com/subtrack/backend/internal/models"
)

// Tier — пороговая зона использования бюджета, управляет подсветкой
// прогресс-бара на клиенте.
type Tier string

const (
	TierNormal   Tier = "normal"
	TierWarning  Tier = "warning"
	TierCritical Tier = "critical"
	TierOver     Tier = "over-budget"
)

type Summary struct {
	Total       float64            `json:"total"`
	ByCategory  map[string]float64 `json:"by_category"`
	Budget      float64            `json:"budget"`
	UsedPercent int                `json:"used_percent"`
	Tier        Tier               `json:"tier"`
}

// MonthlySummary считает месячный итог и разбивку по категориям.
// Подписки без категории складываются в "Other"; сумма разбивки
// всегда равна итогу.
func MonthlySummary(subs []models.Subscription, budget float64) Summary {
	summary := Summary{
		ByCategory: make(map[string]float64),
		Budget:     budget,
	}

	for _, sub := range subs {
		category := sub.Category
		if category == "" {
			category = models.CategoryOther
		}

		summary.Total += sub.Cost
		summary.ByCategory[category] += sub.Cost
	}

	summary.UsedPercent = UsedPercent(summary.Total, budget)
	summary.Tier = UsageTier(summary.UsedPercent)
	return summary
}

// UsedPercent возвращает долю израсходованного бюджета в процентах,
// округленную до целого и ограниченную сверху сотней.
func UsedPercent(total, budget float64) int {
	if budget <= 0 {
		return 0
	}

	percent := int(math.Round(total / budget * 100))
	if percent > 100 {
		return 100
	}
	return percent
}

// UsageTier сопоставляет процент использования с зоной: [0,50) normal,
// [50,75) warning, [75,100) critical, 100 over-budget.
func UsageTier(usedPercent int) Tier {
	switch {
	case usedPercent < 50:
		return TierNormal
	case usedPercent < 75:
		return TierWarning
	case usedPercent < 100:
		return TierCritical
	default:
		return TierOver
	}
}
