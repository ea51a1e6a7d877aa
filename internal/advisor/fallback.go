package advisor

import (
	"math"
	"strconv"
)

const (
	fallbackDiscountOffer  = "Annual plan - 2 months free"
	fallbackRedundantNote  = "Both provide similar entertainment content"
	fallbackDefaultService = "Netflix"
	fallbackDefaultCost    = 500
)

// Simulate — детерминированный расчет рекомендации по фиксированным
// правилам. Для одинакового входа результат воспроизводится байт в
// байт; он же используется как фолбэк при отказе внешнего сервиса.
func Simulate(subs []SubscriptionInput) Analysis {
	var total float64
	for _, sub := range subs {
		total += sub.Cost
	}

	alternatives := make([]Alternative, 0, 2)
	for _, sub := range subs {
		if len(alternatives) == 2 {
			break
		}
		alternatives = append(alternatives, Alternative{
			Current:     sub.Name,
			Alternative: sub.Name + " Student Plan",
			Savings:     floorOf(sub.Cost * 0.30),
		})
	}

	discountService := fallbackDefaultService
	discountCost := float64(fallbackDefaultCost)
	if len(subs) > 0 {
		discountService = subs[0].Name
		discountCost = subs[0].Cost
	}

	redundant := make([]RedundantPair, 0, 1)
	if len(subs) > 3 {
		redundant = append(redundant, RedundantPair{
			Services: []string{subs[0].Name, subs[1].Name},
			Reason:   fallbackRedundantNote,
		})
	}

	return Analysis{
		TotalSavings: floorOf(total * 0.20),
		Alternatives: alternatives,
		Discounts: []Discount{
			{
				Service: discountService,
				Offer:   fallbackDiscountOffer,
				Savings: floorOf(discountCost * 0.17),
			},
		},
		Redundant: redundant,
		Advice: "You're spending ₹" + formatAmount(total) +
			"/month on subscriptions. Consider annual plans and student discounts to save money. " +
			"Look for free alternatives for services you rarely use.",
	}
}

func floorOf(value float64) int64 {
	return int64(math.Floor(value))
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
