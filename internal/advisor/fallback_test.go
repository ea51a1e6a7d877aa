package advisor

import (
	"reflect"
	"testing"
)

var sampleSubs = []SubscriptionInput{
	{Name: "Netflix", Cost: 500},
	{Name: "Spotify", Cost: 200},
	{Name: "Gym", Cost: 1000},
	{Name: "Prime", Cost: 300},
}

// TestSimulateTotalSavings проверяет двадцатипроцентную оценку экономии.
func TestSimulateTotalSavings(t *testing.T) {
	analysis := Simulate(sampleSubs)

	if analysis.TotalSavings != 400 {
		t.Fatalf("expected total savings 400, got %d", analysis.TotalSavings)
	}
}

// TestSimulateAlternatives проверяет, что берутся только первые две подписки.
func TestSimulateAlternatives(t *testing.T) {
	analysis := Simulate(sampleSubs)

	if len(analysis.Alternatives) != 2 {
		t.Fatalf("expected 2 alternatives, got %d", len(analysis.Alternatives))
	}

	first := analysis.Alternatives[0]
	if first.Current != "Netflix" || first.Alternative != "Netflix Student Plan" {
		t.Fatalf("unexpected first alternative: %+v", first)
	}
	if first.Savings != 150 {
		t.Fatalf("expected savings 150, got %d", first.Savings)
	}
}

// TestSimulateRedundantPair проверяет пару дублей при более чем трех подписках.
func TestSimulateRedundantPair(t *testing.T) {
	analysis := Simulate(sampleSubs)

	if len(analysis.Redundant) != 1 {
		t.Fatalf("expected 1 redundant pair, got %d", len(analysis.Redundant))
	}

	pair := analysis.Redundant[0]
	if !reflect.DeepEqual(pair.Services, []string{"Netflix", "Spotify"}) {
		t.Fatalf("unexpected pair: %v", pair.Services)
	}
}

// TestSimulateNoRedundantForSmallSet проверяет пустой список дублей при N <= 3.
func TestSimulateNoRedundantForSmallSet(t *testing.T) {
	analysis := Simulate(sampleSubs[:3])

	if len(analysis.Redundant) != 0 {
		t.Fatalf("expected no redundant pairs, got %d", len(analysis.Redundant))
	}
}

// TestSimulateDiscount проверяет скидку по первой подписке.
func TestSimulateDiscount(t *testing.T) {
	analysis := Simulate(sampleSubs)

	if len(analysis.Discounts) != 1 {
		t.Fatalf("expected 1 discount, got %d", len(analysis.Discounts))
	}

	discount := analysis.Discounts[0]
	if discount.Service != "Netflix" {
		t.Fatalf("expected Netflix, got %s", discount.Service)
	}
	if discount.Savings != 85 {
		t.Fatalf("expected floor(500*0.17) == 85, got %d", discount.Savings)
	}
}

// TestSimulateEmptyInputDefaults проверяет значения по умолчанию без подписок.
func TestSimulateEmptyInputDefaults(t *testing.T) {
	analysis := Simulate(nil)

	if analysis.Discounts[0].Service != "Netflix" {
		t.Fatalf("expected default service Netflix, got %s", analysis.Discounts[0].Service)
	}
	if analysis.Discounts[0].Savings != 85 {
		t.Fatalf("expected floor(500*0.17) == 85, got %d", analysis.Discounts[0].Savings)
	}
	if len(analysis.Alternatives) != 0 {
		t.Fatalf("expected no alternatives, got %d", len(analysis.Alternatives))
	}
}

// TestSimulateDeterministic проверяет воспроизводимость фолбэка.
func TestSimulateDeterministic(t *testing.T) {
	first := Simulate(sampleSubs)
	second := Simulate(sampleSubs)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical analyses, got %+v and %+v", first, second)
	}
}

// TestSimulateAdviceText проверяет подстановку итога в текст совета.
func TestSimulateAdviceText(t *testing.T) {
	analysis := Simulate(sampleSubs)

	want := "You're spending ₹2000/month on subscriptions. Consider annual plans and student discounts to save money. Look for free alternatives for services you rarely use."
	if analysis.Advice != want {
		t.Fatalf("unexpected advice text: %s", analysis.Advice)
	}
}

// TestSimulateFloorsFractionalCosts проверяет округление вниз на дробных суммах.
func TestSimulateFloorsFractionalCosts(t *testing.T) {
	analysis := Simulate([]SubscriptionInput{{Name: "Hosting", Cost: 199.99}})

	if analysis.TotalSavings != 39 {
		t.Fatalf("expected floor(199.99*0.20) == 39, got %d", analysis.TotalSavings)
	}
	if analysis.Alternatives[0].Savings != 59 {
		t.Fatalf("expected floor(199.99*0.30) == 59, got %d", analysis.Alternatives[0].Savings)
	}
}
