package advisor

// SubscriptionInput — запись подписки в том виде, в котором ее
// присылает клиент на анализ.
type SubscriptionInput struct {
	Name        string  `json:"name"`
	Cost        float64 `json:"cost"`
	Currency    string  `json:"currency,omitempty"`
	Category    string  `json:"category,omitempty"`
	RenewalDate string  `json:"renewalDate,omitempty"`
}

type Alternative struct {
	Current     string `json:"current"`
	Alternative string `json:"alternative"`
	Savings     int64  `json:"savings"`
}

type Discount struct {
	Service string `json:"service"`
	Offer   string `json:"offer"`
	Savings int64  `json:"savings"`
}

type RedundantPair struct {
	Services []string `json:"services"`
	Reason   string   `json:"reason"`
}

// Analysis — итоговая рекомендация; форма одинакова независимо от
// того, сгенерировал ее внешний сервис или локальный фолбэк.
type Analysis struct {
	TotalSavings int64           `json:"totalSavings"`
	Alternatives []Alternative   `json:"alternatives"`
	Discounts    []Discount      `json:"discounts"`
	Redundant    []RedundantPair `json:"redundant"`
	Advice       string          `json:"advice"`
}

type Source string

const (
	SourceGenerated Source = "ai"
	SourceFallback  Source = "fallback"
)

// Recommendation нормализует оба пути генерации: вызывающему коду не
// нужно знать, какой из них сработал.
type Recommendation struct {
	Analysis Analysis
	Source   Source
	Note     string
	Prompt   string
	Raw      []byte
	Err      error
}
