package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
)

var ErrNoSubscriptions = errors.New("no subscriptions provided")

type Service struct {
	client Client
}

// NewService создает сервис рекомендаций поверх генеративного клиента.
func NewService(client Client) *Service {
	return &Service{client: client}
}

// Recommend строит промпт по подпискам, запрашивает внешний сервис и
// разбирает ответ. Любой отказ внешнего пути (ключ, квота, сеть,
// нечитаемый JSON) поглощается детерминированным фолбэком — вызывающий
// код всегда получает пригодную рекомендацию. Единственная ошибка —
// пустой вход, это нарушение предусловия.
func (s *Service) Recommend(ctx context.Context, subs []SubscriptionInput, region string) (Recommendation, error) {
	if len(subs) == 0 {
		return Recommendation{}, ErrNoSubscriptions
	}

	prompt := buildPrompt(subs, region)
	messages := []Message{
		{Role: "system", Content: "You are a financial advisor. Respond with JSON only, without extra text."},
		{Role: "user", Content: prompt},
	}

	content, raw, err := s.client.Chat(ctx, messages)
	if err != nil {
		return fallbackRecommendation(subs, prompt, raw, err), nil
	}

	analysis, ok := parseAnalysis(content)
	if !ok {
		return fallbackRecommendation(subs, prompt, raw, errors.New("ai response does not contain json")), nil
	}

	return Recommendation{
		Analysis: analysis,
		Source:   SourceGenerated,
		Prompt:   prompt,
		Raw:      raw,
	}, nil
}

func fallbackRecommendation(subs []SubscriptionInput, prompt string, raw []byte, err error) Recommendation {
	return Recommendation{
		Analysis: Simulate(subs),
		Source:   SourceFallback,
		Note:     ClassifyFailure(err),
		Prompt:   prompt,
		Raw:      raw,
		Err:      err,
	}
}

func buildPrompt(subs []SubscriptionInput, region string) string {
	if strings.TrimSpace(region) == "" {
		region = "India"
	}

	var list strings.Builder
	var total float64
	for _, sub := range subs {
		category := sub.Category
		if category == "" {
			category = "Other"
		}
		fmt.Fprintf(&list, "- %s: ₹%s/month (Category: %s)\n", sub.Name, formatAmount(sub.Cost), category)
		total += sub.Cost
	}

	return fmt.Sprintf(`You are a financial advisor AI for %s. Analyze these subscriptions (total ₹%s/month) and provide recommendations.

Requirements:
- Output JSON only, no code fences, no extra text.
- Schema:
{
  "totalSavings": integer,
  "alternatives": [{"current": string, "alternative": string, "savings": integer}],
  "discounts": [{"service": string, "offer": string, "savings": integer}],
  "redundant": [{"services": [string, string], "reason": string}],
  "advice": string
}
- All savings are whole-number monthly amounts.
- Keep advice under 300 characters.

Subscriptions:
%s`, region, formatAmount(total), list.String())
}

func parseAnalysis(content string) (Analysis, bool) {
	payload, ok := ExtractJSONObject(content)
	if !ok {
		return Analysis{}, false
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		return Analysis{}, false
	}

	if analysis.TotalSavings < 0 {
		analysis.TotalSavings = 0
	}
	return analysis, true
}

// ExtractJSONObject вычленяет первый сбалансированный JSON-объект из
// произвольного текста. Сервис может обернуть JSON в комментарии или
// код-блоки, поэтому строгий разбор всего ответа не годится;
// отсутствие объекта — ожидаемый исход, не ошибка.
func ExtractJSONObject(input string) (string, bool) {
	start := strings.IndexByte(input, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(input); i++ {
		ch := input[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				candidate := input[start : i+1]
				if json.Valid([]byte(candidate)) {
					return candidate, true
				}
				return "", false
			}
		}
	}

	return "", false
}

// ClassifyFailure переводит ошибку внешнего пути в короткую категорию
// для сообщения клиенту; детали остаются в логах.
func ClassifyFailure(err error) string {
	if err == nil {
		return ""
	}

	message := strings.ToLower(err.Error())

	switch {
	case strings.Contains(message, "api key is missing"):
		return "configuration error"
	case strings.Contains(message, "quota"), strings.Contains(message, "rate limit"), strings.Contains(message, "429"):
		return "temporarily degraded, showing fallback"
	case isNetworkError(err):
		return "connectivity error"
	default:
		return "recommendation service unavailable, showing fallback"
	}
}

func isNetworkError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, context.DeadlineExceeded)
}
