package advisor

import "context"

const defaultMaxTokens = 2048

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client — провайдер генеративного текста. Возвращает текст ответа и
// сырой ответ API для журналирования.
type Client interface {
	Chat(ctx context.Context, messages []Message) (string, []byte, error)
}

func resolveMaxTokens(value int) int {
	if value > 0 {
		return value
	}

	return defaultMaxTokens
}
