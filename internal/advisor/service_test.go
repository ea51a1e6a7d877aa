package advisor

import (
	"context"
	"errors"
	"testing"
)

type fakeClient struct {
	content string
	raw     []byte
	err     error
}

func (f *fakeClient) Chat(ctx context.Context, messages []Message) (string, []byte, error) {
	return f.content, f.raw, f.err
}

// TestRecommendGeneratedPath проверяет разбор JSON, обернутого в комментарий.
func TestRecommendGeneratedPath(t *testing.T) {
	client := &fakeClient{
		content: "Here is the analysis you asked for:\n" +
			`{"totalSavings": 120, "alternatives": [], "discounts": [], "redundant": [], "advice": "Switch to annual plans."}` +
			"\nLet me know if you need more.",
	}
	service := NewService(client)

	rec, err := service.Recommend(context.Background(), sampleSubs, "India")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if rec.Source != SourceGenerated {
		t.Fatalf("expected generated source, got %s", rec.Source)
	}
	if rec.Analysis.TotalSavings != 120 {
		t.Fatalf("expected total savings 120, got %d", rec.Analysis.TotalSavings)
	}
	if rec.Note != "" {
		t.Fatalf("expected no note, got %s", rec.Note)
	}
}

// TestRecommendFallbackOnClientError проверяет фолбэк при отказе клиента.
func TestRecommendFallbackOnClientError(t *testing.T) {
	client := &fakeClient{err: errors.New("gemini api error: quota exceeded")}
	service := NewService(client)

	rec, err := service.Recommend(context.Background(), sampleSubs, "")
	if err != nil {
		t.Fatalf("expected failure to be absorbed, got %v", err)
	}

	if rec.Source != SourceFallback {
		t.Fatalf("expected fallback source, got %s", rec.Source)
	}
	if rec.Analysis.TotalSavings != 400 {
		t.Fatalf("expected deterministic savings 400, got %d", rec.Analysis.TotalSavings)
	}
	if rec.Note != "temporarily degraded, showing fallback" {
		t.Fatalf("unexpected note: %s", rec.Note)
	}
	if rec.Err == nil {
		t.Fatal("expected upstream error to be kept for logging")
	}
}

// TestRecommendFallbackOnUnparsableResponse проверяет фолбэк без JSON в ответе.
func TestRecommendFallbackOnUnparsableResponse(t *testing.T) {
	client := &fakeClient{content: "I cannot produce structured output today."}
	service := NewService(client)

	rec, err := service.Recommend(context.Background(), sampleSubs, "India")
	if err != nil {
		t.Fatalf("expected failure to be absorbed, got %v", err)
	}

	if rec.Source != SourceFallback {
		t.Fatalf("expected fallback source, got %s", rec.Source)
	}
}

// TestRecommendEmptyInput проверяет отказ на пустом входе.
func TestRecommendEmptyInput(t *testing.T) {
	service := NewService(&fakeClient{})

	if _, err := service.Recommend(context.Background(), nil, "India"); !errors.Is(err, ErrNoSubscriptions) {
		t.Fatalf("expected ErrNoSubscriptions, got %v", err)
	}
}

// TestExtractJSONObject проверяет выделение первого сбалансированного объекта.
func TestExtractJSONObject(t *testing.T) {
	payload, ok := ExtractJSONObject(`noise {"a": "value with } brace", "b": {"c": 1}} trailing {"d": 2}`)
	if !ok {
		t.Fatal("expected object to be found")
	}
	if payload != `{"a": "value with } brace", "b": {"c": 1}}` {
		t.Fatalf("unexpected payload: %s", payload)
	}

	if _, ok := ExtractJSONObject("no braces here"); ok {
		t.Fatal("expected no object")
	}

	if _, ok := ExtractJSONObject(`{"unterminated": `); ok {
		t.Fatal("expected unbalanced object to fail")
	}
}

// TestClassifyFailure проверяет категории ошибок внешнего пути.
func TestClassifyFailure(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{errors.New("groq api key is missing"), "configuration error"},
		{errors.New("groq api error: rate limit reached"), "temporarily degraded, showing fallback"},
		{context.DeadlineExceeded, "connectivity error"},
		{errors.New("something odd"), "recommendation service unavailable, showing fallback"},
		{nil, ""},
	}

	for _, tc := range cases {
		if got := ClassifyFailure(tc.err); got != tc.want {
			t.Fatalf("error %v: expected %q, got %q", tc.err, tc.want, got)
		}
	}
}
