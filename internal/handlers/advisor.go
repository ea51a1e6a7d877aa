package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/subtrack/backend/internal/advisor"
	"example.com/subtrack/backend/internal/auth"
	"example.com/subtrack/backend/internal/models"
	"example.com/subtrack/backend/internal/notifications"
	"example.com/subtrack/backend/internal/repository"
)

type AdvisorHandler struct {
	Service  *advisor.Service
	Repo     *repository.AdvisorRepository
	Notifier *notifications.Hub
	Provider string
	Model    string
}

// NewAdvisorHandler создает обработчик AI-рекомендаций.
func NewAdvisorHandler(service *advisor.Service, repo *repository.AdvisorRepository, notifier *notifications.Hub, provider, model string) *AdvisorHandler {
	return &AdvisorHandler{
		Service:  service,
		Repo:     repo,
		Notifier: notifier,
		Provider: provider,
		Model:    model,
	}
}

type RecommendationsRequest struct {
	Subscriptions []advisor.SubscriptionInput `json:"subscriptions"`
	Region        string                      `json:"region"`
}

type RecommendationsResponse struct {
	Success  bool             `json:"success"`
	Analysis advisor.Analysis `json:"analysis"`
	Source   advisor.Source   `json:"source"`
	Note     string           `json:"note,omitempty"`
}

// Recommendations анализирует присланные подписки. Отказ внешнего
// сервиса не становится ошибкой запроса: клиент получает фолбэк с
// пометкой источника.
func (h *AdvisorHandler) Recommendations(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req RecommendationsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}

	if len(req.Subscriptions) == 0 {
		return badRequest(c, "no subscriptions provided")
	}

	for i := range req.Subscriptions {
		if strings.TrimSpace(req.Subscriptions[i].Currency) == "" {
			req.Subscriptions[i].Currency = models.DefaultCurrency
		}
		if strings.TrimSpace(req.Subscriptions[i].Category) == "" {
			req.Subscriptions[i].Category = models.CategoryOther
		}
	}

	rec, err := h.Service.Recommend(c.Request().Context(), req.Subscriptions, req.Region)
	if err != nil {
		if errors.Is(err, advisor.ErrNoSubscriptions) {
			return badRequest(c, "no subscriptions provided")
		}
		return serverError(c)
	}

	h.logRequest(c.Request().Context(), userID, req, rec)

	if rec.Source == advisor.SourceFallback {
		slog.Warn("advisor fallback used",
			slog.String("user_id", userID.String()),
			slog.String("note", rec.Note),
		)
	}

	publishAdviceGenerated(h.Notifier, userID, rec.Source)

	return c.JSON(http.StatusOK, RecommendationsResponse{
		Success:  true,
		Analysis: rec.Analysis,
		Source:   rec.Source,
		Note:     rec.Note,
	})
}

func (h *AdvisorHandler) logRequest(ctx context.Context, userID uuid.UUID, req RecommendationsRequest, rec advisor.Recommendation) {
	requestPayload, _ := json.Marshal(req)
	responsePayload, _ := json.Marshal(rec.Analysis)

	log := repository.AdvisorRequestLog{
		UserID:          userID,
		Provider:        h.Provider,
		Model:           h.Model,
		Source:          string(rec.Source),
		Prompt:          rec.Prompt,
		RequestPayload:  requestPayload,
		ResponsePayload: responsePayload,
		RawResponse:     string(rec.Raw),
		Success:         rec.Err == nil,
	}
	if rec.Err != nil {
		errMsg := rec.Err.Error()
		log.ErrorMessage = &errMsg
	}

	if err := h.Repo.LogRequest(ctx, log); err != nil {
		slog.Error("failed to log advisor request",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
	}
}
