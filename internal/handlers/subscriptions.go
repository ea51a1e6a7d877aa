package handlers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/subtrack/backend/internal/auth"
	"example.com/subtrack/backend/internal/budget"
	"example.com/subtrack/backend/internal/models"
	"example.com/subtrack/backend/internal/notifications"
	"example.com/subtrack/backend/internal/repository"
)

const timeLayout = time.RFC3339

type SubscriptionHandler struct {
	Subscriptions *repository.SubscriptionRepository
	Users         *repository.UserRepository
	Notifier      *notifications.Hub
}

// NewSubscriptionHandler создает обработчик подписок.
func NewSubscriptionHandler(subscriptions *repository.SubscriptionRepository, users *repository.UserRepository, notifier *notifications.Hub) *SubscriptionHandler {
	return &SubscriptionHandler{
		Subscriptions: subscriptions,
		Users:         users,
		Notifier:      notifier,
	}
}

type SubscriptionRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Cost        float64 `json:"cost" validate:"gte=0"`
	Currency    string  `json:"currency" validate:"omitempty,max=10"`
	Category    string  `json:"category" validate:"omitempty,max=100"`
	RenewalDate string  `json:"renewal_date" validate:"omitempty,max=40"`
}

type SubscriptionsResponse struct {
	Subscriptions []models.Subscription `json:"subscriptions"`
}

// List возвращает подписки пользователя.
func (h *SubscriptionHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	subs, err := h.Subscriptions.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, SubscriptionsResponse{Subscriptions: subs})
}

// Create создает подписку.
func (h *SubscriptionHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	input, err := bindSubscriptionInput(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	sub, err := h.Subscriptions.Create(c.Request().Context(), userID, input)
	if err != nil {
		return serverError(c)
	}

	h.notifyBudgetChange(c, userID)
	return c.JSON(http.StatusCreated, sub)
}

// Update изменяет подписку владельца.
func (h *SubscriptionHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid subscription id")
	}

	input, err := bindSubscriptionInput(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	sub, err := h.Subscriptions.Update(c.Request().Context(), userID, id, input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "subscription not found")
		}
		return serverError(c)
	}

	h.notifyBudgetChange(c, userID)
	return c.JSON(http.StatusOK, sub)
}

// Delete удаляет подписку владельца.
func (h *SubscriptionHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid subscription id")
	}

	if err := h.Subscriptions.Delete(c.Request().Context(), userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "subscription not found")
		}
		return serverError(c)
	}

	h.notifyBudgetChange(c, userID)
	return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
}

// Expiring возвращает подписки с продлением в ближайшем окне.
func (h *SubscriptionHandler) Expiring(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	days := budget.DefaultExpiryHorizonDays
	if raw := strings.TrimSpace(c.QueryParam("days")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return badRequest(c, "invalid days")
		}
		if parsed > 90 {
			parsed = 90
		}
		days = parsed
	}

	subs, err := h.Subscriptions.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	expiring := budget.ExpiringWithin(subs, time.Now().UTC().Truncate(24*time.Hour), days)
	return c.JSON(http.StatusOK, SubscriptionsResponse{Subscriptions: expiring})
}

// ExportJSON выгружает подписки пользователя в JSON-файл.
func (h *SubscriptionHandler) ExportJSON(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	subs, err := h.Subscriptions.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	filename := "subscriptions-" + userID.String() + ".json"
	c.Response().Header().Set(echo.HeaderContentType, "application/json")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.JSON(http.StatusOK, SubscriptionsResponse{Subscriptions: subs})
}

// ExportCSV выгружает подписки пользователя в CSV-файл.
func (h *SubscriptionHandler) ExportCSV(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	subs, err := h.Subscriptions.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writeSubscriptionsCSV(writer, subs); err != nil {
		return serverError(c)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	filename := "subscriptions-" + userID.String() + ".csv"
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *SubscriptionHandler) notifyBudgetChange(c echo.Context, userID uuid.UUID) {
	user, err := h.Users.GetByID(c.Request().Context(), userID)
	if err != nil {
		return
	}

	subs, err := h.Subscriptions.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return
	}

	publishBudgetUpdate(h.Notifier, userID, budget.MonthlySummary(subs, user.Budget))
}

func bindSubscriptionInput(c echo.Context) (repository.SubscriptionInput, error) {
	var req SubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return repository.SubscriptionInput{}, errors.New("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return repository.SubscriptionInput{}, errors.New("validation failed")
	}

	if req.Cost < 0 {
		return repository.SubscriptionInput{}, errors.New("cost cannot be negative")
	}

	currency := strings.TrimSpace(req.Currency)
	if currency == "" {
		currency = models.DefaultCurrency
	}

	renewalDate := strings.TrimSpace(req.RenewalDate)
	if renewalDate != "" {
		if _, ok := budget.ParseRenewalDate(renewalDate); !ok {
			return repository.SubscriptionInput{}, errors.New("invalid renewal date")
		}
	}

	return repository.SubscriptionInput{
		Name:        strings.TrimSpace(req.Name),
		Cost:        req.Cost,
		Currency:    currency,
		Category:    strings.TrimSpace(req.Category),
		RenewalDate: renewalDate,
	}, nil
}

func writeSubscriptionsCSV(writer *csv.Writer, subs []models.Subscription) error {
	header := []string{
		"id",
		"name",
		"cost",
		"currency",
		"category",
		"renewal_date",
		"created_at",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, sub := range subs {
		record := []string{
			sub.ID.String(),
			sub.Name,
			strconv.FormatFloat(sub.Cost, 'f', -1, 64),
			sub.Currency,
			sub.Category,
			sub.RenewalDate,
			sub.CreatedAt.Format(timeLayout),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}
