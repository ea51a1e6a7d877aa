package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/subtrack/backend/internal/auth"
	"example.com/subtrack/backend/internal/budget"
	"example.com/subtrack/backend/internal/notifications"
	"example.com/subtrack/backend/internal/repository"
)

type UserHandler struct {
	Users         *repository.UserRepository
	Subscriptions *repository.SubscriptionRepository
	Notifier      *notifications.Hub
}

// NewUserHandler создает обработчик профиля и бюджета.
func NewUserHandler(users *repository.UserRepository, subscriptions *repository.SubscriptionRepository, notifier *notifications.Hub) *UserHandler {
	return &UserHandler{
		Users:         users,
		Subscriptions: subscriptions,
		Notifier:      notifier,
	}
}

type UpdateBudgetRequest struct {
	Budget *float64 `json:"budget" validate:"required,gte=0"`
}

type BudgetResponse struct {
	Budget float64 `json:"budget"`
}

// Me возвращает профиль текущего пользователя.
func (h *UserHandler) Me(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	user, err := h.Users.GetByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "user not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, UserResponse{User: toAuthUser(user)})
}

// UpdateBudget выставляет месячный бюджет; отрицательные и
// отсутствующие значения отклоняются.
func (h *UserHandler) UpdateBudget(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req UpdateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "invalid budget amount")
	}

	user, err := h.Users.UpdateBudget(c.Request().Context(), userID, *req.Budget)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "user not found")
		}
		return serverError(c)
	}

	subs, err := h.Subscriptions.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	summary := budget.MonthlySummary(subs, user.Budget)
	publishBudgetUpdate(h.Notifier, userID, summary)

	return c.JSON(http.StatusOK, BudgetResponse{Budget: user.Budget})
}

// MonthlySummary возвращает месячный итог, разбивку по категориям и
// состояние бюджета.
func (h *UserHandler) MonthlySummary(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	user, err := h.Users.GetByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "user not found")
		}
		return serverError(c)
	}

	subs, err := h.Subscriptions.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, budget.MonthlySummary(subs, user.Budget))
}
