package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/subtrack/backend/internal/auth"
	"example.com/subtrack/backend/internal/models"
	"example.com/subtrack/backend/internal/repository"
)

type AssetHandler struct {
	Assets *repository.AssetRepository
}

// NewAssetHandler создает обработчик активов.
func NewAssetHandler(assets *repository.AssetRepository) *AssetHandler {
	return &AssetHandler{Assets: assets}
}

type AssetRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Value        float64 `json:"value" validate:"gte=0"`
	PurchaseDate string  `json:"purchase_date" validate:"omitempty,max=40"`
	Category     string  `json:"category" validate:"omitempty,max=100"`
}

type AssetsResponse struct {
	Assets []models.Asset `json:"assets"`
}

// List возвращает активы пользователя.
func (h *AssetHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	assets, err := h.Assets.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, AssetsResponse{Assets: assets})
}

// Create создает актив.
func (h *AssetHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	input, err := bindAssetInput(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	asset, err := h.Assets.Create(c.Request().Context(), userID, input)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, asset)
}

// Update изменяет актив владельца.
func (h *AssetHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid asset id")
	}

	input, err := bindAssetInput(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	asset, err := h.Assets.Update(c.Request().Context(), userID, id, input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "asset not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, asset)
}

// Delete удаляет актив владельца.
func (h *AssetHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid asset id")
	}

	if err := h.Assets.Delete(c.Request().Context(), userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "asset not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
}

func bindAssetInput(c echo.Context) (repository.AssetInput, error) {
	var req AssetRequest
	if err := c.Bind(&req); err != nil {
		return repository.AssetInput{}, errors.New("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return repository.AssetInput{}, errors.New("validation failed")
	}

	return repository.AssetInput{
		Name:         strings.TrimSpace(req.Name),
		Value:        req.Value,
		PurchaseDate: strings.TrimSpace(req.PurchaseDate),
		Category:     strings.TrimSpace(req.Category),
	}, nil
}
