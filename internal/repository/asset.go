package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/subtrack/backend/internal/models"
)

type AssetRepository struct {
	db *pgxpool.Pool
}

type AssetInput struct {
	Name         string
	Value        float64
	PurchaseDate string
	Category     string
}

// NewAssetRepository создает репозиторий активов.
func NewAssetRepository(db *pgxpool.Pool) *AssetRepository {
	return &AssetRepository{db: db}
}

// ListByUser возвращает активы пользователя, новые первыми.
func (r *AssetRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Asset, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, value, purchase_date, category, created_at, updated_at
		 FROM assets
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := make([]models.Asset, 0)
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assets, nil
}

// Create создает актив пользователя.
func (r *AssetRepository) Create(ctx context.Context, userID uuid.UUID, input AssetInput) (models.Asset, error) {
	var asset models.Asset
	var purchaseDate, category *string

	err := r.db.QueryRow(ctx,
		`INSERT INTO assets (id, user_id, name, value, purchase_date, category)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''))
		 RETURNING id, user_id, name, value, purchase_date, category, created_at, updated_at`,
		uuid.New(), userID, input.Name, input.Value, input.PurchaseDate, input.Category,
	).Scan(&asset.ID, &asset.UserID, &asset.Name, &asset.Value, &purchaseDate, &category, &asset.CreatedAt, &asset.UpdatedAt)
	if err != nil {
		return asset, err
	}

	applyAssetOptional(&asset, purchaseDate, category)
	return asset, nil
}

// Update изменяет актив; чужая или отсутствующая запись дает ErrNotFound.
func (r *AssetRepository) Update(ctx context.Context, userID, id uuid.UUID, input AssetInput) (models.Asset, error) {
	var asset models.Asset
	var purchaseDate, category *string

	err := r.db.QueryRow(ctx,
		`UPDATE assets
		 SET name = $3, value = $4, purchase_date = NULLIF($5, ''), category = NULLIF($6, ''), updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, name, value, purchase_date, category, created_at, updated_at`,
		id, userID, input.Name, input.Value, input.PurchaseDate, input.Category,
	).Scan(&asset.ID, &asset.UserID, &asset.Name, &asset.Value, &purchaseDate, &category, &asset.CreatedAt, &asset.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return asset, ErrNotFound
		}
		return asset, err
	}

	applyAssetOptional(&asset, purchaseDate, category)
	return asset, nil
}

// Delete удаляет актив пользователя.
func (r *AssetRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM assets WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func scanAsset(rows pgx.Rows) (models.Asset, error) {
	var asset models.Asset
	var purchaseDate, category *string

	err := rows.Scan(&asset.ID, &asset.UserID, &asset.Name, &asset.Value, &purchaseDate, &category, &asset.CreatedAt, &asset.UpdatedAt)
	if err != nil {
		return asset, err
	}

	applyAssetOptional(&asset, purchaseDate, category)
	return asset, nil
}

func applyAssetOptional(asset *models.Asset, purchaseDate, category *string) {
	if purchaseDate != nil {
		asset.PurchaseDate = *purchaseDate
	}
	if category != nil {
		asset.Category = *category
	}
}
