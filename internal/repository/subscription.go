package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/subtrack/backend/internal/models"
)

type SubscriptionRepository struct {
	db *pgxpool.Pool
}

type SubscriptionInput struct {
	Name        string
	Cost        float64
	Currency    string
	Category    string
	RenewalDate string
}

// NewSubscriptionRepository создает репозиторий подписок.
func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// ListByUser возвращает подписки пользователя, новые первыми.
func (r *SubscriptionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Subscription, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, cost, currency, category, renewal_date, created_at, updated_at
		 FROM subscriptions
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]models.Subscription, 0)
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subs, nil
}

// Create создает подписку пользователя.
func (r *SubscriptionRepository) Create(ctx context.Context, userID uuid.UUID, input SubscriptionInput) (models.Subscription, error) {
	var sub models.Subscription
	var category, renewalDate *string

	err := r.db.QueryRow(ctx,
		`INSERT INTO subscriptions (id, user_id, name, cost, currency, category, renewal_date)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''))
		 RETURNING id, user_id, name, cost, currency, category, renewal_date, created_at, updated_at`,
		uuid.New(), userID, input.Name, input.Cost, input.Currency, input.Category, input.RenewalDate,
	).Scan(&sub.ID, &sub.UserID, &sub.Name, &sub.Cost, &sub.Currency, &category, &renewalDate, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return sub, err
	}

	applyOptional(&sub, category, renewalDate)
	return sub, nil
}

// Update изменяет подписку; чужая или отсутствующая запись дает ErrNotFound.
func (r *SubscriptionRepository) Update(ctx context.Context, userID, id uuid.UUID, input SubscriptionInput) (models.Subscription, error) {
	var sub models.Subscription
	var category, renewalDate *string

	err := r.db.QueryRow(ctx,
		`UPDATE subscriptions
		 SET name = $3, cost = $4, currency = $5, category = NULLIF($6, ''), renewal_date = NULLIF($7, ''), updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, name, cost, currency, category, renewal_date, created_at, updated_at`,
		id, userID, input.Name, input.Cost, input.Currency, input.Category, input.RenewalDate,
	).Scan(&sub.ID, &sub.UserID, &sub.Name, &sub.Cost, &sub.Currency, &category, &renewalDate, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sub, ErrNotFound
		}
		return sub, err
	}

	applyOptional(&sub, category, renewalDate)
	return sub, nil
}

// Delete удаляет подписку пользователя.
func (r *SubscriptionRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM subscriptions WHERE id = $1 AND user_id = $2`,
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

func scanSubscription(rows pgx.Rows) (models.Subscription, error) {
	var sub models.Subscription
	var category, renewalDate *string

	err := rows.Scan(&sub.ID, &sub.UserID, &sub.Name, &sub.Cost, &sub.Currency, &category, &renewalDate, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return sub, err
	}

	applyOptional(&sub, category, renewalDate)
	return sub, nil
}

func applyOptional(sub *models.Subscription, category, renewalDate *string) {
	if category != nil {
		sub.Category = *category
	}
	if renewalDate != nil {
		sub.RenewalDate = *renewalDate
	}
}
