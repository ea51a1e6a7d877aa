package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository struct {
	db *pgxpool.Pool
}

type AdminUser struct {
	ID        uuid.UUID
	Email     string
	Name      *string
	Budget    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type AdvisorRequestFilter struct {
	UserID  *uuid.UUID
	Success *bool
	Source  *string
}

type AdvisorRequestRecord struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Provider        string
	Model           string
	Source          string
	Prompt          *string
	RequestPayload  []byte
	ResponsePayload []byte
	RawResponse     *string
	Success         bool
	ErrorMessage    *string
	CreatedAt       time.Time
}

type DailyCount struct {
	Day   time.Time
	Count int
}

type UsageStats struct {
	Users                int
	Subscriptions        int
	Assets               int
	AdvisorRequests      int
	AdvisorSuccess       int
	AdvisorFail          int
	AdvisorRequestsByDay []DailyCount
}

// NewAdminRepository создает репозиторий для админских запросов.
func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

// ListUsers возвращает список пользователей с пагинацией.
func (r *AdminRepository) ListUsers(ctx context.Context, limit, offset int) ([]AdminUser, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, email, name, budget, created_at, updated_at
		 FROM users
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]AdminUser, 0)
	for rows.Next() {
		var user AdminUser
		var name *string
		if err := rows.Scan(&user.ID, &user.Email, &name, &user.Budget, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		user.Name = name
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// CountUsers возвращает общее количество пользователей.
func (r *AdminRepository) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// ListAdvisorRequests возвращает журнал AI-запросов с фильтрацией.
func (r *AdminRepository) ListAdvisorRequests(ctx context.Context, filter AdvisorRequestFilter, limit, offset int, includePayloads bool) ([]AdvisorRequestRecord, error) {
	where, args := buildAdvisorRequestWhere(filter)

	columns := "id, user_id, provider, model, source, success, error_message, created_at"
	if includePayloads {
		columns = "id, user_id, provider, model, source, prompt, request_payload, response_payload, raw_response, success, error_message, created_at"
	}

	limitParam := len(args) + 1
	offsetParam := len(args) + 2
	query := fmt.Sprintf("SELECT %s FROM advisor_requests%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d", columns, where, limitParam, offsetParam)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]AdvisorRequestRecord, 0)
	for rows.Next() {
		var record AdvisorRequestRecord
		if includePayloads {
			if err := rows.Scan(
				&record.ID,
				&record.UserID,
				&record.Provider,
				&record.Model,
				&record.Source,
				&record.Prompt,
				&record.RequestPayload,
				&record.ResponsePayload,
				&record.RawResponse,
				&record.Success,
				&record.ErrorMessage,
				&record.CreatedAt,
			); err != nil {
				return nil, err
			}
		} else {
			if err := rows.Scan(
				&record.ID,
				&record.UserID,
				&record.Provider,
				&record.Model,
				&record.Source,
				&record.Success,
				&record.ErrorMessage,
				&record.CreatedAt,
			); err != nil {
				return nil, err
			}
		}
		requests = append(requests, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// CountAdvisorRequests возвращает количество AI-запросов по фильтру.
func (r *AdminRepository) CountAdvisorRequests(ctx context.Context, filter AdvisorRequestFilter) (int, error) {
	where, args := buildAdvisorRequestWhere(filter)

	query := fmt.Sprintf("SELECT COUNT(*) FROM advisor_requests%s", where)
	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// UsageStats возвращает агрегированную статистику за N дней.
func (r *AdminRepository) UsageStats(ctx context.Context, days int) (UsageStats, error) {
	stats := UsageStats{}
	if days <= 0 {
		return stats, ErrInvalid
	}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&stats.Users); err != nil {
		return stats, err
	}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM subscriptions`).Scan(&stats.Subscriptions); err != nil {
		return stats, err
	}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM assets`).Scan(&stats.Assets); err != nil {
		return stats, err
	}

	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE success),
		        COUNT(*) FILTER (WHERE NOT success)
		 FROM advisor_requests`,
	).Scan(&stats.AdvisorRequests, &stats.AdvisorSuccess, &stats.AdvisorFail); err != nil {
		return stats, err
	}

	start := time.Now().UTC().AddDate(0, 0, -days+1)
	rows, err := r.db.Query(ctx,
		`SELECT date_trunc('day', created_at)::date AS day,
		        COUNT(*)
		 FROM advisor_requests
		 WHERE created_at >= $1
		 GROUP BY day
		 ORDER BY day DESC`,
		start,
	)
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	stats.AdvisorRequestsByDay = make([]DailyCount, 0)
	for rows.Next() {
		var row DailyCount
		if err := rows.Scan(&row.Day, &row.Count); err != nil {
			return stats, err
		}
		stats.AdvisorRequestsByDay = append(stats.AdvisorRequestsByDay, row)
	}

	if err := rows.Err(); err != nil {
		return stats, err
	}

	return stats, nil
}

func buildAdvisorRequestWhere(filter AdvisorRequestFilter) (string, []interface{}) {
	clauses := make([]string, 0)
	args := make([]interface{}, 0)

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id = $%d", len(args)))
	}

	if filter.Success != nil {
		args = append(args, *filter.Success)
		clauses = append(clauses, fmt.Sprintf("success = $%d", len(args)))
	}

	if filter.Source != nil {
		args = append(args, *filter.Source)
		clauses = append(clauses, fmt.Sprintf("source = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}
