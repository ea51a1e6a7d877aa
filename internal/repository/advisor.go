package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdvisorRepository struct {
	db *pgxpool.Pool
}

type AdvisorRequestLog struct {
	UserID          uuid.UUID
	Provider        string
	Model           string
	Source          string
	Prompt          string
	RequestPayload  []byte
	ResponsePayload []byte
	RawResponse     string
	Success         bool
	ErrorMessage    *string
}

// NewAdvisorRepository создает репозиторий журнала AI-запросов.
func NewAdvisorRepository(db *pgxpool.Pool) *AdvisorRepository {
	return &AdvisorRepository{db: db}
}

// LogRequest сохраняет запись о запросе рекомендаций.
func (r *AdvisorRepository) LogRequest(ctx context.Context, log AdvisorRequestLog) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO advisor_requests
		 (user_id, provider, model, source, prompt, request_payload, response_payload, raw_response, success, error_message)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::jsonb, NULLIF($7, '')::jsonb, $8, $9, $10)`,
		log.UserID,
		log.Provider,
		log.Model,
		log.Source,
		log.Prompt,
		string(log.RequestPayload),
		string(log.ResponsePayload),
		log.RawResponse,
		log.Success,
		log.ErrorMessage,
	)
	return err
}
