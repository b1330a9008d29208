package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/errors"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/models"
)

type eventRepository struct {
	db dbExecutor
}

// NewEventRepository creates a Postgres-backed event repository
func NewEventRepository(db dbExecutor) EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, ticker, company_name, execution_date, ratio_num, ratio_den,
	announcement_date, announcement_source, announcement_score,
	announcement_tier, announcement_form, created_at, updated_at`

func (r *eventRepository) Create(event *models.SplitEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	var ratioNum, ratioDen *int
	if event.Ratio != nil {
		ratioNum, ratioDen = &event.Ratio.Num, &event.Ratio.Den
	}

	query := `
		INSERT INTO split_events (id, ticker, company_name, execution_date,
			ratio_num, ratio_den, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(query,
		event.ID, event.Ticker, event.CompanyName, event.ExecutionDate,
		ratioNum, ratioDen, event.CreatedAt, event.UpdatedAt)
	if err != nil {
		return apperrors.DatabaseError("failed to create split event", err).
			WithOperation("EventRepository.Create")
	}
	return nil
}

func (r *eventRepository) GetByID(id uuid.UUID) (*models.SplitEvent, error) {
	query := fmt.Sprintf(`SELECT %s FROM split_events WHERE id = $1`, eventColumns)
	event, err := scanEvent(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound(fmt.Sprintf("split event %s not found", id), nil)
	}
	if err != nil {
		return nil, apperrors.DatabaseError("failed to get split event", err).
			WithOperation("EventRepository.GetByID")
	}
	return event, nil
}

func (r *eventRepository) GetByTicker(ticker string) ([]*models.SplitEvent, error) {
	query := fmt.Sprintf(`SELECT %s FROM split_events WHERE ticker = $1
		ORDER BY execution_date DESC NULLS LAST`, eventColumns)
	rows, err := r.db.Query(query, ticker)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to query events by ticker", err).
			WithOperation("EventRepository.GetByTicker")
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *eventRepository) List(filters EventFilters) ([]*models.SplitEvent, error) {
	query := fmt.Sprintf(`SELECT %s FROM split_events`, eventColumns)
	args := []interface{}{}

	if filters.Ticker != "" {
		args = append(args, filters.Ticker)
		query += fmt.Sprintf(" WHERE ticker = $%d", len(args))
	}
	query += " ORDER BY execution_date DESC NULLS LAST, created_at DESC"
	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filters.Offset > 0 {
		args = append(args, filters.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list split events", err).
			WithOperation("EventRepository.List")
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *eventRepository) ListIDs() ([]uuid.UUID, error) {
	rows, err := r.db.Query(`SELECT id FROM split_events ORDER BY created_at`)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list event ids", err).
			WithOperation("EventRepository.ListIDs")
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.DatabaseError("failed to scan event id", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *eventRepository) UpdateAnnouncement(event *models.SplitEvent) error {
	event.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE split_events
		SET announcement_date = $2, announcement_source = $3,
			announcement_score = $4, announcement_tier = $5,
			announcement_form = $6, updated_at = $7
		WHERE id = $1`
	result, err := r.db.Exec(query,
		event.ID, event.AnnouncementDate, event.AnnouncementSource,
		event.AnnouncementScore, event.AnnouncementTier, event.AnnouncementForm,
		event.UpdatedAt)
	if err != nil {
		return apperrors.DatabaseError("failed to update announcement", err).
			WithOperation("EventRepository.UpdateAnnouncement")
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return apperrors.NotFound(fmt.Sprintf("split event %s not found", event.ID), nil)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*models.SplitEvent, error) {
	var (
		event            models.SplitEvent
		executionDate    sql.NullTime
		ratioNum         sql.NullInt64
		ratioDen         sql.NullInt64
		announcementDate sql.NullTime
		announcementScor sql.NullInt64
	)
	err := row.Scan(
		&event.ID, &event.Ticker, &event.CompanyName, &executionDate,
		&ratioNum, &ratioDen,
		&announcementDate, &event.AnnouncementSource, &announcementScor,
		&event.AnnouncementTier, &event.AnnouncementForm,
		&event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if executionDate.Valid {
		event.ExecutionDate = &executionDate.Time
	}
	if ratioNum.Valid && ratioDen.Valid {
		event.Ratio = &models.Ratio{Num: int(ratioNum.Int64), Den: int(ratioDen.Int64)}
	}
	if announcementDate.Valid {
		event.AnnouncementDate = &announcementDate.Time
	}
	if announcementScor.Valid {
		score := int(announcementScor.Int64)
		event.AnnouncementScore = &score
	}
	return &event, nil
}

func scanEvents(rows *sql.Rows) ([]*models.SplitEvent, error) {
	var events []*models.SplitEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, apperrors.DatabaseError("failed to scan split event", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
