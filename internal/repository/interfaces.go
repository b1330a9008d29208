// Package repository implements Postgres persistence for split events and
// their EDGAR filings.
package repository

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/models"
)

// dbExecutor is the subset of *sql.DB the repositories need, so they work
// equally inside a transaction.
type dbExecutor interface {
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Exec(query string, args ...interface{}) (sql.Result, error)
}

// EventFilters narrows List results
type EventFilters struct {
	Ticker string
	Limit  int
	Offset int
}

// EventRepository manages split event records
type EventRepository interface {
	Create(event *models.SplitEvent) error
	GetByID(id uuid.UUID) (*models.SplitEvent, error)
	GetByTicker(ticker string) ([]*models.SplitEvent, error)
	List(filters EventFilters) ([]*models.SplitEvent, error)
	ListIDs() ([]uuid.UUID, error)
	UpdateAnnouncement(event *models.SplitEvent) error
}

// FilingRepository manages the filings collected for events
type FilingRepository interface {
	Upsert(filing *models.Filing) error
	GetByEvent(eventID uuid.UUID) ([]*models.Filing, error)
	CountByEvent(eventID uuid.UUID) (int, error)
	DeleteByEvent(eventID uuid.UUID) error
}

// Repositories bundles all repositories over one connection pool
type Repositories struct {
	Events  EventRepository
	Filings FilingRepository
}

// NewRepositories creates the repository set
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Events:  NewEventRepository(db),
		Filings: NewFilingRepository(db),
	}
}
