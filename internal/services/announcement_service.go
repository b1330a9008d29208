package services

import (
	"github.com/google/uuid"

	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/logger"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/repository"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/scoring"
)

// AnnouncementService runs the announcement date selector over an event's
// stored filings and writes the decision back to the event.
type AnnouncementService struct {
	repos    *repository.Repositories
	selector *scoring.Selector
	log      logger.Logger
}

// NewAnnouncementService creates the announcement service
func NewAnnouncementService(repos *repository.Repositories, log logger.Logger) *AnnouncementService {
	return &AnnouncementService{
		repos:    repos,
		selector: scoring.NewSelector(),
		log:      log,
	}
}

// Decide computes the announcement decision for an event without
// persisting anything. An unknown event is an error; an event with zero
// filings is a valid decision with a nil date.
func (s *AnnouncementService) Decide(eventID uuid.UUID) (*scoring.Decision, error) {
	event, err := s.repos.Events.GetByID(eventID)
	if err != nil {
		return nil, err
	}
	filings, err := s.repos.Filings.GetByEvent(eventID)
	if err != nil {
		return nil, err
	}
	return s.selector.Select(event, filings), nil
}

// Apply computes the decision and writes the announcement fields back to
// the event. A decision with no winner clears any previously stored
// announcement.
func (s *AnnouncementService) Apply(eventID uuid.UUID) (*scoring.Decision, error) {
	event, err := s.repos.Events.GetByID(eventID)
	if err != nil {
		return nil, err
	}
	filings, err := s.repos.Filings.GetByEvent(eventID)
	if err != nil {
		return nil, err
	}

	decision := s.selector.Select(event, filings)

	event.AnnouncementDate = decision.AnnouncementDate
	event.AnnouncementSource = ""
	event.AnnouncementScore = nil
	event.AnnouncementTier = ""
	event.AnnouncementForm = ""
	if best := decision.BestFiling; best != nil {
		source := best.DocumentURL
		if source == "" {
			source = best.Accession
		}
		event.AnnouncementSource = source
		score := best.Score
		event.AnnouncementScore = &score
		event.AnnouncementTier = string(best.Tier)
		event.AnnouncementForm = best.Form
	}

	if err := s.repos.Events.UpdateAnnouncement(event); err != nil {
		return nil, err
	}

	if decision.AnnouncementDate != nil {
		s.log.Info("announcement date selected", "ticker", event.Ticker,
			"date", decision.AnnouncementDate.Format("2006-01-02"),
			"form", event.AnnouncementForm, "score", *event.AnnouncementScore)
	} else {
		s.log.Info("no announcement date supported", "ticker", event.Ticker,
			"filings", decision.Summary.TotalFilings)
	}
	return decision, nil
}
