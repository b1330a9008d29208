// Package services holds the business workflows: enriching events with
// EDGAR filings, deciding announcement dates, and the batch pipeline that
// runs both.
package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/edgar"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/extract"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/logger"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/models"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/repository"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/scoring"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/pkg/config"
)

// EnrichmentStatus describes the outcome of enriching one event.
type EnrichmentStatus string

const (
	StatusSuccess           EnrichmentStatus = "success"
	StatusAlreadyProcessed  EnrichmentStatus = "already_processed"
	StatusNoCIK             EnrichmentStatus = "no_cik"
	StatusNoFilingsData     EnrichmentStatus = "no_filings_data"
	StatusNoFilingsInWindow EnrichmentStatus = "no_filings_in_window"
)

// EdgarGateway is the slice of the EDGAR client the service needs.
type EdgarGateway interface {
	CompanyTickers(ctx context.Context) (*edgar.CIKMapping, error)
	Submissions(ctx context.Context, cik string) (*edgar.Submissions, error)
	Document(ctx context.Context, cik, accession, primaryDoc string) (string, error)
	DocumentURL(cik, accession, primaryDoc string) string
}

// EnrichmentResult reports what happened for one event.
type EnrichmentResult struct {
	EventID          uuid.UUID        `json:"event_id"`
	Ticker           string           `json:"ticker"`
	Status           EnrichmentStatus `json:"status"`
	CIK              string           `json:"cik,omitempty"`
	WindowStart      time.Time        `json:"window_start,omitempty"`
	WindowEnd        time.Time        `json:"window_end,omitempty"`
	FilingsFound     int              `json:"filings_found"`
	FilingsProcessed int              `json:"filings_processed"`
	HistoricalSplit  bool             `json:"historical_split,omitempty"`
	Reason           string           `json:"reason,omitempty"`
}

// EnrichmentService downloads, parses, and scores the EDGAR filings of a
// split event and persists them.
type EnrichmentService struct {
	repos   *repository.Repositories
	gateway EdgarGateway
	engine  *scoring.Engine
	cfg     *config.Config
	log     logger.Logger

	mu      sync.Mutex
	mapping *edgar.CIKMapping
}

// NewEnrichmentService creates the enrichment service
func NewEnrichmentService(repos *repository.Repositories, gateway EdgarGateway, cfg *config.Config, log logger.Logger) *EnrichmentService {
	return &EnrichmentService{
		repos:   repos,
		gateway: gateway,
		engine:  scoring.NewEngine(),
		cfg:     cfg,
		log:     log,
	}
}

// EnrichEvent runs the full collection workflow for one event: resolve the
// CIK, fetch the filing history, filter to the event's window, then
// download, extract, score, and upsert each filing. With skipExisting set,
// an event that already has filings is left untouched; without it, the
// event's filings are cleared and re-collected. A filing that fails to
// download or parse is skipped; its siblings continue.
func (s *EnrichmentService) EnrichEvent(ctx context.Context, eventID uuid.UUID, skipExisting bool) (*EnrichmentResult, error) {
	event, err := s.repos.Events.GetByID(eventID)
	if err != nil {
		return nil, err
	}

	result := &EnrichmentResult{EventID: event.ID, Ticker: event.Ticker}

	if skipExisting {
		count, err := s.repos.Filings.CountByEvent(event.ID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			result.Status = StatusAlreadyProcessed
			result.FilingsFound = count
			return result, nil
		}
	} else {
		// A forced re-collection starts clean so filings that fell out of
		// the window or form set do not linger.
		if err := s.repos.Filings.DeleteByEvent(event.ID); err != nil {
			return nil, err
		}
	}

	mapping, err := s.cikMapping(ctx)
	if err != nil {
		return nil, err
	}
	cik, ok := mapping.Resolve(event.Ticker, event.CompanyName)
	if !ok {
		result.Status = StatusNoCIK
		result.Reason = "ticker and company name not found in EDGAR directory"
		return result, nil
	}
	result.CIK = cik

	subs, err := s.gateway.Submissions(ctx, cik)
	if err != nil {
		s.log.Warn("failed to fetch submissions", "ticker", event.Ticker, "cik", cik, "error", err.Error())
		result.Status = StatusNoFilingsData
		result.Reason = err.Error()
		return result, nil
	}

	start, end := edgar.Window(event.ExecutionDate, time.Now().UTC(),
		s.cfg.WindowDaysBefore, s.cfg.WindowDaysAfter, s.cfg.FallbackWindowDays)
	result.WindowStart, result.WindowEnd = start, end

	refs := subs.FilterWindow(start, end, s.cfg.MaxFilingsPerEvent)
	result.FilingsFound = len(refs)
	if len(refs) == 0 {
		result.Status = StatusNoFilingsInWindow
		result.HistoricalSplit = subs.PredatesHistory(event.ExecutionDate)
		if result.HistoricalSplit {
			result.Reason = "execution date predates available EDGAR history"
		}
		return result, nil
	}

	ref := scoring.Reference{Ratio: event.Ratio, ExecutionDate: event.ExecutionDate}
	for _, fr := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.processFiling(ctx, event, cik, fr, ref); err != nil {
			s.log.Warn("skipping filing", "ticker", event.Ticker, "accession", fr.Accession, "error", err.Error())
			continue
		}
		result.FilingsProcessed++
	}

	result.Status = StatusSuccess
	s.log.Info("event enriched", "ticker", event.Ticker, "cik", cik,
		"found", result.FilingsFound, "processed", result.FilingsProcessed)
	return result, nil
}

func (s *EnrichmentService) processFiling(ctx context.Context, event *models.SplitEvent, cik string, fr edgar.FilingRef, ref scoring.Reference) error {
	body, err := s.gateway.Document(ctx, cik, fr.Accession, fr.PrimaryDocument)
	if err != nil {
		return err
	}
	text, err := edgar.DocumentText(body)
	if err != nil {
		return err
	}

	filing := &models.Filing{
		Accession:   fr.Accession,
		EventID:     event.ID,
		CIK:         cik,
		Form:        fr.Form,
		FilingDate:  fr.FilingDate,
		DocumentURL: s.gateway.DocumentURL(cik, fr.Accession, fr.PrimaryDocument),
	}
	extract.Apply(text, filing)

	sf := s.engine.Score(filing, ref)
	filing.Score = &sf.Score
	filing.Tier = string(sf.Tier)
	filing.CandidateAnnounceDate = sf.CandidateAnnounceDate

	return s.repos.Filings.Upsert(filing)
}

// cikMapping fetches the EDGAR company directory once and caches it for
// the lifetime of the service.
func (s *EnrichmentService) cikMapping(ctx context.Context) (*edgar.CIKMapping, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mapping != nil {
		return s.mapping, nil
	}
	mapping, err := s.gateway.CompanyTickers(ctx)
	if err != nil {
		return nil, err
	}
	s.mapping = mapping
	s.log.Info("loaded EDGAR company directory", "entries", mapping.Len())
	return mapping, nil
}
