package services

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	apperrors "github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/errors"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/logger"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/repository"
)

// PipelineStats summarizes one batch run.
type PipelineStats struct {
	StartedAt         time.Time     `json:"started_at"`
	Duration          time.Duration `json:"duration"`
	EventsTotal       int           `json:"events_total"`
	Succeeded         int           `json:"succeeded"`
	AlreadyProcessed  int           `json:"already_processed"`
	NoCIK             int           `json:"no_cik"`
	NoFilingsData     int           `json:"no_filings_data"`
	NoFilingsInWindow int           `json:"no_filings_in_window"`
	Failed            int           `json:"failed"`
	AnnouncementsSet  int           `json:"announcements_set"`
}

// Pipeline runs the two-phase batch over all events: enrichment first,
// then announcement selection. Phases are sequential so every event's
// filings are in place before any decision is made.
type Pipeline struct {
	enrich   *EnrichmentService
	announce *AnnouncementService
	repos    *repository.Repositories
	log      logger.Logger

	cron *cron.Cron

	mu      sync.Mutex
	running bool
}

// NewPipeline creates the batch pipeline
func NewPipeline(enrich *EnrichmentService, announce *AnnouncementService, repos *repository.Repositories, log logger.Logger) *Pipeline {
	return &Pipeline{
		enrich:   enrich,
		announce: announce,
		repos:    repos,
		log:      log,
	}
}

// RunOnce executes one full batch. Only one run may be active at a time;
// a second caller gets a SERVICE_ERROR instead of a concurrent run. With
// force set, events that already have filings are re-collected.
func (p *Pipeline) RunOnce(ctx context.Context, force bool) (*PipelineStats, error) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil, apperrors.ServiceError("pipeline run already in progress", nil)
	}
	p.running = true
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.running = false
		p.mu.Unlock()
	}()

	stats := &PipelineStats{StartedAt: time.Now().UTC()}
	defer func() { stats.Duration = time.Since(stats.StartedAt) }()

	ids, err := p.repos.Events.ListIDs()
	if err != nil {
		return stats, err
	}
	stats.EventsTotal = len(ids)
	p.log.Info("pipeline run started", "events", len(ids), "force", force)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		result, err := p.enrich.EnrichEvent(ctx, id, !force)
		if err != nil {
			stats.Failed++
			p.log.Error("enrichment failed", err, "event_id", id.String())
			continue
		}
		switch result.Status {
		case StatusSuccess:
			stats.Succeeded++
		case StatusAlreadyProcessed:
			stats.AlreadyProcessed++
		case StatusNoCIK:
			stats.NoCIK++
		case StatusNoFilingsData:
			stats.NoFilingsData++
		case StatusNoFilingsInWindow:
			stats.NoFilingsInWindow++
		}
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		decision, err := p.announce.Apply(id)
		if err != nil {
			stats.Failed++
			p.log.Error("announcement selection failed", err, "event_id", id.String())
			continue
		}
		if decision.AnnouncementDate != nil {
			stats.AnnouncementsSet++
		}
	}

	p.log.Info("pipeline run finished",
		"events", stats.EventsTotal, "succeeded", stats.Succeeded,
		"already_processed", stats.AlreadyProcessed, "no_cik", stats.NoCIK,
		"announcements_set", stats.AnnouncementsSet,
		"duration", stats.Duration.String())
	return stats, nil
}

// Start schedules recurring runs on a cron expression. A tick that lands
// while a run is still active is skipped.
func (p *Pipeline) Start(schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if _, err := p.RunOnce(context.Background(), false); err != nil {
			if apperrors.IsCode(err, apperrors.ErrCodeServiceError) {
				p.log.Warn("skipping scheduled run, previous run still active")
				return
			}
			p.log.Error("scheduled pipeline run failed", err)
		}
	})
	if err != nil {
		return apperrors.ServiceError("invalid pipeline schedule", err).
			WithDetails(schedule)
	}
	p.cron = c
	c.Start()
	p.log.Info("pipeline scheduled", "cron", schedule)
	return nil
}

// Stop halts the scheduler and waits for any active run to finish its
// current step.
func (p *Pipeline) Stop() {
	if p.cron != nil {
		<-p.cron.Stop().Done()
	}
}
