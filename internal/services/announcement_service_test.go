package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/errors"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/models"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/repository"
)

func intp(v int) *int { return &v }

func announcedFiling(eventID uuid.UUID, accession string, filed time.Time) *models.Filing {
	return &models.Filing{
		Accession:      accession,
		EventID:        eventID,
		Form:           "8-K",
		FilingDate:     filed,
		RatioNum:       intp(1),
		RatioDen:       intp(10),
		ComplianceFlag: true,
		DocumentURL:    "https://example.test/" + accession,
		TextMatches:    map[string]string{"ratio_text": "1-for-10"},
	}
}

func TestApplyWritesAnnouncementBack(t *testing.T) {
	event := &models.SplitEvent{
		ID:            uuid.New(),
		Ticker:        "AAPL",
		Ratio:         &models.Ratio{Num: 1, Den: 10},
		ExecutionDate: timep(dateAt(2024, time.April, 1)),
	}
	events := newFakeEventRepo(event)
	filings := newFakeFilingRepo()
	repos := &repository.Repositories{Events: events, Filings: filings}

	filings.Upsert(announcedFiling(event.ID, "acc-early", dateAt(2024, time.March, 1)))
	filings.Upsert(announcedFiling(event.ID, "acc-late", dateAt(2024, time.March, 20)))

	svc := NewAnnouncementService(repos, nopLogger{})
	decision, err := svc.Apply(event.ID)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if decision.AnnouncementDate == nil || !decision.AnnouncementDate.Equal(dateAt(2024, time.March, 1)) {
		t.Fatalf("decision date = %v, want 2024-03-01", decision.AnnouncementDate)
	}

	stored, _ := events.GetByID(event.ID)
	if stored.AnnouncementDate == nil || !stored.AnnouncementDate.Equal(dateAt(2024, time.March, 1)) {
		t.Errorf("stored date = %v, want 2024-03-01", stored.AnnouncementDate)
	}
	if stored.AnnouncementForm != "8-K" {
		t.Errorf("stored form = %s, want 8-K", stored.AnnouncementForm)
	}
	if stored.AnnouncementSource != "https://example.test/acc-early" {
		t.Errorf("stored source = %s", stored.AnnouncementSource)
	}
	if stored.AnnouncementScore == nil || stored.AnnouncementTier != "A" {
		t.Errorf("stored score/tier = %v/%s", stored.AnnouncementScore, stored.AnnouncementTier)
	}
}

func TestApplyZeroFilingsClearsAnnouncement(t *testing.T) {
	event := &models.SplitEvent{
		ID:               uuid.New(),
		Ticker:           "AAPL",
		AnnouncementDate: timep(dateAt(2024, time.March, 1)),
		AnnouncementForm: "8-K",
	}
	repos := &repository.Repositories{
		Events:  newFakeEventRepo(event),
		Filings: newFakeFilingRepo(),
	}

	svc := NewAnnouncementService(repos, nopLogger{})
	decision, err := svc.Apply(event.ID)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if decision.AnnouncementDate != nil {
		t.Error("zero filings must yield a nil date")
	}

	stored, _ := repos.Events.GetByID(event.ID)
	if stored.AnnouncementDate != nil || stored.AnnouncementForm != "" {
		t.Errorf("stale announcement not cleared: %v / %s",
			stored.AnnouncementDate, stored.AnnouncementForm)
	}
}

func TestDecideUnknownEvent(t *testing.T) {
	repos := &repository.Repositories{
		Events:  newFakeEventRepo(),
		Filings: newFakeFilingRepo(),
	}
	svc := NewAnnouncementService(repos, nopLogger{})
	if _, err := svc.Decide(uuid.New()); !apperrors.IsCode(err, apperrors.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}
