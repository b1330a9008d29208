package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/edgar"
	apperrors "github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/errors"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/models"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/repository"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/pkg/config"
)

// ---- test doubles ----

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})         {}
func (nopLogger) Error(string, error, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})         {}
func (nopLogger) Debug(string, ...interface{})        {}
func (nopLogger) Fatal(string, error, ...interface{}) {}

type fakeEventRepo struct {
	events map[uuid.UUID]*models.SplitEvent
}

func newFakeEventRepo(events ...*models.SplitEvent) *fakeEventRepo {
	r := &fakeEventRepo{events: make(map[uuid.UUID]*models.SplitEvent)}
	for _, e := range events {
		r.events[e.ID] = e
	}
	return r
}

func (r *fakeEventRepo) Create(event *models.SplitEvent) error {
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) GetByID(id uuid.UUID) (*models.SplitEvent, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, apperrors.NotFound(fmt.Sprintf("split event %s not found", id), nil)
	}
	return event, nil
}

func (r *fakeEventRepo) GetByTicker(ticker string) ([]*models.SplitEvent, error) {
	var out []*models.SplitEvent
	for _, e := range r.events {
		if e.Ticker == ticker {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) List(repository.EventFilters) ([]*models.SplitEvent, error) {
	var out []*models.SplitEvent
	for _, e := range r.events {
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeEventRepo) ListIDs() ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id := range r.events {
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *fakeEventRepo) UpdateAnnouncement(event *models.SplitEvent) error {
	if _, ok := r.events[event.ID]; !ok {
		return apperrors.NotFound("split event not found", nil)
	}
	r.events[event.ID] = event
	return nil
}

type fakeFilingRepo struct {
	filings map[string]*models.Filing
}

func newFakeFilingRepo() *fakeFilingRepo {
	return &fakeFilingRepo{filings: make(map[string]*models.Filing)}
}

func (r *fakeFilingRepo) Upsert(filing *models.Filing) error {
	r.filings[filing.Accession] = filing
	return nil
}

func (r *fakeFilingRepo) GetByEvent(eventID uuid.UUID) ([]*models.Filing, error) {
	var out []*models.Filing
	for _, f := range r.filings {
		if f.EventID == eventID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFilingRepo) CountByEvent(eventID uuid.UUID) (int, error) {
	n := 0
	for _, f := range r.filings {
		if f.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (r *fakeFilingRepo) DeleteByEvent(eventID uuid.UUID) error {
	for acc, f := range r.filings {
		if f.EventID == eventID {
			delete(r.filings, acc)
		}
	}
	return nil
}

type fakeGateway struct {
	mapping     *edgar.CIKMapping
	submissions map[string]*edgar.Submissions
	documents   map[string]string
}

func (g *fakeGateway) CompanyTickers(context.Context) (*edgar.CIKMapping, error) {
	return g.mapping, nil
}

func (g *fakeGateway) Submissions(_ context.Context, cik string) (*edgar.Submissions, error) {
	subs, ok := g.submissions[cik]
	if !ok {
		return nil, fmt.Errorf("no submissions for %s", cik)
	}
	return subs, nil
}

func (g *fakeGateway) Document(_ context.Context, _, accession, _ string) (string, error) {
	doc, ok := g.documents[accession]
	if !ok {
		return "", fmt.Errorf("no document %s", accession)
	}
	return doc, nil
}

func (g *fakeGateway) DocumentURL(cik, accession, primaryDoc string) string {
	return "https://example.test/" + cik + "/" + accession + "/" + primaryDoc
}

// ---- fixtures ----

func testConfig() *config.Config {
	return &config.Config{
		WindowDaysBefore:   180,
		WindowDaysAfter:    15,
		FallbackWindowDays: 365,
		MaxFilingsPerEvent: 10,
	}
}

func dateAt(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func timep(t time.Time) *time.Time { return &t }

const testCIK = "0000320193"

const splitDocument = `<html><body><p>Item 3.01 Notice of Delisting.
On March 15, 2024, the Company announced a 1-for-10 reverse stock split,
effective at 12:01 a.m. on April 1, 2024, to regain compliance with the
Nasdaq minimum bid price requirement.</p></body></html>`

func splitSubmissions(filingDate string) *edgar.Submissions {
	var subs edgar.Submissions
	subs.Filings.Recent = edgar.RecentFilings{
		AccessionNumber: []string{"acc-1"},
		Form:            []string{"8-K"},
		FilingDate:      []string{filingDate},
		PrimaryDocument: []string{"doc.htm"},
	}
	return &subs
}

func newTestService(event *models.SplitEvent, gateway *fakeGateway) (*EnrichmentService, *repository.Repositories) {
	repos := &repository.Repositories{
		Events:  newFakeEventRepo(event),
		Filings: newFakeFilingRepo(),
	}
	return NewEnrichmentService(repos, gateway, testConfig(), nopLogger{}), repos
}

func testMapping() *edgar.CIKMapping {
	return edgar.NewCIKMapping([]edgar.CompanyEntry{
		{CIK: 320193, Ticker: "AAPL", Title: "Apple Inc."},
	})
}

// ---- tests ----

func TestEnrichEventSuccess(t *testing.T) {
	event := &models.SplitEvent{
		ID:            uuid.New(),
		Ticker:        "AAPL",
		ExecutionDate: timep(dateAt(2024, time.April, 1)),
		Ratio:         &models.Ratio{Num: 1, Den: 10},
	}
	gateway := &fakeGateway{
		mapping:     testMapping(),
		submissions: map[string]*edgar.Submissions{testCIK: splitSubmissions("2024-03-20")},
		documents:   map[string]string{"acc-1": splitDocument},
	}
	svc, repos := newTestService(event, gateway)

	result, err := svc.EnrichEvent(context.Background(), event.ID, true)
	if err != nil {
		t.Fatalf("EnrichEvent: %v", err)
	}
	if result.Status != StatusSuccess {
		t.Fatalf("status = %s, want success (reason: %s)", result.Status, result.Reason)
	}
	if result.CIK != testCIK {
		t.Errorf("cik = %s, want %s", result.CIK, testCIK)
	}
	if result.FilingsProcessed != 1 {
		t.Fatalf("filings processed = %d, want 1", result.FilingsProcessed)
	}

	filings, _ := repos.Filings.GetByEvent(event.ID)
	if len(filings) != 1 {
		t.Fatalf("stored filings = %d, want 1", len(filings))
	}
	f := filings[0]
	if f.RatioNum == nil || *f.RatioNum != 1 || f.RatioDen == nil || *f.RatioDen != 10 {
		t.Errorf("stored ratio = %v:%v, want 1:10", f.RatioNum, f.RatioDen)
	}
	if f.Score == nil || *f.Score < 5 || f.Tier != "A" {
		t.Errorf("stored score/tier = %v/%s, want a tier A score", f.Score, f.Tier)
	}
	if f.DocumentURL == "" {
		t.Error("stored filing must carry its document URL")
	}
}

func TestEnrichEventAlreadyProcessed(t *testing.T) {
	event := &models.SplitEvent{
		ID:            uuid.New(),
		Ticker:        "AAPL",
		ExecutionDate: timep(dateAt(2024, time.April, 1)),
	}
	gateway := &fakeGateway{
		mapping:     testMapping(),
		submissions: map[string]*edgar.Submissions{testCIK: splitSubmissions("2024-03-20")},
		documents:   map[string]string{"acc-1": splitDocument},
	}
	svc, _ := newTestService(event, gateway)

	if result, err := svc.EnrichEvent(context.Background(), event.ID, true); err != nil || result.Status != StatusSuccess {
		t.Fatalf("first run: %v / %v", result, err)
	}
	second, err := svc.EnrichEvent(context.Background(), event.ID, true)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Status != StatusAlreadyProcessed {
		t.Errorf("status = %s, want already_processed", second.Status)
	}
}

func TestEnrichEventNoCIK(t *testing.T) {
	event := &models.SplitEvent{ID: uuid.New(), Ticker: "ZZZZ", CompanyName: "Unknown Industries"}
	gateway := &fakeGateway{mapping: testMapping()}
	svc, _ := newTestService(event, gateway)

	result, err := svc.EnrichEvent(context.Background(), event.ID, true)
	if err != nil {
		t.Fatalf("EnrichEvent: %v", err)
	}
	if result.Status != StatusNoCIK {
		t.Errorf("status = %s, want no_cik", result.Status)
	}
}

func TestEnrichEventNoFilingsData(t *testing.T) {
	event := &models.SplitEvent{ID: uuid.New(), Ticker: "AAPL"}
	gateway := &fakeGateway{mapping: testMapping(), submissions: map[string]*edgar.Submissions{}}
	svc, _ := newTestService(event, gateway)

	result, err := svc.EnrichEvent(context.Background(), event.ID, true)
	if err != nil {
		t.Fatalf("EnrichEvent: %v", err)
	}
	if result.Status != StatusNoFilingsData {
		t.Errorf("status = %s, want no_filings_data", result.Status)
	}
}

func TestEnrichEventNoFilingsInWindowHistorical(t *testing.T) {
	// The only filing on record is years after the execution date, so the
	// window is empty and the split predates the available history.
	event := &models.SplitEvent{
		ID:            uuid.New(),
		Ticker:        "AAPL",
		ExecutionDate: timep(dateAt(2015, time.June, 1)),
	}
	gateway := &fakeGateway{
		mapping:     testMapping(),
		submissions: map[string]*edgar.Submissions{testCIK: splitSubmissions("2024-03-20")},
	}
	svc, _ := newTestService(event, gateway)

	result, err := svc.EnrichEvent(context.Background(), event.ID, true)
	if err != nil {
		t.Fatalf("EnrichEvent: %v", err)
	}
	if result.Status != StatusNoFilingsInWindow {
		t.Errorf("status = %s, want no_filings_in_window", result.Status)
	}
	if !result.HistoricalSplit {
		t.Error("expected the historical split marker")
	}
}

func TestEnrichEventUnknownEvent(t *testing.T) {
	gateway := &fakeGateway{mapping: testMapping()}
	svc, _ := newTestService(&models.SplitEvent{ID: uuid.New(), Ticker: "AAPL"}, gateway)

	_, err := svc.EnrichEvent(context.Background(), uuid.New(), true)
	if !apperrors.IsCode(err, apperrors.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestEnrichEventSkippedFilingDoesNotAbort(t *testing.T) {
	event := &models.SplitEvent{
		ID:            uuid.New(),
		Ticker:        "AAPL",
		ExecutionDate: timep(dateAt(2024, time.April, 1)),
	}
	var subs edgar.Submissions
	subs.Filings.Recent = edgar.RecentFilings{
		AccessionNumber: []string{"acc-missing", "acc-1"},
		Form:            []string{"8-K", "8-K"},
		FilingDate:      []string{"2024-03-21", "2024-03-20"},
		PrimaryDocument: []string{"x.htm", "doc.htm"},
	}
	gateway := &fakeGateway{
		mapping:     testMapping(),
		submissions: map[string]*edgar.Submissions{testCIK: &subs},
		documents:   map[string]string{"acc-1": splitDocument},
	}
	svc, _ := newTestService(event, gateway)

	result, err := svc.EnrichEvent(context.Background(), event.ID, true)
	if err != nil {
		t.Fatalf("EnrichEvent: %v", err)
	}
	if result.Status != StatusSuccess {
		t.Fatalf("status = %s, want success", result.Status)
	}
	if result.FilingsFound != 2 || result.FilingsProcessed != 1 {
		t.Errorf("found/processed = %d/%d, want 2/1", result.FilingsFound, result.FilingsProcessed)
	}
}
