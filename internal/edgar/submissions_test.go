package edgar

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func timep(t time.Time) *time.Time { return &t }

func TestWindowWithExecutionDate(t *testing.T) {
	exec := date(2024, time.April, 1)
	start, end := Window(timep(exec), date(2024, time.June, 1), 180, 15, 365)

	if !start.Equal(date(2023, time.October, 4)) {
		t.Errorf("start = %v, want 180 days before execution", start)
	}
	if !end.Equal(date(2024, time.April, 16)) {
		t.Errorf("end = %v, want 15 days after execution", end)
	}
}

func TestWindowFallback(t *testing.T) {
	now := date(2024, time.June, 1)
	start, end := Window(nil, now, 180, 15, 365)

	if !start.Equal(date(2023, time.June, 2)) {
		t.Errorf("start = %v, want 365 days before now", start)
	}
	if !end.Equal(now) {
		t.Errorf("end = %v, want now", end)
	}
}

func testSubmissions() *Submissions {
	var s Submissions
	s.Filings.Recent = RecentFilings{
		AccessionNumber: []string{"acc-1", "acc-2", "acc-3", "acc-4", "acc-5", "acc-6"},
		Form:            []string{"8-K", "3", "DEF 14A", "8-K", "10-K", "8-K"},
		FilingDate:      []string{"2024-03-20", "2024-03-18", "2024-03-10", "not-a-date", "2024-02-01", "2022-01-01"},
		PrimaryDocument: []string{"a.htm", "b.htm", "c.htm", "d.htm", "e.htm", "f.htm"},
	}
	return &s
}

func TestFilterWindow(t *testing.T) {
	subs := testSubmissions()
	refs := subs.FilterWindow(date(2024, time.January, 1), date(2024, time.April, 1), 10)

	// acc-2 is a non-target form, acc-4 has a bad date, acc-6 is out of
	// window; survivors come back earliest first.
	want := []string{"acc-5", "acc-3", "acc-1"}
	if len(refs) != len(want) {
		t.Fatalf("got %d refs, want %d", len(refs), len(want))
	}
	for i, w := range want {
		if refs[i].Accession != w {
			t.Errorf("refs[%d] = %s, want %s", i, refs[i].Accession, w)
		}
	}
	if refs[0].PrimaryDocument != "e.htm" {
		t.Errorf("primary document = %s, want e.htm", refs[0].PrimaryDocument)
	}
}

func TestFilterWindowCapKeepsEarliest(t *testing.T) {
	subs := testSubmissions()
	refs := subs.FilterWindow(date(2024, time.January, 1), date(2024, time.April, 1), 2)
	if len(refs) != 2 {
		t.Fatalf("got %d refs, want the cap of 2", len(refs))
	}
	if refs[0].Accession != "acc-5" || refs[1].Accession != "acc-3" {
		t.Errorf("cap must keep the earliest filings, got %s, %s",
			refs[0].Accession, refs[1].Accession)
	}
}

func TestDateRange(t *testing.T) {
	earliest, latest, ok := testSubmissions().DateRange()
	if !ok {
		t.Fatal("expected a date range")
	}
	if !earliest.Equal(date(2022, time.January, 1)) {
		t.Errorf("earliest = %v, want 2022-01-01", earliest)
	}
	if !latest.Equal(date(2024, time.March, 20)) {
		t.Errorf("latest = %v, want 2024-03-20", latest)
	}
}

func TestPredatesHistory(t *testing.T) {
	subs := testSubmissions()

	if !subs.PredatesHistory(timep(date(2015, time.June, 1))) {
		t.Error("a split before the earliest filing predates history")
	}
	if subs.PredatesHistory(timep(date(2023, time.June, 1))) {
		t.Error("a split inside the history does not predate it")
	}
	if subs.PredatesHistory(nil) {
		t.Error("no execution date cannot predate history")
	}
}
