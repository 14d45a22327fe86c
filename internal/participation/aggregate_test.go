package participation

import (
	"testing"
	"time"
)

func row(email, dateID string, resp Response, at time.Time) Participant {
	return Participant{
		EventID:      "ev1",
		Email:        email,
		DateOptionID: dateID,
		Response:     resp,
		CreatedAt:    at,
		UpdatedAt:    at,
	}
}

func TestAggregateDeduplicatesNewestWins(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	// two submissions for the same cell: the newer one must win
	rows := []Participant{
		row("e1@example.com", "d1", ResponseYes, t0),
		row("e1@example.com", "d1", ResponseNo, t1),
	}

	agg := NewAggregate(rows)

	if got := agg.ResponseFor("e1@example.com", "d1"); got != ResponseNo {
		t.Fatalf("cell lookup = %q, want %q", got, ResponseNo)
	}

	tally := agg.Tally("d1")
	if total := tally.Yes + tally.No + tally.Maybe; total != 1 {
		t.Fatalf("tally counts %d responses for one participant, want exactly 1 (%+v)", total, tally)
	}
	if tally.No != 1 {
		t.Fatalf("tally = %+v, want the newer answer counted", tally)
	}
}

func TestAggregateDedupIsOrderIndependent(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	newerFirst := []Participant{
		row("e1@example.com", "d1", ResponseNo, t1),
		row("e1@example.com", "d1", ResponseYes, t0),
	}
	olderFirst := []Participant{
		row("e1@example.com", "d1", ResponseYes, t0),
		row("e1@example.com", "d1", ResponseNo, t1),
	}

	for name, rows := range map[string][]Participant{"newer first": newerFirst, "older first": olderFirst} {
		if got := NewAggregate(rows).ResponseFor("e1@example.com", "d1"); got != ResponseNo {
			t.Errorf("%s: cell lookup = %q, want %q", name, got, ResponseNo)
		}
	}
}

func TestRosterPolicies(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	rows := []Participant{
		row("a@example.com", "d1", ResponseYes, t0),
		row("b@example.com", "d1", ResponseUnanswered, t0),
	}
	agg := NewAggregate(rows)

	answered := agg.Roster(RosterAnswered)
	if len(answered) != 1 || answered[0].Email != "a@example.com" {
		t.Fatalf("answered roster = %+v, want only a@example.com", answered)
	}

	invited := agg.Roster(RosterInvited)
	if len(invited) != 2 {
		t.Fatalf("invited roster = %+v, want both emails", invited)
	}
	if invited[0].Email != "a@example.com" || invited[1].Email != "b@example.com" {
		t.Fatalf("invited roster not sorted by email: %+v", invited)
	}
}

func TestRosterNameFromNewestRow(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	older := row("a@example.com", "d1", ResponseYes, t0)
	older.Name = "Old Name"
	newer := row("a@example.com", "d2", ResponseYes, t1)
	newer.Name = "New Name"

	agg := NewAggregate([]Participant{older, newer})
	roster := agg.Roster(RosterAnswered)
	if len(roster) != 1 || roster[0].Name != "New Name" {
		t.Fatalf("roster = %+v, want the most recent display name", roster)
	}
}

func TestVenueTallyAndRevote(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	v1, v2 := "v1", "v2"
	withVenue := func(email string, venue *string, at time.Time) Participant {
		p := row(email, "d1", ResponseYes, at)
		p.VenueOptionID = venue
		return p
	}

	rows := []Participant{
		withVenue("a@example.com", &v1, t0),
		withVenue("b@example.com", &v1, t0),
		withVenue("c@example.com", &v2, t0),
	}
	tally := NewAggregate(rows).VenueTally()
	if tally["v1"] != 2 || tally["v2"] != 1 {
		t.Fatalf("venue tally = %v, want v1:2 v2:1", tally)
	}

	// a re-votes from v1 to v2: the vote moves, never double-counts.
	// The single-UPDATE storage path rewrites the participant's rows,
	// which the aggregator sees as the newest state.
	rows[0] = withVenue("a@example.com", &v2, t0.Add(time.Hour))
	tally = NewAggregate(rows).VenueTally()
	if tally["v1"] != 1 || tally["v2"] != 2 {
		t.Fatalf("venue tally after re-vote = %v, want v1:1 v2:2", tally)
	}
	if tally["v1"]+tally["v2"] != 3 {
		t.Fatalf("venue tally double-counted a participant: %v", tally)
	}
}

func TestBuildInviteeRows(t *testing.T) {
	rows := BuildInviteeRows("ev1",
		[]string{"a@example.com", "b@example.com"},
		[]string{"d1", "d2"},
	)

	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 2 emails x 2 dates = 4", len(rows))
	}
	seen := make(map[cellKey]bool)
	for _, r := range rows {
		if r.EventID != "ev1" {
			t.Errorf("row event = %q, want ev1", r.EventID)
		}
		if r.Response != ResponseUnanswered {
			t.Errorf("seeded row response = %q, want unanswered", r.Response)
		}
		seen[cellKey{r.Email, r.DateOptionID}] = true
	}
	if len(seen) != 4 {
		t.Fatalf("seeded rows contain duplicate cells: %d distinct", len(seen))
	}
}

func TestParseResponse(t *testing.T) {
	cases := map[string]Response{
		"yes":        ResponseYes,
		"no":         ResponseNo,
		"maybe":      ResponseMaybe,
		"unanswered": ResponseUnanswered,
		"":           ResponseUnanswered,
		"YES":        ResponseUnanswered,
		"garbage":    ResponseUnanswered,
	}
	for in, want := range cases {
		if got := ParseResponse(in); got != want {
			t.Errorf("ParseResponse(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatResponseSummary(t *testing.T) {
	dates := []DateLabel{
		{ID: "d1", Label: "2026-09-01 19:00-21:00"},
		{ID: "d2", Label: "2026-09-02 19:00-21:00"},
		{ID: "d3", Label: "2026-09-03"},
	}
	got := FormatResponseSummary(dates, map[string]Response{
		"d1": ResponseYes,
		"d2": ResponseMaybe,
	})
	want := "2026-09-01 19:00-21:00: ○\n2026-09-02 19:00-21:00: △\n2026-09-03: -"
	if got != want {
		t.Fatalf("summary =\n%q\nwant\n%q", got, want)
	}
}
