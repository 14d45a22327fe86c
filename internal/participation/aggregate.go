package participation

import (
	"fmt"
	"sort"
	"strings"
)

// RosterPolicy selects which emails appear in the roster
type RosterPolicy int

const (
	// RosterAnswered lists only participants with at least one real answer
	RosterAnswered RosterPolicy = iota
	// RosterInvited lists every invited email, answered or not
	RosterInvited
)

// DateTally is the per-date-option attendance count
type DateTally struct {
	Yes   int `json:"yes"`
	No    int `json:"no"`
	Maybe int `json:"maybe"`
}

// RosterEntry is one participant as shown in the attendance matrix
type RosterEntry struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Aggregate reduces raw participant rows for one event into a
// display-ready attendance matrix. Rows may contain historical duplicates
// for the same (email, date option) cell; construction keeps only the most
// recent row per cell, so every downstream read counts each cell once.
type Aggregate struct {
	// one row per (email, date option), newest wins
	cells map[cellKey]Participant
	// distinct emails in insertion order of the deduped set
	emails []string
	// display name per email, taken from the newest row of that email
	names map[string]string
	// whether the email has at least one answered cell
	answered map[string]bool
}

type cellKey struct {
	email        string
	dateOptionID string
}

// NewAggregate builds the matrix. Input order does not matter: rows are
// sorted newest-first before deduplication, so the kept cell and the
// displayed name are deterministic.
func NewAggregate(rows []Participant) *Aggregate {
	sorted := make([]Participant, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].UpdatedAt.Equal(sorted[j].UpdatedAt) {
			return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	agg := &Aggregate{
		cells:    make(map[cellKey]Participant),
		names:    make(map[string]string),
		answered: make(map[string]bool),
	}

	for _, row := range sorted {
		key := cellKey{email: row.Email, dateOptionID: row.DateOptionID}
		if _, seen := agg.cells[key]; seen {
			continue // an older submission for the same cell
		}
		agg.cells[key] = row

		if _, known := agg.names[row.Email]; !known {
			agg.names[row.Email] = row.Name
			agg.emails = append(agg.emails, row.Email)
		}
		if row.Response.Answered() {
			agg.answered[row.Email] = true
		}
	}

	return agg
}

// Roster returns the participant list under the given policy,
// sorted by email for stable rendering.
func (a *Aggregate) Roster(policy RosterPolicy) []RosterEntry {
	out := make([]RosterEntry, 0, len(a.emails))
	for _, email := range a.emails {
		if policy == RosterAnswered && !a.answered[email] {
			continue
		}
		out = append(out, RosterEntry{Email: email, Name: a.names[email]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out
}

// Tally counts yes/no/maybe for one date option over the deduped cells.
// Each participant contributes at most one count.
func (a *Aggregate) Tally(dateOptionID string) DateTally {
	var t DateTally
	for key, row := range a.cells {
		if key.dateOptionID != dateOptionID {
			continue
		}
		switch row.Response {
		case ResponseYes:
			t.Yes++
		case ResponseNo:
			t.No++
		case ResponseMaybe:
			t.Maybe++
		}
	}
	return t
}

// ResponseFor is the cell lookup: the single current response of one
// participant for one date option. Unknown cells read as unanswered.
func (a *Aggregate) ResponseFor(email, dateOptionID string) Response {
	if row, ok := a.cells[cellKey{email: email, dateOptionID: dateOptionID}]; ok {
		return row.Response
	}
	return ResponseUnanswered
}

// VenueTally counts distinct participants per venue option. A participant's
// venue choice is mutually exclusive, so only the newest row per email is
// consulted: a re-vote moves the count, never doubles it.
func (a *Aggregate) VenueTally() map[string]int {
	newest := make(map[string]Participant)
	for _, row := range a.cells {
		cur, ok := newest[row.Email]
		if !ok || row.UpdatedAt.After(cur.UpdatedAt) {
			newest[row.Email] = row
		}
	}

	tally := make(map[string]int)
	for _, row := range newest {
		if row.VenueOptionID != nil {
			tally[*row.VenueOptionID]++
		}
	}
	return tally
}

// BuildInviteeRows seeds the grid at event creation: one unanswered row per
// (invited email, date option), so every invitee is visible before anyone
// answers and the composite unique key exists for later upserts.
func BuildInviteeRows(eventID string, emails []string, dateOptionIDs []string) []Participant {
	rows := make([]Participant, 0, len(emails)*len(dateOptionIDs))
	for _, email := range emails {
		for _, dateID := range dateOptionIDs {
			rows = append(rows, Participant{
				EventID:      eventID,
				Email:        email,
				DateOptionID: dateID,
				Response:     ResponseUnanswered,
			})
		}
	}
	return rows
}

// DateLabel pairs a date option ID with its human label, in display order
type DateLabel struct {
	ID    string
	Label string
}

// FormatResponseSummary renders one participant's answers for the creator
// notification email, one line per candidate date.
func FormatResponseSummary(dates []DateLabel, responses map[string]Response) string {
	var b strings.Builder
	for _, d := range dates {
		r, ok := responses[d.ID]
		if !ok {
			r = ResponseUnanswered
		}
		fmt.Fprintf(&b, "%s: %s\n", d.Label, r.Symbol())
	}
	return strings.TrimRight(b.String(), "\n")
}
