package participation

import (
	"encoding/json"
	"testing"
)

func TestSubmitRequestCarriesVenueChoice(t *testing.T) {
	body := `{"email":"hanako@example.com","name":"Hanako","responses":{"d1":"yes"},"venueOptionId":"v1"}`

	var req SubmitRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.VenueOptionID == nil || *req.VenueOptionID != "v1" {
		t.Fatalf("VenueOptionID = %v, want v1", req.VenueOptionID)
	}

	var bare SubmitRequest
	if err := json.Unmarshal([]byte(`{"email":"hanako@example.com","responses":{"d1":"yes"}}`), &bare); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if bare.VenueOptionID != nil {
		t.Fatalf("VenueOptionID = %v, want nil when the key is absent", bare.VenueOptionID)
	}
}

func TestUpsertColumnsPreserveVenueVote(t *testing.T) {
	v1 := "v1"

	withVenue := []Participant{
		{EventID: "ev1", Email: "a@example.com", DateOptionID: "d1", Response: ResponseYes, VenueOptionID: &v1},
	}
	withoutVenue := []Participant{
		{EventID: "ev1", Email: "a@example.com", DateOptionID: "d1", Response: ResponseNo},
	}

	if !contains(upsertColumns(withVenue), "venue_option_id") {
		t.Error("submission with a venue choice must update venue_option_id")
	}
	// resubmitting availability alone must not null an existing vote
	if contains(upsertColumns(withoutVenue), "venue_option_id") {
		t.Error("submission without a venue choice must leave venue_option_id untouched")
	}

	for _, col := range []string{"name", "response", "user_id", "updated_at"} {
		if !contains(upsertColumns(withoutVenue), col) {
			t.Errorf("upsert must always update %s", col)
		}
	}
}

func contains(cols []string, want string) bool {
	for _, c := range cols {
		if c == want {
			return true
		}
	}
	return false
}
