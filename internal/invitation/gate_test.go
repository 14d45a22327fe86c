package invitation

import (
	"errors"
	"testing"
)

func TestResolveAccess(t *testing.T) {
	viewer := &Viewer{ID: "u1", Email: "owner@example.com"}
	claim := &Claim{Email: "guest@example.com", EventID: "evt-1", Expires: 1}
	otherEvent := &Claim{Email: "guest@example.com", EventID: "evt-2", Expires: 1}

	tests := []struct {
		name      string
		viewer    *Viewer
		claim     *Claim
		state     ViewState
		responder string
		locked    bool
	}{
		{"no viewer, no token", nil, nil, Denied, "", false},
		{"authenticated viewer", viewer, nil, GrantedUser, "owner@example.com", false},
		{"authenticated viewer with token", viewer, claim, GrantedUser, "owner@example.com", false},
		{"invitee with matching token", nil, claim, GrantedInvitee, "guest@example.com", true},
		{"token for another event", nil, otherEvent, Denied, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveAccess(tt.viewer, tt.claim, "evt-1")
			if got.State != tt.state {
				t.Errorf("state = %v, want %v", got.State, tt.state)
			}
			if got.ResponderEmail != tt.responder {
				t.Errorf("responder = %q, want %q", got.ResponderEmail, tt.responder)
			}
			if got.EmailLocked != tt.locked {
				t.Errorf("locked = %v, want %v", got.EmailLocked, tt.locked)
			}
		})
	}
}

func TestValidateResponder(t *testing.T) {
	invitee := ResolveAccess(nil, &Claim{Email: "guest@example.com", EventID: "e1", Expires: 1}, "e1")

	if _, err := invitee.ValidateResponder("someone-else@example.com"); !errors.Is(err, ErrEmailMismatch) {
		t.Errorf("mismatched email: err = %v, want ErrEmailMismatch", err)
	}

	email, err := invitee.ValidateResponder("guest@example.com")
	if err != nil || email != "guest@example.com" {
		t.Errorf("matching email: got (%q, %v)", email, err)
	}

	// empty email falls back to the locked responder
	email, err = invitee.ValidateResponder("")
	if err != nil || email != "guest@example.com" {
		t.Errorf("empty email: got (%q, %v)", email, err)
	}

	denied := ResolveAccess(nil, nil, "e1")
	if _, err := denied.ValidateResponder("guest@example.com"); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("denied gate: err = %v, want ErrAccessDenied", err)
	}

	user := ResolveAccess(&Viewer{ID: "u1", Email: "owner@example.com"}, nil, "e1")
	email, err = user.ValidateResponder("")
	if err != nil || email != "owner@example.com" {
		t.Errorf("viewer default email: got (%q, %v)", email, err)
	}
}

func TestCanDelete(t *testing.T) {
	if !CanDelete("u1", "u1") {
		t.Error("creator should be allowed to delete")
	}
	if CanDelete("u2", "u1") {
		t.Error("non-creator must not delete")
	}
	if CanDelete("", "") {
		t.Error("anonymous must not delete")
	}
}
