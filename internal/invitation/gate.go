package invitation

import "errors"

// ViewState is the access decision for an event detail view
type ViewState int

const (
	// Denied: no session and no usable invitation token
	Denied ViewState = iota
	// GrantedUser: an authenticated identity is viewing; token irrelevant
	GrantedUser
	// GrantedInvitee: anonymous viewer holding a valid token for this event
	GrantedInvitee
)

// Viewer is the authenticated identity, when there is one
type Viewer struct {
	ID    string
	Email string
}

// Access is the resolved gate decision. For invitees the responder email is
// locked to the claim; a submission under a different address is rejected
// before any storage call.
type Access struct {
	State          ViewState
	ResponderEmail string
	EmailLocked    bool
}

var (
	ErrAccessDenied  = errors.New("access denied: open the URL from your invitation email")
	ErrEmailMismatch = errors.New("responses must use the invited email address")
)

// ResolveAccess evaluates the gate for one request. The claim must already
// have passed Verify; claims for another event are ignored, not errors.
// Re-evaluated on every navigation — there is no session memory of a grant.
func ResolveAccess(viewer *Viewer, claim *Claim, eventID string) Access {
	if viewer != nil {
		return Access{State: GrantedUser, ResponderEmail: viewer.Email}
	}

	if claim != nil && claim.EventID == eventID {
		return Access{State: GrantedInvitee, ResponderEmail: claim.Email, EmailLocked: true}
	}

	return Access{State: Denied}
}

func (a Access) Granted() bool {
	return a.State != Denied
}

// ValidateResponder checks a submitted email against the gate decision.
// Returns the effective responder email.
func (a Access) ValidateResponder(email string) (string, error) {
	if !a.Granted() {
		return "", ErrAccessDenied
	}
	if email == "" {
		email = a.ResponderEmail
	}
	if a.EmailLocked && email != a.ResponderEmail {
		return "", ErrEmailMismatch
	}
	return email, nil
}

// CanDelete gates destructive event operations: creator only
func CanDelete(viewerID, creatorID string) bool {
	return viewerID != "" && viewerID == creatorID
}
