package invitation

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"
)

// Claim binds an invited email to one event until Expires (unix millis).
// The token is base64(JSON) — readable and forgeable by anyone holding it.
// It gates convenience, not security; do not treat it as a credential.
type Claim struct {
	Email   string `json:"email"`
	EventID string `json:"eventId"`
	Expires int64  `json:"expires"`
}

const DefaultTTLHours = 72

var errMalformedToken = errors.New("malformed invitation token")

// Codec generates invitation tokens with a fixed TTL
type Codec struct {
	ttl time.Duration
}

func NewCodec(ttlHours int) Codec {
	if ttlHours <= 0 {
		ttlHours = DefaultTTLHours
	}
	return Codec{ttl: time.Duration(ttlHours) * time.Hour}
}

// Generate encodes a claim for email/eventID expiring TTL from now
func (c Codec) Generate(email, eventID string) string {
	return c.generateAt(email, eventID, time.Now())
}

func (c Codec) generateAt(email, eventID string, now time.Time) string {
	claim := Claim{
		Email:   email,
		EventID: eventID,
		Expires: now.Add(c.ttl).UnixMilli(),
	}
	raw, _ := json.Marshal(claim)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// Decode reverses the encoding without checking expiry. It never panics on
// garbage input; anything that does not round-trip to a complete claim is an
// error. Standard base64 is accepted too, for tokens minted by older builds.
func Decode(token string) (*Claim, error) {
	if token == "" {
		return nil, errMalformedToken
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		raw, err = base64.StdEncoding.DecodeString(token)
		if err != nil {
			return nil, errMalformedToken
		}
	}

	var claim Claim
	if err := json.Unmarshal(raw, &claim); err != nil {
		return nil, errMalformedToken
	}
	if claim.Email == "" || claim.EventID == "" || claim.Expires == 0 {
		return nil, errMalformedToken
	}

	return &claim, nil
}

// Verify returns the claim for a well-formed, unexpired token and nil for
// everything else. Malformed and expired tokens are indistinguishable to the
// caller: both downgrade to "no access".
func Verify(token string) *Claim {
	return verifyAt(token, time.Now())
}

// The boundary instant counts as expired: now >= expires invalidates.
func verifyAt(token string, now time.Time) *Claim {
	claim, err := Decode(token)
	if err != nil {
		return nil
	}
	if now.UnixMilli() >= claim.Expires {
		return nil
	}
	return claim
}
