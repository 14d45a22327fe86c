package invitation

import (
	"encoding/base64"
	"testing"
	"time"
)

func TestGenerateVerifyRoundTrip(t *testing.T) {
	codec := NewCodec(72)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	token := codec.generateAt("guest@example.com", "evt-123", now)

	claim := verifyAt(token, now.Add(time.Hour))
	if claim == nil {
		t.Fatal("expected valid claim, got nil")
	}
	if claim.Email != "guest@example.com" {
		t.Errorf("email = %q, want guest@example.com", claim.Email)
	}
	if claim.EventID != "evt-123" {
		t.Errorf("eventId = %q, want evt-123", claim.EventID)
	}
	if want := now.Add(72 * time.Hour).UnixMilli(); claim.Expires != want {
		t.Errorf("expires = %d, want %d", claim.Expires, want)
	}
}

func TestVerifyExpiry(t *testing.T) {
	codec := NewCodec(72)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	token := codec.generateAt("guest@example.com", "evt-123", now)
	expiry := now.Add(72 * time.Hour)

	tests := []struct {
		name  string
		at    time.Time
		valid bool
	}{
		{"just before expiry", expiry.Add(-time.Millisecond), true},
		{"exactly at expiry", expiry, false},
		{"after expiry", expiry.Add(time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim := verifyAt(token, tt.at)
			if got := claim != nil; got != tt.valid {
				t.Errorf("verifyAt(%s) valid = %v, want %v", tt.name, got, tt.valid)
			}
		})
	}
}

func TestDefaultTTL(t *testing.T) {
	codec := NewCodec(0)
	now := time.Now()
	token := codec.generateAt("a@example.com", "e1", now)

	claim, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if want := now.Add(DefaultTTLHours * time.Hour).UnixMilli(); claim.Expires != want {
		t.Errorf("expires = %d, want default TTL %d", claim.Expires, want)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not base64", "%%%not-base64%%%"},
		{"base64 of non-json", base64.RawURLEncoding.EncodeToString([]byte("hello world"))},
		{"json but wrong shape", base64.RawURLEncoding.EncodeToString([]byte(`{"foo":1}`))},
		{"missing email", base64.RawURLEncoding.EncodeToString([]byte(`{"eventId":"e1","expires":99}`))},
		{"missing expires", base64.RawURLEncoding.EncodeToString([]byte(`{"email":"a@b.c","eventId":"e1"}`))},
		{"json array", base64.RawURLEncoding.EncodeToString([]byte(`[1,2,3]`))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if claim, err := Decode(tt.token); err == nil {
				t.Errorf("Decode(%q) = %+v, want error", tt.token, claim)
			}
			if claim := Verify(tt.token); claim != nil {
				t.Errorf("Verify(%q) = %+v, want nil", tt.token, claim)
			}
		})
	}
}

func TestDecodeAcceptsStdEncoding(t *testing.T) {
	// tokens minted by older builds used padded standard base64 (btoa-style)
	raw := `{"email":"legacy@example.com","eventId":"evt-9","expires":4102444800000}`
	token := base64.StdEncoding.EncodeToString([]byte(raw))

	claim, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if claim.Email != "legacy@example.com" || claim.EventID != "evt-9" {
		t.Errorf("unexpected claim %+v", claim)
	}
}
