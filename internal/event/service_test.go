package event

import "testing"

func TestBuildDateOptions(t *testing.T) {
	tests := []struct {
		name    string
		inputs  []DateOptionInput
		wantErr bool
	}{
		{"valid date only", []DateOptionInput{{Date: "2026-09-01"}}, false},
		{"valid with times", []DateOptionInput{{Date: "2026-09-01", StartTime: "19:00", EndTime: "21:00"}}, false},
		{"empty", nil, true},
		{"bad date", []DateOptionInput{{Date: "09/01/2026"}}, true},
		{"bad start time", []DateOptionInput{{Date: "2026-09-01", StartTime: "7pm"}}, true},
		{"bad end time", []DateOptionInput{{Date: "2026-09-01", EndTime: "25:00"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := buildDateOptions(tt.inputs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("buildDateOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(opts) != len(tt.inputs) {
				t.Fatalf("got %d options, want %d", len(opts), len(tt.inputs))
			}
			for _, o := range opts {
				if o.ID == "" {
					t.Error("date option ID not assigned before insert")
				}
			}
		})
	}
}

func TestNormalizeEmails(t *testing.T) {
	got, err := normalizeEmails([]string{
		" Hanako@Example.com ",
		"taro@example.com",
		"hanako@example.com", // duplicate after normalization
		"",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"hanako@example.com", "taro@example.com"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	if _, err := normalizeEmails([]string{"not-an-email"}); err == nil {
		t.Fatal("expected error for invalid invitee email")
	}
}
