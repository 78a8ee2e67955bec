package clock

import (
	"errors"
	"testing"
	"time"
)

func TestResolveNormalizesToUTC(t *testing.T) {
	r, err := NewResolver("Asia/Jakarta")
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	got, err := r.Resolve("2025-03-01 09:00")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	want := time.Date(2025, 3, 1, 2, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Resolve = %s, want %s", got, want)
	}
	if got.Location() != time.UTC {
		t.Errorf("Resolve location = %v, want UTC", got.Location())
	}
}

func TestResolveLayouts(t *testing.T) {
	r, err := NewResolver("UTC")
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	cases := []struct {
		raw  string
		want time.Time
	}{
		{"2025-03-01 09:00:30", time.Date(2025, 3, 1, 9, 0, 30, 0, time.UTC)},
		{"2025-03-01 09:00", time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)},
		{"2025-03-01T09:00:00", time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)},
		{"2025-03-01T09:00:00+07:00", time.Date(2025, 3, 1, 2, 0, 0, 0, time.UTC)},
		{"2025-03-01", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := r.Resolve(tc.raw)
		if err != nil {
			t.Errorf("Resolve(%q): %v", tc.raw, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("Resolve(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}

func TestResolveInvalid(t *testing.T) {
	r, err := NewResolver("Asia/Jakarta")
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	for _, raw := range []string{"", "tomorrow", "01/03/2025 09:00"} {
		if _, err := r.Resolve(raw); !errors.Is(err, ErrInvalidTimestamp) {
			t.Errorf("Resolve(%q) err = %v, want ErrInvalidTimestamp", raw, err)
		}
	}
}

func TestNewResolverUnknownZone(t *testing.T) {
	if _, err := NewResolver("Nowhere/Invalid"); err == nil {
		t.Fatal("NewResolver accepted an unknown timezone")
	}
}
