package entities

import (
	"testing"
	"time"
)

func TestMessage_SortKeyFollowsCreatedAt(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 1, 0, time.UTC)
	cases := []struct {
		name           string
		earlier, later Message
	}{
		{"whole second before fraction",
			Message{ID: "c", CreatedAt: base},
			Message{ID: "d", CreatedAt: base.Add(500 * time.Millisecond)}},
		{"shorter fraction before longer",
			Message{ID: "a", CreatedAt: base.Add(100 * time.Millisecond)},
			Message{ID: "b", CreatedAt: base.Add(120 * time.Millisecond)}},
		{"nanoseconds",
			Message{ID: "z", CreatedAt: base.Add(time.Nanosecond)},
			Message{ID: "a", CreatedAt: base.Add(2 * time.Nanosecond)}},
		{"same instant falls back to id",
			Message{ID: "a", CreatedAt: base},
			Message{ID: "b", CreatedAt: base}},
		{"non-UTC zone",
			Message{ID: "b", CreatedAt: base.In(time.FixedZone("BRT", -3*3600))},
			Message{ID: "a", CreatedAt: base.Add(time.Millisecond)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, l := tc.earlier.SortKey(), tc.later.SortKey()
			if !(e < l) {
				t.Fatalf("expected %q < %q", e, l)
			}
		})
	}
}

func TestMessage_SortKeyFixedWidth(t *testing.T) {
	m := Message{ID: "m1", CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	if got := m.SortKey(); got != "2026-03-01T12:00:00.000000000Z#m1" {
		t.Fatalf("unexpected key %q", got)
	}
}
