package track

import "testing"

func TestLedgerRecord(t *testing.T) {
	l := NewLedger()

	l.Record("2024-03-15", Seconds(60))
	if got := l.Get("2024-03-15").Seconds(); got != 60 {
		t.Errorf("Expected 60s, got %d", got)
	}

	// Recording again accumulates into the same entry
	l.Record("2024-03-15", Seconds(30))
	if got := l.Get("2024-03-15").Seconds(); got != 90 {
		t.Errorf("Expected 90s after second record, got %d", got)
	}
	if l.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", l.Len())
	}
}

func TestLedgerZeroRecordCreatesEntry(t *testing.T) {
	l := NewLedger()
	l.Record("2024-03-16", Duration{})
	if !l.Has("2024-03-16") {
		t.Error("Zero record should still create the day entry")
	}
	if l.Total().Seconds() != 0 {
		t.Errorf("Expected zero total, got %d", l.Total().Seconds())
	}
}

func TestLedgerTotal(t *testing.T) {
	l := NewLedger()
	l.Record("2024-03-14", Seconds(100))
	l.Record("2024-03-15", Seconds(200))
	l.Record("2024-03-16", Seconds(50))
	if got := l.Total().Seconds(); got != 350 {
		t.Errorf("Expected total 350, got %d", got)
	}
}

func TestLedgerDaysSorted(t *testing.T) {
	l := NewLedger()
	l.Record("2024-03-16", Seconds(1))
	l.Record("2024-03-14", Seconds(1))
	l.Record("2024-03-15", Seconds(1))

	days := l.Days()
	want := []Date{"2024-03-14", "2024-03-15", "2024-03-16"}
	if len(days) != len(want) {
		t.Fatalf("Expected %d days, got %d", len(want), len(days))
	}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("Day %d = %s, want %s", i, days[i], want[i])
		}
	}
}
