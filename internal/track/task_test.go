package track

import (
	"testing"
	"time"
)

var baseTime = time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)

func TestStartStopAccumulates(t *testing.T) {
	task := NewTask("Write spec", "Paper", nil, "")

	if err := task.Start(baseTime); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !task.Running() {
		t.Error("Task should be running after Start")
	}

	stop := baseTime.Add(90 * time.Second)
	if err := task.Stop(stop); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if task.Running() {
		t.Error("Task should be idle after Stop")
	}
	if got := task.Total().Seconds(); got != 90 {
		t.Errorf("Expected lifetime total 90, got %d", got)
	}
	if got := task.Ledger().Get(DateOf(stop)).Seconds(); got != 90 {
		t.Errorf("Expected 90s recorded for today, got %d", got)
	}
}

func TestAlternatingIntervalsSumExactly(t *testing.T) {
	task := NewTask("t", "", nil, "")
	at := baseTime
	intervals := []time.Duration{30 * time.Second, 5 * time.Minute, 1 * time.Second}

	var want int64
	for _, iv := range intervals {
		if err := task.Start(at); err != nil {
			t.Fatalf("Start failed: %v", err)
		}
		at = at.Add(iv)
		if err := task.Stop(at); err != nil {
			t.Fatalf("Stop failed: %v", err)
		}
		at = at.Add(17 * time.Minute) // idle gap contributes nothing
		want += int64(iv / time.Second)
	}

	if got := task.Total().Seconds(); got != want {
		t.Errorf("Expected total %d, got %d", want, got)
	}
	if got := task.Ledger().Total().Seconds(); got != want {
		t.Errorf("Ledger total %d should match lifetime total %d", got, want)
	}
}

func TestInvalidTransitions(t *testing.T) {
	task := NewTask("t", "", nil, "")

	if err := task.Stop(baseTime); err != ErrNotRunning {
		t.Errorf("Expected ErrNotRunning, got %v", err)
	}
	if err := task.Start(baseTime); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := task.Start(baseTime.Add(time.Second)); err != ErrAlreadyRunning {
		t.Errorf("Expected ErrAlreadyRunning, got %v", err)
	}
}

func TestElapsedNeverDecreases(t *testing.T) {
	task := NewTask("t", "", nil, "")
	if err := task.Start(baseTime); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	prev := task.Elapsed(baseTime)
	for i := 1; i <= 10; i++ {
		cur := task.Elapsed(baseTime.Add(time.Duration(i) * 500 * time.Millisecond))
		if cur.Seconds() < prev.Seconds() {
			t.Fatalf("Elapsed decreased from %d to %d", prev.Seconds(), cur.Seconds())
		}
		prev = cur
	}

	// Elapsed is pure: repeated reads do not change state
	if task.Total().Seconds() != 0 {
		t.Errorf("Elapsed reads must not flush time into the total, got %d", task.Total().Seconds())
	}
}

func TestRollAcrossMidnight(t *testing.T) {
	// Started 23:59:50, rolled 15s later at 00:00:05 the next day.
	start := time.Date(2024, 3, 15, 23, 59, 50, 0, time.Local)
	rollAt := time.Date(2024, 3, 16, 0, 0, 5, 0, time.Local)

	task := NewTask("night shift", "", nil, "")
	if err := task.Start(start); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if !task.Roll(DateOf(rollAt), rollAt) {
		t.Fatal("Roll should report a change across the boundary")
	}
	if got := task.Ledger().Get("2024-03-15").Seconds(); got != 10 {
		t.Errorf("Expected 10s attributed to the old day, got %d", got)
	}
	if !task.Ledger().Has("2024-03-16") {
		t.Error("Roll should seed an entry for the new day")
	}
	if !task.Running() {
		t.Error("Task should still be running after Roll")
	}

	// Stop at 00:00:05: the post-midnight portion lands on the new day.
	if err := task.Stop(rollAt); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if got := task.Ledger().Get("2024-03-16").Seconds(); got != 5 {
		t.Errorf("Expected 5s attributed to the new day, got %d", got)
	}
	if got := task.Total().Seconds(); got != 15 {
		t.Errorf("Expected full 15s lifetime total, no loss or double count, got %d", got)
	}
}

func TestRollIdempotent(t *testing.T) {
	start := time.Date(2024, 3, 15, 23, 0, 0, 0, time.Local)
	task := NewTask("t", "", nil, "")
	if err := task.Start(start); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	rollAt := time.Date(2024, 3, 16, 0, 10, 0, 0, time.Local)
	today := DateOf(rollAt)
	if !task.Roll(today, rollAt) {
		t.Fatal("First roll should change state")
	}
	oldDay := task.Ledger().Get("2024-03-15").Seconds()

	// Redundant calls with the same today are no-ops.
	if task.Roll(today, rollAt.Add(time.Minute)) {
		t.Error("Second roll with same today should be a no-op")
	}
	if got := task.Ledger().Get("2024-03-15").Seconds(); got != oldDay {
		t.Errorf("Old day changed on redundant roll: %d -> %d", oldDay, got)
	}
}

func TestRollIdleTaskNoOp(t *testing.T) {
	task := NewTask("t", "", nil, "")
	task.Ledger().Record("2024-03-14", Seconds(60))

	if task.Roll("2024-03-16", time.Date(2024, 3, 16, 0, 1, 0, 0, time.Local)) {
		t.Error("Roll on an idle task should be a no-op")
	}
	if task.Ledger().Len() != 1 {
		t.Errorf("No entry should be synthesized for skipped days, got %d entries", task.Ledger().Len())
	}
}

func TestRenameValidation(t *testing.T) {
	task := NewTask("t", "", nil, "")
	if err := task.Rename("  "); err != ErrEmptyName {
		t.Errorf("Expected ErrEmptyName, got %v", err)
	}
	if task.Name() != "t" {
		t.Errorf("Name should be unchanged after rejected rename, got %s", task.Name())
	}
	if err := task.Rename("renamed"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if task.Name() != "renamed" {
		t.Errorf("Expected 'renamed', got %s", task.Name())
	}
}

func TestTagDedupe(t *testing.T) {
	task := NewTask("t", "", []string{"deep", "deep", "", "review"}, "")
	tags := task.Tags()
	if len(tags) != 2 || tags[0] != "deep" || tags[1] != "review" {
		t.Errorf("Expected deduped [deep review], got %v", tags)
	}
}
