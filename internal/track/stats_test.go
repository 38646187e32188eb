package track

import (
	"testing"
	"time"
)

func TestStatsByProject(t *testing.T) {
	r, clock := newTestRegistry()

	a, _ := r.AddTask("a", "Paper", nil, "")
	b, _ := r.AddTask("b", "", nil, "")

	runFor := func(task *Task, d time.Duration) {
		if err := r.Toggle(task.ID()); err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
		clock.Advance(d)
		if err := r.Toggle(task.ID()); err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
	}
	runFor(a, 300*time.Second)
	runFor(b, 100*time.Second)

	buckets, err := r.StatsBy(KindProject)
	if err != nil {
		t.Fatalf("StatsBy failed: %v", err)
	}
	if len(buckets) != 2 {
		t.Fatalf("Expected 2 buckets, got %d", len(buckets))
	}
	if buckets[0].Label != "Paper" || buckets[0].Seconds != 300 {
		t.Errorf("Expected Paper/300 first, got %s/%v", buckets[0].Label, buckets[0].Seconds)
	}
	if buckets[1].Label != NoProject || buckets[1].Seconds != 100 {
		t.Errorf("Expected %s/100 second, got %s/%v", NoProject, buckets[1].Label, buckets[1].Seconds)
	}
}

func TestStatsByTagSplitsEvenly(t *testing.T) {
	r, clock := newTestRegistry()
	a, _ := r.AddTask("a", "", []string{"deep", "review"}, "")

	if err := r.Toggle(a.ID()); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	clock.Advance(100 * time.Second)
	if err := r.Toggle(a.ID()); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	buckets, err := r.StatsBy(KindTag)
	if err != nil {
		t.Fatalf("StatsBy failed: %v", err)
	}
	if len(buckets) != 2 {
		t.Fatalf("Expected 2 buckets, got %d", len(buckets))
	}
	for _, b := range buckets {
		if b.Seconds != 50 {
			t.Errorf("Tag %s should get an even 50s share, got %v", b.Label, b.Seconds)
		}
	}
}

func TestStatsDropsZeroBuckets(t *testing.T) {
	r, _ := newTestRegistry()
	if _, err := r.AddTask("untouched", "Paper", nil, ""); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	buckets, err := r.StatsBy(KindProject)
	if err != nil {
		t.Fatalf("StatsBy failed: %v", err)
	}
	if len(buckets) != 0 {
		t.Errorf("Zero-time buckets should be dropped, got %v", buckets)
	}
}

func TestStatsIncludesRunningInterval(t *testing.T) {
	r, clock := newTestRegistry()
	a, _ := r.AddTask("a", "", nil, "Health")
	if err := r.Toggle(a.ID()); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	clock.Advance(42 * time.Second)

	buckets, err := r.StatsBy(KindLifeArea)
	if err != nil {
		t.Fatalf("StatsBy failed: %v", err)
	}
	if len(buckets) != 1 || buckets[0].Seconds != 42 {
		t.Errorf("Running interval should count, got %v", buckets)
	}

	if _, err := r.StatsBy(Kind("bogus")); err != ErrUnknownKind {
		t.Errorf("Expected ErrUnknownKind, got %v", err)
	}
}
