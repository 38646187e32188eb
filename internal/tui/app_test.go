package tui

import (
	"path/filepath"
	"testing"
	"time"

	"tracklet/internal/store"
	"tracklet/internal/track"
)

func TestRollMsgRefreshesViews(t *testing.T) {
	clock := time.Date(2024, 3, 15, 23, 59, 0, 0, time.Local)
	reg := track.NewRegistry()
	reg.SetClock(func() time.Time { return clock })

	task, err := reg.AddTask("night shift", "", nil, "")
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if err := reg.Toggle(task.ID()); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	st := store.NewJSONStore(filepath.Join(t.TempDir(), "data.json"))
	app := New(reg, st, time.Second, time.Minute)

	// Cross midnight: the roll must show post-rollover numbers right
	// away, not wait for the next display tick.
	clock = clock.Add(3 * time.Minute)
	model, _ := app.Update(rollMsg(clock))
	a := model.(*App)

	if len(a.views) != 1 {
		t.Fatalf("Expected 1 view, got %d", len(a.views))
	}
	if a.views[0].Today != "00:02:00" {
		t.Errorf("Expected today 00:02:00 after rollover, got %s", a.views[0].Today)
	}
	if a.views[0].Elapsed != "00:03:00" {
		t.Errorf("Expected elapsed 00:03:00, got %s", a.views[0].Elapsed)
	}
	if got := task.Ledger().Get("2024-03-15").Seconds(); got != 60 {
		t.Errorf("Expected 60s attributed to the old day, got %d", got)
	}
}
