package track

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task is a trackable unit of work. It is either idle or running; while
// running it holds the instant the current interval began. The lifetime
// total excludes the running interval, which is folded in on Stop (or at
// a day boundary by Roll).
//
// A task has no visibility into its siblings: the single-active-task
// rule is enforced by the Registry, not here.
type Task struct {
	id        string
	name      string
	project   string // "" means no project
	tags      []string
	lifeArea  string // "" means no life area
	running   bool
	startedAt time.Time
	total     Duration
	ledger    *Ledger
}

// NewTask creates an idle task with a fresh id. The name is assumed
// validated by the caller (the registry rejects empty names).
func NewTask(name, project string, tags []string, lifeArea string) *Task {
	return &Task{
		id:       uuid.New().String(),
		name:     name,
		project:  project,
		tags:     dedupe(tags),
		lifeArea: lifeArea,
		ledger:   NewLedger(),
	}
}

// ID returns the task's stable runtime identity. Ids are minted per
// process and are not part of the persisted record.
func (t *Task) ID() string { return t.id }

// Name returns the display name.
func (t *Task) Name() string { return t.name }

// Project returns the project label, or "" if unassigned.
func (t *Task) Project() string { return t.project }

// LifeArea returns the life-area label, or "" if unassigned.
func (t *Task) LifeArea() string { return t.lifeArea }

// Tags returns a copy of the task's tag set in assignment order.
func (t *Task) Tags() []string {
	out := make([]string, len(t.tags))
	copy(out, t.tags)
	return out
}

// Running reports whether the task is currently accumulating time.
func (t *Task) Running() bool { return t.running }

// StartedAt returns the start instant of the running interval. Valid
// only while Running.
func (t *Task) StartedAt() time.Time { return t.startedAt }

// Total returns the lifetime total, excluding any running interval.
func (t *Task) Total() Duration { return t.total }

// Ledger returns the task's per-day breakdown.
func (t *Task) Ledger() *Ledger { return t.ledger }

// Start transitions the task from idle to running as of at.
func (t *Task) Start(at time.Time) error {
	if t.running {
		return ErrAlreadyRunning
	}
	t.running = true
	t.startedAt = at
	return nil
}

// Stop closes the running interval as of at: the elapsed span is added
// to the lifetime total and recorded against at's calendar day.
func (t *Task) Stop(at time.Time) error {
	if !t.running {
		return ErrNotRunning
	}
	elapsed := Between(t.startedAt, at)
	t.total = t.total.Add(elapsed)
	t.ledger.Record(DateOf(at), elapsed)
	t.running = false
	t.startedAt = time.Time{}
	return nil
}

// Elapsed returns the task's total as of at, including the running
// interval. Pure: safe to call at any rate, it drives live displays.
func (t *Task) Elapsed(at time.Time) Duration {
	if t.running {
		return t.total.Add(Between(t.startedAt, at))
	}
	return t.total
}

// Roll applies the day-boundary closure. If the task is running and its
// interval began before today, the pre-midnight portion is attributed to
// the old date, the interval restarts at today's local midnight, and an
// empty entry is seeded for today. Idle tasks are untouched: the ledger
// only records days a task was actually worked on.
//
// If the midnight instant cannot be derived (unparseable date, or a host
// clock that jumped backwards past the interval start), the closure uses
// at itself as the boundary; the transition then lands a few seconds
// late but no time is lost or double-counted.
//
// Reports whether any state changed, so callers know to persist.
func (t *Task) Roll(today Date, at time.Time) bool {
	if !t.running {
		return false
	}
	startDay := DateOf(t.startedAt)
	if startDay == today {
		return false
	}
	boundary, ok := today.Midnight(at.Location())
	if !ok || boundary.Before(t.startedAt) {
		boundary = at
	}
	elapsed := Between(t.startedAt, boundary)
	t.total = t.total.Add(elapsed)
	t.ledger.Record(startDay, elapsed)
	t.startedAt = boundary
	t.ledger.Record(today, Duration{})
	return true
}

// Rename changes the display name.
func (t *Task) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	t.name = name
	return nil
}

// SetProject assigns or clears ("") the project label.
func (t *Task) SetProject(project string) { t.project = project }

// SetLifeArea assigns or clears ("") the life-area label.
func (t *Task) SetLifeArea(area string) { t.lifeArea = area }

// SetTags replaces the tag set, dropping duplicates.
func (t *Task) SetTags(tags []string) { t.tags = dedupe(tags) }

// HasTag reports whether tag is assigned to the task.
func (t *Task) HasTag(tag string) bool {
	for _, tg := range t.tags {
		if tg == tag {
			return true
		}
	}
	return false
}

func (t *Task) removeTag(tag string) {
	out := t.tags[:0]
	for _, tg := range t.tags {
		if tg != tag {
			out = append(out, tg)
		}
	}
	t.tags = out
}

func (t *Task) renameTag(old, new string) {
	for i, tg := range t.tags {
		if tg == old {
			t.tags[i] = new
		}
	}
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
