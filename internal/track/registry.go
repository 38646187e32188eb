package track

import (
	"strings"
	"time"
)

// Kind selects one of the registry's three taxonomy sets.
type Kind string

const (
	KindProject  Kind = "project"
	KindTag      Kind = "tag"
	KindLifeArea Kind = "life_area"
)

// Registry owns the ordered task collection and the shared taxonomy
// (projects, tags, life areas). It is the single enforcement point for
// the rule that at most one task is running at any instant.
//
// The registry has no internal synchronization: all calls are assumed to
// arrive on one logical thread (commands, the display tick and the day
// roll alike). Callers that dispatch from multiple goroutines must
// serialize access themselves.
type Registry struct {
	tasks     []*Task
	projects  []string
	tags      []string
	lifeAreas []string

	// now is the clock used for start/stop/roll instants. Tests swap it
	// for a fixed or stepped clock.
	now func() time.Time
}

// NewRegistry returns an empty registry on the system clock.
func NewRegistry() *Registry {
	return &Registry{now: time.Now}
}

// SetClock replaces the registry's time source.
func (r *Registry) SetClock(now func() time.Time) {
	r.now = now
}

// Now returns the registry clock's current instant.
func (r *Registry) Now() time.Time {
	return r.now()
}

// Tasks returns the task sequence in insertion (display) order.
func (r *Registry) Tasks() []*Task {
	out := make([]*Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

// Len returns the number of tasks.
func (r *Registry) Len() int {
	return len(r.tasks)
}

// Task looks a task up by id.
func (r *Registry) Task(id string) (*Task, error) {
	for _, t := range r.tasks {
		if t.id == id {
			return t, nil
		}
	}
	return nil, ErrTaskNotFound
}

// Resolve finds a task by exact name, or failing that by unique id
// prefix. Ambiguous or unknown references yield ErrTaskNotFound.
func (r *Registry) Resolve(ref string) (*Task, error) {
	for _, t := range r.tasks {
		if t.name == ref {
			return t, nil
		}
	}
	var match *Task
	for _, t := range r.tasks {
		if strings.HasPrefix(t.id, ref) {
			if match != nil {
				return nil, ErrTaskNotFound
			}
			match = t
		}
	}
	if match == nil {
		return nil, ErrTaskNotFound
	}
	return match, nil
}

// Active returns the currently running task, or nil.
func (r *Registry) Active() *Task {
	for _, t := range r.tasks {
		if t.running {
			return t
		}
	}
	return nil
}

// AddTask creates an idle task and appends it to the sequence. Labels
// not yet present in the taxonomy are registered as a side effect, so
// task references never dangle.
func (r *Registry) AddTask(name, project string, tags []string, lifeArea string) (*Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	r.adoptLabels(project, tags, lifeArea)
	t := NewTask(name, project, tags, lifeArea)
	r.tasks = append(r.tasks, t)
	return t, nil
}

// Toggle flips the target task's running state. Starting a task first
// stops whichever task is currently running, so the single-active rule
// cannot be violated through this entry point.
func (r *Registry) Toggle(id string) error {
	target, err := r.Task(id)
	if err != nil {
		return err
	}
	at := r.now()
	if target.running {
		return target.Stop(at)
	}
	if active := r.Active(); active != nil {
		if err := active.Stop(at); err != nil {
			return err
		}
	}
	return target.Start(at)
}

// DeleteTask removes a task. A running task is stopped first so its
// accumulated time reaches the ledger before the task goes away.
func (r *Registry) DeleteTask(id string) error {
	for i, t := range r.tasks {
		if t.id != id {
			continue
		}
		if t.running {
			if err := t.Stop(r.now()); err != nil {
				return err
			}
		}
		r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
		return nil
	}
	return ErrTaskNotFound
}

// EditTask rewrites a task's name and taxonomy references. Unknown
// labels are adopted into the taxonomy, mirroring AddTask.
func (r *Registry) EditTask(id, name, project string, tags []string, lifeArea string) error {
	t, err := r.Task(id)
	if err != nil {
		return err
	}
	if err := t.Rename(name); err != nil {
		return err
	}
	r.adoptLabels(project, tags, lifeArea)
	t.SetProject(project)
	t.SetTags(tags)
	t.SetLifeArea(lifeArea)
	return nil
}

// Taxonomy returns the labels of one taxonomy set in insertion order.
func (r *Registry) Taxonomy(kind Kind) ([]string, error) {
	set, err := r.taxonomySet(kind)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(*set))
	copy(out, *set)
	return out, nil
}

// AddTaxonomy registers a new label in the given set.
func (r *Registry) AddTaxonomy(kind Kind, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return ErrEmptyName
	}
	set, err := r.taxonomySet(kind)
	if err != nil {
		return err
	}
	if contains(*set, value) {
		return ErrDuplicateEntry
	}
	*set = append(*set, value)
	return nil
}

// RenameTaxonomy renames a label and cascades the rename into every task
// referencing it. A collision with an existing label is rejected, not
// merged; nothing changes on rejection.
func (r *Registry) RenameTaxonomy(kind Kind, old, new string) error {
	new = strings.TrimSpace(new)
	if new == "" {
		return ErrEmptyName
	}
	set, err := r.taxonomySet(kind)
	if err != nil {
		return err
	}
	idx := index(*set, old)
	if idx < 0 {
		return ErrTaxonomyNotFound
	}
	if contains(*set, new) {
		return ErrDuplicateEntry
	}
	(*set)[idx] = new
	for _, t := range r.tasks {
		switch kind {
		case KindProject:
			if t.project == old {
				t.project = new
			}
		case KindTag:
			t.renameTag(old, new)
		case KindLifeArea:
			if t.lifeArea == old {
				t.lifeArea = new
			}
		}
	}
	return nil
}

// DeleteTaxonomy removes a label and clears it from every referencing
// task: tag references are dropped from tag sets, project and life-area
// references are nulled. An O(n) pass over the tasks.
func (r *Registry) DeleteTaxonomy(kind Kind, value string) error {
	set, err := r.taxonomySet(kind)
	if err != nil {
		return err
	}
	idx := index(*set, value)
	if idx < 0 {
		return ErrTaxonomyNotFound
	}
	*set = append((*set)[:idx], (*set)[idx+1:]...)
	for _, t := range r.tasks {
		switch kind {
		case KindProject:
			if t.project == value {
				t.project = ""
			}
		case KindTag:
			t.removeTag(value)
		case KindLifeArea:
			if t.lifeArea == value {
				t.lifeArea = ""
			}
		}
	}
	return nil
}

// RollAll applies the day-boundary closure to every task. Idempotent for
// a given today; reports whether any task changed, so callers know to
// persist. The scheduler contract is at least one call per day boundary,
// every 60s recommended.
func (r *Registry) RollAll(today Date) bool {
	at := r.now()
	changed := false
	for _, t := range r.tasks {
		if t.Roll(today, at) {
			changed = true
		}
	}
	return changed
}

// TickAll is the display-refresh hook. It mutates nothing; it exists so
// the periodic driver and the presentation layer share one entry point
// for "re-read the clock and redraw".
func (r *Registry) TickAll() []TaskView {
	return r.Snapshot()
}

func (r *Registry) taxonomySet(kind Kind) (*[]string, error) {
	switch kind {
	case KindProject:
		return &r.projects, nil
	case KindTag:
		return &r.tags, nil
	case KindLifeArea:
		return &r.lifeAreas, nil
	}
	return nil, ErrUnknownKind
}

// adoptLabels folds task-level labels into the taxonomy so references
// never dangle.
func (r *Registry) adoptLabels(project string, tags []string, lifeArea string) {
	if project != "" && !contains(r.projects, project) {
		r.projects = append(r.projects, project)
	}
	for _, tg := range tags {
		if tg != "" && !contains(r.tags, tg) {
			r.tags = append(r.tags, tg)
		}
	}
	if lifeArea != "" && !contains(r.lifeAreas, lifeArea) {
		r.lifeAreas = append(r.lifeAreas, lifeArea)
	}
}

func contains(set []string, v string) bool {
	return index(set, v) >= 0
}

func index(set []string, v string) int {
	for i, s := range set {
		if s == v {
			return i
		}
	}
	return -1
}
