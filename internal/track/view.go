package track

// TaskView is the read-only projection the presentation layer consumes.
// It carries everything a display row needs, pre-formatted, so no engine
// object leaks into UI code.
type TaskView struct {
	ID       string
	Name     string
	Project  string
	Tags     []string
	LifeArea string
	Active   bool
	Elapsed  string // HH:MM:SS including the running interval
	Today    string // HH:MM:SS recorded against today's date
	Seconds  int64  // raw elapsed, for sorting
}

// Snapshot projects every task into its display view as of the registry
// clock's current instant. Pure: repeated calls only re-read the clock.
func (r *Registry) Snapshot() []TaskView {
	at := r.now()
	today := DateOf(at)
	views := make([]TaskView, 0, len(r.tasks))
	for _, t := range r.tasks {
		elapsed := t.Elapsed(at)
		todaySpan := t.ledger.Get(today)
		if t.running {
			todaySpan = todaySpan.Add(Between(t.startedAt, at))
		}
		views = append(views, TaskView{
			ID:       t.id,
			Name:     t.name,
			Project:  t.project,
			Tags:     t.Tags(),
			LifeArea: t.lifeArea,
			Active:   t.running,
			Elapsed:  elapsed.FormatHMS(),
			Today:    todaySpan.FormatHMS(),
			Seconds:  elapsed.Seconds(),
		})
	}
	return views
}
