package track

import (
	"encoding/json"
	"strings"
	"time"
)

// Record is the persisted shape of a registry. Field names are fixed:
// data files written by earlier versions of the tracker must keep
// loading byte-for-byte, so the codec never renames or adds fields.
type Record struct {
	Tasks     []TaskRecord `json:"tasks"`
	Projects  []string     `json:"projects"`
	Tags      []string     `json:"tags"`
	LifeAreas []string     `json:"life_areas"`
}

// TaskRecord is one task in a Record. Durations are stored as float
// seconds and the start instant as an ISO 8601 timestamp string.
type TaskRecord struct {
	Name      string             `json:"name"`
	Project   *string            `json:"project"`
	Tags      []string           `json:"tags"`
	LifeArea  *string            `json:"life_area"`
	IsActive  bool               `json:"is_active"`
	StartTime *string            `json:"start_time"`
	TotalTime float64            `json:"total_time"`
	DailyTime map[string]float64 `json:"daily_time"`
}

// UnmarshalJSON decodes the record with per-task leniency: a task
// element that fails to decode (wrong-typed field, truncated object) is
// dropped and the rest of the file still loads. Only a malformed
// top-level document is a load error.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		Tasks     []json.RawMessage `json:"tasks"`
		Projects  []string          `json:"projects"`
		Tags      []string          `json:"tags"`
		LifeAreas []string          `json:"life_areas"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Projects = raw.Projects
	r.Tags = raw.Tags
	r.LifeAreas = raw.LifeAreas
	r.Tasks = make([]TaskRecord, 0, len(raw.Tasks))
	for _, el := range raw.Tasks {
		var tr TaskRecord
		if err := json.Unmarshal(el, &tr); err != nil {
			continue
		}
		r.Tasks = append(r.Tasks, tr)
	}
	return nil
}

// Timestamp layouts accepted on load. Files written by the original
// tracker carry zone-less isoformat timestamps; this codec writes
// RFC 3339.
var startTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// ToRecord converts the registry into its persisted shape. Slices and
// maps are always non-nil so the encoded form has stable field shapes.
func ToRecord(r *Registry) *Record {
	rec := &Record{
		Tasks:     make([]TaskRecord, 0, len(r.tasks)),
		Projects:  appendCopy(r.projects),
		Tags:      appendCopy(r.tags),
		LifeAreas: appendCopy(r.lifeAreas),
	}
	for _, t := range r.tasks {
		tr := TaskRecord{
			Name:      t.name,
			Project:   nullable(t.project),
			Tags:      appendCopy(t.tags),
			LifeArea:  nullable(t.lifeArea),
			IsActive:  t.running,
			TotalTime: float64(t.total.Seconds()),
			DailyTime: make(map[string]float64, t.ledger.Len()),
		}
		if t.running {
			s := t.startedAt.Format(time.RFC3339Nano)
			tr.StartTime = &s
		}
		for _, day := range t.ledger.Days() {
			tr.DailyTime[string(day)] = float64(t.ledger.Get(day).Seconds())
		}
		rec.Tasks = append(rec.Tasks, tr)
	}
	return rec
}

// FromRecord rebuilds a registry from its persisted shape, applying the
// corruption recovery rules:
//
//   - a task with an empty name is skipped; the rest of the record still
//     loads
//   - negative durations clamp to zero
//   - an active task whose start timestamp is missing or unparseable is
//     forced idle, keeping its accumulated time
//   - if several tasks are marked active, the first keeps running and
//     the rest are forced idle (the single-active rule holds on load)
//
// Task ids are minted fresh: the record format predates ids and carries
// none.
func FromRecord(rec *Record) *Registry {
	r := NewRegistry()
	r.projects = dedupe(rec.Projects)
	r.tags = dedupe(rec.Tags)
	r.lifeAreas = dedupe(rec.LifeAreas)

	sawActive := false
	for _, tr := range rec.Tasks {
		if strings.TrimSpace(tr.Name) == "" {
			continue
		}
		t := NewTask(tr.Name, deref(tr.Project), tr.Tags, deref(tr.LifeArea))
		t.total = Seconds(int64(tr.TotalTime))
		for day, secs := range tr.DailyTime {
			t.ledger.Record(Date(day), Seconds(int64(secs)))
		}
		if tr.IsActive && !sawActive {
			if at, ok := parseStartTime(tr.StartTime); ok {
				t.running = true
				t.startedAt = at
				sawActive = true
			}
		}
		// References must exist in the taxonomy after load even if the
		// record's sets were out of step with its tasks.
		r.adoptLabels(t.project, t.tags, t.lifeArea)
		r.tasks = append(r.tasks, t)
	}
	return r
}

func parseStartTime(s *string) (time.Time, bool) {
	if s == nil {
		return time.Time{}, false
	}
	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, *s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func appendCopy(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
