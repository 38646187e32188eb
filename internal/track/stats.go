package track

import "sort"

// Labels for time not attributed to any taxonomy entry.
const (
	NoProject  = "No Project"
	NoLifeArea = "No Life Area"
	NoTags     = "No Tags"
)

// Bucket is one row of a stats breakdown. Seconds is fractional because
// a multi-tagged task's time is split evenly across its tags.
type Bucket struct {
	Label   string
	Seconds float64
}

// StatsBy aggregates current elapsed time (running intervals included)
// across all tasks, keyed by the given taxonomy kind. Empty buckets are
// dropped and the result is sorted by descending time, ties by label.
func (r *Registry) StatsBy(kind Kind) ([]Bucket, error) {
	if _, err := r.taxonomySet(kind); err != nil {
		return nil, err
	}
	at := r.now()
	acc := make(map[string]float64)
	for _, t := range r.tasks {
		secs := float64(t.Elapsed(at).Seconds())
		if secs == 0 {
			continue
		}
		switch kind {
		case KindProject:
			acc[labelOr(t.project, NoProject)] += secs
		case KindLifeArea:
			acc[labelOr(t.lifeArea, NoLifeArea)] += secs
		case KindTag:
			if len(t.tags) == 0 {
				acc[NoTags] += secs
				continue
			}
			share := secs / float64(len(t.tags))
			for _, tg := range t.tags {
				acc[tg] += share
			}
		}
	}
	buckets := make([]Bucket, 0, len(acc))
	for label, secs := range acc {
		buckets = append(buckets, Bucket{Label: label, Seconds: secs})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Seconds != buckets[j].Seconds {
			return buckets[i].Seconds > buckets[j].Seconds
		}
		return buckets[i].Label < buckets[j].Label
	})
	return buckets, nil
}

func labelOr(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}
