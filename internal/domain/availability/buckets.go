package availability

import (
	"sort"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
)

type Period string

const (
	Morning   Period = "morning"
	Afternoon Period = "afternoon"
	Evening   Period = "evening"
)

// Bucket groups slots of one part of the day.
type Bucket struct {
	Period Period                  `json:"period"`
	Label  string                  `json:"label"`
	Slots  []models.AggregatedSlot `json:"slots"`
}

var labels = map[Period]string{
	Morning:   "Mañana",
	Afternoon: "Tarde",
	Evening:   "Noche",
}

func PeriodOf(s models.AggregatedSlot) Period {
	switch h := s.Start.Hour(); {
	case h < 12:
		return Morning
	case h < 18:
		return Afternoon
	default:
		return Evening
	}
}

// SortByStart orders slots in place by start time.
func SortByStart(slots []models.AggregatedSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start.Time)
	})
}

// Bucketize returns Morning/Afternoon/Evening buckets in that order,
// omitting empty ones. The input is not modified.
func Bucketize(slots []models.AggregatedSlot) []Bucket {
	sorted := make([]models.AggregatedSlot, len(slots))
	copy(sorted, slots)
	SortByStart(sorted)

	byPeriod := map[Period][]models.AggregatedSlot{}
	for _, s := range sorted {
		p := PeriodOf(s)
		byPeriod[p] = append(byPeriod[p], s)
	}

	out := make([]Bucket, 0, 3)
	for _, p := range []Period{Morning, Afternoon, Evening} {
		if len(byPeriod[p]) == 0 {
			continue
		}
		out = append(out, Bucket{Period: p, Label: labels[p], Slots: byPeriod[p]})
	}
	return out
}
