package history

import (
	"time"

	"github.com/Thanajai/GrowFuse/internal/crops"
)

// Inputs captures the farm data a recommendation session was produced from.
type Inputs struct {
	Location         string                 `json:"location"`
	SoilType         crops.SoilType         `json:"soilType"`
	LandArea         float64                `json:"landArea"`
	ForecastDuration crops.ForecastDuration `json:"forecastDuration"`
}

// Entry is one completed recommendation session. Entries are created at
// submission time, never mutated, and removed only by eviction.
type Entry struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	Date            string                 `json:"date"`
	Inputs          Inputs                 `json:"inputs"`
	Recommendations []crops.Recommendation `json:"recommendations"`
}

// NewEntry builds a history entry for the given session with a time-derived id.
func NewEntry(inputs Inputs, recommendations []crops.Recommendation) Entry {
	now := time.Now().UTC()
	return Entry{
		ID:              "rec_" + now.Format(time.RFC3339Nano),
		Name:            "Recs - " + now.Format("2 Jan 2006, 15:04"),
		Date:            now.Format(time.RFC3339),
		Inputs:          inputs,
		Recommendations: recommendations,
	}
}

// clone makes a structural copy so sanitization never mutates the caller's
// entry. Cost is O(len(Recommendations)); every field is a value type.
func (e Entry) clone() Entry {
	out := e
	out.Recommendations = make([]crops.Recommendation, len(e.Recommendations))
	copy(out.Recommendations, e.Recommendations)
	return out
}
