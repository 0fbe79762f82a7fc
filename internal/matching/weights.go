// internal/matching/weights.go
package matching

import (
	"fmt"
	"math"
)

// Weights is the composite-score weight vector. Components must be
// non-negative and sum to 1.0 so the composite stays in [0,1].
type Weights struct {
	Distance     float64 `json:"distance" mapstructure:"distance"`
	Price        float64 `json:"price" mapstructure:"price"`
	Rating       float64 `json:"rating" mapstructure:"rating"`
	Experience   float64 `json:"experience" mapstructure:"experience"`
	Skill        float64 `json:"skill" mapstructure:"skill"`
	Availability float64 `json:"availability" mapstructure:"availability"`
	ColdStart    float64 `json:"coldStart" mapstructure:"cold_start"`
}

// DefaultWeights returns the production weight vector.
func DefaultWeights() Weights {
	return Weights{
		Distance:     0.30,
		Price:        0.15,
		Rating:       0.25,
		Experience:   0.10,
		Skill:        0.15,
		Availability: 0.05,
		ColdStart:    0.05,
	}
}

const weightSumTolerance = 1e-6

// Sum returns the total of all components.
func (w Weights) Sum() float64 {
	return w.Distance + w.Price + w.Rating + w.Experience + w.Skill + w.Availability + w.ColdStart
}

// Validate rejects vectors with negative components or a sum away from 1.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"distance":     w.Distance,
		"price":        w.Price,
		"rating":       w.Rating,
		"experience":   w.Experience,
		"skill":        w.Skill,
		"availability": w.Availability,
		"coldStart":    w.ColdStart,
	} {
		if v < 0 {
			return fmt.Errorf("weight %q must be non-negative, got %v", name, v)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %v", sum)
	}
	return nil
}

// FromMap builds a Weights vector from a string-keyed config map,
// falling back to defaults when the map is empty.
func FromMap(m map[string]float64) Weights {
	if len(m) == 0 {
		return DefaultWeights()
	}
	return Weights{
		Distance:     m["distance"],
		Price:        m["price"],
		Rating:       m["rating"],
		Experience:   m["experience"],
		Skill:        m["skill"],
		Availability: m["availability"],
		ColdStart:    m["cold_start"],
	}
}
