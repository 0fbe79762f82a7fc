package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultWeights_SumToOne(t *testing.T) {
	w := DefaultWeights()
	assert.InDelta(t, 1.0, w.Sum(), weightSumTolerance)
	assert.NoError(t, w.Validate())
}

func TestWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Weights)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(w *Weights) {},
		},
		{
			name: "negative component rejected",
			mutate: func(w *Weights) {
				w.Distance = -0.1
				w.Price += 0.4
			},
			wantErr: "non-negative",
		},
		{
			name: "sum away from one rejected",
			mutate: func(w *Weights) {
				w.Rating += 0.2
			},
			wantErr: "sum to 1.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := DefaultWeights()
			tt.mutate(&w)
			err := w.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestFromMap(t *testing.T) {
	t.Run("empty map falls back to defaults", func(t *testing.T) {
		assert.Equal(t, DefaultWeights(), FromMap(nil))
		assert.Equal(t, DefaultWeights(), FromMap(map[string]float64{}))
	})

	t.Run("all keys mapped", func(t *testing.T) {
		w := FromMap(map[string]float64{
			"distance":     0.5,
			"price":        0.1,
			"rating":       0.1,
			"experience":   0.1,
			"skill":        0.1,
			"availability": 0.05,
			"cold_start":   0.05,
		})
		assert.Equal(t, 0.5, w.Distance)
		assert.Equal(t, 0.05, w.ColdStart)
		assert.NoError(t, w.Validate())
	})
}
