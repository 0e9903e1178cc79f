package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []float64{0.34, 0.65, 0.73, 0.23, 0.18, 0.18, 0.89, 0.45, 0.45, 0.32, 0.56}

func TestMean(t *testing.T) {
	got, err := Mean(sample)
	require.NoError(t, err)
	assert.InDelta(t, 0.4527, got, 0.0001)

	_, err = Mean(nil)
	assert.ErrorIs(t, err, ErrNoValues)
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"odd count", sample, 0.45},
		{"even count", []float64{1, 2, 3, 4}, 2.5},
		{"single value", []float64{7}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Median(tt.values)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}

	_, err := Median(nil)
	assert.ErrorIs(t, err, ErrNoValues)
}

func TestMedianDoesNotModifyInput(t *testing.T) {
	values := []float64{3, 1, 2}
	_, err := Median(values)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestMode(t *testing.T) {
	tests := []struct {
		name      string
		values    []float64
		wantModes []float64
		wantOK    bool
	}{
		{"two tied modes", sample, []float64{0.18, 0.45}, true},
		{"single mode", []float64{1, 2, 2, 3}, []float64{2}, true},
		{"all distinct has no mode", []float64{1, 2, 3}, nil, false},
		{"all tied has no mode", []float64{1, 1, 2, 2}, nil, false},
		{"single value is its own mode", []float64{5}, []float64{5}, true},
		{"empty", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			modes, ok := Mode(tt.values)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantModes, modes)
		})
	}
}
