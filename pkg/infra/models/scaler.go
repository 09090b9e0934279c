package models

import (
	"errors"
	"fmt"
)

type scalerJSON struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// StandardScaler applies (x - mean) / scale per feature.
type StandardScaler struct {
	mean  []float64
	scale []float64
}

func newStandardScaler(doc scalerJSON) (*StandardScaler, error) {
	if len(doc.Mean) != len(doc.Scale) {
		return nil, errors.New("mean and scale have different lengths")
	}
	scale := make([]float64, len(doc.Scale))
	for i, s := range doc.Scale {
		if s == 0 {
			s = 1
		}
		scale[i] = s
	}
	return &StandardScaler{mean: doc.Mean, scale: scale}, nil
}

func (s *StandardScaler) NumFeatures() int {
	return len(s.mean)
}

func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.mean) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrWidth, len(x), len(s.mean))
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (v - s.mean[i]) / s.scale[i]
	}
	return out, nil
}
