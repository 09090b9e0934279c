package predictor

import (
	"fmt"

	"github.com/TroHub/ListingGuard/pkg/moderation/features"
)

// Regressor predicts the expected monthly price from a feature vector.
type Regressor interface {
	Predict(x []float64) (float64, error)
	NumFeatures() int
}

// OutlierDetector labels a feature vector -1 for an anomaly and 1 for normal.
type OutlierDetector interface {
	Predict(x []float64) (int, error)
	NumFeatures() int
}

type Scaler interface {
	Transform(x []float64) ([]float64, error)
	NumFeatures() int
}

// ModelSet is one versioned group of artifacts. Any member may be nil when the artifact is absent.
type ModelSet struct {
	Version   string
	Schema    *features.Schema
	Regressor Regressor
	Detector  OutlierDetector
	Scaler    Scaler
}

func (m *ModelSet) Empty() bool {
	return m == nil || (m.Regressor == nil && m.Detector == nil)
}

// Validate checks every model against the schema width so mismatches fail at load time.
func (m *ModelSet) Validate() error {
	if m == nil {
		return nil
	}
	extractor := features.NewExtractor(m.Schema)
	if m.Regressor != nil {
		if err := extractor.CheckWidth(m.Regressor.NumFeatures()); err != nil {
			return fmt.Errorf("price model: %w", err)
		}
	}
	if m.Detector != nil {
		if err := extractor.CheckWidth(m.Detector.NumFeatures()); err != nil {
			return fmt.Errorf("anomaly model: %w", err)
		}
	}
	if m.Scaler != nil {
		if err := extractor.CheckWidth(m.Scaler.NumFeatures()); err != nil {
			return fmt.Errorf("scaler: %w", err)
		}
	}
	return nil
}
