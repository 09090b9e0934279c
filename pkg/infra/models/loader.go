package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/TroHub/ListingGuard/pkg/moderation/features"
	"github.com/TroHub/ListingGuard/pkg/moderation/predictor"
	"github.com/sirupsen/logrus"
)

const (
	ManifestFile     = "manifest.json"
	FeatureNamesFile = "feature_names.json"
	PriceModelFile   = "price_model.json"
	AnomalyModelFile = "anomaly_model.json"
	ScalerFile       = "scaler.json"

	modelSetArtifact = "model_set"
	unversioned      = "unversioned"
)

type Manifest struct {
	SchemaVersion string    `json:"schema_version"`
	Version       string    `json:"version,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	Features      int       `json:"features"`
}

type Loader interface {
	Load(ctx context.Context) (*predictor.ModelSet, error)
	Dir() string
}

type loader struct {
	logger    *logrus.Logger
	dir       string
	validator *schemaValidator
}

func NewLoader(logger *logrus.Logger, dir string) (Loader, error) {
	validator, err := newSchemaValidator()
	if err != nil {
		return nil, err
	}
	return &loader{logger: logger, dir: dir, validator: validator}, nil
}

func (l *loader) Dir() string {
	return l.dir
}

// Load reads every artifact in the directory. Missing files are absent models, any other problem fails the whole set.
func (l *loader) Load(ctx context.Context) (*predictor.ModelSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set := &predictor.ModelSet{}

	var manifest Manifest
	hasManifest, err := l.read(ManifestFile, &manifest)
	if err != nil {
		return nil, err
	}
	if hasManifest {
		set.Version = manifest.Version
		if set.Version == "" {
			set.Version = manifest.SchemaVersion
		}
	}

	var names []string
	hasNames, err := l.read(FeatureNamesFile, &names)
	if err != nil {
		return nil, err
	}
	if hasNames {
		version := unversioned
		if hasManifest {
			version = manifest.SchemaVersion
			if manifest.Features != len(names) {
				return nil, NewArtifactError(FeatureNamesFile,
					fmt.Errorf("%w: manifest declares %d features, found %d", features.ErrSchemaMismatch, manifest.Features, len(names)))
			}
		}
		schema, err := features.NewSchema(version, names)
		if err != nil {
			return nil, NewArtifactError(FeatureNamesFile, err)
		}
		set.Schema = schema
	}

	var priceDoc treeEnsembleJSON
	if ok, err := l.read(PriceModelFile, &priceDoc); err != nil {
		return nil, err
	} else if ok {
		regressor, err := newTreeEnsemble(priceDoc)
		if err != nil {
			return nil, NewArtifactError(PriceModelFile, err)
		}
		set.Regressor = regressor
	}

	var forestDoc isolationForestJSON
	if ok, err := l.read(AnomalyModelFile, &forestDoc); err != nil {
		return nil, err
	} else if ok {
		detector, err := newIsolationForest(forestDoc)
		if err != nil {
			return nil, NewArtifactError(AnomalyModelFile, err)
		}
		set.Detector = detector
	}

	var scalerDoc scalerJSON
	if ok, err := l.read(ScalerFile, &scalerDoc); err != nil {
		return nil, err
	} else if ok {
		scaler, err := newStandardScaler(scalerDoc)
		if err != nil {
			return nil, NewArtifactError(ScalerFile, err)
		}
		set.Scaler = scaler
	}

	if err := set.Validate(); err != nil {
		return nil, NewArtifactError(modelSetArtifact, err)
	}

	l.logger.WithFields(logrus.Fields{
		"dir":           l.dir,
		"version":       set.Version,
		"price_model":   set.Regressor != nil,
		"anomaly_model": set.Detector != nil,
		"scaler":        set.Scaler != nil,
		"schema":        set.Schema != nil,
	}).Info("model artifacts loaded")

	return set, nil
}

// read validates and decodes one artifact. It reports false without error when the file does not exist.
func (l *loader) read(name string, out any) (bool, error) {
	data, err := os.ReadFile(filepath.Join(l.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		l.logger.WithField("artifact", name).Debug("artifact not found, treating as absent")
		return false, nil
	}
	if err != nil {
		return false, NewArtifactError(name, err)
	}
	if err := l.validator.validate(name, data); err != nil {
		return false, NewArtifactError(name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, NewArtifactError(name, err)
	}
	return true, nil
}
