package models

import (
	"errors"
	"fmt"
)

type ArtifactError struct {
	Artifact string
	Err      error
}

func (e *ArtifactError) Error() string {
	return fmt.Sprintf("artifact %s: %v", e.Artifact, e.Err)
}

func (e *ArtifactError) Unwrap() error {
	return e.Err
}

func NewArtifactError(artifact string, err error) error {
	return &ArtifactError{Artifact: artifact, Err: err}
}

func IsArtifactError(err error) bool {
	var target *ArtifactError
	return errors.As(err, &target)
}

var ErrWidth = errors.New("input width does not match the model")
