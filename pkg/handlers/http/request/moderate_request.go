package request

import (
	"bytes"
	"encoding/json"
	"errors"
)

var (
	ErrMissingProperty   = errors.New("missing property data in request body")
	ErrMissingProperties = errors.New("missing properties array in request body")
	ErrPropertiesNotList = errors.New("properties must be an array")
)

type ModerateRequest struct {
	Property json.RawMessage `json:"property" swaggertype:"object"`
}

func (r *ModerateRequest) Validate() error {
	if isAbsent(r.Property) {
		return ErrMissingProperty
	}
	return nil
}

type BatchModerateRequest struct {
	Properties json.RawMessage `json:"properties" swaggertype:"array,object"`
}

// Items splits the properties array without decoding the listings, so one bad entry does not fail the batch.
func (r *BatchModerateRequest) Items() ([]json.RawMessage, error) {
	if isAbsent(r.Properties) {
		return nil, ErrMissingProperties
	}
	if bytes.TrimSpace(r.Properties)[0] != '[' {
		return nil, ErrPropertiesNotList
	}
	var items []json.RawMessage
	if err := json.Unmarshal(r.Properties, &items); err != nil {
		return nil, ErrPropertiesNotList
	}
	return items, nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
