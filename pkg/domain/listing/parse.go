package listing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

type MalformedError struct {
	Reason string
	Err    error
}

func (e *MalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed listing: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed listing: %s", e.Reason)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

func NewMalformedError(reason string, err error) error {
	return &MalformedError{Reason: reason, Err: err}
}

func IsMalformed(err error) bool {
	if err == nil {
		return false
	}
	var malformed *MalformedError
	return errors.As(err, &malformed)
}

// Parse decodes a single listing. Anything that is not a JSON object is rejected.
func Parse(raw []byte) (*Listing, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, NewMalformedError("listing must be a JSON object", nil)
	}
	var l Listing
	if err := json.Unmarshal(trimmed, &l); err != nil {
		return nil, NewMalformedError("invalid listing payload", err)
	}
	return &l, nil
}

// Images keeps every entry of the submitted image list. Entries that are not strings decode to "".
type Images []string

func (im *Images) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*im = nil
		return nil
	}
	out := make(Images, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err != nil {
			s = ""
		}
		out = append(out, s)
	}
	*im = out
	return nil
}
