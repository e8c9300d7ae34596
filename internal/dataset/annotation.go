package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ToothID identifies the anatomical region a labeled object belongs to.
// On the wire it is either a JSON string or a JSON number; both forms
// normalize to the same string key.
type ToothID string

// UnmarshalJSON accepts a string or a number. Anything else is a parse error.
func (t *ToothID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = ToothID(s)

		return nil
	}

	var n json.Number

	numErr := json.Unmarshal(data, &n)
	if numErr != nil {
		return fmt.Errorf("tooth_id must be a string or number: %w", numErr)
	}

	*t = ToothID(n.String())

	return nil
}

func (t ToothID) String() string {
	return string(t)
}

// Object is one labeled region within an annotation record. Every field
// is optional on the wire; fields this tool does not aggregate (box
// geometry and the like) are ignored.
type Object struct {
	// ToothID is nil when the field is absent. Present-but-falsy values
	// (empty string, zero) still count toward the tooth-ID frequencies.
	ToothID *ToothID `json:"tooth_id"`

	// Conditions maps condition name to whether the condition applies.
	Conditions map[string]bool `json:"conditions"`

	// ImageStatus is a whole-image quality label.
	ImageStatus string `json:"image_status"`
}

// Annotation is one per-image annotation record: a single labeled object
// or an ordered sequence of them. The two wire shapes are kept distinct;
// Objects is the normalize-to-sequence operation.
type Annotation struct {
	objects []Object
	single  bool
}

// UnmarshalJSON accepts either a JSON object or a JSON array of objects.
func (a *Annotation) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		a.single = false
		a.objects = nil

		if err := json.Unmarshal(data, &a.objects); err != nil {
			return fmt.Errorf("annotation object list: %w", err)
		}

		return nil
	}

	var obj Object

	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("annotation object: %w", err)
	}

	a.single = true
	a.objects = []Object{obj}

	return nil
}

// Objects returns the record as an object sequence. A record that was a
// bare object on the wire becomes a length-1 sequence.
func (a Annotation) Objects() []Object {
	return a.objects
}

// Single reports whether the record was a bare object rather than a list.
func (a Annotation) Single() bool {
	return a.single
}
