package models

import (
	"bytes"
	"encoding/json"
)

// Path is an ordered polyline
type Path []Coordinate

// RawCoordinates holds pipeline geometry exactly as it arrived. Upstream
// endpoints send either a JSON-encoded string or an already-structured nested
// array; both are kept verbatim and decoded lazily by the geometry extractor.
type RawCoordinates []byte

// UnmarshalJSON stores the raw token without interpreting it.
func (r *RawCoordinates) UnmarshalJSON(data []byte) error {
	*r = append((*r)[:0], data...)
	return nil
}

// MarshalJSON re-emits the stored token, or null when empty. Bytes that are
// not valid JSON (e.g. loaded from storage) are emitted as a JSON string.
func (r RawCoordinates) MarshalJSON() ([]byte, error) {
	if len(bytes.TrimSpace(r)) == 0 {
		return []byte("null"), nil
	}
	if !json.Valid(r) {
		return json.Marshal(string(r))
	}
	return r, nil
}

// IsString reports whether the geometry was delivered as a JSON string
func (r RawCoordinates) IsString() bool {
	trimmed := bytes.TrimSpace(r)
	return len(trimmed) > 0 && trimmed[0] == '"'
}

// PipelineFeature is one pipeline / network element.
type PipelineFeature struct {
	ID          string         `json:"id" db:"id" validate:"required"`
	Operator    string         `json:"operator" db:"operator"`
	Status      string         `json:"status" db:"status"`
	Coordinates RawCoordinates `json:"coordinates" db:"coordinates"`
	Paths       []Path         `json:"paths,omitempty"`
}

// PathStyle is the stroke applied to a drawn path
type PathStyle struct {
	StrokeColor   string  `json:"strokeColor"`
	StrokeWeight  float64 `json:"strokeWeight"`
	StrokeOpacity float64 `json:"strokeOpacity"`
}

// PathDescriptor is one drawable polyline
type PathDescriptor struct {
	FeatureID string       `json:"featureId,omitempty"`
	Points    []Coordinate `json:"points"`
	Style     PathStyle    `json:"style"`
}

// PathLayer describes the polyline layer for the map client
type PathLayer struct {
	Paths []PathDescriptor `json:"paths"`
}

// ExtractionReport summarizes a batch geometry extraction
type ExtractionReport struct {
	Features  int      `json:"features"`
	Paths     int      `json:"paths"`
	Failed    int      `json:"failed"`
	FailedIDs []string `json:"failedIds,omitempty"`
}

var (
	_ json.Marshaler   = RawCoordinates(nil)
	_ json.Unmarshaler = (*RawCoordinates)(nil)
)
