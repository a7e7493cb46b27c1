// Package geometry flattens nested pipeline coordinate arrays into drawable
// paths.
//
// Coordinates arrive as [lng, lat] pairs nested to arbitrary depth, either
// already structured or as a JSON-encoded string. At every level the first
// element decides how the array is read: a numeric pair means the array is a
// single path, an array means each child is descended in order, anything else
// yields nothing.
package geometry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/sirupsen/logrus"

	"github.com/jengzang/fleetmap-backend-go/internal/models"
)

// DefaultMaxDepth bounds array nesting
const DefaultMaxDepth = 64

var (
	// ErrNestingTooDeep is returned when nesting exceeds the extractor's max depth
	ErrNestingTooDeep = errors.New("geometry: nesting too deep")
	// ErrMalformed is returned for string or byte input that is not valid JSON
	ErrMalformed = errors.New("geometry: malformed coordinates")
)

var defaultExtractor = NewExtractor(DefaultMaxDepth, nil)

// Extract flattens coords using DefaultMaxDepth
func Extract(coords any) ([]models.Path, error) {
	return defaultExtractor.Extract(coords)
}

// ExtractPaths is Extract without the error; failures produce an empty slice
func ExtractPaths(coords any) []models.Path {
	return defaultExtractor.ExtractPaths(coords)
}

// Extractor turns raw coordinate values into paths
type Extractor struct {
	maxDepth int
	log      logrus.FieldLogger
}

// NewExtractor creates an extractor. maxDepth <= 0 means DefaultMaxDepth.
// log may be nil.
func NewExtractor(maxDepth int, log logrus.FieldLogger) *Extractor {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Extractor{maxDepth: maxDepth, log: log}
}

// MaxDepth returns the nesting limit
func (e *Extractor) MaxDepth() int {
	return e.maxDepth
}

// ExtractPaths never fails; an error from Extract becomes an empty result
func (e *Extractor) ExtractPaths(coords any) []models.Path {
	paths, err := e.Extract(coords)
	if err != nil {
		return []models.Path{}
	}
	return paths
}

// Extract accepts a JSON string, []byte, json.RawMessage, RawCoordinates or
// any nesting of Go slices and arrays. The returned slice is never nil.
func (e *Extractor) Extract(coords any) ([]models.Path, error) {
	root, err := decode(coords)
	if err != nil {
		return []models.Path{}, err
	}
	return e.walk(root)
}

type frame struct {
	v     reflect.Value
	depth int
}

func (e *Extractor) walk(root any) ([]models.Path, error) {
	paths := []models.Path{}
	if root == nil {
		return paths, nil
	}

	stack := []frame{{v: reflect.ValueOf(root), depth: 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.depth > e.maxDepth {
			return []models.Path{}, fmt.Errorf("%w: exceeds %d levels", ErrNestingTooDeep, e.maxDepth)
		}

		v := unwrap(f.v)
		if !isList(v) || v.Len() == 0 {
			continue
		}

		first := unwrap(v.Index(0))
		if isPairLike(first) {
			if p := collectPath(v); len(p) > 0 {
				paths = append(paths, p)
			}
			continue
		}
		if !isList(first) {
			continue
		}

		// push in reverse so children pop in source order
		for i := v.Len() - 1; i >= 0; i-- {
			stack = append(stack, frame{v: v.Index(i), depth: f.depth + 1})
		}
	}
	return paths, nil
}

func collectPath(v reflect.Value) models.Path {
	path := make(models.Path, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		if c, ok := pair(unwrap(v.Index(i))); ok {
			path = append(path, c)
		}
	}
	return path
}

// isPairLike classifies a list as a point by its first component alone, so a
// bad latitude on the first point does not demote the whole path to a
// nesting level.
func isPairLike(v reflect.Value) bool {
	if !isList(v) || v.Len() < 2 {
		return false
	}
	_, ok := number(unwrap(v.Index(0)))
	return ok
}

// pair reads a [lng, lat, ...] list. Extra elements (altitude) are ignored.
func pair(v reflect.Value) (models.Coordinate, bool) {
	if !isList(v) || v.Len() < 2 {
		return models.Coordinate{}, false
	}
	lng, ok := number(unwrap(v.Index(0)))
	if !ok {
		return models.Coordinate{}, false
	}
	lat, ok := number(unwrap(v.Index(1)))
	if !ok {
		return models.Coordinate{}, false
	}
	return models.Coordinate{Lat: lat, Lng: lng}, true
}

var jsonNumberType = reflect.TypeOf(json.Number(""))

func number(v reflect.Value) (float64, bool) {
	var f float64
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		f = v.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f = float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f = float64(v.Uint())
	case reflect.String:
		if v.Type() != jsonNumberType {
			return 0, false
		}
		n, err := json.Number(v.String()).Float64()
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func isList(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}
	switch v.Kind() {
	case reflect.Slice:
		// a []byte inside a structure is not a coordinate list
		return v.Type().Elem().Kind() != reflect.Uint8
	case reflect.Array:
		return true
	}
	return false
}

func unwrap(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// decode turns textual input into a Go value. A JSON document that is itself
// a string is decoded once more, which covers double-encoded storage.
func decode(coords any) (any, error) {
	switch c := coords.(type) {
	case nil:
		return nil, nil
	case string:
		return decodeText([]byte(c), true)
	case []byte:
		return decodeText(c, true)
	case json.RawMessage:
		return decodeText(c, true)
	case models.RawCoordinates:
		return decodeText(c, true)
	default:
		return coords, nil
	}
}

func decodeText(data []byte, allowNested bool) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if s, ok := v.(string); ok {
		if !allowNested {
			return nil, nil
		}
		return decodeText([]byte(s), false)
	}
	return v, nil
}
