package gazetteer

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML gazetteer table and validates it
func LoadFile(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("read gazetteer %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML gazetteer table
func Parse(data []byte) (Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tables{}, fmt.Errorf("parse gazetteer: %w", err)
	}
	if err := validator.New().Struct(t); err != nil {
		return Tables{}, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	return t, nil
}

// Merge overlays override onto base. Rows of override replace base rows with
// the same state code or (city, state) pair; new rows are appended.
func Merge(base, override Tables) Tables {
	out := Tables{
		States: append([]StateEntry(nil), base.States...),
		Cities: append([]CityEntry(nil), base.Cities...),
	}

	stateIdx := make(map[string]int, len(out.States))
	for i, s := range out.States {
		stateIdx[normalize(s.Code)] = i
	}
	for _, s := range override.States {
		if i, ok := stateIdx[normalize(s.Code)]; ok {
			out.States[i] = s
			continue
		}
		stateIdx[normalize(s.Code)] = len(out.States)
		out.States = append(out.States, s)
	}

	cityIdx := make(map[string]int, len(out.Cities))
	for i, c := range out.Cities {
		cityIdx[normalize(c.City)+","+normalize(c.State)] = i
	}
	for _, c := range override.Cities {
		key := normalize(c.City) + "," + normalize(c.State)
		if i, ok := cityIdx[key]; ok {
			out.Cities[i] = c
			continue
		}
		cityIdx[key] = len(out.Cities)
		out.Cities = append(out.Cities, c)
	}

	return out
}

// Load builds the default gazetteer, overlaid with the YAML file at path when
// path is not empty.
func Load(path string) (*Gazetteer, error) {
	tables := DefaultTables()
	if path != "" {
		override, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		tables = Merge(tables, override)
	}
	return New(tables)
}
