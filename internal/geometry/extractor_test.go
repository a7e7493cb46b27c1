package geometry

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/fleetmap-backend-go/internal/models"
)

func TestExtract(t *testing.T) {
	want := []models.Path{{{Lat: 2, Lng: 1}, {Lat: 4, Lng: 3}}}

	tests := []struct {
		name   string
		coords any
		want   []models.Path
	}{
		{"single path", []any{[]any{1.0, 2.0}, []any{3.0, 4.0}}, want},
		{"nested once", []any{[]any{[]any{1.0, 2.0}, []any{3.0, 4.0}}}, want},
		{"typed slices", [][]float64{{1, 2}, {3, 4}}, want},
		{"typed arrays", [][][2]float64{{{1, 2}, {3, 4}}}, want},
		{"json string", "[[1,2],[3,4]]", want},
		{"raw bytes", []byte("[[[1,2],[3,4]]]"), want},
		{"raw message", json.RawMessage(`[[1,2],[3,4]]`), want},
		{"double encoded", models.RawCoordinates(`"[[1,2],[3,4]]"`), want},
		{"int values", [][]int{{1, 2}, {3, 4}}, want},
		{"altitude ignored", [][]float64{{1, 2, 100}, {3, 4, 120}}, want},
		{
			"multiple paths in order",
			"[[[1,2],[3,4]],[[5,6],[7,8]]]",
			[]models.Path{
				{{Lat: 2, Lng: 1}, {Lat: 4, Lng: 3}},
				{{Lat: 6, Lng: 5}, {Lat: 8, Lng: 7}},
			},
		},
		{
			"mixed depth",
			"[[[[1,2],[3,4]]],[[5,6]]]",
			[]models.Path{
				{{Lat: 2, Lng: 1}, {Lat: 4, Lng: 3}},
				{{Lat: 6, Lng: 5}},
			},
		},
		{
			"non-numeric points skipped",
			`[[1,2],["a","b"],[3],[3,4]]`,
			want,
		},
		{"bad first point skipped", `[[1,"x"],[3,4]]`, []models.Path{{{Lat: 4, Lng: 3}}}},
		{"null latitude first", `[[1,null],[3,4],[5,6]]`, []models.Path{{{Lat: 4, Lng: 3}, {Lat: 6, Lng: 5}}}},
		{"bad last point skipped", `[[3,4],[1,"x"]]`, []models.Path{{{Lat: 4, Lng: 3}}}},
		{"empty array", "[]", []models.Path{}},
		{"bare pair", "[1,2]", []models.Path{}},
		{"object", `{"type":"LineString"}`, []models.Path{}},
		{"nil", nil, []models.Path{}},
		{"empty bytes", models.RawCoordinates(nil), []models.Path{}},
		{"unsupported type", 42, []models.Path{}},
		{"all points invalid", `[["x","y"]]`, []models.Path{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.coords)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_StringScenario(t *testing.T) {
	paths, err := Extract("[[[-97.1,30.2],[-97.3,30.4]]]")
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, models.Path{{Lat: 30.2, Lng: -97.1}, {Lat: 30.4, Lng: -97.3}}, paths[0])
}

func TestExtract_Malformed(t *testing.T) {
	paths, err := Extract("not json")
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Empty(t, paths)

	assert.Equal(t, []models.Path{}, ExtractPaths("not json"))
}

func deepJSON(depth int) string {
	return strings.Repeat("[", depth) + "[1,2]" + strings.Repeat("]", depth)
}

func TestExtract_DepthLimit(t *testing.T) {
	e := NewExtractor(5, nil)

	paths, err := e.Extract(deepJSON(4))
	require.NoError(t, err)
	assert.Len(t, paths, 1)

	paths, err = e.Extract(deepJSON(10))
	assert.ErrorIs(t, err, ErrNestingTooDeep)
	assert.Empty(t, paths)

	assert.Empty(t, e.ExtractPaths(deepJSON(10)))
}

func TestExtract_DefaultDepthHandlesDeepInput(t *testing.T) {
	paths, err := Extract(deepJSON(DefaultMaxDepth - 2))
	require.NoError(t, err)
	assert.Len(t, paths, 1)

	_, err = Extract(deepJSON(DefaultMaxDepth * 4))
	assert.ErrorIs(t, err, ErrNestingTooDeep)
}

func TestNewExtractor_DefaultDepth(t *testing.T) {
	assert.Equal(t, DefaultMaxDepth, NewExtractor(0, nil).MaxDepth())
	assert.Equal(t, 10, NewExtractor(10, nil).MaxDepth())
}
