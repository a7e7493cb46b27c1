package geometry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jengzang/fleetmap-backend-go/internal/models"
)

func TestPathCache_HitsOnIdenticalBatch(t *testing.T) {
	c := NewPathCache(NewExtractor(0, nil), 4)

	first, r1 := c.ExtractFeatures(testFeatures())
	second, r2 := c.ExtractFeatures(testFeatures())

	assert.Equal(t, first, second)
	assert.Equal(t, r1, r2)
	hits, misses := c.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestPathCache_ChangedGeometryMisses(t *testing.T) {
	c := NewPathCache(NewExtractor(0, nil), 4)
	batch := testFeatures()
	c.ExtractFeatures(batch)

	batch[0].Coordinates = models.RawCoordinates(`[[0,0],[1,1]]`)
	out, _ := c.ExtractFeatures(batch)

	assert.Equal(t, models.Path{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}}, out[0].Paths[0])
	_, misses := c.Stats()
	assert.Equal(t, uint64(2), misses)
}

func TestPathCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewPathCache(NewExtractor(0, nil), 2)
	a := []models.PipelineFeature{{ID: "a"}}
	b := []models.PipelineFeature{{ID: "b"}}
	d := []models.PipelineFeature{{ID: "d"}}

	c.ExtractFeatures(a)
	c.ExtractFeatures(b)
	c.ExtractFeatures(a) // a is now most recent
	c.ExtractFeatures(d) // evicts b
	assert.Equal(t, 2, c.Len())

	c.ExtractFeatures(a)
	hits, _ := c.Stats()
	assert.Equal(t, uint64(2), hits)

	c.ExtractFeatures(b)
	_, misses := c.Stats()
	assert.Equal(t, uint64(4), misses)

	c.Purge()
	assert.Zero(t, c.Len())
}

func TestPathCache_Concurrent(t *testing.T) {
	c := NewPathCache(NewExtractor(0, nil), 2)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, report := c.ExtractFeatures(testFeatures())
			assert.Equal(t, 3, report.Paths)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, c.Len())
}

func TestFingerprint(t *testing.T) {
	a := []models.PipelineFeature{{ID: "ab", Coordinates: models.RawCoordinates("c")}}
	b := []models.PipelineFeature{{ID: "a", Coordinates: models.RawCoordinates("bc")}}
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
	assert.Equal(t, Fingerprint(a), Fingerprint(a))
}
