package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/fleetmap-backend-go/internal/config"
	"github.com/jengzang/fleetmap-backend-go/internal/database"
	"github.com/jengzang/fleetmap-backend-go/internal/heatmap"
	"github.com/jengzang/fleetmap-backend-go/internal/jitter"
	"github.com/jengzang/fleetmap-backend-go/internal/logger"
	"github.com/jengzang/fleetmap-backend-go/internal/middleware"
	"github.com/jengzang/fleetmap-backend-go/internal/models"
	"github.com/jengzang/fleetmap-backend-go/internal/overlay"
)

const testSecret = "router-test-secret-0123"

func testConfig() *config.Config {
	return &config.Config{
		Env:             "test",
		Port:            ":0",
		DBPath:          ":memory:",
		JWTSecret:       testSecret,
		LogLevel:        "error",
		LogFormat:       "json",
		AttachDelay:     5 * time.Millisecond,
		WriteTimeout:    time.Second,
		Jitter:          jitter.DefaultConfig(),
		Layer:           heatmap.DefaultLayerStyle(),
		PathMaxDepth:    64,
		PathCacheSize:   8,
		RateLimit:       1000,
		RateLimitWindow: time.Minute,
	}
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	require.NoError(t, cfg.Validate())

	log := logger.Discard()
	db, err := database.Open(database.Config{Path: cfg.DBPath}, log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.NewMigrationManager(db, "", log).RunMigrations())

	h, err := NewHandlers(cfg, db, log)
	require.NoError(t, err)
	return SetupRouter(cfg, h, log)
}

func request(t *testing.T, r http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func seed(t *testing.T, r http.Handler) {
	t.Helper()
	token, err := middleware.IssueToken(testSecret, "loader", "writer", time.Hour)
	require.NoError(t, err)

	w := request(t, r, http.MethodPost, "/api/v1/fleet/records", []models.VehicleRecord{
		{City: "Austin", State: "TX", VehicleCount: 10, VehicleClass: "8"},
		{City: "Austin", State: "TX", VehicleCount: 5, VehicleClass: "6"},
		{City: "Nowhere", State: "ZZ", VehicleCount: 3},
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = request(t, r, http.MethodPost, "/api/v1/pipelines", []map[string]interface{}{
		{"id": "p1", "operator": "Kinder", "status": "active", "coordinates": "[[[-97.1,30.2],[-97.3,30.4]]]"},
		{"id": "p2", "operator": "Kinder", "status": "active", "coordinates": [][]float64{{-96, 32}, {-96.5, 32.5}}},
		{"id": "p3", "operator": "Other", "status": "active", "coordinates": "not json"},
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestHealth(t *testing.T) {
	r := setupRouter(t)
	w := request(t, r, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIngestRequiresAuth(t *testing.T) {
	r := setupRouter(t)

	w := request(t, r, http.MethodPost, "/api/v1/fleet/records", []models.VehicleRecord{{City: "Austin", State: "TX"}}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = request(t, r, http.MethodPost, "/api/v1/pipelines", []models.PipelineFeature{{ID: "p"}}, "bogus")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIngestValidation(t *testing.T) {
	r := setupRouter(t)
	token, err := middleware.IssueToken(testSecret, "loader", "writer", time.Hour)
	require.NoError(t, err)

	w := request(t, r, http.MethodPost, "/api/v1/fleet/records",
		[]models.VehicleRecord{{City: "Austin", State: "TX", VehicleCount: -2}}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = request(t, r, http.MethodPost, "/api/v1/fleet/records", map[string]string{"not": "a list"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFleetHeatmap(t *testing.T) {
	r := setupRouter(t)
	seed(t, r)

	w := request(t, r, http.MethodGet, "/api/v1/viz/fleet-heatmap", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		Layer   *models.PointLayer    `json:"layer"`
		Summary models.HeatmapSummary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	require.NotNil(t, data.Layer)
	assert.Equal(t, heatmap.LayerID, data.Layer.ID)
	assert.Len(t, data.Layer.Data, 8)
	assert.Equal(t, 15, data.Summary.TotalVehicles)
	assert.Equal(t, models.DropStats{Records: 1, Vehicles: 3}, data.Summary.Dropped)

	w = request(t, r, http.MethodGet, "/api/v1/viz/fleet-heatmap?fuelType=diesel", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"layer":null`)

	w = request(t, r, http.MethodGet, "/api/v1/viz/fleet-heatmap?level=county", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = request(t, r, http.MethodGet, "/api/v1/viz/fleet-heatmap?scale=cubic", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFleetBinsAndRecords(t *testing.T) {
	r := setupRouter(t)
	seed(t, r)

	w := request(t, r, http.MethodGet, "/api/v1/viz/fleet-bins?level=state", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var bins heatmap.Bins
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &bins))
	require.Len(t, bins.State, 1)
	assert.Equal(t, "TX", bins.State[0].State)

	w = request(t, r, http.MethodGet, "/api/v1/fleet/records?limit=2", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"count":2`)
}

func TestPipelines(t *testing.T) {
	r := setupRouter(t)
	seed(t, r)

	w := request(t, r, http.MethodGet, "/api/v1/viz/pipelines?operator=kinder", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		Layer  *models.PathLayer       `json:"layer"`
		Report models.ExtractionReport `json:"report"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	require.NotNil(t, data.Layer)
	assert.Len(t, data.Layer.Paths, 2)
	assert.Zero(t, data.Report.Failed)

	w = request(t, r, http.MethodGet, "/api/v1/viz/pipelines", nil, "")
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	assert.Equal(t, []string{"p3"}, data.Report.FailedIDs)

	w = request(t, r, http.MethodGet, "/api/v1/viz/pipelines/geojson", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"FeatureCollection"`)
	assert.Contains(t, w.Body.String(), `"length_km"`)

	w = request(t, r, http.MethodGet, "/api/v1/pipelines", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"count":3`)
}

func readFrame(t *testing.T, conn *websocket.Conn, want string) overlay.Frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var f overlay.Frame
		require.NoError(t, conn.ReadJSON(&f))
		if f.Type == want {
			return f
		}
	}
}

func TestOverlayWebsocket(t *testing.T) {
	r := setupRouter(t)
	seed(t, r)

	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws/overlay"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// initial bind after the attach delay
	f := readFrame(t, conn, overlay.FrameLayers)
	require.NotNil(t, f.Layers)
	require.NotNil(t, f.Layers.Points)
	require.NotNil(t, f.Layers.Paths)
	assert.NotEmpty(t, f.SurfaceID)

	off := false
	require.NoError(t, conn.WriteJSON(models.OverlayFilter{
		Fleet:         models.FleetFilter{FuelType: "diesel"},
		ShowPipelines: &off,
	}))
	f = readFrame(t, conn, overlay.FrameLayers)
	require.NotNil(t, f.Layers)
	assert.Nil(t, f.Layers.Points)
	assert.Nil(t, f.Layers.Paths)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{bad")))
	f = readFrame(t, conn, overlay.FrameError)
	assert.Equal(t, "invalid filter message", f.Message)
}
