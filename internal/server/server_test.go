package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/indoornav/cache"
	"github.com/katalvlaran/indoornav/geom"
	"github.com/katalvlaran/indoornav/i18n"
	"github.com/katalvlaran/indoornav/internal/server"
	"github.com/katalvlaran/indoornav/route"
	"github.com/katalvlaran/indoornav/world"
)

type routeBody struct {
	ID        string          `json:"id"`
	Segments  []route.Segment `json:"segments"`
	Complete  bool            `json:"complete"`
	Unvisited []route.Stop    `json:"unvisited"`
	Fallbacks int             `json:"fallbacks"`
	Distance  float64         `json:"distance"`
	Error     string          `json:"error"`
	Cached    bool            `json:"cached"`
}

func newHandler(t *testing.T, opts ...server.Option) http.Handler {
	t.Helper()
	p, err := route.NewPlanner(world.Demo())
	require.NoError(t, err)
	return server.New(p, opts...).Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	rec := do(t, newHandler(t, server.WithCatalog(i18n.Default())), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 4, body["floors"])
	assert.EqualValues(t, 52, body["areas"])
	assert.EqualValues(t, 51, body["obstacles"])
	assert.EqualValues(t, 11, body["nodes"])
	assert.ElementsMatch(t, []any{"en", "hi", "kn"}, body["languages"])
}

func TestCreateRoute_Areas(t *testing.T) {
	h := newHandler(t)
	rec := do(t, h, http.MethodPost, "/v1/routes",
		`{"start":{"x":50,"y":92,"floor":1},"areas":["f1_produce","f2_frozen"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode[routeBody](t, rec)
	_, err := uuid.Parse(body.ID)
	require.NoError(t, err)
	assert.True(t, body.Complete)
	assert.False(t, body.Cached)
	require.Len(t, body.Segments, 3)
	assert.Equal(t, "Proceed to Fresh Produce", body.Segments[0].Instruction)
	assert.Equal(t, "Take the stairs to floor 2", body.Segments[1].Instruction)
	assert.Equal(t, "You have arrived at Frozen Foods", body.Segments[2].Instruction)
	assert.Greater(t, body.Distance, 0.0)
}

func TestCreateRoute_Stops(t *testing.T) {
	h := newHandler(t)
	rec := do(t, h, http.MethodPost, "/v1/routes",
		`{"start":{"x":50,"y":92,"floor":1},"stops":[{"point":{"x":20,"y":51,"floor":1},"name":"Veg"}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode[routeBody](t, rec)
	require.Len(t, body.Segments, 1)
	seg := body.Segments[0]
	assert.Equal(t, 1, seg.Floor)
	assert.Equal(t, geom.Pt(50, 92, 1), seg.Points[0])
	assert.Equal(t, geom.Pt(20, 51, 1), seg.Points[len(seg.Points)-1])
	assert.Equal(t, "You have arrived at Veg", seg.Instruction)
}

func TestCreateRoute_Language(t *testing.T) {
	h := newHandler(t, server.WithCatalog(i18n.Default()))
	en := decode[routeBody](t, do(t, h, http.MethodPost, "/v1/routes",
		`{"start":{"x":50,"y":92,"floor":1},"areas":["f1_produce"]}`))
	hi := decode[routeBody](t, do(t, h, http.MethodPost, "/v1/routes",
		`{"start":{"x":50,"y":92,"floor":1},"areas":["f1_produce"],"lang":"hi"}`))

	produce, _ := world.Demo().Area("f1_produce")
	assert.NotEqual(t, en.Segments[0].Instruction, hi.Segments[0].Instruction)
	assert.Contains(t, hi.Segments[0].Instruction, produce.Name["hi"])
}

func TestCreateRoute_Cached(t *testing.T) {
	mem := cache.NewMemory()
	h := newHandler(t, server.WithCache(mem, time.Minute))
	req := `{"start":{"x":50,"y":92,"floor":1},"areas":["f1_bakery"]}`

	first := decode[routeBody](t, do(t, h, http.MethodPost, "/v1/routes", req))
	second := decode[routeBody](t, do(t, h, http.MethodPost, "/v1/routes", req))

	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Segments, second.Segments)
	assert.Equal(t, 1, mem.Len())
}

func TestCreateRoute_BadRequests(t *testing.T) {
	h := newHandler(t, server.WithMaxStops(2))
	cases := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"unknown field", `{"start":{"x":1,"y":1,"floor":1},"bogus":1}`},
		{"start outside plane", `{"start":{"x":150,"y":1,"floor":1}}`},
		{"unknown area", `{"start":{"x":1,"y":1,"floor":1},"areas":["nope"]}`},
		{"too many stops", `{"start":{"x":1,"y":1,"floor":1},"areas":["f1_produce","f1_bakery","f1_dairy"]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/v1/routes", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decode[map[string]string](t, rec)["error"])
		})
	}
}

func TestCreateRoute_Partial(t *testing.T) {
	nodes := []world.NavigationNode{
		{ID: "up", Type: world.Lift, Floor: 1, X: 90, Y: 90, Links: []world.Link{{Floor: 2, ID: "ghost"}}},
	}
	w, err := world.New(nil, nodes)
	require.NoError(t, err)
	p, err := route.NewPlanner(w)
	require.NoError(t, err)
	h := server.New(p).Handler()

	rec := do(t, h, http.MethodPost, "/v1/routes",
		`{"start":{"x":50,"y":50,"floor":1},"stops":[{"point":{"x":50,"y":50,"floor":2},"name":"Up"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[routeBody](t, rec)
	assert.False(t, body.Complete)
	assert.Contains(t, body.Error, "dangling")
	assert.Len(t, body.Segments, 1)
	assert.Len(t, body.Unvisited, 1)
}

func TestListFloors(t *testing.T) {
	rec := do(t, newHandler(t), http.MethodGet, "/v1/floors?lang=kn", "")
	require.Equal(t, http.StatusOK, rec.Code)

	floors := decode[[]struct {
		Floor int `json:"floor"`
		Areas []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"areas"`
		Nodes []world.NavigationNode `json:"nodes"`
	}](t, rec)

	require.Len(t, floors, 4)
	assert.Equal(t, 1, floors[0].Floor)
	assert.Len(t, floors[0].Nodes, 3)

	produce, _ := world.Demo().Area("f1_produce")
	found := false
	for _, a := range floors[0].Areas {
		if a.ID == "f1_produce" {
			found = true
			assert.Equal(t, produce.Name["kn"], a.Name)
		}
	}
	assert.True(t, found)
}

func TestFloorPath(t *testing.T) {
	h := newHandler(t)

	rec := do(t, h, http.MethodGet, "/v1/floors/path?from=1&to=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string][]int{"floors": {1, 3}}, decode[map[string][]int](t, rec))

	rec = do(t, h, http.MethodGet, "/v1/floors/path?from=1&to=9", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/floors/path?from=one&to=2", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/v1/routes", bytes.NewReader(nil))
	rec := httptest.NewRecorder()
	newHandler(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNotFound(t *testing.T) {
	rec := do(t, newHandler(t), http.MethodGet, "/v2/nothing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
