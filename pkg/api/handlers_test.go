package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Realchup/smart-traffic-backend/pkg/geo"
	"github.com/Realchup/smart-traffic-backend/pkg/graph"
	"github.com/Realchup/smart-traffic-backend/pkg/source"
)

func lineRoads() source.StaticRoads {
	return source.StaticRoads{
		{ID: "a", Lat: 1.300, Lng: 103.800, Neighbors: []graph.NeighborRef{{ID: "b"}}},
		{ID: "b", Lat: 1.300, Lng: 103.801, Neighbors: []graph.NeighborRef{{ID: "a"}, {ID: "c"}}},
		{ID: "c", Lat: 1.300, Lng: 103.802, Neighbors: []graph.NeighborRef{{ID: "b"}}},
	}
}

// errRoads always fails, standing in for a dead upstream.
type errRoads struct{}

func (errRoads) Roads(context.Context) ([]graph.RoadNode, error) {
	return nil, errors.New("upstream down")
}

// fallbackMock implements source.Fallbacker.
type fallbackMock struct {
	route  source.FallbackRoute
	err    error
	called bool
}

func (m *fallbackMock) Route(context.Context, geo.Point, geo.Point) (source.FallbackRoute, error) {
	m.called = true
	return m.route, m.err
}

// captureLog stores entries for inspection.
type captureLog struct {
	entries []source.LogEntry
}

func (l *captureLog) Record(_ context.Context, e source.LogEntry) error {
	l.entries = append(l.entries, e)
	return nil
}

func postRoute(t *testing.T, h *Handlers, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/v1/route", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.HandleRoute(w, req)
	return w
}

const lineRouteBody = `{"start":{"lat":1.3001,"lng":103.800},"end":{"lat":1.3001,"lng":103.802}}`

func TestHandleRoute_Success(t *testing.T) {
	logged := &captureLog{}
	h := NewHandlers(Deps{
		Roads:    lineRoads(),
		Requests: logged,
		Metrics:  NewMetrics(prometheus.NewRegistry()),
	})

	w := postRoute(t, h, lineRouteBody)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200. body: %s", w.Code, w.Body.String())
	}

	var resp RouteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Method != "graph" {
		t.Errorf("method = %q, want graph", resp.Method)
	}
	if resp.StartID != "a" || resp.EndID != "c" {
		t.Errorf("ids = %q, %q, want a, c", resp.StartID, resp.EndID)
	}
	if len(resp.Path) != 3 {
		t.Errorf("path length = %d, want 3", len(resp.Path))
	}
	if resp.DistanceM <= 0 {
		t.Errorf("distance = %f, want > 0", resp.DistanceM)
	}

	if len(logged.entries) != 1 {
		t.Fatalf("request log has %d entries, want 1", len(logged.entries))
	}
	if logged.entries[0].Method != "graph" || logged.entries[0].PathLen != 3 {
		t.Errorf("log entry = %+v", logged.entries[0])
	}
}

func TestHandleRoute_InvalidJSON(t *testing.T) {
	h := NewHandlers(Deps{Roads: lineRoads()})

	w := postRoute(t, h, "not json")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleRoute_MissingContentType(t *testing.T) {
	h := NewHandlers(Deps{Roads: lineRoads()})

	req := httptest.NewRequest("POST", "/api/v1/route", strings.NewReader(lineRouteBody))
	w := httptest.NewRecorder()
	h.HandleRoute(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleRoute_OutOfBounds(t *testing.T) {
	h := NewHandlers(Deps{Roads: lineRoads()})

	// Latitude out of valid range (-90 to 90).
	w := postRoute(t, h, `{"start":{"lat":91.0,"lng":103.8},"end":{"lat":1.3,"lng":103.8}}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}

	var resp ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Field != "start" {
		t.Errorf("field = %q, want start", resp.Field)
	}
}

func TestHandleRoute_RoadSourceDown(t *testing.T) {
	h := NewHandlers(Deps{Roads: errRoads{}})

	w := postRoute(t, h, lineRouteBody)
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
}

func TestHandleRoute_EmptyGraphNoFallback(t *testing.T) {
	logged := &captureLog{}
	h := NewHandlers(Deps{Roads: source.StaticRoads{}, Requests: logged})

	w := postRoute(t, h, lineRouteBody)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502. body: %s", w.Code, w.Body.String())
	}

	var resp ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error != "route_unresolved" {
		t.Errorf("error = %q, want route_unresolved", resp.Error)
	}
	if len(logged.entries) != 1 || logged.entries[0].Method != "unresolved" {
		t.Errorf("log entries = %+v", logged.entries)
	}
}

func TestHandleRoute_EmptyGraphWithFallback(t *testing.T) {
	fb := &fallbackMock{route: source.FallbackRoute{
		Path:      []geo.Point{{Lat: 1.3, Lng: 103.8}, {Lat: 1.3, Lng: 103.802}},
		DistanceM: 2200,
		Method:    "fallback",
	}}
	h := NewHandlers(Deps{Roads: source.StaticRoads{}, Fallback: fb})

	w := postRoute(t, h, lineRouteBody)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200. body: %s", w.Code, w.Body.String())
	}
	if !fb.called {
		t.Error("fallback not invoked for empty graph")
	}

	var resp RouteResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Method != "fallback" {
		t.Errorf("method = %q, want fallback", resp.Method)
	}
	if resp.DistanceM != 2200 || len(resp.Path) != 2 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestHandleRoute_UnreachableUsesFallback(t *testing.T) {
	// Two disconnected islands.
	roads := source.StaticRoads{
		{ID: "a", Lat: 1.300, Lng: 103.800, Neighbors: []graph.NeighborRef{{ID: "b"}}},
		{ID: "b", Lat: 1.300, Lng: 103.801, Neighbors: []graph.NeighborRef{{ID: "a"}}},
		{ID: "x", Lat: 1.400, Lng: 103.900, Neighbors: []graph.NeighborRef{{ID: "y"}}},
		{ID: "y", Lat: 1.400, Lng: 103.901, Neighbors: []graph.NeighborRef{{ID: "x"}}},
	}
	fb := &fallbackMock{route: source.FallbackRoute{
		Path:      []geo.Point{{Lat: 1.3, Lng: 103.8}, {Lat: 1.4, Lng: 103.901}},
		DistanceM: 16000,
		Method:    "fallback",
	}}
	h := NewHandlers(Deps{Roads: roads, Fallback: fb})

	w := postRoute(t, h, `{"start":{"lat":1.300,"lng":103.800},"end":{"lat":1.400,"lng":103.901}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200. body: %s", w.Code, w.Body.String())
	}

	var resp RouteResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Method != "fallback" {
		t.Errorf("method = %q, want fallback", resp.Method)
	}
	// Snapped ids are still reported even though the graph had no path.
	if resp.StartID != "a" || resp.EndID != "y" {
		t.Errorf("ids = %q, %q, want a, y", resp.StartID, resp.EndID)
	}
}

func TestHandleRoute_FallbackFails(t *testing.T) {
	fb := &fallbackMock{err: errors.New("routing service down")}
	h := NewHandlers(Deps{Roads: source.StaticRoads{}, Fallback: fb})

	w := postRoute(t, h, lineRouteBody)
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	h := NewHandlers(Deps{Roads: lineRoads()})

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	h.HandleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp HealthResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
}

func TestHandleStats(t *testing.T) {
	h := NewHandlers(Deps{Roads: lineRoads()})

	req := httptest.NewRequest("GET", "/api/v1/stats", nil)
	w := httptest.NewRecorder()
	h.HandleStats(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp StatsResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.NumNodes != 3 || resp.NumEdges != 4 {
		t.Errorf("stats = %+v, want 3 nodes, 4 edges", resp)
	}
	if resp.NumComponents != 1 || resp.LargestComponent != 3 {
		t.Errorf("stats = %+v, want 1 component of size 3", resp)
	}
}
