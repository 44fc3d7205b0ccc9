package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"mime"
	"net/http"
	"time"

	"github.com/Realchup/smart-traffic-backend/pkg/geo"
	"github.com/Realchup/smart-traffic-backend/pkg/graph"
	"github.com/Realchup/smart-traffic-backend/pkg/routing"
	"github.com/Realchup/smart-traffic-backend/pkg/source"
)

// Deps are the collaborators the HTTP layer orchestrates around the route
// computation. Roads is required; a nil Traffic or Floods source means no
// data of that kind, a nil Fallback means unresolved routes stay
// unresolved, and a nil Requests log discards entries.
type Deps struct {
	Roads    source.RoadSource
	Traffic  source.TrafficSource
	Floods   source.FloodSource
	Fallback source.Fallbacker
	Requests source.RequestLog
	Metrics  *Metrics
}

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	deps Deps
}

// NewHandlers creates handlers with the given collaborators.
func NewHandlers(deps Deps) *Handlers {
	if deps.Traffic == nil {
		deps.Traffic = source.StaticTraffic(nil)
	}
	if deps.Floods == nil {
		deps.Floods = source.StaticFloods(nil)
	}
	if deps.Requests == nil {
		deps.Requests = source.NopRequestLog{}
	}
	return &Handlers{deps: deps}
}

// MetricsHandler exposes the Prometheus endpoint, or nil when metrics are
// not configured.
func (h *Handlers) MetricsHandler() http.Handler {
	if h.deps.Metrics == nil {
		return nil
	}
	return h.deps.Metrics.Handler()
}

// HandleRoute handles POST /api/v1/route.
func (h *Handlers) HandleRoute(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	// Enforce Content-Type.
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	// Parse request.
	var req RouteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	// Validate coordinates.
	if err := validateCoord(req.Start); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "start")
		return
	}
	if err := validateCoord(req.End); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "end")
		return
	}

	src := geo.Point{Lat: req.Start.Lat, Lng: req.Start.Lng}
	dst := geo.Point{Lat: req.End.Lat, Lng: req.End.Lng}
	ctx := r.Context()

	// Fetch input snapshots. Roads are mandatory; traffic and flood feeds
	// degrade to empty so a dead feed doesn't take routing down with it.
	roads, err := h.deps.Roads.Roads(ctx)
	if err != nil {
		log.Printf("road source: %v", err)
		writeError(w, http.StatusBadGateway, "road_source_unavailable", "")
		return
	}
	traffic, err := h.deps.Traffic.Traffic(ctx)
	if err != nil {
		log.Printf("traffic source degraded: %v", err)
		traffic = nil
	}
	floods, err := h.deps.Floods.Floods(ctx)
	if err != nil {
		log.Printf("flood source degraded: %v", err)
		floods = nil
	}

	result := routing.ComputeSafeRoute(roads, traffic, floods, src, dst)

	resp := RouteResponse{
		StartID:   result.StartID,
		EndID:     result.EndID,
		DistanceM: result.DistanceMeters,
		Method:    "graph",
	}

	if result.Resolved() {
		resp.Path = make([]PathPointJSON, len(result.Path))
		for i, p := range result.Path {
			resp.Path[i] = PathPointJSON{Lat: p.Lat, Lng: p.Lng, ID: p.ID}
		}
	} else {
		// No graph data or unreachable endpoints: substitute an externally
		// computed route when a fallback collaborator is configured.
		fb, fbErr := h.fallbackRoute(ctx, src, dst)
		if fbErr != nil {
			if !errors.Is(fbErr, source.ErrNoFallback) {
				log.Printf("fallback routing: %v", fbErr)
			}
			resp.Method = "unresolved"
			h.record(ctx, src, dst, result, resp.Method, 0, 0, started)
			writeError(w, http.StatusBadGateway, "route_unresolved", "")
			return
		}
		resp.Method = fb.Method
		resp.DistanceM = fb.DistanceM
		resp.Path = make([]PathPointJSON, len(fb.Path))
		for i, p := range fb.Path {
			resp.Path[i] = PathPointJSON{Lat: p.Lat, Lng: p.Lng}
		}
	}

	h.record(ctx, src, dst, result, resp.Method, resp.DistanceM, len(resp.Path), started)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *Handlers) fallbackRoute(ctx context.Context, src, dst geo.Point) (source.FallbackRoute, error) {
	if h.deps.Fallback == nil {
		return source.FallbackRoute{}, source.ErrNoFallback
	}
	fb, err := h.deps.Fallback.Route(ctx, src, dst)
	if err != nil {
		return source.FallbackRoute{}, err
	}
	if len(fb.Path) == 0 {
		return source.FallbackRoute{}, errors.New("fallback returned empty path")
	}
	return fb, nil
}

// record persists request metadata and updates metrics. Log failures are
// logged, never surfaced to the client.
func (h *Handlers) record(ctx context.Context, src, dst geo.Point, result routing.RouteResult, method string, distanceM float64, pathLen int, started time.Time) {
	entry := source.LogEntry{
		Time:      time.Now().UTC(),
		Src:       src,
		Dst:       dst,
		StartID:   result.StartID,
		EndID:     result.EndID,
		Method:    method,
		DistanceM: distanceM,
		PathLen:   pathLen,
	}
	if err := h.deps.Requests.Record(ctx, entry); err != nil {
		log.Printf("request log: %v", err)
	}

	if h.deps.Metrics != nil {
		h.deps.Metrics.Requests.WithLabelValues(method).Inc()
		h.deps.Metrics.Duration.Observe(time.Since(started).Seconds())
	}
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats. The graph is rebuilt from the
// current road snapshot so the numbers always describe what routing
// would see.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	roads, err := h.deps.Roads.Roads(r.Context())
	if err != nil {
		log.Printf("road source: %v", err)
		writeError(w, http.StatusBadGateway, "road_source_unavailable", "")
		return
	}

	g := graph.Build(roads)
	comps := routing.Components(g)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StatsResponse{
		NumNodes:         g.NumNodes(),
		NumEdges:         g.NumEdges(),
		NumComponents:    comps.Count,
		LargestComponent: comps.LargestSize,
	})
}

func validateCoord(ll LatLngJSON) error {
	if math.IsNaN(ll.Lat) || math.IsNaN(ll.Lng) || math.IsInf(ll.Lat, 0) || math.IsInf(ll.Lng, 0) {
		return errors.New("coordinates must be finite numbers")
	}
	if ll.Lat < -90 || ll.Lat > 90 || ll.Lng < -180 || ll.Lng > 180 {
		return errors.New("coordinates out of range")
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code, Field: field})
}
