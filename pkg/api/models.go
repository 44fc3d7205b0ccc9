package api

// RouteRequest is the JSON body for POST /api/v1/route.
type RouteRequest struct {
	Start LatLngJSON `json:"start"`
	End   LatLngJSON `json:"end"`
}

// LatLngJSON represents a lat/lng pair in JSON.
type LatLngJSON struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PathPointJSON is one point of a resolved path. ID is empty for points
// that came from the fallback service rather than the road graph.
type PathPointJSON struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
	ID  string  `json:"id,omitempty"`
}

// RouteResponse is the JSON response for a resolved route. Method is
// "graph" when the route came out of the safe-route computation and
// "fallback" when an external routing service supplied it.
type RouteResponse struct {
	StartID   string          `json:"start_id,omitempty"`
	EndID     string          `json:"end_id,omitempty"`
	DistanceM float64         `json:"distance_m"`
	Path      []PathPointJSON `json:"path"`
	Method    string          `json:"method"`
}

// ErrorResponse is the JSON response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// StatsResponse is the JSON response for GET /api/v1/stats.
type StatsResponse struct {
	NumNodes         int `json:"num_nodes"`
	NumEdges         int `json:"num_edges"`
	NumComponents    int `json:"num_components"`
	LargestComponent int `json:"largest_component"`
}

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}
