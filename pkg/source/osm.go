package source

import (
	"context"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/pkg/errors"

	"github.com/Realchup/smart-traffic-backend/pkg/graph"
)

// OSMRoads serves road nodes extracted from an OSM PBF file. The extract
// is parsed once at load time; every call returns the same immutable
// snapshot.
type OSMRoads struct {
	roads []graph.RoadNode
}

func (s *OSMRoads) Roads(context.Context) ([]graph.RoadNode, error) {
	return s.roads, nil
}

// LoadOSMRoads parses a .osm.pbf extract into road records with neighbor
// id lists. Only car-accessible ways are kept; oneway tags restrict the
// neighbor direction.
func LoadOSMRoads(ctx context.Context, path string) (*OSMRoads, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open osm extract")
	}
	defer f.Close()

	roads, err := parseOSM(ctx, f)
	if err != nil {
		return nil, errors.Wrap(err, "parse osm extract")
	}
	return &OSMRoads{roads: roads}, nil
}

// drivableHighways lists highway tag values accessible by car.
var drivableHighways = map[string]bool{
	"motorway":       true,
	"motorway_link":  true,
	"trunk":          true,
	"trunk_link":     true,
	"primary":        true,
	"primary_link":   true,
	"secondary":      true,
	"secondary_link": true,
	"tertiary":       true,
	"tertiary_link":  true,
	"unclassified":   true,
	"residential":    true,
	"living_street":  true,
	"service":        true,
}

// wayDirections returns whether the way is drivable and in which
// directions, based on highway, access, and oneway tags.
func wayDirections(tags osm.Tags) (forward, backward bool) {
	hw := tags.Find("highway")
	if !drivableHighways[hw] || tags.Find("area") == "yes" {
		return false, false
	}
	if access := tags.Find("access"); access == "no" || access == "private" {
		return false, false
	}
	if tags.Find("motor_vehicle") == "no" {
		return false, false
	}

	forward = true
	backward = true
	if hw == "motorway" || hw == "motorway_link" || tags.Find("junction") == "roundabout" {
		backward = false
	}
	switch tags.Find("oneway") {
	case "yes", "true", "1":
		forward, backward = true, false
	case "-1", "reverse":
		forward, backward = false, true
	case "no":
		forward, backward = true, true
	case "reversible":
		// Time-dependent; skip entirely.
		forward, backward = false, false
	}
	return forward, backward
}

// parseOSM scans the extract twice: ways first to collect the neighbor
// relation, then nodes for coordinates of referenced nodes only. The
// reader must support seeking back for the second pass.
func parseOSM(ctx context.Context, rs io.ReadSeeker) ([]graph.RoadNode, error) {
	neighbors := make(map[osm.NodeID][]osm.NodeID)

	link := func(from, to osm.NodeID) {
		neighbors[from] = append(neighbors[from], to)
	}

	scanner := osmpbf.New(ctx, rs, 1)
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		w, ok := scanner.Object().(*osm.Way)
		if !ok || len(w.Nodes) < 2 {
			continue
		}
		fwd, bwd := wayDirections(w.Tags)
		if !fwd && !bwd {
			continue
		}

		for i := 0; i < len(w.Nodes)-1; i++ {
			a := w.Nodes[i].ID
			b := w.Nodes[i+1].ID
			if fwd {
				link(a, b)
			}
			if bwd {
				link(b, a)
			}
			// Mark both endpoints referenced so one-way targets still get
			// coordinates in the node pass.
			if _, ok := neighbors[a]; !ok {
				neighbors[a] = nil
			}
			if _, ok := neighbors[b]; !ok {
				neighbors[b] = nil
			}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, errors.Wrap(err, "scan ways")
	}
	scanner.Close()

	log.Printf("osm: %d road nodes referenced by drivable ways", len(neighbors))

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "seek for node pass")
	}

	scanner = osmpbf.New(ctx, rs, 1)
	scanner.SkipWays = true
	scanner.SkipRelations = true

	var roads []graph.RoadNode
	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		refs, referenced := neighbors[n.ID]
		if !referenced {
			continue
		}

		node := graph.RoadNode{
			ID:        osmID(n.ID),
			Lat:       n.Lat,
			Lng:       n.Lon,
			Neighbors: make([]graph.NeighborRef, len(refs)),
		}
		for i, ref := range refs {
			node.Neighbors[i] = graph.NeighborRef{ID: osmID(ref)}
		}
		roads = append(roads, node)
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, errors.Wrap(err, "scan nodes")
	}
	scanner.Close()

	log.Printf("osm: %d road nodes with coordinates", len(roads))
	return roads, nil
}

func osmID(id osm.NodeID) string {
	return strconv.FormatInt(int64(id), 10)
}
