package source

import (
	"context"
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/Realchup/smart-traffic-backend/pkg/graph"
)

// FileRoads reads road nodes from a JSON array on disk. The file is
// re-read on every call so an operator can swap snapshots in place.
type FileRoads struct {
	Path string
}

func (s FileRoads) Roads(context.Context) ([]graph.RoadNode, error) {
	var roads []graph.RoadNode
	if err := readJSONFile(s.Path, &roads); err != nil {
		return nil, errors.Wrap(err, "road snapshot")
	}
	return roads, nil
}

// FileTraffic reads traffic records from a JSON array on disk.
type FileTraffic struct {
	Path string
}

func (s FileTraffic) Traffic(context.Context) ([]graph.TrafficRecord, error) {
	var records []graph.TrafficRecord
	if err := readJSONFile(s.Path, &records); err != nil {
		return nil, errors.Wrap(err, "traffic snapshot")
	}
	return records, nil
}

// FileFloods reads flood zones from a JSON array on disk.
type FileFloods struct {
	Path string
}

func (s FileFloods) Floods(context.Context) ([]graph.FloodZone, error) {
	var zones []graph.FloodZone
	if err := readJSONFile(s.Path, &zones); err != nil {
		return nil, errors.Wrap(err, "flood snapshot")
	}
	return zones, nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
