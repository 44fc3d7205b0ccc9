package source

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/Realchup/smart-traffic-backend/pkg/graph"
)

// maxFeedBytes bounds how much of a collaborator response is decoded.
const maxFeedBytes = 8 << 20

// HTTPRoads fetches road nodes from a JSON endpoint per request.
type HTTPRoads struct {
	URL    string
	Client *http.Client
}

func (s HTTPRoads) Roads(ctx context.Context) ([]graph.RoadNode, error) {
	var roads []graph.RoadNode
	if err := getJSON(ctx, s.Client, s.URL, &roads); err != nil {
		return nil, errors.Wrap(err, "road feed")
	}
	return roads, nil
}

// HTTPTraffic fetches traffic records from a JSON endpoint per request.
type HTTPTraffic struct {
	URL    string
	Client *http.Client
}

func (s HTTPTraffic) Traffic(ctx context.Context) ([]graph.TrafficRecord, error) {
	var records []graph.TrafficRecord
	if err := getJSON(ctx, s.Client, s.URL, &records); err != nil {
		return nil, errors.Wrap(err, "traffic feed")
	}
	return records, nil
}

// HTTPFloods fetches flood zones from a JSON endpoint per request.
type HTTPFloods struct {
	URL    string
	Client *http.Client
}

func (s HTTPFloods) Floods(ctx context.Context) ([]graph.FloodZone, error) {
	var zones []graph.FloodZone
	if err := getJSON(ctx, s.Client, s.URL, &zones); err != nil {
		return nil, errors.Wrap(err, "flood feed")
	}
	return zones, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, v any) error {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %s", resp.Status)
	}
	return json.NewDecoder(io.LimitReader(resp.Body, maxFeedBytes)).Decode(v)
}
