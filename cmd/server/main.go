package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/Realchup/smart-traffic-backend/pkg/api"
	"github.com/Realchup/smart-traffic-backend/pkg/config"
	"github.com/Realchup/smart-traffic-backend/pkg/source"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to YAML config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	start := time.Now()

	roads, err := buildRoadSource(cfg.Roads)
	if err != nil {
		log.Fatalf("Road source: %v", err)
	}
	traffic, err := buildTrafficSource(cfg.Traffic)
	if err != nil {
		log.Fatalf("Traffic source: %v", err)
	}
	floods, err := buildFloodSource(cfg.Floods)
	if err != nil {
		log.Fatalf("Flood source: %v", err)
	}

	var requests source.RequestLog = source.NopRequestLog{}
	if cfg.RequestLog != "" {
		fileLog, err := source.OpenRequestLog(cfg.RequestLog)
		if err != nil {
			log.Fatalf("Request log: %v", err)
		}
		defer fileLog.Close()
		requests = fileLog
	}

	var fallback source.Fallbacker
	if cfg.Fallback.URL != "" {
		fallback = &source.FallbackClient{
			URL:    cfg.Fallback.URL,
			Client: &http.Client{Timeout: time.Duration(cfg.Fallback.TimeoutSeconds) * time.Second},
		}
		log.Printf("Fallback routing via %s", cfg.Fallback.URL)
	}

	handlers := api.NewHandlers(api.Deps{
		Roads:    roads,
		Traffic:  traffic,
		Floods:   floods,
		Fallback: fallback,
		Requests: requests,
		Metrics:  api.NewMetrics(nil),
	})

	srvCfg := api.DefaultConfig(cfg.Listen)
	srvCfg.CORSOrigin = cfg.CORSOrigin
	srv := api.NewServer(srvCfg, handlers)

	log.Printf("Ready in %s", time.Since(start).Round(time.Millisecond))

	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}

func buildRoadSource(opt config.SourceOptions) (source.RoadSource, error) {
	switch opt.Backend {
	case "file", "":
		return source.FileRoads{Path: opt.Path}, nil
	case "http":
		return source.HTTPRoads{URL: opt.URL}, nil
	case "osm":
		log.Printf("Loading OSM extract from %s...", opt.Path)
		return source.LoadOSMRoads(context.Background(), opt.Path)
	default:
		return nil, errors.Errorf("unknown roads backend %q", opt.Backend)
	}
}

func buildTrafficSource(opt config.SourceOptions) (source.TrafficSource, error) {
	switch opt.Backend {
	case "none", "":
		return nil, nil
	case "file":
		return source.FileTraffic{Path: opt.Path}, nil
	case "http":
		return source.HTTPTraffic{URL: opt.URL}, nil
	default:
		return nil, errors.Errorf("unknown traffic backend %q", opt.Backend)
	}
}

func buildFloodSource(opt config.SourceOptions) (source.FloodSource, error) {
	switch opt.Backend {
	case "none", "":
		return nil, nil
	case "file":
		return source.FileFloods{Path: opt.Path}, nil
	case "http":
		return source.HTTPFloods{URL: opt.URL}, nil
	case "geojson":
		return source.GeoJSONFloods{Path: opt.Path}, nil
	default:
		return nil, errors.Errorf("unknown floods backend %q", opt.Backend)
	}
}
