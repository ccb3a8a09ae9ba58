package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/marinerstudio/chartsync/internal/dispatcher"
	"github.com/marinerstudio/chartsync/internal/influx"
	"github.com/marinerstudio/chartsync/internal/model/core"
	"github.com/marinerstudio/chartsync/internal/reconcile"
)

// exportWidth and exportHeight size single-image chart exports.
const (
	exportWidth  = 1024
	exportHeight = 768
)

// Command lines are the command token followed by pipe-separated
// arguments, e.g.
//
//	:LAYER:TOGGLE:|3
//	:PIN:ADD:|38.97,-76.48|Mooring|North anchorage
//	:REGION:SET:|38.97,-76.48|0.5|0.5
func runCommandLoop(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, "|")
		command := parts[0]
		if command == ":QUIT:" {
			return
		}

		result, err := eventDispatcher.Dispatch(dispatcher.Event{
			Command:   command,
			Args:      parts[1:],
			Timestamp: time.Now(),
		})
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		fmt.Printf("ok: %v\n", result)
	}
}

func registerLifecycleHandlers(d *dispatcher.Dispatcher) {
	d.Register(":VERSION:", func(e dispatcher.Event) (any, error) {
		return []string{ServiceVersion, BuildDate}, nil
	})

	d.Register(":STATUS:", func(e dispatcher.Event) (any, error) {
		if monitorService == nil {
			return "monitor disabled", nil
		}
		drift := monitorService.Snapshot()
		raw, err := json.Marshal(drift)
		if err != nil {
			return nil, err
		}
		return string(raw), nil
	})
}

func registerChartHandlers(d *dispatcher.Dispatcher) {
	// Ordered mutations stay synchronous so reconciliation order
	// matches command order.
	d.Register(":LAYER:TOGGLE:", func(e dispatcher.Event) (any, error) {
		id, err := cmdParser.ParseLayerToggle(e.Args)
		if err != nil {
			return nil, err
		}
		changed := chartSession.ToggleLayer(id)
		flushAndReport()
		return map[string]any{"changed": changed, "layer": id.Name()}, nil
	}, dispatcher.Logged())

	d.Register(":STYLE:SET:", func(e dispatcher.Event) (any, error) {
		style, err := cmdParser.ParseStyleSet(e.Args)
		if err != nil {
			return nil, err
		}
		chartSession.SetStyle(style)
		flushAndReport()
		return string(style), nil
	}, dispatcher.Logged())

	d.Register(":PIN:ADD:", func(e dispatcher.Event) (any, error) {
		req, err := cmdParser.ParsePinAdd(e.Args)
		if err != nil {
			return nil, err
		}
		pin, ok := chartSession.AddPin(req.Coordinate, req.Title, req.Subtitle)
		if !ok {
			return nil, fmt.Errorf("pin coordinate out of bounds")
		}
		flushAndReport()
		return pin.ID, nil
	})

	d.Register(":PIN:REMOVE:", func(e dispatcher.Event) (any, error) {
		id, err := cmdParser.ParsePinRemove(e.Args)
		if err != nil {
			return nil, err
		}
		removed := chartSession.RemovePin(id)
		flushAndReport()
		return removed, nil
	})

	// Region moves never trigger a resync; they only update the
	// surface viewport. Buffered: pan/zoom streams are high-rate and
	// loss-tolerant.
	d.Register(":REGION:SET:", func(e dispatcher.Event) (any, error) {
		region, err := cmdParser.ParseRegionSet(e.Args)
		if err != nil {
			return nil, err
		}
		mapSurface.SetRegion(region)

		exportURL, err := tileProvider.ExportURL(
			chartSession.CurrentDescriptor(), region, exportWidth, exportHeight)
		if err != nil {
			return nil, err
		}
		Logger.Debug().Str("exportUrl", exportURL).Msg("Viewport moved")
		return "queued", nil
	}, dispatcher.Buffered(64))

	d.Register(":EXPORT:URL:", func(e dispatcher.Event) (any, error) {
		exportURL, err := tileProvider.ExportURL(
			chartSession.CurrentDescriptor(),
			chartSession.ObservedRegion(),
			exportWidth, exportHeight,
		)
		if err != nil {
			return nil, err
		}
		return exportURL, nil
	})

	d.Register(":SYNC:", func(e dispatcher.Event) (any, error) {
		ops := flushAndReport()
		return map[string]any{
			"changed":            ops.Changed(),
			"annotationsAdded":   ops.AnnotationsAdded,
			"annotationsRemoved": ops.AnnotationsRemoved,
		}, nil
	}, dispatcher.Logged())
}

func flushAndReport() reconcile.Ops {
	start := time.Now()
	ops := chartSession.Flush()

	if influxManager != nil {
		sessionName := viper.GetString("sessionName")
		ctx := context.Background()
		if ops.Changed() {
			point := influx.ReconcilePoint(sessionName, ops)
			if err := influxManager.WritePoint(ctx, influx.BucketTelemetry, point); err != nil {
				Logger.Error().Err(err).Msg("Error writing reconcile point")
			}
		}
		point := influx.SyncDurationPoint(sessionName, time.Since(start))
		if err := influxManager.WritePoint(ctx, influx.BucketPerformance, point); err != nil {
			Logger.Error().Err(err).Msg("Error writing sync duration point")
		}
	}
	return ops
}

// locationService backs the resolver on a headless host: a fixed
// coordinate can be supplied in config, otherwise resolution falls
// through to the fallback harbor.
type locationService struct {
	fix    core.Coordinate
	hasFix bool
}

func newLocationService() *locationService {
	svc := &locationService{}
	if viper.IsSet("location.fixLat") && viper.IsSet("location.fixLon") {
		svc.fix = core.Coordinate{
			Lat: viper.GetFloat64("location.fixLat"),
			Lon: viper.GetFloat64("location.fixLon"),
		}
		svc.hasFix = svc.fix.Valid()
	}
	return svc
}

func (s *locationService) RequestPermission() bool { return s.hasFix }

func (s *locationService) StartUpdating() {}

func (s *locationService) CurrentLocation() (core.Coordinate, bool) {
	return s.fix, s.hasFix
}
